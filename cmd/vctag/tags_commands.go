package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"vctag/internal/comments"
)

func newAppendCommand(ctx *commandContext) *cobra.Command {
	return newTagsCommand(ctx, false)
}

func newWriteCommand(ctx *commandContext) *cobra.Command {
	return newTagsCommand(ctx, true)
}

func newTagsCommand(ctx *commandContext, overwrite bool) *cobra.Command {
	use := "append <file> [name=value ...]"
	short := "Append comments to an Ogg Vorbis file"
	verb := "Appended"
	if overwrite {
		use = "write <file> [name=value ...]"
		short = "Replace all comments on an Ogg Vorbis file"
		verb = "Wrote"
	}

	var fromFile string
	var escapes bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := tagSource(args[1:], fromFile)
			if err != nil {
				return err
			}

			ed, cleanup, err := ctx.newEditor(args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			if overwrite {
				err = ed.Write(cmd.Context(), src, escapes)
			} else {
				err = ed.Append(cmd.Context(), src, escapes)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s comments on %s\n", verb, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFile, "from-file", "", "Read name=value lines from a comments file")
	cmd.Flags().BoolVarP(&escapes, "escapes", "e", false, "Enable escape sequence interpretation in values")
	return cmd
}

func tagSource(entries []string, fromFile string) (comments.Source, error) {
	if fromFile != "" {
		if len(entries) > 0 {
			return comments.Source{}, errors.New("--from-file cannot be combined with inline name=value entries")
		}
		return comments.FromFile(fromFile), nil
	}
	return comments.FromLines(entries), nil
}
