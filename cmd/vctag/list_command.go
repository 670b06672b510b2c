package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"vctag/internal/comments"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var raw bool
	var exportPath string

	cmd := &cobra.Command{
		Use:   "list <file>",
		Short: "List the comments on an Ogg Vorbis file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, cleanup, err := ctx.newEditor(args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			if raw {
				lines, err := ed.ListRaw(cmd.Context(), exportPath)
				if err != nil {
					return err
				}
				for _, line := range lines {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			}

			grouped, err := ed.List(cmd.Context(), exportPath)
			if err != nil {
				return err
			}
			writeGrouped(cmd.OutOrStdout(), grouped, !stdoutIsTerminal())
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print uninterpreted name=value lines")
	cmd.Flags().StringVar(&exportPath, "export", "", "Also export the listing to a comments file")
	return cmd
}

func writeGrouped(w io.Writer, grouped comments.Grouped, plain bool) {
	if len(grouped) == 0 {
		fmt.Fprintln(w, "No comments found.")
		return
	}

	names := grouped.Names()
	if plain {
		for _, name := range names {
			for _, value := range grouped[name] {
				fmt.Fprintf(w, "%s=%s\n", name, value)
			}
		}
		return
	}

	rows := make([][]string, 0, len(grouped))
	for _, name := range names {
		for _, value := range grouped[name] {
			rows = append(rows, []string{name, value})
		}
	}
	fmt.Fprintln(w, renderTable([]string{"Name", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
