package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vctag/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			if err := config.CreateSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tool.binary: %s\n", cfg.Tool.Binary)
			fmt.Fprintf(out, "tool.timeout_seconds: %d\n", cfg.Tool.TimeoutSeconds)
			fmt.Fprintf(out, "tool.lock_timeout_seconds: %d\n", cfg.Tool.LockTimeoutSeconds)
			fmt.Fprintf(out, "paths.state_dir: %s\n", cfg.Paths.StateDir)
			fmt.Fprintf(out, "history.enabled: %s\n", yesNo(cfg.History.Enabled))
			fmt.Fprintf(out, "history.path: %s\n", cfg.History.Path)
			fmt.Fprintf(out, "logging.format: %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "logging.level: %s\n", cfg.Logging.Level)
			return nil
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
