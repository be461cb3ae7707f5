package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(s *session) *cobra.Command {
	var prelude []string

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Type check source files",
		Long: `Parses and type checks each FILE independently.

Names exported by prelude modules are visible in every file. Prelude
modules are found on the module search path as NAME.toml or NAME.yaml.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("prelude") {
				s.cfg.Prelude = prelude
			}
			s.logger.Info("check started", "files", len(args))

			if err := s.checkFiles(args); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "checked %d file(s), no issues found\n", len(args))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&prelude, "prelude", nil, "prelude modules (overrides config)")
	return cmd
}
