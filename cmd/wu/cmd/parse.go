package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wu-lang/wu/internal/diagnostic"
)

func newParseCmd(s *session) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a source file and print its syntax tree",
		Long: `Parses FILE and prints its statements.

Formats:
  sexp  - one S-expression per statement (default)
  yaml  - full tree with positions
  json  - full tree with positions`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := s.read(args[0])
			if err != nil {
				return err
			}
			if err := s.parse(u); err != nil {
				return s.report(err, u)
			}
			return writeTree(cmd.OutOrStdout(), u, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "sexp", "output format: sexp, yaml or json")
	return cmd
}

func writeTree(w io.Writer, u *unit, format string) error {
	switch format {
	case "sexp":
		_, err := io.WriteString(w, u.arena.PrettyPrint(u.stmts))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(u.arena.Dump(u.stmts)); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(u.arena.Dump(u.stmts))
	default:
		return fmt.Errorf("unknown format %q (want sexp, yaml or json)", format)
	}
}

// report renders err as a diagnostic and returns errReported.
func (s *session) report(err error, u *unit) error {
	if rerr := s.renderer.Render(diagnostic.FromError(err, u.source)); rerr != nil {
		return rerr
	}
	return errReported
}
