package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wu-lang/wu/internal/lexer"
)

func newTokensCmd(s *session) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the tokens of a source file",
		Long: `Prints one token per line: position, type and text.

Whitespace and line end tokens are hidden unless --all is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := s.read(args[0])
			if err != nil {
				return err
			}
			if err := s.tokenize(u); err != nil {
				return s.report(err, u)
			}

			out := cmd.OutOrStdout()
			for _, tok := range u.tokens {
				if !all && (tok.Type == lexer.TokenWhitespace || tok.Type == lexer.TokenEOL) {
					continue
				}
				fmt.Fprintf(out, "%-8s %-11s %q\n", fmt.Sprintf("%d:%d", tok.Pos.Line, tok.Pos.Column), tok.Type, tok.Content)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include whitespace and line ends")
	return cmd
}
