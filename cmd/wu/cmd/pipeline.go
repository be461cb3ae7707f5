package cmd

import (
	"fmt"
	"os"

	"github.com/wu-lang/wu/internal/ast"
	"github.com/wu-lang/wu/internal/check"
	"github.com/wu-lang/wu/internal/diagnostic"
	"github.com/wu-lang/wu/internal/lexer"
	"github.com/wu-lang/wu/internal/modules"
	"github.com/wu-lang/wu/internal/parser"
	"github.com/wu-lang/wu/internal/position"
	"github.com/wu-lang/wu/internal/symtab"
)

// unit is one source file on its way through the front end.
type unit struct {
	source *position.SourceFile
	tokens []lexer.Token
	arena  *ast.Arena
	stmts  []ast.Statement
}

func (s *session) read(path string) (*unit, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &unit{source: position.NewSourceFile(path, string(content))}, nil
}

func (s *session) tokenize(u *unit) error {
	tokens, err := lexer.Tokenize(u.source.Content, u.source.Filename)
	if err != nil {
		return err
	}
	u.tokens = tokens
	s.logger.Debug("lexing complete", "file", u.source.Filename, "tokens", len(tokens))
	return nil
}

func (s *session) parse(u *unit) error {
	if err := s.tokenize(u); err != nil {
		return err
	}

	var opts []parser.Option
	if s.cfg.TraceParser {
		opts = append(opts, parser.WithTrace(s.logger.Slog().With("file", u.source.Filename)))
	}

	p := parser.New(u.tokens, u.source, opts...)
	stmts, err := p.Parse()
	if err != nil {
		return err
	}
	u.arena = p.Arena()
	u.stmts = stmts
	s.logger.Debug("parsing complete", "file", u.source.Filename, "statements", len(stmts), "nodes", u.arena.Len())
	return nil
}

// newSymTab returns a table with the configured prelude modules imported.
func (s *session) newSymTab() (*symtab.SymTab, error) {
	st := symtab.New()
	if len(s.cfg.Prelude) == 0 {
		return st, nil
	}

	loader := modules.NewLoader(s.cfg.ModulePaths, s.logger.Slog())
	imported, err := loader.ImportAll(st, s.cfg.Prelude...)
	if err != nil {
		return nil, fmt.Errorf("load prelude: %w", err)
	}
	for _, m := range imported {
		s.logger.Info("module imported", "module", m.Name, "version", m.Version, "exports", len(m.Exports))
	}
	return st, nil
}

func (s *session) check(u *unit) error {
	if err := s.parse(u); err != nil {
		return err
	}

	st, err := s.newSymTab()
	if err != nil {
		return err
	}

	c := check.New(st,
		check.WithPrelude(s.cfg.Prelude...),
		check.WithSource(u.source),
		check.WithLogger(s.logger.Slog().With("file", u.source.Filename)),
	)
	err = c.Check(u.arena, u.stmts)
	if s.cfg.Debug {
		st.Dump(s.logger.Slog().With("file", u.source.Filename))
	}
	return err
}

// checkFiles checks every path and renders all diagnostics. It returns
// errReported when any file failed.
func (s *session) checkFiles(paths []string) error {
	engine := diagnostic.NewDiagnosticEngine()

	for _, path := range paths {
		u, err := s.read(path)
		if err != nil {
			return err
		}
		if err := s.check(u); err != nil {
			engine.AddError(err, u.source)
			continue
		}
		s.logger.Info("file checked", "file", path)
	}

	if !engine.HasErrors() {
		return nil
	}
	if err := s.renderer.RenderAll(engine); err != nil {
		return err
	}
	return errReported
}
