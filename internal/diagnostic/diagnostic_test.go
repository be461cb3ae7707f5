package diagnostic

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/wu-lang/wu/internal/check"
	"github.com/wu-lang/wu/internal/parser"
	"github.com/wu-lang/wu/internal/position"
	"github.com/wu-lang/wu/internal/symtab"
)

func TestFromParseError(t *testing.T) {
	src := "a = 1\nb = 2 +\n"
	_, _, err := parser.ParseSource("main.wu", src)
	if err == nil {
		t.Fatal("expected a parse error")
	}

	d := FromError(fmt.Errorf("parse main.wu: %w", err), nil)
	if d.Code != CodeSyntax || d.Category != DiagnosticSyntax || d.Level != DiagnosticError {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Line != "b = 2 +" {
		t.Errorf("Line = %q", d.Line)
	}
	if d.Pos.Line != 2 || d.Pos.Column != 7 {
		t.Errorf("Pos = %s", d.Pos)
	}
}

func TestFromErrorCodes(t *testing.T) {
	tests := []struct {
		src      string
		code     string
		category DiagnosticCategory
	}{
		{"12ab", CodeMalformedNum, DiagnosticSyntax},
		{"fun", CodeUnimplemented, DiagnosticSyntax},
		{"x = \"open", CodeLex, DiagnosticLex},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			source := position.NewSourceFile("t.wu", tt.src)
			_, _, err := parser.ParseSource("t.wu", tt.src)
			d := FromError(err, source)
			if d.Code != tt.code || d.Category != tt.category {
				t.Errorf("got %s/%s, want %s/%s", d.Code, d.Category, tt.code, tt.category)
			}
			if d.Line == "" {
				t.Error("source line should be filled in")
			}
		})
	}
}

func TestFromCheckError(t *testing.T) {
	src := "x = y"
	arena, stmts, err := parser.ParseSource("t.wu", src)
	if err != nil {
		t.Fatal(err)
	}
	err = check.New(symtab.New()).Check(arena, stmts)

	d := FromError(err, position.NewSourceFile("t.wu", src))
	if d.Code != CodeType || d.Category != DiagnosticType {
		t.Errorf("got %s/%s", d.Code, d.Category)
	}
	if d.Line != src || d.Pos.Column != 5 {
		t.Errorf("diagnostic at %s on %q", d.Pos, d.Line)
	}
}

func TestFromUnknownError(t *testing.T) {
	d := FromError(errors.New("disk on fire"), nil)
	if d.Category != DiagnosticInternal || d.Pos.IsValid() {
		t.Errorf("diagnostic = %+v", d)
	}
}

func TestRenderPlain(t *testing.T) {
	d := NewDiagnostic().
		Error().
		Category(DiagnosticSyntax).
		Code(CodeSyntax).
		Message("missing right hand expression").
		At(position.Position{Filename: "main.wu", Line: 2, Column: 7, Offset: 12}, "b = 2 +").
		Build()

	var buf bytes.Buffer
	r := NewRenderer(&buf, ColorNever)
	if err := r.Render(d); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"error[E1001]: missing right hand expression",
		" --> main.wu:2:7",
		"  |",
		"2 | b = 2 +",
		"  |       ^",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("rendered:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRenderKeepsTabsBeforeCaret(t *testing.T) {
	d := NewDiagnostic().
		Error().
		Message("boom").
		At(position.Position{Line: 1, Column: 3}, "\tx+").
		Build()

	out := NewRenderer(&bytes.Buffer{}, ColorNever).Format(d)
	if !strings.HasSuffix(out, "| \t ^\n") {
		t.Errorf("caret line wrong: %q", out)
	}
}

func TestRenderWithoutPosition(t *testing.T) {
	d := NewDiagnostic().Warning().Message("no input files").Build()

	out := NewRenderer(&bytes.Buffer{}, ColorNever).Format(d)
	if out != "warning: no input files\n" {
		t.Errorf("got %q", out)
	}
}

func TestColorModes(t *testing.T) {
	for _, s := range []string{"", "auto", "ALWAYS", "never"} {
		if _, err := ParseColorMode(s); err != nil {
			t.Errorf("ParseColorMode(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseColorMode("sometimes"); err == nil {
		t.Error("ParseColorMode should reject unknown modes")
	}

	var buf bytes.Buffer
	if NewRenderer(&buf, ColorAuto).Color() {
		t.Error("auto mode must not color a non-terminal writer")
	}

	r := NewRenderer(&buf, ColorAlways)
	if !r.Color() {
		t.Fatal("always mode should color")
	}
	out := r.Format(NewDiagnostic().Error().Message("boom").Build())
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected ANSI escapes, got %q", out)
	}
}

func TestEngine(t *testing.T) {
	de := NewDiagnosticEngine()
	if de.HasErrors() || de.Summary() != "no issues found" {
		t.Fatalf("fresh engine: %v %q", de.HasErrors(), de.Summary())
	}

	de.AddDiagnostic(NewDiagnostic().Error().Message("late").At(position.Position{Line: 3, Column: 1, Offset: 20}, "").Build())
	de.AddDiagnostic(NewDiagnostic().Warning().Message("early").At(position.Position{Line: 1, Column: 1, Offset: 0}, "").Build())

	if !de.HasErrors() {
		t.Error("HasErrors should be true")
	}
	if got := de.Summary(); got != "1 error(s), 1 warning(s)" {
		t.Errorf("Summary = %q", got)
	}
	if ds := de.GetDiagnostics(); ds[0].Message != "early" {
		t.Errorf("diagnostics not sorted by position: %v", ds)
	}

	var buf bytes.Buffer
	if err := NewRenderer(&buf, ColorNever).RenderAll(de); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "1 error(s), 1 warning(s)\n") {
		t.Errorf("RenderAll output: %q", buf.String())
	}

	de.Clear()
	if de.HasErrors() {
		t.Error("Clear should reset counts")
	}
}
