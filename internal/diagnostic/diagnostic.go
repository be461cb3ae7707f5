// Package diagnostic turns front end errors into user-facing reports.
package diagnostic

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wu-lang/wu/internal/check"
	"github.com/wu-lang/wu/internal/lexer"
	"github.com/wu-lang/wu/internal/parser"
	"github.com/wu-lang/wu/internal/position"
)

// DiagnosticLevel represents the severity level of a diagnostic message.
type DiagnosticLevel int

const (
	DiagnosticError DiagnosticLevel = iota
	DiagnosticWarning
	DiagnosticNote
)

func (dl DiagnosticLevel) String() string {
	switch dl {
	case DiagnosticError:
		return "error"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticNote:
		return "note"
	default:
		return "unknown"
	}
}

// DiagnosticCategory represents the category of diagnostic.
type DiagnosticCategory int

const (
	DiagnosticLex DiagnosticCategory = iota
	DiagnosticSyntax
	DiagnosticType
	DiagnosticModule
	DiagnosticInternal
)

func (dc DiagnosticCategory) String() string {
	switch dc {
	case DiagnosticLex:
		return "lex"
	case DiagnosticSyntax:
		return "syntax"
	case DiagnosticType:
		return "type"
	case DiagnosticModule:
		return "module"
	case DiagnosticInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error codes.
const (
	CodeLex           = "E1000"
	CodeSyntax        = "E1001"
	CodeUnimplemented = "E1002"
	CodeMalformedNum  = "E1003"
	CodeType          = "E2001"
	CodeInternal      = "E9000"
)

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Code     string
	Message  string
	Line     string // source line at Pos; empty when unknown
	Pos      position.Position
	Level    DiagnosticLevel
	Category DiagnosticCategory
}

// DiagnosticBuilder helps construct diagnostic messages with fluent API.
type DiagnosticBuilder struct {
	diagnostic *Diagnostic
}

// NewDiagnostic creates a new diagnostic builder.
func NewDiagnostic() *DiagnosticBuilder {
	return &DiagnosticBuilder{diagnostic: &Diagnostic{}}
}

func (db *DiagnosticBuilder) Error() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticError
	return db
}

func (db *DiagnosticBuilder) Warning() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticWarning
	return db
}

func (db *DiagnosticBuilder) Note() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticNote
	return db
}

func (db *DiagnosticBuilder) Category(category DiagnosticCategory) *DiagnosticBuilder {
	db.diagnostic.Category = category
	return db
}

func (db *DiagnosticBuilder) Code(code string) *DiagnosticBuilder {
	db.diagnostic.Code = code
	return db
}

func (db *DiagnosticBuilder) Message(message string) *DiagnosticBuilder {
	db.diagnostic.Message = message
	return db
}

// At sets the position and the source line shown under the message.
func (db *DiagnosticBuilder) At(pos position.Position, line string) *DiagnosticBuilder {
	db.diagnostic.Pos = pos
	db.diagnostic.Line = line
	return db
}

func (db *DiagnosticBuilder) Build() *Diagnostic {
	return db.diagnostic
}

// FromError converts an error from any front end stage. Errors of unknown
// type become internal diagnostics without a position. source fills in the
// line when the error does not carry it and may be nil.
func FromError(err error, source *position.SourceFile) *Diagnostic {
	var (
		pe *parser.ParseError
		le *lexer.Error
		ce *check.Error
	)

	b := NewDiagnostic().Error()

	switch {
	case errors.As(err, &pe):
		b.Category(DiagnosticSyntax).Message(pe.Message).At(pe.Position, pe.Line)
		switch pe.Kind {
		case parser.ErrUnimplemented:
			b.Code(CodeUnimplemented)
		case parser.ErrMalformedNumber:
			b.Code(CodeMalformedNum)
		default:
			b.Code(CodeSyntax)
		}
	case errors.As(err, &le):
		b.Category(DiagnosticLex).Code(CodeLex).Message(le.Message).At(le.Pos, "")
	case errors.As(err, &ce):
		b.Category(DiagnosticType).Code(CodeType).Message(ce.Message).At(ce.Position, ce.Line)
	default:
		b.Category(DiagnosticInternal).Code(CodeInternal).Message(err.Error())
	}

	d := b.Build()
	if d.Line == "" && d.Pos.IsValid() && source != nil {
		d.Line = source.GetLine(d.Pos.Line)
	}
	if d.Pos.Filename == "" && d.Pos.IsValid() && source != nil {
		d.Pos.Filename = source.Filename
	}
	return d
}

// ====== Engine ======

// DiagnosticEngine collects diagnostics for one run.
type DiagnosticEngine struct {
	diagnostics []Diagnostic
	errorCount  int
	warnCount   int
}

// NewDiagnosticEngine creates an empty engine.
func NewDiagnosticEngine() *DiagnosticEngine {
	return &DiagnosticEngine{}
}

// AddDiagnostic records d.
func (de *DiagnosticEngine) AddDiagnostic(d *Diagnostic) {
	de.diagnostics = append(de.diagnostics, *d)
	switch d.Level {
	case DiagnosticError:
		de.errorCount++
	case DiagnosticWarning:
		de.warnCount++
	}
}

// AddError records err converted with FromError.
func (de *DiagnosticEngine) AddError(err error, source *position.SourceFile) {
	de.AddDiagnostic(FromError(err, source))
}

// GetDiagnostics returns the diagnostics sorted by position.
func (de *DiagnosticEngine) GetDiagnostics() []Diagnostic {
	sorted := make([]Diagnostic, len(de.diagnostics))
	copy(sorted, de.diagnostics)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Pos.Before(sorted[j].Pos)
	})
	return sorted
}

// HasErrors reports whether any error was recorded.
func (de *DiagnosticEngine) HasErrors() bool {
	return de.errorCount > 0
}

// Clear drops all diagnostics.
func (de *DiagnosticEngine) Clear() {
	de.diagnostics = nil
	de.errorCount = 0
	de.warnCount = 0
}

// Summary describes the counts, e.g. "2 error(s), 1 warning(s)".
func (de *DiagnosticEngine) Summary() string {
	switch {
	case de.errorCount == 0 && de.warnCount == 0:
		return "no issues found"
	case de.warnCount == 0:
		return fmt.Sprintf("%d error(s)", de.errorCount)
	case de.errorCount == 0:
		return fmt.Sprintf("%d warning(s)", de.warnCount)
	default:
		return fmt.Sprintf("%d error(s), %d warning(s)", de.errorCount, de.warnCount)
	}
}
