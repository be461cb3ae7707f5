package diagnostic

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode selects when output is colored.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseColorMode parses "auto", "always" or "never". The empty string
// means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// colorEnabled resolves mode for w. Auto colors only terminals and honors
// NO_COLOR.
func colorEnabled(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f.Fd())
}

type styles struct {
	levels   map[DiagnosticLevel]lipgloss.Style
	message  lipgloss.Style
	location lipgloss.Style
	gutter   lipgloss.Style
	caret    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		levels: map[DiagnosticLevel]lipgloss.Style{
			DiagnosticError:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
			DiagnosticWarning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
			DiagnosticNote:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		},
		message:  r.NewStyle().Bold(true),
		location: r.NewStyle().Foreground(lipgloss.Color("12")),
		gutter:   r.NewStyle().Foreground(lipgloss.Color("12")),
		caret:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// Renderer writes diagnostics in the form
//
//	error[E1001]: missing right hand expression
//	  --> main.wu:2:7
//	   |
//	 2 | b = 2 +
//	   |       ^
type Renderer struct {
	out    io.Writer
	color  bool
	styles styles
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, mode ColorMode) *Renderer {
	lr := lipgloss.NewRenderer(w)
	color := colorEnabled(mode, w)
	switch {
	case !color:
		lr.SetColorProfile(termenv.Ascii)
	case mode == ColorAlways:
		lr.SetColorProfile(termenv.ANSI256)
	}

	return &Renderer{
		out:    w,
		color:  color,
		styles: newStyles(lr),
	}
}

// Color reports whether the renderer emits ANSI styling.
func (r *Renderer) Color() bool {
	return r.color
}

// Format renders one diagnostic.
func (r *Renderer) Format(d *Diagnostic) string {
	var sb strings.Builder

	level := d.Level.String()
	if d.Code != "" {
		level = fmt.Sprintf("%s[%s]", level, d.Code)
	}
	sb.WriteString(r.styles.levels[d.Level].Render(level))
	sb.WriteString(r.styles.message.Render(": " + d.Message))
	sb.WriteString("\n")

	if !d.Pos.IsValid() {
		return sb.String()
	}

	lineNo := strconv.Itoa(d.Pos.Line)
	pad := strings.Repeat(" ", len(lineNo))

	sb.WriteString(fmt.Sprintf("%s%s %s\n", pad, r.styles.gutter.Render("-->"), r.styles.location.Render(d.Pos.String())))

	if d.Line == "" {
		return sb.String()
	}

	bar := r.styles.gutter.Render("|")
	sb.WriteString(fmt.Sprintf("%s %s\n", pad, bar))
	sb.WriteString(fmt.Sprintf("%s %s %s\n", r.styles.gutter.Render(lineNo), bar, d.Line))
	sb.WriteString(fmt.Sprintf("%s %s %s%s\n", pad, bar, caretIndent(d.Line, d.Pos.Column), r.styles.caret.Render("^")))
	return sb.String()
}

// Render writes one diagnostic.
func (r *Renderer) Render(d *Diagnostic) error {
	_, err := io.WriteString(r.out, r.Format(d))
	return err
}

// RenderAll writes every diagnostic of de followed by its summary.
func (r *Renderer) RenderAll(de *DiagnosticEngine) error {
	for _, d := range de.GetDiagnostics() {
		if err := r.Render(&d); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(r.out, "%s\n", de.Summary())
	return err
}

// caretIndent returns whitespace reaching column (1-based, in bytes) of
// line. Tabs are kept so the caret lines up with the source.
func caretIndent(line string, column int) string {
	var sb strings.Builder
	for i := 0; i < column-1; i++ {
		if i < len(line) && line[i] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
