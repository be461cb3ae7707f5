// Package position locates tokens, nodes and diagnostics in wu source text.
package position

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Position is a point in a source file. The zero value means "unknown".
type Position struct {
	Filename string
	Line     int // 1-based
	Column   int // 1-based, counted in bytes
	Offset   int // 0-based byte offset
}

// IsValid reports whether p points into a file.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// String formats p as file:line:col, using only the base name of the file.
func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
}

// Before orders positions by file name, then by offset.
func (p Position) Before(other Position) bool {
	if p.Filename == other.Filename {
		return p.Offset < other.Offset
	}
	return p.Filename < other.Filename
}

// SourceFile holds the text of one file with its lines pre-split, so
// diagnostics can quote the offending line.
type SourceFile struct {
	Filename string
	Content  string
	Lines    []string // without "\n" or "\r\n"

	starts []int // byte offset of each line
}

// NewSourceFile splits content into lines.
func NewSourceFile(filename, content string) *SourceFile {
	sf := &SourceFile{
		Filename: filename,
		Content:  content,
		Lines:    strings.Split(content, "\n"),
		starts:   make([]int, 0, strings.Count(content, "\n")+1),
	}

	offset := 0
	for i, line := range sf.Lines {
		sf.starts = append(sf.starts, offset)
		offset += len(line) + 1
		sf.Lines[i] = strings.TrimSuffix(line, "\r")
	}
	return sf
}

// GetLine returns line n (1-based), or "" when n is out of range.
func (sf *SourceFile) GetLine(n int) string {
	if sf == nil || n < 1 || n > len(sf.Lines) {
		return ""
	}
	return sf.Lines[n-1]
}

// PositionFromOffset maps a byte offset to a position. Offsets outside
// the content give the zero Position.
func (sf *SourceFile) PositionFromOffset(offset int) Position {
	if offset < 0 || offset > len(sf.Content) {
		return Position{}
	}

	line := sort.Search(len(sf.starts), func(i int) bool { return sf.starts[i] > offset })
	return Position{
		Filename: sf.Filename,
		Line:     line,
		Column:   offset - sf.starts[line-1] + 1,
		Offset:   offset,
	}
}
