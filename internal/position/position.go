// Package position provides source positions for nodes of the checked
// declaration tree so that diagnostics can point back at the original source.
package position

import (
	"fmt"
	"path/filepath"
)

// Position represents a single point in source code
type Position struct {
	Filename string // Source file name
	Line     int    // 1-based line number
	Column   int    // 1-based column number
}

// IsValid returns true if the position is valid
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// String returns a string representation of the position
func (p Position) String() string {
	if !p.IsValid() {
		if p.Filename != "" {
			return filepath.Base(p.Filename)
		}
		return "-"
	}
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range of source code between two positions
type Span struct {
	Start Position // Starting position (inclusive)
	End   Position // Ending position (exclusive)
}

// IsValid returns true if the span is valid
func (s Span) IsValid() bool {
	return s.Start.IsValid()
}

// String returns a string representation of the span
func (s Span) String() string {
	if !s.End.IsValid() || s.Start == s.End {
		return s.Start.String()
	}

	if s.Start.Filename != "" {
		filename := filepath.Base(s.Start.Filename)
		if s.Start.Line == s.End.Line {
			return fmt.Sprintf("%s:%d:%d-%d", filename, s.Start.Line, s.Start.Column, s.End.Column)
		}
		return fmt.Sprintf("%s:%d:%d-%d:%d", filename, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
	}

	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%d:%d-%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// NewSpan creates a span from line/column pairs in one file.
func NewSpan(filename string, startLine, startCol, endLine, endCol int) Span {
	return Span{
		Start: Position{Filename: filename, Line: startLine, Column: startCol},
		End:   Position{Filename: filename, Line: endLine, Column: endCol},
	}
}
