package proto

import (
	"fmt"
	"strings"
)

// SourcePos identifies a location in a schema source file. Lines are
// 1-based; columns are 0-based and reset when a line advances.
type SourcePos struct {
	Filename string
	Line     int
	Column   int
}

// Pos returns the starting position for a file before any input has been
// consumed.
func Pos(filename string) SourcePos {
	return SourcePos{Filename: filename, Line: 1, Column: 0}
}

// NextColumn returns the position advanced by one column.
func (p SourcePos) NextColumn() SourcePos {
	p.Column++
	return p
}

// NextLine returns the position advanced to the start of the next line.
func (p SourcePos) NextLine() SourcePos {
	p.Line++
	p.Column = 0
	return p
}

func (p SourcePos) String() string {
	if p.Line <= 0 {
		return p.Filename
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// MalformedNameError reports an attempt to construct or query a compound
// name with zero components.
type MalformedNameError struct{}

func (MalformedNameError) Error() string {
	return "malformed compound name: must have at least one component"
}

// SyntaxError is a lexical or grammatical error with the position of the
// offending token.
type SyntaxError struct {
	Pos SourcePos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// FormatWithContext returns a formatted error showing the offending source
// line with surrounding context and a caret under the error column.
func (e *SyntaxError) FormatWithContext(source string) string {
	lines := strings.Split(source, "\n")
	if e.Pos.Line < 1 || e.Pos.Line > len(lines) {
		return e.Error()
	}

	// Colors for terminal output
	const (
		red   = "\033[31m"
		blue  = "\033[34m"
		bold  = "\033[1m"
		reset = "\033[0m"
		dim   = "\033[2m"
	)

	var result strings.Builder

	result.WriteString(fmt.Sprintf("%s%sError:%s %s\n", bold, red, reset, e.Msg))
	result.WriteString(fmt.Sprintf("  %s%s--> %s%s\n", dim, blue, e.Pos, reset))
	result.WriteString(fmt.Sprintf(" %s%s |%s\n", dim, padLeft("", 3), reset))

	startLine := max(1, e.Pos.Line-2)
	endLine := min(len(lines), e.Pos.Line+2)

	for i := startLine; i <= endLine; i++ {
		paddedLineStr := padLeft(fmt.Sprintf("%d", i), 3)
		if i == e.Pos.Line {
			result.WriteString(fmt.Sprintf(" %s%s%s%s | %s%s\n",
				dim, blue, bold, paddedLineStr, reset, lines[i-1]))

			// 1 space + 3 for line number + " | ", then the 0-based column
			padding := strings.Repeat(" ", 1+3+3+e.Pos.Column)
			result.WriteString(fmt.Sprintf("%s%s^%s\n", padding, red, reset))
		} else {
			result.WriteString(fmt.Sprintf(" %s%s | %s%s\n",
				dim, paddedLineStr, lines[i-1], reset))
		}
	}

	result.WriteString(fmt.Sprintf(" %s%s |%s\n", dim, padLeft("", 3), reset))

	return result.String()
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
