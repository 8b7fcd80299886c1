// Package diag holds BearLang's structured translation errors and the
// source-line-and-caret rendering used by host applications.
package diag

import (
	"fmt"
	"strings"
)

// LexError reports a lexical failure: illegal character, unterminated
// string, illegal escape, or inconsistent indentation.
type LexError struct {
	Message string
	Line    int
	Column  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// ParseError reports a syntactic or structural failure.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

type positioned interface {
	error
	position() (line, column int)
}

func (e *LexError) position() (int, int)   { return e.Line, e.Column }
func (e *ParseError) position() (int, int) { return e.Line, e.Column }

// Render formats err against source as a human-readable diagnostic: the
// message, the offending source line, and a caret under the column. It is
// used only by CLI and test hosts — the core translator never prints
// anything itself.
func Render(source string, err error) string {
	pe, ok := err.(positioned)
	if !ok {
		return err.Error()
	}
	line, col := pe.position()
	var b strings.Builder
	fmt.Fprintf(&b, "error: %s\n", err.Error())

	lines := strings.Split(source, "\n")
	if line >= 1 && line <= len(lines) {
		text := lines[line-1]
		fmt.Fprintf(&b, "  %s\n", text)
		if col >= 1 {
			fmt.Fprintf(&b, "  %s^\n", strings.Repeat(" ", col-1))
		}
	}
	return b.String()
}
