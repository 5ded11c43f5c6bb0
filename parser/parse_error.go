package parser

import (
	"fmt"
	"strings"

	"spanleaf/token"
)

// ParseError is one parse failure, carrying the offending token so the
// caller can render a caret under the source line.
type ParseError struct {
	Message string
	Token   token.Token
}

// FormatParseErrors renders a batch of ParseErrors against the original
// source text, one "line | text" + caret block per error.
func FormatParseErrors(errs []ParseError, source string) string {
	if len(errs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, formatParseError(err, source))
	}
	return strings.Join(parts, "\n")
}

func formatParseError(err ParseError, source string) string {
	if err.Token.Line == 0 || source == "" {
		return "parse error: " + err.Message
	}
	lines := strings.Split(source, "\n")
	line := err.Token.Line
	col := err.Token.Column
	if line < 1 || line > len(lines) {
		return "parse error: " + err.Message
	}
	lineText := strings.TrimRight(lines[line-1], "\r")
	if col < 1 {
		col = 1
	}
	if col > len(lineText)+1 {
		col = len(lineText) + 1
	}
	caret := strings.Repeat(" ", col-1) + "^"
	return fmt.Sprintf(
		"parse error: %s\n  at %d:%d\n  %d | %s\n    | %s",
		err.Message,
		line, col,
		line,
		lineText,
		caret,
	)
}
