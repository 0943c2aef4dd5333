package reader

import (
	"fmt"

	"github.com/cwbudde/go-scheme/internal/lexer"
)

// ParseError is the *parse-error* kind of spec.md §7: malformed tokens,
// unmatched `)`, a dotted pair missing its closer. Position-aware, unlike
// the evaluator's own error kinds (internal/interp/runtime/errors.go),
// since only the reader/lexer knows where in the source text it occurred.
type ParseError struct {
	Pos     lexer.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// IsParseError reports whether err is a *ParseError.
func IsParseError(err error) bool {
	_, ok := err.(*ParseError)
	return ok
}
