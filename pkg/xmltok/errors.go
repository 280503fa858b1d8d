package xmltok

import (
	"errors"
	"fmt"
)

var (
	errNilLexer  = errors.New("nil XML lexer")
	errNilReader = errors.New("nil rune reader")
)

// SyntaxError reports a failure that ended tokenization: either a diagnostic
// whose severity is SeverityFail or an error from the underlying reader.
type SyntaxError struct {
	Err    error
	Line   int
	Column int
}

// Error formats the syntax error with location and cause.
func (e *SyntaxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("xml lexical error at line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap exposes the underlying error.
func (e *SyntaxError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
