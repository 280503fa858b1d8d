package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies a class of lexical diagnostic.
type ErrorCode string

const (
	// ErrRestrictedChar indicates a decodable character that XML 1.1 disallows.
	ErrRestrictedChar ErrorCode = "restricted-char"
	// ErrPrematureEOF indicates a multi-character construct cut short by end of input.
	ErrPrematureEOF ErrorCode = "premature-end-of-input"
	// ErrIllegalChar indicates a character that is not allowed in the current context.
	ErrIllegalChar ErrorCode = "illegal-char"
	// ErrUnknownToken indicates markup that matches no known construct.
	ErrUnknownToken ErrorCode = "unknown-token"
	// ErrNumParsing indicates character reference digits that do not parse.
	ErrNumParsing ErrorCode = "num-parsing"
	// ErrCharParsing indicates a character reference outside the XML Char production.
	ErrCharParsing ErrorCode = "char-parsing"
	// ErrDoubleHyphenInComment indicates "--" inside a comment body.
	ErrDoubleHyphenInComment ErrorCode = "double-hyphen-in-comment"
)

var codes = []ErrorCode{
	ErrRestrictedChar,
	ErrPrematureEOF,
	ErrIllegalChar,
	ErrUnknownToken,
	ErrNumParsing,
	ErrCharParsing,
	ErrDoubleHyphenInComment,
}

// Codes returns every known diagnostic code in declaration order.
func Codes() []ErrorCode {
	out := make([]ErrorCode, len(codes))
	copy(out, codes)
	return out
}

// Known reports whether code is one of the declared diagnostic codes.
func (c ErrorCode) Known() bool {
	for _, known := range codes {
		if c == known {
			return true
		}
	}
	return false
}

// Diagnostic describes a recoverable lexical problem with its position.
// Line is 1-based and Column is 0-based.
type Diagnostic struct {
	Code    ErrorCode
	Message string
	Actual  string
	Line    int
	Column  int
}

// DiagnosticList is an error that wraps one or more diagnostics.
type DiagnosticList []Diagnostic //nolint:errname // public API name.

// Error returns a compact summary of the diagnostics.
func (l DiagnosticList) Error() string {
	switch len(l) {
	case 0:
		return "no diagnostics"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", l[0].Error(), len(l)-1)
	}
}

// Error formats the diagnostic for display, including code, message, and position.
func (d *Diagnostic) Error() string {
	if d == nil {
		return "diagnostic <nil>"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", d.Code, d.Message))
	if d.Line > 0 {
		b.WriteString(fmt.Sprintf(" at line %d, column %d", d.Line, d.Column))
	}
	if d.Actual != "" {
		b.WriteString(fmt.Sprintf(" (actual: %q)", d.Actual))
	}
	return b.String()
}

// NewDiagnostic builds a Diagnostic with a code and message.
func NewDiagnostic(code ErrorCode, msg string) Diagnostic {
	return Diagnostic{Code: code, Message: msg}
}

// NewDiagnosticf formats a message and builds a Diagnostic.
func NewDiagnosticf(code ErrorCode, format string, args ...any) Diagnostic {
	return NewDiagnostic(code, fmt.Sprintf(format, args...))
}

// AsDiagnostics extracts diagnostics from an error returned by the lexer.
// It accepts a DiagnosticList or any error chain holding a *Diagnostic.
func AsDiagnostics(err error) ([]Diagnostic, bool) {
	if err == nil {
		return nil, false
	}
	var list DiagnosticList
	if errors.As(err, &list) {
		return []Diagnostic(list), true
	}
	var listPtr *DiagnosticList
	if errors.As(err, &listPtr) && listPtr != nil {
		return []Diagnostic(*listPtr), true
	}
	var single *Diagnostic
	if errors.As(err, &single) && single != nil {
		return []Diagnostic{*single}, true
	}
	return nil, false
}
