// Package xmllex tokenizes XML 1.1 documents.
//
// It decodes the input according to its byte order mark or XML declaration
// and hands the characters to an xmltok.Lexer. Lexical problems are reported
// as diagnostics rather than errors unless the severity policy says otherwise.
package xmllex

import (
	"errors"
	"io"

	xmlerrors "github.com/jacoelho/xmllex/errors"
	"github.com/jacoelho/xmllex/internal/charset"
	"github.com/jacoelho/xmllex/pkg/xmltok"
)

// ErrUnsupportedEncoding is returned when the input declares an encoding
// that has no decoder.
var ErrUnsupportedEncoding = charset.ErrUnsupported

// NewLexer decodes r and returns a lexer over its characters.
func NewLexer(r io.Reader, opts LexOptions) (*xmltok.Lexer, error) {
	rr, err := charset.NewReader(r, opts.charsetReader)
	if err != nil {
		return nil, err
	}
	return xmltok.New(rr, opts.lexer), nil
}

// Result is the outcome of tokenizing a whole document.
type Result struct {
	Tokens      []xmltok.Token
	Diagnostics []xmlerrors.Diagnostic
}

// Tokenize reads every token from r. When a diagnostic with SeverityFail
// stops tokenization, the tokens read so far are returned with the error.
func Tokenize(r io.Reader, opts LexOptions) (Result, error) {
	lexer, err := NewLexer(r, opts)
	if err != nil {
		return Result{}, err
	}
	tokens, err := lexer.Collect()
	return Result{Tokens: tokens, Diagnostics: lexer.Diagnostics()}, err
}

// Err returns the diagnostics as an error, or nil when there are none.
func (r Result) Err() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	return xmlerrors.DiagnosticList(r.Diagnostics)
}

// IsSyntaxError reports whether err stopped tokenization inside the lexer.
func IsSyntaxError(err error) bool {
	var syntaxErr *xmltok.SyntaxError
	return errors.As(err, &syntaxErr)
}
