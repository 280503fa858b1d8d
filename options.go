package xmllex

import (
	"io"

	"github.com/jacoelho/xmllex/pkg/xmltok"
)

// LexOptions configures input decoding and tokenization.
type LexOptions struct {
	lexer         xmltok.Options
	charsetReader func(label string, r io.Reader) (io.Reader, error)
}

// NewLexOptions returns the default options: UTF-8 and UTF-16 input, every
// diagnostic at SeverityWarn, restricted characters passed through.
func NewLexOptions() LexOptions {
	return LexOptions{}
}

// WithLexer merges lexer options into o. Later values win.
func (o LexOptions) WithLexer(opts ...xmltok.Options) LexOptions {
	o.lexer = xmltok.JoinOptions(append([]xmltok.Options{o.lexer}, opts...)...)
	return o
}

// WithCharsetReader sets a decoder for encodings other than UTF-8. It is
// called with the label from the XML declaration. Returning a nil reader
// falls back to the built-in IANA decoders.
func (o LexOptions) WithCharsetReader(fn func(label string, r io.Reader) (io.Reader, error)) LexOptions {
	o.charsetReader = fn
	return o
}

// Lexer returns the lexer options embedded in o.
func (o LexOptions) Lexer() xmltok.Options {
	return o.lexer
}
