package xmltok

import (
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func lex(t *testing.T, input string, opts ...Options) ([]Token, *Lexer) {
	t.Helper()
	l := New(strings.NewReader(input), opts...)
	toks, err := l.Collect()
	if err != nil {
		t.Fatalf("Collect(%q) error = %v", input, err)
	}
	if _, err := l.Next(); err != io.EOF {
		t.Fatalf("Next after end = %v, want io.EOF", err)
	}
	return toks, l
}

func render(toks []Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.String()
	}
	return out
}

func expectTokens(t *testing.T, input string, want []string, opts ...Options) []Token {
	t.Helper()
	toks, _ := lex(t, input, opts...)
	if got := render(toks); !slices.Equal(got, want) {
		t.Fatalf("tokens(%q) =\n%v\nwant\n%v\n%s", input, got, want, spew.Sdump(toks))
	}
	return toks
}
