package xmltok

import (
	"fmt"

	xmlerrors "github.com/jacoelho/xmllex/errors"
)

// Token is one lexical token. Tokens are plain values and retain nothing
// from the lexer.
//
// Text holds the name for Name, QName, NMToken, Ref and ParRef tokens; the body for
// Text, WhiteSpace, CData, Comment, QuotedString and PI tokens; the consumed
// source text for delimiters, CharRef and Error tokens.
type Token struct {
	Text   string
	Prefix string // QName only
	Local  string // QName only
	Target string // PI only
	Code   xmlerrors.ErrorCode
	Line   int
	Column int
	Rune   rune // CharRef only
	Kind   Kind
}

// String renders the token compactly, e.g. Name("a") or CharRef('#').
func (t Token) String() string {
	switch t.Kind {
	case KindQName:
		return fmt.Sprintf("QName(%q,%q)", t.Prefix, t.Local)
	case KindCharRef:
		return fmt.Sprintf("CharRef(%q)", t.Rune)
	case KindPI:
		return fmt.Sprintf("PI(%q,%q)", t.Target, t.Text)
	case KindName, KindNMToken, KindText, KindWhiteSpace, KindCData, KindComment,
		KindRef, KindParRef, KindQuotedString, KindError:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}

// Diagnosed reports whether a diagnostic was raised while producing the token.
func (t Token) Diagnosed() bool {
	return t.Code != ""
}
