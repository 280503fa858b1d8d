package xmltok

import (
	"errors"
	"io"
	"strings"

	xmlerrors "github.com/jacoelho/xmllex/errors"
	"github.com/jacoelho/xmllex/pkg/xmlchars"
)

type keyword struct {
	lit   string
	kind  Kind
	state State
}

// declarationKeywords follow "<!". ELEMENT and ENTITY share a prefix and are
// told apart by trying each in turn.
var declarationKeywords = []keyword{
	{lit: "DOCTYPE", kind: KindDoctypeStart, state: StateInDoctype},
	{lit: "ELEMENT", kind: KindElementType, state: StateInElementType},
	{lit: "ENTITY", kind: KindEntityType, state: StateInEntityType},
	{lit: "ATTLIST", kind: KindAttlistType, state: StateInAttlistType},
	{lit: "NOTATION", kind: KindNotationType, state: StateInNotationType},
}

// hashKeywords follow '#'.
var hashKeywords = []keyword{
	{lit: "REQUIRED", kind: KindRequiredDecl},
	{lit: "IMPLIED", kind: KindImpliedDecl},
	{lit: "FIXED", kind: KindFixedDecl},
	{lit: "PCDATA", kind: KindPCDataDecl},
}

// scanMarkup runs after '<' has been consumed.
func (l *Lexer) scanMarkup() (Token, error) {
	c, err := l.src.PeekChar()
	if err != nil {
		if errors.Is(err, io.EOF) {
			l.prematureEOF("<", "end of input after '<'")
			return Token{Kind: KindError, Text: "<"}, nil
		}
		return Token{}, err
	}
	switch c.R {
	case '/':
		_, _ = l.src.ReadChar()
		l.state = StateInStartTag
		return Token{Kind: KindCloseTag, Text: "</"}, nil
	case '?':
		_, _ = l.src.ReadChar()
		return l.scanPI()
	case '!':
		_, _ = l.src.ReadChar()
		return l.scanBang()
	}
	if l.state.dtd() {
		l.reportHere(xmlerrors.ErrIllegalChar, "<", "element markup inside a DOCTYPE declaration")
		return Token{Kind: KindError, Text: "<"}, nil
	}
	l.state = StateInStartTag
	return Token{Kind: KindLessBracket, Text: "<"}, nil
}

// scanBang runs after "<!" has been consumed.
func (l *Lexer) scanBang() (Token, error) {
	comment, err := l.matchLiteral("--")
	if err != nil {
		return Token{}, err
	}
	if comment {
		return l.scanComment()
	}
	section, err := l.matchLiteral("[")
	if err != nil {
		return Token{}, err
	}
	if section {
		cdata, err := l.matchLiteral("CDATA[")
		if err != nil {
			return Token{}, err
		}
		if cdata {
			return l.scanCDATA()
		}
		return Token{Kind: KindDoctypeOpen, Text: "<!["}, nil
	}
	for _, kw := range declarationKeywords {
		ok, err := l.matchLiteral(kw.lit)
		if err != nil {
			return Token{}, err
		}
		if ok {
			l.enterDeclaration(kw.state)
			return Token{Kind: kw.kind, Text: "<!" + kw.lit}, nil
		}
	}
	l.reportHere(xmlerrors.ErrUnknownToken, "<!", "unknown markup declaration")
	return Token{Kind: KindError, Text: "<!"}, nil
}

func (l *Lexer) enterDeclaration(next State) {
	if next == StateInDoctype {
		l.state = next
		return
	}
	switch {
	case l.state.declaration() || l.state == StateInExternalID:
		// a declaration left unterminated keeps its parent
	case l.state == StateInternalSubset:
		l.declParent = StateInternalSubset
	default:
		l.declParent = StateOutsideTag
	}
	l.state = next
}

// scanComment runs after "<!--" has been consumed.
func (l *Lexer) scanComment() (Token, error) {
	line, column := l.src.Pos()
	body, found, err := l.src.ReadUntil("-->")
	if err != nil {
		return Token{}, err
	}
	if !found {
		l.prematureEOF("", "unterminated comment")
	}
	if strings.Contains(body, "--") || strings.HasSuffix(body, "-") {
		l.report(xmlerrors.ErrDoubleHyphenInComment, line, column, "--", "'--' inside comment")
	}
	return Token{Kind: KindComment, Text: l.clean(body)}, nil
}

// scanCDATA runs after "<![CDATA[" has been consumed.
func (l *Lexer) scanCDATA() (Token, error) {
	body, found, err := l.src.ReadUntil("]]>")
	if err != nil {
		return Token{}, err
	}
	if !found {
		l.prematureEOF("", "unterminated CDATA section")
	}
	return Token{Kind: KindCData, Text: l.clean(body)}, nil
}

// scanPI runs after "<?" has been consumed. A target equal to "xml" in any
// case opens the XML declaration; other targets yield a PI token.
func (l *Lexer) scanPI() (Token, error) {
	target, err := l.src.ReadWhile(xmlchars.IsNameChar)
	if err != nil {
		return Token{}, err
	}
	if strings.EqualFold(target, "xml") {
		next, err := l.src.PeekChar()
		if err != nil && !errors.Is(err, io.EOF) {
			return Token{}, err
		}
		if err != nil || xmlchars.IsWhitespace(next.R) || next.R == '?' {
			switch {
			case l.state.dtd():
				l.prologParent = l.state
			case l.state != StateInProlog:
				l.prologParent = StateOutsideTag
			}
			l.state = StateInProlog
			return Token{Kind: KindPrologStart, Text: "<?" + target}, nil
		}
	}
	if target == "" {
		l.reportHere(xmlerrors.ErrIllegalChar, "<?", "processing instruction without target")
	}
	data, found, err := l.src.ReadUntil("?>")
	if err != nil {
		return Token{}, err
	}
	if !found {
		l.prematureEOF("", "unterminated processing instruction")
	}
	data = strings.TrimLeftFunc(data, xmlchars.IsWhitespace)
	return Token{Kind: KindPI, Target: target, Text: l.clean(data)}, nil
}

// scanHash runs after '#' has been consumed.
func (l *Lexer) scanHash() (Token, error) {
	for _, kw := range hashKeywords {
		ok, err := l.matchLiteral(kw.lit)
		if err != nil {
			return Token{}, err
		}
		if ok {
			return Token{Kind: kw.kind, Text: "#" + kw.lit}, nil
		}
	}
	return Token{Kind: KindText, Text: "#"}, nil
}
