package xmltok

import (
	"errors"
	"io"
	"strconv"

	xmlerrors "github.com/jacoelho/xmllex/errors"
	"github.com/jacoelho/xmllex/pkg/xmlchars"
)

// scanLiteral lexes inside Attlist, TypeAttlist and EntityList. The literal
// stays open across references; only the matching quote closes it.
func (l *Lexer) scanLiteral(r rune, line, column int) (Token, error) {
	entity := l.state == StateEntityList
	switch {
	case r == l.quote:
		l.state = l.litParent
		l.quote = 0
		return Token{Kind: KindQuote, Text: string(r)}, nil
	case r == '&':
		return l.scanReference(line, column)
	case r == '%' && entity:
		return l.scanParamRef()
	case r == '<' && !entity:
		return l.illegal(r, line, column, "in attribute value")
	}
	quote := l.quote
	rest, atEOF, err := l.readText(func(r rune) bool {
		if r == quote || r == '&' {
			return true
		}
		if entity {
			return r == '%'
		}
		return r == '<'
	})
	if err != nil {
		return Token{}, err
	}
	if atEOF {
		l.prematureEOF(string(quote), "unterminated literal")
	}
	return textToken(KindText, l.clean(string(r)+rest)), nil
}

// scanQuotedString reads a whole quoted literal after its opening quote.
func (l *Lexer) scanQuotedString(quote rune) (Token, error) {
	text, atEOF, err := l.readText(func(r rune) bool { return r == quote })
	if err != nil {
		return Token{}, err
	}
	if atEOF {
		l.prematureEOF(string(quote), "unterminated quoted string")
	} else if _, err := l.src.ReadChar(); err != nil {
		return Token{}, err
	}
	return Token{Kind: KindQuotedString, Text: text}, nil
}

// scanReference runs after the '&' at line, column has been consumed.
func (l *Lexer) scanReference(line, column int) (Token, error) {
	c, err := l.src.PeekChar()
	if err != nil {
		if errors.Is(err, io.EOF) {
			l.prematureEOF("&", "end of input after '&'")
			return Token{Kind: KindError, Text: "&"}, nil
		}
		return Token{}, err
	}
	if c.R == '#' {
		_, _ = l.src.ReadChar()
		return l.scanCharRef()
	}
	if !xmlchars.IsNameStartChar(c.R) || c.Restricted {
		l.report(xmlerrors.ErrIllegalChar, line, column, "&", "expected name or '#' after '&'")
		return Token{Kind: KindError, Text: "&"}, nil
	}
	name, err := l.src.ReadWhile(xmlchars.IsNameChar)
	if err != nil {
		return Token{}, err
	}
	if _, err := l.expectSemicolon("&" + name); err != nil {
		return Token{}, err
	}
	return Token{Kind: KindRef, Text: name}, nil
}

// scanParamRef runs after '%' has been consumed.
func (l *Lexer) scanParamRef() (Token, error) {
	c, err := l.src.PeekChar()
	if err != nil && !errors.Is(err, io.EOF) {
		return Token{}, err
	}
	if err != nil || c.Restricted || !xmlchars.IsNameStartChar(c.R) {
		if l.state == StateInEntityType {
			return Token{Kind: KindPercent, Text: "%"}, nil
		}
		if err != nil {
			l.prematureEOF("%", "end of input after %q", "%")
			return Token{Kind: KindError, Text: "%"}, nil
		}
		l.reportHere(xmlerrors.ErrIllegalChar, "%", "expected name after %q", "%")
		return Token{Kind: KindError, Text: "%"}, nil
	}
	name, err := l.src.ReadWhile(xmlchars.IsNameChar)
	if err != nil {
		return Token{}, err
	}
	if _, err := l.expectSemicolon("%" + name); err != nil {
		return Token{}, err
	}
	return Token{Kind: KindParRef, Text: name}, nil
}

// expectSemicolon consumes the ';' ending a reference and reports whether it
// was there. A missing ';' is diagnosed and tolerated.
func (l *Lexer) expectSemicolon(ref string) (bool, error) {
	ok, err := l.matchLiteral(";")
	if err != nil || ok {
		return ok, err
	}
	if l.src.AtEOF() {
		l.reportHere(xmlerrors.ErrPrematureEOF, ref, "end of input before ';' of reference")
		return false, nil
	}
	l.reportHere(xmlerrors.ErrIllegalChar, ref, "missing ';' after reference")
	return false, nil
}

// scanCharRef runs after "&#" has been consumed.
func (l *Lexer) scanCharRef() (Token, error) {
	line, column := l.src.Pos()
	raw := "&#"
	base := 10
	digit := xmlchars.IsDigit
	hex, err := l.matchLiteral("x")
	if err != nil {
		return Token{}, err
	}
	if hex {
		raw += "x"
		base = 16
		digit = xmlchars.IsHexDigit
	}
	digits, err := l.src.ReadWhile(digit)
	if err != nil {
		return Token{}, err
	}
	raw += digits
	semi, err := l.expectSemicolon(raw)
	if err != nil {
		return Token{}, err
	}
	if semi {
		raw += ";"
	}
	value, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		l.report(xmlerrors.ErrNumParsing, line, column, raw, "invalid character reference digits %q", digits)
		return Token{Kind: KindError, Text: raw}, nil
	}
	r := rune(value)
	if !xmlchars.IsChar(r) {
		l.report(xmlerrors.ErrCharParsing, line, column, raw, "character reference U+%04X is not an XML character", value)
		return Token{Kind: KindError, Text: raw}, nil
	}
	return Token{Kind: KindCharRef, Text: raw, Rune: r}, nil
}

// scanDeclaration lexes the DOCTYPE states: InDoctype, InternalSubset,
// InExternalId and the four markup declaration bodies.
func (l *Lexer) scanDeclaration(r rune, line, column int) (Token, error) {
	switch {
	case xmlchars.IsWhitespace(r):
		return l.scanWhitespace(r)
	case xmlchars.IsNameStartChar(r):
		tok, err := l.scanName(r)
		if tok.Kind == KindName && (tok.Text == "SYSTEM" || tok.Text == "PUBLIC") {
			switch l.state {
			case StateInDoctype, StateInEntityType, StateInNotationType:
				l.extParent = l.state
				l.state = StateInExternalID
			}
		}
		return tok, err
	case xmlchars.IsNameChar(r):
		return l.scanNMToken(r)
	}
	switch r {
	case '<':
		return l.scanMarkup()
	case '>':
		if l.state == StateInternalSubset {
			return l.illegal(r, line, column, "in internal subset")
		}
		l.state = l.closeDeclaration()
		return Token{Kind: KindGreaterBracket, Text: ">"}, nil
	case '%':
		return l.scanParamRef()
	case '#':
		return l.scanHash()
	case '[':
		if l.state == StateInDoctype || (l.state == StateInExternalID && l.extParent == StateInDoctype) {
			l.state = StateInternalSubset
		}
		return Token{Kind: KindLeftSqBracket, Text: "["}, nil
	case ']':
		if l.state != StateInternalSubset {
			return Token{Kind: KindRightSqBracket, Text: "]"}, nil
		}
		closing, err := l.matchLiteral("]>")
		if err != nil {
			return Token{}, err
		}
		if closing {
			return Token{Kind: KindDoctypeClose, Text: "]]>"}, nil
		}
		l.state = StateInDoctype
		return Token{Kind: KindRightSqBracket, Text: "]"}, nil
	case '\'', '"':
		switch l.state {
		case StateInEntityType:
			l.openLiteral(StateEntityList, r)
			return Token{Kind: KindQuote, Text: string(r)}, nil
		case StateInAttlistType:
			l.openLiteral(StateTypeAttlist, r)
			return Token{Kind: KindQuote, Text: string(r)}, nil
		case StateInDoctype, StateInExternalID, StateInNotationType:
			return l.scanQuotedString(r)
		}
	}
	if kind, ok := delimiterKinds[r]; ok && l.state != StateInternalSubset && l.state != StateInDoctype {
		return Token{Kind: kind, Text: string(r)}, nil
	}
	return l.illegal(r, line, column, "in DOCTYPE declaration")
}

// closeDeclaration returns the state that follows '>' in a DOCTYPE state.
func (l *Lexer) closeDeclaration() State {
	switch l.state {
	case StateInDoctype:
		return StateOutsideTag
	case StateInExternalID:
		if l.extParent == StateInDoctype {
			return StateOutsideTag
		}
		return l.declParent
	default:
		return l.declParent
	}
}
