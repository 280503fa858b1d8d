package xmltok

import (
	"errors"
	"io"
	"iter"
	"slices"
	"strings"

	xmlerrors "github.com/jacoelho/xmllex/errors"
	"github.com/jacoelho/xmllex/internal/lookahead"
	"github.com/jacoelho/xmllex/internal/xiter"
	"github.com/jacoelho/xmllex/pkg/xmlchars"
)

// Lexer produces XML tokens from a rune stream. It owns its input for its
// whole lifetime and is not safe for concurrent use.
type Lexer struct {
	src     *lookahead.Source
	err     error
	failure *xmlerrors.Diagnostic
	opts    Options
	diags   []xmlerrors.Diagnostic
	faults  []lookahead.Fault
	code    xmlerrors.ErrorCode
	dropped int
	state   State
	// litParent is restored when the quoted literal closes.
	litParent State
	// prologParent is restored by the "?>" ending an XML declaration.
	prologParent State
	// declParent is restored by '>' ending a markup declaration.
	declParent State
	// extParent is the state that switched to StateInExternalID.
	extParent State
	quote     rune
}

// New creates a lexer reading Unicode scalar values from r.
func New(r io.RuneReader, opts ...Options) *Lexer {
	l := &Lexer{
		src:  lookahead.New(r),
		opts: JoinOptions(opts...),
	}
	if r == nil {
		l.err = errNilReader
	}
	return l
}

// Options returns the options snapshot the lexer was created with.
func (l *Lexer) Options() Options {
	var zero Options
	if l == nil {
		return zero
	}
	return l.opts
}

// State reports the current lexing context and, for quoted contexts, the
// quote character that closes it.
func (l *Lexer) State() (State, rune) {
	if l.state.quoted() {
		return l.state, l.quote
	}
	return l.state, 0
}

// Pos reports the position of the next unread character.
func (l *Lexer) Pos() (line, column int) {
	return l.src.Pos()
}

// Diagnostics returns the diagnostics recorded so far in document order.
func (l *Lexer) Diagnostics() []xmlerrors.Diagnostic {
	out := make([]xmlerrors.Diagnostic, len(l.diags))
	copy(out, l.diags)
	return out
}

// DroppedDiagnostics reports how many diagnostics exceeded MaxDiagnostics.
func (l *Lexer) DroppedDiagnostics() int {
	return l.dropped
}

// Next returns the next token. At end of input it returns io.EOF, and keeps
// returning io.EOF on every later call. Any other error is a *SyntaxError and
// is also returned on every later call.
func (l *Lexer) Next() (Token, error) {
	if l == nil {
		return Token{}, errNilLexer
	}
	if l.err != nil {
		return Token{}, l.err
	}
	l.code = ""
	l.failure = nil
	for {
		line, column := l.src.Pos()
		tok, err := l.scan()
		l.flushFaults()
		if l.failure != nil {
			l.err = &SyntaxError{Line: l.failure.Line, Column: l.failure.Column, Err: l.failure}
			return Token{}, l.err
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.err = io.EOF
				return Token{}, io.EOF
			}
			l.err = &SyntaxError{Line: line, Column: column, Err: err}
			return Token{}, l.err
		}
		if tok.Kind == KindNone {
			continue
		}
		tok.Line = line
		tok.Column = column
		tok.Code = l.code
		return tok, nil
	}
}

// All returns an iterator over the remaining tokens. Iteration stops at end
// of input or after yielding the first error.
func (l *Lexer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := l.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

// Collect reads every remaining token. It returns the tokens read before the
// first failure together with that failure.
func (l *Lexer) Collect() ([]Token, error) {
	var err error
	out := slices.Collect(xiter.Until(l.All(), &err))
	return out, err
}

func (l *Lexer) report(code xmlerrors.ErrorCode, line, column int, actual, format string, args ...any) {
	severity := l.opts.Severity(code)
	if severity == SeverityIgnore {
		return
	}
	d := xmlerrors.NewDiagnosticf(code, format, args...)
	d.Actual = actual
	d.Line = line
	d.Column = column
	if l.code == "" {
		l.code = code
	}
	if l.opts.maxDiagnostics <= 0 || len(l.diags) < l.opts.maxDiagnostics {
		l.diags = append(l.diags, d)
	} else {
		l.dropped++
	}
	if l.opts.onDiagnostic != nil {
		l.opts.onDiagnostic(d)
	}
	if severity == SeverityFail && l.failure == nil {
		l.failure = &d
	}
}

// reportHere reports a diagnostic at the current position.
func (l *Lexer) reportHere(code xmlerrors.ErrorCode, actual, format string, args ...any) {
	line, column := l.src.Pos()
	l.report(code, line, column, actual, format, args...)
}

// flushFaults diagnoses restricted characters that lie before the cursor.
// Faults seen only through lookahead wait until they are consumed.
func (l *Lexer) flushFaults() {
	l.faults = append(l.faults, l.src.TakeFaults()...)
	if len(l.faults) == 0 {
		return
	}
	line, column := l.src.Pos()
	kept := l.faults[:0]
	for _, f := range l.faults {
		if f.Line > line || (f.Line == line && f.Column >= column) {
			kept = append(kept, f)
			continue
		}
		l.report(xmlerrors.ErrRestrictedChar, f.Line, f.Column, string(f.R),
			"restricted character U+%04X", f.R)
	}
	l.faults = kept
}

// clean applies the restricted character mode to token text.
func (l *Lexer) clean(text string) string {
	if l.opts.restricted != RestrictedStrip {
		return text
	}
	if strings.IndexFunc(text, isRestricted) < 0 {
		return text
	}
	return strings.Map(func(r rune) rune {
		if isRestricted(r) {
			return -1
		}
		return r
	}, text)
}

func isRestricted(r rune) bool {
	return !xmlchars.IsValidChar(r)
}

// prematureEOF diagnoses input that ended inside a construct. The lexer
// falls back to StateOutsideTag so end of input is reported only once.
func (l *Lexer) prematureEOF(actual, format string, args ...any) {
	l.reportHere(xmlerrors.ErrPrematureEOF, actual, format, args...)
	l.state = StateOutsideTag
}

func (l *Lexer) scan() (Token, error) {
	line, column := l.src.Pos()
	c, err := l.src.ReadChar()
	if err != nil {
		if errors.Is(err, io.EOF) && l.state != StateOutsideTag {
			l.prematureEOF("", "end of input in %s context", l.state)
		}
		return Token{}, err
	}
	if c.Restricted && l.state != StateOutsideTag && !l.state.quoted() {
		// the fault is diagnosed by flushFaults
		if l.opts.restricted == RestrictedStrip {
			return Token{}, nil
		}
		return Token{Kind: KindError, Text: string(c.R)}, nil
	}
	switch {
	case l.state.quoted():
		return l.scanLiteral(c.R, line, column)
	case l.state == StateOutsideTag:
		return l.scanContent(c.R, line, column)
	case l.state == StateInStartTag:
		return l.scanStartTag(c.R, line, column)
	case l.state == StateInProlog:
		return l.scanProlog(c.R, line, column)
	default:
		return l.scanDeclaration(c.R, line, column)
	}
}

func (l *Lexer) scanContent(r rune, line, column int) (Token, error) {
	switch {
	case r == '<':
		return l.scanMarkup()
	case r == '&':
		return l.scanReference(line, column)
	case xmlchars.IsWhitespace(r):
		return l.scanWhitespace(r)
	case xmlchars.IsNameStartChar(r):
		return l.scanName(r)
	}
	rest, _, err := l.readText(func(r rune) bool { return r == '<' || r == '&' })
	return textToken(KindText, l.clean(string(r)+rest)), err
}

// textToken returns a KindNone token for empty text so the caller moves on.
func textToken(kind Kind, text string) Token {
	if text == "" {
		return Token{}
	}
	return Token{Kind: kind, Text: text}
}

func (l *Lexer) scanStartTag(r rune, line, column int) (Token, error) {
	switch {
	case xmlchars.IsWhitespace(r):
		return l.scanWhitespace(r)
	case xmlchars.IsNameStartChar(r):
		return l.scanName(r)
	}
	switch r {
	case '=':
		return Token{Kind: KindEq, Text: "="}, nil
	case '\'', '"':
		l.openLiteral(StateAttlist, r)
		return Token{Kind: KindQuote, Text: string(r)}, nil
	case '>':
		l.state = StateOutsideTag
		return Token{Kind: KindGreaterBracket, Text: ">"}, nil
	case '/':
		ok, err := l.matchLiteral(">")
		if err != nil {
			return Token{}, err
		}
		if ok {
			l.state = StateOutsideTag
			return Token{Kind: KindEmptyTagEnd, Text: "/>"}, nil
		}
	case '<':
		return l.scanMarkup()
	}
	return l.illegal(r, line, column, "in tag")
}

func (l *Lexer) scanProlog(r rune, line, column int) (Token, error) {
	switch {
	case xmlchars.IsWhitespace(r):
		return l.scanWhitespace(r)
	case xmlchars.IsNameStartChar(r):
		return l.scanName(r)
	}
	switch r {
	case '=':
		return Token{Kind: KindEq, Text: "="}, nil
	case '\'', '"':
		return l.scanQuotedString(r)
	case '?':
		ok, err := l.matchLiteral(">")
		if err != nil {
			return Token{}, err
		}
		if ok {
			l.state = l.prologParent
			return Token{Kind: KindPrologEnd, Text: "?>"}, nil
		}
	case '<':
		return l.scanMarkup()
	}
	return l.illegal(r, line, column, "in XML declaration")
}

// illegal turns an unexpected character into an Error token.
func (l *Lexer) illegal(r rune, line, column int, where string) (Token, error) {
	l.report(xmlerrors.ErrIllegalChar, line, column, string(r), "unexpected character %q %s", r, where)
	return Token{Kind: KindError, Text: string(r)}, nil
}

func (l *Lexer) openLiteral(state State, quote rune) {
	l.litParent = l.state
	l.state = state
	l.quote = quote
}

func (l *Lexer) scanWhitespace(first rune) (Token, error) {
	rest, err := l.src.ReadWhile(xmlchars.IsWhitespace)
	return Token{Kind: KindWhiteSpace, Text: string(first) + rest}, err
}

func (l *Lexer) scanName(first rune) (Token, error) {
	rest, err := l.src.ReadWhile(xmlchars.IsNameChar)
	return nameToken(string(first) + rest), err
}

func (l *Lexer) scanNMToken(first rune) (Token, error) {
	rest, err := l.src.ReadWhile(xmlchars.IsNameChar)
	return Token{Kind: KindNMToken, Text: string(first) + rest}, err
}

// nameToken splits name at a single interior colon into a QName.
func nameToken(name string) Token {
	i := strings.IndexByte(name, ':')
	if i <= 0 || i == len(name)-1 || strings.IndexByte(name[i+1:], ':') >= 0 {
		return Token{Kind: KindName, Text: name}
	}
	return Token{Kind: KindQName, Text: name, Prefix: name[:i], Local: name[i+1:]}
}

// matchLiteral consumes lit if the input continues with it exactly.
// On mismatch the characters read are pushed back.
func (l *Lexer) matchLiteral(lit string) (bool, error) {
	cp := l.src.Checkpoint()
	got, err := l.src.ReadStr(len([]rune(lit)))
	if err != nil {
		return false, err
	}
	if got == lit {
		return true, nil
	}
	l.src.RewindTo(cp, got)
	return false, nil
}

// readText consumes characters until stop matches or input ends. Restricted
// characters never stop the run; they are kept or dropped per the
// restricted character mode. atEOF reports whether input ended the run.
func (l *Lexer) readText(stop func(rune) bool) (text string, atEOF bool, err error) {
	var b strings.Builder
	keep := func(r rune) bool { return !stop(r) }
	for {
		run, err := l.src.ReadWhile(keep)
		b.WriteString(run)
		if err != nil {
			return b.String(), false, err
		}
		cp := l.src.Checkpoint()
		c, err := l.src.ReadChar()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return b.String(), true, nil
			}
			return b.String(), false, err
		}
		if !c.Restricted {
			l.src.Unread(cp, c.R)
			return b.String(), false, nil
		}
		if l.opts.restricted != RestrictedStrip {
			b.WriteRune(c.R)
		}
	}
}
