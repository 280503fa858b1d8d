// Package lookahead provides a rewindable cursor over a stream of Unicode
// scalar values with XML newline normalization and line/column tracking.
package lookahead

import (
	"errors"
	"io"
	"strings"

	"github.com/jacoelho/xmllex/pkg/xmlchars"
)

const (
	nel = 0x85
	ls  = 0x2028
)

var errNilReader = errors.New("nil rune reader")

// Char is one logical character. Restricted is set for characters outside
// the literal XML character set; they are still delivered, never dropped.
type Char struct {
	R          rune
	Restricted bool
}

// Checkpoint is a saved position. Line is 1-based, Column 0-based.
type Checkpoint struct {
	Line   int
	Column int
}

// Fault records a restricted character at the position it was first read.
type Fault struct {
	R      rune
	Line   int
	Column int
}

// Source is a cursor over r. It is not safe for concurrent use.
type Source struct {
	r       io.RuneReader
	err     error
	pending []rune // stack: the last element is read first
	faults  []Fault
	held    rune
	line    int
	column  int
	hasHeld bool
	eof     bool
}

// New returns a Source positioned at line 1, column 0.
func New(r io.RuneReader) *Source {
	s := &Source{r: r, line: 1}
	if r == nil {
		s.err = errNilReader
	}
	return s
}

// Pos reports the current position.
func (s *Source) Pos() (line, column int) {
	return s.line, s.column
}

// Err returns the first non-EOF error reported by the underlying reader.
func (s *Source) Err() error {
	return s.err
}

// AtEOF reports whether the source is exhausted: the pending buffer is empty
// and the underlying reader has reported end of input.
func (s *Source) AtEOF() bool {
	return len(s.pending) == 0 && !s.hasHeld && s.eof
}

// TakeFaults returns the restricted characters read since the last call.
func (s *Source) TakeFaults() []Fault {
	if len(s.faults) == 0 {
		return nil
	}
	out := s.faults
	s.faults = nil
	return out
}

// ReadChar returns the next logical character. CR, CR LF, CR NEL, NEL and
// LINE SEPARATOR are all delivered as a single '\n'. At end of input it
// returns io.EOF; underlying read errors are returned as-is and are sticky.
func (s *Source) ReadChar() (Char, error) {
	if n := len(s.pending); n > 0 {
		r := s.pending[n-1]
		s.pending = s.pending[:n-1]
		s.advance(r)
		return Char{R: r, Restricted: !xmlchars.IsValidChar(r)}, nil
	}
	r, err := s.physical()
	if err != nil {
		return Char{}, err
	}
	switch r {
	case '\r':
		next, err := s.physical()
		switch {
		case err == nil && (next == '\n' || next == nel):
		case err == nil:
			s.held = next
			s.hasHeld = true
		case !errors.Is(err, io.EOF):
			return Char{}, err
		}
		r = '\n'
	case nel, ls:
		r = '\n'
	}
	restricted := !xmlchars.IsValidChar(r)
	if restricted {
		s.faults = append(s.faults, Fault{R: r, Line: s.line, Column: s.column})
	}
	s.advance(r)
	return Char{R: r, Restricted: restricted}, nil
}

func (s *Source) physical() (rune, error) {
	if s.hasHeld {
		s.hasHeld = false
		return s.held, nil
	}
	if s.err != nil {
		return 0, s.err
	}
	if s.eof {
		return 0, io.EOF
	}
	r, _, err := s.r.ReadRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.eof = true
			return 0, io.EOF
		}
		s.err = err
		return 0, err
	}
	return r, nil
}

func (s *Source) advance(r rune) {
	if r == '\n' {
		s.line++
		s.column = 0
		return
	}
	s.column++
}

// Checkpoint saves the current position.
func (s *Source) Checkpoint() Checkpoint {
	return Checkpoint{Line: s.line, Column: s.column}
}

// RewindTo restores the position saved in cp and pushes returned back so the
// next reads yield it again, in order, before anything else.
// returned must be exactly the text read since cp was taken.
func (s *Source) RewindTo(cp Checkpoint, returned string) {
	s.line = cp.Line
	s.column = cp.Column
	runes := []rune(returned)
	for i := len(runes) - 1; i >= 0; i-- {
		s.pending = append(s.pending, runes[i])
	}
}

// Unread pushes back a single character that was just read and restores the
// position it was read at.
func (s *Source) Unread(cp Checkpoint, r rune) {
	s.line = cp.Line
	s.column = cp.Column
	s.pending = append(s.pending, r)
}

// ReadStr reads up to n logical characters. A short result means end of
// input was reached.
func (s *Source) ReadStr(n int) (string, error) {
	var b strings.Builder
	for i := 0; i < n; i++ {
		c, err := s.ReadChar()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return b.String(), err
		}
		b.WriteRune(c.R)
	}
	return b.String(), nil
}

// PeekStr returns what ReadStr(n) would return without moving the cursor.
func (s *Source) PeekStr(n int) (string, error) {
	cp := s.Checkpoint()
	text, err := s.ReadStr(n)
	s.RewindTo(cp, text)
	return text, err
}

// PeekChar returns the next logical character without consuming it.
func (s *Source) PeekChar() (Char, error) {
	cp := s.Checkpoint()
	c, err := s.ReadChar()
	if err != nil {
		return Char{}, err
	}
	s.Unread(cp, c.R)
	return c, nil
}

// ReadWhile consumes the longest run of characters satisfying pred.
// Restricted characters never satisfy pred. The character that ends the run
// is pushed back. End of input ends the run without an error.
func (s *Source) ReadWhile(pred func(rune) bool) (string, error) {
	var b strings.Builder
	for {
		cp := s.Checkpoint()
		c, err := s.ReadChar()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return b.String(), nil
			}
			return b.String(), err
		}
		if c.Restricted || !pred(c.R) {
			s.Unread(cp, c.R)
			return b.String(), nil
		}
		b.WriteRune(c.R)
	}
}

// ReadUntil consumes characters up to and including the first occurrence of
// term and returns the text before it. If end of input comes first, it
// returns everything read and found is false.
func (s *Source) ReadUntil(term string) (text string, found bool, err error) {
	var b strings.Builder
	for {
		c, err := s.ReadChar()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return b.String(), false, nil
			}
			return b.String(), false, err
		}
		b.WriteRune(c.R)
		if strings.HasSuffix(b.String(), term) {
			out := b.String()
			return out[:len(out)-len(term)], true, nil
		}
	}
}
