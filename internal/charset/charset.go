// Package charset turns an XML byte stream into a stream of Unicode scalar
// values. It honours byte order marks and the encoding pseudo-attribute of
// the XML declaration.
package charset

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jacoelho/xmllex/pkg/xmlchars"
)

// ErrUnsupported is returned for an encoding label that cannot be decoded.
var ErrUnsupported = errors.New("unsupported encoding")

// ReaderFunc returns a reader that converts r from the named encoding to UTF-8.
type ReaderFunc func(label string, r io.Reader) (io.Reader, error)

const maxDeclScan = 1024

// NewReader detects the encoding of r and returns a rune reader over the
// decoded text. When override is non-nil it is consulted before the built-in
// decoders for every non UTF-8 label.
func NewReader(r io.Reader, override ReaderFunc) (io.RuneReader, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	br := bufio.NewReader(r)
	if err := discardUTF8BOM(br); err != nil {
		return nil, err
	}
	label, err := Detect(br)
	if err != nil {
		return nil, err
	}
	if label == "" {
		return br, nil
	}
	if override != nil {
		decoded, err := override(label, br)
		if err != nil {
			return nil, err
		}
		if decoded != nil {
			return asRuneReader(decoded), nil
		}
	}
	enc, err := Lookup(label)
	if err != nil {
		return nil, err
	}
	return bufio.NewReader(transform.NewReader(br, enc.NewDecoder())), nil
}

func asRuneReader(r io.Reader) io.RuneReader {
	if rr, ok := r.(io.RuneReader); ok {
		return rr
	}
	return bufio.NewReader(r)
}

// Lookup resolves an encoding label. UTF-16 labels are mapped to decoders
// that honour or ignore the byte order mark as the label implies.
func Lookup(label string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-16":
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, label)
	}
	return enc, nil
}

func discardUTF8BOM(r *bufio.Reader) error {
	peek, err := r.Peek(3)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if len(peek) >= 3 && peek[0] == 0xEF && peek[1] == 0xBB && peek[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return nil
}

// Detect inspects the head of r without consuming it and returns the
// encoding label, or "" for UTF-8.
func Detect(r *bufio.Reader) (string, error) {
	peek, err := r.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", err
	}
	if len(peek) >= 2 {
		if (peek[0] == 0xFE && peek[1] == 0xFF) || (peek[0] == 0xFF && peek[1] == 0xFE) {
			return "utf-16", nil
		}
	}
	if len(peek) >= 4 {
		if bytes.Equal(peek[:4], []byte{0x00, 0x3C, 0x00, 0x3F}) {
			return "utf-16be", nil
		}
		if bytes.Equal(peek[:4], []byte{0x3C, 0x00, 0x3F, 0x00}) {
			return "utf-16le", nil
		}
	}
	return detectDeclEncoding(r)
}

func detectDeclEncoding(r *bufio.Reader) (string, error) {
	const prefix = "<?xml"
	peek, err := r.Peek(len(prefix))
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", err
	}
	if !bytes.Equal(peek, []byte(prefix)) {
		return "", nil
	}
	decl, err := r.Peek(maxDeclScan)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", err
	}
	end := bytes.Index(decl, []byte("?>"))
	if end < 0 {
		return "", nil
	}
	label := declEncoding(decl[len(prefix):end])
	if label == "" || isUTF8(label) {
		return "", nil
	}
	if !validEncName(label) {
		return "", fmt.Errorf("%w: malformed name %q", ErrUnsupported, label)
	}
	return label, nil
}

// validEncName checks label against [A-Za-z] ([A-Za-z0-9._] | '-')*.
func validEncName(label string) bool {
	for i, r := range label {
		if i == 0 && !xmlchars.IsEncodingStartChar(r) {
			return false
		}
		if !xmlchars.IsEncodingChar(r) {
			return false
		}
	}
	return true
}

// declEncoding returns the value of the encoding pseudo-attribute.
func declEncoding(data []byte) string {
	for {
		data = bytes.TrimLeft(data, " \t\r\n")
		if len(data) == 0 {
			return ""
		}
		i := 0
		for i < len(data) && data[i] < 0x80 && xmlchars.IsNameChar(rune(data[i])) {
			i++
		}
		if i == 0 {
			return ""
		}
		name := data[:i]
		data = bytes.TrimLeft(data[i:], " \t\r\n")
		if len(data) == 0 || data[0] != '=' {
			return ""
		}
		data = bytes.TrimLeft(data[1:], " \t\r\n")
		if len(data) == 0 || (data[0] != '\'' && data[0] != '"') {
			return ""
		}
		quote := data[0]
		data = data[1:]
		end := bytes.IndexByte(data, quote)
		if end < 0 {
			return ""
		}
		if bytes.EqualFold(name, []byte("encoding")) {
			return string(data[:end])
		}
		data = data[end+1:]
	}
}

func isUTF8(label string) bool {
	return strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8")
}
