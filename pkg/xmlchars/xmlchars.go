package xmlchars

import (
	"unicode"
	"unicode/utf8"
)

var nameStartByteLUT = [utf8.RuneSelf]bool{
	':': true,
	'A': true, 'B': true, 'C': true, 'D': true, 'E': true, 'F': true, 'G': true,
	'H': true, 'I': true, 'J': true, 'K': true, 'L': true, 'M': true, 'N': true,
	'O': true, 'P': true, 'Q': true, 'R': true, 'S': true, 'T': true, 'U': true,
	'V': true, 'W': true, 'X': true, 'Y': true, 'Z': true,
	'_': true,
	'a': true, 'b': true, 'c': true, 'd': true, 'e': true, 'f': true, 'g': true,
	'h': true, 'i': true, 'j': true, 'k': true, 'l': true, 'm': true, 'n': true,
	'o': true, 'p': true, 'q': true, 'r': true, 's': true, 't': true, 'u': true,
	'v': true, 'w': true, 'x': true, 'y': true, 'z': true,
}

var nameByteLUT = func() [utf8.RuneSelf]bool {
	lut := nameStartByteLUT
	for _, b := range []byte("-.0123456789") {
		lut[b] = true
	}
	return lut
}()

var pubidByteLUT = func() [utf8.RuneSelf]bool {
	var lut [utf8.RuneSelf]bool
	for b := byte('a'); b <= 'z'; b++ {
		lut[b] = true
		lut[b-'a'+'A'] = true
	}
	for b := byte('0'); b <= '9'; b++ {
		lut[b] = true
	}
	for _, b := range []byte(" \r\n-'()+,./:=?;!*#@$_%") {
		lut[b] = true
	}
	return lut
}()

// IsWhitespace reports whether r matches the S production (space, tab, CR, LF).
func IsWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// IsNameStartChar reports whether r may start an XML name.
func IsNameStartChar(r rune) bool {
	if r < utf8.RuneSelf {
		return r >= 0 && nameStartByteLUT[r]
	}
	return unicode.Is(nameStartTable, r)
}

// IsNameChar reports whether r may continue an XML name.
// Every name start character is also a name character.
func IsNameChar(r rune) bool {
	if r < utf8.RuneSelf {
		return r >= 0 && nameByteLUT[r]
	}
	return unicode.Is(nameCharTable, r)
}

// IsDigit reports whether r is an ASCII decimal digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsHexDigit reports whether r is an ASCII hexadecimal digit.
func IsHexDigit(r rune) bool {
	return IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// IsPubidChar reports whether r may appear in a public identifier literal.
func IsPubidChar(r rune) bool {
	return r >= 0 && r < utf8.RuneSelf && pubidByteLUT[r]
}

// IsEncodingStartChar reports whether r may start an encoding name.
func IsEncodingStartChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// IsEncodingChar reports whether r may continue an encoding name.
func IsEncodingChar(r rune) bool {
	return IsEncodingStartChar(r) || IsDigit(r) || r == '.' || r == '_' || r == '-'
}

// IsChar reports whether r matches the XML 1.1 Char production,
// restricted characters included.
func IsChar(r rune) bool {
	switch {
	case r >= 0x1 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= utf8.MaxRune:
		return true
	default:
		return false
	}
}

// IsRestrictedChar reports whether r is a decodable character that XML 1.1
// allows only through character references, or one of the discouraged
// noncharacters U+nFFFE / U+nFFFF of the supplementary planes.
func IsRestrictedChar(r rune) bool {
	switch {
	case r >= 0x1 && r <= 0x8:
		return true
	case r == 0xB || r == 0xC:
		return true
	case r >= 0xE && r <= 0x1F:
		return true
	case r >= 0x7F && r <= 0x84:
		return true
	case r >= 0x86 && r <= 0x9F:
		return true
	case r >= 0x1FFFE && r <= utf8.MaxRune:
		low := r & 0xFFFF
		return low == 0xFFFE || low == 0xFFFF
	default:
		return false
	}
}

// IsValidChar reports whether r may appear literally in a document:
// it matches Char and is not restricted.
func IsValidChar(r rune) bool {
	return IsChar(r) && !IsRestrictedChar(r)
}
