// Package xmlchars classifies Unicode scalar values against the XML 1.1
// character productions (Char, RestrictedChar, NameStartChar, NameChar,
// PubidChar, EncName). Every predicate is a pure function of its argument.
package xmlchars
