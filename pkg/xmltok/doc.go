// Package xmltok splits a stream of Unicode characters into XML 1.1 lexical
// tokens: markup delimiters, names, literals, references, comments, CDATA
// sections and DOCTYPE/DTD declaration keywords.
//
// A Lexer is pull-based. Each call to Next consumes at least one character and
// returns exactly one token, or io.EOF once input is exhausted. Malformed
// input never stops the lexer: problems are reported as diagnostics whose
// severity is configured through Options, and only a SeverityFail diagnostic
// ends iteration with a *SyntaxError.
package xmltok
