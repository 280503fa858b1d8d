package main

import (
	"io"

	"github.com/davecgh/go-spew/spew"

	"github.com/jacoelho/xmllex/pkg/xmltok"
)

type printFunc func(w io.Writer, tokens []xmltok.Token) error

var printers = map[string]printFunc{
	"text": printText,
	"dump": printDump,
}

// printText writes one token per line as "line:column token".
func printText(w io.Writer, tokens []xmltok.Token) error {
	for _, tok := range tokens {
		if err := writef(w, "%d:%d\t%s\n", tok.Line, tok.Column, tok); err != nil {
			return err
		}
	}
	return nil
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// printDump writes every token field.
func printDump(w io.Writer, tokens []xmltok.Token) error {
	for _, tok := range tokens {
		dumpConfig.Fdump(w, tok)
	}
	return nil
}
