package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jacoelho/xmllex"
	"github.com/jacoelho/xmllex/internal/policy"
	"github.com/jacoelho/xmllex/pkg/xmltok"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xmltok", flag.ContinueOnError)
	fs.SetOutput(stderr)
	policyPath := fs.String("policy", "", "path to a YAML diagnostic policy")
	strict := fs.Bool("strict", false, "stop at the first diagnostic")
	strip := fs.Bool("strip", false, "remove restricted characters from token text")
	format := fs.String("format", "text", "output format: text or dump")
	interactive := fs.Bool("i", false, "tokenize lines typed at a prompt")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [options] [file.xml ...]\n\n", fs.Name()),
			writeln(stderr, "Prints the XML tokens of each file, or of standard input."),
			writeln(stderr, "Gzip and zstd compressed files are read transparently."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	printer, ok := printers[*format]
	if !ok {
		if err := writef(stderr, "error: unknown format %q\n", *format); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}

	var lexOpts []xmltok.Options
	if *policyPath != "" {
		opts, err := policy.Load(*policyPath)
		if err != nil {
			if writeErr := writef(stderr, "error loading policy: %v\n", err); writeErr != nil {
				return 1
			}
			return 1
		}
		lexOpts = append(lexOpts, opts)
	}
	if *strict {
		lexOpts = append(lexOpts, xmltok.Strict())
	}
	if *strip {
		lexOpts = append(lexOpts, xmltok.RestrictedChars(xmltok.RestrictedStrip))
	}
	opts := xmllex.NewLexOptions().WithLexer(lexOpts...)

	if *interactive {
		return startInteractive(stdout, stderr, opts, printer)
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	status := 0
	for _, path := range paths {
		if code := tokenizeOne(path, stdin, stdout, stderr, opts, printer); code > status {
			status = code
		}
	}
	return status
}

func tokenizeOne(path string, stdin io.Reader, stdout, stderr io.Writer, opts xmllex.LexOptions, printer printFunc) int {
	var (
		res xmllex.Result
		err error
	)
	if path == "-" {
		res, err = xmllex.Tokenize(stdin, opts)
	} else {
		res, err = xmllex.TokenizeFile(path, opts)
	}
	if printErr := printer(stdout, res.Tokens); printErr != nil {
		return 1
	}
	for _, d := range res.Diagnostics {
		if writeErr := writef(stderr, "%s: %s\n", path, d.Error()); writeErr != nil {
			return 1
		}
	}
	if err != nil {
		if writeErr := writef(stderr, "%s: %v\n", path, err); writeErr != nil {
			return 1
		}
		return 1
	}
	return 0
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
