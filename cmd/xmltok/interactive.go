package main

import (
	"errors"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/jacoelho/xmllex"
)

const prompt = "xml> "

// markupWords are offered by tab completion.
var markupWords = []string{
	"<!DOCTYPE", "<!ELEMENT", "<!ATTLIST", "<!ENTITY", "<!NOTATION",
	"<![CDATA[", "<!--", "<?xml", "#PCDATA", "#REQUIRED", "#IMPLIED", "#FIXED",
}

type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func startInteractive(stdout, stderr io.Writer, opts xmllex.LexOptions, printer printFunc) int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)
	return interact(line, stdout, stderr, opts, printer)
}

func complete(line string) []string {
	i := strings.LastIndexAny(line, " \t>")
	head, word := line[:i+1], line[i+1:]
	if word == "" {
		return nil
	}
	var out []string
	for _, w := range markupWords {
		if strings.HasPrefix(w, word) {
			out = append(out, head+w)
		}
	}
	return out
}

// interact tokenizes each line read from p until end of input or "exit".
func interact(p prompter, stdout, stderr io.Writer, opts xmllex.LexOptions, printer printFunc) int {
	if err := writeln(stdout, "Type XML to see its tokens. Ctrl+D or 'exit' quits."); err != nil {
		return 1
	}
	for {
		input, err := p.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				if writeErr := writeln(stdout, "^C"); writeErr != nil {
					return 1
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return 0
			}
			if writeErr := writef(stderr, "error reading input: %v\n", err); writeErr != nil {
				return 1
			}
			return 1
		}
		trimmed := strings.TrimSpace(input)
		if trimmed == "exit" || trimmed == "quit" {
			return 0
		}
		if trimmed == "" {
			continue
		}
		p.AppendHistory(input)
		res, err := xmllex.Tokenize(strings.NewReader(input), opts)
		if printErr := printer(stdout, res.Tokens); printErr != nil {
			return 1
		}
		for _, d := range res.Diagnostics {
			if writeErr := writeln(stdout, d.Error()); writeErr != nil {
				return 1
			}
		}
		if err != nil {
			if writeErr := writef(stdout, "error: %v\n", err); writeErr != nil {
				return 1
			}
		}
	}
}
