// Package policy loads diagnostic policies from YAML files.
//
// A policy file looks like:
//
//	default: warn
//	restricted_chars: strip
//	max_diagnostics: 100
//	severity:
//	  double-hyphen-in-comment: ignore
//	  premature-end-of-input: fail
package policy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"gopkg.in/yaml.v3"

	xmlerrors "github.com/jacoelho/xmllex/errors"
	"github.com/jacoelho/xmllex/internal/xiter"
	"github.com/jacoelho/xmllex/pkg/xmltok"
)

// File is the decoded form of a policy file. Unset fields leave the lexer
// defaults in place.
type File struct {
	Default        *xmltok.Severity           `yaml:"default"`
	Restricted     *xmltok.RestrictedMode     `yaml:"restricted_chars"`
	MaxDiagnostics *int                       `yaml:"max_diagnostics"`
	Severity       map[string]xmltok.Severity `yaml:"severity"`
}

// Load reads and parses the policy file at path.
func Load(path string) (xmltok.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return xmltok.Options{}, fmt.Errorf("failed to read policy: %w", err)
	}
	opts, err := Parse(data)
	if err != nil {
		return xmltok.Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// Parse decodes a policy document into lexer options. Unknown keys and
// unknown diagnostic codes are rejected.
func Parse(data []byte) (xmltok.Options, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return xmltok.Options{}, fmt.Errorf("failed to parse policy: %w", err)
	}
	return f.Options()
}

// Options converts the file into lexer options.
func (f File) Options() (xmltok.Options, error) {
	var opts []xmltok.Options
	if f.Default != nil {
		opts = append(opts, xmltok.DefaultSeverity(*f.Default))
	}
	if f.Restricted != nil {
		opts = append(opts, xmltok.RestrictedChars(*f.Restricted))
	}
	if f.MaxDiagnostics != nil {
		opts = append(opts, xmltok.MaxDiagnostics(*f.MaxDiagnostics))
	}
	for name := range xiter.SortedKeys(f.Severity) {
		code := xmlerrors.ErrorCode(name)
		if !code.Known() {
			return xmltok.Options{}, unknownCode(name)
		}
		opts = append(opts, xmltok.WithSeverity(code, f.Severity[name]))
	}
	return xmltok.JoinOptions(opts...), nil
}

func unknownCode(name string) error {
	if hint := Suggest(name); hint != "" {
		return fmt.Errorf("unknown diagnostic code %q (did you mean %q?)", name, hint)
	}
	return fmt.Errorf("unknown diagnostic code %q", name)
}

// Suggest returns the known diagnostic code closest to name, or "".
func Suggest(name string) string {
	codes := xmlerrors.Codes()
	targets := make([]string, len(codes))
	for i, code := range codes {
		targets[i] = string(code)
	}
	ranks := fuzzy.RankFindNormalizedFold(name, targets)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDistance := "", len(name)/2+1
	for _, target := range targets {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(name), target); d < bestDistance {
			best, bestDistance = target, d
		}
	}
	return best
}
