package xmltok

import (
	"fmt"
	"strings"

	xmlerrors "github.com/jacoelho/xmllex/errors"
)

// Severity selects what the lexer does with a diagnostic.
type Severity uint8

const (
	// SeverityWarn records the diagnostic and tags the token. It is the default.
	SeverityWarn Severity = iota
	// SeverityIgnore discards the diagnostic.
	SeverityIgnore
	// SeverityFail stops tokenization with a *SyntaxError.
	SeverityFail
)

// String returns the lower-case name used in policy files.
func (s Severity) String() string {
	switch s {
	case SeverityWarn:
		return "warn"
	case SeverityIgnore:
		return "ignore"
	case SeverityFail:
		return "fail"
	default:
		return fmt.Sprintf("Severity(%d)", uint8(s))
	}
}

// UnmarshalText accepts "ignore", "warn" or "fail" in any case.
func (s *Severity) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "warn", "warning":
		*s = SeverityWarn
	case "ignore", "off":
		*s = SeverityIgnore
	case "fail", "error":
		*s = SeverityFail
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// RestrictedMode selects whether restricted characters stay in token text.
// They are diagnosed in both modes.
type RestrictedMode uint8

const (
	// RestrictedPassThrough keeps restricted characters in token text.
	RestrictedPassThrough RestrictedMode = iota
	// RestrictedStrip removes restricted characters from token text.
	RestrictedStrip
)

// String returns the lower-case name used in policy files.
func (m RestrictedMode) String() string {
	if m == RestrictedStrip {
		return "strip"
	}
	return "pass-through"
}

// UnmarshalText accepts "pass-through" or "strip".
func (m *RestrictedMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "pass-through", "passthrough", "keep":
		*m = RestrictedPassThrough
	case "strip", "drop":
		*m = RestrictedStrip
	default:
		return fmt.Errorf("unknown restricted character mode %q", text)
	}
	return nil
}

// Options holds lexer configuration values.
// The zero value means no overrides.
type Options struct {
	severities      map[xmlerrors.ErrorCode]Severity
	onDiagnostic    func(xmlerrors.Diagnostic)
	maxDiagnostics  int
	defaultSeverity Severity
	restricted      RestrictedMode

	onDiagnosticSet    bool
	maxDiagnosticsSet  bool
	defaultSeveritySet bool
	restrictedSet      bool
}

// JoinOptions combines multiple option sets into one in declaration order.
// Later options override earlier ones when set.
func JoinOptions(srcs ...Options) Options {
	var merged Options
	for _, src := range srcs {
		merged.merge(src)
	}
	return merged
}

func (opts *Options) merge(src Options) {
	if len(src.severities) > 0 {
		if opts.severities == nil {
			opts.severities = make(map[xmlerrors.ErrorCode]Severity, len(src.severities))
		}
		for code, severity := range src.severities {
			opts.severities[code] = severity
		}
	}
	if src.onDiagnosticSet {
		opts.onDiagnostic = src.onDiagnostic
		opts.onDiagnosticSet = true
	}
	if src.maxDiagnosticsSet {
		opts.maxDiagnostics = src.maxDiagnostics
		opts.maxDiagnosticsSet = true
	}
	if src.defaultSeveritySet {
		opts.defaultSeverity = src.defaultSeverity
		opts.defaultSeveritySet = true
	}
	if src.restrictedSet {
		opts.restricted = src.restricted
		opts.restrictedSet = true
	}
}

// WithSeverity sets the severity of one diagnostic code.
func WithSeverity(code xmlerrors.ErrorCode, severity Severity) Options {
	return Options{severities: map[xmlerrors.ErrorCode]Severity{code: severity}}
}

// DefaultSeverity sets the severity of codes without an explicit WithSeverity.
func DefaultSeverity(severity Severity) Options {
	return Options{defaultSeverity: severity, defaultSeveritySet: true}
}

// RestrictedChars selects how restricted characters appear in token text.
func RestrictedChars(mode RestrictedMode) Options {
	return Options{restricted: mode, restrictedSet: true}
}

// OnDiagnostic registers a callback invoked for every recorded diagnostic,
// in document order, before the token that raised it is returned.
func OnDiagnostic(fn func(xmlerrors.Diagnostic)) Options {
	return Options{onDiagnostic: fn, onDiagnosticSet: true}
}

// MaxDiagnostics limits how many diagnostics the lexer retains.
// Zero or negative means no limit. The callback still sees every diagnostic.
func MaxDiagnostics(value int) Options {
	return Options{maxDiagnostics: value, maxDiagnosticsSet: true}
}

// Strict returns a preset that fails on every diagnostic.
func Strict() Options {
	return DefaultSeverity(SeverityFail)
}

// Severity reports the effective severity of code under these options.
func (opts Options) Severity(code xmlerrors.ErrorCode) Severity {
	if severity, ok := opts.severities[code]; ok {
		return severity
	}
	return opts.defaultSeverity
}

// Restricted reports the configured restricted character mode.
func (opts Options) Restricted() RestrictedMode {
	return opts.restricted
}
