package finder

import (
	"github.com/dlclark/regexp2"

	"github.com/devicelab-dev/flutter-driver/pkg/core"
)

// Label matches a semantics label either literally or by pattern.
// Patterns use ECMAScript syntax, the dialect the device side evaluates.
type Label struct {
	text    string
	pattern *regexp2.Regexp
}

// LiteralLabel matches a label exactly.
func LiteralLabel(text string) Label {
	return Label{text: text}
}

// PatternLabel compiles pattern into a regular expression label.
func PatternLabel(pattern string) (Label, error) {
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return Label{}, core.ErrInvalidValue.
			WithMessagef("invalid label pattern %q", pattern).
			WithCause(err)
	}
	return Label{text: pattern, pattern: re}, nil
}

// MustPatternLabel is like PatternLabel but panics if the pattern does not compile.
func MustPatternLabel(pattern string) Label {
	l, err := PatternLabel(pattern)
	if err != nil {
		panic(err)
	}
	return l
}

// IsRegExp returns true for pattern labels.
func (l Label) IsRegExp() bool { return l.pattern != nil }

// String returns the literal text or the pattern source.
func (l Label) String() string { return l.text }

// Pattern returns the compiled pattern, nil for literal labels.
func (l Label) Pattern() *regexp2.Regexp { return l.pattern }

// Equal compares kind and source; compiled patterns are not compared.
func (l Label) Equal(other Label) bool {
	return l.IsRegExp() == other.IsRegExp() && l.text == other.text
}
