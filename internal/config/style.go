package config

import "fmt"

// Trailing comma policies.
const (
	TrailingNone = "none"
	TrailingES5  = "es5"
	TrailingAll  = "all"
)

// Arrow parameter policies.
const (
	ArrowAlways = "always"
	ArrowAvoid  = "avoid"
)

// Style is a fully resolved print style.
type Style struct {
	Semi           bool   `json:"semi" yaml:"semi" toml:"semi"`
	SingleQuote    bool   `json:"singleQuote" yaml:"singleQuote" toml:"singleQuote"`
	TabWidth       int    `json:"tabWidth" yaml:"tabWidth" toml:"tabWidth"`
	TrailingComma  string `json:"trailingComma" yaml:"trailingComma" toml:"trailingComma"`
	BracketSpacing bool   `json:"bracketSpacing" yaml:"bracketSpacing" toml:"bracketSpacing"`
	ArrowParens    string `json:"arrowParens" yaml:"arrowParens" toml:"arrowParens"`
	PrintWidth     int    `json:"printWidth" yaml:"printWidth" toml:"printWidth"`
}

// DefaultStyle is the built-in base of every resolved style.
func DefaultStyle() Style {
	return Style{
		Semi:           true,
		SingleQuote:    false,
		TabWidth:       2,
		TrailingComma:  TrailingES5,
		BracketSpacing: true,
		ArrowParens:    ArrowAlways,
		PrintWidth:     80,
	}
}

// GeneratorStyle is the layout of unformatted output: nothing is
// re-wrapped, commas are not added.
func GeneratorStyle() Style {
	return Style{
		Semi:           true,
		TabWidth:       2,
		TrailingComma:  TrailingNone,
		BracketSpacing: true,
		ArrowParens:    ArrowAvoid,
		PrintWidth:     0,
	}
}

// Validate rejects values the printer cannot honor.
func (s Style) Validate() error {
	switch s.TrailingComma {
	case TrailingNone, TrailingES5, TrailingAll:
	default:
		return fmt.Errorf("trailingComma: want none, es5 or all, got %q", s.TrailingComma)
	}
	switch s.ArrowParens {
	case ArrowAlways, ArrowAvoid:
	default:
		return fmt.Errorf("arrowParens: want always or avoid, got %q", s.ArrowParens)
	}
	if s.TabWidth < 0 {
		return fmt.Errorf("tabWidth: must not be negative, got %d", s.TabWidth)
	}
	if s.PrintWidth < 0 {
		return fmt.Errorf("printWidth: must not be negative, got %d", s.PrintWidth)
	}
	return nil
}

// CommasES5 reports whether literals and lists get trailing commas.
func (s Style) CommasES5() bool {
	return s.TrailingComma == TrailingES5 || s.TrailingComma == TrailingAll
}

// CommasAll reports whether parameters and arguments get trailing commas.
func (s Style) CommasAll() bool { return s.TrailingComma == TrailingAll }
