package token

import (
	"github.com/lukeapage/flow-to-ts/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
	// NewlineBefore is set when a line terminator separates this token from
	// the previous one. It drives automatic semicolon insertion.
	NewlineBefore bool
}

// Is reports whether the token has one of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// IsWord reports whether the token is an identifier with the given text.
// Used for contextual keywords.
func (t Token) IsWord(word string) bool {
	return t.Kind == Ident && t.Text == word
}

// IsName reports whether the token can serve as a property name:
// identifiers and reserved words alike.
func (t Token) IsName() bool {
	return t.Kind == Ident || t.Kind.IsKeyword()
}

// IsLiteral reports whether the token is a primitive literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, BigInt, String, Regex, NoSubstTemplate, KwNull, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// Adjacent reports whether next starts exactly where t ends.
func (t Token) Adjacent(next Token) bool {
	return t.Span.End == next.Span.Start
}
