package token

import "github.com/lukeapage/flow-to-ts/internal/source"

type TriviaKind uint8

const (
	TriviaLineComment  TriviaKind = iota // // text
	TriviaBlockComment                   // /* text */
)

// Trivia is a comment preceding a token. Text excludes the delimiters.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
