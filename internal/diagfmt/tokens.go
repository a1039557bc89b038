package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lukeapage/flow-to-ts/internal/source"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

type TokenOutput struct {
	Kind    string         `json:"kind"`
	Text    string         `json:"text,omitempty"`
	Span    source.Span    `json:"span"`
	Newline bool           `json:"newline_before,omitempty"`
	Leading []TriviaOutput `json:"leading,omitempty"`
}

type TriviaOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func triviaKind(k token.TriviaKind) string {
	if k == token.TriviaBlockComment {
		return "block"
	}
	return "line"
}

// FormatTokensPretty выводит токены в человекочитаемом формате, по одному на строку.
func FormatTokensPretty(w io.Writer, tokens []token.Token, f *source.File) error {
	for i, tok := range tokens {
		start, end := f.LineCol(tok.Span.Start), f.LineCol(tok.Span.End)

		var sb strings.Builder
		fmt.Fprintf(&sb, "%4d: %-18s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(&sb, " %q", tok.Text)
		}
		fmt.Fprintf(&sb, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if tok.NewlineBefore {
			sb.WriteString(" nl")
		}
		if len(tok.Leading) > 0 {
			kinds := make([]string, len(tok.Leading))
			for j, tr := range tok.Leading {
				kinds[j] = triviaKind(tr.Kind)
			}
			fmt.Fprintf(&sb, " (comments: %s)", strings.Join(kinds, ", "))
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    tok.Span,
			Newline: tok.NewlineBefore,
		}
		for _, tr := range tok.Leading {
			out.Leading = append(out.Leading, TriviaOutput{Kind: triviaKind(tr.Kind), Text: tr.Text})
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
