package fuzztests

import (
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/lexer"
	"github.com/lukeapage/flow-to-ts/internal/source"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.js", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		// токены идут по порядку и не перекрываются
		prev := uint32(0)
		for n := 0; ; n++ {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if tok.Span.End < tok.Span.Start || tok.Span.Start < prev {
				t.Fatalf("token %d %v has span %d..%d after %d", n, tok.Kind, tok.Span.Start, tok.Span.End, prev)
			}
			prev = tok.Span.End
		}
	})
}
