package lexer

import (
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// RescanRegex re-reads a Slash or SlashAssign token as a regular expression
// literal. The parser calls it where an expression operand is expected.
func (lx *Lexer) RescanRegex(slash token.Token) token.Token {
	lx.rewind(MarkOf(slash))
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'

	inClass := false
	for {
		if lx.cursor.EOF() || lx.cursor.AtLineTerminator() {
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedRegex, tok.Span, "unterminated regular expression")
			return lx.finish(slash, tok)
		}
		b := lx.cursor.Peek()
		if b == '\\' {
			lx.cursor.Bump()
			if !lx.cursor.AtLineTerminator() {
				lx.bumpRune()
			}
			continue
		}
		lx.bumpRune()
		switch {
		case b == '[':
			inClass = true
		case b == ']':
			inClass = false
		case b == '/' && !inClass:
			// флаги
			for lx.scanIdentPart(false) {
			}
			return lx.finish(slash, lx.emit(token.Regex, start))
		}
	}
}
