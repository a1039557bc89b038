package lexer

import (
	"unicode"

	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// collectLeadingTrivia пропускает пробелы и переводы строк и собирает
// комментарии перед значимым токеном.
//   - //... до конца строки -> TriviaLineComment
//   - /* ... */ -> TriviaBlockComment (без вложенности; если не закрыт - ошибка)
//
// Text комментария не содержит разделителей.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		if lx.cursor.SkipLineTerminator() {
			lx.nl = true
			continue
		}
		b := lx.cursor.Peek()
		switch {
		case b == ' ' || b == '\t' || b == '\v' || b == '\f':
			lx.cursor.Bump()
			continue
		case b == '/':
			if lx.scanComment() {
				continue
			}
		case b >= utf8RuneSelf:
			r, _ := lx.peekRune()
			if r == '\uFEFF' || unicode.Is(unicode.Zs, r) {
				lx.bumpRune()
				continue
			}
		}
		// нет больше trivia
		return
	}
}

func (lx *Lexer) scanComment() bool {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' || (b1 != '/' && b1 != '*') {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()

	if b1 == '/' {
		lx.cursor.SkipLine()
		sp := lx.cursor.SpanFrom(start)
		lx.record(token.Trivia{
			Kind: token.TriviaLineComment,
			Span: sp,
			Text: string(lx.file.Content[sp.Start+2 : sp.End]),
		})
		return true
	}

	closed := false
	for !lx.cursor.EOF() {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			closed = true
			break
		}
		if lx.cursor.SkipLineTerminator() {
			// многострочный блок ведёт себя как перевод строки для ASI
			lx.nl = true
			continue
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if !closed {
		// превращаем остаток файла в Invalid токен, парсер сообщит об ошибке
		lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		lx.cursor.Reset(start)
		return false
	}
	lx.record(token.Trivia{
		Kind: token.TriviaBlockComment,
		Span: sp,
		Text: string(lx.file.Content[sp.Start+2 : sp.End-2]),
	})
	return true
}

// record adds a comment to the pending trivia. Comments become part of the
// file only when the parser commits the token carrying them, so tokens
// scanned speculatively (or as JSX text later) never leak phantom comments.
func (lx *Lexer) record(c token.Trivia) {
	lx.hold = append(lx.hold, c)
}
