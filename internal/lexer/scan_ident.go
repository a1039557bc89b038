package lexer

import (
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет LookupKeyword.
// Token.Text - ровно исходный срез, включая \u-escape последовательности.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	if !lx.scanIdentPart(true) {
		return lx.scanOperatorOrPunct()
	}
	for lx.scanIdentPart(false) {
	}

	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanIdentPart consumes one identifier character (or escape) and reports
// whether anything was consumed.
func (lx *Lexer) scanIdentPart(first bool) bool {
	r, sz := lx.peekRune()
	if sz == 0 {
		return false
	}
	if r == '\\' {
		return lx.scanUnicodeEscape()
	}
	if r < utf8RuneSelf {
		ok := isIdentContinueByte(byte(r))
		if first {
			ok = isIdentStartByte(byte(r))
		}
		if ok {
			lx.cursor.Bump()
		}
		return ok
	}
	ok := isIdentContinueRune(r)
	if first {
		ok = isIdentStartRune(r)
	}
	if ok {
		lx.bumpRune()
	}
	return ok
}

// \uXXXX или \u{X...}
func (lx *Lexer) scanUnicodeEscape() bool {
	start := lx.cursor.Mark()
	if !lx.try2('\\', 'u') {
		return false
	}
	if lx.cursor.Eat('{') {
		n := 0
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			n++
		}
		if n > 0 && lx.cursor.Eat('}') {
			return true
		}
	} else {
		n := 0
		for n < 4 && isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			n++
		}
		if n == 4 {
			return true
		}
	}
	lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "malformed unicode escape in identifier")
	lx.cursor.Reset(start)
	return false
}

// #name - приватное имя класса
func (lx *Lexer) scanPrivateName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	if !lx.scanIdentPart(true) {
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnknownChar, tok.Span, "expected name after '#'")
		return tok
	}
	for lx.scanIdentPart(false) {
	}
	return lx.emit(token.PrivateName, start)
}
