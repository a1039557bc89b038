package lexer

import (
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// Поддержка: 0, 123, 0b..., 0o..., 0x..., 017 (legacy octal), 1.0, .5, 1e-3,
// разделители '_' и суффикс BigInt 'n'. Текст сохраняется как есть.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.Number

	digits := func(ok func(byte) bool) int {
		n := 0
		for {
			b := lx.cursor.Peek()
			if ok(b) || (b == '_' && n > 0) {
				lx.cursor.Bump()
				n++
				continue
			}
			return n
		}
	}

	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		digits(isDec)
		lx.scanExponent()
		return lx.finishNumber(start, kind)
	}

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		var ok func(byte) bool
		switch lx.cursor.Peek() {
		case 'b', 'B':
			ok = func(b byte) bool { return b == '0' || b == '1' }
		case 'o', 'O':
			ok = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x', 'X':
			ok = isHex
		}
		if ok != nil {
			lx.cursor.Bump()
			if digits(ok) == 0 {
				tok := lx.emit(token.Invalid, start)
				lx.errLex(diag.LexBadNumber, tok.Span, "expected digits after base prefix")
				return tok
			}
			if lx.cursor.Eat('n') {
				kind = token.BigInt
			}
			return lx.finishNumber(start, kind)
		}
	}

	digits(isDec)
	if lx.cursor.Eat('n') {
		return lx.finishNumber(start, token.BigInt)
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		digits(isDec)
	}
	lx.scanExponent()
	return lx.finishNumber(start, kind)
}

func (lx *Lexer) scanExponent() {
	b := lx.cursor.Peek()
	if b != 'e' && b != 'E' {
		return
	}
	mark := lx.cursor.Mark()
	lx.cursor.Bump()
	if c := lx.cursor.Peek(); c == '+' || c == '-' {
		lx.cursor.Bump()
	}
	if !isDec(lx.cursor.Peek()) {
		lx.cursor.Reset(mark)
		return
	}
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

// идентификатор сразу после числа (3in, 1px) - ошибка
func (lx *Lexer) finishNumber(start Mark, kind token.Kind) token.Token {
	if r, sz := lx.peekRune(); sz > 0 && (isIdentStartRune(r) || isDec(lx.cursor.Peek())) {
		for lx.scanIdentPart(false) {
		}
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexBadNumber, tok.Span, "identifier starts immediately after numeric literal")
		return tok
	}
	return lx.emit(kind, start)
}
