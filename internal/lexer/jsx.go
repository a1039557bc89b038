package lexer

import (
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// JSX лексика управляется парсером: он знает, когда находится внутри
// детей элемента, имени тега или значения атрибута.

// ScanJSXChild scans from off inside element children. It returns '<' or '{'
// tokens as usual, JSXText for anything else, EOF at the end of input.
func (lx *Lexer) ScanJSXChild(off uint32) token.Token {
	lx.rewind(Mark(off))
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}
	switch lx.cursor.Peek() {
	case '<', '{':
		return lx.scan()
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '<' || b == '{' {
			break
		}
		lx.bumpRune()
	}
	return lx.emit(token.JSXText, start)
}

// RescanJSXIdent re-reads an identifier allowing '-' inside (data-id, aria-label).
// Reserved words come back as plain identifiers.
func (lx *Lexer) RescanJSXIdent(tok token.Token) token.Token {
	lx.rewind(MarkOf(tok))
	start := lx.cursor.Mark()
	if !lx.scanIdentPart(true) {
		return tok
	}
	for lx.scanIdentPart(false) || lx.cursor.Eat('-') {
	}
	return lx.finish(tok, lx.emit(token.Ident, start))
}

// RescanJSXString re-reads an attribute string; JSX strings may span lines
// and have no escapes.
func (lx *Lexer) RescanJSXString(tok token.Token) token.Token {
	lx.rewind(MarkOf(tok))
	q := lx.cursor.Peek()
	if q != '"' && q != '\'' {
		return tok
	}
	return lx.finish(tok, lx.scanString(q, true))
}
