package lexer

import (
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// scanString сканирует '...' или "...". Escape-последовательности не
// декодируются: Text хранит исходный вид литерала вместе с кавычками.
// В JSX-атрибутах (jsx=true) переводы строк разрешены.
func (lx *Lexer) scanString(quote byte, jsx bool) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == quote:
			lx.cursor.Bump()
			return lx.emit(token.String, start)
		case b == '\\' && !jsx:
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				continue
			}
			// продолжение строки, \r\n целиком
			if lx.cursor.SkipLineTerminator() {
				continue
			}
			lx.bumpRune()
		case isLineTerminator(b) && !jsx:
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "newline in string literal")
			return tok
		default:
			lx.bumpRune()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}

// scanTemplate сканирует кусок шаблонной строки. head=true: курсор на '`';
// иначе курсор на '}' закрывающем подстановку.
func (lx *Lexer) scanTemplate(head bool) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '`' или '}'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '`':
			lx.cursor.Bump()
			if head {
				return lx.emit(token.NoSubstTemplate, start)
			}
			return lx.emit(token.TemplateTail, start)
		case b == '$':
			if lx.try2('$', '{') {
				if head {
					return lx.emit(token.TemplateHead, start)
				}
				return lx.emit(token.TemplateMiddle, start)
			}
			lx.cursor.Bump()
		case b == '\\':
			lx.cursor.Bump()
			lx.bumpRune()
		default:
			lx.bumpRune()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedTemplate, tok.Span, "unterminated template literal")
	return tok
}

// RescanTemplateContinuation re-reads a '}' token that closes a template
// substitution as TemplateMiddle or TemplateTail.
func (lx *Lexer) RescanTemplateContinuation(rbrace token.Token) token.Token {
	lx.rewind(MarkOf(rbrace))
	return lx.finish(rbrace, lx.scanTemplate(false))
}
