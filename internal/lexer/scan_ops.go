package lexer

import (
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// Жадность: сначала 3-символьные, затем 2 и 1-символьные.
// '>' всегда выдаётся одиночным токеном (см. token/doc.go).
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try3('.', '.', '.'):
		return lx.emit(token.Ellipsis, start)
	case lx.try3('=', '=', '='):
		return lx.emit(token.EqEqEq, start)
	case lx.try3('!', '=', '='):
		return lx.emit(token.BangEqEq, start)
	case lx.try3('*', '*', '='):
		return lx.emit(token.StarStarAssign, start)
	case lx.try3('<', '<', '='):
		return lx.emit(token.ShlAssign, start)
	case lx.try3('&', '&', '='):
		return lx.emit(token.AndAndAssign, start)
	case lx.try3('|', '|', '='):
		return lx.emit(token.OrOrAssign, start)
	case lx.try3('?', '?', '='):
		return lx.emit(token.QuestionQuestionAssign, start)
	case lx.try2('=', '>'):
		return lx.emit(token.FatArrow, start)
	case lx.try2('=', '='):
		return lx.emit(token.EqEq, start)
	case lx.try2('!', '='):
		return lx.emit(token.BangEq, start)
	case lx.try2('<', '='):
		return lx.emit(token.LtEq, start)
	case lx.try2('<', '<'):
		return lx.emit(token.Shl, start)
	case lx.try2('&', '&'):
		return lx.emit(token.AndAnd, start)
	case lx.try2('|', '|'):
		return lx.emit(token.OrOr, start)
	case lx.try2('?', '?'):
		return lx.emit(token.QuestionQuestion, start)
	case lx.try2('*', '*'):
		return lx.emit(token.StarStar, start)
	case lx.try2('+', '+'):
		return lx.emit(token.PlusPlus, start)
	case lx.try2('-', '-'):
		return lx.emit(token.MinusMinus, start)
	case lx.try2('+', '='):
		return lx.emit(token.PlusAssign, start)
	case lx.try2('-', '='):
		return lx.emit(token.MinusAssign, start)
	case lx.try2('*', '='):
		return lx.emit(token.StarAssign, start)
	case lx.try2('/', '='):
		return lx.emit(token.SlashAssign, start)
	case lx.try2('%', '='):
		return lx.emit(token.PercentAssign, start)
	case lx.try2('&', '='):
		return lx.emit(token.AmpAssign, start)
	case lx.try2('|', '='):
		return lx.emit(token.PipeAssign, start)
	case lx.try2('^', '='):
		return lx.emit(token.CaretAssign, start)
	}

	// ?. только если дальше не цифра: a?.5:b это тернарный оператор
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '?' && b1 == '.' {
		if _, _, b2, ok3 := lx.cursor.Peek3(); !ok3 || !isDec(b2) {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.emit(token.QuestionDot, start)
		}
	}

	// незакрытый /* - collectLeadingTrivia уже записал ошибку
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && b1 == '*' {
		lx.cursor.Off = lx.cursor.end
		return lx.emit(token.Invalid, start)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '{':
		return lx.emit(token.LBrace, start)
	case '}':
		return lx.emit(token.RBrace, start)
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	case '[':
		return lx.emit(token.LBracket, start)
	case ']':
		return lx.emit(token.RBracket, start)
	case '.':
		return lx.emit(token.Dot, start)
	case ';':
		return lx.emit(token.Semicolon, start)
	case ',':
		return lx.emit(token.Comma, start)
	case ':':
		return lx.emit(token.Colon, start)
	case '?':
		return lx.emit(token.Question, start)
	case '@':
		return lx.emit(token.At, start)
	case '<':
		return lx.emit(token.Lt, start)
	case '>':
		return lx.emit(token.Gt, start)
	case '=':
		return lx.emit(token.Assign, start)
	case '+':
		return lx.emit(token.Plus, start)
	case '-':
		return lx.emit(token.Minus, start)
	case '*':
		return lx.emit(token.Star, start)
	case '/':
		return lx.emit(token.Slash, start)
	case '%':
		return lx.emit(token.Percent, start)
	case '&':
		return lx.emit(token.Amp, start)
	case '|':
		return lx.emit(token.Pipe, start)
	case '^':
		return lx.emit(token.Caret, start)
	case '!':
		return lx.emit(token.Bang, start)
	case '~':
		return lx.emit(token.Tilde, start)
	}

	// неизвестный символ: съедаем всю руну
	lx.cursor.Reset(start)
	lx.bumpRune()
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unexpected character "+quoteText(tok.Text))
	return tok
}
