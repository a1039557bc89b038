package parser

import (
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// Таблица приоритетов бинарных операторов.
// Чем больше число, тем выше приоритет.
const (
	precNone           = 0
	precLogicalOr      = 1 // || ??
	precLogicalAnd     = 2 // &&
	precBitwiseOr      = 3 // |
	precBitwiseXor     = 4 // ^
	precBitwiseAnd     = 5 // &
	precEquality       = 6 // == != === !==
	precRelational     = 7 // < > <= >= instanceof in
	precShift          = 8 // << >> >>>
	precAdditive       = 9 // + -
	precMultiplicative = 10
	precExponent       = 11 // ** (right-associative)
)

// binaryOp returns the binary operator at the current token, its precedence
// and how many tokens it spans ('>' operators are assembled from single '>'
// tokens). prec is precNone when the token is not a binary operator.
func (p *Parser) binaryOp() (op string, prec, n int) {
	switch p.tok.Kind {
	case token.QuestionQuestion:
		return "??", precLogicalOr, 1
	case token.OrOr:
		return "||", precLogicalOr, 1
	case token.AndAnd:
		return "&&", precLogicalAnd, 1
	case token.Pipe:
		return "|", precBitwiseOr, 1
	case token.Caret:
		return "^", precBitwiseXor, 1
	case token.Amp:
		return "&", precBitwiseAnd, 1
	case token.EqEq, token.EqEqEq, token.BangEq, token.BangEqEq:
		return p.tok.Kind.String(), precEquality, 1
	case token.Lt, token.LtEq:
		return p.tok.Kind.String(), precRelational, 1
	case token.KwInstanceof:
		return "instanceof", precRelational, 1
	case token.KwIn:
		if p.has(ctxNoIn) {
			return "", precNone, 0
		}
		return "in", precRelational, 1
	case token.Gt:
		op, n = p.gtOperator()
		switch op {
		case ">", ">=":
			return op, precRelational, n
		case ">>", ">>>":
			return op, precShift, n
		}
		return "", precNone, 0 // >>= and >>>= are assignments
	case token.Shl:
		return "<<", precShift, 1
	case token.Plus, token.Minus:
		return p.tok.Kind.String(), precAdditive, 1
	case token.Star, token.Slash, token.Percent:
		return p.tok.Kind.String(), precMultiplicative, 1
	case token.StarStar:
		return "**", precExponent, 1
	}
	return "", precNone, 0
}

// gtOperator assembles adjacent '>' and '=' tokens starting at the current
// '>' into one of > >= >> >>= >>> >>>=.
func (p *Parser) gtOperator() (op string, n int) {
	op, n = ">", 1
	prev := p.tok
	for i := 0; ; i++ {
		nt := p.peekN(i)
		if !prev.Adjacent(nt) {
			return op, n
		}
		switch {
		case nt.Kind == token.Gt && len(op) < 3:
			op += ">"
			n++
			prev = nt
			continue
		case nt.Kind == token.Assign:
			op += "="
			n++
		}
		return op, n
	}
}

// assignOp returns the assignment operator at the current token.
func (p *Parser) assignOp() (op string, n int) {
	if p.tok.Kind.IsAssign() {
		return p.tok.Kind.String(), 1
	}
	if p.tok.Kind == token.Gt {
		op, n = p.gtOperator()
		if op == ">>=" || op == ">>>=" {
			return op, n
		}
	}
	return "", 0
}

func (p *Parser) skip(n int) {
	for range n {
		p.next()
	}
}
