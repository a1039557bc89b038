package parser

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// parseExpression parses a comma-separated expression.
func (p *Parser) parseExpression() ast.NodeID {
	start := p.tok.Span.Start
	e := p.parseAssign()
	if !p.at(token.Comma) {
		return e
	}
	list := []ast.NodeID{e}
	for p.eat(token.Comma) {
		list = append(list, p.parseAssign())
	}
	return p.finishList(ast.SequenceExpression, start, list)
}

// parseAssign parses AssignmentExpression: arrows, yield, conditionals and
// assignments.
func (p *Parser) parseAssign() ast.NodeID {
	if p.atWord("yield") && p.has(ctxGenerator) {
		return p.parseYield()
	}
	if id, ok := p.tryArrow(); ok {
		return id
	}

	start := p.tok.Span.Start
	left := p.parseConditional()
	op, n := p.assignOp()
	if n == 0 {
		return left
	}
	if op == "=" {
		left = p.toPattern(left)
	} else if k := p.tree.Kind(left); k != ast.Identifier && k != ast.MemberExpression || p.inOptionalChain(left) {
		p.failAt(p.tree.Span(left), diagBadTarget, "invalid assignment target")
	}
	p.skip(n)
	right := p.parseAssign()
	return p.finishText(ast.AssignmentExpression, start, op, left, right)
}

func (p *Parser) parseYield() ast.NodeID {
	start := p.tok.Span.Start
	p.next()
	delegate := false
	arg := ast.NoNodeID
	if !p.tok.NewlineBefore {
		if p.eat(token.Star) {
			delegate = true
			arg = p.parseAssign()
		} else if p.startsExpression() {
			arg = p.parseAssign()
		}
	}
	id := p.finish(ast.YieldExpression, start, arg)
	if delegate {
		p.setFlag(id, ast.FlagDelegate)
	}
	return id
}

// startsExpression reports whether the current token can begin an operand.
func (p *Parser) startsExpression() bool {
	switch p.tok.Kind {
	case token.RParen, token.RBracket, token.RBrace, token.Comma, token.Colon,
		token.Semicolon, token.EOF, token.Question, token.FatArrow:
		return false
	}
	if _, prec, _ := p.binaryOp(); prec != precNone && p.tok.Kind != token.Lt && p.tok.Kind != token.Plus && p.tok.Kind != token.Minus {
		return false
	}
	if _, n := p.assignOp(); n > 0 {
		return false
	}
	return true
}

// --- arrows ---

// arrowHead is everything of an arrow function before its body.
type arrowHead struct {
	start         uint32
	flags         ast.Flags
	tp, ret, pred ast.NodeID
	params        []ast.NodeID
}

// tryArrow parses an arrow function if one starts at the current token.
// Heads in parentheses are parsed speculatively; once `=>` is seen the
// arrow is committed.
func (p *Parser) tryArrow() (ast.NodeID, bool) {
	h := arrowHead{start: p.tok.Span.Start}
	switch {
	case p.at(token.Ident) && p.peek().Kind == token.FatArrow && !p.peek().NewlineBefore:
		h.params = []ast.NodeID{p.ident()}
		return p.parseArrowBody(h), true
	case p.atWord("async") && !p.peek().NewlineBefore:
		nt := p.peek()
		if nt.Kind == token.Ident && p.peekN(1).Kind == token.FatArrow {
			p.next()
			h.flags = ast.FlagAsync
			h.params = []ast.NodeID{p.ident()}
			return p.parseArrowBody(h), true
		}
		if nt.Kind == token.LParen || nt.Kind == token.Lt {
			h.flags = ast.FlagAsync
			return p.tryArrowHead(h)
		}
	case p.atAny(token.LParen, token.Lt):
		return p.tryArrowHead(h)
	}
	return ast.NoNodeID, false
}

func (p *Parser) tryArrowHead(h arrowHead) (ast.NodeID, bool) {
	// `c ? (x): T => y : z` must be checked with the body
	if p.has(ctxCondConsequent) {
		return p.try(func() ast.NodeID {
			p.parseArrowHead(&h)
			id := p.parseArrowBody(h)
			if h.ret.IsValid() && !p.at(token.Colon) {
				p.unexpected("expected ':'")
			}
			return id
		})
	}
	if _, ok := p.try(func() ast.NodeID { p.parseArrowHead(&h); return ast.NoNodeID }); !ok {
		return ast.NoNodeID, false
	}
	return p.parseArrowBody(h), true
}

// parseArrowHead parses `[async] <T>(params): R` up to the `=>`.
func (p *Parser) parseArrowHead(h *arrowHead) {
	if h.flags.Has(ast.FlagAsync) {
		p.next()
	}
	h.flags |= ast.FlagParenParams
	p.with(fnCtx(h.flags.Has(ast.FlagAsync), false), ctxGenerator|ctxAsync|ctxCondConsequent|ctxNoIn, func() {
		if p.at(token.Lt) {
			h.tp = p.parseTypeParams()
		}
		h.params = p.parseParams()
	})
	if p.at(token.Colon) {
		p.with(ctxNoAnonFnType, 0, func() { h.ret, h.pred = p.parseReturnType() })
	}
	if !p.at(token.FatArrow) || p.tok.NewlineBefore {
		p.unexpected("expected '=>'")
	}
}

func (p *Parser) parseArrowBody(h arrowHead) ast.NodeID {
	p.expect(token.FatArrow)
	var body ast.NodeID
	async := h.flags.Has(ast.FlagAsync)
	if p.at(token.LBrace) {
		p.with(fnCtx(async, false), fnClear, func() { body = p.parseFunctionBody() })
	} else {
		p.with(fnCtx(async, false), ctxGenerator|ctxAsync|ctxNoAnonFnType, func() { body = p.parseAssign() })
		h.flags |= ast.FlagExprBody
	}
	id := p.finishList(ast.ArrowFunctionExpression, h.start, h.params, ast.NoNodeID, h.tp, h.ret, body, h.pred)
	p.setFlag(id, h.flags)
	return id
}

// --- conditional, binary, unary ---

func (p *Parser) parseConditional() ast.NodeID {
	start := p.tok.Span.Start
	test := p.parseBinary(precNone)
	if !p.at(token.Question) {
		return test
	}
	p.next()
	var cons, alt ast.NodeID
	p.with(ctxCondConsequent, ctxNoIn, func() { cons = p.parseAssign() })
	p.expect(token.Colon)
	p.with(0, ctxCondConsequent, func() { alt = p.parseAssign() })
	return p.finish(ast.ConditionalExpression, start, test, cons, alt)
}

func (p *Parser) parseBinary(minPrec int) ast.NodeID {
	start := p.tok.Span.Start
	left := p.parseUnary()
	for {
		if p.ts() && p.atWord("as") && !p.tok.NewlineBefore && precRelational > minPrec {
			p.next()
			typ := p.parseType()
			left = p.finish(ast.AsExpression, start, left, typ)
			continue
		}
		op, prec, n := p.binaryOp()
		if prec == precNone || prec <= minPrec {
			return left
		}
		p.skip(n)
		next := prec
		if prec == precExponent {
			next = prec - 1
		}
		right := p.parseBinary(next)
		kind := ast.BinaryExpression
		if op == "||" || op == "&&" || op == "??" {
			kind = ast.LogicalExpression
		}
		left = p.finishText(kind, start, op, left, right)
	}
}

func (p *Parser) parseUnary() ast.NodeID {
	start := p.tok.Span.Start
	switch p.tok.Kind {
	case token.Bang, token.Tilde, token.Plus, token.Minus, token.KwTypeof, token.KwVoid, token.KwDelete:
		op := p.next().Text
		arg := p.parseUnary()
		id := p.finishText(ast.UnaryExpression, start, op, arg)
		p.setFlag(id, ast.FlagPrefix)
		return id
	case token.PlusPlus, token.MinusMinus:
		op := p.next().Text
		arg := p.parseUnary()
		id := p.finishText(ast.UpdateExpression, start, op, arg)
		p.setFlag(id, ast.FlagPrefix)
		return id
	case token.Ident:
		if p.atWord("await") && (p.has(ctxAsync) || !p.has(ctxInFunction)) && p.awaitHasOperand() {
			p.next()
			arg := p.parseUnary()
			return p.finish(ast.AwaitExpression, start, arg)
		}
	}
	e := p.parseLeftHandSide(true)
	if p.atAny(token.PlusPlus, token.MinusMinus) && !p.tok.NewlineBefore {
		op := p.next().Text
		e = p.finishText(ast.UpdateExpression, start, op, e)
	}
	return e
}

// awaitHasOperand distinguishes `await x` from an identifier named await.
func (p *Parser) awaitHasOperand() bool {
	nt := p.peek()
	switch nt.Kind {
	case token.RParen, token.RBracket, token.RBrace, token.Comma, token.Semicolon, token.Colon,
		token.EOF, token.Assign, token.Dot, token.QuestionDot, token.FatArrow:
		return false
	}
	return !nt.NewlineBefore || p.has(ctxAsync)
}

// --- calls and members ---

func (p *Parser) parseLeftHandSide(allowCall bool) ast.NodeID {
	start := p.tok.Span.Start
	var e ast.NodeID
	if p.at(token.KwNew) {
		e = p.parseNew()
	} else {
		e = p.parsePrimary()
	}
	return p.parseSubscripts(e, start, allowCall)
}

func (p *Parser) parseNew() ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.KwNew)
	if p.eat(token.Dot) {
		p.expectWord("target")
		return p.finishText(ast.MetaProperty, start, "new.target")
	}
	cstart := p.tok.Span.Start
	var callee ast.NodeID
	if p.at(token.KwNew) {
		callee = p.parseNew()
	} else {
		callee = p.parsePrimary()
	}
	callee = p.parseSubscripts(callee, cstart, false)
	typeArgs := ast.NoNodeID
	if p.at(token.Lt) {
		if ta, ok := p.try(func() ast.NodeID {
			ta := p.parseTypeArgs()
			if !p.at(token.LParen) {
				p.unexpected("expected '('")
			}
			return ta
		}); ok {
			typeArgs = ta
		}
	}
	var args []ast.NodeID
	noArgs := true
	if p.at(token.LParen) {
		args = p.parseArguments()
		noArgs = false
	}
	id := p.finishList(ast.NewExpression, start, args, callee, typeArgs)
	if noArgs {
		p.setFlag(id, ast.FlagNoArgs)
	}
	return id
}

func (p *Parser) parseArguments() []ast.NodeID {
	p.expect(token.LParen)
	var args []ast.NodeID
	p.with(0, ctxNoIn|ctxCondConsequent, func() {
		for !p.at(token.RParen) {
			if p.at(token.Ellipsis) {
				start := p.tok.Span.Start
				p.next()
				arg := p.parseAssign()
				args = append(args, p.finish(ast.SpreadElement, start, arg))
			} else {
				args = append(args, p.parseAssign())
			}
			if !p.eat(token.Comma) {
				break
			}
		}
	})
	p.expect(token.RParen)
	return args
}

func (p *Parser) parseSubscripts(e ast.NodeID, start uint32, allowCall bool) ast.NodeID {
	for {
		switch p.tok.Kind {
		case token.Dot:
			p.next()
			prop := p.parseMemberName()
			e = p.finish(ast.MemberExpression, start, e, prop)
		case token.QuestionDot:
			p.next()
			switch {
			case p.at(token.LBracket):
				p.next()
				var prop ast.NodeID
				p.with(0, ctxNoIn, func() { prop = p.parseExpression() })
				p.expect(token.RBracket)
				e = p.finish(ast.MemberExpression, start, e, prop)
				p.setFlag(e, ast.FlagComputed|ast.FlagOptional)
			case p.at(token.LParen):
				if !allowCall {
					p.unexpected("optional call in new expression")
				}
				args := p.parseArguments()
				e = p.finishList(ast.CallExpression, start, args, e, ast.NoNodeID)
				p.setFlag(e, ast.FlagOptional)
			default:
				prop := p.parseMemberName()
				e = p.finish(ast.MemberExpression, start, e, prop)
				p.setFlag(e, ast.FlagOptional)
			}
		case token.LBracket:
			p.next()
			var prop ast.NodeID
			p.with(0, ctxNoIn|ctxCondConsequent, func() { prop = p.parseExpression() })
			p.expect(token.RBracket)
			e = p.finish(ast.MemberExpression, start, e, prop)
			p.setFlag(e, ast.FlagComputed)
		case token.LParen:
			if !allowCall {
				return e
			}
			args := p.parseArguments()
			e = p.finishList(ast.CallExpression, start, args, e, ast.NoNodeID)
		case token.Lt:
			if !allowCall {
				return e
			}
			ta, ok := p.try(func() ast.NodeID {
				ta := p.parseTypeArgs()
				if !p.at(token.LParen) {
					p.unexpected("expected '('")
				}
				return ta
			})
			if !ok {
				return e
			}
			args := p.parseArguments()
			e = p.finishList(ast.CallExpression, start, args, e, ta)
		case token.NoSubstTemplate, token.TemplateHead:
			quasi := p.parseTemplate()
			e = p.finish(ast.TaggedTemplateExpression, start, e, ast.NoNodeID, quasi)
		case token.Bang:
			if !p.ts() || p.tok.NewlineBefore {
				return e
			}
			p.next()
			e = p.finish(ast.NonNullExpression, start, e)
		default:
			return e
		}
	}
}

func (p *Parser) parseMemberName() ast.NodeID {
	if p.at(token.PrivateName) {
		t := p.next()
		return p.tree.NewText(ast.PrivateName, t.Span, t.Text)
	}
	return p.name()
}
