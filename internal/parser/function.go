package parser

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

type fnMode uint8

const (
	fnStatement     fnMode = iota
	fnExpression           // name optional
	fnExportDefault        // declaration, name optional
)

// контекст, сбрасываемый на границе функции
const fnClear = ctxNoIn | ctxCondConsequent | ctxNoAnonFnType | ctxAsync | ctxGenerator | ctxInLoop | ctxInSwitch

func fnCtx(async, gen bool) ctxFlags {
	f := ctxInFunction
	if async {
		f |= ctxAsync
	}
	if gen {
		f |= ctxGenerator
	}
	return f
}

// parseFunction parses `[async] function [*] [name] <T>(params): R %checks { body }`.
func (p *Parser) parseFunction(start uint32, mode fnMode) ast.NodeID {
	var flags ast.Flags
	if p.eatWord("async") {
		flags |= ast.FlagAsync
	}
	p.expect(token.KwFunction)
	if p.eat(token.Star) {
		flags |= ast.FlagGenerator
	}
	id := ast.NoNodeID
	if p.at(token.Ident) {
		id = p.ident()
	} else if mode == fnStatement {
		p.unexpected("expected function name")
	}

	async, gen := flags.Has(ast.FlagAsync), flags.Has(ast.FlagGenerator)
	var (
		tp, ret, pred, body ast.NodeID
		params              []ast.NodeID
	)
	p.with(fnCtx(async, gen), fnClear, func() {
		tp, params, ret, pred = p.parseSignature()
		if p.ts() && !p.at(token.LBrace) {
			// перегрузка или объявление без тела
			p.semicolon()
			return
		}
		body = p.parseFunctionBody()
	})

	kind := ast.FunctionDeclaration
	if mode == fnExpression {
		kind = ast.FunctionExpression
	}
	fn := p.finishList(kind, start, params, id, tp, ret, body, pred)
	p.setFlag(fn, flags)
	return fn
}

// parseSignature parses type parameters, parameters, return type and predicate.
func (p *Parser) parseSignature() (tp ast.NodeID, params []ast.NodeID, ret, pred ast.NodeID) {
	if p.at(token.Lt) {
		tp = p.parseTypeParams()
	}
	params = p.parseParams()
	ret, pred = p.parseReturnType()
	return tp, params, ret, pred
}

func (p *Parser) parseParams() []ast.NodeID {
	p.expect(token.LParen)
	var params []ast.NodeID
	for !p.at(token.RParen) {
		if p.at(token.Ellipsis) {
			params = append(params, p.parseRest())
		} else {
			params = append(params, p.parseBindingElement())
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	return params
}

// parseReturnType parses `: T`, `: %checks` and `: T %checks`.
func (p *Parser) parseReturnType() (ret, pred ast.NodeID) {
	if !p.at(token.Colon) {
		return ast.NoNodeID, ast.NoNodeID
	}
	start := p.tok.Span.Start
	if p.flow() && p.peek().Kind == token.Percent {
		p.next()
		return ast.NoNodeID, p.parsePredicate()
	}
	p.next()
	t := p.parseType()
	ret = p.finish(ast.TypeAnnotation, start, t)
	if p.flow() && p.at(token.Percent) {
		pred = p.parsePredicate()
	}
	return ret, pred
}

// parsePredicate parses `%checks` or `%checks(expr)`.
func (p *Parser) parsePredicate() ast.NodeID {
	start := p.tok.Span.Start
	pct := p.expect(token.Percent)
	if !p.atWord("checks") || !pct.Adjacent(p.tok) {
		p.unexpected("expected %checks")
	}
	p.next()
	expr := ast.NoNodeID
	if p.at(token.LParen) && !p.tok.NewlineBefore {
		p.next()
		expr = p.parseExpression()
		p.expect(token.RParen)
	}
	return p.finish(ast.Predicate, start, expr)
}

// parseTypeAnnotation parses `: T`.
func (p *Parser) parseTypeAnnotation() ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.Colon)
	t := p.parseType()
	return p.finish(ast.TypeAnnotation, start, t)
}

// --- patterns ---

// parseBindingElement parses a binding target with an optional default.
func (p *Parser) parseBindingElement() ast.NodeID {
	start := p.tok.Span.Start
	target := p.parseBindingTarget()
	if p.eat(token.Assign) {
		def := p.parseAssign()
		return p.finish(ast.AssignmentPattern, start, target, def)
	}
	return target
}

// parseBindingTarget parses an identifier or destructuring pattern with an
// optional `?` and type annotation.
func (p *Parser) parseBindingTarget() ast.NodeID {
	var id ast.NodeID
	switch {
	case p.at(token.LBrace):
		id = p.parseObjectPattern()
	case p.at(token.LBracket):
		id = p.parseArrayPattern()
	case p.at(token.KwThis) && p.peek().Kind == token.Colon:
		t := p.next()
		id = p.tree.NewText(ast.Identifier, t.Span, "this")
	default:
		id = p.ident()
	}
	if p.at(token.Question) && p.tree.Kind(id) == ast.Identifier {
		p.next()
		p.setFlag(id, ast.FlagOptional)
		p.extend(id)
	}
	if p.at(token.Colon) {
		p.tree.SetKid(id, ast.SlotTypeAnn, p.parseTypeAnnotation())
		p.extend(id)
	}
	return id
}

func (p *Parser) parseRest() ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.Ellipsis)
	arg := p.parseBindingTarget()
	return p.finish(ast.RestElement, start, arg)
}

func (p *Parser) parseObjectPattern() ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.LBrace)
	var props []ast.NodeID
	for !p.at(token.RBrace) {
		if p.at(token.Ellipsis) {
			props = append(props, p.parseRest())
		} else {
			pstart := p.tok.Span.Start
			key, computed := p.parsePropertyKey()
			var value ast.NodeID
			shorthand := false
			if p.eat(token.Colon) {
				value = p.parseBindingElement()
			} else {
				if computed || p.tree.Kind(key) != ast.Identifier {
					p.unexpected("expected ':'")
				}
				shorthand = true
				value = p.tree.NewText(ast.Identifier, p.tree.Span(key), p.tree.Text(key))
				if p.eat(token.Assign) {
					def := p.parseAssign()
					value = p.finish(ast.AssignmentPattern, pstart, value, def)
				}
			}
			prop := p.finish(ast.ObjectProperty, pstart, key, value)
			if computed {
				p.setFlag(prop, ast.FlagComputed)
			}
			if shorthand {
				p.setFlag(prop, ast.FlagShorthand)
			}
			props = append(props, prop)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	return p.finishList(ast.ObjectPattern, start, props)
}

func (p *Parser) parseArrayPattern() ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.LBracket)
	var elems []ast.NodeID
	for !p.at(token.RBracket) {
		switch {
		case p.at(token.Comma):
			elems = append(elems, ast.NoNodeID)
		case p.at(token.Ellipsis):
			elems = append(elems, p.parseRest())
		default:
			elems = append(elems, p.parseBindingElement())
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket)
	return p.finishList(ast.ArrayPattern, start, elems)
}

// parsePropertyKey parses an object or class member key.
func (p *Parser) parsePropertyKey() (key ast.NodeID, computed bool) {
	switch {
	case p.at(token.LBracket):
		p.next()
		key = p.parseAssign()
		p.expect(token.RBracket)
		return key, true
	case p.at(token.String):
		t := p.next()
		return p.tree.NewText(ast.StringLiteral, t.Span, t.Text), false
	case p.at(token.Number):
		t := p.next()
		return p.tree.NewText(ast.NumericLiteral, t.Span, t.Text), false
	case p.at(token.BigInt):
		t := p.next()
		return p.tree.NewText(ast.BigIntLiteral, t.Span, t.Text), false
	case p.at(token.PrivateName):
		t := p.next()
		return p.tree.NewText(ast.PrivateName, t.Span, t.Text), false
	}
	return p.name(), false
}

// toPattern converts an expression parsed before `=` or `of` into an
// assignment target.
func (p *Parser) toPattern(id ast.NodeID) ast.NodeID {
	n := p.node(id)
	if n == nil {
		return id
	}
	switch n.Kind {
	case ast.MemberExpression:
		if p.inOptionalChain(id) {
			p.failAt(n.Span, diagBadTarget, "optional chain cannot be assigned to")
		}
		return id
	case ast.Identifier, ast.ObjectPattern, ast.ArrayPattern,
		ast.AssignmentPattern, ast.RestElement:
		return id
	case ast.ArrayExpression:
		n.Kind = ast.ArrayPattern
		for i, el := range n.List {
			n.List[i] = p.toPattern(el)
		}
	case ast.ObjectExpression:
		n.Kind = ast.ObjectPattern
		for _, prop := range n.List {
			pn := p.node(prop)
			switch pn.Kind {
			case ast.ObjectProperty:
				if pn.Has(ast.FlagShorthand) {
					p.dropCoverInit(pn.Span.Start)
				}
				pn.Kids[ast.SlotValue] = p.toPattern(pn.Kids[ast.SlotValue])
			case ast.SpreadElement:
				pn.Kind = ast.RestElement
				pn.Kids[ast.SlotExpr] = p.toPattern(pn.Kids[ast.SlotExpr])
			default:
				p.failAt(pn.Span, diagBadTarget, "invalid destructuring target")
			}
		}
	case ast.SpreadElement:
		n.Kind = ast.RestElement
		n.Kids[ast.SlotExpr] = p.toPattern(n.Kids[ast.SlotExpr])
	case ast.AssignmentExpression:
		if n.Text != "=" {
			p.failAt(n.Span, diagBadTarget, "invalid assignment target")
		}
		n.Kind = ast.AssignmentPattern
		n.Text = ""
		n.Kids[ast.SlotLeft] = p.toPattern(n.Kids[ast.SlotLeft])
	default:
		p.failAt(n.Span, diagBadTarget, "invalid assignment target")
	}
	return id
}

// inOptionalChain reports whether id is, or hangs off, an unparenthesized `?.`.
func (p *Parser) inOptionalChain(id ast.NodeID) bool {
	for outer := true; ; outer = false {
		n := p.node(id)
		if n == nil || n.Kind != ast.MemberExpression && n.Kind != ast.CallExpression {
			return false
		}
		// скобки обрывают цепочку
		if !outer && n.Has(ast.FlagParenthesized) {
			return false
		}
		if n.Has(ast.FlagOptional) {
			return true
		}
		id = n.Kids[ast.SlotObject]
	}
}

// dropCoverInit forgets the `{a = 1}` recorded at start once it has become
// part of a pattern.
func (p *Parser) dropCoverInit(start uint32) {
	for i, sp := range p.coverInits {
		if sp.Start == start {
			p.coverInits = append(p.coverInits[:i], p.coverInits[i+1:]...)
			return
		}
	}
}
