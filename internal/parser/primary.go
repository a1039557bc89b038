package parser

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

func (p *Parser) parsePrimary() ast.NodeID {
	start := p.tok.Span.Start
	switch p.tok.Kind {
	case token.Ident:
		if p.atWord("async") && p.peek().Kind == token.KwFunction && !p.peek().NewlineBefore {
			return p.parseFunction(start, fnExpression)
		}
		return p.ident()
	case token.KwThis:
		p.next()
		return p.finish(ast.ThisExpression, start)
	case token.KwSuper:
		p.next()
		return p.finish(ast.Super, start)
	case token.KwNull:
		p.next()
		return p.finish(ast.NullLiteral, start)
	case token.KwTrue, token.KwFalse:
		t := p.next()
		return p.finishText(ast.BooleanLiteral, start, t.Text)
	case token.Number:
		t := p.next()
		return p.finishText(ast.NumericLiteral, start, t.Text)
	case token.BigInt:
		t := p.next()
		return p.finishText(ast.BigIntLiteral, start, t.Text)
	case token.String:
		t := p.next()
		return p.finishText(ast.StringLiteral, start, t.Text)
	case token.Slash, token.SlashAssign:
		p.setTok(p.lx.RescanRegex(p.tok))
		t := p.next()
		return p.finishText(ast.RegExpLiteral, start, t.Text)
	case token.NoSubstTemplate, token.TemplateHead:
		return p.parseTemplate()
	case token.LParen:
		return p.parseParenOrCast()
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseObjectLiteral()
	case token.KwFunction:
		return p.parseFunction(start, fnExpression)
	case token.KwClass:
		return p.parseClass(start, false, 0)
	case token.KwImport:
		p.next()
		if p.eat(token.Dot) {
			p.expectWord("meta")
			return p.finishText(ast.MetaProperty, start, "import.meta")
		}
		if !p.at(token.LParen) {
			p.unexpected("expected '(' after import")
		}
		return p.finish(ast.Import, start)
	case token.Lt:
		return p.parseJSX()
	}
	p.unexpected("expected expression")
	return ast.NoNodeID
}

// parseTemplate parses a template literal. Element text is the raw content
// between the delimiters.
func (p *Parser) parseTemplate() ast.NodeID {
	start := p.tok.Span.Start
	if p.at(token.NoSubstTemplate) {
		t := p.next()
		q := p.tree.NewText(ast.TemplateElement, t.Span, t.Text[1:len(t.Text)-1])
		return p.finishList(ast.TemplateLiteral, start, []ast.NodeID{q})
	}
	t := p.expect(token.TemplateHead)
	list := []ast.NodeID{p.tree.NewText(ast.TemplateElement, t.Span, t.Text[1:len(t.Text)-2])}
	for {
		var e ast.NodeID
		p.with(0, ctxNoIn|ctxCondConsequent, func() { e = p.parseExpression() })
		list = append(list, e)
		if !p.at(token.RBrace) {
			p.unexpected("expected '}' in template literal")
		}
		p.setTok(p.lx.RescanTemplateContinuation(p.tok))
		t = p.next()
		if t.Kind == token.TemplateTail {
			list = append(list, p.tree.NewText(ast.TemplateElement, t.Span, t.Text[1:len(t.Text)-1]))
			break
		}
		list = append(list, p.tree.NewText(ast.TemplateElement, t.Span, t.Text[1:len(t.Text)-2]))
	}
	return p.finishList(ast.TemplateLiteral, start, list)
}

// parseParenOrCast parses `(expr)` and the Flow type cast `(expr: T)`.
func (p *Parser) parseParenOrCast() ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.LParen)
	var e, ann ast.NodeID
	p.with(0, ctxNoIn|ctxCondConsequent|ctxNoAnonFnType, func() {
		e = p.parseExpression()
		if p.at(token.Colon) {
			if !p.flow() {
				p.notInDialect("type cast")
			}
			ann = p.parseTypeAnnotation()
		}
	})
	p.expect(token.RParen)
	if ann.IsValid() {
		return p.finish(ast.TypeCastExpression, start, e, ann)
	}
	p.setFlag(e, ast.FlagParenthesized)
	return e
}

func (p *Parser) parseArrayLiteral() ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.LBracket)
	var elems []ast.NodeID
	p.with(0, ctxNoIn|ctxCondConsequent, func() {
		for !p.at(token.RBracket) {
			switch {
			case p.at(token.Comma):
				elems = append(elems, ast.NoNodeID)
			case p.at(token.Ellipsis):
				s := p.tok.Span.Start
				p.next()
				arg := p.parseAssign()
				elems = append(elems, p.finish(ast.SpreadElement, s, arg))
			default:
				elems = append(elems, p.parseAssign())
			}
			if !p.eat(token.Comma) {
				break
			}
		}
	})
	p.expect(token.RBracket)
	return p.finishList(ast.ArrayExpression, start, elems)
}

func (p *Parser) parseObjectLiteral() ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.LBrace)
	var props []ast.NodeID
	p.with(0, ctxNoIn|ctxCondConsequent, func() {
		for !p.at(token.RBrace) {
			props = append(props, p.parseObjectMember())
			if !p.eat(token.Comma) {
				break
			}
		}
	})
	p.expect(token.RBrace)
	return p.finishList(ast.ObjectExpression, start, props)
}

// methodModifier reports whether the current word is get/set/async used as
// a modifier rather than as a key.
func (p *Parser) methodModifier() bool {
	if !p.atWord("get") && !p.atWord("set") && !p.atWord("async") {
		return false
	}
	nt := p.peek()
	switch nt.Kind {
	case token.LParen, token.Comma, token.Colon, token.RBrace, token.Assign, token.Lt, token.Question:
		return false
	}
	if p.atWord("async") && nt.NewlineBefore {
		return false
	}
	return true
}

func (p *Parser) parseObjectMember() ast.NodeID {
	start := p.tok.Span.Start
	if p.at(token.Ellipsis) {
		p.next()
		arg := p.parseAssign()
		return p.finish(ast.SpreadElement, start, arg)
	}

	var flags ast.Flags
	kind := "method"
	if p.methodModifier() {
		switch p.next().Text {
		case "async":
			flags |= ast.FlagAsync
		case "get":
			kind = "get"
		case "set":
			kind = "set"
		}
	}
	if p.eat(token.Star) {
		flags |= ast.FlagGenerator
	}
	key, computed := p.parsePropertyKey()
	if computed {
		flags |= ast.FlagComputed
	}

	if p.atAny(token.LParen, token.Lt) || flags&(ast.FlagAsync|ast.FlagGenerator) != 0 || kind != "method" {
		return p.parseMethodRest(ast.ObjectMethod, start, key, kind, flags)
	}

	if p.eat(token.Colon) {
		value := p.parseAssign()
		prop := p.finish(ast.ObjectProperty, start, key, value)
		p.setFlag(prop, flags)
		return prop
	}

	if computed || p.tree.Kind(key) != ast.Identifier {
		p.unexpected("expected ':'")
	}
	value := p.tree.NewText(ast.Identifier, p.tree.Span(key), p.tree.Text(key))
	if p.at(token.Assign) {
		// {a = 1} допустимо только как шаблон деструктуризации
		p.next()
		def := p.parseAssign()
		value = p.finish(ast.AssignmentPattern, start, value, def)
		p.coverInits = append(p.coverInits, p.spanFrom(start))
	}
	prop := p.finish(ast.ObjectProperty, start, key, value)
	p.setFlag(prop, ast.FlagShorthand)
	return prop
}

// parseMethodRest parses the signature and body of an object or class
// method after its key.
func (p *Parser) parseMethodRest(kind ast.Kind, start uint32, key ast.NodeID, text string, flags ast.Flags) ast.NodeID {
	async, gen := flags.Has(ast.FlagAsync), flags.Has(ast.FlagGenerator)
	var (
		tp, ret, pred, body ast.NodeID
		params              []ast.NodeID
	)
	p.with(fnCtx(async, gen), fnClear, func() {
		tp, params, ret, pred = p.parseSignature()
		body = p.parseFunctionBody()
	})
	m := p.finishList(kind, start, params, key, tp, ret, body, pred)
	p.node(m).Text = text
	p.setFlag(m, flags)
	return m
}
