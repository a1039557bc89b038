package parser

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// parseClass parses a class declaration or expression. flags may carry
// FlagDeclare for `declare class` in TypeScript.
func (p *Parser) parseClass(start uint32, isDecl bool, flags ast.Flags) ast.NodeID {
	p.expect(token.KwClass)
	id := ast.NoNodeID
	if p.at(token.Ident) && !p.atWord("implements") {
		id = p.ident()
	}
	tp := ast.NoNodeID
	if p.at(token.Lt) {
		tp = p.parseTypeParams()
	}
	super, superArgs := ast.NoNodeID, ast.NoNodeID
	if p.eat(token.KwExtends) {
		super = p.parseLeftHandSide(false)
		if p.at(token.Lt) {
			superArgs = p.parseTypeArgs()
		}
	}
	var impls []ast.NodeID
	if p.eatWord("implements") {
		for {
			impls = append(impls, p.parseInterfaceRef())
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	body := p.parseClassBody(flags.Has(ast.FlagDeclare) || p.has(ctxInDeclare))

	kind := ast.ClassExpression
	if isDecl {
		kind = ast.ClassDeclaration
	}
	cls := p.finishList(kind, start, impls, id, tp, super, superArgs, body)
	p.setFlag(cls, flags)
	return cls
}

// parseInterfaceRef parses `Name<Args>` in extends/implements lists.
func (p *Parser) parseInterfaceRef() ast.NodeID {
	start := p.tok.Span.Start
	id := p.parseQualifiedTypeName()
	args := ast.NoNodeID
	if p.at(token.Lt) {
		args = p.parseTypeArgs()
	}
	return p.finish(ast.InterfaceExtends, start, id, args)
}

func (p *Parser) parseClassBody(declare bool) ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.LBrace)
	var members []ast.NodeID
	for !p.at(token.RBrace) {
		if p.eat(token.Semicolon) {
			continue
		}
		if p.at(token.EOF) {
			p.unexpected("expected '}'")
		}
		members = append(members, p.parseClassMember(declare))
	}
	p.next()
	return p.finishList(ast.ClassBody, start, members)
}

// isModifier reports whether the current word is a modifier rather than a
// member name: it must be followed by something that can start a member.
func (p *Parser) isModifier(allowNewline bool) bool {
	nt := p.peek()
	if nt.NewlineBefore && !allowNewline {
		return false
	}
	switch nt.Kind {
	case token.Ident, token.String, token.Number, token.BigInt, token.LBracket,
		token.PrivateName, token.Star, token.Plus, token.Minus, token.LBrace:
		return true
	}
	return nt.Kind.IsKeyword()
}

func (p *Parser) parseClassMember(declare bool) ast.NodeID {
	start := p.tok.Span.Start
	var flags ast.Flags
	kind := "method"

modifiers:
	for {
		switch {
		case p.atWord("static") && p.isModifier(true) && !flags.Has(ast.FlagStatic):
			flags |= ast.FlagStatic
		case p.atWord("declare") && p.isModifier(false) && !flags.Has(ast.FlagDeclare):
			flags |= ast.FlagDeclare
		case p.atWord("readonly") && p.isModifier(false) && !flags.Has(ast.FlagReadonly):
			flags |= ast.FlagReadonly
		case p.flow() && p.at(token.Plus):
			flags |= ast.FlagCovariant
		case p.flow() && p.at(token.Minus):
			flags |= ast.FlagContravariant
		default:
			break modifiers
		}
		p.next()
	}
	if flags.Has(ast.FlagStatic) && p.at(token.LBrace) {
		p.notInDialect("static block")
	}
	if p.at(token.LBracket) && p.peek().IsName() && p.peekN(1).Kind == token.Colon {
		// [key: K]: V
		id := p.parseIndexer(start, flags)
		p.semicolon()
		return id
	}
	if p.atWord("async") && p.isModifier(false) && p.peek().Kind != token.LBrace {
		p.next()
		flags |= ast.FlagAsync
	}
	if p.eat(token.Star) {
		flags |= ast.FlagGenerator
	}
	if (p.atWord("get") || p.atWord("set")) && p.isModifier(true) && p.peek().Kind != token.LBrace {
		kind = p.next().Text
	}

	key, computed := p.parsePropertyKey()
	if computed {
		flags |= ast.FlagComputed
	}

	if p.at(token.LParen) || p.at(token.Lt) {
		if !computed && kind == "method" && p.tree.Kind(key) == ast.Identifier && p.tree.Text(key) == "constructor" {
			kind = "constructor"
		}
		async, gen := flags.Has(ast.FlagAsync), flags.Has(ast.FlagGenerator)
		var (
			tp, ret, body ast.NodeID
			params        []ast.NodeID
		)
		p.with(fnCtx(async, gen), fnClear, func() {
			tp, params, ret, _ = p.parseSignature()
			if !p.at(token.LBrace) && (declare || p.ts()) {
				p.semicolon()
				return
			}
			body = p.parseFunctionBody()
		})
		m := p.finishList(ast.ClassMethod, start, params, key, tp, ret, body)
		p.node(m).Text = kind
		p.setFlag(m, flags)
		return m
	}

	if kind != "method" {
		p.unexpected("expected '('")
	}
	if p.at(token.Question) {
		p.next()
		flags |= ast.FlagOptional
	}
	typ, value := ast.NoNodeID, ast.NoNodeID
	if p.at(token.Colon) {
		typ = p.parseTypeAnnotation()
	}
	if p.eat(token.Assign) {
		p.with(ctxInFunction, ctxNoIn|ctxCondConsequent|ctxInLoop|ctxInSwitch, func() { value = p.parseAssign() })
	}
	p.semicolon()
	prop := p.finish(ast.ClassProperty, start, key, typ, value)
	p.setFlag(prop, flags)
	return prop
}
