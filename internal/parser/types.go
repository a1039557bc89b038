package parser

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// ключевые слова, которые в позиции типа дают KeywordType
var keywordTypes = map[string]Dialect{
	"any":       anyDialect,
	"mixed":     Flow,
	"empty":     Flow,
	"number":    anyDialect,
	"string":    anyDialect,
	"boolean":   anyDialect,
	"bool":      Flow,
	"bigint":    anyDialect,
	"symbol":    anyDialect,
	"unknown":   TypeScript,
	"never":     TypeScript,
	"undefined": TypeScript,
	"object":    TypeScript,
}

// anyDialect marks keywords shared by both dialects.
const anyDialect Dialect = 255

// parseType parses a full type: unions, intersections, function types.
func (p *Parser) parseType() ast.NodeID {
	start := p.tok.Span.Start
	leading := p.eat(token.Pipe)
	first := p.parseIntersectionType()
	if !p.atUnionBar() {
		if leading {
			// `| A` is still a one-member union in the source
			return p.finishList(ast.UnionType, start, []ast.NodeID{first})
		}
		return first
	}
	list := []ast.NodeID{first}
	for p.atUnionBar() {
		p.next()
		list = append(list, p.parseIntersectionType())
	}
	return p.finishList(ast.UnionType, start, list)
}

// atUnionBar reports a '|' that continues a union, not the `|}` closing an
// exact object type.
func (p *Parser) atUnionBar() bool {
	return p.at(token.Pipe) && p.peek().Kind != token.RBrace
}

func (p *Parser) parseIntersectionType() ast.NodeID {
	start := p.tok.Span.Start
	p.eat(token.Amp)
	first := p.parseAnonFunctionType()
	if !p.at(token.Amp) {
		return first
	}
	list := []ast.NodeID{first}
	for p.eat(token.Amp) {
		list = append(list, p.parseAnonFunctionType())
	}
	return p.finishList(ast.IntersectionType, start, list)
}

// parseAnonFunctionType parses Flow's `T => U` with one unparenthesized
// parameter.
func (p *Parser) parseAnonFunctionType() ast.NodeID {
	start := p.tok.Span.Start
	t := p.parsePrefixType()
	if !p.flow() || p.has(ctxNoAnonFnType) || !p.at(token.FatArrow) {
		return t
	}
	p.next()
	param := p.tree.New(ast.FunctionTypeParam, p.tree.Span(t), ast.NoNodeID, t)
	ret := p.parseType()
	return p.finishList(ast.FunctionType, start, []ast.NodeID{param}, ast.NoNodeID, ast.NoNodeID, ret)
}

func (p *Parser) parsePrefixType() ast.NodeID {
	start := p.tok.Span.Start
	if p.at(token.Question) {
		if !p.flow() {
			p.notInDialect("maybe type")
		}
		p.next()
		inner := p.parsePrefixType()
		return p.finish(ast.NullableType, start, inner)
	}
	if p.ts() && (p.atWord("keyof") || p.atWord("readonly") || p.atWord("unique")) && p.peek().Kind != token.Dot {
		op := p.next().Text
		inner := p.parsePrefixType()
		return p.finishText(ast.TypeOperator, start, op, inner)
	}
	return p.parsePostfixType()
}

func (p *Parser) parsePostfixType() ast.NodeID {
	start := p.tok.Span.Start
	t := p.parsePrimaryType()
	for !p.tok.NewlineBefore {
		switch {
		case p.at(token.LBracket):
			p.next()
			if p.eat(token.RBracket) {
				t = p.finish(ast.ArrayType, start, t)
				continue
			}
			var idx ast.NodeID
			p.with(0, ctxNoAnonFnType, func() { idx = p.parseType() })
			p.expect(token.RBracket)
			t = p.finish(ast.IndexedAccessType, start, t, idx)
		case p.at(token.QuestionDot) && p.flow() && p.peek().Kind == token.LBracket:
			p.next()
			p.next()
			var idx ast.NodeID
			p.with(0, ctxNoAnonFnType, func() { idx = p.parseType() })
			p.expect(token.RBracket)
			t = p.finish(ast.IndexedAccessType, start, t, idx)
			p.setFlag(t, ast.FlagOptional)
		default:
			return t
		}
	}
	return t
}

func (p *Parser) parsePrimaryType() ast.NodeID {
	start := p.tok.Span.Start
	switch p.tok.Kind {
	case token.Ident:
		return p.parseNamedType()
	case token.KwVoid, token.KwNull, token.KwThis:
		t := p.next()
		return p.finishText(ast.KeywordType, start, t.Text)
	case token.KwTypeof:
		p.next()
		target := p.parseQualifiedTypeName()
		return p.finish(ast.TypeofType, start, target)
	case token.Star:
		if !p.flow() {
			p.notInDialect("existential type")
		}
		p.next()
		return p.finish(ast.ExistsType, start)
	case token.String, token.Number, token.BigInt, token.KwTrue, token.KwFalse:
		t := p.next()
		return p.finishText(ast.LiteralType, start, t.Text)
	case token.NoSubstTemplate:
		if !p.ts() {
			p.notInDialect("template literal type")
		}
		t := p.next()
		return p.finishText(ast.LiteralType, start, t.Text)
	case token.Minus:
		if nt := p.peek(); nt.Kind == token.Number || nt.Kind == token.BigInt {
			p.next()
			t := p.next()
			return p.finishText(ast.LiteralType, start, "-"+t.Text)
		}
	case token.LBrace:
		return p.parseObjectType(false, false)
	case token.LBracket:
		return p.parseTupleType()
	case token.LParen, token.Lt:
		return p.parseParenOrFunctionType()
	case token.KwNew:
		if p.ts() {
			p.next()
			fn := p.parseFunctionType(start, token.FatArrow)
			p.setFlag(fn, ast.FlagConstructor)
			return fn
		}
	}
	p.failAt(p.tok.Span, diag.SynExpectType, "unexpected "+describe(p.tok)+", expected type")
	return ast.NoNodeID
}

// parseNamedType parses keyword types, inline interfaces and generic
// references `A.B<T>`.
func (p *Parser) parseNamedType() ast.NodeID {
	start := p.tok.Span.Start
	nt := p.peek()
	if d, ok := keywordTypes[p.tok.Text]; ok && nt.Kind != token.Dot && (d == anyDialect || d == p.opts.Dialect) {
		t := p.next()
		return p.finishText(ast.KeywordType, start, t.Text)
	}
	if p.flow() && p.atWord("interface") && (nt.Kind == token.LBrace || nt.IsWord("extends")) {
		p.next()
		var extends []ast.NodeID
		if p.eatWord("extends") {
			for {
				extends = append(extends, p.parseInterfaceRef())
				if !p.eat(token.Comma) {
					break
				}
			}
		}
		body := p.parseObjectType(false, false)
		return p.finishList(ast.InterfaceType, start, extends, ast.NoNodeID, ast.NoNodeID, body)
	}
	id := p.parseQualifiedTypeName()
	args := ast.NoNodeID
	if p.at(token.Lt) && !p.tok.NewlineBefore {
		args = p.parseTypeArgs()
	}
	return p.finish(ast.GenericType, start, id, args)
}

// parseQualifiedTypeName parses `A` or `A.B.C`.
func (p *Parser) parseQualifiedTypeName() ast.NodeID {
	start := p.tok.Span.Start
	id := p.ident()
	for p.at(token.Dot) {
		p.next()
		right := p.name()
		id = p.finish(ast.QualifiedTypeName, start, id, right)
	}
	return id
}

func (p *Parser) parseTupleType() ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.LBracket)
	var elems []ast.NodeID
	p.with(0, ctxNoAnonFnType, func() {
		for !p.at(token.RBracket) {
			elems = append(elems, p.parseType())
			if !p.eat(token.Comma) {
				break
			}
		}
	})
	p.expect(token.RBracket)
	return p.finishList(ast.TupleType, start, elems)
}

// parseParenOrFunctionType parses `(T)` or a function type
// `<T>(a: A, B, ...rest: C) => R`.
func (p *Parser) parseParenOrFunctionType() ast.NodeID {
	start := p.tok.Span.Start
	if p.at(token.Lt) {
		return p.parseFunctionType(start, token.FatArrow)
	}
	if fn, ok := p.try(func() ast.NodeID { return p.parseFunctionType(start, token.FatArrow) }); ok {
		return fn
	}
	p.expect(token.LParen)
	var t ast.NodeID
	p.with(0, ctxNoAnonFnType, func() { t = p.parseType() })
	p.expect(token.RParen)
	p.setFlag(t, ast.FlagParenthesized)
	return t
}

// parseFunctionType parses type parameters, the parameter list and the
// return type introduced by sep (`=>` for function types, `:` for methods
// and declared functions).
func (p *Parser) parseFunctionType(start uint32, sep token.Kind) ast.NodeID {
	tp := ast.NoNodeID
	if p.at(token.Lt) {
		tp = p.parseTypeParams()
	}
	p.expect(token.LParen)
	var (
		params     []ast.NodeID
		this, rest ast.NodeID
	)
	p.with(0, ctxNoAnonFnType, func() {
		for !p.at(token.RParen) {
			switch {
			case p.at(token.Ellipsis):
				rstart := p.tok.Span.Start
				p.next()
				rest = p.parseFunctionTypeParam()
				p.node(rest).Span.Start = rstart
			case p.at(token.KwThis) && p.peek().Kind == token.Colon && len(params) == 0 && !this.IsValid():
				tstart := p.tok.Span.Start
				t := p.next()
				name := p.tree.NewText(ast.Identifier, t.Span, "this")
				p.next()
				typ := p.parseType()
				this = p.finish(ast.FunctionTypeParam, tstart, name, typ)
			default:
				params = append(params, p.parseFunctionTypeParam())
			}
			if !p.eat(token.Comma) {
				break
			}
		}
	})
	p.expect(token.RParen)
	p.expect(sep)
	ret := p.parseType()
	return p.finishList(ast.FunctionType, start, params, this, tp, ret, rest)
}

// parseFunctionTypeParam parses `name: T`, `name?: T` or an unnamed `T`.
func (p *Parser) parseFunctionTypeParam() ast.NodeID {
	start := p.tok.Span.Start
	if p.tok.IsName() {
		if nt := p.peek(); nt.Kind == token.Colon || nt.Kind == token.Question && p.peekN(1).Kind == token.Colon {
			name := p.name()
			optional := p.eat(token.Question)
			p.expect(token.Colon)
			typ := p.parseType()
			id := p.finish(ast.FunctionTypeParam, start, name, typ)
			if optional {
				p.setFlag(id, ast.FlagOptional)
			}
			return id
		}
	}
	if p.ts() {
		p.unexpected("expected parameter name")
	}
	typ := p.parseType()
	return p.finish(ast.FunctionTypeParam, start, ast.NoNodeID, typ)
}

// --- object types ---

// parseObjectType parses `{ ... }` and Flow's exact `{| ... |}`. allowStatic
// and allowProto enable the `static` and `proto` members of declare class
// bodies.
func (p *Parser) parseObjectType(allowStatic, allowProto bool) ast.NodeID {
	start := p.tok.Span.Start
	lbrace := p.expect(token.LBrace)
	exact := false
	if p.atAny(token.Pipe, token.OrOr) && lbrace.Adjacent(p.tok) {
		if !p.flow() {
			p.notInDialect("exact object type")
		}
		if p.at(token.OrOr) {
			// {||}
			p.next()
			p.expect(token.RBrace)
			id := p.finishList(ast.ObjectType, start, nil)
			p.setFlag(id, ast.FlagExact)
			return id
		}
		p.next()
		exact = true
	}
	var (
		members []ast.NodeID
		inexact bool
	)
	p.with(0, ctxNoAnonFnType, func() {
		for {
			if exact && p.at(token.Pipe) && p.peek().Kind == token.RBrace {
				break
			}
			if p.at(token.RBrace) {
				break
			}
			if p.at(token.EOF) {
				p.unexpected("expected '}'")
			}
			if p.at(token.Ellipsis) && p.flow() {
				if nt := p.peek(); nt.Kind == token.Comma || nt.Kind == token.Semicolon || nt.Kind == token.RBrace || nt.Kind == token.Pipe {
					p.next()
					inexact = true
					p.eatSeparator()
					continue
				}
			}
			members = append(members, p.parseObjectTypeMember(allowStatic, allowProto))
			if !p.eatSeparator() {
				break
			}
		}
	})
	if exact {
		p.expect(token.Pipe)
	}
	p.expect(token.RBrace)
	id := p.finishList(ast.ObjectType, start, members)
	if exact {
		p.setFlag(id, ast.FlagExact)
	}
	if inexact {
		p.setFlag(id, ast.FlagInexact)
	}
	return id
}

func (p *Parser) eatSeparator() bool {
	return p.eat(token.Comma) || p.eat(token.Semicolon) || p.tok.NewlineBefore && p.ts() && !p.at(token.RBrace)
}

func (p *Parser) parseObjectTypeMember(allowStatic, allowProto bool) ast.NodeID {
	start := p.tok.Span.Start
	var flags ast.Flags

	if p.at(token.Ellipsis) {
		p.next()
		t := p.parseType()
		return p.finish(ast.ObjectTypeSpread, start, t)
	}
	if allowStatic && p.atWord("static") && p.isTypeMemberModifier() {
		p.next()
		flags |= ast.FlagStatic
	}
	if allowProto && p.atWord("proto") && p.isTypeMemberModifier() {
		p.next()
	}
	if p.ts() && p.atWord("readonly") && p.isTypeMemberModifier() {
		p.next()
		flags |= ast.FlagReadonly
	}
	switch {
	case p.at(token.Plus) && p.flow():
		p.next()
		flags |= ast.FlagCovariant
	case p.at(token.Minus) && p.flow():
		p.next()
		flags |= ast.FlagContravariant
	}

	switch {
	case p.at(token.LBracket):
		if p.peek().Kind == token.LBracket {
			return p.parseInternalSlot(start, flags)
		}
		return p.parseIndexer(start, flags)
	case p.atAny(token.LParen, token.Lt):
		fn := p.parseFunctionType(p.tok.Span.Start, token.Colon)
		id := p.finish(ast.ObjectTypeCallProperty, start, ast.NoNodeID, fn)
		p.setFlag(id, flags)
		return id
	}

	text := ""
	if (p.atWord("get") || p.atWord("set")) && p.isTypeMemberModifier() {
		if nt := p.peek(); nt.Kind != token.LParen && nt.Kind != token.Lt {
			text = p.next().Text
		}
	}
	key, _ := p.parsePropertyKey()
	if p.atAny(token.LParen, token.Lt) {
		fn := p.parseFunctionType(p.tok.Span.Start, token.Colon)
		id := p.finishText(ast.ObjectTypeProperty, start, text, key, fn)
		p.setFlag(id, flags|ast.FlagMethod)
		return id
	}
	if p.eat(token.Question) {
		flags |= ast.FlagOptional
	}
	p.expect(token.Colon)
	value := p.parseType()
	id := p.finishText(ast.ObjectTypeProperty, start, text, key, value)
	p.setFlag(id, flags)
	return id
}

// isTypeMemberModifier reports whether a contextual word is followed by a
// member rather than being the member name itself.
func (p *Parser) isTypeMemberModifier() bool {
	switch p.peek().Kind {
	case token.Colon, token.Question, token.LParen, token.Lt, token.Comma, token.Semicolon, token.RBrace:
		return false
	}
	return true
}

// parseIndexer parses `[K]: V` and `[name: K]: V`.
func (p *Parser) parseIndexer(start uint32, flags ast.Flags) ast.NodeID {
	p.expect(token.LBracket)
	name := ast.NoNodeID
	if p.tok.IsName() && p.peek().Kind == token.Colon {
		name = p.name()
		p.next()
	}
	key := p.parseType()
	p.expect(token.RBracket)
	p.expect(token.Colon)
	value := p.parseType()
	id := p.finish(ast.ObjectTypeIndexer, start, name, key, value)
	p.setFlag(id, flags)
	return id
}

// parseInternalSlot parses Flow's `[[name]]: T` and `[[name]](): T`.
func (p *Parser) parseInternalSlot(start uint32, flags ast.Flags) ast.NodeID {
	p.expect(token.LBracket)
	p.expect(token.LBracket)
	key := p.ident()
	p.expect(token.RBracket)
	p.expect(token.RBracket)
	var value ast.NodeID
	if p.atAny(token.LParen, token.Lt) {
		value = p.parseFunctionType(p.tok.Span.Start, token.Colon)
		flags |= ast.FlagMethod
	} else {
		if p.eat(token.Question) {
			flags |= ast.FlagOptional
		}
		p.expect(token.Colon)
		value = p.parseType()
	}
	id := p.finish(ast.ObjectTypeInternalSlot, start, key, value)
	p.setFlag(id, flags)
	return id
}

// --- type parameters ---

// parseTypeParams parses `<+T: Bound = Default, ...>` (Flow) and
// `<T extends Bound = Default>` (TypeScript).
func (p *Parser) parseTypeParams() ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.Lt)
	var params []ast.NodeID
	p.with(0, ctxNoAnonFnType, func() {
		for !p.at(token.Gt) {
			params = append(params, p.parseTypeParam())
			if !p.eat(token.Comma) {
				break
			}
		}
	})
	p.expect(token.Gt)
	return p.finishList(ast.TypeParameterDeclaration, start, params)
}

func (p *Parser) parseTypeParam() ast.NodeID {
	start := p.tok.Span.Start
	var flags ast.Flags
	if p.flow() {
		if p.eat(token.Plus) {
			flags |= ast.FlagCovariant
		} else if p.eat(token.Minus) {
			flags |= ast.FlagContravariant
		}
	}
	if p.ts() && p.atWord("const") {
		p.notInDialect("const type parameter")
	}
	if !p.at(token.Ident) {
		p.unexpected("expected type parameter name")
	}
	name := p.next().Text
	bound, def := ast.NoNodeID, ast.NoNodeID
	switch {
	case p.flow() && p.at(token.Colon):
		p.next()
		bound = p.parseType()
	case p.at(token.KwExtends):
		p.next()
		bound = p.parseType()
	}
	if p.eat(token.Assign) {
		def = p.parseType()
	}
	id := p.finishText(ast.TypeParameter, start, name, bound, def)
	p.setFlag(id, flags)
	return id
}

// parseTypeArgs parses `<A, B>`.
func (p *Parser) parseTypeArgs() ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.Lt)
	var args []ast.NodeID
	p.with(0, ctxNoAnonFnType, func() {
		for !p.at(token.Gt) {
			args = append(args, p.parseType())
			if !p.eat(token.Comma) {
				break
			}
		}
	})
	p.expect(token.Gt)
	return p.finishList(ast.TypeParameterInstantiation, start, args)
}
