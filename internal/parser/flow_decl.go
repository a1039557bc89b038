package parser

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// parseTypeAlias parses `type Name<T> = T;`. p.tok is `type`.
func (p *Parser) parseTypeAlias(start uint32, flags ast.Flags) ast.NodeID {
	p.expectWord("type")
	name := p.ident()
	tp := ast.NoNodeID
	if p.at(token.Lt) {
		tp = p.parseTypeParams()
	}
	p.expect(token.Assign)
	body := p.parseType()
	p.semicolon()
	id := p.finish(ast.TypeAlias, start, name, tp, body)
	p.setFlag(id, flags)
	return id
}

// parseOpaqueType parses `opaque type Name<T>: Super = Impl;`. Declared
// opaque types have no implementation.
func (p *Parser) parseOpaqueType(start uint32, flags ast.Flags) ast.NodeID {
	p.expectWord("opaque")
	p.expectWord("type")
	name := p.ident()
	tp := ast.NoNodeID
	if p.at(token.Lt) {
		tp = p.parseTypeParams()
	}
	super := ast.NoNodeID
	if p.eat(token.Colon) {
		super = p.parseType()
	}
	impl := ast.NoNodeID
	if !flags.Has(ast.FlagDeclare) {
		p.expect(token.Assign)
		impl = p.parseType()
	}
	p.semicolon()
	id := p.finish(ast.OpaqueType, start, name, tp, super, impl)
	p.setFlag(id, flags)
	return id
}

// parseInterface parses `interface Name<T> extends A, B { ... }`.
func (p *Parser) parseInterface(start uint32, flags ast.Flags) ast.NodeID {
	p.expectWord("interface")
	name := p.ident()
	tp := ast.NoNodeID
	if p.at(token.Lt) {
		tp = p.parseTypeParams()
	}
	var extends []ast.NodeID
	if p.eat(token.KwExtends) {
		for {
			extends = append(extends, p.parseInterfaceRef())
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	body := p.parseObjectType(false, false)
	id := p.finishList(ast.InterfaceDeclaration, start, extends, name, tp, body)
	p.setFlag(id, flags)
	return id
}

// isDeclareStart reports whether the token after `declare` starts an
// ambient declaration.
func (p *Parser) isDeclareStart(nt token.Token) bool {
	switch nt.Kind {
	case token.KwVar, token.KwConst, token.KwFunction, token.KwClass:
		return true
	case token.KwExport:
		return p.flow()
	case token.Ident:
		switch nt.Text {
		case "let", "type", "interface", "module":
			return true
		case "opaque":
			return p.flow()
		case "global", "namespace", "abstract", "enum":
			return p.ts()
		}
	}
	return false
}

// parseDeclare parses an ambient declaration. p.tok is `declare`.
func (p *Parser) parseDeclare(start uint32) ast.NodeID {
	p.expectWord("declare")
	switch {
	case p.atAny(token.KwVar, token.KwConst) || p.atWord("let"):
		return p.parseVarStatement(start, ast.FlagDeclare)
	case p.at(token.KwFunction):
		if p.ts() {
			fn := p.parseFunction(start, fnStatement)
			if p.tree.Kid(fn, ast.SlotFnBody).IsValid() {
				p.failAt(p.tree.Span(fn), diag.SynUnexpectedToken, "a declared function cannot have a body")
			}
			p.setFlag(fn, ast.FlagDeclare)
			return fn
		}
		return p.parseDeclareFunction(start)
	case p.at(token.KwClass):
		if p.ts() {
			return p.parseClass(start, true, ast.FlagDeclare)
		}
		return p.parseDeclareClass(start)
	case p.atWord("type"):
		return p.parseTypeAlias(start, ast.FlagDeclare)
	case p.atWord("opaque"):
		return p.parseOpaqueType(start, ast.FlagDeclare)
	case p.atWord("interface"):
		return p.parseInterface(start, ast.FlagDeclare)
	case p.atWord("module"):
		if p.peek().Kind == token.Dot {
			return p.parseDeclareModuleExports(start)
		}
		return p.parseDeclareModule(start)
	case p.at(token.KwExport):
		return p.parseDeclareExport(start)
	}
	p.notInDialect("declare " + p.tok.Text)
	return ast.NoNodeID
}

// parseDeclareFunction parses Flow's `declare function f<T>(x: T): R %checks;`.
func (p *Parser) parseDeclareFunction(start uint32) ast.NodeID {
	p.expect(token.KwFunction)
	name := p.ident()
	fn := p.parseFunctionType(p.tok.Span.Start, token.Colon)
	pred := ast.NoNodeID
	if p.at(token.Percent) {
		pred = p.parsePredicate()
	}
	p.semicolon()
	return p.finish(ast.DeclareFunction, start, name, ast.NoNodeID, fn, pred)
}

// parseDeclareClass parses `declare class A<T> extends B<T> mixins M
// implements I { ... }`.
func (p *Parser) parseDeclareClass(start uint32) ast.NodeID {
	p.expect(token.KwClass)
	name := p.ident()
	tp := ast.NoNodeID
	if p.at(token.Lt) {
		tp = p.parseTypeParams()
	}
	extends := ast.NoNodeID
	if p.eat(token.KwExtends) {
		extends = p.parseInterfaceRef()
	}
	mixins := ast.NoNodeID
	if p.atWord("mixins") {
		mstart := p.tok.Span.Start
		p.next()
		var refs []ast.NodeID
		for {
			refs = append(refs, p.parseInterfaceRef())
			if !p.eat(token.Comma) {
				break
			}
		}
		mixins = p.finishList(ast.ClassMixins, mstart, refs)
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
	body := p.parseObjectType(true, true)
	return p.finishList(ast.DeclareClass, start, impls, name, tp, body, extends, mixins)
}

// parseDeclareModuleExports parses `declare module.exports: T;`.
func (p *Parser) parseDeclareModuleExports(start uint32) ast.NodeID {
	p.expectWord("module")
	p.expect(token.Dot)
	p.expectWord("exports")
	ann := p.parseTypeAnnotation()
	p.semicolon()
	return p.finish(ast.DeclareModuleExports, start, ann)
}

// parseDeclareModule parses `declare module 'name' { ... }`.
func (p *Parser) parseDeclareModule(start uint32) ast.NodeID {
	p.expectWord("module")
	var name ast.NodeID
	if p.at(token.String) {
		t := p.next()
		name = p.tree.NewText(ast.StringLiteral, t.Span, t.Text)
	} else {
		name = p.ident()
	}
	var body ast.NodeID
	p.with(ctxInDeclare, 0, func() { body = p.parseBlock() })
	id := p.finish(ast.ModuleDeclaration, start, name, ast.NoNodeID, body)
	p.setFlag(id, ast.FlagDeclare)
	return id
}

// parseDeclareExport parses Flow's `declare export ...` forms.
func (p *Parser) parseDeclareExport(start uint32) ast.NodeID {
	p.expect(token.KwExport)
	dstart := p.tok.Span.Start

	if p.eat(token.KwDefault) {
		var decl ast.NodeID
		switch {
		case p.at(token.KwFunction):
			decl = p.parseDeclareFunction(dstart)
		case p.at(token.KwClass):
			decl = p.parseDeclareClass(dstart)
		default:
			decl = p.parseType()
			p.semicolon()
		}
		id := p.finish(ast.DeclareExportDeclaration, start, decl)
		p.setFlag(id, ast.FlagDefault)
		return id
	}

	switch {
	case p.at(token.Star):
		p.next()
		ns := ast.NoNodeID
		if p.eatWord("as") {
			ns = p.ident()
		}
		p.expectWord("from")
		src := p.parseModuleSource()
		p.semicolon()
		return p.finish(ast.DeclareExportAll, start, ns, src)
	case p.at(token.LBrace):
		specs := p.parseExportSpecifiers()
		src := ast.NoNodeID
		if p.eatWord("from") {
			src = p.parseModuleSource()
		}
		p.semicolon()
		return p.finishList(ast.DeclareExportDeclaration, start, specs, ast.NoNodeID, src)
	}

	var decl ast.NodeID
	switch {
	case p.at(token.KwFunction):
		decl = p.parseDeclareFunction(dstart)
	case p.at(token.KwClass):
		decl = p.parseDeclareClass(dstart)
	case p.atAny(token.KwVar, token.KwConst) || p.atWord("let"):
		decl = p.parseVarStatement(dstart, ast.FlagDeclare)
	case p.atWord("type"):
		decl = p.parseTypeAlias(dstart, 0)
	case p.atWord("opaque"):
		decl = p.parseOpaqueType(dstart, ast.FlagDeclare)
	case p.atWord("interface"):
		decl = p.parseInterface(dstart, 0)
	default:
		p.unexpected("expected declaration after 'declare export'")
	}
	return p.finish(ast.DeclareExportDeclaration, start, decl)
}
