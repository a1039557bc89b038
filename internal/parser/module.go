package parser

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// parseImport parses every static import form, including Flow's
// `import type` and `import typeof`.
func (p *Parser) parseImport() ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.KwImport)

	if p.at(token.String) {
		src := p.parseModuleSource()
		p.semicolon()
		return p.finishList(ast.ImportDeclaration, start, nil, ast.NoNodeID, src)
	}

	kind := ""
	if p.atWord("type") || p.at(token.KwTypeof) {
		if p.at(token.KwTypeof) && !p.flow() {
			p.notInDialect("import typeof")
		}
		nt := p.peek()
		if nt.Kind == token.LBrace || nt.Kind == token.Star ||
			nt.Kind == token.Ident && (!nt.IsWord("from") || p.peekN(1).IsWord("from")) {
			kind = p.next().Text
		}
	}

	var specs []ast.NodeID
	if p.at(token.Ident) {
		local := p.ident()
		specs = append(specs, p.tree.New(ast.ImportDefaultSpecifier, p.tree.Span(local), local))
		if p.eat(token.Comma) {
			specs = append(specs, p.parseImportBindings()...)
		}
	} else {
		specs = p.parseImportBindings()
	}
	p.expectWord("from")
	src := p.parseModuleSource()
	p.semicolon()
	id := p.finishList(ast.ImportDeclaration, start, specs, ast.NoNodeID, src)
	p.node(id).Text = kind
	return id
}

// parseImportBindings parses `* as ns` or `{ a, b as c }`.
func (p *Parser) parseImportBindings() []ast.NodeID {
	if p.at(token.Star) {
		start := p.tok.Span.Start
		p.next()
		p.expectWord("as")
		local := p.ident()
		return []ast.NodeID{p.finish(ast.ImportNamespaceSpecifier, start, local)}
	}
	p.expect(token.LBrace)
	var specs []ast.NodeID
	for !p.at(token.RBrace) {
		specs = append(specs, p.parseImportSpecifier())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	return specs
}

// parseImportSpecifier parses `a`, `a as b`, `type a as b`, `typeof a`.
func (p *Parser) parseImportSpecifier() ast.NodeID {
	start := p.tok.Span.Start
	kind := ""
	if p.atWord("type") || p.at(token.KwTypeof) {
		nt := p.peek()
		if nt.IsName() && !(nt.IsWord("as") && p.peekN(1).IsName()) {
			kind = p.next().Text
		}
	}
	var imported ast.NodeID
	if p.at(token.String) {
		t := p.next()
		imported = p.tree.NewText(ast.StringLiteral, t.Span, t.Text)
	} else {
		imported = p.name()
	}
	var local ast.NodeID
	if p.eatWord("as") {
		local = p.ident()
	} else {
		if p.tree.Kind(imported) != ast.Identifier {
			p.unexpected("expected 'as'")
		}
		local = p.tree.NewText(ast.Identifier, p.tree.Span(imported), p.tree.Text(imported))
	}
	return p.finishText(ast.ImportSpecifier, start, kind, local, imported)
}

func (p *Parser) parseModuleSource() ast.NodeID {
	if !p.at(token.String) {
		p.unexpected("expected module specifier")
	}
	t := p.next()
	return p.tree.NewText(ast.StringLiteral, t.Span, t.Text)
}

// parseExport parses export declarations, lists, re-exports, defaults and
// TypeScript's `export =`.
func (p *Parser) parseExport() ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.KwExport)
	dstart := p.tok.Span.Start

	switch {
	case p.at(token.Star):
		p.next()
		ns := ast.NoNodeID
		if p.eatWord("as") {
			ns = p.name()
		}
		p.expectWord("from")
		src := p.parseModuleSource()
		p.semicolon()
		return p.finish(ast.ExportAllDeclaration, start, ns, src)

	case p.at(token.KwDefault):
		p.next()
		dstart = p.tok.Span.Start
		var decl ast.NodeID
		switch {
		case p.at(token.KwFunction) || p.atWord("async") && p.peek().Kind == token.KwFunction && !p.peek().NewlineBefore:
			decl = p.parseFunction(dstart, fnExportDefault)
		case p.at(token.KwClass):
			decl = p.parseClass(dstart, true, 0)
		case p.atWord("interface") && p.ts() && p.peek().Kind == token.Ident:
			decl = p.parseInterface(dstart, 0)
		default:
			decl = p.parseAssign()
			p.semicolon()
		}
		return p.finish(ast.ExportDefaultDeclaration, start, decl)

	case p.at(token.Assign):
		if !p.ts() {
			p.notInDialect("export =")
		}
		p.next()
		e := p.parseExpression()
		p.semicolon()
		return p.finish(ast.ExportAssignment, start, e)

	case p.at(token.LBrace):
		return p.parseExportList(start, "")

	case p.atWord("type") && p.peek().Kind == token.LBrace:
		p.next()
		return p.parseExportList(start, "type")

	case p.atWord("type") && p.peek().Kind == token.Star && p.flow():
		p.next()
		p.next()
		p.expectWord("from")
		src := p.parseModuleSource()
		p.semicolon()
		id := p.finish(ast.ExportAllDeclaration, start, ast.NoNodeID, src)
		p.node(id).Text = "type"
		return id
	}

	var decl ast.NodeID
	switch {
	case p.atAny(token.KwVar, token.KwConst) || p.atWord("let"):
		decl = p.parseVarStatement(dstart, 0)
	case p.at(token.KwFunction) || p.atWord("async"):
		decl = p.parseFunction(dstart, fnStatement)
	case p.at(token.KwClass):
		decl = p.parseClass(dstart, true, 0)
	case p.atWord("type"):
		decl = p.parseTypeAlias(dstart, 0)
	case p.atWord("opaque") && p.flow():
		decl = p.parseOpaqueType(dstart, 0)
	case p.atWord("interface"):
		decl = p.parseInterface(dstart, 0)
	case p.atWord("declare") && p.ts():
		decl = p.parseDeclare(dstart)
	default:
		p.unexpected("expected declaration after 'export'")
	}
	return p.finish(ast.ExportNamedDeclaration, start, decl)
}

// parseExportList parses `{ a, b as c } [from 'x'];`.
func (p *Parser) parseExportList(start uint32, kind string) ast.NodeID {
	specs := p.parseExportSpecifiers()
	src := ast.NoNodeID
	if p.eatWord("from") {
		src = p.parseModuleSource()
	}
	p.semicolon()
	id := p.finishList(ast.ExportNamedDeclaration, start, specs, ast.NoNodeID, src)
	p.node(id).Text = kind
	return id
}

func (p *Parser) parseExportSpecifiers() []ast.NodeID {
	p.expect(token.LBrace)
	var specs []ast.NodeID
	for !p.at(token.RBrace) {
		start := p.tok.Span.Start
		local := p.exportName()
		exported := ast.NoNodeID
		if p.eatWord("as") {
			exported = p.exportName()
		}
		specs = append(specs, p.finish(ast.ExportSpecifier, start, local, exported))
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	return specs
}

func (p *Parser) exportName() ast.NodeID {
	if p.at(token.String) {
		t := p.next()
		return p.tree.NewText(ast.StringLiteral, t.Span, t.Text)
	}
	return p.name()
}
