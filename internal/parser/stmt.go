package parser

import (
	"slices"

	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// parseDirectives parses a directive prologue ("use strict";) and the first
// statement that ends it.
func (p *Parser) parseDirectives(body []ast.NodeID) []ast.NodeID {
	for p.at(token.String) {
		stmt := p.parseStatement()
		body = append(body, stmt)
		expr := p.tree.Kid(stmt, ast.SlotExpr)
		if p.tree.Kind(stmt) != ast.ExpressionStatement || p.tree.Kind(expr) != ast.StringLiteral ||
			p.start(expr) != p.start(stmt) || p.node(expr).Has(ast.FlagParenthesized) {
			break
		}
		p.setFlag(stmt, ast.FlagDirective)
	}
	return body
}

func (p *Parser) parseStatement() ast.NodeID {
	pending := len(p.coverInits)
	id := p.parseStatementKind()
	if len(p.coverInits) > pending {
		p.failAt(p.coverInits[pending], diag.SynCoverInit, "shorthand property with '=' is only valid in a destructuring pattern")
	}
	return id
}

func (p *Parser) parseStatementKind() ast.NodeID {
	switch p.tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		start := p.tok.Span.Start
		p.next()
		return p.finish(ast.EmptyStatement, start)
	case token.KwVar, token.KwConst:
		return p.parseVarStatement(p.tok.Span.Start, 0)
	case token.KwFunction:
		return p.parseFunction(p.tok.Span.Start, fnStatement)
	case token.KwClass:
		return p.parseClass(p.tok.Span.Start, true, 0)
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak, token.KwContinue:
		return p.parseBreakContinue()
	case token.KwThrow:
		return p.parseThrow()
	case token.KwTry:
		return p.parseTry()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwWith:
		return p.parseWith()
	case token.KwDebugger:
		start := p.tok.Span.Start
		p.next()
		p.semicolon()
		return p.finish(ast.DebuggerStatement, start)
	case token.KwImport:
		if nt := p.peek(); nt.Kind != token.LParen && nt.Kind != token.Dot {
			return p.parseImport()
		}
	case token.KwExport:
		return p.parseExport()
	case token.KwEnum:
		p.notInDialect("enum")
	case token.Ident:
		if id, ok := p.parseContextualStatement(); ok {
			return id
		}
		if p.peek().Kind == token.Colon {
			return p.parseLabeled()
		}
	}
	return p.parseExpressionStatement()
}

// parseContextualStatement handles statements introduced by contextual
// keywords: let, async function, and the type-level declarations.
func (p *Parser) parseContextualStatement() (ast.NodeID, bool) {
	nt := p.peek()
	sameLine := !nt.NewlineBefore
	start := p.tok.Span.Start
	switch p.tok.Text {
	case "let":
		if nt.Kind == token.Ident || nt.Kind == token.LBracket || nt.Kind == token.LBrace {
			return p.parseVarStatement(start, 0), true
		}
	case "async":
		if nt.Kind == token.KwFunction && sameLine {
			return p.parseFunction(start, fnStatement), true
		}
	case "type":
		if nt.Kind == token.Ident && sameLine {
			return p.parseTypeAlias(start, 0), true
		}
	case "opaque":
		if p.flow() && nt.IsWord("type") && sameLine {
			return p.parseOpaqueType(start, 0), true
		}
	case "interface":
		if nt.Kind == token.Ident && sameLine {
			return p.parseInterface(start, 0), true
		}
	case "declare":
		if sameLine && p.isDeclareStart(nt) {
			return p.parseDeclare(start), true
		}
	case "abstract":
		if p.ts() && nt.Kind == token.KwClass && sameLine {
			p.notInDialect("abstract class")
		}
	}
	return ast.NoNodeID, false
}

func (p *Parser) parseBlock() ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.LBrace)
	var body []ast.NodeID
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.unexpected("expected '}'")
		}
		body = append(body, p.parseStatement())
	}
	p.next()
	return p.finishList(ast.BlockStatement, start, body)
}

// parseFunctionBody parses `{ ... }` with a directive prologue.
func (p *Parser) parseFunctionBody() ast.NodeID {
	start := p.tok.Span.Start
	outer := p.labels
	p.labels = nil
	defer func() { p.labels = outer }()
	p.expect(token.LBrace)
	var body []ast.NodeID
	if !p.at(token.RBrace) {
		body = p.parseDirectives(body)
	}
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.unexpected("expected '}'")
		}
		body = append(body, p.parseStatement())
	}
	p.next()
	return p.finishList(ast.BlockStatement, start, body)
}

func (p *Parser) parseExpressionStatement() ast.NodeID {
	start := p.tok.Span.Start
	expr := p.parseExpression()
	p.semicolon()
	return p.finish(ast.ExpressionStatement, start, expr)
}

func (p *Parser) parseLabeled() ast.NodeID {
	start := p.tok.Span.Start
	label := p.ident()
	name := p.tree.Text(label)
	if slices.Contains(p.labels, name) {
		p.failAt(p.tree.Span(label), diag.SynDuplicateLabel, "label '"+name+"' is already declared")
	}
	p.expect(token.Colon)
	p.labels = append(p.labels, name)
	defer func() { p.labels = p.labels[:len(p.labels)-1] }()
	body := p.parseStatement()
	return p.finish(ast.LabeledStatement, start, label, body)
}

// parseVarStatement parses `var|let|const declarators;`.
func (p *Parser) parseVarStatement(start uint32, flags ast.Flags) ast.NodeID {
	id := p.parseVarDeclaration(start, flags&ast.FlagDeclare != 0)
	if flags&ast.FlagDeclare == 0 && !p.has(ctxInDeclare) {
		p.checkConstInit(id)
	}
	p.semicolon()
	p.extend(id)
	p.setFlag(id, flags)
	return id
}

func (p *Parser) parseVarDeclaration(start uint32, declare bool) ast.NodeID {
	kind := p.next().Text
	var decls []ast.NodeID
	for {
		dstart := p.tok.Span.Start
		target := p.parseBindingTarget()
		init := ast.NoNodeID
		if p.eat(token.Assign) {
			init = p.parseAssign()
		}
		decls = append(decls, p.finish(ast.VariableDeclarator, dstart, target, init))
		if !p.eat(token.Comma) {
			break
		}
	}
	id := p.finishList(ast.VariableDeclaration, start, decls)
	p.node(id).Text = kind
	if declare {
		p.setFlag(id, ast.FlagDeclare)
	}
	return id
}

// checkConstInit rejects a const declarator without an initializer.
func (p *Parser) checkConstInit(decl ast.NodeID) {
	n := p.node(decl)
	if n.Text != "const" {
		return
	}
	for _, d := range n.List {
		if !p.tree.Kid(d, ast.SlotDeclInit).IsValid() {
			p.failAt(p.tree.Span(d), diag.SynMissingInit, "missing initializer in const declaration")
		}
	}
}

// parseLoopBody parses the body of a loop, where break and continue apply.
func (p *Parser) parseLoopBody() ast.NodeID {
	var body ast.NodeID
	p.with(ctxInLoop, 0, func() { body = p.parseStatement() })
	return body
}

func (p *Parser) parseParenExpression() ast.NodeID {
	p.expect(token.LParen)
	var e ast.NodeID
	p.with(0, ctxNoIn, func() { e = p.parseExpression() })
	p.expect(token.RParen)
	return e
}

func (p *Parser) parseIf() ast.NodeID {
	start := p.tok.Span.Start
	p.next()
	test := p.parseParenExpression()
	cons := p.parseStatement()
	alt := ast.NoNodeID
	if p.eat(token.KwElse) {
		alt = p.parseStatement()
	}
	return p.finish(ast.IfStatement, start, test, cons, alt)
}

func (p *Parser) parseWhile() ast.NodeID {
	start := p.tok.Span.Start
	p.next()
	test := p.parseParenExpression()
	body := p.parseLoopBody()
	return p.finish(ast.WhileStatement, start, test, body)
}

func (p *Parser) parseDoWhile() ast.NodeID {
	start := p.tok.Span.Start
	p.next()
	body := p.parseLoopBody()
	p.expect(token.KwWhile)
	test := p.parseParenExpression()
	p.eat(token.Semicolon)
	return p.finish(ast.DoWhileStatement, start, test, body)
}

func (p *Parser) parseFor() ast.NodeID {
	start := p.tok.Span.Start
	p.next()
	await := false
	if p.atWord("await") {
		p.next()
		await = true
	}
	p.expect(token.LParen)

	init := ast.NoNodeID
	switch {
	case p.at(token.Semicolon):
	case p.at(token.KwVar) || p.at(token.KwConst) ||
		p.atWord("let") && (p.peek().Kind == token.Ident || p.peek().Kind == token.LBracket || p.peek().Kind == token.LBrace):
		p.with(ctxNoIn, 0, func() { init = p.parseVarDeclaration(p.tok.Span.Start, false) })
	default:
		p.with(ctxNoIn, 0, func() { init = p.parseExpression() })
	}

	if init.IsValid() && (p.at(token.KwIn) || p.atWord("of")) {
		kind := ast.ForInStatement
		if p.atWord("of") {
			kind = ast.ForOfStatement
		}
		if p.tree.Kind(init) != ast.VariableDeclaration {
			init = p.toPattern(init)
		}
		p.next()
		var right ast.NodeID
		if kind == ast.ForOfStatement {
			right = p.parseAssign()
		} else {
			right = p.parseExpression()
		}
		p.expect(token.RParen)
		body := p.parseLoopBody()
		id := p.finish(kind, start, init, right, body)
		if await {
			p.setFlag(id, ast.FlagAwait)
		}
		return id
	}
	if await {
		p.unexpected("expected 'of' in for await")
	}
	if p.tree.Kind(init) == ast.VariableDeclaration {
		p.checkConstInit(init)
	}
	p.expect(token.Semicolon)
	test, update := ast.NoNodeID, ast.NoNodeID
	if !p.at(token.Semicolon) {
		test = p.parseExpression()
	}
	p.expect(token.Semicolon)
	if !p.at(token.RParen) {
		update = p.parseExpression()
	}
	p.expect(token.RParen)
	body := p.parseLoopBody()
	return p.finish(ast.ForStatement, start, init, test, update, body)
}

func (p *Parser) parseReturn() ast.NodeID {
	start := p.tok.Span.Start
	if !p.has(ctxInFunction) {
		p.failAt(p.tok.Span, diag.SynIllegalJump, "'return' outside of a function")
	}
	p.next()
	arg := ast.NoNodeID
	if !p.canInsertSemicolon() {
		arg = p.parseExpression()
	}
	p.semicolon()
	return p.finish(ast.ReturnStatement, start, arg)
}

func (p *Parser) parseBreakContinue() ast.NodeID {
	start := p.tok.Span.Start
	kw := p.next()
	kind := ast.BreakStatement
	if kw.Kind == token.KwContinue {
		kind = ast.ContinueStatement
	}
	label := ast.NoNodeID
	if p.at(token.Ident) && !p.tok.NewlineBefore {
		label = p.ident()
		if name := p.tree.Text(label); !slices.Contains(p.labels, name) {
			p.failAt(p.tree.Span(label), diag.SynIllegalJump, "undefined label '"+name+"'")
		}
	}
	switch {
	case kind == ast.ContinueStatement && !p.has(ctxInLoop):
		p.failAt(kw.Span, diag.SynIllegalJump, "'continue' outside of a loop")
	case kind == ast.BreakStatement && !label.IsValid() && !p.has(ctxInLoop|ctxInSwitch):
		p.failAt(kw.Span, diag.SynIllegalJump, "'break' outside of a loop or switch")
	}
	p.semicolon()
	return p.finish(kind, start, label)
}

func (p *Parser) parseThrow() ast.NodeID {
	start := p.tok.Span.Start
	p.next()
	if p.tok.NewlineBefore {
		p.unexpected("illegal newline after throw")
	}
	arg := p.parseExpression()
	p.semicolon()
	return p.finish(ast.ThrowStatement, start, arg)
}

func (p *Parser) parseTry() ast.NodeID {
	start := p.tok.Span.Start
	p.next()
	block := p.parseBlock()
	handler, finalizer := ast.NoNodeID, ast.NoNodeID
	if p.at(token.KwCatch) {
		cstart := p.tok.Span.Start
		p.next()
		param := ast.NoNodeID
		if p.eat(token.LParen) {
			param = p.parseBindingTarget()
			p.expect(token.RParen)
		}
		body := p.parseBlock()
		handler = p.finish(ast.CatchClause, cstart, param, body)
	}
	if p.eat(token.KwFinally) {
		finalizer = p.parseBlock()
	}
	if !handler.IsValid() && !finalizer.IsValid() {
		p.unexpected("expected catch or finally")
	}
	return p.finish(ast.TryStatement, start, block, handler, finalizer)
}

func (p *Parser) parseSwitch() ast.NodeID {
	start := p.tok.Span.Start
	p.next()
	disc := p.parseParenExpression()
	p.expect(token.LBrace)
	var cases []ast.NodeID
	for !p.eat(token.RBrace) {
		cstart := p.tok.Span.Start
		test := ast.NoNodeID
		switch {
		case p.eat(token.KwCase):
			test = p.parseExpression()
		case p.eat(token.KwDefault):
		default:
			p.unexpected("expected case or default")
		}
		p.expect(token.Colon)
		var cons []ast.NodeID
		p.with(ctxInSwitch, 0, func() {
			for !p.atAny(token.KwCase, token.KwDefault, token.RBrace) {
				if p.at(token.EOF) {
					p.unexpected("expected '}'")
				}
				cons = append(cons, p.parseStatement())
			}
		})
		cases = append(cases, p.finishList(ast.SwitchCase, cstart, cons, test))
	}
	return p.finishList(ast.SwitchStatement, start, cases, disc)
}

func (p *Parser) parseWith() ast.NodeID {
	start := p.tok.Span.Start
	p.next()
	obj := p.parseParenExpression()
	body := p.parseStatement()
	return p.finish(ast.WithStatement, start, obj, body)
}
