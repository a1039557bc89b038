package parser

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// JSX разбирается без заглядывания за '>' тега: после него лексер
// переключается на ScanJSXChild. Вложенный элемент оставляет p.tok на своём
// последнем '>', а вызывающий решает, как читать дальше.

// parseJSX parses an element or fragment in expression position.
func (p *Parser) parseJSX() ast.NodeID {
	id := p.parseJSXElementAt()
	p.next()
	return id
}

// jsxGt marks the '>' under p.tok as consumed without scanning past it.
func (p *Parser) jsxGt() {
	if !p.at(token.Gt) {
		p.unexpected("expected '>'")
	}
	p.prevEnd = p.tok.Span.End
}

// jsxChild scans the next child token after the current '>' or '}'.
func (p *Parser) jsxChild() {
	p.prevEnd = p.tok.Span.End
	p.setTok(p.lx.ScanJSXChild(p.prevEnd))
}

func (p *Parser) parseJSXElementAt() ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.Lt)

	if p.at(token.Gt) {
		p.jsxGt()
		children := p.parseJSXChildren()
		p.expect(token.Lt)
		p.expect(token.Slash)
		p.jsxGt()
		return p.finishList(ast.JSXFragment, start, children)
	}

	name := p.parseJSXName()
	var attrs []ast.NodeID
	for !p.atAny(token.Slash, token.Gt) {
		attrs = append(attrs, p.parseJSXAttribute())
	}
	if p.eat(token.Slash) {
		p.jsxGt()
		open := p.finishList(ast.JSXOpeningElement, start, attrs, name)
		p.setFlag(open, ast.FlagSelfClosing)
		return p.finishList(ast.JSXElement, start, nil, open)
	}
	p.jsxGt()
	open := p.finishList(ast.JSXOpeningElement, start, attrs, name)

	children := p.parseJSXChildren()
	cstart := p.tok.Span.Start
	p.expect(token.Lt)
	p.expect(token.Slash)
	cname := p.parseJSXName()
	if got, want := p.jsxNameText(cname), p.jsxNameText(name); got != want {
		p.failAt(p.tree.Span(cname), diag.SynMismatchedJSXTag, "expected corresponding closing tag for <"+want+">")
	}
	p.jsxGt()
	closing := p.finish(ast.JSXClosingElement, cstart, cname)
	return p.finishList(ast.JSXElement, start, children, open, closing)
}

// parseJSXChildren reads children up to the `</` of the closing tag and
// leaves p.tok on that '<'.
func (p *Parser) parseJSXChildren() []ast.NodeID {
	var children []ast.NodeID
	for {
		p.jsxChild()
		switch p.tok.Kind {
		case token.JSXText:
			t := p.tok
			p.prevEnd = t.Span.End
			children = append(children, p.tree.NewText(ast.JSXText, t.Span, t.Text))
			// jsxChild продолжит с конца текста
		case token.LBrace:
			children = append(children, p.parseJSXExpressionContainer(true))
		case token.Lt:
			if p.peek().Kind == token.Slash {
				return children
			}
			children = append(children, p.parseJSXElementAt())
		case token.EOF:
			p.failAt(p.tok.Span, diag.SynUnclosedJSX, "unterminated JSX contents")
		default:
			p.unexpected("unexpected token in JSX")
		}
	}
}

// parseJSXExpressionContainer parses `{expr}`, `{}` or `{...expr}`. As a
// child it leaves p.tok on the '}', as an attribute value it consumes it.
func (p *Parser) parseJSXExpressionContainer(child bool) ast.NodeID {
	start := p.tok.Span.Start
	p.expect(token.LBrace)
	kind := ast.JSXExpressionContainer
	var e ast.NodeID
	switch {
	case p.at(token.RBrace):
		e = p.tree.New(ast.JSXEmptyExpression, p.spanFrom(p.prevEnd))
		p.node(e).Span.End = p.tok.Span.Start
	case child && p.at(token.Ellipsis):
		p.next()
		kind = ast.JSXSpreadChild
		p.with(0, ctxNoIn|ctxCondConsequent, func() { e = p.parseExpression() })
	default:
		p.with(0, ctxNoIn|ctxCondConsequent, func() { e = p.parseExpression() })
	}
	if !p.at(token.RBrace) {
		p.unexpected("expected '}'")
	}
	if child {
		p.prevEnd = p.tok.Span.End
	} else {
		p.next()
	}
	return p.finish(kind, start, e)
}

func (p *Parser) jsxIdent() ast.NodeID {
	if !p.tok.IsName() {
		p.unexpected("expected JSX identifier")
	}
	p.setTok(p.lx.RescanJSXIdent(p.tok))
	t := p.next()
	return p.tree.NewText(ast.JSXIdentifier, t.Span, t.Text)
}

// parseJSXName parses `a`, `a:b` or `a.b.c`.
func (p *Parser) parseJSXName() ast.NodeID {
	start := p.tok.Span.Start
	id := p.jsxIdent()
	if p.eat(token.Colon) {
		right := p.jsxIdent()
		return p.finish(ast.JSXNamespacedName, start, id, right)
	}
	for p.eat(token.Dot) {
		prop := p.jsxIdent()
		id = p.finish(ast.JSXMemberExpression, start, id, prop)
	}
	return id
}

func (p *Parser) jsxNameText(id ast.NodeID) string {
	n := p.node(id)
	switch n.Kind {
	case ast.JSXNamespacedName:
		return p.jsxNameText(n.Kid(ast.SlotLeft)) + ":" + p.jsxNameText(n.Kid(ast.SlotRight))
	case ast.JSXMemberExpression:
		return p.jsxNameText(n.Kid(ast.SlotObject)) + "." + p.jsxNameText(n.Kid(ast.SlotProperty))
	}
	return n.Text
}

func (p *Parser) parseJSXAttribute() ast.NodeID {
	start := p.tok.Span.Start
	if p.at(token.LBrace) {
		p.next()
		p.expect(token.Ellipsis)
		var e ast.NodeID
		p.with(0, ctxNoIn|ctxCondConsequent, func() { e = p.parseAssign() })
		p.expect(token.RBrace)
		return p.finish(ast.JSXSpreadAttribute, start, e)
	}
	name := p.jsxIdent()
	if p.eat(token.Colon) {
		right := p.jsxIdent()
		name = p.finish(ast.JSXNamespacedName, start, name, right)
	}
	value := ast.NoNodeID
	if p.eat(token.Assign) {
		switch p.tok.Kind {
		case token.String:
			p.setTok(p.lx.RescanJSXString(p.tok))
			t := p.next()
			value = p.tree.NewText(ast.StringLiteral, t.Span, t.Text)
		case token.LBrace:
			value = p.parseJSXExpressionContainer(false)
		case token.Lt:
			value = p.parseJSXElementAt()
			p.next()
		default:
			p.unexpected("expected JSX attribute value")
		}
	}
	return p.finish(ast.JSXAttribute, start, name, value)
}
