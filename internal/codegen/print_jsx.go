package codegen

import (
	"strings"

	"github.com/lukeapage/flow-to-ts/internal/ast"
)

// JSX children are printed as written: text keeps its own line breaks and
// indentation, so only the tags themselves are laid out here.

func (p *printer) printJSX(id ast.NodeID, n *ast.Node) Doc {
	switch n.Kind {
	case ast.JSXElement:
		parts := []Doc{p.print(n.Kid(ast.SlotOpening))}
		parts = append(parts, p.printAll(n.List)...)
		parts = append(parts, p.print(n.Kid(ast.SlotClosing)))
		return p.wrapJSX(id, n, Concat(parts...))
	case ast.JSXFragment:
		parts := []Doc{Text("<>")}
		parts = append(parts, p.printAll(n.List)...)
		parts = append(parts, Text("</>"))
		return p.wrapJSX(id, n, Concat(parts...))

	case ast.JSXOpeningElement:
		return p.printOpening(n)
	case ast.JSXClosingElement:
		return Concat(Text("</"), p.print(n.Kid(ast.SlotName)), Text(">"))

	case ast.JSXAttribute:
		name := p.print(n.Kid(ast.SlotName))
		value := n.Kid(ast.SlotValue)
		if !value.IsValid() {
			return name
		}
		if p.kind(value) == ast.StringLiteral {
			return Concat(name, Text("="), p.decorate(value, Text(p.jsxString(p.tree.Text(value)))))
		}
		return Concat(name, Text("="), p.print(value))
	case ast.JSXSpreadAttribute, ast.JSXSpreadChild:
		return Concat(Text("{..."), p.print(n.Kid(ast.SlotExpr)), Text("}"))
	case ast.JSXExpressionContainer:
		return Concat(Text("{"), p.print(n.Kid(ast.SlotExpr)), Text("}"))
	case ast.JSXEmptyExpression:
		return p.innerComments(id, Line)

	case ast.JSXText, ast.JSXIdentifier:
		return Text(n.Text)
	case ast.JSXMemberExpression:
		return Concat(p.print(n.Kid(ast.SlotObject)), Text("."), p.print(n.Kid(ast.SlotProperty)))
	case ast.JSXNamespacedName:
		return Concat(p.print(n.Kid(ast.SlotLeft)), Text(":"), p.print(n.Kid(ast.SlotRight)))
	}
	p.fail(id, "no printer for JSX node")
	return nil
}

// printOpening keeps attributes on one line unless the source put the first
// one on its own line; then every attribute gets a line and the closing
// bracket returns to the tag's column.
func (p *printer) printOpening(n *ast.Node) Doc {
	name := n.Kid(ast.SlotName)
	head := Concat(Text("<"), p.print(name), p.print(n.Kid(ast.SlotTypeArgs)))
	end := Text(">")
	if n.Has(ast.FlagSelfClosing) {
		end = Text(" />")
	}
	if len(n.List) == 0 {
		return Concat(head, end)
	}
	attrs := p.printAll(n.List)
	broken := false
	if first, _, ok := p.extent(n.List[0]); ok {
		broken = p.newlineInside(p.tree.Span(name).End, first)
	}
	if !broken {
		return Concat(head, Text(" "), Join(Text(" "), attrs), end)
	}
	closing := Text(">")
	if n.Has(ast.FlagSelfClosing) {
		closing = Text("/>")
	}
	return BrokenGroup(head, Indent(Line, Join(Line, attrs)), HardLine, closing)
}

// wrapJSX puts a parenthesized multi-line element back on its own lines
// between the parentheses.
func (p *printer) wrapJSX(id ast.NodeID, n *ast.Node, d Doc) Doc {
	if !n.Has(ast.FlagParenthesized) || !hasNewline(p.nodeSource(id)) {
		return d
	}
	switch p.kind(p.grandparent()) {
	case ast.JSXElement, ast.JSXFragment, ast.JSXExpressionContainer, ast.JSXAttribute:
		return d
	}
	return BrokenGroup(Text("("), Indent(SoftLine, d), SoftLine, Text(")"))
}

// jsxString re-quotes an attribute string. JSX has no escapes, so a clashing
// quote becomes an entity.
func (p *printer) jsxString(raw string) string {
	if !p.opts.Normalize || len(raw) < 2 {
		return raw
	}
	content := raw[1 : len(raw)-1]
	content = strings.ReplaceAll(content, "&apos;", "'")
	content = strings.ReplaceAll(content, "&quot;", `"`)
	if strings.Count(content, `"`) > strings.Count(content, "'") {
		return "'" + strings.ReplaceAll(content, "'", "&apos;") + "'"
	}
	return `"` + strings.ReplaceAll(content, `"`, "&quot;") + `"`
}
