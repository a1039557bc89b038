package codegen

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/config"
)

func (p *printer) printFunction(id ast.NodeID, n *ast.Node) Doc {
	var parts []Doc
	if n.Has(ast.FlagDeclare) {
		parts = append(parts, Text("declare "))
	}
	if n.Has(ast.FlagAsync) {
		parts = append(parts, Text("async "))
	}
	parts = append(parts, Text("function"))
	if n.Has(ast.FlagGenerator) {
		parts = append(parts, Text("*"))
	}
	parts = append(parts, Text(" "))
	if name := n.Kid(ast.SlotID); name.IsValid() {
		parts = append(parts, p.print(name))
	}
	parts = append(parts, p.signature(id, n))
	if body := n.Kid(ast.SlotFnBody); body.IsValid() {
		return Concat(append(parts, Text(" "), p.print(body))...)
	}
	return Concat(append(parts, p.semi())...)
}

// signature prints `<T>(params): R` of any function-like node.
func (p *printer) signature(id ast.NodeID, n *ast.Node) Doc {
	return Group(
		p.print(n.Kid(ast.SlotTypeParams)),
		p.params(id, n.List),
		p.print(n.Kid(ast.SlotReturn)),
		p.print(n.Kid(ast.SlotPredicate)),
	)
}

func (p *printer) params(id ast.NodeID, params []ast.NodeID) Doc {
	if len(params) == 0 {
		if inner := p.innerComments(id, Line); inner != nil {
			return Concat(Text("("), inner, Text(")"))
		}
		return Text("()")
	}
	if len(params) == 1 && p.hugParam(params[0]) {
		return Concat(Text("("), p.print(params[0]), Text(")"))
	}
	last := p.kind(params[len(params)-1])
	return p.list("(", ")", p.printAll(params), p.opts.Style.CommasAll() && last != ast.RestElement)
}

// hugParam reports a lone destructured or object-typed parameter, whose
// braces stay on the parenthesis line.
func (p *printer) hugParam(param ast.NodeID) bool {
	n := p.tree.Node(param)
	if n == nil || len(n.Leading) > 0 {
		return false
	}
	switch n.Kind {
	case ast.ObjectPattern:
		return true
	case ast.AssignmentPattern:
		return p.kind(n.Kid(ast.SlotLeft)) == ast.ObjectPattern
	case ast.Identifier:
		ann := n.Kid(ast.SlotTypeAnn)
		return ann.IsValid() && p.kind(p.tree.Kid(ann, ast.SlotInner)) == ast.ObjectType
	}
	return false
}

func (p *printer) printArrow(id ast.NodeID, n *ast.Node) Doc {
	var parts []Doc
	if n.Has(ast.FlagAsync) {
		parts = append(parts, Text("async "))
	}
	tp, ret := n.Kid(ast.SlotTypeParams), n.Kid(ast.SlotReturn)
	switch {
	case p.bareArrowParam(n):
		parts = append(parts, p.print(n.List[0]))
	case p.opts.JSX && p.lonePlainTypeParam(tp):
		// <T>(x) => x reads as a JSX tag in .tsx
		tpn := p.tree.Node(tp)
		p.stack = append(p.stack, tp)
		param := p.print(tpn.List[0])
		p.stack = p.stack[:len(p.stack)-1]
		parts = append(parts, Group(
			p.decorate(tp, Concat(Text("<"), param, Text(",>"))),
			p.params(id, n.List),
			p.print(ret),
		))
	default:
		parts = append(parts, p.signature(id, n))
	}
	parts = append(parts, Text(" =>"))

	body := n.Kid(ast.SlotFnBody)
	bodyDoc := p.print(body)
	if n.Has(ast.FlagExprBody) && p.startsWithNoLookahead(body, true) {
		bodyDoc = Concat(Text("("), bodyDoc, Text(")"))
		return Group(append(parts, Text(" "), bodyDoc)...)
	}
	switch p.kind(body) {
	case ast.BlockStatement, ast.ObjectExpression, ast.ArrayExpression, ast.TemplateLiteral,
		ast.TaggedTemplateExpression, ast.ArrowFunctionExpression, ast.JSXElement, ast.JSXFragment:
		return Group(append(parts, Text(" "), bodyDoc)...)
	}
	return Group(append(parts, Group(Indent(Line, bodyDoc)))...)
}

// bareArrowParam reports `x => x`: one plain parameter with nothing that
// needs parentheses.
func (p *printer) bareArrowParam(n *ast.Node) bool {
	if p.opts.Style.ArrowParens != config.ArrowAvoid || len(n.List) != 1 ||
		n.Kid(ast.SlotTypeParams).IsValid() || n.Kid(ast.SlotReturn).IsValid() {
		return false
	}
	param := p.tree.Node(n.List[0])
	return param != nil && param.Kind == ast.Identifier && !param.Kid(ast.SlotTypeAnn).IsValid() &&
		!param.Has(ast.FlagOptional) && len(param.Leading)+len(param.Trailing) == 0
}

func (p *printer) lonePlainTypeParam(tp ast.NodeID) bool {
	n := p.tree.Node(tp)
	if n == nil || len(n.List) != 1 {
		return false
	}
	param := p.tree.Node(n.List[0])
	return param != nil && !param.Kid(ast.SlotBound).IsValid()
}

// printMethod prints object and class methods, accessors and constructors.
func (p *printer) printMethod(id ast.NodeID, n *ast.Node) Doc {
	var parts []Doc
	if n.Has(ast.FlagStatic) {
		parts = append(parts, Text("static "))
	}
	if n.Has(ast.FlagAsync) {
		parts = append(parts, Text("async "))
	}
	switch n.Text {
	case "get", "set":
		parts = append(parts, Text(n.Text+" "))
	}
	if n.Has(ast.FlagGenerator) {
		parts = append(parts, Text("*"))
	}
	parts = append(parts, p.propertyKey(n.Kid(ast.SlotID), n.Has(ast.FlagComputed)))
	if n.Has(ast.FlagOptional) {
		parts = append(parts, Text("?"))
	}
	parts = append(parts, p.signature(id, n))
	if body := n.Kid(ast.SlotFnBody); body.IsValid() {
		return Concat(append(parts, Text(" "), p.print(body))...)
	}
	return Concat(append(parts, p.semi())...)
}
