package codegen

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
)

func (p *printer) printClass(id ast.NodeID, n *ast.Node) Doc {
	var head []Doc
	if n.Has(ast.FlagDeclare) {
		head = append(head, Text("declare "))
	}
	head = append(head, Text("class"))
	if name := n.Kid(ast.SlotID); name.IsValid() {
		head = append(head, Text(" "), p.print(name))
	}
	head = append(head, p.print(n.Kid(ast.SlotTypeParams)))

	var clauses []Doc
	if super := n.Kid(ast.SlotSuper); super.IsValid() {
		clauses = append(clauses, Concat(Text("extends "), p.print(super), p.print(n.Kid(ast.SlotSuperTypeArgs))))
	}
	if len(n.List) > 0 {
		clauses = append(clauses, Concat(Text("implements "), Join(Text(", "), p.printAll(n.List))))
	}
	switch len(clauses) {
	case 0:
	case 1:
		head = append(head, Text(" "), clauses[0])
	default:
		head = append(head, Indent(Line, Join(Line, clauses)))
	}
	return Concat(Group(head...), Text(" "), p.print(n.Kid(ast.SlotClassBody)))
}

// printClassBody keeps one member per line with the source's blank lines.
func (p *printer) printClassBody(id ast.NodeID, n *ast.Node) Doc {
	if len(n.List) == 0 {
		if inner := p.innerComments(id, HardLine); inner != nil {
			return Concat(Text("{"), Indent(HardLine, inner), HardLine, Text("}"))
		}
		return Text("{}")
	}
	var parts []Doc
	for i, m := range n.List {
		if i > 0 {
			parts = append(parts, HardLine)
			if p.blankBetween(n.List[i-1], m) {
				parts = append(parts, HardLine)
			}
		}
		d := p.print(m)
		if p.kind(m) == ast.ObjectTypeIndexer {
			d = Concat(d, p.semi())
		}
		if !p.opts.Style.Semi && i+1 < len(n.List) && p.needsClassSemi(m, n.List[i+1]) {
			d = Concat(d, Text(";"))
		}
		parts = append(parts, d)
	}
	if inner := p.innerComments(id, HardLine); inner != nil {
		parts = append(parts, HardLine, inner)
	}
	return Concat(Text("{"), Indent(HardLine, Concat(parts...)), HardLine, Text("}"))
}

// needsClassSemi reports a property that would run into the next member
// without a semicolon: `a = 1` followed by `[key]() {}` or `*gen() {}`.
func (p *printer) needsClassSemi(cur, next ast.NodeID) bool {
	if p.kind(cur) != ast.ClassProperty {
		return false
	}
	nn := p.tree.Node(next)
	if nn == nil || nn.Has(ast.FlagStatic) {
		return false
	}
	switch {
	case nn.Has(ast.FlagComputed):
		return true
	case nn.Kind == ast.ClassMethod && nn.Has(ast.FlagGenerator) && !nn.Has(ast.FlagAsync):
		return true
	case nn.Kind == ast.ObjectTypeIndexer:
		return true
	}
	key := p.tree.Text(nn.Kid(ast.SlotKey))
	return key == "in" || key == "instanceof"
}

func (p *printer) printClassProperty(id ast.NodeID, n *ast.Node) Doc {
	var parts []Doc
	if n.Has(ast.FlagDeclare) {
		parts = append(parts, Text("declare "))
	}
	if n.Has(ast.FlagStatic) {
		parts = append(parts, Text("static "))
	}
	if n.Has(ast.FlagReadonly) {
		parts = append(parts, Text("readonly "))
	}
	parts = append(parts, p.propertyKey(n.Kid(ast.SlotKey), n.Has(ast.FlagComputed)))
	if n.Has(ast.FlagOptional) {
		parts = append(parts, Text("?"))
	}
	parts = append(parts, p.print(n.Kid(ast.SlotPropType)))
	if value := n.Kid(ast.SlotPropValue); value.IsValid() {
		return Concat(p.assignment(Concat(parts...), " =", value), p.semi())
	}
	return Concat(append(parts, p.semi())...)
}
