package codegen

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
)

func (p *printer) printModuleItem(id ast.NodeID, n *ast.Node) Doc {
	switch n.Kind {
	case ast.ImportDeclaration:
		return p.printImport(id, n)

	case ast.ImportSpecifier:
		local, imported := n.Kid(ast.SlotLocal), n.Kid(ast.SlotImported)
		var kind Doc
		if n.Text != "" {
			if n.Text != "type" {
				p.fail(id, "typeof import specifier")
				return nil
			}
			kind = Text("type ")
		}
		if !imported.IsValid() || p.sameName(local, imported) {
			return Concat(kind, p.print(local))
		}
		return Concat(kind, p.print(imported), Text(" as "), p.print(local))
	case ast.ImportDefaultSpecifier:
		return p.print(n.Kid(ast.SlotLocal))
	case ast.ImportNamespaceSpecifier:
		return Concat(Text("* as "), p.print(n.Kid(ast.SlotLocal)))

	case ast.ExportNamedDeclaration:
		if decl := n.Kid(ast.SlotDecl); decl.IsValid() {
			return Concat(Text("export "), p.print(decl))
		}
		parts := []Doc{Text("export ")}
		if n.Text == "type" {
			parts = append(parts, Text("type "))
		}
		parts = append(parts, p.specifiers(id, n.List))
		if src := n.Kid(ast.SlotSource); src.IsValid() {
			parts = append(parts, Text(" from "), p.print(src))
		}
		return Concat(append(parts, p.semi())...)
	case ast.ExportSpecifier:
		local, exported := n.Kid(ast.SlotLocal), n.Kid(ast.SlotExported)
		var kind Doc
		if n.Text == "type" {
			kind = Text("type ")
		}
		if !exported.IsValid() || p.sameName(local, exported) {
			return Concat(kind, p.print(local))
		}
		return Concat(kind, p.print(local), Text(" as "), p.print(exported))

	case ast.ExportDefaultDeclaration:
		decl := n.Kid(ast.SlotDecl)
		d := Concat(Text("export default "), p.print(decl))
		switch p.kind(decl) {
		case ast.FunctionDeclaration, ast.ClassDeclaration, ast.InterfaceDeclaration:
			// declarations end themselves
			return d
		}
		return Concat(d, p.semi())

	case ast.ExportAllDeclaration:
		parts := []Doc{Text("export ")}
		if n.Text == "type" {
			parts = append(parts, Text("type "))
		}
		parts = append(parts, Text("*"))
		if ns := n.Kid(ast.SlotDecl); ns.IsValid() {
			parts = append(parts, Text(" as "), p.print(ns))
		}
		parts = append(parts, Text(" from "), p.print(n.Kid(ast.SlotSource)), p.semi())
		return Concat(parts...)

	case ast.ExportAssignment:
		return Concat(Text("export = "), p.print(n.Kid(ast.SlotExpr)), p.semi())
	}
	p.fail(id, "no printer for module item")
	return nil
}

func (p *printer) printImport(id ast.NodeID, n *ast.Node) Doc {
	parts := []Doc{Text("import ")}
	switch n.Text {
	case "":
	case "type":
		parts = append(parts, Text("type "))
	default:
		p.fail(id, "import typeof has no TypeScript form")
		return nil
	}
	src := n.Kid(ast.SlotSource)
	if len(n.List) == 0 {
		return Concat(append(parts, p.print(src), p.semi())...)
	}

	var named []ast.NodeID
	var heads []Doc
	for _, s := range n.List {
		switch p.kind(s) {
		case ast.ImportDefaultSpecifier, ast.ImportNamespaceSpecifier:
			heads = append(heads, p.print(s))
		default:
			named = append(named, s)
		}
	}
	if len(named) > 0 {
		heads = append(heads, p.specifiers(id, named))
	}
	parts = append(parts, Join(Text(", "), heads), Text(" from "), p.print(src), p.semi())
	return Concat(parts...)
}

// specifiers prints `{ a, b as c }` of an import or export.
func (p *printer) specifiers(id ast.NodeID, list []ast.NodeID) Doc {
	if len(list) == 0 {
		return Text("{}")
	}
	line := p.bracketLine()
	var comma Doc
	if p.opts.Style.CommasES5() {
		comma = IfBreak(Text(","), nil)
	}
	return Group(
		Text("{"),
		Indent(line, Join(Concat(Text(","), Line), p.printAll(list)), comma),
		line,
		Text("}"),
	)
}

// sameName reports `{ a }` written as `{ a as a }` or parsed as shorthand.
func (p *printer) sameName(a, b ast.NodeID) bool {
	an, bn := p.tree.Node(a), p.tree.Node(b)
	if an == nil || bn == nil || an.Kind != ast.Identifier || bn.Kind != ast.Identifier {
		return false
	}
	return an.Text == bn.Text && len(bn.Leading)+len(bn.Trailing) == 0
}
