package codegen

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
)

func (p *printer) printType(id ast.NodeID, n *ast.Node) Doc {
	switch n.Kind {
	case ast.TypeAnnotation:
		return Concat(Text(": "), p.print(n.Kid(ast.SlotInner)))
	case ast.KeywordType:
		return Text(n.Text)
	case ast.LiteralType:
		return Text(p.literalType(n.Text))

	case ast.UnionType:
		return p.printUnion(n)
	case ast.IntersectionType:
		items := p.printAll(n.List)
		if len(items) == 0 {
			return nil
		}
		return Group(items[0], Indent(joinTail(Concat(Text(" &"), Line), items[1:])))
	case ast.ArrayType:
		return Concat(p.print(n.Kid(ast.SlotInner)), Text("[]"))
	case ast.TupleType:
		return p.list("[", "]", p.printAll(n.List), p.opts.Style.CommasAll())

	case ast.ObjectType:
		sep := ";"
		if !p.opts.Style.Semi {
			sep = ""
		}
		broken := p.objectBreaks(id, n) || p.kind(p.grandparent()) == ast.InterfaceDeclaration
		return p.printObject(id, n.List, sep, broken)
	case ast.ObjectTypeProperty:
		return p.printTypeProperty(n)
	case ast.ObjectTypeIndexer:
		var parts []Doc
		if n.Has(ast.FlagStatic) {
			parts = append(parts, Text("static "))
		}
		if n.Has(ast.FlagReadonly) {
			parts = append(parts, Text("readonly "))
		}
		name := Text("key")
		if nameID := n.Kid(ast.SlotIndexID); nameID.IsValid() {
			name = p.print(nameID)
		}
		parts = append(parts, Text("["), name, Text(": "), p.print(n.Kid(ast.SlotIndexKey)), Text("]: "),
			p.print(n.Kid(ast.SlotIndexValue)))
		return Concat(parts...)
	case ast.ObjectTypeCallProperty:
		var static Doc
		if n.Has(ast.FlagStatic) {
			static = Text("static ")
		}
		return Concat(static, p.print(n.Kid(ast.SlotValue)))

	case ast.FunctionType:
		return p.printFunctionType(id, n)
	case ast.FunctionTypeParam:
		name := n.Kid(ast.SlotParamName)
		typ := p.print(n.Kid(ast.SlotParamType))
		if !name.IsValid() {
			return typ
		}
		var opt Doc
		if n.Has(ast.FlagOptional) {
			opt = Text("?")
		}
		return Concat(p.print(name), opt, Text(": "), typ)

	case ast.GenericType:
		return Concat(p.print(n.Kid(ast.SlotID)), p.print(n.Kid(ast.SlotTypeArgs)))
	case ast.QualifiedTypeName:
		return Concat(p.print(n.Kid(ast.SlotLeft)), Text("."), p.print(n.Kid(ast.SlotRight)))
	case ast.TypeofType:
		return Concat(Text("typeof "), p.print(n.Kid(ast.SlotInner)))
	case ast.IndexedAccessType:
		if n.Has(ast.FlagOptional) {
			p.fail(id, "optional indexed access has no TypeScript form")
			return nil
		}
		return Concat(p.print(n.Kid(ast.SlotObject)), Text("["), p.print(n.Kid(ast.SlotIndex)), Text("]"))
	case ast.TypeOperator:
		return Concat(Text(n.Text+" "), p.print(n.Kid(ast.SlotInner)))

	case ast.TypeParameterDeclaration:
		return p.list("<", ">", p.printAll(n.List), p.opts.Style.CommasAll())
	case ast.TypeParameter:
		parts := []Doc{Text(n.Text)}
		if bound := n.Kid(ast.SlotBound); bound.IsValid() {
			parts = append(parts, Text(" extends "), p.print(bound))
		}
		if def := n.Kid(ast.SlotDefault); def.IsValid() {
			parts = append(parts, Text(" = "), p.print(def))
		}
		return Concat(parts...)
	case ast.TypeParameterInstantiation:
		if len(n.List) == 1 && p.hugTypeArg(n.List[0]) {
			return Concat(Text("<"), p.print(n.List[0]), Text(">"))
		}
		return p.list("<", ">", p.printAll(n.List), p.opts.Style.CommasAll())

	case ast.TypeAlias:
		var parts []Doc
		if n.Has(ast.FlagDeclare) {
			parts = append(parts, Text("declare "))
		}
		parts = append(parts, Text("type "), p.print(n.Kid(ast.SlotName)), p.print(n.Kid(ast.SlotTypeParams)),
			Text(" = "), p.print(n.Kid(ast.SlotDeclBody)), p.semi())
		return Concat(parts...)
	case ast.InterfaceDeclaration:
		var parts []Doc
		if n.Has(ast.FlagDeclare) {
			parts = append(parts, Text("declare "))
		}
		parts = append(parts, Text("interface "), p.print(n.Kid(ast.SlotName)), p.print(n.Kid(ast.SlotTypeParams)))
		if len(n.List) > 0 {
			parts = append(parts, Text(" extends "), Join(Text(", "), p.printAll(n.List)))
		}
		parts = append(parts, Text(" "), p.print(n.Kid(ast.SlotDeclBody)))
		return Concat(parts...)
	case ast.ModuleDeclaration:
		var parts []Doc
		if n.Has(ast.FlagDeclare) {
			parts = append(parts, Text("declare "))
		}
		parts = append(parts, Text("module "), p.print(n.Kid(ast.SlotName)), Text(" "), p.print(n.Kid(ast.SlotDeclBody)))
		return Concat(parts...)
	}
	p.fail(id, "no printer for type")
	return nil
}

// literalType prints `'a'`, `-1` or `10n` as a literal type.
func (p *printer) literalType(raw string) string {
	if raw == "" {
		return raw
	}
	switch raw[0] {
	case '"', '\'':
		return p.str(raw)
	case '-':
		return "-" + p.number(raw[1:])
	case 't', 'f':
		return raw
	}
	if raw[len(raw)-1] == 'n' {
		return p.bigint(raw)
	}
	return p.number(raw)
}

// printUnion breaks one member per line with a leading `|`. Under an alias
// or annotation the members are indented below it.
func (p *printer) printUnion(n *ast.Node) Doc {
	items := p.printAll(n.List)
	if len(items) == 0 {
		return nil
	}
	sep := Concat(Line, Text("| "))
	switch p.kind(p.grandparent()) {
	case ast.TypeParameterInstantiation, ast.FunctionTypeParam, ast.TupleType, ast.GenericType:
		return Group(Join(sep, items))
	}
	return Group(Indent(SoftLine, IfBreak(Text("| "), nil), Join(sep, items)))
}

func (p *printer) printTypeProperty(n *ast.Node) Doc {
	var parts []Doc
	if n.Has(ast.FlagStatic) {
		parts = append(parts, Text("static "))
	}
	if n.Has(ast.FlagReadonly) {
		parts = append(parts, Text("readonly "))
	}
	if n.Text != "" {
		parts = append(parts, Text(n.Text+" "))
	}
	parts = append(parts, p.propertyKey(n.Kid(ast.SlotKey), n.Has(ast.FlagComputed)))
	if n.Has(ast.FlagOptional) {
		parts = append(parts, Text("?"))
	}
	value := n.Kid(ast.SlotValue)
	if n.Has(ast.FlagMethod) || n.Text != "" {
		// the function type prints as a signature
		return Concat(append(parts, p.print(value))...)
	}
	return Concat(append(parts, Text(": "), p.print(value))...)
}

func (p *printer) printFunctionType(id ast.NodeID, n *ast.Node) Doc {
	var params []Doc
	if this := n.Kid(ast.SlotThis); this.IsValid() {
		params = append(params, Concat(Text("this: "), p.print(this)))
	}
	params = append(params, p.printAll(n.List)...)
	if rest := n.Kid(ast.SlotRest); rest.IsValid() {
		params = append(params, Concat(Text("..."), p.print(rest)))
	}
	var paramsDoc Doc
	if len(params) == 1 && len(n.List) == 1 && p.hugTypeParam(n.List[0]) {
		paramsDoc = Concat(Text("("), params[0], Text(")"))
	} else {
		paramsDoc = p.list("(", ")", params, p.opts.Style.CommasAll() && !n.Kid(ast.SlotRest).IsValid())
	}

	arrow := Text(" => ")
	if p.signatureStyle(n) {
		arrow = Text(": ")
	}
	var prefix Doc
	if n.Has(ast.FlagConstructor) {
		prefix = Text("new ")
	}
	return Group(prefix, p.print(n.Kid(ast.SlotTypeParams)), paramsDoc, arrow, p.print(n.Kid(ast.SlotReturn)))
}

// signatureStyle reports function types printed as member signatures
// (`m(): R`) rather than arrows.
func (p *printer) signatureStyle(n *ast.Node) bool {
	parent := p.tree.Node(p.grandparent())
	if parent == nil {
		return false
	}
	switch parent.Kind {
	case ast.ObjectTypeCallProperty:
		return true
	case ast.ObjectTypeProperty:
		return parent.Has(ast.FlagMethod) || parent.Text != ""
	}
	return false
}

func (p *printer) hugTypeParam(param ast.NodeID) bool {
	pn := p.tree.Node(param)
	return pn != nil && len(pn.Leading) == 0 && p.kind(pn.Kid(ast.SlotParamType)) == ast.ObjectType
}

func (p *printer) hugTypeArg(arg ast.NodeID) bool {
	switch p.kind(arg) {
	case ast.ObjectType, ast.KeywordType, ast.LiteralType:
		return true
	case ast.GenericType:
		return !p.tree.Kid(arg, ast.SlotTypeArgs).IsValid()
	}
	return false
}

// joinTail prefixes each of docs with sep.
func joinTail(sep Doc, docs []Doc) Doc {
	parts := make([]Doc, 0, 2*len(docs))
	for _, d := range docs {
		parts = append(parts, sep, d)
	}
	return Concat(parts...)
}
