package codegen

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
)

func (p *printer) printExpression(id ast.NodeID, n *ast.Node) Doc {
	switch n.Kind {
	case ast.Identifier:
		parts := []Doc{Text(n.Text)}
		if n.Has(ast.FlagOptional) {
			parts = append(parts, Text("?"))
		}
		parts = append(parts, p.print(n.Kid(ast.SlotTypeAnn)))
		return Concat(parts...)
	case ast.PrivateName, ast.BooleanLiteral:
		return Text(n.Text)
	case ast.ThisExpression:
		return Text("this")
	case ast.Super:
		return Text("super")
	case ast.NullLiteral:
		return Text("null")
	case ast.Import:
		return Text("import")
	case ast.MetaProperty:
		return Text(n.Text)
	case ast.NumericLiteral:
		return Text(p.number(n.Text))
	case ast.BigIntLiteral:
		return Text(p.bigint(n.Text))
	case ast.StringLiteral:
		return Text(p.str(n.Text))
	case ast.RegExpLiteral:
		return Text(n.Text)

	case ast.TemplateLiteral:
		return p.printTemplate(n)
	case ast.TemplateElement:
		return Text(n.Text)
	case ast.TaggedTemplateExpression:
		return Concat(p.print(n.Kid(ast.SlotTag)), p.print(n.Kid(ast.SlotTagTypeArgs)), p.print(n.Kid(ast.SlotQuasi)))

	case ast.ArrayExpression, ast.ArrayPattern:
		return p.printArray(id, n)
	case ast.ObjectExpression, ast.ObjectPattern:
		d := p.printObject(id, n.List, ",", p.objectBreaks(id, n))
		if n.Kind == ast.ObjectPattern {
			d = Concat(d, p.print(n.Kid(ast.SlotTypeAnn)))
		}
		return d
	case ast.ObjectProperty:
		return p.printProperty(n)
	case ast.SpreadElement:
		return Concat(Text("..."), p.print(n.Kid(ast.SlotExpr)))
	case ast.RestElement:
		return Concat(Text("..."), p.print(n.Kid(ast.SlotExpr)), p.print(n.Kid(ast.SlotRestType)))
	case ast.AssignmentPattern:
		return Concat(p.print(n.Kid(ast.SlotLeft)), Text(" = "), p.print(n.Kid(ast.SlotRight)))

	case ast.UnaryExpression:
		op := n.Text
		switch op {
		case "typeof", "void", "delete":
			op += " "
		}
		return Concat(Text(op), p.print(n.Kid(ast.SlotExpr)))
	case ast.UpdateExpression:
		if n.Has(ast.FlagPrefix) {
			return Concat(Text(n.Text), p.print(n.Kid(ast.SlotExpr)))
		}
		return Concat(p.print(n.Kid(ast.SlotExpr)), Text(n.Text))
	case ast.BinaryExpression, ast.LogicalExpression:
		return p.printBinary(id, n)
	case ast.AssignmentExpression:
		return p.assignment(p.print(n.Kid(ast.SlotLeft)), " "+n.Text, n.Kid(ast.SlotRight))
	case ast.ConditionalExpression:
		return Group(
			p.print(n.Kid(ast.SlotTest)),
			Indent(
				Line, Text("? "), p.print(n.Kid(ast.SlotCons)),
				Line, Text(": "), p.print(n.Kid(ast.SlotAlt)),
			),
		)
	case ast.SequenceExpression:
		return Group(Join(Concat(Text(","), Line), p.printAll(n.List)))
	case ast.YieldExpression:
		word := "yield"
		if n.Has(ast.FlagDelegate) {
			word = "yield*"
		}
		if arg := n.Kid(ast.SlotExpr); arg.IsValid() {
			return Concat(Text(word+" "), p.print(arg))
		}
		return Text(word)
	case ast.AwaitExpression:
		return Concat(Text("await "), p.print(n.Kid(ast.SlotExpr)))

	case ast.CallExpression, ast.MemberExpression, ast.NewExpression:
		if p.isMemberChain(id) {
			return p.printMemberChain(id)
		}
		return p.printCallOrMember(id, n)

	case ast.AsExpression:
		return Concat(p.print(n.Kid(ast.SlotExpr)), Text(" as "), p.print(n.Kid(ast.SlotType)))
	case ast.NonNullExpression:
		return Concat(p.print(n.Kid(ast.SlotExpr)), Text("!"))
	}
	p.fail(id, "no printer for node")
	return nil
}

func (p *printer) printTemplate(n *ast.Node) Doc {
	parts := []Doc{Text("`")}
	for i, part := range n.List {
		if i%2 == 0 {
			parts = append(parts, p.print(part))
			continue
		}
		parts = append(parts, Text("${"), p.print(part), Text("}"))
	}
	parts = append(parts, Text("`"))
	return Concat(parts...)
}

// --- arrays and objects ---

func (p *printer) printArray(id ast.NodeID, n *ast.Node) Doc {
	var ann Doc
	if n.Kind == ast.ArrayPattern {
		ann = p.print(n.Kid(ast.SlotTypeAnn))
	}
	if len(n.List) == 0 {
		if inner := p.innerComments(id, Line); inner != nil {
			return Concat(Group(Text("["), Indent(SoftLine, inner), SoftLine, Text("]")), ann)
		}
		return Concat(Text("[]"), ann)
	}
	items := make([]Doc, len(n.List))
	for i, el := range n.List {
		items[i] = p.print(el)
	}
	last := n.List[len(n.List)-1]
	var tail Doc
	switch {
	case !last.IsValid():
		// [a, ,] needs the comma to keep the hole
		tail = Text(",")
	case p.opts.Style.CommasES5() && p.kind(last) != ast.RestElement:
		tail = IfBreak(Text(","), nil)
	}
	body := Concat(Text("["), Indent(SoftLine, Join(Concat(Text(","), Line), items), tail), SoftLine, Text("]"))
	if p.opts.Normalize && p.arrayOfObjects(n.List) {
		return Concat(BrokenGroup(body), ann)
	}
	return Concat(Group(body), ann)
}

// arrayOfObjects reports arrays of several non-trivial objects or arrays,
// which read better one element per line.
func (p *printer) arrayOfObjects(list []ast.NodeID) bool {
	if len(list) < 2 {
		return false
	}
	first := p.kind(list[0])
	if first != ast.ObjectExpression && first != ast.ArrayExpression {
		return false
	}
	for _, el := range list {
		n := p.tree.Node(el)
		if n == nil || n.Kind != first || len(n.List) < 2 {
			return false
		}
	}
	return true
}

// objectBreaks keeps an object literal broken when its source had a line
// break after `{`.
func (p *printer) objectBreaks(id ast.NodeID, n *ast.Node) bool {
	if n.Kind == ast.ObjectPattern || len(n.List) == 0 || n.Has(ast.FlagSynthetic) {
		return false
	}
	first, _, ok := p.extent(n.List[0])
	if !ok {
		return false
	}
	return p.newlineInside(n.Span.Start, first)
}

// printObject lays out `{ a, b }` members separated by sep. Blank lines
// between members survive when the object breaks.
func (p *printer) printObject(id ast.NodeID, members []ast.NodeID, sep string, broken bool) Doc {
	if len(members) == 0 {
		inner := p.innerComments(id, HardLine)
		if inner == nil {
			return Text("{}")
		}
		if p.hasLineInner(id) {
			return Concat(Text("{"), Indent(HardLine, inner), HardLine, Text("}"))
		}
		return Concat(Text("{ "), inner, Text(" }"))
	}
	line := p.bracketLine()
	var parts []Doc
	for i, m := range members {
		if i > 0 {
			parts = append(parts, Text(sep), Line)
			if p.blankBetween(members[i-1], m) {
				parts = append(parts, SoftLine)
			}
		}
		parts = append(parts, p.print(m))
	}
	var tail Doc
	lastKind := p.kind(members[len(members)-1])
	switch {
	case sep == ";":
		tail = IfBreak(Text(";"), nil)
	case sep == "," && p.opts.Style.CommasES5() && lastKind != ast.RestElement:
		tail = IfBreak(Text(","), nil)
	}
	if inner := p.innerComments(id, HardLine); inner != nil {
		parts = append(parts, HardLine, inner)
	}
	body := []Doc{Text("{"), Indent(Concat(line, Concat(parts...)), tail), line, Text("}")}
	if broken {
		return BrokenGroup(body...)
	}
	return Group(body...)
}

func (p *printer) printProperty(n *ast.Node) Doc {
	key, value := n.Kid(ast.SlotKey), n.Kid(ast.SlotValue)
	if n.Has(ast.FlagShorthand) {
		return p.decorate(key, p.print(value))
	}
	return p.assignment(p.propertyKey(key, n.Has(ast.FlagComputed)), ":", value)
}

// propertyKey prints an object or class member key.
func (p *printer) propertyKey(key ast.NodeID, computed bool) Doc {
	if computed {
		return Concat(Text("["), p.print(key), Text("]"))
	}
	if p.opts.Normalize && p.kind(key) == ast.StringLiteral {
		if name, ok := p.unquotedKey(key); ok {
			return p.decorate(key, Text(name))
		}
	}
	return p.print(key)
}

// --- binary chains ---

// printBinary flattens `a && b && c` into one group that breaks after each
// operator.
func (p *printer) printBinary(id ast.NodeID, n *ast.Node) Doc {
	parts := p.binaryParts(id, n)
	parent := p.grandparent()
	if pk := p.kind(parent); pk == ast.IfStatement || pk == ast.WhileStatement || pk == ast.DoWhileStatement ||
		pk == ast.SwitchStatement {
		// the surrounding parentheses already indent
		return Group(parts...)
	}
	return Group(parts[0], Indent(parts[1:]...))
}

func (p *printer) binaryParts(id ast.NodeID, n *ast.Node) []Doc {
	left := n.Kid(ast.SlotLeft)
	ln := p.tree.Node(left)
	var parts []Doc
	if ln != nil && (ln.Kind == ast.BinaryExpression || ln.Kind == ast.LogicalExpression) &&
		shouldFlatten(n.Text, ln.Text) && !p.needsParens(left, id) && !p.commented(left) {
		p.stack = append(p.stack, left)
		parts = p.binaryParts(left, ln)
		p.stack = p.stack[:len(p.stack)-1]
	} else {
		parts = []Doc{p.print(left)}
	}
	return append(parts, Text(" "+n.Text), Line, p.print(n.Kid(ast.SlotRight)))
}

func (p *printer) commented(id ast.NodeID) bool {
	n := p.tree.Node(id)
	return n != nil && len(n.Leading)+len(n.Trailing)+len(n.Inner) > 0
}

// --- calls and members ---

func (p *printer) printCallOrMember(id ast.NodeID, n *ast.Node) Doc {
	switch n.Kind {
	case ast.MemberExpression:
		return Concat(p.print(n.Kid(ast.SlotObject)), p.memberSuffix(n))
	case ast.NewExpression:
		return Concat(
			Text("new "), p.print(n.Kid(ast.SlotCallee)), p.print(n.Kid(ast.SlotCallTypeArgs)),
			p.arguments(id, n.List),
		)
	}
	return Concat(p.print(n.Kid(ast.SlotCallee)), p.callSuffix(id, n))
}

func (p *printer) memberSuffix(n *ast.Node) Doc {
	prop := p.print(n.Kid(ast.SlotProperty))
	switch {
	case n.Has(ast.FlagComputed) && n.Has(ast.FlagOptional):
		return Concat(Text("?.["), prop, Text("]"))
	case n.Has(ast.FlagComputed):
		return Concat(Text("["), prop, Text("]"))
	case n.Has(ast.FlagOptional):
		return Concat(Text("?."), prop)
	}
	return Concat(Text("."), prop)
}

func (p *printer) callSuffix(id ast.NodeID, n *ast.Node) Doc {
	var opt Doc
	if n.Has(ast.FlagOptional) {
		opt = Text("?.")
	}
	return Concat(opt, p.print(n.Kid(ast.SlotCallTypeArgs)), p.arguments(id, n.List))
}

// arguments prints a call argument list. A trailing function or object
// literal hugs the parentheses; so does a leading callback followed by
// simple arguments.
func (p *printer) arguments(id ast.NodeID, args []ast.NodeID) Doc {
	if len(args) == 0 {
		if inner := p.innerComments(id, Line); inner != nil {
			return Concat(Text("("), inner, Text(")"))
		}
		return Text("()")
	}
	printed := p.printAll(args)
	if p.hugLast(args) || p.hugFirst(args) {
		return Concat(Text("("), Join(Text(", "), printed), Text(")"))
	}
	return p.list("(", ")", printed, p.opts.Style.CommasAll() && p.kind(args[len(args)-1]) != ast.SpreadElement)
}

func (p *printer) huggable(id ast.NodeID) bool {
	n := p.tree.Node(id)
	if n == nil || len(n.Leading) > 0 {
		return false
	}
	switch n.Kind {
	case ast.ArrowFunctionExpression:
		return true
	case ast.FunctionExpression:
		return true
	case ast.ObjectExpression, ast.ArrayExpression:
		return len(n.List) > 0
	case ast.TemplateLiteral:
		return hasNewline(p.nodeSource(id))
	}
	return false
}

func (p *printer) hugLast(args []ast.NodeID) bool {
	last := args[len(args)-1]
	if !p.huggable(last) {
		return false
	}
	for _, a := range args[:len(args)-1] {
		if p.huggable(a) {
			return false
		}
	}
	return true
}

func (p *printer) hugFirst(args []ast.NodeID) bool {
	if len(args) < 2 {
		return false
	}
	switch p.kind(args[0]) {
	case ast.FunctionExpression, ast.ArrowFunctionExpression:
		if p.kind(p.tree.Kid(args[0], ast.SlotFnBody)) != ast.BlockStatement {
			return false
		}
	default:
		return false
	}
	for _, a := range args[1:] {
		switch p.kind(a) {
		case ast.Identifier, ast.NumericLiteral, ast.StringLiteral, ast.BooleanLiteral, ast.NullLiteral,
			ast.ThisExpression, ast.MemberExpression:
		default:
			return false
		}
	}
	return true
}

// nodeSource returns the source text of a node, empty for synthetic ones.
func (p *printer) nodeSource(id ast.NodeID) string {
	n := p.tree.Node(id)
	if n == nil || n.Has(ast.FlagSynthetic) || p.src == nil || int(n.Span.End) > len(p.src) {
		return ""
	}
	return string(p.src[n.Span.Start:n.Span.End])
}

// --- member chains ---

// chainLink is one `.name` / `[expr]` access followed by its calls.
type chainLink struct {
	member ast.NodeID
	calls  []ast.NodeID
}

// flattenChain splits `a.b().c().d()` into the head `a` and its links.
func (p *printer) flattenChain(id ast.NodeID) (head ast.NodeID, links []chainLink) {
	var rev []chainLink
	var calls []ast.NodeID
	for {
		n := p.tree.Node(id)
		if n == nil || p.commented(id) && len(rev)+len(calls) > 0 {
			break
		}
		if n.Kind == ast.CallExpression {
			calls = append(calls, id)
			id = n.Kid(ast.SlotCallee)
			continue
		}
		if n.Kind == ast.MemberExpression && !n.Has(ast.FlagParenthesized) {
			reversed := make([]ast.NodeID, len(calls))
			for i, c := range calls {
				reversed[len(calls)-1-i] = c
			}
			rev = append(rev, chainLink{member: id, calls: reversed})
			calls = nil
			id = n.Kid(ast.SlotObject)
			continue
		}
		break
	}
	if len(calls) > 0 {
		// foo()().bar(): the head is the whole call under the first member
		id = calls[0]
	}
	links = make([]chainLink, len(rev))
	for i, l := range rev {
		links[len(rev)-1-i] = l
	}
	return id, links
}

// isMemberChain reports chains with at least three calls, which break one
// link per line when they do not fit.
func (p *printer) isMemberChain(id ast.NodeID) bool {
	if p.kind(id) != ast.CallExpression {
		return false
	}
	if pk := p.kind(p.grandparent()); pk == ast.CallExpression || pk == ast.MemberExpression {
		if p.tree.Kid(p.grandparent(), ast.SlotCallee) == id || p.tree.Kid(p.grandparent(), ast.SlotObject) == id {
			return false
		}
	}
	_, links := p.flattenChain(id)
	calls := 0
	for _, l := range links {
		calls += len(l.calls)
	}
	return calls >= 3 && len(links) >= 3
}

func (p *printer) printMemberChain(id ast.NodeID) Doc {
	head, links := p.flattenChain(id)
	p.stack = append(p.stack, links[0].member)
	headDoc := p.print(head)
	p.stack = p.stack[:len(p.stack)-1]

	// короткая голова (this, a) склеивается с первым звеном
	merged := 0
	hn := p.tree.Node(head)
	if hn != nil && (hn.Kind == ast.ThisExpression || hn.Kind == ast.Identifier && len(hn.Text) <= p.opts.Style.TabWidth) {
		merged = 1
	}
	var first, rest []Doc
	first = append(first, headDoc)
	for i, l := range links {
		d := p.printLink(l)
		if i < merged {
			first = append(first, d)
			continue
		}
		if p.tree.Node(l.member).Has(ast.FlagComputed) {
			rest = append(rest, d)
			continue
		}
		rest = append(rest, SoftLine, d)
	}
	return Group(Concat(first...), Indent(rest...))
}

// printLink prints one link, pushing each node on the stack so nested
// printers see the right ancestors.
func (p *printer) printLink(l chainLink) Doc {
	mn := p.tree.Node(l.member)
	parts := []Doc{p.printChainNode(l.member, func() Doc { return p.memberSuffix(mn) })}
	for _, c := range l.calls {
		cn := p.tree.Node(c)
		parts = append(parts, p.printChainNode(c, func() Doc { return p.callSuffix(c, cn) }))
	}
	return Concat(parts...)
}

func (p *printer) printChainNode(id ast.NodeID, fn func() Doc) Doc {
	if id == p.parent() {
		// the chain root is already on the stack and decorated by print
		return fn()
	}
	p.stack = append(p.stack, id)
	d := fn()
	p.stack = p.stack[:len(p.stack)-1]
	return p.decorate(id, d)
}
