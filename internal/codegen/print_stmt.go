package codegen

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
)

// statements prints a statement list one per line, keeping at most one
// blank line where the source had some.
func (p *printer) statements(list []ast.NodeID) Doc {
	var parts []Doc
	prev := ast.NoNodeID
	for _, s := range list {
		n := p.tree.Node(s)
		if n == nil || n.Kind == ast.EmptyStatement && len(n.Leading)+len(n.Trailing)+len(n.Inner) == 0 {
			continue
		}
		if prev.IsValid() {
			parts = append(parts, HardLine)
			if p.blankBetween(prev, s) {
				parts = append(parts, HardLine)
			}
		}
		parts = append(parts, p.print(s))
		prev = s
	}
	return Concat(parts...)
}

// block prints `{ body }` for a statement list owner.
func (p *printer) block(id ast.NodeID, body []ast.NodeID) Doc {
	live := false
	for _, s := range body {
		if p.kind(s) != ast.EmptyStatement {
			live = true
			break
		}
	}
	inner := p.innerComments(id, HardLine)
	if !live && inner == nil {
		return Text("{}")
	}
	var contents Doc
	switch {
	case !live:
		contents = inner
	case inner != nil:
		contents = Concat(p.statements(body), HardLine, inner)
	default:
		contents = p.statements(body)
	}
	return Concat(Text("{"), Indent(HardLine, contents), HardLine, Text("}"))
}

// clause prints the body of if/while/for: blocks stay on the line, other
// statements move to an indented line when they do not fit.
func (p *printer) clause(body ast.NodeID) Doc {
	switch p.kind(body) {
	case ast.BlockStatement:
		return Concat(Text(" "), p.print(body))
	case ast.EmptyStatement:
		return Text(";")
	}
	return Group(Indent(Line, p.print(body)))
}

func (p *printer) printStatement(id ast.NodeID, n *ast.Node) Doc {
	switch n.Kind {
	case ast.ExpressionStatement:
		expr := n.Kid(ast.SlotExpr)
		var d Doc
		if n.Has(ast.FlagDirective) {
			d = p.directive(expr)
		} else if p.startsWithNoLookahead(expr, false) {
			d = Concat(Text("("), p.print(expr), Text(")"))
		} else {
			d = p.print(expr)
		}
		if !p.opts.Style.Semi && startsRisky(firstText(d)) {
			d = Concat(Text(";"), d)
		}
		return Concat(d, p.semi())

	case ast.BlockStatement:
		return p.block(id, n.List)

	case ast.EmptyStatement:
		return Text(";")

	case ast.DebuggerStatement:
		return Concat(Text("debugger"), p.semi())

	case ast.WithStatement:
		return Concat(Text("with ("), p.print(n.Kid(ast.SlotObject)), Text(")"), p.clause(n.Kid(ast.SlotBody)))

	case ast.ReturnStatement, ast.ThrowStatement:
		word := "return"
		if n.Kind == ast.ThrowStatement {
			word = "throw"
		}
		arg := n.Kid(ast.SlotExpr)
		if !arg.IsValid() {
			return Concat(Text(word), p.semi())
		}
		return Concat(Text(word+" "), p.returnArgument(arg), p.semi())

	case ast.LabeledStatement:
		body := n.Kid(ast.SlotBody)
		if p.kind(body) == ast.EmptyStatement {
			return Concat(p.print(n.Kid(ast.SlotLabel)), Text(":;"))
		}
		return Concat(p.print(n.Kid(ast.SlotLabel)), Text(": "), p.print(body))

	case ast.BreakStatement, ast.ContinueStatement:
		word := "break"
		if n.Kind == ast.ContinueStatement {
			word = "continue"
		}
		if label := n.Kid(ast.SlotLabel); label.IsValid() {
			return Concat(Text(word+" "), p.print(label), p.semi())
		}
		return Concat(Text(word), p.semi())

	case ast.IfStatement:
		return p.printIf(n)

	case ast.SwitchStatement:
		return p.printSwitch(id, n)

	case ast.SwitchCase:
		return p.printCase(n)

	case ast.TryStatement:
		parts := []Doc{Text("try "), p.print(n.Kid(ast.SlotBlock))}
		if h := n.Kid(ast.SlotHandler); h.IsValid() {
			parts = append(parts, Text(" "), p.print(h))
		}
		if f := n.Kid(ast.SlotFinalizer); f.IsValid() {
			parts = append(parts, Text(" finally "), p.print(f))
		}
		return Concat(parts...)

	case ast.CatchClause:
		if param := n.Kid(ast.SlotParam); param.IsValid() {
			return Concat(Text("catch ("), p.print(param), Text(") "), p.print(n.Kid(ast.SlotBody)))
		}
		return Concat(Text("catch "), p.print(n.Kid(ast.SlotBody)))

	case ast.WhileStatement:
		return Concat(Text("while ("), p.print(n.Kid(ast.SlotTest)), Text(")"), p.clause(n.Kid(ast.SlotBody)))

	case ast.DoWhileStatement:
		body := n.Kid(ast.SlotBody)
		parts := []Doc{Text("do"), p.clause(body)}
		if p.kind(body) == ast.BlockStatement {
			parts = append(parts, Text(" "))
		} else {
			parts = append(parts, HardLine)
		}
		parts = append(parts, Text("while ("), p.print(n.Kid(ast.SlotTest)), Text(")"), p.semi())
		return Concat(parts...)

	case ast.ForStatement:
		return p.printFor(n)

	case ast.ForInStatement, ast.ForOfStatement:
		word := " in "
		head := "for ("
		if n.Kind == ast.ForOfStatement {
			word = " of "
			if n.Has(ast.FlagAwait) {
				head = "for await ("
			}
		}
		return Concat(
			Text(head), p.print(n.Kid(ast.SlotLeft)), Text(word), p.print(n.Kid(ast.SlotRight)), Text(")"),
			p.clause(n.Kid(ast.SlotEachBody)),
		)

	case ast.VariableDeclaration:
		return p.printVariables(n)

	case ast.VariableDeclarator:
		target := p.print(n.Kid(ast.SlotID))
		init := n.Kid(ast.SlotDeclInit)
		if !init.IsValid() {
			return target
		}
		return p.assignment(target, " =", init)
	}
	return nil
}

// returnArgument wraps binary chains and comment-led arguments in
// parentheses that appear only when the argument breaks.
func (p *printer) returnArgument(arg ast.NodeID) Doc {
	n := p.tree.Node(arg)
	if len(n.Leading) > 0 {
		return Concat(Text("("), Indent(HardLine, p.print(arg)), HardLine, Text(")"))
	}
	switch n.Kind {
	case ast.BinaryExpression, ast.LogicalExpression, ast.SequenceExpression:
		if p.needsParens(arg, p.parent()) {
			return p.print(arg)
		}
		return Group(IfBreak(Text("("), nil), Indent(SoftLine, p.print(arg)), SoftLine, IfBreak(Text(")"), nil))
	}
	return p.print(arg)
}

func (p *printer) printIf(n *ast.Node) Doc {
	cons := n.Kid(ast.SlotCons)
	parts := []Doc{
		Group(Text("if ("), Indent(SoftLine, p.print(n.Kid(ast.SlotTest))), SoftLine, Text(")")),
		p.clause(cons),
	}
	alt := n.Kid(ast.SlotAlt)
	if !alt.IsValid() {
		return Concat(parts...)
	}
	if p.kind(cons) == ast.BlockStatement {
		parts = append(parts, Text(" "))
	} else {
		parts = append(parts, HardLine)
	}
	parts = append(parts, Text("else"))
	if p.kind(alt) == ast.IfStatement {
		parts = append(parts, Text(" "), p.print(alt))
	} else {
		parts = append(parts, p.clause(alt))
	}
	return Concat(parts...)
}

func (p *printer) printSwitch(id ast.NodeID, n *ast.Node) Doc {
	head := Group(Text("switch ("), Indent(SoftLine, p.print(n.Kid(ast.SlotTest))), SoftLine, Text(") {"))
	if len(n.List) == 0 {
		if inner := p.innerComments(id, HardLine); inner != nil {
			return Concat(head, Indent(HardLine, inner), HardLine, Text("}"))
		}
		return Concat(head, Text("}"))
	}
	var cases []Doc
	for i, c := range n.List {
		if i > 0 {
			cases = append(cases, HardLine)
			if p.blankBetween(n.List[i-1], c) {
				cases = append(cases, HardLine)
			}
		}
		cases = append(cases, p.print(c))
	}
	return Concat(head, Indent(HardLine, Concat(cases...)), HardLine, Text("}"))
}

func (p *printer) printCase(n *ast.Node) Doc {
	var head Doc
	if test := n.Kid(ast.SlotTest); test.IsValid() {
		head = Concat(Text("case "), p.print(test), Text(":"))
	} else {
		head = Text("default:")
	}
	live := make([]ast.NodeID, 0, len(n.List))
	for _, s := range n.List {
		if p.kind(s) != ast.EmptyStatement {
			live = append(live, s)
		}
	}
	switch {
	case len(live) == 0:
		return head
	case len(live) == 1 && p.kind(live[0]) == ast.BlockStatement:
		return Concat(head, Text(" "), p.print(live[0]))
	}
	return Concat(head, Indent(HardLine, p.statements(live)))
}

func (p *printer) printFor(n *ast.Node) Doc {
	init, test, update := n.Kid(ast.SlotInit), n.Kid(ast.SlotForTest), n.Kid(ast.SlotUpdate)
	body := p.clause(n.Kid(ast.SlotForBody))
	if !init.IsValid() && !test.IsValid() && !update.IsValid() {
		return Concat(Text("for (;;)"), body)
	}
	noIn := p.noIn
	p.noIn = true
	initDoc := p.print(init)
	p.noIn = noIn
	return Concat(
		Group(
			Text("for ("),
			Indent(SoftLine, initDoc, Text(";"), Line, p.print(test), Text(";"), Line, p.print(update)),
			SoftLine,
			Text(")"),
		),
		body,
	)
}

func (p *printer) printVariables(n *ast.Node) Doc {
	inFor := false
	switch parent := p.grandparent(); p.kind(parent) {
	case ast.ForStatement, ast.ForInStatement, ast.ForOfStatement:
		inFor = p.tree.Kid(parent, ast.SlotInit) == p.parent()
	}

	var parts []Doc
	if n.Has(ast.FlagDeclare) {
		parts = append(parts, Text("declare "))
	}
	parts = append(parts, Text(n.Text+" "))

	decls := p.printAll(n.List)
	hasInit := false
	for _, d := range n.List {
		if p.tree.Kid(d, ast.SlotDeclInit).IsValid() {
			hasInit = true
		}
	}
	if len(decls) > 0 {
		parts = append(parts, decls[0])
	}
	if len(decls) > 1 {
		sep := Line
		if hasInit && !inFor {
			sep = HardLine
		}
		var rest []Doc
		for _, d := range decls[1:] {
			rest = append(rest, Text(","), sep, d)
		}
		parts = append(parts, Indent(rest...))
	}

	if !inFor {
		parts = append(parts, p.semi())
	}
	return Group(parts...)
}

// assignment lays out `left op right`: values that carry their own
// brackets stay on the line, anything else may move to the next line.
func (p *printer) assignment(left Doc, op string, right ast.NodeID) Doc {
	if p.hugsRight(right) {
		return Concat(left, Text(op+" "), p.print(right))
	}
	return Group(left, Text(op), Group(Indent(Line, p.print(right))))
}

func (p *printer) hugsRight(id ast.NodeID) bool {
	n := p.tree.Node(id)
	if n == nil {
		return true
	}
	if len(n.Leading) > 0 {
		return false
	}
	switch n.Kind {
	case ast.ObjectExpression, ast.ArrayExpression, ast.ArrowFunctionExpression, ast.FunctionExpression,
		ast.ClassExpression, ast.CallExpression, ast.NewExpression, ast.TemplateLiteral,
		ast.TaggedTemplateExpression, ast.JSXElement, ast.JSXFragment, ast.AwaitExpression,
		ast.ObjectPattern, ast.ArrayPattern, ast.Identifier, ast.ThisExpression, ast.Super,
		ast.NullLiteral, ast.BooleanLiteral, ast.NumericLiteral, ast.BigIntLiteral, ast.RegExpLiteral,
		ast.UnaryExpression, ast.UpdateExpression, ast.YieldExpression:
		return true
	case ast.MemberExpression:
		// a.b.c stays on the line unless a call is inside
		return !p.hasCallInChain(id)
	case ast.StringLiteral:
		return true
	case ast.AssignmentExpression:
		return p.hugsRight(n.Kid(ast.SlotRight))
	case ast.ConditionalExpression:
		return false
	}
	return false
}

// --- no-semicolon guards ---

// firstText returns the first printed text of d.
func firstText(d Doc) string {
	switch d := d.(type) {
	case textDoc:
		return string(d)
	case concatDoc:
		for _, c := range d {
			if s := firstText(c); s != "" {
				return s
			}
			if _, isLine := c.(lineDoc); isLine {
				return ""
			}
		}
	case *groupDoc:
		return firstText(d.contents)
	case indentDoc:
		return firstText(d.contents)
	case ifBreakDoc:
		return firstText(d.flat)
	}
	return ""
}

// startsRisky reports a statement start that would continue the previous
// line when no semicolon separates them.
func startsRisky(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '[', '(', '`', '+', '-', '/', '*', '<':
		return true
	}
	return false
}
