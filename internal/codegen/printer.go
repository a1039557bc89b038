package codegen

import (
	"errors"
	"fmt"

	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/config"
	"github.com/lukeapage/flow-to-ts/internal/diag"
)

// Options control one Generate call.
type Options struct {
	Style config.Style
	// Normalize rewrites literal spelling: string quotes, number case and
	// quoted object keys. Without it literals are printed as written.
	Normalize bool
	// JSX marks output for a .tsx file, where `<T>(x) => x` is ambiguous.
	JSX bool
}

// GeneratorOptions print a tree close to its source layout.
func GeneratorOptions() Options {
	return Options{Style: config.GeneratorStyle()}
}

type printer struct {
	tree    *ast.Tree
	src     []byte
	opts    Options
	err     error
	stack   []ast.NodeID
	printed map[ast.CommentID]bool
	noIn    bool
}

// Generate prints the tree rooted at t.Root. Any Flow-only node left in the
// tree fails the whole call with *diag.UnsupportedError.
func Generate(t *ast.Tree, opts Options) (string, error) {
	if t == nil || !t.Root.IsValid() {
		return "", errors.New("codegen: empty tree")
	}
	if err := opts.Style.Validate(); err != nil {
		return "", fmt.Errorf("codegen: %w", err)
	}
	p := &printer{
		tree:    t,
		opts:    opts,
		printed: make(map[ast.CommentID]bool),
	}
	if t.File != nil {
		p.src = t.File.Content
	}
	d := p.print(t.Root)
	if p.err != nil {
		return "", p.err
	}
	return Render(d, opts.Style.PrintWidth, opts.Style.TabWidth), nil
}

// print renders one node with its comments and, when the context requires
// it, parentheses.
func (p *printer) print(id ast.NodeID) Doc {
	if !id.IsValid() || p.err != nil {
		return nil
	}
	n := p.tree.Node(id)
	if n == nil {
		return nil
	}
	if n.Kind.IsFlowOnly() {
		p.fail(id, "Flow-only syntax has no TypeScript form")
		return nil
	}
	parens := p.needsParens(id, p.parent())
	p.stack = append(p.stack, id)
	defer func() { p.stack = p.stack[:len(p.stack)-1] }()

	noIn := p.noIn
	if parens {
		p.noIn = false
	}
	d := p.printNode(id, n)
	p.noIn = noIn
	if parens {
		d = Concat(Text("("), d, Text(")"))
	}
	return p.decorate(id, d)
}

// parent is the top of the print stack: inside printNode that is the
// node itself.
func (p *printer) parent() ast.NodeID {
	if len(p.stack) == 0 {
		return ast.NoNodeID
	}
	return p.stack[len(p.stack)-1]
}

// grandparent is the entry below parent.
func (p *printer) grandparent() ast.NodeID {
	if len(p.stack) < 2 {
		return ast.NoNodeID
	}
	return p.stack[len(p.stack)-2]
}

func (p *printer) fail(id ast.NodeID, msg string) {
	if p.err != nil {
		return
	}
	err := &diag.UnsupportedError{
		Kind: p.tree.Kind(id).String(),
		Code: diag.TrnUntranslated,
		Msg:  msg,
	}
	if n := p.tree.Node(id); n != nil {
		err.Span = n.Span
	}
	if f := p.tree.File; f != nil {
		err.Path = f.Path
		if !p.tree.Node(id).Has(ast.FlagSynthetic) {
			err.Pos = f.LineCol(err.Span.Start)
		}
	}
	p.err = err
}

func (p *printer) printNode(id ast.NodeID, n *ast.Node) Doc {
	switch n.Kind {
	case ast.Program:
		return p.printProgram(id, n)

	case ast.ExpressionStatement, ast.BlockStatement, ast.EmptyStatement, ast.DebuggerStatement,
		ast.WithStatement, ast.ReturnStatement, ast.LabeledStatement, ast.BreakStatement,
		ast.ContinueStatement, ast.IfStatement, ast.SwitchStatement, ast.SwitchCase,
		ast.ThrowStatement, ast.TryStatement, ast.CatchClause, ast.WhileStatement,
		ast.DoWhileStatement, ast.ForStatement, ast.ForInStatement, ast.ForOfStatement,
		ast.VariableDeclaration, ast.VariableDeclarator:
		return p.printStatement(id, n)

	case ast.FunctionDeclaration, ast.FunctionExpression:
		return p.printFunction(id, n)
	case ast.ArrowFunctionExpression:
		return p.printArrow(id, n)
	case ast.ObjectMethod, ast.ClassMethod:
		return p.printMethod(id, n)

	case ast.ClassDeclaration, ast.ClassExpression:
		return p.printClass(id, n)
	case ast.ClassBody:
		return p.printClassBody(id, n)
	case ast.ClassProperty:
		return p.printClassProperty(id, n)
	case ast.InterfaceExtends:
		return Concat(p.print(n.Kid(ast.SlotID)), p.print(n.Kid(ast.SlotTypeArgs)))

	case ast.JSXElement, ast.JSXOpeningElement, ast.JSXClosingElement, ast.JSXFragment,
		ast.JSXAttribute, ast.JSXSpreadAttribute, ast.JSXExpressionContainer,
		ast.JSXEmptyExpression, ast.JSXSpreadChild, ast.JSXText, ast.JSXIdentifier,
		ast.JSXMemberExpression, ast.JSXNamespacedName:
		return p.printJSX(id, n)

	case ast.ImportDeclaration, ast.ImportSpecifier, ast.ImportDefaultSpecifier,
		ast.ImportNamespaceSpecifier, ast.ExportNamedDeclaration, ast.ExportSpecifier,
		ast.ExportDefaultDeclaration, ast.ExportAllDeclaration, ast.ExportAssignment:
		return p.printModuleItem(id, n)
	}

	if n.Kind.IsType() || n.Kind == ast.TypeAlias || n.Kind == ast.InterfaceDeclaration ||
		n.Kind == ast.ModuleDeclaration {
		return p.printType(id, n)
	}
	return p.printExpression(id, n)
}

func (p *printer) printProgram(id ast.NodeID, n *ast.Node) Doc {
	var parts []Doc
	if n.Text != "" {
		parts = append(parts, Text(n.Text), HardLine)
		if len(n.List) > 0 && p.blankBefore(n.List[0]) {
			parts = append(parts, HardLine)
		}
	}
	parts = append(parts, p.statements(n.List))
	if inner := p.innerComments(id, HardLine); inner != nil {
		if len(n.List) > 0 {
			parts = append(parts, HardLine)
		}
		parts = append(parts, inner)
	}
	return Concat(parts...)
}

// semi is the statement terminator of the current style.
func (p *printer) semi() Doc {
	if p.opts.Style.Semi {
		return Text(";")
	}
	return nil
}

// bracketLine is the line inside `{ }` of object literals and imports.
func (p *printer) bracketLine() Doc {
	if p.opts.Style.BracketSpacing {
		return Line
	}
	return SoftLine
}

// list lays out a comma separated list between open and close. trailing
// adds a comma after the last item when the group breaks.
func (p *printer) list(open, close string, items []Doc, trailing bool) Doc {
	if len(items) == 0 {
		return Text(open + close)
	}
	var comma Doc
	if trailing {
		comma = IfBreak(Text(","), nil)
	}
	return Group(
		Text(open),
		Indent(SoftLine, Join(Concat(Text(","), Line), items)),
		comma,
		SoftLine,
		Text(close),
	)
}

func (p *printer) printAll(ids []ast.NodeID) []Doc {
	out := make([]Doc, 0, len(ids))
	for _, id := range ids {
		out = append(out, p.print(id))
	}
	return out
}

func (p *printer) kind(id ast.NodeID) ast.Kind { return p.tree.Kind(id) }
