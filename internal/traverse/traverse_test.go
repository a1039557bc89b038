package traverse_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/parser"
	"github.com/lukeapage/flow-to-ts/internal/source"
	"github.com/lukeapage/flow-to-ts/internal/traverse"
)

func mustParse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.js", []byte(src)))
	tree, err := parser.ParseFile(file, parser.Options{Dialect: parser.Flow})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return tree
}

type names struct{ seen []string }

func TestWalkVisitsInSourceOrder(t *testing.T) {
	tree := mustParse(t, "const a = b + c;\nfunction d(e) { return f; }")
	reg := traverse.NewRegistry[*names]().Enter(func(p *traverse.Path, st *names) error {
		st.seen = append(st.seen, p.Node().Text)
		return nil
	}, ast.Identifier)
	st := &names{}
	if err := traverse.Walk(tree, reg, st); err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := []string{"a", "b", "c", "d", "e", "f"}
	if !slices.Equal(st.seen, want) {
		t.Fatalf("visit order = %v, want %v", st.seen, want)
	}
}

func TestEnterExitPairing(t *testing.T) {
	tree := mustParse(t, "f(g(x));")
	var events []string
	reg := traverse.NewRegistry[any]().On(traverse.Visitor[any]{
		Enter: func(p *traverse.Path, _ any) error {
			events = append(events, "enter")
			return nil
		},
		Exit: func(p *traverse.Path, _ any) error {
			events = append(events, "exit")
			return nil
		},
	}, ast.CallExpression)
	if err := traverse.Walk(tree, reg, nil); err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := []string{"enter", "enter", "exit", "exit"}
	if !slices.Equal(events, want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
}

func TestReplaceIsVisitedOnce(t *testing.T) {
	tree := mustParse(t, "type A = ?string;")
	enters := 0
	reg := traverse.NewRegistry[any]()
	reg.Enter(func(p *traverse.Path, _ any) error {
		inner := p.Node().Kid(ast.SlotInner)
		p.Replace(inner)
		return nil
	}, ast.NullableType)
	reg.Enter(func(p *traverse.Path, _ any) error {
		enters++
		return nil
	}, ast.KeywordType)
	if err := traverse.Walk(tree, reg, nil); err != nil {
		t.Fatalf("walk: %v", err)
	}
	if enters != 1 {
		t.Fatalf("keyword type entered %d times, want 1", enters)
	}
	alias := tree.Node(tree.Root).List[0]
	if k := tree.Kind(tree.Kid(alias, ast.SlotDeclBody)); k != ast.KeywordType {
		t.Fatalf("alias body = %v, want KeywordType", k)
	}
}

func TestRemoveFromListKeepsWalking(t *testing.T) {
	tree := mustParse(t, "a;\nb;\nc;")
	var seen []string
	reg := traverse.NewRegistry[any]().Enter(func(p *traverse.Path, _ any) error {
		name := p.Tree.Text(p.Node().Kid(ast.SlotExpr))
		seen = append(seen, name)
		if name == "b" {
			p.Remove()
		}
		return nil
	}, ast.ExpressionStatement)
	if err := traverse.Walk(tree, reg, nil); err != nil {
		t.Fatalf("walk: %v", err)
	}
	if !slices.Equal(seen, []string{"a", "b", "c"}) {
		t.Fatalf("seen = %v", seen)
	}
	if n := len(tree.Node(tree.Root).List); n != 2 {
		t.Fatalf("program has %d statements, want 2", n)
	}
}

func TestRemoveMovesCommentsToNeighbour(t *testing.T) {
	tree := mustParse(t, "a;\n// about b\nb;\nc;")
	reg := traverse.NewRegistry[any]().Enter(func(p *traverse.Path, _ any) error {
		if p.Tree.Text(p.Node().Kid(ast.SlotExpr)) == "b" {
			p.Remove()
		}
		return nil
	}, ast.ExpressionStatement)
	if err := traverse.Walk(tree, reg, nil); err != nil {
		t.Fatalf("walk: %v", err)
	}
	first := tree.Node(tree.Root).List[0]
	if got := tree.AttachedComments(first); len(got) != 1 {
		t.Fatalf("comments on previous statement = %v, want the moved one", got)
	}
}

func TestReplaceManyWalksInsertedNodes(t *testing.T) {
	tree := mustParse(t, "a;\nz;")
	var seen []string
	reg := traverse.NewRegistry[any]().Enter(func(p *traverse.Path, _ any) error {
		expr := p.Node().Kid(ast.SlotExpr)
		seen = append(seen, p.Tree.Text(expr))
		if p.Tree.Text(expr) == "a" {
			b := p.Tree.New(ast.ExpressionStatement, source.Span{}, p.Tree.NewText(ast.Identifier, source.Span{}, "b"))
			c := p.Tree.New(ast.ExpressionStatement, source.Span{}, p.Tree.NewText(ast.Identifier, source.Span{}, "c"))
			p.ReplaceMany(b, c)
		}
		return nil
	}, ast.ExpressionStatement)
	if err := traverse.Walk(tree, reg, nil); err != nil {
		t.Fatalf("walk: %v", err)
	}
	// a заменён на b (b входит повторно), c и z идут следом
	want := []string{"a", "b", "c", "z"}
	if !slices.Equal(seen, want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
}

func TestSkipAndErrors(t *testing.T) {
	tree := mustParse(t, "f(x); g(y);")
	var seen []string
	stop := errors.New("stop")
	reg := traverse.NewRegistry[any]()
	reg.Enter(func(p *traverse.Path, _ any) error {
		p.Skip()
		return nil
	}, ast.CallExpression)
	reg.Enter(func(p *traverse.Path, _ any) error {
		seen = append(seen, p.Node().Text)
		return nil
	}, ast.Identifier)
	if err := traverse.Walk(tree, reg, nil); err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(seen) != 0 {
		t.Fatalf("skipped subtrees were visited: %v", seen)
	}

	reg = traverse.NewRegistry[any]().Enter(func(p *traverse.Path, _ any) error {
		if p.Node().Text == "x" {
			return stop
		}
		seen = append(seen, p.Node().Text)
		return nil
	}, ast.Identifier)
	if err := traverse.Walk(tree, reg, nil); !errors.Is(err, stop) {
		t.Fatalf("err = %v, want stop", err)
	}
	if !slices.Equal(seen, []string{"f"}) {
		t.Fatalf("walk continued after error: %v", seen)
	}
}

func TestAncestor(t *testing.T) {
	tree := mustParse(t, "declare module 'm' { declare var x: number; }")
	found := false
	reg := traverse.NewRegistry[any]().Enter(func(p *traverse.Path, _ any) error {
		found = p.Ancestor(ast.ModuleDeclaration) != nil
		return nil
	}, ast.VariableDeclaration)
	if err := traverse.Walk(tree, reg, nil); err != nil {
		t.Fatalf("walk: %v", err)
	}
	if !found {
		t.Fatalf("ModuleDeclaration ancestor not found")
	}
}
