package ast

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/source"
)

func newTestTree(t *testing.T, content string) *Tree {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte(content))
	return NewTree(fs.Get(id))
}

func TestArenaTruncateAcrossChunks(t *testing.T) {
	a := NewArena[int](0)
	for i := range chunkSize + 5 {
		a.Allocate(i)
	}
	a.Truncate(chunkSize)
	if a.Len() != chunkSize {
		t.Fatalf("len = %d, want %d", a.Len(), chunkSize)
	}
	if a.Get(chunkSize+1) != nil {
		t.Fatalf("truncated element still reachable")
	}
	idx := a.Allocate(42)
	if idx != chunkSize+1 || *a.Get(idx) != 42 {
		t.Fatalf("allocate after truncate: idx=%d", idx)
	}
	if *a.Get(1) != 0 || *a.Get(chunkSize) != chunkSize-1 {
		t.Fatalf("kept elements changed")
	}
}

func TestChildrenSourceOrder(t *testing.T) {
	tr := newTestTree(t, "")
	id := tr.New(Identifier, source.Span{})
	param := tr.New(Identifier, source.Span{})
	ret := tr.New(TypeAnnotation, source.Span{})
	body := tr.New(BlockStatement, source.Span{})
	fn := tr.NewList(FunctionDeclaration, source.Span{}, []NodeID{param}, id, NoNodeID, ret, body)

	got := tr.Children(fn)
	want := []NodeID{id, param, ret, body}
	if len(got) != len(want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want %v", got, want)
		}
	}
}

func TestSetKidGrows(t *testing.T) {
	tr := newTestTree(t, "")
	n := tr.New(ClassDeclaration, source.Span{})
	body := tr.New(ClassBody, source.Span{})
	tr.SetKid(n, SlotClassBody, body)
	if tr.Kid(n, SlotClassBody) != body {
		t.Fatalf("class body not stored")
	}
	if tr.Kid(n, SlotSuper).IsValid() {
		t.Fatalf("unset slot should be empty")
	}
}

func TestCommentTableBidirectional(t *testing.T) {
	tr := newTestTree(t, "// a\nx\n")
	a := tr.New(Identifier, source.Span{})
	b := tr.New(Identifier, source.Span{})
	c := tr.AddComment(Comment{Kind: LineComment, Text: " a", StartLine: 1, EndLine: 1})

	tr.Attach(c, a, Leading)
	if got := tr.Owner(c); got.Node != a || got.Place != Leading {
		t.Fatalf("owner = %+v", got)
	}
	tr.Attach(c, b, Trailing)
	if len(tr.Node(a).Leading) != 0 {
		t.Fatalf("comment still listed on old owner")
	}
	if got := tr.Node(b).Trailing; len(got) != 1 || got[0] != c {
		t.Fatalf("trailing = %v", got)
	}
	tr.RemoveComment(c)
	if tr.Owner(c).Node.IsValid() || !tr.Comment(c).Removed {
		t.Fatalf("removed comment still attached")
	}
}

func TestMoveCommentsKeepsOrder(t *testing.T) {
	tr := newTestTree(t, "")
	from := tr.New(Identifier, source.Span{})
	to := tr.New(Identifier, source.Span{})
	c1 := tr.AddComment(Comment{Text: "1"})
	c2 := tr.AddComment(Comment{Text: "2"})
	c3 := tr.AddComment(Comment{Text: "3"})
	tr.Attach(c2, from, Leading)
	tr.Attach(c1, to, Leading)
	tr.Attach(c3, from, Trailing)

	tr.MoveComments(from, to)
	if got := tr.Node(to).Leading; len(got) != 2 || got[0] != c1 || got[1] != c2 {
		t.Fatalf("leading = %v", got)
	}
	if got := tr.Node(to).Trailing; len(got) != 1 || got[0] != c3 {
		t.Fatalf("trailing = %v", got)
	}
	if len(tr.AttachedComments(from)) != 0 {
		t.Fatalf("source node kept comments")
	}
}

func TestResetDropsSpeculativeState(t *testing.T) {
	tr := newTestTree(t, "")
	keep := tr.New(Identifier, source.Span{})
	m := tr.Mark()
	tr.New(Identifier, source.Span{})
	tr.AddComment(Comment{Text: "x"})
	tr.Reset(m)
	if tr.NodeCount() != uint32(keep) || tr.CommentCount() != 0 {
		t.Fatalf("reset left nodes=%d comments=%d", tr.NodeCount(), tr.CommentCount())
	}
}

func TestCloneIsDeep(t *testing.T) {
	tr := newTestTree(t, "")
	inner := tr.NewText(Identifier, source.Span{}, "T")
	gen := tr.New(GenericType, source.Span{}, inner)
	c := tr.AddComment(Comment{Text: "keep"})
	tr.Attach(c, gen, Leading)

	cp := tr.Clone(gen)
	if cp == gen || tr.Kid(cp, SlotID) == inner {
		t.Fatalf("clone shares nodes")
	}
	if tr.Text(tr.Kid(cp, SlotID)) != "T" {
		t.Fatalf("clone lost text")
	}
	if len(tr.Node(cp).Leading) != 0 {
		t.Fatalf("clone copied comments")
	}
}

func TestLinesOfNode(t *testing.T) {
	tr := newTestTree(t, "a\nbb\nccc\n")
	n := tr.New(Identifier, source.Span{Start: 2, End: 5})
	if tr.StartLine(n) != 2 || tr.EndLine(n) != 2 {
		t.Fatalf("lines = %d-%d", tr.StartLine(n), tr.EndLine(n))
	}
	m := tr.New(Identifier, source.Span{Start: 0, End: 8})
	if tr.EndLine(m) != 3 {
		t.Fatalf("end line = %d", tr.EndLine(m))
	}
	s := tr.New(Identifier, source.Span{})
	tr.Node(s).Flags |= FlagSynthetic
	if tr.StartLine(s) != 0 {
		t.Fatalf("synthetic node has a line")
	}
}

func TestDumpJSON(t *testing.T) {
	tr := newTestTree(t, "x")
	id := tr.NewText(Identifier, source.Span{Start: 0, End: 1}, "x")
	stmt := tr.New(ExpressionStatement, source.Span{Start: 0, End: 1}, id)
	c := tr.AddComment(Comment{Text: " note"})
	tr.Attach(c, stmt, Trailing)
	tr.Root = tr.NewList(Program, source.Span{Start: 0, End: 1}, []NodeID{stmt})

	var buf bytes.Buffer
	if err := tr.Dump(&buf, tr.Root); err != nil {
		t.Fatalf("dump: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"type": "Program"`, `"type": "Identifier"`, `"text": "x"`, `"trailingComments": [`, `"loc": "1:1-1:2"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump missing %s:\n%s", want, out)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	if !NullableType.IsFlowOnly() || KeywordType.IsFlowOnly() {
		t.Fatalf("IsFlowOnly wrong")
	}
	if !ObjectType.IsType() || !ExistsType.IsType() || Identifier.IsType() {
		t.Fatalf("IsType wrong")
	}
	if !TypeAlias.IsStatement() || SwitchCase.IsStatement() || ImportSpecifier.IsStatement() {
		t.Fatalf("IsStatement wrong")
	}
	if Kind(250).String() != "Kind(250)" {
		t.Fatalf("unknown kind name = %q", Kind(250).String())
	}
	if (FlagOptional | FlagStatic).String() != "optional|static" {
		t.Fatalf("flags = %q", (FlagOptional | FlagStatic).String())
	}
}
