package transform

import (
	"slices"

	"github.com/lukeapage/flow-to-ts/internal/annot"
	"github.com/lukeapage/flow-to-ts/internal/ast"
)

// reattacher moves the comments of replaced and removed nodes onto the
// nearest surviving node. Comments recorded in the line index on the old
// node's first or last line are handled first, each on its own; the rest
// of the dropped subtree is swept after that, so comments the index lost
// to a shared line are kept as well.
type reattacher struct {
	idx annot.Index
}

func (r *reattacher) Replaced(t *ast.Tree, old, repl ast.NodeID) {
	keep := subtree(t, repl)
	sameKind := t.Kind(old) == t.Kind(repl)
	for _, c := range r.orphans(t, old, keep) {
		place := t.Owner(c).Place
		if place == ast.Inner && !sameKind {
			place = ast.Leading
		}
		t.Attach(c, repl, place)
	}
}

func (r *reattacher) Removed(t *ast.Tree, old, parent, prev, next ast.NodeID) {
	for _, c := range r.orphans(t, old, nil) {
		switch {
		case prev.IsValid():
			t.Attach(c, prev, ast.Trailing)
		case next.IsValid():
			t.Attach(c, next, ast.Leading)
		default:
			t.Attach(c, parent, ast.Inner)
		}
	}
}

// orphans lists the comments owned inside the subtree of old but outside
// keep: line-indexed ones first, then the rest in source order.
func (r *reattacher) orphans(t *ast.Tree, old ast.NodeID, keep map[ast.NodeID]bool) []ast.CommentID {
	dropped := make(map[ast.NodeID]bool)
	var swept []ast.CommentID
	t.Inspect(old, func(id ast.NodeID, n *ast.Node) bool {
		if keep[id] {
			return false
		}
		dropped[id] = true
		swept = append(swept, t.AttachedComments(id)...)
		return true
	})

	var out []ast.CommentID
	for _, line := range []uint32{t.StartLine(old), t.EndLine(old)} {
		for _, c := range r.idx.Lookup(line) {
			if dropped[t.Owner(c).Node] && !slices.Contains(out, c) {
				out = append(out, c)
			}
		}
	}
	slices.Sort(swept)
	for _, c := range swept {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

func subtree(t *ast.Tree, root ast.NodeID) map[ast.NodeID]bool {
	set := make(map[ast.NodeID]bool)
	t.Inspect(root, func(id ast.NodeID, _ *ast.Node) bool {
		set[id] = true
		return true
	})
	return set
}
