// Package traverse walks an ast.Tree with per-kind handlers that may
// rewrite the tree while it is being walked.
package traverse

import (
	"slices"

	"github.com/lukeapage/flow-to-ts/internal/ast"
)

// Handler is called on entry to or exit from a node.
type Handler[S any] func(p *Path, state S) error

// Visitor groups the handlers of one node kind. Either may be nil.
type Visitor[S any] struct {
	Enter Handler[S]
	Exit  Handler[S]
}

// Reattacher keeps comments alive when nodes are replaced or removed.
type Reattacher interface {
	Replaced(t *ast.Tree, old, repl ast.NodeID)
	Removed(t *ast.Tree, old ast.NodeID, parent ast.NodeID, prev, next ast.NodeID)
}

// Registry maps node kinds to visitors. Kinds without an entry are walked
// through without a call.
type Registry[S any] struct {
	visitors map[ast.Kind]Visitor[S]
	// Comments receives every Replace and Remove. Nil falls back to
	// moving the comments of the old node onto its replacement.
	Comments Reattacher
}

func NewRegistry[S any]() *Registry[S] {
	return &Registry[S]{visitors: make(map[ast.Kind]Visitor[S])}
}

// On registers handlers for kinds. A later call for the same kind replaces
// the earlier one.
func (r *Registry[S]) On(v Visitor[S], kinds ...ast.Kind) *Registry[S] {
	for _, k := range kinds {
		r.visitors[k] = v
	}
	return r
}

func (r *Registry[S]) Enter(fn Handler[S], kinds ...ast.Kind) *Registry[S] {
	for _, k := range kinds {
		v := r.visitors[k]
		v.Enter = fn
		r.visitors[k] = v
	}
	return r
}

func (r *Registry[S]) Exit(fn Handler[S], kinds ...ast.Kind) *Registry[S] {
	for _, k := range kinds {
		v := r.visitors[k]
		v.Exit = fn
		r.visitors[k] = v
	}
	return r
}

// Path is the position of the visited node: the node itself, its parent
// and the container it sits in.
type Path struct {
	Tree   *ast.Tree
	ID     ast.NodeID
	Parent *Path
	// Slot is the Kids index holding the node, or ast.ListSlot with Index
	// pointing into the parent's List. The root has neither.
	Slot  int
	Index int

	comments Reattacher
	replaced bool
	removed  bool
	skipped  bool
	inserted int // nodes added after this one in a list container
}

func (p *Path) Node() *ast.Node { return p.Tree.Node(p.ID) }
func (p *Path) Kind() ast.Kind  { return p.Tree.Kind(p.ID) }

// ParentID returns the parent node, or NoNodeID for the root.
func (p *Path) ParentID() ast.NodeID {
	if p.Parent == nil {
		return ast.NoNodeID
	}
	return p.Parent.ID
}

// InList reports whether the node is an element of its parent's List.
func (p *Path) InList() bool { return p.Parent != nil && p.Slot == ast.ListSlot }

// Ancestor returns the nearest ancestor of one of kinds.
func (p *Path) Ancestor(kinds ...ast.Kind) *Path {
	for a := p.Parent; a != nil; a = a.Parent {
		if slices.Contains(kinds, a.Kind()) {
			return a
		}
	}
	return nil
}

// Replace puts repl where the node was. The walk continues into repl,
// which is entered once more.
func (p *Path) Replace(repl ast.NodeID) {
	if repl == p.ID {
		return
	}
	p.comments.Replaced(p.Tree, p.ID, repl)
	p.store(repl)
	p.ID = repl
	p.replaced = true
}

// ReplaceMany replaces a list element with several nodes. The first one
// takes the old node's place; the rest are walked after it.
func (p *Path) ReplaceMany(ids ...ast.NodeID) {
	if len(ids) == 0 {
		p.Remove()
		return
	}
	if !p.InList() {
		panic("traverse: ReplaceMany outside a list")
	}
	p.Replace(ids[0])
	p.InsertAfter(ids[1:]...)
}

// InsertAfter adds siblings after the node in a list container.
func (p *Path) InsertAfter(ids ...ast.NodeID) {
	if len(ids) == 0 {
		return
	}
	if !p.InList() {
		panic("traverse: InsertAfter outside a list")
	}
	parent := p.Parent.Node()
	at := p.Index + 1 + p.inserted
	parent.List = slices.Insert(parent.List, at, ids...)
	p.inserted += len(ids)
}

// Remove drops the node from its container. The node's exit handler and
// children are not visited.
func (p *Path) Remove() {
	if p.Parent == nil {
		panic("traverse: cannot remove the root")
	}
	var prev, next ast.NodeID
	siblings := p.Tree.Children(p.Parent.ID)
	if i := slices.Index(siblings, p.ID); i >= 0 {
		if i > 0 {
			prev = siblings[i-1]
		}
		if i+1 < len(siblings) {
			next = siblings[i+1]
		}
	}
	p.comments.Removed(p.Tree, p.ID, p.Parent.ID, prev, next)
	if p.InList() {
		parent := p.Parent.Node()
		parent.List = slices.Delete(parent.List, p.Index, p.Index+1)
	} else {
		p.Tree.SetKid(p.Parent.ID, p.Slot, ast.NoNodeID)
	}
	p.removed = true
}

// Skip stops the walk from descending into the node. Exit still runs.
func (p *Path) Skip() { p.skipped = true }

func (p *Path) store(id ast.NodeID) {
	switch {
	case p.Parent == nil:
		p.Tree.Root = id
	case p.InList():
		p.Parent.Node().List[p.Index] = id
	default:
		p.Tree.SetKid(p.Parent.ID, p.Slot, id)
	}
}

// moveComments is the fallback reattacher.
type moveComments struct{}

func (moveComments) Replaced(t *ast.Tree, old, repl ast.NodeID) { t.MoveComments(old, repl) }

func (moveComments) Removed(t *ast.Tree, old, parent, prev, next ast.NodeID) {
	for _, c := range t.AttachedComments(old) {
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
