package ast

import (
	"github.com/lukeapage/flow-to-ts/internal/source"
)

// Node is one syntax node. Fixed children live in Kids at the slot indices
// documented on the Kind constants; variable-length children live in List.
// Missing optional children are NoNodeID.
type Node struct {
	Kind     Kind
	Flags    Flags
	Span     source.Span
	Text     string
	Kids     []NodeID
	List     []NodeID
	Leading  []CommentID
	Trailing []CommentID
	Inner    []CommentID
}

func (n *Node) Has(f Flags) bool { return n.Flags&f == f }

// Kid returns the child in slot i, or NoNodeID.
func (n *Node) Kid(i int) NodeID {
	if i < 0 || i >= len(n.Kids) {
		return NoNodeID
	}
	return n.Kids[i]
}

// Tree owns every node and comment of one parsed file.
type Tree struct {
	File     *source.File
	Root     NodeID
	nodes    *Arena[Node]
	comments *Arena[Comment]
	owners   []Attachment
}

func NewTree(file *source.File) *Tree {
	hint := uint(0)
	if file != nil {
		hint = uint(len(file.Content) / 4)
	}
	return &Tree{
		File:     file,
		nodes:    NewArena[Node](hint),
		comments: NewArena[Comment](0),
	}
}

// New allocates a node.
func (t *Tree) New(kind Kind, span source.Span, kids ...NodeID) NodeID {
	n := Node{Kind: kind, Span: span}
	if len(kids) > 0 {
		n.Kids = append([]NodeID(nil), kids...)
	}
	return NodeID(t.nodes.Allocate(n))
}

// NewText allocates a node carrying text (identifiers, literals, operators).
func (t *Tree) NewText(kind Kind, span source.Span, text string, kids ...NodeID) NodeID {
	id := t.New(kind, span, kids...)
	t.Node(id).Text = text
	return id
}

// NewList allocates a node with list children.
func (t *Tree) NewList(kind Kind, span source.Span, list []NodeID, kids ...NodeID) NodeID {
	id := t.New(kind, span, kids...)
	t.Node(id).List = list
	return id
}

// Node returns the node for id or nil.
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes.Get(uint32(id))
}

// Kind returns Invalid for missing nodes.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return Invalid
}

func (t *Tree) Is(id NodeID, kinds ...Kind) bool {
	k := t.Kind(id)
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

func (t *Tree) Kid(id NodeID, slot int) NodeID {
	if n := t.Node(id); n != nil {
		return n.Kid(slot)
	}
	return NoNodeID
}

// SetKid stores kid in slot, growing Kids as needed.
func (t *Tree) SetKid(id NodeID, slot int, kid NodeID) {
	n := t.Node(id)
	if n == nil {
		return
	}
	for len(n.Kids) <= slot {
		n.Kids = append(n.Kids, NoNodeID)
	}
	n.Kids[slot] = kid
}

func (t *Tree) Text(id NodeID) string {
	if n := t.Node(id); n != nil {
		return n.Text
	}
	return ""
}

func (t *Tree) Span(id NodeID) source.Span {
	if n := t.Node(id); n != nil {
		return n.Span
	}
	return source.Span{}
}

// NodeCount returns the number of allocated nodes, live or not.
func (t *Tree) NodeCount() uint32 { return t.nodes.Len() }

// Mark records the allocation state for a later Reset.
type Mark struct {
	nodes    uint32
	comments uint32
}

func (t *Tree) Mark() Mark {
	return Mark{nodes: t.nodes.Len(), comments: t.comments.Len()}
}

// Reset discards every node and comment allocated after m.
func (t *Tree) Reset(m Mark) {
	t.nodes.Truncate(m.nodes)
	t.comments.Truncate(m.comments)
	if int(m.comments) < len(t.owners) {
		t.owners = t.owners[:m.comments]
	}
}

// Children returns the present children of id in source order.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	out := make([]NodeID, 0, len(n.Kids)+len(n.List))
	for _, slot := range VisitOrder(n.Kind, len(n.Kids)) {
		if slot == ListSlot {
			for _, c := range n.List {
				if c.IsValid() {
					out = append(out, c)
				}
			}
			continue
		}
		if c := n.Kid(int(slot)); c.IsValid() {
			out = append(out, c)
		}
	}
	return out
}

// StartLine and EndLine return 1-based lines of the node span, or 0 for
// synthetic nodes.
func (t *Tree) StartLine(id NodeID) uint32 {
	n := t.Node(id)
	if n == nil || t.File == nil || n.Has(FlagSynthetic) {
		return 0
	}
	return t.File.LineCol(n.Span.Start).Line
}

func (t *Tree) EndLine(id NodeID) uint32 {
	n := t.Node(id)
	if n == nil || t.File == nil || n.Has(FlagSynthetic) {
		return 0
	}
	end := n.Span.End
	if end > n.Span.Start {
		end--
	}
	return t.File.LineCol(end).Line
}
