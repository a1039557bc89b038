package ast

import "slices"

// Clone deep-copies the subtree rooted at id. Comments are not copied: a
// comment has exactly one owner.
func (t *Tree) Clone(id NodeID) NodeID {
	n := t.Node(id)
	if n == nil {
		return NoNodeID
	}
	cp := Node{
		Kind:  n.Kind,
		Flags: n.Flags,
		Span:  n.Span,
		Text:  n.Text,
		Kids:  slices.Clone(n.Kids),
		List:  slices.Clone(n.List),
	}
	for i, k := range cp.Kids {
		cp.Kids[i] = t.Clone(k)
	}
	for i, k := range cp.List {
		cp.List[i] = t.Clone(k)
	}
	return NodeID(t.nodes.Allocate(cp))
}
