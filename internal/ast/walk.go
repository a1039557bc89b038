package ast

// Inspect calls fn for id and, while fn returns true, for its descendants in
// source order. It is read-only; rewriting walks live in package traverse.
func (t *Tree) Inspect(id NodeID, fn func(id NodeID, n *Node) bool) {
	n := t.Node(id)
	if n == nil || !fn(id, n) {
		return
	}
	for _, c := range t.Children(id) {
		t.Inspect(c, fn)
	}
}

// Find returns the first node in pre-order that satisfies pred.
func (t *Tree) Find(id NodeID, pred func(id NodeID, n *Node) bool) NodeID {
	found := NoNodeID
	t.Inspect(id, func(id NodeID, n *Node) bool {
		if found.IsValid() {
			return false
		}
		if pred(id, n) {
			found = id
			return false
		}
		return true
	})
	return found
}
