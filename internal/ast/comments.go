package ast

import (
	"slices"

	"github.com/lukeapage/flow-to-ts/internal/source"
)

type CommentKind uint8

const (
	LineComment  CommentKind = iota // `// text`
	BlockComment                    // `/* text */`
)

// Comment is one source comment. Text excludes the delimiters. Lines are
// 1-based and refer to the original source; synthetic comments have zero
// lines.
type Comment struct {
	Kind      CommentKind
	Text      string
	Span      source.Span
	StartLine uint32
	EndLine   uint32
	// Removed comments keep their id but are never printed.
	Removed bool
}

// Placement says where a comment sits relative to its owner node.
type Placement uint8

const (
	Unattached Placement = iota
	Leading
	Trailing
	Inner // inside an otherwise empty node, e.g. `{ /* c */ }`
)

func (p Placement) String() string {
	switch p {
	case Leading:
		return "leading"
	case Trailing:
		return "trailing"
	case Inner:
		return "inner"
	default:
		return "unattached"
	}
}

// Attachment is the comment side of the comment <-> node table.
type Attachment struct {
	Node  NodeID
	Place Placement
}

// AddComment registers a comment. Ids are issued in call order, which the
// parser keeps equal to source order.
func (t *Tree) AddComment(c Comment) CommentID {
	id := CommentID(t.comments.Allocate(c))
	for len(t.owners) < int(id) {
		t.owners = append(t.owners, Attachment{})
	}
	return id
}

func (t *Tree) Comment(id CommentID) *Comment {
	return t.comments.Get(uint32(id))
}

func (t *Tree) CommentCount() uint32 { return t.comments.Len() }

// Comments returns every comment id in source order, removed ones included.
func (t *Tree) Comments() []CommentID {
	n := t.comments.Len()
	out := make([]CommentID, 0, n)
	for i := uint32(1); i <= n; i++ {
		out = append(out, CommentID(i))
	}
	return out
}

// Owner returns where a comment is attached.
func (t *Tree) Owner(id CommentID) Attachment {
	if !id.IsValid() || int(id) > len(t.owners) {
		return Attachment{}
	}
	return t.owners[id-1]
}

// Attach moves the comment to node at place, detaching it from its previous
// owner first. Both sides of the table change together.
func (t *Tree) Attach(id CommentID, node NodeID, place Placement) {
	n := t.Node(node)
	if n == nil || !id.IsValid() || int(id) > len(t.owners) {
		return
	}
	t.Detach(id)
	switch place {
	case Leading:
		n.Leading = insertSorted(n.Leading, id)
	case Trailing:
		n.Trailing = insertSorted(n.Trailing, id)
	default:
		place = Inner
		n.Inner = insertSorted(n.Inner, id)
	}
	t.owners[id-1] = Attachment{Node: node, Place: place}
}

// Detach removes the comment from its owner, if any.
func (t *Tree) Detach(id CommentID) {
	a := t.Owner(id)
	if !a.Node.IsValid() {
		return
	}
	if n := t.Node(a.Node); n != nil {
		switch a.Place {
		case Leading:
			n.Leading = without(n.Leading, id)
		case Trailing:
			n.Trailing = without(n.Trailing, id)
		case Inner:
			n.Inner = without(n.Inner, id)
		}
	}
	t.owners[id-1] = Attachment{}
}

// RemoveComment drops a comment from the output.
func (t *Tree) RemoveComment(id CommentID) {
	t.Detach(id)
	if c := t.Comment(id); c != nil {
		c.Removed = true
	}
}

// AttachedComments returns every comment attached to node, in id order.
func (t *Tree) AttachedComments(node NodeID) []CommentID {
	n := t.Node(node)
	if n == nil {
		return nil
	}
	out := make([]CommentID, 0, len(n.Leading)+len(n.Inner)+len(n.Trailing))
	out = append(out, n.Leading...)
	out = append(out, n.Inner...)
	out = append(out, n.Trailing...)
	slices.Sort(out)
	return out
}

// MoveComments reattaches every comment of from onto to, keeping each
// comment's placement. Inner comments of from become leading comments of to.
func (t *Tree) MoveComments(from, to NodeID) {
	if from == to {
		return
	}
	src := t.Node(from)
	if src == nil || t.Node(to) == nil {
		return
	}
	leading := slices.Clone(src.Leading)
	trailing := slices.Clone(src.Trailing)
	inner := slices.Clone(src.Inner)
	for _, c := range leading {
		t.Attach(c, to, Leading)
	}
	for _, c := range inner {
		t.Attach(c, to, Leading)
	}
	for _, c := range trailing {
		t.Attach(c, to, Trailing)
	}
}

func insertSorted(list []CommentID, id CommentID) []CommentID {
	i, found := slices.BinarySearch(list, id)
	if found {
		return list
	}
	return slices.Insert(list, i, id)
}

func without(list []CommentID, id CommentID) []CommentID {
	if i := slices.Index(list, id); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}
