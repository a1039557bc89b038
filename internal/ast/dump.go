package ast

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// DumpNode is the JSON shape written by Dump.
type DumpNode struct {
	Type     string      `json:"type"`
	Slot     string      `json:"slot,omitempty"`
	Loc      string      `json:"loc,omitempty"`
	Text     string      `json:"text,omitempty"`
	Flags    string      `json:"flags,omitempty"`
	Leading  []string    `json:"leadingComments,omitempty"`
	Trailing []string    `json:"trailingComments,omitempty"`
	Inner    []string    `json:"innerComments,omitempty"`
	Children []*DumpNode `json:"children,omitempty"`
}

// Build converts the subtree at id into DumpNode form.
func (t *Tree) Build(id NodeID) *DumpNode {
	return t.build(id, "")
}

func (t *Tree) build(id NodeID, slot string) *DumpNode {
	n := t.Node(id)
	if n == nil {
		return &DumpNode{Type: "null", Slot: slot}
	}
	d := &DumpNode{
		Type:     n.Kind.String(),
		Slot:     slot,
		Text:     n.Text,
		Flags:    n.Flags.String(),
		Leading:  t.commentTexts(n.Leading),
		Trailing: t.commentTexts(n.Trailing),
		Inner:    t.commentTexts(n.Inner),
	}
	if t.File != nil && !n.Has(FlagSynthetic) {
		s, e := t.File.LineCol(n.Span.Start), t.File.LineCol(n.Span.End)
		d.Loc = fmt.Sprintf("%d:%d-%d:%d", s.Line, s.Col, e.Line, e.Col)
	}
	for _, slot := range VisitOrder(n.Kind, len(n.Kids)) {
		if slot == ListSlot {
			for i, c := range n.List {
				d.Children = append(d.Children, t.build(c, "list["+strconv.Itoa(i)+"]"))
			}
			continue
		}
		if c := n.Kid(int(slot)); c.IsValid() {
			d.Children = append(d.Children, t.build(c, strconv.Itoa(int(slot))))
		}
	}
	return d
}

func (t *Tree) commentTexts(ids []CommentID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if c := t.Comment(id); c != nil {
			out = append(out, c.Text)
		}
	}
	return out
}

// Dump writes the subtree at id as indented JSON.
func (t *Tree) Dump(w io.Writer, id NodeID) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Build(id))
}
