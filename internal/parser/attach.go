package parser

import (
	"sort"

	"github.com/lukeapage/flow-to-ts/internal/ast"
)

// attachComments assigns every collected comment to a node. The owner is
// found by span: the innermost node enclosing the comment, and among its
// children the nearest ones before and after it.
//
//	own line:     leading of following, else trailing of preceding
//	end of line:  trailing of preceding, else leading of following
//	otherwise:    leading of following, else trailing of preceding
//
// A comment with neither neighbour becomes an inner comment of the
// enclosing node.
func attachComments(t *ast.Tree) {
	content := t.File.Content
	for _, cid := range t.Comments() {
		c := t.Comment(cid)
		enclosing, preceding, following := locate(t, t.Root, c.Span.Start, c.Span.End)

		ownLine := onlySpaceBefore(content, c.Span.Start)
		endOfLine := onlySpaceAfter(content, c.Span.End)
		switch {
		case ownLine && following.IsValid():
			t.Attach(cid, following, ast.Leading)
		case ownLine && preceding.IsValid():
			t.Attach(cid, preceding, ast.Trailing)
		case endOfLine && preceding.IsValid():
			t.Attach(cid, preceding, ast.Trailing)
		case following.IsValid():
			t.Attach(cid, following, ast.Leading)
		case preceding.IsValid():
			t.Attach(cid, preceding, ast.Trailing)
		default:
			t.Attach(cid, enclosing, ast.Inner)
		}
	}
}

// locate descends from id to the innermost node containing [start, end).
func locate(t *ast.Tree, id ast.NodeID, start, end uint32) (enclosing, preceding, following ast.NodeID) {
	enclosing = id
	for {
		kids := sortedChildren(t, enclosing)
		preceding, following = ast.NoNodeID, ast.NoNodeID
		descended := false
		for _, k := range kids {
			sp := t.Span(k)
			if sp.Start <= start && end <= sp.End && sp.Start < sp.End {
				enclosing = k
				descended = true
				break
			}
			if sp.End <= start {
				preceding = k
				continue
			}
			if sp.Start >= end && !following.IsValid() {
				following = k
			}
		}
		if !descended {
			return enclosing, preceding, following
		}
	}
}

func sortedChildren(t *ast.Tree, id ast.NodeID) []ast.NodeID {
	kids := t.Children(id)
	sort.SliceStable(kids, func(i, j int) bool {
		return t.Span(kids[i]).Start < t.Span(kids[j]).Start
	})
	return kids
}

func onlySpaceBefore(content []byte, off uint32) bool {
	for i := int(off) - 1; i >= 0; i-- {
		switch content[i] {
		case ' ', '\t':
			continue
		case '\n', '\r':
			return true
		default:
			return false
		}
	}
	return true
}

func onlySpaceAfter(content []byte, off uint32) bool {
	for i := int(off); i < len(content); i++ {
		switch content[i] {
		case ' ', '\t':
			continue
		case '\n', '\r':
			return true
		default:
			return false
		}
	}
	return true
}
