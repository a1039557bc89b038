// Package testkit holds checks shared by tests of the parser and the
// transform.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a tree:
// 1) the root span covers the whole file
// 2) every span lies within the file content and points at the file
// 3) every child span is contained in its parent span
// Nodes with an empty span are synthetic and skipped, along with the
// containment check of their children.
func CheckSpanInvariants(t *ast.Tree) error {
	if t == nil || t.File == nil {
		return fmt.Errorf("nil tree or file")
	}
	sf := t.File
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	root := t.Node(t.Root)
	if root == nil {
		return fmt.Errorf("root node not found")
	}
	if root.Span.Start != 0 || root.Span.End != lenContent {
		return fmt.Errorf("root span %d..%d does not cover the file (%d bytes)", root.Span.Start, root.Span.End, lenContent)
	}

	var firstErr error
	var check func(id ast.NodeID, parent source.Span, synthetic bool)
	check = func(id ast.NodeID, parent source.Span, synthetic bool) {
		if firstErr != nil {
			return
		}
		n := t.Node(id)
		span := n.Span
		empty := span.Start == 0 && span.End == 0
		if !empty {
			switch {
			case span.File != sf.ID:
				firstErr = fmt.Errorf("%s span points to file %d, want %d", n.Kind, span.File, sf.ID)
			case span.End < span.Start:
				firstErr = fmt.Errorf("%s span is inverted: %d..%d", n.Kind, span.Start, span.End)
			case span.End > lenContent:
				firstErr = fmt.Errorf("%s span end beyond content: %d > %d", n.Kind, span.End, lenContent)
			case !synthetic && (span.Start < parent.Start || span.End > parent.End):
				firstErr = fmt.Errorf("%s span %d..%d escapes parent %d..%d", n.Kind, span.Start, span.End, parent.Start, parent.End)
			}
		}
		if firstErr != nil {
			return
		}
		for _, c := range t.Children(id) {
			check(c, span, empty)
		}
	}
	check(t.Root, root.Span, false)
	return firstErr
}
