// Package annot scans the comments of a parsed file: it decides whether the
// file carries the `@flow` marker and indexes every comment by the lines on
// which it starts and ends.
package annot

import (
	"strings"

	"github.com/lukeapage/flow-to-ts/internal/ast"
)

// Marker is the eligibility marker. A comment qualifies only when its
// trimmed text is exactly the marker: `// @flow strict` does not.
const Marker = "@flow"

// Index maps source lines to the comment starting or ending there. When
// two comments share a line the later one wins.
type Index struct {
	StartLine map[uint32]ast.CommentID
	EndLine   map[uint32]ast.CommentID
}

// Result is the outcome of one scan.
type Result struct {
	Eligible bool
	Index    Index
}

// Scan walks every comment of t in source order. It never stops early: the
// index must cover the whole file even after the marker was seen.
func Scan(t *ast.Tree) Result {
	res := Result{Index: Index{
		StartLine: make(map[uint32]ast.CommentID),
		EndLine:   make(map[uint32]ast.CommentID),
	}}
	for _, id := range t.Comments() {
		c := t.Comment(id)
		if strings.TrimSpace(c.Text) == Marker {
			res.Eligible = true
		}
		res.Index.StartLine[c.StartLine] = id
		res.Index.EndLine[c.EndLine] = id
	}
	return res
}

// Lookup returns the comments recorded on line, start entry first, without
// duplicates.
func (ix Index) Lookup(line uint32) []ast.CommentID {
	if line == 0 {
		return nil
	}
	var out []ast.CommentID
	if id, ok := ix.StartLine[line]; ok {
		out = append(out, id)
	}
	if id, ok := ix.EndLine[line]; ok && (len(out) == 0 || out[0] != id) {
		out = append(out, id)
	}
	return out
}

// Len returns the number of indexed start lines.
func (ix Index) Len() int { return len(ix.StartLine) }
