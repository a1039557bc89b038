package codegen

import (
	"strings"

	"github.com/lukeapage/flow-to-ts/internal/ast"
)

// decorate wraps d with the comments attached to id. Inner comments the
// node printer did not place are appended after the node.
func (p *printer) decorate(id ast.NodeID, d Doc) Doc {
	n := p.tree.Node(id)
	if n == nil || len(n.Leading)+len(n.Trailing)+len(n.Inner) == 0 {
		return d
	}
	parts := make([]Doc, 0, len(n.Leading)+len(n.Trailing)+len(n.Inner)+1)
	for _, c := range n.Leading {
		parts = append(parts, p.leadingComment(c))
	}
	parts = append(parts, d)
	for _, c := range n.Inner {
		parts = append(parts, p.trailingComment(c))
	}
	for _, c := range n.Trailing {
		parts = append(parts, p.trailingComment(c))
	}
	return Concat(parts...)
}

// take marks a comment as printed; false means skip it.
func (p *printer) take(id ast.CommentID) (*ast.Comment, bool) {
	c := p.tree.Comment(id)
	if c == nil || c.Removed || p.printed[id] {
		return nil, false
	}
	p.printed[id] = true
	return c, true
}

func (p *printer) leadingComment(id ast.CommentID) Doc {
	c, ok := p.take(id)
	if !ok {
		return nil
	}
	text := p.commentText(c)
	if c.Kind == ast.LineComment || p.newlineAfter(c) {
		if p.blankAfter(c) {
			return Concat(text, HardLine, HardLine)
		}
		return Concat(text, HardLine)
	}
	return Concat(text, Text(" "))
}

func (p *printer) trailingComment(id ast.CommentID) Doc {
	c, ok := p.take(id)
	if !ok {
		return nil
	}
	text := p.commentText(c)
	if p.ownLine(c) {
		var blank Doc
		if p.blankBeforeComment(c) {
			blank = HardLine
		}
		return Concat(LineSuffix(HardLine, blank, text), BreakParent)
	}
	if c.Kind == ast.LineComment {
		return Concat(LineSuffix(Text(" "), text), BreakParent)
	}
	return Concat(Text(" "), text)
}

// innerComments prints the comments of an otherwise empty node, one per
// line after sep-joined layout. nil when there are none.
func (p *printer) innerComments(id ast.NodeID, sep Doc) Doc {
	n := p.tree.Node(id)
	if n == nil || len(n.Inner) == 0 {
		return nil
	}
	var parts []Doc
	for _, cid := range n.Inner {
		c, ok := p.take(cid)
		if !ok {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, p.commentText(c))
		if c.Kind == ast.LineComment {
			parts = append(parts, BreakParent)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return Concat(parts...)
}

// hasInner reports unprinted inner comments.
func (p *printer) hasInner(id ast.NodeID) bool {
	n := p.tree.Node(id)
	if n == nil {
		return false
	}
	for _, cid := range n.Inner {
		if c := p.tree.Comment(cid); c != nil && !c.Removed && !p.printed[cid] {
			return true
		}
	}
	return false
}

// hasLineInner reports an inner line comment, which forces a break after it.
func (p *printer) hasLineInner(id ast.NodeID) bool {
	n := p.tree.Node(id)
	if n == nil {
		return false
	}
	for _, cid := range n.Inner {
		if c := p.tree.Comment(cid); c != nil && !c.Removed && c.Kind == ast.LineComment {
			return true
		}
	}
	return false
}

func (p *printer) commentText(c *ast.Comment) Doc {
	if c.Kind == ast.LineComment {
		return Text("//" + strings.TrimRight(c.Text, " \t\r"))
	}
	if !strings.Contains(c.Text, "\n") {
		return Text("/*" + c.Text + "*/")
	}
	lines := strings.Split(c.Text, "\n")
	if isDocBlock(lines) {
		// строки doc-комментария выравниваются по первой `*`
		parts := []Doc{Text("/*" + strings.TrimRight(lines[0], " \t"))}
		closed := false
		for i, line := range lines[1:] {
			trimmed := strings.TrimLeft(line, " \t")
			if i == len(lines)-2 && strings.TrimSpace(trimmed) == "" {
				parts = append(parts, HardLine, Text(" */"))
				closed = true
				break
			}
			parts = append(parts, HardLine, Text(" "+trimmed))
		}
		if !closed {
			parts = append(parts, Text("*/"))
		}
		return Concat(parts...)
	}
	return Text("/*" + c.Text + "*/")
}

// isDocBlock reports a block comment whose every continuation line starts
// with `*`.
func isDocBlock(lines []string) bool {
	if len(lines) < 2 {
		return false
	}
	for i, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if i == len(lines)-2 && strings.TrimSpace(trimmed) == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "*") {
			return false
		}
	}
	return true
}

// --- source layout probes ---

// newlineAfter reports a line break between the comment and the next token.
func (p *printer) newlineAfter(c *ast.Comment) bool {
	if c.StartLine == 0 {
		return c.Kind == ast.LineComment
	}
	for i := int(c.Span.End); i < len(p.src); i++ {
		switch p.src[i] {
		case ' ', '\t', '\r':
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// blankAfter reports an empty line right after the comment.
func (p *printer) blankAfter(c *ast.Comment) bool {
	if c.StartLine == 0 {
		return false
	}
	return blankAt(p.src, int(c.Span.End))
}

// ownLine reports a comment that starts its source line.
func (p *printer) ownLine(c *ast.Comment) bool {
	if c.StartLine == 0 {
		return false
	}
	for i := int(c.Span.Start) - 1; i >= 0; i-- {
		switch p.src[i] {
		case ' ', '\t', '\r':
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// blankBeforeComment reports an empty line right before the comment.
func (p *printer) blankBeforeComment(c *ast.Comment) bool {
	if c.StartLine == 0 {
		return false
	}
	newlines := 0
	for i := int(c.Span.Start) - 1; i >= 0; i-- {
		switch p.src[i] {
		case ' ', '\t', '\r':
		case '\n':
			newlines++
			if newlines == 2 {
				return true
			}
		default:
			return false
		}
	}
	return false
}

// blankAt reports two line breaks separated only by blanks starting at off.
func blankAt(src []byte, off int) bool {
	newlines := 0
	for i := off; i < len(src); i++ {
		switch src[i] {
		case ' ', '\t', '\r':
		case '\n':
			newlines++
			if newlines == 2 {
				return true
			}
		default:
			return false
		}
	}
	return false
}

// extent is the source range of a node widened by its comments. ok is
// false for synthetic nodes.
func (p *printer) extent(id ast.NodeID) (start, end uint32, ok bool) {
	n := p.tree.Node(id)
	if n == nil || n.Has(ast.FlagSynthetic) || p.src == nil || n.Span.End == 0 {
		return 0, 0, false
	}
	start, end = n.Span.Start, n.Span.End
	for _, cid := range n.Leading {
		if c := p.tree.Comment(cid); c != nil && c.StartLine != 0 && c.Span.Start < start {
			start = c.Span.Start
		}
	}
	for _, cid := range n.Trailing {
		if c := p.tree.Comment(cid); c != nil && c.StartLine != 0 && c.Span.End > end {
			end = c.Span.End
		}
	}
	return start, end, true
}

// blankBetween reports an empty source line between two sibling nodes.
func (p *printer) blankBetween(prev, cur ast.NodeID) bool {
	_, end, ok1 := p.extent(prev)
	start, _, ok2 := p.extent(cur)
	if !ok1 || !ok2 || end > start || int(start) > len(p.src) {
		return false
	}
	return hasBlankLine(p.src[end:start])
}

// blankBefore reports an empty line between the previous token and id.
func (p *printer) blankBefore(id ast.NodeID) bool {
	start, _, ok := p.extent(id)
	if !ok {
		return false
	}
	newlines := 0
	for i := int(start) - 1; i >= 0; i-- {
		switch p.src[i] {
		case ' ', '\t', '\r':
		case '\n':
			newlines++
			if newlines == 2 {
				return true
			}
		default:
			return false
		}
	}
	return false
}

// hasBlankLine reports a line of only blanks inside gap. The first and
// last partial lines do not count.
func hasBlankLine(gap []byte) bool {
	first := true
	blank := true
	for _, b := range gap {
		switch b {
		case '\n':
			if blank && !first {
				return true
			}
			first = false
			blank = true
		case ' ', '\t', '\r':
		default:
			blank = false
		}
	}
	return false
}

// newlineInside reports whether the source of id has a line break between
// offsets from and to.
func (p *printer) newlineInside(from, to uint32) bool {
	if p.src == nil || from >= to || int(to) > len(p.src) {
		return false
	}
	return hasNewline(string(p.src[from:to]))
}
