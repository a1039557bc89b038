package codegen

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type mode uint8

const (
	modeBreak mode = iota
	modeFlat
)

type cmd struct {
	indent int
	mode   mode
	doc    Doc
}

// Render lays d out within width columns; width <= 0 means unlimited.
// Indentation is tabWidth spaces per level.
func Render(d Doc, width, tabWidth int) string {
	if width <= 0 {
		width = int(^uint(0) >> 2)
	}
	if tabWidth <= 0 {
		tabWidth = 2
	}
	propagateBreaks(d)

	w := newWriter(tabWidth)
	var suffix []cmd
	stack := []cmd{{doc: d, mode: modeBreak}}
	for len(stack) > 0 || len(suffix) > 0 {
		if len(stack) == 0 {
			for i := len(suffix) - 1; i >= 0; i-- {
				stack = append(stack, suffix[i])
			}
			suffix = suffix[:0]
		}
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch doc := c.doc.(type) {
		case nil:
		case textDoc:
			w.write(string(doc))
		case concatDoc:
			for i := len(doc) - 1; i >= 0; i-- {
				stack = append(stack, cmd{indent: c.indent, mode: c.mode, doc: doc[i]})
			}
		case indentDoc:
			stack = append(stack, cmd{indent: c.indent + 1, mode: c.mode, doc: doc.contents})
		case *groupDoc:
			m := modeBreak
			if !doc.broken && c.mode == modeFlat {
				m = modeFlat
			} else if !doc.broken {
				next := cmd{indent: c.indent, mode: modeFlat, doc: doc.contents}
				if fits(next, stack, width-w.col) {
					m = modeFlat
				}
			}
			stack = append(stack, cmd{indent: c.indent, mode: m, doc: doc.contents})
		case ifBreakDoc:
			branch := doc.broken
			if c.mode == modeFlat {
				branch = doc.flat
			}
			if branch != nil {
				stack = append(stack, cmd{indent: c.indent, mode: c.mode, doc: branch})
			}
		case lineSuffixDoc:
			suffix = append(suffix, cmd{indent: c.indent, mode: c.mode, doc: doc.contents})
		case breakParent:
		case lineDoc:
			if c.mode == modeFlat && !doc.hard {
				if !doc.soft {
					w.write(" ")
				}
				continue
			}
			if len(suffix) > 0 {
				// отложенные комментарии печатаются до переноса
				stack = append(stack, c)
				for i := len(suffix) - 1; i >= 0; i-- {
					stack = append(stack, suffix[i])
				}
				suffix = suffix[:0]
				continue
			}
			w.newline(c.indent)
		}
	}
	return w.String()
}

// fits reports whether next, followed by the rest of the stack, fits on
// the current line.
func fits(next cmd, rest []cmd, width int) bool {
	queue := []cmd{next}
	restIdx := len(rest)
	for width >= 0 {
		if len(queue) == 0 {
			if restIdx == 0 {
				return true
			}
			restIdx--
			queue = append(queue, rest[restIdx])
			continue
		}
		c := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		switch doc := c.doc.(type) {
		case textDoc:
			s := string(doc)
			if i := strings.IndexByte(s, '\n'); i >= 0 {
				return width-runewidth.StringWidth(s[:i]) >= 0
			}
			width -= runewidth.StringWidth(s)
		case concatDoc:
			for i := len(doc) - 1; i >= 0; i-- {
				queue = append(queue, cmd{indent: c.indent, mode: c.mode, doc: doc[i]})
			}
		case indentDoc:
			queue = append(queue, cmd{indent: c.indent, mode: c.mode, doc: doc.contents})
		case *groupDoc:
			m := c.mode
			if doc.broken {
				m = modeBreak
			}
			queue = append(queue, cmd{indent: c.indent, mode: m, doc: doc.contents})
		case ifBreakDoc:
			branch := doc.broken
			if c.mode == modeFlat {
				branch = doc.flat
			}
			if branch != nil {
				queue = append(queue, cmd{indent: c.indent, mode: c.mode, doc: branch})
			}
		case lineDoc:
			if c.mode == modeBreak || doc.hard {
				return true
			}
			if !doc.soft {
				width--
			}
		}
	}
	return false
}

// writer accumulates rendered text and tracks the current column.
type writer struct {
	buf      []byte
	col      int
	tabWidth int
}

func newWriter(tabWidth int) *writer {
	return &writer{tabWidth: tabWidth}
}

func (w *writer) write(s string) {
	if s == "" {
		return
	}
	w.buf = append(w.buf, s...)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		w.col = runewidth.StringWidth(s[i+1:])
		return
	}
	w.col += runewidth.StringWidth(s)
}

// newline ends the line, dropping trailing spaces, and indents the next.
func (w *writer) newline(indent int) {
	w.trimRight()
	w.buf = append(w.buf, '\n')
	n := indent * w.tabWidth
	for range n {
		w.buf = append(w.buf, ' ')
	}
	w.col = n
}

// String returns the output without trailing whitespace on the last line.
func (w *writer) String() string {
	w.trimRight()
	return string(w.buf)
}

func (w *writer) trimRight() {
	for len(w.buf) > 0 && (w.buf[len(w.buf)-1] == ' ' || w.buf[len(w.buf)-1] == '\t') {
		w.buf = w.buf[:len(w.buf)-1]
	}
}
