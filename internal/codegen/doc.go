// Package codegen prints a TypeScript syntax tree as source text.
//
// Назначение: последний шаг конвейера, дерево -> текст. Узлы печатаются в
// промежуточный документ (Doc), который затем раскладывается по ширине
// строки.
// Не делает: переписывание типов (это transform) и чтение конфигурации.
// Зависимости: internal/ast, internal/config, go-runewidth.
package codegen

import "strings"

// Doc is a layout document: text joined by line breaks that a group may
// lay out flat or broken.
type Doc interface{ isDoc() }

type (
	textDoc   string
	concatDoc []Doc
	lineDoc   struct {
		soft bool // flat: nothing instead of a space
		hard bool // always breaks
	}
	groupDoc struct {
		contents Doc
		broken   bool
	}
	indentDoc     struct{ contents Doc }
	ifBreakDoc    struct{ broken, flat Doc }
	lineSuffixDoc struct{ contents Doc }
	breakParent   struct{}
)

func (textDoc) isDoc()       {}
func (concatDoc) isDoc()     {}
func (lineDoc) isDoc()       {}
func (*groupDoc) isDoc()     {}
func (indentDoc) isDoc()     {}
func (ifBreakDoc) isDoc()    {}
func (lineSuffixDoc) isDoc() {}
func (breakParent) isDoc()   {}

var (
	// Line is a space when flat and a newline when broken.
	Line Doc = lineDoc{}
	// SoftLine is nothing when flat and a newline when broken.
	SoftLine Doc = lineDoc{soft: true}
	// HardLine always breaks and breaks every enclosing group.
	HardLine Doc = concatDoc{lineDoc{hard: true}, breakParent{}}
	// BreakParent breaks every enclosing group.
	BreakParent Doc = breakParent{}
)

func Text(s string) Doc { return textDoc(s) }

// Concat joins docs; nil entries are dropped.
func Concat(docs ...Doc) Doc {
	out := make(concatDoc, 0, len(docs))
	for _, d := range docs {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

func Group(docs ...Doc) Doc { return &groupDoc{contents: Concat(docs...)} }

// BrokenGroup is a group that never lays out flat.
func BrokenGroup(docs ...Doc) Doc { return &groupDoc{contents: Concat(docs...), broken: true} }

func Indent(docs ...Doc) Doc { return indentDoc{contents: Concat(docs...)} }

// IfBreak picks broken or flat depending on the enclosing group.
func IfBreak(broken, flat Doc) Doc { return ifBreakDoc{broken: broken, flat: flat} }

// LineSuffix defers contents to the end of the current line.
func LineSuffix(docs ...Doc) Doc { return lineSuffixDoc{contents: Concat(docs...)} }

// Join puts sep between docs.
func Join(sep Doc, docs []Doc) Doc {
	out := make(concatDoc, 0, 2*len(docs))
	for i, d := range docs {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, d)
	}
	return out
}

// propagateBreaks marks every group that contains a forced break as broken.
func propagateBreaks(d Doc) bool {
	switch d := d.(type) {
	case concatDoc:
		found := false
		for _, c := range d {
			if propagateBreaks(c) {
				found = true
			}
		}
		return found
	case *groupDoc:
		if propagateBreaks(d.contents) {
			d.broken = true
		}
		return d.broken
	case indentDoc:
		return propagateBreaks(d.contents)
	case ifBreakDoc:
		b := d.broken != nil && propagateBreaks(d.broken)
		f := d.flat != nil && propagateBreaks(d.flat)
		return b || f
	case lineSuffixDoc:
		return propagateBreaks(d.contents)
	case breakParent:
		return true
	case lineDoc:
		return d.hard
	}
	return false
}

// hasNewline reports whether s spans several lines.
func hasNewline(s string) bool { return strings.ContainsRune(s, '\n') }
