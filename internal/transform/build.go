package transform

import (
	"strconv"
	"strings"

	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/source"
)

// syn allocates a synthetic node: it has no source position, so the
// generator never derives blank lines or line breaks from it.
func (s *State) syn(kind ast.Kind, kids ...ast.NodeID) ast.NodeID {
	id := s.Tree.New(kind, source.Span{}, kids...)
	s.Tree.Node(id).Flags |= ast.FlagSynthetic
	return id
}

func (s *State) synText(kind ast.Kind, text string, kids ...ast.NodeID) ast.NodeID {
	id := s.syn(kind, kids...)
	s.Tree.Node(id).Text = text
	return id
}

func (s *State) synList(kind ast.Kind, list []ast.NodeID, kids ...ast.NodeID) ast.NodeID {
	id := s.syn(kind, kids...)
	s.Tree.Node(id).List = list
	return id
}

// like allocates a node that stands in for model and takes over its span.
func (s *State) like(model ast.NodeID, kind ast.Kind, kids ...ast.NodeID) ast.NodeID {
	m := s.Tree.Node(model)
	id := s.Tree.New(kind, m.Span, kids...)
	s.Tree.Node(id).Flags |= m.Flags & ast.FlagSynthetic
	return id
}

func (s *State) likeList(model ast.NodeID, kind ast.Kind, list []ast.NodeID, kids ...ast.NodeID) ast.NodeID {
	id := s.like(model, kind, kids...)
	s.Tree.Node(id).List = list
	return id
}

func (s *State) ident(name string) ast.NodeID {
	return s.synText(ast.Identifier, name)
}

func (s *State) keyword(name string) ast.NodeID {
	return s.synText(ast.KeywordType, name)
}

// typeName builds `A` or the qualified `A.B.C`.
func (s *State) typeName(name string) ast.NodeID {
	parts := strings.Split(name, ".")
	id := s.ident(parts[0])
	for _, part := range parts[1:] {
		id = s.syn(ast.QualifiedTypeName, id, s.ident(part))
	}
	return id
}

// typeRef builds the reference `name<args>`.
func (s *State) typeRef(name string, args ...ast.NodeID) ast.NodeID {
	targs := ast.NoNodeID
	if len(args) > 0 {
		targs = s.synList(ast.TypeParameterInstantiation, args)
	}
	return s.syn(ast.GenericType, s.typeName(name), targs)
}

// annotation wraps a type into `: T`.
func (s *State) annotation(typ ast.NodeID) ast.NodeID {
	if s.Tree.Kind(typ) == ast.TypeAnnotation {
		return typ
	}
	return s.syn(ast.TypeAnnotation, typ)
}

// qualifiedName renders Identifier / QualifiedTypeName as dotted text.
func qualifiedName(t *ast.Tree, id ast.NodeID) string {
	switch t.Kind(id) {
	case ast.Identifier:
		return t.Text(id)
	case ast.QualifiedTypeName:
		return qualifiedName(t, t.Kid(id, ast.SlotLeft)) + "." + t.Text(t.Kid(id, ast.SlotRight))
	}
	return ""
}

// typeArgs returns the arguments of a generic reference.
func typeArgs(t *ast.Tree, generic ast.NodeID) []ast.NodeID {
	if n := t.Node(t.Kid(generic, ast.SlotTypeArgs)); n != nil {
		return n.List
	}
	return nil
}

func argName(i int) string { return "arg" + strconv.Itoa(i) }

// unsupported builds the error for a node the pass cannot convert.
func (s *State) unsupported(id ast.NodeID, msg string) error {
	return s.fail(id, diag.TrnUnsupported, msg)
}

// malformed reports a node whose shape breaks what the parser guarantees.
func (s *State) malformed(id ast.NodeID, msg string) error {
	return s.fail(id, diag.TrnMalformedNode, msg)
}

func (s *State) fail(id ast.NodeID, code diag.Code, msg string) error {
	err := &diag.UnsupportedError{
		Path: s.Path,
		Kind: s.Tree.Kind(id).String(),
		Code: code,
		Msg:  msg,
	}
	if n := s.Tree.Node(id); n != nil {
		err.Span = n.Span
		if s.Tree.File != nil && !n.Has(ast.FlagSynthetic) {
			err.Pos = s.Tree.File.LineCol(n.Span.Start)
		}
	}
	return err
}
