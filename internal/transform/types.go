package transform

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/traverse"
)

var keywordRenames = map[string]string{
	"mixed": "unknown",
	"empty": "never",
	"bool":  "boolean",
}

func keywordType(p *traverse.Path, s *State) error {
	n := p.Node()
	if to, ok := keywordRenames[n.Text]; ok {
		n.Text = to
	}
	return nil
}

// existsType: `*` has no counterpart, it becomes any.
func existsType(p *traverse.Path, s *State) error {
	p.Replace(s.keyword("any"))
	return nil
}

// nullableType: `?T` -> `T | null | undefined`.
func nullableType(p *traverse.Path, s *State) error {
	inner := p.Node().Kid(ast.SlotInner)
	if !inner.IsValid() {
		return s.malformed(p.ID, "maybe type without a type")
	}
	var members []ast.NodeID
	if in := s.Tree.Node(inner); in.Kind == ast.UnionType {
		members = append(members, in.List...)
	} else {
		members = append(members, inner)
	}
	members = append(members, s.keyword("null"), s.keyword("undefined"))
	p.Replace(s.likeList(p.ID, ast.UnionType, members))
	return nil
}

// objectType drops exactness, names indexers, maps variance, and turns
// spreads into an intersection of the object parts in order.
func objectType(p *traverse.Path, s *State) error {
	n := p.Node()
	n.Flags &^= ast.FlagExact | ast.FlagInexact
	spread := false
	for _, m := range n.List {
		switch s.Tree.Kind(m) {
		case ast.ObjectTypeProperty:
			variance(s.Tree.Node(m))
		case ast.ObjectTypeIndexer:
			variance(s.Tree.Node(m))
			if !s.Tree.Kid(m, ast.SlotIndexID).IsValid() {
				s.Tree.SetKid(m, ast.SlotIndexID, s.ident("key"))
			}
		case ast.ObjectTypeSpread:
			spread = true
		case ast.ObjectTypeInternalSlot:
			return s.unsupported(m, internalSlotMsg)
		}
	}

	// тело интерфейса обязано остаться объектным типом
	inBody := p.Parent != nil && p.Parent.Kind() == ast.InterfaceDeclaration
	if len(n.List) == 1 && s.Tree.Kind(n.List[0]) == ast.ObjectTypeIndexer && !inBody {
		idx := s.Tree.Node(n.List[0])
		key := idx.Kid(ast.SlotIndexKey)
		if !indexableKey(s.Tree, key) && !idx.Has(ast.FlagStatic) {
			rec := s.typeRef("Record", key, idx.Kid(ast.SlotIndexValue))
			s.Tree.MoveComments(n.List[0], rec)
			p.Replace(rec)
			return nil
		}
	}
	if !spread {
		return nil
	}
	if inBody {
		return s.unsupported(p.ID, "spread in an interface body")
	}

	var (
		parts []ast.NodeID
		group []ast.NodeID
	)
	flush := func() {
		if len(group) == 0 {
			return
		}
		obj := s.likeList(p.ID, ast.ObjectType, group)
		s.Tree.Node(obj).Span.Start = s.Tree.Span(group[0]).Start
		parts = append(parts, obj)
		group = nil
	}
	for _, m := range n.List {
		if s.Tree.Kind(m) != ast.ObjectTypeSpread {
			group = append(group, m)
			continue
		}
		flush()
		inner := s.Tree.Kid(m, ast.SlotInner)
		s.Tree.MoveComments(m, inner)
		parts = append(parts, inner)
	}
	flush()
	if len(parts) == 1 {
		p.Replace(parts[0])
		return nil
	}
	p.Replace(s.likeList(p.ID, ast.IntersectionType, parts))
	return nil
}

// indexableKey reports key types TypeScript accepts in an index signature.
func indexableKey(t *ast.Tree, key ast.NodeID) bool {
	if t.Kind(key) != ast.KeywordType {
		return false
	}
	switch t.Text(key) {
	case "string", "number", "symbol":
		return true
	}
	return false
}

// variance: `+p` is readonly, `-p` has no counterpart and is dropped.
func variance(n *ast.Node) {
	if n.Has(ast.FlagCovariant) {
		n.Flags |= ast.FlagReadonly
	}
	n.Flags &^= ast.FlagCovariant | ast.FlagContravariant
}

func classProperty(p *traverse.Path, s *State) error {
	variance(p.Node())
	return nil
}

const internalSlotMsg = "internal slot properties have no TypeScript counterpart"

func internalSlot(p *traverse.Path, s *State) error {
	return s.unsupported(p.ID, internalSlotMsg)
}

// interfaceType: inline `interface { }` becomes its body, intersected with
// whatever it extends.
func interfaceType(p *traverse.Path, s *State) error {
	n := p.Node()
	body := n.Kid(ast.SlotDeclBody)
	if len(n.List) == 0 {
		p.Replace(body)
		return nil
	}
	parts := make([]ast.NodeID, 0, len(n.List)+1)
	for _, ext := range n.List {
		parts = append(parts, s.extendsToType(ext))
	}
	parts = append(parts, body)
	p.Replace(s.likeList(p.ID, ast.IntersectionType, parts))
	return nil
}

// extendsToType turns `A.B<T>` of an extends clause into a type reference.
func (s *State) extendsToType(ext ast.NodeID) ast.NodeID {
	e := s.Tree.Node(ext)
	ref := s.like(ext, ast.GenericType, e.Kid(ast.SlotID), e.Kid(ast.SlotTypeArgs))
	s.Tree.MoveComments(ext, ref)
	return ref
}

// functionType names unnamed parameters: TypeScript requires names.
func functionType(p *traverse.Path, s *State) error {
	n := p.Node()
	for i, param := range n.List {
		if !s.Tree.Kid(param, ast.SlotParamName).IsValid() {
			s.Tree.SetKid(param, ast.SlotParamName, s.ident(argName(i)))
		}
	}
	if rest := n.Kid(ast.SlotRest); rest.IsValid() && !s.Tree.Kid(rest, ast.SlotParamName).IsValid() {
		s.Tree.SetKid(rest, ast.SlotParamName, s.ident("rest"))
	}
	return nil
}

// indexedAccessType: `T?.[K]` -> `NonNullable<T>[K]`.
func indexedAccessType(p *traverse.Path, s *State) error {
	n := p.Node()
	if !n.Has(ast.FlagOptional) {
		return nil
	}
	n.Flags &^= ast.FlagOptional
	obj := n.Kid(ast.SlotObject)
	s.Tree.SetKid(p.ID, ast.SlotObject, s.typeRef("NonNullable", obj))
	return nil
}

// typeParameter drops variance; the bound prints as `extends`.
func typeParameter(p *traverse.Path, s *State) error {
	p.Node().Flags &^= ast.FlagCovariant | ast.FlagContravariant
	return nil
}

// typeCast: `(e: T)` -> `e as T`.
func typeCast(p *traverse.Path, s *State) error {
	n := p.Node()
	expr := n.Kid(ast.SlotExpr)
	ann := n.Kid(ast.SlotTypeAnn)
	typ := s.Tree.Kid(ann, ast.SlotInner)
	if !expr.IsValid() || !typ.IsValid() {
		return s.malformed(p.ID, "type cast without expression or type")
	}
	s.Tree.MoveComments(ann, typ)
	p.Replace(s.like(p.ID, ast.AsExpression, expr, typ))
	return nil
}
