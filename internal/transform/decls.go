package transform

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/traverse"
)

// opaqueType: `opaque type A: S = T` -> `type A = T`. A declared opaque
// type has no implementation: it keeps its supertype, or becomes any.
func opaqueType(p *traverse.Path, s *State) error {
	n := p.Node()
	body := n.Kid(ast.SlotExtra)
	if !body.IsValid() {
		body = n.Kid(ast.SlotDeclBody)
	}
	if !body.IsValid() {
		body = s.keyword("any")
	}
	alias := s.like(p.ID, ast.TypeAlias, n.Kid(ast.SlotName), n.Kid(ast.SlotTypeParams), body)
	p.Replace(alias)
	return nil
}

// clearDeclare: `declare type` and `declare interface` are plain in TypeScript.
func clearDeclare(p *traverse.Path, s *State) error {
	p.Node().Flags &^= ast.FlagDeclare
	return nil
}

func declareFunction(p *traverse.Path, s *State) error {
	fn, err := s.convertDeclareFunction(p.ID)
	if err != nil {
		return err
	}
	p.Replace(fn)
	return nil
}

// convertDeclareFunction builds `declare function f<T>(x: A): R;` from
// Flow's function-type form. The %checks predicate is dropped.
func (s *State) convertDeclareFunction(id ast.NodeID) (ast.NodeID, error) {
	n := s.Tree.Node(id)
	sig := n.Kid(ast.SlotDeclBody)
	if s.Tree.Kind(sig) != ast.FunctionType {
		return ast.NoNodeID, s.malformed(id, "declared function without a signature")
	}
	params, tp, ret := s.signatureParams(sig)
	fn := s.likeList(id, ast.FunctionDeclaration, params, n.Kid(ast.SlotName), tp, ret)
	s.Tree.Node(fn).Flags |= ast.FlagDeclare
	if pred := n.Kid(ast.SlotExtra); pred.IsValid() {
		s.Tree.MoveComments(pred, fn)
	}
	return fn, nil
}

// signatureParams converts the parameters of a function type into binding
// parameters with annotations.
func (s *State) signatureParams(sig ast.NodeID) (params []ast.NodeID, tp, ret ast.NodeID) {
	fn := s.Tree.Node(sig)
	if this := fn.Kid(ast.SlotThis); this.IsValid() {
		params = append(params, s.bindingParam(this, "this"))
	}
	for i, param := range fn.List {
		params = append(params, s.bindingParam(param, argName(i)))
	}
	if rest := fn.Kid(ast.SlotRest); rest.IsValid() {
		arg := s.bindingParam(rest, "rest")
		params = append(params, s.like(rest, ast.RestElement, arg))
	}
	if r := fn.Kid(ast.SlotReturn); r.IsValid() {
		ret = s.annotation(r)
	}
	return params, fn.Kid(ast.SlotTypeParams), ret
}

// bindingParam turns `name?: T` into an identifier pattern; unnamed
// parameters get fallback.
func (s *State) bindingParam(param ast.NodeID, fallback string) ast.NodeID {
	pn := s.Tree.Node(param)
	name := fallback
	if nameID := pn.Kid(ast.SlotParamName); nameID.IsValid() {
		name = s.Tree.Text(nameID)
	}
	id := s.like(param, ast.Identifier, ast.NoNodeID, s.annotation(pn.Kid(ast.SlotParamType)))
	in := s.Tree.Node(id)
	in.Text = name
	in.Flags |= pn.Flags & ast.FlagOptional
	s.Tree.MoveComments(param, id)
	return id
}

func declareClass(p *traverse.Path, s *State) error {
	cls, err := s.convertDeclareClass(p.ID)
	if err != nil {
		return err
	}
	p.Replace(cls)
	return nil
}

// dropMixins removes `mixins M`, which TypeScript has no clause for. Its
// comments trail the clause before it.
func (s *State) dropMixins(id ast.NodeID) {
	n := s.Tree.Node(id)
	mixins := n.Kid(ast.SlotMixins)
	if !mixins.IsValid() {
		return
	}
	prev := n.Kid(ast.SlotName)
	for _, slot := range []int{ast.SlotTypeParams, ast.SlotExtra} {
		if k := n.Kid(slot); k.IsValid() {
			prev = k
		}
	}
	next := n.Kid(ast.SlotDeclBody)
	if len(n.List) > 0 {
		next = n.List[0]
	}
	(&reattacher{idx: s.Comments}).Removed(s.Tree, mixins, id, prev, next)
	s.Tree.SetKid(id, ast.SlotMixins, ast.NoNodeID)
}

// convertDeclareClass builds `declare class A<T> extends B<T> implements I`
// with a bodiless member list from the Flow object-type body.
func (s *State) convertDeclareClass(id ast.NodeID) (ast.NodeID, error) {
	s.dropMixins(id)
	n := s.Tree.Node(id)
	super, superArgs := ast.NoNodeID, ast.NoNodeID
	if ext := n.Kid(ast.SlotExtra); ext.IsValid() {
		super = typeNameToExpr(s, s.Tree.Kid(ext, ast.SlotID))
		superArgs = s.Tree.Kid(ext, ast.SlotTypeArgs)
		s.Tree.MoveComments(ext, super)
	}
	objBody := n.Kid(ast.SlotDeclBody)
	var members []ast.NodeID
	for _, m := range s.Tree.Node(objBody).List {
		member, err := s.classMember(m)
		if err != nil {
			return ast.NoNodeID, err
		}
		members = append(members, member)
	}
	body := s.likeList(objBody, ast.ClassBody, members)
	s.Tree.MoveComments(objBody, body)
	cls := s.likeList(id, ast.ClassDeclaration, n.List, n.Kid(ast.SlotName), n.Kid(ast.SlotTypeParams), super, superArgs, body)
	s.Tree.Node(cls).Flags |= ast.FlagDeclare
	return cls, nil
}

// classMember converts one member of a declared class body.
func (s *State) classMember(m ast.NodeID) (ast.NodeID, error) {
	mn := s.Tree.Node(m)
	switch mn.Kind {
	case ast.ObjectTypeIndexer:
		variance(mn)
		if !mn.Kid(ast.SlotIndexID).IsValid() {
			s.Tree.SetKid(m, ast.SlotIndexID, s.ident("key"))
		}
		return m, nil
	case ast.ObjectTypeProperty:
	case ast.ObjectTypeCallProperty:
		return ast.NoNodeID, s.unsupported(m, "call signatures are not allowed in a class")
	case ast.ObjectTypeSpread:
		return ast.NoNodeID, s.unsupported(m, "spread in a class body")
	case ast.ObjectTypeInternalSlot:
		return ast.NoNodeID, s.unsupported(m, internalSlotMsg)
	default:
		return ast.NoNodeID, s.malformed(m, "unexpected member of a declared class")
	}

	key := mn.Kid(ast.SlotKey)
	value := mn.Kid(ast.SlotValue)
	static := mn.Flags & ast.FlagStatic
	if mn.Has(ast.FlagMethod) {
		params, tp, ret := s.signatureParams(value)
		kind := mn.Text
		if kind == "" {
			kind = "method"
		}
		if kind == "method" && s.Tree.Kind(key) == ast.Identifier && s.Tree.Text(key) == "constructor" {
			kind = "constructor"
			ret = ast.NoNodeID
		}
		method := s.likeList(m, ast.ClassMethod, params, key, tp, ret)
		mt := s.Tree.Node(method)
		mt.Text = kind
		mt.Flags |= static | mn.Flags&ast.FlagOptional
		s.Tree.MoveComments(m, method)
		return method, nil
	}

	variance(mn)
	prop := s.like(m, ast.ClassProperty, key, s.annotation(value))
	s.Tree.Node(prop).Flags |= static | mn.Flags&(ast.FlagOptional|ast.FlagReadonly)
	s.Tree.MoveComments(m, prop)
	return prop, nil
}

// typeNameToExpr turns `A.B` in type position into the member expression
// a class heritage clause takes.
func typeNameToExpr(s *State, name ast.NodeID) ast.NodeID {
	if s.Tree.Kind(name) != ast.QualifiedTypeName {
		return name
	}
	left := typeNameToExpr(s, s.Tree.Kid(name, ast.SlotLeft))
	return s.like(name, ast.MemberExpression, left, s.Tree.Kid(name, ast.SlotRight))
}

// declareModuleExports: `declare module.exports: T` ->
// `declare const moduleExports: T; export = moduleExports;`.
func declareModuleExports(p *traverse.Path, s *State) error {
	if !p.InList() {
		return s.malformed(p.ID, "module.exports declaration outside a statement list")
	}
	ann := p.Node().Kid(ast.SlotInner)
	name := s.ident("moduleExports")
	s.Tree.SetKid(name, ast.SlotTypeAnn, ann)
	declarator := s.syn(ast.VariableDeclarator, name, ast.NoNodeID)
	decl := s.likeList(p.ID, ast.VariableDeclaration, []ast.NodeID{declarator})
	dn := s.Tree.Node(decl)
	dn.Text = "const"
	dn.Flags |= ast.FlagDeclare
	exp := s.syn(ast.ExportAssignment, s.ident("moduleExports"))
	p.ReplaceMany(decl, exp)
	return nil
}

// declareExport: `declare export ...` -> `export declare ...`.
func declareExport(p *traverse.Path, s *State) error {
	n := p.Node()
	decl := n.Kid(ast.SlotDecl)

	if n.Has(ast.FlagDefault) {
		return s.declareExportDefault(p, decl)
	}
	if !decl.IsValid() {
		p.Replace(s.likeList(p.ID, ast.ExportNamedDeclaration, n.List, ast.NoNodeID, n.Kid(ast.SlotSource)))
		return nil
	}

	var err error
	switch s.Tree.Kind(decl) {
	case ast.DeclareFunction:
		decl, err = s.convertDeclareFunction(decl)
	case ast.DeclareClass:
		decl, err = s.convertDeclareClass(decl)
	case ast.VariableDeclaration, ast.TypeAlias, ast.InterfaceDeclaration, ast.OpaqueType:
		// остальное переписывают их собственные обработчики
	default:
		err = s.malformed(decl, "unexpected declaration after declare export")
	}
	if err != nil {
		return err
	}
	p.Replace(s.like(p.ID, ast.ExportNamedDeclaration, decl))
	return nil
}

// declareExportDefault: TypeScript only accepts a bodiless default export
// in declaration files, so the value is declared first and exported by
// name: `declare function f(): T; export default f;`. A bare type gets the
// name _default.
func (s *State) declareExportDefault(p *traverse.Path, decl ast.NodeID) error {
	if !p.InList() {
		return s.malformed(p.ID, "default export outside a statement list")
	}
	var (
		stmt ast.NodeID
		name string
		err  error
	)
	switch s.Tree.Kind(decl) {
	case ast.DeclareFunction:
		stmt, err = s.convertDeclareFunction(decl)
		name = s.Tree.Text(s.Tree.Kid(decl, ast.SlotName))
	case ast.DeclareClass:
		stmt, err = s.convertDeclareClass(decl)
		name = s.Tree.Text(s.Tree.Kid(decl, ast.SlotName))
	default:
		name = "_default"
		id := s.ident(name)
		s.Tree.SetKid(id, ast.SlotTypeAnn, s.annotation(decl))
		declarator := s.syn(ast.VariableDeclarator, id, ast.NoNodeID)
		stmt = s.likeList(p.ID, ast.VariableDeclaration, []ast.NodeID{declarator})
		sn := s.Tree.Node(stmt)
		sn.Text = "const"
		sn.Flags |= ast.FlagDeclare
	}
	if err != nil {
		return err
	}
	exp := s.syn(ast.ExportDefaultDeclaration, s.ident(name))
	p.ReplaceMany(stmt, exp)
	return nil
}

func declareExportAll(p *traverse.Path, s *State) error {
	n := p.Node()
	p.Replace(s.like(p.ID, ast.ExportAllDeclaration, n.Kid(ast.SlotDecl), n.Kid(ast.SlotSource)))
	return nil
}

// exitModule strips `declare` inside `declare module`: the body is already
// ambient and TypeScript rejects the modifier there.
func exitModule(p *traverse.Path, s *State) error {
	body := s.Tree.Node(p.Node().Kid(ast.SlotDeclBody))
	if body == nil {
		return nil
	}
	for _, stmt := range body.List {
		target := stmt
		if k := s.Tree.Kind(stmt); k == ast.ExportNamedDeclaration || k == ast.ExportDefaultDeclaration {
			target = s.Tree.Kid(stmt, ast.SlotDecl)
		}
		if n := s.Tree.Node(target); n != nil {
			n.Flags &^= ast.FlagDeclare
		}
	}
	return nil
}

// predicate: `%checks` is dropped.
func predicate(p *traverse.Path, s *State) error {
	p.Remove()
	return nil
}

// importDeclaration: `import typeof` becomes `import type`.
func importDeclaration(p *traverse.Path, s *State) error {
	n := p.Node()
	if n.Text == "typeof" {
		n.Text = "type"
	}
	for _, spec := range n.List {
		if sn := s.Tree.Node(spec); sn.Kind == ast.ImportSpecifier && sn.Text == "typeof" {
			sn.Text = "type"
		}
	}
	return nil
}
