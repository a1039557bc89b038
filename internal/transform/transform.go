// Package transform rewrites a Flow syntax tree into TypeScript in place.
//
// Each Flow construct has one fixed policy: a direct mapping, or a
// best-effort analogue when TypeScript has no equivalent. Handlers are
// registered per node kind and run by package traverse; every structural
// edit goes through the comment reattacher so comments survive it.
package transform

import (
	"slices"

	"github.com/lukeapage/flow-to-ts/internal/annot"
	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/traverse"
)

// Options of the rewrite pass.
type Options struct {
	// InlineUtilityTypes expands $Diff, $PropertyType, $ElementType, $Call
	// and Class into plain TypeScript instead of importing them from the
	// utility-types package.
	InlineUtilityTypes bool
}

// UtilityModule is the package the by-name utility types are imported from.
const UtilityModule = "utility-types"

// State is the per-conversion context threaded through every handler.
type State struct {
	Tree *ast.Tree
	// Path names the file in errors. May be empty.
	Path     string
	Opts     Options
	Comments annot.Index

	// UsedUtilityTypes grows as utility types are kept by name.
	UsedUtilityTypes map[string]struct{}
}

// NewState prepares a transform of t. path names the file in errors.
func NewState(t *ast.Tree, path string, idx annot.Index, opts Options) *State {
	return &State{
		Tree:             t,
		Path:             path,
		Opts:             opts,
		Comments:         idx,
		UsedUtilityTypes: make(map[string]struct{}),
	}
}

// UtilityNames returns the recorded utility type names, sorted.
func (s *State) UtilityNames() []string {
	out := make([]string, 0, len(s.UsedUtilityTypes))
	for name := range s.UsedUtilityTypes {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func (s *State) useUtility(name string) {
	s.UsedUtilityTypes[name] = struct{}{}
}

// Run rewrites the tree. The first unsupported construct aborts the pass
// with *diag.UnsupportedError; the tree is then half rewritten and must be
// dropped.
func Run(s *State) error {
	return traverse.Walk(s.Tree, Registry(s.Comments), s)
}

// Registry returns the handler table of the pass.
func Registry(idx annot.Index) *traverse.Registry[*State] {
	r := traverse.NewRegistry[*State]()
	r.Comments = &reattacher{idx: idx}

	r.On(traverse.Visitor[*State]{Enter: enterProgram, Exit: exitProgram}, ast.Program)

	// types
	r.Enter(keywordType, ast.KeywordType)
	r.Enter(existsType, ast.ExistsType)
	r.Enter(nullableType, ast.NullableType)
	r.Enter(objectType, ast.ObjectType)
	r.Enter(interfaceType, ast.InterfaceType)
	r.Enter(functionType, ast.FunctionType)
	r.Enter(indexedAccessType, ast.IndexedAccessType)
	r.Enter(genericType, ast.GenericType)
	r.Enter(typeParameter, ast.TypeParameter)
	r.Enter(internalSlot, ast.ObjectTypeInternalSlot)
	r.Enter(typeCast, ast.TypeCastExpression)
	r.Enter(classProperty, ast.ClassProperty)

	// declarations
	r.Enter(opaqueType, ast.OpaqueType)
	r.Enter(clearDeclare, ast.TypeAlias, ast.InterfaceDeclaration)
	r.Enter(declareFunction, ast.DeclareFunction)
	r.Enter(declareClass, ast.DeclareClass)
	r.Enter(declareModuleExports, ast.DeclareModuleExports)
	r.Enter(declareExport, ast.DeclareExportDeclaration)
	r.Enter(declareExportAll, ast.DeclareExportAll)
	r.Exit(exitModule, ast.ModuleDeclaration)
	r.Enter(predicate, ast.Predicate)
	r.Enter(importDeclaration, ast.ImportDeclaration)
	return r
}

func enterProgram(p *traverse.Path, s *State) error {
	rewriteComments(s.Tree)
	return nil
}

// exitProgram prepends the utility-types import.
func exitProgram(p *traverse.Path, s *State) error {
	if s.Opts.InlineUtilityTypes || len(s.UsedUtilityTypes) == 0 {
		return nil
	}
	var specs []ast.NodeID
	for _, name := range s.UtilityNames() {
		specs = append(specs, s.syn(ast.ImportSpecifier, s.ident(name), s.ident(name)))
	}
	src := s.synText(ast.StringLiteral, `"`+UtilityModule+`"`)
	imp := s.synList(ast.ImportDeclaration, specs, ast.NoNodeID, src)

	prog := p.Node()
	if len(prog.List) > 0 {
		first := s.Tree.Node(prog.List[0])
		for _, c := range slices.Clone(first.Leading) {
			s.Tree.Attach(c, imp, ast.Leading)
		}
	}
	prog.List = slices.Insert(prog.List, 0, imp)
	return nil
}
