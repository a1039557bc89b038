package transform

import (
	"strconv"

	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/traverse"
)

// renames maps Flow type names to TypeScript names that take the same
// arguments.
var renames = map[string]string{
	"$ReadOnly":           "Readonly",
	"$ReadOnlyArray":      "ReadonlyArray",
	"$ReadOnlyMap":        "ReadonlyMap",
	"$ReadOnlySet":        "ReadonlySet",
	"$Shape":              "Partial",
	"$Partial":            "Partial",
	"$NonMaybeType":       "NonNullable",
	"React.Node":          "React.ReactNode",
	"React$Node":          "React.ReactNode",
	"React.Element":       "React.ReactElement",
	"React$Element":       "React.ReactElement",
	"React.ElementProps":  "React.ComponentProps",
	"React.ElementConfig": "React.ComponentProps",

	// expanded back to React.* by the text pass after generation
	"React.Ref":         "$ReactRef",
	"React.RefObject":   "$ReactRefObject",
	"React.RefCallback": "$ReactRefCallback",

	"SyntheticEvent":            "React.SyntheticEvent",
	"SyntheticAnimationEvent":   "React.AnimationEvent",
	"SyntheticClipboardEvent":   "React.ClipboardEvent",
	"SyntheticCompositionEvent": "React.CompositionEvent",
	"SyntheticDragEvent":        "React.DragEvent",
	"SyntheticFocusEvent":       "React.FocusEvent",
	"SyntheticInputEvent":       "React.ChangeEvent",
	"SyntheticKeyboardEvent":    "React.KeyboardEvent",
	"SyntheticMouseEvent":       "React.MouseEvent",
	"SyntheticPointerEvent":     "React.PointerEvent",
	"SyntheticTouchEvent":       "React.TouchEvent",
	"SyntheticTransitionEvent":  "React.TransitionEvent",
	"SyntheticUIEvent":          "React.UIEvent",
	"SyntheticWheelEvent":       "React.WheelEvent",
}

// arity is the number of type arguments a rewrite reads.
var arity = map[string]int{
	"$Keys":                   1,
	"$Values":                 1,
	"$Exact":                  1,
	"$Diff":                   2,
	"$PropertyType":           2,
	"$ElementType":            2,
	"$Call":                   1,
	"Class":                   1,
	"React.ChildrenArray":     1,
	"React.AbstractComponent": 1,
}

func genericType(p *traverse.Path, s *State) error {
	n := p.Node()
	name := qualifiedName(s.Tree, n.Kid(ast.SlotID))
	args := typeArgs(s.Tree, p.ID)

	if to, ok := renames[name]; ok {
		s.rename(p.ID, to)
		if len(args) == 0 {
			// `SyntheticEvent<>`
			s.Tree.SetKid(p.ID, ast.SlotTypeArgs, ast.NoNodeID)
		}
		return nil
	}
	if want, ok := arity[name]; ok && len(args) < want {
		return s.unsupported(p.ID, name+" needs "+plural(want, "type argument"))
	}

	switch name {
	case "$FlowFixMe", "$FlowIssue":
		p.Replace(s.keyword("any"))
	case "_":
		if len(args) == 0 {
			p.Replace(s.keyword("any"))
		}
	case "$Keys":
		op := s.like(p.ID, ast.TypeOperator, args[0])
		s.Tree.Node(op).Text = "keyof"
		p.Replace(op)
	case "$Values":
		// T[keyof T]
		keys := s.synText(ast.TypeOperator, "keyof", s.Tree.Clone(args[0]))
		p.Replace(s.like(p.ID, ast.IndexedAccessType, args[0], keys))
	case "$Exact":
		p.Replace(args[0])
	case "React.ChildrenArray":
		// T | ReadonlyArray<T>
		arr := s.typeRef("ReadonlyArray", s.Tree.Clone(args[0]))
		p.Replace(s.likeList(p.ID, ast.UnionType, []ast.NodeID{args[0], arr}))
	case "React.AbstractComponent":
		s.rename(p.ID, "React.ComponentType")
		s.Tree.Node(n.Kid(ast.SlotTypeArgs)).List = args[:1]
	case "$Diff", "$PropertyType", "$ElementType", "$Call", "Class":
		if !s.Opts.InlineUtilityTypes {
			s.useUtility(name)
			return nil
		}
		p.Replace(s.inlineUtility(p.ID, name, args))
	}
	return nil
}

// inlineUtility expands a utility type into plain TypeScript.
func (s *State) inlineUtility(id ast.NodeID, name string, args []ast.NodeID) ast.NodeID {
	switch name {
	case "$Diff":
		// Omit<A, keyof B>
		keys := s.synText(ast.TypeOperator, "keyof", args[1])
		return s.typeRef("Omit", args[0], keys)
	case "$PropertyType", "$ElementType":
		return s.like(id, ast.IndexedAccessType, args[0], args[1])
	case "$Call":
		return s.typeRef("ReturnType", args[0])
	default:
		// Class<T>: new (...args: any[]) => T
		rest := s.syn(ast.FunctionTypeParam, s.ident("args"), s.syn(ast.ArrayType, s.keyword("any")))
		fn := s.synList(ast.FunctionType, nil, ast.NoNodeID, ast.NoNodeID, args[0], rest)
		s.Tree.Node(fn).Flags |= ast.FlagConstructor
		return fn
	}
}

// rename swaps the name of a generic reference, keeping its arguments.
func (s *State) rename(generic ast.NodeID, to string) {
	old := s.Tree.Kid(generic, ast.SlotID)
	name := s.typeName(to)
	s.Tree.MoveComments(old, name)
	s.Tree.SetKid(generic, ast.SlotID, name)
}

func plural(n int, what string) string {
	if n == 1 {
		return "1 " + what
	}
	return strconv.Itoa(n) + " " + what + "s"
}
