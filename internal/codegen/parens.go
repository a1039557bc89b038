package codegen

import (
	"strings"

	"github.com/lukeapage/flow-to-ts/internal/ast"
)

// Binding power of binary operators; higher binds tighter.
var precedence = map[string]int{
	"??": 3, "||": 3,
	"&&": 4,
	"|":  5,
	"^":  6,
	"&":  7,
	"==": 8, "!=": 8, "===": 8, "!==": 8,
	"<":  9, ">": 9, "<=": 9, ">=": 9, "in": 9, "instanceof": 9,
	"<<": 10, ">>": 10, ">>>": 10,
	"+":  11, "-": 11,
	"*":  12, "/": 12, "%": 12,
	"**": 13,
}

// `as` binds like a relational operator.
const asPrecedence = 9

func (p *printer) binaryPrec(id ast.NodeID) (int, bool) {
	switch p.kind(id) {
	case ast.BinaryExpression, ast.LogicalExpression:
		prec, ok := precedence[p.tree.Text(id)]
		return prec, ok
	case ast.AsExpression:
		return asPrecedence, true
	}
	return 0, false
}

// slotOf returns the Kids slot of child inside parent, or -1 for List.
func (p *printer) slotOf(parent, child ast.NodeID) int {
	n := p.tree.Node(parent)
	if n == nil {
		return -1
	}
	for i, k := range n.Kids {
		if k == child {
			return i
		}
	}
	return -1
}

// needsParens decides whether id must be wrapped when printed under parent.
func (p *printer) needsParens(id, parent ast.NodeID) bool {
	if !parent.IsValid() {
		return false
	}
	n := p.tree.Node(id)
	pk := p.kind(parent)
	slot := p.slotOf(parent, id)

	if n.Kind.IsType() {
		return p.typeNeedsParens(n, pk, parent, slot)
	}

	if p.noIn && n.Kind == ast.BinaryExpression && n.Text == "in" {
		return true
	}
	if n.Has(ast.FlagParenthesized) && p.optionalChainBreak(id, pk, slot) {
		return true
	}

	switch n.Kind {
	case ast.SequenceExpression:
		switch pk {
		case ast.ExpressionStatement, ast.ForStatement, ast.SequenceExpression:
			return false
		case ast.ArrowFunctionExpression:
			return slot == ast.SlotFnBody
		}
		return true

	case ast.YieldExpression:
		if pk == ast.ConditionalExpression {
			return slot == ast.SlotTest
		}
		return isTightParent(pk, slot) || pk == ast.BinaryExpression || pk == ast.LogicalExpression ||
			pk == ast.AsExpression

	case ast.AwaitExpression:
		if isCalleeOrObject(pk, slot) || pk == ast.NonNullExpression {
			return true
		}
		if pk == ast.BinaryExpression && p.tree.Text(parent) == "**" && slot == ast.SlotLeft {
			return true
		}
		return false

	case ast.ArrowFunctionExpression, ast.AssignmentExpression, ast.ConditionalExpression:
		if pk == ast.ConditionalExpression {
			return slot == ast.SlotTest
		}
		if pk == ast.ClassDeclaration || pk == ast.ClassExpression {
			return slot == ast.SlotSuper
		}
		if n.Kind == ast.AssignmentExpression && pk == ast.ArrowFunctionExpression &&
			p.kind(n.Kid(ast.SlotLeft)) == ast.ObjectPattern {
			return true
		}
		return isTightParent(pk, slot) || pk == ast.BinaryExpression || pk == ast.LogicalExpression ||
			pk == ast.AsExpression || pk == ast.AwaitExpression

	case ast.BinaryExpression, ast.LogicalExpression, ast.AsExpression:
		if isTightParent(pk, slot) || pk == ast.AwaitExpression {
			return true
		}
		if pk == ast.ClassDeclaration || pk == ast.ClassExpression {
			return slot == ast.SlotSuper
		}
		if n.Kind == ast.AsExpression && pk == ast.AsExpression {
			return false
		}
		pp, ok := p.binaryPrec(parent)
		if !ok {
			return false
		}
		np, _ := p.binaryPrec(id)
		po, no := p.tree.Text(parent), n.Text
		if pk == ast.AsExpression {
			po = "as"
		}
		if n.Kind == ast.AsExpression {
			no = "as"
		}
		if mixesNullish(po, no) {
			return true
		}
		if pp > np {
			return true
		}
		if pp == np && slot == ast.SlotRight {
			return true
		}
		if pp == np && !shouldFlatten(po, no) {
			return true
		}
		if pp < np && no == "%" {
			return po == "+" || po == "-"
		}
		// a | (b & c)
		return po == "|" || po == "^" || po == "&" || po == "<<" || po == ">>" || po == ">>>"

	case ast.UnaryExpression, ast.UpdateExpression:
		if pk == ast.UnaryExpression {
			po, no := p.tree.Text(parent), n.Text
			return (po == "+" || po == "-") && strings.HasPrefix(no, po) && n.Has(ast.FlagPrefix)
		}
		if pk == ast.BinaryExpression && p.tree.Text(parent) == "**" && slot == ast.SlotLeft {
			return n.Kind == ast.UnaryExpression
		}
		if n.Kind == ast.UnaryExpression && isCalleeOrObject(pk, slot) {
			return true
		}
		if n.Kind == ast.UpdateExpression && n.Has(ast.FlagPrefix) && isCalleeOrObject(pk, slot) {
			return true
		}
		return false

	case ast.FunctionExpression:
		switch pk {
		case ast.CallExpression, ast.NewExpression:
			return slot == ast.SlotCallee
		case ast.TaggedTemplateExpression:
			return slot == ast.SlotTag
		}
		return false

	case ast.ClassExpression:
		return pk == ast.NewExpression && slot == ast.SlotCallee

	case ast.NumericLiteral:
		return pk == ast.MemberExpression && slot == ast.SlotObject &&
			!p.tree.Node(parent).Has(ast.FlagComputed) && isPlainInteger(n.Text)

	case ast.CallExpression, ast.MemberExpression, ast.TaggedTemplateExpression:
		if pk == ast.NewExpression && slot == ast.SlotCallee {
			return p.hasCallInChain(id)
		}
		return false

	case ast.JSXElement, ast.JSXFragment:
		return isCalleeOrObject(pk, slot)
	}
	return false
}

// isTightParent reports parents whose operand position binds tighter than
// any binary operator.
func isTightParent(pk ast.Kind, slot int) bool {
	switch pk {
	case ast.UnaryExpression, ast.UpdateExpression, ast.NonNullExpression:
		return true
	}
	return isCalleeOrObject(pk, slot)
}

func isCalleeOrObject(pk ast.Kind, slot int) bool {
	switch pk {
	case ast.CallExpression, ast.NewExpression:
		return slot == ast.SlotCallee
	case ast.MemberExpression:
		return slot == ast.SlotObject
	case ast.TaggedTemplateExpression:
		return slot == ast.SlotTag
	}
	return false
}

func mixesNullish(parentOp, nodeOp string) bool {
	logical := func(op string) bool { return op == "||" || op == "&&" }
	return parentOp == "??" && logical(nodeOp) || logical(parentOp) && nodeOp == "??"
}

// shouldFlatten reports whether `a op1 b op2 c` may drop the parentheses
// around its left operand.
func shouldFlatten(parentOp, nodeOp string) bool {
	if precedence[parentOp] != precedence[nodeOp] {
		return false
	}
	if parentOp == "**" {
		return false
	}
	equality := func(op string) bool { return op == "==" || op == "!=" || op == "===" || op == "!==" }
	if equality(parentOp) && equality(nodeOp) {
		return false
	}
	mult := func(op string) bool { return op == "*" || op == "/" || op == "%" }
	if nodeOp != parentOp && mult(nodeOp) && mult(parentOp) {
		return false
	}
	shift := func(op string) bool { return op == "<<" || op == ">>" || op == ">>>" }
	if shift(parentOp) && shift(nodeOp) {
		return false
	}
	return true
}

func isPlainInteger(raw string) bool {
	if raw == "" {
		return false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return true
}

// hasCallInChain reports a call inside a member chain, which makes
// `new a.b()()` ambiguous.
func (p *printer) hasCallInChain(id ast.NodeID) bool {
	for id.IsValid() {
		switch p.kind(id) {
		case ast.CallExpression:
			return true
		case ast.MemberExpression:
			id = p.tree.Kid(id, ast.SlotObject)
		case ast.TaggedTemplateExpression:
			id = p.tree.Kid(id, ast.SlotTag)
		default:
			return false
		}
	}
	return false
}

// optionalChainBreak keeps `(a?.b).c`: without the parentheses the
// short-circuit would extend over `.c`.
func (p *printer) optionalChainBreak(id ast.NodeID, pk ast.Kind, slot int) bool {
	if !isCalleeOrObject(pk, slot) || pk == ast.NewExpression {
		return false
	}
	for id.IsValid() {
		n := p.tree.Node(id)
		switch n.Kind {
		case ast.MemberExpression:
			if n.Has(ast.FlagOptional) {
				return true
			}
			id = n.Kid(ast.SlotObject)
		case ast.CallExpression:
			if n.Has(ast.FlagOptional) {
				return true
			}
			id = n.Kid(ast.SlotCallee)
		case ast.NonNullExpression:
			id = n.Kid(ast.SlotExpr)
		default:
			return false
		}
		if p.tree.Node(id) != nil && p.tree.Node(id).Has(ast.FlagParenthesized) {
			return false
		}
	}
	return false
}

func (p *printer) typeNeedsParens(n *ast.Node, pk ast.Kind, parent ast.NodeID, slot int) bool {
	switch n.Kind {
	case ast.FunctionType:
		switch pk {
		case ast.UnionType, ast.IntersectionType, ast.ArrayType, ast.TypeOperator:
			return true
		case ast.IndexedAccessType:
			return slot == ast.SlotObject
		case ast.TypeAnnotation:
			// (): (() => void) => ...
			gp := p.grandparent()
			return p.kind(gp) == ast.ArrowFunctionExpression && p.tree.Kid(gp, ast.SlotReturn) == parent
		}
	case ast.UnionType:
		switch pk {
		case ast.IntersectionType, ast.ArrayType, ast.TypeOperator:
			return true
		case ast.IndexedAccessType:
			return slot == ast.SlotObject
		}
	case ast.IntersectionType:
		switch pk {
		case ast.ArrayType, ast.TypeOperator:
			return true
		case ast.IndexedAccessType:
			return slot == ast.SlotObject
		}
	case ast.TypeOperator, ast.TypeofType:
		switch pk {
		case ast.ArrayType:
			return true
		case ast.IndexedAccessType:
			return slot == ast.SlotObject
		}
	}
	return false
}

// --- statement start ---

// startsWithNoLookahead reports an expression statement or arrow body that
// would otherwise begin with `{`, `function`, `class` or `let [`.
func (p *printer) startsWithNoLookahead(id ast.NodeID, objectOnly bool) bool {
	parent := ast.NoNodeID
	for id.IsValid() {
		if parent.IsValid() && p.needsParens(id, parent) {
			return false
		}
		n := p.tree.Node(id)
		switch n.Kind {
		case ast.ObjectExpression:
			return true
		case ast.ObjectPattern:
			return !objectOnly
		case ast.FunctionExpression, ast.ClassExpression:
			return !objectOnly
		case ast.MemberExpression:
			obj := n.Kid(ast.SlotObject)
			if !objectOnly && n.Has(ast.FlagComputed) && p.kind(obj) == ast.Identifier && p.tree.Text(obj) == "let" {
				return true
			}
			parent, id = id, obj
		case ast.CallExpression, ast.NewExpression:
			if n.Kind == ast.NewExpression {
				return false
			}
			parent, id = id, n.Kid(ast.SlotCallee)
		case ast.TaggedTemplateExpression:
			parent, id = id, n.Kid(ast.SlotTag)
		case ast.BinaryExpression, ast.LogicalExpression, ast.AssignmentExpression:
			parent, id = id, n.Kid(ast.SlotLeft)
		case ast.ConditionalExpression:
			parent, id = id, n.Kid(ast.SlotTest)
		case ast.SequenceExpression:
			if len(n.List) == 0 {
				return false
			}
			parent, id = id, n.List[0]
		case ast.UpdateExpression:
			if n.Has(ast.FlagPrefix) {
				return false
			}
			parent, id = id, n.Kid(ast.SlotExpr)
		case ast.AsExpression, ast.NonNullExpression:
			parent, id = id, n.Kid(ast.SlotExpr)
		default:
			return false
		}
	}
	return false
}
