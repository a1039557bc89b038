package ast

import "fmt"

var kindNames = [...]string{
	Invalid:                    "Invalid",
	Program:                    "Program",
	ExpressionStatement:        "ExpressionStatement",
	BlockStatement:             "BlockStatement",
	EmptyStatement:             "EmptyStatement",
	DebuggerStatement:          "DebuggerStatement",
	WithStatement:              "WithStatement",
	ReturnStatement:            "ReturnStatement",
	LabeledStatement:           "LabeledStatement",
	BreakStatement:             "BreakStatement",
	ContinueStatement:          "ContinueStatement",
	IfStatement:                "IfStatement",
	SwitchStatement:            "SwitchStatement",
	SwitchCase:                 "SwitchCase",
	ThrowStatement:             "ThrowStatement",
	TryStatement:               "TryStatement",
	CatchClause:                "CatchClause",
	WhileStatement:             "WhileStatement",
	DoWhileStatement:           "DoWhileStatement",
	ForStatement:               "ForStatement",
	ForInStatement:             "ForInStatement",
	ForOfStatement:             "ForOfStatement",
	VariableDeclaration:        "VariableDeclaration",
	VariableDeclarator:         "VariableDeclarator",
	FunctionDeclaration:        "FunctionDeclaration",
	FunctionExpression:         "FunctionExpression",
	ArrowFunctionExpression:    "ArrowFunctionExpression",
	ObjectMethod:               "ObjectMethod",
	ClassMethod:                "ClassMethod",
	ClassDeclaration:           "ClassDeclaration",
	ClassExpression:            "ClassExpression",
	ClassBody:                  "ClassBody",
	ClassProperty:              "ClassProperty",
	InterfaceExtends:           "InterfaceExtends",
	Identifier:                 "Identifier",
	PrivateName:                "PrivateName",
	ThisExpression:             "ThisExpression",
	Super:                      "Super",
	NullLiteral:                "NullLiteral",
	BooleanLiteral:             "BooleanLiteral",
	NumericLiteral:             "NumericLiteral",
	BigIntLiteral:              "BigIntLiteral",
	StringLiteral:              "StringLiteral",
	RegExpLiteral:              "RegExpLiteral",
	TemplateLiteral:            "TemplateLiteral",
	TemplateElement:            "TemplateElement",
	TaggedTemplateExpression:   "TaggedTemplateExpression",
	ArrayExpression:            "ArrayExpression",
	ObjectExpression:           "ObjectExpression",
	ObjectProperty:             "ObjectProperty",
	SpreadElement:              "SpreadElement",
	UnaryExpression:            "UnaryExpression",
	UpdateExpression:           "UpdateExpression",
	BinaryExpression:           "BinaryExpression",
	LogicalExpression:          "LogicalExpression",
	AssignmentExpression:       "AssignmentExpression",
	ConditionalExpression:      "ConditionalExpression",
	CallExpression:             "CallExpression",
	NewExpression:              "NewExpression",
	MemberExpression:           "MemberExpression",
	SequenceExpression:         "SequenceExpression",
	YieldExpression:            "YieldExpression",
	AwaitExpression:            "AwaitExpression",
	Import:                     "Import",
	MetaProperty:               "MetaProperty",
	TypeCastExpression:         "TypeCastExpression",
	AsExpression:               "AsExpression",
	NonNullExpression:          "NonNullExpression",
	ObjectPattern:              "ObjectPattern",
	ArrayPattern:               "ArrayPattern",
	AssignmentPattern:          "AssignmentPattern",
	RestElement:                "RestElement",
	ImportDeclaration:          "ImportDeclaration",
	ImportSpecifier:            "ImportSpecifier",
	ImportDefaultSpecifier:     "ImportDefaultSpecifier",
	ImportNamespaceSpecifier:   "ImportNamespaceSpecifier",
	ExportNamedDeclaration:     "ExportNamedDeclaration",
	ExportSpecifier:            "ExportSpecifier",
	ExportDefaultDeclaration:   "ExportDefaultDeclaration",
	ExportAllDeclaration:       "ExportAllDeclaration",
	ExportAssignment:           "ExportAssignment",
	JSXElement:                 "JSXElement",
	JSXOpeningElement:          "JSXOpeningElement",
	JSXClosingElement:          "JSXClosingElement",
	JSXFragment:                "JSXFragment",
	JSXAttribute:               "JSXAttribute",
	JSXSpreadAttribute:         "JSXSpreadAttribute",
	JSXExpressionContainer:     "JSXExpressionContainer",
	JSXEmptyExpression:         "JSXEmptyExpression",
	JSXSpreadChild:             "JSXSpreadChild",
	JSXText:                    "JSXText",
	JSXIdentifier:              "JSXIdentifier",
	JSXMemberExpression:        "JSXMemberExpression",
	JSXNamespacedName:          "JSXNamespacedName",
	TypeAnnotation:             "TypeAnnotation",
	KeywordType:                "KeywordType",
	LiteralType:                "LiteralType",
	UnionType:                  "UnionType",
	IntersectionType:           "IntersectionType",
	ArrayType:                  "ArrayType",
	TupleType:                  "TupleType",
	ObjectType:                 "ObjectType",
	ObjectTypeProperty:         "ObjectTypeProperty",
	ObjectTypeIndexer:          "ObjectTypeIndexer",
	ObjectTypeCallProperty:     "ObjectTypeCallProperty",
	FunctionType:               "FunctionType",
	FunctionTypeParam:          "FunctionTypeParam",
	GenericType:                "GenericType",
	QualifiedTypeName:          "QualifiedTypeName",
	TypeofType:                 "TypeofType",
	IndexedAccessType:          "IndexedAccessType",
	TypeOperator:               "TypeOperator",
	TypeParameterDeclaration:   "TypeParameterDeclaration",
	TypeParameter:              "TypeParameter",
	TypeParameterInstantiation: "TypeParameterInstantiation",
	TypeAlias:                  "TypeAlias",
	InterfaceDeclaration:       "InterfaceDeclaration",
	ModuleDeclaration:          "ModuleDeclaration",
	ExistsType:                 "ExistsType",
	NullableType:               "NullableType",
	ObjectTypeSpread:           "ObjectTypeSpread",
	ObjectTypeInternalSlot:     "ObjectTypeInternalSlot",
	InterfaceType:              "InterfaceType",
	OpaqueType:                 "OpaqueType",
	DeclareClass:               "DeclareClass",
	DeclareFunction:            "DeclareFunction",
	DeclareModuleExports:       "DeclareModuleExports",
	DeclareExportDeclaration:   "DeclareExportDeclaration",
	DeclareExportAll:           "DeclareExportAll",
	Predicate:                  "Predicate",
	ClassMixins:                "ClassMixins",
}
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ListSlot marks the position of Node.List in a visit order.
const ListSlot = -1

// visitOrders lists, per kind, the order in which Kids slots and the List
// are visited so that children come out in source order. Kinds that are
// absent visit Kids in index order followed by List.
var visitOrders = map[Kind][]int8{
	DoWhileStatement:         {SlotBody, SlotTest},
	FunctionDeclaration:      {SlotID, SlotTypeParams, ListSlot, SlotReturn, SlotPredicate, SlotFnBody},
	FunctionExpression:       {SlotID, SlotTypeParams, ListSlot, SlotReturn, SlotPredicate, SlotFnBody},
	ArrowFunctionExpression:  {SlotTypeParams, ListSlot, SlotReturn, SlotPredicate, SlotFnBody},
	ObjectMethod:             {SlotID, SlotTypeParams, ListSlot, SlotReturn, SlotFnBody},
	ClassMethod:              {SlotID, SlotTypeParams, ListSlot, SlotReturn, SlotFnBody},
	ClassDeclaration:         {SlotID, SlotTypeParams, SlotSuper, SlotSuperTypeArgs, ListSlot, SlotClassBody},
	ClassExpression:          {SlotID, SlotTypeParams, SlotSuper, SlotSuperTypeArgs, ListSlot, SlotClassBody},
	ObjectPattern:            {ListSlot, SlotTypeAnn},
	ArrayPattern:             {ListSlot, SlotTypeAnn},
	Identifier:               {SlotTypeAnn},
	ImportDeclaration:        {ListSlot, SlotSource},
	ExportNamedDeclaration:   {SlotDecl, ListSlot, SlotSource},
	DeclareExportDeclaration: {SlotDecl, ListSlot, SlotSource},
	JSXElement:               {SlotOpening, ListSlot, SlotClosing},
	FunctionType:             {SlotTypeParams, SlotThis, ListSlot, SlotRest, SlotReturn},
	InterfaceDeclaration:     {SlotName, SlotTypeParams, ListSlot, SlotDeclBody},
	InterfaceType:            {ListSlot, SlotDeclBody},
	DeclareClass:             {SlotName, SlotTypeParams, SlotExtra, SlotMixins, ListSlot, SlotDeclBody},
	DeclareFunction:          {SlotName, SlotDeclBody, SlotExtra},
}

// VisitOrder returns the child visit order of kind k for a node with n kid
// slots.
func VisitOrder(k Kind, n int) []int8 {
	if o, ok := visitOrders[k]; ok {
		return o
	}
	order := make([]int8, 0, n+1)
	for i := range n {
		order = append(order, int8(i))
	}
	return append(order, ListSlot)
}

// IsFlowOnly reports kinds that have no TypeScript counterpart. Any of them
// left in a tree handed to the generator is an error.
func (k Kind) IsFlowOnly() bool {
	switch k {
	case ExistsType, NullableType, ObjectTypeSpread, ObjectTypeInternalSlot, InterfaceType,
		OpaqueType, DeclareClass, DeclareFunction, DeclareModuleExports,
		DeclareExportDeclaration, DeclareExportAll, Predicate, ClassMixins, TypeCastExpression:
		return true
	}
	return false
}

// IsTypeScriptOnly reports kinds the Flow dialect never produces.
func (k Kind) IsTypeScriptOnly() bool {
	switch k {
	case AsExpression, NonNullExpression, TypeOperator, ExportAssignment:
		return true
	}
	return false
}

// IsType reports kinds that appear in type position.
func (k Kind) IsType() bool {
	return k >= TypeAnnotation && k <= TypeParameterInstantiation ||
		k >= ExistsType && k <= InterfaceType
}

func (k Kind) IsFunction() bool {
	switch k {
	case FunctionDeclaration, FunctionExpression, ArrowFunctionExpression, ObjectMethod, ClassMethod:
		return true
	}
	return false
}

func (k Kind) IsClass() bool {
	return k == ClassDeclaration || k == ClassExpression
}

// IsStatement reports kinds that may appear in a statement list.
func (k Kind) IsStatement() bool {
	switch {
	case k >= ExpressionStatement && k <= VariableDeclaration:
		return k != SwitchCase && k != CatchClause
	case k == FunctionDeclaration, k == ClassDeclaration:
		return true
	case k >= ImportDeclaration && k <= ExportAssignment && k != ImportSpecifier &&
		k != ImportDefaultSpecifier && k != ImportNamespaceSpecifier && k != ExportSpecifier:
		return true
	case k == TypeAlias, k == InterfaceDeclaration, k == ModuleDeclaration, k == OpaqueType,
		k == DeclareClass, k == DeclareFunction, k == DeclareModuleExports,
		k == DeclareExportDeclaration, k == DeclareExportAll:
		return true
	}
	return false
}
