package ast

// Kind is the syntax category of a node. One Kind set covers JavaScript,
// JSX, Flow and TypeScript. Type constructs with identical shape in both
// dialects share a kind; dialect-only constructs have their own kinds (or
// flags) so the generator can reject anything left untranslated.
type Kind uint8

const (
	Invalid Kind = iota

	// Program: List=body, Text=hashbang
	Program

	// statements
	ExpressionStatement // Kids[SlotExpr]; FlagDirective for "use strict"
	BlockStatement      // List=body
	EmptyStatement
	DebuggerStatement
	WithStatement       // SlotObject, SlotBody
	ReturnStatement     // SlotExpr
	LabeledStatement    // SlotLabel, SlotBody
	BreakStatement      // SlotLabel
	ContinueStatement   // SlotLabel
	IfStatement         // SlotTest, SlotCons, SlotAlt
	SwitchStatement     // SlotTest, List=cases
	SwitchCase          // SlotTest (none for default), List=consequent
	ThrowStatement      // SlotExpr
	TryStatement        // SlotBlock, SlotHandler, SlotFinalizer
	CatchClause         // SlotParam, SlotBody
	WhileStatement      // SlotTest, SlotBody
	DoWhileStatement    // SlotTest, SlotBody (body visited first)
	ForStatement        // SlotInit, SlotForTest, SlotUpdate, SlotForBody
	ForInStatement      // SlotLeft, SlotRight, SlotEachBody
	ForOfStatement      // SlotLeft, SlotRight, SlotEachBody; FlagAwait
	VariableDeclaration // Text=var|let|const, List=declarators; FlagDeclare
	VariableDeclarator  // SlotID, SlotDeclInit

	// functions: SlotID(key for methods), SlotTypeParams, SlotReturn, SlotBody, SlotPredicate; List=params
	FunctionDeclaration // FlagDeclare; no SlotFnBody for signatures
	FunctionExpression
	ArrowFunctionExpression // FlagExprBody
	ObjectMethod            // Text=method|get|set
	ClassMethod             // Text=method|get|set|constructor; FlagStatic

	// classes: SlotID, SlotTypeParams, SlotSuper, SlotSuperTypeArgs, SlotClassBody; List=implements
	ClassDeclaration
	ClassExpression
	ClassBody        // List=members
	ClassProperty    // SlotKey, SlotPropType, SlotPropValue; FlagStatic, variance, FlagDeclare, FlagReadonly
	InterfaceExtends // SlotID, SlotTypeArgs (also class implements)

	// expressions
	Identifier  // Text=name, SlotTypeAnn; FlagOptional
	PrivateName // Text=#name
	ThisExpression
	Super
	NullLiteral
	BooleanLiteral           // Text
	NumericLiteral           // Text=raw
	BigIntLiteral            // Text=raw
	StringLiteral            // Text=raw with quotes
	RegExpLiteral            // Text=raw
	TemplateLiteral          // List=quasi, expr, quasi, ...
	TemplateElement          // Text=raw
	TaggedTemplateExpression // SlotTag, SlotTagTypeArgs, SlotQuasi
	ArrayExpression          // List=elements (NoNodeID = hole)
	ObjectExpression         // List=properties
	ObjectProperty           // SlotKey, SlotValue; FlagComputed, FlagShorthand
	SpreadElement            // SlotExpr
	UnaryExpression          // Text=op, SlotExpr
	UpdateExpression         // Text=op, SlotExpr; FlagPrefix
	BinaryExpression         // Text=op, SlotLeft, SlotRight
	LogicalExpression        // Text=op, SlotLeft, SlotRight
	AssignmentExpression     // Text=op, SlotLeft, SlotRight
	ConditionalExpression    // SlotTest, SlotCons, SlotAlt
	CallExpression           // SlotCallee, SlotCallTypeArgs, List=args; FlagOptional
	NewExpression            // SlotCallee, SlotCallTypeArgs, List=args; FlagNoArgs
	MemberExpression         // SlotObject, SlotProperty; FlagComputed, FlagOptional
	SequenceExpression       // List=expressions
	YieldExpression          // SlotExpr; FlagDelegate
	AwaitExpression          // SlotExpr
	Import                   // callee of dynamic import()
	MetaProperty             // Text=new.target|import.meta
	TypeCastExpression       // Flow (e: T): SlotExpr, SlotTypeAnn
	AsExpression             // TS e as T: SlotExpr, SlotType
	NonNullExpression        // TS e!: SlotExpr

	// patterns
	ObjectPattern     // List=properties, SlotTypeAnn
	ArrayPattern      // List=elements, SlotTypeAnn
	AssignmentPattern // SlotLeft, SlotRight
	RestElement       // SlotExpr, SlotRestType

	// modules
	ImportDeclaration        // SlotSource, List=specifiers; Text=""|type|typeof
	ImportSpecifier          // SlotLocal, SlotImported; Text=""|type|typeof
	ImportDefaultSpecifier   // SlotLocal
	ImportNamespaceSpecifier // SlotLocal
	ExportNamedDeclaration   // SlotDecl, SlotSource, List=specifiers; Text=""|type
	ExportSpecifier          // SlotLocal, SlotExported
	ExportDefaultDeclaration // SlotDecl
	ExportAllDeclaration     // SlotDecl (namespace name for `* as ns`), SlotSource; Text=""|type
	ExportAssignment         // TS export = e: SlotExpr

	// JSX
	JSXElement             // SlotOpening, SlotClosing, List=children
	JSXOpeningElement      // SlotName, SlotTypeArgs, List=attributes; FlagSelfClosing
	JSXClosingElement      // SlotName
	JSXFragment            // List=children
	JSXAttribute           // SlotName, SlotValue
	JSXSpreadAttribute     // SlotExpr
	JSXExpressionContainer // SlotExpr
	JSXEmptyExpression
	JSXSpreadChild      // SlotExpr
	JSXText             // Text=raw
	JSXIdentifier       // Text
	JSXMemberExpression // SlotObject, SlotProperty
	JSXNamespacedName   // SlotLeft, SlotRight

	// types, shared
	TypeAnnotation // SlotInner: the `: T` wrapper
	KeywordType    // Text=any|mixed|empty|void|number|string|boolean|bigint|symbol|null|unknown|never|undefined|object
	LiteralType    // Text=raw ('a', -1, true, 10n)
	UnionType      // List
	IntersectionType
	ArrayType                  // SlotInner
	TupleType                  // List
	ObjectType                 // List=members; FlagExact, FlagInexact (Flow only)
	ObjectTypeProperty         // SlotKey, SlotValue; FlagOptional, FlagMethod, variance, FlagStatic; Text=""|get|set
	ObjectTypeIndexer          // SlotIndexID, SlotIndexKey, SlotIndexValue; variance, FlagStatic
	ObjectTypeCallProperty     // SlotValue (FunctionType); FlagStatic
	FunctionType               // SlotThis, SlotTypeParams, SlotReturn, SlotRest, List=params; FlagConstructor (TS)
	FunctionTypeParam          // SlotParamName, SlotParamType; FlagOptional
	GenericType                // SlotID, SlotTypeArgs
	QualifiedTypeName          // SlotLeft, SlotRight
	TypeofType                 // SlotInner
	IndexedAccessType          // SlotObject, SlotIndex; FlagOptional is Flow's T?.[K]
	TypeOperator               // TS keyof/readonly: Text, SlotInner
	TypeParameterDeclaration   // List
	TypeParameter              // Text=name, SlotBound, SlotDefault; variance
	TypeParameterInstantiation // List
	TypeAlias                  // SlotName, SlotTypeParams, SlotDeclBody; FlagDeclare
	InterfaceDeclaration       // SlotName, SlotTypeParams, SlotDeclBody(body ObjectType), List=extends
	ModuleDeclaration          // SlotName, SlotDeclBody(BlockStatement); FlagDeclare

	// Flow only
	ExistsType               // *
	NullableType             // ?T: SlotInner
	ObjectTypeSpread         // ...T: SlotInner
	ObjectTypeInternalSlot   // [[name]]: SlotKey, SlotValue
	InterfaceType            // inline interface { }: SlotDeclBody, List=extends
	OpaqueType               // SlotName, SlotTypeParams, SlotDeclBody(supertype), SlotExtra(impltype)
	DeclareClass             // SlotName, SlotTypeParams, SlotDeclBody(ObjectType), SlotExtra(extends), SlotMixins, List=implements
	DeclareFunction          // SlotName, SlotDeclBody(FunctionType), SlotExtra(predicate)
	DeclareModuleExports     // SlotInner (TypeAnnotation)
	DeclareExportDeclaration // SlotDecl, SlotSource, List=specifiers; FlagDefault
	DeclareExportAll         // SlotDecl, SlotSource
	Predicate                // %checks: SlotExpr (optional)
	ClassMixins              // `mixins A, B` of a declared class: List=InterfaceExtends

	kindCount
)

// Slot indices into Node.Kids. Each kind's comment lists the slots it uses.
const (
	SlotExpr  = 0
	SlotInner = 0
	SlotLeft  = 0
	SlotRight = 1

	SlotTest = 0
	SlotCons = 1
	SlotAlt  = 2

	SlotObject   = 0
	SlotProperty = 1
	SlotBody     = 1
	SlotLabel    = 0

	SlotBlock     = 0
	SlotHandler   = 1
	SlotFinalizer = 2
	SlotParam     = 0

	SlotInit     = 0
	SlotForTest  = 1
	SlotUpdate   = 2
	SlotForBody  = 3
	SlotEachBody = 2

	SlotID         = 0
	SlotTypeParams = 1
	SlotReturn     = 2
	SlotFnBody     = 3
	SlotPredicate  = 4

	SlotSuper         = 2
	SlotSuperTypeArgs = 3
	SlotClassBody     = 4

	SlotKey       = 0
	SlotValue     = 1
	SlotPropType  = 1
	SlotPropValue = 2
	SlotTypeArgs  = 1

	SlotTypeAnn  = 1
	SlotType     = 1
	SlotRestType = 1
	SlotDeclInit = 1

	SlotCallee       = 0
	SlotCallTypeArgs = 1
	SlotTag          = 0
	SlotTagTypeArgs  = 1
	SlotQuasi        = 2

	SlotSource   = 1
	SlotDecl     = 0
	SlotLocal    = 0
	SlotImported = 1
	SlotExported = 1

	SlotOpening = 0
	SlotClosing = 1
	SlotName    = 0

	SlotIndexID    = 0
	SlotIndexKey   = 1
	SlotIndexValue = 2

	SlotThis      = 0
	SlotRest      = 3
	SlotParamName = 0
	SlotParamType = 1
	SlotIndex     = 1

	SlotBound    = 0
	SlotDefault  = 1
	SlotExtra    = 3
	SlotDeclBody = 2
	SlotMixins   = 4
)
