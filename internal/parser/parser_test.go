package parser_test

import (
	"errors"
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/parser"
	"github.com/lukeapage/flow-to-ts/internal/source"
	"github.com/lukeapage/flow-to-ts/internal/testkit"
)

func parse(t *testing.T, src string, d parser.Dialect) (*ast.Tree, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.js", []byte(src)))
	return parser.ParseFile(file, parser.Options{Dialect: d})
}

func mustParse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	tree, err := parse(t, src, parser.Flow)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return tree
}

// find возвращает первый узел данного вида
func find(t *testing.T, tree *ast.Tree, kind ast.Kind) (ast.NodeID, *ast.Node) {
	t.Helper()
	id := tree.Find(tree.Root, func(_ ast.NodeID, n *ast.Node) bool { return n.Kind == kind })
	if !id.IsValid() {
		t.Fatalf("no %v node in tree", kind)
	}
	return id, tree.Node(id)
}

func TestParseAcceptsFlowSources(t *testing.T) {
	sources := []string{
		"// @flow\nconst a: number = 1;",
		"type A = { +a: string, -b?: number, [key: string]: mixed, ... };",
		"type B = {| a: 1 |} | {||};",
		"type C = $Keys<typeof obj>;",
		"type D = ?Array<?string>;",
		"type E = (string, number) => void;",
		"type F = string => number;",
		"type G = { (x: number): string, m<T>(x: T): T, get g(): number };",
		"type H = T?.['a']['b'];",
		"type I = [number, string];",
		"type J = * | -1 | 'a' | true;",
		"opaque type K: string = string;",
		"export opaque type L = number;",
		"interface M extends N<T> { a: number }",
		"declare var n: number;",
		"declare function f(x: number): string %checks(typeof x === 'number');",
		"declare class P<T> extends Q<T> mixins R implements S { static a: number; m(): void }",
		"declare module 'm' { declare module.exports: { a: number }; }",
		"declare export default (x: number) => string;",
		"declare export * from 'x';",
		"declare type O = number;",
		"import type { A, B as C } from './a';",
		"import typeof D, { typeof E } from './d';",
		"import type from 'type';",
		"import * as ns from 'ns';",
		"export type { A } from './a';",
		"export * as ns from 'ns';",
		"export default class extends Base<T> {}",
		"function f<T: Object = {}>(x: T, ...rest: Array<T>): T { return x; }",
		"const g = async <T>(x: T): Promise<T> => x;",
		"const h = (x) => (y) => x + y;",
		"const i = x ? (y): number => y : z;",
		"const j = (x: any);",
		"const k = f<string>(x);",
		"const l = a < b > c;",
		"a >>>= b; c >>= d; e >= f; g >> h;",
		"const m = `a${b}c${`d${e}`}`;",
		"const n = /re[/]gex/gi.test(s) / 2;",
		"const o = { a, b: 1, [c]: 2, ...d, get e() { return 1 }, async *f() {}, g() {} };",
		"const { p, q: [r, , s = 1], ...t } = u;",
		"for (const [k, v] of m) {} for (x in y) {} for (let i = 0; i < n; i++) {}",
		"for await (const x of y) {}",
		"label: while (true) { break label; }",
		"try { a() } catch { b() } finally { c() }",
		"switch (a) { case 1: b(); default: c(); }",
		"class R<+T> extends S<T> implements U { static +a: number = 1; #b = 2; constructor() { super(); } get c(): number { return this.#b } }",
		"new Foo; new Foo<T>(); new.target; import.meta; import('x');",
		"a?.b?.[c]?.(d) ?? e;",
		"x = <div className=\"a\" {...p}>hi {name} <b-c.d /><x:y z:w='1' /></div>;",
		"y = <><A render={() => <B />} /></>;",
		"function* gen() { yield; yield* other(); }",
		"async function af() { await x; for await (const y of z) {} }",
		"if (a) b(); else { c() }",
		"do x(); while (y)",
		"function checks(x: mixed): boolean %checks { return !!x; }",
		"const { a = 1 } = b; ({ a = 1 } = b); [{ c = 2 }] = d; for ({ e = 3 } of f) {}",
		"for (const k in o) {} for (const v of xs) {}",
		"declare module 'm' { declare var v: number; }",
		"outer: for (;;) { inner: for (;;) { continue outer; } }",
		"blk: { break blk; } blk: x;",
		"switch (a) { case 1: while (b) { continue; } break; }",
		"(a?.b).c = 1;",
	}
	for _, src := range sources {
		if _, err := parse(t, src, parser.Flow); err != nil {
			t.Errorf("parse %q: %v", src, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src       string
		dialect   parser.Dialect
		line, col uint32
		code      diag.Code
	}{
		{"const = 1;", parser.Flow, 1, 7, diag.SynUnexpectedToken},
		{"let x = {\n", parser.Flow, 2, 1, diag.SynUnexpectedToken},
		{"x = <div></span>;", parser.Flow, 1, 12, diag.SynMismatchedJSXTag},
		{"type A = ?string;", parser.TypeScript, 1, 10, diag.SynNotInDialect},
		{"a b", parser.Flow, 1, 3, diag.SynExpectSemicolon},
		{"const s = 'abc", parser.Flow, 1, 11, diag.LexUnterminatedString},
		{"const a;", parser.Flow, 1, 7, diag.SynMissingInit},
		{"const a = 1, b;", parser.Flow, 1, 14, diag.SynMissingInit},
		{"for (const x;;) {}", parser.Flow, 1, 12, diag.SynMissingInit},
		{"({a = 1});", parser.Flow, 1, 3, diag.SynCoverInit},
		{"f({a = 1});", parser.Flow, 1, 4, diag.SynCoverInit},
		{"x = { a, b = 2 };", parser.Flow, 1, 10, diag.SynCoverInit},
		{"a?.b = 1;", parser.Flow, 1, 1, diag.SynBadAssignTarget},
		{"a?.b.c += 1;", parser.Flow, 1, 1, diag.SynBadAssignTarget},
		{"[a?.b] = c;", parser.Flow, 1, 2, diag.SynBadAssignTarget},
		{"return 1;", parser.Flow, 1, 1, diag.SynIllegalJump},
		{"break;", parser.Flow, 1, 1, diag.SynIllegalJump},
		{"continue;", parser.Flow, 1, 1, diag.SynIllegalJump},
		{"switch (a) { case 1: continue; }", parser.Flow, 1, 22, diag.SynIllegalJump},
		{"while (a) { break nope; }", parser.Flow, 1, 19, diag.SynIllegalJump},
		{"function f() { while (a) { () => { break; }; } }", parser.Flow, 1, 36, diag.SynIllegalJump},
		{"label: label: x;", parser.Flow, 1, 8, diag.SynDuplicateLabel},
		{"a: { b: { a: x; } }", parser.Flow, 1, 11, diag.SynDuplicateLabel},
	}
	for _, tt := range tests {
		_, err := parse(t, tt.src, tt.dialect)
		var pe *diag.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%q: expected *diag.ParseError, got %v", tt.src, err)
			continue
		}
		if pe.Pos.Line != tt.line || pe.Pos.Col != tt.col {
			t.Errorf("%q: position %d:%d, want %d:%d (%s)", tt.src, pe.Pos.Line, pe.Pos.Col, tt.line, tt.col, pe.Msg)
		}
		if pe.Code != tt.code {
			t.Errorf("%q: code %v, want %v", tt.src, pe.Code, tt.code)
		}
	}
}

func TestParenthesizedVersusArrow(t *testing.T) {
	tree := mustParse(t, "(a);")
	_, n := find(t, tree, ast.Identifier)
	if !n.Has(ast.FlagParenthesized) {
		t.Fatalf("expected parenthesized identifier, flags %v", n.Flags)
	}

	tree = mustParse(t, "(a) => a;")
	_, fn := find(t, tree, ast.ArrowFunctionExpression)
	if len(fn.List) != 1 || !fn.Has(ast.FlagExprBody) {
		t.Fatalf("unexpected arrow shape: params=%d flags=%v", len(fn.List), fn.Flags)
	}
}

func TestTypeCastAndGenericCall(t *testing.T) {
	tree := mustParse(t, "const j = (x: any);")
	_, cast := find(t, tree, ast.TypeCastExpression)
	if tree.Kind(cast.Kid(ast.SlotTypeAnn)) != ast.TypeAnnotation {
		t.Fatalf("type cast without annotation")
	}

	tree = mustParse(t, "f<string>(x);")
	_, call := find(t, tree, ast.CallExpression)
	if !call.Kid(ast.SlotCallTypeArgs).IsValid() {
		t.Fatalf("call lost its type arguments")
	}

	tree = mustParse(t, "a < b > c;")
	_, bin := find(t, tree, ast.BinaryExpression)
	if bin.Text != ">" || tree.Node(bin.Kid(ast.SlotLeft)).Text != "<" {
		t.Fatalf("comparison chain parsed as %q", bin.Text)
	}
}

func TestAssembledShiftOperators(t *testing.T) {
	tree := mustParse(t, "a >>>= b;")
	_, n := find(t, tree, ast.AssignmentExpression)
	if n.Text != ">>>=" {
		t.Fatalf("operator %q, want >>>=", n.Text)
	}
	tree = mustParse(t, "x = a >> b;")
	_, bin := find(t, tree, ast.BinaryExpression)
	if bin.Text != ">>" {
		t.Fatalf("operator %q, want >>", bin.Text)
	}
}

func TestObjectTypeFlags(t *testing.T) {
	tree := mustParse(t, "type A = {| +a: number |};")
	_, obj := find(t, tree, ast.ObjectType)
	if !obj.Has(ast.FlagExact) || obj.Has(ast.FlagInexact) {
		t.Fatalf("flags %v, want exact", obj.Flags)
	}
	_, prop := find(t, tree, ast.ObjectTypeProperty)
	if !prop.Has(ast.FlagCovariant) {
		t.Fatalf("property flags %v, want covariant", prop.Flags)
	}

	tree = mustParse(t, "type B = { a: number, ... };")
	_, obj = find(t, tree, ast.ObjectType)
	if !obj.Has(ast.FlagInexact) || len(obj.List) != 1 {
		t.Fatalf("inexact object: flags %v members %d", obj.Flags, len(obj.List))
	}
}

func TestTemplateElements(t *testing.T) {
	tree := mustParse(t, "x = `a${b}c`;")
	_, tl := find(t, tree, ast.TemplateLiteral)
	if len(tl.List) != 3 {
		t.Fatalf("template list has %d items", len(tl.List))
	}
	if got := tree.Text(tl.List[0]); got != "a" {
		t.Errorf("head %q", got)
	}
	if got := tree.Text(tl.List[2]); got != "c" {
		t.Errorf("tail %q", got)
	}
}

func TestJSXChildren(t *testing.T) {
	tree := mustParse(t, "x = <div>hi {name}</div>;")
	_, el := find(t, tree, ast.JSXElement)
	if len(el.List) != 2 {
		t.Fatalf("children = %d, want 2", len(el.List))
	}
	if tree.Kind(el.List[0]) != ast.JSXText || tree.Text(el.List[0]) != "hi " {
		t.Errorf("first child %v %q", tree.Kind(el.List[0]), tree.Text(el.List[0]))
	}
	if tree.Kind(el.List[1]) != ast.JSXExpressionContainer {
		t.Errorf("second child %v", tree.Kind(el.List[1]))
	}
	if !el.Kid(ast.SlotClosing).IsValid() {
		t.Errorf("closing element missing")
	}
}

func TestCommentAttachment(t *testing.T) {
	tree := mustParse(t, "// lead\nconst a = 1; // trail\n")
	id, decl := find(t, tree, ast.VariableDeclaration)
	if len(decl.Leading) != 1 || len(decl.Trailing) != 1 {
		t.Fatalf("leading=%d trailing=%d", len(decl.Leading), len(decl.Trailing))
	}
	if got := tree.Owner(decl.Leading[0]); got.Node != id || got.Place != ast.Leading {
		t.Fatalf("owner table out of sync: %+v", got)
	}

	tree = mustParse(t, "function f() {\n  // only\n}\n")
	_, body := find(t, tree, ast.BlockStatement)
	if len(body.Inner) != 1 {
		t.Fatalf("empty block should hold an inner comment, got %d", len(body.Inner))
	}
}

func TestSpeculationDropsComments(t *testing.T) {
	// стрелка пробуется и откатывается: комментарий не должен удвоиться
	tree := mustParse(t, "x = (/* c */ a + b);")
	if n := tree.CommentCount(); n != 1 {
		t.Fatalf("comment count = %d, want 1", n)
	}
}

func TestDeclareForms(t *testing.T) {
	tree := mustParse(t, "declare module.exports: { a: number };")
	find(t, tree, ast.DeclareModuleExports)

	tree = mustParse(t, "declare export function f(x: number): string;")
	_, exp := find(t, tree, ast.DeclareExportDeclaration)
	if tree.Kind(exp.Kid(ast.SlotDecl)) != ast.DeclareFunction {
		t.Fatalf("declare export wraps %v", tree.Kind(exp.Kid(ast.SlotDecl)))
	}

	tree = mustParse(t, "import typeof T, { type U } from 'm';")
	_, imp := find(t, tree, ast.ImportDeclaration)
	if imp.Text != "typeof" || len(imp.List) != 2 {
		t.Fatalf("import kind %q with %d specifiers", imp.Text, len(imp.List))
	}
	if tree.Text(imp.List[1]) != "type" {
		t.Fatalf("specifier kind %q", tree.Text(imp.List[1]))
	}

	tree = mustParse(t, "declare class A extends B mixins C, D implements E {}")
	_, cls := find(t, tree, ast.DeclareClass)
	mixins := tree.Node(cls.Kid(ast.SlotMixins))
	if mixins == nil || mixins.Kind != ast.ClassMixins || len(mixins.List) != 2 {
		t.Fatalf("mixins clause not kept: %+v", mixins)
	}
	if len(cls.List) != 1 || !cls.Kid(ast.SlotExtra).IsValid() {
		t.Fatalf("extends/implements lost around mixins")
	}
}

func TestSpanInvariants(t *testing.T) {
	sources := []string{
		"// @flow\nconst a: ?number = 1;\n",
		"type A = { +a: string, b?: Array<?T> };",
		"function f<T>(x: T, y: number = 2): T { return x + y; }",
		"export default class C extends D { m(): void {} }",
		"x = <div a=\"b\">{c}</div>;",
		"declare class A<T> extends B<T> mixins C implements D { m(): void }",
	}
	for _, src := range sources {
		if err := testkit.CheckSpanInvariants(mustParse(t, src)); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}
