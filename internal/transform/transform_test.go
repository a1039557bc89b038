package transform_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/annot"
	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/codegen"
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/parser"
	"github.com/lukeapage/flow-to-ts/internal/source"
	"github.com/lukeapage/flow-to-ts/internal/transform"
)

func run(t *testing.T, src string, opts transform.Options) (*transform.State, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.js", []byte(src)))
	tree, err := parser.ParseFile(file, parser.Options{Dialect: parser.Flow})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	s := transform.NewState(tree, "test.js", annot.Scan(tree).Index, opts)
	return s, transform.Run(s)
}

func convert(t *testing.T, src string, opts transform.Options) string {
	t.Helper()
	s, err := run(t, src, opts)
	if err != nil {
		t.Fatalf("transform %q: %v", src, err)
	}
	out, err := codegen.Generate(s.Tree, codegen.GeneratorOptions())
	if err != nil {
		t.Fatalf("generate %q: %v", src, err)
	}
	return out
}

type convCase struct {
	src  string
	want string
}

func check(t *testing.T, cases []convCase, opts transform.Options) {
	t.Helper()
	for _, tt := range cases {
		if got := convert(t, tt.src, opts); got != tt.want {
			t.Fatalf("%q:\ngot:  %q\nwant: %q", tt.src, got, tt.want)
		}
	}
}

func TestTypes(t *testing.T) {
	check(t, []convCase{
		{"type A = mixed;", "type A = unknown;"},
		{"type A = empty;", "type A = never;"},
		{"type A = *;", "type A = any;"},
		{"type A = ?string;", "type A = string | null | undefined;"},
		{"type A = ?(string | number);", "type A = string | number | null | undefined;"},
		{"type A = {| a: string |};", "type A = { a: string };"},
		{"type A = { a: string, ... };", "type A = { a: string };"},
		{"type A = { ...B, c: number };", "type A = B & { c: number };"},
		{"type A = { a: 1, ...B, ...C };", "type A = { a: 1 } & B & C;"},
		{"type A = { +a: string, -b: number };", "type A = { readonly a: string; b: number };"},
		{"type A = { [string]: number };", "type A = { [key: string]: number };"},
		{"type A = { [K]: V };", "type A = Record<K, V>;"},
		{"type F = (string, number) => void;", "type F = (arg0: string, arg1: number) => void;"},
		{"type F = (...Array<string>) => void;", "type F = (...rest: Array<string>) => void;"},
		{"type A = T?.['a'];", "type A = NonNullable<T>['a'];"},
		{"type A = interface { a: number };", "type A = { a: number };"},
		{"type A = typeof x;", "type A = typeof x;"},
		{"type A = Array<_>;", "type A = Array<any>;"},
	}, transform.Options{})
}

func TestUtilityTypes(t *testing.T) {
	check(t, []convCase{
		{"type A = $Keys<T>;", "type A = keyof T;"},
		{"type A = $Values<T>;", "type A = T[keyof T];"},
		{"type A = $ReadOnly<T>;", "type A = Readonly<T>;"},
		{"type A = $ReadOnlyArray<T>;", "type A = ReadonlyArray<T>;"},
		{"type A = $Shape<T>;", "type A = Partial<T>;"},
		{"type A = $NonMaybeType<T>;", "type A = NonNullable<T>;"},
		{"type A = $Exact<T>;", "type A = T;"},
		{"type A = $FlowFixMe;", "type A = any;"},
		{"type A = React.Node;", "type A = React.ReactNode;"},
		{"type A = React.Element<typeof B>;", "type A = React.ReactElement<typeof B>;"},
		{"type A = React.ChildrenArray<T>;", "type A = T | ReadonlyArray<T>;"},
		{"type A = React.AbstractComponent<P, I>;", "type A = React.ComponentType<P>;"},
		{"type A = React.Ref<T>;", "type A = $ReactRef<T>;"},
		{"type A = SyntheticMouseEvent<T>;", "type A = React.MouseEvent<T>;"},
		{"type A = SyntheticMouseEvent<>;", "type A = React.MouseEvent;"},
		{"type B = SyntheticEvent<>;", "type B = React.SyntheticEvent;"},
	}, transform.Options{})
}

func TestUtilityTypesInline(t *testing.T) {
	check(t, []convCase{
		{"type A = $Diff<B, C>;", "type A = Omit<B, keyof C>;"},
		{"type A = $PropertyType<T, 'k'>;", "type A = T['k'];"},
		{"type A = $ElementType<T, K>;", "type A = T[K];"},
		{"type A = $Call<F>;", "type A = ReturnType<F>;"},
		{"type A = Class<T>;", "type A = new (...args: any[]) => T;"},
	}, transform.Options{InlineUtilityTypes: true})
}

func TestUtilityTypesImported(t *testing.T) {
	src := "// @flow\ntype A = $Diff<B, C>;\ntype D = Class<E> | $Call<F> | $Diff<G, H>;"
	s, err := run(t, src, transform.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(s.UtilityNames(), ","); got != "$Call,$Diff,Class" {
		t.Fatalf("used utility types = %q", got)
	}
	out, err := codegen.Generate(s.Tree, codegen.GeneratorOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := "import { $Call, $Diff, Class } from \"utility-types\";\ntype A = $Diff<B, C>;\ntype D = Class<E> | $Call<F> | $Diff<G, H>;"
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestDeclarations(t *testing.T) {
	check(t, []convCase{
		{"function f<T: Object = {}>(x: T) {}", "function f<T extends Object = {}>(x: T) {}"},
		{"class A<+T> {}", "class A<T> {}"},
		{"class A { +p: number; -q: string }", "class A {\n  readonly p: number;\n  q: string;\n}"},
		{"const a = (b: any);", "const a = b as any;"},
		{"function f(x: mixed): boolean %checks { return !!x; }", "function f(x: unknown): boolean {\n  return !!x;\n}"},
		{"opaque type A: string = number;", "type A = number;"},
		{"declare opaque type A: string;", "type A = string;"},
		{"declare opaque type A;", "type A = any;"},
		{"declare type A = number;", "type A = number;"},
		{"declare interface I { a: number }", "interface I {\n  a: number;\n}"},
		{"declare var a: number;", "declare var a: number;"},
		{"declare function f(x: number): string;", "declare function f(x: number): string;"},
		{"declare function f(number, ?string): void;", "declare function f(arg0: number, arg1?: string): void;"},
		{
			"declare class A<T> extends B<T> { static s: number; m(): void; constructor(): void }",
			"declare class A<T> extends B<T> {\n  static s: number;\n  m(): void;\n  constructor();\n}",
		},
		{"declare class A mixins M, N {}", "declare class A {}"},
		{"declare export class C extends B mixins M implements I {}", "export declare class C extends B implements I {}"},
		{"declare export function f(): void;", "export declare function f(): void;"},
		{"declare export class C {}", "export declare class C {}"},
		{"declare module.exports: { a: number };", "declare const moduleExports: { a: number };\nexport = moduleExports;"},
		{"declare export default string;", "declare const _default: string;\nexport default _default;"},
		{"declare export * from 'x';", "export * from 'x';"},
		{"declare module 'm' {\n  declare function f(): void;\n}", "declare module 'm' {\n  function f(): void;\n}"},
		{"import typeof X from 'x';", "import type X from 'x';"},
		{"import { typeof X, Y } from 'x';", "import { type X, Y } from 'x';"},
		{"import type { A } from './a';", "import type { A } from './a';"},
		{"export type { A } from './a';", "export type { A } from './a';"},
		{"export type B = A;", "export type B = A;"},
	}, transform.Options{})
}

func TestComments(t *testing.T) {
	check(t, []convCase{
		{"// @flow\nconst a = 1;", "const a = 1;"},
		{"/* @flow strict */\nconst a = 1;", "const a = 1;"},
		{"/**\n * @flow\n * @format\n */\nconst a = 1;", "/**\n * @format\n */\nconst a = 1;"},
		{"// $FlowFixMe[prop-missing] reason\nconst a = b.c;", "// @ts-expect-error reason\nconst a = b.c;"},
		{"// $FlowExpectedError\nconst a = b.c;", "// @ts-expect-error\nconst a = b.c;"},
		{"// $FlowFixMeLater\nconst a = 1;", "// $FlowFixMeLater\nconst a = 1;"},
		{"type A = ?string; // maybe", "type A = string | null | undefined; // maybe"},
		{"type A = {\n  // first\n  a: ?string,\n  b: *,\n};", "type A = {\n  // first\n  a: string | null | undefined;\n  b: any;\n};"},
	}, transform.Options{})
}

func TestDeclareClassMixinsKeepComments(t *testing.T) {
	for _, src := range []string{
		"declare class A extends B mixins /* from C */ C { m(): void }",
		"declare class A mixins C /* from C */ { m(): void }",
	} {
		out := convert(t, src, transform.Options{})
		if strings.Contains(out, "mixins") {
			t.Fatalf("%q: mixins clause survived:\n%s", src, out)
		}
		if !strings.Contains(out, "/* from C */") {
			t.Fatalf("%q: comment lost:\n%s", src, out)
		}
	}
}

func TestUnsupported(t *testing.T) {
	for _, src := range []string{
		"type A = { [[foo]]: T };",
		"type A = $Keys;",
		"declare class A { (): void }",
	} {
		_, err := run(t, src, transform.Options{})
		var ue *diag.UnsupportedError
		if !errors.As(err, &ue) {
			t.Fatalf("%q: want *diag.UnsupportedError, got %v", src, err)
		}
		if ue.Path != "test.js" || ue.Pos.Line != 1 {
			t.Fatalf("%q: error lacks a position: %+v", src, ue)
		}
	}
}

// Every Flow-only kind is gone after a successful pass.
func TestNoFlowNodesSurvive(t *testing.T) {
	src := strings.Join([]string{
		"// @flow",
		"import typeof T from 't';",
		"opaque type O = string;",
		"type A = { ...B, c: ?*, d: interface { e: number } };",
		"declare function f(x: mixed): boolean %checks(x);",
		"declare class C { m(): void }",
		"declare export var v: number;",
		"declare module.exports: A;",
		"const g = (x: any);",
	}, "\n")
	s, err := run(t, src, transform.Options{})
	if err != nil {
		t.Fatal(err)
	}
	s.Tree.Inspect(s.Tree.Root, func(id ast.NodeID, n *ast.Node) bool {
		if n.Kind.IsFlowOnly() {
			t.Fatalf("%v survived the pass", n.Kind)
		}
		return true
	})
}
