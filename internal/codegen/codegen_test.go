package codegen_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/codegen"
	"github.com/lukeapage/flow-to-ts/internal/config"
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/parser"
	"github.com/lukeapage/flow-to-ts/internal/source"
)

func parse(t *testing.T, src string, d parser.Dialect) *ast.Tree {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.tsx", []byte(src)))
	tree, err := parser.ParseFile(file, parser.Options{Dialect: d})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return tree
}

func generate(t *testing.T, src string, opts codegen.Options) string {
	t.Helper()
	out, err := codegen.Generate(parse(t, src, parser.TypeScript), opts)
	if err != nil {
		t.Fatalf("generate %q: %v", src, err)
	}
	return out
}

// Sources already in canonical layout print back unchanged.
func TestGenerateRoundTrip(t *testing.T) {
	sources := []string{
		"const a = 1;",
		"let a, b;",
		"let a = 1,\n  b = 2;",
		"function f(a: number, b?: string): void {\n  return;\n}",
		"async function* g() {\n  yield* other();\n}",
		"const f = function () {};",
		"type A = {\n  a: string;\n  b?: number;\n};",
		"type U = \"a\" | \"b\";",
		"type F = (x: number, ...rest: Array<string>) => void;",
		"type O = { m(x: number): string; readonly r: number };",
		"type I = { [key: string]: number };",
		"type T = [number, string];",
		"type K = keyof typeof obj;",
		"type Idx = Obj[\"a\"][\"b\"];",
		"interface I extends A, B<T> {\n  a: number;\n}",
		"import { a, b as c } from \"x\";",
		"import d, * as ns from \"x\";",
		"import type { T } from \"x\";",
		"import \"side-effect\";",
		"export { a, b as c };",
		"export * from \"x\";",
		"export default class extends B {}",
		"export default a;",
		"export = a;",
		"class C<T> extends B<T> implements I {\n  static x: number = 1;\n  readonly y?: string;\n\n  m(): void {}\n}",
		"declare function f(x: number): string;",
		"declare const moduleExports: number;",
		"if (a) {\n  b();\n} else if (c) {\n  d();\n} else {\n  e();\n}",
		"for (let i = 0; i < n; i++) {}",
		"for (const k in o) {}",
		"for await (const x of xs) {}",
		"while (a) b();",
		"do {\n  a();\n} while (b);",
		"switch (a) {\n  case 1:\n    b();\n    break;\n\n  default:\n    c();\n}",
		"try {\n  a();\n} catch (e) {\n  b();\n} finally {\n  c();\n}",
		"label: for (;;) {\n  break label;\n}",
		"const x = a ? b : c;",
		"const y = a as unknown as T;",
		"const z = a!.b?.c?.[d]?.();",
		"const n = new Foo();",
		"const t = `a${b}c`;",
		"const o = { a, b: 1, [c]: 2, ...d, m() {}, get g() {} };",
		"const p = {\n  a: 1,\n\n  b: 2\n};",
		"const { a, b: [c], ...rest } = o;",
		"const f = async x => await x;",
		"const g = <T,>(x: T): T => x;",
		"const el = <div className=\"x\">hi {name}</div>;",
		"const frag = <>\n  <A />\n</>;",
		"declare module \"m\" {\n  export function f(): void;\n}",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			opts := codegen.GeneratorOptions()
			opts.JSX = true
			if got := generate(t, src, opts); got != src {
				t.Fatalf("got:\n%s\nwant:\n%s", got, src)
			}
		})
	}
}

func TestParenthesesFollowPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x = (a + b) * c;", "x = (a + b) * c;"},
		{"x = a + (b + c);", "x = a + (b + c);"},
		{"x = ((a * b)) + c;", "x = a * b + c;"},
		{"x = (a || b) ?? c;", "x = (a || b) ?? c;"},
		{"const s = (a, b);", "const s = (a, b);"},
		{"x = (-(-a));", "x = -(-a);"},
		{"x = (a ** b) ** c;", "x = (a ** b) ** c;"},
		{"x = (await a)();", "x = (await a)();"},
		{"const f = () => ({ a: 1 });", "const f = () => ({ a: 1 });"},
		{"({ a } = b);", "({ a } = b);"},
		{"(function () {})();", "(function () {})();"},
		{"new (a.b())();", "new (a.b())();"},
		{"type A = (() => void) | string;", "type A = (() => void) | string;"},
		{"type B = (A | B)[];", "type B = (A | B)[];"},
		{"x = (1).toString();", "x = (1).toString();"},
	}
	for _, tt := range tests {
		got := generate(t, tt.src, codegen.GeneratorOptions())
		if got != tt.want {
			t.Fatalf("%q: got %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestCommentsSurvive(t *testing.T) {
	src := "// lead\n\n/**\n * Doc.\n */\nfunction f() {} // trail\n/* block */ const a = 1;\n// end"
	got := generate(t, src, codegen.GeneratorOptions())
	if got != src {
		t.Fatalf("got:\n%s\nwant:\n%s", got, src)
	}
}

func TestNormalizeLiterals(t *testing.T) {
	opts := codegen.Options{Style: config.DefaultStyle(), Normalize: true}
	tests := []struct {
		src  string
		want string
	}{
		{"x = 'a';", `x = "a";`},
		{`x = 'it"s';`, `x = 'it"s';`},
		{`x = "it\'s";`, `x = "it's";`},
		{"x = 0XAB;", "x = 0xab;"},
		{"x = .5e+10;", "x = 0.5e10;"},
		{"x = 1.50;", "x = 1.5;"},
		{"x = 1.0;", "x = 1.0;"},
		{"x = 5.;", "x = 5;"},
		{"x = 0B11;", "x = 0b11;"},
		{"x = { 'a': 1, 'b': 2 };", "x = { a: 1, b: 2 };"},
		{"x = { 'a': 1, 'b-c': 2 };", `x = { "a": 1, "b-c": 2 };`},
		{"'use strict';", `"use strict";`},
	}
	for _, tt := range tests {
		got := generate(t, tt.src, opts)
		if got != tt.want {
			t.Fatalf("%q: got %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestStyleControlsLayout(t *testing.T) {
	long := "foo(aaaaaaaaaaaaaaaaaaaa, bbbbbbbbbbbbbbbbbbbbbbbbb, cccccccccccccccccccccccccc, ddddddddddddd);"

	style := config.DefaultStyle()
	got := generate(t, long, codegen.Options{Style: style})
	want := "foo(\n  aaaaaaaaaaaaaaaaaaaa,\n  bbbbbbbbbbbbbbbbbbbbbbbbb,\n  cccccccccccccccccccccccccc,\n  ddddddddddddd,\n);"
	style.TrailingComma = config.TrailingAll
	if got := generate(t, long, codegen.Options{Style: style}); got != want {
		t.Fatalf("trailing all: got:\n%s\nwant:\n%s", got, want)
	}
	if want := strings.Replace(want, "ddddddddddddd,\n", "ddddddddddddd\n", 1); got != want {
		t.Fatalf("es5: got:\n%s\nwant:\n%s", got, want)
	}

	style = config.DefaultStyle()
	style.Semi = false
	style.TabWidth = 4
	got = generate(t, "function f() {\n  a()\n  ;[1].map(g)\n}", codegen.Options{Style: style})
	if want := "function f() {\n    a()\n    ;[1].map(g)\n}"; got != want {
		t.Fatalf("no semi: got:\n%s\nwant:\n%s", got, want)
	}

	style = config.DefaultStyle()
	style.TrailingComma = "sometimes"
	if _, err := codegen.Generate(parse(t, "a;", parser.TypeScript), codegen.Options{Style: style}); err == nil {
		t.Fatalf("expected a style error")
	}
}

func TestUnionBreaksUnderAlias(t *testing.T) {
	src := `type Long = "aaaaaaaaaaaaaaaaaaaa" | "bbbbbbbbbbbbbbbbbbbbbb" | "cccccccccccccccccccccccc" | "dddd";`
	got := generate(t, src, codegen.Options{Style: config.DefaultStyle()})
	want := "type Long =\n  | \"aaaaaaaaaaaaaaaaaaaa\"\n  | \"bbbbbbbbbbbbbbbbbbbbbb\"\n  | \"cccccccccccccccccccccccc\"\n  | \"dddd\";"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFlowOnlyNodesAreRejected(t *testing.T) {
	for _, src := range []string{
		"type A = ?string;",
		"type B = {| a: 1 |} & { ...C };",
		"opaque type D = string;",
		"const e = (x: any);",
	} {
		_, err := codegen.Generate(parse(t, src, parser.Flow), codegen.GeneratorOptions())
		var ue *diag.UnsupportedError
		if !errors.As(err, &ue) {
			t.Fatalf("%q: want *diag.UnsupportedError, got %v", src, err)
		}
		if ue.Code != diag.TrnUntranslated || ue.Pos.Line == 0 {
			t.Fatalf("%q: bad error %+v", src, ue)
		}
	}
}
