package format_test

import (
	"strings"
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/config"
	"github.com/lukeapage/flow-to-ts/internal/format"
)

func TestFormatDefaults(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"const a = 'x'", `const a = "x";`},
		{"type A = {a: string, b: number};", "type A = { a: string; b: number };"},
		{"const f = (x) => x;", "const f = (x) => x;"},
		{"import {a,b} from 'm';", `import { a, b } from "m";`},
		{"const o = {'a': 1};\n\n\n\nconst p = 2;\n", "const o = { a: 1 };\n\nconst p = 2;"},
	}
	for _, tt := range tests {
		got, err := format.Format(tt.src, format.Options{Style: config.DefaultStyle()})
		if err != nil {
			t.Fatalf("%q: %v", tt.src, err)
		}
		if got != tt.want {
			t.Fatalf("%q:\ngot:  %q\nwant: %q", tt.src, got, tt.want)
		}
	}
}

func TestFormatStyle(t *testing.T) {
	style := config.DefaultStyle()
	style.Semi = false
	style.SingleQuote = true
	style.BracketSpacing = false
	style.ArrowParens = config.ArrowAvoid

	got, err := format.Format(`import {a} from "m"; const f = (x) => "y";`, format.Options{Style: style})
	if err != nil {
		t.Fatal(err)
	}
	want := "import {a} from 'm'\nconst f = x => 'y'"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatWrapsLongLines(t *testing.T) {
	style := config.DefaultStyle()
	style.PrintWidth = 30
	got, err := format.Format("const o = { alpha: 1, beta: 2, gamma: 3 };", format.Options{Style: style})
	if err != nil {
		t.Fatal(err)
	}
	want := "const o = {\n  alpha: 1,\n  beta: 2,\n  gamma: 3,\n};"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	src := strings.Join([]string{
		"// header",
		"import type {A} from './a'",
		"export function f(a: number, b?: string): Array<A> { return [a, b] as any }",
		"class C<T> { static x = 1; m() { return this } }",
		"const el = <div className='x'>{1}</div>",
	}, "\n")
	opts := format.Options{Style: config.DefaultStyle(), JSX: true}
	once, err := format.Format(src, opts)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := format.Format(once, opts)
	if err != nil {
		t.Fatal(err)
	}
	if once != twice {
		t.Fatalf("not idempotent:\n%s\n---\n%s", once, twice)
	}
	if err := format.CheckRoundTrip(src, once, "x.tsx"); err != nil {
		t.Fatal(err)
	}
}

func TestFormatRejectsInvalidInput(t *testing.T) {
	if _, err := format.Format("const = ;", format.Options{Style: config.DefaultStyle()}); err == nil {
		t.Fatalf("expected a reparse error")
	}
	style := config.DefaultStyle()
	style.ArrowParens = "sometimes"
	if _, err := format.Format("a;", format.Options{Style: style}); err == nil {
		t.Fatalf("expected a style error")
	}
}

func TestCheckRoundTripDetectsChanges(t *testing.T) {
	if err := format.CheckRoundTrip("a; b;", "a;", ""); err == nil {
		t.Fatalf("dropped statement not reported")
	}
	if err := format.CheckRoundTrip("a;", "function a() {}", ""); err == nil {
		t.Fatalf("changed statement not reported")
	}
}
