package convert_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/config"
	"github.com/lukeapage/flow-to-ts/internal/convert"
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/observ"
)

func conv(t *testing.T, src string, opts *convert.Options) convert.Result {
	t.Helper()
	res, err := convert.Convert(context.Background(), []byte(src), opts)
	if err != nil {
		t.Fatalf("convert %q: %v", src, err)
	}
	return res
}

func TestConvertEligibility(t *testing.T) {
	tests := []struct {
		src      string
		skip     bool
		eligible bool
	}{
		{"const a = 1;", true, false},
		{"// @flow\nconst a = 1;", false, true},
		{"/* @noflow */\nconst a = 1;", true, false},
		{"// @flow strict\nconst a = 1;", true, false},
		{"const a = 1;\n// @flow\n", false, true},
	}
	for _, tt := range tests {
		res := conv(t, tt.src, &convert.Options{SkipNonFlow: true})
		if res.Skip != tt.skip || res.Eligible != tt.eligible {
			t.Fatalf("%q: skip=%v eligible=%v", tt.src, res.Skip, res.Eligible)
		}
		if res.Skip && res.Code != "" {
			t.Fatalf("%q: skipped result carries code %q", tt.src, res.Code)
		}
	}

	// without SkipNonFlow every file is converted
	res := conv(t, "const a: ?number = 1;", nil)
	if res.Skip || res.Code != "const a: number | null | undefined = 1;" {
		t.Fatalf("got %+v", res)
	}
}

func TestConvertPreservesComments(t *testing.T) {
	src := "// @flow\n// leading\nconst a = 1; // trailing\n/* block */\nfunction f() {}"
	got := conv(t, src, nil).Code
	for _, c := range []string{"// leading", "// trailing", "/* block */"} {
		if !strings.Contains(got, c) {
			t.Fatalf("comment %q lost:\n%s", c, got)
		}
	}
	if strings.Contains(got, "@flow") {
		t.Fatalf("pragma kept:\n%s", got)
	}
}

func TestConvertReactRefs(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"type A = React.Ref<T>;", "type A = React.Ref<T>;"},
		{"type A = React.RefObject<T>;", "type A = React.RefObject<T>;"},
		{"type A = React.RefCallback<T>;", "type A = React.RefCallback<T>;"},
		// the substitution is textual and also hits identifiers that merely
		// start with the placeholder
		{"const $ReactRefX = 1;", "const React.RefX = 1;"},
	}
	for _, tt := range tests {
		if got := conv(t, tt.src, nil).Code; got != tt.want {
			t.Fatalf("%q:\ngot:  %q\nwant: %q", tt.src, got, tt.want)
		}
	}
}

func TestConvertTrailingNewlines(t *testing.T) {
	for n := 0; n <= 3; n++ {
		src := "const a = 1;" + strings.Repeat("\n", n)
		got := conv(t, src, nil).Code
		if want := "const a = 1;" + strings.Repeat("\n", n); got != want {
			t.Fatalf("%d newlines: got %q, want %q", n, got, want)
		}
	}
	if got := conv(t, "const a = 1;\r\n", nil).Code; got != "const a = 1;\n" {
		t.Fatalf("crlf: got %q", got)
	}
}

func TestConvertFormat(t *testing.T) {
	dir := t.TempDir()
	rc := filepath.Join(dir, ".prettierrc")
	if err := os.WriteFile(rc, []byte(`{"semi": true, "singleQuote": true}`), 0o600); err != nil {
		t.Fatal(err)
	}
	semi := false
	res := conv(t, "// @flow\nconst a: string = \"x\"\n\n\n", &convert.Options{
		Format: &config.FormatRequest{ConfigPath: rc, Semi: &semi},
	})
	if want := "const a: string = 'x'"; res.Code != want {
		t.Fatalf("got %q, want %q", res.Code, want)
	}
}

func TestConvertFormatConfigError(t *testing.T) {
	_, err := convert.Convert(context.Background(), []byte("a;"), &convert.Options{
		Format: &config.FormatRequest{ConfigPath: filepath.Join(t.TempDir(), "missing.json")},
	})
	var ce *diag.ConfigError
	if !errors.As(err, &ce) || ce.Code != diag.CfgUnreadable {
		t.Fatalf("want unreadable config error, got %v", err)
	}
}

func TestConvertParseError(t *testing.T) {
	res, err := convert.Convert(context.Background(), []byte("const = ;"), &convert.Options{Path: "bad.js"})
	var pe *diag.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want *diag.ParseError, got %v", err)
	}
	if pe.Path != "bad.js" || pe.Pos.Line != 1 {
		t.Fatalf("error position: %+v", pe)
	}
	if res.Code != "" {
		t.Fatalf("partial output %q", res.Code)
	}
}

func TestConvertUnsupported(t *testing.T) {
	_, err := convert.Convert(context.Background(), []byte("type A = { [[foo]]: T };"), nil)
	var ue *diag.UnsupportedError
	if !errors.As(err, &ue) {
		t.Fatalf("want *diag.UnsupportedError, got %v", err)
	}
	if ue.Path != "input.js" || ue.Pos.Line != 1 {
		t.Fatalf("error position: %+v", ue)
	}
}

func TestConvertErrorsShareDefaultPath(t *testing.T) {
	for _, src := range []string{"const = ;", "type A = { [[foo]]: T };"} {
		_, err := convert.Convert(context.Background(), []byte(src), nil)
		if err == nil {
			t.Fatalf("%q: want an error", src)
		}
		if !strings.HasPrefix(err.Error(), "input.js:1:") {
			t.Fatalf("%q: error %q does not start with input.js:1:", src, err)
		}
	}
}

func TestConvertIdempotentOnPlainCode(t *testing.T) {
	src := strings.Join([]string{
		"import { a } from \"a\";",
		"export function f(x) {",
		"  return a(x) + 1;",
		"}",
		"",
	}, "\n")
	once := conv(t, src, nil).Code
	twice := conv(t, once, nil).Code
	if once != src || twice != once {
		t.Fatalf("not idempotent:\n%s\n---\n%s", once, twice)
	}
}

func TestConvertJSX(t *testing.T) {
	if conv(t, "const a = 1;", nil).HasJSX {
		t.Fatalf("plain code reported as JSX")
	}
	res := conv(t, "// @flow\nconst a = <div>{b}</div>;", nil)
	if !res.HasJSX || res.Code != "const a = <div>{b}</div>;" {
		t.Fatalf("got %+v", res)
	}
	if !conv(t, "const a = <>x</>;", nil).HasJSX {
		t.Fatalf("fragment not reported as JSX")
	}
}

func TestConvertDebugDump(t *testing.T) {
	var buf bytes.Buffer
	conv(t, "type A = mixed;", &convert.Options{Debug: true, DebugOut: &buf})
	out := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(out), "{") || !strings.Contains(out, "TypeAlias") {
		t.Fatalf("unexpected dump:\n%s", out)
	}
}

func TestConvertTimerPhases(t *testing.T) {
	timer := observ.NewTimer()
	conv(t, "// @flow\nconst a = 1;", &convert.Options{Timer: timer})
	var names []string
	for _, p := range timer.Report().Phases {
		names = append(names, p.Name)
	}
	if got := strings.Join(names, ","); got != "parse,scan,transform,generate,normalize" {
		t.Fatalf("phases = %s", got)
	}
}

func TestConvertCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := convert.Convert(ctx, []byte("a;"), nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}
