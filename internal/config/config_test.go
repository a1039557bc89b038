package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/config"
	"github.com/lukeapage/flow-to-ts/internal/diag"
)

func ptr[T any](v T) *T { return &v }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestResolveStyleDefaults(t *testing.T) {
	for _, req := range []*config.FormatRequest{nil, {}} {
		got, err := config.ResolveStyle(req)
		if err != nil {
			t.Fatal(err)
		}
		if got != config.DefaultStyle() {
			t.Fatalf("got %+v, want defaults", got)
		}
	}
}

func TestResolveStylePrecedence(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, ".prettierrc", "semi: false\ntabWidth: 4\ntrailingComma: all\nplugins: [x]\n")

	got, err := config.ResolveStyle(&config.FormatRequest{ConfigPath: file, TabWidth: ptr(8)})
	if err != nil {
		t.Fatal(err)
	}
	want := config.DefaultStyle()
	want.Semi = false
	want.TabWidth = 8
	want.TrailingComma = config.TrailingAll
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestResolveStyleFileFormats(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"style.json", `{"singleQuote": true, "printWidth": 100}`},
		{"style.yaml", "singleQuote: true\nprintWidth: 100\n"},
		{"style.yml", "singleQuote: true\nprintWidth: 100\n"},
		{"style.toml", "singleQuote = true\nprintWidth = 100\n"},
		{".prettierrc", `{"singleQuote": true, "printWidth": 100}`},
		{"pkg/package.json", `{"name": "x", "prettier": {"singleQuote": true, "printWidth": 100}}`},
	}
	for _, tt := range tests {
		file := writeFile(t, dir, tt.name, tt.content)
		got, err := config.ResolveStyle(&config.FormatRequest{ConfigPath: file})
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if !got.SingleQuote || got.PrintWidth != 100 {
			t.Fatalf("%s: got %+v", tt.name, got)
		}
	}
}

func TestResolveStyleErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		req  *config.FormatRequest
		code diag.Code
	}{
		{"missing file", &config.FormatRequest{ConfigPath: filepath.Join(dir, "nope.json")}, diag.CfgUnreadable},
		{"bad json", &config.FormatRequest{ConfigPath: writeFile(t, dir, "bad.json", "{")}, diag.CfgMalformed},
		{"bad toml", &config.FormatRequest{ConfigPath: writeFile(t, dir, "bad.toml", "semi = ")}, diag.CfgMalformed},
		{"ill-typed", &config.FormatRequest{ConfigPath: writeFile(t, dir, "typed.yaml", "tabWidth: wide\n")}, diag.CfgBadValue},
		{"bad enum in file", &config.FormatRequest{ConfigPath: writeFile(t, dir, "enum.yaml", "arrowParens: never\n")}, diag.CfgBadValue},
		{"bad enum override", &config.FormatRequest{TrailingComma: ptr("some")}, diag.CfgBadValue},
	}
	for _, tt := range tests {
		_, err := config.ResolveStyle(tt.req)
		var ce *diag.ConfigError
		if !errors.As(err, &ce) {
			t.Fatalf("%s: want *diag.ConfigError, got %v", tt.name, err)
		}
		if ce.Code != tt.code {
			t.Fatalf("%s: code %v, want %v", tt.name, ce.Code, tt.code)
		}
	}
}

func TestStyleValidate(t *testing.T) {
	s := config.DefaultStyle()
	s.TabWidth = -1
	if s.Validate() == nil {
		t.Fatalf("negative tab width accepted")
	}
	if err := config.GeneratorStyle().Validate(); err != nil {
		t.Fatalf("generator style: %v", err)
	}
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.ManifestName, `
[convert]
skip_non_flow = true

[format]
enabled = true
config = ".prettierrc"
tab_width = 4

[paths]
include = ["*.js", "src/*"]
exclude = ["vendor/*", "*.min.js"]
`)
	sub := filepath.Join(dir, "src", "deep")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	file, ok, err := config.FindManifest(sub)
	if err != nil || !ok {
		t.Fatalf("FindManifest: %v %v", ok, err)
	}
	m, err := config.LoadManifest(file)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Convert.SkipNonFlow || m.Convert.InlineUtilityTypes {
		t.Fatalf("convert section: %+v", m.Convert)
	}

	req := m.FormatRequest()
	if req == nil || req.ConfigPath != filepath.Join(m.Dir, ".prettierrc") || *req.TabWidth != 4 || req.Semi != nil {
		t.Fatalf("format request: %+v", req)
	}

	selects := map[string]bool{
		"a.js":            true,
		"lib/b.js":        true,
		"src/c.flow":      true,
		"src/deep/d.mjs":  true,
		"vendor/e.js":     false,
		"app.min.js":      false,
		"README.md":       false,
		"../outside/x.md": true,
	}
	for rel, want := range selects {
		if got := m.Selects(filepath.Join(dir, rel)); got != want {
			t.Fatalf("Selects(%s) = %v, want %v", rel, got, want)
		}
	}
}

func TestManifestRejectsUnknownKeys(t *testing.T) {
	file := writeFile(t, t.TempDir(), config.ManifestName, "[convert]\nskip_nonflow = true\n")
	if _, err := config.LoadManifest(file); err == nil {
		t.Fatalf("expected an unknown key error")
	}
}

func TestDefaultManifestLoads(t *testing.T) {
	file := writeFile(t, t.TempDir(), config.ManifestName, config.DefaultManifest)
	m, err := config.LoadManifest(file)
	if err != nil {
		t.Fatal(err)
	}
	if m.FormatRequest() != nil {
		t.Fatalf("formatting enabled by default")
	}
	if !m.Selects(filepath.Join(m.Dir, "x.jsx")) || m.Selects(filepath.Join(m.Dir, "node_modules", "y.js")) {
		t.Fatalf("default paths filter wrong")
	}
}
