package diagfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/lexer"
	"github.com/lukeapage/flow-to-ts/internal/source"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

func unsupported(path string) error {
	// "b" on line 2
	return &diag.UnsupportedError{
		Path: path,
		Span: source.Span{Start: 15, End: 16},
		Pos:  source.LineCol{Line: 2, Col: 3},
		Kind: "ObjectTypeInternalSlot",
		Msg:  "internal slots have no TypeScript equivalent",
	}
}

const src = "const a = 1;\n  b;\nconst c = 3;\n"

func TestReportPreview(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, "src/x.js", []byte(src), unsupported("src/x.js"), PrettyOpts{Context: 1})
	want := strings.Join([]string{
		"src/x.js:2:3: ERROR TRN3001: ObjectTypeInternalSlot: internal slots have no TypeScript equivalent",
		" 1 | const a = 1;",
		" 2 |   b;",
		"   |   ^",
		" 3 | const c = 3;",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestReportUnlocated(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"config",
			&diag.ConfigError{Path: ".prettierrc", Code: diag.CfgMalformed, Err: errors.New("bad")},
			"ERROR CFG4002: style config .prettierrc: bad\n",
		},
		{"plain", errors.New("boom"), "ERROR E0000: a.js: boom\n"},
		{"io", &os.PathError{Op: "open", Path: "a.js", Err: os.ErrNotExist}, "ERROR CFG4101: open a.js: file does not exist\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		Report(&buf, "a.js", []byte("x"), tt.err, PrettyOpts{Context: 2})
		if got := buf.String(); got != tt.want {
			t.Fatalf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestReportColor(t *testing.T) {
	var plain, colored bytes.Buffer
	Report(&plain, "x.js", []byte(src), unsupported("x.js"), PrettyOpts{})
	Report(&colored, "x.js", []byte(src), unsupported("x.js"), PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("escape codes without color")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("no escape codes with color")
	}
}

func TestCaretWidth(t *testing.T) {
	tests := []struct {
		line string
		n    uint32
		want int
	}{
		{"abc", 2, 2},
		{"\tx", 1, 4},
		{"日本x", 6, 4},
		{"e\u0301x", 3, 1},
		{"abc", 10, 3},
	}
	for _, tt := range tests {
		if got := cellWidth(tt.line, tt.n); got != tt.want {
			t.Fatalf("cellWidth(%q, %d) = %d, want %d", tt.line, tt.n, got, tt.want)
		}
	}
	if got := caretLine(2, 5); got != "  ^~~" {
		t.Fatalf("caretLine = %q", got)
	}
}

func TestPathModes(t *testing.T) {
	long := "/very/long/absolute/path/to/some/nested/directory/file.js"
	tests := []struct {
		path string
		mode PathMode
		base string
		want string
	}{
		{"x.js", PathModeAuto, "", "x.js"},
		{long, PathModeAuto, "", "file.js"},
		{"/home/u/p/src/x.js", PathModeRelative, "/home/u/p", "src/x.js"},
		{"/elsewhere/x.js", PathModeRelative, "/home/u/p", "/elsewhere/x.js"},
		{"/home/u/p/x.js", PathModeBasename, "", "x.js"},
		{"", PathModeAuto, "", "<input>"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.path, tt.mode, tt.base); got != tt.want {
			t.Fatalf("formatPath(%q, %d) = %q, want %q", tt.path, tt.mode, got, tt.want)
		}
	}
}

func TestCollectorJSON(t *testing.T) {
	c := NewCollector(10)
	c.Add("b.js", []byte(src), unsupported("b.js"))
	c.Add("a.js", []byte(src), unsupported("a.js"))
	c.Add("cfg", nil, &diag.ConfigError{Path: "cfg", Code: diag.CfgBadValue, Err: errors.New("x")})
	if c.Len() != 3 {
		t.Fatalf("len = %d", c.Len())
	}

	var buf bytes.Buffer
	if err := c.JSON(&buf, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 3 {
		t.Fatalf("count = %d", out.Count)
	}
	if out.Diagnostics[0].Location != nil || out.Diagnostics[0].Code != "CFG4003" {
		t.Fatalf("config diagnostic first: %+v", out.Diagnostics[0])
	}
	loc := out.Diagnostics[1].Location
	if loc == nil || loc.File != "a.js" || loc.StartLine != 2 || loc.StartCol != 3 {
		t.Fatalf("location = %+v", loc)
	}
	if out.Diagnostics[2].Location.File != "b.js" {
		t.Fatalf("order: %+v", out.Diagnostics)
	}
}

func TestCollectorMax(t *testing.T) {
	c := NewCollector(1)
	if !c.Add("a.js", nil, errors.New("a")) || c.Add("b.js", nil, errors.New("b")) {
		t.Fatalf("limit not applied")
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.js", []byte("// c\nlet a")))
	lx := lexer.New(f, lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, f); err != nil {
		t.Fatal(err)
	}
	first := strings.SplitN(pretty.String(), "\n", 2)[0]
	if !strings.Contains(first, "at 2:1-2:4") || !strings.Contains(first, "(comments: line)") {
		t.Fatalf("first token line: %q", first)
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[0].Leading[0].Text != " c" || out[2].Kind != "EOF" {
		t.Fatalf("tokens: %+v", out)
	}
}
