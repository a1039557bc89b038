package lexer

import (
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/source"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

func cursorOn(src string) Cursor {
	fs := source.NewFileSet()
	return NewCursor(fs.Get(fs.AddVirtual("test.js", []byte(src))))
}

func TestCursorLineTerminators(t *testing.T) {
	tests := []struct {
		src  string
		want uint32
	}{
		{"\nconst a = 1;", 1},
		{"\r\nconst a = 1;", 2},
		{"\rconst a = 1;", 1},
		{"\u2028a", 3},
		{"\u2029a", 3},
		{"\u2027a", 0}, // та же ведущая пара байтов, но не разделитель
		{"\u00a0a", 0},
		{"a", 0},
		{"", 0},
	}
	for _, tt := range tests {
		c := cursorOn(tt.src)
		if got := c.LineTerminator(); got != tt.want {
			t.Fatalf("%q: LineTerminator() = %d, want %d", tt.src, got, tt.want)
		}
		if c.SkipLineTerminator() != (tt.want > 0) || c.Off != tt.want {
			t.Fatalf("%q: SkipLineTerminator moved to %d, want %d", tt.src, c.Off, tt.want)
		}
	}
}

func TestCursorCRAtEnd(t *testing.T) {
	c := cursorOn("x\r")
	c.Bump()
	if got := c.LineTerminator(); got != 1 {
		t.Fatalf("lone CR at EOF = %d, want 1", got)
	}
}

func TestCursorSkipLine(t *testing.T) {
	tests := []struct {
		src  string
		stop uint32
	}{
		{"// a comment\nx", 12},
		{"// crlf\r\nx", 7},
		{"// ls\u2028x", 5},
		{"// ps\u2029x", 5},
		{"// ünïcödé\nx", uint32(len("// ünïcödé"))},
		{"// to the end", 13},
	}
	for _, tt := range tests {
		c := cursorOn(tt.src)
		c.SkipLine()
		if c.Off != tt.stop {
			t.Fatalf("%q: SkipLine stopped at %d, want %d", tt.src, c.Off, tt.stop)
		}
	}
}

func TestCursorPeekAndEat(t *testing.T) {
	c := cursorOn("a?.b")
	if b0, b1, b2, ok := c.Peek3(); !ok || b0 != 'a' || b1 != '?' || b2 != '.' {
		t.Fatalf("Peek3 = %q %q %q %v", b0, b1, b2, ok)
	}
	if !c.Eat('a') || c.Eat('.') || !c.Eat('?') {
		t.Fatalf("Eat sequence wrong at %d", c.Off)
	}
	if b0, b1, ok := c.Peek2(); !ok || b0 != '.' || b1 != 'b' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	if _, _, _, ok := c.Peek3(); ok {
		t.Fatalf("Peek3 past the end succeeded")
	}
	c.Bump()
	c.Bump()
	if !c.EOF() || c.Peek() != 0 || c.Bump() != 0 || c.Eat('b') {
		t.Fatalf("cursor not at EOF: off %d", c.Off)
	}
}

func TestCursorRescanMarks(t *testing.T) {
	src := "x = a / b / g;"
	c := cursorOn(src)
	slash := token.Token{Kind: token.Slash, Span: source.Span{Start: 6, End: 7}}

	c.Off = 12
	c.Reset(MarkOf(slash))
	if c.Peek() != '/' {
		t.Fatalf("reset to the slash landed on %q", c.Peek())
	}
	start := c.Mark()
	for c.Bump() != 'b' {
	}
	sp := c.SpanFrom(start)
	if got := src[sp.Start:sp.End]; got != "/ b" {
		t.Fatalf("span text %q", got)
	}
}

func TestCursorSpanAcrossCRLF(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte("a;\r\nb;"))
	c := NewCursor(fs.Get(id))
	c.Off = 2
	m := c.Mark()
	c.SkipLineTerminator()
	c.Bump()
	start, end := fs.Resolve(c.SpanFrom(m))
	if start.Line != 1 || end.Line != 2 {
		t.Fatalf("span %+v..%+v, want lines 1..2", start, end)
	}
}
