package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/lukeapage/flow-to-ts/internal/source"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// Cursor walks the bytes of one source file. It knows the four JavaScript
// line terminators: LF, CR (CRLF counts as one), LS U+2028 and PS U+2029.
type Cursor struct {
	File *source.File
	Off  uint32
	end  uint32
}

func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file %s is too large: %w", f.Path, err))
	}
	return Cursor{File: f, end: end}
}

func (c *Cursor) EOF() bool { return c.Off >= c.end }

// Peek returns the current byte, 0 at the end.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.end {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// Peek3 backs the three-byte operators (`...`, `>>>`, `?.` before a digit).
func (c *Cursor) Peek3() (b0, b1, b2 byte, ok bool) {
	if c.Off+2 >= c.end {
		return 0, 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], c.File.Content[c.Off+2], true
}

func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// LineTerminator returns the byte length of the line terminator at the
// cursor, or 0. CRLF is 2; LS and PS are 3 (UTF-8).
func (c *Cursor) LineTerminator() uint32 {
	if c.EOF() {
		return 0
	}
	switch c.File.Content[c.Off] {
	case '\n':
		return 1
	case '\r':
		if c.Off+1 < c.end && c.File.Content[c.Off+1] == '\n' {
			return 2
		}
		return 1
	case 0xE2:
		// U+2028 = E2 80 A8, U+2029 = E2 80 A9
		if b0, b1, b2, ok := c.Peek3(); ok && b0 == 0xE2 && b1 == 0x80 && (b2 == 0xA8 || b2 == 0xA9) {
			return 3
		}
	}
	return 0
}

func (c *Cursor) AtLineTerminator() bool { return c.LineTerminator() > 0 }

// SkipLineTerminator consumes one whole line terminator.
func (c *Cursor) SkipLineTerminator() bool {
	n := c.LineTerminator()
	c.Off += n
	return n > 0
}

// SkipLine moves to the next line terminator without consuming it.
// Line comments, the hashbang and unterminated regexes end there.
func (c *Cursor) SkipLine() {
	for !c.EOF() && !c.AtLineTerminator() {
		c.Off++
	}
}

// Mark is a byte offset the lexer can come back to: the start of the token
// being scanned, or the token the parser asks to rescan as a regex, a
// template continuation or JSX.
type Mark uint32

// MarkOf marks the first byte of tok.
func MarkOf(tok token.Token) Mark { return Mark(tok.Span.Start) }

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }
