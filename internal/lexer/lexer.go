package lexer

import (
	"strconv"

	"github.com/lukeapage/flow-to-ts/internal/source"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	buf    []token.Token  // буфер просмотра вперёд
	hold   []token.Trivia // накопленные leading trivia
	nl     bool           // перевод строки среди hold

	hashbang string
	errs     map[uint32]lexError
}

func New(file *source.File, opts Options) *Lexer {
	lx := &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
	lx.scanHashbang()
	return lx
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if len(lx.buf) > 0 {
		tok := lx.buf[0]
		lx.buf = lx.buf[1:]
		return tok
	}
	return lx.scan()
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	return lx.PeekN(0)
}

// PeekN returns the n-th token ahead (0-based) without consuming anything.
func (lx *Lexer) PeekN(n int) token.Token {
	for len(lx.buf) <= n {
		lx.buf = append(lx.buf, lx.scan())
	}
	return lx.buf[n]
}

// State is a lexer position for speculative parsing.
type State struct {
	off uint32
	buf []token.Token
}

// Save captures the lexer position. Tokens already buffered are kept.
func (lx *Lexer) Save() State {
	return State{off: lx.cursor.Off, buf: append([]token.Token(nil), lx.buf...)}
}

// Restore rewinds to a saved position.
func (lx *Lexer) Restore(st State) {
	lx.cursor.Off = st.off
	lx.buf = st.buf
	lx.hold = nil
	lx.nl = false
}

// Hashbang returns the "#!..." first line without its prefix, if any.
func (lx *Lexer) Hashbang() string {
	return lx.hashbang
}

func (lx *Lexer) scan() token.Token {
	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.hold, NewlineBefore: true}
		lx.hold, lx.nl = nil, false
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch == '$' || ch == '\\':
		tok = lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case ch == '#':
		tok = lx.scanPrivateName()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch, false)
	case ch == '`':
		tok = lx.scanTemplate(true)
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	tok.NewlineBefore = lx.nl
	lx.hold, lx.nl = nil, false
	return tok
}

// rewind drops lookahead and moves the cursor back to m. The trivia of the
// token being rescanned stays on that token.
func (lx *Lexer) rewind(m Mark) {
	lx.buf = lx.buf[:0]
	lx.hold, lx.nl = nil, false
	lx.cursor.Reset(m)
}

func (lx *Lexer) finish(prev token.Token, tok token.Token) token.Token {
	tok.Leading = prev.Leading
	tok.NewlineBefore = prev.NewlineBefore
	return tok
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) scanHashbang() {
	if b0, b1, ok := lx.cursor.Peek2(); !ok || b0 != '#' || b1 != '!' {
		return
	}
	start := lx.cursor.Mark()
	lx.cursor.SkipLine()
	sp := lx.cursor.SpanFrom(start)
	lx.hashbang = string(lx.file.Content[sp.Start+2 : sp.End])
}

func quoteText(s string) string {
	return strconv.Quote(s)
}
