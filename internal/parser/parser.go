package parser

import (
	"fmt"
	"slices"

	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/lexer"
	"github.com/lukeapage/flow-to-ts/internal/source"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

// Dialect selects the type syntax accepted by the parser.
type Dialect uint8

const (
	Flow Dialect = iota
	TypeScript
)

func (d Dialect) String() string {
	if d == TypeScript {
		return "typescript"
	}
	return "flow"
}

type Options struct {
	Dialect Dialect
	// Reporter receives the syntax error, if any. May be nil.
	Reporter diag.Reporter
}

// Parser - состояние парсера на один файл.
type Parser struct {
	lx   *lexer.Lexer
	file *source.File
	tree *ast.Tree
	opts Options

	tok        token.Token // текущий токен
	prevEnd    uint32      // конец последнего съеденного токена
	commentEnd uint32      // комментарии до этого смещения уже записаны
	ctx        ctxFlags
	labels     []string      // метки, видимые в текущей функции
	coverInits []source.Span // `{a = 1}` в литералах, ещё не ставших шаблоном
}

type ctxFlags uint16

const (
	ctxInFunction ctxFlags = 1 << iota
	ctxAsync
	ctxGenerator
	ctxNoIn           // `in` is not a binary operator (for-init)
	ctxNoAnonFnType   // `T => U` is not a function type (arrow return types)
	ctxCondConsequent // arrows with a return type must be followed by ':'
	ctxInDeclare      // inside `declare module` / `declare class`
	ctxInLoop
	ctxInSwitch
)

// bailout aborts parsing on the first syntax error.
type bailout struct{ err *diag.ParseError }

// ParseFile parses one file. The first syntax error aborts with
// *diag.ParseError; there is no recovery.
func ParseFile(file *source.File, opts Options) (tree *ast.Tree, err error) {
	p := &Parser{
		lx:   lexer.New(file, lexer.Options{}),
		file: file,
		tree: ast.NewTree(file),
		opts: opts,
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		b, ok := r.(bailout)
		if !ok {
			panic(r)
		}
		if opts.Reporter != nil {
			diag.Report(opts.Reporter, b.err.Code, b.err.Span, b.err.Msg).Emit()
		}
		tree, err = nil, b.err
	}()
	p.setTok(p.lx.Next())
	p.tree.Root = p.parseProgram()
	attachComments(p.tree)
	return p.tree, nil
}

func (p *Parser) parseProgram() ast.NodeID {
	var body []ast.NodeID
	body = p.parseDirectives(body)
	for !p.at(token.EOF) {
		body = append(body, p.parseStatement())
	}
	// комментарии в конце файла висят на EOF
	p.next()
	id := p.tree.NewList(ast.Program, source.Span{File: p.file.ID, Start: 0, End: uint32(len(p.file.Content))}, body)
	p.tree.Node(id).Text = p.lx.Hashbang()
	return id
}

// --- tokens ---

func (p *Parser) setTok(t token.Token) {
	p.tok = t
	for _, tr := range t.Leading {
		if tr.Span.Start < p.commentEnd {
			continue
		}
		kind := ast.LineComment
		if tr.Kind == token.TriviaBlockComment {
			kind = ast.BlockComment
		}
		end := tr.Span.End
		if end > tr.Span.Start {
			end--
		}
		p.tree.AddComment(ast.Comment{
			Kind:      kind,
			Text:      tr.Text,
			Span:      tr.Span,
			StartLine: p.file.Line(tr.Span.Start),
			EndLine:   p.file.Line(end),
		})
		p.commentEnd = tr.Span.End
	}
}

// next съедает текущий токен.
func (p *Parser) next() token.Token {
	t := p.tok
	if t.Kind == token.Invalid {
		p.failInvalid(t)
	}
	if t.Kind != token.EOF {
		p.prevEnd = t.Span.End
	}
	p.setTok(p.lx.Next())
	return t
}

func (p *Parser) peek() token.Token         { return p.lx.Peek() }
func (p *Parser) peekN(n int) token.Token   { return p.lx.PeekN(n) }
func (p *Parser) at(k token.Kind) bool      { return p.tok.Kind == k }
func (p *Parser) atWord(word string) bool   { return p.tok.IsWord(word) }
func (p *Parser) atAny(ks ...token.Kind) bool { return p.tok.Is(ks...) }

func (p *Parser) eat(k token.Kind) bool {
	if p.tok.Kind == k {
		p.next()
		return true
	}
	return false
}

func (p *Parser) eatWord(word string) bool {
	if p.tok.IsWord(word) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Kind) token.Token {
	if p.tok.Kind != k {
		p.unexpected("expected " + quoteKind(k))
	}
	return p.next()
}

func (p *Parser) expectWord(word string) {
	if !p.eatWord(word) {
		p.unexpected("expected '" + word + "'")
	}
}

// semicolon applies automatic semicolon insertion.
func (p *Parser) semicolon() {
	if p.eat(token.Semicolon) {
		return
	}
	if p.at(token.RBrace) || p.at(token.EOF) || p.tok.NewlineBefore {
		return
	}
	p.failAt(p.tok.Span, diag.SynExpectSemicolon, fmt.Sprintf("missing semicolon before %s", describe(p.tok)))
}

// canInsertSemicolon reports whether a statement may end before the current token.
func (p *Parser) canInsertSemicolon() bool {
	return p.at(token.Semicolon) || p.at(token.RBrace) || p.at(token.EOF) || p.tok.NewlineBefore
}

// --- nodes ---

func (p *Parser) spanFrom(start uint32) source.Span {
	end := p.prevEnd
	if end < start {
		end = start
	}
	return source.Span{File: p.file.ID, Start: start, End: end}
}

func (p *Parser) finish(kind ast.Kind, start uint32, kids ...ast.NodeID) ast.NodeID {
	return p.tree.New(kind, p.spanFrom(start), kids...)
}

func (p *Parser) finishText(kind ast.Kind, start uint32, text string, kids ...ast.NodeID) ast.NodeID {
	return p.tree.NewText(kind, p.spanFrom(start), text, kids...)
}

func (p *Parser) finishList(kind ast.Kind, start uint32, list []ast.NodeID, kids ...ast.NodeID) ast.NodeID {
	return p.tree.NewList(kind, p.spanFrom(start), list, kids...)
}

func (p *Parser) node(id ast.NodeID) *ast.Node { return p.tree.Node(id) }

func (p *Parser) setFlag(id ast.NodeID, f ast.Flags) {
	if n := p.tree.Node(id); n != nil {
		n.Flags |= f
	}
}

func (p *Parser) start(id ast.NodeID) uint32 { return p.tree.Span(id).Start }

// extend widens the span of id to the last consumed token.
func (p *Parser) extend(id ast.NodeID) {
	if n := p.tree.Node(id); n != nil && p.prevEnd > n.Span.End {
		n.Span.End = p.prevEnd
	}
}

// ident parses an identifier reference or binding name.
func (p *Parser) ident() ast.NodeID {
	if !p.at(token.Ident) {
		p.unexpected("expected identifier")
	}
	t := p.next()
	return p.tree.NewText(ast.Identifier, t.Span, t.Text)
}

// name parses an identifier where reserved words are allowed (property names).
func (p *Parser) name() ast.NodeID {
	if !p.tok.IsName() {
		p.unexpected("expected name")
	}
	t := p.next()
	return p.tree.NewText(ast.Identifier, t.Span, t.Text)
}

// --- speculation ---

type snapshot struct {
	lex        lexer.State
	tok        token.Token
	prevEnd    uint32
	commentEnd uint32
	mark       ast.Mark
	ctx        ctxFlags
	coverInits []source.Span
}

func (p *Parser) save() snapshot {
	return snapshot{
		lex:        p.lx.Save(),
		tok:        p.tok,
		prevEnd:    p.prevEnd,
		commentEnd: p.commentEnd,
		mark:       p.tree.Mark(),
		ctx:        p.ctx,
		coverInits: slices.Clone(p.coverInits),
	}
}

func (p *Parser) restore(s snapshot) {
	p.lx.Restore(s.lex)
	p.tok = s.tok
	p.prevEnd = s.prevEnd
	p.commentEnd = s.commentEnd
	p.tree.Reset(s.mark)
	p.ctx = s.ctx
	p.coverInits = s.coverInits
}

// try runs fn speculatively. On a syntax error everything fn consumed or
// allocated is rolled back and ok is false.
func (p *Parser) try(fn func() ast.NodeID) (id ast.NodeID, ok bool) {
	s := p.save()
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, isBail := r.(bailout); !isBail {
			panic(r)
		}
		p.restore(s)
		id, ok = ast.NoNodeID, false
	}()
	return fn(), true
}

// --- context ---

func (p *Parser) has(f ctxFlags) bool { return p.ctx&f != 0 }

// with runs fn with clear dropped and then set added; the previous flags
// are restored afterwards.
func (p *Parser) with(set, clear ctxFlags, fn func()) {
	saved := p.ctx
	p.ctx = p.ctx&^clear | set
	defer func() { p.ctx = saved }()
	fn()
}

func (p *Parser) flow() bool { return p.opts.Dialect == Flow }
func (p *Parser) ts() bool   { return p.opts.Dialect == TypeScript }
