package parser

import (
	"fmt"
	"strings"

	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/source"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

const diagBadTarget = diag.SynBadAssignTarget

func (p *Parser) failAt(sp source.Span, code diag.Code, msg string) {
	panic(bailout{err: &diag.ParseError{
		Path: p.file.Path,
		Span: sp,
		Pos:  p.file.LineCol(sp.Start),
		Code: code,
		Msg:  msg,
	}})
}

func (p *Parser) failInvalid(t token.Token) {
	code, msg := p.lx.InvalidReason(t)
	p.failAt(t.Span, code, msg)
}

// unexpected fails on the current token. hint is appended to the message.
func (p *Parser) unexpected(hint string) {
	if p.tok.Kind == token.Invalid {
		p.failInvalid(p.tok)
	}
	msg := "unexpected " + describe(p.tok)
	if hint != "" {
		msg += ", " + hint
	}
	p.failAt(p.tok.Span, diag.SynUnexpectedToken, msg)
}

func (p *Parser) notInDialect(what string) {
	p.failAt(p.tok.Span, diag.SynNotInDialect, fmt.Sprintf("%s is not %s syntax", what, p.opts.Dialect))
}

func describe(t token.Token) string {
	switch t.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return "identifier '" + t.Text + "'"
	case token.String, token.Number, token.BigInt:
		return "literal " + t.Text
	case token.NoSubstTemplate, token.TemplateHead:
		return "template literal"
	case token.JSXText:
		return "JSX text"
	}
	if t.Kind.IsKeyword() {
		return "keyword '" + t.Text + "'"
	}
	return "token '" + strings.TrimSpace(t.Kind.String()) + "'"
}

func quoteKind(k token.Kind) string {
	return "'" + k.String() + "'"
}
