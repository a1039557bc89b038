package lexer

import (
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/source"
	"github.com/lukeapage/flow-to-ts/internal/token"
)

type Options struct {
	// Reporter receives lexical errors once the parser consumes the
	// offending token. May be nil.
	Reporter diag.Reporter
}

// lexError is a deferred lexical error. Tokens may be scanned speculatively
// and thrown away, so errors are only reported for tokens the parser accepts.
type lexError struct {
	code diag.Code
	msg  string
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.errs == nil {
		lx.errs = make(map[uint32]lexError)
	}
	lx.errs[sp.Start] = lexError{code: code, msg: msg}
}

// InvalidReason returns the deferred error recorded for an Invalid token.
func (lx *Lexer) InvalidReason(tok token.Token) (diag.Code, string) {
	e, ok := lx.errs[tok.Span.Start]
	if !ok {
		e = lexError{code: diag.LexUnknownChar, msg: "unexpected character " + quoteText(tok.Text)}
	}
	return e.code, e.msg
}

// ReportInvalid reports the error recorded for an Invalid token and returns
// its message.
func (lx *Lexer) ReportInvalid(tok token.Token) string {
	code, msg := lx.InvalidReason(tok)
	if lx.opts.Reporter != nil {
		diag.Report(lx.opts.Reporter, code, tok.Span, msg).Emit()
	}
	return msg
}
