package codegen

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lukeapage/flow-to-ts/internal/ast"
)

var (
	escapeOrQuote = regexp.MustCompile(`(?s)\\(.)|(["'])`)
	expSign       = regexp.MustCompile(`^([+-]?[\d.]+e)(?:\+|(-))?0*(\d)`)
	expZero       = regexp.MustCompile(`^([+-]?[\d.]+)e[+-]?0+$`)
	leadingDot    = regexp.MustCompile(`^([+-])?\.`)
)

// str prints a string literal from its raw source text.
func (p *printer) str(raw string) string {
	if !p.opts.Normalize || len(raw) < 2 {
		return raw
	}
	return makeString(raw[1:len(raw)-1], p.preferredQuote())
}

func (p *printer) preferredQuote() byte {
	if p.opts.Style.SingleQuote {
		return '\''
	}
	return '"'
}

// directive keeps the raw text of "use strict" style prologue entries; only
// quote-free ones switch to the preferred quote.
func (p *printer) directive(expr ast.NodeID) Doc {
	raw := p.tree.Text(expr)
	if p.opts.Normalize && len(raw) >= 2 {
		content := raw[1 : len(raw)-1]
		if !strings.ContainsAny(content, `"'`) {
			q := string(p.preferredQuote())
			raw = q + content + q
		}
	}
	return p.decorate(expr, Text(raw))
}

// makeString re-quotes content with the preferred quote unless the other
// one needs fewer escapes.
func makeString(content string, preferred byte) string {
	alternate := byte('"')
	if preferred == '"' {
		alternate = '\''
	}
	enclosing := preferred
	if strings.Count(content, string(preferred)) > strings.Count(content, string(alternate)) {
		enclosing = alternate
	}
	other := string(alternate)
	if enclosing == alternate {
		other = string(preferred)
	}
	body := escapeOrQuote.ReplaceAllStringFunc(content, func(m string) string {
		if m[0] == '\\' {
			if m[1:] == other {
				return other
			}
			return m
		}
		if m[0] == enclosing {
			return `\` + m
		}
		return m
	})
	return string(enclosing) + body + string(enclosing)
}

// number normalizes a numeric literal the way formatters commonly do:
// lower case, no exponent plus sign, no redundant zeros.
func (p *printer) number(raw string) string {
	if !p.opts.Normalize {
		return raw
	}
	return normalizeNumber(raw)
}

func normalizeNumber(raw string) string {
	s := strings.ToLower(raw)
	if len(s) > 1 && s[0] == '0' && strings.ContainsRune("box", rune(s[1])) {
		return s
	}
	s = expSign.ReplaceAllString(s, "$1$2$3")
	s = expZero.ReplaceAllString(s, "$1")
	s = leadingDot.ReplaceAllString(s, "${1}0.")

	mant, exp := s, ""
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		mant, exp = s[:i], s[i:]
	}
	if dot := strings.IndexByte(mant, '.'); dot >= 0 {
		frac := mant[dot+1:]
		if len(frac) >= 2 && strings.HasSuffix(frac, "0") {
			trimmed := strings.TrimRight(frac, "0")
			if trimmed == "" {
				trimmed = "0"
			}
			frac = trimmed
		}
		if frac == "" {
			mant = mant[:dot]
		} else {
			mant = mant[:dot+1] + frac
		}
	}
	return mant + exp
}

func (p *printer) bigint(raw string) string {
	if !p.opts.Normalize {
		return raw
	}
	return strings.ToLower(raw)
}

// unquotedKey returns the bare name for a quoted member key. Keys are only
// unquoted when every quoted key of the same container can be.
func (p *printer) unquotedKey(key ast.NodeID) (string, bool) {
	name, ok := keyName(p.tree.Text(key))
	if !ok {
		return "", false
	}
	container := p.tree.Node(p.grandparent())
	if container == nil {
		return "", false
	}
	for _, m := range container.List {
		mn := p.tree.Node(m)
		if mn == nil || mn.Has(ast.FlagComputed) || mn.Kind == ast.SpreadElement {
			continue
		}
		k := mn.Kid(0)
		if p.kind(k) != ast.StringLiteral {
			continue
		}
		if _, ok := keyName(p.tree.Text(k)); !ok {
			return "", false
		}
	}
	return name, true
}

// keyName reports whether a quoted key is a plain identifier.
func keyName(raw string) (string, bool) {
	if len(raw) < 3 {
		return "", false
	}
	name := raw[1 : len(raw)-1]
	for i, r := range name {
		switch {
		case r == '$' || r == '_':
		case unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return "", false
		}
		if r == utf8.RuneError {
			return "", false
		}
	}
	return name, true
}
