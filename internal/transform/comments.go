package transform

import (
	"strings"

	"github.com/lukeapage/flow-to-ts/internal/ast"
)

var pragmas = []string{"@flow", "@noflow"}

// suppressions are the Flow error suppression markers; each one becomes
// `@ts-expect-error`.
var suppressions = []string{"$FlowFixMe", "$FlowIssue", "$FlowExpectedError", "$FlowIgnore"}

const tsSuppression = "@ts-expect-error"

// rewriteComments drops Flow pragmas and rewrites suppression comments.
func rewriteComments(t *ast.Tree) {
	for _, id := range t.Comments() {
		c := t.Comment(id)
		if c.Removed {
			continue
		}
		if isPragma(strings.TrimSpace(c.Text)) {
			t.RemoveComment(id)
			continue
		}
		if c.Kind == ast.BlockComment && strings.Contains(c.Text, "\n") {
			if text, changed := stripPragmaLines(c.Text); changed {
				if strings.TrimSpace(strings.Trim(text, "*\n\t ")) == "" {
					t.RemoveComment(id)
					continue
				}
				c.Text = text
			}
		}
		c.Text = rewriteSuppression(c.Text)
	}
}

func isPragma(text string) bool {
	for _, p := range pragmas {
		if text == p || strings.HasPrefix(text, p+" ") {
			return true
		}
	}
	return false
}

// stripPragmaLines removes docblock lines that hold only a pragma, e.g.
//
//	/**
//	 * @flow
//	 */
func stripPragmaLines(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	changed := false
	for _, line := range lines {
		clean := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "*"))
		if isPragma(clean) {
			changed = true
			continue
		}
		kept = append(kept, line)
	}
	if !changed {
		return text, false
	}
	return strings.Join(kept, "\n"), true
}

// rewriteSuppression turns `$FlowFixMe[code] reason` into
// `@ts-expect-error reason`; the error code has no TypeScript meaning.
func rewriteSuppression(text string) string {
	body := strings.TrimLeft(text, " \t")
	indent := text[:len(text)-len(body)]
	for _, s := range suppressions {
		if !strings.HasPrefix(body, s) {
			continue
		}
		rest := body[len(s):]
		if strings.HasPrefix(rest, "[") {
			if end := strings.IndexByte(rest, ']'); end >= 0 {
				rest = rest[end+1:]
			}
		}
		// $FlowFixMeX is a different word
		if rest != "" && !startsWithSpace(rest) {
			return text
		}
		return indent + tsSuppression + rest
	}
	return text
}

func startsWithSpace(s string) bool {
	switch s[0] {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
