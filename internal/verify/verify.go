// Package verify re-reads produced TypeScript with an independent grammar
// (tree-sitter typescript/tsx) and reports the first syntax error. It is
// the check behind `flow2ts convert --verify`.
package verify

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/source"
)

// Error reports output the grammar rejects. Span and Pos point into the
// produced code, not the Flow input.
type Error struct {
	Path    string
	Span    source.Span
	Pos     source.LineCol
	Missing bool   // the grammar expected a token that is absent
	Node    string // tree-sitter node type at the error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: generated TypeScript does not parse: %s",
		source.Position{Path: e.Path, LineCol: e.Pos}, e.describe())
}

func (e *Error) describe() string {
	if e.Missing {
		return "missing " + e.Node
	}
	return "unexpected syntax"
}

func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.VerifyBadOutput, e.Span, e.describe())
}

func language(tsxGrammar bool) *sitter.Language {
	if tsxGrammar {
		return tsx.GetLanguage()
	}
	return typescript.GetLanguage()
}

// Check parses code with the TypeScript grammar, or the TSX grammar when
// tsxGrammar is set, and returns *Error for the first error node.
func Check(ctx context.Context, code []byte, path string, tsxGrammar bool) error {
	// новый парсер на каждый вызов: sitter.Parser не потокобезопасен
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(language(tsxGrammar))

	tree, err := parser.ParseCtx(ctx, nil, code)
	if err != nil {
		return fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || !root.HasError() {
		return nil
	}
	bad := firstError(root)
	if bad == nil {
		bad = root
	}
	pt := bad.StartPoint()
	return &Error{
		Path:    path,
		Span:    source.Span{Start: bad.StartByte(), End: bad.EndByte()},
		Pos:     source.LineCol{Line: pt.Row + 1, Col: pt.Column + 1},
		Missing: bad.IsMissing(),
		Node:    bad.Type(),
	}
}

// firstError finds the leftmost ERROR or MISSING node, descending only into
// subtrees that contain one.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstError(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}
