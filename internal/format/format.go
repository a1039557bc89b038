package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/codegen"
	"github.com/lukeapage/flow-to-ts/internal/config"
	"github.com/lukeapage/flow-to-ts/internal/parser"
	"github.com/lukeapage/flow-to-ts/internal/source"
)

// Options of one reformat.
type Options struct {
	Style config.Style
	// JSX marks .tsx output.
	JSX bool
	// Path names the file in errors. May be empty.
	Path string
}

// Format reparses code as TypeScript and prints it in opts.Style with
// literal normalization. The result has no trailing newline.
func Format(code string, opts Options) (string, error) {
	tree, err := parseTS(code, opts.Path)
	if err != nil {
		return "", fmt.Errorf("format: generated code does not reparse: %w", err)
	}
	out, err := codegen.Generate(tree, codegen.Options{Style: opts.Style, Normalize: true, JSX: opts.JSX})
	if err != nil {
		return "", fmt.Errorf("format: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}

// CheckRoundTrip reparses formatted output and compares its top-level
// statement kinds with the unformatted code. Formatting may move text, it
// must not change what the statements are.
func CheckRoundTrip(code, formatted, path string) error {
	before, err := parseTS(code, path)
	if err != nil {
		return fmt.Errorf("round-trip: initial parse: %w", err)
	}
	after, err := parseTS(formatted, path)
	if err != nil {
		return fmt.Errorf("round-trip: reparse: %w", err)
	}
	a, b := topKinds(before), topKinds(after)
	if len(a) != len(b) {
		return fmt.Errorf("round-trip: %d top-level statements became %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return fmt.Errorf("round-trip: statement %d changed from %v to %v", i+1, a[i], b[i])
		}
	}
	return nil
}

func parseTS(code, path string) (*ast.Tree, error) {
	if path == "" {
		path = "output.ts"
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(path, []byte(code)))
	if file == nil {
		return nil, errors.New("cannot register source")
	}
	return parser.ParseFile(file, parser.Options{Dialect: parser.TypeScript})
}

func topKinds(t *ast.Tree) []ast.Kind {
	root := t.Node(t.Root)
	if root == nil {
		return nil
	}
	kinds := make([]ast.Kind, 0, len(root.List))
	for _, id := range root.List {
		kinds = append(kinds, t.Kind(id))
	}
	return kinds
}
