package annot_test

import (
	"slices"
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/annot"
	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/parser"
	"github.com/lukeapage/flow-to-ts/internal/source"
)

func scan(t *testing.T, src string) (*ast.Tree, annot.Result) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.js", []byte(src)))
	tree, err := parser.ParseFile(file, parser.Options{Dialect: parser.Flow})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return tree, annot.Scan(tree)
}

func TestEligibility(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want bool
	}{
		{"line marker", "// @flow\nconst a = 1;", true},
		{"block marker", "/* @flow */\nconst a = 1;", true},
		{"padded", "//    @flow   \nconst a = 1;", true},
		{"marker later in file", "const a = 1;\n// note\n// @flow\n", true},
		{"no comments", "const a = 1;", false},
		{"strict variant", "// @flow strict\nconst a = 1;", false},
		{"docblock", "/**\n * @flow\n */\nconst a = 1;", false},
		{"case sensitive", "// @Flow\nconst a = 1;", false},
		{"noflow", "// @noflow\nconst a = 1;", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, res := scan(t, tc.src)
			if res.Eligible != tc.want {
				t.Fatalf("Eligible = %v, want %v", res.Eligible, tc.want)
			}
		})
	}
}

func TestIndexCoversEveryComment(t *testing.T) {
	tree, res := scan(t, "// @flow\nconst a = 1; // one\n/* two\n   lines */\nconst b = 2;\n// tail")
	if n := tree.CommentCount(); n != 4 {
		t.Fatalf("comment count = %d, want 4", n)
	}
	starts := []uint32{1, 2, 3, 6}
	ends := []uint32{1, 2, 4, 6}
	for _, l := range starts {
		if _, ok := res.Index.StartLine[l]; !ok {
			t.Fatalf("no comment indexed at start line %d", l)
		}
	}
	for _, l := range ends {
		if _, ok := res.Index.EndLine[l]; !ok {
			t.Fatalf("no comment indexed at end line %d", l)
		}
	}
	block := res.Index.StartLine[3]
	if res.Index.EndLine[4] != block {
		t.Fatalf("block comment not indexed under its end line")
	}
}

// Two comments on one line: the later one owns the entry.
func TestSharedLineLastWriteWins(t *testing.T) {
	tree, res := scan(t, "// @flow\nconst a /* first */ = 1; /* second */\n")
	first, second := tree.Comments()[1], tree.Comments()[2]
	if tree.Comment(first).Text != " first " || tree.Comment(second).Text != " second " {
		t.Fatalf("unexpected comment order")
	}
	if got := res.Index.StartLine[2]; got != second {
		t.Fatalf("StartLine[2] = %d, want %d", got, second)
	}
	if got := res.Index.EndLine[2]; got != second {
		t.Fatalf("EndLine[2] = %d, want %d", got, second)
	}
	if !res.Eligible {
		t.Fatalf("marker missed")
	}
}

func TestLookup(t *testing.T) {
	tree, res := scan(t, "/* a\n*/ /* b\n*/\nx;")
	a, b := tree.Comments()[0], tree.Comments()[1]
	// строка 2: конец первого блока и начало второго
	if got := res.Index.Lookup(2); !slices.Equal(got, []ast.CommentID{b, a}) {
		t.Fatalf("Lookup(2) = %v, want [%d %d]", got, b, a)
	}
	if got := res.Index.Lookup(4); got != nil {
		t.Fatalf("Lookup(4) = %v, want none", got)
	}
	if res.Index.Lookup(0) != nil {
		t.Fatalf("line 0 must never match")
	}
}
