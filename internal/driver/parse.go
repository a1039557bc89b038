package driver

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/parser"
	"github.com/lukeapage/flow-to-ts/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *ast.Tree // nil when the file has a syntax error
	Bag     *diag.Bag
}

// Parse reads and parses one file. A syntax error lands in Bag; only I/O
// failures are returned as errors.
func Parse(filePath string, dialect parser.Dialect) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(1)
	tree, err := parser.ParseFile(file, parser.Options{
		Dialect:  dialect,
		Reporter: diag.BagReporter{Bag: bag},
	})
	if err != nil && bag.Len() == 0 {
		if d, ok := diag.AsDiagnostic(err); ok {
			bag.Add(d)
		}
	}
	if err != nil {
		tree = nil
	}

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tree:    tree,
		Bag:     bag,
	}, nil
}
