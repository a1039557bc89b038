// Package convert runs one Flow file through the whole pipeline:
//
//	parse -> scan -> transform -> generate -> normalize -> [format]
//
// A call is synchronous and owns everything it builds; independent calls
// may run in parallel.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/lukeapage/flow-to-ts/internal/annot"
	"github.com/lukeapage/flow-to-ts/internal/ast"
	"github.com/lukeapage/flow-to-ts/internal/codegen"
	"github.com/lukeapage/flow-to-ts/internal/config"
	"github.com/lukeapage/flow-to-ts/internal/format"
	"github.com/lukeapage/flow-to-ts/internal/observ"
	"github.com/lukeapage/flow-to-ts/internal/parser"
	"github.com/lukeapage/flow-to-ts/internal/source"
	"github.com/lukeapage/flow-to-ts/internal/trace"
	"github.com/lukeapage/flow-to-ts/internal/transform"
)

// Options of one conversion. The zero value converts every file with the
// defaults and no reformatting.
type Options struct {
	// SkipNonFlow returns a skip result for files without an @flow comment.
	SkipNonFlow bool
	// Debug dumps the rewritten tree as JSON to DebugOut before generation.
	Debug    bool
	DebugOut io.Writer
	// InlineUtilityTypes expands $Diff and friends instead of importing them
	// from utility-types.
	InlineUtilityTypes bool
	// Format, when set, reformats the output with the resolved style.
	Format *config.FormatRequest

	// Path names the file in errors. May be empty.
	Path string
	// Timer, when set, records the duration of every phase.
	Timer *observ.Timer
}

// Result of a conversion.
type Result struct {
	// Code is the TypeScript text; empty when Skip is set.
	Code string
	// Skip is set when SkipNonFlow was requested and the file has no
	// @flow comment.
	Skip bool
	// Eligible reports an @flow comment in the file.
	Eligible bool
	// HasJSX reports JSX in the file; such output belongs in a .tsx file.
	HasJSX bool
}

// Convert translates Flow source to TypeScript. A ParseError,
// UnsupportedError or ConfigError from package diag aborts the call with no
// partial output. A tracer in ctx receives one span per phase.
func Convert(ctx context.Context, src []byte, opts *Options) (Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	r := &run{
		opts:   opts,
		tracer: trace.FromContext(ctx),
		parent: trace.ParentSpan(ctx),
	}
	return r.convert(src)
}

// run holds the state of one conversion.
type run struct {
	opts   *Options
	tracer trace.Tracer
	parent uint64
}

// phase brackets fn with a trace span and a timer entry.
func (r *run) phase(name string, fn func() (string, error)) error {
	span := trace.Begin(r.tracer, trace.ScopePhase, name, r.parent)
	idx := r.opts.Timer.Begin(name)
	note, err := fn()
	if err != nil {
		note = "failed"
	}
	r.opts.Timer.End(idx, note)
	span.End(note)
	return err
}

func (r *run) convert(src []byte) (Result, error) {
	path := r.opts.Path
	if path == "" {
		path = "input.js"
	}

	var (
		file *source.File
		tree *ast.Tree
	)
	err := r.phase("parse", func() (string, error) {
		fs := source.NewFileSet()
		file = fs.Get(fs.AddVirtual(path, src))
		if file == nil {
			return "", errors.New("convert: cannot register source")
		}
		var err error
		tree, err = parser.ParseFile(file, parser.Options{Dialect: parser.Flow})
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(uint64(tree.NodeCount()), 10) + " nodes", nil
	})
	if err != nil {
		return Result{}, err
	}

	var scan annot.Result
	_ = r.phase("scan", func() (string, error) {
		scan = annot.Scan(tree)
		return "eligible=" + strconv.FormatBool(scan.Eligible), nil
	})
	res := Result{Eligible: scan.Eligible}
	if r.opts.SkipNonFlow && !scan.Eligible {
		res.Skip = true
		return res, nil
	}
	res.HasJSX = hasJSX(tree)

	err = r.phase("transform", func() (string, error) {
		state := transform.NewState(tree, path, scan.Index, transform.Options{
			InlineUtilityTypes: r.opts.InlineUtilityTypes,
		})
		if err := transform.Run(state); err != nil {
			return "", err
		}
		return strconv.Itoa(len(state.UsedUtilityTypes)) + " utility types", nil
	})
	if err != nil {
		return Result{}, err
	}

	if r.opts.Debug {
		w := r.opts.DebugOut
		if w == nil {
			w = os.Stderr
		}
		if err := tree.Dump(w, tree.Root); err != nil {
			return Result{}, fmt.Errorf("convert: debug dump: %w", err)
		}
	}

	var code string
	err = r.phase("generate", func() (string, error) {
		opts := codegen.GeneratorOptions()
		opts.JSX = res.HasJSX
		var err error
		code, err = codegen.Generate(tree, opts)
		return "", err
	})
	if err != nil {
		return Result{}, err
	}

	_ = r.phase("normalize", func() (string, error) {
		code = normalize(code, trailingNewlines(file.Content))
		return "", nil
	})

	if r.opts.Format == nil {
		res.Code = code
		return res, nil
	}
	err = r.phase("format", func() (string, error) {
		style, err := config.ResolveStyle(r.opts.Format)
		if err != nil {
			return "", err
		}
		code, err = format.Format(code, format.Options{Style: style, JSX: res.HasJSX, Path: r.opts.Path})
		return "", err
	})
	if err != nil {
		return Result{}, err
	}
	res.Code = code
	return res, nil
}

func hasJSX(t *ast.Tree) bool {
	return t.Find(t.Root, func(_ ast.NodeID, n *ast.Node) bool {
		return n.Kind == ast.JSXElement || n.Kind == ast.JSXFragment
	}).IsValid()
}
