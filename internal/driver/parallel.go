package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lukeapage/flow-to-ts/internal/config"
	"github.com/lukeapage/flow-to-ts/internal/convert"
	"github.com/lukeapage/flow-to-ts/internal/observ"
	"github.com/lukeapage/flow-to-ts/internal/trace"
	"github.com/lukeapage/flow-to-ts/internal/verify"
)

// Options of a batch run.
type Options struct {
	// Convert is the template for every file; Path and Timer are set per file.
	Convert convert.Options
	Jobs    int
	// Stdout, when set, receives the converted code in input order instead
	// of .ts files being written.
	Stdout       io.Writer
	DeleteSource bool
	Cache        *DiskCache
	// Verify re-parses every output with tree-sitter before it is written.
	Verify   bool
	Progress ProgressSink
	// Timings sums the phase timers of successful files into Summary.Totals.
	Timings bool
}

// FileResult is the outcome of one file. Exactly one of Err or Result is
// meaningful.
type FileResult struct {
	Path   string
	Output string // written file; empty for stdout mode, skips and failures
	Src    []byte
	Result convert.Result
	Err    error
	Cached bool
	Timing observ.Report
}

// Summary of a batch.
type Summary struct {
	Files  []FileResult // in input order
	Totals *observ.Totals
}

// Counts splits the files by outcome. Cached files count as converted too.
func (s *Summary) Counts() (converted, skipped, failed, cached int) {
	for i := range s.Files {
		f := &s.Files[i]
		switch {
		case f.Err != nil:
			failed++
		case f.Result.Skip:
			skipped++
		default:
			converted++
		}
		if f.Cached {
			cached++
		}
	}
	return
}

// Failed reports whether any file failed.
func (s *Summary) Failed() bool {
	_, _, failed, _ := s.Counts()
	return failed > 0
}

// ConvertPaths collects files under paths and converts them.
func ConvertPaths(ctx context.Context, paths []string, m *config.Manifest, opts Options) (*Summary, error) {
	files, err := CollectFiles(paths, m)
	if err != nil {
		return nil, err
	}
	return ConvertFiles(ctx, files, opts)
}

// ConvertFiles converts files in parallel. A failing file is recorded in
// its FileResult and never stops the others; the returned error is only
// set when ctx is cancelled or stdout cannot be written.
func ConvertFiles(ctx context.Context, files []string, opts Options) (*Summary, error) {
	sum := &Summary{Files: make([]FileResult, len(files)), Totals: &observ.Totals{}}
	if len(files) == 0 {
		return sum, nil
	}
	for _, f := range files {
		emit(opts.Progress, Event{File: f, Stage: StageRead, Status: StatusQueued})
	}

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	batch := trace.Begin(tracer, trace.ScopeBatch, "convert", trace.ParentSpan(ctx))
	batch.WithExtra("files", fmt.Sprint(len(files)))
	gctx := trace.WithSpan(ctx, batch)

	g, gctx := errgroup.WithContext(gctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			// индекс i уникален для горутины, мьютекс не нужен
			sum.Files[i] = convertOne(gctx, path, &opts)
			if opts.Timings && sum.Files[i].Err == nil {
				sum.Totals.Add(sum.Files[i].Timing)
			}
			return nil
		})
	}
	err := g.Wait()
	batch.End("")
	if err != nil {
		return sum, err
	}

	if opts.Stdout != nil {
		if err := writeStdout(opts.Stdout, sum.Files); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

func convertOne(ctx context.Context, path string, opts *Options) FileResult {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, path, trace.ParentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)

	res := FileResult{Path: path}
	fail := func(stage Stage, err error) FileResult {
		res.Err = err
		trace.Fail(tracer, path, err)
		span.WithExtra("failed", "true").End(stage.String())
		emit(opts.Progress, Event{File: path, Stage: stage, Status: StatusError, Err: err})
		return res
	}
	start := time.Now()

	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	src, err := os.ReadFile(path) // #nosec G304 -- path comes from the user
	if err != nil {
		return fail(StageRead, err)
	}
	res.Src = src

	copts := opts.Convert
	copts.Path = path
	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
		copts.Timer = timer
	}

	emit(opts.Progress, Event{File: path, Stage: StageConvert, Status: StatusWorking})
	var key Digest
	hit := false
	if opts.Cache != nil {
		if key, err = CacheKey(src, &copts); err != nil {
			return fail(StageConvert, err)
		}
		res.Result, hit, err = opts.Cache.Get(key)
		if err != nil {
			// битый файл кэша не должен ронять конвертацию
			trace.Point(tracer, trace.ScopeFile, "cache", err.Error(), span.ID())
			hit = false
		}
	}
	if hit {
		res.Cached = true
	} else {
		res.Result, err = convert.Convert(ctx, src, &copts)
		if err != nil {
			return fail(StageConvert, err)
		}
		if opts.Cache != nil {
			if err := opts.Cache.Put(key, res.Result); err != nil {
				trace.Point(tracer, trace.ScopeFile, "cache", err.Error(), span.ID())
			}
		}
	}
	res.Timing = timer.Report()

	if res.Result.Skip {
		span.End("skipped")
		emit(opts.Progress, Event{File: path, Stage: StageConvert, Status: StatusSkipped, Elapsed: time.Since(start)})
		return res
	}

	out := OutputPath(path, res.Result.HasJSX)
	if opts.Verify {
		emit(opts.Progress, Event{File: path, Stage: StageVerify, Status: StatusWorking})
		if err := verify.Check(ctx, []byte(res.Result.Code), out, res.Result.HasJSX); err != nil {
			return fail(StageVerify, err)
		}
	}

	if opts.Stdout == nil {
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		if err := os.WriteFile(out, []byte(res.Result.Code), 0o644); err != nil { // #nosec G306
			return fail(StageWrite, err)
		}
		res.Output = out
		if opts.DeleteSource {
			if err := os.Remove(path); err != nil {
				return fail(StageWrite, err)
			}
		}
	}

	status := StatusDone
	if res.Cached {
		status = StatusCached
	}
	span.End(status.String())
	emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: status, Elapsed: time.Since(start)})
	return res
}

// writeStdout prints converted files in input order. With more than one
// file each is preceded by a comment naming its source.
func writeStdout(w io.Writer, files []FileResult) error {
	n := 0
	for i := range files {
		if files[i].Err == nil && !files[i].Result.Skip {
			n++
		}
	}
	for i := range files {
		f := &files[i]
		if f.Err != nil || f.Result.Skip {
			continue
		}
		var sb strings.Builder
		if n > 1 {
			sb.WriteString("// " + f.Path + "\n")
		}
		sb.WriteString(f.Result.Code)
		if !strings.HasSuffix(f.Result.Code, "\n") {
			sb.WriteByte('\n')
		}
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}
