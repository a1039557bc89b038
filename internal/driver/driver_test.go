package driver_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/config"
	"github.com/lukeapage/flow-to-ts/internal/convert"
	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/driver"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func read(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func rel(t *testing.T, dir string, files []string) string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		r, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = filepath.ToSlash(r)
	}
	return strings.Join(out, ",")
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		jsx  bool
		want string
	}{
		{"a/b.js", false, "a/b.ts"},
		{"a/b.js", true, "a/b.tsx"},
		{"b.jsx", true, "b.tsx"},
		{"b.mjs", false, "b.ts"},
		{"b.js.flow", false, "b.ts"},
		{"b.flow", false, "b.ts"},
		{"README", false, "README.ts"},
	}
	for _, tt := range tests {
		if got := driver.OutputPath(tt.in, tt.jsx); got != tt.want {
			t.Fatalf("OutputPath(%q, %v) = %q, want %q", tt.in, tt.jsx, got, tt.want)
		}
	}
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.js", "b.jsx", "c.ts", "lib/d.mjs", "lib/e.js.flow", "node_modules/x.js", ".git/y.js", "vendor/z.js"} {
		write(t, dir, name, "")
	}

	files, err := driver.CollectFiles([]string{dir}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := rel(t, dir, files); got != "a.js,b.jsx,lib/d.mjs,lib/e.js.flow,vendor/z.js" {
		t.Fatalf("no manifest: %s", got)
	}

	write(t, dir, config.ManifestName, "[paths]\nexclude = [\"vendor/*\", \"node_modules/*\", \".git/*\", \"*.flow\"]\n")
	m, err := config.LoadManifest(filepath.Join(dir, config.ManifestName))
	if err != nil {
		t.Fatal(err)
	}
	files, err = driver.CollectFiles([]string{dir, filepath.Join(dir, "a.js"), filepath.Join(dir, "c.ts")}, m)
	if err != nil {
		t.Fatal(err)
	}
	if got := rel(t, dir, files); got != "a.js,b.jsx,c.ts,lib/d.mjs" {
		t.Fatalf("manifest: %s", got)
	}

	if _, err := driver.CollectFiles([]string{filepath.Join(dir, "missing")}, nil); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing path: %v", err)
	}
}

func TestConvertFilesIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	good := write(t, dir, "good.js", "// @flow\nconst a: ?number = 1;\n")
	jsx := write(t, dir, "view.js", "// @flow\nconst v = <div />;\n")
	bad := write(t, dir, "bad.js", "// @flow\nconst = ;\n")
	plain := write(t, dir, "plain.js", "const b = 2;\n")

	sum, err := driver.ConvertFiles(context.Background(), []string{bad, good, jsx, plain}, driver.Options{
		Convert: convert.Options{SkipNonFlow: true},
		Jobs:    2,
	})
	if err != nil {
		t.Fatal(err)
	}
	converted, skipped, failed, cached := sum.Counts()
	if converted != 2 || skipped != 1 || failed != 1 || cached != 0 || !sum.Failed() {
		t.Fatalf("counts: %d %d %d %d", converted, skipped, failed, cached)
	}

	var pe *diag.ParseError
	if !errors.As(sum.Files[0].Err, &pe) || pe.Path != bad {
		t.Fatalf("bad.js: %v", sum.Files[0].Err)
	}
	if got := read(t, filepath.Join(dir, "good.ts")); got != "const a: number | null | undefined = 1;\n" {
		t.Fatalf("good.ts = %q", got)
	}
	if sum.Files[2].Output != filepath.Join(dir, "view.tsx") {
		t.Fatalf("jsx output = %q", sum.Files[2].Output)
	}
	for _, name := range []string{"bad.ts", "plain.ts"} {
		if _, err := os.Stat(filepath.Join(dir, name)); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("%s written", name)
		}
	}
	if _, err := os.Stat(good); err != nil {
		t.Fatalf("source removed without DeleteSource")
	}
}

func TestConvertFilesDeleteSource(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "a.js", "const a = 1;")
	if _, err := driver.ConvertFiles(context.Background(), []string{src}, driver.Options{DeleteSource: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(src); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("source kept")
	}
	if read(t, filepath.Join(dir, "a.ts")) != "const a = 1;" {
		t.Fatalf("output missing")
	}
}

func TestConvertFilesStdout(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "a.js", "type A = mixed;")
	b := write(t, dir, "b.js", "type B = empty;\n")

	var buf bytes.Buffer
	if _, err := driver.ConvertFiles(context.Background(), []string{a, b}, driver.Options{Stdout: &buf, Jobs: 4}); err != nil {
		t.Fatal(err)
	}
	want := "// " + a + "\ntype A = unknown;\n// " + b + "\ntype B = never;\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.ts")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("file written in stdout mode")
	}
}

func TestConvertFilesCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := driver.OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	src := write(t, dir, "a.js", "// @flow\ntype A = *;\n")
	opts := driver.Options{Cache: cache}

	first, err := driver.ConvertFiles(context.Background(), []string{src}, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := driver.ConvertFiles(context.Background(), []string{src}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Files[0].Cached || !second.Files[0].Cached {
		t.Fatalf("cached: %v %v", first.Files[0].Cached, second.Files[0].Cached)
	}
	if second.Files[0].Result != first.Files[0].Result {
		t.Fatalf("cached result differs: %+v", second.Files[0].Result)
	}

	opts.Convert.InlineUtilityTypes = true
	third, err := driver.ConvertFiles(context.Background(), []string{src}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Files[0].Cached {
		t.Fatalf("options change did not invalidate")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	opts.Convert.InlineUtilityTypes = false
	fourth, err := driver.ConvertFiles(context.Background(), []string{src}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.Files[0].Cached {
		t.Fatalf("hit after DropAll")
	}
}

func TestCacheKey(t *testing.T) {
	dir := t.TempDir()
	rc := write(t, dir, ".prettierrc", "semi: false\n")
	src := []byte("a;")

	base, err := driver.CacheKey(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	keys := map[string]*convert.Options{
		"skip":   {SkipNonFlow: true},
		"inline": {InlineUtilityTypes: true},
		"format": {Format: &config.FormatRequest{ConfigPath: rc}},
	}
	seen := map[driver.Digest]string{base: "base"}
	for name, opts := range keys {
		k, err := driver.CacheKey(src, opts)
		if err != nil {
			t.Fatal(err)
		}
		if prev, dup := seen[k]; dup {
			t.Fatalf("%s collides with %s", name, prev)
		}
		seen[k] = name
	}

	before, _ := driver.CacheKey(src, keys["format"])
	write(t, dir, ".prettierrc", "semi: true\n")
	after, _ := driver.CacheKey(src, keys["format"])
	if before == after {
		t.Fatalf("style file edit did not change the key")
	}

	if _, err := driver.CacheKey(src, &convert.Options{Format: &config.FormatRequest{ConfigPath: filepath.Join(dir, "nope")}}); err == nil {
		t.Fatalf("unreadable style file accepted")
	}
}

type recorder struct {
	mu     sync.Mutex
	events []driver.Event
}

func (r *recorder) OnEvent(ev driver.Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recorder) final(file string) driver.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	var last driver.Status
	for _, ev := range r.events {
		if ev.File == file {
			last = ev.Status
		}
	}
	return last
}

func TestConvertFilesProgressAndTimings(t *testing.T) {
	dir := t.TempDir()
	ok := write(t, dir, "ok.js", "// @flow\nconst a = 1;")
	bad := write(t, dir, "bad.js", "const = ;")
	skip := write(t, dir, "skip.js", "const b = 1;")

	rec := &recorder{}
	sum, err := driver.ConvertFiles(context.Background(), []string{ok, bad, skip}, driver.Options{
		Convert:  convert.Options{SkipNonFlow: true},
		Progress: rec,
		Timings:  true,
	})
	if err != nil {
		t.Fatal(err)
	}
	for file, want := range map[string]driver.Status{ok: driver.StatusDone, bad: driver.StatusError, skip: driver.StatusSkipped} {
		if got := rec.final(file); got != want {
			t.Fatalf("%s: final status %s, want %s", file, got, want)
		}
	}
	// the failed file has no timer report
	if sum.Totals.Files() != 2 {
		t.Fatalf("timed files = %d", sum.Totals.Files())
	}
	if len(sum.Totals.Report().Phases) == 0 {
		t.Fatalf("no phases summed")
	}
}

func TestConvertFilesVerify(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "a.js", "// @flow\nexport function f<T: {}>(x: ?T): $ReadOnlyArray<T> { return [x]; }\n")
	sum, err := driver.ConvertFiles(context.Background(), []string{src}, driver.Options{Verify: true})
	if err != nil {
		t.Fatal(err)
	}
	if sum.Files[0].Err != nil {
		t.Fatalf("verify rejected valid output: %v", sum.Files[0].Err)
	}
}

func TestConvertFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "a.js", "const a = 1;")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := driver.ConvertFiles(ctx, []string{src}, driver.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}
