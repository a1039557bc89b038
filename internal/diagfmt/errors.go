package diagfmt

import (
	"errors"
	"io"
	"io/fs"
	"sort"
	"sync"

	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/source"
)

// Collector gathers the failures of a batch so they can be rendered
// together once every file is done. Safe for concurrent use.
type Collector struct {
	mu  sync.Mutex
	fs  *source.FileSet
	bag *diag.Bag
}

func NewCollector(max int) *Collector {
	return &Collector{fs: source.NewFileSet(), bag: diag.NewBag(max)}
}

// Add records err for the file at path with content src. Spans inside err
// are re-bound to a private copy of src. Returns false once the bag is full.
func (c *Collector) Add(path string, src []byte, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bag.Add(toDiagnostic(c.fs, path, src, err))
}

func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bag.Len()
}

// Pretty renders the collected diagnostics ordered by file and position.
func (c *Collector) Pretty(w io.Writer, opts PrettyOpts) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort()
	Pretty(w, c.bag, c.fs, opts)
}

func (c *Collector) JSON(w io.Writer, opts JSONOpts) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort()
	return JSON(w, c.bag, c.fs, opts)
}

// sort orders by path; ids follow the order files failed in, which is
// not deterministic under parallel conversion.
func (c *Collector) sort() {
	c.bag.Sort()
	items := c.bag.Items()
	sort.SliceStable(items, func(i, j int) bool {
		return c.pathOf(items[i]) < c.pathOf(items[j])
	})
}

func (c *Collector) pathOf(d diag.Diagnostic) string {
	if !located(d) {
		return ""
	}
	return c.fs.Get(d.Primary.File).Path
}

// Report renders a single failed conversion to w.
func Report(w io.Writer, path string, src []byte, err error, opts PrettyOpts) {
	fileSet := source.NewFileSet()
	bag := diag.NewBag(1)
	bag.Add(toDiagnostic(fileSet, path, src, err))
	Pretty(w, bag, fileSet, opts)
}

// toDiagnostic converts any error to a diagnostic. Errors with a source
// position get src registered in fileSet under path.
func toDiagnostic(fileSet *source.FileSet, path string, src []byte, err error) diag.Diagnostic {
	d, ok := diag.AsDiagnostic(err)
	if !ok {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return diag.NewError(diag.IOReadFailed, source.Span{}, err.Error())
		}
		return diag.NewError(diag.UnknownCode, source.Span{}, path+": "+err.Error())
	}
	if !located(d) {
		return d
	}
	id := fileSet.AddVirtual(path, src)
	d.Primary.File = id
	notes := make([]diag.Note, len(d.Notes))
	for i, n := range d.Notes {
		n.Span.File = id
		notes[i] = n
	}
	d.Notes = notes
	return d
}
