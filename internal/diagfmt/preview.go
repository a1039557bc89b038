package diagfmt

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"github.com/lukeapage/flow-to-ts/internal/source"
)

// previewLine is one source line shown under a diagnostic.
type previewLine struct {
	num  uint32
	text string
	// caret columns, in display cells; both zero when the line is context only
	from, to int
}

// buildPreview collects the lines around span with up to ctx lines of
// context on either side. The primary line carries an underline range.
func buildPreview(f *source.File, span source.Span, ctx int8) ([]previewLine, error) {
	if f == nil {
		return nil, fmt.Errorf("nil file")
	}
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return nil, fmt.Errorf("len file content overflow: %w", err)
	}
	if span.Start > size || span.End > size || span.End < span.Start {
		return nil, fmt.Errorf("span %s out of range for %s", span, f.Path)
	}
	extra, err := safecast.Conv[uint32](max(ctx, 0))
	if err != nil {
		return nil, err
	}

	start := f.LineCol(span.Start)
	end := f.LineCol(span.End)
	first := uint32(1)
	if start.Line > extra {
		first = start.Line - extra
	}
	last := start.Line + extra
	if total := f.Line(size); last > total {
		last = total
	}

	lines := make([]previewLine, 0, last-first+1)
	for n := first; n <= last; n++ {
		pl := previewLine{num: n, text: expandTabs(f.GetLine(n))}
		if n == start.Line {
			raw := f.GetLine(n)
			pl.from = cellWidth(raw, start.Col-1)
			endCol := uint32(len(raw)) + 1
			if end.Line == start.Line {
				endCol = end.Col
			}
			pl.to = max(cellWidth(raw, endCol-1), pl.from+1)
		}
		lines = append(lines, pl)
	}
	return lines, nil
}

// cellWidth measures the display width of the first n bytes of line.
// Decomposed sequences are composed first so accents do not add columns.
func cellWidth(line string, n uint32) int {
	if int(n) > len(line) {
		n = uint32(len(line)) // #nosec G115 -- bounded by len(line)
	}
	prefix := expandTabs(line[:n])
	return runewidth.StringWidth(norm.NFC.String(prefix))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func caretLine(from, to int) string {
	if to <= from {
		to = from + 1
	}
	return strings.Repeat(" ", from) + "^" + strings.Repeat("~", to-from-1)
}
