package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	var file *source.File
	if located(d) && fs != nil {
		file = fs.Get(d.Primary.File)
	}

	if file != nil {
		pos := file.LineCol(d.Primary.Start)
		fmt.Fprintf(w, "%s:%d:%d: ", formatPath(file.Path, opts.PathMode, opts.BaseDir), pos.Line, pos.Col)
	}
	fmt.Fprintf(w, "%s %s: %s\n",
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message)

	if file != nil {
		writePreview(w, file, d.Primary, opts.Context, p)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		prefix := "  "
		if file != nil && !n.Span.Empty() {
			nf := fs.Get(n.Span.File)
			pos := nf.LineCol(n.Span.Start)
			prefix += fmt.Sprintf("%s:%d:%d: ", formatPath(nf.Path, opts.PathMode, opts.BaseDir), pos.Line, pos.Col)
		}
		fmt.Fprintf(w, "%s%s %s\n", prefix, p.note.Sprint("note:"), n.Msg)
	}
}

func writePreview(w io.Writer, f *source.File, span source.Span, ctx int8, p palette) {
	lines, err := buildPreview(f, span, ctx)
	if err != nil || len(lines) == 0 {
		return
	}
	width := len(strconv.FormatUint(uint64(lines[len(lines)-1].num), 10))
	for _, l := range lines {
		num := fmt.Sprintf("%*d", width, l.num)
		fmt.Fprintf(w, " %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), l.text)
		if l.to > l.from {
			fmt.Fprintf(w, " %s %s %s\n", strings.Repeat(" ", width), p.gutter.Sprint("|"), p.caret.Sprint(caretLine(l.from, l.to)))
		}
	}
}

// located reports whether the primary span points into a source file.
// Configuration and I/O diagnostics carry no span.
func located(d diag.Diagnostic) bool {
	c := int(d.Code)
	if d.Code == diag.UnknownCode {
		return false
	}
	return c < int(diag.CfgUnreadable) || c >= int(diag.VerifyBadOutput)
}
