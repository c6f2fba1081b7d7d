package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"paracell/internal/diag"
	"paracell/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, path *color.Color
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
		note:   mk(color.FgBlue, color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		path:   mk(color.Bold),
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
// Идёт по bag.Items() (ожидается bag.Sort() заранее). Для каждого diag:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	   |
//	 3 | let x = y
//	   |         ^
//
// затем Notes в том же формате.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		sev := p.severity(d.Severity)
		fmt.Fprintf(w, "%s: %s: %s\n",
			p.path.Sprint(location(fs, d.Primary, opts)),
			sev.Sprintf("%s %s", d.Severity, d.Code.ID()),
			d.Message)
		snippet(w, fs, d.Primary, opts.Context, p, p.caret)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "%s: %s: %s\n", p.path.Sprint(location(fs, n.Span, opts)), p.note.Sprint("note"), n.Msg)
			snippet(w, fs, n.Span, 0, p, p.note)
		}
	}
}

func location(fs *source.FileSet, sp source.Span, opts PrettyOpts) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	pos := f.Position(sp.Start)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, opts.PathMode, opts.BaseDir), pos.Line, pos.Col)
}

// snippet prints the lines around sp with a caret underline on the first one.
func snippet(w io.Writer, fs *source.FileSet, sp source.Span, context uint8, p palette, mark *color.Color) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := f.Position(sp.Start), f.Position(sp.End)
	first := start.Line
	if uint32(context) < first {
		first -= uint32(context)
	} else {
		first = 1
	}
	last := start.Line + uint32(context)
	if maxLine := uint32(len(f.LineIdx)) + 1; last > maxLine { //nolint:gosec // line index fits uint32 by construction
		last = maxLine
	}
	width := len(strconv.FormatUint(uint64(last), 10))
	pad := strings.Repeat(" ", width)

	fmt.Fprintf(w, "%s %s\n", pad, p.gutter.Sprint("|"))
	for ln := first; ln <= last; ln++ {
		text := expandTabs(f.Line(ln))
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, ln), text)
		if ln != start.Line {
			continue
		}
		raw := f.Line(ln)
		col := int(start.Col) - 1
		col = min(max(col, 0), len(raw))
		n := 1
		if end.Line == start.Line && end.Col > start.Col {
			endCol := min(int(end.Col)-1, len(raw))
			n = max(runewidth.StringWidth(expandTabs(raw[col:endCol])), 1)
		} else if end.Line != start.Line {
			n = max(runewidth.StringWidth(expandTabs(raw[col:])), 1)
		}
		indent := runewidth.StringWidth(expandTabs(raw[:col]))
		fmt.Fprintf(w, "%s %s %s%s\n", pad, p.gutter.Sprint("|"), strings.Repeat(" ", indent),
			mark.Sprint("^"+strings.Repeat("~", n-1)))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
