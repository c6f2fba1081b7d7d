package diag

import (
	"fmt"
	"sort"
	"strings"

	"paracell/internal/source"
)

type shortLine struct {
	sev  string
	code string
	path string
	line uint32
	col  uint32
	msg  string
}

// FormatShort renders one line per diagnostic ("error SEM3010 a.flow:1:9 message"),
// sorted by position. Notes follow as "note" lines when includeNotes is set.
// The output is stable and used by golden tests and the short CLI format.
func FormatShort(diags []Diagnostic, fs *source.FileSet, baseDir string, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	lines := make([]shortLine, 0, len(diags))
	for _, d := range diags {
		if l, ok := resolveShort(fs, baseDir, d.Primary); ok {
			l.sev, l.code, l.msg = d.Severity.Label(), d.Code.ID(), sanitize(d.Message)
			lines = append(lines, l)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if l, ok := resolveShort(fs, baseDir, n.Span); ok {
				l.sev, l.code, l.msg = "note", d.Code.ID(), sanitize(n.Msg)
				lines = append(lines, l)
			}
		}
	}
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.path != b.path {
			return a.path < b.path
		}
		if a.line != b.line {
			return a.line < b.line
		}
		return a.col < b.col
	})

	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
	}
	return sb.String()
}

func resolveShort(fs *source.FileSet, baseDir string, sp source.Span) (shortLine, bool) {
	f := fs.Get(sp.File)
	if f == nil {
		return shortLine{}, false
	}
	pos := f.Position(sp.Start)
	return shortLine{path: f.DisplayPath(baseDir), line: pos.Line, col: pos.Col}, true
}

func sanitize(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
