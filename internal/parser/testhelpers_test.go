package parser

import (
	"testing"

	"paracell/internal/ast"
	"paracell/internal/diag"
	"paracell/internal/lexer"
	"paracell/internal/source"
	"paracell/internal/testkit"
)

type parsed struct {
	fs   *source.FileSet
	b    *ast.Builder
	file ast.FileID
	bag  *diag.Bag
}

func parseSource(t *testing.T, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("test.flow", []byte(src))
	bag := diag.NewBag(32)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(fs.Get(fid), lexer.Options{Reporter: rep})
	res := ParseFile(lx, b, Options{Reporter: rep})
	if bag.Len() == 0 {
		if err := testkit.CheckSpanInvariants(b, res.File, fs.Get(fid)); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
	}
	return parsed{fs: fs, b: b, file: res.File, bag: bag}
}

func (p parsed) items() []ast.ItemID {
	return p.b.Files.Get(p.file).Items
}

func (p parsed) single(t *testing.T) ast.ItemID {
	t.Helper()
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", p.bag.Items())
	}
	items := p.items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	return items[0]
}

func (p parsed) kind(id ast.ItemID) ast.ItemKind {
	return p.b.Items.Get(id).Kind
}
