package sem_test

import (
	"errors"
	"reflect"
	"testing"

	"paracell/internal/ast"
	"paracell/internal/diag"
	"paracell/internal/lexer"
	"paracell/internal/parser"
	"paracell/internal/sem"
	"paracell/internal/source"
)

type lowered struct {
	b    *ast.Builder
	file ast.FileID
	sf   *sem.SourceFile
	err  error
}

func lower(t *testing.T, src string) lowered {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("test.flow", []byte(src))
	bag := diag.NewBag(16)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lexer.New(fs.Get(fid), lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	if bag.Len() != 0 {
		t.Fatalf("parse diagnostics for %q: %+v", src, bag.Items())
	}
	sf, err := sem.LowerFile(b, res.File)
	return lowered{b: b, file: res.File, sf: sf, err: err}
}

func (l lowered) ok(t *testing.T) *sem.SourceFile {
	t.Helper()
	if l.err != nil {
		t.Fatalf("lowering failed: %v", l.err)
	}
	return l.sf
}

func (l lowered) semErr(t *testing.T) *sem.Error {
	t.Helper()
	var se *sem.Error
	if !errors.As(l.err, &se) {
		t.Fatalf("expected *sem.Error, got %v", l.err)
	}
	return se
}

// value returns the value item of the n-th top-level binding.
func (l lowered) value(t *testing.T, n int) ast.ItemID {
	t.Helper()
	items := l.b.Files.Get(l.file).Items
	bd, ok := l.b.Items.Decl(items[n])
	if !ok {
		t.Fatalf("item %d is not a declaration", n)
	}
	return bd.Value
}

func TestNatLiteralForms(t *testing.T) {
	sf := lower(t, "let a = 1024; let b = 0x400; let c = 0o2000; let d = 0b10000000000").ok(t)
	if len(sf.Decls) != 4 {
		t.Fatalf("expected 4 decls, got %d", len(sf.Decls))
	}
	first, _ := sf.Decls[0].Expr.AsNat()
	for i, d := range sf.Decls {
		n, ok := d.Expr.AsNat()
		if !ok {
			t.Fatalf("decl %d: expected Nat, got %s", i, d.Expr.Kind)
		}
		if n.Value.String() != "1024" {
			t.Errorf("decl %d: value %s, want 1024", i, n.Value)
		}
		if !n.Value.Equal(first.Value) {
			t.Errorf("decl %d differs from decimal form", i)
		}
	}
}

func TestOperatorDesugaring(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"let x = ~Bit", "let x = apply(~, {0: Bit})"},
		{"let x = !b", "let x = apply(!, {0: b})"},
		{"let v = 1 + 2", "let v = apply(+, {0: 1, 1: 2})"},
		{"let v = 1 - 2 * 3", "let v = apply(-, {0: 1, 1: apply(*, {0: 2, 1: 3})})"},
		{"let v = a % b / c", "let v = apply(/, {0: apply(%, {0: a, 1: b}), 1: c})"},
		{"let v = a | b & c", "let v = apply(|, {0: a, 1: apply(&, {0: b, 1: c})})"},
	}
	for _, tt := range tests {
		sf := lower(t, tt.src).ok(t)
		if got := sf.Decls[0].String(); got != tt.want {
			t.Errorf("%q lowered to %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestBinaryApplyShape(t *testing.T) {
	sf := lower(t, "let v = 1 + 2").ok(t)
	d := sf.Decls[0]
	if d.Kind != sem.DeclLet || d.Name != "v" {
		t.Fatalf("unexpected decl %s %q", d.Kind, d.Name)
	}
	app, ok := d.Expr.AsApply()
	if !ok {
		t.Fatalf("expected Apply, got %s", d.Expr.Kind)
	}
	fn, ok := app.Func.AsIdent()
	if !ok || fn.Name != "+" {
		t.Fatalf("callee = %s, want Ident(+)", app.Func)
	}
	if len(app.Args.Fields) != 2 || app.Args.Fields[0].Name != "0" || app.Args.Fields[1].Name != "1" {
		t.Fatalf("unexpected args %+v", app.Args.Fields)
	}
	if app.Func.Origin != d.Expr.Origin {
		t.Errorf("operator callee should point back at the operator item")
	}
}

func TestRecordAndUnionTypes(t *testing.T) {
	sf := lower(t, "type P = record { A: Nat, B: Nat }\ntype U = union { A: Nat, B: P }").ok(t)
	rec, ok := sf.Decls[0].Type.AsRecord()
	if !ok {
		t.Fatalf("expected record type, got %s", sf.Decls[0].Type.Kind)
	}
	if len(rec.Fields) != 2 || rec.Fields[0].Name != "A" || rec.Fields[1].Name != "B" {
		t.Fatalf("fields out of order: %+v", rec.Fields)
	}
	for _, f := range rec.Fields {
		if id, ok := f.Type.AsIdent(); !ok || id.Name != "Nat" {
			t.Errorf("field %s: type %s, want Nat", f.Name, f.Type)
		}
	}
	un, ok := sf.Decls[1].Type.AsUnion()
	if !ok {
		t.Fatalf("expected union type, got %s", sf.Decls[1].Type.Kind)
	}
	if got := sf.Decls[1].String(); got != "type U = union{A: Nat, B: P}" {
		t.Errorf("union printed as %q", got)
	}
	if un.Variants[0].Name != "A" || un.Variants[1].Name != "B" {
		t.Errorf("variants out of order: %+v", un.Variants)
	}
}

func TestTypeTupleIsPositional(t *testing.T) {
	sf := lower(t, "type P = (Nat, record { x: Nat })").ok(t)
	if got := sf.Decls[0].String(); got != "type P = {0: Nat, 1: {x: Nat}}" {
		t.Errorf("got %q", got)
	}
}

func TestFuncLiteral(t *testing.T) {
	sf := lower(t, "let f = fun (a: Nat, b: Nat) -> Nat { let v = a + b; v }").ok(t)
	fn, ok := sf.Decls[0].Expr.AsFunc()
	if !ok {
		t.Fatalf("expected Func, got %s", sf.Decls[0].Expr.Kind)
	}
	if len(fn.Type.Params.Fields) != 2 || fn.Type.Params.Fields[1].Name != "b" {
		t.Fatalf("params: %+v", fn.Type.Params.Fields)
	}
	stmts := fn.Body.Stmts
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	if stmts[0].Kind != sem.StmtDecl || stmts[0].Decl.Kind != sem.DeclLet || stmts[0].Decl.Name != "v" {
		t.Errorf("first statement should be let v, got %s", stmts[0])
	}
	tail := fn.Body.Tail()
	if stmts[1].Kind != sem.StmtExpr || tail == nil {
		t.Fatalf("second statement should be an expression")
	}
	if id, ok := tail.AsIdent(); !ok || id.Name != "v" {
		t.Errorf("tail = %s, want v", tail)
	}
	want := "let f = fun{a: Nat, b: Nat} -> Nat block{let v = apply(+, {0: a, 1: b}); v}"
	if got := sf.Decls[0].String(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestFuncTypeInTypePosition(t *testing.T) {
	sf := lower(t, "type F = fun (x: Nat) -> fun (y: Nat) -> Nat").ok(t)
	if got := sf.Decls[0].String(); got != "type F = fun{x: Nat} -> fun{y: Nat} -> Nat" {
		t.Errorf("got %q", got)
	}
}

func TestMatchPreservesCaseOrder(t *testing.T) {
	sf := lower(t, "let m = match x { C => 3, A => 1, B(y) => y }").ok(t)
	m, ok := sf.Decls[0].Expr.AsMatch()
	if !ok {
		t.Fatalf("expected Match, got %s", sf.Decls[0].Expr.Kind)
	}
	if s, ok := m.Scrutinee.AsIdent(); !ok || s.Name != "x" {
		t.Errorf("scrutinee = %s", m.Scrutinee)
	}
	want := []string{"C", "A", "apply(B, {0: y})"}
	if len(m.Cases) != len(want) {
		t.Fatalf("expected %d cases, got %d", len(want), len(m.Cases))
	}
	for i, c := range m.Cases {
		if c.Pattern.String() != want[i] {
			t.Errorf("case %d pattern = %s, want %s", i, c.Pattern, want[i])
		}
	}
}

func TestTuplesApplySelectPipe(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"let t = ()", "let t = {}"},
		{"let t = (1, 2)", "let t = {0: 1, 1: 2}"},
		{"let t = (a: 1, b: 2)", "let t = {a: 1, b: 2}"},
		{"let t = (x)", "let t = x"},
		{"let y = f()", "let y = apply(f, {})"},
		{"let y = f(1, g)", "let y = apply(f, {0: 1, 1: g})"},
		{"let y = f(a: 1)", "let y = apply(f, {a: 1})"},
		{"let s = p.x", "let s = p.x"},
		{"let s = t.0", "let s = t.0"},
		{"let s = x |> f |> g", "let s = pipe(pipe(x, f), g)"},
		{"var c = { 1; 2 }", "var c = block{1; 2}"},
	}
	for _, tt := range tests {
		sf := lower(t, tt.src).ok(t)
		if got := sf.Decls[0].String(); got != tt.want {
			t.Errorf("%q lowered to %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestRecordTypeInExpressionPosition(t *testing.T) {
	l := lower(t, "let ok = 1\nlet r = record { A: Nat }")
	se := l.semErr(t)
	if !errors.Is(l.err, sem.ErrUnexpectedNode) {
		t.Fatalf("expected ErrUnexpectedNode, got %v", l.err)
	}
	if se.Item != l.value(t, 1) {
		t.Errorf("error item %d, want the record type item %d", se.Item, l.value(t, 1))
	}
	if se.Kind != ast.ItemRecordType || se.Position != sem.PosExpr {
		t.Errorf("got kind %s position %s", se.Kind, se.Position)
	}
	if se.Span != l.b.Items.Get(se.Item).Span {
		t.Errorf("error span %s does not match item span", se.Span)
	}
	if l.sf != nil {
		t.Errorf("failed lowering must not return a partial file")
	}
}

func TestAdmissionRejections(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ast.ItemKind
		pos  sem.Position
	}{
		{"nat as type", "type T = 1", ast.ItemNat, sem.PosType},
		{"type tuple as type", "type T = tuple(Nat)", ast.ItemTypeTuple, sem.PosType},
		{"block as type", "type T = { Nat }", ast.ItemBlock, sem.PosType},
		{"apply as type", "type T = F(Nat)", ast.ItemApply, sem.PosType},
		{"ident item in type tuple", "type T = (a: Nat,)", ast.ItemIdentItem, sem.PosType},
		{"union as expression", "let x = union { A: Nat }", ast.ItemUnionType, sem.PosExpr},
		{"func type as expression", "let x = fun (a: Nat) -> Nat", ast.ItemFuncType, sem.PosExpr},
		{"type tuple as expression", "let x = f(tuple())", ast.ItemTypeTuple, sem.PosExpr},
		{"decl as expression", "let x = let y = 1", ast.ItemLet, sem.PosExpr},
		{"ident item in block", "let x = { a: 1 }", ast.ItemIdentItem, sem.PosStmt},
		{"record type in block", "let x = { record { a: Nat } }", ast.ItemRecordType, sem.PosStmt},
		{"expression at top level", "1 + 2", ast.ItemBinary, sem.PosDecl},
		{"positional param", "let f = fun (Nat) -> Nat { 1 }", ast.ItemIdent, sem.PosParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := lower(t, tt.src).semErr(t)
			if se.Reason != sem.UnexpectedNode {
				t.Fatalf("reason = %s", se.Reason)
			}
			if se.Kind != tt.kind || se.Position != tt.pos {
				t.Errorf("got %s in %s, want %s in %s", se.Kind, se.Position, tt.kind, tt.pos)
			}
		})
	}
}

func TestMixedTuple(t *testing.T) {
	tests := []struct {
		src  string
		kind ast.ItemKind
	}{
		{"let t = (1, a: 2)", ast.ItemIdentItem},
		{"let t = (a: 1, 2)", ast.ItemNat},
		{"let t = f(a: 1, b)", ast.ItemIdent},
	}
	for _, tt := range tests {
		l := lower(t, tt.src)
		se := l.semErr(t)
		if !errors.Is(l.err, sem.ErrMixedTuple) {
			t.Fatalf("%q: expected mixed tuple, got %v", tt.src, l.err)
		}
		if se.Kind != tt.kind {
			t.Errorf("%q: offending kind %s, want %s", tt.src, se.Kind, tt.kind)
		}
		if got := se.Error(); got != "expression mixes named and positional elements" {
			t.Errorf("%q: message %q", tt.src, got)
		}
	}
}

func TestDuplicateMembers(t *testing.T) {
	srcs := []string{
		"type R = record { A: Nat, B: Nat, A: Nat }",
		"type U = union { A: Nat, A: R }",
		"let t = (A: 1, A: 2)",
		"let f = fun (A: Nat, A: Nat) -> Nat { A }",
	}
	for _, src := range srcs {
		l := lower(t, src)
		se := l.semErr(t)
		if !errors.Is(l.err, sem.ErrDuplicateMember) {
			t.Fatalf("%q: expected duplicate member, got %v", src, l.err)
		}
		if se.Name != "A" {
			t.Errorf("%q: name %q", src, se.Name)
		}
		if se.Previous.Start >= se.Span.Start {
			t.Errorf("%q: previous %s should precede %s", src, se.Previous, se.Span)
		}
	}
}

func TestErrorReport(t *testing.T) {
	se := lower(t, "type R = record { A: Nat, A: Nat }").semErr(t)
	bag := diag.NewBag(0)
	se.Report(diag.BagReporter{Bag: bag})
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.SemaDuplicateMember || d.Severity != diag.SevError {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if len(d.Notes) != 1 {
		t.Errorf("expected a note pointing at the first member")
	}
}

func TestLoweringIsIdempotent(t *testing.T) {
	src := "type L = union { Nil: (), Cons: (Nat, L) }\nlet f = fun (x: L) -> Nat { match x { Nil => 0, Cons(h, t) => h + 1 } }"
	l := lower(t, src)
	first := l.ok(t)
	second, err := sem.LowerFile(l.b, l.file)
	if err != nil {
		t.Fatalf("second lowering failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("lowering twice produced different IR")
	}
	items := l.b.Files.Get(l.file).Items
	a, errA := sem.ToStmt(l.b, items[1])
	b, errB := sem.ToStmt(l.b, items[1])
	if errA != nil || errB != nil || a.String() != b.String() {
		t.Fatalf("ToStmt not deterministic: %v %v", errA, errB)
	}
}

func TestPositionEntryPoints(t *testing.T) {
	l := lower(t, "let x = record { A: Nat }\ntype T = 1")
	items := l.b.Files.Get(l.file).Items
	rec := l.value(t, 0)
	if _, err := sem.ToType(l.b, rec); err != nil {
		t.Errorf("record type should lower in type position: %v", err)
	}
	if _, err := sem.ToExpr(l.b, rec); !errors.Is(err, sem.ErrUnexpectedNode) {
		t.Errorf("record type in expression position: %v", err)
	}
	if _, err := sem.ToStmt(l.b, rec); !errors.Is(err, sem.ErrUnexpectedNode) {
		t.Errorf("record type in statement position: %v", err)
	}
	if _, err := sem.ToDecl(l.b, rec); !errors.Is(err, sem.ErrUnexpectedNode) {
		t.Errorf("record type in declaration position: %v", err)
	}
	if _, err := sem.ToExpr(l.b, l.value(t, 1)); err != nil {
		t.Errorf("nat should lower as expression: %v", err)
	}
	if s, err := sem.ToStmt(l.b, items[1]); err == nil {
		t.Errorf("type alias with nat body should fail, got %s", s)
	}
}
