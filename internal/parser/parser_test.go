package parser

import (
	"testing"

	"paracell/internal/ast"
	"paracell/internal/diag"
	"paracell/internal/lexer"
	"paracell/internal/source"
)

func TestParseDeclarations(t *testing.T) {
	p := parseSource(t, "let a = 1; var b = a\ntype T = Nat")
	if p.bag.Len() != 0 {
		t.Fatalf("diagnostics: %+v", p.bag.Items())
	}
	items := p.items()
	want := []ast.ItemKind{ast.ItemLet, ast.ItemVar, ast.ItemTypeAlias}
	if len(items) != len(want) {
		t.Fatalf("got %d items", len(items))
	}
	for i, k := range want {
		if p.kind(items[i]) != k {
			t.Fatalf("item %d is %s, want %s", i, p.kind(items[i]), k)
		}
	}
	d, _ := p.b.Items.Decl(items[1])
	if p.b.Name(d.Name) != "b" || p.kind(d.Value) != ast.ItemIdent {
		t.Fatalf("var decl = %+v", d)
	}
}

func TestPrecedenceAndAssociativity(t *testing.T) {
	// 1 + 2 * 3 - 4 |> f  ==  ((1 + (2 * 3)) - 4) |> f
	p := parseSource(t, "1 + 2 * 3 - 4 |> f")
	root := p.single(t)
	pipe, ok := p.b.Items.Pipe(root)
	if !ok {
		t.Fatalf("root is %s, want Pipe", p.kind(root))
	}
	sub, ok := p.b.Items.Binary(pipe.From)
	if !ok || sub.Op != ast.BinarySub {
		t.Fatalf("pipe source is not '-': %+v", sub)
	}
	add, ok := p.b.Items.Binary(sub.Left)
	if !ok || add.Op != ast.BinaryAdd {
		t.Fatalf("left of '-' is not '+'")
	}
	mul, ok := p.b.Items.Binary(add.Right)
	if !ok || mul.Op != ast.BinaryMul {
		t.Fatalf("right of '+' is not '*'")
	}
}

func TestBitwiseBindsLooserThanArithmetic(t *testing.T) {
	p := parseSource(t, "a | b & c + d")
	or, ok := p.b.Items.Binary(p.single(t))
	if !ok || or.Op != ast.BinaryOr {
		t.Fatalf("root must be '|'")
	}
	and, ok := p.b.Items.Binary(or.Right)
	if !ok || and.Op != ast.BinaryAnd {
		t.Fatalf("right of '|' must be '&'")
	}
	if add, ok := p.b.Items.Binary(and.Right); !ok || add.Op != ast.BinaryAdd {
		t.Fatalf("right of '&' must be '+'")
	}
}

func TestUnaryAndPostfix(t *testing.T) {
	p := parseSource(t, "~f(x).y")
	u, ok := p.b.Items.Unary(p.single(t))
	if !ok || u.Op != ast.UnaryInvert {
		t.Fatalf("root must be '~'")
	}
	sel, ok := p.b.Items.Select(u.Operand)
	if !ok || p.b.Name(sel.Name) != "y" {
		t.Fatalf("operand must be select .y")
	}
	app, ok := p.b.Items.Apply(sel.Target)
	if !ok {
		t.Fatalf("select target must be apply")
	}
	args, ok := p.b.Items.Tuple(app.Args)
	if !ok || len(args.Elems) != 1 {
		t.Fatalf("apply args: %+v", args)
	}
}

func TestPositionalSelect(t *testing.T) {
	p := parseSource(t, "t.0")
	sel, ok := p.b.Items.Select(p.single(t))
	if !ok || p.b.Name(sel.Name) != "0" {
		t.Fatalf("expected select .0")
	}
}

func TestParenForms(t *testing.T) {
	cases := []struct {
		src  string
		kind ast.ItemKind
		n    int
	}{
		{"()", ast.ItemTuple, 0},
		{"(1)", ast.ItemNat, -1},
		{"(1,)", ast.ItemTuple, 1},
		{"(a: 1)", ast.ItemTuple, 1},
		{"(1, 2, 3)", ast.ItemTuple, 3},
		{"(a: 1, b: 2,)", ast.ItemTuple, 2},
		{"tuple(Nat, Nat)", ast.ItemTypeTuple, 2},
	}
	for _, tc := range cases {
		p := parseSource(t, tc.src)
		id := p.single(t)
		if p.kind(id) != tc.kind {
			t.Errorf("%s: kind %s, want %s", tc.src, p.kind(id), tc.kind)
			continue
		}
		if tc.n < 0 {
			continue
		}
		elems := p.b.Items.Children(id)
		if len(elems) != tc.n {
			t.Errorf("%s: %d elems, want %d", tc.src, len(elems), tc.n)
		}
	}
}

func TestNamedElementIsIdentItem(t *testing.T) {
	p := parseSource(t, "(a: 1, 2)")
	tup, _ := p.b.Items.Tuple(p.single(t))
	if p.kind(tup.Elems[0]) != ast.ItemIdentItem || p.kind(tup.Elems[1]) != ast.ItemNat {
		t.Fatalf("elements: %s %s", p.kind(tup.Elems[0]), p.kind(tup.Elems[1]))
	}
}

func TestFuncLiteralAndFuncType(t *testing.T) {
	p := parseSource(t, "let add = fun (a: Nat, b: Nat) -> Nat { let v = a + b; v }\ntype F = fun (x: Nat) -> Nat")
	if p.bag.Len() != 0 {
		t.Fatalf("diagnostics: %+v", p.bag.Items())
	}
	items := p.items()
	let, _ := p.b.Items.Let(items[0])
	fn, ok := p.b.Items.Func(let.Value)
	if !ok {
		t.Fatalf("let value is %s", p.kind(let.Value))
	}
	sig, ok := p.b.Items.FuncType(fn.Sig)
	if !ok {
		t.Fatalf("func sig missing")
	}
	params, _ := p.b.Items.Tuple(sig.Params)
	if len(params.Elems) != 2 {
		t.Fatalf("params: %d", len(params.Elems))
	}
	body, _ := p.b.Items.Block(fn.Body)
	if len(body.Elems) != 2 || p.kind(body.Elems[0]) != ast.ItemLet || p.kind(body.Elems[1]) != ast.ItemIdent {
		t.Fatalf("body elems wrong")
	}

	alias, _ := p.b.Items.TypeAlias(items[1])
	if p.kind(alias.Value) != ast.ItemFuncType {
		t.Fatalf("type F value is %s", p.kind(alias.Value))
	}
}

func TestMatchKeepsCaseOrder(t *testing.T) {
	p := parseSource(t, "match nat { 1 => 2, 3 => 4, }")
	m, ok := p.b.Items.Match(p.single(t))
	if !ok {
		t.Fatalf("expected match")
	}
	if p.kind(m.Scrutinee) != ast.ItemIdent || len(m.Cases) != 2 {
		t.Fatalf("match = %+v", m)
	}
	first, _ := p.b.Items.Nat(m.Cases[0].Pattern)
	second, _ := p.b.Items.Nat(m.Cases[1].Pattern)
	if first.Text != "1" || second.Text != "3" {
		t.Fatalf("case order: %s %s", first.Text, second.Text)
	}
}

func TestRecordAndUnionMembers(t *testing.T) {
	p := parseSource(t, "record { A: Nat, B: Nat }; union { Nil: (), Cons: (Nat, List) }")
	items := p.items()
	rec, ok := p.b.Items.RecordType(items[0])
	if !ok || len(rec.Members) != 2 || p.b.Name(rec.Members[1].Name) != "B" {
		t.Fatalf("record: %+v", rec)
	}
	un, ok := p.b.Items.UnionType(items[1])
	if !ok || len(un.Members) != 2 || p.kind(un.Members[1].Value) != ast.ItemTuple {
		t.Fatalf("union: %+v", un)
	}
}

func TestSyntaxErrorsRecover(t *testing.T) {
	p := parseSource(t, "let = 1; let ok = 2\nlet x = (1, 2")
	items := p.items()
	if len(items) != 1 {
		t.Fatalf("expected only the valid declaration, got %d items", len(items))
	}
	codes := map[diag.Code]bool{}
	for _, d := range p.bag.Items() {
		codes[d.Code] = true
	}
	if !codes[diag.SynExpectIdentifier] || !codes[diag.SynUnclosedParen] {
		t.Fatalf("diagnostics: %+v", p.bag.Items())
	}
}

func TestUnexpectedTokenMakesProgress(t *testing.T) {
	p := parseSource(t, ") ) let a = 1")
	if len(p.items()) != 1 {
		t.Fatalf("items: %d", len(p.items()))
	}
	if p.bag.Items()[0].Code != diag.SynExpectExpression {
		t.Fatalf("first diagnostic: %+v", p.bag.Items()[0])
	}
}

func TestEachBadItemReportsOnce(t *testing.T) {
	p := parseSource(t, ") ; ) ; )")
	if p.bag.Len() != 3 {
		t.Fatalf("expected 3 errors, got %d", p.bag.Len())
	}
}

func TestMaxErrorsStopsParsing(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("m.flow", []byte(") ; ) ; )"))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	res := ParseFile(lexer.New(fs.Get(fid), lexer.Options{Reporter: rep}), ast.NewBuilder(ast.Hints{}, nil), Options{Reporter: rep, MaxErrors: 1})
	if bag.Len() != 1 || res.Errors != 1 {
		t.Fatalf("expected parsing to stop after one error, bag=%d errors=%d", bag.Len(), res.Errors)
	}
}
