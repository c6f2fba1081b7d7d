package lexer

import (
	"testing"

	"paracell/internal/diag"
	"paracell/internal/source"
	"paracell/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.flow", []byte(src))
	bag := diag.NewBag(16)
	lx := New(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestOperatorsAndPunctuation(t *testing.T) {
	toks, bag := lexAll(t, "( ) { } , : ; . = -> => |> ~ ! + - * / % & |")
	want := []token.Kind{
		token.LParen, token.RParen, token.LBrace, token.RBrace, token.Comma, token.Colon,
		token.Semicolon, token.Dot, token.Assign, token.Arrow, token.FatArrow, token.PipeArrow,
		token.Tilde, token.Bang, token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Amp, token.Pipe, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestKeywordsIdentsAndComments(t *testing.T) {
	toks, _ := lexAll(t, "let v = fun // trailing comment\nrecord Nat _x")
	want := []token.Kind{token.KwLet, token.Ident, token.Assign, token.KwFun, token.KwRecord, token.Ident, token.Ident, token.EOF}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s (%v)", i, got[i], want[i], got)
		}
	}
	if toks[5].Text != "Nat" || toks[6].Text != "_x" {
		t.Fatalf("ident text: %q %q", toks[5].Text, toks[6].Text)
	}
}

func TestNumberForms(t *testing.T) {
	toks, bag := lexAll(t, "1024 0x400 0o2000 0b10000000000 1_000")
	for _, tok := range toks[:5] {
		if tok.Kind != token.Nat {
			t.Fatalf("%q lexed as %s", tok.Text, tok.Kind)
		}
	}
	if toks[1].Text != "0x400" {
		t.Fatalf("text = %q", toks[1].Text)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestBadNumberAndUnknownChar(t *testing.T) {
	toks, bag := lexAll(t, "0b102 @")
	if toks[0].Kind != token.Nat || toks[0].Text != "0b102" {
		t.Fatalf("bad number token: %+v", toks[0])
	}
	if toks[1].Kind != token.Invalid {
		t.Fatalf("@ lexed as %s", toks[1].Kind)
	}
	items := bag.Items()
	if len(items) != 2 || items[0].Code != diag.LexBadNumber || items[1].Code != diag.LexUnknownChar {
		t.Fatalf("diagnostics: %+v", items)
	}
}

func TestIdentifiersAreNFC(t *testing.T) {
	// "é" precomposed vs "e" + combining acute
	toks, bag := lexAll(t, "caf\u00e9 cafe\u0301")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[0].Kind != token.Ident || toks[1].Kind != token.Ident {
		t.Fatalf("kinds: %s %s", toks[0].Kind, toks[1].Kind)
	}
	if toks[0].Text != toks[1].Text {
		t.Fatalf("expected equal normalized text, got %q and %q", toks[0].Text, toks[1].Text)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	lx := New(fs.Get(fs.AddVirtual("p.flow", []byte("a b"))), Options{})
	if lx.Peek().Text != "a" || lx.Next().Text != "a" || lx.Next().Text != "b" {
		t.Fatalf("peek/next mismatch")
	}
	if lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatalf("EOF must be sticky")
	}
}
