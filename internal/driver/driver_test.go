package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"paracell/internal/diag"
	"paracell/internal/driver"
	"paracell/internal/sem"
	"paracell/internal/symbols"
	"paracell/internal/token"
)

const goodSrc = `
type List = union { Nil: (), Cons: record { head: Nat, tail: List } }
let len = fun (l: List) -> Nat {
	match l { Nil => 0, Cons(h, t) => 1 + len(t) }
}
`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestTokenize(t *testing.T) {
	path := write(t, t.TempDir(), "a.flow", "let x = 0x10")
	res, err := driver.Tokenize(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(res.Tokens); n != 5 || res.Tokens[n-1].Kind != token.EOF {
		t.Fatalf("tokens = %+v", res.Tokens)
	}
	if res.Bag.Len() != 0 {
		t.Errorf("diagnostics: %v", codes(res.Bag))
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	if _, err := driver.Tokenize(filepath.Join(t.TempDir(), "nope.flow"), 0); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v", err)
	}
}

func TestParseStopsBeforeLowering(t *testing.T) {
	path := write(t, t.TempDir(), "a.flow", goodSrc)
	res, err := driver.Parse(context.Background(), path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Builder == nil || res.IR != nil {
		t.Fatalf("parse result: builder=%v ir=%v", res.Builder != nil, res.IR != nil)
	}
	if len(res.Timing.Phases) != 1 || res.Timing.Phases[0].Name != "parse" {
		t.Errorf("phases = %+v", res.Timing.Phases)
	}
}

func TestLowerReportsStructuralError(t *testing.T) {
	path := write(t, t.TempDir(), "a.flow", "let p = (a: 1, 2)")
	res, err := driver.Lower(context.Background(), path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(res.Err, sem.ErrMixedTuple) {
		t.Fatalf("Err = %v", res.Err)
	}
	if got := codes(res.Bag); len(got) != 1 || got[0] != diag.SemaMixedTuple {
		t.Errorf("codes = %v", got)
	}
	if res.IR != nil {
		t.Errorf("IR must be nil after a lowering error")
	}
}

func TestCheckFileResolves(t *testing.T) {
	path := write(t, t.TempDir(), "list.flow", goodSrc)
	res, err := driver.Check(context.Background(), path, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Broken() || res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codes(res.Bag))
	}
	f := res.Files[0]
	if f.Symbols == nil {
		t.Fatalf("symbols missing")
	}
	if _, ok := f.Symbols.Table.Lookup(f.Symbols.FileScope, "len"); !ok {
		t.Errorf("len not declared in file scope")
	}
	if len(f.Timing.Phases) != 3 {
		t.Errorf("phases = %+v", f.Timing.Phases)
	}
}

func TestCheckDirMergesInPathOrder(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "b.flow", "let y = missing")
	write(t, dir, "a.flow", goodSrc)
	write(t, dir, "sub/c.flow", "let z = (")
	write(t, dir, ".hidden/d.flow", "let w = nothing")
	write(t, dir, "notes.txt", "ignored")

	var mu sync.Mutex
	events := map[string][]driver.Status{}
	sink := driver.SinkFunc(func(e driver.Event) {
		mu.Lock()
		defer mu.Unlock()
		if e.File != "" && e.Stage == "" {
			events[e.File] = append(events[e.File], e.Status)
		}
	})

	res, err := driver.CheckDir(context.Background(), dir, driver.Options{Jobs: 2, Progress: sink})
	if err != nil {
		t.Fatal(err)
	}
	var paths []string
	for _, f := range res.Files {
		rel, _ := filepath.Rel(dir, f.Path)
		paths = append(paths, filepath.ToSlash(rel))
	}
	want := []string{"a.flow", "b.flow", "sub/c.flow"}
	if len(paths) != len(want) {
		t.Fatalf("files = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("files = %v, want %v", paths, want)
		}
	}
	if res.Files[0].Broken() || !res.Files[1].Broken() || !res.Files[2].Broken() {
		t.Errorf("broken flags wrong")
	}
	if !errors.Is(res.Files[1].Err, symbols.ErrUnresolved) {
		t.Errorf("b.flow err = %v", res.Files[1].Err)
	}
	items := res.Bag.Items()
	if len(items) < 2 || items[0].Code != diag.SemaUnresolvedSymbol {
		t.Fatalf("merged bag = %v", codes(res.Bag))
	}
	for i := 1; i < len(items); i++ {
		if items[i].Primary.File < items[i-1].Primary.File {
			t.Fatalf("bag not sorted by file")
		}
	}
	if got := events["b.flow"]; len(got) != 2 || got[0] != driver.StatusQueued || got[1] != driver.StatusError {
		t.Errorf("b.flow events = %v", got)
	}
	if got := events["a.flow"]; len(got) != 2 || got[1] != driver.StatusDone {
		t.Errorf("a.flow events = %v", got)
	}
}

func TestCheckUsesDiskCache(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "bad.flow", "let y = missing")
	cache, err := driver.OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := driver.Options{Cache: cache}

	first, err := driver.CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := driver.CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Files[0].Cached || !second.Files[0].Cached {
		t.Fatalf("cached flags: first=%v second=%v", first.Files[0].Cached, second.Files[0].Cached)
	}
	a, b := first.Bag.Items(), second.Bag.Items()
	if len(a) != 1 || len(b) != 1 || a[0].Code != b[0].Code || a[0].Primary != b[0].Primary || a[0].Message != b[0].Message {
		t.Fatalf("replayed diagnostics differ: %+v vs %+v", a, b)
	}
	if !second.Broken() {
		t.Errorf("cached broken file must stay broken")
	}
	if hits, _ := cache.Stats(); hits != 1 {
		t.Errorf("hits = %d", hits)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := driver.Key([32]byte{1, 2, 3})
	var out driver.DiskPayload
	if ok, err := cache.Get(key, &out); ok || err != nil {
		t.Fatalf("empty cache Get = %v, %v", ok, err)
	}
	in := &driver.DiskPayload{Path: "a.flow", Decls: 2, Broken: true, Diagnostics: []diag.Diagnostic{{Severity: diag.SevError, Code: diag.SemaNotAType, Message: "m"}}}
	if err := cache.Put(key, in); err != nil {
		t.Fatal(err)
	}
	if ok, err := cache.Get(key, &out); !ok || err != nil {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if out.Path != "a.flow" || out.Decls != 2 || !out.Broken || out.Diagnostics[0].Code != diag.SemaNotAType {
		t.Errorf("payload = %+v", out)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := cache.Get(key, &out); ok {
		t.Errorf("entry survived DropAll")
	}
}

func TestCheckMissingPath(t *testing.T) {
	if _, err := driver.Check(context.Background(), filepath.Join(t.TempDir(), "nope"), driver.Options{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTimingDiagnostic(t *testing.T) {
	path := write(t, t.TempDir(), "a.flow", "let a = 1")
	res, err := driver.Check(context.Background(), path, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	res.AddTimingDiagnostic()
	items := res.Bag.Items()
	last := items[len(items)-1]
	if last.Code != diag.ObsTimings || last.Severity != diag.SevInfo || len(last.Notes) != 1 {
		t.Fatalf("timing diagnostic = %+v", last)
	}
	if res.Broken() {
		t.Errorf("info diagnostic must not break the run")
	}
}
