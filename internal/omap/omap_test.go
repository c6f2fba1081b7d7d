package omap_test

import (
	"slices"
	"testing"

	"paracell/internal/omap"
)

func TestInsertReturnsSequencePosition(t *testing.T) {
	m := omap.New[string, int](0)
	for i, k := range []string{"a", "b", "c"} {
		if got := m.Insert(k, i*10); got != i {
			t.Fatalf("Insert(%q) = %d, want %d", k, got, i)
		}
	}
	if v, ok := m.Get("b"); !ok || v != 10 {
		t.Fatalf("Get(b) = %d,%v", v, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Fatalf("expected missing key to be absent")
	}
	if !slices.Equal(m.Keys(), []string{"a", "b", "c"}) {
		t.Fatalf("keys out of order: %v", m.Keys())
	}
}

func TestDuplicateKeyLastWriteWins(t *testing.T) {
	m := omap.New[string, string](2)
	m.Insert("x", "first")
	idx := m.Insert("x", "second")

	if v, _ := m.Get("x"); v != "second" {
		t.Fatalf("Get(x) = %q, want second", v)
	}
	if i, _ := m.Index("x"); i != idx {
		t.Fatalf("Index(x) = %d, want %d", i, idx)
	}
	if m.Len() != 2 {
		t.Fatalf("sequence should keep both entries, len=%d", m.Len())
	}
	if k, v := m.At(0); k != "x" || v != "first" {
		t.Fatalf("At(0) = %q,%q", k, v)
	}
}

func TestZeroValueAndNilMap(t *testing.T) {
	var m omap.Map[int, bool]
	m.Insert(7, true)
	if !m.Has(7) {
		t.Fatalf("zero-value map must accept inserts")
	}

	var nilMap *omap.Map[int, bool]
	if nilMap.Len() != 0 || nilMap.Has(1) {
		t.Fatalf("nil map must behave as empty")
	}
	for range nilMap.All() {
		t.Fatalf("nil map must not yield")
	}
}

func TestAllStopsEarly(t *testing.T) {
	m := omap.New[string, int](0)
	m.Insert("a", 1)
	m.Insert("b", 2)
	m.Insert("c", 3)
	var seen []string
	for k := range m.All() {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	if !slices.Equal(seen, []string{"a", "b"}) {
		t.Fatalf("seen = %v", seen)
	}
}
