package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"paracell/internal/source"
	"paracell/internal/types"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates symbol-related arenas and shared resources.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
	Types   *types.Interner
	prelude ScopeID
}

// NewTable builds a fresh table. Nil strings or tys allocate fresh interners.
func NewTable(h Hints, strings *source.Interner, tys *types.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	if tys == nil {
		tys = types.NewInterner()
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Strings: strings,
		Types:   tys,
	}
}

// Prelude returns (and creates if needed) the builtin scope shared by all files.
func (t *Table) Prelude() ScopeID {
	if t.prelude.IsValid() {
		return t.prelude
	}
	t.prelude = t.Scopes.New(ScopePrelude, NoScopeID, source.Span{})
	scope := t.Scopes.Get(t.prelude)
	for _, e := range builtinPreludeEntries(t.Types) {
		name := t.Strings.Intern(e.Name)
		sym := t.Symbols.New(&Symbol{
			Name:  name,
			Kind:  e.Kind,
			Scope: t.prelude,
			Flags: SymbolFlagBuiltin,
			Type:  e.Type,
		})
		scope.Decls.Insert(name, sym)
	}
	return t.prelude
}

// Lookup walks from scope outward and returns the innermost declaration of name.
func (t *Table) Lookup(scope ScopeID, name string) (SymbolID, bool) {
	id, ok := t.Strings.Find(name)
	if !ok {
		return NoSymbolID, false
	}
	return t.lookupID(scope, id)
}

func (t *Table) lookupID(scope ScopeID, name source.StringID) (SymbolID, bool) {
	for s := t.Scopes.Get(scope); s != nil; s = t.Scopes.Get(s.Parent) {
		if sym, ok := s.Decls.Get(name); ok {
			return sym, true
		}
	}
	return NoSymbolID, false
}

// SymbolName resolves a symbol's interned name.
func (t *Table) SymbolName(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	s, _ := t.Strings.Lookup(sym.Name)
	return s
}
