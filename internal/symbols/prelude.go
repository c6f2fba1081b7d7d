package symbols

import (
	"paracell/internal/ast"
	"paracell/internal/types"
)

// PreludeEntry describes a symbol injected before source traversal.
type PreludeEntry struct {
	Name string
	Kind SymbolKind
	Type types.TypeID
}

// builtinPreludeEntries: the Nat type and one function per operator literal.
func builtinPreludeEntries(tys *types.Interner) []PreludeEntry {
	entries := make([]PreludeEntry, 0, 1+len(ast.UnaryOps)+len(ast.BinaryOps))
	entries = append(entries, PreludeEntry{Name: "Nat", Kind: SymbolType, Type: tys.Builtins().Nat})
	for _, op := range ast.UnaryOps {
		entries = append(entries, PreludeEntry{Name: op.Literal(), Kind: SymbolBuiltin})
	}
	for _, op := range ast.BinaryOps {
		entries = append(entries, PreludeEntry{Name: op.Literal(), Kind: SymbolBuiltin})
	}
	return entries
}
