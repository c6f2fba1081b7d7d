package symbols

import (
	"paracell/internal/sem"
	"paracell/internal/source"
	"paracell/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolType
	SymbolLet
	SymbolVar
	SymbolParam
	// SymbolBinding is introduced by a match pattern.
	SymbolBinding
	// SymbolBuiltin is a prelude function such as an operator literal.
	SymbolBuiltin
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolType:
		return "type"
	case SymbolLet:
		return "let"
	case SymbolVar:
		return "var"
	case SymbolParam:
		return "param"
	case SymbolBinding:
		return "binding"
	case SymbolBuiltin:
		return "builtin"
	default:
		return "invalid"
	}
}

// IsValue reports whether the symbol may be used in expression position.
func (k SymbolKind) IsValue() bool {
	return k != SymbolType && k != SymbolInvalid
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint8

const (
	SymbolFlagBuiltin SymbolFlags = 1 << iota
	SymbolFlagMutable
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 2)
	if f&SymbolFlagBuiltin != 0 {
		labels = append(labels, "builtin")
	}
	if f&SymbolFlagMutable != 0 {
		labels = append(labels, "mutable")
	}
	return labels
}

// Symbol describes a named entity available in a scope.
// Type is the type cell for SymbolType, and the statically known type of a
// value when there is one (parameters, bindings, lets of known shape).
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Scope ScopeID
	Span  source.Span
	Flags SymbolFlags
	Decl  *sem.Decl
	Type  types.TypeID
}
