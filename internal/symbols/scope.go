package symbols

import (
	"paracell/internal/omap"
	"paracell/internal/sem"
	"paracell/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopePrelude            // builtins, parent of every file scope
	ScopeFile               // top-level declarations of one file
	ScopeFunction           // parameters
	ScopeBlock              // block statements
	ScopeCase               // bindings of one match case
)

func (k ScopeKind) String() string {
	switch k {
	case ScopePrelude:
		return "prelude"
	case ScopeFile:
		return "file"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeCase:
		return "case"
	default:
		return "invalid"
	}
}

// Scope is an ordered, name-indexed set of declarations plus the scope's tail
// expression. Lookup walks Parent links outward.
type Scope struct {
	Kind     ScopeKind
	Parent   ScopeID
	Span     source.Span
	Decls    *omap.Map[source.StringID, SymbolID]
	Tail     *sem.Expr
	Children []ScopeID
}
