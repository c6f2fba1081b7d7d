package symbols

// ScopeID identifies a scope in the table arena.
type ScopeID uint32

// SymbolID identifies a symbol in the table arena.
type SymbolID uint32

const (
	NoScopeID  ScopeID  = 0
	NoSymbolID SymbolID = 0
)

func (id ScopeID) IsValid() bool  { return id != NoScopeID }
func (id SymbolID) IsValid() bool { return id != NoSymbolID }
