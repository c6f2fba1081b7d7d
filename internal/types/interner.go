package types

import (
	"fmt"

	"fortio.org/safecast"

	"paracell/internal/source"
)

// Builtins stores TypeIDs for primitive types.
type Builtins struct {
	Invalid TypeID
	Nat     TypeID
}

// Interner is an arena of type cells. Record, union and alias cells are
// registered first and back-patched later, so every holder of a TypeID sees
// the resolved members as soon as they are set.
type Interner struct {
	types    []Type
	builtins Builtins
	records  []MembersInfo
	unions   []MembersInfo
	funcs    []FuncInfo
	aliases  []AliasInfo
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{}
	// slot 0 of every table is the invalid sentinel
	in.records = append(in.records, MembersInfo{})
	in.unions = append(in.unions, MembersInfo{})
	in.funcs = append(in.funcs, FuncInfo{})
	in.aliases = append(in.aliases, AliasInfo{})
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Nat = in.internRaw(Type{Kind: KindNat})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if in == nil || id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Kind returns KindInvalid for unknown ids.
func (in *Interner) Kind(id TypeID) Kind {
	tt, _ := in.Lookup(id)
	return tt.Kind
}

// Len counts cells including the invalid sentinel.
func (in *Interner) Len() int {
	return len(in.types)
}

// Name returns the declared name of a record, union or alias cell.
func (in *Interner) Name(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return ""
	}
	switch tt.Kind {
	case KindNat:
		return "Nat"
	case KindRecord:
		return in.records[tt.Payload].Name
	case KindUnion:
		return in.unions[tt.Payload].Name
	case KindAlias:
		return in.aliases[tt.Payload].Name
	}
	return ""
}

// Decl returns the declaration span recorded at registration.
func (in *Interner) Decl(id TypeID) source.Span {
	tt, ok := in.Lookup(id)
	if !ok {
		return source.Span{}
	}
	switch tt.Kind {
	case KindRecord:
		return in.records[tt.Payload].Decl
	case KindUnion:
		return in.unions[tt.Payload].Decl
	case KindAlias:
		return in.aliases[tt.Payload].Decl
	}
	return source.Span{}
}

func slotOf(n int, what string) uint32 {
	slot, err := safecast.Conv[uint32](n - 1)
	if err != nil {
		panic(fmt.Errorf("%s info overflow: %w", what, err))
	}
	return slot
}
