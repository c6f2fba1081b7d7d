package types

import (
	"fmt"

	"paracell/internal/source"
)

// AliasInfo stores a named reference to another cell.
type AliasInfo struct {
	Name     string
	Decl     source.Span
	Target   TypeID
	Resolved bool
}

// RegisterAlias allocates an alias cell whose target is set later.
func (in *Interner) RegisterAlias(name string, decl source.Span) TypeID {
	in.aliases = append(in.aliases, AliasInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindAlias, Payload: slotOf(len(in.aliases), "alias")})
}

// SetAliasTarget back-patches an alias. It may be called once.
func (in *Interner) SetAliasTarget(id, target TypeID) error {
	info, ok := in.AliasInfo(id)
	if !ok {
		return fmt.Errorf("%w: type %d is not an alias", ErrKindMismatch, id)
	}
	if info.Resolved {
		return fmt.Errorf("%w: %s", ErrAlreadyResolved, info.Name)
	}
	info.Target = target
	info.Resolved = true
	return nil
}

// AliasInfo returns metadata for the provided alias TypeID.
func (in *Interner) AliasInfo(id TypeID) (*AliasInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindAlias {
		return nil, false
	}
	return &in.aliases[tt.Payload], true
}

// Underlying follows alias chains to the first non-alias cell.
func (in *Interner) Underlying(id TypeID) (TypeID, error) {
	seen := make(map[TypeID]struct{})
	for {
		info, ok := in.AliasInfo(id)
		if !ok {
			return id, nil
		}
		if _, loop := seen[id]; loop {
			return NoTypeID, fmt.Errorf("%w: %s", ErrRecursiveAlias, info.Name)
		}
		seen[id] = struct{}{}
		if !info.Resolved {
			return NoTypeID, fmt.Errorf("%w: %s", ErrUnresolved, info.Name)
		}
		id = info.Target
	}
}
