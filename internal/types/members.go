package types

import (
	"fmt"

	"paracell/internal/omap"
	"paracell/internal/source"
)

// MembersInfo backs both records (fields) and unions (variants).
// Members keeps declaration order; its index answers name lookups in O(1).
type MembersInfo struct {
	Name     string
	Decl     source.Span
	Members  *omap.Map[string, TypeID]
	Resolved bool
}

// RegisterRecord allocates a record cell whose fields are set later.
// Anonymous records use an empty name.
func (in *Interner) RegisterRecord(name string, decl source.Span) TypeID {
	in.records = append(in.records, MembersInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindRecord, Payload: slotOf(len(in.records), "record")})
}

// RegisterUnion allocates a union cell whose variants are set later.
func (in *Interner) RegisterUnion(name string, decl source.Span) TypeID {
	in.unions = append(in.unions, MembersInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindUnion, Payload: slotOf(len(in.unions), "union")})
}

// NewRecord registers an anonymous record and resolves it at once.
func (in *Interner) NewRecord(fields []Member) (TypeID, error) {
	id := in.RegisterRecord("", source.Span{})
	if err := in.SetRecordFields(id, fields); err != nil {
		return NoTypeID, err
	}
	return id, nil
}

// SetRecordFields back-patches a registered record. It may be called once.
func (in *Interner) SetRecordFields(id TypeID, fields []Member) error {
	info, err := in.membersInfo(id, KindRecord)
	if err != nil {
		return err
	}
	return info.set(fields)
}

// SetUnionVariants back-patches a registered union. It may be called once.
func (in *Interner) SetUnionVariants(id TypeID, variants []Member) error {
	info, err := in.membersInfo(id, KindUnion)
	if err != nil {
		return err
	}
	return info.set(variants)
}

func (info *MembersInfo) set(members []Member) error {
	if info.Resolved {
		return fmt.Errorf("%w: %s", ErrAlreadyResolved, displayName(info.Name))
	}
	m := omap.New[string, TypeID](len(members))
	for _, mem := range members {
		if m.Has(mem.Name) {
			return fmt.Errorf("%w: %q in %s", ErrDuplicate, mem.Name, displayName(info.Name))
		}
		m.Insert(mem.Name, mem.Type)
	}
	info.Members = m
	info.Resolved = true
	return nil
}

// Fields returns the record's fields in declaration order.
func (in *Interner) Fields(id TypeID) ([]Member, error) {
	return in.members(id, KindRecord)
}

// Variants returns the union's variants in declaration order.
func (in *Interner) Variants(id TypeID) ([]Member, error) {
	return in.members(id, KindUnion)
}

// FieldIndex looks a record field up by name.
func (in *Interner) FieldIndex(id TypeID, name string) (int, TypeID, error) {
	return in.memberIndex(id, KindRecord, name)
}

// VariantIndex looks a union variant up by name.
func (in *Interner) VariantIndex(id TypeID, name string) (int, TypeID, error) {
	return in.memberIndex(id, KindUnion, name)
}

// Resolved reports whether a record, union or alias cell has been back-patched.
// Nat and func cells are always resolved.
func (in *Interner) Resolved(id TypeID) bool {
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindRecord:
		return in.records[tt.Payload].Resolved
	case KindUnion:
		return in.unions[tt.Payload].Resolved
	case KindAlias:
		return in.aliases[tt.Payload].Resolved
	case KindNat, KindFunc:
		return true
	}
	return false
}

func (in *Interner) members(id TypeID, kind Kind) ([]Member, error) {
	info, err := in.resolvedInfo(id, kind)
	if err != nil {
		return nil, err
	}
	out := make([]Member, 0, info.Members.Len())
	for name, ty := range info.Members.All() {
		out = append(out, Member{Name: name, Type: ty})
	}
	return out, nil
}

func (in *Interner) memberIndex(id TypeID, kind Kind, name string) (int, TypeID, error) {
	info, err := in.resolvedInfo(id, kind)
	if err != nil {
		return -1, NoTypeID, err
	}
	idx, ok := info.Members.Index(name)
	if !ok {
		return -1, NoTypeID, fmt.Errorf("%w: %s has no member %q", ErrUnknownMember, in.Format(id), name)
	}
	_, ty := info.Members.At(idx)
	return idx, ty, nil
}

func (in *Interner) resolvedInfo(id TypeID, kind Kind) (*MembersInfo, error) {
	info, err := in.membersInfo(id, kind)
	if err != nil {
		return nil, err
	}
	if !info.Resolved {
		return nil, fmt.Errorf("%w: %s", ErrUnresolved, displayName(info.Name))
	}
	return info, nil
}

func (in *Interner) membersInfo(id TypeID, kind Kind) (*MembersInfo, error) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != kind {
		return nil, fmt.Errorf("%w: type %d is %s, not %s", ErrKindMismatch, id, tt.Kind, kind)
	}
	if kind == KindRecord {
		return &in.records[tt.Payload], nil
	}
	return &in.unions[tt.Payload], nil
}

func displayName(name string) string {
	if name == "" {
		return "<anonymous>"
	}
	return name
}
