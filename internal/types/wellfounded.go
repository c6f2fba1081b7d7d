package types

// CheckWellFounded returns the named record, union and alias cells that have
// no finite value, in registration order.
//
// Finiteness is a least fixpoint: Nat and functions are finite, a record is
// finite when all of its fields are, a union when at least one variant is,
// an alias when its target is. Unresolved cells are never finite.
func (in *Interner) CheckWellFounded() []TypeID {
	finite := make([]bool, len(in.types))
	for changed := true; changed; {
		changed = false
		for i := 1; i < len(in.types); i++ {
			if finite[i] {
				continue
			}
			if in.finiteStep(TypeID(i), finite) { //nolint:gosec // i < len(types) which fits in uint32
				finite[i] = true
				changed = true
			}
		}
	}
	var bad []TypeID
	for i := 1; i < len(in.types); i++ {
		id := TypeID(i) //nolint:gosec
		if finite[i] || in.Name(id) == "" {
			continue
		}
		switch in.types[i].Kind {
		case KindRecord, KindUnion, KindAlias:
			bad = append(bad, id)
		}
	}
	return bad
}

func (in *Interner) finiteStep(id TypeID, finite []bool) bool {
	tt := in.types[id]
	switch tt.Kind {
	case KindNat, KindFunc:
		return true
	case KindRecord:
		info := &in.records[tt.Payload]
		if !info.Resolved {
			return false
		}
		for _, ty := range info.Members.All() {
			if !finite[ty] {
				return false
			}
		}
		return true
	case KindUnion:
		info := &in.unions[tt.Payload]
		if !info.Resolved {
			return false
		}
		for _, ty := range info.Members.All() {
			if finite[ty] {
				return true
			}
		}
		return false
	case KindAlias:
		info := &in.aliases[tt.Payload]
		return info.Resolved && finite[info.Target]
	}
	return false
}
