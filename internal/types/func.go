package types

import "fmt"

// FuncInfo stores a function type: a parameter record and a result.
type FuncInfo struct {
	Params TypeID
	Result TypeID
}

// NewFunc creates a function type. Params must be a record cell; it may
// still be unresolved.
func (in *Interner) NewFunc(params, result TypeID) (TypeID, error) {
	if k := in.Kind(params); k != KindRecord {
		return NoTypeID, fmt.Errorf("%w: function parameters must be a record, got %s", ErrKindMismatch, k)
	}
	in.funcs = append(in.funcs, FuncInfo{Params: params, Result: result})
	return in.internRaw(Type{Kind: KindFunc, Payload: slotOf(len(in.funcs), "func")}), nil
}

// FuncInfo retrieves function type metadata by TypeID.
func (in *Interner) FuncInfo(id TypeID) (*FuncInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFunc {
		return nil, false
	}
	return &in.funcs[tt.Payload], true
}
