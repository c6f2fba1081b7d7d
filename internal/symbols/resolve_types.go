package symbols

import (
	"paracell/internal/sem"
	"paracell/internal/types"
)

type pendingType struct {
	cell types.TypeID
	decl *sem.Decl
}

// hoistTypes registers every type alias in decls before resolving any of
// their bodies, so the bodies may refer to each other in any order.
func (r *resolver) hoistTypes(decls []*sem.Decl) error {
	pending := make([]pendingType, 0, len(decls))
	for _, d := range decls {
		if d.Kind != sem.DeclTypeAlias {
			continue
		}
		p, err := r.registerType(d)
		if err != nil {
			return err
		}
		pending = append(pending, p)
	}
	return r.defineTypes(pending)
}

// registerType creates the cell for a type alias and declares its name.
// The cell's members are filled in later by defineTypes.
func (r *resolver) registerType(d *sem.Decl) (pendingType, error) {
	var id types.TypeID
	switch d.Type.Kind {
	case sem.TypeRecord:
		id = r.t.Types.RegisterRecord(d.Name, d.NameSpan)
	case sem.TypeUnion:
		id = r.t.Types.RegisterUnion(d.Name, d.NameSpan)
	default:
		id = r.t.Types.RegisterAlias(d.Name, d.NameSpan)
	}
	if _, err := r.declare(d.Name, d.NameSpan, SymbolType, d, id); err != nil {
		return pendingType{}, err
	}
	return pendingType{cell: id, decl: d}, nil
}

// defineTypes back-patches the registered cells and rejects types without
// a finite value.
func (r *resolver) defineTypes(pending []pendingType) error {
	if len(pending) == 0 {
		return nil
	}
	for _, p := range pending {
		if err := r.defineType(p.cell, p.decl); err != nil {
			return err
		}
	}
	return r.checkWellFounded()
}

func (r *resolver) defineType(id types.TypeID, d *sem.Decl) error {
	r.res.Types[d.Type] = id
	var err error
	switch data := d.Type.Data.(type) {
	case sem.RecordType:
		var fields []types.Member
		if fields, err = r.fields(data.Fields); err != nil {
			return err
		}
		err = r.t.Types.SetRecordFields(id, fields)
	case sem.UnionType:
		var variants []types.Member
		if variants, err = r.variants(data.Variants); err != nil {
			return err
		}
		err = r.t.Types.SetUnionVariants(id, variants)
	default:
		var target types.TypeID
		if target, err = r.typeOf(d.Type); err != nil {
			return err
		}
		// typeOf recorded the target for the alias node; keep the alias cell
		r.res.Types[d.Type] = id
		err = r.t.Types.SetAliasTarget(id, target)
	}
	if err != nil {
		return &Error{Kind: ErrorIllegalState, Name: d.Name, Span: d.NameSpan, Detail: err.Error(), Err: err}
	}
	return nil
}

func (r *resolver) fields(fs []sem.Field) ([]types.Member, error) {
	out := make([]types.Member, 0, len(fs))
	for _, f := range fs {
		ty, err := r.typeOf(f.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, types.Member{Name: f.Name, Type: ty})
	}
	return out, nil
}

func (r *resolver) variants(vs []sem.Variant) ([]types.Member, error) {
	out := make([]types.Member, 0, len(vs))
	for _, v := range vs {
		ty, err := r.typeOf(v.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, types.Member{Name: v.Name, Type: ty})
	}
	return out, nil
}

// typeOf resolves a type expression. Named references become the referenced
// cell; inline structural types become fresh anonymous cells.
func (r *resolver) typeOf(t *sem.Type) (types.TypeID, error) {
	var (
		id  types.TypeID
		err error
	)
	switch data := t.Data.(type) {
	case sem.IdentType:
		var sym *Symbol
		if _, sym, err = r.lookup(data.Name, t.Span); err != nil {
			return types.NoTypeID, err
		}
		if sym.Kind != SymbolType {
			return types.NoTypeID, &Error{Kind: ErrorNotAType, Name: data.Name, Span: t.Span}
		}
		id = sym.Type
	case sem.RecordType:
		var fields []types.Member
		if fields, err = r.fields(data.Fields); err != nil {
			return types.NoTypeID, err
		}
		id, err = r.t.Types.NewRecord(fields)
	case sem.UnionType:
		var variants []types.Member
		if variants, err = r.variants(data.Variants); err != nil {
			return types.NoTypeID, err
		}
		id = r.t.Types.RegisterUnion("", t.Span)
		err = r.t.Types.SetUnionVariants(id, variants)
	case sem.FuncType:
		if id, err = r.funcType(data); err != nil {
			return types.NoTypeID, err
		}
	}
	if err != nil {
		return types.NoTypeID, &Error{Kind: ErrorIllegalState, Span: t.Span, Detail: err.Error(), Err: err}
	}
	r.res.Types[t] = id
	return id, nil
}

func (r *resolver) funcType(ft sem.FuncType) (types.TypeID, error) {
	params, err := r.fields(ft.Params.Fields)
	if err != nil {
		return types.NoTypeID, err
	}
	result, err := r.typeOf(ft.Result)
	if err != nil {
		return types.NoTypeID, err
	}
	rec, err := r.t.Types.NewRecord(params)
	if err != nil {
		return types.NoTypeID, &Error{Kind: ErrorIllegalState, Detail: err.Error(), Err: err}
	}
	id, err := r.t.Types.NewFunc(rec, result)
	if err != nil {
		return types.NoTypeID, &Error{Kind: ErrorIllegalState, Detail: err.Error(), Err: err}
	}
	return id, nil
}

// checkWellFounded reports the first type registered by this file that has
// no finite value.
func (r *resolver) checkWellFounded() error {
	for _, id := range r.t.Types.CheckWellFounded() {
		if int(id) < r.watermark {
			continue
		}
		return &Error{Kind: ErrorRecursiveType, Name: r.t.Types.Name(id), Span: r.t.Types.Decl(id)}
	}
	return nil
}
