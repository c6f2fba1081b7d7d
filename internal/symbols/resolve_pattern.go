package symbols

import (
	"paracell/internal/sem"
	"paracell/internal/types"
)

const wildcard = "_"

func (r *resolver) match(m sem.MatchExpr) error {
	st, err := r.expr(m.Scrutinee)
	if err != nil {
		return err
	}
	union := r.unionOf(st)
	for _, c := range m.Cases {
		if err := r.matchCase(c, union); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) matchCase(c sem.Case, union types.TypeID) error {
	r.enter(ScopeCase, c.Span)
	defer r.leave()
	if err := r.pattern(c.Pattern, union); err != nil {
		return err
	}
	_, err := r.expr(c.Expr)
	return err
}

// pattern resolves a case pattern:
//
//	_          matches anything
//	C          constructor or value reference
//	C(x, y)    constructor with bindings x and y
//	C(a: x)    bindings by payload field name
//
// With a known union, constructor names go through VariantIndex; otherwise
// they are looked up in scope.
func (r *resolver) pattern(p *sem.Expr, union types.TypeID) error {
	switch data := p.Data.(type) {
	case sem.IdentExpr:
		if data.Name == wildcard {
			return nil
		}
		_, err := r.constructor(p, union)
		return err
	case sem.ApplyExpr:
		payload, err := r.constructor(data.Func, union)
		if err != nil {
			return err
		}
		for i, f := range data.Args.Fields {
			if err := r.bindField(f, i, payload); err != nil {
				return err
			}
		}
		return nil
	case sem.NatExpr:
		return nil
	default:
		_, err := r.expr(p)
		return err
	}
}

func (r *resolver) constructor(e *sem.Expr, union types.TypeID) (types.TypeID, error) {
	if ident, ok := e.AsIdent(); ok && union != types.NoTypeID {
		return r.variant(e, union, ident.Name, e.Span)
	}
	ty, err := r.expr(e)
	if err != nil {
		return types.NoTypeID, err
	}
	if ref, ok := r.res.Variants[e]; ok {
		vs, _ := r.t.Types.Variants(ref.Union)
		return vs[ref.Index].Type, nil
	}
	return ty, nil
}

// bindField binds argument i of a constructor pattern. Positional arguments
// take the payload's i-th field whatever its name; named ones go through FieldIndex.
func (r *resolver) bindField(f sem.FieldFill, i int, payload types.TypeID) error {
	fieldType := types.NoTypeID
	if rec := r.recordOf(payload); rec != types.NoTypeID {
		ty, err := r.payloadField(rec, f.Name, i)
		if err != nil {
			return &Error{Kind: ErrorUnknownMember, Name: f.Name, Span: f.Span, Detail: "payload " + r.t.Types.Format(rec), Err: err}
		}
		fieldType = ty
	} else if i == 0 && isPositional(f.Name) {
		// a non-record payload binds whole
		fieldType = payload
	}
	if ident, ok := f.Expr.AsIdent(); ok {
		if ident.Name == wildcard {
			return nil
		}
		id, err := r.declare(ident.Name, f.Expr.Span, SymbolBinding, nil, fieldType)
		if err != nil {
			return err
		}
		r.res.Refs[f.Expr] = id
		return nil
	}
	return r.pattern(f.Expr, r.unionOf(fieldType))
}

func (r *resolver) payloadField(rec types.TypeID, name string, i int) (types.TypeID, error) {
	if !isPositional(name) {
		_, ty, err := r.t.Types.FieldIndex(rec, name)
		return ty, err
	}
	fields, err := r.t.Types.Fields(rec)
	if err != nil {
		return types.NoTypeID, err
	}
	if i >= len(fields) {
		return types.NoTypeID, types.ErrUnknownMember
	}
	return fields[i].Type, nil
}

func isPositional(name string) bool {
	return name != "" && name[0] >= '0' && name[0] <= '9'
}
