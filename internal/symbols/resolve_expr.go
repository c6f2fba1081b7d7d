package symbols

import (
	"paracell/internal/sem"
	"paracell/internal/source"
	"paracell/internal/types"
)

// expr binds every name under e and returns e's static type when it is
// known without inference (literals, parameters, field projections, calls
// of known functions), NoTypeID otherwise.
func (r *resolver) expr(e *sem.Expr) (types.TypeID, error) {
	switch data := e.Data.(type) {
	case sem.NatExpr:
		return r.t.Types.Builtins().Nat, nil
	case sem.IdentExpr:
		id, sym, err := r.lookup(data.Name, e.Span)
		if err != nil {
			return types.NoTypeID, err
		}
		if !sym.Kind.IsValue() {
			return types.NoTypeID, &Error{Kind: ErrorNotAValue, Name: data.Name, Span: e.Span}
		}
		r.res.Refs[e] = id
		if err := r.typeTopLevel(sym.Decl); err != nil {
			return types.NoTypeID, err
		}
		return sym.Type, nil
	case sem.BlockExpr:
		return r.block(data, e.Span)
	case sem.FuncExpr:
		return r.funcExpr(data, e.Span)
	case sem.RecordExpr:
		return types.NoTypeID, r.record(data)
	case sem.ApplyExpr:
		fn, err := r.expr(data.Func)
		if err != nil {
			return types.NoTypeID, err
		}
		if err := r.record(data.Args); err != nil {
			return types.NoTypeID, err
		}
		return r.resultOf(data.Func, fn), nil
	case sem.MatchExpr:
		return types.NoTypeID, r.match(data)
	case sem.SelectExpr:
		return r.selectExpr(e, data)
	case sem.PipeExpr:
		if _, err := r.expr(data.From); err != nil {
			return types.NoTypeID, err
		}
		fn, err := r.expr(data.To)
		if err != nil {
			return types.NoTypeID, err
		}
		return r.resultOf(data.To, fn), nil
	}
	return types.NoTypeID, nil
}

// resultOf is the type of applying callee: its union for a constructor,
// the declared result for a known function.
func (r *resolver) resultOf(callee *sem.Expr, fn types.TypeID) types.TypeID {
	if ref, ok := r.res.Variants[callee]; ok {
		return ref.Union
	}
	if info, ok := r.t.Types.FuncInfo(r.underlying(fn)); ok {
		return info.Result
	}
	return types.NoTypeID
}

func (r *resolver) record(rec sem.RecordExpr) error {
	for _, f := range rec.Fields {
		if _, err := r.expr(f.Expr); err != nil {
			return err
		}
	}
	return nil
}

// block hoists the block's type aliases, then introduces let/var one by one:
// a declaration is visible to the statements after it, not to its own value.
func (r *resolver) block(b sem.BlockExpr, span source.Span) (types.TypeID, error) {
	scope := r.enter(ScopeBlock, span)
	defer r.leave()

	var typeDecls []*sem.Decl
	for _, s := range b.Stmts {
		if s.Kind == sem.StmtDecl && s.Decl.Kind == sem.DeclTypeAlias {
			typeDecls = append(typeDecls, s.Decl)
		}
	}
	if err := r.hoistTypes(typeDecls); err != nil {
		return types.NoTypeID, err
	}

	tail := types.NoTypeID
	for _, s := range b.Stmts {
		if s.Kind == sem.StmtExpr {
			ty, err := r.expr(s.Expr)
			if err != nil {
				return types.NoTypeID, err
			}
			tail = ty
			continue
		}
		tail = types.NoTypeID
		if s.Decl.Kind == sem.DeclTypeAlias {
			continue
		}
		ty, err := r.expr(s.Decl.Expr)
		if err != nil {
			return types.NoTypeID, err
		}
		if _, err := r.declareValue(s.Decl, ty); err != nil {
			return types.NoTypeID, err
		}
	}
	r.t.Scopes.Get(scope).Tail = b.Tail()
	return tail, nil
}

func (r *resolver) funcExpr(fn sem.FuncExpr, span source.Span) (types.TypeID, error) {
	ty, err := r.funcType(fn.Type)
	if err != nil {
		return types.NoTypeID, err
	}
	info, _ := r.t.Types.FuncInfo(ty)
	params, err := r.t.Types.Fields(info.Params)
	if err != nil {
		return types.NoTypeID, &Error{Kind: ErrorIllegalState, Span: span, Detail: err.Error(), Err: err}
	}

	r.enter(ScopeFunction, span)
	defer r.leave()
	for i, p := range fn.Type.Params.Fields {
		if _, err := r.declare(p.Name, p.Span, SymbolParam, nil, params[i].Type); err != nil {
			return types.NoTypeID, err
		}
	}
	if _, err := r.block(fn.Body, span); err != nil {
		return types.NoTypeID, err
	}
	return ty, nil
}

// selectExpr checks the member against the target's record type when that
// type is known. A type name as target selects a union constructor, whose
// value has the union type.
func (r *resolver) selectExpr(e *sem.Expr, sel sem.SelectExpr) (types.TypeID, error) {
	if ident, ok := sel.Target.AsIdent(); ok {
		id, sym, err := r.lookup(ident.Name, sel.Target.Span)
		if err != nil {
			return types.NoTypeID, err
		}
		if sym.Kind == SymbolType {
			union := r.unionOf(sym.Type)
			if union == types.NoTypeID {
				return types.NoTypeID, &Error{Kind: ErrorNotAValue, Name: ident.Name, Span: sel.Target.Span}
			}
			r.res.Refs[sel.Target] = id
			if _, err := r.variant(e, union, sel.Name, sel.NameSpan); err != nil {
				return types.NoTypeID, err
			}
			return union, nil
		}
	}
	target, err := r.expr(sel.Target)
	if err != nil {
		return types.NoTypeID, err
	}
	rec := r.recordOf(target)
	if rec == types.NoTypeID {
		return types.NoTypeID, nil
	}
	idx, ty, err := r.t.Types.FieldIndex(rec, sel.Name)
	if err != nil {
		return types.NoTypeID, &Error{Kind: ErrorUnknownMember, Name: sel.Name, Span: sel.NameSpan, Detail: "type " + r.t.Types.Format(rec), Err: err}
	}
	r.res.Fields[e] = idx
	return ty, nil
}

// variant dispatches name through the union's variant index and returns the
// variant's payload type.
func (r *resolver) variant(e *sem.Expr, union types.TypeID, name string, span source.Span) (types.TypeID, error) {
	idx, ty, err := r.t.Types.VariantIndex(union, name)
	if err != nil {
		return types.NoTypeID, &Error{Kind: ErrorUnknownMember, Name: name, Span: span, Detail: "union " + r.t.Types.Format(union), Err: err}
	}
	r.res.Variants[e] = VariantRef{Union: union, Index: idx}
	return ty, nil
}
