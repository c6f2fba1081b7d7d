package sem

import (
	"paracell/internal/ast"
	"paracell/internal/source"
)

func (l lowerer) toExpr(id ast.ItemID) (*Expr, error) {
	item := l.b.Items.Get(id)
	if item == nil || !admitsExpr(item.Kind) {
		return nil, l.unexpected(id, PosExpr)
	}
	e := &Expr{Origin: id, Span: item.Span}
	switch item.Kind {
	case ast.ItemNat:
		d, _ := l.b.Items.Nat(id)
		e.Kind = ExprNat
		e.Data = NatExpr{Value: d.Value}
	case ast.ItemIdent:
		d, _ := l.b.Items.Ident(id)
		e.Kind = ExprIdent
		e.Data = IdentExpr{Name: l.b.Name(d.Name)}
	case ast.ItemTuple:
		d, _ := l.b.Items.Tuple(id)
		rec, err := l.exprTuple(d.Elems)
		if err != nil {
			return nil, err
		}
		e.Kind = ExprRecord
		e.Data = rec
	case ast.ItemBlock:
		d, _ := l.b.Items.Block(id)
		blk, err := l.block(d.Elems)
		if err != nil {
			return nil, err
		}
		e.Kind = ExprBlock
		e.Data = blk
	case ast.ItemFunc:
		fn, err := l.funcExpr(id)
		if err != nil {
			return nil, err
		}
		e.Kind = ExprFunc
		e.Data = fn
	case ast.ItemMatch:
		m, err := l.matchExpr(id)
		if err != nil {
			return nil, err
		}
		e.Kind = ExprMatch
		e.Data = m
	case ast.ItemUnary:
		d, _ := l.b.Items.Unary(id)
		operand, err := l.toExpr(d.Operand)
		if err != nil {
			return nil, err
		}
		e.Kind = ExprApply
		e.Data = ApplyExpr{
			Func: l.opIdent(id, item.Span, d.Op.Literal()),
			Args: positional(operand),
		}
	case ast.ItemBinary:
		d, _ := l.b.Items.Binary(id)
		left, err := l.toExpr(d.Left)
		if err != nil {
			return nil, err
		}
		right, err := l.toExpr(d.Right)
		if err != nil {
			return nil, err
		}
		e.Kind = ExprApply
		e.Data = ApplyExpr{
			Func: l.opIdent(id, item.Span, d.Op.Literal()),
			Args: positional(left, right),
		}
	case ast.ItemApply:
		d, _ := l.b.Items.Apply(id)
		fn, err := l.toExpr(d.Func)
		if err != nil {
			return nil, err
		}
		args, ok := l.b.Items.Tuple(d.Args)
		if !ok {
			return nil, l.unexpected(d.Args, PosExpr)
		}
		rec, err := l.exprTuple(args.Elems)
		if err != nil {
			return nil, err
		}
		e.Kind = ExprApply
		e.Data = ApplyExpr{Func: fn, Args: rec}
	case ast.ItemSelect:
		d, _ := l.b.Items.Select(id)
		target, err := l.toExpr(d.Target)
		if err != nil {
			return nil, err
		}
		e.Kind = ExprSelect
		e.Data = SelectExpr{Target: target, Name: l.b.Name(d.Name), NameSpan: d.NameSpan}
	case ast.ItemPipe:
		d, _ := l.b.Items.Pipe(id)
		from, err := l.toExpr(d.From)
		if err != nil {
			return nil, err
		}
		to, err := l.toExpr(d.To)
		if err != nil {
			return nil, err
		}
		e.Kind = ExprPipe
		e.Data = PipeExpr{From: from, To: to}
	}
	return e, nil
}

// opIdent is the callee of a desugared operator; it points back at the operator item.
func (l lowerer) opIdent(id ast.ItemID, sp source.Span, lit string) *Expr {
	return &Expr{Kind: ExprIdent, Origin: id, Span: sp, Data: IdentExpr{Name: lit}}
}

func positional(args ...*Expr) RecordExpr {
	fields := make([]FieldFill, len(args))
	for i, a := range args {
		fields[i] = FieldFill{Name: positionalName(i), Span: a.Span, Expr: a}
	}
	return RecordExpr{Fields: fields}
}

func (l lowerer) block(elems []ast.ItemID) (BlockExpr, error) {
	stmts := make([]*Stmt, 0, len(elems))
	for _, el := range elems {
		s, err := l.toStmt(el)
		if err != nil {
			return BlockExpr{}, err
		}
		stmts = append(stmts, s)
	}
	return BlockExpr{Stmts: stmts}, nil
}

func (l lowerer) funcExpr(id ast.ItemID) (FuncExpr, error) {
	d, _ := l.b.Items.Func(id)
	sig, ok := l.b.Items.FuncType(d.Sig)
	if !ok {
		return FuncExpr{}, l.unexpected(d.Sig, PosType)
	}
	ft, err := l.funcType(sig)
	if err != nil {
		return FuncExpr{}, err
	}
	body, ok := l.b.Items.Block(d.Body)
	if !ok {
		return FuncExpr{}, l.unexpected(d.Body, PosExpr)
	}
	blk, err := l.block(body.Elems)
	if err != nil {
		return FuncExpr{}, err
	}
	return FuncExpr{Type: ft, Body: blk}, nil
}

func (l lowerer) matchExpr(id ast.ItemID) (MatchExpr, error) {
	d, _ := l.b.Items.Match(id)
	scrutinee, err := l.toExpr(d.Scrutinee)
	if err != nil {
		return MatchExpr{}, err
	}
	cases := make([]Case, 0, len(d.Cases))
	for _, c := range d.Cases {
		pat, err := l.toExpr(c.Pattern)
		if err != nil {
			return MatchExpr{}, err
		}
		res, err := l.toExpr(c.Expr)
		if err != nil {
			return MatchExpr{}, err
		}
		cases = append(cases, Case{Pattern: pat, Expr: res, Span: c.Span})
	}
	return MatchExpr{Scrutinee: scrutinee, Cases: cases}, nil
}
