package sem

import (
	"paracell/internal/ast"
	"paracell/internal/source"
)

func (l lowerer) toType(id ast.ItemID) (*Type, error) {
	item := l.b.Items.Get(id)
	if item == nil || !admitsType(item.Kind) {
		return nil, l.unexpected(id, PosType)
	}
	t := &Type{Origin: id, Span: item.Span}
	switch item.Kind {
	case ast.ItemIdent:
		d, _ := l.b.Items.Ident(id)
		t.Kind = TypeIdent
		t.Data = IdentType{Name: l.b.Name(d.Name)}
	case ast.ItemTuple:
		d, _ := l.b.Items.Tuple(id)
		rec, err := l.typeTuple(d.Elems)
		if err != nil {
			return nil, err
		}
		t.Kind = TypeRecord
		t.Data = rec
	case ast.ItemRecordType:
		d, _ := l.b.Items.RecordType(id)
		fields, err := l.members(d.Members)
		if err != nil {
			return nil, err
		}
		t.Kind = TypeRecord
		t.Data = RecordType{Fields: fields}
	case ast.ItemUnionType:
		d, _ := l.b.Items.UnionType(id)
		fields, err := l.members(d.Members)
		if err != nil {
			return nil, err
		}
		variants := make([]Variant, len(fields))
		for i, f := range fields {
			variants[i] = Variant(f)
		}
		t.Kind = TypeUnion
		t.Data = UnionType{Variants: variants}
	case ast.ItemFuncType:
		d, _ := l.b.Items.FuncType(id)
		ft, err := l.funcType(d)
		if err != nil {
			return nil, err
		}
		t.Kind = TypeFunc
		t.Data = ft
	}
	return t, nil
}

// typeTuple lowers a tuple in type position: element i becomes field "i".
func (l lowerer) typeTuple(elems []ast.ItemID) (RecordType, error) {
	fields := make([]Field, 0, len(elems))
	for i, el := range elems {
		ty, err := l.toType(el)
		if err != nil {
			return RecordType{}, err
		}
		fields = append(fields, Field{Name: positionalName(i), Span: ty.Span, Type: ty})
	}
	return RecordType{Fields: fields}, nil
}

func (l lowerer) members(ms []ast.Member) ([]Field, error) {
	fields := make([]Field, 0, len(ms))
	seen := make(map[source.StringID]source.Span, len(ms))
	for _, m := range ms {
		if prev, dup := seen[m.Name]; dup {
			return nil, l.duplicate(m.Value, PosType, l.b.Name(m.Name), m.NameSpan, prev)
		}
		seen[m.Name] = m.NameSpan
		ty, err := l.toType(m.Value)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: l.b.Name(m.Name), Span: m.NameSpan, Type: ty})
	}
	return fields, nil
}

func (l lowerer) funcType(d *ast.FuncTypeData) (FuncType, error) {
	params, err := l.params(d.Params)
	if err != nil {
		return FuncType{}, err
	}
	result, err := l.toType(d.Result)
	if err != nil {
		return FuncType{}, err
	}
	return FuncType{Params: params, Result: result}, nil
}

// params lowers a parameter tuple. Every element must be an IdentItem.
func (l lowerer) params(id ast.ItemID) (RecordType, error) {
	tup, ok := l.b.Items.Tuple(id)
	if !ok {
		return RecordType{}, l.unexpected(id, PosParams)
	}
	fields := make([]Field, 0, len(tup.Elems))
	seen := make(map[source.StringID]source.Span, len(tup.Elems))
	for _, el := range tup.Elems {
		bd, ok := l.b.Items.IdentItem(el)
		if !ok {
			return RecordType{}, l.unexpected(el, PosParams)
		}
		if prev, dup := seen[bd.Name]; dup {
			return RecordType{}, l.duplicate(el, PosParams, l.b.Name(bd.Name), bd.NameSpan, prev)
		}
		seen[bd.Name] = bd.NameSpan
		ty, err := l.toType(bd.Value)
		if err != nil {
			return RecordType{}, err
		}
		fields = append(fields, Field{Name: l.b.Name(bd.Name), Span: bd.NameSpan, Type: ty})
	}
	return RecordType{Fields: fields}, nil
}

func (l lowerer) duplicate(id ast.ItemID, pos Position, name string, at, prev source.Span) error {
	e := &Error{
		Reason:   DuplicateMember,
		Position: pos,
		Item:     id,
		Name:     name,
		Span:     at,
		Previous: prev,
	}
	if item := l.b.Items.Get(id); item != nil {
		e.Kind = item.Kind
	}
	return e
}
