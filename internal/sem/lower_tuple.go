package sem

import (
	"strconv"

	"paracell/internal/ast"
	"paracell/internal/source"
)

// small positional names are shared; larger indices fall back to strconv.
var positionalNames = [...]string{"0", "1", "2", "3", "4", "5", "6", "7"}

func positionalName(i int) string {
	if i < len(positionalNames) {
		return positionalNames[i]
	}
	return strconv.Itoa(i)
}

// exprTuple picks the record shape from the first element: an IdentItem
// makes the whole tuple a named field-fill, anything else makes it positional.
// The remaining elements must agree.
func (l lowerer) exprTuple(elems []ast.ItemID) (RecordExpr, error) {
	if len(elems) == 0 {
		return RecordExpr{}, nil
	}
	if l.kind(elems[0]) == ast.ItemIdentItem {
		return l.fieldFillTuple(elems)
	}
	return l.positionalTuple(elems)
}

func (l lowerer) positionalTuple(elems []ast.ItemID) (RecordExpr, error) {
	fields := make([]FieldFill, 0, len(elems))
	for i, el := range elems {
		if l.kind(el) == ast.ItemIdentItem {
			return RecordExpr{}, l.mixed(el)
		}
		e, err := l.toExpr(el)
		if err != nil {
			return RecordExpr{}, err
		}
		fields = append(fields, FieldFill{Name: positionalName(i), Span: e.Span, Expr: e})
	}
	return RecordExpr{Fields: fields}, nil
}

func (l lowerer) fieldFillTuple(elems []ast.ItemID) (RecordExpr, error) {
	fields := make([]FieldFill, 0, len(elems))
	seen := make(map[source.StringID]source.Span, len(elems))
	for _, el := range elems {
		bd, ok := l.b.Items.IdentItem(el)
		if !ok {
			return RecordExpr{}, l.mixed(el)
		}
		if prev, dup := seen[bd.Name]; dup {
			return RecordExpr{}, l.duplicate(el, PosExpr, l.b.Name(bd.Name), bd.NameSpan, prev)
		}
		seen[bd.Name] = bd.NameSpan
		e, err := l.toExpr(bd.Value)
		if err != nil {
			return RecordExpr{}, err
		}
		fields = append(fields, FieldFill{Name: l.b.Name(bd.Name), Span: bd.NameSpan, Expr: e})
	}
	return RecordExpr{Fields: fields}, nil
}

func (l lowerer) mixed(id ast.ItemID) error {
	e := &Error{Reason: MixedTuple, Position: PosExpr, Item: id}
	if item := l.b.Items.Get(id); item != nil {
		e.Kind = item.Kind
		e.Span = item.Span
	}
	return e
}
