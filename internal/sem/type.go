package sem

import (
	"paracell/internal/ast"
	"paracell/internal/source"
)

// TypeKind enumerates semantic type shapes.
type TypeKind uint8

const (
	// TypeIdent is a named, not yet resolved, reference.
	TypeIdent TypeKind = iota
	TypeRecord
	TypeUnion
	TypeFunc
)

func (k TypeKind) String() string {
	switch k {
	case TypeIdent:
		return "Ident"
	case TypeRecord:
		return "Record"
	case TypeUnion:
		return "Union"
	case TypeFunc:
		return "Func"
	}
	return "TypeKind(?)"
}

// Type is a semantic type node.
type Type struct {
	Kind   TypeKind
	Origin ast.ItemID
	Span   source.Span
	Data   TypeData
}

// TypeData is implemented by IdentType, RecordType, UnionType and FuncType.
type TypeData interface {
	typeData()
}

type IdentType struct {
	Name string
}

// Field is a named record member. Positional members use "0", "1", ...
type Field struct {
	Name string
	Span source.Span
	Type *Type
}

type RecordType struct {
	Fields []Field
}

type Variant struct {
	Name string
	Span source.Span
	Type *Type
}

type UnionType struct {
	Variants []Variant
}

// FuncType takes its parameters as a record.
type FuncType struct {
	Params RecordType
	Result *Type
}

func (IdentType) typeData()  {}
func (RecordType) typeData() {}
func (UnionType) typeData()  {}
func (FuncType) typeData()   {}

func (t *Type) AsIdent() (IdentType, bool) {
	d, ok := t.Data.(IdentType)
	return d, ok
}

func (t *Type) AsRecord() (RecordType, bool) {
	d, ok := t.Data.(RecordType)
	return d, ok
}

func (t *Type) AsUnion() (UnionType, bool) {
	d, ok := t.Data.(UnionType)
	return d, ok
}

func (t *Type) AsFunc() (FuncType, bool) {
	d, ok := t.Data.(FuncType)
	return d, ok
}
