package types

import "fmt"

// TypeID uniquely identifies a type cell inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates the shapes of symbolic types.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindNat is the only primitive: an unbounded natural number.
	KindNat
	KindRecord
	KindUnion
	KindFunc
	// KindAlias is a named reference to another cell.
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNat:
		return "nat"
	case KindRecord:
		return "record"
	case KindUnion:
		return "union"
	case KindFunc:
		return "func"
	case KindAlias:
		return "alias"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor; Payload indexes the per-kind info table.
type Type struct {
	Kind    Kind
	Payload uint32
}

// Member is a record field or a union variant.
type Member struct {
	Name string
	Type TypeID
}
