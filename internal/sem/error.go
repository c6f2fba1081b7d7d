package sem

import (
	"errors"
	"fmt"

	"paracell/internal/ast"
	"paracell/internal/diag"
	"paracell/internal/source"
)

// Reason classifies a structural lowering failure.
type Reason uint8

const (
	// UnexpectedNode: the item's kind is not admitted in the position being lowered.
	UnexpectedNode Reason = iota
	// MixedTuple: a tuple mixes IdentItem and positional elements.
	MixedTuple
	// DuplicateMember: a member name repeats within one record, union, field-fill or parameter list.
	DuplicateMember
)

func (r Reason) String() string {
	switch r {
	case UnexpectedNode:
		return "unexpected node"
	case MixedTuple:
		return "mixed tuple"
	case DuplicateMember:
		return "duplicate member"
	}
	return "Reason(?)"
}

// Position is the grammatical slot lowering was filling when it failed.
type Position uint8

const (
	PosType Position = iota
	PosExpr
	PosDecl
	PosStmt
	PosParams
)

func (p Position) String() string {
	switch p {
	case PosType:
		return "type"
	case PosExpr:
		return "expression"
	case PosDecl:
		return "declaration"
	case PosStmt:
		return "statement"
	case PosParams:
		return "parameter list"
	}
	return "Position(?)"
}

var (
	ErrUnexpectedNode  = errors.New("unexpected node")
	ErrMixedTuple      = errors.New("mixed tuple")
	ErrDuplicateMember = errors.New("duplicate member")
)

// Error references the offending surface item by handle and carries a copy
// of its span, so it stays printable after the surface tree is released.
type Error struct {
	Reason   Reason
	Position Position
	Item     ast.ItemID
	Kind     ast.ItemKind
	Span     source.Span
	// Name is set for DuplicateMember.
	Name string
	// Previous is the span of the first occurrence for DuplicateMember.
	Previous source.Span
}

func (e *Error) Error() string {
	switch e.Reason {
	case MixedTuple:
		return fmt.Sprintf("%s mixes named and positional elements", e.Position)
	case DuplicateMember:
		return fmt.Sprintf("duplicate member %q in %s", e.Name, e.Position)
	default:
		return fmt.Sprintf("%s is not allowed in %s position", e.Kind, e.Position)
	}
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnexpectedNode:
		return e.Reason == UnexpectedNode
	case ErrMixedTuple:
		return e.Reason == MixedTuple
	case ErrDuplicateMember:
		return e.Reason == DuplicateMember
	}
	return false
}

func (e *Error) Code() diag.Code {
	switch e.Reason {
	case MixedTuple:
		return diag.SemaMixedTuple
	case DuplicateMember:
		return diag.SemaDuplicateMember
	default:
		return diag.SemaUnexpectedNode
	}
}

// Report emits the error as a diagnostic.
func (e *Error) Report(r diag.Reporter) {
	if e == nil || r == nil {
		return
	}
	b := diag.ReportError(r, e.Code(), e.Span, e.Error())
	if e.Reason == DuplicateMember && !e.Previous.Empty() {
		b.WithNote(e.Previous, "first declared here")
	}
	b.Emit()
}
