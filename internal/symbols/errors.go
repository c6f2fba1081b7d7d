package symbols

import (
	"errors"
	"fmt"

	"paracell/internal/diag"
	"paracell/internal/source"
)

// ErrorKind classifies resolution failures.
type ErrorKind uint8

const (
	ErrorUnresolved ErrorKind = iota
	ErrorDuplicate
	ErrorNotAType
	ErrorNotAValue
	ErrorUnknownMember
	// ErrorRecursiveType: a named type has no finite value.
	ErrorRecursiveType
	// ErrorIllegalState: the type layer rejected a back-patch.
	ErrorIllegalState
)

var (
	ErrUnresolved    = errors.New("unresolved reference")
	ErrDuplicate     = errors.New("duplicate declaration")
	ErrNotAType      = errors.New("not a type")
	ErrNotAValue     = errors.New("not a value")
	ErrUnknownMember = errors.New("unknown member")
	ErrRecursiveType = errors.New("recursive type without base case")
	ErrIllegalState  = errors.New("illegal type state")
)

var kindSentinels = [...]error{
	ErrorUnresolved:    ErrUnresolved,
	ErrorDuplicate:     ErrDuplicate,
	ErrorNotAType:      ErrNotAType,
	ErrorNotAValue:     ErrNotAValue,
	ErrorUnknownMember: ErrUnknownMember,
	ErrorRecursiveType: ErrRecursiveType,
	ErrorIllegalState:  ErrIllegalState,
}

// Error is the first resolution failure of a file.
type Error struct {
	Kind ErrorKind
	Name string
	Span source.Span
	// Previous points at the earlier declaration for ErrorDuplicate.
	Previous source.Span
	// Detail is free text appended to the message (owner type, cause).
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case ErrorUnresolved:
		msg = fmt.Sprintf("unresolved reference %q", e.Name)
	case ErrorDuplicate:
		msg = fmt.Sprintf("%q is already declared in this scope", e.Name)
	case ErrorNotAType:
		msg = fmt.Sprintf("%q is a value, not a type", e.Name)
	case ErrorNotAValue:
		msg = fmt.Sprintf("%q is a type, not a value", e.Name)
	case ErrorUnknownMember:
		msg = fmt.Sprintf("unknown member %q", e.Name)
	case ErrorRecursiveType:
		msg = fmt.Sprintf("type %q is recursive without a base case", e.Name)
	default:
		msg = fmt.Sprintf("illegal state for type %q", e.Name)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return int(e.Kind) < len(kindSentinels) && kindSentinels[e.Kind] == target
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Code() diag.Code {
	switch e.Kind {
	case ErrorUnresolved:
		return diag.SemaUnresolvedSymbol
	case ErrorDuplicate:
		return diag.SemaDuplicateSymbol
	case ErrorNotAType:
		return diag.SemaNotAType
	case ErrorNotAValue:
		return diag.SemaNotAValue
	case ErrorUnknownMember:
		return diag.SemaUnknownMember
	case ErrorRecursiveType:
		return diag.SemaRecursiveType
	default:
		return diag.SemaIllegalState
	}
}

// Report emits the error as a diagnostic.
func (e *Error) Report(r diag.Reporter) {
	if e == nil || r == nil {
		return
	}
	b := diag.ReportError(r, e.Code(), e.Span, e.Error())
	if e.Kind == ErrorDuplicate && !e.Previous.Empty() {
		b.WithNote(e.Previous, "previous declaration here")
	}
	b.Emit()
}
