package types

import "errors"

var (
	// ErrAlreadyResolved: a cell's members or target were set twice.
	ErrAlreadyResolved = errors.New("type already resolved")
	// ErrUnresolved: members were queried before the cell was back-patched.
	ErrUnresolved = errors.New("type not resolved yet")
	// ErrRecursiveAlias: an alias chain loops back on itself.
	ErrRecursiveAlias = errors.New("recursive type alias")
	ErrKindMismatch   = errors.New("type kind mismatch")
	ErrUnknownMember  = errors.New("unknown member")
	ErrDuplicate      = errors.New("duplicate member")
)
