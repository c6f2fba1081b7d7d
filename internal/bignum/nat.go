// Package bignum implements the unbounded natural numbers used for Nat literals.
package bignum

import (
	"errors"
	"fmt"
	"strings"
)

// MaxLimbs is the maximum number of limbs allowed.
const MaxLimbs = 1_000_000

var (
	ErrParse     = errors.New("invalid natural literal")
	ErrMaxLimbs  = errors.New("numeric size limit exceeded")
	ErrDivByZero = errors.New("division by zero")
)

// Nat is an arbitrary-width natural number.
type Nat struct {
	// Limbs are base-2^32 little-endian (Limbs[0] is least significant).
	// Zero is the empty slice.
	Limbs []uint32
}

// FromUint64 creates a Nat from a uint64.
func FromUint64(v uint64) Nat {
	if v == 0 {
		return Nat{}
	}
	lo := uint32(v)       //nolint:gosec // G115: low limb.
	hi := uint32(v >> 32) //nolint:gosec // G115: high limb.
	if hi == 0 {
		return Nat{Limbs: []uint32{lo}}
	}
	return Nat{Limbs: []uint32{lo, hi}}
}

func (n Nat) IsZero() bool {
	return len(trimLimbs(n.Limbs)) == 0
}

// Cmp returns -1, 0 or 1.
func (n Nat) Cmp(m Nat) int {
	a := trimLimbs(n.Limbs)
	b := trimLimbs(m.Limbs)
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

func (n Nat) Equal(m Nat) bool { return n.Cmp(m) == 0 }

// Uint64 converts n to uint64 if it fits.
func (n Nat) Uint64() (uint64, bool) {
	limbs := trimLimbs(n.Limbs)
	switch len(limbs) {
	case 0:
		return 0, true
	case 1:
		return uint64(limbs[0]), true
	case 2:
		return uint64(limbs[0]) | (uint64(limbs[1]) << 32), true
	default:
		return 0, false
	}
}

// MulAddSmall returns n*m + a.
func MulAddSmall(n Nat, m, a uint32) (Nat, error) {
	limbs := trimLimbs(n.Limbs)
	out := make([]uint32, len(limbs)+1)
	carry := uint64(a)
	for i := range limbs {
		cur := uint64(limbs[i])*uint64(m) + carry
		out[i] = uint32(cur) //nolint:gosec // G115: limb arithmetic.
		carry = cur >> 32
	}
	out[len(limbs)] = uint32(carry) //nolint:gosec // G115: limb arithmetic.
	out = trimLimbs(out)
	if len(out) > MaxLimbs {
		return Nat{}, ErrMaxLimbs
	}
	return Nat{Limbs: out}, nil
}

// DivModSmall divides n by d.
func DivModSmall(n Nat, d uint32) (q Nat, r uint32, err error) {
	if d == 0 {
		return Nat{}, 0, ErrDivByZero
	}
	limbs := trimLimbs(n.Limbs)
	if len(limbs) == 0 {
		return Nat{}, 0, nil
	}
	out := make([]uint32, len(limbs))
	var rem uint64
	for i := len(limbs) - 1; i >= 0; i-- {
		cur := (rem << 32) | uint64(limbs[i])
		out[i] = uint32(cur / uint64(d)) //nolint:gosec // G115: quotient fits in uint32.
		rem = cur % uint64(d)
	}
	return Nat{Limbs: trimLimbs(out)}, uint32(rem), nil //nolint:gosec // G115: remainder fits.
}

// ParseLiteral parses a natural literal: decimal, or 0x/0o/0b prefixed, with optional '_' separators.
func ParseLiteral(s string) (Nat, error) {
	if s == "" {
		return Nat{}, ErrParse
	}
	if strings.IndexByte(s, '_') >= 0 {
		s = strings.ReplaceAll(s, "_", "")
	}
	base := uint32(10)
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base = 16
			s = s[2:]
		case 'o', 'O':
			base = 8
			s = s[2:]
		case 'b', 'B':
			base = 2
			s = s[2:]
		}
	}
	if s == "" {
		return Nat{}, ErrParse
	}
	var out Nat
	for i := range len(s) {
		d, ok := digitValue(s[i], base)
		if !ok {
			return Nat{}, fmt.Errorf("%w: %q", ErrParse, s)
		}
		var err error
		out, err = MulAddSmall(out, base, d)
		if err != nil {
			return Nat{}, err
		}
	}
	return out, nil
}

// MustParse is ParseLiteral for literals known to be valid.
func MustParse(s string) Nat {
	n, err := ParseLiteral(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String formats n in decimal.
func (n Nat) String() string {
	limbs := trimLimbs(n.Limbs)
	if len(limbs) == 0 {
		return "0"
	}
	const chunk = uint32(1_000_000_000)
	cur := Nat{Limbs: limbs}
	var parts []uint32
	for !cur.IsZero() {
		q, r, err := DivModSmall(cur, chunk)
		if err != nil {
			return "<format-error>"
		}
		parts = append(parts, r)
		cur = q
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d", parts[len(parts)-1])
	for i := len(parts) - 2; i >= 0; i-- {
		fmt.Fprintf(&sb, "%09d", parts[i])
	}
	return sb.String()
}

// MarshalText renders n as a decimal string in JSON and YAML output.
func (n Nat) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Nat) UnmarshalText(b []byte) error {
	v, err := ParseLiteral(string(b))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

func digitValue(ch byte, base uint32) (uint32, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		d := uint32(ch - '0')
		return d, d < base
	case base == 16 && ch >= 'a' && ch <= 'f':
		return 10 + uint32(ch-'a'), true
	case base == 16 && ch >= 'A' && ch <= 'F':
		return 10 + uint32(ch-'A'), true
	default:
		return 0, false
	}
}

func trimLimbs(limbs []uint32) []uint32 {
	for len(limbs) > 0 && limbs[len(limbs)-1] == 0 {
		limbs = limbs[:len(limbs)-1]
	}
	if len(limbs) == 0 {
		return nil
	}
	return limbs
}
