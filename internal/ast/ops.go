package ast

// UnaryOp is a prefix operator.
type UnaryOp uint8

const (
	UnaryInvert UnaryOp = iota // ~
	UnaryNot                   // !
)

// Literal is the identifier an operator lowers to.
func (op UnaryOp) Literal() string {
	switch op {
	case UnaryInvert:
		return "~"
	case UnaryNot:
		return "!"
	}
	panic("ast: unary operator without literal")
}

func (op UnaryOp) String() string { return op.Literal() }

// UnaryOps lists every unary operator.
var UnaryOps = []UnaryOp{UnaryInvert, UnaryNot}

// BinaryOp is an infix operator.
type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota // +
	BinarySub                 // -
	BinaryMul                 // *
	BinaryDiv                 // /
	BinaryMod                 // %
	BinaryAnd                 // &
	BinaryOr                  // |
)

func (op BinaryOp) Literal() string {
	switch op {
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	case BinaryMod:
		return "%"
	case BinaryAnd:
		return "&"
	case BinaryOr:
		return "|"
	}
	panic("ast: binary operator without literal")
}

func (op BinaryOp) String() string { return op.Literal() }

// BinaryOps lists every binary operator.
var BinaryOps = []BinaryOp{BinaryAdd, BinarySub, BinaryMul, BinaryDiv, BinaryMod, BinaryAnd, BinaryOr}
