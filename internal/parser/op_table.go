package parser

import (
	"paracell/internal/ast"
	"paracell/internal/token"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет; все левоассоциативны.
const (
	precPipe           = 1 // |>
	precBitwiseOr      = 2 // |
	precBitwiseAnd     = 3 // &
	precAdditive       = 4 // + -
	precMultiplicative = 5 // * / %
)

// binaryPrec returns the precedence of an infix token.
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.PipeArrow:
		return precPipe, true
	case token.Pipe:
		return precBitwiseOr, true
	case token.Amp:
		return precBitwiseAnd, true
	case token.Plus, token.Minus:
		return precAdditive, true
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, true
	}
	return 0, false
}

// tokenToBinaryOp maps an infix token to its operator; PipeArrow is not an operator.
func tokenToBinaryOp(kind token.Kind) (ast.BinaryOp, bool) {
	switch kind {
	case token.Plus:
		return ast.BinaryAdd, true
	case token.Minus:
		return ast.BinarySub, true
	case token.Star:
		return ast.BinaryMul, true
	case token.Slash:
		return ast.BinaryDiv, true
	case token.Percent:
		return ast.BinaryMod, true
	case token.Amp:
		return ast.BinaryAnd, true
	case token.Pipe:
		return ast.BinaryOr, true
	}
	return 0, false
}

func tokenToUnaryOp(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Tilde:
		return ast.UnaryInvert, true
	case token.Bang:
		return ast.UnaryNot, true
	}
	return 0, false
}
