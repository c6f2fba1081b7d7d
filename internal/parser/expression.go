package parser

import (
	"paracell/internal/ast"
	"paracell/internal/bignum"
	"paracell/internal/diag"
	"paracell/internal/token"
)

// parseBinary is a precedence-climbing loop over the infix operators.
func (p *Parser) parseBinary(minPrec int) (ast.ItemID, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return ast.NoItemID, false
	}
	for {
		opTok := p.lx.Peek()
		prec, isBinary := binaryPrec(opTok.Kind)
		if !isBinary || prec < minPrec {
			return left, true
		}
		p.advance()
		right, ok := p.parseBinary(prec + 1)
		if !ok {
			return ast.NoItemID, false
		}
		sp := p.span(left).Cover(p.span(right))
		if opTok.Kind == token.PipeArrow {
			left = p.arenas.Items.NewPipe(sp, left, right)
			continue
		}
		op, _ := tokenToBinaryOp(opTok.Kind)
		left = p.arenas.Items.NewBinary(sp, op, left, right)
	}
}

func (p *Parser) parseUnary() (ast.ItemID, bool) {
	tok := p.lx.Peek()
	if op, ok := tokenToUnaryOp(tok.Kind); ok {
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return ast.NoItemID, false
		}
		return p.arenas.Items.NewUnary(tok.Span.Cover(p.span(operand)), op, operand), true
	}
	return p.parsePostfix()
}

// parsePostfix handles application f(...) and member select x.name / x.0.
func (p *Parser) parsePostfix() (ast.ItemID, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoItemID, false
	}
	for {
		switch p.lx.Peek().Kind {
		case token.LParen:
			lp := p.advance()
			args, ok := p.parseTupleRest(lp)
			if !ok {
				return ast.NoItemID, false
			}
			expr = p.arenas.Items.NewApply(p.span(expr).Cover(p.span(args)), expr, args)
		case token.Dot:
			p.advance()
			name := p.lx.Peek()
			if name.Kind != token.Ident && name.Kind != token.Nat {
				p.err(diag.SynExpectIdentifier, "expected member name after '.', got "+describe(name))
				return ast.NoItemID, false
			}
			p.advance()
			expr = p.arenas.Items.NewSelect(p.span(expr).Cover(name.Span), expr, p.intern(name.Text), name.Span)
		default:
			return expr, true
		}
	}
}

func (p *Parser) parsePrimary() (ast.ItemID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Nat:
		p.advance()
		// невалидный литерал уже отрепортил лексер
		val, _ := bignum.ParseLiteral(tok.Text)
		return p.arenas.Items.NewNat(tok.Span, val, tok.Text), true
	case token.Ident:
		p.advance()
		return p.arenas.Items.NewIdent(tok.Span, p.intern(tok.Text)), true
	case token.LParen:
		return p.parseParen()
	case token.LBrace:
		return p.parseBlock()
	case token.KwFun:
		return p.parseFun()
	case token.KwMatch:
		return p.parseMatch()
	case token.KwRecord, token.KwUnion:
		return p.parseMembers()
	case token.KwTuple:
		p.advance()
		lp, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'tuple'")
		if !ok {
			return ast.NoItemID, false
		}
		elems, closing, ok := p.parseElems(token.RParen)
		if !ok {
			return ast.NoItemID, false
		}
		return p.arenas.Items.NewList(ast.ItemTypeTuple, tok.Span.Cover(lp.Span).Cover(closing.Span), elems), true
	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
		return ast.NoItemID, false
	}
}
