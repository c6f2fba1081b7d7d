package parser

import (
	"paracell/internal/ast"
	"paracell/internal/diag"
	"paracell/internal/token"
)

// parseElem parses a tuple element: either `name: item` (IdentItem) or an item.
func (p *Parser) parseElem() (ast.ItemID, bool) {
	item, ok := p.parseItem()
	if !ok {
		return ast.NoItemID, false
	}
	ident, isIdent := p.arenas.Items.Ident(item)
	if !isIdent || !p.at(token.Colon) {
		return item, true
	}
	nameSpan := p.span(item)
	p.advance()
	value, ok := p.parseItem()
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewBinding(ast.ItemIdentItem, nameSpan.Cover(p.span(value)), ident.Name, nameSpan, value), true
}

// parseElems reads `elem, elem, ...` up to and including closing.
func (p *Parser) parseElems(closing token.Kind) ([]ast.ItemID, token.Token, bool) {
	elems := make([]ast.ItemID, 0, 4)
	for !p.at(closing) && !p.at(token.EOF) {
		elem, ok := p.parseElem()
		if !ok {
			return nil, token.Token{}, false
		}
		elems = append(elems, elem)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	code := diag.SynUnclosedParen
	if closing == token.RBrace {
		code = diag.SynUnclosedBrace
	}
	closeTok, ok := p.expect(closing, code, "expected '"+closing.String()+"', got "+describe(p.lx.Peek()))
	return elems, closeTok, ok
}

// parseTupleRest parses the remainder of a tuple whose '(' is already consumed.
// The result is always a Tuple item, even with one element.
func (p *Parser) parseTupleRest(lp token.Token) (ast.ItemID, bool) {
	elems, closing, ok := p.parseElems(token.RParen)
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewList(ast.ItemTuple, lp.Span.Cover(closing.Span), elems), true
}

// parseParen: `()` and `(a,)` are tuples, `(a)` is grouping, `(a: x)` is a one-field tuple.
func (p *Parser) parseParen() (ast.ItemID, bool) {
	lp := p.advance()
	if p.at(token.RParen) {
		rp := p.advance()
		return p.arenas.Items.NewList(ast.ItemTuple, lp.Span.Cover(rp.Span), nil), true
	}
	first, ok := p.parseElem()
	if !ok {
		return ast.NoItemID, false
	}
	if p.at(token.RParen) {
		rp := p.advance()
		if p.arenas.Items.Get(first).Kind != ast.ItemIdentItem {
			return first, true
		}
		return p.arenas.Items.NewList(ast.ItemTuple, lp.Span.Cover(rp.Span), []ast.ItemID{first}), true
	}
	if _, ok := p.expect(token.Comma, diag.SynUnclosedParen, "expected ',' or ')', got "+describe(p.lx.Peek())); !ok {
		return ast.NoItemID, false
	}
	rest, rp, ok := p.parseElems(token.RParen)
	if !ok {
		return ast.NoItemID, false
	}
	elems := append([]ast.ItemID{first}, rest...)
	return p.arenas.Items.NewList(ast.ItemTuple, lp.Span.Cover(rp.Span), elems), true
}

// parseBlock: `{ item; item; tail }`.
func (p *Parser) parseBlock() (ast.ItemID, bool) {
	lb, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return ast.NoItemID, false
	}
	var elems []ast.ItemID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		item, ok := p.parseElem()
		if !ok {
			return ast.NoItemID, false
		}
		elems = append(elems, item)
		if !p.at(token.Semicolon) {
			break
		}
		p.advance()
	}
	rb, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block, got "+describe(p.lx.Peek()))
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewList(ast.ItemBlock, lb.Span.Cover(rb.Span), elems), true
}

// parseFun parses `fun (params) -> result` and, when a block follows, the literal body.
func (p *Parser) parseFun() (ast.ItemID, bool) {
	kw := p.advance()
	lp, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'fun'")
	if !ok {
		return ast.NoItemID, false
	}
	params, ok := p.parseTupleRest(lp)
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.Arrow, diag.SynExpectArrow, "expected '->' after parameters"); !ok {
		return ast.NoItemID, false
	}
	result, ok := p.parseUnary()
	if !ok {
		return ast.NoItemID, false
	}
	sig := p.arenas.Items.NewFuncType(kw.Span.Cover(p.span(result)), params, result)
	if !p.at(token.LBrace) {
		return sig, true
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewFunc(kw.Span.Cover(p.span(body)), sig, body), true
}

// parseMatch: `match scrutinee { pattern => expr, ... }`.
func (p *Parser) parseMatch() (ast.ItemID, bool) {
	kw := p.advance()
	scrutinee, ok := p.parseBinary(precPipe)
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after match scrutinee"); !ok {
		return ast.NoItemID, false
	}
	var cases []ast.Case
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		pattern, ok := p.parseItem()
		if !ok {
			return ast.NoItemID, false
		}
		if _, ok = p.expect(token.FatArrow, diag.SynExpectFatArrow, "expected '=>' after pattern"); !ok {
			return ast.NoItemID, false
		}
		expr, ok := p.parseItem()
		if !ok {
			return ast.NoItemID, false
		}
		cases = append(cases, ast.Case{Pattern: pattern, Expr: expr, Span: p.span(pattern).Cover(p.span(expr))})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	rb, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close match, got "+describe(p.lx.Peek()))
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewMatch(kw.Span.Cover(rb.Span), scrutinee, cases), true
}

// parseMembers: `record { a: T, ... }` or `union { A: T, ... }`.
func (p *Parser) parseMembers() (ast.ItemID, bool) {
	kw := p.advance()
	kind := ast.ItemRecordType
	if kw.Kind == token.KwUnion {
		kind = ast.ItemUnionType
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after '"+kw.Text+"'"); !ok {
		return ast.NoItemID, false
	}
	var members []ast.Member
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name, got "+describe(p.lx.Peek()))
		if !ok {
			return ast.NoItemID, false
		}
		if _, ok = p.expect(token.Colon, diag.SynExpectColon, "expected ':' after '"+name.Text+"'"); !ok {
			return ast.NoItemID, false
		}
		value, ok := p.parseItem()
		if !ok {
			return ast.NoItemID, false
		}
		members = append(members, ast.Member{Name: p.intern(name.Text), NameSpan: name.Span, Value: value})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	rb, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close "+kw.Text+", got "+describe(p.lx.Peek()))
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewMembers(kind, kw.Span.Cover(rb.Span), members), true
}
