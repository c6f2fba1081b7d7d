package parser

import (
	"paracell/internal/ast"
	"paracell/internal/diag"
	"paracell/internal/source"
	"paracell/internal/token"
)

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// advance съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagSpan points at the next token, or just past the last one at EOF.
func (p *Parser) diagSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect ожидает конкретный токен. Если его нет, репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagSpan()
	p.report(code, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// err репортует ошибку на текущем токене
func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	p.opts.CurrentErrors++
	if p.opts.Reporter == nil {
		return
	}
	if p.opts.MaxErrors != 0 && p.opts.CurrentErrors > p.opts.MaxErrors {
		return // достигли лимита
	}
	diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
}

func (p *Parser) span(id ast.ItemID) source.Span {
	if it := p.arenas.Items.Get(id); it != nil {
		return it.Span
	}
	return p.lastSpan
}

func (p *Parser) intern(s string) source.StringID {
	return p.arenas.Strings.Intern(s)
}

// describe renders a token for messages.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident, token.Nat:
		return "'" + tok.Text + "'"
	}
	return "'" + tok.Kind.String() + "'"
}
