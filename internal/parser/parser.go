package parser

import (
	"paracell/internal/ast"
	"paracell/internal/diag"
	"paracell/internal/lexer"
	"paracell/internal/source"
	"paracell/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   ast.FileID
	Errors uint
}

// Parser хранит состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
}

// ParseFile parses every top-level item of the lexer's file into arenas.
// Items that fail to parse are skipped after a diagnostic; parsing resumes at
// the next ';' or declaration keyword.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		lx:     lx,
		arenas: arenas,
		opts:   opts,
	}
	start := lx.Peek().Span
	p.file = arenas.NewFile(start)
	p.lastSpan = source.Span{File: start.File}

	for !p.at(token.EOF) {
		before := p.lx.Peek().Span
		itemID, ok := p.parseElem()
		if ok {
			p.arenas.PushItem(p.file, itemID)
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}
		if p.opts.Enough() {
			break
		}
		p.resyncTop(before)
	}
	f := arenas.Files.Get(p.file)
	f.Span = start.Cover(p.lastSpan)
	return Result{File: p.file, Errors: p.opts.CurrentErrors}
}

// resyncTop skips to the next ';' (consumed) or declaration keyword.
func (p *Parser) resyncTop(before source.Span) {
	if p.lx.Peek().Span == before && !p.at(token.EOF) {
		p.advance()
	}
	for !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.KwLet, token.KwVar, token.KwType:
			return
		}
		p.advance()
	}
}

// parseItem parses a declaration or an expression.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwLet, token.KwVar, token.KwType:
		return p.parseDecl()
	default:
		return p.parseBinary(precPipe)
	}
}

func (p *Parser) parseDecl() (ast.ItemID, bool) {
	kw := p.advance()
	kind := ast.ItemLet
	switch kw.Kind {
	case token.KwVar:
		kind = ast.ItemVar
	case token.KwType:
		kind = ast.ItemTypeAlias
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name after '"+kw.Text+"'")
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.Assign, diag.SynExpectAssign, "expected '=' after '"+name.Text+"'"); !ok {
		return ast.NoItemID, false
	}
	value, ok := p.parseItem()
	if !ok {
		return ast.NoItemID, false
	}
	sp := kw.Span.Cover(p.span(value))
	return p.arenas.Items.NewBinding(kind, sp, p.intern(name.Text), name.Span, value), true
}
