package sem

import (
	"paracell/internal/ast"
)

// lowerer is stateless apart from the builder it reads; every call starting
// from the same item produces an identical result.
type lowerer struct {
	b *ast.Builder
}

// ToType lowers id in type position.
func ToType(b *ast.Builder, id ast.ItemID) (*Type, error) {
	return lowerer{b: b}.toType(id)
}

// ToExpr lowers id in expression position.
func ToExpr(b *ast.Builder, id ast.ItemID) (*Expr, error) {
	return lowerer{b: b}.toExpr(id)
}

// ToDecl lowers id in declaration position.
func ToDecl(b *ast.Builder, id ast.ItemID) (*Decl, error) {
	return lowerer{b: b}.toDecl(id)
}

// ToStmt lowers id in statement position.
func ToStmt(b *ast.Builder, id ast.ItemID) (*Stmt, error) {
	return lowerer{b: b}.toStmt(id)
}

// LowerFile lowers every top-level item of file as a declaration.
// The first failure aborts the whole file.
func LowerFile(b *ast.Builder, file ast.FileID) (*SourceFile, error) {
	f := b.Files.Get(file)
	if f == nil {
		return &SourceFile{}, nil
	}
	l := lowerer{b: b}
	out := &SourceFile{Span: f.Span, Decls: make([]*Decl, 0, len(f.Items))}
	for _, id := range f.Items {
		d, err := l.toDecl(id)
		if err != nil {
			return nil, err
		}
		out.Decls = append(out.Decls, d)
	}
	return out, nil
}

func (l lowerer) unexpected(id ast.ItemID, pos Position) error {
	e := &Error{Reason: UnexpectedNode, Position: pos, Item: id}
	if item := l.b.Items.Get(id); item != nil {
		e.Kind = item.Kind
		e.Span = item.Span
	}
	return e
}

func (l lowerer) kind(id ast.ItemID) ast.ItemKind {
	if item := l.b.Items.Get(id); item != nil {
		return item.Kind
	}
	return ast.ItemInvalid
}

func (l lowerer) toDecl(id ast.ItemID) (*Decl, error) {
	item := l.b.Items.Get(id)
	if item == nil || !item.Kind.IsDecl() {
		return nil, l.unexpected(id, PosDecl)
	}
	bd, _ := l.b.Items.Decl(id)
	d := &Decl{
		Origin:   id,
		Span:     item.Span,
		Name:     l.b.Name(bd.Name),
		NameSpan: bd.NameSpan,
	}
	var err error
	switch item.Kind {
	case ast.ItemLet:
		d.Kind = DeclLet
		d.Expr, err = l.toExpr(bd.Value)
	case ast.ItemVar:
		d.Kind = DeclVar
		d.Expr, err = l.toExpr(bd.Value)
	case ast.ItemTypeAlias:
		d.Kind = DeclTypeAlias
		d.Type, err = l.toType(bd.Value)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (l lowerer) toStmt(id ast.ItemID) (*Stmt, error) {
	k := l.kind(id)
	switch {
	case k.IsDecl():
		d, err := l.toDecl(id)
		if err != nil {
			return nil, err
		}
		return &Stmt{Kind: StmtDecl, Decl: d}, nil
	case admitsExpr(k):
		e, err := l.toExpr(id)
		if err != nil {
			return nil, err
		}
		return &Stmt{Kind: StmtExpr, Expr: e}, nil
	default:
		return nil, l.unexpected(id, PosStmt)
	}
}

// admitsExpr mirrors the expression column of the admission table.
func admitsExpr(k ast.ItemKind) bool {
	switch k {
	case ast.ItemNat, ast.ItemIdent, ast.ItemTuple, ast.ItemBlock, ast.ItemFunc,
		ast.ItemMatch, ast.ItemUnary, ast.ItemBinary, ast.ItemApply, ast.ItemSelect, ast.ItemPipe:
		return true
	}
	return false
}

// admitsType mirrors the type column of the admission table.
func admitsType(k ast.ItemKind) bool {
	switch k {
	case ast.ItemIdent, ast.ItemTuple, ast.ItemRecordType, ast.ItemUnionType, ast.ItemFuncType:
		return true
	}
	return false
}
