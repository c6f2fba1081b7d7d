package sem

import (
	"paracell/internal/ast"
	"paracell/internal/source"
)

type DeclKind uint8

const (
	DeclLet DeclKind = iota
	DeclVar
	DeclTypeAlias
)

func (k DeclKind) String() string {
	switch k {
	case DeclLet:
		return "Let"
	case DeclVar:
		return "Var"
	case DeclTypeAlias:
		return "TypeAlias"
	}
	return "DeclKind(?)"
}

// Decl binds Name to Expr (Let, Var) or to Type (TypeAlias).
type Decl struct {
	Kind     DeclKind
	Origin   ast.ItemID
	Span     source.Span
	Name     string
	NameSpan source.Span
	Expr     *Expr
	Type     *Type
}

type StmtKind uint8

const (
	StmtDecl StmtKind = iota
	StmtExpr
)

// Stmt wraps exactly one of Decl or Expr.
type Stmt struct {
	Kind StmtKind
	Decl *Decl
	Expr *Expr
}

func (s *Stmt) Span() source.Span {
	if s.Kind == StmtDecl {
		return s.Decl.Span
	}
	return s.Expr.Span
}

// SourceFile is the lowered form of one file.
type SourceFile struct {
	Span  source.Span
	Decls []*Decl
}
