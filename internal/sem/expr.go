package sem

import (
	"paracell/internal/ast"
	"paracell/internal/bignum"
	"paracell/internal/source"
)

// ExprKind enumerates semantic expression kinds.
type ExprKind uint8

const (
	ExprNat ExprKind = iota
	ExprIdent
	ExprBlock
	ExprFunc
	// ExprRecord is a field-fill list, positional or named.
	ExprRecord
	// ExprApply is a call; operators lower to it as well.
	ExprApply
	ExprMatch
	ExprSelect
	ExprPipe
)

func (k ExprKind) String() string {
	switch k {
	case ExprNat:
		return "Nat"
	case ExprIdent:
		return "Ident"
	case ExprBlock:
		return "Block"
	case ExprFunc:
		return "Func"
	case ExprRecord:
		return "Record"
	case ExprApply:
		return "Apply"
	case ExprMatch:
		return "Match"
	case ExprSelect:
		return "Select"
	case ExprPipe:
		return "Pipe"
	}
	return "ExprKind(?)"
}

// Expr is a semantic expression node.
type Expr struct {
	Kind   ExprKind
	Origin ast.ItemID
	Span   source.Span
	Data   ExprData
}

// ExprData is the interface for expression-specific payloads.
type ExprData interface {
	exprData()
}

type NatExpr struct {
	Value bignum.Nat
}

type IdentExpr struct {
	Name string
}

// BlockExpr is a statement list; the last Expr statement is the block value.
type BlockExpr struct {
	Stmts []*Stmt
}

type FuncExpr struct {
	Type FuncType
	Body BlockExpr
}

// FieldFill binds one record member in a RecordExpr.
type FieldFill struct {
	Name string
	Span source.Span
	Expr *Expr
}

type RecordExpr struct {
	Fields []FieldFill
}

type ApplyExpr struct {
	Func *Expr
	Args RecordExpr
}

type Case struct {
	Pattern *Expr
	Expr    *Expr
	Span    source.Span
}

type MatchExpr struct {
	Scrutinee *Expr
	Cases     []Case
}

type SelectExpr struct {
	Target   *Expr
	Name     string
	NameSpan source.Span
}

// PipeExpr feeds From into To, left to right.
type PipeExpr struct {
	From *Expr
	To   *Expr
}

func (NatExpr) exprData()    {}
func (IdentExpr) exprData()  {}
func (BlockExpr) exprData()  {}
func (FuncExpr) exprData()   {}
func (RecordExpr) exprData() {}
func (ApplyExpr) exprData()  {}
func (MatchExpr) exprData()  {}
func (SelectExpr) exprData() {}
func (PipeExpr) exprData()   {}

func (e *Expr) AsNat() (NatExpr, bool) {
	d, ok := e.Data.(NatExpr)
	return d, ok
}

func (e *Expr) AsIdent() (IdentExpr, bool) {
	d, ok := e.Data.(IdentExpr)
	return d, ok
}

func (e *Expr) AsBlock() (BlockExpr, bool) {
	d, ok := e.Data.(BlockExpr)
	return d, ok
}

func (e *Expr) AsFunc() (FuncExpr, bool) {
	d, ok := e.Data.(FuncExpr)
	return d, ok
}

func (e *Expr) AsRecord() (RecordExpr, bool) {
	d, ok := e.Data.(RecordExpr)
	return d, ok
}

func (e *Expr) AsApply() (ApplyExpr, bool) {
	d, ok := e.Data.(ApplyExpr)
	return d, ok
}

func (e *Expr) AsMatch() (MatchExpr, bool) {
	d, ok := e.Data.(MatchExpr)
	return d, ok
}

func (e *Expr) AsSelect() (SelectExpr, bool) {
	d, ok := e.Data.(SelectExpr)
	return d, ok
}

func (e *Expr) AsPipe() (PipeExpr, bool) {
	d, ok := e.Data.(PipeExpr)
	return d, ok
}

// Tail returns the trailing expression statement of a block, if any.
func (b BlockExpr) Tail() *Expr {
	if len(b.Stmts) == 0 {
		return nil
	}
	return b.Stmts[len(b.Stmts)-1].Expr
}
