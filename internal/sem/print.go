package sem

import (
	"fmt"
	"io"
	"strings"
)

// Printer renders IR nodes in a compact, deterministic text form:
//
//	let v = apply(+, {0: 1, 1: 2})
//	type List = union{Nil: {}, Cons: {head: Nat, tail: List}}
//
// Two IR values print identically iff they are structurally equal
// (origins and spans are not printed).
type Printer struct {
	sb strings.Builder
}

// Dump writes one declaration per line.
func Dump(w io.Writer, f *SourceFile) error {
	for _, d := range f.Decls {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	return nil
}

func (t *Type) String() string {
	var p Printer
	p.typ(t)
	return p.sb.String()
}

func (e *Expr) String() string {
	var p Printer
	p.expr(e)
	return p.sb.String()
}

func (d *Decl) String() string {
	var p Printer
	p.decl(d)
	return p.sb.String()
}

func (s *Stmt) String() string {
	var p Printer
	p.stmt(s)
	return p.sb.String()
}

func (p *Printer) str(s string) { p.sb.WriteString(s) }

func (p *Printer) typ(t *Type) {
	if t == nil {
		p.str("<nil>")
		return
	}
	switch d := t.Data.(type) {
	case IdentType:
		p.str(d.Name)
	case RecordType:
		p.fields(d.Fields)
	case UnionType:
		p.str("union{")
		for i, v := range d.Variants {
			if i > 0 {
				p.str(", ")
			}
			p.str(v.Name)
			p.str(": ")
			p.typ(v.Type)
		}
		p.str("}")
	case FuncType:
		p.funcType(d)
	}
}

func (p *Printer) fields(fs []Field) {
	p.str("{")
	for i, f := range fs {
		if i > 0 {
			p.str(", ")
		}
		p.str(f.Name)
		p.str(": ")
		p.typ(f.Type)
	}
	p.str("}")
}

func (p *Printer) funcType(ft FuncType) {
	p.str("fun")
	p.fields(ft.Params.Fields)
	p.str(" -> ")
	p.typ(ft.Result)
}

func (p *Printer) record(r RecordExpr) {
	p.str("{")
	for i, f := range r.Fields {
		if i > 0 {
			p.str(", ")
		}
		p.str(f.Name)
		p.str(": ")
		p.expr(f.Expr)
	}
	p.str("}")
}

func (p *Printer) block(b BlockExpr) {
	p.str("block{")
	for i, s := range b.Stmts {
		if i > 0 {
			p.str("; ")
		}
		p.stmt(s)
	}
	p.str("}")
}

func (p *Printer) expr(e *Expr) {
	if e == nil {
		p.str("<nil>")
		return
	}
	switch d := e.Data.(type) {
	case NatExpr:
		p.str(d.Value.String())
	case IdentExpr:
		p.str(d.Name)
	case RecordExpr:
		p.record(d)
	case BlockExpr:
		p.block(d)
	case FuncExpr:
		p.funcType(d.Type)
		p.str(" ")
		p.block(d.Body)
	case ApplyExpr:
		p.str("apply(")
		p.expr(d.Func)
		p.str(", ")
		p.record(d.Args)
		p.str(")")
	case MatchExpr:
		p.str("match ")
		p.expr(d.Scrutinee)
		p.str(" {")
		for i, c := range d.Cases {
			if i > 0 {
				p.str(", ")
			}
			p.expr(c.Pattern)
			p.str(" => ")
			p.expr(c.Expr)
		}
		p.str("}")
	case SelectExpr:
		p.expr(d.Target)
		p.str(".")
		p.str(d.Name)
	case PipeExpr:
		p.str("pipe(")
		p.expr(d.From)
		p.str(", ")
		p.expr(d.To)
		p.str(")")
	}
}

func (p *Printer) decl(d *Decl) {
	switch d.Kind {
	case DeclLet:
		p.str("let ")
	case DeclVar:
		p.str("var ")
	case DeclTypeAlias:
		p.str("type ")
	}
	p.str(d.Name)
	p.str(" = ")
	if d.Kind == DeclTypeAlias {
		p.typ(d.Type)
		return
	}
	p.expr(d.Expr)
}

func (p *Printer) stmt(s *Stmt) {
	if s.Kind == StmtDecl {
		p.decl(s.Decl)
		return
	}
	p.expr(s.Expr)
}
