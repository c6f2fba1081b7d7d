package diagfmt

import (
	"io"

	"paracell/internal/sem"
)

// IRNode is a serializable view of one Semantic IR node.
type IRNode struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Value    string   `json:"value,omitempty" yaml:"value,omitempty"`
	Children []IRNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// BuildIRTree converts a lowered file into IRNodes, one per declaration.
func BuildIRTree(sf *sem.SourceFile) []IRNode {
	nodes := make([]IRNode, 0, len(sf.Decls))
	for _, d := range sf.Decls {
		nodes = append(nodes, irDecl(d))
	}
	return nodes
}

func irDecl(d *sem.Decl) IRNode {
	n := IRNode{Kind: d.Kind.String(), Name: d.Name}
	if d.Kind == sem.DeclTypeAlias {
		n.Children = []IRNode{irType(d.Type)}
	} else {
		n.Children = []IRNode{irExpr(d.Expr)}
	}
	return n
}

func irType(t *sem.Type) IRNode {
	switch data := t.Data.(type) {
	case sem.IdentType:
		return IRNode{Kind: "TypeIdent", Name: data.Name}
	case sem.RecordType:
		return irFields("RecordType", data.Fields)
	case sem.UnionType:
		n := IRNode{Kind: "UnionType"}
		for _, v := range data.Variants {
			n.Children = append(n.Children, IRNode{Kind: "Variant", Name: v.Name, Children: []IRNode{irType(v.Type)}})
		}
		return n
	case sem.FuncType:
		return irFuncType(data)
	}
	return IRNode{Kind: "Invalid"}
}

func irFields(kind string, fs []sem.Field) IRNode {
	n := IRNode{Kind: kind}
	for _, f := range fs {
		n.Children = append(n.Children, IRNode{Kind: "Field", Name: f.Name, Children: []IRNode{irType(f.Type)}})
	}
	return n
}

func irFuncType(ft sem.FuncType) IRNode {
	return IRNode{Kind: "FuncType", Children: []IRNode{irFields("Params", ft.Params.Fields), irType(ft.Result)}}
}

func irRecord(r sem.RecordExpr) IRNode {
	n := IRNode{Kind: "Record"}
	for _, f := range r.Fields {
		n.Children = append(n.Children, IRNode{Kind: "FieldFill", Name: f.Name, Children: []IRNode{irExpr(f.Expr)}})
	}
	return n
}

func irBlock(b sem.BlockExpr) IRNode {
	n := IRNode{Kind: "Block"}
	for _, s := range b.Stmts {
		if s.Kind == sem.StmtDecl {
			n.Children = append(n.Children, irDecl(s.Decl))
		} else {
			n.Children = append(n.Children, irExpr(s.Expr))
		}
	}
	return n
}

func irExpr(e *sem.Expr) IRNode {
	switch data := e.Data.(type) {
	case sem.NatExpr:
		return IRNode{Kind: "Nat", Value: data.Value.String()}
	case sem.IdentExpr:
		return IRNode{Kind: "Ident", Name: data.Name}
	case sem.BlockExpr:
		return irBlock(data)
	case sem.FuncExpr:
		return IRNode{Kind: "Func", Children: []IRNode{irFuncType(data.Type), irBlock(data.Body)}}
	case sem.RecordExpr:
		return irRecord(data)
	case sem.ApplyExpr:
		return IRNode{Kind: "Apply", Children: []IRNode{irExpr(data.Func), irRecord(data.Args)}}
	case sem.MatchExpr:
		n := IRNode{Kind: "Match", Children: []IRNode{irExpr(data.Scrutinee)}}
		for _, c := range data.Cases {
			n.Children = append(n.Children, IRNode{Kind: "Case", Children: []IRNode{irExpr(c.Pattern), irExpr(c.Expr)}})
		}
		return n
	case sem.SelectExpr:
		return IRNode{Kind: "Select", Name: data.Name, Children: []IRNode{irExpr(data.Target)}}
	case sem.PipeExpr:
		return IRNode{Kind: "Pipe", Children: []IRNode{irExpr(data.From), irExpr(data.To)}}
	}
	return IRNode{Kind: "Invalid"}
}

// FormatIRPretty prints one declaration per line in the compact IR syntax.
func FormatIRPretty(w io.Writer, sf *sem.SourceFile) error {
	return sem.Dump(w, sf)
}

func FormatIRJSON(w io.Writer, sf *sem.SourceFile) error {
	return encodeJSON(w, BuildIRTree(sf))
}

func FormatIRYAML(w io.Writer, sf *sem.SourceFile) error {
	return encodeYAML(w, BuildIRTree(sf))
}
