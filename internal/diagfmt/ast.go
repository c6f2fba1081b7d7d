package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"paracell/internal/ast"
	"paracell/internal/source"
)

// ASTNode is a serializable view of one surface item.
type ASTNode struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Text     string      `json:"text,omitempty" yaml:"text,omitempty"`
	Span     source.Span `json:"span" yaml:"span"`
	Children []ASTNode   `json:"children,omitempty" yaml:"children,omitempty"`
}

// BuildASTTree converts the top-level items of file into ASTNodes.
func BuildASTTree(b *ast.Builder, file ast.FileID) []ASTNode {
	f := b.Files.Get(file)
	if f == nil {
		return nil
	}
	nodes := make([]ASTNode, 0, len(f.Items))
	for _, id := range f.Items {
		nodes = append(nodes, buildASTNode(b, id))
	}
	return nodes
}

func buildASTNode(b *ast.Builder, id ast.ItemID) ASTNode {
	item := b.Items.Get(id)
	if item == nil {
		return ASTNode{Kind: "Invalid"}
	}
	node := ASTNode{Kind: item.Kind.String(), Span: item.Span}
	add := func(ids ...ast.ItemID) {
		for _, c := range ids {
			if c.IsValid() {
				node.Children = append(node.Children, buildASTNode(b, c))
			}
		}
	}
	switch item.Kind {
	case ast.ItemNat:
		d, _ := b.Items.Nat(id)
		node.Text = d.Text
	case ast.ItemIdent:
		d, _ := b.Items.Ident(id)
		node.Text = b.Name(d.Name)
	case ast.ItemUnary:
		d, _ := b.Items.Unary(id)
		node.Text = d.Op.String()
		add(d.Operand)
	case ast.ItemBinary:
		d, _ := b.Items.Binary(id)
		node.Text = d.Op.String()
		add(d.Left, d.Right)
	case ast.ItemSelect:
		d, _ := b.Items.Select(id)
		node.Text = b.Name(d.Name)
		add(d.Target)
	case ast.ItemIdentItem, ast.ItemLet, ast.ItemVar, ast.ItemTypeAlias:
		var d *ast.BindingData
		if item.Kind == ast.ItemIdentItem {
			d, _ = b.Items.IdentItem(id)
		} else {
			d, _ = b.Items.Decl(id)
		}
		node.Text = b.Name(d.Name)
		add(d.Value)
	case ast.ItemRecordType, ast.ItemUnionType:
		var d *ast.MembersData
		if item.Kind == ast.ItemRecordType {
			d, _ = b.Items.RecordType(id)
		} else {
			d, _ = b.Items.UnionType(id)
		}
		for _, m := range d.Members {
			node.Children = append(node.Children, ASTNode{
				Kind:     "Member",
				Text:     b.Name(m.Name),
				Span:     m.NameSpan,
				Children: []ASTNode{buildASTNode(b, m.Value)},
			})
		}
	case ast.ItemMatch:
		d, _ := b.Items.Match(id)
		add(d.Scrutinee)
		for _, c := range d.Cases {
			node.Children = append(node.Children, ASTNode{
				Kind:     "Case",
				Span:     c.Span,
				Children: []ASTNode{buildASTNode(b, c.Pattern), buildASTNode(b, c.Expr)},
			})
		}
	default:
		add(b.Items.Children(id)...)
	}
	return node
}

// FormatASTPretty prints the surface tree as an indented outline.
func FormatASTPretty(w io.Writer, b *ast.Builder, file ast.FileID, fs *source.FileSet) error {
	for _, n := range BuildASTTree(b, file) {
		if err := writeASTNode(w, n, fs, 0); err != nil {
			return err
		}
	}
	return nil
}

func writeASTNode(w io.Writer, n ASTNode, fs *source.FileSet, depth int) error {
	start, end := fs.Resolve(n.Span)
	text := ""
	if n.Text != "" {
		text = " " + n.Text
	}
	if _, err := fmt.Fprintf(w, "%s%s%s @%s-%s\n", strings.Repeat("  ", depth), n.Kind, text, start, end); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := writeASTNode(w, c, fs, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// FormatASTJSON prints the surface tree as JSON.
func FormatASTJSON(w io.Writer, b *ast.Builder, file ast.FileID) error {
	return encodeJSON(w, BuildASTTree(b, file))
}
