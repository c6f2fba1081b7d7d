// Package sem defines the semantic IR and the lowering pass from the surface tree.
//
// The IR is split by grammatical position: Type, Expr, Decl and Stmt. Each
// lowering function accepts exactly the surface kinds that are legal in its
// position and rejects the rest with an *Error that names the offending item.
//
// Operators have no IR shape of their own: `~x` becomes Apply(Ident("~"), {0: x})
// and `a + b` becomes Apply(Ident("+"), {0: a, 1: b}).
package sem
