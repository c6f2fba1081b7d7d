// Package diag collects diagnostics produced by the lexer, parser, lowering and resolver.
// Phases report through Reporter and never print; rendering lives in diagfmt.
package diag
