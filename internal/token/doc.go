// Package token defines lexical token kinds for the flow syntax.
// Invariants:
//   - Token.Text is a slice of the original source, except identifiers which are NFC-normalized.
//   - Token.Span covers the lexeme exactly.
//   - Comments are trivia and never appear in the token stream.
//   - "Nat" and the operator literals are identifiers for the resolver, not keywords.
package token
