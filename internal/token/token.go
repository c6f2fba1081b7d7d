package token

import (
	"paracell/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFun && t.Kind <= KwType
}

// IsOperator reports whether the token can start or continue an operator expression.
func (t Token) IsOperator() bool {
	return t.Kind >= Tilde && t.Kind <= Pipe || t.Kind == PipeArrow
}

func (t Token) IsIdent() bool { return t.Kind == Ident }
