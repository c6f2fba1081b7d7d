package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	Nat

	KwFun    // fun
	KwMatch  // match
	KwRecord // record
	KwUnion  // union
	KwTuple  // tuple
	KwLet    // let
	KwVar    // var
	KwType   // type

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Colon     // :
	Semicolon // ;
	Dot       // .
	Assign    // =
	Arrow     // ->
	FatArrow  // =>
	PipeArrow // |>

	Tilde   // ~
	Bang    // !
	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %
	Amp     // &
	Pipe    // |
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	Nat:       "Nat",
	KwFun:     "fun",
	KwMatch:   "match",
	KwRecord:  "record",
	KwUnion:   "union",
	KwTuple:   "tuple",
	KwLet:     "let",
	KwVar:     "var",
	KwType:    "type",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	Comma:     ",",
	Colon:     ":",
	Semicolon: ";",
	Dot:       ".",
	Assign:    "=",
	Arrow:     "->",
	FatArrow:  "=>",
	PipeArrow: "|>",
	Tilde:     "~",
	Bang:      "!",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Percent:   "%",
	Amp:       "&",
	Pipe:      "|",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
