package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001
	LexBadNumber   Code = 1002

	// Синтаксические
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectExpression Code = 2003
	SynUnclosedParen    Code = 2004
	SynUnclosedBrace    Code = 2005
	SynExpectArrow      Code = 2006
	SynExpectAssign     Code = 2007
	SynExpectColon      Code = 2008
	SynExpectFatArrow   Code = 2009

	// Lowering
	SemaInfo            Code = 3000
	SemaUnexpectedNode  Code = 3001
	SemaMixedTuple      Code = 3002
	SemaDuplicateMember Code = 3003

	// Resolution
	SemaUnresolvedSymbol Code = 3010
	SemaDuplicateSymbol  Code = 3011
	SemaNotAType         Code = 3012
	SemaNotAValue        Code = 3013
	SemaUnknownMember    Code = 3014
	SemaRecursiveType    Code = 3015
	SemaIllegalState     Code = 3016

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Project
	ProjManifestNotFound Code = 5001
	ProjManifestInvalid  Code = 5002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	LexInfo:              "Lexical information",
	LexUnknownChar:       "Unknown character",
	LexBadNumber:         "Bad number literal",
	SynInfo:              "Syntax information",
	SynUnexpectedToken:   "Unexpected token",
	SynExpectIdentifier:  "Expected identifier",
	SynExpectExpression:  "Expected expression",
	SynUnclosedParen:     "Unclosed parenthesis",
	SynUnclosedBrace:     "Unclosed brace",
	SynExpectArrow:       "Expected '->'",
	SynExpectAssign:      "Expected '='",
	SynExpectColon:       "Expected ':'",
	SynExpectFatArrow:    "Expected '=>'",
	SemaInfo:             "Semantic information",
	SemaUnexpectedNode:   "Node is not allowed in this position",
	SemaMixedTuple:       "Tuple mixes named and positional elements",
	SemaDuplicateMember:  "Duplicate member name",
	SemaUnresolvedSymbol: "Unresolved symbol",
	SemaDuplicateSymbol:  "Duplicate declaration",
	SemaNotAType:         "Value used as a type",
	SemaNotAValue:        "Type used as a value",
	SemaUnknownMember:    "Unknown member",
	SemaRecursiveType:    "Recursive type without a base case",
	SemaIllegalState:     "Illegal type resolution state",
	IOLoadFileError:      "I/O load file error",
	IOCacheError:         "Cache error",
	ProjManifestNotFound: "paracell.toml not found",
	ProjManifestInvalid:  "Invalid paracell.toml",
	ObsInfo:              "Observability information",
	ObsTimings:           "Pipeline timings",
}

// ID renders the stable code identifier, e.g. SEM3001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
