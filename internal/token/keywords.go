package token

var keywords = map[string]Kind{
	"fun":    KwFun,
	"match":  KwMatch,
	"record": KwRecord,
	"union":  KwUnion,
	"tuple":  KwTuple,
	"let":    KwLet,
	"var":    KwVar,
	"type":   KwType,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
