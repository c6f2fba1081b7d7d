package ast

import (
	"paracell/internal/bignum"
	"paracell/internal/source"
)

// ItemKind tags every surface node. One tagged union covers atoms, types,
// expressions and declarations; lowering decides which positions accept which kinds.
type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemNat
	ItemIdent
	ItemTuple
	ItemBlock
	ItemFunc
	ItemMatch
	ItemTypeTuple
	ItemRecordType
	ItemUnionType
	ItemFuncType
	ItemUnary
	ItemBinary
	ItemApply
	ItemSelect
	ItemPipe
	ItemIdentItem
	ItemLet
	ItemVar
	ItemTypeAlias
)

var itemKindNames = [...]string{
	ItemInvalid:    "Invalid",
	ItemNat:        "Nat",
	ItemIdent:      "Ident",
	ItemTuple:      "Tuple",
	ItemBlock:      "Block",
	ItemFunc:       "Func",
	ItemMatch:      "Match",
	ItemTypeTuple:  "TypeTuple",
	ItemRecordType: "RecordType",
	ItemUnionType:  "UnionType",
	ItemFuncType:   "FuncType",
	ItemUnary:      "UnaryOpExpr",
	ItemBinary:     "BinaryOpExpr",
	ItemApply:      "ApplyExpr",
	ItemSelect:     "Select",
	ItemPipe:       "Pipe",
	ItemIdentItem:  "IdentItem",
	ItemLet:        "LetDecl",
	ItemVar:        "VarDecl",
	ItemTypeAlias:  "TypeAliasDecl",
}

func (k ItemKind) String() string {
	if int(k) < len(itemKindNames) {
		return itemKindNames[k]
	}
	return "ItemKind(?)"
}

// IsDecl reports whether k is one of the declaration forms.
func (k ItemKind) IsDecl() bool {
	return k == ItemLet || k == ItemVar || k == ItemTypeAlias
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type (
	NatData struct {
		Value bignum.Nat
		Text  string
	}
	IdentData struct {
		Name source.StringID
	}
	// ListData backs Tuple, Block and TypeTuple.
	ListData struct {
		Elems []ItemID
	}
	// FuncData is a function literal: Sig is an ItemFuncType, Body an ItemBlock.
	FuncData struct {
		Sig  ItemID
		Body ItemID
	}
	// FuncTypeData: Params is an ItemTuple.
	FuncTypeData struct {
		Params ItemID
		Result ItemID
	}
	MatchData struct {
		Scrutinee ItemID
		Cases     []Case
	}
	Case struct {
		Pattern ItemID
		Expr    ItemID
		Span    source.Span
	}
	// MembersData backs RecordType (fields) and UnionType (variants).
	MembersData struct {
		Members []Member
	}
	Member struct {
		Name     source.StringID
		NameSpan source.Span
		Value    ItemID
	}
	UnaryData struct {
		Op      UnaryOp
		Operand ItemID
	}
	BinaryData struct {
		Op    BinaryOp
		Left  ItemID
		Right ItemID
	}
	// ApplyData: Args is an ItemTuple.
	ApplyData struct {
		Func ItemID
		Args ItemID
	}
	SelectData struct {
		Target   ItemID
		Name     source.StringID
		NameSpan source.Span
	}
	PipeData struct {
		From ItemID
		To   ItemID
	}
	// BindingData backs IdentItem and the three declaration forms.
	BindingData struct {
		Name     source.StringID
		NameSpan source.Span
		Value    ItemID
	}
)

type Items struct {
	Arena     *Arena[Item]
	Nats      *Arena[NatData]
	Idents    *Arena[IdentData]
	Lists     *Arena[ListData]
	Funcs     *Arena[FuncData]
	FuncTypes *Arena[FuncTypeData]
	Matches   *Arena[MatchData]
	Members   *Arena[MembersData]
	Unaries   *Arena[UnaryData]
	Binaries  *Arena[BinaryData]
	Applies   *Arena[ApplyData]
	Selects   *Arena[SelectData]
	Pipes     *Arena[PipeData]
	Bindings  *Arena[BindingData]
}

// NewItems creates per-kind arenas; capHint 0 means 1<<8.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Items{
		Arena:     NewArena[Item](capHint),
		Nats:      NewArena[NatData](capHint),
		Idents:    NewArena[IdentData](capHint),
		Lists:     NewArena[ListData](capHint),
		Funcs:     NewArena[FuncData](capHint / 4),
		FuncTypes: NewArena[FuncTypeData](capHint / 4),
		Matches:   NewArena[MatchData](capHint / 4),
		Members:   NewArena[MembersData](capHint / 4),
		Unaries:   NewArena[UnaryData](capHint / 4),
		Binaries:  NewArena[BinaryData](capHint),
		Applies:   NewArena[ApplyData](capHint),
		Selects:   NewArena[SelectData](capHint / 4),
		Pipes:     NewArena[PipeData](capHint / 4),
		Bindings:  NewArena[BindingData](capHint),
	}
}

func (i *Items) New(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewNat(sp source.Span, value bignum.Nat, text string) ItemID {
	return i.New(ItemNat, sp, PayloadID(i.Nats.Allocate(NatData{Value: value, Text: text})))
}

func (i *Items) NewIdent(sp source.Span, name source.StringID) ItemID {
	return i.New(ItemIdent, sp, PayloadID(i.Idents.Allocate(IdentData{Name: name})))
}

// NewList allocates a Tuple, Block or TypeTuple.
func (i *Items) NewList(kind ItemKind, sp source.Span, elems []ItemID) ItemID {
	switch kind {
	case ItemTuple, ItemBlock, ItemTypeTuple:
	default:
		panic("ast: NewList with non-list kind " + kind.String())
	}
	return i.New(kind, sp, PayloadID(i.Lists.Allocate(ListData{Elems: elems})))
}

func (i *Items) NewFunc(sp source.Span, sig, body ItemID) ItemID {
	return i.New(ItemFunc, sp, PayloadID(i.Funcs.Allocate(FuncData{Sig: sig, Body: body})))
}

func (i *Items) NewFuncType(sp source.Span, params, result ItemID) ItemID {
	return i.New(ItemFuncType, sp, PayloadID(i.FuncTypes.Allocate(FuncTypeData{Params: params, Result: result})))
}

func (i *Items) NewMatch(sp source.Span, scrutinee ItemID, cases []Case) ItemID {
	return i.New(ItemMatch, sp, PayloadID(i.Matches.Allocate(MatchData{Scrutinee: scrutinee, Cases: cases})))
}

// NewMembers allocates a RecordType or UnionType.
func (i *Items) NewMembers(kind ItemKind, sp source.Span, members []Member) ItemID {
	if kind != ItemRecordType && kind != ItemUnionType {
		panic("ast: NewMembers with kind " + kind.String())
	}
	return i.New(kind, sp, PayloadID(i.Members.Allocate(MembersData{Members: members})))
}

func (i *Items) NewUnary(sp source.Span, op UnaryOp, operand ItemID) ItemID {
	return i.New(ItemUnary, sp, PayloadID(i.Unaries.Allocate(UnaryData{Op: op, Operand: operand})))
}

func (i *Items) NewBinary(sp source.Span, op BinaryOp, left, right ItemID) ItemID {
	return i.New(ItemBinary, sp, PayloadID(i.Binaries.Allocate(BinaryData{Op: op, Left: left, Right: right})))
}

func (i *Items) NewApply(sp source.Span, fn, args ItemID) ItemID {
	return i.New(ItemApply, sp, PayloadID(i.Applies.Allocate(ApplyData{Func: fn, Args: args})))
}

func (i *Items) NewSelect(sp source.Span, target ItemID, name source.StringID, nameSpan source.Span) ItemID {
	return i.New(ItemSelect, sp, PayloadID(i.Selects.Allocate(SelectData{Target: target, Name: name, NameSpan: nameSpan})))
}

func (i *Items) NewPipe(sp source.Span, from, to ItemID) ItemID {
	return i.New(ItemPipe, sp, PayloadID(i.Pipes.Allocate(PipeData{From: from, To: to})))
}

// NewBinding allocates an IdentItem, LetDecl, VarDecl or TypeAliasDecl.
func (i *Items) NewBinding(kind ItemKind, sp source.Span, name source.StringID, nameSpan source.Span, value ItemID) ItemID {
	if kind != ItemIdentItem && !kind.IsDecl() {
		panic("ast: NewBinding with kind " + kind.String())
	}
	return i.New(kind, sp, PayloadID(i.Bindings.Allocate(BindingData{Name: name, NameSpan: nameSpan, Value: value})))
}

// narrow returns the payload of id when its kind is one of kinds.
func narrow[T any](i *Items, id ItemID, arena *Arena[T], kinds ...ItemKind) (*T, bool) {
	item := i.Get(id)
	if item == nil || !item.Payload.IsValid() {
		return nil, false
	}
	for _, k := range kinds {
		if item.Kind == k {
			return arena.Get(uint32(item.Payload)), true
		}
	}
	return nil, false
}

func (i *Items) Nat(id ItemID) (*NatData, bool)     { return narrow(i, id, i.Nats, ItemNat) }
func (i *Items) Ident(id ItemID) (*IdentData, bool) { return narrow(i, id, i.Idents, ItemIdent) }
func (i *Items) Tuple(id ItemID) (*ListData, bool)  { return narrow(i, id, i.Lists, ItemTuple) }
func (i *Items) Block(id ItemID) (*ListData, bool)  { return narrow(i, id, i.Lists, ItemBlock) }

func (i *Items) TypeTuple(id ItemID) (*ListData, bool) {
	return narrow(i, id, i.Lists, ItemTypeTuple)
}

func (i *Items) Func(id ItemID) (*FuncData, bool) { return narrow(i, id, i.Funcs, ItemFunc) }

func (i *Items) FuncType(id ItemID) (*FuncTypeData, bool) {
	return narrow(i, id, i.FuncTypes, ItemFuncType)
}

func (i *Items) Match(id ItemID) (*MatchData, bool) { return narrow(i, id, i.Matches, ItemMatch) }

func (i *Items) RecordType(id ItemID) (*MembersData, bool) {
	return narrow(i, id, i.Members, ItemRecordType)
}

func (i *Items) UnionType(id ItemID) (*MembersData, bool) {
	return narrow(i, id, i.Members, ItemUnionType)
}

func (i *Items) Unary(id ItemID) (*UnaryData, bool)   { return narrow(i, id, i.Unaries, ItemUnary) }
func (i *Items) Binary(id ItemID) (*BinaryData, bool) { return narrow(i, id, i.Binaries, ItemBinary) }
func (i *Items) Apply(id ItemID) (*ApplyData, bool)   { return narrow(i, id, i.Applies, ItemApply) }
func (i *Items) Select(id ItemID) (*SelectData, bool) { return narrow(i, id, i.Selects, ItemSelect) }
func (i *Items) Pipe(id ItemID) (*PipeData, bool)     { return narrow(i, id, i.Pipes, ItemPipe) }

func (i *Items) IdentItem(id ItemID) (*BindingData, bool) {
	return narrow(i, id, i.Bindings, ItemIdentItem)
}

// Decl narrows any of LetDecl, VarDecl, TypeAliasDecl.
func (i *Items) Decl(id ItemID) (*BindingData, bool) {
	return narrow(i, id, i.Bindings, ItemLet, ItemVar, ItemTypeAlias)
}

func (i *Items) Let(id ItemID) (*BindingData, bool) { return narrow(i, id, i.Bindings, ItemLet) }
func (i *Items) Var(id ItemID) (*BindingData, bool) { return narrow(i, id, i.Bindings, ItemVar) }

func (i *Items) TypeAlias(id ItemID) (*BindingData, bool) {
	return narrow(i, id, i.Bindings, ItemTypeAlias)
}

// Children lists direct child items in source order.
func (i *Items) Children(id ItemID) []ItemID {
	item := i.Get(id)
	if item == nil {
		return nil
	}
	switch item.Kind {
	case ItemTuple, ItemBlock, ItemTypeTuple:
		l, _ := narrow(i, id, i.Lists, item.Kind)
		return l.Elems
	case ItemFunc:
		f, _ := i.Func(id)
		return []ItemID{f.Sig, f.Body}
	case ItemFuncType:
		f, _ := i.FuncType(id)
		return []ItemID{f.Params, f.Result}
	case ItemMatch:
		m, _ := i.Match(id)
		out := []ItemID{m.Scrutinee}
		for _, c := range m.Cases {
			out = append(out, c.Pattern, c.Expr)
		}
		return out
	case ItemRecordType, ItemUnionType:
		m, _ := narrow(i, id, i.Members, item.Kind)
		out := make([]ItemID, 0, len(m.Members))
		for _, mem := range m.Members {
			out = append(out, mem.Value)
		}
		return out
	case ItemUnary:
		u, _ := i.Unary(id)
		return []ItemID{u.Operand}
	case ItemBinary:
		b, _ := i.Binary(id)
		return []ItemID{b.Left, b.Right}
	case ItemApply:
		a, _ := i.Apply(id)
		return []ItemID{a.Func, a.Args}
	case ItemSelect:
		s, _ := i.Select(id)
		return []ItemID{s.Target}
	case ItemPipe:
		p, _ := i.Pipe(id)
		return []ItemID{p.From, p.To}
	case ItemIdentItem, ItemLet, ItemVar, ItemTypeAlias:
		b, _ := narrow(i, id, i.Bindings, item.Kind)
		return []ItemID{b.Value}
	default:
		return nil
	}
}
