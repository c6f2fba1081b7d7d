package symbols

import (
	"errors"

	"paracell/internal/diag"
	"paracell/internal/sem"
	"paracell/internal/source"
	"paracell/internal/types"
)

// Options controls a resolve pass over one lowered file.
type Options struct {
	// Table is shared between files when set; otherwise a fresh one is made.
	Table    *Table
	Hints    Hints
	Strings  *source.Interner
	Reporter diag.Reporter
}

// VariantRef is a union constructor resolved through VariantIndex.
type VariantRef struct {
	Union types.TypeID
	Index int
}

// Result captures resolve artefacts for one file.
type Result struct {
	Table     *Table
	FileScope ScopeID
	// Decls maps every declaration to its symbol.
	Decls map[*sem.Decl]SymbolID
	// Refs maps identifier expressions (uses and pattern bindings) to symbols.
	Refs map[*sem.Expr]SymbolID
	// Types maps every resolved type node to its cell.
	Types map[*sem.Type]types.TypeID
	// Variants holds constructor names dispatched on a known union.
	Variants map[*sem.Expr]VariantRef
	// Fields holds selects checked against a known record: expr -> field index.
	Fields map[*sem.Expr]int
}

// Resolve builds scopes for file and binds every name in it. Resolution
// stops at the first error, which is returned and, when opts.Reporter is
// set, reported.
func Resolve(file *sem.SourceFile, opts Options) (Result, error) {
	table := opts.Table
	if table == nil {
		table = NewTable(opts.Hints, opts.Strings, nil)
	}
	res := Result{
		Table:    table,
		Decls:    make(map[*sem.Decl]SymbolID),
		Refs:     make(map[*sem.Expr]SymbolID),
		Types:    make(map[*sem.Type]types.TypeID),
		Variants: make(map[*sem.Expr]VariantRef),
		Fields:   make(map[*sem.Expr]int),
	}
	r := &resolver{
		t:         table,
		res:       &res,
		watermark: table.Types.Len(),
		topLevel:  make(map[*sem.Decl]declState),
	}
	res.FileScope = table.Scopes.New(ScopeFile, table.Prelude(), file.Span)
	r.stack = append(r.stack, res.FileScope)

	if err := r.resolveFile(file); err != nil {
		var se *Error
		if errors.As(err, &se) {
			se.Report(opts.Reporter)
		}
		return res, err
	}
	return res, nil
}

type resolver struct {
	t     *Table
	res   *Result
	stack []ScopeID
	// type cells created before this file are not re-checked
	watermark int
	// top-level values are typed on first use, see typeTopLevel
	topLevel map[*sem.Decl]declState
}

type declState uint8

const (
	declUntracked declState = iota
	declPending
	declActive
	declDone
)

// resolveFile hoists every top-level declaration in source order, so any
// declaration may refer to any other, then resolves type bodies and values.
func (r *resolver) resolveFile(file *sem.SourceFile) error {
	var pending []pendingType
	for _, d := range file.Decls {
		if d.Kind == sem.DeclTypeAlias {
			p, err := r.registerType(d)
			if err != nil {
				return err
			}
			pending = append(pending, p)
			continue
		}
		if _, err := r.declareValue(d, types.NoTypeID); err != nil {
			return err
		}
		r.topLevel[d] = declPending
	}
	if err := r.defineTypes(pending); err != nil {
		return err
	}
	for _, d := range file.Decls {
		if d.Kind == sem.DeclTypeAlias {
			continue
		}
		if err := r.typeTopLevel(d); err != nil {
			return err
		}
	}
	return nil
}

// typeTopLevel resolves a hoisted file-level value the first time it is
// needed, so a use before the declaration still sees its static type.
// A value reached again while its own initializer is being resolved stays
// untyped.
func (r *resolver) typeTopLevel(d *sem.Decl) error {
	if d == nil || r.topLevel[d] != declPending {
		return nil
	}
	r.topLevel[d] = declActive
	saved := r.stack
	r.stack = saved[:1:1]
	ty, err := r.expr(d.Expr)
	r.stack = saved
	if err != nil {
		return err
	}
	r.t.Symbols.Get(r.res.Decls[d]).Type = ty
	r.topLevel[d] = declDone
	return nil
}

func (r *resolver) current() ScopeID {
	return r.stack[len(r.stack)-1]
}

func (r *resolver) enter(kind ScopeKind, span source.Span) ScopeID {
	id := r.t.Scopes.New(kind, r.current(), span)
	r.stack = append(r.stack, id)
	return id
}

func (r *resolver) leave() {
	r.stack = r.stack[:len(r.stack)-1]
}

// declare adds name to the innermost scope; a second declaration of the same
// name in that scope is an error, shadowing an outer one is not.
func (r *resolver) declare(name string, span source.Span, kind SymbolKind, decl *sem.Decl, ty types.TypeID) (SymbolID, error) {
	scopeID := r.current()
	nameID := r.t.Strings.Intern(name)
	scope := r.t.Scopes.Get(scopeID)
	if prev, ok := scope.Decls.Get(nameID); ok {
		return NoSymbolID, &Error{Kind: ErrorDuplicate, Name: name, Span: span, Previous: r.t.Symbols.Get(prev).Span}
	}
	var flags SymbolFlags
	if kind == SymbolVar {
		flags |= SymbolFlagMutable
	}
	id := r.t.Symbols.New(&Symbol{
		Name:  nameID,
		Kind:  kind,
		Scope: scopeID,
		Span:  span,
		Flags: flags,
		Decl:  decl,
		Type:  ty,
	})
	scope.Decls.Insert(nameID, id)
	if decl != nil {
		r.res.Decls[decl] = id
	}
	return id, nil
}

func (r *resolver) declareValue(d *sem.Decl, ty types.TypeID) (SymbolID, error) {
	kind := SymbolLet
	if d.Kind == sem.DeclVar {
		kind = SymbolVar
	}
	return r.declare(d.Name, d.NameSpan, kind, d, ty)
}

func (r *resolver) lookup(name string, span source.Span) (SymbolID, *Symbol, error) {
	id, ok := r.t.Lookup(r.current(), name)
	if !ok {
		return NoSymbolID, nil, &Error{Kind: ErrorUnresolved, Name: name, Span: span}
	}
	return id, r.t.Symbols.Get(id), nil
}

// underlying strips aliases; unknown or cyclic types yield NoTypeID.
func (r *resolver) underlying(id types.TypeID) types.TypeID {
	if id == types.NoTypeID {
		return id
	}
	u, err := r.t.Types.Underlying(id)
	if err != nil {
		return types.NoTypeID
	}
	return u
}

func (r *resolver) unionOf(id types.TypeID) types.TypeID {
	u := r.underlying(id)
	if r.t.Types.Kind(u) == types.KindUnion {
		return u
	}
	return types.NoTypeID
}

func (r *resolver) recordOf(id types.TypeID) types.TypeID {
	u := r.underlying(id)
	if r.t.Types.Kind(u) == types.KindRecord && r.t.Types.Resolved(u) {
		return u
	}
	return types.NoTypeID
}
