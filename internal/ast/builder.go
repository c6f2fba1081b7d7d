package ast

import (
	"paracell/internal/source"
)

type Hints struct{ Files, Items uint }

// Builder owns the surface tree of one or more files.
type Builder struct {
	Files   *Files
	Items   *Items
	Strings *source.Interner
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Items == 0 {
		hints.Items = 1 << 8
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Files:   NewFiles(hints.Files),
		Items:   NewItems(hints.Items),
		Strings: strings,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// Name resolves an interned identifier.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}

// Walk visits id and its descendants depth-first, parents before children.
// Returning false from fn skips the children of that node.
func (b *Builder) Walk(id ItemID, fn func(ItemID, *Item) bool) {
	item := b.Items.Get(id)
	if item == nil || !fn(id, item) {
		return
	}
	for _, child := range b.Items.Children(id) {
		b.Walk(child, fn)
	}
}
