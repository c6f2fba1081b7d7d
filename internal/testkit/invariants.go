package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"paracell/internal/ast"
	"paracell/internal/source"
)

// CheckSpanInvariants runs span invariants over a parsed file:
//  1. file.Span lies within the content bounds
//  2. every reachable item span is non-empty and belongs to the file
//  3. every child span is contained in its parent span
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	var walkErr error
	var check func(id ast.ItemID, parent source.Span) bool
	check = func(id ast.ItemID, parent source.Span) bool {
		item := b.Items.Get(id)
		if item == nil {
			walkErr = fmt.Errorf("dangling item id=%d", id)
			return false
		}
		sp := item.Span
		switch {
		case sp.End <= sp.Start:
			walkErr = fmt.Errorf("empty %s span: %v", item.Kind, sp)
		case sp.File != sf.ID:
			walkErr = fmt.Errorf("%s span file mismatch: got=%d want=%d", item.Kind, sp.File, sf.ID)
		case !parent.Contains(sp):
			walkErr = fmt.Errorf("%s span %v is outside parent span %v", item.Kind, sp, parent)
		}
		if walkErr != nil {
			return false
		}
		for _, child := range b.Items.Children(id) {
			if !check(child, sp) {
				return false
			}
		}
		return true
	}
	for _, it := range f.Items {
		if !check(it, f.Span) {
			return walkErr
		}
	}
	return nil
}
