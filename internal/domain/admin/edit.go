// Package admin holds state shared by the back-office CRUD screens.
package admin

import "github.com/revobooking/revo-ui/internal/domain/ident"

// EditTarget is the single record of a list currently in edit mode, with its
// isolated buffer. The zero value means no record is being edited, so at most
// one record per list can ever be in edit mode.
type EditTarget[B any] struct {
	id     ident.ID
	buffer B
}

// StartEdit puts id into edit mode with the given buffer, replacing any previous target.
func StartEdit[B any](id ident.ID, buffer B) EditTarget[B] {
	return EditTarget[B]{id: id, buffer: buffer}
}

// Active reports whether a record is being edited.
func (e EditTarget[B]) Active() bool { return !e.id.IsZero() }

// ID returns the record under edit, or the zero ID.
func (e EditTarget[B]) ID() ident.ID { return e.id }

// Buffer returns the edit buffer.
func (e EditTarget[B]) Buffer() B { return e.buffer }

// Is reports whether id is the record being edited.
func (e EditTarget[B]) Is(id ident.ID) bool { return e.Active() && e.id == id }

// Cancel leaves edit mode and discards the buffer.
func (e EditTarget[B]) Cancel() EditTarget[B] { return EditTarget[B]{} }

// List is one resource's admin screen state: the loaded records plus the edit target.
type List[T, B any] struct {
	Items []T
	Edit  EditTarget[B]
}

// StartEditFor looks up id in items via idOf and starts editing it with toBuffer.
// When id is not present the returned target is inactive.
func StartEditFor[T, B any](items []T, id ident.ID, idOf func(T) ident.ID, toBuffer func(T) B) EditTarget[B] {
	if id.IsZero() {
		return EditTarget[B]{}
	}
	for _, item := range items {
		if idOf(item) == id {
			return StartEdit(id, toBuffer(item))
		}
	}
	return EditTarget[B]{}
}
