// Package entity provides an ordered, owning container for game objects with
// cursor-based traversal that tolerates removal of the visited element.
package entity

import (
	"errors"
	"iter"
)

var (
	// ErrAllocation is returned when appending to a store that is at capacity.
	ErrAllocation = errors.New("entity: store capacity exhausted")
	// ErrStaleCursor is reported by a cursor whose store changed after it was
	// issued or last reset.
	ErrStaleCursor = errors.New("entity: stale cursor")
	// ErrCursorAtEnd is returned when removing through a cursor past the last element.
	ErrCursorAtEnd = errors.New("entity: cursor at end")
	// ErrForeignCursor is returned when a cursor is used with a store that did not issue it.
	ErrForeignCursor = errors.New("entity: cursor belongs to another store")
)

type slot[T any] struct {
	value   T
	release func(T)
}

// Store is an ordered collection of values of type T.
//
// Values are kept in insertion order. Each value may carry a release hook
// which runs when the value leaves the store, either through RemoveAt,
// RemoveFunc or Close. A Store is not safe for concurrent use.
type Store[T any] struct {
	slots    []slot[T]
	capacity int // 0 means unbounded
	revision uint64
}

// Option configures a Store.
type Option func(*options)

type options struct {
	capacity int
}

// WithCapacity bounds the number of live values. Appending past the bound
// fails with ErrAllocation.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// New creates an empty store.
func New[T any](opts ...Option) *Store[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	s := &Store[T]{capacity: o.capacity}
	if o.capacity > 0 {
		s.slots = make([]slot[T], 0, o.capacity)
	}
	return s
}

// Len returns the number of values in the store.
func (s *Store[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.slots)
}

// Append adds v to the end of the store. The caller stays responsible for
// any resources v holds.
func (s *Store[T]) Append(v T) error {
	return s.AppendOwned(v, nil)
}

// AppendOwned adds v to the end of the store and hands its lifetime to the
// store: release is called with v when it is removed or the store is closed.
// A nil release behaves like Append.
func (s *Store[T]) AppendOwned(v T, release func(T)) error {
	if s.capacity > 0 && len(s.slots) >= s.capacity {
		return ErrAllocation
	}
	s.slots = append(s.slots, slot[T]{value: v, release: release})
	s.revision++
	return nil
}

// Cursor returns a cursor positioned at the first value, or at the end when
// the store is empty.
func (s *Store[T]) Cursor() *Cursor[T] {
	c := &Cursor[T]{store: s}
	c.Reset()
	return c
}

// RemoveAt removes the value under c, running its release hook. Later
// values shift left so order is preserved, and c moves on to the value
// that followed the removed one. Other cursors over s become stale.
func (s *Store[T]) RemoveAt(c *Cursor[T]) error {
	if c == nil || c.store != s {
		return ErrForeignCursor
	}
	if c.revision != s.revision {
		return ErrStaleCursor
	}
	if c.idx >= len(s.slots) {
		return ErrCursorAtEnd
	}

	removed := s.slots[c.idx]
	copy(s.slots[c.idx:], s.slots[c.idx+1:])
	var zero slot[T]
	s.slots[len(s.slots)-1] = zero
	s.slots = s.slots[:len(s.slots)-1]
	s.revision++
	c.revision = s.revision

	if removed.release != nil {
		removed.release(removed.value)
	}
	return nil
}

// RemoveFunc removes every value for which pred returns true, running their
// release hooks in order, and reports how many were removed.
func (s *Store[T]) RemoveFunc(pred func(*T) bool) int {
	if s == nil {
		return 0
	}
	n := 0
	kept := s.slots[:0]
	var dropped []slot[T]
	for i := range s.slots {
		if pred(&s.slots[i].value) {
			dropped = append(dropped, s.slots[i])
			n++
			continue
		}
		kept = append(kept, s.slots[i])
	}
	if n == 0 {
		return 0
	}
	clear(s.slots[len(kept):])
	s.slots = kept
	s.revision++

	for _, d := range dropped {
		if d.release != nil {
			d.release(d.value)
		}
	}
	return n
}

// All returns an iterator over pointers to the stored values in order.
// The store must not be structurally modified during the iteration.
func (s *Store[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := range s.slots {
			if !yield(&s.slots[i].value) {
				return
			}
		}
	}
}

// Close releases every value in insertion order and empties the store.
// Closing a nil or already empty store does nothing.
func (s *Store[T]) Close() {
	if s == nil || len(s.slots) == 0 {
		return
	}
	slots := s.slots
	s.slots = nil
	s.revision++
	for _, sl := range slots {
		if sl.release != nil {
			sl.release(sl.value)
		}
	}
}

// Cursor marks the value currently being visited in a Store.
//
// A cursor stays valid while the store is only modified through RemoveAt on
// that same cursor. Any other structural change makes it stale: AtEnd then
// reports true and Err returns ErrStaleCursor until Reset is called.
// Cursors come from Store.Cursor; the zero Cursor is always at its end.
type Cursor[T any] struct {
	store    *Store[T]
	idx      int
	revision uint64
}

// Reset moves the cursor back to the store's first value and re-binds it to
// the store's current contents.
func (c *Cursor[T]) Reset() {
	c.idx = 0
	if c.store == nil {
		return
	}
	c.revision = c.store.revision
}

// Advance moves to the next value. It does nothing at the end.
func (c *Cursor[T]) Advance() {
	if c.AtEnd() {
		return
	}
	c.idx++
}

// AtEnd reports whether the cursor references no value.
func (c *Cursor[T]) AtEnd() bool {
	if c.store == nil {
		return true
	}
	return c.revision != c.store.revision || c.idx >= len(c.store.slots)
}

// Value returns a pointer to the current value, or nil at the end.
func (c *Cursor[T]) Value() *T {
	if c.AtEnd() {
		return nil
	}
	return &c.store.slots[c.idx].value
}

// Err returns ErrStaleCursor if the store changed underneath the cursor.
func (c *Cursor[T]) Err() error {
	if c.store == nil {
		return nil
	}
	if c.revision != c.store.revision {
		return ErrStaleCursor
	}
	return nil
}
