// Package store defines the indexed slot-sequence contract the arena core is
// written against, together with the exclusively-owned slice backend.
package store

// Store is a pluggable indexed sequence. The arena core performs all slot
// manipulation through this interface so the same algorithm serves both the
// slice backend and the persistent vector backend.
//
// Ref returns a pointer to the element at i; for copy-on-write backends it
// first establishes unique ownership of the path leading to the element, so
// the pointer never aliases shared structure. Pointers obtained from Ref are
// invalidated by cloning the backend.
type Store[E any] interface {
	Len() int
	Get(i int) E
	Set(i int, v E)
	Ref(i int) *E
	Append(v E)
}

// Slice is the exclusively-owned growable backend: standard contiguous
// storage with cheap mutation and O(n) clone.
type Slice[E any] struct {
	items []E
}

// NewSlice creates a Slice with room for capHint elements.
func NewSlice[E any](capHint int) *Slice[E] {
	if capHint < 0 {
		capHint = 0
	}
	return &Slice[E]{items: make([]E, 0, capHint)}
}

// Len implements Store.
func (s *Slice[E]) Len() int { return len(s.items) }

// Get implements Store.
func (s *Slice[E]) Get(i int) E { return s.items[i] }

// Set implements Store.
func (s *Slice[E]) Set(i int, v E) { s.items[i] = v }

// Ref implements Store.
func (s *Slice[E]) Ref(i int) *E { return &s.items[i] }

// Append implements Store.
func (s *Slice[E]) Append(v E) { s.items = append(s.items, v) }

// Items exposes the backing slice. The arena uses it for the two-pointer
// split that a bounds-checked accessor cannot express.
func (s *Slice[E]) Items() []E { return s.items }

// Clone returns a deep copy.
func (s *Slice[E]) Clone() *Slice[E] {
	c := make([]E, len(s.items), cap(s.items))
	copy(c, s.items)
	return &Slice[E]{items: c}
}
