package genarena

import (
	"iter"
)

// Iter yields every live element in offset order as (handle, value) pairs.
// The arena must not be mutated during iteration.
func (c *core[T, I, G]) Iter() iter.Seq2[Index[T, I, G], T] {
	return func(yield func(Index[T, I, G], T) bool) {
		n := c.slots.Len()
		for i := 0; i < n; i++ {
			s := c.slots.Get(i)
			if !s.occupied {
				continue
			}
			if !yield(indexAt[T, I, G](i, s.gen), s.value) {
				return
			}
		}
	}
}

// IterReverse yields every live element in descending offset order.
func (c *core[T, I, G]) IterReverse() iter.Seq2[Index[T, I, G], T] {
	return func(yield func(Index[T, I, G], T) bool) {
		for i := c.slots.Len() - 1; i >= 0; i-- {
			s := c.slots.Get(i)
			if !s.occupied {
				continue
			}
			if !yield(indexAt[T, I, G](i, s.gen), s.value) {
				return
			}
		}
	}
}

// IterMut yields a mutable pointer for every live element in offset order.
// The arena must not be otherwise mutated during iteration, and yielded
// pointers follow the same invalidation rules as GetMut.
func (c *core[T, I, G]) IterMut() iter.Seq2[Index[T, I, G], *T] {
	return func(yield func(Index[T, I, G], *T) bool) {
		n := c.slots.Len()
		for i := 0; i < n; i++ {
			p := c.slots.Ref(i)
			if !p.occupied {
				continue
			}
			if !yield(indexAt[T, I, G](i, p.gen), &p.value) {
				return
			}
		}
	}
}

// Values yields every live value in offset order, without handles.
func (c *core[T, I, G]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range c.Iter() {
			if !yield(v) {
				return
			}
		}
	}
}

// Indices yields the handle of every live element in offset order.
func (c *core[T, I, G]) Indices() iter.Seq[Index[T, I, G]] {
	return func(yield func(Index[T, I, G]) bool) {
		for ix := range c.Iter() {
			if !yield(ix) {
				return
			}
		}
	}
}

// Drain removes ALL elements and yields them in offset order. The arena is
// emptied eagerly before the first pair is yielded, so abandoning the
// returned sequence early still leaves the arena empty. Capacity and the
// arena generation are unchanged, as with Clear.
func (c *core[T, I, G]) Drain() iter.Seq2[Index[T, I, G], T] {
	indices := make([]Index[T, I, G], 0, c.live)
	values := make([]T, 0, c.live)
	for ix, v := range c.Iter() {
		indices = append(indices, ix)
		values = append(values, v)
	}
	c.Clear()
	c.logger.LogDrain(len(values))
	return func(yield func(Index[T, I, G], T) bool) {
		for i, ix := range indices {
			if !yield(ix, values[i]) {
				return
			}
		}
	}
}
