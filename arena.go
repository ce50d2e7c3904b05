package genarena

import (
	"fmt"
	"iter"

	"github.com/hupe1980/genarena/internal/store"
)

// Arena is a generation-checked slot allocator backed by exclusively-owned
// contiguous storage. Insert returns an Index handle; later accesses verify
// the handle's generation against the slot, so a handle left over from a
// removed element is detected instead of silently reading the slot's next
// occupant.
//
// The type parameters select the index policy (I) and generation policy (G);
// see the preset aliases (StandardArena, SmallArena, SlabArena, ...) for the
// common combinations.
//
// An Arena is not safe for concurrent use without external synchronization.
type Arena[T any, I Offset[I], G Generation[G]] struct {
	core[T, I, G]
	slice *store.Slice[slot[T, G]]
}

// New creates an Arena with the given options.
func New[T any, I Offset[I], G Generation[G]](optFns ...Option) *Arena[T, I, G] {
	o := applyOptions(optFns)
	a := &Arena[T, I, G]{
		slice: store.NewSlice[slot[T, G]](o.capacity),
	}
	a.core.init(a.slice, o)
	return a
}

// Collect builds an Arena holding every value of seq, inserted in order.
func Collect[T any, I Offset[I], G Generation[G]](seq iter.Seq[T], optFns ...Option) *Arena[T, I, G] {
	a := New[T, I, G](optFns...)
	for v := range seq {
		a.Insert(v)
	}
	return a
}

// Get2Mut returns pointers to two distinct elements at once.
//
// For handles at different offsets each pointer is resolved independently
// (nil when stale). For two handles naming the same offset at different
// generations, at most one can be live: the one the other precedes wins and
// the loser is nil. Calling Get2Mut with two identical handles panics with
// ErrPrecondition, since two mutable references to one element is always a
// caller bug.
func (a *Arena[T, I, G]) Get2Mut(i1, i2 Index[T, I, G]) (*T, *T) {
	if i1.off == i2.off {
		if i1.gen == i2.gen {
			panic(fmt.Errorf("%w: Get2Mut called with identical handles %s", ErrPrecondition, i1))
		}
		if i2.gen.Before(i1.gen) {
			p, _ := a.GetMut(i1)
			return p, nil
		}
		p, _ := a.GetMut(i2)
		return nil, p
	}
	p1, _ := a.GetMut(i1)
	p2, _ := a.GetMut(i2)
	return p1, p2
}

// Clone returns a deep copy. The copy shares no storage with the original;
// handles minted by either side are valid on both until their histories
// diverge. Cloning is O(capacity); for cheap snapshots use SnapArena.
func (a *Arena[T, I, G]) Clone() *Arena[T, I, G] {
	c := &Arena[T, I, G]{
		core:  a.core,
		slice: a.slice.Clone(),
	}
	c.core.slots = c.slice
	return c
}
