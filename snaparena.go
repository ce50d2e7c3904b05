package genarena

import (
	"github.com/hupe1980/genarena/internal/pvec"
)

// SnapArena is an Arena variant backed by a persistent vector, trading some
// per-access speed for O(1) snapshots: Clone copies a fixed-size header and
// shares slot storage structurally, and later mutation on either side
// repairs only the paths it touches.
//
// Pointers obtained from GetMut or IterMut before a Clone must not be
// written through afterwards; they may alias storage the snapshot shares.
//
// A SnapArena is not safe for concurrent use without external
// synchronization, with one exception: ParIterMut establishes unique
// storage ownership up front and may then hand disjoint elements to
// multiple goroutines.
type SnapArena[T any, I Offset[I], G Generation[G]] struct {
	core[T, I, G]
	vec *pvec.Vector[slot[T, G]]
}

// NewSnap creates a SnapArena with the given options.
func NewSnap[T any, I Offset[I], G Generation[G]](optFns ...Option) *SnapArena[T, I, G] {
	o := applyOptions(optFns)
	a := &SnapArena[T, I, G]{
		vec: pvec.New[slot[T, G]](),
	}
	a.core.init(a.vec, o)
	return a
}

// Clone returns an independent logical copy in O(1). Both arenas keep the
// same live elements, free list and generation; from this point each evolves
// on its own and handles remain valid on each side for that side's history.
func (a *SnapArena[T, I, G]) Clone() *SnapArena[T, I, G] {
	c := &SnapArena[T, I, G]{
		core: a.core,
		vec:  a.vec.Clone(),
	}
	c.core.slots = c.vec
	return c
}
