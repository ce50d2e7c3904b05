package genarena

import (
	"fmt"
	"iter"
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/genarena/internal/store"
	"github.com/hupe1980/genarena/parallel"
)

// Item is one (handle, value) pair yielded by parallel traversal.
type Item[T any, I Offset[I], G Generation[G]] struct {
	Index Index[T, I, G]
	Value T
}

// MutItem pairs a handle with a pointer to its live element.
type MutItem[T any, I Offset[I], G Generation[G]] struct {
	Index Index[T, I, G]
	Value *T
}

// window is a [start, end) span of raw offsets over a shared occupancy
// bitmap. Splitting is by LIVE element count, not raw offset, so both halves
// carry equal work regardless of how holes are distributed; the k-th live
// offset is located with a rank/select query instead of a scan.
type window struct {
	occ        *roaring.Bitmap
	start, end int
	live       int
}

func (w window) splitAt(k int) (window, window) {
	switch {
	case k <= 0:
		return window{occ: w.occ, start: w.start, end: w.start}, w
	case k >= w.live:
		return w, window{occ: w.occ, start: w.end, end: w.end}
	}
	var rankBefore uint64
	if w.start > 0 {
		rankBefore = w.occ.Rank(uint32(w.start - 1))
	}
	pos, err := w.occ.Select(uint32(rankBefore) + uint32(k) - 1)
	if err != nil {
		panic(fmt.Errorf("%w: occupancy bitmap disagrees with live count: %v", ErrCorruptFreeList, err))
	}
	mid := int(pos) + 1
	left := window{occ: w.occ, start: w.start, end: mid, live: k}
	right := window{occ: w.occ, start: mid, end: w.end, live: w.live - k}
	return left, right
}

func (w window) offsets() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := w.occ.Iterator()
		it.AdvanceIfNeeded(uint32(w.start))
		for it.HasNext() {
			p := int(it.Next())
			if p >= w.end {
				return
			}
			if !yield(p) {
				return
			}
		}
	}
}

// occupancy snapshots which slots are live into a bitmap. Built once per
// traversal; all splits of the resulting view share it read-only.
func (c *core[T, I, G]) occupancy() window {
	n := c.slots.Len()
	if uint64(n) > math.MaxUint32 {
		panic(&OffsetOverflowError{Offset: n - 1, Limit: math.MaxUint32})
	}
	occ := roaring.New()
	for i := 0; i < n; i++ {
		if c.slots.Get(i).occupied {
			occ.Add(uint32(i))
		}
	}
	return window{occ: occ, start: 0, end: n, live: c.live}
}

type parView[T any, I Offset[I], G Generation[G]] struct {
	slots store.Store[slot[T, G]]
	win   window
}

func (v parView[T, I, G]) Len() int { return v.win.live }

func (v parView[T, I, G]) SplitAt(k int) (parallel.Producer[Item[T, I, G]], parallel.Producer[Item[T, I, G]]) {
	l, r := v.win.splitAt(k)
	return parView[T, I, G]{slots: v.slots, win: l}, parView[T, I, G]{slots: v.slots, win: r}
}

func (v parView[T, I, G]) Items() iter.Seq[Item[T, I, G]] {
	return func(yield func(Item[T, I, G]) bool) {
		for i := range v.win.offsets() {
			s := v.slots.Get(i)
			if !yield(Item[T, I, G]{Index: indexAt[T, I, G](i, s.gen), Value: s.value}) {
				return
			}
		}
	}
}

type parMutView[T any, I Offset[I], G Generation[G]] struct {
	slots store.Store[slot[T, G]]
	win   window
}

func (v parMutView[T, I, G]) Len() int { return v.win.live }

func (v parMutView[T, I, G]) SplitAt(k int) (parallel.Producer[MutItem[T, I, G]], parallel.Producer[MutItem[T, I, G]]) {
	l, r := v.win.splitAt(k)
	return parMutView[T, I, G]{slots: v.slots, win: l}, parMutView[T, I, G]{slots: v.slots, win: r}
}

func (v parMutView[T, I, G]) Items() iter.Seq[MutItem[T, I, G]] {
	return func(yield func(MutItem[T, I, G]) bool) {
		for i := range v.win.offsets() {
			p := v.slots.Ref(i)
			if !yield(MutItem[T, I, G]{Index: indexAt[T, I, G](i, p.gen), Value: &p.value}) {
				return
			}
		}
	}
}

// ParIter returns a splittable read-only view of the live elements for use
// with the parallel package. The occupancy snapshot is taken here, once; the
// arena must not be mutated while any traversal over the view is running.
func (c *core[T, I, G]) ParIter() parallel.Producer[Item[T, I, G]] {
	return parView[T, I, G]{slots: c.slots, win: c.occupancy()}
}

// ParIterMut returns a splittable view yielding mutable pointers. Distinct
// elements may be handed to distinct goroutines; the arena itself (insert,
// remove, grow) must not be touched while the traversal runs.
func (a *Arena[T, I, G]) ParIterMut() parallel.Producer[MutItem[T, I, G]] {
	return parMutView[T, I, G]{slots: a.core.slots, win: a.core.occupancy()}
}

// ParIterMut returns a splittable view yielding mutable pointers. Unique
// storage ownership is materialized up front so that concurrent pointer
// resolution performs no structural writes; the cost is one full copy of
// whatever storage is still shared with snapshots.
func (a *SnapArena[T, I, G]) ParIterMut() parallel.Producer[MutItem[T, I, G]] {
	a.vec.Own()
	return parMutView[T, I, G]{slots: a.core.slots, win: a.core.occupancy()}
}
