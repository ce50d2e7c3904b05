package genarena

import (
	"fmt"

	"github.com/hupe1980/genarena/internal/store"
)

// DefaultCapacity is the slot count reserved by New when no capacity option
// is given.
const DefaultCapacity = 4

// slot is one cell of the backing sequence: free (threaded onto the free
// list via nextFree) or occupied (stamped with the generation current at
// insertion time). A slot never holds a partially constructed value.
type slot[T any, G comparable] struct {
	occupied bool
	nextFree int // raw offset of the next free slot, or freeNone
	gen      G
	value    T
}

// freeNone terminates the free list.
const freeNone = -1

// core is the slot/free-list engine shared by Arena and SnapArena. It is
// written once against the store contract; the public arena types embed it,
// choose the backend, and add backend-specific capabilities on top. All
// exported methods below are promoted into both public types.
type core[T any, I Offset[I], G Generation[G]] struct {
	slots    store.Store[slot[T, G]]
	gen      G
	live     int
	freeHead int

	logger  *Logger
	metrics MetricsCollector
}

func (c *core[T, I, G]) init(slots store.Store[slot[T, G]], o options) {
	c.slots = slots
	c.gen = firstGeneration[G]()
	c.freeHead = freeNone
	c.logger = o.logger
	c.metrics = o.metrics
	c.grow(o.capacity)
}

// grow appends additional free slots at the tail and threads them onto the
// existing free list, so older offsets stay preferred for reuse.
func (c *core[T, I, G]) grow(additional int) {
	if additional <= 0 {
		return
	}
	start := c.slots.Len()
	end := start + additional
	if end < start {
		panic(fmt.Errorf("%w: reserving %d more slots overflows capacity %d", ErrCapacityExhausted, additional, start))
	}
	// Probe the index policy once so encodings with a ceiling reject the
	// whole growth step up front.
	var off I
	_ = off.FromInt(end - 1)

	oldHead := c.freeHead
	for i := start; i < end; i++ {
		next := i + 1
		if i == end-1 {
			next = oldHead
		}
		c.slots.Append(slot[T, G]{nextFree: next})
	}
	c.freeHead = start
	c.logger.LogGrow(start, end)
	c.metrics.RecordGrow(additional)
}

// Reserve grows capacity by additional free slots. It never shrinks.
// Handles remain valid across growth.
func (c *core[T, I, G]) Reserve(additional int) {
	c.grow(additional)
}

// popFree claims the free-list head for value without touching metrics.
func (c *core[T, I, G]) popFree(value T) (Index[T, I, G], bool) {
	if c.freeHead == freeNone {
		var zero Index[T, I, G]
		return zero, false
	}
	i := c.freeHead
	s := c.slots.Get(i)
	if s.occupied {
		panic(fmt.Errorf("%w: head %d is occupied", ErrCorruptFreeList, i))
	}
	c.freeHead = s.nextFree
	c.slots.Set(i, slot[T, G]{occupied: true, gen: c.gen, value: value})
	c.live++
	return indexAt[T, I, G](i, c.gen), true
}

// TryInsert places value into a free slot and returns its handle. It never
// grows capacity; the second return is false when the arena is full.
func (c *core[T, I, G]) TryInsert(value T) (Index[T, I, G], bool) {
	ix, ok := c.popFree(value)
	if ok {
		c.metrics.RecordInsert(false)
	}
	return ix, ok
}

// Insert places value into the arena, doubling capacity when full, and
// returns its handle. Insertion cost is amortized O(1).
func (c *core[T, I, G]) Insert(value T) Index[T, I, G] {
	if ix, ok := c.popFree(value); ok {
		c.metrics.RecordInsert(false)
		return ix
	}
	c.grow(maxInt(c.slots.Len(), 1))
	ix, ok := c.popFree(value)
	if !ok {
		panic(fmt.Errorf("%w: insert failed after growing", ErrCorruptFreeList))
	}
	c.metrics.RecordInsert(true)
	return ix
}

// Extend inserts all values in order and returns their handles.
func (c *core[T, I, G]) Extend(values ...T) []Index[T, I, G] {
	indices := make([]Index[T, I, G], len(values))
	for i, v := range values {
		indices[i] = c.Insert(v)
	}
	return indices
}

// Get returns the value named by ix. The second return is false when the
// handle is stale (slot since removed or recycled) or out of range.
func (c *core[T, I, G]) Get(ix Index[T, I, G]) (T, bool) {
	i := ix.off.Int()
	if i < 0 || i >= c.slots.Len() {
		var zero T
		return zero, false
	}
	s := c.slots.Get(i)
	if !s.occupied || s.gen != ix.gen {
		var zero T
		return zero, false
	}
	return s.value, true
}

// GetMut returns a pointer to the value named by ix, or nil for a stale or
// out-of-range handle. The pointer is invalidated by capacity growth and,
// for snapshot arenas, by Clone.
func (c *core[T, I, G]) GetMut(ix Index[T, I, G]) (*T, bool) {
	i := ix.off.Int()
	if i < 0 || i >= c.slots.Len() {
		return nil, false
	}
	p := c.slots.Ref(i)
	if !p.occupied || p.gen != ix.gen {
		return nil, false
	}
	return &p.value, true
}

// MustGet is like Get but panics on a stale handle.
func (c *core[T, I, G]) MustGet(ix Index[T, I, G]) T {
	v, ok := c.Get(ix)
	if !ok {
		panic(fmt.Errorf("%w: no element at %s", ErrPrecondition, ix))
	}
	return v
}

// MustGetMut is like GetMut but panics on a stale handle.
func (c *core[T, I, G]) MustGetMut(ix Index[T, I, G]) *T {
	p, ok := c.GetMut(ix)
	if !ok {
		panic(fmt.Errorf("%w: no element at %s", ErrPrecondition, ix))
	}
	return p
}

// Contains reports whether ix names a live element.
func (c *core[T, I, G]) Contains(ix Index[T, I, G]) bool {
	_, ok := c.Get(ix)
	return ok
}

// Remove frees the slot named by ix and returns its value. A stale or
// out-of-range handle is a no-op, not an error. Each successful removal
// advances the arena generation exactly once, so every handle minted before
// the removal stays distinguishable from every handle minted after it.
//
// Remove panics with ErrPrecondition when the generation policy does not
// support removal (FixedGen).
func (c *core[T, I, G]) Remove(ix Index[T, I, G]) (T, bool) {
	var zero T
	i := ix.off.Int()
	if i < 0 || i >= c.slots.Len() {
		return zero, false
	}
	s := c.slots.Get(i)
	if !s.occupied || s.gen != ix.gen {
		c.metrics.RecordRemove(false)
		return zero, false
	}
	next := nextGeneration(c.gen)
	c.slots.Set(i, slot[T, G]{nextFree: c.freeHead})
	c.gen = next
	c.freeHead = i
	c.live--
	c.metrics.RecordRemove(true)
	return s.value, true
}

// Retain keeps only the elements for which predicate returns true, removing
// the rest through the normal removal path so free-list and generation
// bookkeeping stay consistent. Slots are visited in offset order.
//
// Retain panics with ErrPrecondition when the generation policy does not
// support removal (FixedGen).
func (c *core[T, I, G]) Retain(predicate func(ix Index[T, I, G], value T) bool) {
	n := c.slots.Len()
	for i := 0; i < n; i++ {
		s := c.slots.Get(i)
		if !s.occupied {
			continue
		}
		ix := indexAt[T, I, G](i, s.gen)
		if !predicate(ix, s.value) {
			c.Remove(ix)
		}
	}
}

// Clear frees every slot and rebuilds the free list in offset order.
// Capacity and the arena generation are unchanged: handles stamped with an
// older generation stay stale, but a handle minted at the current generation
// just before the clear can match the slot's next occupant.
func (c *core[T, I, G]) Clear() {
	n := c.slots.Len()
	for i := 0; i < n; i++ {
		next := i + 1
		if i == n-1 {
			next = freeNone
		}
		c.slots.Set(i, slot[T, G]{nextFree: next})
	}
	if n > 0 {
		c.freeHead = 0
	} else {
		c.freeHead = freeNone
	}
	c.live = 0
	c.logger.LogClear(n)
}

// Len returns the number of live elements.
func (c *core[T, I, G]) Len() int { return c.live }

// Capacity returns the number of slots, free and occupied.
func (c *core[T, I, G]) Capacity() int { return c.slots.Len() }

// IsEmpty reports whether the arena holds no live elements.
func (c *core[T, I, G]) IsEmpty() bool { return c.live == 0 }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
