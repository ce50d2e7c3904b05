package genarena

import (
	"fmt"

	"github.com/hupe1980/genarena/internal/pvec"
	"github.com/hupe1980/genarena/internal/store"
)

// RawSlot is the serializable form of one slot. Free slots carry NextFree,
// occupied slots carry Generation and Value; offsets are implicit in slice
// position.
type RawSlot[T any, G comparable] struct {
	Occupied   bool `json:"occupied"`
	NextFree   int  `json:"next_free"`
	Generation G    `json:"generation"`
	Value      T    `json:"value"`
}

// RawState is the complete serializable state of an arena: everything needed
// to rebuild it so that handles minted before export stay valid after
// restore.
type RawState[T any, G comparable] struct {
	Live       int             `json:"live"`
	Generation G               `json:"generation"`
	FreeHead   int             `json:"free_head"`
	Slots      []RawSlot[T, G] `json:"slots"`
}

// Export copies the arena's full state into a RawState. The result shares no
// storage with the arena and can be serialized with any codec.
func (c *core[T, I, G]) Export() RawState[T, G] {
	n := c.slots.Len()
	st := RawState[T, G]{
		Live:       c.live,
		Generation: c.gen,
		FreeHead:   c.freeHead,
		Slots:      make([]RawSlot[T, G], n),
	}
	for i := 0; i < n; i++ {
		s := c.slots.Get(i)
		st.Slots[i] = RawSlot[T, G]{
			Occupied:   s.occupied,
			NextFree:   s.nextFree,
			Generation: s.gen,
			Value:      s.value,
		}
	}
	return st
}

// validate checks the internal consistency of an exported state.
func (st RawState[T, G]) validate() error {
	n := len(st.Slots)
	live := 0
	for _, s := range st.Slots {
		if s.Occupied {
			live++
		}
	}
	if live != st.Live {
		return fmt.Errorf("%w: live count %d does not match %d occupied slots", ErrInvalidState, st.Live, live)
	}
	// Walk the free list: every free slot must be on it exactly once.
	seen := 0
	for i := st.FreeHead; i != freeNone; {
		if i < 0 || i >= n {
			return fmt.Errorf("%w: free pointer %d out of range [0,%d)", ErrInvalidState, i, n)
		}
		if st.Slots[i].Occupied {
			return fmt.Errorf("%w: free list visits occupied slot %d", ErrInvalidState, i)
		}
		seen++
		if seen > n {
			return fmt.Errorf("%w: cyclic free list", ErrInvalidState)
		}
		i = st.Slots[i].NextFree
	}
	if seen != n-live {
		return fmt.Errorf("%w: free list holds %d slots, expected %d", ErrInvalidState, seen, n-live)
	}
	return nil
}

// restore loads st into the core, replacing its entire contents.
func (c *core[T, I, G]) restore(st RawState[T, G]) error {
	if err := st.validate(); err != nil {
		return err
	}
	if n := len(st.Slots); n > 0 {
		var off I
		_ = off.FromInt(n - 1)
	}
	for _, rs := range st.Slots {
		c.slots.Append(slot[T, G]{
			occupied: rs.Occupied,
			nextFree: rs.NextFree,
			gen:      rs.Generation,
			value:    rs.Value,
		})
	}
	c.gen = st.Generation
	c.live = st.Live
	c.freeHead = st.FreeHead
	return nil
}

// Restore rebuilds an Arena from an exported state. The state is validated
// first; an inconsistent state yields an error wrapping ErrInvalidState and
// no arena.
func Restore[T any, I Offset[I], G Generation[G]](st RawState[T, G], optFns ...Option) (*Arena[T, I, G], error) {
	o := applyOptions(optFns)
	o.capacity = 0
	a := &Arena[T, I, G]{
		slice: store.NewSlice[slot[T, G]](len(st.Slots)),
	}
	a.core.init(a.slice, o)
	if err := a.core.restore(st); err != nil {
		return nil, err
	}
	return a, nil
}

// RestoreSnap rebuilds a SnapArena from an exported state.
func RestoreSnap[T any, I Offset[I], G Generation[G]](st RawState[T, G], optFns ...Option) (*SnapArena[T, I, G], error) {
	o := applyOptions(optFns)
	o.capacity = 0
	a := &SnapArena[T, I, G]{
		vec: pvec.New[slot[T, G]](),
	}
	a.core.init(a.vec, o)
	if err := a.core.restore(st); err != nil {
		return nil, err
	}
	return a, nil
}
