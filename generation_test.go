package genarena

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationPolicies(t *testing.T) {
	t.Run("Gen64", func(t *testing.T) {
		assert.Equal(t, Gen64(0), Gen64(0).First())
		assert.Equal(t, Gen64(1), Gen64(0).Next())
		assert.True(t, Gen64(1).Before(2))
		assert.False(t, Gen64(2).Before(2))
	})

	t.Run("Gen32Overflow", func(t *testing.T) {
		assert.Panics(t, func() { Gen32(math.MaxUint32).Next() })
	})

	t.Run("NonZeroGen32StartsAtOne", func(t *testing.T) {
		assert.Equal(t, NonZeroGen32(1), NonZeroGen32(0).First())
	})

	t.Run("WrapGen32WrapsToOne", func(t *testing.T) {
		assert.Equal(t, WrapGen32(1), WrapGen32(math.MaxUint32).Next())
		assert.Equal(t, WrapGen32(2), WrapGen32(1).Next())
	})
}

func TestIgnoreGenArena(t *testing.T) {
	a := NewSlab[string](WithCapacity(1))

	old := a.Insert("old")
	_, ok := a.Remove(old)
	require.True(t, ok)

	cur := a.Insert("new")
	require.Equal(t, old.Offset(), cur.Offset())

	// Without generations the recycled slot is indistinguishable: the old
	// handle now resolves to the new occupant.
	v, ok := a.Get(old)
	require.True(t, ok)
	assert.Equal(t, "new", v)
	assert.True(t, old.Equal(cur))
}

func TestFixedGenArena(t *testing.T) {
	a := NewFixedSlab[int]()
	ix := a.Insert(1)

	t.Run("RemovePanics", func(t *testing.T) {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			assert.True(t, errors.Is(err, ErrPrecondition))
		}()
		a.Remove(ix)
	})

	t.Run("RetainPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			a.Retain(func(Index[int, OffInt, FixedGen], int) bool { return false })
		})
	})

	t.Run("ClearAndDrainStillWork", func(t *testing.T) {
		require.Equal(t, 1, a.Len())
		a.Clear()
		assert.Equal(t, 0, a.Len())

		a.Insert(2)
		drained := 0
		for range a.Drain() {
			drained++
		}
		assert.Equal(t, 1, drained)
		assert.Equal(t, 0, a.Len())
	})
}

// cycleGen is a deliberately tiny wrapping counter (1, 2, 3, 1, ...) to make
// the stale-handle re-collision of wrapping policies reproducible.
type cycleGen uint8

func (cycleGen) First() cycleGen          { return 1 }
func (g cycleGen) Before(o cycleGen) bool { return g < o }
func (g cycleGen) Next() cycleGen {
	if g == 3 {
		return 1
	}
	return g + 1
}

func TestWrappingGenerationRecollision(t *testing.T) {
	a := New[string, OffInt, cycleGen](WithCapacity(1))

	first := a.Insert("v1")

	// Lap the counter: three removals bring the arena generation back to
	// the stamp first was minted with.
	for _, v := range []string{"v2", "v3", "v4"} {
		_, ok := a.Remove(first)
		if !ok {
			// first went stale on earlier laps; remove the current one.
			cur := someIndex(t, a)
			_, ok = a.Remove(cur)
			require.True(t, ok)
		}
		a.Insert(v)
	}

	// The counter has wrapped all the way around: the original handle
	// matches the slot's current occupant again.
	v, ok := a.Get(first)
	require.True(t, ok)
	assert.Equal(t, "v4", v)
}

func someIndex[T any, I Offset[I], G Generation[G]](t *testing.T, a *Arena[T, I, G]) Index[T, I, G] {
	t.Helper()
	for ix := range a.Iter() {
		return ix
	}
	t.Fatal("arena is empty")
	panic("unreachable")
}
