package genarena

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapArena(t *testing.T) {
	t.Run("BehavesLikeArena", func(t *testing.T) {
		a := NewStandardSnap[string](WithCapacity(4))

		ia := a.Insert("a")
		ib := a.Insert("b")
		a.Remove(ia)
		ic := a.Insert("c")

		assert.Equal(t, ia.Offset(), ic.Offset())
		_, ok := a.Get(ia)
		assert.False(t, ok)
		assert.Equal(t, "b", a.MustGet(ib))
		assert.Equal(t, "c", a.MustGet(ic))
		assert.Equal(t, 2, a.Len())
	})

	t.Run("CloneIsIndependent", func(t *testing.T) {
		a := NewStandardSnap[int]()
		ix := a.Insert(1)
		iy := a.Insert(2)

		snap := a.Clone()

		// Mutations after the clone stay on their own side.
		a.Remove(ix)
		*a.MustGetMut(iy) = 20
		snap.Insert(3)
		*snap.MustGetMut(ix) = 10

		_, ok := a.Get(ix)
		assert.False(t, ok)
		assert.Equal(t, 20, a.MustGet(iy))
		assert.Equal(t, 1, a.Len())

		assert.Equal(t, 10, snap.MustGet(ix))
		assert.Equal(t, 2, snap.MustGet(iy))
		assert.Equal(t, 3, snap.Len())
	})

	t.Run("CloneChain", func(t *testing.T) {
		a := NewStandardSnap[int]()
		ix := a.Insert(0)

		snaps := make([]*StandardSnapArena[int], 0, 8)
		for i := 1; i <= 8; i++ {
			snaps = append(snaps, a.Clone())
			*a.MustGetMut(ix) = i
		}

		// Each snapshot froze the value as of its clone point.
		for i, s := range snaps {
			assert.Equal(t, i, s.MustGet(ix), "snapshot %d", i)
		}
		assert.Equal(t, 8, a.MustGet(ix))
	})

	t.Run("CloneStress", func(t *testing.T) {
		const n = 5000
		a := NewStandardSnap[int]()
		indices := make([]StandardIndex[int], n)
		for i := 0; i < n; i++ {
			indices[i] = a.Insert(i)
		}

		snap := a.Clone()
		for i, ix := range indices {
			if i%3 == 0 {
				a.Remove(ix)
			} else {
				*a.MustGetMut(ix) = -i
			}
		}

		for i, ix := range indices {
			v, ok := snap.Get(ix)
			require.True(t, ok, "snapshot lost element %d", i)
			require.Equal(t, i, v, "snapshot element %d changed", i)
		}
		assert.Equal(t, n, snap.Len())
	})

	t.Run("ExportRestoreRoundTrip", func(t *testing.T) {
		a := NewStandardSnap[string]()
		ix := a.Insert("persist me")
		a.Remove(a.Insert("throwaway"))

		st := a.Export()
		b, err := RestoreSnap[string, OffInt, Gen64](st)
		require.NoError(t, err)

		assert.Equal(t, "persist me", b.MustGet(ix))
		assert.Equal(t, a.Len(), b.Len())
		assert.Equal(t, a.Capacity(), b.Capacity())
	})
}

func BenchmarkSnapArenaClone(b *testing.B) {
	for _, size := range []int{1_000, 100_000} {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			a := NewStandardSnap[int]()
			for i := 0; i < size; i++ {
				a.Insert(i)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = a.Clone()
			}
		})
	}
}

func BenchmarkArenaInsert(b *testing.B) {
	b.Run("slice", func(b *testing.B) {
		a := NewStandard[int]()
		for i := 0; i < b.N; i++ {
			a.Insert(i)
		}
	})
	b.Run("persistent", func(b *testing.B) {
		a := NewStandardSnap[int]()
		for i := 0; i < b.N; i++ {
			a.Insert(i)
		}
	})
}
