package parallel

import (
	"context"
	"errors"
	"iter"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceProducer is the minimal Producer: a view into a shared slice.
type sliceProducer []int

func (s sliceProducer) Len() int { return len(s) }

func (s sliceProducer) SplitAt(k int) (Producer[int], Producer[int]) {
	return s[:k], s[k:]
}

func (s sliceProducer) Items() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

func rangeProducer(n int) sliceProducer {
	s := make(sliceProducer, n)
	for i := range s {
		s[i] = i
	}
	return s
}

func TestLeaves(t *testing.T) {
	p := rangeProducer(100)

	ls := leaves[int](Producer[int](p), 8)
	total := 0
	prev := -1
	for _, leaf := range ls {
		assert.LessOrEqual(t, leaf.Len(), 8)
		total += leaf.Len()
		for v := range leaf.Items() {
			require.Equal(t, prev+1, v)
			prev = v
		}
	}
	assert.Equal(t, 100, total)
}

func TestForEach(t *testing.T) {
	t.Run("VisitsAll", func(t *testing.T) {
		var sum atomic.Int64
		err := ForEach(context.Background(), rangeProducer(1000),
			func(_ context.Context, v int) error {
				sum.Add(int64(v))
				return nil
			},
			WithGrain(32), WithParallelism(4),
		)
		require.NoError(t, err)
		assert.EqualValues(t, 999*1000/2, sum.Load())
	})

	t.Run("ErrorStopsTraversal", func(t *testing.T) {
		boom := errors.New("boom")
		err := ForEach(context.Background(), rangeProducer(1000),
			func(_ context.Context, v int) error {
				if v == 500 {
					return boom
				}
				return nil
			},
			WithGrain(10),
		)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := ForEach(ctx, rangeProducer(100),
			func(context.Context, int) error { return nil },
		)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Empty", func(t *testing.T) {
		err := ForEach(context.Background(), rangeProducer(0),
			func(context.Context, int) error { return nil },
		)
		assert.NoError(t, err)
	})
}

func TestCollect(t *testing.T) {
	got, err := Collect(context.Background(), rangeProducer(500),
		func(_ context.Context, v int) (int, error) {
			return v * v, nil
		},
		WithGrain(3),
	)
	require.NoError(t, err)
	require.Len(t, got, 500)
	for i, v := range got {
		require.Equal(t, i*i, v)
	}
}

func TestReduce(t *testing.T) {
	sum, err := Reduce(context.Background(), rangeProducer(1000), 0,
		func(_ context.Context, acc, v int) (int, error) { return acc + v, nil },
		func(a, b int) (int, error) { return a + b, nil },
		WithGrain(17),
	)
	require.NoError(t, err)
	assert.Equal(t, 999*1000/2, sum)
}

func TestZip(t *testing.T) {
	t.Run("EqualLengths", func(t *testing.T) {
		got, err := Collect(context.Background(),
			Zip[int, int](rangeProducer(100), rangeProducer(100)),
			func(_ context.Context, p Pair[int, int]) (int, error) {
				return p.A + p.B, nil
			},
			WithGrain(9),
		)
		require.NoError(t, err)
		require.Len(t, got, 100)
		for i, v := range got {
			require.Equal(t, 2*i, v)
		}
	})

	t.Run("ShorterSideWins", func(t *testing.T) {
		z := Zip[int, int](rangeProducer(10), rangeProducer(3))
		assert.Equal(t, 3, z.Len())

		var pairs []Pair[int, int]
		for p := range z.Items() {
			pairs = append(pairs, p)
		}
		assert.Equal(t, []Pair[int, int]{{0, 0}, {1, 1}, {2, 2}}, pairs)
	})
}
