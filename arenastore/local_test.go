package arenastore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/genarena"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	bs, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	t.Run("PutOpenRoundTrip", func(t *testing.T) {
		require.NoError(t, bs.Put(ctx, "dir/snap.bin", []byte("payload")))

		blob, err := bs.Open(ctx, "dir/snap.bin")
		require.NoError(t, err)
		defer blob.Close()

		assert.EqualValues(t, 7, blob.Size())

		// Local blobs are mmap-backed.
		m, ok := blob.(Mappable)
		require.True(t, ok)
		data, err := m.Bytes()
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("OverwriteIsAtomicReplace", func(t *testing.T) {
		require.NoError(t, bs.Put(ctx, "x", []byte("v1")))
		require.NoError(t, bs.Put(ctx, "x", []byte("v2 is longer")))

		blob, err := bs.Open(ctx, "x")
		require.NoError(t, err)
		defer blob.Close()
		data, err := ReadAll(blob)
		require.NoError(t, err)
		assert.Equal(t, "v2 is longer", string(data))
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, bs.Put(ctx, "snaps/a", []byte("a")))
		require.NoError(t, bs.Put(ctx, "snaps/b", []byte("b")))

		names, err := bs.List(ctx, "snaps/")
		require.NoError(t, err)
		assert.Equal(t, []string{"snaps/a", "snaps/b"}, names)
	})

	t.Run("DeleteMissingIsNoop", func(t *testing.T) {
		assert.NoError(t, bs.Delete(ctx, "never-existed"))
	})

	t.Run("OpenMissing", func(t *testing.T) {
		_, err := bs.Open(ctx, "never-existed")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("SnapshotRoundTrip", func(t *testing.T) {
		a := genarena.NewStandard[int]()
		ix := a.Insert(42)

		require.NoError(t, Save(ctx, bs, "arena.snap", a.Export()))
		st, err := Load[int, genarena.Gen64](ctx, bs, "arena.snap")
		require.NoError(t, err)

		b, err := genarena.Restore[int, genarena.OffInt, genarena.Gen64](st)
		require.NoError(t, err)
		assert.Equal(t, 42, b.MustGet(ix))
	})
}

func TestThrottled(t *testing.T) {
	ctx := context.Background()

	t.Run("DelegatesAllOperations", func(t *testing.T) {
		bs := NewThrottled(NewMemoryStore(), 1<<30, 1<<20)

		require.NoError(t, bs.Put(ctx, "k", []byte("v")))
		blob, err := bs.Open(ctx, "k")
		require.NoError(t, err)
		data, err := ReadAll(blob)
		require.NoError(t, err)
		assert.Equal(t, "v", string(data))
		require.NoError(t, blob.Close())

		names, err := bs.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"k"}, names)

		require.NoError(t, bs.Delete(ctx, "k"))
	})

	t.Run("LimitsWriteRate", func(t *testing.T) {
		// 1 KiB burst, 10 KiB/s: a 2 KiB put must wait roughly 100ms for
		// the second installment.
		bs := NewThrottled(NewMemoryStore(), 10*1024, 1024)

		start := time.Now()
		require.NoError(t, bs.Put(ctx, "big", make([]byte, 2048)))
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		bs := NewThrottled(NewMemoryStore(), 1, 1)
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		err := bs.Put(ctx, "k", []byte("xx"))
		assert.Error(t, err)
	})
}
