package arenastore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/genarena"
)

func exportedState(t *testing.T) (genarena.RawState[string, genarena.Gen64], genarena.StandardIndex[string]) {
	t.Helper()
	a := genarena.NewStandard[string]()
	keep := a.Insert("keep me")
	gone := a.Insert("drop me")
	a.Insert("and me")
	_, ok := a.Remove(gone)
	require.True(t, ok)
	return a.Export(), keep
}

func TestSaveLoad(t *testing.T) {
	compressions := map[string]Compression{
		"none": CompressionNone,
		"zstd": CompressionZstd,
		"lz4":  CompressionLZ4,
	}

	for name, compression := range compressions {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			bs := NewMemoryStore()
			st, keep := exportedState(t)

			err := Save(ctx, bs, "snap.bin", st, WithCompression(compression))
			require.NoError(t, err)

			loaded, err := Load[string, genarena.Gen64](ctx, bs, "snap.bin")
			require.NoError(t, err)

			b, err := genarena.Restore[string, genarena.OffInt, genarena.Gen64](loaded)
			require.NoError(t, err)
			assert.Equal(t, 2, b.Len())
			assert.Equal(t, "keep me", b.MustGet(keep))
		})
	}
}

func TestLoadRejectsCorruption(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingBlob", func(t *testing.T) {
		bs := NewMemoryStore()
		_, err := Load[string, genarena.Gen64](ctx, bs, "nope.bin")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("BadMagic", func(t *testing.T) {
		bs := NewMemoryStore()
		require.NoError(t, bs.Put(ctx, "snap.bin", []byte("this is not a snapshot at all...")))
		_, err := Load[string, genarena.Gen64](ctx, bs, "snap.bin")
		assert.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("Truncated", func(t *testing.T) {
		bs := NewMemoryStore()
		st, _ := exportedState(t)
		require.NoError(t, Save(ctx, bs, "snap.bin", st))

		blob, err := bs.Open(ctx, "snap.bin")
		require.NoError(t, err)
		data, err := ReadAll(blob)
		require.NoError(t, err)
		require.NoError(t, blob.Close())

		require.NoError(t, bs.Put(ctx, "snap.bin", data[:len(data)-6]))
		_, err = Load[string, genarena.Gen64](ctx, bs, "snap.bin")
		assert.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("FlippedPayloadByte", func(t *testing.T) {
		bs := NewMemoryStore()
		st, _ := exportedState(t)
		require.NoError(t, Save(ctx, bs, "snap.bin", st, WithCompression(CompressionNone)))

		blob, err := bs.Open(ctx, "snap.bin")
		require.NoError(t, err)
		data, err := ReadAll(blob)
		require.NoError(t, err)
		require.NoError(t, blob.Close())

		data[len(data)-10] ^= 0xff
		require.NoError(t, bs.Put(ctx, "snap.bin", data))
		_, err = Load[string, genarena.Gen64](ctx, bs, "snap.bin")
		assert.ErrorIs(t, err, ErrInvalidSnapshot)
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	bs := NewMemoryStore()

	require.NoError(t, bs.Put(ctx, "a/1", []byte("one")))
	require.NoError(t, bs.Put(ctx, "a/2", []byte("two")))
	require.NoError(t, bs.Put(ctx, "b/1", []byte("three")))

	names, err := bs.List(ctx, "a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1", "a/2"}, names)

	blob, err := bs.Open(ctx, "a/1")
	require.NoError(t, err)
	data, err := ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
	require.NoError(t, blob.Close())

	require.NoError(t, bs.Delete(ctx, "a/1"))
	_, err = bs.Open(ctx, "a/1")
	assert.ErrorIs(t, err, ErrNotFound)
}
