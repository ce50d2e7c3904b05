// Package arenastore persists exported arena state as immutable blobs.
//
// A BlobStore holds whole snapshots under string names; backends exist for
// memory (tests), the local file system (mmap-backed reads), MinIO and S3.
// Save and Load define the self-describing snapshot format on top.
package arenastore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// errors.Is(err, ErrNotFound). The default maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction over immutable snapshot storage.
type BlobStore interface {
	// Put writes a blob atomically: a reader never observes a partial blob.
	Put(ctx context.Context, name string, data []byte) error

	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns all blob names with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Mappable is an optional interface for Blobs that expose their contents as
// a byte slice without copying. The slice is valid until the Blob is closed.
type Mappable interface {
	Bytes() ([]byte, error)
}

// ReadAll reads the entire blob, using the zero-copy path when available.
func ReadAll(b Blob) ([]byte, error) {
	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err == nil {
			out := make([]byte, len(data))
			copy(out, data)
			return out, nil
		}
	}
	out := make([]byte, b.Size())
	if _, err := b.ReadAt(out, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return out, nil
}
