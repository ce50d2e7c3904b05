package arenastore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/genarena"
	"github.com/hupe1980/genarena/codec"
)

// Snapshot format, little-endian:
//
//	magic            [4]byte "GARS"
//	version          uint8
//	compression      uint8
//	codec name len   uint8
//	codec name       [n]byte
//	uncompressed len uint64
//	payload len      uint64
//	payload          [payload len]byte
//	checksum         uint32 (CRC-32C over payload)
//
// The header records the codec and compression, so a snapshot can be opened
// without knowing how it was written.

var snapshotMagic = [4]byte{'G', 'A', 'R', 'S'}

const snapshotVersion = 1

// ErrInvalidSnapshot is returned when a blob does not parse as a snapshot:
// wrong magic, unsupported version, checksum mismatch, or unknown codec or
// compression.
var ErrInvalidSnapshot = errors.New("arenastore: invalid snapshot")

// Compression selects the payload compression of a snapshot.
type Compression uint8

const (
	// CompressionNone stores the payload as emitted by the codec.
	CompressionNone Compression = iota
	// CompressionZstd compresses the payload with zstandard.
	CompressionZstd
	// CompressionLZ4 compresses the payload with lz4 block compression.
	CompressionLZ4
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

var (
	zstdOnce sync.Once
	zstdEnc  *zstd.Encoder
	zstdDec  *zstd.Decoder
)

func zstdInit() {
	zstdOnce.Do(func() {
		zstdEnc, _ = zstd.NewWriter(nil)
		zstdDec, _ = zstd.NewReader(nil)
	})
}

type saveOptions struct {
	codec       codec.Codec
	compression Compression
}

// SaveOption configures Save.
type SaveOption func(*saveOptions)

// WithCodec selects the payload codec. Defaults to codec.Default.
func WithCodec(c codec.Codec) SaveOption {
	return func(o *saveOptions) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression selects the payload compression. Defaults to
// CompressionZstd.
func WithCompression(c Compression) SaveOption {
	return func(o *saveOptions) {
		o.compression = c
	}
}

// Save encodes st and writes it to bs under name.
func Save[T any, G comparable](ctx context.Context, bs BlobStore, name string, st genarena.RawState[T, G], optFns ...SaveOption) error {
	o := saveOptions{
		codec:       codec.Default,
		compression: CompressionZstd,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	raw, err := o.codec.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	payload, compression, err := compress(raw, o.compression)
	if err != nil {
		return err
	}

	cn := o.codec.Name()
	if len(cn) > 255 {
		return fmt.Errorf("codec name %q too long", cn)
	}

	buf := make([]byte, 0, 4+3+len(cn)+16+len(payload)+4)
	buf = append(buf, snapshotMagic[:]...)
	buf = append(buf, snapshotVersion, byte(compression), byte(len(cn)))
	buf = append(buf, cn...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(raw)))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(payload)))
	buf = append(buf, payload...)
	buf = binary.LittleEndian.AppendUint32(buf, crc32.Checksum(payload, castagnoli))

	return bs.Put(ctx, name, buf)
}

// Load reads the snapshot named name from bs and decodes it.
func Load[T any, G comparable](ctx context.Context, bs BlobStore, name string) (genarena.RawState[T, G], error) {
	var st genarena.RawState[T, G]

	blob, err := bs.Open(ctx, name)
	if err != nil {
		return st, err
	}
	defer blob.Close()

	data, err := ReadAll(blob)
	if err != nil {
		return st, err
	}

	if len(data) < 4+3+16+4 {
		return st, fmt.Errorf("%w: truncated header", ErrInvalidSnapshot)
	}
	if [4]byte(data[:4]) != snapshotMagic {
		return st, fmt.Errorf("%w: bad magic", ErrInvalidSnapshot)
	}
	if data[4] != snapshotVersion {
		return st, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, data[4])
	}
	compression := Compression(data[5])
	nameLen := int(data[6])
	rest := data[7:]
	if len(rest) < nameLen+16+4 {
		return st, fmt.Errorf("%w: truncated header", ErrInvalidSnapshot)
	}
	codecName := string(rest[:nameLen])
	rest = rest[nameLen:]

	uncompressedLen := binary.LittleEndian.Uint64(rest[:8])
	payloadLen := binary.LittleEndian.Uint64(rest[8:16])
	rest = rest[16:]
	if uint64(len(rest)) != payloadLen+4 {
		return st, fmt.Errorf("%w: payload length mismatch", ErrInvalidSnapshot)
	}
	payload := rest[:payloadLen]
	sum := binary.LittleEndian.Uint32(rest[payloadLen:])
	if crc32.Checksum(payload, castagnoli) != sum {
		return st, fmt.Errorf("%w: checksum mismatch", ErrInvalidSnapshot)
	}

	raw, err := decompress(payload, compression, int(uncompressedLen))
	if err != nil {
		return st, err
	}

	c, ok := codec.ByName(codecName)
	if !ok {
		return st, fmt.Errorf("%w: unknown codec %q", ErrInvalidSnapshot, codecName)
	}
	if err := c.Unmarshal(raw, &st); err != nil {
		return st, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return st, nil
}

func compress(raw []byte, c Compression) ([]byte, Compression, error) {
	switch c {
	case CompressionNone:
		return raw, CompressionNone, nil
	case CompressionZstd:
		zstdInit()
		return zstdEnc.EncodeAll(raw, nil), CompressionZstd, nil
	case CompressionLZ4:
		var lc lz4.Compressor
		dst := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lc.CompressBlock(raw, dst)
		if err != nil {
			return nil, 0, err
		}
		if n == 0 {
			// Incompressible input; store it raw.
			return raw, CompressionNone, nil
		}
		return dst[:n], CompressionLZ4, nil
	default:
		return nil, 0, fmt.Errorf("%w: unknown compression %d", ErrInvalidSnapshot, c)
	}
}

func decompress(payload []byte, c Compression, uncompressedLen int) ([]byte, error) {
	switch c {
	case CompressionNone:
		return payload, nil
	case CompressionZstd:
		zstdInit()
		raw, err := zstdDec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrInvalidSnapshot, err)
		}
		return raw, nil
	case CompressionLZ4:
		raw := make([]byte, uncompressedLen)
		n, err := lz4.UncompressBlock(payload, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %v", ErrInvalidSnapshot, err)
		}
		return raw[:n], nil
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidSnapshot, c)
	}
}
