package genarena

// Preset arena configurations. The generic Arena and SnapArena expose the
// full index/generation policy space; these aliases name the combinations
// that cover almost all uses.

// StandardArena pairs int offsets with a 64-bit generation counter: the
// safe default, immune to counter exhaustion in practice.
type StandardArena[T any] = Arena[T, OffInt, Gen64]

// StandardIndex is the handle type of StandardArena.
type StandardIndex[T any] = Index[T, OffInt, Gen64]

// NewStandard creates a StandardArena.
func NewStandard[T any](optFns ...Option) *StandardArena[T] {
	return New[T, OffInt, Gen64](optFns...)
}

// SmallArena packs offset and generation into 32 bits each, halving handle
// size. Capacity is capped at 2^32-1 slots and the arena supports at most
// 2^32-1 removals over its lifetime.
type SmallArena[T any] = Arena[T, Off32, Gen32]

// SmallIndex is the handle type of SmallArena.
type SmallIndex[T any] = Index[T, Off32, Gen32]

// NewSmall creates a SmallArena.
func NewSmall[T any](optFns ...Option) *SmallArena[T] {
	return New[T, Off32, Gen32](optFns...)
}

// WrapArena is SmallArena with a wrapping generation counter: unbounded
// removals, at the price of a theoretical stale-handle collision once a
// single slot's counter laps its full 32-bit cycle.
type WrapArena[T any] = Arena[T, Off32, WrapGen32]

// WrapIndex is the handle type of WrapArena.
type WrapIndex[T any] = Index[T, Off32, WrapGen32]

// NewWrap creates a WrapArena.
func NewWrap[T any](optFns ...Option) *WrapArena[T] {
	return New[T, Off32, WrapGen32](optFns...)
}

// CompactArena uses non-zero encodings for both offset and generation, so
// the zero Index value is detectably invalid and an Index inside a struct
// costs no extra "valid" flag.
type CompactArena[T any] = Arena[T, NonZeroOff32, NonZeroGen32]

// CompactIndex is the handle type of CompactArena.
type CompactIndex[T any] = Index[T, NonZeroOff32, NonZeroGen32]

// NewCompact creates a CompactArena.
func NewCompact[T any](optFns ...Option) *CompactArena[T] {
	return New[T, NonZeroOff32, NonZeroGen32](optFns...)
}

// SlabArena disables generation checking: handles are plain offsets and
// use-after-recycle goes undetected. Removal is still permitted.
type SlabArena[T any] = Arena[T, OffInt, IgnoreGen]

// SlabIndex is the handle type of SlabArena.
type SlabIndex[T any] = Index[T, OffInt, IgnoreGen]

// NewSlab creates a SlabArena.
func NewSlab[T any](optFns ...Option) *SlabArena[T] {
	return New[T, OffInt, IgnoreGen](optFns...)
}

// FixedSlabArena is a grow-only slab: Remove and Retain panic, so a handle
// can never dangle. Clear and Drain remain available for bulk reset.
type FixedSlabArena[T any] = Arena[T, OffInt, FixedGen]

// FixedSlabIndex is the handle type of FixedSlabArena.
type FixedSlabIndex[T any] = Index[T, OffInt, FixedGen]

// NewFixedSlab creates a FixedSlabArena.
func NewFixedSlab[T any](optFns ...Option) *FixedSlabArena[T] {
	return New[T, OffInt, FixedGen](optFns...)
}

// StandardSnapArena is the snapshot-capable counterpart of StandardArena.
type StandardSnapArena[T any] = SnapArena[T, OffInt, Gen64]

// NewStandardSnap creates a StandardSnapArena.
func NewStandardSnap[T any](optFns ...Option) *StandardSnapArena[T] {
	return NewSnap[T, OffInt, Gen64](optFns...)
}

// SmallSnapArena is the snapshot-capable counterpart of SmallArena.
type SmallSnapArena[T any] = SnapArena[T, Off32, Gen32]

// NewSmallSnap creates a SmallSnapArena.
func NewSmallSnap[T any](optFns ...Option) *SmallSnapArena[T] {
	return NewSnap[T, Off32, Gen32](optFns...)
}
