package genarena

import (
	"fmt"
	"math"
)

// Offset is the constraint satisfied by array-offset encodings.
//
// FromInt and Int must round-trip exactly for every offset in [0, capacity).
// Encodings are allowed to panic (with an error wrapping
// ErrCapacityExhausted) on offsets they cannot represent; the non-zero
// variants do so one step before their width because of the +1 shift.
type Offset[I comparable] interface {
	comparable
	FromInt(int) I
	Int() int
}

// OffInt is the direct int offset encoding.
type OffInt int

// FromInt implements Offset.
func (OffInt) FromInt(n int) OffInt { return OffInt(n) }

// Int implements Offset.
func (o OffInt) Int() int { return int(o) }

// Off32 is the direct 32-bit offset encoding. Halves handle size on 64-bit
// platforms at the cost of a 2^32-1 slot ceiling.
type Off32 uint32

// FromInt implements Offset.
func (Off32) FromInt(n int) Off32 {
	if n < 0 || uint64(n) > math.MaxUint32 {
		panic(&OffsetOverflowError{Offset: n, Limit: math.MaxUint32})
	}
	return Off32(n)
}

// Int implements Offset.
func (o Off32) Int() int { return int(o) }

// NonZeroOffInt stores offset+1 so that the zero value of an Index built on
// it is detectably invalid without an extra discriminant. The shift imposes
// a hard capacity ceiling of MaxInt-1 slots.
type NonZeroOffInt int

// FromInt implements Offset.
func (NonZeroOffInt) FromInt(n int) NonZeroOffInt {
	if n < 0 || n == math.MaxInt {
		panic(&OffsetOverflowError{Offset: n, Limit: math.MaxInt - 1})
	}
	return NonZeroOffInt(n + 1)
}

// Int implements Offset.
func (o NonZeroOffInt) Int() int { return int(o) - 1 }

// NonZeroOff32 is the 32-bit variant of NonZeroOffInt, with a hard capacity
// ceiling of 2^32-2 slots.
type NonZeroOff32 uint32

// FromInt implements Offset.
func (NonZeroOff32) FromInt(n int) NonZeroOff32 {
	if n < 0 || uint64(n) >= math.MaxUint32 {
		panic(&OffsetOverflowError{Offset: n, Limit: math.MaxUint32 - 1})
	}
	return NonZeroOff32(n + 1)
}

// Int implements Offset.
func (o NonZeroOff32) Int() int { return int(o) - 1 }

// Index is a handle into an arena: an (offset, generation) pair returned by
// insertion. It is phantom-typed by the stored value type T, so handles from
// arenas holding different types cannot be mixed up.
//
// An Index is a plain value; copy it freely. The arena does not track which
// handles exist — validity is checked lazily on each access, and a handle
// whose slot was removed (or whose offset lies past current capacity) simply
// fails those checks.
type Index[T any, I Offset[I], G Generation[G]] struct {
	off I
	gen G
}

// IndexFromRaw reassembles a handle from its raw parts, e.g. after the pair
// crossed a serialization boundary. The caller is responsible for the parts
// having come from Raw on the same arena.
func IndexFromRaw[T any, I Offset[I], G Generation[G]](off I, gen G) Index[T, I, G] {
	return Index[T, I, G]{off: off, gen: gen}
}

// indexAt builds a handle for raw offset i stamped with generation g.
func indexAt[T any, I Offset[I], G Generation[G]](i int, g G) Index[T, I, G] {
	var off I
	return Index[T, I, G]{off: off.FromInt(i), gen: g}
}

// Raw returns the raw offset encoding and generation of the handle.
func (ix Index[T, I, G]) Raw() (I, G) { return ix.off, ix.gen }

// Offset returns the handle's array offset.
func (ix Index[T, I, G]) Offset() int { return ix.off.Int() }

// Gen returns the handle's generation.
func (ix Index[T, I, G]) Gen() G { return ix.gen }

// Compare orders handles by offset first and, for equal offsets, by the
// generation policy's Before. It returns -1, 0 or +1. Policies whose Before
// is constant false (IgnoreGen, FixedGen) make equal-offset handles compare
// equal.
func (ix Index[T, I, G]) Compare(o Index[T, I, G]) int {
	a, b := ix.off.Int(), o.off.Int()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	switch {
	case ix.gen.Before(o.gen):
		return -1
	case o.gen.Before(ix.gen):
		return 1
	}
	return 0
}

// Equal reports whether both offset and generation match.
func (ix Index[T, I, G]) Equal(o Index[T, I, G]) bool { return ix == o }

// String implements fmt.Stringer.
func (ix Index[T, I, G]) String() string {
	return fmt.Sprintf("Index(%d@%v)", ix.off.Int(), ix.gen)
}
