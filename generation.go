package genarena

import (
	"fmt"
	"math"
)

// Generation is the constraint satisfied by generation counter types.
//
// A generation distinguishes successive occupants of the same slot offset.
// Policies that additionally provide a Next method support removal; policies
// without it (FixedGen) turn the arena into a grow-only slab whose Remove and
// Retain panic with ErrPrecondition.
//
// First returns the value stamped on the first occupant of slot 0 and the
// arena's initial counter. Before is the strict order used for handle
// ordering and for the aliasing tie-break in Get2Mut; it is not necessarily
// numeric less-than, so wrap-aware policies can define their own.
type Generation[G comparable] interface {
	comparable
	First() G
	Before(G) bool
}

// incrementable is the optional capability detected on generation policies
// that allow removal.
type incrementable[G comparable] interface {
	Next() G
}

// nextGeneration advances g, or panics if the policy has no Next method.
func nextGeneration[G comparable](g G) G {
	inc, ok := any(g).(incrementable[G])
	if !ok {
		panic(fmt.Errorf("%w: generation policy %T does not allow removal", ErrPrecondition, g))
	}
	return inc.Next()
}

// firstGeneration returns the initial counter value of policy G.
func firstGeneration[G Generation[G]]() G {
	var zero G
	return zero.First()
}

// Gen64 is a plain 64-bit generation counter. It starts at zero and panics
// with ErrCapacityExhausted if incremented past its width, which at one
// removal per nanosecond takes several centuries.
type Gen64 uint64

// First implements Generation.
func (Gen64) First() Gen64 { return 0 }

// Before implements Generation.
func (g Gen64) Before(o Gen64) bool { return g < o }

// Next returns the successor generation.
func (g Gen64) Next() Gen64 {
	if g == math.MaxUint64 {
		panic(fmt.Errorf("%w: Gen64 overflow", ErrCapacityExhausted))
	}
	return g + 1
}

// Gen32 is a plain 32-bit generation counter. Smaller handles than Gen64,
// but only 2^32-1 removals before the arena must be discarded.
type Gen32 uint32

// First implements Generation.
func (Gen32) First() Gen32 { return 0 }

// Before implements Generation.
func (g Gen32) Before(o Gen32) bool { return g < o }

// Next returns the successor generation.
func (g Gen32) Next() Gen32 {
	if g == math.MaxUint32 {
		panic(fmt.Errorf("%w: Gen32 overflow", ErrCapacityExhausted))
	}
	return g + 1
}

// NonZeroGen32 is a 32-bit generation counter whose live values are never
// zero, so the zero value of an Index built on it is detectably invalid.
// Like Gen32 it panics with ErrCapacityExhausted when exhausted.
type NonZeroGen32 uint32

// First implements Generation. The first generation is 1, not 0.
func (NonZeroGen32) First() NonZeroGen32 { return 1 }

// Before implements Generation.
func (g NonZeroGen32) Before(o NonZeroGen32) bool { return g < o }

// Next returns the successor generation.
func (g NonZeroGen32) Next() NonZeroGen32 {
	if g == math.MaxUint32 {
		panic(fmt.Errorf("%w: NonZeroGen32 overflow", ErrCapacityExhausted))
	}
	return g + 1
}

// WrapGen32 is a 32-bit non-zero generation counter that wraps back to its
// first value instead of overflowing. This trades a theoretical ABA
// re-collision after 2^32-1 removals of the same slot for unbounded arena
// lifetime.
type WrapGen32 uint32

// First implements Generation. The first generation is 1, not 0.
func (WrapGen32) First() WrapGen32 { return 1 }

// Before implements Generation.
func (g WrapGen32) Before(o WrapGen32) bool { return g < o }

// Next returns the successor generation, wrapping past the width back to 1.
func (g WrapGen32) Next() WrapGen32 {
	if g == math.MaxUint32 {
		return 1
	}
	return g + 1
}

// IgnoreGen disables generation checking entirely: all generations compare
// equal and removal never advances anything. The arena degrades to an
// unchecked slot array; use-after-recycle is NOT detected.
type IgnoreGen struct{}

// First implements Generation.
func (IgnoreGen) First() IgnoreGen { return IgnoreGen{} }

// Before implements Generation. It is always false.
func (IgnoreGen) Before(IgnoreGen) bool { return false }

// Next is a no-op; removal is permitted but undetectable.
func (IgnoreGen) Next() IgnoreGen { return IgnoreGen{} }

// FixedGen marks an arena as grow-only: it has no Next method, so Remove and
// Retain panic with ErrPrecondition when instantiated with it. Clear and
// Drain remain available; they free slots without advancing any counter.
type FixedGen struct{}

// First implements Generation.
func (FixedGen) First() FixedGen { return FixedGen{} }

// Before implements Generation. It is always false.
func (FixedGen) Before(FixedGen) bool { return false }
