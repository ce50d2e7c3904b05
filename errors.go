package genarena

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExhausted signals that growing the arena would overflow the
	// offset or generation width. There is no sensible fallback, so the
	// operation panics with an error wrapping this sentinel.
	ErrCapacityExhausted = errors.New("genarena: capacity exhausted")

	// ErrCorruptFreeList signals that the free-list head pointed at an
	// occupied slot. This is an internal invariant violation, never a user
	// error; continuing would operate on untrustworthy state.
	ErrCorruptFreeList = errors.New("genarena: corrupt free list")

	// ErrPrecondition signals a caller bug: Get2Mut invoked with two handles
	// of equal offset and equal generation, a Must accessor invoked on a
	// stale handle, or removal attempted under a removal-disabled policy.
	ErrPrecondition = errors.New("genarena: precondition violated")

	// ErrInvalidState signals that an exported arena state failed validation
	// on restore: inconsistent live count, out-of-range free pointers, or a
	// cyclic free list.
	ErrInvalidState = errors.New("genarena: invalid arena state")
)

// OffsetOverflowError indicates an offset that cannot be represented by the
// configured index policy.
//
// The sentinel class can be matched via errors.Is(err, ErrCapacityExhausted).
type OffsetOverflowError struct {
	Offset int
	Limit  uint64
}

func (e *OffsetOverflowError) Error() string {
	return fmt.Sprintf("offset %d exceeds index policy limit %d", e.Offset, e.Limit)
}

func (e *OffsetOverflowError) Unwrap() error { return ErrCapacityExhausted }
