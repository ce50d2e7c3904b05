// Package genarena provides a generation-checked slot allocator (a
// generational arena) for Go.
//
// An arena stores values of one type in recyclable slots. Insert returns an
// Index handle carrying the slot offset and a generation stamp; when a slot
// is removed and later reused, the stamp changes, so a handle held across
// the recycle is detected as stale instead of silently resolving to the new
// occupant. This gives graph-like data structures (entities, scene nodes,
// intrusive lists) stable, copyable, serializable references without the
// aliasing hazards of raw pointers or the silent corruption of raw slice
// indices.
//
// # Quick Start
//
//	a := genarena.NewStandard[string]()
//	ix := a.Insert("hello")
//
//	v, ok := a.Get(ix)        // "hello", true
//	a.Remove(ix)
//	_, ok = a.Get(ix)         // false: handle is stale
//
//	reused := a.Insert("world")
//	_, ok = a.Get(ix)         // still false, even if reused == same slot
//	_ = reused
//
// # Choosing a preset
//
// NewStandard is the safe default (int offsets, 64-bit generations). Other
// presets trade safety margins for handle size: NewSmall and NewWrap pack
// handles into 64 bits, NewCompact additionally makes the zero Index value
// invalid, NewSlab drops generation checking entirely, and NewFixedSlab
// forbids removal so handles can never dangle. The generic New exposes the
// full policy space.
//
// # Snapshots
//
// SnapArena (NewStandardSnap, ...) keeps the same API on persistent
// storage: Clone costs O(1) and the clone and original evolve
// independently. Use it for speculative mutation, cheap undo, or handing a
// consistent view to readers while writes continue.
//
// # Parallel traversal
//
// ParIter and ParIterMut expose the live elements as splittable views for
// the parallel subpackage, which distributes grain-sized leaves over an
// errgroup:
//
//	sum, _ := parallel.Reduce(ctx, a.ParIter(), 0,
//		func(_ context.Context, acc int, it genarena.Item[string, genarena.OffInt, genarena.Gen64]) (int, error) {
//			return acc + len(it.Value), nil
//		},
//		func(x, y int) (int, error) { return x + y, nil },
//	)
//
// # Persistence
//
// Export captures the complete arena state; the arenastore subpackage saves
// and loads it through pluggable blob stores (local mmap-backed files,
// MinIO, S3) with optional zstd or lz4 compression. Restore rebuilds an
// arena in which pre-export handles remain valid.
package genarena
