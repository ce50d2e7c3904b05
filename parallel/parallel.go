// Package parallel provides fork-join traversal over splittable data
// sources. A Producer describes a finite sequence that can be cut at any
// position; the traversal functions split it recursively into grain-sized
// leaves and run the leaves on an errgroup-bounded set of goroutines.
package parallel

import (
	"context"
	"iter"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Producer is a splittable source of items.
//
// SplitAt(k) cuts the sequence into its first k items and the rest; both
// halves must be traversable independently and concurrently. Items yields
// the sequence in order. Implementations are typically lightweight views
// into shared read-only state.
type Producer[V any] interface {
	Len() int
	SplitAt(k int) (Producer[V], Producer[V])
	Items() iter.Seq[V]
}

type options struct {
	parallelism int
	grain       int
}

// Option configures a traversal.
type Option func(*options)

// WithParallelism bounds the number of concurrently running leaf tasks.
// Defaults to runtime.GOMAXPROCS(0).
func WithParallelism(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.parallelism = n
		}
	}
}

// WithGrain sets the maximum leaf size. Smaller grains balance better under
// uneven per-item cost, larger grains reduce scheduling overhead. Defaults
// to len/(4*parallelism), at least 1.
func WithGrain(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.grain = n
		}
	}
}

func applyOptions(total int, optFns []Option) options {
	o := options{
		parallelism: runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.grain <= 0 {
		o.grain = total / (4 * o.parallelism)
		if o.grain < 1 {
			o.grain = 1
		}
	}
	return o
}

// leaves splits p recursively into chunks of at most grain items, in order.
func leaves[V any](p Producer[V], grain int) []Producer[V] {
	if p.Len() <= grain {
		return []Producer[V]{p}
	}
	left, right := p.SplitAt(p.Len() / 2)
	return append(leaves(left, grain), leaves(right, grain)...)
}

// ForEach applies fn to every item. Item order within a leaf is preserved;
// leaves run concurrently. The first error cancels the remaining work.
func ForEach[V any](ctx context.Context, p Producer[V], fn func(ctx context.Context, v V) error, optFns ...Option) error {
	o := applyOptions(p.Len(), optFns)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)
	for _, leaf := range leaves(p, o.grain) {
		g.Go(func() error {
			for v := range leaf.Items() {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(ctx, v); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// Collect applies fn to every item and returns the results in the
// producer's order, regardless of which goroutine computed them.
func Collect[V, R any](ctx context.Context, p Producer[V], fn func(ctx context.Context, v V) (R, error), optFns ...Option) ([]R, error) {
	o := applyOptions(p.Len(), optFns)
	out := make([]R, p.Len())
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)
	base := 0
	for _, leaf := range leaves(p, o.grain) {
		start := base
		base += leaf.Len()
		g.Go(func() error {
			i := start
			for v := range leaf.Items() {
				if err := ctx.Err(); err != nil {
					return err
				}
				r, err := fn(ctx, v)
				if err != nil {
					return err
				}
				out[i] = r
				i++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Reduce folds every item into a per-leaf accumulator starting from
// identity, then merges the per-leaf results in producer order. fold and
// merge must be associative with identity for the result to be independent
// of the split.
func Reduce[V, R any](ctx context.Context, p Producer[V], identity R, fold func(ctx context.Context, acc R, v V) (R, error), merge func(a, b R) (R, error), optFns ...Option) (R, error) {
	o := applyOptions(p.Len(), optFns)
	ls := leaves(p, o.grain)
	partial := make([]R, len(ls))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)
	for i, leaf := range ls {
		g.Go(func() error {
			acc := identity
			for v := range leaf.Items() {
				if err := ctx.Err(); err != nil {
					return err
				}
				var err error
				acc, err = fold(ctx, acc, v)
				if err != nil {
					return err
				}
			}
			partial[i] = acc
			return nil
		})
	}
	var zero R
	if err := g.Wait(); err != nil {
		return zero, err
	}
	acc := identity
	for _, part := range partial {
		var err error
		acc, err = merge(acc, part)
		if err != nil {
			return zero, err
		}
	}
	return acc, nil
}
