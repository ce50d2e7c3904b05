package parallel

import (
	"iter"
)

// Pair holds one item from each side of a Zip.
type Pair[A, B any] struct {
	A A
	B B
}

// Zip combines two producers into one that yields pairs of their items at
// equal positions. Its length is the shorter of the two; the longer side's
// surplus is never visited.
func Zip[A, B any](a Producer[A], b Producer[B]) Producer[Pair[A, B]] {
	return zipProducer[A, B]{a: a, b: b}
}

type zipProducer[A, B any] struct {
	a Producer[A]
	b Producer[B]
}

func (z zipProducer[A, B]) Len() int {
	la, lb := z.a.Len(), z.b.Len()
	if la < lb {
		return la
	}
	return lb
}

func (z zipProducer[A, B]) SplitAt(k int) (Producer[Pair[A, B]], Producer[Pair[A, B]]) {
	al, ar := z.a.SplitAt(k)
	bl, br := z.b.SplitAt(k)
	return zipProducer[A, B]{a: al, b: bl}, zipProducer[A, B]{a: ar, b: br}
}

func (z zipProducer[A, B]) Items() iter.Seq[Pair[A, B]] {
	return func(yield func(Pair[A, B]) bool) {
		nextB, stop := iter.Pull(z.b.Items())
		defer stop()
		n := z.Len()
		emitted := 0
		for a := range z.a.Items() {
			if emitted >= n {
				return
			}
			b, ok := nextB()
			if !ok {
				return
			}
			if !yield(Pair[A, B]{A: a, B: b}) {
				return
			}
			emitted++
		}
	}
}
