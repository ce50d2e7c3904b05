package genarena_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/genarena"
	"github.com/hupe1980/genarena/parallel"
)

func Example() {
	a := genarena.NewStandard[string]()

	hello := a.Insert("hello")
	world := a.Insert("world")

	fmt.Println(a.MustGet(hello), a.MustGet(world))

	a.Remove(hello)
	_, ok := a.Get(hello)
	fmt.Println("stale handle resolves:", ok)

	// The freed slot is reused, but the old handle stays stale.
	again := a.Insert("again")
	fmt.Println("slot reused:", again.Offset() == hello.Offset())
	_, ok = a.Get(hello)
	fmt.Println("stale handle resolves:", ok)

	// Output:
	// hello world
	// stale handle resolves: false
	// slot reused: true
	// stale handle resolves: false
}

func ExampleSnapArena_Clone() {
	a := genarena.NewStandardSnap[int]()
	ix := a.Insert(1)

	snap := a.Clone()
	*a.MustGetMut(ix) = 2

	fmt.Println(a.MustGet(ix), snap.MustGet(ix))
	// Output:
	// 2 1
}

func Example_parallelReduce() {
	a := genarena.NewStandard[int]()
	for i := 1; i <= 100; i++ {
		a.Insert(i)
	}

	sum, _ := parallel.Reduce(context.Background(), a.ParIter(), 0,
		func(_ context.Context, acc int, it genarena.Item[int, genarena.OffInt, genarena.Gen64]) (int, error) {
			return acc + it.Value, nil
		},
		func(x, y int) (int, error) { return x + y, nil },
	)

	fmt.Println(sum)
	// Output:
	// 5050
}
