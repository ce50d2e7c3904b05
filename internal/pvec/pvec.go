// Package pvec implements a persistent vector: a 32-way branching trie with
// a tail buffer and epoch-based node ownership.
//
// Clone is O(1) and shares internal nodes between the original and the copy;
// every subsequent mutation on either side repairs only the path it touches
// (copy-on-write), so neither side ever observes the other's writes. This is
// what gives an arena built on it snapshot semantics.
//
// # Ownership model
//
// Every node carries the epoch of the vector that created it. A vector may
// mutate a node in place only if the node's epoch matches its own; otherwise
// the node is copied first and the copy stamped with the current epoch
// (the transient trick from Clojure-style vectors). Clone moves BOTH vectors
// to fresh epochs, so all previously created nodes become shared.
//
// Pointers returned by Ref stay valid across further mutation of the same
// vector but are invalidated by Clone: writing through a pre-clone pointer
// afterwards would reach structure the snapshot still shares.
//
// A Vector is not safe for concurrent mutation. Concurrent reads are safe;
// concurrent Ref calls are safe only after Own has materialized unique
// ownership of the whole tree.
package pvec

import (
	"fmt"
	"sync/atomic"
)

const (
	branchBits = 5
	branchSize = 1 << branchBits // 32
	branchMask = branchSize - 1
)

// epochCounter hands out globally unique ownership tokens.
var epochCounter atomic.Uint64

func nextEpoch() uint64 { return epochCounter.Add(1) }

// node is either a branch (children set) or a leaf (items set).
type node[E any] struct {
	owner    uint64
	children []*node[E]
	items    []E
}

// Vector is a persistent sequence of E.
type Vector[E any] struct {
	count int
	shift uint
	root  *node[E]
	tail  []E
	epoch uint64
}

// New creates an empty Vector.
func New[E any]() *Vector[E] {
	epoch := nextEpoch()
	return &Vector[E]{
		shift: branchBits,
		root:  &node[E]{owner: epoch, children: make([]*node[E], branchSize)},
		epoch: epoch,
	}
}

// Len returns the number of elements.
func (v *Vector[E]) Len() int { return v.count }

// tailoff returns the index of the first element stored in the tail buffer.
func (v *Vector[E]) tailoff() int {
	if v.count < branchSize {
		return 0
	}
	return ((v.count - 1) >> branchBits) << branchBits
}

func (v *Vector[E]) check(i int) {
	if i < 0 || i >= v.count {
		panic(fmt.Sprintf("pvec: index %d out of range [0,%d)", i, v.count))
	}
}

// Get returns the element at i.
func (v *Vector[E]) Get(i int) E {
	v.check(i)
	if i >= v.tailoff() {
		return v.tail[i&branchMask]
	}
	n := v.root
	for level := v.shift; level > 0; level -= branchBits {
		n = n.children[(i>>level)&branchMask]
	}
	return n.items[i&branchMask]
}

// Set replaces the element at i, copy-on-write repairing any shared path.
func (v *Vector[E]) Set(i int, x E) {
	v.check(i)
	if i >= v.tailoff() {
		v.tail[i&branchMask] = x
		return
	}
	leaf := v.mutableLeafFor(i)
	leaf.items[i&branchMask] = x
}

// Ref returns a pointer to the element at i after establishing unique
// ownership of its path. The pointer is invalidated by Clone.
func (v *Vector[E]) Ref(i int) *E {
	v.check(i)
	if i >= v.tailoff() {
		return &v.tail[i&branchMask]
	}
	leaf := v.mutableLeafFor(i)
	return &leaf.items[i&branchMask]
}

// ownNode returns n if v already owns it, otherwise a copy stamped with v's
// epoch. Children pointers are shared until their own paths are touched.
func (v *Vector[E]) ownNode(n *node[E]) *node[E] {
	if n.owner == v.epoch {
		return n
	}
	c := &node[E]{owner: v.epoch}
	if n.children != nil {
		c.children = make([]*node[E], branchSize)
		copy(c.children, n.children)
	}
	if n.items != nil {
		c.items = make([]E, len(n.items))
		copy(c.items, n.items)
	}
	return c
}

// mutableLeafFor descends to the leaf holding index i, copying every node on
// the way that v does not own. Nodes v already owns are traversed without
// writes, which keeps post-Own parallel access race-free.
func (v *Vector[E]) mutableLeafFor(i int) *node[E] {
	if v.root.owner != v.epoch {
		v.root = v.ownNode(v.root)
	}
	n := v.root
	for level := v.shift; level > 0; level -= branchBits {
		idx := (i >> level) & branchMask
		child := n.children[idx]
		if child.owner != v.epoch {
			child = v.ownNode(child)
			n.children[idx] = child
		}
		n = child
	}
	return n
}

// Append adds x at the end.
func (v *Vector[E]) Append(x E) {
	if v.count-v.tailoff() < branchSize {
		if v.tail == nil {
			v.tail = make([]E, 0, branchSize)
		}
		v.tail = append(v.tail, x)
		v.count++
		return
	}

	// Tail is full: push it into the trie as a leaf and start a new tail.
	tailNode := &node[E]{owner: v.epoch, items: v.tail}
	if (v.count >> branchBits) > (1 << v.shift) {
		// Root overflow: grow the trie by one level.
		newRoot := &node[E]{owner: v.epoch, children: make([]*node[E], branchSize)}
		newRoot.children[0] = v.root
		newRoot.children[1] = v.newPath(v.shift, tailNode)
		v.root = newRoot
		v.shift += branchBits
	} else {
		v.root = v.pushTail(v.shift, v.root, tailNode)
	}
	v.tail = make([]E, 0, branchSize)
	v.tail = append(v.tail, x)
	v.count++
}

func (v *Vector[E]) pushTail(level uint, parent *node[E], tailNode *node[E]) *node[E] {
	ret := v.ownNode(parent)
	subidx := ((v.count - 1) >> level) & branchMask
	if level == branchBits {
		ret.children[subidx] = tailNode
		return ret
	}
	if child := ret.children[subidx]; child != nil {
		ret.children[subidx] = v.pushTail(level-branchBits, child, tailNode)
	} else {
		ret.children[subidx] = v.newPath(level-branchBits, tailNode)
	}
	return ret
}

func (v *Vector[E]) newPath(level uint, n *node[E]) *node[E] {
	if level == 0 {
		return n
	}
	ret := &node[E]{owner: v.epoch, children: make([]*node[E], branchSize)}
	ret.children[0] = v.newPath(level-branchBits, n)
	return ret
}

// Clone returns an independent logical copy in O(1). Internal nodes are
// shared; both vectors move to fresh epochs so later mutation on either side
// copies before writing. The small tail buffer is copied eagerly.
func (v *Vector[E]) Clone() *Vector[E] {
	v.epoch = nextEpoch()
	c := &Vector[E]{
		count: v.count,
		shift: v.shift,
		root:  v.root,
		epoch: nextEpoch(),
	}
	c.tail = make([]E, len(v.tail), branchSize)
	copy(c.tail, v.tail)
	return c
}

// Own materializes unique ownership of the entire tree, copying every shared
// node once. After Own, concurrent Ref calls on disjoint indices perform no
// structural writes and are therefore race-free.
func (v *Vector[E]) Own() {
	v.root = v.ownTree(v.root, v.shift)
}

func (v *Vector[E]) ownTree(n *node[E], level uint) *node[E] {
	n = v.ownNode(n)
	if level > 0 {
		for i, c := range n.children {
			if c != nil {
				n.children[i] = v.ownTree(c, level-branchBits)
			}
		}
	}
	return n
}
