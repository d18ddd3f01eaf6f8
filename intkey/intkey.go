// Package intkey specializes the ebtree engine to integer and pointer keys:
// fixed-width unsigned or signed integers, compared by ordinary numeric
// order, descending bit by bit from the most significant end exactly as
// spec.md §4.4 describes.
package intkey

import (
	"unsafe"

	"github.com/ordinate/ebtree/ebtree"
)

// Unsigned is the set of key widths the engine descends over natively.
// Signed types are handled by SignedTree via the bias trick below; pointer
// keys use PtrTree, an alias for Tree[uintptr].
type Unsigned interface {
	~uint32 | ~uint64 | ~uintptr
}

// Node wraps one stored entry: its tree linkage plus its key, by value.
// The tree never allocates around it; Node is meant to be embedded
// directly in a caller record or used standalone.
type Node[K Unsigned] struct {
	core ebtree.NodeCore
	Key  K
}

func ofCore[K Unsigned](c *ebtree.NodeCore) *Node[K] {
	if c == nil {
		return nil
	}
	return (*Node[K])(unsafe.Pointer(c))
}

// Tree is an ordered set/multiset of K, implemented as an intrusive EB-tree.
type Tree[K Unsigned] struct {
	root ebtree.Root
}

// NewTree returns an empty tree in the given duplicate-admission mode.
func NewTree[K Unsigned](mode ebtree.Mode) *Tree[K] {
	return &Tree[K]{root: *ebtree.NewRoot(mode)}
}

// IsEmpty reports whether the tree holds no entries.
func (t *Tree[K]) IsEmpty() bool { return t.root.IsEmpty() }

// Mode reports whether the tree admits duplicate keys.
func (t *Tree[K]) Mode() ebtree.Mode { return t.root.Mode() }

func bitWidth[K Unsigned]() int {
	var z K
	return int(unsafe.Sizeof(z)) * 8
}

func bitAt[K Unsigned](key K, width, bitIndexFromTop int) int {
	shift := width - 1 - bitIndexFromTop
	if shift < 0 {
		return 0
	}
	return int((uint64(key) >> uint(shift)) & 1)
}

func highestDiffBit[K Unsigned](a, b K, width int) int {
	x := uint64(a) ^ uint64(b)
	if x == 0 {
		return -1
	}
	msb := ebtree.MSBIndex(x)
	return width - 1 - msb
}

// descend walks from the root to the leaf that key would land on if it
// already existed. This mirrors spec.md §4.4's descent: follow the branch
// selected by each node's stored bit position until a leaf is reached,
// exactly as __eb32i_insert/__eb64i_insert do before comparing the found
// leaf's full key against the one being inserted. The leaf it finds is only
// a representative for computing diffBit; Insert re-descends separately to
// find the true splice point (see the loop below).
func descend[K Unsigned](root *ebtree.Root, key K, width int) (leaf *Node[K]) {
	link := ebtree.RootTop(root)
	for link.Kind == ebtree.KindInterior {
		b := bitAt(key, width, link.Node.Bit())
		link = link.Node.Branch(ebtree.Side(b))
	}
	return ofCore[K](link.Node)
}

// Insert links n into the tree. If the tree is in Unique mode and a node
// with the same key already exists, Insert does not link n and returns the
// existing node instead (ok == false); otherwise it returns n (ok == true).
func (t *Tree[K]) Insert(n *Node[K]) (inserted *Node[K], ok bool) {
	if t.root.IsEmpty() {
		ebtree.AttachToEmptyRoot(&t.root, &n.core)
		return n, true
	}

	width := bitWidth[K]()
	existing := descend(&t.root, n.Key, width)

	diffBit := highestDiffBit(n.Key, existing.Key, width)
	if diffBit < 0 {
		if t.root.Mode() == ebtree.Unique {
			return existing, false
		}
		ebtree.InsertDupBelow(&existing.core, &n.core)
		return n, true
	}

	// The leaf descend() found need not be the right splice point: per
	// spec.md §4.4 steps 2/4, descent must stop as soon as it reaches a node
	// whose own split bit is at or past diffBit, since n diverges from that
	// node's whole subtree above that depth. Re-descend with that stopping
	// condition instead of splicing below whatever leaf the blind walk
	// above happened to reach.
	link := ebtree.RootTop(&t.root)
	parent := ebtree.ParentLink{Root: &t.root, Side: ebtree.Left}
	for link.Kind == ebtree.KindInterior && link.Node.Bit() >= 0 && link.Node.Bit() < diffBit {
		b := bitAt(n.Key, width, link.Node.Bit())
		parent = ebtree.ParentLink{Node: link.Node, Side: ebtree.Side(b)}
		link = link.Node.Branch(ebtree.Side(b))
	}

	side := ebtree.Side(bitAt(n.Key, width, diffBit))
	n.core.SetBit(diffBit)
	ebtree.SpliceLeaf(parent, link, &n.core, side.Other())
	return n, true
}

// Lookup returns the first node with exactly key, or nil if none exists.
func (t *Tree[K]) Lookup(key K) *Node[K] {
	if t.root.IsEmpty() {
		return nil
	}
	n := descend(&t.root, key, bitWidth[K]())
	if n.Key == key {
		return n
	}
	return nil
}

// LookupGE returns the smallest-keyed node with Key >= key, or nil if none.
func (t *Tree[K]) LookupGE(key K) *Node[K] {
	if t.root.IsEmpty() {
		return nil
	}
	n := descend(&t.root, key, bitWidth[K]())
	if n.Key >= key {
		for p := n.Prev(); p != nil && p.Key >= key; p = p.Prev() {
			n = p
		}
		return n
	}
	for n != nil && n.Key < key {
		n = n.Next()
	}
	return n
}

// LookupLE returns the largest-keyed node with Key <= key, or nil if none.
func (t *Tree[K]) LookupLE(key K) *Node[K] {
	if t.root.IsEmpty() {
		return nil
	}
	n := descend(&t.root, key, bitWidth[K]())
	if n.Key <= key {
		for nx := n.Next(); nx != nil && nx.Key <= key; nx = nx.Next() {
			n = nx
		}
		return n
	}
	for n != nil && n.Key > key {
		n = n.Prev()
	}
	return n
}

// Next returns the next node in key order, or nil at the end.
func (n *Node[K]) Next() *Node[K] { return ofCore[K](n.core.Next()) }

// Prev returns the previous node in key order, or nil at the start.
func (n *Node[K]) Prev() *Node[K] { return ofCore[K](n.core.Prev()) }

// NextDup/PrevDup walk within a group of equal keys (insertion order).
func (n *Node[K]) NextDup() *Node[K] { return ofCore[K](n.core.NextDup()) }
func (n *Node[K]) PrevDup() *Node[K] { return ofCore[K](n.core.PrevDup()) }

// NextUnique/PrevUnique skip to the next/previous distinct key.
func (n *Node[K]) NextUnique() *Node[K] { return ofCore[K](n.core.NextUnique()) }
func (n *Node[K]) PrevUnique() *Node[K] { return ofCore[K](n.core.PrevUnique()) }

// Delete unlinks n from its tree. No-op if n is not currently linked.
func (n *Node[K]) Delete() { n.core.Delete() }

// Linked reports whether n is currently attached to a tree.
func (n *Node[K]) Linked() bool { return n.core.Linked() }

// First returns the smallest-keyed node, or nil if the tree is empty.
func First[K Unsigned](t *Tree[K]) *Node[K] { return ofCore[K](ebtree.First(&t.root)) }

// Last returns the largest-keyed node, or nil if the tree is empty.
func Last[K Unsigned](t *Tree[K]) *Node[K] { return ofCore[K](ebtree.Last(&t.root)) }
