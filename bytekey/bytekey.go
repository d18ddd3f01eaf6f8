// Package bytekey specializes the ebtree engine to byte-string keys: fixed
// length byte arrays (MB), null-terminated strings (ST), and a prefix-tree
// variant that tracks an explicit prefix length per node for
// longest-match lookups, as spec.md §4.5 describes.
package bytekey

import (
	"unsafe"

	"github.com/ordinate/ebtree/ebtree"
)

// Node wraps one stored entry: its tree linkage plus its key, held by
// value as a byte slice. Use IndirectNode/IndirectTree instead when the key
// is large and should be stored by reference (the IM variant).
type Node struct {
	core ebtree.NodeCore
	Key  []byte
}

func ofCore(c *ebtree.NodeCore) *Node {
	if c == nil {
		return nil
	}
	return (*Node)(unsafe.Pointer(c))
}

// Tree is an ordered set/multiset of fixed-or-variable-length byte keys,
// compared lexicographically bit by bit from the first byte (MB family).
type Tree struct {
	root ebtree.Root
}

// NewTree returns an empty byte-key tree.
func NewTree(mode ebtree.Mode) *Tree { return &Tree{root: *ebtree.NewRoot(mode)} }

// IsEmpty reports whether the tree holds no entries.
func (t *Tree) IsEmpty() bool { return t.root.IsEmpty() }

// Mode reports whether the tree admits duplicate keys.
func (t *Tree) Mode() ebtree.Mode { return t.root.Mode() }

func maxBitsOf(a, b []byte) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	return n * 8
}

// descend walks from the root to the leaf key would land on if already
// present, per spec.md §4.5: descend comparing the shared-prefix length
// recorded at each interior node (`bit` here doubles as that count) against
// the key, following the branch selected by the bit immediately after the
// shared prefix. This finds a representative leaf for key comparison
// (Lookup family) or for computing the true divergence bit before an
// insert (see spliceParent, which re-descends to find the actual splice
// point — the two searches stop at different depths in general).
func descend(root *ebtree.Root, key []byte) (leaf *Node) {
	link := ebtree.RootTop(root)
	for link.Kind == ebtree.KindInterior {
		b := ebtree.CmpBit(key, link.Node.Bit())
		link = link.Node.Branch(ebtree.Side(b))
	}
	return ofCore(link.Node)
}

// spliceParent re-descends from root, stopping as soon as it reaches the
// node where the key genuinely diverges from the rest of the tree (the
// first node whose own split bit is at or past diffBit), rather than the
// leaf a blind comparison-free descent would reach. Per spec.md §4.5's
// divergence check ("if equal_bits falls strictly below the node's
// recorded bit, stop above it"), splicing anywhere deeper than this point
// would give the new node a split bit less significant than some node
// already above it expects to be its child — violating the "child bit is
// always deeper than parent bit" invariant. Every byte-key variant
// (Tree, StringTree, PrefixTree, IndirectTree) shares this same fix.
func spliceParent(root *ebtree.Root, diffBit int, key []byte) (ebtree.ParentLink, ebtree.Link) {
	link := ebtree.RootTop(root)
	parent := ebtree.ParentLink{Root: root, Side: ebtree.Left}
	for link.Kind == ebtree.KindInterior && link.Node.Bit() >= 0 && link.Node.Bit() < diffBit {
		b := ebtree.CmpBit(key, link.Node.Bit())
		parent = ebtree.ParentLink{Node: link.Node, Side: ebtree.Side(b)}
		link = link.Node.Branch(ebtree.Side(b))
	}
	return parent, link
}

// Insert links n into the tree. In Unique mode, a pre-existing node with
// the same Key causes Insert to leave n unlinked and return the existing
// node instead (ok == false).
func (t *Tree) Insert(n *Node) (inserted *Node, ok bool) {
	if t.root.IsEmpty() {
		ebtree.AttachToEmptyRoot(&t.root, &n.core)
		return n, true
	}

	existing := descend(&t.root, n.Key)
	maxBits := maxBitsOf(n.Key, existing.Key)
	diffBit := ebtree.EqualBits(n.Key, existing.Key, 0, maxBits)

	if diffBit >= maxBits && len(n.Key) == len(existing.Key) {
		if t.root.Mode() == ebtree.Unique {
			return existing, false
		}
		ebtree.InsertDupBelow(&existing.core, &n.core)
		return n, true
	}

	parent, oldLeaf := spliceParent(&t.root, diffBit, n.Key)
	side := ebtree.Side(ebtree.CmpBit(n.Key, diffBit))
	n.core.SetBit(diffBit)
	ebtree.SpliceLeaf(parent, oldLeaf, &n.core, side.Other())
	return n, true
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func bytesLess(a, b []byte) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// Lookup returns the first node with exactly key, or nil.
func (t *Tree) Lookup(key []byte) *Node {
	if t.root.IsEmpty() {
		return nil
	}
	n := descend(&t.root, key)
	if bytesEqual(n.Key, key) {
		return n
	}
	return nil
}

// LookupGE returns the smallest-keyed node with Key >= key, or nil.
func (t *Tree) LookupGE(key []byte) *Node {
	if t.root.IsEmpty() {
		return nil
	}
	n := descend(&t.root, key)
	if !bytesLess(n.Key, key) {
		for p := n.Prev(); p != nil && !bytesLess(p.Key, key); p = p.Prev() {
			n = p
		}
		return n
	}
	for n != nil && bytesLess(n.Key, key) {
		n = n.Next()
	}
	return n
}

// LookupLE returns the largest-keyed node with Key <= key, or nil.
func (t *Tree) LookupLE(key []byte) *Node {
	if t.root.IsEmpty() {
		return nil
	}
	n := descend(&t.root, key)
	if !bytesLess(key, n.Key) {
		for nx := n.Next(); nx != nil && !bytesLess(key, nx.Key); nx = nx.Next() {
			n = nx
		}
		return n
	}
	for n != nil && bytesLess(key, n.Key) {
		n = n.Prev()
	}
	return n
}

// Next returns the next node in key order, or nil at the end.
func (n *Node) Next() *Node { return ofCore(n.core.Next()) }

// Prev returns the previous node in key order, or nil at the start.
func (n *Node) Prev() *Node { return ofCore(n.core.Prev()) }

// NextDup/PrevDup walk within a group of equal keys (insertion order).
func (n *Node) NextDup() *Node { return ofCore(n.core.NextDup()) }
func (n *Node) PrevDup() *Node { return ofCore(n.core.PrevDup()) }

// NextUnique/PrevUnique skip to the next/previous distinct key.
func (n *Node) NextUnique() *Node { return ofCore(n.core.NextUnique()) }
func (n *Node) PrevUnique() *Node { return ofCore(n.core.PrevUnique()) }

// Delete unlinks n from its tree. No-op if n is not currently linked.
func (n *Node) Delete() { n.core.Delete() }

// Linked reports whether n is currently attached to a tree.
func (n *Node) Linked() bool { return n.core.Linked() }

// First returns the smallest-keyed node, or nil if the tree is empty.
func First(t *Tree) *Node { return ofCore(ebtree.First(&t.root)) }

// Last returns the largest-keyed node, or nil if the tree is empty.
func Last(t *Tree) *Node { return ofCore(ebtree.Last(&t.root)) }
