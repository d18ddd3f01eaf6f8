package bytekey

import (
	"unsafe"

	"github.com/ordinate/ebtree/ebtree"
)

// IndirectNode stores a pointer to its key rather than a copy, for the IM
// (indirect, fixed-length) variant spec.md §6 calls for: "same algorithms,
// different storage" relative to Node. Useful when the key is large or
// already owned by the caller's record and copying it would be wasteful.
type IndirectNode struct {
	core ebtree.NodeCore
	Key  *[]byte
}

func ofCoreIndirect(c *ebtree.NodeCore) *IndirectNode {
	if c == nil {
		return nil
	}
	return (*IndirectNode)(unsafe.Pointer(c))
}

// IndirectTree is an ordered set/multiset of byte keys referenced by
// pointer (IM family).
type IndirectTree struct {
	root ebtree.Root
}

// NewIndirectTree returns an empty indirect byte-key tree.
func NewIndirectTree(mode ebtree.Mode) *IndirectTree {
	return &IndirectTree{root: *ebtree.NewRoot(mode)}
}

func descendIndirect(root *ebtree.Root, key []byte) (leaf *IndirectNode) {
	link := ebtree.RootTop(root)
	for link.Kind == ebtree.KindInterior {
		b := ebtree.CmpBit(key, link.Node.Bit())
		link = link.Node.Branch(ebtree.Side(b))
	}
	return ofCoreIndirect(link.Node)
}

// Insert links n into the tree; n.Key must be non-nil and must remain
// stable (same backing bytes) for as long as n stays linked, mirroring the
// original's requirement that the indirect key's storage outlive the node.
func (t *IndirectTree) Insert(n *IndirectNode) (inserted *IndirectNode, ok bool) {
	if t.root.IsEmpty() {
		ebtree.AttachToEmptyRoot(&t.root, &n.core)
		return n, true
	}

	existing := descendIndirect(&t.root, *n.Key)
	maxBits := maxBitsOf(*n.Key, *existing.Key)
	diffBit := ebtree.EqualBits(*n.Key, *existing.Key, 0, maxBits)

	if diffBit >= maxBits && len(*n.Key) == len(*existing.Key) {
		if t.root.Mode() == ebtree.Unique {
			return existing, false
		}
		ebtree.InsertDupBelow(&existing.core, &n.core)
		return n, true
	}

	parent, oldLeaf := spliceParent(&t.root, diffBit, *n.Key)
	side := ebtree.Side(ebtree.CmpBit(*n.Key, diffBit))
	n.core.SetBit(diffBit)
	ebtree.SpliceLeaf(parent, oldLeaf, &n.core, side.Other())
	return n, true
}

// Lookup returns the first node with exactly key, or nil.
func (t *IndirectTree) Lookup(key []byte) *IndirectNode {
	if t.root.IsEmpty() {
		return nil
	}
	n := descendIndirect(&t.root, key)
	if bytesEqual(*n.Key, key) {
		return n
	}
	return nil
}

// Next returns the next node in key order, or nil at the end.
func (n *IndirectNode) Next() *IndirectNode { return ofCoreIndirect(n.core.Next()) }

// Prev returns the previous node in key order, or nil at the start.
func (n *IndirectNode) Prev() *IndirectNode { return ofCoreIndirect(n.core.Prev()) }

// Delete unlinks n from its tree. No-op if n is not currently linked.
func (n *IndirectNode) Delete() { n.core.Delete() }
