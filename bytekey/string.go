package bytekey

import (
	"unsafe"

	"github.com/ordinate/ebtree/ebtree"
)

// StringNode wraps one null-terminated-string-keyed entry. Key is an
// ordinary Go string; comparisons treat it as implicitly NUL-terminated so
// that, as in the original ST family, a key that is a prefix of another
// sorts immediately before it (the shorter string's implicit terminator
// compares as a zero bit against the longer string's next byte).
type StringNode struct {
	core ebtree.NodeCore
	Key  string
}

func ofCoreStr(c *ebtree.NodeCore) *StringNode {
	if c == nil {
		return nil
	}
	return (*StringNode)(unsafe.Pointer(c))
}

// StringTree is an ordered set/multiset of null-terminated string keys.
type StringTree struct {
	root ebtree.Root
}

// NewStringTree returns an empty string-key tree.
func NewStringTree(mode ebtree.Mode) *StringTree { return &StringTree{root: *ebtree.NewRoot(mode)} }

// IsEmpty reports whether the tree holds no entries.
func (t *StringTree) IsEmpty() bool { return t.root.IsEmpty() }

func descendStr(root *ebtree.Root, key []byte) (leaf *StringNode) {
	link := ebtree.RootTop(root)
	for link.Kind == ebtree.KindInterior {
		b := ebtree.CmpBit(key, link.Node.Bit())
		link = link.Node.Branch(ebtree.Side(b))
	}
	return ofCoreStr(link.Node)
}

// Insert links n into the tree, as Tree.Insert does for fixed-length keys.
func (t *StringTree) Insert(n *StringNode) (inserted *StringNode, ok bool) {
	if t.root.IsEmpty() {
		ebtree.AttachToEmptyRoot(&t.root, &n.core)
		return n, true
	}

	key := []byte(n.Key)
	existing := descendStr(&t.root, key)
	diffBit := ebtree.StringEqualBits(key, []byte(existing.Key), 0)

	if n.Key == existing.Key {
		if t.root.Mode() == ebtree.Unique {
			return existing, false
		}
		ebtree.InsertDupBelow(&existing.core, &n.core)
		return n, true
	}

	parent, oldLeaf := spliceParent(&t.root, diffBit, key)
	side := ebtree.Side(ebtree.CmpBit(key, diffBit))
	n.core.SetBit(diffBit)
	ebtree.SpliceLeaf(parent, oldLeaf, &n.core, side.Other())
	return n, true
}

// Lookup returns the first node with exactly key, or nil.
func (t *StringTree) Lookup(key string) *StringNode {
	if t.root.IsEmpty() {
		return nil
	}
	n := descendStr(&t.root, []byte(key))
	if n.Key == key {
		return n
	}
	return nil
}

// LookupGE returns the smallest-keyed node with Key >= key, or nil.
func (t *StringTree) LookupGE(key string) *StringNode {
	if t.root.IsEmpty() {
		return nil
	}
	n := descendStr(&t.root, []byte(key))
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

// LookupLE returns the largest-keyed node with Key <= key, or nil.
func (t *StringTree) LookupLE(key string) *StringNode {
	if t.root.IsEmpty() {
		return nil
	}
	n := descendStr(&t.root, []byte(key))
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
func (n *StringNode) Next() *StringNode { return ofCoreStr(n.core.Next()) }

// Prev returns the previous node in key order, or nil at the start.
func (n *StringNode) Prev() *StringNode { return ofCoreStr(n.core.Prev()) }

// NextDup/PrevDup walk within a group of equal keys (insertion order).
func (n *StringNode) NextDup() *StringNode { return ofCoreStr(n.core.NextDup()) }
func (n *StringNode) PrevDup() *StringNode { return ofCoreStr(n.core.PrevDup()) }

// Delete unlinks n from its tree. No-op if n is not currently linked.
func (n *StringNode) Delete() { n.core.Delete() }

// Linked reports whether n is currently attached to a tree.
func (n *StringNode) Linked() bool { return n.core.Linked() }

// FirstString returns the smallest-keyed node, or nil if the tree is empty.
func FirstString(t *StringTree) *StringNode { return ofCoreStr(ebtree.First(&t.root)) }

// LastString returns the largest-keyed node, or nil if the tree is empty.
func LastString(t *StringTree) *StringNode { return ofCoreStr(ebtree.Last(&t.root)) }
