package bytekey

import (
	"errors"
	"iter"
	"unsafe"

	"github.com/ordinate/ebtree/ebtree"
)

// ErrPrefixTooLong is returned by InsertPrefix when the node's Pfx is
// negative or exceeds the maxLen it was given.
var ErrPrefixTooLong = errors.New("bytekey: prefix length exceeds key length")

// PrefixNode wraps a stored key together with an explicit prefix length, as
// spec.md §6's "MB+pfx" row describes: the stored key is the full-length
// match candidate (e.g. a 4-byte IPv4 address) and Pfx names how many
// leading bits of it are actually significant (the route's mask length).
type PrefixNode struct {
	core ebtree.NodeCore
	Key  []byte
	Pfx  int
}

func ofCorePfx(c *ebtree.NodeCore) *PrefixNode {
	if c == nil {
		return nil
	}
	return (*PrefixNode)(unsafe.Pointer(c))
}

// PrefixTree is an ordered set of (key, prefix-length) entries supporting
// longest-prefix-match lookup, grounded on reduce.c's demonstration of
// collapsing/matching adjacent network prefixes (the tree itself carries
// the pfx field the reduce.c example manipulates directly on eb32 nodes).
type PrefixTree struct {
	root ebtree.Root
}

// NewPrefixTree returns an empty prefix tree. Prefix trees are always
// Unique-free multisets: distinct routes with the same key-and-mask are
// meaningful (e.g. multiple next-hops for one prefix), so Normal mode is
// the only mode offered.
func NewPrefixTree() *PrefixTree { return &PrefixTree{root: *ebtree.NewRoot(ebtree.Normal)} }

// IsEmpty reports whether the tree holds no entries.
func (t *PrefixTree) IsEmpty() bool { return t.root.IsEmpty() }

func descendPfx(root *ebtree.Root, key []byte) (leaf *PrefixNode) {
	link := ebtree.RootTop(root)
	for link.Kind == ebtree.KindInterior {
		b := ebtree.CmpBit(key, link.Node.Bit())
		link = link.Node.Branch(ebtree.Side(b))
	}
	return ofCorePfx(link.Node)
}

// InsertPrefix links n, whose Key/Pfx must already be set, into the tree.
// maxLen bounds the key's bit length (e.g. 32 for IPv4); a Pfx beyond it
// (or below zero) is rejected.
func (t *PrefixTree) InsertPrefix(n *PrefixNode, maxLen int) error {
	if n.Pfx < 0 || n.Pfx > maxLen {
		return ErrPrefixTooLong
	}

	if t.root.IsEmpty() {
		ebtree.AttachToEmptyRoot(&t.root, &n.core)
		n.core.SetPfx(n.Pfx)
		return nil
	}

	existing := descendPfx(&t.root, n.Key)
	cmpBits := n.Pfx
	if existing.Pfx < cmpBits {
		cmpBits = existing.Pfx
	}
	diffBit := ebtree.EqualBits(n.Key, existing.Key, 0, cmpBits)

	if diffBit >= cmpBits && n.Pfx == existing.Pfx {
		ebtree.InsertDupBelow(&existing.core, &n.core)
		n.core.SetPfx(n.Pfx)
		return nil
	}

	parent, oldLeaf := spliceParent(&t.root, diffBit, n.Key)
	side := ebtree.Side(ebtree.CmpBit(n.Key, diffBit))
	n.core.SetBit(diffBit)
	n.core.SetPfx(n.Pfx)
	ebtree.SpliceLeaf(parent, oldLeaf, &n.core, side.Other())
	return nil
}

// LookupLongest returns the entry whose (Key, Pfx) is the longest stored
// prefix that contains key, or nil if none matches. This walks the
// ancestor chain from the closest descent point rather than the whole
// tree, exactly the operation reduce.c performs by hand over raw eb32
// nodes when collapsing a routing table.
func (t *PrefixTree) LookupLongest(key []byte) *PrefixNode {
	if t.root.IsEmpty() {
		return nil
	}

	leaf := descendPfx(&t.root, key)
	var best *PrefixNode
	for n := leaf; n != nil; n = ancestorPfx(n) {
		if n.Pfx <= len(key)*8 && matchesPrefix(key, n.Key, n.Pfx) {
			if best == nil || n.Pfx > best.Pfx {
				best = n
			}
		}
	}
	return best
}

func matchesPrefix(key, candidate []byte, pfxBits int) bool {
	return ebtree.EqualBits(key, candidate, 0, pfxBits) >= pfxBits
}

// ancestorPfx walks one step up the leaf-parent chain, from a leaf to the
// node whose interior half it hangs under, returning that node's own
// PrefixNode view (its key/pfx, if it is itself a stored entry and not
// merely a branch point). Branch-only interior nodes (bit >= 0 but not
// also a duplicate-group head) do not carry their own Key/Pfx, so this
// walk is really just Next()/Prev()-style parent traversal restricted to
// the ancestor spine, matching "walk ancestor prefixes via leaf_parent
// chain".
func ancestorPfx(n *PrefixNode) *PrefixNode {
	p := ebtree.LeafParentLink(&n.core)
	if p.IsNull() || p.IsRoot() {
		return nil
	}
	// The immediate leaf-parent's interior half is the branch point; its
	// own leaf half (reached via that same struct, since a stored entry's
	// NodeCore hosts both halves) is what we want to inspect next.
	return ofCorePfx(p.Node)
}

// Supernets iterates the ancestor prefixes of key in the tree, from the
// most specific already-visited match outward to the least specific,
// mirroring reduce.c's walk for collapsing a routing table down to its
// minimal covering set.
func (t *PrefixTree) Supernets(key []byte) iter.Seq[*PrefixNode] {
	return func(yield func(*PrefixNode) bool) {
		if t.root.IsEmpty() {
			return
		}
		leaf := descendPfx(&t.root, key)
		seen := map[*PrefixNode]bool{}
		for n := leaf; n != nil; n = ancestorPfx(n) {
			if seen[n] {
				break
			}
			seen[n] = true
			if n.Pfx <= len(key)*8 && matchesPrefix(key, n.Key, n.Pfx) {
				if !yield(n) {
					return
				}
			}
		}
	}
}

// Delete unlinks n from its tree. No-op if n is not currently linked.
func (n *PrefixNode) Delete() { n.core.Delete() }

// Linked reports whether n is currently attached to a tree.
func (n *PrefixNode) Linked() bool { return n.core.Linked() }
