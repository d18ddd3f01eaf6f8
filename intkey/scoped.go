package intkey

import "unsafe"

// ScopedNode adds an integer scope tag alongside the ordinary key, letting
// a single tree multiplex several logical sub-populations without paying
// for one tree per scope. Grounded on eb32sctree.h's scope-tagged 32-bit
// tree, used by HAProxy to let one tree host entries belonging to
// different "owners" while still supporting a single global walk.
//
// Node is embedded as the first field, so a *ScopedNode[K] and its
// embedded *Node[K] share the same address; scopedOf below relies on that.
type ScopedNode[K Unsigned] struct {
	Node[K]
	Scope uint64
}

// InsertScoped links n the same way Tree.Insert does, but tags it with
// scope so ScopeWalk can later filter a traversal down to one logical
// sub-population. Ordering is unaffected: Scope is metadata, not part of
// the key.
func (t *Tree[K]) InsertScoped(n *ScopedNode[K], scope uint64) (inserted *ScopedNode[K], ok bool) {
	n.Scope = scope
	res, ok := t.Insert(&n.Node)
	return scopedOf[K](res), ok
}

func scopedOf[K Unsigned](n *Node[K]) *ScopedNode[K] {
	if n == nil {
		return nil
	}
	return (*ScopedNode[K])(unsafe.Pointer(n))
}

// ScopeWalk calls fn for every node in the tree whose Scope matches want,
// in key order, stopping early if fn returns false. Because Scope isn't
// part of the key, this is a full O(n) walk filtered in place — matching
// the original's "self-cleaning scoped tree" being a convenience over a
// single shared tree, not an indexed multi-tree.
func ScopeWalk[K Unsigned](t *Tree[K], want uint64, fn func(*ScopedNode[K]) bool) {
	for n := First(t); n != nil; n = n.Next() {
		sn := scopedOf[K](n)
		if sn.Scope != want {
			continue
		}
		if !fn(sn) {
			return
		}
	}
}
