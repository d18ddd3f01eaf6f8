// Package cbtree implements compact binary trees: parentless,
// two-child-pointer nodes keyed by their own memory address, used to find
// a node's nearest neighbours by address without storing any explicit key.
// Unlike ebtree, a cbtree node carries no parent pointer and no discriminant
// bit — every node is simultaneously branch point and leaf, distinguished
// purely by comparing the XOR-distance from the two children against the
// XOR-distance from the lookup target, following cbaatree.c's own
// insert/lookup structure.
//
// There is no Delete: once inserted, a node cannot be removed from a Tree;
// dropping nodes means building a new Tree from the ones that remain.
package cbtree

import "unsafe"

// Node is the intrusive linkage a caller embeds in its own record. Its key
// is implicitly its own address: no separate key field exists.
type Node struct {
	l, r *Node
}

func addr(n *Node) uintptr { return uintptr(unsafe.Pointer(n)) }

// Addr returns n's own address, its implicit key. Exposed so callers (and
// tests) can reason about ordering without reaching into unsafe.Pointer
// themselves.
func (n *Node) Addr() uintptr { return addr(n) }

func xorAddr(a, b *Node) uintptr { return addr(a) ^ addr(b) }

// Tree is an address-ordered set of nodes. The zero value is an empty tree.
type Tree struct {
	root *Node
}

// IsEmpty reports whether the tree holds no nodes.
func (t *Tree) IsEmpty() bool { return t.root == nil }

// Insert links node into the tree by its address. Re-inserting a node
// that is already linked (comparing equal to itself) is a no-op, matching
// cbaa_insert's own "do nothing if the node was already present" branch.
func (t *Tree) Insert(node *Node) {
	if t.root == nil {
		node.l, node.r = nil, nil
		t.root = node
		return
	}

	p := t.root
	var pxor uintptr
	slot := &t.root

	for {
		if p.l == nil {
			break
		}
		if pxor != 0 && xorAddr(p.l, p.r) >= pxor {
			break
		}
		pxor = xorAddr(p.l, p.r)
		if xorAddr(node, p.l) > pxor && xorAddr(node, p.r) > pxor {
			break
		}
		if xorAddr(node, p.l) < xorAddr(node, p.r) {
			slot = &p.l
		} else {
			slot = &p.r
		}
		p = *slot
	}

	if addr(p) < addr(node) {
		node.l, node.r = p, node
	} else if addr(p) > addr(node) {
		node.l, node.r = node, p
	}
	*slot = node
}

// Lookup returns node if it is currently linked in the tree, or nil.
// Because the key is the node's own address, this answers "is this exact
// node present" rather than a content comparison.
func (t *Tree) Lookup(node *Node) *Node {
	if t.root == nil {
		return nil
	}
	p := t.root
	var pxor uintptr
	for {
		if p.l == nil || (pxor != 0 && xorAddr(p.l, p.r) >= pxor) {
			if p != node {
				return nil
			}
			return p
		}
		pxor = xorAddr(p.l, p.r)
		if xorAddr(node, p.l) > pxor && xorAddr(node, p.r) > pxor {
			return nil
		}
		if xorAddr(node, p.l) < xorAddr(node, p.r) {
			p = p.l
		} else {
			p = p.r
		}
	}
}

// LookupLE returns the highest-addressed node <= target, or nil.
func (t *Tree) LookupLE(target *Node) *Node {
	if t.root == nil {
		return nil
	}
	p := t.root
	var pxor uintptr
	var lastR *Node

	for {
		if p.l == nil || (pxor != 0 && xorAddr(p.l, p.r) >= pxor) {
			if addr(p) > addr(target) {
				break
			}
			return p
		}

		pxor = xorAddr(p.l, p.r)
		if xorAddr(target, p.l) > pxor && xorAddr(target, p.r) > pxor {
			if addr(p.l) > addr(target) {
				break
			}
			p = p.r
			return walkLEDown(p, pxor, target)
		}

		if xorAddr(target, p.l) < xorAddr(target, p.r) {
			p = p.l
		} else {
			lastR = p
			p = p.r
		}
	}

	if lastR == nil {
		return nil
	}
	pxor = xorAddr(lastR.l, lastR.r)
	p = lastR.l
	return walkLEDown(p, pxor, target)
}

func walkLEDown(p *Node, pxor uintptr, target *Node) *Node {
	for p.r != nil {
		if xorAddr(p.l, p.r) >= pxor {
			break
		}
		pxor = xorAddr(p.l, p.r)
		p = p.r
	}
	if addr(p) > addr(target) {
		return nil
	}
	return p
}

// LookupGE returns the lowest-addressed node >= target, or nil.
func (t *Tree) LookupGE(target *Node) *Node {
	if t.root == nil {
		return nil
	}
	p := t.root
	var pxor uintptr
	var lastL *Node

	for {
		if p.l == nil || (pxor != 0 && xorAddr(p.l, p.r) >= pxor) {
			if addr(p) < addr(target) {
				break
			}
			return p
		}

		pxor = xorAddr(p.l, p.r)
		if xorAddr(target, p.l) > pxor && xorAddr(target, p.r) > pxor {
			if addr(p.l) < addr(target) {
				break
			}
			p = p.l
			return walkGEDown(p, pxor, target)
		}

		if xorAddr(target, p.l) < xorAddr(target, p.r) {
			lastL = p
			p = p.l
		} else {
			p = p.r
		}
	}

	if lastL == nil {
		return nil
	}
	pxor = xorAddr(lastL.l, lastL.r)
	p = lastL.r
	return walkGEDown(p, pxor, target)
}

func walkGEDown(p *Node, pxor uintptr, target *Node) *Node {
	for p.l != nil {
		if xorAddr(p.l, p.r) >= pxor {
			break
		}
		pxor = xorAddr(p.l, p.r)
		p = p.l
	}
	if addr(p) < addr(target) {
		return nil
	}
	return p
}

// Traverse walks every node in ascending address order, calling fn for
// each; it stops early if fn returns false. Grounded on cbaa_dump_tree's
// recursive structure: a position is a genuine branch (recurse left, then
// right) unless it's the first-ever leaf (nil children) or a node whose own
// self-loop marks it as the terminal entry for this position, in which case
// fn is called directly and recursion stops. Left-then-right recursion
// yields ascending order because every branch's left subtree shares its
// split bit cleared where the right subtree has it set, with all higher
// bits equal between the two — exactly the invariant the package doc
// comment describes.
func (t *Tree) Traverse(fn func(*Node) bool) {
	if t.root == nil {
		return
	}
	walkTraverse(t.root, 0, fn)
}

func walkTraverse(node *Node, pxor uintptr, fn func(*Node) bool) bool {
	if node.l == nil || (pxor != 0 && xorAddr(node.l, node.r) >= pxor) {
		return fn(node)
	}
	x := xorAddr(node.l, node.r)
	if !walkTraverse(node.l, x, fn) {
		return false
	}
	return walkTraverse(node.r, x, fn)
}
