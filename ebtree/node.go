package ebtree

// NodeCore is the generic, key-agnostic part of every stored entry. A
// caller's record embeds one NodeCore (directly, or via a KeySpec wrapper
// in intkey/bytekey) and the tree never needs to know anything about the
// record beyond this struct.
//
// branches provides this node's interior half: a split point with two
// children, active only once something actually needs to branch here.
// nodeParent/leafParent are this node's two upward pointers — one for when
// its interior half is used as someone's child, one for when its leaf half
// is. bit is the split position (integer keys) or shared-prefix-length
// (byte/string keys); bit < 0 marks the top of a duplicate sub-tree. pfx is
// only meaningful for the bytekey prefix-tree variant.
type NodeCore struct {
	branches   [2]Link
	nodeParent ParentLink
	leafParent ParentLink
	bit        int
	pfx        int
}

// Bit returns the split position (or identical-leading-bit count).
func (n *NodeCore) Bit() int { return n.bit }

// SetBit sets the split position. KeySpec insert paths call this while
// splicing a node in; callers outside this package and intkey/bytekey
// should not need it.
func (n *NodeCore) SetBit(bit int) { n.bit = bit }

// Pfx returns the stored prefix length (bytekey prefix-tree variant only).
func (n *NodeCore) Pfx() int { return n.pfx }

// SetPfx sets the stored prefix length.
func (n *NodeCore) SetPfx(pfx int) { n.pfx = pfx }

// IsDup reports whether this node is part of a duplicate sub-tree (its own
// interior half, if active, splits between same-keyed leaves).
func (n *NodeCore) IsDup() bool { return n.bit < 0 }

// Linked reports whether the node is currently attached to some tree.
func (n *NodeCore) Linked() bool { return !n.leafParent.IsNull() }

// Branch returns n's child link on the given side. KeySpec packages use
// this (together with RootTop) to walk the tree during descent without
// reaching into unexported fields.
func (n *NodeCore) Branch(side Side) Link { return n.branches[side] }

// RootTop returns the tree's single populated child link (the Left slot;
// Right is always null, see Root's doc comment).
func RootTop(root *Root) Link { return root.top[Left] }

func walkDown(l Link, side Side) *NodeCore {
	for l.Kind == KindInterior {
		l = l.Node.branches[side]
	}
	return l.Node
}

// First returns the leftmost (smallest-keyed) leaf, or nil if root is empty.
func First(root *Root) *NodeCore {
	if root.top[Left].IsNull() {
		return nil
	}
	return walkDown(root.top[Left], Left)
}

// Last returns the rightmost (largest-keyed) leaf, or nil if root is empty.
func Last(root *Root) *NodeCore {
	if root.top[Left].IsNull() {
		return nil
	}
	return walkDown(root.top[Left], Right)
}

// Next returns the next leaf in key order after n, or nil at the end.
// Duplicates are visited in insertion order going forward.
func (n *NodeCore) Next() *NodeCore {
	t := n.leafParent
	for t.Side != Left {
		t = t.Node.nodeParent
	}
	if t.IsRoot() {
		return nil
	}
	sib := t.Node.branches[Right]
	return walkDown(sib, Left)
}

// Prev returns the previous leaf in key order before n, or nil at the start.
func (n *NodeCore) Prev() *NodeCore {
	t := n.leafParent
	for t.Side == Left {
		if t.IsRoot() {
			return nil
		}
		t = t.Node.nodeParent
	}
	sib := t.Node.branches[Left]
	return walkDown(sib, Right)
}

// NextDup returns the next leaf within n's duplicate group, or nil past the
// last one.
func (n *NodeCore) NextDup() *NodeCore {
	t := n.leafParent
	for t.Side != Left {
		if t.Node.bit >= 0 {
			return nil
		}
		t = t.Node.nodeParent
	}
	if t.IsRoot() || t.Node.bit >= 0 {
		return nil
	}
	sib := t.Node.branches[Right]
	return walkDown(sib, Left)
}

// PrevDup returns the previous leaf within n's duplicate group, or nil
// before the first one.
func (n *NodeCore) PrevDup() *NodeCore {
	t := n.leafParent
	for t.Side == Left {
		if t.IsRoot() {
			return nil
		}
		if t.Node.bit >= 0 {
			return nil
		}
		t = t.Node.nodeParent
	}
	if t.Node.bit >= 0 {
		return nil
	}
	sib := t.Node.branches[Left]
	return walkDown(sib, Right)
}

// NextUnique returns the next leaf with a different key, skipping any
// further duplicates of n's own key.
func (n *NodeCore) NextUnique() *NodeCore {
	t := n.leafParent
	for {
		if t.Side == Left {
			if t.IsRoot() {
				return nil
			}
			if t.Node.bit >= 0 {
				break
			}
			t = t.Node.nodeParent
		} else {
			t = t.Node.nodeParent
		}
	}
	if t.IsRoot() {
		return nil
	}
	sib := t.Node.branches[Right]
	return walkDown(sib, Left)
}

// PrevUnique returns the previous leaf with a different key, skipping any
// further duplicates of n's own key.
func (n *NodeCore) PrevUnique() *NodeCore {
	t := n.leafParent
	for {
		if t.Side != Left {
			if t.Node.bit >= 0 {
				break
			}
			t = t.Node.nodeParent
		} else {
			if t.IsRoot() {
				return nil
			}
			t = t.Node.nodeParent
		}
	}
	sib := t.Node.branches[Left]
	return walkDown(sib, Right)
}

func setChildAt(p ParentLink, l Link) {
	p.set(l)
}

// Delete unlinks n from its tree. It is a no-op if n is already unlinked.
//
// The common case (n's own interior half is idle, or is exactly the
// immediate parent of its own leaf) costs O(1): the sibling simply takes
// n's place under the grandparent. When n's interior half is active
// elsewhere in the tree (it is the split point for unrelated leaves), that
// role is transplanted onto the now-vacated parent struct so the tree
// retains zero references into n once Delete returns — this is the part
// spec.md calls "splice"; see SPEC_FULL.md §4 for how this maps onto the
// original ebx_delete.
func (n *NodeCore) Delete() {
	leafP := n.leafParent
	if leafP.IsNull() {
		return
	}
	if leafP.IsRoot() {
		leafP.Root.top[Left] = Link{}
		n.leafParent = ParentLink{}
		n.nodeParent = ParentLink{}
		return
	}

	immParent := leafP.Node
	siblingSide := leafP.Side.Other()
	sibling := immParent.branches[siblingSide]
	gp := immParent.nodeParent

	setChildAt(gp, sibling)
	setBackPointer(sibling, gp)
	// immParent's interior half is now detached: mark it idle so that a
	// later Delete of immParent does not treat it as an active split point.
	immParent.nodeParent = ParentLink{}

	if immParent != n && !n.nodeParent.IsNull() {
		nodeGP := n.nodeParent
		immParent.branches = n.branches
		immParent.bit = n.bit
		immParent.pfx = n.pfx
		for _, side := range [2]Side{Left, Right} {
			setBackPointer(immParent.branches[side], ParentLink{Node: immParent, Side: side})
		}
		setChildAt(nodeGP, interiorLink(immParent))
		immParent.nodeParent = nodeGP
	}

	n.leafParent = ParentLink{}
	n.nodeParent = ParentLink{}
}

// InsertDupBelow appends new to the duplicate sub-tree rooted below sub,
// preserving insertion order (new becomes the last-visited duplicate via
// Next/NextDup). sub must already be linked and share new's key; KeySpec
// insert paths call this once they've located an equal-keyed leaf in a
// Normal-mode tree.
func InsertDupBelow(sub *NodeCore, newNode *NodeCore) *NodeCore {
	// sub is not yet part of a duplicate sub-tree: start one right above
	// it, with sub's leaf on the left and newNode's own leaf on the right.
	if lp := sub.leafParent; lp.IsRoot() || lp.Node.bit >= 0 {
		newNode.bit = -1
		SpliceLeaf(lp, leafLink(sub), newNode, Left)
		return newNode
	}
	// Otherwise climb from sub's leaf to the top of its duplicate sub-tree.
	sub = sub.leafParent.Node
	for !sub.nodeParent.IsRoot() && sub.nodeParent.Node.bit < 0 {
		sub = sub.nodeParent.Node
	}

	head := sub
	for head.branches[Right].Kind != KindLeaf {
		last := head
		head = head.branches[Right].Node
		if head.bit > last.bit+1 {
			sub = head
		}
	}

	if head.bit < -1 {
		oldLeaf := head.branches[Right].Node
		oldLeafParent := oldLeaf.leafParent

		newNode.bit = -1
		head.branches[Right] = interiorLink(newNode)
		newNode.nodeParent = oldLeafParent
		newNode.leafParent = ParentLink{Node: newNode, Side: Right}
		oldLeaf.leafParent = ParentLink{Node: newNode, Side: Left}
		newNode.branches[Left] = leafLink(oldLeaf)
		newNode.branches[Right] = leafLink(newNode)
		return newNode
	}

	newNode.bit = sub.bit - 1
	gp := sub.nodeParent
	setChildAt(gp, interiorLink(newNode))
	newNode.nodeParent = gp
	newNode.leafParent = ParentLink{Node: newNode, Side: Right}
	sub.nodeParent = ParentLink{Node: newNode, Side: Left}
	newNode.branches[Left] = interiorLink(sub)
	newNode.branches[Right] = leafLink(newNode)
	return newNode
}

// AttachToEmptyRoot links n as the sole leaf of an empty root. Shared by
// every KeySpec's insert path (§4.4 step 1 / §4.5's analogous empty case).
func AttachToEmptyRoot(root *Root, n *NodeCore) {
	root.top[Left] = leafLink(n)
	n.nodeParent = ParentLink{}
	n.leafParent = ParentLink{Root: root, Side: Left}
}

// SpliceLeaf splices newNode in between oldLeaf (found on the descent) and
// whatever pointed at oldLeaf, with newNode taking on the interior role: one
// branch continues to oldLeaf, the other is newNode's own leaf half.
// oldLeafSide is the branch oldLeaf is placed on (KeySpec computes it from
// the diverging key bit); the opposite branch becomes newNode's
// self-referential leaf.
func SpliceLeaf(parent ParentLink, oldLeaf Link, newNode *NodeCore, oldLeafSide Side) {
	setChildAt(parent, interiorLink(newNode))
	newNode.nodeParent = parent
	newNode.branches[oldLeafSide] = oldLeaf
	newNode.branches[oldLeafSide.Other()] = leafLink(newNode)
	newNode.leafParent = ParentLink{Node: newNode, Side: oldLeafSide.Other()}
	setBackPointer(oldLeaf, ParentLink{Node: newNode, Side: oldLeafSide})
}

// LeafParentLink returns the parent link a currently-linked leaf node is
// attached through — equivalent to reading its own leafParent field.
func LeafParentLink(n *NodeCore) ParentLink { return n.leafParent }
