package intkey

import "github.com/ordinate/ebtree/ebtree"

// PtrTree is an ordered set/multiset keyed by pointer identity (cast to
// uintptr), dispatching to the platform pointer-width unsigned engine, per
// spec.md §4.4's "pointer keys... dispatch directly to the unsigned
// integer engine sized to the platform's pointer width."
type PtrTree = Tree[uintptr]

// PtrNode is the pointer-keyed node type.
type PtrNode = Node[uintptr]

// NewPtrTree returns an empty pointer-keyed tree.
func NewPtrTree(mode ebtree.Mode) *PtrTree { return NewTree[uintptr](mode) }
