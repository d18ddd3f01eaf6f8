package cbtree

// AllowDuplicates gates the duplicate-tagging extension below. The default
// (false) keeps a Tree on the stable, fully-tested unique-address subset;
// cbaatree.c's own comments mark the duplicate-key path experimental, so it
// stays isolated here rather than folded into Tree.Insert's main path.
type DupTree struct {
	Tree
	AllowDuplicates bool
	tags            map[*Node][]*Node
}

// InsertTagged links node into the tree as normal when AllowDuplicates is
// false or groupWith is nil. Otherwise node is not linked into the tree at
// all: it is appended to groupWith's group list, whether or not groupWith
// itself is linked (addresses are unique by construction, so "duplicate"
// here means "logically grouped with," not "same address").
//
// This mirrors the C comment block's acknowledgment that address-keyed
// trees have no natural notion of duplicate keys (every address is
// distinct) — so "duplicates" are a caller-defined grouping relation
// layered on top, not a tree-level concept. The isolation here keeps that
// caller-defined layer out of the stable Tree type entirely.
func (d *DupTree) InsertTagged(node *Node, groupWith *Node) {
	if !d.AllowDuplicates || groupWith == nil {
		d.Tree.Insert(node)
		return
	}
	if d.tags == nil {
		d.tags = make(map[*Node][]*Node)
	}
	d.tags[groupWith] = append(d.tags[groupWith], node)
}

// Group returns the nodes previously tagged as grouped with anchor via
// InsertTagged, in insertion order, or nil if none.
func (d *DupTree) Group(anchor *Node) []*Node {
	if d.tags == nil {
		return nil
	}
	return d.tags[anchor]
}
