package ebtree

// Mode selects whether a tree admits duplicate keys.
type Mode uint8

const (
	// Normal admits any number of leaves with equal keys.
	Normal Mode = iota
	// Unique rejects an insert whose key already exists, returning the
	// existing leaf instead of linking the new one.
	Unique
)

// Root is the two-link handle callers present to every tree operation. Per
// the data model, a Root literally carries two child links; only the left
// one is ever populated (the whole tree hangs off it) — the right slot
// exists so Root and NodeCore share the same [2]Link branches shape, which
// lets ParentLink.branches() treat "attached to the root" and "attached to
// an interior node" uniformly instead of as two special cases threaded
// through every algorithm.
type Root struct {
	top   [2]Link
	flags rootFlags
}

// NewRoot returns an empty Root in the given Mode.
func NewRoot(mode Mode) *Root {
	r := &Root{}
	r.flags.set(flagUnique, mode == Unique)
	return r
}

// Mode reports whether the tree admits duplicates.
func (r *Root) Mode() Mode {
	if r.flags.get(flagUnique) {
		return Unique
	}
	return Normal
}

// IsEmpty reports whether the tree holds no leaves.
func (r *Root) IsEmpty() bool {
	return r.top[Left].IsNull()
}
