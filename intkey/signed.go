package intkey

import (
	"unsafe"

	"github.com/ordinate/ebtree/ebtree"
	"github.com/ordinate/ebtree/entry"
)

// Signed is the set of signed integer widths SignedTree accepts.
type Signed interface {
	~int32 | ~int64
}

// signedBias maps a signed value onto its unsigned bit pattern with the
// sign bit flipped, so that ordinary unsigned bit-by-bit descent produces
// the correct signed order (negative values sort before non-negative ones).
// This is the same trick __eb32i_insert/__eb64i_insert use (eb32tree.h):
// XOR with the sign bit turns two's-complement order into unsigned order.
func signedBiasI32(v int32) uint32 { return uint32(v) ^ 0x8000_0000 }
func signedBiasI64(v int64) uint64 { return uint64(v) ^ 0x8000_0000_0000_0000 }

func unbiasI32(v uint32) int32 { return int32(v ^ 0x8000_0000) }
func unbiasI64(v uint64) int64 { return int64(v ^ 0x8000_0000_0000_0000) }

// SignedNode32 wraps a stored int32 entry. Key is kept unbiased for
// callers; the tree itself only ever sees the biased value stored in the
// embedded unsigned Node.
type SignedNode32 struct {
	inner Node[uint32]
	Key   int32
}

func signedNode32Offset() uintptr {
	var n SignedNode32
	return uintptr(unsafe.Pointer(&n.inner)) - uintptr(unsafe.Pointer(&n))
}

// SignedTree32 is an ordered set/multiset of int32, built on the unsigned
// engine via sign-bit biasing (§4.4).
type SignedTree32 struct {
	t Tree[uint32]
}

// NewSignedTree32 returns an empty signed int32 tree.
func NewSignedTree32(mode ebtree.Mode) *SignedTree32 { return &SignedTree32{t: *NewTree[uint32](mode)} }

// Insert links n into the tree, biasing its key for unsigned descent. On a
// Unique-mode collision, ok is false and inserted is the pre-existing node.
func (s *SignedTree32) Insert(n *SignedNode32) (inserted *SignedNode32, ok bool) {
	n.inner.Key = signedBiasI32(n.Key)
	res, ok := s.t.Insert(&n.inner)
	return signedOf32(res), ok
}

// Lookup returns the node with exactly key, or nil.
func (s *SignedTree32) Lookup(key int32) *SignedNode32 {
	return signedOf32(s.t.Lookup(signedBiasI32(key)))
}

// LookupGE returns the smallest-keyed node with Key >= key, or nil.
func (s *SignedTree32) LookupGE(key int32) *SignedNode32 {
	return signedOf32(s.t.LookupGE(signedBiasI32(key)))
}

// LookupLE returns the largest-keyed node with Key <= key, or nil.
func (s *SignedTree32) LookupLE(key int32) *SignedNode32 {
	return signedOf32(s.t.LookupLE(signedBiasI32(key)))
}

func signedOf32(n *Node[uint32]) *SignedNode32 {
	if n == nil {
		return nil
	}
	return entry.Of[SignedNode32](unsafe.Pointer(n), signedNode32Offset())
}

// Next returns the next node in signed key order, or nil at the end.
func (n *SignedNode32) Next() *SignedNode32 { return signedOf32(n.inner.Next()) }

// Prev returns the previous node in signed key order, or nil at the start.
func (n *SignedNode32) Prev() *SignedNode32 { return signedOf32(n.inner.Prev()) }

// Delete unlinks n from its tree. No-op if n is not currently linked.
func (n *SignedNode32) Delete() { n.inner.Delete() }

// Linked reports whether n is currently attached to a tree.
func (n *SignedNode32) Linked() bool { return n.inner.Linked() }

// SignedNode64 wraps a stored int64 entry.
type SignedNode64 struct {
	inner Node[uint64]
	Key   int64
}

func signedNode64Offset() uintptr {
	var n SignedNode64
	return uintptr(unsafe.Pointer(&n.inner)) - uintptr(unsafe.Pointer(&n))
}

// SignedTree64 is an ordered set/multiset of int64.
type SignedTree64 struct {
	t Tree[uint64]
}

// NewSignedTree64 returns an empty signed int64 tree.
func NewSignedTree64(mode ebtree.Mode) *SignedTree64 { return &SignedTree64{t: *NewTree[uint64](mode)} }

func (s *SignedTree64) Insert(n *SignedNode64) (inserted *SignedNode64, ok bool) {
	n.inner.Key = signedBiasI64(n.Key)
	res, ok := s.t.Insert(&n.inner)
	return signedOf64(res), ok
}

func (s *SignedTree64) Lookup(key int64) *SignedNode64 {
	return signedOf64(s.t.Lookup(signedBiasI64(key)))
}

func (s *SignedTree64) LookupGE(key int64) *SignedNode64 {
	return signedOf64(s.t.LookupGE(signedBiasI64(key)))
}

func (s *SignedTree64) LookupLE(key int64) *SignedNode64 {
	return signedOf64(s.t.LookupLE(signedBiasI64(key)))
}

func signedOf64(n *Node[uint64]) *SignedNode64 {
	if n == nil {
		return nil
	}
	return entry.Of[SignedNode64](unsafe.Pointer(n), signedNode64Offset())
}

// Next returns the next node in signed key order, or nil at the end.
func (n *SignedNode64) Next() *SignedNode64 { return signedOf64(n.inner.Next()) }

// Prev returns the previous node in signed key order, or nil at the start.
func (n *SignedNode64) Prev() *SignedNode64 { return signedOf64(n.inner.Prev()) }

// Delete unlinks n from its tree. No-op if n is not currently linked.
func (n *SignedNode64) Delete() { n.inner.Delete() }

// Linked reports whether n is currently attached to a tree.
func (n *SignedNode64) Linked() bool { return n.inner.Linked() }
