package intkey_test

import (
	"testing"
	"unsafe"

	"github.com/ordinate/ebtree/ebtree"
	"github.com/ordinate/ebtree/intkey"
)

func TestPtrTreeKeyedByAddress(t *testing.T) {
	tree := intkey.NewPtrTree(ebtree.Unique)

	a, b, c := 1, 2, 3
	na := &intkey.PtrNode{Key: uintptr(unsafe.Pointer(&a))}
	nb := &intkey.PtrNode{Key: uintptr(unsafe.Pointer(&b))}
	nc := &intkey.PtrNode{Key: uintptr(unsafe.Pointer(&c))}

	for _, n := range []*intkey.PtrNode{na, nb, nc} {
		if _, ok := tree.Insert(n); !ok {
			t.Fatalf("Insert(%d) unexpectedly rejected", n.Key)
		}
	}

	if tree.Lookup(uintptr(unsafe.Pointer(&a))) == nil {
		t.Fatal("Lookup by &a's address should find na")
	}

	var stray int
	if tree.Lookup(uintptr(unsafe.Pointer(&stray))) != nil {
		t.Fatal("Lookup by an unrelated address should return nil")
	}
}
