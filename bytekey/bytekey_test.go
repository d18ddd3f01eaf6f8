package bytekey_test

import (
	"bytes"
	"testing"

	"github.com/ordinate/ebtree/ebtree"
	"github.com/ordinate/ebtree/bytekey"
)

func TestTreeInsertAndLookup(t *testing.T) {
	tr := bytekey.NewTree(ebtree.Normal)
	keys := [][]byte{
		[]byte("banana"),
		[]byte("apple"),
		[]byte("cherry"),
		[]byte("app"),
		[]byte("applesauce"),
	}
	nodes := make([]*bytekey.Node, len(keys))
	for i, k := range keys {
		nodes[i] = &bytekey.Node{Key: k}
		if _, ok := tr.Insert(nodes[i]); !ok {
			t.Fatalf("Insert(%q) unexpectedly rejected", k)
		}
	}

	for _, k := range keys {
		found := tr.Lookup(k)
		if found == nil || !bytes.Equal(found.Key, k) {
			t.Fatalf("Lookup(%q) = %v, want a match", k, found)
		}
	}
	if tr.Lookup([]byte("missing")) != nil {
		t.Fatal("Lookup of an absent key should return nil")
	}
}

func TestTreeAscendingTraversal(t *testing.T) {
	tr := bytekey.NewTree(ebtree.Normal)
	keys := []string{"banana", "apple", "cherry", "app", "applesauce", "b"}
	for _, k := range keys {
		tr.Insert(&bytekey.Node{Key: []byte(k)})
	}

	var order []string
	for n := bytekey.First(tr); n != nil; n = n.Next() {
		order = append(order, string(n.Key))
	}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Fatalf("traversal not strictly ascending at %d: %v", i, order)
		}
	}
	if len(order) != len(keys) {
		t.Fatalf("visited %d nodes, want %d", len(order), len(keys))
	}
}

func TestUniqueModeRejectsDuplicate(t *testing.T) {
	tr := bytekey.NewTree(ebtree.Unique)
	first := &bytekey.Node{Key: []byte("k")}
	second := &bytekey.Node{Key: []byte("k")}

	if _, ok := tr.Insert(first); !ok {
		t.Fatal("first insert should succeed")
	}
	inserted, ok := tr.Insert(second)
	if ok || inserted != first {
		t.Fatalf("Unique-mode duplicate insert should return (existing, false); got (%v, %v)", inserted, ok)
	}
	if second.Linked() {
		t.Fatal("rejected duplicate must remain unlinked")
	}
}

// Scenario S4 (spec.md §8): string keys compare lexicographically including
// the case where one key is a byte-wise prefix of another.
func TestScenarioS4PrefixOrdering(t *testing.T) {
	tr := bytekey.NewTree(ebtree.Normal)
	for _, k := range []string{"car", "cart", "care", "ca", "card"} {
		tr.Insert(&bytekey.Node{Key: []byte(k)})
	}

	var order []string
	for n := bytekey.First(tr); n != nil; n = n.Next() {
		order = append(order, string(n.Key))
	}
	want := []string{"ca", "car", "card", "care", "cart"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestLookupGELE(t *testing.T) {
	tr := bytekey.NewTree(ebtree.Normal)
	for _, k := range []string{"b", "d", "f"} {
		tr.Insert(&bytekey.Node{Key: []byte(k)})
	}

	if n := tr.LookupGE([]byte("c")); n == nil || string(n.Key) != "d" {
		t.Fatalf("LookupGE(c) = %v, want d", n)
	}
	if n := tr.LookupGE([]byte("d")); n == nil || string(n.Key) != "d" {
		t.Fatalf("LookupGE(d) = %v, want d (inclusive)", n)
	}
	if n := tr.LookupLE([]byte("c")); n == nil || string(n.Key) != "b" {
		t.Fatalf("LookupLE(c) = %v, want b", n)
	}
	if n := tr.LookupGE([]byte("z")); n != nil {
		t.Fatalf("LookupGE(z) = %v, want nil (past the end)", n)
	}
	if n := tr.LookupLE([]byte("a")); n != nil {
		t.Fatalf("LookupLE(a) = %v, want nil (before the start)", n)
	}
}

func TestDeleteFromByteTree(t *testing.T) {
	tr := bytekey.NewTree(ebtree.Normal)
	a := &bytekey.Node{Key: []byte("a")}
	b := &bytekey.Node{Key: []byte("b")}
	c := &bytekey.Node{Key: []byte("c")}
	tr.Insert(a)
	tr.Insert(b)
	tr.Insert(c)

	b.Delete()
	if b.Linked() {
		t.Fatal("deleted node must report Linked() == false")
	}
	if a.Next() != c {
		t.Fatal("after deleting b, a.Next() should be c")
	}
}
