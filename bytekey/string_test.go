package bytekey_test

import (
	"testing"

	"github.com/ordinate/ebtree/ebtree"
	"github.com/ordinate/ebtree/bytekey"
)

func TestStringTreeInsertAndLookup(t *testing.T) {
	tr := bytekey.NewStringTree(ebtree.Normal)
	words := []string{"eb", "ebtree", "eb32", "cbtree", "cb"}
	for _, w := range words {
		tr.Insert(&bytekey.StringNode{Key: w})
	}

	for _, w := range words {
		if n := tr.Lookup(w); n == nil || n.Key != w {
			t.Fatalf("Lookup(%q) = %v, want a match", w, n)
		}
	}
	if tr.Lookup("absent") != nil {
		t.Fatal("Lookup of an absent string should return nil")
	}
}

// Implicit NUL-termination: a string that is a strict prefix of another
// must sort immediately before it, as if terminated by a zero byte lower
// than any real byte value.
func TestStringImplicitTermination(t *testing.T) {
	tr := bytekey.NewStringTree(ebtree.Normal)
	for _, w := range []string{"cart", "car", "care"} {
		tr.Insert(&bytekey.StringNode{Key: w})
	}

	var order []string
	for n := bytekey.FirstString(tr); n != nil; n = n.Next() {
		order = append(order, n.Key)
	}
	want := []string{"car", "care", "cart"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestStringUniqueMode(t *testing.T) {
	tr := bytekey.NewStringTree(ebtree.Unique)
	first := &bytekey.StringNode{Key: "dup"}
	second := &bytekey.StringNode{Key: "dup"}

	tr.Insert(first)
	inserted, ok := tr.Insert(second)
	if ok || inserted != first {
		t.Fatalf("Unique-mode duplicate insert = (%v, %v), want (first, false)", inserted, ok)
	}
}

func TestStringLookupGELE(t *testing.T) {
	tr := bytekey.NewStringTree(ebtree.Normal)
	for _, w := range []string{"alpha", "gamma", "omega"} {
		tr.Insert(&bytekey.StringNode{Key: w})
	}

	if n := tr.LookupGE("beta"); n == nil || n.Key != "gamma" {
		t.Fatalf("LookupGE(beta) = %v, want gamma", n)
	}
	if n := tr.LookupLE("beta"); n == nil || n.Key != "alpha" {
		t.Fatalf("LookupLE(beta) = %v, want alpha", n)
	}
}

func TestStringDuplicateChain(t *testing.T) {
	tr := bytekey.NewStringTree(ebtree.Normal)
	a := &bytekey.StringNode{Key: "x"}
	b := &bytekey.StringNode{Key: "x"}
	tr.Insert(a)
	tr.Insert(b)

	if a.NextDup() != b {
		t.Fatal("expected b to follow a in the duplicate chain")
	}
	if b.PrevDup() != a {
		t.Fatal("expected a to precede b in the duplicate chain")
	}
}
