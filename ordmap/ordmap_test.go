package ordmap_test

import (
	"testing"

	"github.com/ordinate/ebtree/ordmap"
)

func TestAddAndContainsKey(t *testing.T) {
	mm := ordmap.New[string]()

	if mm.ContainsKey(ordmap.FromString("missing")) {
		t.Fatal("empty map should not contain any key")
	}

	mm.AddValue(ordmap.FromString("k1"), "v1")
	if !mm.ContainsKey(ordmap.FromString("k1")) {
		t.Fatal("expected k1 to be present after AddValue")
	}
	if mm.NumberOfKeys() != 1 {
		t.Fatalf("NumberOfKeys() = %d, want 1", mm.NumberOfKeys())
	}
}

func TestAddValueAccumulatesSet(t *testing.T) {
	mm := ordmap.New[int]()
	key := ordmap.FromString("shared")

	mm.AddValue(key, 1)
	mm.AddValue(key, 2)
	mm.AddValue(key, 2)

	vals := mm.ValuesFor(key)
	if vals.Size() != 2 {
		t.Fatalf("ValuesFor size = %d, want 2", vals.Size())
	}
	if !vals.Contains(1) || !vals.Contains(2) {
		t.Fatalf("ValuesFor missing expected members: %v", vals)
	}
	if mm.NumberOfKeys() != 1 {
		t.Fatalf("NumberOfKeys() = %d, want 1 (single key, multiple values)", mm.NumberOfKeys())
	}
}

func TestRemoveValue(t *testing.T) {
	mm := ordmap.New[int]()
	key := ordmap.FromString("k")
	mm.AddValue(key, 1)
	mm.AddValue(key, 2)

	mm.RemoveValue(key, 1)
	vals := mm.ValuesFor(key)
	if vals.Size() != 1 || !vals.Contains(2) {
		t.Fatalf("after RemoveValue, got %v, want {2}", vals)
	}

	// Key itself survives even with zero remaining values.
	mm.RemoveValue(key, 2)
	if !mm.ContainsKey(key) {
		t.Fatal("RemoveValue should not delete the key itself, only RemoveKey does")
	}
}

func TestRemoveKey(t *testing.T) {
	mm := ordmap.New[int]()
	mm.AddValue(ordmap.FromString("a"), 1)
	mm.AddValue(ordmap.FromString("b"), 2)

	mm.RemoveKey(ordmap.FromString("a"))
	if mm.ContainsKey(ordmap.FromString("a")) {
		t.Fatal("expected key a to be gone after RemoveKey")
	}
	if mm.NumberOfKeys() != 1 {
		t.Fatalf("NumberOfKeys() = %d, want 1", mm.NumberOfKeys())
	}

	// Removing a key that was never present is a no-op.
	mm.RemoveKey(ordmap.FromString("never-existed"))
	if mm.NumberOfKeys() != 1 {
		t.Fatalf("NumberOfKeys() after no-op RemoveKey = %d, want 1", mm.NumberOfKeys())
	}
}

func TestAllValuesUnion(t *testing.T) {
	mm := ordmap.New[int]()
	mm.AddValue(ordmap.FromString("a"), 1)
	mm.AddValue(ordmap.FromString("b"), 2)
	mm.AddValue(ordmap.FromString("c"), 1)

	all := mm.AllValues()
	if all.Size() != 2 {
		t.Fatalf("AllValues size = %d, want 2 (1 and 2)", all.Size())
	}
}

func TestAllKeysOrdering(t *testing.T) {
	mm := ordmap.New[int]()
	mm.AddValue(ordmap.FromString("banana"), 1)
	mm.AddValue(ordmap.FromString("apple"), 2)
	mm.AddValue(ordmap.FromString("cherry"), 3)

	keys := mm.AllKeys()
	if len(keys) != 3 {
		t.Fatalf("AllKeys() len = %d, want 3", len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if !keys[i-1].LessThan(keys[i]) {
			t.Fatalf("AllKeys() not ascending at index %d: %v then %v", i, keys[i-1], keys[i])
		}
	}
}

func TestRangeQueries(t *testing.T) {
	mm := ordmap.New[int]()
	mm.AddValue(ordmap.FromInt(10), 1)
	mm.AddValue(ordmap.FromInt(20), 2)
	mm.AddValue(ordmap.FromInt(30), 3)
	mm.AddValue(ordmap.FromInt(40), 4)

	between := mm.ValuesBetweenInclusive(ordmap.FromInt(20), ordmap.FromInt(30))
	if between.Size() != 2 || !between.Contains(2) || !between.Contains(3) {
		t.Fatalf("ValuesBetweenInclusive(20,30) = %v, want {2,3}", between)
	}

	exclusive := mm.ValuesBetweenExclusive(ordmap.FromInt(10), ordmap.FromInt(40))
	if exclusive.Size() != 2 || !exclusive.Contains(2) || !exclusive.Contains(3) {
		t.Fatalf("ValuesBetweenExclusive(10,40) = %v, want {2,3}", exclusive)
	}

	from := mm.ValuesFromInclusive(ordmap.FromInt(30))
	if from.Size() != 2 || !from.Contains(3) || !from.Contains(4) {
		t.Fatalf("ValuesFromInclusive(30) = %v, want {3,4}", from)
	}

	fromExcl := mm.ValuesFromExclusive(ordmap.FromInt(30))
	if fromExcl.Size() != 1 || !fromExcl.Contains(4) {
		t.Fatalf("ValuesFromExclusive(30) = %v, want {4}", fromExcl)
	}

	to := mm.ValuesToInclusive(ordmap.FromInt(20))
	if to.Size() != 2 || !to.Contains(1) || !to.Contains(2) {
		t.Fatalf("ValuesToInclusive(20) = %v, want {1,2}", to)
	}

	toExcl := mm.ValuesToExclusive(ordmap.FromInt(20))
	if toExcl.Size() != 1 || !toExcl.Contains(1) {
		t.Fatalf("ValuesToExclusive(20) = %v, want {1}", toExcl)
	}
}

func TestClear(t *testing.T) {
	mm := ordmap.New[int]()
	mm.AddValue(ordmap.FromString("a"), 1)
	mm.AddValue(ordmap.FromString("b"), 2)

	mm.Clear()
	if mm.NumberOfKeys() != 0 {
		t.Fatalf("NumberOfKeys() after Clear = %d, want 0", mm.NumberOfKeys())
	}
	if mm.ContainsKey(ordmap.FromString("a")) {
		t.Fatal("expected no keys to survive Clear")
	}

	// Map remains usable after Clear.
	mm.AddValue(ordmap.FromString("c"), 3)
	if mm.NumberOfKeys() != 1 {
		t.Fatalf("NumberOfKeys() after post-Clear insert = %d, want 1", mm.NumberOfKeys())
	}
}

func TestIntegerKeyOrderingAcrossWidths(t *testing.T) {
	// FromInt32 and FromInt64 must produce identical Keys for equal values
	// so callers mixing integer widths don't silently fracture ordering.
	a := ordmap.FromInt32(-5)
	b := ordmap.FromInt64(-5)
	if !a.Equal(b) {
		t.Fatalf("FromInt32(-5) = %v, FromInt64(-5) = %v, want equal", a, b)
	}

	neg := ordmap.FromInt64(-1)
	pos := ordmap.FromInt64(1)
	if !neg.LessThan(pos) {
		t.Fatal("FromInt64(-1) should sort before FromInt64(1)")
	}
}
