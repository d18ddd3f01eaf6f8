package ordmap_test

import (
	"fmt"

	set3 "github.com/TomTonic/Set3"

	"github.com/ordinate/ebtree/ordmap"
)

func Example_basicUsage() {
	mm := ordmap.New[int]()
	mm.AddValue(ordmap.FromString("Alice"), 1)
	mm.AddValue(ordmap.FromString("Bob"), 2)

	fmt.Println(mm.NumberOfKeys())
	// Output:
	// 2
}

func Example_rangeQuery() {
	mm := ordmap.New[int]()
	mm.AddValue(ordmap.FromString("a"), 1)
	mm.AddValue(ordmap.FromString("b"), 2)
	mm.AddValue(ordmap.FromString("c"), 3)

	set := mm.ValuesBetweenInclusive(ordmap.FromString("a"), ordmap.FromString("b"))
	fmt.Println(set.Equals(set3.From(1, 2)))
	// Output:
	// true
}
