package bytekey_test

import (
	"testing"

	"github.com/ordinate/ebtree/bytekey"
)

func ipv4(a, b, c, d byte) []byte { return []byte{a, b, c, d} }

// Scenario S5 (spec.md §8): IPv4 longest-prefix-match over a small routing
// table, including a default route and overlapping, more-specific routes.
func TestScenarioS5LongestPrefixMatch(t *testing.T) {
	tr := bytekey.NewPrefixTree()

	routes := []struct {
		key []byte
		pfx int
	}{
		{ipv4(0, 0, 0, 0), 0},          // default route
		{ipv4(10, 0, 0, 0), 8},         // 10.0.0.0/8
		{ipv4(10, 1, 0, 0), 16},        // 10.1.0.0/16
		{ipv4(10, 1, 2, 0), 24},        // 10.1.2.0/24
		{ipv4(192, 168, 0, 0), 16},     // 192.168.0.0/16
	}
	nodes := make([]*bytekey.PrefixNode, len(routes))
	for i, r := range routes {
		nodes[i] = &bytekey.PrefixNode{Key: r.key, Pfx: r.pfx}
		if err := tr.InsertPrefix(nodes[i], 32); err != nil {
			t.Fatalf("InsertPrefix(%v/%d) failed: %v", r.key, r.pfx, err)
		}
	}

	cases := []struct {
		addr    []byte
		wantPfx int
	}{
		{ipv4(10, 1, 2, 5), 24},   // matches the most specific route
		{ipv4(10, 1, 3, 5), 16},   // falls back to /16
		{ipv4(10, 2, 0, 0), 8},    // falls back to /8
		{ipv4(192, 168, 5, 5), 16},
		{ipv4(8, 8, 8, 8), 0},     // only the default route matches
	}
	for _, c := range cases {
		got := tr.LookupLongest(c.addr)
		if got == nil {
			t.Fatalf("LookupLongest(%v) = nil, want pfx %d", c.addr, c.wantPfx)
		}
		if got.Pfx != c.wantPfx {
			t.Fatalf("LookupLongest(%v).Pfx = %d, want %d", c.addr, got.Pfx, c.wantPfx)
		}
	}
}

func TestInsertPrefixRejectsOverlongMask(t *testing.T) {
	tr := bytekey.NewPrefixTree()
	n := &bytekey.PrefixNode{Key: ipv4(1, 2, 3, 4), Pfx: 33}
	if err := tr.InsertPrefix(n, 32); err != bytekey.ErrPrefixTooLong {
		t.Fatalf("InsertPrefix with Pfx=33/maxLen=32 = %v, want ErrPrefixTooLong", err)
	}
}

func TestLookupLongestNoMatch(t *testing.T) {
	tr := bytekey.NewPrefixTree()
	tr.InsertPrefix(&bytekey.PrefixNode{Key: ipv4(10, 0, 0, 0), Pfx: 8}, 32)

	if got := tr.LookupLongest(ipv4(172, 16, 0, 1)); got != nil {
		t.Fatalf("LookupLongest(172.16.0.1) = %v, want nil (no default route present)", got)
	}
}

func TestSupernetsWalksFromMostToLeastSpecific(t *testing.T) {
	tr := bytekey.NewPrefixTree()
	tr.InsertPrefix(&bytekey.PrefixNode{Key: ipv4(10, 0, 0, 0), Pfx: 8}, 32)
	tr.InsertPrefix(&bytekey.PrefixNode{Key: ipv4(10, 1, 0, 0), Pfx: 16}, 32)
	tr.InsertPrefix(&bytekey.PrefixNode{Key: ipv4(10, 1, 2, 0), Pfx: 24}, 32)

	var pfxs []int
	for n := range tr.Supernets(ipv4(10, 1, 2, 5)) {
		pfxs = append(pfxs, n.Pfx)
	}
	if len(pfxs) == 0 {
		t.Fatal("expected at least one matching supernet")
	}
	for i := 1; i < len(pfxs); i++ {
		if pfxs[i-1] < pfxs[i] {
			t.Fatalf("Supernets not most-to-least-specific: %v", pfxs)
		}
	}
}
