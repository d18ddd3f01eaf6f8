package ordmap

import (
	"log/slog"
	"sync"
	"unsafe"

	set3 "github.com/TomTonic/Set3"

	"github.com/ordinate/ebtree/ebtree"
	"github.com/ordinate/ebtree/bytekey"
)

// entry is the stored node: its tree linkage (via the embedded
// bytekey.Node), plus the value set for that key. Unique mode means
// exactly one entry ever exists per distinct key byte sequence; the
// multi-valued part of "multi-map" lives in the Set3, not in tree
// duplicates.
type entry[T comparable] struct {
	node bytekey.Node
	vals *set3.Set3[T]
}

// Options configures an OrderedMultiMap. Construct with New and the
// With... functions below, following the functional-options idiom this
// pack's constructors use for small bits of constructor configuration.
type Options struct {
	// capacityHint is advisory only: the underlying radix tree has no
	// preallocated backing array to size, unlike the teacher's slice-based
	// multimap. Kept so callers migrating off a capacity-hinted map don't
	// need to drop the call.
	capacityHint int
	logger       *slog.Logger
}

// Option configures an OrderedMultiMap at construction time.
type Option func(*Options)

// WithCapacityHint records n as the expected number of keys. The hint is
// advisory only: New does not read it and nothing is preallocated.
func WithCapacityHint(n int) Option {
	return func(o *Options) { o.capacityHint = n }
}

// WithLogger attaches a structured logger that receives a debug record each
// time a mutating method (AddValue, RemoveValue, RemoveKey, Clear) acquires
// the write lock; nil (the default) disables logging entirely.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// OrderedMultiMap is a concurrency-safe multi-map from Key to a set of
// values, backed by an intrusive byte-key radix tree (bytekey.Tree)
// instead of a linear scan: every range query below descends the tree in
// O(log n) rather than walking every stored key.
type OrderedMultiMap[T comparable] struct {
	mu     sync.RWMutex
	tree   *bytekey.Tree
	count  int
	logger *slog.Logger
}

// New creates an empty OrderedMultiMap.
func New[T comparable](opts ...Option) *OrderedMultiMap[T] {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return &OrderedMultiMap[T]{
		tree:   bytekey.NewTree(uniqueModeFor()),
		logger: o.logger,
	}
}

func entryOf[T comparable](n *bytekey.Node) *entry[T] {
	if n == nil {
		return nil
	}
	return (*entry[T])(unsafe.Pointer(n))
}

func uniqueModeFor() ebtree.Mode { return ebtree.Unique }

func (m *OrderedMultiMap[T]) logContention(op string) {
	if m.logger != nil {
		m.logger.Debug("ordmap: lock acquired", "op", op, "keys", m.count)
	}
}

func (m *OrderedMultiMap[T]) find(key Key) *entry[T] {
	n := m.tree.Lookup([]byte(key))
	if n == nil {
		return nil
	}
	return entryOf[T](n)
}

// AddValue adds v to the set of values stored at key, creating key if
// necessary. key is cloned before insertion.
func (m *OrderedMultiMap[T]) AddValue(key Key, v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logContention("AddValue")

	if e := m.find(key); e != nil {
		if e.vals == nil {
			e.vals = set3.Empty[T]()
		}
		e.vals.Add(v)
		return
	}

	e := &entry[T]{node: bytekey.Node{Key: key.Clone()}, vals: set3.Empty[T]()}
	e.vals.Add(v)
	m.tree.Insert(&e.node)
	m.count++
}

// RemoveValue removes v from the set of values stored at key, if present.
func (m *OrderedMultiMap[T]) RemoveValue(key Key, v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logContention("RemoveValue")

	if e := m.find(key); e != nil && e.vals != nil {
		e.vals.Remove(v)
	}
}

// ContainsKey reports whether key has any entry in the map.
func (m *OrderedMultiMap[T]) ContainsKey(key Key) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.find(key) != nil
}

// RemoveKey deletes key and all its values from the map.
func (m *OrderedMultiMap[T]) RemoveKey(key Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logContention("RemoveKey")

	if e := m.find(key); e != nil {
		e.node.Delete()
		m.count--
	}
}

// ValuesFor returns the set of values stored at key, or an empty set.
func (m *OrderedMultiMap[T]) ValuesFor(key Key) *set3.Set3[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e := m.find(key); e != nil && e.vals != nil {
		return e.vals.Clone()
	}
	return set3.EmptyWithCapacity[T](0)
}

// AllValues returns the union of every value across every key.
func (m *OrderedMultiMap[T]) AllValues() *set3.Set3[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := set3.Empty[T]()
	for n := bytekey.First(m.tree); n != nil; n = n.Next() {
		e := entryOf[T](n)
		if e.vals != nil {
			result.AddAll(e.vals)
		}
	}
	return result
}

// ValuesBetweenInclusive returns the union of values whose key is in
// [from, to], regardless of whether from or to themselves exist as keys.
func (m *OrderedMultiMap[T]) ValuesBetweenInclusive(from, to Key) *set3.Set3[T] {
	return m.rangeUnion(from, to, true, true)
}

// ValuesBetweenExclusive returns the union of values whose key is in
// (from, to), excluding from and to themselves.
func (m *OrderedMultiMap[T]) ValuesBetweenExclusive(from, to Key) *set3.Set3[T] {
	return m.rangeUnion(from, to, false, false)
}

// ValuesFromInclusive returns the union of values whose key is >= from.
func (m *OrderedMultiMap[T]) ValuesFromInclusive(from Key) *set3.Set3[T] {
	return m.rangeFrom(from, true)
}

// ValuesFromExclusive returns the union of values whose key is > from.
func (m *OrderedMultiMap[T]) ValuesFromExclusive(from Key) *set3.Set3[T] {
	return m.rangeFrom(from, false)
}

// ValuesToInclusive returns the union of values whose key is <= to.
func (m *OrderedMultiMap[T]) ValuesToInclusive(to Key) *set3.Set3[T] {
	return m.rangeTo(to, true)
}

// ValuesToExclusive returns the union of values whose key is < to.
func (m *OrderedMultiMap[T]) ValuesToExclusive(to Key) *set3.Set3[T] {
	return m.rangeTo(to, false)
}

func (m *OrderedMultiMap[T]) rangeUnion(from, to Key, incFrom, incTo bool) *set3.Set3[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := set3.Empty[T]()

	n := m.tree.LookupGE([]byte(from))
	for n != nil {
		k := Key(n.Key)
		if k.LessThan(from) {
			n = n.Next()
			continue
		}
		if k.Equal(from) && !incFrom {
			n = n.Next()
			continue
		}
		if to.LessThan(k) {
			break
		}
		if k.Equal(to) && !incTo {
			break
		}
		e := entryOf[T](n)
		if e.vals != nil {
			result.AddAll(e.vals)
		}
		n = n.Next()
	}
	return result
}

func (m *OrderedMultiMap[T]) rangeFrom(from Key, inclusive bool) *set3.Set3[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := set3.Empty[T]()

	n := m.tree.LookupGE([]byte(from))
	for n != nil {
		k := Key(n.Key)
		if k.Equal(from) && !inclusive {
			n = n.Next()
			continue
		}
		e := entryOf[T](n)
		if e.vals != nil {
			result.AddAll(e.vals)
		}
		n = n.Next()
	}
	return result
}

func (m *OrderedMultiMap[T]) rangeTo(to Key, inclusive bool) *set3.Set3[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := set3.Empty[T]()

	for n := bytekey.First(m.tree); n != nil; n = n.Next() {
		k := Key(n.Key)
		if to.LessThan(k) {
			break
		}
		if k.Equal(to) && !inclusive {
			break
		}
		e := entryOf[T](n)
		if e.vals != nil {
			result.AddAll(e.vals)
		}
	}
	return result
}

// NumberOfKeys returns the number of distinct keys currently stored.
func (m *OrderedMultiMap[T]) NumberOfKeys() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return uint64(m.count)
}

// AllKeys returns every distinct key currently stored, in ascending order.
func (m *OrderedMultiMap[T]) AllKeys() []Key {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]Key, 0, m.count)
	for n := bytekey.First(m.tree); n != nil; n = n.Next() {
		keys = append(keys, Key(n.Key).Clone())
	}
	return keys
}

// Clear removes every key and value from the map.
func (m *OrderedMultiMap[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logContention("Clear")
	m.tree = bytekey.NewTree(uniqueModeFor())
	m.count = 0
}
