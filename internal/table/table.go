// Package table is a deliberately naive separate-chaining hash table whose
// hash function is supplied by the caller. Unlike Go maps it has no random
// seed and no tree bins, so a colliding key set degrades every insert to a
// full chain scan.
package table

import (
	"github.com/lth/hashflood/internal/hashmodel"
)

const (
	defaultCapacity = 16
	loadFactor      = 0.75
)

type entry struct {
	hash  uint32
	key   string
	value string
	next  *entry
}

type Table struct {
	model       hashmodel.Model
	buckets     []*entry
	size        int
	comparisons uint64
}

// New returns an empty table hashing keys with model. capacity is rounded
// up to a power of two; values below one select the default.
func New(model hashmodel.Model, capacity int) *Table {
	n := defaultCapacity
	if capacity > 0 {
		n = 1
		for n < capacity {
			n <<= 1
		}
	}
	return &Table{
		model:   model,
		buckets: make([]*entry, n),
	}
}

// Put stores value under key and reports whether an existing key was
// replaced.
func (t *Table) Put(key, value string) bool {
	h := t.model.Sum32(key)
	idx := t.index(h)

	for e := t.buckets[idx]; e != nil; e = e.next {
		t.comparisons++
		if e.hash == h && e.key == key {
			e.value = value
			return true
		}
	}

	t.buckets[idx] = &entry{hash: h, key: key, value: value, next: t.buckets[idx]}
	t.size++
	if float64(t.size) > loadFactor*float64(len(t.buckets)) {
		t.resize()
	}
	return false
}

func (t *Table) Get(key string) (string, bool) {
	h := t.model.Sum32(key)
	for e := t.buckets[t.index(h)]; e != nil; e = e.next {
		t.comparisons++
		if e.hash == h && e.key == key {
			return e.value, true
		}
	}
	return "", false
}

func (t *Table) Len() int {
	return t.size
}

func (t *Table) Buckets() int {
	return len(t.buckets)
}

// Comparisons is the number of chain entries visited by Put and Get so far.
func (t *Table) Comparisons() uint64 {
	return t.comparisons
}

// MaxChain is the length of the longest bucket chain.
func (t *Table) MaxChain() int {
	longest := 0
	for _, e := range t.buckets {
		n := 0
		for ; e != nil; e = e.next {
			n++
		}
		longest = max(longest, n)
	}
	return longest
}

func (t *Table) index(h uint32) int {
	return int((h ^ h>>16) & uint32(len(t.buckets)-1))
}

func (t *Table) resize() {
	old := t.buckets
	t.buckets = make([]*entry, len(old)*2)
	for _, e := range old {
		for e != nil {
			next := e.next
			idx := t.index(e.hash)
			e.next = t.buckets[idx]
			t.buckets[idx] = e
			e = next
		}
	}
}
