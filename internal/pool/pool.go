// Package pool implements an intern pool: a mapping from value-equal
// collections to small, stably-assigned integer IDs. Deduplication uses
// a structural hash of the value (cnf/structhash) rather than a
// hand-rolled String() key, and the hash->id mapping is kept in an
// insertion-ordered map (emirpasic/gods' linkedhashmap) so ids(pool) and
// entries(pool) can be read back in first-seen order without a separate
// index.
package pool

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/v2/maps/linkedhashmap"
)

// Pool interns values of type V, assigning each distinct value (by
// structural equality) a stable, small non-negative integer ID in
// first-seen order.
type Pool[V any] struct {
	hashToID *linkedhashmap.Map[string, int]
	values   map[int]V
	next     int
}

// New creates an empty pool.
func New[V any]() *Pool[V] {
	return &Pool[V]{
		hashToID: linkedhashmap.New[string, int](),
		values:   make(map[int]V),
	}
}

func hashOf(v any) string {
	h, err := structhash.Hash(v, 1)
	if err != nil {
		// structhash only fails on unsupported types (channels, funcs);
		// every value type this generator interns (item sets, symbol
		// collections) is plain data, so this should never happen.
		panic(fmt.Sprintf("pool: cannot hash value: %v", err))
	}
	return h
}

// Intern returns the existing ID for value if any value already in the
// pool is structurally equal to it; otherwise it allocates the next
// integer ID. wasNew reports which case occurred, captured at the moment
// of this call — a worklist that needs to know whether a value was new
// must use this return rather than re-querying the pool afterward, since
// a later query would always report "present".
func (p *Pool[V]) Intern(value V) (id int, wasNew bool) {
	h := hashOf(value)
	if existing, ok := p.hashToID.Get(h); ok {
		return existing, false
	}
	id = p.next
	p.next++
	p.hashToID.Put(h, id)
	p.values[id] = value
	return id, true
}

// InternAll interns every value in order, returning their IDs in the same
// order. Equivalent to calling Intern in a loop; provided so callers with a
// batch of values (e.g. a freshly expanded rule set) don't each need their
// own loop.
func (p *Pool[V]) InternAll(values []V) []int {
	ids := make([]int, len(values))
	for i, v := range values {
		ids[i], _ = p.Intern(v)
	}
	return ids
}

// Present reports whether id was allocated by this pool instance at the
// time of the call.
func (p *Pool[V]) Present(id int) bool {
	_, ok := p.values[id]
	return ok
}

// ValueOf returns the value associated with id.
func (p *Pool[V]) ValueOf(id int) (V, bool) {
	v, ok := p.values[id]
	return v, ok
}

// IDs returns every allocated ID, in first-seen (insertion) order.
func (p *Pool[V]) IDs() []int {
	return p.hashToID.Values()
}

// Entry pairs an interned ID with its value.
type Entry[V any] struct {
	ID    int
	Value V
}

// Entries returns every (id, value) pair, in first-seen order.
func (p *Pool[V]) Entries() []Entry[V] {
	ids := p.IDs()
	out := make([]Entry[V], len(ids))
	for i, id := range ids {
		out[i] = Entry[V]{ID: id, Value: p.values[id]}
	}
	return out
}

// Len returns the number of distinct values interned so far.
func (p *Pool[V]) Len() int {
	return p.next
}
