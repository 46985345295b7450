package fridge

import "sync"

// bucket is a short table of entries sharing a hash index, protected by
// one mutex. All operations on entries or the map below run only while
// mu is held.
//
// A plain map already enforces "at most one entry per key" and its
// length already is the entry count, so there is no separate counter
// field to keep in sync with the map's actual size.
type bucket struct {
	mu      sync.Mutex
	entries map[uint32]*entry
}

func (b *bucket) find(key uint32) (*entry, bool) {
	e, ok := b.entries[key]
	return e, ok
}

func (b *bucket) add(e *entry) {
	if b.entries == nil {
		b.entries = make(map[uint32]*entry)
	}

	b.entries[e.key] = e
}

// remove unlinks e and marks it detached, so any waiter still sleeping on
// e sees it as gone rather than claiming its value a second time.
func (b *bucket) remove(e *entry) {
	delete(b.entries, e.key)
	e.detached = true
}
