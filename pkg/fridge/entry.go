package fridge

import "sync"

// entry is a single slot in a bucket's table: a pair plus the blocking-get
// state needed to host waiters on it.
//
// An entry is owned by exactly one bucket's map at a time, or is detached
// (removed from the map by Destroy or by a Get) but still referenced by one or more
// waiters — see the wait loop in get.go. cond's Locker is always the
// owning bucket's mutex, so waiting on an entry releases and reacquires
// that bucket's lock, never a different one.
type entry struct {
	key      uint32
	val      pair
	cond     *sync.Cond
	waiters  int
	detached bool
}

// newEntry allocates a fresh placeholder entry for key. Allocation
// happens here, outside any bucket critical section — callers
// preallocate an entry before taking a bucket lock and discard it
// (letting the GC reclaim it) if it turns out unneeded. The cond's
// Locker is left nil; whoever links the entry into a bucket sets
// e.cond.L to that bucket's mutex before the entry is ever waited on.
//
// ok is false when fault injection (see alloc.go) simulates an
// allocation failure; callers must treat that as [ErrOutOfMemory].
func newEntry(key uint32) (e *entry, ok bool) {
	if !allocOK() {
		return nil, false
	}

	return &entry{key: key, val: emptyPair(key), cond: sync.NewCond(nil)}, true
}
