package fridge

import "io"

// Put inserts or replaces the value for key, reading exactly size bytes
// from src. flags must be 0.
//
// Net effect: exactly one entry exists for key afterward, carrying the
// new value; any previous value is discarded; any blocking Get waiting
// on key observes the new value next.
func (s *Store) Put(key uint32, src io.Reader, size int, flags int) error {
	if flags != Nonblock {
		return ErrInvalidArg
	}

	local, err := importPair(key, src, size)
	if err != nil {
		return err
	}

	// Preallocated outside the bucket critical section; discarded below
	// if an entry for key already existed.
	spare, ok := newEntry(key)
	if !ok {
		return ErrOutOfMemory
	}

	ba, ok := s.enterRead()
	if !ok {
		return ErrNotPermitted
	}
	defer s.mu.RUnlock()

	b := ba.bucketFor(key)

	b.mu.Lock()

	e, existed := b.find(key)
	if !existed {
		spare.cond.L = &b.mu
		e = spare
		b.add(e)
	}

	e.val, local = local, e.val // swap: e now holds the new value, local the old

	if e.waiters > 0 {
		e.cond.Broadcast()
	}

	b.mu.Unlock()

	return nil
}
