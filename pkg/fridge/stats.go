package fridge

// Stats is a point-in-time diagnostic snapshot of a Store, taken by
// briefly locking each bucket in turn. It never blocks Put/Get for the
// whole store at once and never reads entry payload bytes.
type Stats struct {
	Buckets       int
	Entries       int
	MaxChainDepth int
	WaitingKeys   int
}

// Stats gathers [Stats] for the store. It fails fast with
// [ErrNotPermitted] under the same rules as Put/Get: if the store is
// uninitialized or a concurrent Init/Destroy holds the write lock.
func (s *Store) Stats() (Stats, error) {
	ba, ok := s.enterRead()
	if !ok {
		return Stats{}, ErrNotPermitted
	}
	defer s.mu.RUnlock()

	st := Stats{Buckets: len(ba.buckets)}

	for i := range ba.buckets {
		b := &ba.buckets[i]

		b.mu.Lock()

		depth := len(b.entries)
		st.Entries += depth

		if depth > st.MaxChainDepth {
			st.MaxChainDepth = depth
		}

		for _, e := range b.entries {
			if e.waiters > 0 {
				st.WaitingKeys++
			}
		}

		b.mu.Unlock()
	}

	return st, nil
}
