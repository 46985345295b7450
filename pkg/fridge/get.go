package fridge

import (
	"context"
	"io"
)

// Get removes and returns the value for key, writing up to cap bytes to
// dst. flags selects [Nonblock] (the default) or [Block]; any other bits
// are [ErrInvalidArg].
//
// With Nonblock, Get returns [ErrNotFound] immediately if key currently
// has no value.
//
// With Block, Get waits for a value to arrive if key is absent, waking
// when a matching Put fills it, when ctx is canceled ([ErrInterrupted]),
// or when the store is torn down while waiting ([ErrNotPermitted]). ctx
// is this package's realization of "a signal delivered to the blocked
// caller" — cancel it to interrupt a waiting Get the same way a signal
// would.
func (s *Store) Get(ctx context.Context, key uint32, dst io.Writer, cap int, flags int) error {
	switch flags {
	case Nonblock:
		return s.getNonblock(key, dst, cap)
	case Block:
		return s.getBlock(ctx, key, dst, cap)
	default:
		return ErrInvalidArg
	}
}

func (s *Store) getNonblock(key uint32, dst io.Writer, cap int) error {
	ba, ok := s.enterRead()
	if !ok {
		return ErrNotPermitted
	}

	b := ba.bucketFor(key)

	b.mu.Lock()

	var taken pair

	e, found := b.find(key)
	if found && e.val.present {
		b.remove(e)
		taken = e.val
	} else {
		found = false
	}

	b.mu.Unlock()
	s.mu.RUnlock()

	if !found {
		return ErrNotFound
	}

	return taken.exportTo(dst, cap)
}

func (s *Store) getBlock(ctx context.Context, key uint32, dst io.Writer, cap int) error {
	spare, ok := newEntry(key)
	if !ok {
		return ErrOutOfMemory
	}

	ba, ok := s.enterRead()
	if !ok {
		return ErrNotPermitted
	}

	b := ba.bucketFor(key)

	b.mu.Lock()

	target, waiting, taken := claimOrWait(b, key, spare)

	b.mu.Unlock()
	s.mu.RUnlock()

	if !waiting {
		return taken.exportTo(dst, cap)
	}

	result, err := waitOn(ctx, b, target)
	if err != nil {
		return err
	}

	return result.exportTo(dst, cap)
}

// claimOrWait runs the bucket-locked section shared by every blocking Get:
// it either claims a full value outright, adopts an existing placeholder
// to wait on, or installs spare as a fresh placeholder to wait on.
//
// Returns either (nil, false, takenValue) when no wait is needed, or
// (target, true, zero) when the caller must wait on target.
func claimOrWait(b *bucket, key uint32, spare *entry) (target *entry, waiting bool, taken pair) {
	e, found := b.find(key)

	switch {
	case found && e.val.present:
		b.remove(e)

		return nil, false, e.val

	case found:
		e.waiters++

		return e, true, pair{}

	default:
		spare.cond.L = &b.mu
		b.add(spare)
		spare.waiters++

		return spare, true, pair{}
	}
}

// waitOn blocks on target's condition variable, under b's mutex, until a
// value arrives, the entry is detached by a concurrent Destroy, or ctx is
// canceled. It performs the linearizing "claim" itself: on fulfillment it
// removes target from b before returning, exactly as the non-blocking
// path's find-and-remove does.
func waitOn(ctx context.Context, b *bucket, target *entry) (pair, error) {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			target.cond.Broadcast()
			b.mu.Unlock()
		case <-done:
		}
	}()

	b.mu.Lock()
	defer b.mu.Unlock()

	for {
		// detached must be checked before present: the waiter that
		// claims a fulfilled entry marks it detached so every other
		// waiter racing the same wake sees "gone", not "also mine" —
		// this is the documented torn-rendezvous outcome (exactly one
		// waiter gets the value, the rest get ErrNotPermitted).
		switch {
		case target.detached:
			releaseWaiter(b, target)

			return pair{}, ErrNotPermitted

		case target.val.present:
			taken := target.val
			target.detached = true

			b.remove(target)
			releaseWaiter(b, target)

			return taken, nil

		case ctx.Err() != nil:
			releaseWaiter(b, target)

			return pair{}, ErrInterrupted
		}

		target.cond.Wait()
	}
}

// releaseWaiter must be called with target's bucket lock held. It is the
// "break branch" bookkeeping: decrement the waiter count, and if it
// reaches zero on a placeholder that's still linked (no value ever
// arrived, nobody else is waiting), unlink it — nothing else will ever
// claim it, so there's no reason to keep it in the bucket. Once nothing
// references target, the GC reclaims it; Go has no separate free step.
func releaseWaiter(b *bucket, target *entry) {
	target.waiters--

	if target.waiters == 0 && !target.detached {
		b.remove(target)
	}
}
