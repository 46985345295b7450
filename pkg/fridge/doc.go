// Package fridge provides a concurrent in-process key-value store mapping
// 32-bit unsigned integer keys to opaque byte-string values.
//
// fridge is a sharded hash table: a fixed number of buckets, each guarded
// by its own mutex, sit behind a store-wide readers-writers lock. Init and
// Destroy take the write side and run exclusively; Put and Get take the
// read side and run concurrently with each other, contending only on the
// bucket their key happens to hash to.
//
// # Blocking Get
//
// Get can optionally block until a value for its key becomes available. A
// blocking Get on an absent key installs a placeholder entry and waits on
// it; a later Put for the same key fills the placeholder and wakes every
// waiter, exactly one of which will claim the value. A Destroy racing with
// a waiter detaches its placeholder and wakes it too, in which case the
// waiter reports [ErrNotPermitted] rather than a stale value.
//
// # Concurrency
//
//   - Init/Destroy are mutually exclusive with each other and with
//     Put/Get: they use a fail-fast try-lock so a caller that races them
//     gets [ErrNotPermitted] back immediately instead of blocking.
//   - Put and Get are safe for concurrent use by any number of goroutines
//     once a Store is initialized.
//
// # Error Handling
//
// Errors are plain sentinels (see errors.go); callers should use
// [errors.Is]. There is no durable state: fridge is not a database, it is
// a throwaway cache. See the package-level Non-goals in the project's
// design notes for what it deliberately does not do (persistence,
// replication, iteration, ordering, capacity limits).
package fridge
