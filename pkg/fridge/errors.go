package fridge

import "errors"

// Sentinel errors returned by Store operations.
//
// Callers should classify errors with [errors.Is]; implementations may
// wrap these with additional context via fmt.Errorf's %w verb.
var (
	// ErrInvalidArg indicates flag bits outside the documented set.
	ErrInvalidArg = errors.New("fridge: invalid argument")

	// ErrOutOfMemory indicates an allocation failed.
	ErrOutOfMemory = errors.New("fridge: out of memory")

	// ErrBadAddress indicates a copy to/from the caller's byte source or
	// sink failed (src.Read or dst.Write returned an error).
	ErrBadAddress = errors.New("fridge: bad address")

	// ErrNotPermitted indicates the call raced Init/Destroy, or was made
	// on a Store that is not currently initialized.
	ErrNotPermitted = errors.New("fridge: not permitted")

	// ErrNotFound indicates a non-blocking Get found no value for the key.
	ErrNotFound = errors.New("fridge: not found")

	// ErrInterrupted indicates a blocking Get's context was canceled
	// before a value arrived.
	ErrInterrupted = errors.New("fridge: interrupted")
)
