package channels

import "errors"

var (
	// ErrCapacityExceeded indicates an append on a full store.
	ErrCapacityExceeded = errors.New("channels: capacity exceeded")

	// ErrKindMismatch indicates a channel identity already bound to a different element type.
	ErrKindMismatch = errors.New("channels: element type mismatch for channel identity")

	// ErrScratchIdentity indicates a scratch descriptor used without a per-controller identity.
	ErrScratchIdentity = errors.New("channels: scratch descriptor has no identity")

	// ErrRowValues indicates AddElement received too few values or values of the wrong type.
	ErrRowValues = errors.New("channels: row values do not match channel layout")
)
