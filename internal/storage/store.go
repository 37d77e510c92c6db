// Package storage persists typed values in a string key-value medium.
//
// The medium is treated as unreliable. Reads that fail, find nothing, or find
// something unparseable produce the caller's default; writes that fail are
// logged and dropped. Nothing in this package returns a storage failure to the
// caller, so the in-memory state stays authoritative for the session.
package storage

import "context"

// CollectionKey is where the group-buy collection lives.
// The version suffix lets a future incompatible layout start fresh.
const CollectionKey = "groupbuys_v1"

// Medium is a durable string key-value store.
// Implementations may fail on any call; callers in this package absorb it.
type Medium interface {
	// GetItem returns the stored value and true, or false if the key is absent.
	GetItem(ctx context.Context, key string) (string, bool, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key, value string) error

	// Close releases any resources held by the medium.
	Close() error
}
