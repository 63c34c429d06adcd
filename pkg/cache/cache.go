// Package cache provides a content-addressed store for solved layout
// documents. The CLI keys each entry by the hash of the unsolved input
// document, so re-solving an unchanged figure is a read instead of a
// constraint solve.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores byte blobs under string keys. Implementations report a
// miss as (nil, false, nil); errors are reserved for storage failures.
type Cache interface {
	// Get retrieves the value for key. The boolean reports whether the
	// key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Hash computes the SHA-256 of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DocumentKey derives the cache key for a serialized layout document.
// Two byte-identical documents always map to the same key.
func DocumentKey(doc []byte) string {
	return "doc:" + Hash(doc)
}
