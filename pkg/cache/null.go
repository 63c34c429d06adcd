package cache

import (
	"context"
	"time"
)

// NullCache is a no-op cache that never stores anything. It backs the
// CLI when caching is disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() *NullCache { return &NullCache{} }

// Get always reports a miss.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set does nothing.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (*NullCache) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
