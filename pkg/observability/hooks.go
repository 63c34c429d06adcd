// Package observability provides lifecycle hooks for the layout
// engine without adding hard dependencies on any metrics or tracing
// backend.
//
// The package uses a simple hooks pattern: a hook interface, a no-op
// default, and a registry populated once at application startup. The
// engine calls the registered hooks around every solve.
//
// Register hooks at startup:
//
//	observability.SetHooks(&myHooks{})
package observability

import (
	"sync"
	"time"
)

// LayoutHooks receives events from layout solves.
type LayoutHooks interface {
	// OnLayoutStart is called when a solve begins, with the number of
	// panels in the tree.
	OnLayoutStart(panels int)

	// OnLayoutComplete is called when a solve finishes, successfully or
	// not. equations is the number of constraints emitted (zero when
	// constraint generation itself failed).
	OnLayoutComplete(panels, equations int, duration time.Duration, err error)
}

// NoopLayoutHooks is the default no-op implementation.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(int)                               {}
func (NoopLayoutHooks) OnLayoutComplete(int, int, time.Duration, error) {}

var (
	hooksMu sync.RWMutex
	hooks   LayoutHooks = NoopLayoutHooks{}
)

// SetHooks registers custom layout hooks. Call once at application
// startup before any solves. A nil argument is ignored.
func SetHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		hooks = h
	}
}

// Hooks returns the registered layout hooks.
func Hooks() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return hooks
}

// Reset restores the no-op default. Primarily useful in tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	hooks = NoopLayoutHooks{}
}
