package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// SetupLifecycle derives the context every search runs under. The context
// expires after timeout and is canceled early on SIGINT or SIGTERM, so an
// interrupted run unwinds through the normal error path and maps to the
// canceled exit status instead of dying mid-write.
//
// Parameters:
//   - ctx: The parent context.
//   - timeout: The maximum duration for the search run.
//
// Returns:
//   - context.Context: The derived context.
//   - *CancelFuncs: The cancel functions to release via a deferred Cleanup.
func SetupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, *CancelFuncs) {
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)

	return ctx, &CancelFuncs{
		CancelTimeout: cancelTimeout,
		StopSignals:   stopSignals,
	}
}

// CancelFuncs bundles the cancel functions created by SetupLifecycle so
// the caller can release both with a single deferred Cleanup.
type CancelFuncs struct {
	// CancelTimeout releases the timeout context.
	CancelTimeout context.CancelFunc
	// StopSignals unregisters the signal listeners.
	StopSignals context.CancelFunc
}

// Cleanup releases both cancel functions, unregistering the signal
// listeners first. Nil entries are skipped, so a zero CancelFuncs is safe.
func (c *CancelFuncs) Cleanup() {
	if c.StopSignals != nil {
		c.StopSignals()
	}
	if c.CancelTimeout != nil {
		c.CancelTimeout()
	}
}
