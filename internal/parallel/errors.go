// Package parallel provides small concurrency helpers shared by the
// search strategies.
package parallel

import "sync"

// ErrorCollector records the first non-nil error reported by a group of
// goroutines. Later errors are discarded, mirroring the first-error-wins
// semantics of errgroup without requiring the goroutines to return.
//
// The zero value is ready for use.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError records err if it is non-nil and no error has been recorded yet.
// Safe for concurrent use.
func (ec *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	ec.mu.Lock()
	defer ec.mu.Unlock()
	if ec.err == nil {
		ec.err = err
	}
}

// Err returns the first recorded error, or nil if none occurred.
func (ec *ErrorCollector) Err() error {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.err
}

// Reset clears any recorded error so the collector can be reused.
func (ec *ErrorCollector) Reset() {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.err = nil
}
