// Package progressive implements the search for progressive perfect squares.
// This file contains concrete observer implementations for progress reporting.
package progressive

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// ProgressUpdate carries a normalized progress value for one search strategy.
type ProgressUpdate struct {
	// StrategyIndex identifies the strategy instance the update belongs to.
	StrategyIndex int
	// Value is the normalized progress (0.0 to 1.0).
	Value float64
}

// ProgressObserver receives progress notifications from a running search.
// Implementations must be safe for concurrent use: the parallel strategy
// reports from multiple goroutines.
type ProgressObserver interface {
	// Update is called with the strategy index and normalized progress.
	Update(strategyIndex int, progress float64)
}

// ─────────────────────────────────────────────────────────────────────────────
// Channel Observer
// ─────────────────────────────────────────────────────────────────────────────

// ChannelObserver adapts the observer interface to channel-based
// communication, which is what the CLI progress display consumes.
type ChannelObserver struct {
	channel chan<- ProgressUpdate
}

// NewChannelObserver creates an observer that sends updates to a channel.
// The channel should have sufficient buffer capacity; if it is full the
// update is dropped rather than blocking the search. A nil channel yields
// an observer that discards everything.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// Update implements ProgressObserver by sending to the channel.
// Uses a non-blocking send so a slow UI can never stall the search.
func (o *ChannelObserver) Update(strategyIndex int, progress float64) {
	if o.channel == nil {
		return
	}
	if progress > 1.0 {
		progress = 1.0
	}
	select {
	case o.channel <- ProgressUpdate{StrategyIndex: strategyIndex, Value: progress}:
	default:
		// Channel full, drop update (UI will catch up on the next one)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Logging Observer
// ─────────────────────────────────────────────────────────────────────────────

// LoggingObserver logs progress updates using zerolog, throttled so a
// tight search loop cannot spam the log.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64         // Minimum progress change to log
	lastLog   map[int]float64 // Last logged progress per strategy
	mu        sync.Mutex
}

// NewLoggingObserver creates an observer that logs progress whenever it
// advances by at least threshold (e.g. 0.1 for every 10%). A non-positive
// threshold falls back to 0.1.
func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	if threshold <= 0 {
		threshold = 0.1
	}
	return &LoggingObserver{
		logger:    logger,
		threshold: threshold,
		lastLog:   make(map[int]float64),
	}
}

// Update implements ProgressObserver by logging significant progress changes.
func (o *LoggingObserver) Update(strategyIndex int, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	last := o.lastLog[strategyIndex]
	shouldLog := progress >= 1.0 ||
		last == 0 && progress > 0 ||
		progress-last >= o.threshold

	if shouldLog {
		o.logger.Debug().
			Int("strategy", strategyIndex).
			Float64("progress", progress).
			Str("percent", fmt.Sprintf("%.1f%%", progress*100)).
			Msg("search progress")
		o.lastLog[strategyIndex] = progress
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics Observer (Prometheus)
// ─────────────────────────────────────────────────────────────────────────────

var (
	// progressGauge tracks search progress per strategy.
	// Registered once globally to avoid duplicate registration errors.
	progressGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "progsquare_search_progress",
			Help: "Current progress of progressive-square searches (0.0 to 1.0)",
		},
		[]string{"strategy_index"},
	)
)

// MetricsObserver exports search progress to Prometheus.
type MetricsObserver struct {
	gauge *prometheus.GaugeVec
}

// NewMetricsObserver creates an observer that updates the Prometheus
// progress gauge.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{gauge: progressGauge}
}

// Update implements ProgressObserver by updating the Prometheus gauge.
func (o *MetricsObserver) Update(strategyIndex int, progress float64) {
	o.gauge.WithLabelValues(fmt.Sprintf("%d", strategyIndex)).Set(progress)
}

// ResetMetrics resets the progress metrics for all strategies.
// Called at the start of a new search batch.
func (o *MetricsObserver) ResetMetrics() {
	o.gauge.Reset()
}

// ─────────────────────────────────────────────────────────────────────────────
// Composite and No-Op Observers
// ─────────────────────────────────────────────────────────────────────────────

// CompositeObserver fans a single update out to several observers.
type CompositeObserver struct {
	observers []ProgressObserver
}

// NewCompositeObserver creates an observer forwarding to all of obs.
// Nil entries are skipped.
func NewCompositeObserver(obs ...ProgressObserver) *CompositeObserver {
	filtered := make([]ProgressObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	return &CompositeObserver{observers: filtered}
}

// Update implements ProgressObserver by forwarding to every child observer.
func (o *CompositeObserver) Update(strategyIndex int, progress float64) {
	for _, child := range o.observers {
		child.Update(strategyIndex, progress)
	}
}

// NoOpObserver discards all progress updates. Useful for tests and for
// callers that do not track progress.
type NoOpObserver struct{}

// NewNoOpObserver creates a no-op observer.
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{}
}

// Update implements ProgressObserver by doing nothing.
func (o *NoOpObserver) Update(strategyIndex int, progress float64) {}
