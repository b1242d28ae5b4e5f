package cli

import (
	"time"
)

// ProgressWithETA extends ProgressState with timing information so the
// display loop can estimate the remaining duration from the observed rate.
type ProgressWithETA struct {
	*ProgressState
	startTime time.Time
}

// NewProgressWithETA creates a progress tracker for the given number of
// strategies, anchored at the current time.
func NewProgressWithETA(numStrategies int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numStrategies),
		startTime:     time.Now(),
	}
}

// UpdateWithETA records a new progress value for a specific strategy.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) {
	p.Update(index, value)
}

// GetETA estimates the remaining duration by extrapolating the elapsed time
// over the average progress. It returns a negative duration while the
// estimate is not yet meaningful (no progress observed).
func (p *ProgressWithETA) GetETA() time.Duration {
	avg := p.CalculateAverage()
	if avg <= 0 {
		return -1
	}
	if avg >= 1.0 {
		return 0
	}
	elapsed := time.Since(p.startTime)
	return time.Duration(float64(elapsed) / avg * (1 - avg))
}

// FormatETA renders an estimated remaining duration for the progress line.
// Unknown estimates render as "...", sub-second estimates as "< 1s", and
// anything longer is rounded to the second.
func FormatETA(eta time.Duration) string {
	if eta < 0 {
		return "..."
	}
	if eta < time.Second {
		return "< 1s"
	}
	return eta.Round(time.Second).String()
}
