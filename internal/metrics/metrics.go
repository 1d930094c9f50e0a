// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Click tracking metrics
	IncClickSaved()
	IncClickDeduplicated()
	IncConversionTracked()

	// Content cache metrics
	IncContentCacheHit()
	IncContentCacheMiss()
	IncContentGenerated()

	// Analytics metrics
	ObserveReportDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
