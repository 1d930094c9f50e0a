package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncClickSaved is a no-op.
func (n *NoopRecorder) IncClickSaved() {}

// IncClickDeduplicated is a no-op.
func (n *NoopRecorder) IncClickDeduplicated() {}

// IncConversionTracked is a no-op.
func (n *NoopRecorder) IncConversionTracked() {}

// IncContentCacheHit is a no-op.
func (n *NoopRecorder) IncContentCacheHit() {}

// IncContentCacheMiss is a no-op.
func (n *NoopRecorder) IncContentCacheMiss() {}

// IncContentGenerated is a no-op.
func (n *NoopRecorder) IncContentGenerated() {}

// ObserveReportDuration is a no-op.
func (n *NoopRecorder) ObserveReportDuration(duration time.Duration) {}
