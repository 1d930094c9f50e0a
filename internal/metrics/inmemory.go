package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	ClicksSaved           uint64
	ClicksDeduplicated    uint64
	ConversionsTracked    uint64
	ContentCacheHits      uint64
	ContentCacheMisses    uint64
	ContentGenerated      uint64
	ReportDurationCount   uint64
	ReportDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	clicksSaved           uint64
	clicksDeduplicated    uint64
	conversionsTracked    uint64
	contentCacheHits      uint64
	contentCacheMisses    uint64
	contentGenerated      uint64
	reportDurationCount   uint64
	reportDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		ClicksSaved:           atomic.LoadUint64(&m.clicksSaved),
		ClicksDeduplicated:    atomic.LoadUint64(&m.clicksDeduplicated),
		ConversionsTracked:    atomic.LoadUint64(&m.conversionsTracked),
		ContentCacheHits:      atomic.LoadUint64(&m.contentCacheHits),
		ContentCacheMisses:    atomic.LoadUint64(&m.contentCacheMisses),
		ContentGenerated:      atomic.LoadUint64(&m.contentGenerated),
		ReportDurationCount:   atomic.LoadUint64(&m.reportDurationCount),
		ReportDurationTotalNs: atomic.LoadInt64(&m.reportDurationTotalNs),
	}
}

// IncClickSaved increments the saved-click counter.
func (m *InMemoryRecorder) IncClickSaved() {
	atomic.AddUint64(&m.clicksSaved, 1)
}

// IncClickDeduplicated increments the deduplicated-click counter.
func (m *InMemoryRecorder) IncClickDeduplicated() {
	atomic.AddUint64(&m.clicksDeduplicated, 1)
}

// IncConversionTracked increments the conversion counter.
func (m *InMemoryRecorder) IncConversionTracked() {
	atomic.AddUint64(&m.conversionsTracked, 1)
}

// IncContentCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncContentCacheHit() {
	atomic.AddUint64(&m.contentCacheHits, 1)
}

// IncContentCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncContentCacheMiss() {
	atomic.AddUint64(&m.contentCacheMisses, 1)
}

// IncContentGenerated increments the generated-content counter.
func (m *InMemoryRecorder) IncContentGenerated() {
	atomic.AddUint64(&m.contentGenerated, 1)
}

// ObserveReportDuration records report computation time.
func (m *InMemoryRecorder) ObserveReportDuration(duration time.Duration) {
	atomic.AddUint64(&m.reportDurationCount, 1)
	atomic.AddInt64(&m.reportDurationTotalNs, duration.Nanoseconds())
}
