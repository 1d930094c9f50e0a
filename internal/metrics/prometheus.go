package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusRecorder implements Recorder backed by Prometheus
// collectors registered on the default registry.
type PrometheusRecorder struct {
	clicksSaved        prometheus.Counter
	clicksDeduplicated prometheus.Counter
	conversionsTracked prometheus.Counter
	contentCacheHits   prometheus.Counter
	contentCacheMisses prometheus.Counter
	contentGenerated   prometheus.Counter
	reportDuration     prometheus.Histogram
}

// NewPrometheus creates and registers all collectors under the given
// namespace. Call at most once per process.
func NewPrometheus(namespace string) *PrometheusRecorder {
	return &PrometheusRecorder{
		clicksSaved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clicks_saved_total",
			Help:      "Total number of new click records stored",
		}),
		clicksDeduplicated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clicks_deduplicated_total",
			Help:      "Total number of repeat gclid sightings collapsed into updates",
		}),
		conversionsTracked: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_tracked_total",
			Help:      "Total number of conversions recorded",
		}),
		contentCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_cache_hits_total",
			Help:      "Total number of content cache hits",
		}),
		contentCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_cache_misses_total",
			Help:      "Total number of content cache misses",
		}),
		contentGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_generated_total",
			Help:      "Total number of landing copy generations",
		}),
		reportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Time spent computing analytics reports",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// IncClickSaved increments the saved-click counter.
func (p *PrometheusRecorder) IncClickSaved() { p.clicksSaved.Inc() }

// IncClickDeduplicated increments the deduplicated-click counter.
func (p *PrometheusRecorder) IncClickDeduplicated() { p.clicksDeduplicated.Inc() }

// IncConversionTracked increments the conversion counter.
func (p *PrometheusRecorder) IncConversionTracked() { p.conversionsTracked.Inc() }

// IncContentCacheHit increments the cache hit counter.
func (p *PrometheusRecorder) IncContentCacheHit() { p.contentCacheHits.Inc() }

// IncContentCacheMiss increments the cache miss counter.
func (p *PrometheusRecorder) IncContentCacheMiss() { p.contentCacheMisses.Inc() }

// IncContentGenerated increments the generated-content counter.
func (p *PrometheusRecorder) IncContentGenerated() { p.contentGenerated.Inc() }

// ObserveReportDuration records report computation time.
func (p *PrometheusRecorder) ObserveReportDuration(duration time.Duration) {
	p.reportDuration.Observe(duration.Seconds())
}
