package metrics

import (
	"time"

	"github.com/phambaophuc/image-thumb/internal/models"
)

// ResizeObserver records processor outcomes in Prometheus.
type ResizeObserver struct{}

func NewResizeObserver() *ResizeObserver {
	return &ResizeObserver{}
}

func (ResizeObserver) ObserveResize(result models.ProcessingResult, elapsed time.Duration) {
	outcome := result.Outcome()
	ResizeRequestsTotal.WithLabelValues(outcome).Inc()
	ResizeDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())

	if !result.Success {
		return
	}
	if result.Cached {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}
