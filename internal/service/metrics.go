package service

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsOnce          sync.Once
	blocksTotal          *prometheus.CounterVec
	documentBlocks       prometheus.Histogram
	sanitizedFragments   prometheus.Counter
	documentsRenderTotal *prometheus.CounterVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		blocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fairway",
			Subsystem: "content",
			Name:      "blocks_total",
			Help:      "Content blocks processed by the renderer, by type and outcome",
		}, []string{"type", "status"})

		documentBlocks = promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fairway",
			Subsystem: "content",
			Name:      "document_blocks",
			Help:      "Number of blocks per rendered document",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		})

		sanitizedFragments = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "fairway",
			Subsystem: "content",
			Name:      "sanitized_fragments_total",
			Help:      "Markup fragments passed through the sanitizer",
		})

		documentsRenderTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fairway",
			Subsystem: "content",
			Name:      "documents_total",
			Help:      "Documents submitted for rendering, by result",
		}, []string{"result"})
	})
}
