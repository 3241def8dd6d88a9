package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds all prometheus metrics for a run
type Metrics struct {
	registry *prometheus.Registry

	FilesListed     prometheus.Counter
	FilesSelected   prometheus.Counter
	FilesDownloaded prometheus.Counter
	RecordsExported prometheus.Counter
	ErrorsCount     *prometheus.CounterVec
	RunDuration     prometheus.Histogram
}

// NewMetrics creates new prometheus metrics on a private registry, so a
// batch run can push exactly its own counters to a gateway.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		FilesListed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_listed_total",
			Help:      "The total number of files seen in the remote listing",
		}),
		FilesSelected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_selected_total",
			Help:      "The total number of files eligible for processing",
		}),
		FilesDownloaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_downloaded_total",
			Help:      "The total number of files fetched from the remote drop",
		}),
		RecordsExported: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_exported_total",
			Help:      "The total number of records written to the run artifact",
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Time taken by a full ingest run",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Push sends the run's metrics to a pushgateway under the given job name.
func (m *Metrics) Push(gatewayURL, job string) error {
	return push.New(gatewayURL, job).Gatherer(m.registry).Push()
}
