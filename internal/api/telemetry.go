package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const telemetryNamespace = "hilink_exporter"

// telemetry holds the exporter's own metrics in a registry private to one Handler.
type telemetry struct {
	registry *prometheus.Registry
	scrapes  *prometheus.CounterVec
	duration prometheus.Histogram
}

func newTelemetry() *telemetry {
	t := &telemetry{
		registry: prometheus.NewRegistry(),
		scrapes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: telemetryNamespace,
			Name:      "scrapes_total",
			Help:      "Device scrapes, partitioned by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: telemetryNamespace,
			Name:      "scrape_duration_seconds",
			Help:      "Time spent on one device scrape, including session acquisition.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	t.registry.MustRegister(
		t.scrapes,
		t.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	// Pre-create every result series.
	for _, r := range allResults {
		t.scrapes.WithLabelValues(r)
	}
	return t
}

func (t *telemetry) observe(result string, d time.Duration) {
	t.scrapes.WithLabelValues(result).Inc()
	t.duration.Observe(d.Seconds())
}

func (t *telemetry) handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{})
}
