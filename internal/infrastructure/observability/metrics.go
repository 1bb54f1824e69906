package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/proximity"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/location"
)

const namespace = "petfinder"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	HTTPPanicsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "panics_total",
		Help:      "Handler panics recovered, by route",
	}, []string{"path"})

	locationResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "location",
		Name:      "resolutions_total",
		Help:      "Location resolutions by the tier that produced the point",
	}, []string{"source"})

	proximityRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "proximity",
		Name:      "records_total",
		Help:      "Records seen by the radius filter, by outcome",
	}, []string{"layer", "outcome"})
)

// ObserveResolution is a location.Resolver observer.
func ObserveResolution(res location.Resolution) {
	locationResolutions.WithLabelValues(string(res.Source)).Inc()
}

// ObserveFilter records one radius filter pass for layer.
func ObserveFilter(layer string, stats proximity.FilterStats) {
	proximityRecords.WithLabelValues(layer, "matched").Add(float64(stats.Matched))
	proximityRecords.WithLabelValues(layer, "unlocatable").Add(float64(stats.Unlocatable))
	proximityRecords.WithLabelValues(layer, "outside").Add(float64(stats.Candidates - stats.Matched - stats.Unlocatable))
}
