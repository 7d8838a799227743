// Package metrics exposes the Prometheus instrumentation of the recommendation
// engine and the HTTP API. Collectors register with the default registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Solver Metrics
	SolveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommender_solve_duration_seconds",
			Help:    "Duration of a single ILP solve in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"}, // "optimal", "infeasible", "no_solution"
	)

	SolveNodes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommender_solve_nodes",
			Help:    "Branch-and-bound nodes expanded per solve",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		},
	)

	// Round Extractor Metrics
	RecommendationRounds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommender_rounds",
			Help:    "Candidate rounds produced per recommendation",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_recommendations_total",
			Help: "Total number of recommendations by termination reason",
		},
		[]string{"reason"},
	)

	ActiveSolves = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommender_active_generations",
			Help: "Current number of running round loops",
		},
	)

	// Catalog Metrics
	CatalogDishes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommender_catalog_dishes",
			Help: "Number of dishes loaded into the catalog",
		},
	)

	DatasetRowsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_dataset_rows_skipped_total",
			Help: "Dataset rows skipped during loading",
		},
		[]string{"source"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)
)

// RecordSolve records one solver call
func RecordSolve(status string, nodes int64, duration time.Duration) {
	SolveDuration.WithLabelValues(status).Observe(duration.Seconds())
	SolveNodes.Observe(float64(nodes))
}

// RecordRecommendation records a finished round loop
func RecordRecommendation(reason string, rounds int) {
	RecommendationsTotal.WithLabelValues(reason).Inc()
	RecommendationRounds.Observe(float64(rounds))
}

// TrackActiveSolve tracks running round loops
func TrackActiveSolve(inc bool) {
	if inc {
		ActiveSolves.Inc()
	} else {
		ActiveSolves.Dec()
	}
}

// RecordCatalog records the size of the loaded catalog and the rows skipped per source
func RecordCatalog(dishes int, skipped map[string]int) {
	CatalogDishes.Set(float64(dishes))
	for source, n := range skipped {
		DatasetRowsSkipped.WithLabelValues(source).Add(float64(n))
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
