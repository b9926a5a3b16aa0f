package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meal_delivery_http_requests_total",
		Help: "HTTP requests served, by route pattern and status code.",
	}, []string{"method", "pattern", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "meal_delivery_http_request_duration_seconds",
		Help:    "Latency of HTTP requests, by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "pattern"})

	OperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "meal_delivery_operation_duration_seconds",
		Help:    "Duration of timed service and adapter operations, by outcome.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op", "outcome"})

	// Optimized route computations, by source: "cache" or "computed".
	RouteOptimizationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meal_delivery_route_optimizations_total",
		Help: "Optimized visiting orders served, by source.",
	}, []string{"source"})

	SpecialMealsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "meal_delivery_special_meals",
		Help: "Special meals on the last kitchen count computed.",
	})

	StaleSequenceIDsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meal_delivery_stale_sequence_ids_total",
		Help: "Saved delivery sequence ids that matched no client.",
	})
)
