package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SearchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "torrentsearch",
		Name:      "searches_total",
		Help:      "Total searches by outcome.",
	}, []string{"outcome"})

	SearchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "torrentsearch",
		Name:      "search_duration_seconds",
		Help:      "End-to-end search duration in seconds, detail pages included.",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30, 60},
	})

	FetchRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "torrentsearch",
		Name:      "fetch_requests_total",
		Help:      "Total page fetches by stage and status code (\"error\" for transport failures).",
	}, []string{"stage", "status"})

	FetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "torrentsearch",
		Name:      "fetch_duration_seconds",
		Help:      "Page fetch duration in seconds.",
		Buckets:   []float64{0.05, 0.1, 0.3, 0.5, 1, 2, 5, 10, 20},
	}, []string{"stage"})

	ExtractionFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "torrentsearch",
		Name:      "extraction_failures_total",
		Help:      "Detail-page fields that could not be extracted, by field.",
	}, []string{"field"})
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		SearchesTotal,
		SearchDuration,
		FetchRequestsTotal,
		FetchDuration,
		ExtractionFailuresTotal,
	)
}
