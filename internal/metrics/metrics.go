// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "salesdata"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	salesRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_rejections_total",
		Help:      "Sales requests rejected during validation, by error kind.",
	}, []string{"kind"})

	storeQueries = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_store_query_duration_seconds",
		Help:      "Latency of range queries against the order store.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})

	ordersIngested = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_ingested_total",
		Help:      "Orders loaded from export files.",
	})
)

// ObserveHTTP records one served request. route is the matched pattern,
// not the raw path, to keep label cardinality bounded.
func ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// RejectSales counts a validation failure of the sales endpoint.
func RejectSales(kind string) {
	salesRejections.WithLabelValues(kind).Inc()
}

// ObserveStoreQuery records the latency of one order store query.
func ObserveStoreQuery(elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	storeQueries.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// AddIngested increments the ingested orders counter by n.
func AddIngested(n int) {
	ordersIngested.Add(float64(n))
}
