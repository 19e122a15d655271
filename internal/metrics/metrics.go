package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kone_http_requests_total",
		Help: "Total HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kone_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	CollectionRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kone_collection_refresh_total",
		Help: "Collection refreshes applied, by collection and data source",
	}, []string{"collection", "source"})

	ChangeNotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kone_change_notifications_total",
		Help: "Table change notifications received, by table",
	}, []string{"table"})

	StreamClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kone_stream_clients",
		Help: "Connected websocket stream clients",
	})
)
