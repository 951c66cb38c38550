package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Wager metrics
	WagersPlaced    prometheus.Counter
	WagersCancelled prometheus.Counter
	WagersSettled   prometheus.Counter
	StakeAmount     prometheus.Histogram
	PayoutAmount    prometheus.Histogram
	WagerErrors     *prometheus.CounterVec

	// Match metrics
	MatchesCreated prometheus.Counter
	MatchesSettled prometheus.Counter

	// Price metrics
	PriceUpdates prometheus.Counter

	// Account metrics
	AccountsCreated prometheus.Counter

	// Event metrics
	EventsPublished *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Wager metrics
		WagersPlaced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowager_wagers_placed_total",
			Help: "Total number of wagers placed",
		}),
		WagersCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowager_wagers_cancelled_total",
			Help: "Total number of wagers cancelled",
		}),
		WagersSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowager_wagers_settled_total",
			Help: "Total number of wagers settled",
		}),
		StakeAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gowager_stake_amount",
			Help:    "Wager stake amounts in minor units",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
		}),
		PayoutAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gowager_payout_amount",
			Help:    "Settlement payout amounts in minor units",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
		}),
		WagerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowager_wager_errors_total",
				Help: "Total number of wager errors by type",
			},
			[]string{"error_type"},
		),

		// Match metrics
		MatchesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowager_matches_created_total",
			Help: "Total number of matches created",
		}),
		MatchesSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowager_matches_settled_total",
			Help: "Total number of matches settled",
		}),

		// Price metrics
		PriceUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowager_price_updates_total",
			Help: "Total number of price snapshots written",
		}),

		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowager_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		// Event metrics
		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowager_events_published_total",
				Help: "Total outbox events published by type",
			},
			[]string{"event_type"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowager_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gowager_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowager_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gowager_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "gowager_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowager_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowager_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowager_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),
	}
}
