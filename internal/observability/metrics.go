package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vinyls_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vinyls_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// UsersRegistered counts successful user registrations.
	UsersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vinyls_users_registered_total",
		Help: "Total number of registered users",
	})

	// FollowEvents counts follow graph mutations by action (add, remove).
	FollowEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vinyls_follow_events_total",
		Help: "Total number of follow graph mutations by action",
	}, []string{"action"})

	// LikeEvents counts like mutations by action (add, remove).
	LikeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vinyls_like_events_total",
		Help: "Total number of vinyl like mutations by action",
	}, []string{"action"})

	// VinylsCreated counts vinyls added to the catalogue.
	VinylsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vinyls_vinyls_created_total",
		Help: "Total number of vinyls added",
	})

	// CommentsCreated counts comments posted on vinyls.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vinyls_comments_created_total",
		Help: "Total number of comments posted",
	})
)

// TrackQuery starts a latency measurement for one query and returns the stop
// function, meant to run via defer.
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
