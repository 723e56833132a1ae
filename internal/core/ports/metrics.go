package ports

import "time"

// Metrics records offline-resilience counters.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	CacheHit()
	CacheMiss()
	CacheEvicted(reason string)
	RetryAttempt(opType string, success bool)
	QueueDepth(n int)
	NetworkTransition(online bool)
	DrainDuration(d time.Duration)
}
