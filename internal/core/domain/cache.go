package domain

import (
	"encoding/json"
	"time"
)

// CacheEntry is the persisted form of a cached value.
type CacheEntry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
	TTL       int64           `json:"ttl"`
	Checksum  string          `json:"checksum"`
}

// CreatedAt returns the entry creation time.
func (e *CacheEntry) CreatedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Expired reports whether the entry has outlived its TTL at the given instant.
func (e *CacheEntry) Expired(now time.Time) bool {
	return now.UnixMilli()-e.Timestamp > e.TTL
}

// CacheStats summarizes cache activity since process start.
type CacheStats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	SizeBytes   int64     `json:"sizeBytes"`
	LastCleanup time.Time `json:"lastCleanup,omitzero"`
}
