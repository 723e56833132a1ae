// Package cache implements the expiring, checksummed cache used for offline reads.
package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports"
	"go.trai.ch/zerr"
)

// Eviction reasons reported to metrics.
const (
	EvictExpired   = "expired"
	EvictCorrupt   = "corrupt"
	EvictIntegrity = "integrity"
)

// Store is a TTL cache persisted through ports.Storage.
// Storage failures never surface to callers: reads degrade to misses and
// writes report false.
type Store struct {
	storage ports.Storage
	logger  ports.Logger
	metrics ports.Metrics

	defaultTTL    time.Duration
	maxEntryBytes int64

	// writeMu serializes size accounting for writes and evictions.
	writeMu sync.Mutex

	hits        atomic.Int64
	misses      atomic.Int64
	sizeBytes   atomic.Int64
	lastCleanup atomic.Int64
}

// New creates a Store and seeds the size stat from entries already on disk.
func New(storage ports.Storage, logger ports.Logger, metrics ports.Metrics, cfg domain.CacheConfig) *Store {
	s := &Store{
		storage:       storage,
		logger:        logger,
		metrics:       metrics,
		defaultTTL:    cfg.DefaultTTL,
		maxEntryBytes: cfg.MaxEntryBytes(),
	}
	if s.defaultTTL <= 0 {
		s.defaultTTL = domain.DefaultCacheTTL
	}
	s.sizeBytes.Store(s.measure())
	return s
}

// Checksum returns the xxhash64 digest of data as 16 hex digits.
func Checksum(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// Set stores data under key for ttl. A non-positive ttl uses the default.
// It returns false when the value cannot be encoded, exceeds the per-entry
// budget, or the write fails.
func (s *Store) Set(key string, data any, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	payload, err := json.Marshal(data)
	if err != nil {
		s.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrInvalidPayload.Error()), "key", key))
		return false
	}

	entry := domain.CacheEntry{
		Data:      payload,
		Timestamp: time.Now().UnixMilli(),
		TTL:       ttl.Milliseconds(),
		Checksum:  Checksum(payload),
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		s.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrInvalidPayload.Error()), "key", key))
		return false
	}

	if s.maxEntryBytes > 0 && int64(len(raw)) > s.maxEntryBytes {
		err := zerr.With(domain.ErrEntryTooLarge, "key", key)
		err = zerr.With(err, "size", len(raw))
		err = zerr.With(err, "limit", s.maxEntryBytes)
		s.logger.Error(err)
		return false
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	previous := s.sizeOf(key)
	if err := s.storage.Set(storageKey(key), raw); err != nil {
		s.logger.Error(err)
		return false
	}
	s.sizeBytes.Add(int64(len(raw)) - previous)
	return true
}

// Get returns the cached payload for key when present, unexpired, and intact.
// Expired or corrupt entries are removed and reported as misses.
func (s *Store) Get(key string) (json.RawMessage, bool) {
	raw, err := s.storage.Get(storageKey(key))
	if err != nil {
		s.logger.Error(err)
		s.miss()
		return nil, false
	}
	if raw == nil {
		s.miss()
		return nil, false
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		s.logger.Warn("discarding undecodable cache entry " + key)
		s.evict(key, raw, EvictCorrupt)
		s.miss()
		return nil, false
	}

	if entry.Expired(time.Now()) {
		s.evict(key, raw, EvictExpired)
		s.miss()
		return nil, false
	}

	if Checksum(entry.Data) != entry.Checksum {
		s.logger.Error(zerr.With(domain.ErrIntegrityFailure, "key", key))
		s.evict(key, raw, EvictIntegrity)
		s.miss()
		return nil, false
	}

	s.hits.Add(1)
	s.metrics.CacheHit()
	return entry.Data, true
}

// GetAs decodes the cached payload for key into T.
// A payload that does not decode into T counts as absent.
func GetAs[T any](s *Store, key string) (T, bool) {
	var v T
	data, ok := s.Get(key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		s.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrInvalidPayload.Error()), "key", key))
		return v, false
	}
	return v, true
}

// Has reports whether Get would succeed for key.
func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Remove deletes key. It is idempotent and always returns true.
func (s *Store) Remove(key string) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.removeLocked(key)
	return true
}

// Invalidate is an alias for Remove.
func (s *Store) Invalidate(key string) bool {
	return s.Remove(key)
}

// Keys lists the cache keys currently stored, valid or not.
func (s *Store) Keys() []string {
	keys, err := s.storage.Keys(domain.CacheKeyPrefix)
	if err != nil {
		s.logger.Error(err)
		return nil
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, domain.CacheKeyPrefix))
	}
	return out
}

// CleanupExpired removes every expired or undecodable entry and returns how
// many were removed.
func (s *Store) CleanupExpired() int {
	now := time.Now()
	removed := 0

	for _, key := range s.Keys() {
		raw, err := s.storage.Get(storageKey(key))
		if err != nil {
			s.logger.Error(err)
			continue
		}
		if raw == nil {
			continue
		}

		var entry domain.CacheEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			if s.evict(key, raw, EvictCorrupt) {
				removed++
			}
			continue
		}
		if entry.Expired(now) && s.evict(key, raw, EvictExpired) {
			removed++
		}
	}

	s.lastCleanup.Store(now.UnixMilli())
	if removed > 0 {
		s.logger.Debug(fmt.Sprintf("cache cleanup removed %d entries", removed))
	}
	return removed
}

// StartSweeper runs CleanupExpired every interval until ctx is done.
// The returned channel is closed once the sweeper has stopped.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.CleanupExpired()
			}
		}
	}()
	return done
}

// Stats returns a snapshot of the cache counters.
func (s *Store) Stats() domain.CacheStats {
	stats := domain.CacheStats{
		Hits:      s.hits.Load(),
		Misses:    s.misses.Load(),
		SizeBytes: s.sizeBytes.Load(),
	}
	if ms := s.lastCleanup.Load(); ms > 0 {
		stats.LastCleanup = time.UnixMilli(ms)
	}
	return stats
}

func (s *Store) miss() {
	s.misses.Add(1)
	s.metrics.CacheMiss()
}

// evict removes key only while it still holds seen, the bytes that failed the
// check. An entry rewritten since then is left alone.
func (s *Store) evict(key string, seen []byte, reason string) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.storage.Get(storageKey(key))
	if err != nil {
		s.logger.Error(err)
		return false
	}
	if current == nil || !bytes.Equal(current, seen) {
		return false
	}
	if err := s.storage.Remove(storageKey(key)); err != nil {
		s.logger.Error(err)
		return false
	}
	s.sizeBytes.Add(-int64(len(current)))
	s.metrics.CacheEvicted(reason)
	return true
}

func (s *Store) removeLocked(key string) {
	previous := s.sizeOf(key)
	if err := s.storage.Remove(storageKey(key)); err != nil {
		s.logger.Error(err)
		return
	}
	s.sizeBytes.Add(-previous)
}

func (s *Store) sizeOf(key string) int64 {
	raw, err := s.storage.Get(storageKey(key))
	if err != nil || raw == nil {
		return 0
	}
	return int64(len(raw))
}

func (s *Store) measure() int64 {
	var total int64
	for _, key := range s.Keys() {
		total += s.sizeOf(key)
	}
	return total
}

func storageKey(key string) string {
	return domain.CacheKeyPrefix + key
}
