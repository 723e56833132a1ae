// Package queue implements the persisted FIFO of mutations awaiting replay.
package queue

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports"
	"go.trai.ch/zerr"
)

// EnqueueOption customizes an operation before it is queued.
type EnqueueOption func(*domain.PendingOperation)

// WithKey records the cache key the operation was optimistically applied to.
func WithKey(key string) EnqueueOption {
	return func(op *domain.PendingOperation) {
		op.Key = key
	}
}

// Queue is an ordered list of pending operations mirrored to storage.
// Every mutation is persisted while the lock is held so durable writes are
// never interleaved.
type Queue struct {
	storage ports.Storage
	logger  ports.Logger
	metrics ports.Metrics

	defaultMaxRetries int

	mu  sync.Mutex
	ops []domain.PendingOperation
}

// New loads the persisted queue. Malformed entries are dropped; a load
// failure starts an empty queue.
func New(storage ports.Storage, logger ports.Logger, metrics ports.Metrics, cfg domain.QueueConfig) *Queue {
	q := &Queue{
		storage:           storage,
		logger:            logger,
		metrics:           metrics,
		defaultMaxRetries: cfg.MaxRetries,
	}
	if q.defaultMaxRetries <= 0 {
		q.defaultMaxRetries = domain.DefaultMaxRetries
	}
	q.ops = q.load()
	q.metrics.QueueDepth(len(q.ops))
	return q
}

func (q *Queue) load() []domain.PendingOperation {
	raw, err := q.storage.Get(domain.QueueKey)
	if err != nil {
		q.logger.Error(err)
		return nil
	}
	if raw == nil {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		q.logger.Error(zerr.Wrap(err, domain.ErrInvalidPayload.Error()))
		return nil
	}

	ops := make([]domain.PendingOperation, 0, len(items))
	for i, item := range items {
		var op domain.PendingOperation
		if err := json.Unmarshal(item, &op); err != nil || !op.Valid() {
			q.logger.Warn(fmt.Sprintf("dropping malformed queued operation at index %d", i))
			continue
		}
		ops = append(ops, op)
	}
	return ops
}

// persist writes the current list. Callers must hold q.mu.
func (q *Queue) persist() {
	q.metrics.QueueDepth(len(q.ops))

	raw, err := json.Marshal(q.ops)
	if err != nil {
		q.logger.Error(zerr.Wrap(err, domain.ErrInvalidPayload.Error()))
		return
	}
	if err := q.storage.Set(domain.QueueKey, raw); err != nil {
		q.logger.Error(err)
	}
}

// Enqueue appends an operation and returns its id.
// A non-positive maxRetries uses the configured default.
func (q *Queue) Enqueue(opType string, payload json.RawMessage, maxRetries int, opts ...EnqueueOption) string {
	if maxRetries <= 0 {
		maxRetries = q.defaultMaxRetries
	}

	now := time.Now()
	op := domain.PendingOperation{
		ID:         newID(now),
		Type:       opType,
		Payload:    slices.Clone(payload),
		Timestamp:  now.UnixMilli(),
		MaxRetries: maxRetries,
	}
	for _, opt := range opts {
		opt(&op)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.ops = append(q.ops, op)
	q.persist()
	return op.ID
}

func newID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

// Remove deletes the operation with id. It reports whether it was queued.
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(id)
	if i < 0 {
		return false
	}
	q.ops = slices.Delete(q.ops, i, i+1)
	q.persist()
	return true
}

// UpdateRetryCount sets the retry count of id, clamped to [0, MaxRetries].
func (q *Queue) UpdateRetryCount(id string, n int) bool {
	return q.update(id, func(op *domain.PendingOperation) {
		op.RetryCount = max(0, min(n, op.MaxRetries))
	})
}

// RecordError stores the message of the latest failed attempt.
func (q *Queue) RecordError(id, msg string) bool {
	return q.update(id, func(op *domain.PendingOperation) {
		op.LastError = msg
	})
}

// Reset gives a terminal or failing operation its full retry budget back.
func (q *Queue) Reset(id string) bool {
	return q.update(id, func(op *domain.PendingOperation) {
		op.RetryCount = 0
		op.LastError = ""
	})
}

func (q *Queue) update(id string, fn func(*domain.PendingOperation)) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(id)
	if i < 0 {
		return false
	}
	fn(&q.ops[i])
	q.persist()
	return true
}

// Clear drops every queued operation.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ops = nil
	q.persist()
}

// Get returns a copy of the operation with id.
func (q *Queue) Get(id string) (domain.PendingOperation, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(id)
	if i < 0 {
		return domain.PendingOperation{}, false
	}
	return q.ops[i], true
}

// Snapshot returns the queued operations oldest first.
func (q *Queue) Snapshot() []domain.PendingOperation {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.ops)
}

// Len returns the number of queued operations.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ops)
}

// Terminal returns the operations whose retry budget is exhausted.
func (q *Queue) Terminal() []domain.PendingOperation {
	q.mu.Lock()
	defer q.mu.Unlock()

	var out []domain.PendingOperation
	for _, op := range q.ops {
		if op.Terminal() {
			out = append(out, op)
		}
	}
	return out
}

// TouchesKey reports whether any queued operation was applied to key.
func (q *Queue) TouchesKey(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.ContainsFunc(q.ops, func(op domain.PendingOperation) bool {
		return op.Key == key
	})
}

func (q *Queue) indexOf(id string) int {
	return slices.IndexFunc(q.ops, func(op domain.PendingOperation) bool {
		return op.ID == id
	})
}
