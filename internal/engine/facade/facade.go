// Package facade composes the cache, the operation queue and the network
// monitor into offline-aware reads and writes.
package facade

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports"
	"go.trai.ch/cellar/internal/engine/cache"
	"go.trai.ch/cellar/internal/engine/network"
	"go.trai.ch/cellar/internal/engine/queue"
	"go.trai.ch/cellar/internal/engine/reconcile"
	"go.trai.ch/zerr"
)

// FetchFunc loads the current value for a key from the remote.
type FetchFunc func(ctx context.Context) (any, error)

// ApplyFunc derives the next cached value from the current one.
type ApplyFunc func(current json.RawMessage) (any, error)

// Mutation describes a write that can be applied remotely now or queued for later.
type Mutation struct {
	// Key is the cache key of the collection the write touches. It may be empty.
	Key string
	// Type selects the replay action registered with the engine.
	Type string
	// Payload is stored with the queued operation. It must carry absolute values.
	Payload any
	// MaxRetries bounds replay attempts. Zero uses the queue default.
	MaxRetries int
	// Apply patches the cached collection. It is skipped when nothing is cached.
	Apply ApplyFunc
	// Remote performs the write while online.
	Remote func(ctx context.Context) error
}

// ChangeListener is told which cache key changed.
type ChangeListener func(key string)

// Facade routes reads and writes by connectivity.
type Facade struct {
	cache   *cache.Store
	queue   *queue.Queue
	monitor *network.Monitor
	logger  ports.Logger
	ttl     time.Duration

	usingCache atomic.Bool
	undrain    func()

	mu          sync.Mutex
	nextID      int
	listeners   map[int]ChangeListener
	pendingKeys map[string]struct{}
}

// New creates a facade. Completed drains publish change notifications for the
// keys whose queued writes have all been replayed.
func New(
	store *cache.Store,
	q *queue.Queue,
	monitor *network.Monitor,
	engine *reconcile.Engine,
	logger ports.Logger,
	ttl time.Duration,
) *Facade {
	f := &Facade{
		cache:       store,
		queue:       q,
		monitor:     monitor,
		logger:      logger,
		ttl:         ttl,
		listeners:   make(map[int]ChangeListener),
		pendingKeys: make(map[string]struct{}),
	}
	for _, op := range q.Snapshot() {
		if op.Key != "" {
			f.pendingKeys[op.Key] = struct{}{}
		}
	}
	f.undrain = engine.OnDrained(f.onDrained)
	return f
}

// Close detaches the facade from the engine.
func (f *Facade) Close() {
	if f.undrain != nil {
		f.undrain()
		f.undrain = nil
	}
}

// UsingCache reports whether the last read was served from the cache.
func (f *Facade) UsingCache() bool {
	return f.usingCache.Load()
}

// Read fetches key from the remote while online and caches the result.
// When offline, or when the fetch fails, it serves the cached value instead.
// Without a cached value it returns ErrNoDataAvailable offline and the
// fetch error online.
func (f *Facade) Read(ctx context.Context, key string, fetch FetchFunc) (json.RawMessage, error) {
	var fetchErr error
	if f.monitor.IsOnline() {
		raw, err := f.fetch(ctx, key, fetch)
		if err == nil {
			f.usingCache.Store(false)
			return raw, nil
		}
		fetchErr = err
		f.logger.Warn(fmt.Sprintf("refreshing %s failed, falling back to cache: %v", key, err))
	}

	if cached, ok := f.cache.Get(key); ok {
		f.usingCache.Store(true)
		return cached, nil
	}

	if fetchErr != nil {
		return nil, fetchErr
	}
	return nil, zerr.With(domain.ErrNoDataAvailable, "key", key)
}

// ReadAs is Read decoding the payload into T.
func ReadAs[T any](ctx context.Context, f *Facade, key string, fetch FetchFunc) (T, error) {
	raw, err := f.Read(ctx, key, fetch)
	return decodeAs[T](raw, err, key)
}

// ReloadAs is Reload decoding the payload into T.
func ReloadAs[T any](ctx context.Context, f *Facade, key string, fetch FetchFunc) (T, error) {
	raw, err := f.Reload(ctx, key, fetch)
	return decodeAs[T](raw, err, key)
}

func decodeAs[T any](raw json.RawMessage, err error, key string) (T, error) {
	var v T
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, zerr.With(zerr.Wrap(err, domain.ErrInvalidPayload.Error()), "key", key)
	}
	return v, nil
}

func (f *Facade) fetch(ctx context.Context, key string, fetch FetchFunc) (json.RawMessage, error) {
	value, err := fetch(ctx)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRemoteFailure.Error()), "key", key)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidPayload.Error()), "key", key)
	}
	if !f.cache.Set(key, json.RawMessage(raw), f.ttl) {
		f.logger.Warn("could not cache " + key)
	}
	f.publish(key)
	return raw, nil
}

// ForceRefresh drops key and related from the cache and re-fetches key.
// It fails with ErrOffline when there is no connectivity.
func (f *Facade) ForceRefresh(ctx context.Context, key string, fetch FetchFunc, related ...string) (json.RawMessage, error) {
	if !f.monitor.IsOnline() {
		return nil, zerr.With(zerr.Wrap(domain.ErrOffline, "refresh"), "key", key)
	}
	f.cache.Invalidate(key)
	for _, k := range related {
		f.cache.Invalidate(k)
	}
	raw, err := f.fetch(ctx, key, fetch)
	if err != nil {
		return nil, err
	}
	f.usingCache.Store(false)
	return raw, nil
}

// Reload refreshes key unless queued writes still touch it, in which case the
// cached optimistic state is served so pending edits are not overwritten.
func (f *Facade) Reload(ctx context.Context, key string, fetch FetchFunc) (json.RawMessage, error) {
	if f.queue.TouchesKey(key) {
		if cached, ok := f.cache.Get(key); ok {
			f.usingCache.Store(true)
			return cached, nil
		}
	}
	return f.Read(ctx, key, fetch)
}

// Write applies m remotely while online and then patches the cache.
// Offline, it patches the cache optimistically and queues m for replay.
// An online remote failure is returned and nothing is queued.
func (f *Facade) Write(ctx context.Context, m Mutation) error {
	payload, err := json.Marshal(m.Payload)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidPayload.Error()), "type", m.Type)
	}

	if f.monitor.IsOnline() {
		if err := m.Remote(ctx); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrRemoteFailure.Error()), "type", m.Type)
		}
		f.apply(m)
		return nil
	}

	f.apply(m)
	var opts []queue.EnqueueOption
	if m.Key != "" {
		opts = append(opts, queue.WithKey(m.Key))
		f.mu.Lock()
		f.pendingKeys[m.Key] = struct{}{}
		f.mu.Unlock()
	}
	id := f.queue.Enqueue(m.Type, payload, m.MaxRetries, opts...)
	f.logger.Info(fmt.Sprintf("offline: queued %s as %s", m.Type, id))
	return nil
}

func (f *Facade) apply(m Mutation) {
	if m.Key == "" || m.Apply == nil {
		return
	}
	current, ok := f.cache.Get(m.Key)
	if !ok {
		return
	}
	next, err := m.Apply(current)
	if err != nil {
		f.logger.Warn(fmt.Sprintf("could not apply %s to cached %s: %v", m.Type, m.Key, err))
		return
	}
	if !f.cache.Set(m.Key, next, f.ttl) {
		f.logger.Warn("could not cache " + m.Key)
		return
	}
	f.publish(m.Key)
}

// Subscribe registers fn for cache change notifications and returns a func
// that unregisters it.
func (f *Facade) Subscribe(fn ChangeListener) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
	}
}

func (f *Facade) publish(key string) {
	f.mu.Lock()
	ids := slices.Sorted(maps.Keys(f.listeners))
	fns := make([]ChangeListener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, f.listeners[id])
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}

// onDrained announces keys with no queued writes left. The cache already holds
// the optimistic state the remote now agrees with, so nothing is reloaded.
func (f *Facade) onDrained(domain.DrainResult) {
	f.mu.Lock()
	var settled []string
	for key := range f.pendingKeys {
		if !f.queue.TouchesKey(key) {
			settled = append(settled, key)
			delete(f.pendingKeys, key)
		}
	}
	f.mu.Unlock()

	slices.Sort(settled)
	for _, key := range settled {
		f.publish(key)
	}
}
