// Package reconcile replays queued operations against the remote once
// connectivity returns.
package reconcile

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports"
	"go.trai.ch/cellar/internal/engine/network"
	"go.trai.ch/cellar/internal/engine/queue"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ReplayFunc applies a queued operation to the remote. It must be idempotent
// and bound its own duration.
type ReplayFunc func(ctx context.Context, op domain.PendingOperation) error

// DrainListener is notified after every drain that attempted at least one operation.
type DrainListener func(domain.DrainResult)

// Engine drives per-operation retries and whole-queue drains.
type Engine struct {
	queue   *queue.Queue
	monitor *network.Monitor
	logger  ports.Logger
	metrics ports.Metrics
	tracer  ports.Tracer

	stagger     time.Duration
	concurrency int

	replayMu sync.RWMutex
	replays  map[string]ReplayFunc

	draining  atomic.Bool
	succeeded atomic.Int64
	failed    atomic.Int64

	settle *Debouncer

	lifeMu sync.Mutex
	runCtx context.Context
	cancel context.CancelFunc
	unsub  []func()
	wg     sync.WaitGroup

	listenMu  sync.Mutex
	nextID    int
	listeners map[int]DrainListener
}

// New creates an engine. It does nothing automatically until Start.
func New(
	q *queue.Queue,
	monitor *network.Monitor,
	logger ports.Logger,
	metrics ports.Metrics,
	tracer ports.Tracer,
	cfg domain.RetryConfig,
) *Engine {
	e := &Engine{
		queue:       q,
		monitor:     monitor,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
		stagger:     cfg.StaggerDelay,
		concurrency: cfg.Concurrency,
		replays:     make(map[string]ReplayFunc),
		listeners:   make(map[int]DrainListener),
	}
	if e.stagger < 0 {
		e.stagger = 0
	}
	settle := cfg.SettleDelay
	if settle <= 0 {
		settle = domain.DefaultSettleDelay
	}
	e.settle = NewDebouncer(settle, e.autoDrain)
	return e
}

// Register installs the replay action for an operation type.
func (e *Engine) Register(opType string, fn ReplayFunc) {
	e.replayMu.Lock()
	defer e.replayMu.Unlock()
	e.replays[opType] = fn
}

func (e *Engine) replayFor(opType string) ReplayFunc {
	e.replayMu.RLock()
	defer e.replayMu.RUnlock()
	return e.replays[opType]
}

// RetryOperation makes one attempt at the queued operation id.
// It returns false without attempting when the id is unknown or its retry
// budget is spent. The incremented retry count is persisted before the attempt.
func (e *Engine) RetryOperation(ctx context.Context, id string) bool {
	return e.retry(ctx, id, func() {})
}

// retry calls started once the attempt is committed, right before the replay
// runs. It is not called when the operation is skipped.
func (e *Engine) retry(ctx context.Context, id string, started func()) bool {
	op, ok := e.queue.Get(id)
	if !ok || op.Terminal() {
		return false
	}

	op.RetryCount++
	e.queue.UpdateRetryCount(id, op.RetryCount)

	ctx, span := e.tracer.Start(ctx, "replay "+op.Type)
	defer span.End()
	span.SetAttribute("operation.id", op.ID)
	span.SetAttribute("operation.attempt", op.RetryCount)

	var err error
	replay := e.replayFor(op.Type)
	started()
	if replay == nil {
		err = zerr.With(domain.ErrUnknownOperationType, "type", op.Type)
	} else {
		err = replay(ctx, op)
	}

	if err != nil {
		e.failed.Add(1)
		e.metrics.RetryAttempt(op.Type, false)
		span.RecordError(err)
		e.queue.RecordError(id, err.Error())
		e.reportFailure(op, err)
		return false
	}

	e.queue.Remove(id)
	e.succeeded.Add(1)
	e.metrics.RetryAttempt(op.Type, true)
	e.logger.Debug(fmt.Sprintf("replayed %s %s", op.Type, op.ID))
	return true
}

func (e *Engine) reportFailure(op domain.PendingOperation, cause error) {
	if op.Terminal() {
		err := zerr.With(zerr.Wrap(cause, domain.ErrRetryExhausted.Error()), "operation", op.ID)
		e.logger.Error(zerr.With(err, "attempts", op.RetryCount))
		return
	}
	e.logger.Warn(fmt.Sprintf("replay of %s %s failed (attempt %d/%d): %v",
		op.Type, op.ID, op.RetryCount, op.MaxRetries, cause))
}

// RetryAllOperations attempts every queued operation once, oldest first.
// It is Drain for callers that only need the counts: it is a no-op while
// offline, with an empty queue, or while another drain is running.
func (e *Engine) RetryAllOperations(ctx context.Context) domain.DrainResult {
	result, _ := e.Drain(ctx)
	return result
}

// Drain attempts every queued operation once, oldest first. Launches are
// spaced by the stagger delay and each waits until the previous attempt has
// started, so replays begin in queue order even without a delay. The call
// returns when all launched attempts have finished. It fails with ErrOffline
// without connectivity and with ErrDrainInProgress while another drain runs.
func (e *Engine) Drain(ctx context.Context) (domain.DrainResult, error) {
	var result domain.DrainResult
	if !e.monitor.IsOnline() {
		return result, zerr.With(zerr.Wrap(domain.ErrOffline, "drain"), "pending", e.queue.Len())
	}
	if !e.draining.CompareAndSwap(false, true) {
		e.logger.Debug("drain already in progress")
		return result, zerr.Wrap(domain.ErrDrainInProgress, "drain")
	}
	defer e.draining.Store(false)

	ops := e.queue.Snapshot()
	if len(ops) == 0 {
		return result, nil
	}

	start := time.Now()
	limiter := rate.NewLimiter(rate.Every(e.stagger), 1)

	var g errgroup.Group
	if e.concurrency > 0 {
		g.SetLimit(e.concurrency)
	}

	var mu sync.Mutex
	for i, op := range ops {
		if op.Terminal() {
			result.Skipped++
			continue
		}
		if err := limiter.Wait(ctx); err != nil || !e.monitor.IsOnline() {
			result.Skipped += countLaunchable(ops[i:])
			break
		}

		result.Attempted++
		started := make(chan struct{})
		var once sync.Once
		signal := func() { once.Do(func() { close(started) }) }
		g.Go(func() error {
			defer signal()
			ok := e.retry(ctx, op.ID, signal)
			mu.Lock()
			defer mu.Unlock()
			if ok {
				result.Succeeded++
			} else {
				result.Failed++
			}
			return nil
		})
		<-started
	}
	_ = g.Wait()

	e.metrics.DrainDuration(time.Since(start))
	if result.Attempted > 0 {
		e.logger.Info(fmt.Sprintf("sync finished: %d succeeded, %d failed, %d skipped",
			result.Succeeded, result.Failed, result.Skipped))
		e.notifyDrained(result)
	}
	return result, nil
}

func countLaunchable(ops []domain.PendingOperation) int {
	n := 0
	for _, op := range ops {
		if !op.Terminal() {
			n++
		}
	}
	return n
}

// Start subscribes to connectivity transitions. Coming online schedules a
// drain after the settle delay; going offline cancels it. When started online
// with operations queued, a drain is scheduled immediately.
func (e *Engine) Start(ctx context.Context) {
	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()

	if e.cancel != nil {
		return
	}
	e.runCtx, e.cancel = context.WithCancel(ctx)
	e.unsub = append(e.unsub,
		e.monitor.OnOnline(func(domain.NetworkStatus) { e.settle.Trigger() }),
		e.monitor.OnOffline(func(domain.NetworkStatus) { e.settle.Cancel() }),
	)

	if e.monitor.IsOnline() && e.queue.Len() > 0 {
		e.settle.Trigger()
	}
}

// Stop cancels any pending drain, unsubscribes from the monitor, and waits
// for a running automatic drain to finish.
func (e *Engine) Stop() {
	e.lifeMu.Lock()
	if e.cancel == nil {
		e.lifeMu.Unlock()
		return
	}
	e.cancel()
	e.cancel = nil
	for _, unsub := range e.unsub {
		unsub()
	}
	e.unsub = nil
	e.lifeMu.Unlock()

	e.settle.Cancel()
	e.wg.Wait()
}

// Flush runs a scheduled automatic drain now instead of waiting out the
// settle delay. It reports whether one was scheduled.
func (e *Engine) Flush() bool {
	return e.settle.Flush()
}

// SyncPending reports whether an automatic drain is scheduled.
func (e *Engine) SyncPending() bool {
	return e.settle.Pending()
}

// Draining reports whether a drain is running.
func (e *Engine) Draining() bool {
	return e.draining.Load()
}

func (e *Engine) autoDrain() {
	e.lifeMu.Lock()
	if e.runCtx == nil || e.runCtx.Err() != nil {
		e.lifeMu.Unlock()
		return
	}
	ctx := e.runCtx
	e.wg.Add(1)
	e.lifeMu.Unlock()

	defer e.wg.Done()
	e.RetryAllOperations(ctx)
}

// OnDrained registers fn for drain results and returns a func that unregisters it.
func (e *Engine) OnDrained(fn DrainListener) func() {
	e.listenMu.Lock()
	defer e.listenMu.Unlock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	return func() {
		e.listenMu.Lock()
		defer e.listenMu.Unlock()
		delete(e.listeners, id)
	}
}

func (e *Engine) notifyDrained(result domain.DrainResult) {
	e.listenMu.Lock()
	ids := slices.Sorted(maps.Keys(e.listeners))
	fns := make([]DrainListener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, e.listeners[id])
	}
	e.listenMu.Unlock()

	for _, fn := range fns {
		fn(result)
	}
}

// Stats returns the replay counters and the current queue shape.
func (e *Engine) Stats() domain.RetryStats {
	return domain.RetryStats{
		QueuedOperations:   e.queue.Len(),
		TerminalOperations: len(e.queue.Terminal()),
		SuccessfulRetries:  e.succeeded.Load(),
		FailedRetries:      e.failed.Load(),
	}
}
