// Package app implements the application layer for cellar.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/cellar/internal/adapters/metrics"
	"go.trai.ch/cellar/internal/adapters/server"
	"go.trai.ch/cellar/internal/adapters/telemetry"
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports"
	"go.trai.ch/cellar/internal/engine/cache"
	"go.trai.ch/cellar/internal/engine/facade"
	"go.trai.ch/cellar/internal/engine/network"
	"go.trai.ch/cellar/internal/engine/queue"
	"go.trai.ch/cellar/internal/engine/reconcile"
	"go.trai.ch/zerr"
)

// Deps are the collaborators an App is assembled from.
type Deps struct {
	Config    *domain.Config
	Logger    ports.Logger
	Catalog   ports.Catalog
	Storage   ports.Storage
	Cache     *cache.Store
	Queue     *queue.Queue
	Monitor   *network.Monitor
	Engine    *reconcile.Engine
	Facade    *facade.Facade
	Metrics   *metrics.Prometheus
	Telemetry *telemetry.Provider
}

// App wires the offline subsystem to the wine catalog.
type App struct {
	Deps

	validate *validator.Validate

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// New creates an App and registers the replay actions for every operation
// type it can queue.
func New(deps Deps) *App {
	a := &App{
		Deps:     deps,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	a.Engine.Register(domain.OpUpdateInventory, a.replayInventory)
	a.Engine.Register(domain.OpSetOrderStatus, a.replayOrderStatus)
	return a
}

// Init probes connectivity and starts the background loops: the connectivity
// watch, the cache sweeper and the reconciliation engine.
func (a *App) Init(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.started {
		return
	}
	a.started = true

	a.Monitor.Init(ctx)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	a.cancel = cancel
	a.Engine.Start(runCtx)

	if interval := a.Config.Network.ProbeInterval; interval > 0 {
		a.wg.Go(func() { a.Monitor.Watch(runCtx, interval) })
	}
	if interval := a.Config.Cache.SweepInterval; interval > 0 {
		done := a.Cache.StartSweeper(runCtx, interval)
		a.wg.Go(func() { <-done })
	}
}

// Dispose stops the background loops and releases storage and telemetry.
// A sync scheduled by a reconnect runs before the engine stops.
func (a *App) Dispose(ctx context.Context) error {
	a.mu.Lock()
	if a.started {
		if a.Engine.Flush() {
			a.Logger.Debug("ran scheduled sync before shutdown")
		}
		a.cancel()
		a.started = false
	}
	a.mu.Unlock()

	a.Engine.Stop()
	a.wg.Wait()
	a.Facade.Close()

	var errs []error
	if err := a.Telemetry.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.Storage.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Wines returns the catalog, from the remote when reachable and from the
// cache otherwise. While queued writes still touch the catalog the cached
// optimistic state is returned instead of a fresh fetch. force bypasses the
// cache and requires connectivity.
func (a *App) Wines(ctx context.Context, force bool) ([]domain.Wine, error) {
	fetch := func(ctx context.Context) (any, error) { return a.Catalog.ListWines(ctx) }
	if force {
		raw, err := a.Facade.ForceRefresh(ctx, domain.WinesKey, fetch)
		if err != nil {
			return nil, err
		}
		return decode[[]domain.Wine](raw, domain.WinesKey)
	}
	return facade.ReloadAs[[]domain.Wine](ctx, a.Facade, domain.WinesKey, fetch)
}

// Orders returns supplier orders with the same fallback rules as Wines.
func (a *App) Orders(ctx context.Context, force bool) ([]domain.Order, error) {
	fetch := func(ctx context.Context) (any, error) { return a.Catalog.ListOrders(ctx) }
	if force {
		raw, err := a.Facade.ForceRefresh(ctx, domain.OrdersKey, fetch)
		if err != nil {
			return nil, err
		}
		return decode[[]domain.Order](raw, domain.OrdersKey)
	}
	return facade.ReloadAs[[]domain.Order](ctx, a.Facade, domain.OrdersKey, fetch)
}

// SetInventory sets the stock count of a wine. Offline, the change is applied
// to the cached catalog and queued.
func (a *App) SetInventory(ctx context.Context, wineID string, inventory int) error {
	p := domain.UpdateInventoryPayload{WineID: wineID, NewInventory: inventory}
	if err := a.validate.Struct(p); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidInventory.Error()), "wine", wineID)
	}

	return a.Facade.Write(ctx, facade.Mutation{
		Key:        domain.WinesKey,
		Type:       domain.OpUpdateInventory,
		Payload:    p,
		MaxRetries: a.Config.Queue.MaxRetries,
		Apply: func(current json.RawMessage) (any, error) {
			return patch(current, domain.WinesKey, func(w *domain.Wine) bool {
				if w.ID != wineID {
					return false
				}
				w.Inventory = inventory
				return true
			}, domain.ErrWineNotFound)
		},
		Remote: func(ctx context.Context) error {
			return a.Catalog.SetInventory(ctx, wineID, inventory, "")
		},
	})
}

// SetOrderStatus moves an order to status with the same offline handling as
// SetInventory.
func (a *App) SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if !status.Valid() {
		return zerr.With(domain.ErrInvalidOrderStatus, "status", string(status))
	}
	p := domain.SetOrderStatusPayload{OrderID: orderID, Status: status}
	if err := a.validate.Struct(p); err != nil {
		return zerr.Wrap(err, domain.ErrInvalidPayload.Error())
	}

	return a.Facade.Write(ctx, facade.Mutation{
		Key:        domain.OrdersKey,
		Type:       domain.OpSetOrderStatus,
		Payload:    p,
		MaxRetries: a.Config.Queue.MaxRetries,
		Apply: func(current json.RawMessage) (any, error) {
			return patch(current, domain.OrdersKey, func(o *domain.Order) bool {
				if o.ID != orderID {
					return false
				}
				o.Status = status
				return true
			}, domain.ErrOrderNotFound)
		},
		Remote: func(ctx context.Context) error {
			return a.Catalog.SetOrderStatus(ctx, orderID, status, "")
		},
	})
}

func (a *App) replayInventory(ctx context.Context, op domain.PendingOperation) error {
	var p domain.UpdateInventoryPayload
	if err := a.decodePayload(op, &p); err != nil {
		return err
	}
	return a.Catalog.SetInventory(ctx, p.WineID, p.NewInventory, op.ID)
}

func (a *App) replayOrderStatus(ctx context.Context, op domain.PendingOperation) error {
	var p domain.SetOrderStatusPayload
	if err := a.decodePayload(op, &p); err != nil {
		return err
	}
	return a.Catalog.SetOrderStatus(ctx, p.OrderID, p.Status, op.ID)
}

func (a *App) decodePayload(op domain.PendingOperation, v any) error {
	if err := json.Unmarshal(op.Payload, v); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidPayload.Error()), "operation", op.ID)
	}
	if err := a.validate.Struct(v); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidPayload.Error()), "operation", op.ID)
	}
	return nil
}

// Status reports connectivity, cache and replay state.
func (a *App) Status() domain.StatusReport {
	return domain.StatusReport{
		Network:     a.Monitor.Status(),
		NetworkInfo: a.Monitor.Stats(),
		Cache:       a.Cache.Stats(),
		Retry:       a.Engine.Stats(),
		UsingCache:  a.Facade.UsingCache(),
		SyncPending: a.Engine.SyncPending(),
		Syncing:     a.Engine.Draining(),
	}
}

// PendingOperations lists queued operations, oldest first.
func (a *App) PendingOperations() []domain.PendingOperation {
	return a.Queue.Snapshot()
}

// Sync drains the queue now. It fails with ErrOffline when there is no
// connectivity and with ErrDrainInProgress while another sync is running.
func (a *App) Sync(ctx context.Context) (domain.DrainResult, error) {
	return a.Engine.Drain(ctx)
}

// Retry makes one attempt at the operation id and reports whether it succeeded.
func (a *App) Retry(ctx context.Context, id string) (bool, error) {
	if _, ok := a.Queue.Get(id); !ok {
		return false, zerr.With(domain.ErrOperationNotFound, "id", id)
	}
	if !a.Monitor.IsOnline() {
		return false, zerr.With(zerr.Wrap(domain.ErrOffline, "retry"), "id", id)
	}
	return a.Engine.RetryOperation(ctx, id), nil
}

// Cancel drops a queued operation without replaying it. The cached optimistic
// state is left as is until the next refresh.
func (a *App) Cancel(id string) error {
	if !a.Queue.Remove(id) {
		return zerr.With(domain.ErrOperationNotFound, "id", id)
	}
	a.Logger.Info("cancelled " + id)
	return nil
}

// Reset re-arms an operation by zeroing its retry count.
func (a *App) Reset(id string) error {
	if !a.Queue.Reset(id) {
		return zerr.With(domain.ErrOperationNotFound, "id", id)
	}
	return nil
}

// ClearQueue drops every queued operation and returns how many there were.
func (a *App) ClearQueue() int {
	n := a.Queue.Len()
	a.Queue.Clear()
	return n
}

// Sweep evicts expired cache entries and returns how many were removed.
func (a *App) Sweep() int {
	return a.Cache.CleanupExpired()
}

// CacheStats returns the cache counters.
func (a *App) CacheStats() domain.CacheStats {
	return a.Cache.Stats()
}

// Serve runs the status server until ctx is cancelled.
func (a *App) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = a.Config.Server.Address
	}
	return server.New(addr, a, a.Metrics.Handler(), a.Logger).Run(ctx)
}

func decode[T any](raw json.RawMessage, key string) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, zerr.With(zerr.Wrap(err, domain.ErrInvalidPayload.Error()), "key", key)
	}
	return v, nil
}

// patch rewrites the first record of a cached list that match accepts.
func patch[T any](current json.RawMessage, key string, match func(*T) bool, notFound error) ([]T, error) {
	list, err := decode[[]T](current, key)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if match(&list[i]) {
			return list, nil
		}
	}
	return nil, zerr.With(notFound, "key", key)
}
