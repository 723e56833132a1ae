package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cellar/cmd/cellar/commands"
	"go.trai.ch/cellar/internal/build"
	"go.trai.ch/cellar/internal/core/domain"
)

type mockApp struct {
	initCalls    int
	disposeCalls int
	disposeErr   error

	status domain.StatusReport
	wines  []domain.Wine
	orders []domain.Order
	ops    []domain.PendingOperation

	gotForce   bool
	gotWine    string
	gotCount   int
	gotOrder   string
	gotStatus  domain.OrderStatus
	gotID      string
	gotAddr    string
	cleared    int
	syncResult domain.DrainResult
	err        error
}

func (m *mockApp) Init(context.Context) { m.initCalls++ }

func (m *mockApp) Dispose(context.Context) error {
	m.disposeCalls++
	return m.disposeErr
}

func (m *mockApp) Status() domain.StatusReport { return m.status }

func (m *mockApp) Wines(_ context.Context, force bool) ([]domain.Wine, error) {
	m.gotForce = force
	return m.wines, m.err
}

func (m *mockApp) SetInventory(_ context.Context, wineID string, n int) error {
	m.gotWine, m.gotCount = wineID, n
	return m.err
}

func (m *mockApp) Orders(_ context.Context, force bool) ([]domain.Order, error) {
	m.gotForce = force
	return m.orders, m.err
}

func (m *mockApp) SetOrderStatus(_ context.Context, orderID string, status domain.OrderStatus) error {
	m.gotOrder, m.gotStatus = orderID, status
	return m.err
}

func (m *mockApp) PendingOperations() []domain.PendingOperation { return m.ops }

func (m *mockApp) Sync(context.Context) (domain.DrainResult, error) { return m.syncResult, m.err }

func (m *mockApp) Retry(_ context.Context, id string) (bool, error) {
	m.gotID = id
	return m.err == nil, m.err
}

func (m *mockApp) Cancel(id string) error {
	m.gotID = id
	return m.err
}

func (m *mockApp) Reset(id string) error {
	m.gotID = id
	return m.err
}

func (m *mockApp) ClearQueue() int {
	m.cleared = len(m.ops)
	return m.cleared
}

func (m *mockApp) Sweep() int { return 2 }

func (m *mockApp) CacheStats() domain.CacheStats { return m.status.Cache }

func (m *mockApp) Serve(_ context.Context, addr string) error {
	m.gotAddr = addr
	return m.err
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Version(t *testing.T) {
	m := &mockApp{}
	out, err := execute(t, m, "version")
	require.NoError(t, err)

	assert.Contains(t, out, build.Version)
	assert.Zero(t, m.initCalls, "version does not start the offline subsystem")
	assert.Equal(t, 1, m.disposeCalls)
}

func TestCommands_Lifecycle(t *testing.T) {
	t.Run("init and dispose around a command", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "status")
		require.NoError(t, err)
		assert.Equal(t, 1, m.initCalls)
		assert.Equal(t, 1, m.disposeCalls)
	})

	t.Run("dispose error surfaces", func(t *testing.T) {
		m := &mockApp{disposeErr: errors.New("close failed")}
		_, err := execute(t, m, "status")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "close failed")
	})
}

func TestCommands_Status(t *testing.T) {
	offlineAt := time.Now().Add(-time.Minute)
	m := &mockApp{status: domain.StatusReport{
		Network: domain.NetworkStatus{LastOffline: &offlineAt},
		Retry:   domain.RetryStats{QueuedOperations: 2, TerminalOperations: 1},
	}}

	out, err := execute(t, m, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "offline")
	assert.Contains(t, out, "2 (1 terminal)")
}

func TestCommands_Wines(t *testing.T) {
	t.Run("lists wines and notes cache mode", func(t *testing.T) {
		m := &mockApp{
			wines:  []domain.Wine{{ID: "w1", Name: "Barolo", Vintage: 2016, Inventory: 5}, {ID: "w2", Name: "Cava"}},
			status: domain.StatusReport{UsingCache: true},
		}
		out, err := execute(t, m, "wines")
		require.NoError(t, err)
		assert.False(t, m.gotForce)
		assert.Contains(t, out, "Barolo")
		assert.Contains(t, out, "NV")
		assert.Contains(t, out, "showing cached data")
	})

	t.Run("refresh flag", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "wines", "--refresh")
		require.NoError(t, err)
		assert.True(t, m.gotForce)
	})

	t.Run("error propagates", func(t *testing.T) {
		m := &mockApp{err: domain.ErrNoDataAvailable}
		_, err := execute(t, m, "wines")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrNoDataAvailable.Error())
	})
}

func TestCommands_Stock(t *testing.T) {
	t.Run("online", func(t *testing.T) {
		m := &mockApp{status: domain.StatusReport{Network: domain.NetworkStatus{IsOnline: true}}}
		out, err := execute(t, m, "stock", "w1", "5")
		require.NoError(t, err)
		assert.Equal(t, "w1", m.gotWine)
		assert.Equal(t, 5, m.gotCount)
		assert.Contains(t, out, "w1 stock set to 5")
		assert.NotContains(t, out, "queued")
	})

	t.Run("offline is queued", func(t *testing.T) {
		m := &mockApp{}
		out, err := execute(t, m, "stock", "w1", "5")
		require.NoError(t, err)
		assert.Contains(t, out, "queued for sync")
	})

	t.Run("rejects non-numeric count", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "stock", "w1", "five")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrInvalidInventory.Error())
		assert.Empty(t, m.gotWine)
	})
}

func TestCommands_Orders(t *testing.T) {
	m := &mockApp{orders: []domain.Order{{ID: "o1", Supplier: "Vinoteca", Status: domain.OrderSubmitted}}}
	out, err := execute(t, m, "orders")
	require.NoError(t, err)
	assert.Contains(t, out, "Vinoteca")
	assert.Contains(t, out, "submitted")

	_, err = execute(t, m, "order-status", "o1", "received")
	require.NoError(t, err)
	assert.Equal(t, "o1", m.gotOrder)
	assert.Equal(t, domain.OrderReceived, m.gotStatus)
}

func TestCommands_Queue(t *testing.T) {
	ops := []domain.PendingOperation{
		{ID: "op1", Type: domain.OpUpdateInventory, Timestamp: time.Now().UnixMilli(), MaxRetries: 3},
		{ID: "op2", Type: domain.OpSetOrderStatus, Timestamp: time.Now().UnixMilli(), RetryCount: 3, MaxRetries: 3, LastError: "remote request failed"},
	}

	t.Run("list", func(t *testing.T) {
		out, err := execute(t, &mockApp{ops: ops}, "queue", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "op1")
		assert.Contains(t, out, "failed_terminal")
		assert.Contains(t, out, "remote request failed")
	})

	t.Run("list empty", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, "queue", "ls")
		require.NoError(t, err)
		assert.Contains(t, out, "nothing queued")
	})

	for _, sub := range []string{"cancel", "reset", "retry"} {
		t.Run(sub, func(t *testing.T) {
			m := &mockApp{ops: ops}
			_, err := execute(t, m, "queue", sub, "op2")
			require.NoError(t, err)
			assert.Equal(t, "op2", m.gotID)
		})
	}

	t.Run("cancel unknown", func(t *testing.T) {
		m := &mockApp{err: domain.ErrOperationNotFound}
		_, err := execute(t, m, "queue", "cancel", "nope")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrOperationNotFound.Error())
	})

	t.Run("clear", func(t *testing.T) {
		m := &mockApp{ops: ops}
		out, err := execute(t, m, "queue", "clear")
		require.NoError(t, err)
		assert.Equal(t, 2, m.cleared)
		assert.Contains(t, out, "dropped 2 operations")
	})
}

func TestCommands_Sync(t *testing.T) {
	m := &mockApp{syncResult: domain.DrainResult{Attempted: 3, Succeeded: 2, Failed: 1}}
	out, err := execute(t, m, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "synced 2 of 3, 1 failed")

	m = &mockApp{err: domain.ErrOffline}
	_, err = execute(t, m, "sync")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrOffline.Error())
}

func TestCommands_Cache(t *testing.T) {
	m := &mockApp{status: domain.StatusReport{Cache: domain.CacheStats{Hits: 4, Misses: 1, SizeBytes: 2048}}}
	out, err := execute(t, m, "cache", "sweep")
	require.NoError(t, err)
	assert.Contains(t, out, "evicted 2 expired entries")

	out, err = execute(t, m, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "2048 bytes")
}

func TestCommands_Serve(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "serve", "--addr", "127.0.0.1:9999")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", m.gotAddr)
}
