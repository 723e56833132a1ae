package network_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cellar/internal/adapters/metrics"
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports/mocks"
	"go.trai.ch/cellar/internal/engine/network"
	"go.uber.org/mock/gomock"
)

var errUnreachable = errors.New("dial tcp: connection refused")

func newMonitor(t *testing.T) (*network.Monitor, *mocks.MockConnectivityProbe) {
	t.Helper()
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockConnectivityProbe(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return network.New(probe, log, metrics.New(nil)), probe
}

func TestMonitor_Transitions(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		m, _ := newMonitor(t)
		assert.True(t, m.IsOnline())
		assert.False(t, m.HasBeenOffline())
		assert.Zero(t, m.OfflineDuration())

		m.HandleOffline()
		offlineAt := time.Now()
		status := m.Status()
		assert.False(t, status.IsOnline)
		require.NotNil(t, status.LastOffline)
		assert.Equal(t, offlineAt, *status.LastOffline)
		assert.True(t, m.HasBeenOffline())

		time.Sleep(5 * time.Second)
		assert.Equal(t, 5*time.Second, m.OfflineDuration())

		m.HandleOffline()
		assert.Equal(t, 1, m.Stats().OfflineEvents, "repeated offline signal is not counted")
		assert.Equal(t, offlineAt, *m.Status().LastOffline)

		m.HandleOnline(domain.ConnectionInfo{ConnectionType: "wifi", EffectiveType: "4g"})
		status = m.Status()
		assert.True(t, status.IsOnline)
		assert.Equal(t, "wifi", status.ConnectionType)
		assert.Equal(t, "4g", status.EffectiveType)
		assert.Zero(t, m.OfflineDuration())
		assert.Equal(t, 5*time.Second, m.Stats().TotalOfflineTime)

		time.Sleep(time.Second)
		m.HandleOnline(domain.ConnectionInfo{ConnectionType: "ethernet"})
		status = m.Status()
		assert.Equal(t, "ethernet", status.ConnectionType)
		assert.Equal(t, time.Now(), *status.LastOnline)
		assert.Equal(t, 5*time.Second, m.Stats().TotalOfflineTime, "repeated online signal is not counted")

		m.HandleOffline()
		time.Sleep(2 * time.Second)
		m.HandleOnline(domain.ConnectionInfo{})
		assert.Equal(t, domain.NetworkStats{TotalOfflineTime: 7 * time.Second, OfflineEvents: 2}, m.Stats())
	})
}

func TestMonitor_Listeners(t *testing.T) {
	t.Parallel()

	m, _ := newMonitor(t)

	var order []string
	unsubOnline := m.OnOnline(func(s domain.NetworkStatus) {
		assert.True(t, s.IsOnline)
		order = append(order, "online-1")
	})
	m.OnOnline(func(domain.NetworkStatus) { panic("listener bug") })
	m.OnOnline(func(domain.NetworkStatus) { order = append(order, "online-3") })
	m.OnOffline(func(s domain.NetworkStatus) {
		assert.False(t, s.IsOnline)
		order = append(order, "offline")
	})

	m.HandleOnline(domain.ConnectionInfo{})
	assert.Empty(t, order, "no transition while already online")

	m.HandleOffline()
	m.HandleOnline(domain.ConnectionInfo{})
	assert.Equal(t, []string{"offline", "online-1", "online-3"}, order)

	unsubOnline()
	unsubOnline()
	m.HandleOffline()
	m.HandleOnline(domain.ConnectionInfo{})
	assert.Equal(t, []string{"offline", "online-1", "online-3", "offline", "online-3"}, order)
}

func TestMonitor_Init(t *testing.T) {
	t.Parallel()

	t.Run("reachable", func(t *testing.T) {
		t.Parallel()
		m, probe := newMonitor(t)
		probe.EXPECT().Check(gomock.Any()).Return(domain.ConnectionInfo{ConnectionType: "tcp"}, nil)

		m.Init(t.Context())
		status := m.Status()
		assert.True(t, status.IsOnline)
		assert.Equal(t, "tcp", status.ConnectionType)
		assert.NotNil(t, status.LastOnline)
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()
		m, probe := newMonitor(t)
		probe.EXPECT().Check(gomock.Any()).Return(domain.ConnectionInfo{}, errUnreachable)

		fired := false
		m.OnOffline(func(domain.NetworkStatus) { fired = true })
		m.Init(t.Context())

		assert.False(t, m.IsOnline())
		assert.True(t, m.HasBeenOffline())
		assert.False(t, fired, "initial state is not a transition")
		assert.Zero(t, m.Stats().OfflineEvents)
	})
}

func TestMonitor_Watch(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		m, probe := newMonitor(t)

		var calls atomic.Int32
		release := make(chan struct{})
		probe.EXPECT().Check(gomock.Any()).DoAndReturn(func(context.Context) (domain.ConnectionInfo, error) {
			switch calls.Add(1) {
			case 1:
				return domain.ConnectionInfo{}, errUnreachable
			case 2:
				<-release
				return domain.ConnectionInfo{ConnectionType: "tcp"}, nil
			default:
				return domain.ConnectionInfo{ConnectionType: "tcp"}, nil
			}
		}).AnyTimes()

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan struct{})
		go func() {
			defer close(done)
			m.Watch(ctx, 10*time.Second)
		}()

		synctest.Wait()
		assert.False(t, m.IsOnline())
		assert.False(t, m.Status().IsConnecting)

		time.Sleep(10 * time.Second)
		synctest.Wait()
		assert.True(t, m.Status().IsConnecting, "probe in flight while offline")

		close(release)
		synctest.Wait()
		assert.True(t, m.IsOnline())
		assert.False(t, m.Status().IsConnecting)

		cancel()
		<-done
	})
}
