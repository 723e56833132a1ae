// Package network tracks connectivity transitions and notifies subscribers.
package network

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports"
)

// Listener is notified with the status after a transition.
type Listener func(domain.NetworkStatus)

// Monitor owns the NetworkStatus. Only its handlers mutate it.
type Monitor struct {
	probe   ports.ConnectivityProbe
	logger  ports.Logger
	metrics ports.Metrics

	mu        sync.RWMutex
	status    domain.NetworkStatus
	stats     domain.NetworkStats
	nextID    int
	onOnline  map[int]Listener
	onOffline map[int]Listener
}

// New creates a monitor that assumes connectivity until told otherwise.
func New(probe ports.ConnectivityProbe, logger ports.Logger, metrics ports.Metrics) *Monitor {
	return &Monitor{
		probe:     probe,
		logger:    logger,
		metrics:   metrics,
		status:    domain.NetworkStatus{IsOnline: true},
		onOnline:  make(map[int]Listener),
		onOffline: make(map[int]Listener),
	}
}

// Init seeds the status from a single probe. It does not notify listeners or
// touch the statistics.
func (m *Monitor) Init(ctx context.Context) {
	info, err := m.probe.Check(ctx)
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.status = domain.NetworkStatus{IsOnline: false, LastOffline: &now}
		m.logger.Debug("starting offline: " + err.Error())
		return
	}
	m.status = domain.NetworkStatus{
		IsOnline:       true,
		LastOnline:     &now,
		ConnectionType: info.ConnectionType,
		EffectiveType:  info.EffectiveType,
	}
}

// Status returns a copy of the current status.
func (m *Monitor) Status() domain.NetworkStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// IsOnline reports the current connectivity.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.IsOnline
}

// HasBeenOffline reports whether the monitor has ever observed the offline state.
func (m *Monitor) HasBeenOffline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.LastOffline != nil
}

// OfflineDuration returns how long the current offline period has lasted,
// or zero while online.
func (m *Monitor) OfflineDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.status.IsOnline || m.status.LastOffline == nil {
		return 0
	}
	return time.Since(*m.status.LastOffline)
}

// Stats returns the accumulated offline statistics.
func (m *Monitor) Stats() domain.NetworkStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// HandleOnline records a connectivity signal. A repeated signal only refreshes
// LastOnline and the connection fields.
func (m *Monitor) HandleOnline(info domain.ConnectionInfo) {
	now := time.Now()

	m.mu.Lock()
	wasOnline := m.status.IsOnline
	if !wasOnline && m.status.LastOffline != nil {
		m.stats.TotalOfflineTime += now.Sub(*m.status.LastOffline)
	}
	m.status.IsOnline = true
	m.status.IsConnecting = false
	m.status.LastOnline = &now
	m.status.ConnectionType = info.ConnectionType
	m.status.EffectiveType = info.EffectiveType
	status := m.status
	listeners := collect(m.onOnline)
	m.mu.Unlock()

	if wasOnline {
		return
	}
	m.metrics.NetworkTransition(true)
	m.logger.Info("network online")
	m.notify(listeners, status)
}

// HandleOffline records a loss of connectivity. Repeated signals are ignored.
func (m *Monitor) HandleOffline() {
	now := time.Now()

	m.mu.Lock()
	if !m.status.IsOnline {
		m.status.IsConnecting = false
		m.mu.Unlock()
		return
	}
	m.status.IsOnline = false
	m.status.IsConnecting = false
	m.status.LastOffline = &now
	m.stats.OfflineEvents++
	status := m.status
	listeners := collect(m.onOffline)
	m.mu.Unlock()

	m.metrics.NetworkTransition(false)
	m.logger.Warn("network offline")
	m.notify(listeners, status)
}

// OnOnline registers fn for offline to online transitions and returns a func
// that unregisters it.
func (m *Monitor) OnOnline(fn Listener) func() {
	return m.subscribe(m.onOnline, fn)
}

// OnOffline registers fn for online to offline transitions and returns a func
// that unregisters it.
func (m *Monitor) OnOffline(fn Listener) func() {
	return m.subscribe(m.onOffline, fn)
}

func (m *Monitor) subscribe(set map[int]Listener, fn Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	set[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(set, id)
		})
	}
}

// Watch probes connectivity every interval until ctx is done and feeds the
// result into the handlers. IsConnecting is set while an offline probe runs.
func (m *Monitor) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		m.poll(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *Monitor) poll(ctx context.Context) {
	m.mu.Lock()
	if !m.status.IsOnline {
		m.status.IsConnecting = true
	}
	m.mu.Unlock()

	info, err := m.probe.Check(ctx)
	if ctx.Err() != nil {
		m.mu.Lock()
		m.status.IsConnecting = false
		m.mu.Unlock()
		return
	}
	if err != nil {
		m.HandleOffline()
		return
	}
	m.HandleOnline(info)
}

func (m *Monitor) notify(listeners []Listener, status domain.NetworkStatus) {
	for _, fn := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.logger.Warn(fmt.Sprintf("network listener panicked: %v", r))
				}
			}()
			fn(status)
		}()
	}
}

// collect returns the listeners in subscription order.
func collect(set map[int]Listener) []Listener {
	ids := slices.Sorted(maps.Keys(set))
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, set[id])
	}
	return out
}
