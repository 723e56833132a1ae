package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cellar/internal/adapters/metrics"
)

func TestPrometheus_Counters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()
	m.CacheEvicted("expired")
	m.RetryAttempt("UPDATE_INVENTORY", true)
	m.RetryAttempt("UPDATE_INVENTORY", false)
	m.RetryAttempt("UPDATE_INVENTORY", false)
	m.QueueDepth(4)
	m.NetworkTransition(false)
	m.DrainDuration(300 * time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "cellar_cache_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per result label")

	expected := `
# HELP cellar_queue_depth Pending operations currently queued.
# TYPE cellar_queue_depth gauge
cellar_queue_depth 4
# HELP cellar_queue_replays_total Replay attempts by operation type and outcome.
# TYPE cellar_queue_replays_total counter
cellar_queue_replays_total{outcome="failure",type="UPDATE_INVENTORY"} 2
cellar_queue_replays_total{outcome="success",type="UPDATE_INVENTORY"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"cellar_queue_depth", "cellar_queue_replays_total"))
	assert.Same(t, reg, m.Registry())
}

func TestPrometheus_Handler(t *testing.T) {
	t.Parallel()

	m := metrics.New(nil)
	m.NetworkTransition(true)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `cellar_network_transitions_total{state="online"} 1`)
}
