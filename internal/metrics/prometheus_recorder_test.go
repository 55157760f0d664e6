package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	t.Parallel()

	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ConnectionOpened()
	pr.ConnectionOpened()
	assert.InDelta(t, 2, testutil.ToFloat64(pr.activeConnections), 0)

	pr.ConnectionClosed(OutcomeServed, 20*time.Millisecond)
	pr.ConnectionClosed(OutcomeDropped, time.Millisecond)
	assert.InDelta(t, 0, testutil.ToFloat64(pr.activeConnections), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.connections.WithLabelValues("served")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.connections.WithLabelValues("dropped")), 0)

	pr.ObserveResponse(20, 100)
	pr.ObserveResponse(51, 15)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.responses.WithLabelValues("20")), 0)
	assert.InDelta(t, 115, testutil.ToFloat64(pr.responseBytes), 0)

	pr.ObserveConversion(time.Millisecond, true)
	pr.ObserveConversion(time.Millisecond, false)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.conversions.WithLabelValues("failed")), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestNewPrometheusRecorder_NilRegistry(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		NewPrometheusRecorder(nil).ConnectionOpened()
	})
}

func TestHTTPHandler(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	NewPrometheusRecorder(reg).ObserveResponse(20, 10)

	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "exarch_responses_total")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestServe(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	reg := NewRegistry()
	NewPrometheusRecorder(reg).ConnectionOpened()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, ln, reg) }()

	resp, err := http.Get("http://" + ln.Addr().String() + Path)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "exarch_active_connections 1")

	missing, err := http.Get("http://" + ln.Addr().String() + "/other")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServe_ClosedListener(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	err = Serve(context.Background(), ln, NewRegistry())
	require.Error(t, err)
}

func TestNoopRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder = NoopRecorder{}
	r.ConnectionOpened()
	r.ConnectionClosed(OutcomeRejected, time.Second)
	r.ObserveResponse(59, 0)
	r.ObserveConversion(0, true)
}
