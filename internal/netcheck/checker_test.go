package netcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeAll_AllReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewChecker(2 * time.Second)
	results := c.ProbeAll(context.Background(), []string{srv.URL, srv.URL + "/other"})

	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Reachable, "endpoint %s should be reachable", r.Endpoint)
		assert.Equal(t, FailureNone, r.Kind)
	}
	assert.Empty(t, Unreachable(results))
}

func TestProbeAll_NonSuccessStatusStillReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewChecker(2 * time.Second)
	results := c.ProbeAll(context.Background(), []string{srv.URL})

	require.Len(t, results, 1)
	assert.True(t, results[0].Reachable)
}

func TestProbeAll_CollectsAllFailuresInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	// Closed listener: reserve a port, then close it so connections are refused.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	endpoints := []string{deadURL + "/a", srv.URL, deadURL + "/b"}

	c := NewChecker(2 * time.Second)
	results := c.ProbeAll(context.Background(), endpoints)

	require.Len(t, results, 3)
	assert.False(t, results[0].Reachable)
	assert.True(t, results[1].Reachable)
	assert.False(t, results[2].Reachable)

	// Failures come back in original probe order, and nothing stops early.
	assert.Equal(t, []string{deadURL + "/a", deadURL + "/b"}, Unreachable(results))
}

func TestProbeAll_ClassifiesRefusedConnection(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	c := NewChecker(2 * time.Second)
	results := c.ProbeAll(context.Background(), []string{deadURL})

	require.Len(t, results, 1)
	require.False(t, results[0].Reachable)
	assert.Equal(t, FailureNetwork, results[0].Kind)
	assert.Error(t, results[0].Reason)
}

func TestProbeAll_ClassifiesDNSFailure(t *testing.T) {
	c := NewChecker(2 * time.Second)
	results := c.ProbeAll(context.Background(), []string{"https://definitely-not-a-real-host.invalid"})

	require.Len(t, results, 1)
	require.False(t, results[0].Reachable)
	assert.Equal(t, FailureDNS, results[0].Kind)
}

func TestProbeAll_Timeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer slow.Close()

	c := NewChecker(50 * time.Millisecond)
	results := c.ProbeAll(context.Background(), []string{slow.URL})

	require.Len(t, results, 1)
	require.False(t, results[0].Reachable)
	assert.Equal(t, FailureTimeout, results[0].Kind)
}

func TestFailureKind_String(t *testing.T) {
	tests := []struct {
		kind     FailureKind
		expected string
	}{
		{FailureNone, "ok"},
		{FailureTLS, "TLS certificate error"},
		{FailureNetwork, "network error"},
		{FailureTimeout, "connection timeout"},
		{FailureDNS, "DNS resolution error"},
		{FailureUnknown, "connection error"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, test.kind.String())
	}
}
