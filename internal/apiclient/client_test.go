package apiclient

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytelemetry/heimdall/internal/model"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/api/v1")
}

func TestDo_OKDecodesBody(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","version":"1.2.0"}`))
	})

	res := c.Health(context.Background())
	require.True(t, res.OK(), "err = %v", res.Err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.True(t, res.Value.Healthy())
	assert.Equal(t, "1.2.0", res.Value.Version)
	assert.Equal(t, Snapshot{Total: 1, Success: 1}, c.Stats())
}

func TestDo_ServerErrorIsHTTPError(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"database unavailable"}`))
	})

	res := c.DashboardStats(context.Background())
	require.Equal(t, KindHTTPError, res.Kind)
	assert.Equal(t, 500, res.Status)

	var httpErr *HTTPError
	require.True(t, errors.As(res.Err, &httpErr))
	assert.Equal(t, 500, httpErr.Status)
	assert.Equal(t, "database unavailable", httpErr.Detail)
	assert.Contains(t, httpErr.Body, "database unavailable")

	assert.Equal(t, Snapshot{Total: 1, Failure: 1}, c.Stats())
}

func TestDo_NotFoundIsHTTPError(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/memory/user-profile/user_404", r.URL.Path)
		http.Error(w, `{"detail":"user not found"}`, http.StatusNotFound)
	})

	res := c.UserProfile(context.Background(), "user_404")
	var httpErr *HTTPError
	require.True(t, errors.As(res.Err, &httpErr))
	assert.True(t, httpErr.NotFound())
}

func TestDo_RefusedConnectionIsNetworkError(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c := New("http://" + addr + "/api/v1")
	res := c.Health(context.Background())

	require.Equal(t, KindNetworkError, res.Kind)
	var netErr *NetworkError
	require.True(t, errors.As(res.Err, &netErr))
	assert.Zero(t, res.Status)
	assert.Equal(t, Snapshot{Total: 1, Failure: 1}, c.Stats())
}

func TestDo_CanceledContextIsNetworkError(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.Products(ctx)
	assert.Equal(t, KindNetworkError, res.Kind)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestDo_UndecodableSuccessIsHTTPError(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>proxy login</html>`))
	})

	res := c.Products(context.Background())
	require.Equal(t, KindHTTPError, res.Kind)
	var httpErr *HTTPError
	require.True(t, errors.As(res.Err, &httpErr))
	assert.Equal(t, 200, httpErr.Status)
	assert.Contains(t, httpErr.Detail, "decode response")
}

func TestDo_OversizedBodyIsReported(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"`))
		w.Write(bytes.Repeat([]byte("x"), maxBodyBytes))
		w.Write([]byte(`"}`))
	})

	res := c.Health(context.Background())
	require.Equal(t, KindHTTPError, res.Kind)
	var he *HTTPError
	require.True(t, errors.As(res.Err, &he))
	assert.Equal(t, http.StatusOK, he.Status)
	assert.Contains(t, he.Detail, "response too large")
	assert.Empty(t, he.Body)
	assert.Equal(t, Snapshot{Total: 1, Failure: 1}, c.Stats())
}

func TestDo_PostsJSONBody(t *testing.T) {
	t.Parallel()

	var got model.RecommendationRequest
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"recommendations":[{"name":"AirPods Pro","price":1999}]}`))
	})

	res := c.Recommendations(context.Background(), model.RecommendationRequest{
		UserID: "user_002", SessionID: "s1", Limit: 8, Strategy: "popular",
	})
	require.True(t, res.OK())
	require.Len(t, res.Value.Recommendations, 1)
	assert.Equal(t, "AirPods Pro", res.Value.Recommendations[0].Name)
	assert.Equal(t, "user_002", got.UserID)
	assert.Equal(t, "popular", got.Strategy)
}

func TestAnalyticsOverview_SendsDays(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "30", r.URL.Query().Get("days"))
		w.Write([]byte(`{"overview":{"period_days":30,"total_clicks":12}}`))
	})

	res := c.AnalyticsOverview(context.Background(), 30)
	require.True(t, res.OK())
	assert.Equal(t, int64(12), res.Value.Overview.TotalClicks)
}

func TestStats_ConsistentUnderConcurrency(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	n := 0
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		n++
		fail := n%3 == 0
		mu.Unlock()
		if fail {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"status":"healthy"}`))
	})

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Health(context.Background())
			s := c.Stats()
			assert.Equal(t, s.Total, s.Success+s.Failure)
		}()
	}
	wg.Wait()

	s := c.Stats()
	assert.Equal(t, int64(30), s.Total)
	assert.Equal(t, int64(10), s.Failure)
	assert.Equal(t, s.Total, s.Success+s.Failure)
}

func TestErrorDetail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		body string
		want string
	}{
		{`{"detail":"nope"}`, "nope"},
		{`{"error":"bad input"}`, "bad input"},
		{`{"detail":[{"loc":["body","price"]}]}`, `[{"loc":["body","price"]}]`},
		{`not json`, ""},
	}
	for _, tt := range tests {
		if got := errorDetail([]byte(tt.body)); got != tt.want {
			t.Errorf("errorDetail(%s) = %q, want %q", tt.body, got, tt.want)
		}
	}
}
