package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tinytelemetry/heimdall/internal/apiclient"
	"github.com/tinytelemetry/heimdall/internal/mockapi"
	"github.com/tinytelemetry/heimdall/internal/snapshot"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// newTestApp builds an App against h, mounted under /api/v1.
func newTestApp(t *testing.T, h http.Handler) *App {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return newTestAppAt(t, srv.URL+"/api/v1", nil)
}

func newTestAppAt(t *testing.T, baseURL string, cache SnapshotCache) *App {
	t.Helper()
	a := NewApp(&Deps{
		Client:    apiclient.New(baseURL, apiclient.WithTimeout(2*time.Second)),
		Cache:     cache,
		Logger:    zap.NewNop(),
		SessionID: "session-test",
		ExportDir: t.TempDir(),
		Now:       func() time.Time { return testNow },
	})
	t.Cleanup(a.Close)
	return a
}

// newDemoApp builds an App against the in-process demo backend.
func newDemoApp(t *testing.T) (*App, *mockapi.Server) {
	t.Helper()
	s := mockapi.NewServer("127.0.0.1:0", zap.NewNop())
	return newTestApp(t, s.Handler()), s
}

// unreachableURL returns a base URL nothing listens on.
func unreachableURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url + "/api/v1"
}

// load runs a navigation or reload command and applies its result.
func load(t *testing.T, a *App, cmd tea.Cmd) pageDataMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(pageDataMsg)
	require.True(t, ok, "expected pageDataMsg")
	a.nav.HandleData(msg)
	return msg
}

// countingHandler counts requests per path.
type countingHandler struct {
	mu    sync.Mutex
	hits  map[string]int
	inner http.Handler
}

func newCountingHandler(inner http.Handler) *countingHandler {
	return &countingHandler{hits: map[string]int{}, inner: inner}
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.hits[r.URL.Path]++
	h.mu.Unlock()
	h.inner.ServeHTTP(w, r)
}

func (h *countingHandler) count(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hits[path]
}

// memoryCache is an in-memory SnapshotCache.
type memoryCache struct {
	entries map[string]snapshot.Entry
	puts    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]snapshot.Entry{}}
}

func (c *memoryCache) PutJSON(_ context.Context, key, source string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.puts++
	c.entries[key] = snapshot.Entry{Key: key, Payload: data, Source: source, SavedAt: testNow}
	return nil
}

func (c *memoryCache) GetJSON(_ context.Context, key string, v any) (snapshot.Entry, bool, error) {
	e, ok := c.entries[key]
	if !ok {
		return snapshot.Entry{}, false, nil
	}
	return e, true, json.Unmarshal(e.Payload, v)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
