package mockapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytelemetry/heimdall/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestHandler(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	s := NewServer("", nil)
	return s, s.Handler()
}

func serve(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	_, h := newTestHandler(t)

	w := serve(h, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body model.Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Healthy())
}

func TestDashboardStats(t *testing.T) {
	_, h := newTestHandler(t)

	w := serve(h, http.MethodGet, "/api/v1/memory/dashboard-stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats model.DashboardStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(10), stats.Overview.TotalProducts)
	assert.Equal(t, int64(len(model.DemoUsers)), stats.Overview.TotalUsers)
	assert.NotEmpty(t, stats.CategoryStats)
	assert.Len(t, stats.PopularProducts, 5)
	assert.LessOrEqual(t, len(stats.RecentActivities), 10)
}

func TestUserProfile(t *testing.T) {
	_, h := newTestHandler(t)

	w := serve(h, http.MethodGet, "/api/v1/memory/user-profile/user_002", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p model.UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "user_002", p.UserID)
	assert.EqualValues(t, len(p.RecentBehaviors), p.BehaviorCount)

	w = serve(h, http.MethodGet, "/api/v1/memory/user-profile/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"user not found"}`, w.Body.String())
}

func TestCreateProductValidation(t *testing.T) {
	s, h := newTestHandler(t)
	before := len(s.Catalog().Products())

	tests := []struct {
		name string
		body model.NewProduct
		code int
	}{
		{"missing name", model.NewProduct{Price: 10, CategoryID: 1}, http.StatusUnprocessableEntity},
		{"bad price", model.NewProduct{Name: "Lamp", CategoryID: 3}, http.StatusUnprocessableEntity},
		{"bad category", model.NewProduct{Name: "Lamp", Price: 99, CategoryID: 9}, http.StatusUnprocessableEntity},
		{"ok", model.NewProduct{Name: "Lamp", Price: 99, CategoryID: 3, Brand: "IKEA"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, http.MethodPost, "/api/v1/products", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}

	products := s.Catalog().Products()
	require.Len(t, products, before+1)
	assert.Equal(t, "Home", products[len(products)-1].Category)
}

func TestRecommendationsByStrategy(t *testing.T) {
	_, h := newTestHandler(t)

	w := serve(h, http.MethodPost, "/api/v1/recommendations", model.RecommendationRequest{
		UserID: "user_001", Limit: 3, Strategy: "popular",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var list model.RecommendationList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Recommendations, 3)
	assert.Equal(t, "AirPods Pro", list.Recommendations[0].Name)

	w = serve(h, http.MethodPost, "/api/v1/recommendations", model.RecommendationRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHybridRequiresInput(t *testing.T) {
	_, h := newTestHandler(t)

	w := serve(h, http.MethodPost, "/api/v1/hybrid-recommendations/recommendations", model.HybridRequest{UserID: "user_001"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(h, http.MethodPost, "/api/v1/hybrid-recommendations/recommendations", model.HybridRequest{
		UserID: "user_001", UserInput: "looking for Apple electronics", Limit: 8,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp model.HybridResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.IntentAnalysis.ProductCategories, "Electronics")
	assert.Contains(t, resp.IntentAnalysis.BrandPreferences, "Apple")
	for _, r := range resp.Recommendations {
		assert.Equal(t, "Electronics", r.Category)
	}
}

func TestRecordBehavior(t *testing.T) {
	s, h := newTestHandler(t)

	w := serve(h, http.MethodPost, "/api/v1/record-behavior", model.BehaviorRecord{
		UserID: "user_009", BehaviorType: "view", BehaviorData: map[string]any{"category": "Home"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	p, ok := s.Catalog().Profile("user_009")
	require.True(t, ok)
	assert.Equal(t, "Home", p.RecentBehaviors[0].Category)

	w = serve(h, http.MethodPost, "/api/v1/record-behavior", model.BehaviorRecord{UserID: "user_009"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAnalyticsOverview(t *testing.T) {
	_, h := newTestHandler(t)

	w := serve(h, http.MethodGet, "/api/v1/advertising/analytics/overview?days=30", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ov model.AnalyticsOverview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ov))
	assert.Equal(t, 30, ov.Overview.PeriodDays)
	assert.NotEmpty(t, ov.Overview.IntentDistribution)
	for _, s := range model.Strategies {
		assert.Contains(t, ov.Overview.ConversionByStrategy, s)
	}

	w = serve(h, http.MethodGet, "/api/v1/advertising/analytics/overview?days=zero", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMetricsCountRequests(t *testing.T) {
	s, h := newTestHandler(t)

	serve(h, http.MethodGet, "/api/v1/health", nil)
	serve(h, http.MethodGet, "/api/v1/health", nil)
	serve(h, http.MethodGet, "/api/v1/nope", nil)

	got := testutil.ToFloat64(s.metrics.requests.WithLabelValues(http.MethodGet, "/api/v1/health", "200"))
	assert.Equal(t, 2.0, got)
	total, _, _ := s.metrics.Totals()
	assert.Equal(t, int64(3), total)

	w := serve(h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "heimdall_demo_requests_total")
}

func TestStartStop(t *testing.T) {
	s := NewServer("127.0.0.1:0", nil)
	require.NoError(t, s.Start())
	t.Cleanup(func() { s.Stop() })

	resp, err := http.Get("http://" + s.Addr() + "/api/v1/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
