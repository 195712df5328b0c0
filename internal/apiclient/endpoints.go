package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tinytelemetry/heimdall/internal/model"
)

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) Result[model.Health] {
	return Do[model.Health](ctx, c, http.MethodGet, "/health", nil)
}

// DashboardStats calls GET /memory/dashboard-stats.
func (c *Client) DashboardStats(ctx context.Context) Result[model.DashboardStats] {
	return Do[model.DashboardStats](ctx, c, http.MethodGet, "/memory/dashboard-stats", nil)
}

// UserProfile calls GET /memory/user-profile/{id}. An unknown user is a
// 404 HTTPError.
func (c *Client) UserProfile(ctx context.Context, userID string) Result[model.UserProfile] {
	return Do[model.UserProfile](ctx, c, http.MethodGet, "/memory/user-profile/"+url.PathEscape(userID), nil)
}

// Products calls GET /memory/products.
func (c *Client) Products(ctx context.Context) Result[model.ProductList] {
	return Do[model.ProductList](ctx, c, http.MethodGet, "/memory/products", nil)
}

// CreateProduct calls POST /products.
func (c *Client) CreateProduct(ctx context.Context, p model.NewProduct) Result[model.CreatedProduct] {
	return Do[model.CreatedProduct](ctx, c, http.MethodPost, "/products", p)
}

// Recommendations calls POST /recommendations.
func (c *Client) Recommendations(ctx context.Context, req model.RecommendationRequest) Result[model.RecommendationList] {
	return Do[model.RecommendationList](ctx, c, http.MethodPost, "/recommendations", req)
}

// HybridRecommendations calls POST /hybrid-recommendations/recommendations.
func (c *Client) HybridRecommendations(ctx context.Context, req model.HybridRequest) Result[model.HybridResponse] {
	return Do[model.HybridResponse](ctx, c, http.MethodPost, "/hybrid-recommendations/recommendations", req)
}

// RecordBehavior calls POST /record-behavior.
func (c *Client) RecordBehavior(ctx context.Context, rec model.BehaviorRecord) Result[model.Ack] {
	return Do[model.Ack](ctx, c, http.MethodPost, "/record-behavior", rec)
}

// AnalyticsOverview calls GET /advertising/analytics/overview?days=N.
func (c *Client) AnalyticsOverview(ctx context.Context, days int) Result[model.AnalyticsOverview] {
	q := url.Values{"days": []string{strconv.Itoa(days)}}
	return Do[model.AnalyticsOverview](ctx, c, http.MethodGet, "/advertising/analytics/overview?"+q.Encode(), nil)
}

// MonitoringMetrics calls GET /monitoring/metrics.
func (c *Client) MonitoringMetrics(ctx context.Context) Result[model.MonitoringMetrics] {
	return Do[model.MonitoringMetrics](ctx, c, http.MethodGet, "/monitoring/metrics", nil)
}
