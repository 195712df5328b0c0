package model

// Health is the body of GET /health.
type Health struct {
	Status    string `json:"status"`
	Version   string `json:"version,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Healthy reports whether the backend declared itself healthy.
func (h Health) Healthy() bool { return h.Status == "healthy" }

// DashboardOverview holds the headline counters of the dashboard.
type DashboardOverview struct {
	TotalProducts  int64    `json:"total_products"`
	TotalUsers     int64    `json:"total_users"`
	TotalBehaviors int64    `json:"total_behaviors"`
	Categories     []string `json:"categories,omitempty"`
}

// CategoryStat counts interactions within one product category.
type CategoryStat struct {
	Views     int64 `json:"views"`
	Clicks    int64 `json:"clicks"`
	Purchases int64 `json:"purchases"`
}

// Total sums all interaction kinds.
func (c CategoryStat) Total() int64 { return c.Views + c.Clicks + c.Purchases }

// DashboardStats is the body of GET /memory/dashboard-stats.
type DashboardStats struct {
	Overview         DashboardOverview       `json:"overview"`
	CategoryStats    map[string]CategoryStat `json:"category_stats"`
	PopularProducts  []Product               `json:"popular_products"`
	RecentActivities []Behavior              `json:"recent_activities"`
}

// AverageRating averages the rating of the popular products, 0 if none.
func (s DashboardStats) AverageRating() float64 {
	if len(s.PopularProducts) == 0 {
		return 0
	}
	var sum float64
	for _, p := range s.PopularProducts {
		sum += p.Rating
	}
	return sum / float64(len(s.PopularProducts))
}

// Product is a catalogue entry.
type Product struct {
	ID            int64    `json:"id,omitempty"`
	ProductID     string   `json:"product_id,omitempty"`
	Name          string   `json:"name"`
	Category      string   `json:"category,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Price         float64  `json:"price"`
	Rating        float64  `json:"rating,omitempty"`
	Description   string   `json:"description,omitempty"`
	StockQuantity int64    `json:"stock_quantity,omitempty"`
	ViewCount     int64    `json:"view_count,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// ProductList is the body of GET /memory/products.
type ProductList struct {
	Products   []Product `json:"products"`
	Total      int64     `json:"total"`
	Categories []string  `json:"categories,omitempty"`
}

// NewProduct is the body of POST /products.
type NewProduct struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	CategoryID  int      `json:"category_id"`
	Brand       string   `json:"brand"`
	Tags        []string `json:"tags"`
}

// CreatedProduct is the response of POST /products.
type CreatedProduct struct {
	Success   bool   `json:"success"`
	ProductID string `json:"product_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Behavior is one recorded user interaction.
type Behavior struct {
	UserID       string `json:"user_id,omitempty"`
	Action       string `json:"action,omitempty"`
	BehaviorType string `json:"behavior_type,omitempty"`
	Category     string `json:"category,omitempty"`
	ProductName  string `json:"product_name,omitempty"`
	Timestamp    string `json:"timestamp,omitempty"`
}

// Kind returns the interaction kind, whichever field carried it.
func (b Behavior) Kind() string {
	if b.Action != "" {
		return b.Action
	}
	return b.BehaviorType
}

// UserProfile is the body of GET /memory/user-profile/{id}.
type UserProfile struct {
	UserID          string         `json:"user_id"`
	Profile         map[string]any `json:"profile,omitempty"`
	RecentBehaviors []Behavior     `json:"recent_behaviors"`
	BehaviorCount   int64          `json:"behavior_count"`
}

// RecommendationRequest is the body of POST /recommendations.
type RecommendationRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Limit     int    `json:"limit"`
	Strategy  string `json:"strategy"`
}

// Recommendation is one recommended product.
type Recommendation struct {
	ProductID            string  `json:"product_id,omitempty"`
	Name                 string  `json:"name"`
	Description          string  `json:"description,omitempty"`
	Category             string  `json:"category,omitempty"`
	Brand                string  `json:"brand,omitempty"`
	Price                float64 `json:"price"`
	Rating               float64 `json:"rating,omitempty"`
	FinalScore           float64 `json:"final_score,omitempty"`
	RecommendationReason string  `json:"recommendation_reason,omitempty"`
}

// RecommendationList is the response of POST /recommendations.
type RecommendationList struct {
	Recommendations []Recommendation `json:"recommendations"`
	Strategy        string           `json:"strategy,omitempty"`
}

// HybridRequest is the body of POST /hybrid-recommendations/recommendations.
type HybridRequest struct {
	UserID    string `json:"user_id"`
	UserInput string `json:"user_input"`
	SessionID string `json:"session_id"`
	Limit     int    `json:"limit"`
	Strategy  string `json:"strategy"`
}

// IntentAnalysis is the intent classification returned with hybrid
// recommendations.
type IntentAnalysis struct {
	IntentType        string    `json:"intent_type"`
	Confidence        float64   `json:"confidence"`
	UrgencyLevel      string    `json:"urgency_level,omitempty"`
	PriceRange        []float64 `json:"price_range,omitempty"`
	ProductCategories []string  `json:"product_categories,omitempty"`
	BrandPreferences  []string  `json:"brand_preferences,omitempty"`
	Keywords          []string  `json:"keywords,omitempty"`
	AnalysisSummary   string    `json:"analysis_summary,omitempty"`
}

// BehaviorProfile summarises a user's history for hybrid recommendations.
type BehaviorProfile struct {
	TotalBehaviors      int64              `json:"total_behaviors"`
	CategoryPreferences map[string]float64 `json:"category_preferences,omitempty"`
	BrandPreferences    map[string]float64 `json:"brand_preferences,omitempty"`
	BehaviorPatterns    map[string]any     `json:"behavior_patterns,omitempty"`
}

// HybridResponse is the response of POST /hybrid-recommendations/recommendations.
type HybridResponse struct {
	IntentAnalysis  IntentAnalysis   `json:"intent_analysis"`
	BehaviorProfile BehaviorProfile  `json:"behavior_profile"`
	Recommendations []Recommendation `json:"recommendations"`
}

// BehaviorRecord is the body of POST /record-behavior.
type BehaviorRecord struct {
	UserID       string         `json:"user_id"`
	SessionID    string         `json:"session_id"`
	BehaviorType string         `json:"behavior_type"`
	BehaviorData map[string]any `json:"behavior_data"`
}

// Ack is a generic success envelope.
type Ack struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// AnalyticsSummary holds advertising metrics over a period.
type AnalyticsSummary struct {
	PeriodDays         int              `json:"period_days"`
	TotalImpressions   int64            `json:"total_impressions"`
	TotalClicks        int64            `json:"total_clicks"`
	ClickThroughRate   float64          `json:"click_through_rate"`
	Conversions        int64            `json:"conversions"`
	ConversionRate     float64          `json:"conversion_rate"`
	Revenue            float64          `json:"revenue"`
	IntentDistribution map[string]int64 `json:"intent_distribution,omitempty"`

	// ConversionByStrategy is the conversion rate percentage per
	// recommendation strategy.
	ConversionByStrategy map[string]float64 `json:"conversion_by_strategy,omitempty"`
}

// AnalyticsOverview is the body of GET /advertising/analytics/overview.
type AnalyticsOverview struct {
	Overview AnalyticsSummary `json:"overview"`
}

// SystemMetrics are host utilisation percentages.
type SystemMetrics struct {
	CPU     float64 `json:"cpu"`
	Memory  float64 `json:"memory"`
	Disk    float64 `json:"disk"`
	Network float64 `json:"network"`
}

// APIMetrics describe backend request traffic.
type APIMetrics struct {
	TotalRequests   int64   `json:"total_requests"`
	ErrorRate       float64 `json:"error_rate"`
	AvgResponseTime float64 `json:"avg_response_time_ms"`
	ActiveUsers     int64   `json:"active_users"`
}

// DatabaseMetrics describe backend storage health.
type DatabaseMetrics struct {
	Connections  int64   `json:"connections"`
	QueryTime    float64 `json:"query_time_ms"`
	CacheHitRate float64 `json:"cache_hit_rate"`
}

// MonitoringMetrics is the body of GET /monitoring/metrics.
type MonitoringMetrics struct {
	System   SystemMetrics   `json:"system"`
	API      APIMetrics      `json:"api"`
	Database DatabaseMetrics `json:"database"`
}
