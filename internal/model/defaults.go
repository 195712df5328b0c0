package model

import "time"

// Shared defaults used by the console and the demo backend.
const (
	DefaultBaseURL         = "http://localhost:8002/api/v1"
	DefaultDemoAddr        = "127.0.0.1:8002"
	DefaultStatusInterval  = time.Hour
	DefaultMonitorInterval = 30 * time.Second
	DefaultUserID          = "user_001"
	DefaultStrategy        = "hybrid"
	DefaultAnalyticsDays   = 7
	RecommendationLimit    = 8
	RecentBehaviorLimit    = 10
)

// DemoUsers are the user ids selectable on the behavior and
// recommendation pages.
var DemoUsers = []string{"user_001", "user_002", "user_003", "user_004", "user_005"}

// Strategies are the recommendation strategies the backend accepts.
var Strategies = []string{"hybrid", "collaborative", "content", "popular"}

// AnalyticsPeriods are the selectable analytics windows in days.
var AnalyticsPeriods = []int{7, 30, 90}

// BehaviorTypes are the interaction kinds accepted by /record-behavior.
var BehaviorTypes = []string{"view", "click", "search", "purchase"}

// Categories maps category ids used by POST /products to their names.
var Categories = map[int]string{
	1: "Electronics",
	2: "Apparel",
	3: "Home",
	4: "Outdoor & Sports",
	5: "Beauty",
}

// ActionLabel returns the display label for a behavior kind.
func ActionLabel(kind string) string {
	switch kind {
	case "view":
		return "Viewed"
	case "click":
		return "Clicked"
	case "search":
		return "Searched"
	case "purchase":
		return "Purchased"
	default:
		return kind
	}
}

// PlaceholderDashboard is rendered when the backend cannot be reached and
// no cached snapshot exists.
func PlaceholderDashboard() DashboardStats {
	return DashboardStats{
		Overview: DashboardOverview{
			TotalProducts:  0,
			TotalUsers:     0,
			TotalBehaviors: 0,
		},
		CategoryStats: map[string]CategoryStat{},
	}
}

// PlaceholderAnalytics backs the dashboard's recommendation card when the
// analytics endpoint fails.
func PlaceholderAnalytics() AnalyticsSummary {
	return AnalyticsSummary{
		PeriodDays:       DefaultAnalyticsDays,
		TotalImpressions: 1250,
		ClickThroughRate: 3.2,
		ConversionRate:   0.8,
	}
}

// SampleRecommendations are shown when the recommendation endpoint fails.
func SampleRecommendations() []Recommendation {
	return []Recommendation{
		{Name: "iPhone 15 Pro Max", Description: "Flagship phone with A17 Pro chip", Price: 9999, Rating: 4.8, RecommendationReason: "Popular in Electronics"},
		{Name: "MacBook Pro", Description: "M3 Pro laptop for professionals", Price: 15999, Rating: 4.9, RecommendationReason: "Matches recent searches"},
		{Name: "AirPods Pro", Description: "Active noise cancelling earbuds", Price: 1999, Rating: 4.7, RecommendationReason: "Frequently bought together"},
	}
}

// SimulatedMonitoring is used when the backend exposes no metrics endpoint.
func SimulatedMonitoring() MonitoringMetrics {
	return MonitoringMetrics{
		System:   SystemMetrics{CPU: 45, Memory: 62, Disk: 78, Network: 23},
		API:      APIMetrics{TotalRequests: 15420, ErrorRate: 0.8, AvgResponseTime: 125, ActiveUsers: 342},
		Database: DatabaseMetrics{Connections: 45, QueryTime: 85, CacheHitRate: 92},
	}
}

// IntentExamples seed the intent query prompt.
var IntentExamples = []string{
	"I want a good value laptop",
	"Recommend bluetooth earbuds for running",
	"New phone, budget around 5000",
	"Any good smart watches?",
	"A tablet for watching videos",
}
