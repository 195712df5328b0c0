package tui

import (
	"github.com/tinytelemetry/heimdall/internal/board"
	"github.com/tinytelemetry/heimdall/internal/model"
)

// Board element ids. Pages address the board only through these.
const (
	elSystemStatus = "system-status"
	elLastChecked  = "last-checked"

	elTotalProducts   = "total-products"
	elTotalUsers      = "total-users"
	elTotalBehaviors  = "total-behaviors"
	elAvgRating       = "avg-rating"
	elRecImpressions  = "rec-impressions"
	elRecCTR          = "rec-ctr"
	elRecConversion   = "rec-conversion"
	elPopularProducts = "popular-products"
	elRecentActivity  = "recent-activity"
	elDashboardSource = "dashboard-source"

	elBehaviorUser     = "behavior-user"
	elBehaviorCount    = "behavior-count"
	elBehaviorTimeline = "behavior-timeline"

	elRecUser     = "recommendation-user"
	elRecStrategy = "recommendation-strategy"
	elRecList     = "recommendation-list"
	elRecNotice   = "recommendation-notice"

	elIntentQuery    = "intent-query"
	elIntentSummary  = "intent-summary"
	elIntentBadges   = "intent-badges"
	elIntentProfile  = "intent-profile"
	elIntentRecs     = "intent-recommendations"
	elIntentExamples = "intent-examples"

	elProductsTable = "products-table-body"
	elProductsTotal = "products-total"

	elAnalyticsPeriod = "analytics-period"
	elImpressions     = "total-impressions"
	elClicks          = "total-clicks"
	elCTR             = "click-through-rate"
	elConversions     = "conversions"
	elConversionRate  = "conversion-rate"
	elRevenue         = "revenue"

	elCPU           = "cpu-usage"
	elMemory        = "memory-usage"
	elDisk          = "disk-usage"
	elNetwork       = "network-usage"
	elTotalRequests = "total-requests"
	elErrorRate     = "error-rate"
	elAvgResponse   = "avg-response-time"
	elActiveUsers   = "active-users"
	elDBConnections = "db-connections"
	elQueryTime     = "query-time"
	elCacheHit      = "cache-hit-rate"
	elMonitorSource = "monitoring-source"
)

// Chart canvases.
const (
	cvCategory           = "categoryChart"
	cvBehaviorActions    = "behaviorChart"
	cvBehaviorCategories = "behaviorCategoryChart"
	cvRecScores          = "recommendationScoreChart"
	cvIntentPreferences  = "intentPreferenceChart"
	cvIntentDistribution = "intentDistributionChart"
	cvStrategyConversion = "conversionChart"
	cvCPUHistory         = "cpuHistoryChart"
)

// Board classes.
const (
	classSuccess  = "success"
	classWarning  = "warning"
	classDanger   = "danger"
	classOnline   = "online"
	classOffline  = "offline"
	classFallback = "fallback"
	classError    = "error"
)

// errorPanelID is the inline error panel of a page.
func errorPanelID(p model.PageID) string { return string(p) + "-error" }

// mountChrome registers the sections, navigation and header shared by
// every page.
func mountChrome(b *board.Board) {
	for _, p := range model.AllPages() {
		b.AddSection(string(p))
		b.AddNav(string(p), p.Title())
		b.AddElement(errorPanelID(p), "")
	}
	b.AddElement(elSystemStatus, "checking")
	b.AddElement(elLastChecked, "")
}

// addElements registers ids with empty text.
func addElements(b *board.Board, ids ...string) {
	for _, id := range ids {
		b.AddElement(id, "")
	}
}
