package model

import "fmt"

// PageID identifies one of the console's top-level pages.
type PageID string

const (
	PageDashboard       PageID = "dashboard"
	PageUserBehavior    PageID = "user-behavior"
	PageRecommendations PageID = "recommendations"
	PageIntentAnalysis  PageID = "intent-analysis"
	PageProducts        PageID = "products"
	PageAnalytics       PageID = "analytics"
	PageMonitoring      PageID = "monitoring"
)

var pageOrder = []PageID{
	PageDashboard,
	PageUserBehavior,
	PageRecommendations,
	PageIntentAnalysis,
	PageProducts,
	PageAnalytics,
	PageMonitoring,
}

var pageTitles = map[PageID]string{
	PageDashboard:       "Dashboard",
	PageUserBehavior:    "User Behavior",
	PageRecommendations: "Recommendations",
	PageIntentAnalysis:  "Intent Analysis",
	PageProducts:        "Products",
	PageAnalytics:       "Analytics",
	PageMonitoring:      "Monitoring",
}

// AllPages returns every page in navigation order.
func AllPages() []PageID {
	out := make([]PageID, len(pageOrder))
	copy(out, pageOrder)
	return out
}

// Valid reports whether p is a known page.
func (p PageID) Valid() bool {
	_, ok := pageTitles[p]
	return ok
}

// Title returns the human-readable page name.
func (p PageID) Title() string {
	if t, ok := pageTitles[p]; ok {
		return t
	}
	return string(p)
}

// Index returns the position of p in navigation order, or -1.
func (p PageID) Index() int {
	for i, id := range pageOrder {
		if id == p {
			return i
		}
	}
	return -1
}

// ParsePageID validates a page name from config or flags.
func ParsePageID(s string) (PageID, error) {
	p := PageID(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown page %q", s)
	}
	return p, nil
}
