package mockapi

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tinytelemetry/heimdall/internal/model"
)

// Catalog is the demo backend's in-memory data set.
type Catalog struct {
	mu        sync.RWMutex
	products  []model.Product
	behaviors map[string][]model.Behavior
	nextID    int64
}

// NewCatalog returns a catalog seeded with sample products and behavior
// for the demo users.
func NewCatalog(now time.Time) *Catalog {
	c := &Catalog{
		products:  seedProducts(),
		behaviors: make(map[string][]model.Behavior),
	}
	c.nextID = int64(len(c.products))
	for i, user := range model.DemoUsers {
		for j := 0; j < 6+i*2; j++ {
			p := c.products[(i*3+j)%len(c.products)]
			kind := model.BehaviorTypes[(i+j)%len(model.BehaviorTypes)]
			c.behaviors[user] = append(c.behaviors[user], model.Behavior{
				UserID:      user,
				Action:      kind,
				Category:    p.Category,
				ProductName: p.Name,
				Timestamp:   now.Add(-time.Duration(j*37+i*11) * time.Minute).UTC().Format(time.RFC3339),
			})
		}
	}
	return c
}

func seedProducts() []model.Product {
	raw := []struct {
		name, category, brand string
		price, rating         float64
		stock, views          int64
	}{
		{"iPhone 15 Pro Max", "Electronics", "Apple", 9999, 4.8, 120, 5400},
		{"MacBook Pro 14", "Electronics", "Apple", 15999, 4.9, 45, 3900},
		{"AirPods Pro", "Electronics", "Apple", 1999, 4.7, 300, 6100},
		{"Galaxy Watch 6", "Electronics", "Samsung", 2299, 4.5, 80, 2100},
		{"Trail Running Shoes", "Outdoor & Sports", "Salomon", 899, 4.6, 150, 1800},
		{"Down Jacket", "Apparel", "Uniqlo", 599, 4.4, 220, 2400},
		{"Linen Bedding Set", "Home", "Muji", 459, 4.3, 60, 900},
		{"Hydrating Serum", "Beauty", "La Roche-Posay", 289, 4.6, 400, 3100},
		{"Yoga Mat", "Outdoor & Sports", "Lululemon", 388, 4.5, 90, 1200},
		{"Robot Vacuum", "Home", "Roborock", 2999, 4.7, 35, 2700},
	}
	out := make([]model.Product, len(raw))
	for i, r := range raw {
		out[i] = model.Product{
			ID:            int64(i + 1),
			ProductID:     fmt.Sprintf("prod_%03d", i+1),
			Name:          r.name,
			Category:      r.category,
			Brand:         r.brand,
			Price:         r.price,
			Rating:        r.rating,
			StockQuantity: r.stock,
			ViewCount:     r.views,
			Description:   r.brand + " " + r.name,
		}
	}
	return out
}

// Products returns a copy of the catalogue.
func (c *Catalog) Products() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Categories returns the distinct category names, sorted.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := map[string]bool{}
	var out []string
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}

// AddProduct appends a product and returns its id.
func (c *Catalog) AddProduct(np model.NewProduct) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	p := model.Product{
		ID:          c.nextID,
		ProductID:   fmt.Sprintf("prod_%03d", c.nextID),
		Name:        np.Name,
		Category:    model.Categories[np.CategoryID],
		Brand:       np.Brand,
		Price:       np.Price,
		Description: np.Description,
		Tags:        np.Tags,
	}
	c.products = append(c.products, p)
	return p.ProductID
}

// Record appends a behavior for its user.
func (c *Catalog) Record(b model.Behavior) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.behaviors[b.UserID] = append(c.behaviors[b.UserID], b)
}

// Profile returns the user's profile, false when the user is unknown.
func (c *Catalog) Profile(userID string) (model.UserProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	bs, ok := c.behaviors[userID]
	if !ok {
		return model.UserProfile{}, false
	}
	recent := make([]model.Behavior, len(bs))
	copy(recent, bs)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Timestamp > recent[j].Timestamp })
	return model.UserProfile{
		UserID:          userID,
		Profile:         map[string]any{"preferred_category": topKey(categoryCounts(bs))},
		RecentBehaviors: recent,
		BehaviorCount:   int64(len(bs)),
	}, true
}

// DashboardStats aggregates the catalogue and all behavior.
func (c *Catalog) DashboardStats() model.DashboardStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := model.DashboardStats{CategoryStats: map[string]model.CategoryStat{}}
	var all []model.Behavior
	for _, bs := range c.behaviors {
		all = append(all, bs...)
	}
	for _, b := range all {
		cs := stats.CategoryStats[b.Category]
		switch b.Kind() {
		case "view":
			cs.Views++
		case "click", "search":
			cs.Clicks++
		case "purchase":
			cs.Purchases++
		}
		stats.CategoryStats[b.Category] = cs
	}

	popular := make([]model.Product, len(c.products))
	copy(popular, c.products)
	sort.SliceStable(popular, func(i, j int) bool { return popular[i].ViewCount > popular[j].ViewCount })
	if len(popular) > 5 {
		popular = popular[:5]
	}
	stats.PopularProducts = popular

	sort.SliceStable(all, func(i, j int) bool { return all[i].Timestamp > all[j].Timestamp })
	if len(all) > 10 {
		all = all[:10]
	}
	stats.RecentActivities = all

	stats.Overview = model.DashboardOverview{
		TotalProducts:  int64(len(c.products)),
		TotalUsers:     int64(len(c.behaviors)),
		TotalBehaviors: c.behaviorCountLocked(),
	}
	for cat := range stats.CategoryStats {
		stats.Overview.Categories = append(stats.Overview.Categories, cat)
	}
	sort.Strings(stats.Overview.Categories)
	return stats
}

func (c *Catalog) behaviorCountLocked() int64 {
	var n int64
	for _, bs := range c.behaviors {
		n += int64(len(bs))
	}
	return n
}

// Recommend picks up to limit products for the user under strategy.
func (c *Catalog) Recommend(userID, strategy string, limit int, categories []string) []model.Recommendation {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pool := make([]model.Product, 0, len(c.products))
	want := map[string]bool{}
	for _, cat := range categories {
		want[cat] = true
	}
	if strategy == "content" && len(want) == 0 {
		if top := topKey(categoryCounts(c.behaviors[userID])); top != "" {
			want[top] = true
		}
	}
	for _, p := range c.products {
		if len(want) == 0 || want[p.Category] {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, c.products...)
	}

	reason := "Highly rated"
	switch strategy {
	case "popular":
		sort.SliceStable(pool, func(i, j int) bool { return pool[i].ViewCount > pool[j].ViewCount })
		reason = "Trending now"
	case "content":
		sort.SliceStable(pool, func(i, j int) bool { return pool[i].Rating > pool[j].Rating })
		reason = "Similar to items you viewed"
	default:
		sort.SliceStable(pool, func(i, j int) bool { return pool[i].Rating > pool[j].Rating })
	}

	if limit <= 0 || limit > len(pool) {
		limit = len(pool)
	}
	out := make([]model.Recommendation, 0, limit)
	for i, p := range pool[:limit] {
		out = append(out, model.Recommendation{
			ProductID:            p.ProductID,
			Name:                 p.Name,
			Description:          p.Description,
			Category:             p.Category,
			Brand:                p.Brand,
			Price:                p.Price,
			Rating:               p.Rating,
			FinalScore:           1 - float64(i)*0.05,
			RecommendationReason: reason,
		})
	}
	return out
}

// MatchCategories returns the catalogue categories and brands mentioned in
// free text.
func (c *Catalog) MatchCategories(text string) (categories, brands []string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	lower := strings.ToLower(text)
	seenCat, seenBrand := map[string]bool{}, map[string]bool{}
	for _, p := range c.products {
		for _, word := range strings.Fields(strings.ToLower(p.Name + " " + p.Category)) {
			if len(word) > 3 && strings.Contains(lower, word) && !seenCat[p.Category] {
				seenCat[p.Category] = true
				categories = append(categories, p.Category)
			}
		}
		if strings.Contains(lower, strings.ToLower(p.Brand)) && !seenBrand[p.Brand] {
			seenBrand[p.Brand] = true
			brands = append(brands, p.Brand)
		}
	}
	return categories, brands
}

func categoryCounts(bs []model.Behavior) map[string]int {
	out := map[string]int{}
	for _, b := range bs {
		out[b.Category]++
	}
	return out
}

func topKey(m map[string]int) string {
	best, bestN := "", 0
	for k, n := range m {
		if n > bestN || (n == bestN && k < best) {
			best, bestN = k, n
		}
	}
	return best
}
