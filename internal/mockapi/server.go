// Package mockapi serves a canned Heimdall API for local use and tests.
package mockapi

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tinytelemetry/heimdall/internal/model"
)

const apiPrefix = "/api/v1"

// Server is the demo backend.
type Server struct {
	addr      string
	catalog   *Catalog
	metrics   *Metrics
	registry  *prometheus.Registry
	logger    *zap.Logger
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
	listener  net.Listener
}

// NewServer creates a demo backend listening on addr.
func NewServer(addr string, logger *zap.Logger) *Server {
	if addr == "" {
		addr = model.DefaultDemoAddr
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:      addr,
		catalog:   NewCatalog(time.Now()),
		metrics:   NewMetrics(reg),
		registry:  reg,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
}

// Catalog exposes the backing data set.
func (s *Server) Catalog() *Catalog { return s.catalog }

// Handler builds the gin engine with every route mounted.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.metrics.Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := r.Group(apiPrefix)
	api.GET("/health", s.handleHealth)
	api.GET("/memory/dashboard-stats", s.handleDashboardStats)
	api.GET("/memory/user-profile/:id", s.handleUserProfile)
	api.GET("/memory/products", s.handleProducts)
	api.POST("/products", s.handleCreateProduct)
	api.POST("/recommendations", s.handleRecommendations)
	api.POST("/hybrid-recommendations/recommendations", s.handleHybrid)
	api.POST("/record-behavior", s.handleRecordBehavior)
	api.GET("/advertising/analytics/overview", s.handleAnalyticsOverview)
	api.GET("/monitoring/metrics", s.handleMonitoring)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
	})
	return r
}

// Start begins serving in the background.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.startTime = time.Now()
	s.logger.Info("demo backend listening", zap.String("addr", listener.Addr().String()))

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("demo backend stopped", zap.Error(err))
		}
	}()
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"version":   "demo",
		"uptime":    time.Since(s.startTime).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleDashboardStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.DashboardStats())
}

func (s *Server) handleUserProfile(c *gin.Context) {
	profile, ok := s.catalog.Profile(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "user not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) handleProducts(c *gin.Context) {
	products := s.catalog.Products()
	c.JSON(http.StatusOK, model.ProductList{
		Products:   products,
		Total:      int64(len(products)),
		Categories: s.catalog.Categories(),
	})
}

func (s *Server) handleCreateProduct(c *gin.Context) {
	var req model.NewProduct
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid JSON body"})
		return
	}
	switch {
	case strings.TrimSpace(req.Name) == "":
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "name is required"})
		return
	case req.Price <= 0:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "price must be positive"})
		return
	case model.Categories[req.CategoryID] == "":
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "unknown category_id"})
		return
	}
	id := s.catalog.AddProduct(req)
	c.JSON(http.StatusOK, model.CreatedProduct{Success: true, ProductID: id, Message: "product created"})
}

func (s *Server) handleRecommendations(c *gin.Context) {
	var req model.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "user_id is required"})
		return
	}
	c.JSON(http.StatusOK, model.RecommendationList{
		Recommendations: s.catalog.Recommend(req.UserID, req.Strategy, req.Limit, nil),
		Strategy:        req.Strategy,
	})
}

func (s *Server) handleHybrid(c *gin.Context) {
	var req model.HybridRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.UserInput) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "user_input is required"})
		return
	}

	categories, brands := s.catalog.MatchCategories(req.UserInput)
	var keywords []string
	for _, w := range strings.Fields(req.UserInput) {
		if len(w) > 3 && len(keywords) < 5 {
			keywords = append(keywords, strings.ToLower(w))
		}
	}
	confidence := 0.55
	if len(categories) > 0 {
		confidence = 0.85
	}

	profile, _ := s.catalog.Profile(req.UserID)
	prefs := map[string]float64{}
	for _, b := range profile.RecentBehaviors {
		prefs[b.Category]++
	}
	for k, v := range prefs {
		prefs[k] = v / float64(len(profile.RecentBehaviors))
	}

	c.JSON(http.StatusOK, model.HybridResponse{
		IntentAnalysis: model.IntentAnalysis{
			IntentType:        "product_search",
			Confidence:        confidence,
			UrgencyLevel:      "medium",
			ProductCategories: categories,
			BrandPreferences:  brands,
			Keywords:          keywords,
			AnalysisSummary:   "Demo backend matched " + strconv.Itoa(len(categories)) + " categories",
		},
		BehaviorProfile: model.BehaviorProfile{
			TotalBehaviors:      profile.BehaviorCount,
			CategoryPreferences: prefs,
		},
		Recommendations: s.catalog.Recommend(req.UserID, req.Strategy, req.Limit, categories),
	})
}

func (s *Server) handleRecordBehavior(c *gin.Context) {
	var req model.BehaviorRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid JSON body"})
		return
	}
	if req.UserID == "" || req.BehaviorType == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "user_id and behavior_type are required"})
		return
	}
	b := model.Behavior{
		UserID:       req.UserID,
		BehaviorType: req.BehaviorType,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
	if v, ok := req.BehaviorData["category"].(string); ok {
		b.Category = v
	}
	if v, ok := req.BehaviorData["product_name"].(string); ok {
		b.ProductName = v
	}
	s.catalog.Record(b)
	c.JSON(http.StatusOK, model.Ack{Success: true, ID: uuid.NewString(), Message: "behavior recorded"})
}

func (s *Server) handleAnalyticsOverview(c *gin.Context) {
	days := model.DefaultAnalyticsDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 365 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "days must be between 1 and 365"})
			return
		}
		days = n
	}

	impressions := int64(1250 * days / 7)
	clicks := impressions * 32 / 1000
	conversions := clicks / 4
	summary := model.AnalyticsSummary{
		PeriodDays:       days,
		TotalImpressions: impressions,
		TotalClicks:      clicks,
		Conversions:      conversions,
		Revenue:          float64(conversions) * 420,
		IntentDistribution: map[string]int64{
			"product_search": impressions * 40 / 100,
			"price_compare":  impressions * 25 / 100,
			"brand_browse":   impressions * 20 / 100,
			"gift_idea":      impressions * 15 / 100,
		},
		ConversionByStrategy: map[string]float64{
			"hybrid":        28.4,
			"collaborative": 24.1,
			"content":       21.7,
			"popular":       16.9,
		},
	}
	if impressions > 0 {
		summary.ClickThroughRate = float64(clicks) / float64(impressions) * 100
	}
	if clicks > 0 {
		summary.ConversionRate = float64(conversions) / float64(clicks) * 100
	}
	c.JSON(http.StatusOK, model.AnalyticsOverview{Overview: summary})
}

func (s *Server) handleMonitoring(c *gin.Context) {
	m := model.SimulatedMonitoring()
	if total, errRate, avg := s.metrics.Totals(); total > 0 {
		m.API.TotalRequests = total
		m.API.ErrorRate = errRate
		m.API.AvgResponseTime = avg
	}
	c.JSON(http.StatusOK, m)
}
