package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"readlytics/internal/analytics"
	"readlytics/internal/config"
	"readlytics/internal/filter"
	"readlytics/internal/models"
	"readlytics/internal/refresher"
	"readlytics/internal/security"
	"readlytics/internal/web"

	"github.com/gin-gonic/gin"
)

type Server struct {
	router        *gin.Engine
	engine        *analytics.Engine
	refresher     *refresher.Refresher
	port          int
	spaServer     *web.SPAServer
	swaggerServer *web.SwaggerServer
}

func NewServer(engine *analytics.Engine, refresher *refresher.Refresher, cfg *config.Config) *Server {
	router := gin.Default()

	// Load HTML templates from filesystem (only if SPA is enabled)
	if cfg.EnableSPA {
		router.LoadHTMLGlob("internal/web/templates/*")
	}

	// Setup security middleware
	securityConfig := &security.SecurityConfig{
		EnableRateLimit:       cfg.Security.EnableRateLimit,
		RateLimitPerSecond:    cfg.Security.RateLimitPerSecond,
		RateLimitBurst:        cfg.Security.RateLimitBurst,
		EnableCORS:            cfg.Security.EnableCORS,
		AllowedOrigins:        cfg.Security.AllowedOrigins,
		EnableSecurityHeaders: cfg.Security.EnableSecurityHeaders,
		MaxRequestSize:        cfg.Security.MaxRequestSize,
		EnableRequestID:       cfg.Security.EnableRequestID,
	}
	security.SetupSecurityMiddleware(router, securityConfig)

	// Create web servers
	spaServer := web.NewSPAServer(cfg.EnableSPA)
	swaggerServer := web.NewSwaggerServer(cfg.EnableSwagger)

	server := &Server{
		router:        router,
		engine:        engine,
		refresher:     refresher,
		port:          cfg.Port,
		spaServer:     spaServer,
		swaggerServer: swaggerServer,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.healthCheck)

	// API routes
	api := s.router.Group("/api/v1")
	{
		api.GET("/summary", s.getSummary)
		api.GET("/filters", s.getFilterOptions)
		api.GET("/dataset/info", s.getDatasetInfo)
		api.POST("/refresh", s.refreshDataset)

		api.GET("/readers/positions", s.getReaderPositions)
		api.GET("/readers/activity", s.getReaderActivity)
		api.GET("/readers/countries", s.getReaderCountries)

		api.GET("/articles", s.queryArticles)
		api.GET("/articles/topics", s.getArticleTopics)
		api.GET("/articles/keywords", s.getArticleKeywords)
		api.GET("/articles/languages", s.getArticleLanguages)
		api.GET("/articles/top", s.getTopArticles)

		api.GET("/authors/top", s.getTopAuthors)

		// Refresher control endpoints
		api.GET("/refresher/status", s.getRefresherStatus)
		api.POST("/refresher/reload", s.forceReload)
	}

	// Register web interfaces
	s.spaServer.RegisterRoutes(s.router)
	s.swaggerServer.RegisterRoutes(s.router)
}

func (s *Server) Start() error {
	return s.router.Run(":" + strconv.Itoa(s.port))
}

// StartWithContext runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) StartWithContext(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(s.port),
		Handler: s.router,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return ctx.Err()
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service":          "readlytics",
		"refresher_active": s.refresher.IsRunning(),
	})
}

// parseFilters reads the common filter selection from the query string.
func parseFilters(c *gin.Context) (analytics.Filters, error) {
	window, err := filter.ParseWindow(c.DefaultQuery("window", "all"))
	if err != nil {
		return analytics.Filters{}, err
	}

	return analytics.Filters{
		Country:  c.DefaultQuery("country", filter.All),
		Industry: c.DefaultQuery("industry", filter.All),
		Window:   window,
	}, nil
}

func (s *Server) getSummary(c *gin.Context) {
	f, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := s.engine.Summary(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (s *Server) getFilterOptions(c *gin.Context) {
	options, err := s.engine.FilterOptions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, options)
}

func (s *Server) getDatasetInfo(c *gin.Context) {
	info, err := s.engine.Info()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}

func (s *Server) refreshDataset(c *gin.Context) {
	if err := s.engine.Refresh(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dataset refreshed successfully",
	})
}

func (s *Server) getReaderPositions(c *gin.Context) {
	s.respondKeyCounts(c, func(f analytics.Filters) ([]models.KeyCount, error) {
		return s.engine.TopPositions(f, analytics.PositionN)
	})
}

func (s *Server) getReaderActivity(c *gin.Context) {
	s.respondKeyCounts(c, s.engine.ActivityBreakdown)
}

func (s *Server) getReaderCountries(c *gin.Context) {
	s.respondKeyCounts(c, s.engine.CountryCounts)
}

func (s *Server) getArticleKeywords(c *gin.Context) {
	s.respondKeyCounts(c, func(f analytics.Filters) ([]models.KeyCount, error) {
		return s.engine.TopKeywords(f, analytics.TermN)
	})
}

func (s *Server) getArticleLanguages(c *gin.Context) {
	s.respondKeyCounts(c, s.engine.Languages)
}

func (s *Server) getArticleTopics(c *gin.Context) {
	s.respondKeyTotals(c, func(f analytics.Filters) ([]models.KeyTotal, error) {
		return s.engine.TopTopics(f, analytics.TopicN)
	})
}

func (s *Server) getTopAuthors(c *gin.Context) {
	s.respondKeyTotals(c, func(f analytics.Filters) ([]models.KeyTotal, error) {
		return s.engine.TopAuthors(f, analytics.AuthorN)
	})
}

func (s *Server) getTopArticles(c *gin.Context) {
	f, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	articles, err := s.engine.TopArticlesList(f, analytics.ArticleN)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"count":    len(articles),
	})
}

func (s *Server) queryArticles(c *gin.Context) {
	f, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Parse OData query parameters
	query := &models.Query{
		Filter:  c.Query("$filter"),
		OrderBy: c.Query("$orderby"),
		Select:  parseSelectFields(c.Query("$select")),
	}

	// Parse search terms (comma-separated)
	if searchStr := c.Query("$search"); searchStr != "" {
		searchTerms := strings.Split(searchStr, ",")
		for i, term := range searchTerms {
			searchTerms[i] = strings.TrimSpace(term)
		}
		query.Search = searchTerms
	}

	if topStr := c.Query("$top"); topStr != "" {
		if top, err := strconv.Atoi(topStr); err == nil {
			query.Top = top
		}
	}

	if skipStr := c.Query("$skip"); skipStr != "" {
		if skip, err := strconv.Atoi(skipStr); err == nil {
			query.Skip = skip
		}
	}

	set, err := s.engine.QueryArticles(f, query)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, set)
}

func (s *Server) getRefresherStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"is_running":    s.refresher.IsRunning(),
		"last_reloaded": s.refresher.LastReloaded(),
	})
}

func (s *Server) forceReload(c *gin.Context) {
	if err := s.refresher.Reload(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dataset reload initiated successfully",
	})
}

func (s *Server) respondKeyCounts(c *gin.Context, fn func(analytics.Filters) ([]models.KeyCount, error)) {
	f, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := fn(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

func (s *Server) respondKeyTotals(c *gin.Context, fn func(analytics.Filters) ([]models.KeyTotal, error)) {
	f, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := fn(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// parseSelectFields parses the $select parameter and returns a slice of field names
func parseSelectFields(selectStr string) []string {
	if selectStr == "" {
		return nil
	}

	// Split by comma and trim whitespace
	fields := strings.Split(selectStr, ",")
	result := make([]string, 0, len(fields))

	for _, field := range fields {
		trimmed := strings.TrimSpace(field)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
