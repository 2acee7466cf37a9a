package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ArishaMak/sales-bonus/internal/service"
	"github.com/ArishaMak/sales-bonus/internal/store"
	"github.com/ArishaMak/sales-bonus/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	reportService *service.ReportService
}

// NewHandler creates a new HTTP handler
func NewHandler(reportService *service.ReportService) *Handler {
	return &Handler{
		reportService: reportService,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/reports/sellers", h.listSellerReports)
		v1.GET("/reports/sellers/:id", h.getSellerReport)
		v1.GET("/reports/products/top", h.getTopProducts)
		v1.GET("/reports/categories", h.getCategoryBreakdown)
		v1.GET("/reports/dashboard", h.getDashboard)
		v1.POST("/reports/refresh", h.refreshReports)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// recordFilter parses the optional seller and date range query parameters
func recordFilter(c *gin.Context) (store.RecordFilter, bool) {
	var filter store.RecordFilter

	filter.SellerID = c.Query("seller_id")

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
			return filter, false
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
			return filter, false
		}
		filter.To = t
	}

	return filter, true
}

// listSellerReports handles the ranked seller report list
func (h *Handler) listSellerReports(c *gin.Context) {
	filter, ok := recordFilter(c)
	if !ok {
		return
	}

	reports, warnings, err := h.reportService.GetSellerReports(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "No seller statistics available",
			"warnings": warnings,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports":  reports,
		"warnings": warnings,
	})
}

// getSellerReport handles a single seller's report
func (h *Handler) getSellerReport(c *gin.Context) {
	sellerID := c.Param("id")
	if sellerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seller ID"})
		return
	}

	report, err := h.reportService.GetSellerReport(c.Request.Context(), sellerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Seller report not found",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

// getTopProducts handles the global top products rollup
func (h *Handler) getTopProducts(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 20 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit, expected 1-20"})
			return
		}
		limit = parsed
	}

	products, warnings, err := h.reportService.GetTopProducts(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No product statistics available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"warnings": warnings,
	})
}

// getCategoryBreakdown handles the category revenue rollup
func (h *Handler) getCategoryBreakdown(c *gin.Context) {
	filter, ok := recordFilter(c)
	if !ok {
		return
	}

	dashboard, err := h.reportService.GetDashboard(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No category statistics available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": dashboard.Categories,
		"warnings":   dashboard.Warnings,
	})
}

// getDashboard handles the combined dashboard view
func (h *Handler) getDashboard(c *gin.Context) {
	filter, ok := recordFilter(c)
	if !ok {
		return
	}

	dashboard, err := h.reportService.GetDashboard(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No seller statistics available"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// refreshReports requests an asynchronous precompute run
func (h *Handler) refreshReports(c *gin.Context) {
	runID, err := h.reportService.RequestReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to request report run"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status": "requested",
		"run_id": runID,
	})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
