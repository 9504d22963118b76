package handlers

import (
	"net/http"

	"restaurant_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// SiteHandler serves stats, health and the sitemap.
type SiteHandler struct {
	statsService   services.StatsService
	healthService  services.HealthService
	sitemapService services.SitemapService
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(stats services.StatsService, health services.HealthService, sitemap services.SitemapService) *SiteHandler {
	return &SiteHandler{statsService: stats, healthService: health, sitemapService: sitemap}
}

// GetStats handles the admin dashboard counters.
func (h *SiteHandler) GetStats(c *gin.Context) {
	summary, err := h.statsService.GetSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetStats", "Failed to fetch stats.")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Health reports service health; 503 when the database does not answer.
func (h *SiteHandler) Health(c *gin.Context) {
	report := h.healthService.Check(c.Request.Context())
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

// Sitemap serves sitemap.xml.
func (h *SiteHandler) Sitemap(c *gin.Context) {
	body, err := h.sitemapService.Generate(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Sitemap", "Failed to generate sitemap.")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
