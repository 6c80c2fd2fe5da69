// Package handlers exposes the scrape and VIN-analysis pipeline over HTTP.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vinscout/internal/analysis"
	"vinscout/internal/models"
	"vinscout/internal/scraper"
	"vinscout/internal/util"
	"vinscout/internal/validation"
)

// maxBatchSize caps one import-urls request; batches run sequentially so
// unbounded input would hold a worker for minutes.
const maxBatchSize = 10

// batchPause spaces sequential scrapes so batch imports do not hammer the
// target sites.
const batchPause = time.Second

type Handler struct {
	registry *scraper.Registry
	engine   *analysis.Engine
	budget   time.Duration
}

// NewHandler wires the HTTP surface over the source registry and analysis
// engine. budget is the outer ceiling for one VIN analysis request.
func NewHandler(registry *scraper.Registry, engine *analysis.Engine, budget time.Duration) *Handler {
	return &Handler{registry: registry, engine: engine, budget: budget}
}

type vinRequest struct {
	VIN string `json:"vin" binding:"required"`
}

type importRequest struct {
	URL string `json:"url" binding:"required"`
}

type importBatchRequest struct {
	URLs []string `json:"urls" binding:"required"`
}

// ImportResult is one entry of a batch import response: either a vehicle
// or a per-URL error message, never both.
type ImportResult struct {
	URL     string                 `json:"url"`
	Vehicle *models.ScrapedVehicle `json:"vehicle,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// AnalyzeVIN godoc
// @Summary Run a full VIN analysis
// @Description Decodes the VIN, checks open recalls, scrapes the service history and scores the result. Served from cache when a fresh analysis exists.
// @Tags vin
// @Accept json
// @Produce json
// @Param request body vinRequest true "VIN to analyze"
// @Success 200 {object} models.VinAnalysis
// @Failure 400 {object} map[string]string "error: invalid VIN"
// @Failure 504 {object} map[string]string "error: analysis timed out"
// @Router /api/vin [post]
func (h *Handler) AnalyzeVIN(c *gin.Context) {
	var req vinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VIN required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.budget)
	defer cancel()

	result, err := h.engine.RunAnalysis(ctx, req.VIN)
	if err != nil {
		if errors.Is(err, analysis.ErrInvalidVIN) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		util.SafeErrorResponse(c, http.StatusGatewayTimeout, "Analysis Timed Out or Failed", err)
		return
	}
	if ctx.Err() != nil {
		util.SafeErrorResponse(c, http.StatusGatewayTimeout, "Analysis Timed Out or Failed", ctx.Err())
		return
	}

	c.JSON(http.StatusOK, result)
}

// ImportURL godoc
// @Summary Import a vehicle listing by URL
// @Description Dispatches the URL to the matching source adapter and returns the normalized vehicle record.
// @Tags import
// @Accept json
// @Produce json
// @Param request body importRequest true "Listing URL"
// @Success 200 {object} map[string]interface{} "success, vehicle"
// @Failure 400 {object} map[string]string "error: invalid URL"
// @Failure 422 {object} map[string]string "error: unsupported site"
// @Failure 502 {object} map[string]string "error: scrape failed"
// @Router /api/import-url [post]
func (h *Handler) ImportURL(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL provided"})
		return
	}
	if err := validation.ValidateListingURL(req.URL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := h.registry.ScrapeVehicle(c.Request.Context(), req.URL)
	if err != nil {
		h.respondScrapeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "vehicle": vehicle})
}

// ImportURLBatch godoc
// @Summary Import several vehicle listings by URL
// @Description Scrapes each URL in order, one at a time. Failed URLs report a per-entry error while successful ones still return vehicles.
// @Tags import
// @Accept json
// @Produce json
// @Param request body importBatchRequest true "Listing URLs"
// @Success 200 {object} map[string]interface{} "results, imported, failed"
// @Failure 400 {object} map[string]string "error: invalid request"
// @Router /api/import-urls [post]
func (h *Handler) ImportURLBatch(c *gin.Context) {
	var req importBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.URLs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one URL required"})
		return
	}
	if len(req.URLs) > maxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Too many URLs in one batch"})
		return
	}

	results := make([]ImportResult, 0, len(req.URLs))
	imported := 0

	// Deliberately sequential: simpler progress semantics and no burst of
	// traffic against the listing sites.
	for i, url := range req.URLs {
		if i > 0 {
			time.Sleep(batchPause)
		}

		entry := ImportResult{URL: url}
		if err := validation.ValidateListingURL(url); err != nil {
			entry.Error = err.Error()
		} else if vehicle, err := h.registry.ScrapeVehicle(c.Request.Context(), url); err != nil {
			entry.Error = scrapeErrorMessage(err)
		} else {
			entry.Vehicle = vehicle
			imported++
		}
		results = append(results, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"results":  results,
		"imported": imported,
		"failed":   len(results) - imported,
	})
}

// Health godoc
// @Summary Health check
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) respondScrapeError(c *gin.Context, err error) {
	var noSource *scraper.NoSourceError
	if errors.As(err, &noSource) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "This site is not supported yet"})
		return
	}

	var fetchErr *scraper.FetchError
	if errors.As(err, &fetchErr) {
		util.SafeErrorResponse(c, http.StatusBadGateway, "The listing page could not be fetched", err)
		return
	}

	util.SafeErrorResponse(c, http.StatusBadGateway, "Failed to scrape URL", err)
}

func scrapeErrorMessage(err error) string {
	var noSource *scraper.NoSourceError
	if errors.As(err, &noSource) {
		return "This site is not supported yet"
	}
	var fetchErr *scraper.FetchError
	if errors.As(err, &fetchErr) {
		return "The listing page could not be fetched"
	}
	return "Failed to scrape URL"
}
