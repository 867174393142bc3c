package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ravenext/raven-server/internal/ebay"
	"github.com/ravenext/raven-server/internal/extract"
	"github.com/ravenext/raven-server/internal/pipeline"
)

// Handler exposes the pipeline over HTTP.
type Handler struct {
	pipeline *pipeline.Pipeline
}

func NewHandler(p *pipeline.Pipeline) *Handler {
	return &Handler{pipeline: p}
}

// Search handles the main endpoint: full screenshot-to-comparison run.
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	log.Info().Str("sourceUrl", req.SourceURL).Int("imageBytes", len(req.ImageData)).Msg("search request received")

	result, err := h.pipeline.Run(c.Request.Context(), req.ImageData)
	if err != nil {
		status, msg := classifyError(err)
		log.Error().Err(err).Int("status", status).Msg("search request failed")
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Success:   true,
		Extracted: result.Extracted,
		Results: Results{
			Ebay:       result.Buckets.Ebay.Listings,
			Craigslist: result.Buckets.Craigslist.Listings,
		},
		Stats: StatsFromBuckets(result.Buckets),
	})
}

// Extract handles the extraction-only endpoint: OCR and field parsing
// without querying any marketplace.
func (h *Handler) Extract(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	fields, err := h.pipeline.Extract(c.Request.Context(), req.ImageData)
	if err != nil {
		status, msg := classifyError(err)
		log.Error().Err(err).Int("status", status).Msg("extract request failed")
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, ExtractResponse{Success: true, Extracted: fields})
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// classifyError maps pipeline errors to HTTP statuses. Adapter failures
// never reach here; they have already been degraded to empty buckets.
func classifyError(err error) (int, string) {
	var inputErr *extract.InputError
	var extractionErr *extract.ExtractionError
	var authErr *ebay.AuthError

	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest, inputErr.Error()
	case errors.As(err, &extractionErr):
		return http.StatusUnprocessableEntity, extractionErr.Error()
	case errors.As(err, &authErr):
		return http.StatusBadGateway, authErr.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
