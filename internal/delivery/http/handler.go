package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenthumb/backend/config"
	"github.com/greenthumb/backend/internal/domain"
	"github.com/greenthumb/backend/internal/infrastructure/feeds"
	"github.com/greenthumb/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service *usecase.ConsolidationService
	store   domain.RunStore
	cfg     *config.Config
	readers map[domain.Source]domain.FeedReader
}

// NewHandler creates a new HTTP handler over the consolidation engine and
// the run store
func NewHandler(service *usecase.ConsolidationService, store domain.RunStore, cfg *config.Config) *Handler {
	return &Handler{
		service: service,
		store:   store,
		cfg:     cfg,
		readers: map[domain.Source]domain.FeedReader{
			domain.SourceStorefront: feeds.NewStorefrontReader(),
			domain.SourceLegacy:     feeds.NewLegacyReader(),
			domain.SourceInventory:  feeds.NewInventoryReader(),
		},
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "greenthumb-backend",
		"version": "1.0.0",
	})
}

// Consolidate runs one batch of records posted in the request body and
// persists the completed run
func (h *Handler) Consolidate(c *gin.Context) {
	var input usecase.ConsolidationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}

	h.runAndRespond(c, input)
}

// consolidateFeedsRequest optionally overrides the configured feed paths
type consolidateFeedsRequest struct {
	StorefrontPath string `json:"storefrontPath"`
	LegacyPath     string `json:"legacyPath"`
	InventoryPath  string `json:"inventoryPath"`
}

// ConsolidateFeeds ingests the configured on-disk exports, runs the engine
// over the combined batch, and persists the completed run. Paths may be
// overridden per request; an empty path skips that feed.
func (h *Handler) ConsolidateFeeds(c *gin.Context) {
	req := consolidateFeedsRequest{
		StorefrontPath: h.cfg.Feeds.StorefrontPath,
		LegacyPath:     h.cfg.Feeds.LegacyPath,
		InventoryPath:  h.cfg.Feeds.InventoryPath,
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid request body: " + err.Error(),
			})
			return
		}
	}

	paths := map[domain.Source]string{
		domain.SourceStorefront: req.StorefrontPath,
		domain.SourceLegacy:     req.LegacyPath,
		domain.SourceInventory:  req.InventoryPath,
	}

	var input usecase.ConsolidationInput
	normalizer := h.service.Normalizer()
	// Fixed ingestion order keeps batches identical across requests
	for _, src := range []domain.Source{domain.SourceStorefront, domain.SourceLegacy, domain.SourceInventory} {
		path := paths[src]
		if path == "" {
			continue
		}
		rows, err := h.readers[src].ReadRows(path)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  err.Error(),
				"source": string(src),
			})
			return
		}
		for _, row := range rows {
			input.Records = append(input.Records, normalizer.Normalize(src, row))
		}
	}

	if h.cfg.Feeds.ImageDir != "" {
		if images, err := feeds.ListCandidateImages(h.cfg.Feeds.ImageDir); err == nil {
			input.CandidateImages = images
		}
	}

	h.runAndRespond(c, input)
}

// runAndRespond runs the engine over one assembled batch, saves the run,
// and writes it back
func (h *Handler) runAndRespond(c *gin.Context, input usecase.ConsolidationInput) {
	run, err := h.service.Consolidate(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoRecords):
			c.JSON(http.StatusBadRequest, gin.H{"error": "no records to consolidate"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if err := h.store.SaveRun(c.Request.Context(), run); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist run: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, run)
}

// GetRun returns one stored run in full
func (h *Handler) GetRun(c *gin.Context) {
	run, err := h.store.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

// ListRuns returns summaries of every stored run, newest first
func (h *Handler) ListRuns(c *gin.Context) {
	summaries, err := h.store.ListRuns(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": summaries})
}
