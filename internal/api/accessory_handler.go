package api

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitmyphone-backend-go/internal/core"
)

const (
	defaultAnalyticsDays  = 30
	defaultAnalyticsLimit = 20
)

// AccessoryHandler handles accessory lookup, search and live-watch endpoints.
type AccessoryHandler struct {
	searchService core.SearchService
	logger        *zap.Logger
}

// NewAccessoryHandler creates a new AccessoryHandler.
func NewAccessoryHandler(ss core.SearchService, logger *zap.Logger) *AccessoryHandler {
	return &AccessoryHandler{searchService: ss, logger: logger}
}

// List handles GET /api/v1/accessories?category=&q=. Without a query term it
// lists the whole category; with one it runs the compatibility search,
// including the LLM suggestion fallback when nothing matches.
func (h *AccessoryHandler) List(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Query parameter 'category' is required"})
		return
	}

	term := c.Query("q")
	if term == "" {
		accessories, err := h.searchService.ListByCategory(c.Request.Context(), category)
		if err != nil {
			h.logger.Error("failed to list accessories", zap.String("category", category), zap.Error(err))
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, accessories)
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), category, term)
	if err != nil {
		h.logger.Error("search failed", zap.String("category", category), zap.String("term", term), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/v1/accessories/:id.
func (h *AccessoryHandler) Get(c *gin.Context) {
	accessoryID := c.Param("id")

	accessory, err := h.searchService.GetAccessory(c.Request.Context(), accessoryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, accessory)
}

// Watch handles GET /api/v1/accessories/watch?category=. It streams the full
// accessory set of the category as server-sent events: one "accessories" event
// per backend snapshot, starting with the current state.
func (h *AccessoryHandler) Watch(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Query parameter 'category' is required"})
		return
	}

	ctx := c.Request.Context()
	updates, errs := h.searchService.Watch(ctx, category)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case accessories, open := <-updates:
			if !open {
				return false
			}
			c.SSEvent("accessories", accessories)
			return true
		case err, open := <-errs:
			if open && err != nil {
				h.logger.Warn("accessory watch terminated", zap.String("category", category), zap.Error(err))
			}
			return false
		case <-ctx.Done():
			return false
		}
	})
}

// TopSearchTerms handles GET /api/v1/admin/analytics/search-terms. Optional
// ?days= and ?limit= bound the aggregation window and result count.
func (h *AccessoryHandler) TopSearchTerms(c *gin.Context) {
	days := defaultAnalyticsDays
	if rawDays := c.Query("days"); rawDays != "" {
		parsed, err := strconv.Atoi(rawDays)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'days' query parameter"})
			return
		}
		days = parsed
	}

	limit, ok := parseLimitQuery(c, defaultAnalyticsLimit)
	if !ok {
		return
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	terms, err := h.searchService.TopSearchTerms(c.Request.Context(), since, limit)
	if err != nil {
		h.logger.Error("failed to aggregate search terms", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, terms)
}
