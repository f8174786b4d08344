package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitmyphone-backend-go/internal/core"
	"fitmyphone-backend-go/internal/models"
)

const defaultContributionListLimit = 50

// ContributionHandler handles contribution submission and the admin review
// queue endpoints.
type ContributionHandler struct {
	contributionService   core.ContributionService
	reconciliationService core.ReconciliationService
	logger                *zap.Logger
}

// NewContributionHandler creates a new ContributionHandler.
func NewContributionHandler(
	cs core.ContributionService,
	rs core.ReconciliationService,
	logger *zap.Logger,
) *ContributionHandler {
	return &ContributionHandler{
		contributionService:   cs,
		reconciliationService: rs,
		logger:                logger,
	}
}

// Submit handles POST /api/v1/contributions. Any authenticated, non-suspended
// user may submit; the contribution stays pending until an admin reviews it.
func (h *ContributionHandler) Submit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.CreateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	contribution, err := h.contributionService.Submit(c.Request.Context(), userID, req)
	if err != nil {
		h.logger.Error("failed to submit contribution", zap.String("userID", userID), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contribution)
}

// ListMine handles GET /api/v1/contributions/mine.
func (h *ContributionHandler) ListMine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit, ok := parseLimitQuery(c, defaultContributionListLimit)
	if !ok {
		return
	}

	contributions, err := h.contributionService.ListMine(c.Request.Context(), userID, limit)
	if err != nil {
		h.logger.Error("failed to list own contributions", zap.String("userID", userID), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contributions)
}

// List handles GET /api/v1/admin/contributions?status=. Defaults to the
// pending review queue.
func (h *ContributionHandler) List(c *gin.Context) {
	status := c.DefaultQuery("status", models.ContributionStatusPending)

	limit, ok := parseLimitQuery(c, defaultContributionListLimit)
	if !ok {
		return
	}

	contributions, err := h.contributionService.ListByStatus(c.Request.Context(), status, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contributions)
}

// Edit handles PUT /api/v1/admin/contributions/:id. Editing resets the
// contribution to pending; approved contributions cannot be edited.
func (h *ContributionHandler) Edit(c *gin.Context) {
	contributionID := c.Param("id")

	var req models.UpdateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	contribution, err := h.reconciliationService.Edit(c.Request.Context(), contributionID, req)
	if err != nil {
		h.logger.Error("failed to edit contribution", zap.String("contributionID", contributionID), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contribution)
}

// Approve handles POST /api/v1/admin/contributions/:id/approve. The merge,
// point award, master model upsert and status change happen in a single
// transaction; approving twice returns 409.
func (h *ContributionHandler) Approve(c *gin.Context) {
	contributionID := c.Param("id")
	reviewerID, ok := requireUserID(c)
	if !ok {
		return
	}

	// The body is optional; an empty body means the configured default reward.
	var req models.ApproveContributionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
			return
		}
	}

	contribution, err := h.reconciliationService.Approve(c.Request.Context(), contributionID, reviewerID, req.Points)
	if err != nil {
		h.logger.Error("failed to approve contribution",
			zap.String("contributionID", contributionID),
			zap.String("reviewerID", reviewerID),
			zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contribution)
}

// Reject handles POST /api/v1/admin/contributions/:id/reject.
func (h *ContributionHandler) Reject(c *gin.Context) {
	contributionID := c.Param("id")
	reviewerID, ok := requireUserID(c)
	if !ok {
		return
	}

	contribution, err := h.reconciliationService.Reject(c.Request.Context(), contributionID, reviewerID)
	if err != nil {
		h.logger.Error("failed to reject contribution", zap.String("contributionID", contributionID), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contribution)
}

// Delete handles DELETE /api/v1/admin/contributions/:id.
func (h *ContributionHandler) Delete(c *gin.Context) {
	contributionID := c.Param("id")

	if err := h.contributionService.Delete(c.Request.Context(), contributionID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Contribution deleted"})
}

// parseLimitQuery reads the optional ?limit= parameter, writing a 400 response
// itself when the value is malformed.
func parseLimitQuery(c *gin.Context, fallback int) (int, bool) {
	rawLimit := c.Query("limit")
	if rawLimit == "" {
		return fallback, true
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'limit' query parameter"})
		return 0, false
	}
	return limit, true
}
