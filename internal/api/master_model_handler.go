package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitmyphone-backend-go/internal/core"
	"fitmyphone-backend-go/internal/models"
)

// MasterModelHandler handles the canonical device-name list endpoints.
type MasterModelHandler struct {
	masterModelService core.MasterModelService
	logger             *zap.Logger
}

// NewMasterModelHandler creates a new MasterModelHandler.
func NewMasterModelHandler(ms core.MasterModelService, logger *zap.Logger) *MasterModelHandler {
	return &MasterModelHandler{masterModelService: ms, logger: logger}
}

// List handles GET /api/v1/admin/master-models.
func (h *MasterModelHandler) List(c *gin.Context) {
	masterModels, err := h.masterModelService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list master models", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, masterModels)
}

// Add handles POST /api/v1/admin/master-models. The list is keyed by name, so
// adding an existing model is an idempotent upsert.
func (h *MasterModelHandler) Add(c *gin.Context) {
	var req models.CreateMasterModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.masterModelService.Add(c.Request.Context(), req.Name); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Master model added"})
}
