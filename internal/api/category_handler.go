package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitmyphone-backend-go/internal/core"
	"fitmyphone-backend-go/internal/models"
)

// CategoryHandler handles accessory category endpoints. Listing is public;
// management is admin-only.
type CategoryHandler struct {
	categoryService core.CategoryService
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(cs core.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{categoryService: cs, logger: logger}
}

// List handles GET /api/v1/categories.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Create handles POST /api/v1/admin/categories. Duplicate names return 409.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Delete handles DELETE /api/v1/admin/categories/:id. Deleting a category
// does not touch the accessories that reference it.
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID := c.Param("id")

	if err := h.categoryService.Delete(c.Request.Context(), categoryID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Category deleted"})
}
