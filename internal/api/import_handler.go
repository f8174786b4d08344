package api

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitmyphone-backend-go/internal/core"
)

// ImportHandler handles the admin CSV bulk import endpoints. Files arrive as
// multipart uploads under the "file" form field.
type ImportHandler struct {
	importService core.ImportService
	logger        *zap.Logger
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(is core.ImportService, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{importService: is, logger: logger}
}

// ImportAccessories handles POST /api/v1/admin/imports/accessories. Each CSV
// row becomes one accessory document; batches are committed independently, so
// a mid-import failure leaves earlier batches applied.
func (h *ImportHandler) ImportAccessories(c *gin.Context) {
	h.runImport(c, h.importService.ImportAccessories)
}

// ImportMasterModels handles POST /api/v1/admin/imports/master-models.
func (h *ImportHandler) ImportMasterModels(c *gin.Context) {
	h.runImport(c, h.importService.ImportMasterModels)
}

func (h *ImportHandler) runImport(c *gin.Context, importFn func(ctx context.Context, csvData io.Reader) (*core.ImportSummary, error)) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Multipart form field 'file' is required", Details: err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to open uploaded file", Details: err.Error()})
		return
	}
	defer file.Close()

	summary, err := importFn(c.Request.Context(), file)
	if err != nil {
		h.logger.Error("bulk import failed",
			zap.String("path", c.FullPath()),
			zap.String("filename", fileHeader.Filename),
			zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Import completed", Data: summary})
}
