package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitmyphone-backend-go/internal/core"
)

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// respondServiceError maps service sentinel errors to HTTP statuses. Unknown
// errors collapse to a generic 500 so internals never leak to the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrContributionNotFound),
		errors.Is(err, core.ErrAccessoryNotFound),
		errors.Is(err, core.ErrCategoryNotFound),
		errors.Is(err, core.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrAlreadyReviewed),
		errors.Is(err, core.ErrCategoryAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrUserSuspended):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrInvalidStatus),
		errors.Is(err, core.ErrInvalidRole),
		errors.Is(err, core.ErrEmptySearchTerm),
		errors.Is(err, core.ErrMissingModelColumn),
		errors.Is(err, core.ErrEmptyImport):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Operation failed", Details: err.Error()})
	}
}

// requireUserID pulls the authenticated user ID that the auth middleware put
// in the context. A missing ID means the middleware did not run.
func requireUserID(c *gin.Context) (string, bool) {
	rawUserID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return "", false
	}
	userID, ok := rawUserID.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID format in context"})
		return "", false
	}
	return userID, true
}
