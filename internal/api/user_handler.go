package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitmyphone-backend-go/internal/core"
	"fitmyphone-backend-go/internal/models"
)

const defaultLeaderboardLimit = 20

// UserHandler handles user profile and administration endpoints.
type UserHandler struct {
	userService core.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: us, logger: logger}
}

// GetCurrentUserProfile handles GET /api/v1/users/me.
func (h *UserHandler) GetCurrentUserProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load user profile", zap.String("userID", userID), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// RegisterFCMToken handles POST /api/v1/users/me/fcm-token. Registering the
// same token twice is a no-op.
func (h *UserHandler) RegisterFCMToken(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.RegisterFCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.userService.RegisterFCMToken(c.Request.Context(), userID, req.Token); err != nil {
		h.logger.Error("failed to register FCM token", zap.String("userID", userID), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Token registered"})
}

// Leaderboard handles GET /api/v1/leaderboard. Results are ordered by points
// descending; ?limit= caps the page size.
func (h *UserHandler) Leaderboard(c *gin.Context) {
	limit := defaultLeaderboardLimit
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'limit' query parameter"})
			return
		}
		limit = parsed
	}

	users, err := h.userService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to load leaderboard", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateRole handles PUT /api/v1/admin/users/:id/role.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	targetID := c.Param("id")

	var req models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), targetID, req.Role)
	if err != nil {
		h.logger.Error("failed to update user role", zap.String("targetID", targetID), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateSuspension handles PUT /api/v1/admin/users/:id/suspension. A suspended
// user can still read but can no longer contribute.
func (h *UserHandler) UpdateSuspension(c *gin.Context) {
	targetID := c.Param("id")

	var req models.UpdateSuspensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	user, err := h.userService.SetSuspension(c.Request.Context(), targetID, *req.IsSuspended)
	if err != nil {
		h.logger.Error("failed to update user suspension", zap.String("targetID", targetID), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
