package middleware

import (
	"log"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"fitmyphone-backend-go/internal/core"
)

// ErrorResponse is a local definition for sending standardized error messages.
// It mirrors the one in internal/api/dto_models.go to avoid import cycles.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AuthMiddleware provides Gin middleware for Firebase token authentication and
// server-verified role checks. Authorization is never derived from anything
// the client stores locally; every admin request re-checks the user document.
type AuthMiddleware struct {
	firebaseAuthClient *auth.Client
	userService        core.UserService
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
// It panics if the firebaseAuthClient is nil, as this is a critical setup dependency.
func NewAuthMiddleware(fbAuthClient *auth.Client, userService core.UserService) *AuthMiddleware {
	if fbAuthClient == nil {
		log.Fatal("CRITICAL_ERROR: Firebase Auth client is not initialized for AuthMiddleware.")
		panic("Firebase Auth client is not initialized for AuthMiddleware")
	}
	return &AuthMiddleware{firebaseAuthClient: fbAuthClient, userService: userService}
}

// VerifyToken verifies a Firebase ID token from the Authorization header.
// If valid, it sets user information in the Gin context.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header format must be 'Bearer {token}'"})
			return
		}
		idToken := parts[1]

		token, err := m.firebaseAuthClient.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			log.Printf("AuthMiddleware: Error verifying Firebase ID token: %v", err)
			// Expired or revoked tokens get a specific remediation message;
			// everything else stays generic for security.
			if strings.Contains(err.Error(), "expired") || strings.Contains(err.Error(), "revoked") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
					Error:   "Authentication token expired",
					Details: "Please sign out and sign in again.",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authentication token"})
			return
		}

		// Token is valid. Set user information in context for downstream handlers.
		c.Set("userID", token.UID)
		if email, ok := token.Claims["email"].(string); ok {
			c.Set("userEmail", email)
		}
		if name, ok := token.Claims["name"].(string); ok {
			c.Set("userDisplayName", name)
		}
		if picture, ok := token.Claims["picture"].(string); ok {
			c.Set("userPhotoURL", picture)
		}

		c.Next()
	}
}

// RequireAdmin gates a route behind the admin role. It must run after
// VerifyToken. The role is read from the user document on every request, so a
// demotion or suspension takes effect immediately.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
			return
		}

		user, err := m.userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			log.Printf("AuthMiddleware: failed to load user '%s' for admin check: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Access denied"})
			return
		}
		if user.IsSuspended || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Access denied"})
			return
		}

		c.Set("adminUser", user)
		c.Next()
	}
}
