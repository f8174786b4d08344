package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitmyphone-backend-go/internal/middleware"
)

// Handlers bundles every handler the router needs.
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Accessory    *AccessoryHandler
	Contribution *ContributionHandler
	Category     *CategoryHandler
	MasterModel  *MasterModelHandler
	Import       *ImportHandler
	Static       *StaticHandler
}

// SetupRoutes registers every route of the application on the given engine.
// Reads of public catalog data need no token; anything that writes, or that
// reads per-user data, goes through token verification; the admin group
// additionally re-checks the caller's role on every request.
func SetupRoutes(router *gin.Engine, h Handlers, authMW *middleware.AuthMiddleware) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/sitemap.xml", h.Static.Sitemap)
	router.GET("/robots.txt", h.Static.Robots)

	v1 := router.Group("/api/v1")

	// Public catalog reads. The search experience works without an account.
	v1.GET("/categories", h.Category.List)
	v1.GET("/accessories", h.Accessory.List)
	v1.GET("/accessories/watch", h.Accessory.Watch)
	v1.GET("/accessories/:id", h.Accessory.Get)
	v1.GET("/leaderboard", h.User.Leaderboard)

	// Authenticated user routes.
	authed := v1.Group("")
	authed.Use(authMW.VerifyToken())
	{
		authed.POST("/users/initialize", h.Auth.InitializeUserProfile)
		authed.GET("/users/me", h.User.GetCurrentUserProfile)
		authed.POST("/users/me/fcm-token", h.User.RegisterFCMToken)

		authed.POST("/contributions", h.Contribution.Submit)
		authed.GET("/contributions/mine", h.Contribution.ListMine)
	}

	// Admin routes. RequireAdmin reloads the user document per request.
	admin := v1.Group("/admin")
	admin.Use(authMW.VerifyToken(), authMW.RequireAdmin())
	{
		admin.GET("/contributions", h.Contribution.List)
		admin.PUT("/contributions/:id", h.Contribution.Edit)
		admin.POST("/contributions/:id/approve", h.Contribution.Approve)
		admin.POST("/contributions/:id/reject", h.Contribution.Reject)
		admin.DELETE("/contributions/:id", h.Contribution.Delete)

		admin.POST("/categories", h.Category.Create)
		admin.DELETE("/categories/:id", h.Category.Delete)

		admin.GET("/master-models", h.MasterModel.List)
		admin.POST("/master-models", h.MasterModel.Add)

		admin.POST("/imports/accessories", h.Import.ImportAccessories)
		admin.POST("/imports/master-models", h.Import.ImportMasterModels)

		admin.PUT("/users/:id/role", h.User.UpdateRole)
		admin.PUT("/users/:id/suspension", h.User.UpdateSuspension)

		admin.GET("/analytics/search-terms", h.Accessory.TopSearchTerms)
	}
}
