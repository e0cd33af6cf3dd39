package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unitly-be/internal/controllers"
	"unitly-be/internal/jwt"
	"unitly-be/internal/middleware"
)

// Dependencies groups everything the HTTP surface needs
type Dependencies struct {
	App    *controllers.AppController
	Auth   *controllers.AuthController
	Units  *controllers.UnitController
	Schema *controllers.SchemaController
	QRCode *controllers.QRCodeController

	JWT              *jwt.JWTService
	GeneralRateLimit *middleware.RateLimiter
	AuthRateLimit    *middleware.RateLimiter
}

// NewRouter wires routes onto a gin engine
func NewRouter(d Dependencies) *gin.Engine {
	router := gin.New()
	// UCUM codes such as mg/dL travel escaped as mg%2FdL and must stay one segment
	router.UseRawPath = true
	router.Use(gin.Recovery(), middleware.RequestLogger())

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/config", d.App.Config)
	router.GET("/reload", d.App.Reload)

	api := router.Group("/api/v1")
	api.Use(d.GeneralRateLimit.LimitMiddleware())
	{
		auth := api.Group("/auth")
		auth.Use(d.AuthRateLimit.LimitMiddleware())
		{
			auth.POST("/register", d.Auth.Register)
			auth.POST("/login", d.Auth.Login)
		}

		api.POST("/validate/:entity", d.Schema.Validate)

		api.GET("/units", d.Units.ListUnits)
		api.GET("/units/:code", d.Units.GetUnit)
		api.GET("/qrcode/units/:code", d.QRCode.GenerateUnitQRCode)

		// Protected routes - require JWT authentication
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(d.JWT))
		{
			protected.GET("/me", d.Auth.Me)
			protected.POST("/units", d.Units.CreateUnit)
			protected.POST("/units/import", d.Units.ImportUnits)
			protected.PATCH("/units/:code/approval", d.Units.SetApproval)
		}
	}

	return router
}
