package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unitly-be/internal/config"
	"unitly-be/internal/webutil"
)

// AppController serves the browser-facing configuration and reload entry point
type AppController struct {
	cfg *config.Config
}

func NewAppController(cfg *config.Config) *AppController {
	return &AppController{cfg: cfg}
}

// Config handles GET /config
func (ac *AppController) Config(c *gin.Context) {
	c.JSON(http.StatusOK, ac.cfg.Public())
}

// Reload handles GET /reload by sending the browser to the app root
func (ac *AppController) Reload(c *gin.Context) {
	webutil.ReloadApp(webutil.NewGinNavigator(c), ac.cfg.BaseURL)
}
