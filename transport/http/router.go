package http

import (
	"github.com/gin-gonic/gin"

	"github.com/layer-3/clickcha/service"
)

// RouterConfig holds the transport-level settings.
type RouterConfig struct {
	// APIPrefix is prepended to the captcha routes, e.g. "/api".
	APIPrefix string

	// AllowedOrigins configures CORS; "*" allows any origin.
	AllowedOrigins []string

	// StaticDir, when non-empty, is served under /static.
	StaticDir string
}

// SetupRouter sets up the Gin router
func SetupRouter(cfg RouterConfig, captchaService *service.CaptchaService) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware(cfg.AllowedOrigins))

	if cfg.StaticDir != "" {
		router.Static("/static", cfg.StaticDir)
	}

	handlers := NewCaptchaHandlers(captchaService)

	api := router.Group(cfg.APIPrefix)
	{
		api.GET("/captcha", handlers.Generate)
		api.POST("/captcha/verify", handlers.Verify)
	}

	return router
}
