package router

import (
	"github.com/labstack/echo/v4"

	"zedorolo/internal/adapter/api/handler"
	"zedorolo/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register, middleware.AuthRateLimit())
	auth.POST("/login", authHandler.Login, middleware.AuthRateLimit())
	auth.POST("/refresh", authHandler.Refresh, middleware.AuthRateLimit())
	auth.POST("/logout", authHandler.Logout, authMiddleware.Authenticate)
	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate)
}
