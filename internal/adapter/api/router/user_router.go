package router

import (
	"github.com/labstack/echo/v4"

	"zedorolo/internal/adapter/api/handler"
	"zedorolo/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/v1/users")
	users.GET("/me", userHandler.GetProfile, authMiddleware.Authenticate)
	users.PATCH("/me", userHandler.UpdateProfile, authMiddleware.Authenticate)
	users.PUT("/me/password", userHandler.UpdatePassword, authMiddleware.Authenticate)
	users.GET("/:id", userHandler.GetPublicProfile)
}
