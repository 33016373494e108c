package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"zedorolo/internal/adapter/api/handler"
	"zedorolo/internal/adapter/api/middleware"
)

func SetupVehicleRouter(e *echo.Echo, authClient *auth.Client, authMiddleware *middleware.AuthMiddleware) {
	vehicleHandler := handler.GetVehicleHandler()
	categoryHandler := handler.GetCategoryHandler()

	// Public catalog. OptionalAuth lets an owner fetch their own listing
	// while it is still in review.
	vehicles := e.Group("/v1/vehicles")
	vehicles.GET("", vehicleHandler.List, OptionalAuth(authClient))
	vehicles.GET("/search", vehicleHandler.Search, OptionalAuth(authClient))
	vehicles.GET("/:id", vehicleHandler.Get, OptionalAuth(authClient))

	// Owner operations.
	vehicles.POST("", vehicleHandler.Create, authMiddleware.Authenticate)
	vehicles.PUT("/:id", vehicleHandler.Update, authMiddleware.Authenticate)
	vehicles.DELETE("/:id", vehicleHandler.Delete, authMiddleware.Authenticate)
	vehicles.POST("/:id/sold", vehicleHandler.MarkSold, authMiddleware.Authenticate)
	vehicles.POST("/:id/bump", vehicleHandler.Bump, authMiddleware.Authenticate)

	e.GET("/v1/my/vehicles", vehicleHandler.MyVehicles, authMiddleware.Authenticate)

	categories := e.Group("/v1/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
}
