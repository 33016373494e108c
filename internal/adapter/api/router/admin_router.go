package router

import (
	"github.com/labstack/echo/v4"

	"zedorolo/internal/adapter/api/handler"
	"zedorolo/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("/kyc", adminHandler.ListKYC)
	admin.POST("/kyc/:id/start-review", adminHandler.StartKYCReview)
	admin.GET("/kyc/:id/documents", adminHandler.KYCDocuments)
	admin.POST("/kyc/:id/review", adminHandler.ReviewKYC)

	admin.GET("/vehicles/pending", adminHandler.ListPendingVehicles)
	admin.POST("/vehicles/:id/approve", adminHandler.ApproveVehicle)
	admin.POST("/vehicles/:id/reject", adminHandler.RejectVehicle)

	admin.GET("/categories", adminHandler.ListCategories)
	admin.POST("/categories", adminHandler.CreateCategory)
	admin.PUT("/categories/:id", adminHandler.UpdateCategory)
	admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/status", adminHandler.SetUserStatus)
}
