package router

import (
	"github.com/labstack/echo/v4"

	"zedorolo/internal/adapter/api/handler"
	"zedorolo/internal/adapter/api/middleware"
)

func SetupKYCRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	kycHandler := handler.GetKYCHandler()

	kyc := e.Group("/v1/kyc")
	kyc.Use(authMiddleware.Authenticate)

	kyc.POST("", kycHandler.Submit)
	kyc.GET("/me", kycHandler.MyVerification)
}
