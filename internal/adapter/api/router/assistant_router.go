package router

import (
	"github.com/labstack/echo/v4"

	"zedorolo/internal/adapter/api/handler"
	"zedorolo/internal/adapter/api/middleware"
)

func SetupAssistantRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	assistantHandler := handler.GetAssistantHandler()

	e.POST("/v1/assistant/chat", assistantHandler.Chat, authMiddleware.Authenticate)
}
