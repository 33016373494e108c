package router

import (
	"github.com/labstack/echo/v4"

	"zedorolo/internal/adapter/api/handler"
)

func SetupWebSocketRouter(e *echo.Echo) {
	webSocketHandler := handler.GetWebSocketHandler()

	// Token arrives as a query parameter; the handler verifies it itself.
	e.GET("/ws", webSocketHandler.HandleWebSocket)
}
