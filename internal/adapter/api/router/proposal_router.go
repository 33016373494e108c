package router

import (
	"github.com/labstack/echo/v4"

	"zedorolo/internal/adapter/api/handler"
	"zedorolo/internal/adapter/api/middleware"
)

func SetupProposalRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	proposalHandler := handler.GetProposalHandler()
	chatHandler := handler.GetChatHandler()

	proposals := e.Group("/v1/proposals")
	proposals.Use(authMiddleware.Authenticate)

	proposals.POST("", proposalHandler.Create)
	proposals.GET("", proposalHandler.List)
	proposals.GET("/:id", proposalHandler.Get)
	proposals.POST("/:id/respond", proposalHandler.Respond)

	// The message thread rides on the proposal.
	proposals.POST("/:id/messages", chatHandler.SendMessage)
	proposals.GET("/:id/messages", chatHandler.ListMessages)
	proposals.PUT("/:id/messages/read", chatHandler.MarkRead)
}
