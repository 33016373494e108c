package handler

import (
	"github.com/labstack/echo/v4"

	"zedorolo/internal/usecase"
	"zedorolo/pkg/response"
)

type AssistantHandler struct {
	assistantUseCase *usecase.AssistantUseCase
}

func NewAssistantHandler(assistantUseCase *usecase.AssistantUseCase) *AssistantHandler {
	return &AssistantHandler{
		assistantUseCase: assistantUseCase,
	}
}

type assistantChatRequest struct {
	Message   string `json:"message" validate:"required,max=2000"`
	SessionID string `json:"session_id"`
}

func (h *AssistantHandler) Chat(c echo.Context) error {
	var req assistantChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	reply, err := h.assistantUseCase.Chat(c.Request().Context(), userID, usecase.AssistantChatInput{
		Message:   req.Message,
		SessionID: req.SessionID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reply)
}
