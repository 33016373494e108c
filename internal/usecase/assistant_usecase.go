package usecase

import (
	"context"

	"github.com/google/uuid"

	"zedorolo/internal/domain/repository"
	"zedorolo/internal/domain/service"
	"zedorolo/internal/infrastructure/ratelimit"
	"zedorolo/pkg/errors"
	"zedorolo/pkg/logger"
)

type AssistantUseCase struct {
	assistant   *service.AssistantService
	userRepo    repository.UserRepository
	rateLimiter *ratelimit.RateLimiter
}

func NewAssistantUseCase(assistant *service.AssistantService, userRepo repository.UserRepository, rateLimiter *ratelimit.RateLimiter) *AssistantUseCase {
	return &AssistantUseCase{
		assistant:   assistant,
		userRepo:    userRepo,
		rateLimiter: rateLimiter,
	}
}

type AssistantChatInput struct {
	Message   string
	SessionID string
}

// Chat relays one user message to the assistant backend. A missing session ID
// starts a new conversation; the contact behind a new session is mirrored
// into the CRM best-effort.
func (uc *AssistantUseCase) Chat(ctx context.Context, userID string, input AssistantChatInput) (*service.AssistantReply, error) {
	allowed, waitTime := uc.rateLimiter.Allow(userID, "assistant_chat")
	if !allowed {
		return nil, errors.TooManyRequests("Too many assistant messages. Please slow down", waitTime)
	}

	if input.Message == "" {
		return nil, errors.BadRequest("Message cannot be empty", nil)
	}

	newSession := input.SessionID == ""
	if newSession {
		input.SessionID = uuid.New().String()
	}

	reply, err := uc.assistant.SendMessage(ctx, input.Message, input.SessionID)
	if err != nil {
		return nil, err
	}

	if newSession {
		if user, err := uc.userRepo.GetByID(ctx, userID); err == nil {
			contact := service.CRMContact{
				Name:      user.Username,
				Email:     user.Email,
				Phone:     user.Phone,
				SessionID: input.SessionID,
			}
			if err := uc.assistant.SyncContact(ctx, contact); err != nil {
				logger.Warn("CRM contact sync failed for user %s: %v", userID, err)
			}
		}
	}

	return reply, nil
}
