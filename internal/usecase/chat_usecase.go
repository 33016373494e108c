package usecase

import (
	"context"
	"strings"

	"zedorolo/internal/domain/entity"
	"zedorolo/internal/domain/repository"
	"zedorolo/internal/infrastructure/ratelimit"
	ws "zedorolo/internal/infrastructure/websocket"
	"zedorolo/pkg/errors"
)

const maxMessageLength = 2000

// ChatUseCase runs the message thread that lives under each proposal.
type ChatUseCase struct {
	proposalRepo   repository.ProposalRepository
	userRepo       repository.UserRepository
	notificationUC *NotificationUseCase
	wsManager      *ws.Manager
	rateLimiter    *ratelimit.RateLimiter
}

func NewChatUseCase(
	proposalRepo repository.ProposalRepository,
	userRepo repository.UserRepository,
	notificationUC *NotificationUseCase,
	wsManager *ws.Manager,
	rateLimiter *ratelimit.RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		proposalRepo:   proposalRepo,
		userRepo:       userRepo,
		notificationUC: notificationUC,
		wsManager:      wsManager,
		rateLimiter:    rateLimiter,
	}
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, userID, proposalID, content string) (*entity.Message, error) {
	allowed, waitTime := uc.rateLimiter.Allow(userID, "send_message")
	if !allowed {
		return nil, errors.TooManyRequests("Too many messages sent. Please slow down", waitTime)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.BadRequest("Message content cannot be empty", nil)
	}
	if len(content) > maxMessageLength {
		return nil, errors.BadRequest("Message content is too long", nil)
	}

	proposal, err := uc.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	if !proposal.IsParty(userID) {
		return nil, errors.Forbidden("You don't have access to this conversation", nil)
	}

	// A decided negotiation keeps its history but takes no new messages.
	if proposal.Status.Terminal() {
		return nil, errors.BadRequest("This conversation is closed", nil)
	}

	recipientID := proposal.OtherParty(userID)

	message := &entity.Message{
		ProposalID: proposalID,
		SenderID:   userID,
		Content:    content,
		// A recipient with the thread open sees the message the moment it
		// lands, so it is stored already read.
		IsRead: uc.wsManager.IsViewing(recipientID, proposalID),
	}

	if err := uc.proposalRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	uc.wsManager.Publish(ws.EventNewMessage, message, proposal.ProposerID, proposal.SellerID)

	if !message.IsRead {
		sender, err := uc.userRepo.GetByID(ctx, userID)
		senderName := "Someone"
		if err == nil {
			senderName = sender.Username
		}

		uc.notificationUC.Push(ctx, &entity.Notification{
			UserID:     recipientID,
			Type:       "new_message",
			Title:      "New message from " + senderName,
			Body:       content,
			ProposalID: proposalID,
		})
	}

	return message, nil
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, proposalID string, limit, offset int) ([]*entity.Message, int64, error) {
	proposal, err := uc.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, 0, err
	}

	if !proposal.IsParty(userID) {
		return nil, 0, errors.Forbidden("You don't have access to this conversation", nil)
	}

	return uc.proposalRepo.ListMessages(ctx, proposalID, limit, offset)
}

// MarkThreadRead flips every unread message from the other party and returns
// how many changed. Safe to call repeatedly.
func (uc *ChatUseCase) MarkThreadRead(ctx context.Context, userID, proposalID string) (int, error) {
	proposal, err := uc.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return 0, err
	}

	if !proposal.IsParty(userID) {
		return 0, errors.Forbidden("You don't have access to this conversation", nil)
	}

	return uc.proposalRepo.MarkMessagesRead(ctx, proposalID, userID)
}
