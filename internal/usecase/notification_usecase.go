package usecase

import (
	"context"

	"zedorolo/internal/domain/entity"
	"zedorolo/internal/domain/repository"
	ws "zedorolo/internal/infrastructure/websocket"
	"zedorolo/pkg/errors"
	"zedorolo/pkg/logger"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	wsManager        *ws.Manager
}

func NewNotificationUseCase(notificationRepo repository.NotificationRepository, wsManager *ws.Manager) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		wsManager:        wsManager,
	}
}

// Push stores the notification and mirrors it over the websocket feed. A
// storage failure is logged but never propagated; notifications are
// best-effort side effects of the action that produced them.
func (uc *NotificationUseCase) Push(ctx context.Context, notification *entity.Notification) {
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		logger.Error("Failed to store notification for user %s: %v", notification.UserID, err)
		return
	}

	uc.wsManager.Publish(ws.EventNotification, notification, notification.UserID)
}

func (uc *NotificationUseCase) List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	return uc.notificationRepo.ListByUserID(ctx, userID, unreadOnly, limit, offset)
}

func (uc *NotificationUseCase) CountUnread(ctx context.Context, userID string) (int64, error) {
	return uc.notificationRepo.CountUnread(ctx, userID)
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, id, userID string) error {
	if id == "" {
		return errors.BadRequest("Notification id is required", nil)
	}
	return uc.notificationRepo.MarkRead(ctx, id, userID)
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}
