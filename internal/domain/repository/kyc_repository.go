package repository

import (
	"context"

	"zedorolo/internal/domain/entity"
)

type KYCRepository interface {
	Create(ctx context.Context, verification *entity.KYCVerification) error
	GetByID(ctx context.Context, id string) (*entity.KYCVerification, error)
	GetByUserID(ctx context.Context, userID string) (*entity.KYCVerification, error)
	Update(ctx context.Context, verification *entity.KYCVerification) error
	ListByStatus(ctx context.Context, status entity.KYCStatus, limit, offset int) ([]*entity.KYCVerification, int64, error)
}
