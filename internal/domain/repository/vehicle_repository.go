package repository

import (
	"context"

	"zedorolo/internal/domain/entity"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	SoftDelete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error

	List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Vehicle, int64, error)
	SearchByTitle(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Vehicle, int64, error)
	ListByOwnerID(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Vehicle, int64, error)
}

type VehicleCategoryRepository interface {
	Create(ctx context.Context, category *entity.VehicleCategory) error
	GetByID(ctx context.Context, id string) (*entity.VehicleCategory, error)
	GetBySlug(ctx context.Context, slug string) (*entity.VehicleCategory, error)
	Update(ctx context.Context, category *entity.VehicleCategory) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.VehicleCategory, int64, error)
}
