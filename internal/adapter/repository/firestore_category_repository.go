package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"zedorolo/internal/domain/entity"
	"zedorolo/internal/domain/repository"
	"zedorolo/pkg/errors"
)

type firestoreCategoryRepository struct {
	client *firestore.Client
}

func NewFirestoreCategoryRepository(client *firestore.Client) repository.VehicleCategoryRepository {
	return &firestoreCategoryRepository{
		client: client,
	}
}

func (r *firestoreCategoryRepository) Create(ctx context.Context, category *entity.VehicleCategory) error {
	if category.ID == "" {
		doc := r.client.Collection("vehicle_categories").NewDoc()
		category.ID = doc.ID
	}

	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now

	_, err := r.client.Collection("vehicle_categories").Doc(category.ID).Set(ctx, category)
	if err != nil {
		return errors.Internal("Failed to create vehicle category", err)
	}

	return nil
}

func (r *firestoreCategoryRepository) GetByID(ctx context.Context, id string) (*entity.VehicleCategory, error) {
	doc, err := r.client.Collection("vehicle_categories").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Vehicle category", err)
		}
		return nil, errors.Internal("Failed to get vehicle category", err)
	}

	var category entity.VehicleCategory
	if err := doc.DataTo(&category); err != nil {
		return nil, errors.Internal("Failed to parse vehicle category data", err)
	}

	return &category, nil
}

func (r *firestoreCategoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.VehicleCategory, error) {
	iter := r.client.Collection("vehicle_categories").Where("slug", "==", slug).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Vehicle category", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query vehicle category", err)
	}

	var category entity.VehicleCategory
	if err := doc.DataTo(&category); err != nil {
		return nil, errors.Internal("Failed to parse vehicle category data", err)
	}

	return &category, nil
}

func (r *firestoreCategoryRepository) Update(ctx context.Context, category *entity.VehicleCategory) error {
	category.UpdatedAt = time.Now()

	_, err := r.client.Collection("vehicle_categories").Doc(category.ID).Set(ctx, category)
	if err != nil {
		return errors.Internal("Failed to update vehicle category", err)
	}

	return nil
}

func (r *firestoreCategoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("vehicle_categories").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete vehicle category", err)
	}

	return nil
}

func (r *firestoreCategoryRepository) List(ctx context.Context, status string, limit, offset int) ([]*entity.VehicleCategory, int64, error) {
	query := r.client.Collection("vehicle_categories").Query
	if status != "" {
		query = query.Where("status", "==", status)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count vehicle categories", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("name", firestore.Asc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var categories []*entity.VehicleCategory

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate vehicle categories", err)
		}

		var category entity.VehicleCategory
		if err := doc.DataTo(&category); err != nil {
			return nil, 0, errors.Internal("Failed to parse vehicle category data", err)
		}
		categories = append(categories, &category)
	}

	return categories, total, nil
}
