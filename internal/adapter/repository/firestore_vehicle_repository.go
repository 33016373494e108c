package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"zedorolo/internal/domain/entity"
	"zedorolo/internal/domain/repository"
	"zedorolo/pkg/errors"
)

type firestoreVehicleRepository struct {
	client *firestore.Client
}

func NewFirestoreVehicleRepository(client *firestore.Client) repository.VehicleRepository {
	return &firestoreVehicleRepository{
		client: client,
	}
}

func (r *firestoreVehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	if vehicle.ID == "" {
		doc := r.client.Collection("vehicles").NewDoc()
		vehicle.ID = doc.ID
	}

	now := time.Now()
	if vehicle.CreatedAt.IsZero() {
		vehicle.CreatedAt = now
	}
	vehicle.UpdatedAt = now
	vehicle.BumpedAt = now

	_, err := r.client.Collection("vehicles").Doc(vehicle.ID).Set(ctx, vehicle)
	if err != nil {
		return errors.Internal("Failed to create vehicle", err)
	}

	return nil
}

func (r *firestoreVehicleRepository) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	doc, err := r.client.Collection("vehicles").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Vehicle", err)
		}
		return nil, errors.Internal("Failed to get vehicle", err)
	}

	var vehicle entity.Vehicle
	if err := doc.DataTo(&vehicle); err != nil {
		return nil, errors.Internal("Failed to parse vehicle data", err)
	}

	return &vehicle, nil
}

func (r *firestoreVehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	vehicle.UpdatedAt = time.Now()

	_, err := r.client.Collection("vehicles").Doc(vehicle.ID).Set(ctx, vehicle)
	if err != nil {
		return errors.Internal("Failed to update vehicle", err)
	}

	return nil
}

func (r *firestoreVehicleRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection("vehicles").Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "status", Value: "deleted"},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		return errors.Internal("Failed to soft delete vehicle", err)
	}

	return nil
}

func (r *firestoreVehicleRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection("vehicles").Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Internal("Failed to increment vehicle views", err)
	}

	return nil
}

func (r *firestoreVehicleRepository) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Vehicle, int64, error) {
	query := r.client.Collection("vehicles").Query

	for key, value := range filter {
		switch key {
		case "minPrice":
			query = query.Where("price", ">=", value)
		case "maxPrice":
			query = query.Where("price", "<=", value)
		case "minYear":
			query = query.Where("year", ">=", value)
		default:
			query = query.Where(key, "==", value)
		}
	}
	query = query.Where("deletedAt", "==", nil)

	if sort != "" {
		parts := strings.Split(sort, "_")
		field := parts[0]
		if field == "created" {
			field = "createdAt"
		}
		order := firestore.Asc
		if len(parts) > 1 && parts[1] == "desc" {
			order = firestore.Desc
		}
		query = query.OrderBy(field, order)
	} else {
		query = query.OrderBy("bumpedAt", firestore.Desc)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count vehicles", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var vehicles []*entity.Vehicle

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate vehicles", err)
		}

		var vehicle entity.Vehicle
		if err := doc.DataTo(&vehicle); err != nil {
			return nil, 0, errors.Internal("Failed to parse vehicle data", err)
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, total, nil
}

func (r *firestoreVehicleRepository) SearchByTitle(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Vehicle, int64, error) {
	// Firestore has no full-text search; filter server-side as far as
	// possible and match titles in memory.
	query = strings.ToLower(query)

	baseQuery := r.client.Collection("vehicles").Query.Where("deletedAt", "==", nil)
	for key, value := range filter {
		baseQuery = baseQuery.Where(key, "==", value)
	}

	docs, err := baseQuery.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to search vehicles", err)
	}

	var matched []*entity.Vehicle
	for _, doc := range docs {
		var vehicle entity.Vehicle
		if err := doc.DataTo(&vehicle); err != nil {
			continue
		}

		haystack := strings.ToLower(vehicle.Title + " " + vehicle.Make + " " + vehicle.Model)
		if strings.Contains(haystack, query) {
			matched = append(matched, &vehicle)
		}
	}

	total := int64(len(matched))

	start := offset
	end := offset + limit
	if limit <= 0 {
		end = len(matched)
	}
	if start >= len(matched) {
		return []*entity.Vehicle{}, total, nil
	}
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

func (r *firestoreVehicleRepository) ListByOwnerID(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Vehicle, int64, error) {
	query := r.client.Collection("vehicles").Query.Where("ownerId", "==", ownerID).Where("deletedAt", "==", nil)

	if status != "" {
		query = query.Where("status", "==", status)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count owner vehicles", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var vehicles []*entity.Vehicle

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate owner vehicles", err)
		}

		var vehicle entity.Vehicle
		if err := doc.DataTo(&vehicle); err != nil {
			return nil, 0, errors.Internal("Failed to parse vehicle data", err)
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, total, nil
}
