package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"zedorolo/internal/domain/entity"
	"zedorolo/internal/domain/repository"
	"zedorolo/internal/infrastructure/ratelimit"
	"zedorolo/pkg/errors"
)

type VehicleUseCase struct {
	vehicleRepo    repository.VehicleRepository
	categoryRepo   repository.VehicleCategoryRepository
	userRepo       repository.UserRepository
	notificationUC *NotificationUseCase
	rateLimiter    *ratelimit.RateLimiter
}

func NewVehicleUseCase(
	vehicleRepo repository.VehicleRepository,
	categoryRepo repository.VehicleCategoryRepository,
	userRepo repository.UserRepository,
	notificationUC *NotificationUseCase,
	rateLimiter *ratelimit.RateLimiter,
) *VehicleUseCase {
	return &VehicleUseCase{
		vehicleRepo:    vehicleRepo,
		categoryRepo:   categoryRepo,
		userRepo:       userRepo,
		notificationUC: notificationUC,
		rateLimiter:    rateLimiter,
	}
}

type VehicleInput struct {
	CategoryID   string
	Title        string
	Description  string
	Make         string
	Model        string
	Year         int
	Price        float64
	Mileage      int
	City         string
	State        string
	Attributes   map[string]interface{}
	Photos       []string
	AcceptsTrade bool
}

func (uc *VehicleUseCase) CreateVehicle(ctx context.Context, ownerID string, input VehicleInput) (*entity.Vehicle, error) {
	allowed, waitTime := uc.rateLimiter.Allow(ownerID, "create_vehicle")
	if !allowed {
		return nil, errors.TooManyRequests("Too many listings created. Please wait before creating another", waitTime)
	}

	owner, err := uc.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	if !owner.Verified() {
		return nil, errors.Forbidden("You must complete identity verification before publishing a listing", nil)
	}

	category, err := uc.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, errors.NotFound("Vehicle category", err)
	}
	if category.Status != "active" {
		return nil, errors.BadRequest("This category does not accept new listings", nil)
	}

	if err := validateListingInput(input, category); err != nil {
		return nil, err
	}

	now := time.Now()
	vehicle := &entity.Vehicle{
		CategoryID:   input.CategoryID,
		OwnerID:      ownerID,
		Title:        input.Title,
		Description:  input.Description,
		Make:         input.Make,
		Model:        input.Model,
		Year:         input.Year,
		Price:        input.Price,
		Mileage:      input.Mileage,
		City:         input.City,
		State:        input.State,
		Attributes:   input.Attributes,
		Photos:       buildPhotos(input.Photos),
		AcceptsTrade: input.AcceptsTrade,
		Status:       "pending_review",
		CreatedAt:    now,
		UpdatedAt:    now,
		BumpedAt:     now,
	}

	if err := uc.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

func (uc *VehicleUseCase) UpdateVehicle(ctx context.Context, id, ownerID string, input VehicleInput) (*entity.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't own this listing", nil)
	}
	if vehicle.Status == "sold" || vehicle.DeletedAt != nil {
		return nil, errors.BadRequest("This listing can no longer be edited", nil)
	}

	category, err := uc.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, errors.NotFound("Vehicle category", err)
	}

	if err := validateListingInput(input, category); err != nil {
		return nil, err
	}

	vehicle.CategoryID = input.CategoryID
	vehicle.Title = input.Title
	vehicle.Description = input.Description
	vehicle.Make = input.Make
	vehicle.Model = input.Model
	vehicle.Year = input.Year
	vehicle.Price = input.Price
	vehicle.Mileage = input.Mileage
	vehicle.City = input.City
	vehicle.State = input.State
	vehicle.Attributes = input.Attributes
	if input.Photos != nil {
		vehicle.Photos = buildPhotos(input.Photos)
	}
	vehicle.AcceptsTrade = input.AcceptsTrade

	// Edits go back through moderation.
	vehicle.Status = "pending_review"
	vehicle.RejectionReason = ""
	vehicle.UpdatedAt = time.Now()

	if err := uc.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

func (uc *VehicleUseCase) DeleteVehicle(ctx context.Context, id, ownerID string) error {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vehicle.OwnerID != ownerID {
		return errors.Forbidden("You don't own this listing", nil)
	}

	return uc.vehicleRepo.SoftDelete(ctx, id)
}

// GetVehicle returns the listing for a public viewer. Listings outside the
// approved state are only visible to their owner and to admins; a public view
// counts towards the listing's view counter.
func (uc *VehicleUseCase) GetVehicle(ctx context.Context, id, viewerID string, viewerIsAdmin bool) (*entity.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !vehicle.Visible() && vehicle.OwnerID != viewerID && !viewerIsAdmin {
		return nil, errors.NotFound("Vehicle", nil)
	}

	if vehicle.Visible() && vehicle.OwnerID != viewerID {
		if err := uc.vehicleRepo.IncrementViews(ctx, id); err == nil {
			vehicle.Views++
		}
	}

	return vehicle, nil
}

type ListVehiclesInput struct {
	CategoryID   string
	Make         string
	State        string
	City         string
	MinPrice     float64
	MaxPrice     float64
	MinYear      int
	AcceptsTrade *bool
	Sort         string // "price_asc", "price_desc", "year_desc", "created_desc", default recency by bump
}

func (uc *VehicleUseCase) ListVehicles(ctx context.Context, input ListVehiclesInput, limit, offset int) ([]*entity.Vehicle, int64, error) {
	filter := map[string]interface{}{
		"status": "approved",
	}
	if input.CategoryID != "" {
		filter["categoryId"] = input.CategoryID
	}
	if input.Make != "" {
		filter["make"] = input.Make
	}
	if input.State != "" {
		filter["state"] = input.State
	}
	if input.City != "" {
		filter["city"] = input.City
	}
	if input.MinPrice > 0 {
		filter["minPrice"] = input.MinPrice
	}
	if input.MaxPrice > 0 {
		filter["maxPrice"] = input.MaxPrice
	}
	if input.MinYear > 0 {
		filter["minYear"] = input.MinYear
	}
	if input.AcceptsTrade != nil {
		filter["acceptsTrade"] = *input.AcceptsTrade
	}

	return uc.vehicleRepo.List(ctx, filter, input.Sort, limit, offset)
}

func (uc *VehicleUseCase) SearchVehicles(ctx context.Context, query string, input ListVehiclesInput, limit, offset int) ([]*entity.Vehicle, int64, error) {
	if query == "" {
		return uc.ListVehicles(ctx, input, limit, offset)
	}

	filter := map[string]interface{}{
		"status": "approved",
	}
	if input.CategoryID != "" {
		filter["categoryId"] = input.CategoryID
	}
	if input.State != "" {
		filter["state"] = input.State
	}

	return uc.vehicleRepo.SearchByTitle(ctx, query, filter, limit, offset)
}

func (uc *VehicleUseCase) ListMyVehicles(ctx context.Context, ownerID, status string, limit, offset int) ([]*entity.Vehicle, int64, error) {
	return uc.vehicleRepo.ListByOwnerID(ctx, ownerID, status, limit, offset)
}

func (uc *VehicleUseCase) MarkSold(ctx context.Context, id, ownerID string) (*entity.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't own this listing", nil)
	}
	if vehicle.Status != "approved" {
		return nil, errors.BadRequest("Only an active listing can be marked sold", nil)
	}

	vehicle.Status = "sold"
	vehicle.UpdatedAt = time.Now()

	if err := uc.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

const bumpCooldown = 24 * time.Hour

// BumpVehicle refreshes the listing's feed position. One bump per listing per
// day.
func (uc *VehicleUseCase) BumpVehicle(ctx context.Context, id, ownerID string) (*entity.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't own this listing", nil)
	}
	if !vehicle.Visible() {
		return nil, errors.BadRequest("Only an active listing can be bumped", nil)
	}

	if wait := bumpCooldown - time.Since(vehicle.BumpedAt); wait > 0 {
		return nil, errors.TooManyRequests("This listing was bumped recently", wait)
	}

	vehicle.BumpedAt = time.Now()
	vehicle.UpdatedAt = vehicle.BumpedAt

	if err := uc.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// Admin moderation.

func (uc *VehicleUseCase) ListPendingReview(ctx context.Context, limit, offset int) ([]*entity.Vehicle, int64, error) {
	filter := map[string]interface{}{"status": "pending_review"}
	return uc.vehicleRepo.List(ctx, filter, "created_asc", limit, offset)
}

func (uc *VehicleUseCase) ApproveVehicle(ctx context.Context, id string) (*entity.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != "pending_review" {
		return nil, errors.Conflict("This listing is not awaiting review")
	}

	vehicle.Status = "approved"
	vehicle.RejectionReason = ""
	vehicle.UpdatedAt = time.Now()

	if err := uc.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	uc.notificationUC.Push(ctx, &entity.Notification{
		UserID:    vehicle.OwnerID,
		Type:      "vehicle_approved",
		Title:     "Your listing is live",
		Body:      vehicle.Title,
		VehicleID: vehicle.ID,
	})

	return vehicle, nil
}

func (uc *VehicleUseCase) RejectVehicle(ctx context.Context, id, reason string) (*entity.Vehicle, error) {
	if reason == "" {
		return nil, errors.BadRequest("A rejection reason is required", nil)
	}

	vehicle, err := uc.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != "pending_review" {
		return nil, errors.Conflict("This listing is not awaiting review")
	}

	vehicle.Status = "rejected"
	vehicle.RejectionReason = reason
	vehicle.UpdatedAt = time.Now()

	if err := uc.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	uc.notificationUC.Push(ctx, &entity.Notification{
		UserID:    vehicle.OwnerID,
		Type:      "vehicle_rejected",
		Title:     "Your listing was rejected",
		Body:      reason,
		VehicleID: vehicle.ID,
	})

	return vehicle, nil
}

func validateListingInput(input VehicleInput, category *entity.VehicleCategory) error {
	if input.Year < 1900 || input.Year > time.Now().Year()+1 {
		return errors.BadRequest("Invalid model year", nil)
	}
	if input.Price <= 0 {
		return errors.BadRequest("Price must be positive", nil)
	}
	if len(input.Photos) == 0 {
		return errors.BadRequest("At least one photo is required", nil)
	}
	if len(input.Photos) > 20 {
		return errors.BadRequest("A listing holds at most 20 photos", nil)
	}

	return validateAttributes(input.Attributes, category.FilterFields)
}

// validateAttributes checks the listing's category-specific fields against the
// category's filter schema.
func validateAttributes(attributes map[string]interface{}, fields []entity.CategoryFilterField) error {
	for _, field := range fields {
		value, present := attributes[field.Name]
		if !present || value == nil || value == "" {
			if field.Required {
				return errors.BadRequest(fmt.Sprintf("Attribute %q is required for this category", field.Name), nil)
			}
			continue
		}

		switch field.Type {
		case "number", "range":
			switch value.(type) {
			case float64, int, int64:
			default:
				return errors.BadRequest(fmt.Sprintf("Attribute %q must be a number", field.Name), nil)
			}
		case "boolean":
			if _, ok := value.(bool); !ok {
				return errors.BadRequest(fmt.Sprintf("Attribute %q must be a boolean", field.Name), nil)
			}
		case "select":
			str, ok := value.(string)
			if !ok {
				return errors.BadRequest(fmt.Sprintf("Attribute %q must be a string", field.Name), nil)
			}
			if !containsString(field.Options, str) {
				return errors.BadRequest(fmt.Sprintf("Attribute %q must be one of its listed options", field.Name), nil)
			}
		case "text":
			if _, ok := value.(string); !ok {
				return errors.BadRequest(fmt.Sprintf("Attribute %q must be a string", field.Name), nil)
			}
		}
	}

	for name := range attributes {
		if !fieldDefined(fields, name) {
			return errors.BadRequest(fmt.Sprintf("Attribute %q is not defined for this category", name), nil)
		}
	}

	return nil
}

func fieldDefined(fields []entity.CategoryFilterField, name string) bool {
	for _, field := range fields {
		if field.Name == name {
			return true
		}
	}
	return false
}

func containsString(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}

func buildPhotos(urls []string) []entity.VehiclePhoto {
	photos := make([]entity.VehiclePhoto, 0, len(urls))
	for i, url := range urls {
		photos = append(photos, entity.VehiclePhoto{
			ID:           uuid.New().String(),
			URL:          url,
			DisplayOrder: i,
		})
	}
	return photos
}
