package usecase

import (
	"context"
	"strings"

	"zedorolo/internal/domain/entity"
	"zedorolo/internal/domain/repository"
	"zedorolo/pkg/errors"
)

type CategoryUseCase struct {
	categoryRepo repository.VehicleCategoryRepository
	vehicleRepo  repository.VehicleRepository
}

func NewCategoryUseCase(categoryRepo repository.VehicleCategoryRepository, vehicleRepo repository.VehicleRepository) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		vehicleRepo:  vehicleRepo,
	}
}

type CategoryInput struct {
	Name         string
	Slug         string
	Description  string
	Icon         string
	FilterFields []entity.CategoryFilterField
	Status       string
}

var filterFieldTypes = map[string]bool{
	"text":    true,
	"number":  true,
	"select":  true,
	"boolean": true,
	"range":   true,
}

func validateFilterFields(fields []entity.CategoryFilterField) error {
	seen := map[string]bool{}
	for _, field := range fields {
		if field.Name == "" || field.Label == "" {
			return errors.BadRequest("Filter fields need a name and a label", nil)
		}
		if seen[field.Name] {
			return errors.BadRequest("Duplicate filter field "+field.Name, nil)
		}
		seen[field.Name] = true

		if !filterFieldTypes[field.Type] {
			return errors.BadRequest("Unknown filter field type "+field.Type, nil)
		}
		if field.Type == "select" && len(field.Options) == 0 {
			return errors.BadRequest("Select field "+field.Name+" needs options", nil)
		}
	}
	return nil
}

func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CategoryInput) (*entity.VehicleCategory, error) {
	if err := validateFilterFields(input.FilterFields); err != nil {
		return nil, err
	}

	slug := input.Slug
	if slug == "" {
		slug = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(input.Name), " ", "-"))
	}

	if existing, err := uc.categoryRepo.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, errors.Conflict("A category with this slug already exists")
	}

	status := input.Status
	if status == "" {
		status = "active"
	}

	category := &entity.VehicleCategory{
		Name:         input.Name,
		Slug:         slug,
		Description:  input.Description,
		Icon:         input.Icon,
		FilterFields: input.FilterFields,
		Status:       status,
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (uc *CategoryUseCase) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*entity.VehicleCategory, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateFilterFields(input.FilterFields); err != nil {
		return nil, err
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	if input.Slug != "" && input.Slug != category.Slug {
		if existing, err := uc.categoryRepo.GetBySlug(ctx, input.Slug); err == nil && existing != nil {
			return nil, errors.Conflict("A category with this slug already exists")
		}
		category.Slug = input.Slug
	}
	if input.Description != "" {
		category.Description = input.Description
	}
	if input.Icon != "" {
		category.Icon = input.Icon
	}
	if input.FilterFields != nil {
		category.FilterFields = input.FilterFields
	}
	if input.Status != "" {
		category.Status = input.Status
	}

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory refuses when listings still reference the category;
// categories are retired by setting status inactive instead.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}

	_, total, err := uc.vehicleRepo.List(ctx, map[string]interface{}{"categoryId": id}, "", 1, 0)
	if err != nil {
		return err
	}
	if total > 0 {
		return errors.Conflict("Category still has listings; deactivate it instead")
	}

	return uc.categoryRepo.Delete(ctx, id)
}

func (uc *CategoryUseCase) GetCategory(ctx context.Context, idOrSlug string) (*entity.VehicleCategory, error) {
	category, err := uc.categoryRepo.GetByID(ctx, idOrSlug)
	if err == nil {
		return category, nil
	}

	return uc.categoryRepo.GetBySlug(ctx, idOrSlug)
}

func (uc *CategoryUseCase) ListCategories(ctx context.Context, includeInactive bool, limit, offset int) ([]*entity.VehicleCategory, int64, error) {
	status := "active"
	if includeInactive {
		status = ""
	}

	return uc.categoryRepo.List(ctx, status, limit, offset)
}
