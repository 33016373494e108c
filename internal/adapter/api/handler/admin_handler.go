package handler

import (
	"github.com/labstack/echo/v4"

	"zedorolo/internal/domain/entity"
	"zedorolo/internal/usecase"
	"zedorolo/pkg/response"
	"zedorolo/pkg/utils"
)

// AdminHandler groups the moderation surface: KYC review, listing review,
// category management and user administration.
type AdminHandler struct {
	kycUseCase      *usecase.KYCUseCase
	vehicleUseCase  *usecase.VehicleUseCase
	categoryUseCase *usecase.CategoryUseCase
	userUseCase     *usecase.UserUseCase
}

func NewAdminHandler(
	kycUseCase *usecase.KYCUseCase,
	vehicleUseCase *usecase.VehicleUseCase,
	categoryUseCase *usecase.CategoryUseCase,
	userUseCase *usecase.UserUseCase,
) *AdminHandler {
	return &AdminHandler{
		kycUseCase:      kycUseCase,
		vehicleUseCase:  vehicleUseCase,
		categoryUseCase: categoryUseCase,
		userUseCase:     userUseCase,
	}
}

// KYC review.

func (h *AdminHandler) ListKYC(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	verifications, total, err := h.kycUseCase.ListByStatus(c.Request().Context(), c.QueryParam("status"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, verifications, total, pagination.Page, pagination.PageSize)
}

func (h *AdminHandler) StartKYCReview(c echo.Context) error {
	verification, err := h.kycUseCase.StartReview(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, verification)
}

func (h *AdminHandler) KYCDocuments(c echo.Context) error {
	links, err := h.kycUseCase.GetDocumentLinks(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, links)
}

type reviewKYCRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}

func (h *AdminHandler) ReviewKYC(c echo.Context) error {
	var req reviewKYCRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	adminID := c.Get("uid").(string)

	verification, err := h.kycUseCase.Review(c.Request().Context(), adminID, c.Param("id"), usecase.ReviewKYCInput{
		Approve: req.Approve,
		Reason:  req.Reason,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, verification)
}

// Listing moderation.

func (h *AdminHandler) ListPendingVehicles(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	vehicles, total, err := h.vehicleUseCase.ListPendingReview(c.Request().Context(), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, vehicles, total, pagination.Page, pagination.PageSize)
}

func (h *AdminHandler) ApproveVehicle(c echo.Context) error {
	vehicle, err := h.vehicleUseCase.ApproveVehicle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vehicle)
}

type rejectVehicleRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *AdminHandler) RejectVehicle(c echo.Context) error {
	var req rejectVehicleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	vehicle, err := h.vehicleUseCase.RejectVehicle(c.Request().Context(), c.Param("id"), req.Reason)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vehicle)
}

// Category management.

type categoryRequest struct {
	Name         string                   `json:"name" validate:"required"`
	Slug         string                   `json:"slug"`
	Description  string                   `json:"description"`
	Icon         string                   `json:"icon"`
	FilterFields []categoryFilterFieldDTO `json:"filter_fields"`
	Status       string                   `json:"status" validate:"omitempty,oneof=active inactive"`
}

type categoryFilterFieldDTO struct {
	Name     string   `json:"name" validate:"required"`
	Label    string   `json:"label" validate:"required"`
	Type     string   `json:"type" validate:"required,oneof=text number select boolean range"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
	Unit     string   `json:"unit"`
}

func (r categoryRequest) toInput() usecase.CategoryInput {
	input := usecase.CategoryInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Icon:        r.Icon,
		Status:      r.Status,
	}
	for _, field := range r.FilterFields {
		input.FilterFields = append(input.FilterFields, entityFilterField(field))
	}
	return input
}

func entityFilterField(dto categoryFilterFieldDTO) entity.CategoryFilterField {
	return entity.CategoryFilterField{
		Name:     dto.Name,
		Label:    dto.Label,
		Type:     dto.Type,
		Required: dto.Required,
		Options:  dto.Options,
		Unit:     dto.Unit,
	}
}

func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.categoryUseCase.CreateCategory(c.Request().Context(), req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, category)
}

func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.categoryUseCase.UpdateCategory(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, category)
}

func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	if err := h.categoryUseCase.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

func (h *AdminHandler) ListCategories(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	categories, total, err := h.categoryUseCase.ListCategories(c.Request().Context(), true, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, categories, total, pagination.Page, pagination.PageSize)
}

// User administration.

func (h *AdminHandler) ListUsers(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	users, total, err := h.userUseCase.ListUsers(c.Request().Context(), c.QueryParam("status"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, users, total, pagination.Page, pagination.PageSize)
}

type setUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}

func (h *AdminHandler) SetUserStatus(c echo.Context) error {
	var req setUserStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	adminID := c.Get("uid").(string)

	user, err := h.userUseCase.SetUserStatus(c.Request().Context(), adminID, c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
