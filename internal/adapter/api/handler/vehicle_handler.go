package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"zedorolo/internal/usecase"
	"zedorolo/pkg/response"
	"zedorolo/pkg/utils"
)

type VehicleHandler struct {
	vehicleUseCase  *usecase.VehicleUseCase
	categoryUseCase *usecase.CategoryUseCase
}

func NewVehicleHandler(vehicleUseCase *usecase.VehicleUseCase, categoryUseCase *usecase.CategoryUseCase) *VehicleHandler {
	return &VehicleHandler{
		vehicleUseCase:  vehicleUseCase,
		categoryUseCase: categoryUseCase,
	}
}

type vehicleRequest struct {
	CategoryID   string                 `json:"category_id" validate:"required"`
	Title        string                 `json:"title" validate:"required,min=5,max=120"`
	Description  string                 `json:"description" validate:"max=5000"`
	Make         string                 `json:"make" validate:"required"`
	Model        string                 `json:"model" validate:"required"`
	Year         int                    `json:"year" validate:"required"`
	Price        float64                `json:"price" validate:"required,gt=0"`
	Mileage      int                    `json:"mileage" validate:"gte=0"`
	City         string                 `json:"city"`
	State        string                 `json:"state"`
	Attributes   map[string]interface{} `json:"attributes"`
	Photos       []string               `json:"photos" validate:"required,min=1,max=20,dive,url"`
	AcceptsTrade bool                   `json:"accepts_trade"`
}

func (r vehicleRequest) toInput() usecase.VehicleInput {
	return usecase.VehicleInput{
		CategoryID:   r.CategoryID,
		Title:        r.Title,
		Description:  r.Description,
		Make:         r.Make,
		Model:        r.Model,
		Year:         r.Year,
		Price:        r.Price,
		Mileage:      r.Mileage,
		City:         r.City,
		State:        r.State,
		Attributes:   r.Attributes,
		Photos:       r.Photos,
		AcceptsTrade: r.AcceptsTrade,
	}
}

func (h *VehicleHandler) Create(c echo.Context) error {
	var req vehicleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	vehicle, err := h.vehicleUseCase.CreateVehicle(c.Request().Context(), ownerID, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, vehicle)
}

func (h *VehicleHandler) Update(c echo.Context) error {
	var req vehicleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	vehicle, err := h.vehicleUseCase.UpdateVehicle(c.Request().Context(), c.Param("id"), ownerID, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vehicle)
}

func (h *VehicleHandler) Delete(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	if err := h.vehicleUseCase.DeleteVehicle(c.Request().Context(), c.Param("id"), ownerID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

func (h *VehicleHandler) Get(c echo.Context) error {
	viewerID, _ := c.Get("uid").(string)
	isAdmin, _ := c.Get("is_admin").(bool)

	vehicle, err := h.vehicleUseCase.GetVehicle(c.Request().Context(), c.Param("id"), viewerID, isAdmin)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vehicle)
}

func listInputFromQuery(c echo.Context) usecase.ListVehiclesInput {
	input := usecase.ListVehiclesInput{
		CategoryID: c.QueryParam("category_id"),
		Make:       c.QueryParam("make"),
		State:      c.QueryParam("state"),
		City:       c.QueryParam("city"),
		Sort:       c.QueryParam("sort"),
	}

	if v, err := strconv.ParseFloat(c.QueryParam("min_price"), 64); err == nil {
		input.MinPrice = v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("max_price"), 64); err == nil {
		input.MaxPrice = v
	}
	if v, err := strconv.Atoi(c.QueryParam("min_year")); err == nil {
		input.MinYear = v
	}
	if raw := c.QueryParam("accepts_trade"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			input.AcceptsTrade = &v
		}
	}

	return input
}

func (h *VehicleHandler) List(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	vehicles, total, err := h.vehicleUseCase.ListVehicles(c.Request().Context(), listInputFromQuery(c), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, vehicles, total, pagination.Page, pagination.PageSize)
}

func (h *VehicleHandler) Search(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	vehicles, total, err := h.vehicleUseCase.SearchVehicles(c.Request().Context(), c.QueryParam("q"), listInputFromQuery(c), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, vehicles, total, pagination.Page, pagination.PageSize)
}

func (h *VehicleHandler) MyVehicles(c echo.Context) error {
	ownerID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	vehicles, total, err := h.vehicleUseCase.ListMyVehicles(c.Request().Context(), ownerID, c.QueryParam("status"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, vehicles, total, pagination.Page, pagination.PageSize)
}

func (h *VehicleHandler) MarkSold(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	vehicle, err := h.vehicleUseCase.MarkSold(c.Request().Context(), c.Param("id"), ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vehicle)
}

func (h *VehicleHandler) Bump(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	vehicle, err := h.vehicleUseCase.BumpVehicle(c.Request().Context(), c.Param("id"), ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vehicle)
}
