package handler

import (
	"github.com/labstack/echo/v4"

	"zedorolo/internal/usecase"
	"zedorolo/pkg/response"
	"zedorolo/pkg/utils"
)

type CategoryHandler struct {
	categoryUseCase *usecase.CategoryUseCase
}

func NewCategoryHandler(categoryUseCase *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{
		categoryUseCase: categoryUseCase,
	}
}

func (h *CategoryHandler) List(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	categories, total, err := h.categoryUseCase.ListCategories(c.Request().Context(), false, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, categories, total, pagination.Page, pagination.PageSize)
}

func (h *CategoryHandler) Get(c echo.Context) error {
	category, err := h.categoryUseCase.GetCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, category)
}
