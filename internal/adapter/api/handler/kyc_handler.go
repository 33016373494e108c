package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"zedorolo/internal/usecase"
	"zedorolo/pkg/errors"
	"zedorolo/pkg/response"
)

type KYCHandler struct {
	kycUseCase *usecase.KYCUseCase
}

func NewKYCHandler(kycUseCase *usecase.KYCUseCase) *KYCHandler {
	return &KYCHandler{
		kycUseCase: kycUseCase,
	}
}

type submitKYCRequest struct {
	FullName         string `json:"full_name" validate:"required"`
	DateOfBirth      string `json:"date_of_birth" validate:"required"` // YYYY-MM-DD
	DocumentType     string `json:"document_type" validate:"required,oneof=cpf cnpj"`
	DocumentNumber   string `json:"document_number" validate:"required"`
	DocumentFrontURL string `json:"document_front_url" validate:"required"`
	DocumentBackURL  string `json:"document_back_url"`
	SelfieURL        string `json:"selfie_url" validate:"required"`
}

func (h *KYCHandler) Submit(c echo.Context) error {
	var req submitKYCRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	dateOfBirth, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return response.Error(c, errors.BadRequest("Date of birth must be YYYY-MM-DD", err))
	}

	userID := c.Get("uid").(string)

	verification, err := h.kycUseCase.Submit(c.Request().Context(), userID, usecase.SubmitKYCInput{
		FullName:         req.FullName,
		DateOfBirth:      dateOfBirth,
		DocumentType:     req.DocumentType,
		DocumentNumber:   req.DocumentNumber,
		DocumentFrontURL: req.DocumentFrontURL,
		DocumentBackURL:  req.DocumentBackURL,
		SelfieURL:        req.SelfieURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, verification)
}

func (h *KYCHandler) MyVerification(c echo.Context) error {
	userID := c.Get("uid").(string)

	verification, err := h.kycUseCase.GetMyVerification(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, verification)
}
