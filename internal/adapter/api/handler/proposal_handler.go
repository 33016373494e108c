package handler

import (
	"github.com/labstack/echo/v4"

	"zedorolo/internal/usecase"
	"zedorolo/pkg/response"
	"zedorolo/pkg/utils"
)

type ProposalHandler struct {
	proposalUseCase *usecase.ProposalUseCase
}

func NewProposalHandler(proposalUseCase *usecase.ProposalUseCase) *ProposalHandler {
	return &ProposalHandler{
		proposalUseCase: proposalUseCase,
	}
}

type createProposalRequest struct {
	VehicleID       string  `json:"vehicle_id" validate:"required"`
	TradeVehicleID  string  `json:"trade_vehicle_id"`
	OfferAmount     float64 `json:"offer_amount" validate:"gte=0"`
	TradePlusAmount float64 `json:"trade_plus_amount" validate:"gte=0"`
	Message         string  `json:"message" validate:"max=2000"`
}

type respondProposalRequest struct {
	Action          string  `json:"action" validate:"required,oneof=accept reject cancel counter"`
	OfferAmount     float64 `json:"offer_amount" validate:"gte=0"`
	TradePlusAmount float64 `json:"trade_plus_amount" validate:"gte=0"`
	Message         string  `json:"message" validate:"max=2000"`
}

func (h *ProposalHandler) Create(c echo.Context) error {
	var req createProposalRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	proposerID := c.Get("uid").(string)

	proposal, err := h.proposalUseCase.CreateProposal(c.Request().Context(), proposerID, usecase.CreateProposalInput{
		VehicleID:       req.VehicleID,
		TradeVehicleID:  req.TradeVehicleID,
		OfferAmount:     req.OfferAmount,
		TradePlusAmount: req.TradePlusAmount,
		Message:         req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, proposal)
}

func (h *ProposalHandler) Get(c echo.Context) error {
	userID := c.Get("uid").(string)
	isAdmin, _ := c.Get("is_admin").(bool)

	proposal, err := h.proposalUseCase.GetProposal(c.Request().Context(), c.Param("id"), userID, isAdmin)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, proposal)
}

func (h *ProposalHandler) List(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	proposals, total, err := h.proposalUseCase.ListMyProposals(
		c.Request().Context(),
		userID,
		c.QueryParam("role"),
		c.QueryParam("status"),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, proposals, total, pagination.Page, pagination.PageSize)
}

// Respond drives the negotiation state machine. The action comes from the
// body; the actor is always the authenticated caller.
func (h *ProposalHandler) Respond(c echo.Context) error {
	var req respondProposalRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	proposal, err := h.proposalUseCase.Respond(c.Request().Context(), c.Param("id"), userID, usecase.RespondProposalInput{
		Action:          req.Action,
		OfferAmount:     req.OfferAmount,
		TradePlusAmount: req.TradePlusAmount,
		Message:         req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, proposal)
}
