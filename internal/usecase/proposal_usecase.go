package usecase

import (
	"context"
	"time"

	"zedorolo/internal/domain/entity"
	"zedorolo/internal/domain/repository"
	"zedorolo/internal/infrastructure/ratelimit"
	ws "zedorolo/internal/infrastructure/websocket"
	"zedorolo/pkg/errors"
	"zedorolo/pkg/logger"
)

type ProposalUseCase struct {
	proposalRepo   repository.ProposalRepository
	vehicleRepo    repository.VehicleRepository
	userRepo       repository.UserRepository
	notificationUC *NotificationUseCase
	wsManager      *ws.Manager
	rateLimiter    *ratelimit.RateLimiter
}

func NewProposalUseCase(
	proposalRepo repository.ProposalRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	notificationUC *NotificationUseCase,
	wsManager *ws.Manager,
	rateLimiter *ratelimit.RateLimiter,
) *ProposalUseCase {
	return &ProposalUseCase{
		proposalRepo:   proposalRepo,
		vehicleRepo:    vehicleRepo,
		userRepo:       userRepo,
		notificationUC: notificationUC,
		wsManager:      wsManager,
		rateLimiter:    rateLimiter,
	}
}

type CreateProposalInput struct {
	VehicleID       string
	TradeVehicleID  string
	OfferAmount     float64
	TradePlusAmount float64
	Message         string
}

func (uc *ProposalUseCase) CreateProposal(ctx context.Context, proposerID string, input CreateProposalInput) (*entity.Proposal, error) {
	allowed, waitTime := uc.rateLimiter.Allow(proposerID, "create_proposal")
	if !allowed {
		return nil, errors.TooManyRequests("Too many proposals sent. Please wait before sending another", waitTime)
	}

	proposer, err := uc.userRepo.GetByID(ctx, proposerID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	if !proposer.Verified() {
		return nil, errors.Forbidden("You must complete identity verification before sending proposals", nil)
	}

	vehicle, err := uc.vehicleRepo.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.Visible() {
		return nil, errors.NotFound("Vehicle", nil)
	}
	if vehicle.OwnerID == proposerID {
		return nil, errors.BadRequest("You cannot send a proposal for your own vehicle", nil)
	}

	if input.OfferAmount < 0 || input.TradePlusAmount < 0 {
		return nil, errors.BadRequest("Amounts cannot be negative", nil)
	}
	if input.OfferAmount == 0 && input.TradeVehicleID == "" {
		return nil, errors.BadRequest("A proposal needs an offer amount or a trade vehicle", nil)
	}

	if input.TradeVehicleID != "" {
		if !vehicle.AcceptsTrade {
			return nil, errors.BadRequest("This listing does not accept trade offers", nil)
		}

		tradeVehicle, err := uc.vehicleRepo.GetByID(ctx, input.TradeVehicleID)
		if err != nil {
			return nil, errors.NotFound("Trade vehicle", err)
		}
		if tradeVehicle.OwnerID != proposerID {
			return nil, errors.Forbidden("The trade vehicle must be one of your own listings", nil)
		}
		if !tradeVehicle.Visible() {
			return nil, errors.BadRequest("The trade vehicle is not an active listing", nil)
		}
	} else if input.TradePlusAmount > 0 {
		return nil, errors.BadRequest("A cash-on-top amount needs a trade vehicle", nil)
	}

	// One open negotiation per proposer and vehicle.
	if existing, err := uc.proposalRepo.FindOpen(ctx, proposerID, input.VehicleID); err == nil && existing != nil {
		return nil, errors.Conflict("You already have an open proposal for this vehicle")
	} else if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	proposal := &entity.Proposal{
		VehicleID:       input.VehicleID,
		TradeVehicleID:  input.TradeVehicleID,
		ProposerID:      proposerID,
		SellerID:        vehicle.OwnerID,
		OfferAmount:     input.OfferAmount,
		TradePlusAmount: input.TradePlusAmount,
		Message:         input.Message,
		Status:          entity.ProposalPending,
	}

	if err := uc.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}

	uc.notificationUC.Push(ctx, &entity.Notification{
		UserID:     vehicle.OwnerID,
		Type:       "proposal_received",
		Title:      "New proposal on " + vehicle.Title,
		Body:       input.Message,
		ProposalID: proposal.ID,
		VehicleID:  vehicle.ID,
	})
	uc.wsManager.Publish(ws.EventProposalUpdate, proposal, proposal.ProposerID, proposal.SellerID)

	return proposal, nil
}

func (uc *ProposalUseCase) GetProposal(ctx context.Context, id, userID string, isAdmin bool) (*entity.Proposal, error) {
	proposal, err := uc.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !proposal.IsParty(userID) && !isAdmin {
		return nil, errors.Forbidden("You don't have access to this proposal", nil)
	}

	return proposal, nil
}

func (uc *ProposalUseCase) ListMyProposals(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Proposal, int64, error) {
	if status != "" {
		if _, err := entity.ParseProposalStatus(status); err != nil {
			return nil, 0, errors.BadRequest("Invalid proposal status filter", err)
		}
	}

	return uc.proposalRepo.ListByUserID(ctx, userID, role, status, limit, offset)
}

type RespondProposalInput struct {
	Action          string
	OfferAmount     float64
	TradePlusAmount float64
	Message         string
}

// Respond applies one transition of the negotiation state machine. The write
// is conditional on the status the caller saw; when a concurrent transition
// got there first the caller receives STALE_STATE and nothing changes.
func (uc *ProposalUseCase) Respond(ctx context.Context, proposalID, userID string, input RespondProposalInput) (*entity.Proposal, error) {
	var action entity.ProposalAction
	switch entity.ProposalAction(input.Action) {
	case entity.ProposalActionAccept, entity.ProposalActionReject, entity.ProposalActionCancel, entity.ProposalActionCounter:
		action = entity.ProposalAction(input.Action)
	default:
		return nil, errors.BadRequest("Action must be accept, reject, cancel or counter", nil)
	}

	proposal, err := uc.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	if !proposal.IsParty(userID) {
		return nil, errors.Forbidden("You don't have access to this proposal", nil)
	}

	next, ok := proposal.Status.Next(action)
	if !ok {
		if proposal.Status.Terminal() {
			return nil, errors.StaleState("This proposal was already decided")
		}
		return nil, errors.BadRequest("This action is not available in the proposal's current state", nil)
	}

	if !proposal.ActorAllowed(action, userID) {
		return nil, errors.Forbidden("You cannot perform this action on this proposal", nil)
	}

	now := time.Now()
	extra := map[string]interface{}{}

	switch action {
	case entity.ProposalActionCounter:
		if input.OfferAmount <= 0 {
			return nil, errors.BadRequest("A counter-offer needs an offer amount", nil)
		}
		extra["offerAmount"] = input.OfferAmount
		extra["tradePlusAmount"] = input.TradePlusAmount
		extra["counteredBy"] = userID
		if input.Message != "" {
			extra["message"] = input.Message
		}
	default:
		extra["respondedAt"] = now
	}

	updated, err := uc.proposalRepo.UpdateStatus(ctx, proposalID, proposal.Status, next, extra)
	if err != nil {
		if errors.Is(err, "STALE_STATE") {
			logger.LogProposalError(proposalID, string(action), err)
		}
		return nil, err
	}

	uc.notifyTransition(ctx, updated, userID, next)
	uc.wsManager.Publish(ws.EventProposalUpdate, updated, updated.ProposerID, updated.SellerID)

	return updated, nil
}

func (uc *ProposalUseCase) notifyTransition(ctx context.Context, proposal *entity.Proposal, actorID string, next entity.ProposalStatus) {
	var notificationType, title string
	switch next {
	case entity.ProposalAccepted:
		notificationType, title = "proposal_accepted", "Your proposal was accepted"
	case entity.ProposalRejected:
		notificationType, title = "proposal_rejected", "Your proposal was rejected"
	case entity.ProposalCounter:
		notificationType, title = "proposal_countered", "You received a counter-offer"
	default:
		// A cancellation is silent; the other party sees it through the live
		// proposal feed.
		return
	}

	uc.notificationUC.Push(ctx, &entity.Notification{
		UserID:     proposal.OtherParty(actorID),
		Type:       notificationType,
		Title:      title,
		ProposalID: proposal.ID,
		VehicleID:  proposal.VehicleID,
	})
}
