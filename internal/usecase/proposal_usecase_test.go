package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zedorolo/internal/domain/entity"
	"zedorolo/internal/infrastructure/ratelimit"
	ws "zedorolo/internal/infrastructure/websocket"
	"zedorolo/pkg/errors"
)

type proposalEnv struct {
	proposals     *fakeProposalRepo
	vehicles      *fakeVehicleRepo
	users         *fakeUserRepo
	notifications *fakeNotificationRepo
	uc            *ProposalUseCase
}

func newProposalEnv() *proposalEnv {
	env := &proposalEnv{
		proposals:     newFakeProposalRepo(),
		vehicles:      newFakeVehicleRepo(),
		users:         newFakeUserRepo(),
		notifications: newFakeNotificationRepo(),
	}

	manager := ws.NewManager()
	notificationUC := NewNotificationUseCase(env.notifications, manager)
	env.uc = NewProposalUseCase(env.proposals, env.vehicles, env.users, notificationUC, manager, ratelimit.NewRateLimiter())
	return env
}

func (env *proposalEnv) addUser(t *testing.T, id string, kycStatus entity.KYCStatus) {
	t.Helper()
	err := env.users.Create(context.Background(), &entity.User{
		ID:        id,
		Email:     id + "@example.com",
		Username:  id,
		Role:      "user",
		Status:    "active",
		KYCStatus: kycStatus,
	})
	require.NoError(t, err)
}

func (env *proposalEnv) addVehicle(t *testing.T, id, ownerID, status string, acceptsTrade bool) {
	t.Helper()
	err := env.vehicles.Create(context.Background(), &entity.Vehicle{
		ID:           id,
		CategoryID:   "cat-cars",
		OwnerID:      ownerID,
		Title:        "Fiat Uno 2014",
		Make:         "Fiat",
		Model:        "Uno",
		Year:         2014,
		Price:        25000,
		Status:       status,
		AcceptsTrade: acceptsTrade,
	})
	require.NoError(t, err)
}

func TestCreateProposal(t *testing.T) {
	ctx := context.Background()
	env := newProposalEnv()
	env.addUser(t, "buyer", entity.KYCApproved)
	env.addUser(t, "seller", entity.KYCApproved)
	env.addVehicle(t, "car-1", "seller", "approved", false)

	proposal, err := env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{
		VehicleID:   "car-1",
		OfferAmount: 22000,
		Message:     "Pego hoje por esse valor",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ProposalPending, proposal.Status)
	assert.Equal(t, "buyer", proposal.ProposerID)
	assert.Equal(t, "seller", proposal.SellerID)
	assert.NotEmpty(t, proposal.ID)

	assert.Equal(t, []string{"proposal_received"}, env.notifications.typesByUser("seller"))
}

func TestCreateProposalRequiresVerification(t *testing.T) {
	ctx := context.Background()
	env := newProposalEnv()
	env.addUser(t, "buyer", entity.KYCPending)
	env.addUser(t, "seller", entity.KYCApproved)
	env.addVehicle(t, "car-1", "seller", "approved", false)

	_, err := env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{VehicleID: "car-1", OfferAmount: 1000})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCreateProposalOwnVehicle(t *testing.T) {
	ctx := context.Background()
	env := newProposalEnv()
	env.addUser(t, "seller", entity.KYCApproved)
	env.addVehicle(t, "car-1", "seller", "approved", false)

	_, err := env.uc.CreateProposal(ctx, "seller", CreateProposalInput{VehicleID: "car-1", OfferAmount: 1000})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreateProposalHiddenVehicle(t *testing.T) {
	ctx := context.Background()
	env := newProposalEnv()
	env.addUser(t, "buyer", entity.KYCApproved)
	env.addUser(t, "seller", entity.KYCApproved)
	env.addVehicle(t, "car-1", "seller", "pending_review", false)

	_, err := env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{VehicleID: "car-1", OfferAmount: 1000})
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestCreateProposalNeedsOfferOrTrade(t *testing.T) {
	ctx := context.Background()
	env := newProposalEnv()
	env.addUser(t, "buyer", entity.KYCApproved)
	env.addUser(t, "seller", entity.KYCApproved)
	env.addVehicle(t, "car-1", "seller", "approved", false)

	_, err := env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{VehicleID: "car-1"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{VehicleID: "car-1", OfferAmount: -50})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreateProposalTradeRules(t *testing.T) {
	ctx := context.Background()
	env := newProposalEnv()
	env.addUser(t, "buyer", entity.KYCApproved)
	env.addUser(t, "seller", entity.KYCApproved)
	env.addUser(t, "other", entity.KYCApproved)
	env.addVehicle(t, "no-trade", "seller", "approved", false)
	env.addVehicle(t, "trade-ok", "seller", "approved", true)
	env.addVehicle(t, "buyer-car", "buyer", "approved", false)
	env.addVehicle(t, "buyer-draft", "buyer", "pending_review", false)
	env.addVehicle(t, "other-car", "other", "approved", false)

	// Listing does not accept trades.
	_, err := env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{
		VehicleID: "no-trade", TradeVehicleID: "buyer-car",
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	// Trade vehicle must belong to the proposer.
	_, err = env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{
		VehicleID: "trade-ok", TradeVehicleID: "other-car",
	})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// Trade vehicle must be an active listing.
	_, err = env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{
		VehicleID: "trade-ok", TradeVehicleID: "buyer-draft",
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	// Cash on top only makes sense alongside a trade vehicle.
	_, err = env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{
		VehicleID: "trade-ok", OfferAmount: 1000, TradePlusAmount: 500,
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	// A pure trade with cash on top is valid.
	proposal, err := env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{
		VehicleID: "trade-ok", TradeVehicleID: "buyer-car", TradePlusAmount: 3000,
	})
	require.NoError(t, err)
	assert.Equal(t, "buyer-car", proposal.TradeVehicleID)
	assert.Equal(t, float64(3000), proposal.TradePlusAmount)
}

func TestCreateProposalOneOpenPerVehicle(t *testing.T) {
	ctx := context.Background()
	env := newProposalEnv()
	env.addUser(t, "buyer", entity.KYCApproved)
	env.addUser(t, "seller", entity.KYCApproved)
	env.addVehicle(t, "car-1", "seller", "approved", false)

	first, err := env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{VehicleID: "car-1", OfferAmount: 20000})
	require.NoError(t, err)

	_, err = env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{VehicleID: "car-1", OfferAmount: 21000})
	assert.True(t, errors.Is(err, "CONFLICT"))

	// Once the open proposal is decided a new one may be sent.
	_, err = env.uc.Respond(ctx, first.ID, "seller", RespondProposalInput{Action: "reject"})
	require.NoError(t, err)

	_, err = env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{VehicleID: "car-1", OfferAmount: 21000})
	assert.NoError(t, err)
}

func TestGetProposalAccess(t *testing.T) {
	ctx := context.Background()
	env := newProposalEnv()
	env.addUser(t, "buyer", entity.KYCApproved)
	env.addUser(t, "seller", entity.KYCApproved)
	env.addVehicle(t, "car-1", "seller", "approved", false)

	proposal, err := env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{VehicleID: "car-1", OfferAmount: 20000})
	require.NoError(t, err)

	_, err = env.uc.GetProposal(ctx, proposal.ID, "buyer", false)
	assert.NoError(t, err)

	_, err = env.uc.GetProposal(ctx, proposal.ID, "stranger", false)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = env.uc.GetProposal(ctx, proposal.ID, "stranger", true)
	assert.NoError(t, err)
}

func TestRespondAcceptBySeller(t *testing.T) {
	ctx := context.Background()
	env := newProposalEnv()
	env.addUser(t, "buyer", entity.KYCApproved)
	env.addUser(t, "seller", entity.KYCApproved)
	env.addVehicle(t, "car-1", "seller", "approved", false)

	proposal, err := env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{VehicleID: "car-1", OfferAmount: 20000})
	require.NoError(t, err)

	updated, err := env.uc.Respond(ctx, proposal.ID, "seller", RespondProposalInput{Action: "accept"})
	require.NoError(t, err)

	assert.Equal(t, entity.ProposalAccepted, updated.Status)
	assert.NotNil(t, updated.RespondedAt)
	assert.Contains(t, env.notifications.typesByUser("buyer"), "proposal_accepted")
}

func TestRespondActorRules(t *testing.T) {
	ctx := context.Background()
	env := newProposalEnv()
	env.addUser(t, "buyer", entity.KYCApproved)
	env.addUser(t, "seller", entity.KYCApproved)
	env.addVehicle(t, "car-1", "seller", "approved", false)

	proposal, err := env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{VehicleID: "car-1", OfferAmount: 20000})
	require.NoError(t, err)

	// The proposer cannot accept their own proposal.
	_, err = env.uc.Respond(ctx, proposal.ID, "buyer", RespondProposalInput{Action: "accept"})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// The seller cannot cancel on the proposer's behalf.
	_, err = env.uc.Respond(ctx, proposal.ID, "seller", RespondProposalInput{Action: "cancel"})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// Outsiders see the same refusal as any other access check.
	_, err = env.uc.Respond(ctx, proposal.ID, "stranger", RespondProposalInput{Action: "accept"})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	updated, err := env.uc.Respond(ctx, proposal.ID, "buyer", RespondProposalInput{Action: "cancel"})
	require.NoError(t, err)
	assert.Equal(t, entity.ProposalCancelled, updated.Status)
	// Cancellations reach the seller only through the live feed.
	assert.NotContains(t, env.notifications.typesByUser("seller"), "proposal_cancelled")
}

func TestRespondCounterFlow(t *testing.T) {
	ctx := context.Background()
	env := newProposalEnv()
	env.addUser(t, "buyer", entity.KYCApproved)
	env.addUser(t, "seller", entity.KYCApproved)
	env.addVehicle(t, "car-1", "seller", "approved", false)

	created, err := env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{VehicleID: "car-1", OfferAmount: 20000})
	require.NoError(t, err)

	// A counter without an amount is rejected before any write.
	_, err = env.uc.Respond(ctx, created.ID, "seller", RespondProposalInput{Action: "counter"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	countered, err := env.uc.Respond(ctx, created.ID, "seller", RespondProposalInput{
		Action:      "counter",
		OfferAmount: 24000,
		Message:     "Faço por 24",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ProposalCounter, countered.Status)
	assert.Equal(t, "seller", countered.CounteredBy)
	assert.Equal(t, float64(24000), countered.OfferAmount)
	assert.Contains(t, env.notifications.typesByUser("buyer"), "proposal_countered")

	// The counterer cannot accept their own counter-offer.
	_, err = env.uc.Respond(ctx, created.ID, "seller", RespondProposalInput{Action: "accept"})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// Cancel is not a legal move from counter.
	_, err = env.uc.Respond(ctx, created.ID, "buyer", RespondProposalInput{Action: "cancel"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	accepted, err := env.uc.Respond(ctx, created.ID, "buyer", RespondProposalInput{Action: "accept"})
	require.NoError(t, err)
	assert.Equal(t, entity.ProposalAccepted, accepted.Status)
}

func TestRespondAfterDecisionIsStale(t *testing.T) {
	ctx := context.Background()
	env := newProposalEnv()
	env.addUser(t, "buyer", entity.KYCApproved)
	env.addUser(t, "seller", entity.KYCApproved)
	env.addVehicle(t, "car-1", "seller", "approved", false)

	proposal, err := env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{VehicleID: "car-1", OfferAmount: 20000})
	require.NoError(t, err)

	_, err = env.uc.Respond(ctx, proposal.ID, "seller", RespondProposalInput{Action: "accept"})
	require.NoError(t, err)

	_, err = env.uc.Respond(ctx, proposal.ID, "seller", RespondProposalInput{Action: "reject"})
	assert.True(t, errors.Is(err, "STALE_STATE"))

	_, err = env.uc.Respond(ctx, proposal.ID, "buyer", RespondProposalInput{Action: "cancel"})
	assert.True(t, errors.Is(err, "STALE_STATE"))
}

func TestRespondConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	env := newProposalEnv()
	env.addUser(t, "buyer", entity.KYCApproved)
	env.addUser(t, "seller", entity.KYCApproved)
	env.addVehicle(t, "car-1", "seller", "approved", false)

	proposal, err := env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{VehicleID: "car-1", OfferAmount: 20000})
	require.NoError(t, err)

	actions := []struct {
		userID string
		action string
	}{
		{"seller", "accept"},
		{"seller", "reject"},
		{"buyer", "cancel"},
	}

	results := make([]error, len(actions))
	var wg sync.WaitGroup
	for i, a := range actions {
		wg.Add(1)
		go func(i int, userID, action string) {
			defer wg.Done()
			_, results[i] = env.uc.Respond(ctx, proposal.ID, userID, RespondProposalInput{Action: action})
		}(i, a.userID, a.action)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.True(t, errors.Is(err, "STALE_STATE"), "loser should see STALE_STATE, got %v", err)
		}
	}
	assert.Equal(t, 1, winners)

	final, err := env.proposals.GetByID(ctx, proposal.ID)
	require.NoError(t, err)
	assert.True(t, final.Status.Terminal())
}

func TestListMyProposals(t *testing.T) {
	ctx := context.Background()
	env := newProposalEnv()
	env.addUser(t, "buyer", entity.KYCApproved)
	env.addUser(t, "seller", entity.KYCApproved)
	env.addVehicle(t, "car-1", "seller", "approved", false)
	env.addVehicle(t, "car-2", "seller", "approved", false)

	_, err := env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{VehicleID: "car-1", OfferAmount: 20000})
	require.NoError(t, err)
	_, err = env.uc.CreateProposal(ctx, "buyer", CreateProposalInput{VehicleID: "car-2", OfferAmount: 15000})
	require.NoError(t, err)

	sent, total, err := env.uc.ListMyProposals(ctx, "buyer", "proposer", "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, sent, 2)

	received, total, err := env.uc.ListMyProposals(ctx, "seller", "seller", "pending", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, received, 2)

	_, _, err = env.uc.ListMyProposals(ctx, "buyer", "proposer", "haggling", 20, 0)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}
