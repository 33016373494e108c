package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProposalStatusNext(t *testing.T) {
	statuses := []ProposalStatus{
		ProposalPending, ProposalAccepted, ProposalRejected, ProposalCounter, ProposalCancelled,
	}
	actions := []ProposalAction{
		ProposalActionAccept, ProposalActionReject, ProposalActionCancel, ProposalActionCounter,
	}

	allowed := map[ProposalStatus]map[ProposalAction]ProposalStatus{
		ProposalPending: {
			ProposalActionAccept:  ProposalAccepted,
			ProposalActionReject:  ProposalRejected,
			ProposalActionCancel:  ProposalCancelled,
			ProposalActionCounter: ProposalCounter,
		},
		ProposalCounter: {
			ProposalActionAccept: ProposalAccepted,
			ProposalActionReject: ProposalRejected,
		},
	}

	for _, from := range statuses {
		for _, action := range actions {
			next, ok := from.Next(action)
			want, legal := allowed[from][action]
			if legal {
				assert.True(t, ok, "%s + %s should be legal", from, action)
				assert.Equal(t, want, next, "%s + %s", from, action)
			} else {
				assert.False(t, ok, "%s + %s should be illegal", from, action)
			}
		}
	}
}

func TestProposalStatusTerminal(t *testing.T) {
	assert.False(t, ProposalPending.Terminal())
	assert.False(t, ProposalCounter.Terminal())
	assert.True(t, ProposalAccepted.Terminal())
	assert.True(t, ProposalRejected.Terminal())
	assert.True(t, ProposalCancelled.Terminal())
}

func TestParseProposalStatus(t *testing.T) {
	status, err := ParseProposalStatus("counter")
	assert.NoError(t, err)
	assert.Equal(t, ProposalCounter, status)

	_, err = ParseProposalStatus("negotiating")
	assert.Error(t, err)
}

func TestProposalActorAllowed(t *testing.T) {
	const (
		proposer = "user-proposer"
		seller   = "user-seller"
		stranger = "user-stranger"
	)

	pending := &Proposal{ProposerID: proposer, SellerID: seller, Status: ProposalPending}

	assert.True(t, pending.ActorAllowed(ProposalActionAccept, seller))
	assert.True(t, pending.ActorAllowed(ProposalActionReject, seller))
	assert.True(t, pending.ActorAllowed(ProposalActionCounter, seller))
	assert.False(t, pending.ActorAllowed(ProposalActionCancel, seller))

	assert.True(t, pending.ActorAllowed(ProposalActionCancel, proposer))
	assert.False(t, pending.ActorAllowed(ProposalActionAccept, proposer))
	assert.False(t, pending.ActorAllowed(ProposalActionReject, proposer))
	assert.False(t, pending.ActorAllowed(ProposalActionCounter, proposer))

	for _, action := range []ProposalAction{ProposalActionAccept, ProposalActionReject, ProposalActionCancel, ProposalActionCounter} {
		assert.False(t, pending.ActorAllowed(action, stranger))
	}

	countered := &Proposal{
		ProposerID:  proposer,
		SellerID:    seller,
		Status:      ProposalCounter,
		CounteredBy: seller,
	}

	// Only the party that did not issue the counter may accept it.
	assert.True(t, countered.ActorAllowed(ProposalActionAccept, proposer))
	assert.False(t, countered.ActorAllowed(ProposalActionAccept, seller))
	assert.True(t, countered.ActorAllowed(ProposalActionReject, proposer))
	assert.True(t, countered.ActorAllowed(ProposalActionReject, seller))
	assert.False(t, countered.ActorAllowed(ProposalActionCancel, proposer))
}

func TestProposalParties(t *testing.T) {
	p := &Proposal{ProposerID: "a", SellerID: "b"}

	assert.True(t, p.IsParty("a"))
	assert.True(t, p.IsParty("b"))
	assert.False(t, p.IsParty("c"))

	assert.Equal(t, "b", p.OtherParty("a"))
	assert.Equal(t, "a", p.OtherParty("b"))
}
