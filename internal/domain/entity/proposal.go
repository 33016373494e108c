package entity

import (
	"fmt"
	"time"
)

// ProposalStatus is a closed set; repositories reject anything that does not
// parse, so a proposal can never hold an unknown status.
type ProposalStatus string

const (
	ProposalPending   ProposalStatus = "pending"
	ProposalAccepted  ProposalStatus = "accepted"
	ProposalRejected  ProposalStatus = "rejected"
	ProposalCounter   ProposalStatus = "counter"
	ProposalCancelled ProposalStatus = "cancelled"
)

func ParseProposalStatus(s string) (ProposalStatus, error) {
	switch ProposalStatus(s) {
	case ProposalPending, ProposalAccepted, ProposalRejected, ProposalCounter, ProposalCancelled:
		return ProposalStatus(s), nil
	}
	return "", fmt.Errorf("unknown proposal status %q", s)
}

// Terminal reports whether no further transition is permitted from s.
func (s ProposalStatus) Terminal() bool {
	switch s {
	case ProposalAccepted, ProposalRejected, ProposalCancelled:
		return true
	}
	return false
}

type ProposalAction string

const (
	ProposalActionAccept  ProposalAction = "accept"
	ProposalActionReject  ProposalAction = "reject"
	ProposalActionCancel  ProposalAction = "cancel"
	ProposalActionCounter ProposalAction = "counter"
)

// Next returns the target status for action a taken from status s, or false
// when the transition is not in the table.
func (s ProposalStatus) Next(a ProposalAction) (ProposalStatus, bool) {
	switch s {
	case ProposalPending:
		switch a {
		case ProposalActionAccept:
			return ProposalAccepted, true
		case ProposalActionReject:
			return ProposalRejected, true
		case ProposalActionCancel:
			return ProposalCancelled, true
		case ProposalActionCounter:
			return ProposalCounter, true
		}
	case ProposalCounter:
		switch a {
		case ProposalActionAccept:
			return ProposalAccepted, true
		case ProposalActionReject:
			return ProposalRejected, true
		}
	}
	return "", false
}

type Proposal struct {
	ID             string `json:"id" firestore:"id"`
	VehicleID      string `json:"vehicle_id" firestore:"vehicleId"`
	TradeVehicleID string `json:"trade_vehicle_id,omitempty" firestore:"tradeVehicleId,omitempty"`
	ProposerID     string `json:"proposer_id" firestore:"proposerId"`
	SellerID       string `json:"seller_id" firestore:"sellerId"`

	OfferAmount     float64 `json:"offer_amount" firestore:"offerAmount"`
	TradePlusAmount float64 `json:"trade_plus_amount" firestore:"tradePlusAmount"`
	Message         string  `json:"message,omitempty" firestore:"message,omitempty"`

	Status ProposalStatus `json:"status" firestore:"status"`
	// CounteredBy records who issued the last counter-offer; only the other
	// party may accept it.
	CounteredBy string `json:"countered_by,omitempty" firestore:"counteredBy,omitempty"`

	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
	RespondedAt *time.Time `json:"responded_at,omitempty" firestore:"respondedAt,omitempty"`
}

// IsParty reports whether userID is one of the two negotiating identities.
func (p *Proposal) IsParty(userID string) bool {
	return userID == p.ProposerID || userID == p.SellerID
}

// ActorAllowed enforces who may trigger each transition from the proposal's
// current status. It assumes the action itself is legal per Next.
func (p *Proposal) ActorAllowed(a ProposalAction, userID string) bool {
	if !p.IsParty(userID) {
		return false
	}

	switch p.Status {
	case ProposalPending:
		switch a {
		case ProposalActionAccept, ProposalActionReject, ProposalActionCounter:
			return userID == p.SellerID
		case ProposalActionCancel:
			return userID == p.ProposerID
		}
	case ProposalCounter:
		switch a {
		case ProposalActionAccept:
			return userID != p.CounteredBy
		case ProposalActionReject:
			return true
		}
	}
	return false
}

// OtherParty returns the counterpart of userID in this negotiation.
func (p *Proposal) OtherParty(userID string) string {
	if userID == p.ProposerID {
		return p.SellerID
	}
	return p.ProposerID
}
