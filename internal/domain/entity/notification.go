package entity

import "time"

// Notification types: proposal_received, proposal_accepted,
// proposal_rejected, proposal_countered, new_message, kyc_approved,
// kyc_rejected, vehicle_approved, vehicle_rejected.
type Notification struct {
	ID         string    `json:"id" firestore:"id"`
	UserID     string    `json:"user_id" firestore:"userId"`
	Type       string    `json:"type" firestore:"type"`
	Title      string    `json:"title" firestore:"title"`
	Body       string    `json:"body,omitempty" firestore:"body,omitempty"`
	ProposalID string    `json:"proposal_id,omitempty" firestore:"proposalId,omitempty"`
	VehicleID  string    `json:"vehicle_id,omitempty" firestore:"vehicleId,omitempty"`
	IsRead     bool      `json:"is_read" firestore:"isRead"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
