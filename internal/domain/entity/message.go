package entity

import "time"

// Message belongs to exactly one proposal thread. Immutable after creation
// except for the IsRead flag.
type Message struct {
	ID         string    `json:"id" firestore:"id"`
	ProposalID string    `json:"proposal_id" firestore:"proposalId"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	Content    string    `json:"content" firestore:"content"`
	IsRead     bool      `json:"is_read" firestore:"isRead"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
