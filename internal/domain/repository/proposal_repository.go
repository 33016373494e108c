package repository

import (
	"context"

	"zedorolo/internal/domain/entity"
)

// ProposalRepository is the aggregate root for negotiations: the proposal row
// plus its message thread.
type ProposalRepository interface {
	Create(ctx context.Context, proposal *entity.Proposal) error
	GetByID(ctx context.Context, id string) (*entity.Proposal, error)

	// UpdateStatus performs the conditional transition "set status to `to`
	// where id = proposal and status = `from`". When the stored status no
	// longer equals `from` it fails with a STALE_STATE error and writes
	// nothing. extra carries additional store field updates applied in the
	// same write (counter terms, responder bookkeeping).
	UpdateStatus(ctx context.Context, id string, from, to entity.ProposalStatus, extra map[string]interface{}) (*entity.Proposal, error)

	// FindOpen returns the non-terminal proposal between proposer and vehicle,
	// or a NOT_FOUND error. At most one such row exists at a time.
	FindOpen(ctx context.Context, proposerID, vehicleID string) (*entity.Proposal, error)

	ListByUserID(ctx context.Context, userID string, role string, status string, limit, offset int) ([]*entity.Proposal, int64, error)

	// Message thread methods. Listing is always createdAt ascending with ID as
	// the tiebreak, so repeated reads return the same sequence.
	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, proposalID string, limit, offset int) ([]*entity.Message, int64, error)

	// MarkMessagesRead flips every unread message in the thread NOT authored
	// by readerID; a party never marks its own messages. Returns how many
	// messages changed.
	MarkMessagesRead(ctx context.Context, proposalID, readerID string) (int, error)
}
