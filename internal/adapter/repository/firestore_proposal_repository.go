package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"zedorolo/internal/domain/entity"
	"zedorolo/internal/domain/repository"
	"zedorolo/pkg/errors"
)

type firestoreProposalRepository struct {
	client *firestore.Client
}

func NewFirestoreProposalRepository(client *firestore.Client) repository.ProposalRepository {
	return &firestoreProposalRepository{
		client: client,
	}
}

func (r *firestoreProposalRepository) Create(ctx context.Context, proposal *entity.Proposal) error {
	if proposal.ID == "" {
		proposal.ID = uuid.New().String()
	}

	now := time.Now()
	proposal.CreatedAt = now
	proposal.UpdatedAt = now

	_, err := r.client.Collection("proposals").Doc(proposal.ID).Set(ctx, proposal)
	if err != nil {
		return errors.Internal("Failed to create proposal", err)
	}

	return nil
}

func (r *firestoreProposalRepository) GetByID(ctx context.Context, id string) (*entity.Proposal, error) {
	doc, err := r.client.Collection("proposals").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Proposal", err)
		}
		return nil, errors.Internal("Failed to get proposal", err)
	}

	return parseProposal(doc)
}

// UpdateStatus is the single serialization point for transitions. The
// Firestore transaction re-reads the row and only writes when the stored
// status still equals `from`; a concurrent conflicting transition makes the
// loser fail with STALE_STATE and write nothing.
func (r *firestoreProposalRepository) UpdateStatus(ctx context.Context, id string, from, to entity.ProposalStatus, extra map[string]interface{}) (*entity.Proposal, error) {
	ref := r.client.Collection("proposals").Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Proposal", err)
			}
			return errors.Internal("Failed to get proposal", err)
		}

		current, err := parseProposal(doc)
		if err != nil {
			return err
		}

		if current.Status != from {
			return errors.StaleState("This proposal was already updated")
		}

		updates := []firestore.Update{
			{Path: "status", Value: string(to)},
			{Path: "updatedAt", Value: time.Now()},
		}
		for path, value := range extra {
			updates = append(updates, firestore.Update{Path: path, Value: value})
		}

		return tx.Update(ref, updates)
	})
	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return nil, err
		}
		return nil, errors.Internal("Failed to update proposal status", err)
	}

	return r.GetByID(ctx, id)
}

func (r *firestoreProposalRepository) FindOpen(ctx context.Context, proposerID, vehicleID string) (*entity.Proposal, error) {
	iter := r.client.Collection("proposals").
		Where("proposerId", "==", proposerID).
		Where("vehicleId", "==", vehicleID).
		Where("status", "in", []string{string(entity.ProposalPending), string(entity.ProposalCounter)}).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Proposal", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query open proposal", err)
	}

	return parseProposal(doc)
}

func (r *firestoreProposalRepository) ListByUserID(ctx context.Context, userID string, role string, statusFilter string, limit, offset int) ([]*entity.Proposal, int64, error) {
	var fields []string
	switch role {
	case "proposer":
		fields = []string{"proposerId"}
	case "seller":
		fields = []string{"sellerId"}
	default:
		fields = []string{"proposerId", "sellerId"}
	}

	var all []*entity.Proposal
	for _, field := range fields {
		query := r.client.Collection("proposals").Query.Where(field, "==", userID)
		if statusFilter != "" {
			query = query.Where("status", "==", statusFilter)
		}

		iter := query.Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, 0, errors.Internal("Failed to iterate proposals", err)
			}

			proposal, err := parseProposal(doc)
			if err != nil {
				return nil, 0, err
			}
			all = append(all, proposal)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))

	start := offset
	end := offset + limit
	if limit <= 0 {
		end = len(all)
	}
	if start >= len(all) {
		return []*entity.Proposal{}, total, nil
	}
	if end > len(all) {
		end = len(all)
	}

	return all[start:end], total, nil
}

func (r *firestoreProposalRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()

	_, err := r.client.Collection("proposals").Doc(message.ProposalID).
		Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreProposalRepository) ListMessages(ctx context.Context, proposalID string, limit, offset int) ([]*entity.Message, int64, error) {
	// Ascending send order; the document ID breaks createdAt ties so repeated
	// reads always return the same sequence.
	query := r.client.Collection("proposals").Doc(proposalID).
		Collection("messages").
		OrderBy("createdAt", firestore.Asc).
		OrderBy("id", firestore.Asc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count messages", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, 0, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}

	return messages, total, nil
}

func (r *firestoreProposalRepository) MarkMessagesRead(ctx context.Context, proposalID, readerID string) (int, error) {
	iter := r.client.Collection("proposals").Doc(proposalID).
		Collection("messages").
		Where("isRead", "==", false).
		Documents(ctx)

	marked := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return marked, errors.Internal("Failed to iterate unread messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return marked, errors.Internal("Failed to parse message data", err)
		}

		// A party never marks its own messages read.
		if message.SenderID == readerID {
			continue
		}

		_, err = doc.Ref.Update(ctx, []firestore.Update{
			{Path: "isRead", Value: true},
		})
		if err != nil {
			return marked, errors.Internal("Failed to mark message read", err)
		}
		marked++
	}

	return marked, nil
}

func parseProposal(doc *firestore.DocumentSnapshot) (*entity.Proposal, error) {
	var proposal entity.Proposal
	if err := doc.DataTo(&proposal); err != nil {
		return nil, errors.Internal("Failed to parse proposal data", err)
	}

	if _, err := entity.ParseProposalStatus(string(proposal.Status)); err != nil {
		return nil, errors.Internal("Proposal has an unknown status", err)
	}

	return &proposal, nil
}
