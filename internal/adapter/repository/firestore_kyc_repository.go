package repository

import (
	"context"
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

type firestoreKYCRepository struct {
	client *firestore.Client
}

func NewFirestoreKYCRepository(client *firestore.Client) repository.KYCRepository {
	return &firestoreKYCRepository{
		client: client,
	}
}

func (r *firestoreKYCRepository) Create(ctx context.Context, verification *entity.KYCVerification) error {
	if verification.ID == "" {
		verification.ID = uuid.New().String()
	}

	now := time.Now()
	if verification.CreatedAt.IsZero() {
		verification.CreatedAt = now
	}
	verification.UpdatedAt = now

	_, err := r.client.Collection("kyc_verifications").Doc(verification.ID).Set(ctx, verification)
	if err != nil {
		return errors.Internal("Failed to create KYC verification", err)
	}

	return nil
}

func (r *firestoreKYCRepository) GetByID(ctx context.Context, id string) (*entity.KYCVerification, error) {
	doc, err := r.client.Collection("kyc_verifications").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("KYC verification", err)
		}
		return nil, errors.Internal("Failed to get KYC verification", err)
	}

	var verification entity.KYCVerification
	if err := doc.DataTo(&verification); err != nil {
		return nil, errors.Internal("Failed to parse KYC verification data", err)
	}

	return &verification, nil
}

func (r *firestoreKYCRepository) GetByUserID(ctx context.Context, userID string) (*entity.KYCVerification, error) {
	iter := r.client.Collection("kyc_verifications").Where("userId", "==", userID).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("KYC verification", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query KYC verification", err)
	}

	var verification entity.KYCVerification
	if err := doc.DataTo(&verification); err != nil {
		return nil, errors.Internal("Failed to parse KYC verification data", err)
	}

	return &verification, nil
}

func (r *firestoreKYCRepository) Update(ctx context.Context, verification *entity.KYCVerification) error {
	verification.UpdatedAt = time.Now()

	_, err := r.client.Collection("kyc_verifications").Doc(verification.ID).Set(ctx, verification)
	if err != nil {
		return errors.Internal("Failed to update KYC verification", err)
	}

	return nil
}

func (r *firestoreKYCRepository) ListByStatus(ctx context.Context, kycStatus entity.KYCStatus, limit, offset int) ([]*entity.KYCVerification, int64, error) {
	query := r.client.Collection("kyc_verifications").Query
	if kycStatus != "" {
		query = query.Where("status", "==", string(kycStatus))
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count KYC verifications", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("createdAt", firestore.Asc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var verifications []*entity.KYCVerification

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate KYC verifications", err)
		}

		var verification entity.KYCVerification
		if err := doc.DataTo(&verification); err != nil {
			return nil, 0, errors.Internal("Failed to parse KYC verification data", err)
		}
		verifications = append(verifications, &verification)
	}

	return verifications, total, nil
}
