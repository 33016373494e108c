package usecase

import (
	"context"
	"time"

	"zedorolo/internal/domain/entity"
	"zedorolo/internal/domain/repository"
	"zedorolo/pkg/errors"
	"zedorolo/pkg/logger"
	"zedorolo/pkg/utils"
)

type KYCUseCase struct {
	kycRepo        repository.KYCRepository
	userRepo       repository.UserRepository
	storage        FileStorage
	notificationUC *NotificationUseCase
}

func NewKYCUseCase(
	kycRepo repository.KYCRepository,
	userRepo repository.UserRepository,
	storage FileStorage,
	notificationUC *NotificationUseCase,
) *KYCUseCase {
	return &KYCUseCase{
		kycRepo:        kycRepo,
		userRepo:       userRepo,
		storage:        storage,
		notificationUC: notificationUC,
	}
}

type SubmitKYCInput struct {
	FullName         string
	DateOfBirth      time.Time
	DocumentType     string // "cpf" or "cnpj"
	DocumentNumber   string
	DocumentFrontURL string
	DocumentBackURL  string
	SelfieURL        string
}

func (uc *KYCUseCase) Submit(ctx context.Context, userID string, input SubmitKYCInput) (*entity.KYCVerification, error) {
	switch input.DocumentType {
	case "cpf":
		if !utils.ValidCPF(input.DocumentNumber) {
			return nil, errors.BadRequest("Invalid CPF number", nil)
		}
	case "cnpj":
		if !utils.ValidCNPJ(input.DocumentNumber) {
			return nil, errors.BadRequest("Invalid CNPJ number", nil)
		}
	default:
		return nil, errors.BadRequest("Document type must be cpf or cnpj", nil)
	}

	if input.DocumentFrontURL == "" || input.SelfieURL == "" {
		return nil, errors.BadRequest("Document front and selfie images are required", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	existing, err := uc.kycRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	if existing != nil && !existing.CanResubmit() {
		switch existing.Status {
		case entity.KYCApproved:
			return nil, errors.BadRequest("You are already verified", nil)
		default:
			return nil, errors.Conflict("A verification is already in progress")
		}
	}

	verification := &entity.KYCVerification{
		UserID:           userID,
		FullName:         input.FullName,
		DateOfBirth:      input.DateOfBirth,
		DocumentType:     input.DocumentType,
		DocumentNumber:   utils.NormalizeDocument(input.DocumentNumber),
		DocumentFrontURL: input.DocumentFrontURL,
		DocumentBackURL:  input.DocumentBackURL,
		SelfieURL:        input.SelfieURL,
		Status:           entity.KYCPending,
	}

	// A rejected record is overwritten in place so each user keeps exactly
	// one verification.
	if existing != nil {
		verification.ID = existing.ID
		verification.CreatedAt = existing.CreatedAt
		if err := uc.kycRepo.Update(ctx, verification); err != nil {
			return nil, err
		}
	} else {
		if err := uc.kycRepo.Create(ctx, verification); err != nil {
			return nil, err
		}
	}

	user.KYCStatus = entity.KYCPending
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		logger.Error("Failed to mirror KYC status onto user %s: %v", userID, err)
	}

	return verification, nil
}

func (uc *KYCUseCase) GetMyVerification(ctx context.Context, userID string) (*entity.KYCVerification, error) {
	return uc.kycRepo.GetByUserID(ctx, userID)
}

// Admin operations.

func (uc *KYCUseCase) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.KYCVerification, int64, error) {
	var kycStatus entity.KYCStatus
	if status != "" {
		parsed, err := entity.ParseKYCStatus(status)
		if err != nil {
			return nil, 0, errors.BadRequest("Invalid KYC status filter", err)
		}
		kycStatus = parsed
	}

	return uc.kycRepo.ListByStatus(ctx, kycStatus, limit, offset)
}

// DocumentLinks carries short-lived signed URLs for the reviewer. The stored
// object paths never leave the server.
type DocumentLinks struct {
	DocumentFrontURL string `json:"document_front_url"`
	DocumentBackURL  string `json:"document_back_url,omitempty"`
	SelfieURL        string `json:"selfie_url"`
	ExpiresIn        string `json:"expires_in"`
}

func (uc *KYCUseCase) GetDocumentLinks(ctx context.Context, verificationID string) (*DocumentLinks, error) {
	verification, err := uc.kycRepo.GetByID(ctx, verificationID)
	if err != nil {
		return nil, err
	}

	const expiry = 15 * time.Minute

	links := &DocumentLinks{ExpiresIn: expiry.String()}

	links.DocumentFrontURL, err = uc.storage.GenerateSignedDownloadURL(ctx, verification.DocumentFrontURL, expiry)
	if err != nil {
		return nil, errors.Internal("Failed to sign document URL", err)
	}

	if verification.DocumentBackURL != "" {
		links.DocumentBackURL, err = uc.storage.GenerateSignedDownloadURL(ctx, verification.DocumentBackURL, expiry)
		if err != nil {
			return nil, errors.Internal("Failed to sign document URL", err)
		}
	}

	links.SelfieURL, err = uc.storage.GenerateSignedDownloadURL(ctx, verification.SelfieURL, expiry)
	if err != nil {
		return nil, errors.Internal("Failed to sign document URL", err)
	}

	return links, nil
}

type ReviewKYCInput struct {
	Approve bool
	Reason  string
}

func (uc *KYCUseCase) Review(ctx context.Context, adminID, verificationID string, input ReviewKYCInput) (*entity.KYCVerification, error) {
	verification, err := uc.kycRepo.GetByID(ctx, verificationID)
	if err != nil {
		return nil, err
	}

	if verification.Status != entity.KYCPending && verification.Status != entity.KYCUnderReview {
		return nil, errors.Conflict("This verification was already decided")
	}

	if !input.Approve && input.Reason == "" {
		return nil, errors.BadRequest("A rejection reason is required", nil)
	}

	now := time.Now()
	verification.ReviewedBy = adminID
	verification.ReviewedAt = &now
	if input.Approve {
		verification.Status = entity.KYCApproved
		verification.RejectionReason = ""
	} else {
		verification.Status = entity.KYCRejected
		verification.RejectionReason = input.Reason
	}

	if err := uc.kycRepo.Update(ctx, verification); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, verification.UserID)
	if err == nil {
		user.KYCStatus = verification.Status
		user.UpdatedAt = now
		if err := uc.userRepo.Update(ctx, user); err != nil {
			logger.Error("Failed to mirror KYC status onto user %s: %v", user.ID, err)
		}
	}

	if input.Approve {
		uc.notificationUC.Push(ctx, &entity.Notification{
			UserID: verification.UserID,
			Type:   "kyc_approved",
			Title:  "Identity verified",
			Body:   "Your account is verified. You can now publish listings and send proposals.",
		})
	} else {
		uc.notificationUC.Push(ctx, &entity.Notification{
			UserID: verification.UserID,
			Type:   "kyc_rejected",
			Title:  "Verification rejected",
			Body:   input.Reason,
		})
	}

	return verification, nil
}

// StartReview flags a submission as being looked at so two reviewers do not
// pick up the same one.
func (uc *KYCUseCase) StartReview(ctx context.Context, verificationID string) (*entity.KYCVerification, error) {
	verification, err := uc.kycRepo.GetByID(ctx, verificationID)
	if err != nil {
		return nil, err
	}

	if verification.Status != entity.KYCPending {
		return nil, errors.Conflict("This verification is not awaiting review")
	}

	verification.Status = entity.KYCUnderReview
	if err := uc.kycRepo.Update(ctx, verification); err != nil {
		return nil, err
	}

	return verification, nil
}
