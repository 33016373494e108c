package entity

import (
	"fmt"
	"time"
)

type KYCStatus string

const (
	KYCPending     KYCStatus = "pending"
	KYCUnderReview KYCStatus = "under_review"
	KYCApproved    KYCStatus = "approved"
	KYCRejected    KYCStatus = "rejected"
)

func ParseKYCStatus(s string) (KYCStatus, error) {
	switch KYCStatus(s) {
	case KYCPending, KYCUnderReview, KYCApproved, KYCRejected:
		return KYCStatus(s), nil
	}
	return "", fmt.Errorf("unknown kyc status %q", s)
}

// KYCVerification is the single active identity-verification record per user.
// Document URLs point at private storage objects; clients get time-limited
// signed URLs, never the raw paths.
type KYCVerification struct {
	ID     string `json:"id" firestore:"id"`
	UserID string `json:"user_id" firestore:"userId"`

	FullName       string    `json:"full_name" firestore:"fullName"`
	DateOfBirth    time.Time `json:"date_of_birth" firestore:"dateOfBirth"`
	DocumentType   string    `json:"document_type" firestore:"documentType"` // "cpf" or "cnpj"
	DocumentNumber string    `json:"document_number" firestore:"documentNumber"`

	DocumentFrontURL string `json:"document_front_url" firestore:"documentFrontUrl"`
	DocumentBackURL  string `json:"document_back_url,omitempty" firestore:"documentBackUrl,omitempty"`
	SelfieURL        string `json:"selfie_url" firestore:"selfieUrl"`

	Status          KYCStatus `json:"status" firestore:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty" firestore:"rejectionReason,omitempty"`
	ReviewedBy      string    `json:"reviewed_by,omitempty" firestore:"reviewedBy,omitempty"`

	CreatedAt  time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time  `json:"updated_at" firestore:"updatedAt"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty" firestore:"reviewedAt,omitempty"`
}

// CanResubmit reports whether a new document set may be submitted over this
// record. Approved users never resubmit; a record under review must be
// decided first.
func (k *KYCVerification) CanResubmit() bool {
	return k.Status == KYCRejected
}
