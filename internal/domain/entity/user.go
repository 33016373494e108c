package entity

import (
	"time"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	Phone    string `json:"phone" firestore:"phone"`
	Bio      string `json:"bio" firestore:"bio"`
	Role     string `json:"role" firestore:"role"` // "user" or "admin"
	Status   string `json:"status" firestore:"status"`

	FullName  string `json:"full_name,omitempty" firestore:"fullName,omitempty"`
	City      string `json:"city,omitempty" firestore:"city,omitempty"`
	State     string `json:"state,omitempty" firestore:"state,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`

	// Mirrors the status of the user's active KYC record so listing and
	// proposal checks do not need a second read.
	KYCStatus KYCStatus `json:"kyc_status" firestore:"kycStatus"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// Verified reports whether the user passed identity verification and may
// publish listings or open negotiations.
func (u *User) Verified() bool {
	return u.KYCStatus == KYCApproved
}
