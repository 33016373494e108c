package entity

import (
	"time"
)

type VehiclePhoto struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

// Vehicle listing statuses: pending_review, approved, rejected, sold, deleted.
// Only approved listings are publicly visible.
type Vehicle struct {
	ID         string `json:"id" firestore:"id"`
	CategoryID string `json:"category_id" firestore:"categoryId"`
	OwnerID    string `json:"owner_id" firestore:"ownerId"`

	Title       string  `json:"title" firestore:"title"`
	Description string  `json:"description" firestore:"description"`
	Make        string  `json:"make" firestore:"make"`
	Model       string  `json:"model" firestore:"model"`
	Year        int     `json:"year" firestore:"year"`
	Price       float64 `json:"price" firestore:"price"`
	Mileage     int     `json:"mileage,omitempty" firestore:"mileage,omitempty"`
	City        string  `json:"city,omitempty" firestore:"city,omitempty"`
	State       string  `json:"state,omitempty" firestore:"state,omitempty"`

	// Category-specific descriptive fields, validated against the category's
	// filter schema.
	Attributes map[string]interface{} `json:"attributes,omitempty" firestore:"attributes,omitempty"`
	Photos     []VehiclePhoto         `json:"photos" firestore:"photos"`

	// AcceptsTrade signals the owner is open to trade-in ("lote") proposals.
	AcceptsTrade bool `json:"accepts_trade" firestore:"acceptsTrade"`

	Status          string `json:"status" firestore:"status"`
	RejectionReason string `json:"rejection_reason,omitempty" firestore:"rejectionReason,omitempty"`

	Views     int        `json:"views" firestore:"views"`
	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
	BumpedAt  time.Time  `json:"bumped_at" firestore:"bumpedAt"`
}

// Visible reports whether the listing may appear in public search results.
func (v *Vehicle) Visible() bool {
	return v.Status == "approved" && v.DeletedAt == nil
}
