package entity

import (
	"time"
)

// CategoryFilterField describes one facet of a category's filter panel. The
// frontend renders all categories with a single generic form driven by this
// schema instead of one bespoke panel per category.
type CategoryFilterField struct {
	Name     string   `json:"name" firestore:"name"`
	Label    string   `json:"label" firestore:"label"`
	Type     string   `json:"type" firestore:"type"` // "text", "number", "select", "boolean", "range"
	Required bool     `json:"required" firestore:"required"`
	Options  []string `json:"options,omitempty" firestore:"options,omitempty"`
	Unit     string   `json:"unit,omitempty" firestore:"unit,omitempty"`
}

// VehicleCategory covers the ~15 listing categories (carro, moto, caminhão,
// barco, trator, ...), each with its own filter schema.
type VehicleCategory struct {
	ID           string                `json:"id" firestore:"id"`
	Name         string                `json:"name" firestore:"name"`
	Slug         string                `json:"slug" firestore:"slug"`
	Description  string                `json:"description" firestore:"description"`
	Icon         string                `json:"icon,omitempty" firestore:"icon,omitempty"`
	FilterFields []CategoryFilterField `json:"filter_fields" firestore:"filterFields"`
	Status       string                `json:"status" firestore:"status"`
	CreatedAt    time.Time             `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time             `json:"updated_at" firestore:"updatedAt"`
}
