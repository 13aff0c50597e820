package domain

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID           uuid.UUID
	Name         string
	Slug         string // unique across categories
	Description  string
	Icon         *string
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Subcategories is filled by the service layer, ordered by DisplayOrder.
	Subcategories []Subcategory
}

type Subcategory struct {
	ID           uuid.UUID
	CategoryID   uuid.UUID
	Name         string
	Slug         string // unique within CategoryID
	Description  string
	Icon         *string
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CategoryPatch carries the optional category or subcategory fields. Nil
// leaves a field unchanged.
type CategoryPatch struct {
	Name         *string
	Description  *string
	Icon         *string
	DisplayOrder *int
}
