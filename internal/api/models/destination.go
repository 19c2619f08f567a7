package models

import "time"

// Destination is an entry of the curated travel catalog.
type Destination struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title" validate:"required"`
	Location    string    `db:"location" json:"location" validate:"required"`
	Description string    `db:"description" json:"description" validate:"required"`
	ImageURL    string    `db:"image_url" json:"imageUrl" validate:"required"`
	Region      string    `db:"region" json:"region" validate:"required"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

var destinationMessages = map[string]string{
	"title":       "Title is required",
	"location":    "Location is required",
	"description": "Description is required",
	"imageUrl":    "Image URL is required",
	"region":      "Region is required",
}

// Validate checks that every catalog field is present.
func (d *Destination) Validate() error {
	return validateStruct(d, destinationMessages)
}
