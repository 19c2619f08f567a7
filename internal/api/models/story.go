package models

import (
	"strings"
	"time"
)

// Author is the public view of a story's author.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Story is a user-generated travel story. A nil AuthorID marks a legacy
// story without an owner.
type Story struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title" validate:"min=3"`
	Location    string    `db:"location" json:"location" validate:"required"`
	Description string    `db:"description" json:"description" validate:"min=10"`
	ImageURL    string    `db:"image_url" json:"imageUrl" validate:"required"`
	AuthorID    *string   `db:"author_id" json:"-"`
	Author      *Author   `db:"-" json:"author"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

var storyMessages = map[string]string{
	"title":       "Title must be at least 3 characters",
	"location":    "Location is required",
	"description": "Description must be at least 10 characters",
	"imageUrl":    "Trip photo is required",
}

// Validate checks the story against the model rules.
func (s *Story) Validate() error {
	return validateStruct(s, storyMessages)
}

// OwnedBy reports whether userID is the story's recorded author.
func (s *Story) OwnedBy(userID string) bool {
	return userID != "" && s.AuthorID != nil && *s.AuthorID == userID
}

// MutableBy reports whether userID may edit or delete the story.
// Ownerless stories are open to any authenticated caller.
func (s *Story) MutableBy(userID string) bool {
	return s.AuthorID == nil || s.OwnedBy(userID)
}

// StoryView is a story as listed to a particular viewer.
type StoryView struct {
	*Story
	IsOwner bool `json:"isOwner"`
}

// CreateStoryInput carries the text fields of a new story.
type CreateStoryInput struct {
	Title       string
	Location    string
	Description string
}

// Normalize trims all fields.
func (in *CreateStoryInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	in.Description = strings.TrimSpace(in.Description)
}

// Validate checks the fields in the order title, location, description.
func (in *CreateStoryInput) Validate() error {
	probe := Story{
		Title:       in.Title,
		Location:    in.Location,
		Description: in.Description,
		ImageURL:    "-",
	}
	return probe.Validate()
}

// UpdateStoryInput carries the fields of an edit; nil means "not provided".
type UpdateStoryInput struct {
	Title       *string
	Location    *string
	Description *string
}

// ApplyTo copies the provided fields, trimmed, onto s.
func (in *UpdateStoryInput) ApplyTo(s *Story) {
	if in.Title != nil {
		s.Title = strings.TrimSpace(*in.Title)
	}
	if in.Location != nil {
		s.Location = strings.TrimSpace(*in.Location)
	}
	if in.Description != nil {
		s.Description = strings.TrimSpace(*in.Description)
	}
}
