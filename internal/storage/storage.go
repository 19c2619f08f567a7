// Package storage persists uploaded images and tells where they are served from.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidName is returned for object names that are not a single path element.
var ErrInvalidName = errors.New("storage: invalid object name")

// Storage is an upload backend.
type Storage interface {
	// Save writes r under name and returns the URL the object is served from.
	// It never overwrites an existing object.
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, name string) error
}
