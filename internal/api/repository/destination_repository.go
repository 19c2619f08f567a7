package repository

import (
	"context"
	"fmt"

	"ctchen222/rehla/internal/api/models"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=destination_repository.go -destination=mocks/destination_repository_mock.go -package=mocks

// DestinationRepository defines the interface for catalog data operations.
type DestinationRepository interface {
	ListAll(ctx context.Context) ([]*models.Destination, error)
	ListFirst(ctx context.Context, n int) ([]*models.Destination, error)
	InsertIgnore(ctx context.Context, destinations []*models.Destination) error
}

type sqliteDestinationRepository struct {
	db *sqlx.DB
}

// NewDestinationRepository creates a new SQLite-based DestinationRepository.
func NewDestinationRepository(db *sqlx.DB) DestinationRepository {
	return &sqliteDestinationRepository{db: db}
}

const selectDestinations = `SELECT id, title, location, description, image_url, region, created_at, updated_at FROM destinations`

// ListAll returns the catalog newest first.
func (r *sqliteDestinationRepository) ListAll(ctx context.Context) ([]*models.Destination, error) {
	ctx, span := tracer.Start(ctx, "DestinationRepository.ListAll")
	defer span.End()

	destinations := []*models.Destination{}
	err := r.db.SelectContext(ctx, &destinations, selectDestinations+` ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	return destinations, nil
}

// ListFirst returns up to n destinations in storage order.
func (r *sqliteDestinationRepository) ListFirst(ctx context.Context, n int) ([]*models.Destination, error) {
	ctx, span := tracer.Start(ctx, "DestinationRepository.ListFirst")
	defer span.End()
	span.SetAttributes(attribute.Int("limit", n))

	destinations := []*models.Destination{}
	err := r.db.SelectContext(ctx, &destinations, selectDestinations+` ORDER BY rowid LIMIT ?`, n)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	return destinations, nil
}

// InsertIgnore inserts destinations in one transaction, skipping ids that
// already exist.
func (r *sqliteDestinationRepository) InsertIgnore(ctx context.Context, destinations []*models.Destination) error {
	ctx, span := tracer.Start(ctx, "DestinationRepository.InsertIgnore")
	defer span.End()
	span.SetAttributes(attribute.Int("destination.count", len(destinations)))

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT OR IGNORE INTO destinations (id, title, location, description, image_url, region, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, d := range destinations {
		_, err := tx.ExecContext(ctx, query,
			d.ID, d.Title, d.Location, d.Description, d.ImageURL, d.Region, d.CreatedAt.UTC(), d.UpdatedAt.UTC())
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to insert destination %q: %w", d.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to commit destinations: %w", err)
	}
	return nil
}
