package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ctchen222/rehla/internal/api/apperror"
	"ctchen222/rehla/internal/api/models"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=story_repository.go -destination=mocks/story_repository_mock.go -package=mocks

// StoryRepository defines the interface for story data operations.
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	FindByID(ctx context.Context, id string) (*models.Story, error)
	List(ctx context.Context) ([]*models.Story, error)
	Update(ctx context.Context, story *models.Story) error
	Delete(ctx context.Context, id string) error
}

type sqliteStoryRepository struct {
	db *sqlx.DB
}

// NewStoryRepository creates a new SQLite-based StoryRepository.
func NewStoryRepository(db *sqlx.DB) StoryRepository {
	return &sqliteStoryRepository{db: db}
}

// storyRow is a story joined with its author's public fields.
type storyRow struct {
	models.Story
	AuthorName  sql.NullString `db:"author_name"`
	AuthorEmail sql.NullString `db:"author_email"`
}

func (row *storyRow) toModel() *models.Story {
	s := row.Story
	// A dangling author id resolves to a null author.
	if s.AuthorID != nil && row.AuthorName.Valid {
		s.Author = &models.Author{
			ID:    *s.AuthorID,
			Name:  row.AuthorName.String,
			Email: row.AuthorEmail.String,
		}
	}
	return &s
}

const selectStories = `
SELECT s.id, s.title, s.location, s.description, s.image_url, s.author_id,
       s.created_at, s.updated_at, u.name AS author_name, u.email AS author_email
FROM stories s
LEFT JOIN users u ON u.id = s.author_id`

// Create inserts a new story.
func (r *sqliteStoryRepository) Create(ctx context.Context, story *models.Story) error {
	ctx, span := tracer.Start(ctx, "StoryRepository.Create")
	defer span.End()

	query := `INSERT INTO stories (id, title, location, description, image_url, author_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		story.ID, story.Title, story.Location, story.Description, story.ImageURL,
		story.AuthorID, story.CreatedAt.UTC(), story.UpdatedAt.UTC())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return fmt.Errorf("failed to create story: %w", err)
	}
	return nil
}

// FindByID loads a story with its author. A missing story is (nil, nil).
func (r *sqliteStoryRepository) FindByID(ctx context.Context, id string) (*models.Story, error) {
	ctx, span := tracer.Start(ctx, "StoryRepository.FindByID")
	defer span.End()
	span.SetAttributes(attribute.String("story.id", id))

	var row storyRow
	err := r.db.GetContext(ctx, &row, selectStories+` WHERE s.id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to find story: %w", err)
	}
	return row.toModel(), nil
}

// List returns every story, newest first. Stories created within the same
// timestamp keep reverse insertion order.
func (r *sqliteStoryRepository) List(ctx context.Context) ([]*models.Story, error) {
	ctx, span := tracer.Start(ctx, "StoryRepository.List")
	defer span.End()

	var rows []storyRow
	err := r.db.SelectContext(ctx, &rows, selectStories+` ORDER BY s.created_at DESC, s.rowid DESC`)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}

	stories := make([]*models.Story, 0, len(rows))
	for i := range rows {
		stories = append(stories, rows[i].toModel())
	}
	span.SetAttributes(attribute.Int("story.count", len(stories)))
	return stories, nil
}

// Update persists the mutable fields of story.
func (r *sqliteStoryRepository) Update(ctx context.Context, story *models.Story) error {
	ctx, span := tracer.Start(ctx, "StoryRepository.Update")
	defer span.End()
	span.SetAttributes(attribute.String("story.id", story.ID))

	query := `UPDATE stories SET title = ?, location = ?, description = ?, image_url = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		story.Title, story.Location, story.Description, story.ImageURL, story.UpdatedAt.UTC(), story.ID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update story: %w", err)
	}
	return expectAffected(res)
}

// Delete removes a story permanently.
func (r *sqliteStoryRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "StoryRepository.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("story.id", id))

	res, err := r.db.ExecContext(ctx, `DELETE FROM stories WHERE id = ?`, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete story: %w", err)
	}
	return expectAffected(res)
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
