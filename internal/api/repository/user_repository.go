package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ctchen222/rehla/internal/api/apperror"
	"ctchen222/rehla/internal/api/models"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("api.repository")

//go:generate mockgen -source=user_repository.go -destination=mocks/user_repository_mock.go -package=mocks

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmailWithPassword(ctx context.Context, email string) (*models.User, error)
}

type sqliteUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new SQLite-based UserRepository.
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &sqliteUserRepository{db: db}
}

// CreateUser inserts a user whose password is already hashed.
// A duplicate email surfaces as apperror.ErrDuplicateEmail.
func (r *sqliteUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	ctx, span := tracer.Start(ctx, "UserRepository.CreateUser")
	defer span.End()

	query := `INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrDuplicateEmail
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID loads a user without the password hash. A missing user is (nil, nil).
func (r *sqliteUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.GetByID")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id))

	var user models.User
	query := `SELECT id, name, email, created_at FROM users WHERE id = ?`
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

// ExistsByEmail reports whether an account uses email.
func (r *sqliteUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.ExistsByEmail")
	defer span.End()

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = ?)`
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return exists, nil
}

// GetByEmailWithPassword is the only lookup that reads the password hash.
func (r *sqliteUserRepository) GetByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.GetByEmailWithPassword")
	defer span.End()

	var user models.User
	query := `SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
