package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ctchen222/rehla/internal/api/apperror"
	"ctchen222/rehla/internal/api/models"
	"ctchen222/rehla/internal/api/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=user_service.go -destination=mocks/user_service_mock.go -package=mocks

// TokenIssuer signs session tokens for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// UserService defines the interface for user-related business logic.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type userService struct {
	userRepo   repository.UserRepository
	tokens     TokenIssuer
	bcryptCost int
	now        func() time.Time
}

// NewUserService creates a new UserService. bcryptCost below bcrypt.MinCost
// falls back to bcrypt.DefaultCost.
func NewUserService(userRepo repository.UserRepository, tokens TokenIssuer, bcryptCost int) UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// Register handles user registration.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Check if user already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}

	return s.authResponse(user, "Registration successful")
}

// Login verifies the credentials and returns a token on success. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	req.Normalize()
	if req.Email == "" || req.Password == "" {
		return nil, apperror.New(apperror.KindValidation, "Email and password are required")
	}

	user, err := s.userRepo.GetByEmailWithPassword(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.authResponse(user, "Login successful")
}

// GetByID returns the user or apperror.ErrNotFound.
func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

func (s *userService) authResponse(user *models.User, message string) (*models.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &models.AuthResponse{
		Message: message,
		Token:   token,
		User:    user.Public(),
	}, nil
}
