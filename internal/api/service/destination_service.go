package service

import (
	"context"
	"log/slog"
	"time"

	"ctchen222/rehla/internal/api/apperror"
	"ctchen222/rehla/internal/api/models"
	apirepository "ctchen222/rehla/internal/api/repository"
	"ctchen222/rehla/internal/repository"
)

//go:generate mockgen -source=destination_service.go -destination=mocks/destination_service_mock.go -package=mocks

// PreviewSize is the number of destinations in the homepage preview.
const PreviewSize = 3

// DestinationService serves the read-only travel catalog. Both reads seed
// the catalog when it is empty.
type DestinationService interface {
	ListAll(ctx context.Context) ([]*models.Destination, error)
	ListPreview(ctx context.Context) ([]*models.Destination, error)
}

type destinationService struct {
	repo  apirepository.DestinationRepository
	cache repository.DestinationCache
	now   func() time.Time
}

// NewDestinationService creates a new DestinationService.
func NewDestinationService(repo apirepository.DestinationRepository, cache repository.DestinationCache) DestinationService {
	return &destinationService{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}
}

// ListAll returns the whole catalog, newest first.
func (s *destinationService) ListAll(ctx context.Context) ([]*models.Destination, error) {
	return s.read(ctx, repository.KeyAllDestinations, s.repo.ListAll)
}

// ListPreview returns the first PreviewSize destinations in storage order.
func (s *destinationService) ListPreview(ctx context.Context) ([]*models.Destination, error) {
	return s.read(ctx, repository.KeyPreview, func(ctx context.Context) ([]*models.Destination, error) {
		return s.repo.ListFirst(ctx, PreviewSize)
	})
}

func (s *destinationService) read(ctx context.Context, key string, load func(context.Context) ([]*models.Destination, error)) ([]*models.Destination, error) {
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "destination cache read failed", "key", key, "error", err)
	} else if ok {
		return cached, nil
	}

	destinations, err := load(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(destinations) == 0 {
		if err := s.seed(ctx); err != nil {
			return nil, apperror.Internal(err)
		}
		if destinations, err = load(ctx); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	if err := s.cache.Set(ctx, key, destinations); err != nil {
		slog.WarnContext(ctx, "destination cache write failed", "key", key, "error", err)
	}
	return destinations, nil
}

// seed inserts the built-in catalog. Seed ids are deterministic and inserts
// ignore existing rows, so concurrent first reads cannot duplicate entries.
func (s *destinationService) seed(ctx context.Context) error {
	seeds := SeedDestinations(s.now().UTC())
	for _, d := range seeds {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	if err := s.repo.InsertIgnore(ctx, seeds); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, "destination cache invalidation failed", "error", err)
	}
	slog.InfoContext(ctx, "destination catalog seeded", "count", len(seeds))
	return nil
}
