package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ctchen222/rehla/internal/api/apperror"
	"ctchen222/rehla/internal/api/models"
	"ctchen222/rehla/internal/api/repository"
	"ctchen222/rehla/internal/upload"

	"github.com/google/uuid"
)

//go:generate mockgen -source=story_service.go -destination=mocks/story_service_mock.go -package=mocks

// ImageStore accepts uploaded images; implemented by *upload.Handler.
type ImageStore interface {
	Accept(ctx context.Context, f *upload.File) (string, error)
	Discard(ctx context.Context, url string) error
}

// StoryService defines the interface for story business logic.
type StoryService interface {
	Create(ctx context.Context, author *models.User, in *models.CreateStoryInput, image *upload.File) (*models.Story, error)
	List(ctx context.Context, viewerID string) ([]*models.StoryView, error)
	Update(ctx context.Context, actor *models.User, id string, in *models.UpdateStoryInput, image *upload.File) (*models.Story, error)
	Delete(ctx context.Context, actor *models.User, id string) error
}

var (
	errStoryNotFound = apperror.New(apperror.KindNotFound, "Story not found")
	errPhotoRequired = apperror.Validation("imageUrl", "Trip photo is required")
	errEditForbidden = apperror.New(apperror.KindForbidden, "You can only edit your own stories")
	errDelForbidden  = apperror.New(apperror.KindForbidden, "You can only delete your own stories")
)

type storyService struct {
	storyRepo repository.StoryRepository
	images    ImageStore
	now       func() time.Time
}

// NewStoryService creates a new StoryService.
func NewStoryService(storyRepo repository.StoryRepository, images ImageStore) StoryService {
	return &storyService{
		storyRepo: storyRepo,
		images:    images,
		now:       time.Now,
	}
}

// Create validates the text fields, stores the image and persists the story.
// The image is only stored once the fields are valid.
func (s *storyService) Create(ctx context.Context, author *models.User, in *models.CreateStoryInput, image *upload.File) (*models.Story, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if image == nil {
		return nil, errPhotoRequired
	}

	imageURL, err := s.images.Accept(ctx, image)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	authorID := author.ID
	story := &models.Story{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Location:    in.Location,
		Description: in.Description,
		ImageURL:    imageURL,
		AuthorID:    &authorID,
		Author:      &models.Author{ID: author.ID, Name: author.Name, Email: author.Email},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := story.Validate(); err != nil {
		s.discard(ctx, imageURL)
		return nil, err
	}

	if err := s.storyRepo.Create(ctx, story); err != nil {
		s.discard(ctx, imageURL)
		return nil, apperror.Internal(err)
	}
	return story, nil
}

// List returns every story, newest first, flagged for the viewer.
// An empty viewerID means an anonymous viewer.
func (s *storyService) List(ctx context.Context, viewerID string) ([]*models.StoryView, error) {
	stories, err := s.storyRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	views := make([]*models.StoryView, 0, len(stories))
	for _, story := range stories {
		views = append(views, &models.StoryView{
			Story:   story,
			IsOwner: story.OwnedBy(viewerID),
		})
	}
	return views, nil
}

// Update applies the provided fields and, if given, a replacement image.
func (s *storyService) Update(ctx context.Context, actor *models.User, id string, in *models.UpdateStoryInput, image *upload.File) (*models.Story, error) {
	story, err := s.findMutable(ctx, actor, id, errEditForbidden)
	if err != nil {
		return nil, err
	}

	in.ApplyTo(story)
	if err := story.Validate(); err != nil {
		return nil, err
	}

	var newImageURL string
	if image != nil {
		newImageURL, err = s.images.Accept(ctx, image)
		if err != nil {
			return nil, err
		}
		story.ImageURL = newImageURL
	}
	story.UpdatedAt = s.now().UTC()

	if err := s.storyRepo.Update(ctx, story); err != nil {
		if newImageURL != "" {
			s.discard(ctx, newImageURL)
		}
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, errStoryNotFound
		}
		return nil, apperror.Internal(err)
	}
	return story, nil
}

// Delete removes the story permanently.
func (s *storyService) Delete(ctx context.Context, actor *models.User, id string) error {
	if _, err := s.findMutable(ctx, actor, id, errDelForbidden); err != nil {
		return err
	}

	if err := s.storyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return errStoryNotFound
		}
		return apperror.Internal(err)
	}
	return nil
}

func (s *storyService) findMutable(ctx context.Context, actor *models.User, id string, forbidden error) (*models.Story, error) {
	story, err := s.storyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if story == nil {
		return nil, errStoryNotFound
	}
	if !story.MutableBy(actor.ID) {
		return nil, forbidden
	}
	return story, nil
}

func (s *storyService) discard(ctx context.Context, url string) {
	if err := s.images.Discard(ctx, url); err != nil {
		slog.WarnContext(ctx, "failed to discard stored image", "url", url, "error", err)
	}
}
