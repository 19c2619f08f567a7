package controller

import (
	"errors"
	"net/http"

	"ctchen222/rehla/internal/api/apperror"
	"ctchen222/rehla/internal/api/middleware"
	"ctchen222/rehla/internal/api/models"
	"ctchen222/rehla/internal/api/response"
	"ctchen222/rehla/internal/api/service"
	"ctchen222/rehla/internal/upload"

	"github.com/gin-gonic/gin"
)

const imageField = "image"

var errBadForm = apperror.New(apperror.KindValidation, "Invalid form data")

// ImageChecker validates an upload's declared type and size.
type ImageChecker interface {
	Check(f *upload.File) error
}

// StoryController handles the story endpoints.
type StoryController struct {
	storyService service.StoryService
	images       ImageChecker
}

// NewStoryController creates a new StoryController.
func NewStoryController(storyService service.StoryService, images ImageChecker) *StoryController {
	return &StoryController{
		storyService: storyService,
		images:       images,
	}
}

// List returns every story, newest first. Authentication is optional.
func (sc *StoryController) List(c *gin.Context) {
	var viewerID string
	if user, ok := middleware.CurrentUser(c); ok {
		viewerID = user.ID
	}

	stories, err := sc.storyService.List(c.Request.Context(), viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessResponseList(c, stories)
}

// Create handles a multipart story submission.
func (sc *StoryController) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.ErrAuthRequired)
		return
	}

	image, err := sc.readImage(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	in := &models.CreateStoryInput{
		Title:       c.PostForm("title"),
		Location:    c.PostForm("location"),
		Description: c.PostForm("description"),
	}
	story, err := sc.storyService.Create(c.Request.Context(), user, in, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.CreatedResponse(c, story)
}

// Update handles a multipart edit; every field is optional.
func (sc *StoryController) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.ErrAuthRequired)
		return
	}

	image, err := sc.readImage(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	in := &models.UpdateStoryInput{
		Title:       optionalForm(c, "title"),
		Location:    optionalForm(c, "location"),
		Description: optionalForm(c, "description"),
	}
	story, err := sc.storyService.Update(c.Request.Context(), user, c.Param("id"), in, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessResponse(c, story)
}

// Delete removes a story.
func (sc *StoryController) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.ErrAuthRequired)
		return
	}

	if err := sc.storyService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessResponse(c, response.OK{OK: true})
}

// readImage returns the uploaded image, or nil when none was sent. Type and
// size are checked before any other work happens.
func (sc *StoryController) readImage(c *gin.Context) (*upload.File, error) {
	fh, err := c.FormFile(imageField)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return nil, nil
		case errors.As(err, &maxErr):
			return nil, apperror.ErrFileTooLarge
		default:
			return nil, errBadForm
		}
	}

	file := upload.FromHeader(fh)
	if err := sc.images.Check(file); err != nil {
		return nil, err
	}
	return file, nil
}

func optionalForm(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}
