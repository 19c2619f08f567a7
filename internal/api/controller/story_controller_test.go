package controller

import (
	"net/http"
	"testing"
	"time"

	"ctchen222/rehla/internal/api/apperror"
	"ctchen222/rehla/internal/api/middleware"
	"ctchen222/rehla/internal/api/models"
	"ctchen222/rehla/internal/api/service/mocks"
	"ctchen222/rehla/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newStoryRouter(t *testing.T, user *models.User, bodyLimit int64) (*gin.Engine, *mocks.MockStoryService) {
	svc := mocks.NewMockStoryService(gomock.NewController(t))
	sc := NewStoryController(svc, upload.NewHandler(nil, 0))

	r := gin.New()
	if bodyLimit > 0 {
		r.Use(middleware.BodyLimit(bodyLimit))
	}
	api := r.Group("/api/stories", asUser(user))
	api.GET("", sc.List)
	api.POST("", sc.Create)
	api.PUT("/:id", sc.Update)
	api.DELETE("/:id", sc.Delete)
	return r, svc
}

func sampleStory() *models.Story {
	ts := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	author := "u-1"
	return &models.Story{
		ID: "s-1", Title: "Wadi Rum", Location: "Jordan", Description: "Red sand and starry skies.",
		ImageURL: "/uploads/01J.jpg", AuthorID: &author,
		Author:    &models.Author{ID: "u-1", Name: "Layla", Email: "layla@example.com"},
		CreatedAt: ts, UpdatedAt: ts,
	}
}

func TestListStories(t *testing.T) {
	r, svc := newStoryRouter(t, testUser, 0)

	svc.EXPECT().List(gomock.Any(), "u-1").Return([]*models.StoryView{{Story: sampleStory(), IsOwner: true}}, nil)

	w := serve(r, jsonRequest(http.MethodGet, "/api/stories", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{
		"id": "s-1",
		"title": "Wadi Rum",
		"location": "Jordan",
		"description": "Red sand and starry skies.",
		"imageUrl": "/uploads/01J.jpg",
		"author": {"id": "u-1", "name": "Layla", "email": "layla@example.com"},
		"createdAt": "2024-06-01T08:00:00Z",
		"updatedAt": "2024-06-01T08:00:00Z",
		"isOwner": true
	}]`, w.Body.String())
}

func TestListStories_AnonymousEmpty(t *testing.T) {
	r, svc := newStoryRouter(t, nil, 0)

	svc.EXPECT().List(gomock.Any(), "").Return(nil, nil)

	w := serve(r, jsonRequest(http.MethodGet, "/api/stories", ""))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateStory(t *testing.T) {
	r, svc := newStoryRouter(t, testUser, 0)

	svc.EXPECT().
		Create(gomock.Any(), testUser, &models.CreateStoryInput{Title: "Wadi Rum", Location: "Jordan", Description: "Red sand and starry skies."}, gomock.Not(gomock.Nil())).
		DoAndReturn(func(_ any, _ *models.User, _ *models.CreateStoryInput, image *upload.File) (*models.Story, error) {
			assert.Equal(t, "trip.png", image.Filename)
			assert.Equal(t, "image/png", image.ContentType)
			assert.Equal(t, int64(3), image.Size)
			return sampleStory(), nil
		})

	req := multipartRequest(t, http.MethodPost, "/api/stories", map[string]string{
		"title": "Wadi Rum", "location": "Jordan", "description": "Red sand and starry skies.",
	}, &formFile{name: "trip.png", contentType: "image/png", data: []byte("png")})

	w := serve(r, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	var story models.Story
	decodeBody(t, w, &story)
	assert.Equal(t, "s-1", story.ID)
	require.NotNil(t, story.Author)
	assert.Equal(t, "Layla", story.Author.Name)
}

func TestCreateStory_FileChecksComeFirst(t *testing.T) {
	r, _ := newStoryRouter(t, testUser, 0)

	tests := []struct {
		name    string
		file    *formFile
		message string
	}{
		{"wrong type", &formFile{name: "notes.pdf", contentType: "application/pdf", data: []byte("%PDF")}, "Please upload an image file (jpg/png)."},
		{"too large", &formFile{name: "huge.jpg", contentType: "image/jpeg", data: make([]byte, upload.MaxFileSize+1)}, "Image must be 2MB or less."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Fields are invalid too; the file error still wins.
			req := multipartRequest(t, http.MethodPost, "/api/stories", map[string]string{"title": "x"}, tt.file)
			w := serve(r, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body errorBody
			decodeBody(t, w, &body)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestCreateStory_BodyOverLimit(t *testing.T) {
	r, _ := newStoryRouter(t, testUser, 1024)

	req := multipartRequest(t, http.MethodPost, "/api/stories", map[string]string{"title": "Wadi Rum"},
		&formFile{name: "big.jpg", contentType: "image/jpeg", data: make([]byte, 4096)})
	w := serve(r, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body errorBody
	decodeBody(t, w, &body)
	assert.Equal(t, "Image must be 2MB or less.", body.Message)
}

func TestCreateStory_NoImageReachesService(t *testing.T) {
	r, svc := newStoryRouter(t, testUser, 0)

	svc.EXPECT().Create(gomock.Any(), testUser, gomock.Any(), gomock.Nil()).
		Return(nil, apperror.Validation("imageUrl", "Trip photo is required"))

	req := multipartRequest(t, http.MethodPost, "/api/stories", map[string]string{
		"title": "Wadi Rum", "location": "Jordan", "description": "Red sand and starry skies.",
	}, nil)
	w := serve(r, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body errorBody
	decodeBody(t, w, &body)
	assert.Equal(t, "Trip photo is required", body.Message)
}

func TestCreateStory_RequiresUser(t *testing.T) {
	r, _ := newStoryRouter(t, nil, 0)

	w := serve(r, multipartRequest(t, http.MethodPost, "/api/stories", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateStory_OnlyProvidedFields(t *testing.T) {
	r, svc := newStoryRouter(t, testUser, 0)

	svc.EXPECT().Update(gomock.Any(), testUser, "s-1", gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ any, _ *models.User, _ string, in *models.UpdateStoryInput, _ *upload.File) (*models.Story, error) {
			require.NotNil(t, in.Title)
			assert.Equal(t, "New title", *in.Title)
			assert.Nil(t, in.Location)
			assert.Nil(t, in.Description)
			return sampleStory(), nil
		})

	w := serve(r, multipartRequest(t, http.MethodPut, "/api/stories/s-1", map[string]string{"title": "New title"}, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateStory_Errors(t *testing.T) {
	r, svc := newStoryRouter(t, testUser, 0)

	svc.EXPECT().Update(gomock.Any(), testUser, "missing", gomock.Any(), gomock.Any()).
		Return(nil, apperror.New(apperror.KindNotFound, "Story not found"))
	svc.EXPECT().Update(gomock.Any(), testUser, "theirs", gomock.Any(), gomock.Any()).
		Return(nil, apperror.New(apperror.KindForbidden, "You can only edit your own stories"))

	w := serve(r, multipartRequest(t, http.MethodPut, "/api/stories/missing", nil, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, multipartRequest(t, http.MethodPut, "/api/stories/theirs", nil, nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	var body errorBody
	decodeBody(t, w, &body)
	assert.Equal(t, "You can only edit your own stories", body.Message)
}

func TestDeleteStory(t *testing.T) {
	r, svc := newStoryRouter(t, testUser, 0)

	svc.EXPECT().Delete(gomock.Any(), testUser, "s-1").Return(nil)
	svc.EXPECT().Delete(gomock.Any(), testUser, "s-2").Return(apperror.New(apperror.KindForbidden, "You can only delete your own stories"))

	w := serve(r, jsonRequest(http.MethodDelete, "/api/stories/s-1", ""))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = serve(r, jsonRequest(http.MethodDelete, "/api/stories/s-2", ""))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
