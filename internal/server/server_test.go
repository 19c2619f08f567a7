package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"ctchen222/rehla/internal/api/auth"
	"ctchen222/rehla/internal/api/controller"
	"ctchen222/rehla/internal/api/middleware"
	apirepository "ctchen222/rehla/internal/api/repository"
	"ctchen222/rehla/internal/api/service"
	"ctchen222/rehla/internal/db"
	"ctchen222/rehla/internal/repository"
	"ctchen222/rehla/internal/storage"
	"ctchen222/rehla/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	pool, err := db.Connect(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	local, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	tokens := auth.NewTokenService("integration-secret", time.Hour)
	uploads := upload.NewHandler(local, 0)
	cache := repository.NewDestinationCache(nil, 0)
	users := service.NewUserService(apirepository.NewUserRepository(pool), tokens, bcrypt.MinCost)
	stories := service.NewStoryService(apirepository.NewStoryRepository(pool), uploads)
	destinations := service.NewDestinationService(apirepository.NewDestinationRepository(pool), cache)

	srv := NewServer(Options{
		Logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		AllowedOrigins:     []string{"*"},
		MaxRequestBodySize: 8 << 20,
		UploadDir:          local.Dir(),
	}, Controllers{
		User:        controller.NewUserController(users),
		Story:       controller.NewStoryController(stories, uploads),
		Destination: controller.NewDestinationController(destinations),
		Health:      controller.NewHealthController(pool, cache),
	}, middleware.NewAuthenticator(tokens, users))

	return srv.Handler()
}

type client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	return w
}

func (c *client) json(method, path string, body any) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *client) form(method, path string, fields map[string]string, image []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(c.t, mw.WriteField(k, v))
	}
	if image != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="photo.JPG"`)
		h.Set("Content-Type", "image/jpeg")
		part, err := mw.CreatePart(h)
		require.NoError(c.t, err)
		_, err = part.Write(image)
		require.NoError(c.t, err)
	}
	require.NoError(c.t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type authBody struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

type storyBody struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	IsOwner  bool   `json:"isOwner"`
	Author   *struct {
		ID string `json:"id"`
	} `json:"author"`
}

func TestStoryLifecycle(t *testing.T) {
	h := newTestServer(t)
	alice := &client{t: t, handler: h}
	bob := &client{t: t, handler: h}
	anon := &client{t: t, handler: h}

	w := alice.json(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Alice", "email": "Alice@Example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reg := decode[authBody](t, w)
	assert.Equal(t, "alice@example.com", reg.User.Email)
	alice.token = reg.Token

	w = alice.json(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Alice Again", "email": "alice@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = bob.json(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Bob", "email": "bob@example.com", "password": "secret2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = bob.json(http.MethodPost, "/api/auth/login", map[string]string{"email": "BOB@example.com", "password": "secret2"})
	require.Equal(t, http.StatusOK, w.Code)
	bob.token = decode[authBody](t, w).Token

	w = alice.json(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, reg.User.ID, decode[struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}](t, w).User.ID)

	w = anon.form(http.MethodPost, "/api/stories", map[string]string{"title": "Nope"}, []byte("jpeg"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = alice.form(http.MethodPost, "/api/stories", map[string]string{
		"title": "Wadi Rum", "location": "Jordan", "description": "Red sand and starry skies.",
	}, []byte("jpeg-bytes"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[storyBody](t, w)
	assert.Regexp(t, `^/uploads/[0-9A-Z]{26}\.jpg$`, created.ImageURL)

	img := anon.do(httptest.NewRequest(http.MethodGet, created.ImageURL, nil))
	assert.Equal(t, http.StatusOK, img.Code)
	assert.Equal(t, "jpeg-bytes", img.Body.String())

	w = bob.json(http.MethodGet, "/api/stories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]storyBody](t, w)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsOwner)
	require.NotNil(t, list[0].Author)
	assert.Equal(t, reg.User.ID, list[0].Author.ID)

	w = alice.json(http.MethodGet, "/api/stories", nil)
	assert.True(t, decode[[]storyBody](t, w)[0].IsOwner)

	w = bob.form(http.MethodPut, "/api/stories/"+created.ID, map[string]string{"title": "Mine now"}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = alice.form(http.MethodPut, "/api/stories/"+created.ID, map[string]string{"title": "Wadi Rum at night"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Wadi Rum at night", decode[storyBody](t, w).Title)

	w = bob.json(http.MethodDelete, "/api/stories/"+created.ID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = alice.json(http.MethodDelete, "/api/stories/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = alice.json(http.MethodDelete, "/api/stories/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDestinationsAndProbes(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t)}

	w := c.json(http.MethodGet, "/api/destinations/preview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 3)

	w = c.json(http.MethodGet, "/api/destinations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 12)

	w = c.json(http.MethodGet, "/api/health", nil)
	assert.JSONEq(t, `{"ok":true,"message":"Rehla API is running"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = c.json(http.MethodGet, "/api/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNotFound(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t)}

	for _, path := range []string{"/api/nope", "/uploads/missing.jpg"} {
		w := c.json(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"message":"Not found"}`, w.Body.String(), path)
	}
}

func TestMeRequiresToken(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t)}

	w := c.json(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Authentication required"}`, w.Body.String())

	c.token = "garbage"
	w = c.json(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Invalid token"}`, w.Body.String())
}
