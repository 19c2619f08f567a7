// Package client is the state layer of a Rehla client: a typed API client,
// the session, the local favorites list and the theme preference.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"ctchen222/rehla/internal/api/models"
)

// DefaultTimeout bounds a single API call.
const DefaultTimeout = 30 * time.Second

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// IsAPIError reports whether err carries a server response, as opposed to a
// transport failure.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// Image is a photo attached to a story form.
type Image struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// StoryForm holds story fields. Nil fields are not sent, which on update
// leaves the stored value unchanged.
type StoryForm struct {
	Title       *string
	Location    *string
	Description *string
}

// API talks to the Rehla HTTP API.
type API struct {
	baseURL string
	http    *http.Client
}

// NewAPI returns a client for baseURL. A nil httpClient gets a default one
// with DefaultTimeout.
func NewAPI(baseURL string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// BaseURL returns the server address, used to resolve relative image URLs.
func (a *API) BaseURL() string {
	return a.baseURL
}

func (a *API) Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out models.AuthResponse
	if err := a.doJSON(ctx, http.MethodPost, "/api/auth/register", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out models.AuthResponse
	if err := a.doJSON(ctx, http.MethodPost, "/api/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me resolves the user behind token.
func (a *API) Me(ctx context.Context, token string) (*models.PublicUser, error) {
	var out models.MeResponse
	if err := a.doJSON(ctx, http.MethodGet, "/api/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Stories lists every story, newest first. With a token, isOwner is set for
// the caller's stories.
func (a *API) Stories(ctx context.Context, token string) ([]*models.StoryView, error) {
	var out []*models.StoryView
	if err := a.doJSON(ctx, http.MethodGet, "/api/stories", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) CreateStory(ctx context.Context, token string, form StoryForm, image *Image) (*models.Story, error) {
	var out models.Story
	if err := a.doMultipart(ctx, http.MethodPost, "/api/stories", token, form, image, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) UpdateStory(ctx context.Context, token, id string, form StoryForm, image *Image) (*models.Story, error) {
	var out models.Story
	if err := a.doMultipart(ctx, http.MethodPut, "/api/stories/"+id, token, form, image, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) DeleteStory(ctx context.Context, token, id string) error {
	return a.doJSON(ctx, http.MethodDelete, "/api/stories/"+id, token, nil, nil)
}

func (a *API) Destinations(ctx context.Context) ([]*models.Destination, error) {
	var out []*models.Destination
	if err := a.doJSON(ctx, http.MethodGet, "/api/destinations", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) DestinationsPreview(ctx context.Context) ([]*models.Destination, error) {
	var out []*models.Destination
	if err := a.doJSON(ctx, http.MethodGet, "/api/destinations/preview", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health returns the liveness message.
func (a *API) Health(ctx context.Context) (string, error) {
	var out struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}
	if err := a.doJSON(ctx, http.MethodGet, "/api/health", "", nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (a *API) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return a.do(req, token, out)
}

func (a *API) doMultipart(ctx context.Context, method, path, token string, form StoryForm, image *Image, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct {
		name  string
		value *string
	}{
		{"title", form.Title},
		{"location", form.Location},
		{"description", form.Description},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := w.WriteField(f.name, *f.value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", f.name, err)
		}
	}

	if image != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, image.Filename))
		contentType := image.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := io.Copy(part, image.Body); err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return a.do(req, token, out)
}

func (a *API) do(req *http.Request, token string, out any) error {
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = body.Message
		apiErr.Fields = body.Errors
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
