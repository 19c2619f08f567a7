package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"ctchen222/rehla/internal/api/models"
	"ctchen222/rehla/internal/client/store"
)

// Session holds the persisted token and the user it resolves to.
type Session struct {
	mu      sync.RWMutex
	api     *API
	store   store.Store
	token   string
	user    *models.PublicUser
	loading bool
}

// NewSession returns a session that is loading until Restore completes.
func NewSession(api *API, st store.Store) *Session {
	return &Session{api: api, store: st, loading: true}
}

// Restore loads the persisted token and resolves its user. An error answer
// from the server discards the token; a transport failure keeps it for the
// next attempt and is returned.
func (s *Session) Restore(ctx context.Context) error {
	defer s.setLoading(false)

	raw, err := s.store.Get(ctx, store.KeyToken)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	token := string(raw)

	user, err := s.api.Me(ctx, token)
	if err != nil {
		if IsAPIError(err) {
			slog.DebugContext(ctx, "discarding stored token", "error", err)
			return s.clear(ctx)
		}
		s.mu.Lock()
		s.token = token
		s.mu.Unlock()
		return fmt.Errorf("failed to restore session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return nil
}

// Login authenticates and persists the returned token.
func (s *Session) Login(ctx context.Context, email, password string) (*models.PublicUser, error) {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, resp)
}

// Register creates an account and persists the returned token.
func (s *Session) Register(ctx context.Context, name, email, password string) (*models.PublicUser, error) {
	resp, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, resp)
}

// Logout forgets the token and user. Tokens are stateless, so the server is
// not contacted.
func (s *Session) Logout(ctx context.Context) error {
	return s.clear(ctx)
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() *models.PublicUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// IsAuthenticated reports whether a user has been resolved.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

func (s *Session) adopt(ctx context.Context, resp *models.AuthResponse) (*models.PublicUser, error) {
	if err := s.store.Set(ctx, store.KeyToken, []byte(resp.Token)); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.token = resp.Token
	s.user = resp.User
	s.loading = false
	s.mu.Unlock()
	return resp.User, nil
}

func (s *Session) clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	return s.store.Delete(ctx, store.KeyToken)
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
