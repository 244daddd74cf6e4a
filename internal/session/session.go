package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"courier/internal/api"
	"courier/internal/debug"
)

// AuthAPI is the slice of the accounts endpoint the session needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.AuthResult, error)
	Register(ctx context.Context, email, password, username string) (*api.AuthResult, error)
	UpdateProfile(ctx context.Context, userID int64, username, avatarURL string) (*api.User, error)
}

// Session owns the current authenticated identity and its opaque token.
// A stale token is kept until the server rejects it; rejection never forces
// a sign-out here.
type Session struct {
	store   *Store
	authAPI AuthAPI

	mu    sync.Mutex
	user  *api.User
	token string
}

// New session around the given store.
func New(store *Store, authAPI AuthAPI) *Session {
	return &Session{store: store, authAPI: authAPI}
}

// Restore reads a previously saved identity and marks the session active
// without re-validating against the server. Returns false when no usable
// session exists; failures are silent.
func (s *Session) Restore() bool {
	userJSON, ok, err := s.store.get(keyUser)
	if err != nil || !ok {
		if err != nil {
			debug.GetLogger().Debug("session restore failed", "error", err)
		}
		return false
	}
	user := &api.User{}
	if err := json.Unmarshal([]byte(userJSON), user); err != nil {
		debug.GetLogger().Debug("session restore failed", "error", err)
		return false
	}
	token, _, _ := s.store.get(keyToken)

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()
	return true
}

// Login authenticates an existing identity and persists it on success.
func (s *Session) Login(ctx context.Context, email, password string) error {
	result, err := s.authAPI.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.adopt(&result.User, result.Token)
}

// Register creates a new identity and persists it on success.
func (s *Session) Register(ctx context.Context, email, password, username string) error {
	result, err := s.authAPI.Register(ctx, email, password, username)
	if err != nil {
		return err
	}
	return s.adopt(&result.User, result.Token)
}

// UpdateProfile submits a profile change and, on success, replaces the
// stored identity.
func (s *Session) UpdateProfile(ctx context.Context, username, avatarURL string) error {
	current := s.User()
	if current == nil {
		return errors.New("not authenticated")
	}
	user, err := s.authAPI.UpdateProfile(ctx, current.ID, username, avatarURL)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	token := s.token
	s.mu.Unlock()
	return s.persist(user, token)
}

// SignOut discards the persisted session.
func (s *Session) SignOut() error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.store.delete(keyUser); err != nil {
		return err
	}
	return s.store.delete(keyToken)
}

// Active reports whether an identity is loaded.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// User returns a copy of the current identity, or nil.
func (s *Session) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Token returns the opaque session credential.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) adopt(user *api.User, token string) error {
	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()
	return s.persist(user, token)
}

func (s *Session) persist(user *api.User, token string) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "marshaling user")
	}
	if err := s.store.put(keyUser, string(userJSON)); err != nil {
		return err
	}
	return s.store.put(keyToken, token)
}
