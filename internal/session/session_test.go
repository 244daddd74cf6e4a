package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier/internal/api"
)

type fakeAuthAPI struct {
	loginResult    *api.AuthResult
	loginErr       error
	registerResult *api.AuthResult
	updatedUser    *api.User
	updateErr      error
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeAuthAPI) Register(ctx context.Context, email, password, username string) (*api.AuthResult, error) {
	return f.registerResult, nil
}

func (f *fakeAuthAPI) UpdateProfile(ctx context.Context, userID int64, username, avatarURL string) (*api.User, error) {
	return f.updatedUser, f.updateErr
}

func newTestStore(t *testing.T, dbPath string) *Store {
	t.Helper()
	store, err := NewStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoginPersistsAcrossRestarts(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "courier.db")
	authAPI := &fakeAuthAPI{
		loginResult: &api.AuthResult{
			User:  api.User{ID: 7, Email: "anna@example.com", Username: "anna"},
			Token: "tok-1",
		},
	}

	store := newTestStore(t, dbPath)
	s := New(store, authAPI)
	require.False(t, s.Restore())
	require.NoError(t, s.Login(context.Background(), "anna@example.com", "hunter2"))
	assert.True(t, s.Active())
	assert.Equal(t, "anna", s.User().Username)
	assert.Equal(t, "tok-1", s.Token())
	require.NoError(t, store.Close())

	// Simulated restart: a fresh store over the same database file.
	store2 := newTestStore(t, dbPath)
	s2 := New(store2, authAPI)
	require.True(t, s2.Restore())
	assert.True(t, s2.Active())
	assert.Equal(t, int64(7), s2.User().ID)
	assert.Equal(t, "anna", s2.User().Username)
	assert.Equal(t, "tok-1", s2.Token())
}

func TestLoginFailureLeavesSessionInactive(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "courier.db")
	authAPI := &fakeAuthAPI{loginErr: &api.Error{StatusCode: 401, Reason: "invalid credentials"}}

	store := newTestStore(t, dbPath)
	s := New(store, authAPI)
	err := s.Login(context.Background(), "anna@example.com", "wrong")
	require.Error(t, err)
	assert.False(t, s.Active())
}

func TestUpdateProfileReplacesStoredIdentity(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "courier.db")
	authAPI := &fakeAuthAPI{
		loginResult: &api.AuthResult{
			User:  api.User{ID: 7, Username: "anna"},
			Token: "tok-1",
		},
		updatedUser: &api.User{ID: 7, Username: "anna-renamed", AvatarURL: "https://example.com/a.png"},
	}

	store := newTestStore(t, dbPath)
	s := New(store, authAPI)
	require.NoError(t, s.Login(context.Background(), "anna@example.com", "hunter2"))
	require.NoError(t, s.UpdateProfile(context.Background(), "anna-renamed", "https://example.com/a.png"))
	assert.Equal(t, "anna-renamed", s.User().Username)
	require.NoError(t, store.Close())

	store2 := newTestStore(t, dbPath)
	s2 := New(store2, authAPI)
	require.True(t, s2.Restore())
	assert.Equal(t, "anna-renamed", s2.User().Username)
	assert.Equal(t, "https://example.com/a.png", s2.User().AvatarURL)
}

func TestSignOutClearsSavedSession(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "courier.db")
	authAPI := &fakeAuthAPI{
		loginResult: &api.AuthResult{User: api.User{ID: 7, Username: "anna"}, Token: "tok-1"},
	}

	store := newTestStore(t, dbPath)
	s := New(store, authAPI)
	require.NoError(t, s.Login(context.Background(), "anna@example.com", "hunter2"))
	require.NoError(t, s.SignOut())
	assert.False(t, s.Active())
	require.NoError(t, store.Close())

	store2 := newTestStore(t, dbPath)
	s2 := New(store2, authAPI)
	assert.False(t, s2.Restore())
}
