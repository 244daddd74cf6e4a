// Package directory caches the full list of known identities, used by the
// new-chat and new-group pickers. Designed for small user populations; no
// pagination.
package directory

import (
	"context"
	"strings"
	"sync"

	"courier/internal/api"
	"courier/internal/debug"
)

// API is the slice of the accounts endpoint the cache needs.
type API interface {
	ListUsers(ctx context.Context) ([]api.User, error)
}

// Cache holds the identity list for the current session.
type Cache struct {
	api    API
	selfID int64

	mu    sync.Mutex
	users []api.User
}

// New cache excluding the given identity from filtered views.
func New(accountsAPI API, selfID int64) *Cache {
	return &Cache{api: accountsAPI, selfID: selfID}
}

// Refresh fetches the complete identity list. On failure the previous cache
// is left intact (stale-read-on-error) and the error is logged and returned.
func (c *Cache) Refresh(ctx context.Context) error {
	users, err := c.api.ListUsers(ctx)
	if err != nil {
		debug.GetLogger().Debug("directory refresh failed", "error", err)
		return err
	}
	c.mu.Lock()
	c.users = users
	c.mu.Unlock()
	return nil
}

// Filter returns the identities whose display name contains the query,
// case-insensitively, excluding the current identity. An empty query matches
// everyone else.
func (c *Cache) Filter(query string) []api.User {
	query = strings.ToLower(query)

	c.mu.Lock()
	defer c.mu.Unlock()
	var matched []api.User
	for _, user := range c.users {
		if user.ID == c.selfID {
			continue
		}
		if !strings.Contains(strings.ToLower(user.Username), query) {
			continue
		}
		matched = append(matched, user)
	}
	return matched
}
