package directory

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier/internal/api"
)

type fakeAccountsAPI struct {
	users []api.User
	err   error
}

func (f *fakeAccountsAPI) ListUsers(ctx context.Context) ([]api.User, error) {
	return f.users, f.err
}

func TestFilterExcludesSelf(t *testing.T) {
	accountsAPI := &fakeAccountsAPI{users: []api.User{
		{ID: 1, Username: "anna"},
		{ID: 2, Username: "bob"},
	}}
	cache := New(accountsAPI, 1)
	require.NoError(t, cache.Refresh(context.Background()))

	results := cache.Filter("")
	require.Len(t, results, 1)
	assert.Equal(t, "bob", results[0].Username)
}

func TestFilterIsCaseInsensitiveSubstring(t *testing.T) {
	accountsAPI := &fakeAccountsAPI{users: []api.User{
		{ID: 2, Username: "Anna"},
		{ID: 3, Username: "Joanna"},
		{ID: 4, Username: "bob"},
	}}
	cache := New(accountsAPI, 1)
	require.NoError(t, cache.Refresh(context.Background()))

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "lowercase query matches mixed case", query: "ann", want: []string{"Anna", "Joanna"}},
		{name: "substring in the middle", query: "oan", want: []string{"Joanna"}},
		{name: "no match", query: "zoe", want: nil},
		{name: "empty query matches everyone", query: "", want: []string{"Anna", "Joanna", "bob"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var got []string
			for _, user := range cache.Filter(test.query) {
				got = append(got, user.Username)
			}
			assert.Equal(t, test.want, got)
		})
	}
}

func TestRefreshFailureKeepsStaleEntries(t *testing.T) {
	accountsAPI := &fakeAccountsAPI{users: []api.User{{ID: 2, Username: "bob"}}}
	cache := New(accountsAPI, 1)
	require.NoError(t, cache.Refresh(context.Background()))

	accountsAPI.err = errors.New("connection refused")
	require.Error(t, cache.Refresh(context.Background()))

	results := cache.Filter("")
	require.Len(t, results, 1)
	assert.Equal(t, "bob", results[0].Username)
}
