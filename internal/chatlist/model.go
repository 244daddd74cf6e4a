// Package chatlist holds the set of conversations visible to the current
// identity. Each refresh replaces the local set wholesale; ordering is
// server-determined and never re-sorted here. Selection of the active
// conversation is UI state and not owned by this model.
package chatlist

import (
	"context"
	"sync"

	"courier/internal/api"
	"courier/internal/debug"
)

// API is the slice of the conversations endpoint the model needs.
type API interface {
	ListChats(ctx context.Context, userID int64) ([]api.Chat, error)
	CreateChat(ctx context.Context, name string, isGroup bool, members []int64) (*api.Chat, error)
}

// Model mirrors the server-side conversation list for one identity.
type Model struct {
	api    API
	selfID int64

	mu    sync.Mutex
	chats []api.Chat
}

// New chat list model for the given identity.
func New(chatsAPI API, selfID int64) *Model {
	return &Model{api: chatsAPI, selfID: selfID}
}

// Refresh fetches all visible conversations, replacing the local set. On
// failure the previous set is kept and the error logged and returned.
func (m *Model) Refresh(ctx context.Context) error {
	chats, err := m.api.ListChats(ctx, m.selfID)
	if err != nil {
		debug.GetLogger().Debug("chat list refresh failed", "error", err)
		return err
	}
	m.mu.Lock()
	m.chats = chats
	m.mu.Unlock()
	return nil
}

// Chats returns a snapshot of the conversation list in server order.
func (m *Model) Chats() []api.Chat {
	m.mu.Lock()
	defer m.mu.Unlock()
	chats := make([]api.Chat, len(m.chats))
	copy(chats, m.chats)
	return chats
}

// Get returns the conversation with the given id from the snapshot, if any.
func (m *Model) Get(chatID int64) (api.Chat, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, chat := range m.chats {
		if chat.ID == chatID {
			return chat, true
		}
	}
	return api.Chat{}, false
}

// CreateDirect creates a two-party conversation with the target identity,
// named after it, and refreshes the list on success. The member list is
// exactly [self, target].
func (m *Model) CreateDirect(ctx context.Context, target api.User) error {
	if _, err := m.api.CreateChat(ctx, target.Username, false, []int64{m.selfID, target.ID}); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// CreateGroup creates a group conversation with the selected members and
// refreshes the list on success. The member list is [self, ...selected]; the
// server grants the admin role to the first member.
func (m *Model) CreateGroup(ctx context.Context, name string, memberIDs []int64) error {
	members := append([]int64{m.selfID}, memberIDs...)
	if _, err := m.api.CreateChat(ctx, name, true, members); err != nil {
		return err
	}
	return m.Refresh(ctx)
}
