// Package thread holds the ordered messages of the currently selected
// conversation, plus the local draft buffer for the composer.
package thread

import (
	"context"
	"strings"
	"sync"

	"courier/internal/api"
	"courier/internal/debug"
)

// API is the slice of the conversations endpoint the model needs.
type API interface {
	ListMessages(ctx context.Context, chatID int64) ([]api.Message, error)
	SendMessage(ctx context.Context, chatID, userID int64, content string) (*api.Message, error)
}

// ChatListRefresher refreshes the chat list, so that last-message previews
// update after a send.
type ChatListRefresher interface {
	Refresh(ctx context.Context) error
}

// Model mirrors the message list of one conversation. A generation counter
// guards against a late response for a superseded selection overwriting
// newer state.
type Model struct {
	api      API
	chatList ChatListRefresher
	selfID   int64

	mu         sync.Mutex
	chatID     int64
	generation uint64
	messages   []api.Message
	draft      string
}

// New thread model for the given identity.
func New(chatsAPI API, chatList ChatListRefresher, selfID int64) *Model {
	return &Model{api: chatsAPI, chatList: chatList, selfID: selfID}
}

// Select switches the model to another conversation, discarding the previous
// message list. A zero id deselects.
func (m *Model) Select(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.chatID == chatID {
		return
	}
	m.chatID = chatID
	m.generation++
	m.messages = nil
}

// ChatID returns the selected conversation id, zero if none.
func (m *Model) ChatID() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chatID
}

// Refresh fetches the full message list of the selected conversation,
// replacing local state wholesale. A response that arrives after the
// selection has moved on is dropped.
func (m *Model) Refresh(ctx context.Context) error {
	m.mu.Lock()
	chatID := m.chatID
	generation := m.generation
	m.mu.Unlock()
	if chatID == 0 {
		return nil
	}

	messages, err := m.api.ListMessages(ctx, chatID)
	if err != nil {
		debug.GetLogger().Debug("thread refresh failed", "chat_id", chatID, "error", err)
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != generation {
		// Stale response for a previous selection.
		return nil
	}
	m.messages = messages
	return nil
}

// Messages returns a snapshot of the message list in server order.
func (m *Model) Messages() []api.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	messages := make([]api.Message, len(m.messages))
	copy(messages, m.messages)
	return messages
}

// SetDraft replaces the composer buffer.
func (m *Model) SetDraft(draft string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = draft
}

// Draft returns the composer buffer.
func (m *Model) Draft() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// Send submits the draft to the selected conversation, verbatim. Empty or
// whitespace-only drafts are rejected locally with zero network calls. Once
// the server has answered, whatever the status, the draft is cleared and one
// thread refresh plus one chat-list refresh are issued. On transport failure
// the draft is kept and the error returned. There is no optimistic local
// insertion: the sent message appears with the next refresh.
func (m *Model) Send(ctx context.Context) error {
	m.mu.Lock()
	chatID := m.chatID
	content := m.draft
	m.mu.Unlock()
	if chatID == 0 || strings.TrimSpace(content) == "" {
		return nil
	}

	if _, err := m.api.SendMessage(ctx, chatID, m.selfID, content); err != nil {
		if _, rejected := err.(*api.Error); !rejected {
			return err
		}
		// Application-level rejections (e.g. writing forbidden) are not
		// surfaced here; the refresh below shows the authoritative state.
		debug.GetLogger().Debug("send rejected", "chat_id", chatID, "error", err)
	}

	m.mu.Lock()
	m.draft = ""
	m.mu.Unlock()

	if err := m.Refresh(ctx); err != nil {
		debug.GetLogger().Debug("post-send thread refresh failed", "error", err)
	}
	if err := m.chatList.Refresh(ctx); err != nil {
		debug.GetLogger().Debug("post-send chat list refresh failed", "error", err)
	}
	return nil
}
