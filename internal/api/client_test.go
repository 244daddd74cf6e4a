package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier/internal/configuration"
)

type capturedRequest struct {
	method    string
	query     string
	requestID string
	body      map[string]any
}

// newTestClient points a client at a stub server that records every request
// and answers with a fixed status and payload.
func newTestClient(t *testing.T, status int, payload string) (*Client, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		record := capturedRequest{
			method:    r.Method,
			query:     r.URL.RawQuery,
			requestID: r.Header.Get("X-Request-Id"),
		}
		if r.Method == http.MethodPost {
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(raw, &record.body))
		}
		captured = append(captured, record)
		w.WriteHeader(status)
		w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)

	client := New(&configuration.Config{
		AccountsURL: server.URL,
		ChatsURL:    server.URL,
	})
	return client, &captured
}

func TestLogin(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `{"user": {"id": 7, "username": "anna"}, "token": "tok-1"}`)

	result, err := client.Login(context.Background(), "anna@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.User.ID)
	assert.Equal(t, "tok-1", result.Token)

	require.Len(t, *captured, 1)
	body := (*captured)[0].body
	assert.Equal(t, "login", body["action"])
	assert.Equal(t, "anna@example.com", body["email"])
	assert.Equal(t, "hunter2", body["password"])
	assert.NotEmpty(t, (*captured)[0].requestID)
}

func TestRegister(t *testing.T) {
	client, captured := newTestClient(t, http.StatusCreated, `{"user": {"id": 3, "username": "bob"}, "token": "tok-2"}`)

	result, err := client.Register(context.Background(), "bob@example.com", "secret", "bob")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", result.Token)

	body := (*captured)[0].body
	assert.Equal(t, "register", body["action"])
	assert.Equal(t, "bob", body["username"])
}

func TestListChatsQuery(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `[{"id": 1, "name": "anna"}]`)

	chats, err := client.ListChats(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "anna", chats[0].Name)
	assert.Equal(t, "user_id=42", (*captured)[0].query)
	assert.Equal(t, http.MethodGet, (*captured)[0].method)
}

func TestListMessagesQuery(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `[{"id": 10, "content": "hey", "user_id": 2}]`)

	messages, err := client.ListMessages(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hey", messages[0].Content)
	assert.Equal(t, "chat_id=5", (*captured)[0].query)
}

func TestCreateChatPreservesMemberOrder(t *testing.T) {
	client, captured := newTestClient(t, http.StatusCreated, `{"id": 9, "name": "team", "is_group": true}`)

	chat, err := client.CreateChat(context.Background(), "team", true, []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, int64(9), chat.ID)

	body := (*captured)[0].body
	assert.Equal(t, "create_chat", body["action"])
	assert.Equal(t, true, body["is_group"])
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, body["members"])
}

func TestUpdateMemberRoleSubmitsFullPair(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `{}`)

	err := client.UpdateMemberRole(context.Background(), 9, 1, 2, RoleAdmin, false)
	require.NoError(t, err)

	body := (*captured)[0].body
	assert.Equal(t, "update_member_role", body["action"])
	assert.Equal(t, float64(1), body["user_id"])
	assert.Equal(t, float64(2), body["target_user_id"])
	assert.Equal(t, RoleAdmin, body["role"])
	assert.Equal(t, false, body["can_write"])
}

func TestUpdateChatSettingsReturnsStoredSettings(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `{"id": 9, "settings": {"members_can_write": false}}`)

	stored, err := client.UpdateChatSettings(context.Background(), 9, 1, ChatSettings{MembersCanWrite: false})
	require.NoError(t, err)
	assert.False(t, stored.MembersCanWrite)

	body := (*captured)[0].body
	assert.Equal(t, "update_chat_settings", body["action"])
	assert.Equal(t, float64(9), body["chat_id"])
	assert.Equal(t, float64(1), body["user_id"])
	settings, ok := body["settings"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, settings["members_can_write"])
}

func TestRejectionDecodesReason(t *testing.T) {
	client, _ := newTestClient(t, http.StatusForbidden, `{"error": "user cannot write to this chat"}`)

	_, err := client.SendMessage(context.Background(), 1, 2, "hello")
	require.Error(t, err)
	apiError, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiError.StatusCode)
	assert.Equal(t, "user cannot write to this chat", apiError.Error())
}

func TestRejectionWithoutBody(t *testing.T) {
	client, _ := newTestClient(t, http.StatusInternalServerError, ``)

	_, err := client.ListUsers(context.Background())
	require.Error(t, err)
	apiError, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiError.StatusCode)
	assert.Contains(t, apiError.Error(), "500")
}

func TestTransportErrorIsNotRejection(t *testing.T) {
	client := New(&configuration.Config{
		AccountsURL: "http://127.0.0.1:1/accounts",
		ChatsURL:    "http://127.0.0.1:1/chats",
	})

	_, err := client.ListUsers(context.Background())
	require.Error(t, err)
	_, ok := err.(*Error)
	assert.False(t, ok)
}
