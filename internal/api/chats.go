package api

import (
	"context"
	"fmt"
)

// ListChats fetches the conversations visible to an identity. Ordering is
// server-determined and preserved as-is.
func (c *Client) ListChats(ctx context.Context, userID int64) ([]Chat, error) {
	var chats []Chat
	url := fmt.Sprintf("%s?user_id=%d", c.chatsURL, userID)
	if err := c.get(ctx, url, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// ListMessages fetches the full ordered message list of a conversation.
func (c *Client) ListMessages(ctx context.Context, chatID int64) ([]Message, error) {
	var messages []Message
	url := fmt.Sprintf("%s?chat_id=%d", c.chatsURL, chatID)
	if err := c.get(ctx, url, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage submits a new message to a conversation.
func (c *Client) SendMessage(ctx context.Context, chatID, userID int64, content string) (*Message, error) {
	body := struct {
		Action  string `json:"action"`
		ChatID  int64  `json:"chat_id"`
		UserID  int64  `json:"user_id"`
		Content string `json:"content"`
	}{"send_message", chatID, userID, content}

	message := &Message{}
	if err := c.post(ctx, c.chatsURL, body, message); err != nil {
		return nil, err
	}
	return message, nil
}

// CreateChat creates a direct or group conversation with the given member
// list. Member order matters: the server grants the admin role to the first
// member of a group.
func (c *Client) CreateChat(ctx context.Context, name string, isGroup bool, members []int64) (*Chat, error) {
	body := struct {
		Action  string  `json:"action"`
		Name    string  `json:"name"`
		IsGroup bool    `json:"is_group"`
		Members []int64 `json:"members"`
	}{"create_chat", name, isGroup, members}

	chat := &Chat{}
	if err := c.post(ctx, c.chatsURL, body, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// GetChatMembers fetches the membership roster of a conversation.
func (c *Client) GetChatMembers(ctx context.Context, chatID int64) ([]Member, error) {
	body := struct {
		Action string `json:"action"`
		ChatID int64  `json:"chat_id"`
	}{"get_chat_members", chatID}

	var members []Member
	if err := c.post(ctx, c.chatsURL, body, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateMemberRole submits a member's full role/permission pair on behalf of
// the acting identity. The endpoint rejects non-admin actors.
func (c *Client) UpdateMemberRole(ctx context.Context, chatID, actorID, targetID int64, role string, canWrite bool) error {
	body := struct {
		Action       string `json:"action"`
		ChatID       int64  `json:"chat_id"`
		UserID       int64  `json:"user_id"`
		TargetUserID int64  `json:"target_user_id"`
		Role         string `json:"role"`
		CanWrite     bool   `json:"can_write"`
	}{"update_member_role", chatID, actorID, targetID, role, canWrite}

	return c.post(ctx, c.chatsURL, body, nil)
}

// UpdateChatSettings submits group-wide settings on behalf of the acting
// identity and returns the stored settings. The endpoint rejects non-admin
// actors. This response is the only place the server ever reports the
// current settings; chat listings omit them.
func (c *Client) UpdateChatSettings(ctx context.Context, chatID, actorID int64, settings ChatSettings) (*ChatSettings, error) {
	body := struct {
		Action   string       `json:"action"`
		ChatID   int64        `json:"chat_id"`
		UserID   int64        `json:"user_id"`
		Settings ChatSettings `json:"settings"`
	}{"update_chat_settings", chatID, actorID, settings}

	var result struct {
		ID       int64        `json:"id"`
		Settings ChatSettings `json:"settings"`
	}
	if err := c.post(ctx, c.chatsURL, body, &result); err != nil {
		return nil, err
	}
	return &result.Settings, nil
}
