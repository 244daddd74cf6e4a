// Package members holds the per-conversation membership roster with roles
// and write permissions, fetched on demand from the conversations endpoint.
package members

import (
	"context"
	"sync"

	"courier/internal/api"
	"courier/internal/debug"
)

// API is the slice of the conversations endpoint the panel needs.
type API interface {
	GetChatMembers(ctx context.Context, chatID int64) ([]api.Member, error)
	UpdateMemberRole(ctx context.Context, chatID, actorID, targetID int64, role string, canWrite bool) error
	UpdateChatSettings(ctx context.Context, chatID, actorID int64, settings api.ChatSettings) (*api.ChatSettings, error)
}

// Panel mirrors the membership roster of one conversation. The acting
// identity's role is derived from its own roster entry; mutations are
// no-ops at this layer unless that derived role is admin.
type Panel struct {
	api    API
	selfID int64

	mu       sync.Mutex
	chatID   int64
	members  []api.Member
	selfRole string

	// Last-known group-wide write setting. Chat listings never carry the
	// settings; the only authoritative source is the update_chat_settings
	// response, so this starts at the server default and tracks responses.
	membersCanWrite bool
}

// New membership panel for the given identity.
func New(chatsAPI API, selfID int64) *Panel {
	return &Panel{api: chatsAPI, selfID: selfID, selfRole: api.RoleMember, membersCanWrite: true}
}

// Load fetches the roster of a conversation and derives the acting
// identity's role from it. A roster without the acting identity leaves the
// derived role at ordinary member.
func (p *Panel) Load(ctx context.Context, chatID int64) error {
	members, err := p.api.GetChatMembers(ctx, chatID)
	if err != nil {
		debug.GetLogger().Debug("member roster load failed", "chat_id", chatID, "error", err)
		return err
	}

	selfRole := api.RoleMember
	for _, member := range members {
		if member.ID == p.selfID {
			selfRole = member.Role
			break
		}
	}

	p.mu.Lock()
	if p.chatID != chatID {
		p.membersCanWrite = true
	}
	p.chatID = chatID
	p.members = members
	p.selfRole = selfRole
	p.mu.Unlock()
	return nil
}

// Members returns a snapshot of the roster.
func (p *Panel) Members() []api.Member {
	p.mu.Lock()
	defer p.mu.Unlock()
	members := make([]api.Member, len(p.members))
	copy(members, p.members)
	return members
}

// IsAdmin reports whether the acting identity's derived role is admin.
func (p *Panel) IsAdmin() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selfRole == api.RoleAdmin
}

// SetRole changes a member's role, preserving its last-known write
// permission. Non-admin actors produce zero outbound requests. The roster is
// reloaded on completion whatever the outcome; a failed mutation is visible
// only in the debug log.
func (p *Panel) SetRole(ctx context.Context, targetID int64, role string) error {
	return p.mutate(ctx, targetID, func(member api.Member) (string, bool) {
		return role, member.CanWrite
	})
}

// SetWritePermission changes a member's write permission, preserving its
// last-known role. Same admin gating and silent-failure policy as SetRole.
func (p *Panel) SetWritePermission(ctx context.Context, targetID int64, allowed bool) error {
	return p.mutate(ctx, targetID, func(member api.Member) (string, bool) {
		return member.Role, allowed
	})
}

func (p *Panel) mutate(ctx context.Context, targetID int64, change func(api.Member) (string, bool)) error {
	p.mu.Lock()
	chatID := p.chatID
	admin := p.selfRole == api.RoleAdmin
	target, found := p.find(targetID)
	p.mu.Unlock()
	if !admin || !found {
		return nil
	}

	role, canWrite := change(target)
	if err := p.api.UpdateMemberRole(ctx, chatID, p.selfID, targetID, role, canWrite); err != nil {
		debug.GetLogger().Debug("member mutation failed", "chat_id", chatID, "target", targetID, "error", err)
	}
	return p.Load(ctx, chatID)
}

// MembersCanWrite returns the last-known group-wide write setting.
func (p *Panel) MembersCanWrite() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.membersCanWrite
}

// SetMembersCanWrite submits the group-wide write permission setting and
// caches the value the server reports back. Admin-only; failures are
// logged, not surfaced.
func (p *Panel) SetMembersCanWrite(ctx context.Context, allowed bool) error {
	p.mu.Lock()
	chatID := p.chatID
	admin := p.selfRole == api.RoleAdmin
	p.mu.Unlock()
	if !admin || chatID == 0 {
		return nil
	}

	settings := api.ChatSettings{MembersCanWrite: allowed}
	stored, err := p.api.UpdateChatSettings(ctx, chatID, p.selfID, settings)
	if err != nil {
		debug.GetLogger().Debug("chat settings mutation failed", "chat_id", chatID, "error", err)
	} else {
		p.mu.Lock()
		p.membersCanWrite = stored.MembersCanWrite
		p.mu.Unlock()
	}
	return p.Load(ctx, chatID)
}

// find must be called with the mutex held.
func (p *Panel) find(targetID int64) (api.Member, bool) {
	for _, member := range p.members {
		if member.ID == targetID {
			return member, true
		}
	}
	return api.Member{}, false
}
