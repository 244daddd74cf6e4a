package messenger

import (
	tea "github.com/charmbracelet/bubbletea"

	"courier/internal/api"
	"courier/internal/debug"
)

type pollTickMsg struct{}

type chatsRefreshedMsg struct {
	err error
}

type threadRefreshedMsg struct {
	err error
}

type directoryRefreshedMsg struct {
	err error
}

type messageSentMsg struct {
	err error
}

type chatCreatedMsg struct {
	group bool
	err   error
}

type rosterLoadedMsg struct {
	err error
}

type rosterMutatedMsg struct{}

type profileSavedMsg struct {
	err error
}

func (m *Model) refreshChats() tea.Cmd {
	return func() tea.Msg {
		return chatsRefreshedMsg{err: m.chatList.Refresh(m.ctx)}
	}
}

func (m *Model) refreshThread() tea.Cmd {
	return func() tea.Msg {
		return threadRefreshedMsg{err: m.thread.Refresh(m.ctx)}
	}
}

func (m *Model) refreshDirectory() tea.Cmd {
	return func() tea.Msg {
		return directoryRefreshedMsg{err: m.directory.Refresh(m.ctx)}
	}
}

func (m *Model) sendMessage() tea.Cmd {
	return func() tea.Msg {
		return messageSentMsg{err: m.thread.Send(m.ctx)}
	}
}

func (m *Model) createDirect(target api.User) tea.Cmd {
	return func() tea.Msg {
		return chatCreatedMsg{group: false, err: m.chatList.CreateDirect(m.ctx, target)}
	}
}

func (m *Model) createGroup(name string, memberIDs []int64) tea.Cmd {
	return func() tea.Msg {
		return chatCreatedMsg{group: true, err: m.chatList.CreateGroup(m.ctx, name, memberIDs)}
	}
}

func (m *Model) loadRoster(chatID int64) tea.Cmd {
	return func() tea.Msg {
		return rosterLoadedMsg{err: m.roster.Load(m.ctx, chatID)}
	}
}

func (m *Model) toggleRole(target api.Member) tea.Cmd {
	newRole := api.RoleAdmin
	if target.Role == api.RoleAdmin {
		newRole = api.RoleMember
	}
	return func() tea.Msg {
		if err := m.roster.SetRole(m.ctx, target.ID, newRole); err != nil {
			debug.GetLogger().Debug("role toggle failed", "target", target.ID, "error", err)
		}
		return rosterMutatedMsg{}
	}
}

func (m *Model) toggleWrite(target api.Member) tea.Cmd {
	return func() tea.Msg {
		if err := m.roster.SetWritePermission(m.ctx, target.ID, !target.CanWrite); err != nil {
			debug.GetLogger().Debug("write toggle failed", "target", target.ID, "error", err)
		}
		return rosterMutatedMsg{}
	}
}

func (m *Model) toggleMembersCanWrite(allowed bool) tea.Cmd {
	return func() tea.Msg {
		if err := m.roster.SetMembersCanWrite(m.ctx, allowed); err != nil {
			debug.GetLogger().Debug("group write toggle failed", "error", err)
		}
		return rosterMutatedMsg{}
	}
}

func (m *Model) saveProfile(username, avatarURL string) tea.Cmd {
	return func() tea.Msg {
		return profileSavedMsg{err: m.session.UpdateProfile(m.ctx, username, avatarURL)}
	}
}
