package messenger

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"courier/internal/api"
)

// updateNewChat handles keys in the direct-chat picker.
func (m *Model) updateNewChat(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEsc:
		m.mode = modeChat
		m.searchInput.Blur()
		return m, tea.Batch(cmds...)

	case tea.KeyUp:
		if m.searchIndex > 0 {
			m.searchIndex--
		}
		return m, tea.Batch(cmds...)

	case tea.KeyDown:
		if m.searchIndex < len(m.searchResults)-1 {
			m.searchIndex++
		}
		return m, tea.Batch(cmds...)

	case tea.KeyEnter:
		if m.searchIndex >= 0 && m.searchIndex < len(m.searchResults) {
			target := m.searchResults[m.searchIndex]
			m.searchInput.Blur()
			cmds = append(cmds, m.createDirect(target))
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	cmds = append(cmds, cmd)
	m.searchResults = m.directory.Filter(m.searchInput.Value())
	if m.searchIndex >= len(m.searchResults) {
		m.searchIndex = 0
	}
	return m, tea.Batch(cmds...)
}

// updateNewGroup handles keys in the group-creation dialog. Tab moves
// between the name field and the candidate list, space marks members.
func (m *Model) updateNewGroup(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEsc:
		m.mode = modeChat
		m.groupName.Blur()
		return m, tea.Batch(cmds...)

	case tea.KeyTab:
		m.groupFocusList = !m.groupFocusList
		if m.groupFocusList {
			m.groupName.Blur()
		} else {
			m.groupName.Focus()
		}
		return m, tea.Batch(cmds...)

	case tea.KeyEnter:
		name := strings.TrimSpace(m.groupName.Value())
		if name == "" || len(m.groupSelected) == 0 {
			return m, tea.Batch(cmds...)
		}
		m.groupName.Blur()
		cmds = append(cmds, m.createGroup(name, m.groupSelected))
		return m, tea.Batch(cmds...)
	}

	if !m.groupFocusList {
		var cmd tea.Cmd
		m.groupName, cmd = m.groupName.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	switch msg.String() {
	case "up", "k":
		if m.groupIndex > 0 {
			m.groupIndex--
		}
	case "down", "j":
		if m.groupIndex < len(m.groupCandidates)-1 {
			m.groupIndex++
		}
	case " ":
		if m.groupIndex >= 0 && m.groupIndex < len(m.groupCandidates) {
			m.toggleGroupCandidate(m.groupCandidates[m.groupIndex].ID)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) toggleGroupCandidate(userID int64) {
	for i, id := range m.groupSelected {
		if id == userID {
			m.groupSelected = append(m.groupSelected[:i], m.groupSelected[i+1:]...)
			return
		}
	}
	m.groupSelected = append(m.groupSelected, userID)
}

func (m *Model) groupCandidateSelected(userID int64) bool {
	for _, id := range m.groupSelected {
		if id == userID {
			return true
		}
	}
	return false
}

// updateMembers handles keys in the group membership dialog.
func (m *Model) updateMembers(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEsc:
		m.mode = modeChat
		return m, tea.Batch(cmds...)
	}

	switch msg.String() {
	case "up", "k":
		if m.rosterIndex > 0 {
			m.rosterIndex--
		}
	case "down", "j":
		if m.rosterIndex < len(m.rosterEntries)-1 {
			m.rosterIndex++
		}
	case "r":
		if entry, ok := m.rosterEntry(); ok && entry.ID != m.session.User().ID {
			cmds = append(cmds, m.toggleRole(entry))
		}
	case "w":
		if entry, ok := m.rosterEntry(); ok && entry.ID != m.session.User().ID {
			cmds = append(cmds, m.toggleWrite(entry))
		}
	case "e":
		cmds = append(cmds, m.toggleMembersCanWrite(!m.roster.MembersCanWrite()))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) rosterEntry() (api.Member, bool) {
	if m.rosterIndex < 0 || m.rosterIndex >= len(m.rosterEntries) {
		return api.Member{}, false
	}
	return m.rosterEntries[m.rosterIndex], true
}

// updateProfile handles keys in the profile editor.
func (m *Model) updateProfile(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEsc:
		if !m.savingProfile {
			m.mode = modeChat
			m.profileName.Blur()
			m.profileAvatar.Blur()
		}
		return m, tea.Batch(cmds...)

	case tea.KeyTab, tea.KeyUp, tea.KeyDown:
		m.profileFocusAvatar = !m.profileFocusAvatar
		if m.profileFocusAvatar {
			m.profileName.Blur()
			m.profileAvatar.Focus()
		} else {
			m.profileAvatar.Blur()
			m.profileName.Focus()
		}
		return m, tea.Batch(cmds...)

	case tea.KeyEnter:
		if m.savingProfile {
			return m, tea.Batch(cmds...)
		}
		username := strings.TrimSpace(m.profileName.Value())
		if username == "" {
			return m, tea.Batch(cmds...)
		}
		m.savingProfile = true
		cmds = append(cmds, m.saveProfile(username, strings.TrimSpace(m.profileAvatar.Value())))
		return m, tea.Batch(cmds...)
	}

	if m.savingProfile {
		return m, tea.Batch(cmds...)
	}
	var cmd tea.Cmd
	if m.profileFocusAvatar {
		m.profileAvatar, cmd = m.profileAvatar.Update(msg)
	} else {
		m.profileName, cmd = m.profileName.Update(msg)
	}
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}
