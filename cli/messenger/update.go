package messenger

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Always update the alert model with every message
	outAlert, alertCmd := m.alert.Update(msg)
	m.alert = outAlert.(bubbleup.AlertModel)
	if alertCmd != nil {
		cmds = append(cmds, alertCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalculateLayout()
		return m, tea.Batch(cmds...)

	case pollTickMsg:
		cmds = append(cmds, m.refreshChats())
		if m.selectedChatID != 0 {
			cmds = append(cmds, m.refreshThread())
		}
		return m, tea.Batch(cmds...)

	case chatsRefreshedMsg:
		m.chats = m.chatList.Chats()
		m.clampSelection()
		return m, tea.Batch(cmds...)

	case threadRefreshedMsg:
		m.loadingThread = false
		wasAtBottom := m.viewport.AtBottom()
		m.messages = m.thread.Messages()
		m.viewport.SetContent(m.renderMessages())
		if wasAtBottom {
			m.viewport.GotoBottom()
		}
		return m, tea.Batch(cmds...)

	case directoryRefreshedMsg:
		if m.mode == modeNewChat {
			m.searchResults = m.directory.Filter(m.searchInput.Value())
			m.searchIndex = 0
		}
		if m.mode == modeNewGroup {
			m.groupCandidates = m.directory.Filter("")
		}
		return m, tea.Batch(cmds...)

	case messageSentMsg:
		m.composer.SetValue(m.thread.Draft())
		m.composer.CursorEnd()
		if msg.err != nil {
			cmds = append(cmds, m.alert.NewAlertCmd(bubbleup.InfoKey, "Message not sent"))
		}
		// The send already refreshed both models; pick up the snapshots.
		m.chats = m.chatList.Chats()
		m.clampSelection()
		wasAtBottom := m.viewport.AtBottom()
		m.messages = m.thread.Messages()
		m.viewport.SetContent(m.renderMessages())
		if wasAtBottom {
			m.viewport.GotoBottom()
		}
		return m, tea.Batch(cmds...)

	case chatCreatedMsg:
		if msg.err != nil {
			notice := "Could not create chat"
			if msg.group {
				notice = "Could not create group"
			}
			cmds = append(cmds, m.alert.NewAlertCmd(bubbleup.InfoKey, notice))
			return m, tea.Batch(cmds...)
		}
		m.mode = modeChat
		m.chats = m.chatList.Chats()
		m.clampSelection()
		notice := "Chat created"
		if msg.group {
			notice = "Group created"
		}
		cmds = append(cmds, m.alert.NewAlertCmd(bubbleup.InfoKey, notice))
		return m, tea.Batch(cmds...)

	case rosterLoadedMsg:
		m.rosterEntries = m.roster.Members()
		if m.rosterIndex >= len(m.rosterEntries) {
			m.rosterIndex = 0
		}
		return m, tea.Batch(cmds...)

	case rosterMutatedMsg:
		m.rosterEntries = m.roster.Members()
		if m.rosterIndex >= len(m.rosterEntries) {
			m.rosterIndex = 0
		}
		return m, tea.Batch(cmds...)

	case profileSavedMsg:
		m.savingProfile = false
		if msg.err != nil {
			cmds = append(cmds, m.alert.NewAlertCmd(bubbleup.InfoKey, "Could not update profile"))
			return m, tea.Batch(cmds...)
		}
		m.mode = modeChat
		cmds = append(cmds, m.alert.NewAlertCmd(bubbleup.InfoKey, "Profile updated"))
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch m.mode {
		case modeNewChat:
			return m.updateNewChat(msg, cmds)
		case modeNewGroup:
			return m.updateNewGroup(msg, cmds)
		case modeMembers:
			return m.updateMembers(msg, cmds)
		case modeProfile:
			return m.updateProfile(msg, cmds)
		}
		return m.updateChat(msg, cmds)
	}

	if m.mode == modeChat {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// updateChat handles keys on the main chat surface.
func (m *Model) updateChat(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyTab:
		if m.focus == focusSidebar {
			m.focus = focusComposer
			m.composer.Focus()
			cmds = append(cmds, textinput.Blink)
		} else {
			m.focus = focusSidebar
			m.composer.Blur()
		}
		return m, tea.Batch(cmds...)

	case tea.KeyEsc:
		if m.focus == focusComposer {
			m.focus = focusSidebar
			m.composer.Blur()
		}
		return m, tea.Batch(cmds...)

	case tea.KeyEnter:
		if m.focus == focusComposer {
			m.thread.SetDraft(m.composer.Value())
			if strings.TrimSpace(m.composer.Value()) == "" {
				return m, tea.Batch(cmds...)
			}
			cmds = append(cmds, m.sendMessage())
			return m, tea.Batch(cmds...)
		}
		if m.selectedIndex >= 0 && m.selectedIndex < len(m.chats) {
			m.openChat(m.chats[m.selectedIndex].ID)
			cmds = append(cmds, m.refreshThread())
		}
		return m, tea.Batch(cmds...)
	}

	if m.focus == focusComposer {
		var cmd tea.Cmd
		m.composer, cmd = m.composer.Update(msg)
		m.thread.SetDraft(m.composer.Value())
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	switch msg.String() {
	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case "down", "j":
		if m.selectedIndex < len(m.chats)-1 {
			m.selectedIndex++
		}
	case "n":
		m.mode = modeNewChat
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.searchResults = m.directory.Filter("")
		m.searchIndex = 0
		cmds = append(cmds, m.refreshDirectory(), textinput.Blink)
	case "g":
		m.mode = modeNewGroup
		m.groupName.SetValue("")
		m.groupName.Focus()
		m.groupFocusList = false
		m.groupSelected = nil
		m.groupCandidates = m.directory.Filter("")
		m.groupIndex = 0
		cmds = append(cmds, m.refreshDirectory(), textinput.Blink)
	case "m":
		if chat, ok := m.selectedChat(); ok && chat.IsGroup {
			m.mode = modeMembers
			m.rosterEntries = nil
			m.rosterIndex = 0
			cmds = append(cmds, m.loadRoster(chat.ID))
		}
	case "p":
		user := m.session.User()
		m.mode = modeProfile
		m.profileName.SetValue(user.Username)
		m.profileAvatar.SetValue(user.AvatarURL)
		m.profileFocusAvatar = false
		m.profileName.Focus()
		m.profileAvatar.Blur()
		cmds = append(cmds, textinput.Blink)
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// openChat switches the thread to another conversation and kicks off its
// first load.
func (m *Model) openChat(chatID int64) {
	m.selectedChatID = chatID
	m.thread.Select(chatID)
	m.loadingThread = true
	m.messages = nil
	m.viewport.SetContent("")
}

// clampSelection keeps the sidebar highlight pointing at the selected
// conversation across wholesale list replacements.
func (m *Model) clampSelection() {
	if m.selectedChatID != 0 {
		for i, chat := range m.chats {
			if chat.ID == m.selectedChatID {
				m.selectedIndex = i
				return
			}
		}
	}
	if m.selectedIndex >= len(m.chats) {
		m.selectedIndex = len(m.chats) - 1
	}
	if m.selectedIndex < 0 && len(m.chats) > 0 {
		m.selectedIndex = 0
	}
}
