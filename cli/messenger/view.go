package messenger

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"courier/cli/styles"
	"courier/internal/api"
)

// View renders the messenger screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	var content string
	switch m.mode {
	case modeNewChat:
		content = m.viewNewChat()
	case modeNewGroup:
		content = m.viewNewGroup()
	case modeMembers:
		content = m.viewMembers()
	case modeProfile:
		content = m.viewProfile()
	default:
		content = m.viewChat()
	}
	return m.alert.Render(content)
}

func (m *Model) viewChat() string {
	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.renderComposer(),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render(" Courier ")
	user := m.session.User()
	status := styles.StatusStyle.Render(fmt.Sprintf("  %s", user.Username))
	if chat, ok := m.selectedChat(); ok {
		status += styles.StatusStyle.Render("  |  ") + styles.SenderLabelStyle.Render(chat.Name)
	}
	line := lipgloss.JoinHorizontal(lipgloss.Center, title, status)
	help := styles.HelpStyle.
		MarginTop(0).
		Render("tab: focus  n: new chat  g: new group  m: members  p: profile  ctrl+c: quit")
	return lipgloss.JoinVertical(lipgloss.Left, line, help)
}

func (m *Model) renderSidebar() string {
	height := m.height - styles.HeaderHeight
	if height < 1 {
		height = 1
	}

	var b strings.Builder
	if len(m.chats) == 0 {
		b.WriteString(styles.ChatPreviewStyle.Render("No conversations yet"))
	}
	for i, chat := range m.chats {
		name := chat.Name
		if chat.IsGroup {
			name = "# " + name
		}
		name = styles.Truncate(name, styles.SidebarWidth-4)
		if i == m.selectedIndex {
			b.WriteString(styles.ChatItemSelectedStyle.Render(name))
		} else {
			b.WriteString(styles.ChatItemStyle.Render(name))
		}
		b.WriteString("\n")
		if chat.LastMessage != "" {
			preview := styles.Truncate(chat.LastMessage, styles.SidebarWidth-6)
			b.WriteString(styles.ChatPreviewStyle.Render(preview))
			b.WriteString("\n")
		}
	}
	return styles.SidebarStyle.Height(height).Render(b.String())
}

func (m *Model) renderComposer() string {
	style := styles.ComposerBlurredStyle
	if m.focus == focusComposer {
		style = styles.ComposerStyle
	}
	return style.Width(m.viewport.Width - 2).Render(m.composer.View())
}

// renderMessages renders the message thread for the viewport.
func (m *Model) renderMessages() string {
	if m.selectedChatID == 0 {
		return styles.HelpStyle.Render("Select a conversation to start chatting")
	}
	if m.loadingThread {
		return m.spinner.View() + " Loading messages..."
	}
	if len(m.messages) == 0 {
		return styles.HelpStyle.Render("No messages yet")
	}

	self := m.session.User()
	var b strings.Builder
	for _, message := range m.messages {
		b.WriteString(m.renderMessage(message, message.UserID == self.ID))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderMessage(message api.Message, own bool) string {
	label := styles.SenderLabelStyle.Render(message.Username)
	stamp := styles.TimestampStyle.Render(formatTimestamp(message.CreatedAt))
	body := label + " " + stamp + "\n" + message.Content
	if own {
		return styles.OwnMessageStyle.Render(body)
	}
	return styles.PeerMessageStyle.Render(body)
}

// formatTimestamp renders a server timestamp as a short clock time. The
// server sends several textual formats, so try them in order and fall
// back to the raw string.
func formatTimestamp(raw string) string {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999",
		"2006-01-02 15:04:05",
		time.RFC3339,
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("15:04")
		}
	}
	return raw
}

func (m *Model) viewNewChat() string {
	var b strings.Builder
	b.WriteString(styles.DialogTitleStyle.Render("New chat"))
	b.WriteString("\n\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")
	if len(m.searchResults) == 0 {
		b.WriteString(styles.HelpStyle.MarginTop(0).Render("No matching users"))
	}
	for i, user := range m.searchResults {
		line := styles.Truncate(user.Username, styles.DialogWidth-6)
		if i == m.searchIndex {
			b.WriteString(styles.PickerSelectedStyle.Render("> " + line))
		} else {
			b.WriteString(styles.PickerItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.HelpStyle.Render("enter: start chat  esc: cancel"))
	return m.placeDialog(b.String())
}

func (m *Model) viewNewGroup() string {
	var b strings.Builder
	b.WriteString(styles.DialogTitleStyle.Render("New group"))
	b.WriteString("\n\n")
	b.WriteString(m.groupName.View())
	b.WriteString("\n\n")
	for i, user := range m.groupCandidates {
		marker := "[ ] "
		if m.groupCandidateSelected(user.ID) {
			marker = "[x] "
		}
		line := marker + styles.Truncate(user.Username, styles.DialogWidth-10)
		if m.groupFocusList && i == m.groupIndex {
			b.WriteString(styles.PickerSelectedStyle.Render("> " + line))
		} else {
			b.WriteString(styles.PickerItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.HelpStyle.Render("tab: switch  space: select  enter: create  esc: cancel"))
	return m.placeDialog(b.String())
}

func (m *Model) viewMembers() string {
	var b strings.Builder
	b.WriteString(styles.DialogTitleStyle.Render("Members"))
	b.WriteString("\n\n")
	self := m.session.User()
	for i, member := range m.rosterEntries {
		line := styles.Truncate(member.Username, styles.DialogWidth-20)
		if member.ID == self.ID {
			line += " (you)"
		}
		if member.Role == api.RoleAdmin {
			line += " " + styles.AdminBadgeStyle.Render("admin")
		}
		if !member.CanWrite {
			line += " " + styles.NoWriteBadgeStyle.Render("muted")
		}
		if i == m.rosterIndex {
			b.WriteString(styles.PickerSelectedStyle.Render("> " + line))
		} else {
			b.WriteString(styles.PickerItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	if !m.roster.MembersCanWrite() {
		b.WriteString("\n")
		b.WriteString(styles.NoWriteBadgeStyle.Render("Only admins may write in this group"))
		b.WriteString("\n")
	}
	b.WriteString(styles.HelpStyle.Render("r: toggle admin  w: toggle mute  e: toggle group writes  esc: close"))
	return m.placeDialog(b.String())
}

func (m *Model) viewProfile() string {
	var b strings.Builder
	b.WriteString(styles.DialogTitleStyle.Render("Edit profile"))
	b.WriteString("\n\n")
	b.WriteString("Username\n")
	b.WriteString(m.profileName.View())
	b.WriteString("\n\nAvatar URL\n")
	b.WriteString(m.profileAvatar.View())
	b.WriteString("\n")
	if m.savingProfile {
		b.WriteString("\n" + m.spinner.View() + " Saving...")
	}
	b.WriteString(styles.HelpStyle.Render("tab: switch  enter: save  esc: cancel"))
	return m.placeDialog(b.String())
}

func (m *Model) placeDialog(content string) string {
	dialog := styles.DialogStyle.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}
