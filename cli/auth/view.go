package auth

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"courier/cli/styles"
)

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := " Courier "
	if m.registering {
		b.WriteString(styles.DialogTitleStyle.Render("Create an account"))
	} else {
		b.WriteString(styles.DialogTitleStyle.Render("Sign in"))
	}
	b.WriteString("\n\n")

	if m.registering {
		b.WriteString(m.renderField("Display name", m.inputs[inputUsername].View()))
	}
	b.WriteString(m.renderField("Email", m.inputs[inputEmail].View()))
	b.WriteString(m.renderField("Password", m.inputs[inputPassword].View()))

	if m.submitting {
		b.WriteString(fmt.Sprintf("\n%s Authenticating...\n", m.spinner.View()))
	}
	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.errText))
		b.WriteString("\n")
	}

	if m.registering {
		b.WriteString(styles.HelpStyle.Render("Enter to register · Ctrl+T to sign in instead · Esc to quit"))
	} else {
		b.WriteString(styles.HelpStyle.Render("Enter to sign in · Ctrl+T to register instead · Esc to quit"))
	}

	dialog := styles.DialogStyle.Render(b.String())
	banner := styles.TitleStyle.Render(title)
	content := lipgloss.JoinVertical(lipgloss.Center, banner, "", dialog)

	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderField(label, input string) string {
	return fmt.Sprintf("%s\n%s\n", styles.StatusStyle.Render(label), input)
}
