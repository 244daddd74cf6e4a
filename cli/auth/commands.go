package auth

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"courier/internal/api"
)

type authResultMsg struct {
	err error
}

func (m *Model) submit() tea.Cmd {
	username := strings.TrimSpace(m.inputs[inputUsername].Value())
	email := strings.TrimSpace(m.inputs[inputEmail].Value())
	password := m.inputs[inputPassword].Value()
	if email == "" || password == "" {
		m.errText = "email and password are required"
		return nil
	}
	if m.registering && username == "" {
		m.errText = "display name is required"
		return nil
	}

	m.errText = ""
	m.submitting = true
	registering := m.registering

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		var err error
		if registering {
			err = m.session.Register(m.ctx, email, password, username)
		} else {
			err = m.session.Login(m.ctx, email, password)
		}
		return authResultMsg{err: err}
	})
}

// describe maps an authentication failure to user-visible text: the
// server-reported reason when there is one, a generic notice for transport
// failures.
func describe(err error) string {
	var apiError *api.Error
	if errors.As(err, &apiError) {
		if apiError.Reason != "" {
			return apiError.Reason
		}
		return "authentication rejected"
	}
	return "connection failed"
}
