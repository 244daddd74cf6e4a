package auth

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyTab, tea.KeyDown:
			m.cycleFocus(1)
			return m, nil

		case tea.KeyShiftTab, tea.KeyUp:
			m.cycleFocus(-1)
			return m, nil

		case tea.KeyCtrlT:
			if !m.submitting {
				m.registering = !m.registering
				m.errText = ""
				if m.registering {
					m.setFocus(inputUsername)
				} else {
					m.setFocus(inputEmail)
				}
			}
			return m, nil

		case tea.KeyEnter:
			if !m.submitting {
				return m, m.submit()
			}
			return m, nil
		}

	case authResultMsg:
		m.submitting = false
		if msg.err == nil {
			m.succeeded = true
			m.quitting = true
			return m, tea.Quit
		}
		m.errText = describe(msg.err)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.submitting {
		for _, index := range m.visible() {
			var cmd tea.Cmd
			m.inputs[index], cmd = m.inputs[index].Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}
