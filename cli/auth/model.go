// Package auth implements the credential entry screen: login and
// registration against the accounts endpoint, populating the session on
// success.
package auth

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"courier/cli/styles"
	"courier/internal/session"
)

const (
	inputUsername = iota
	inputEmail
	inputPassword
	inputCount
)

// Model represents the Bubble Tea model for the auth screen.
type Model struct {
	ctx     context.Context
	session *session.Session

	registering bool
	inputs      [inputCount]textinput.Model
	focus       int
	submitting  bool
	errText     string
	spinner     spinner.Model

	width    int
	height   int
	quitting bool

	// Set when authentication completed; inspected after the program exits.
	succeeded bool
}

// New creates a new auth screen model.
func New(ctx context.Context, s *session.Session) *Model {
	username := textinput.New()
	username.Placeholder = "display name"
	username.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "example@mail.com"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	m := &Model{
		ctx:     ctx,
		session: s,
		focus:   inputEmail,
	}
	m.inputs[inputUsername] = username
	m.inputs[inputEmail] = email
	m.inputs[inputPassword] = password
	m.spinner = sp
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Run drives the auth screen to completion and reports whether the session
// was populated.
func Run(ctx context.Context, s *session.Session) (bool, error) {
	program := tea.NewProgram(New(ctx, s), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return false, errors.Wrap(err, "running auth screen")
	}
	model, ok := final.(*Model)
	if !ok {
		return false, errors.New("unexpected final model")
	}
	return model.succeeded, nil
}

// visible returns the input indexes shown in the current mode.
func (m *Model) visible() []int {
	if m.registering {
		return []int{inputUsername, inputEmail, inputPassword}
	}
	return []int{inputEmail, inputPassword}
}

func (m *Model) setFocus(index int) {
	m.focus = index
	for i := range m.inputs {
		if i == index {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) cycleFocus(delta int) {
	visible := m.visible()
	position := 0
	for i, index := range visible {
		if index == m.focus {
			position = i
			break
		}
	}
	position = (position + delta + len(visible)) % len(visible)
	m.setFocus(visible[position])
}
