// Package messenger implements the main chat screen: chat-list sidebar,
// message thread, composer, and the overlay dialogs for new chats, new
// groups, group membership administration, and profile editing.
package messenger

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"go.dalton.dog/bubbleup"

	"courier/cli/styles"
	"courier/internal/api"
	"courier/internal/chatlist"
	"courier/internal/configuration"
	"courier/internal/directory"
	"courier/internal/members"
	"courier/internal/poller"
	"courier/internal/session"
	"courier/internal/thread"
)

// mode selects which surface is on screen. Dialogs replace the chat surface
// entirely while open.
type mode int

const (
	modeChat mode = iota
	modeNewChat
	modeNewGroup
	modeMembers
	modeProfile
)

type focusZone int

const (
	focusSidebar focusZone = iota
	focusComposer
)

// Model represents the Bubble Tea model for the messenger screen.
type Model struct {
	// Core dependencies
	ctx     context.Context
	config  *configuration.Config
	session *session.Session

	// State models
	directory *directory.Cache
	chatList  *chatlist.Model
	thread    *thread.Model
	roster    *members.Panel
	poll      *poller.Poller

	// Program reference for sending messages from goroutines
	program   *tea.Program
	programMu sync.Mutex

	// UI state
	mode  mode
	focus focusZone

	chats          []api.Chat
	selectedIndex  int
	selectedChatID int64

	messages      []api.Message
	loadingThread bool

	// UI components
	viewport viewport.Model
	composer textinput.Model
	spinner  spinner.Model

	// Alert notifications.
	alert bubbleup.AlertModel

	// New chat dialog
	searchInput   textinput.Model
	searchResults []api.User
	searchIndex   int

	// New group dialog
	groupName       textinput.Model
	groupFocusList  bool
	groupCandidates []api.User
	groupIndex      int
	groupSelected   []int64

	// Members dialog
	rosterEntries []api.Member
	rosterIndex   int

	// Profile dialog
	profileName        textinput.Model
	profileAvatar      textinput.Model
	profileFocusAvatar bool
	savingProfile      bool

	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates a new messenger model for the authenticated session.
func New(ctx context.Context, config *configuration.Config, s *session.Session, client *api.Client) *Model {
	self := s.User()

	composer := textinput.New()
	composer.Placeholder = "Type a message..."
	composer.CharLimit = 0

	searchInput := textinput.New()
	searchInput.Placeholder = "Search users..."
	searchInput.CharLimit = 64

	groupName := textinput.New()
	groupName.Placeholder = "Group name"
	groupName.CharLimit = 64

	profileName := textinput.New()
	profileName.CharLimit = 64
	profileAvatar := textinput.New()
	profileAvatar.Placeholder = "https://example.com/avatar.jpg"
	profileAvatar.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	alert := bubbleup.NewAlertModel(40, true, 1)

	chatList := chatlist.New(client, self.ID)

	m := &Model{
		ctx:           ctx,
		config:        config,
		session:       s,
		directory:     directory.New(client, self.ID),
		chatList:      chatList,
		thread:        thread.New(client, chatList, self.ID),
		roster:        members.New(client, self.ID),
		selectedIndex: -1,
		composer:      composer,
		searchInput:   searchInput,
		groupName:     groupName,
		profileName:   profileName,
		profileAvatar: profileAvatar,
		spinner:       sp,
		alert:         *alert,
	}

	interval := time.Duration(config.PollIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 3 * time.Second
	}
	m.poll = poller.New(interval, func() {
		if p := m.getProgram(); p != nil {
			p.Send(pollTickMsg{})
		}
	})
	return m
}

// SetProgram sets the tea.Program reference for async message sending.
func (m *Model) SetProgram(p *tea.Program) {
	m.programMu.Lock()
	defer m.programMu.Unlock()
	m.program = p
}

// getProgram safely gets the program reference.
func (m *Model) getProgram() *tea.Program {
	m.programMu.Lock()
	defer m.programMu.Unlock()
	return m.program
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.alert.Init(),
		m.refreshChats(),
		m.refreshDirectory(),
	)
}

// Run drives the messenger screen to completion. The polling timer lives
// exactly as long as the program.
func Run(ctx context.Context, config *configuration.Config, s *session.Session, client *api.Client) error {
	m := New(ctx, config, s, client)
	program := tea.NewProgram(m, tea.WithAltScreen())
	m.SetProgram(program)

	m.poll.Start()
	defer m.poll.Stop()

	if _, err := program.Run(); err != nil {
		return errors.Wrap(err, "running messenger")
	}
	return nil
}

// selectedChat returns the snapshot entry of the selected conversation.
func (m *Model) selectedChat() (api.Chat, bool) {
	for _, chat := range m.chats {
		if chat.ID == m.selectedChatID {
			return chat, true
		}
	}
	return api.Chat{}, false
}
