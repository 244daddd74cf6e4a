package messenger

import (
	"github.com/charmbracelet/bubbles/viewport"

	"courier/cli/styles"
)

// recalculateLayout reflows the viewport and composer for the current
// terminal size.
func (m *Model) recalculateLayout() {
	contentWidth := m.width - styles.SidebarWidth - 1
	if contentWidth < 1 {
		contentWidth = 1
	}
	viewportHeight := m.height - styles.HeaderHeight - styles.ComposerHeight
	if viewportHeight < styles.MinViewportHeight {
		viewportHeight = styles.MinViewportHeight
	}

	if !m.ready {
		m.viewport = viewport.New(contentWidth, viewportHeight)
		m.viewport.Style = styles.ViewportStyle
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = viewportHeight
	}
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()

	m.composer.Width = contentWidth - 4
	if m.composer.Width < 1 {
		m.composer.Width = 1
	}
}
