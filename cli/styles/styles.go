package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	SidebarWidth      = 32
	HeaderHeight      = 2
	ComposerHeight    = 3
	MinViewportHeight = 1

	DialogWidth             = 60
	DialogPaddingHorizontal = 2
	DialogPaddingVertical   = 1

	HelpMarginTop = 1

	TruncateLength       = 36
	TruncateSuffix       = "..."
	TruncateSuffixLength = 3
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#2563EB") // Blue
	SecondaryColor = lipgloss.Color("#6366F1") // Indigo
	AccentColor    = lipgloss.Color("#F59E0B") // Amber
	SuccessColor   = lipgloss.Color("#10B981") // Green
	ErrorColor     = lipgloss.Color("#EF4444") // Red
	MutedColor     = lipgloss.Color("#6B7280") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light gray
	DimTextColor   = lipgloss.Color("#9CA3AF") // Dim gray
	BorderColor    = lipgloss.Color("#4B5563")
)

// Title bar
var (
	TitleStyle = lipgloss.NewStyle().
			Background(PrimaryColor).
			Foreground(TextColor).
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(DimTextColor)
)

// Sidebar
var (
	SidebarStyle = lipgloss.NewStyle().
			Width(SidebarWidth).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(BorderColor)

	ChatItemStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			PaddingLeft(1)

	ChatItemSelectedStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(SecondaryColor).
				Bold(true).
				PaddingLeft(1)

	ChatPreviewStyle = lipgloss.NewStyle().
				Foreground(DimTextColor).
				PaddingLeft(3)
)

// Messages
var (
	messageStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	OwnMessageStyle = lipgloss.NewStyle().
			Inherit(messageStyle).
			BorderForeground(PrimaryColor).
			MarginLeft(10)

	PeerMessageStyle = lipgloss.NewStyle().
				Inherit(messageStyle).
				BorderForeground(BorderColor).
				MarginRight(10)

	SenderLabelStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(DimTextColor)
)

// Roles
var (
	AdminBadgeStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	NoWriteBadgeStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)
)

// Composer
var (
	ComposerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			PaddingLeft(1)

	ComposerBlurredStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderColor).
				PaddingLeft(1)
)

// Dialogs
var (
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(AccentColor).
			Padding(DialogPaddingVertical, DialogPaddingHorizontal).
			Width(DialogWidth)

	DialogTitleStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true)

	PickerItemStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	PickerSelectedStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(SecondaryColor).
				Bold(true)
)

// Spinner
var (
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor)
)

// Help text
var (
	HelpStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true).
		MarginTop(HelpMarginTop)
)

// Error
var (
	ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)
)

// Viewport
var (
	ViewportStyle = lipgloss.NewStyle().Margin(0).Padding(0)
)

// Truncate truncates a string to the specified length with a suffix.
// Counts runes, not bytes, so multibyte display names survive intact.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-TruncateSuffixLength]) + TruncateSuffix
}
