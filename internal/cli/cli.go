package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/buger/goterm"
	"github.com/fatih/color"
)

var (
	// Colors for different types of output
	titleColor     = color.New(color.FgMagenta, color.Bold) // Bold magenta for titles
	separatorColor = color.New(color.FgHiBlack)             // Dark grey for separators
	labelColor     = color.New(color.FgCyan)                // Cyan for field labels
	valueColor     = color.New(color.FgWhite)               // White for field values
	noticeColor    = color.New(color.FgGreen)               // Green for confirmations
	warningColor   = color.New(color.FgYellow)              // Yellow for warnings

	width = goterm.Width()
)

// Separator printed to cli.
func Separator() {
	separator := strings.Repeat("-", width)
	separatorColor.Println(separator)
}

// Title printed to cli.
func Title(text string, args ...any) {
	title := "      " + fmt.Sprintf(text, args...) + "      "
	leftWidth := (width - len(title)) / 2
	separator1 := strings.Repeat("-", leftWidth)
	separator2 := strings.Repeat("-", width-len(title)-len(separator1))
	output := fmt.Sprintf("%s%s%s", separator1, title, separator2)
	titleColor.Println(output)
}

// Field prints a labeled value.
func Field(label, value string) {
	labelColor.Printf("%s: ", label)
	valueColor.Println(value)
}

// Notice printed to cli.
func Notice(text string, args ...any) {
	noticeColor.Printf(text+"\n", args...)
}

// Warning printed to cli.
func Warning(text string, args ...any) {
	warningColor.Printf(text+"\n", args...)
}

// QueryUser a yes/no question.
func QueryUser(question string) bool {
	surveyQuestion := &survey.Confirm{
		Message: question,
	}
	confirm := false
	survey.AskOne(surveyQuestion, &confirm)
	return confirm
}
