// Package account provides session inspection commands that run outside
// the interactive UI.
package account

import (
	"github.com/spf13/cobra"

	"courier/internal/cli"
	"courier/internal/session"
)

// NewWhoamiCmd instantiates and returns the whoami command.
func NewWhoamiCmd(s *session.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in account",
		Long:  "Print the signed-in account",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			cli.Title("COURIER ACCOUNT")
			if !s.Active() {
				cli.Warning("not signed in")
				return
			}
			user := s.User()
			cli.Field("username", user.Username)
			cli.Field("email", user.Email)
			if user.AvatarURL != "" {
				cli.Field("avatar", user.AvatarURL)
			}
			cli.Separator()
		},
	}
}

// NewLogoutCmd instantiates and returns the logout command.
func NewLogoutCmd(s *session.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session",
		Long:  "Discard the saved session",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			if !s.Active() {
				cli.Warning("not signed in")
				return
			}
			user := s.User()
			if !cli.QueryUser("Sign out " + user.Username + "?") {
				return
			}
			cobra.CheckErr(s.SignOut())
			cli.Notice("signed out")
		},
	}
}
