package main

import (
	"context"

	"github.com/spf13/cobra"

	"courier/account"
	"courier/cli/auth"
	"courier/cli/messenger"
	"courier/internal/api"
	"courier/internal/configuration"
	"courier/internal/debug"
	"courier/internal/session"
)

const configFilepath = "~/.config/courier/config.json"

func main() {
	config, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}
	debug.SetPath(config.DebugLog)

	store, err := session.NewStore(config.Database)
	if err != nil {
		panic(err)
	}
	defer store.Close()

	client := api.New(config)
	s := session.New(store, client)
	s.Restore()

	rootCmd := &cobra.Command{
		Use:   "courier",
		Short: "A terminal messenger",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if !s.Active() {
				ok, err := auth.Run(ctx, s)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}
			return messenger.Run(ctx, config, s, client)
		},
	}
	rootCmd.AddCommand(account.NewWhoamiCmd(s))
	rootCmd.AddCommand(account.NewLogoutCmd(s))
	rootCmd.Execute()
}
