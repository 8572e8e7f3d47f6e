package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ordamat/waorder/cli/internal/api"
	"github.com/ordamat/waorder/cli/internal/config"
)

func newClientFromConfig() (*api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("not logged in: %w", err)
	}
	return api.NewClient(api.ResolveBaseURL(cfg.ServerURL), api.NewAuthSession(cfg.Token)), nil
}

// WhoamiCmd returns the `waorder whoami` command.
func WhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(_ *cobra.Command, _ []string) error {
			client, err := newClientFromConfig()
			if err != nil {
				return err
			}
			me, err := client.Me()
			if err != nil {
				return fmt.Errorf("fetch account: %w", err)
			}
			fmt.Printf("email: %s\n", me.Email)
			fmt.Printf("role: %s\n", me.Role)
			fmt.Printf("server: %s\n", client.BaseURL())
			fmt.Printf("config: %s\n", config.Path())
			return nil
		},
	}
}
