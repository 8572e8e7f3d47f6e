package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ordamat/waorder/cli/internal/api"
	"github.com/ordamat/waorder/cli/internal/cmd"
	"github.com/ordamat/waorder/cli/internal/config"
	"github.com/ordamat/waorder/cli/internal/logging"
	"github.com/ordamat/waorder/cli/internal/ui"
)

func main() {
	root := &cobra.Command{
		Use:   "waorder",
		Short: "WhatsApp order automation console",
		Long:  "waorder: manage clients, message templates, order groups, and mailing tasks.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.LoginCmd())
	root.AddCommand(cmd.WhoamiCmd())
	root.AddCommand(cmd.TaskCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")

	// optional; local overrides like WAORDER_API_URL
	_ = godotenv.Load()
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		if !errors.Is(err, config.ErrNotFound) {
			return err
		}
		cfg = &config.Config{}
	}

	if err := logging.Init(config.LogPath()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
	}
	defer logging.Sync()

	session := api.NewAuthSession(cfg.Token)
	session.OnExpire(func() {
		logging.L().Warn("session expired, sign-in required")
	})
	client := api.NewClient(api.ResolveBaseURL(cfg.ServerURL), session)
	app := ui.NewApp(client, cfg)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
