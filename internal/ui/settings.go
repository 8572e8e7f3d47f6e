package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ordamat/waorder/cli/internal/api"
	"github.com/ordamat/waorder/cli/internal/config"
	"github.com/ordamat/waorder/cli/internal/ui/components"
)

type logoutMsg struct{}

// SettingsModel shows the active connection and account, and hosts
// the logout action.
type SettingsModel struct {
	client  *api.Client
	cfg     *config.Config
	confirm bool
	width   int
	height  int
}

func NewSettingsModel(client *api.Client, cfg *config.Config) SettingsModel {
	return SettingsModel{client: client, cfg: cfg}
}

func (m SettingsModel) Init() tea.Cmd {
	return nil
}

func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if m.confirm {
			switch {
			case isKey(key, "y"):
				m.confirm = false
				return m, func() tea.Msg { return logoutMsg{} }
			case isKey(key, "n"), isBack(key):
				m.confirm = false
			}
			return m, nil
		}
		if isKey(key, "L") {
			m.confirm = true
			return m, nil
		}
	}
	return m, nil
}

func (m *SettingsModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

func (m SettingsModel) View() string {
	if m.confirm {
		return components.ConfirmDialog("Log out", "The saved token will be removed from this machine.")
	}

	role := m.cfg.Role
	if role == "" {
		role = "unknown"
	}
	rows := []string{
		components.InfoRow("Server", api.ResolveBaseURL(m.cfg.ServerURL)),
		components.InfoRow("Account", m.cfg.Username),
		components.InfoRow("Role", role),
		components.InfoRow("Config", config.Path()),
		components.InfoRow("Log file", config.LogPath()),
	}
	content := strings.Join(rows, "\n") + "\n\n" +
		MutedStyle.Render("L: log out")
	return components.TitledBox("Settings", content, m.width)
}
