package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ordamat/waorder/cli/internal/api"
	"github.com/ordamat/waorder/cli/internal/config"
	"github.com/ordamat/waorder/cli/internal/logging"
	"github.com/ordamat/waorder/cli/internal/ui/components"
)

type errMsg struct{ err error }

type toastMsg struct{ text string }

type clearToastMsg struct{ gen int }

const toastDuration = 2500 * time.Millisecond

type appTab int

const (
	tabClients appTab = iota
	tabBilling
	tabSettings
	tabCount
)

var tabTitles = [tabCount]string{"Clients", "Billing", "Settings"}

// App is the root model: sign-in gate, tab bar, and message routing to
// the active tab. Auth failures from anywhere in the tree drop the
// user back to the sign-in form exactly once per session.
type App struct {
	client *api.Client
	cfg    *config.Config

	signedIn bool
	login    loginModel

	tab      appTab
	inited   [tabCount]bool
	clients  ClientsModel
	billing  BillingModel
	settings SettingsModel

	toast    string
	toastGen int

	width  int
	height int
}

func NewApp(client *api.Client, cfg *config.Config) App {
	app := App{
		client:   client,
		cfg:      cfg,
		clients:  NewClientsModel(client),
		billing:  NewBillingModel(client),
		settings: NewSettingsModel(client, cfg),
	}
	if client != nil && client.Session().Authenticated() {
		app.signedIn = true
		app.tab = landingTab(cfg.Role)
	} else {
		app.login = newLoginModel(client, cfg.Username)
	}
	return app
}

// landingTab picks the first tab after sign-in. Only admins manage the
// client roster; everyone else starts on their own settings.
func landingTab(role string) appTab {
	if role == "admin" {
		return tabClients
	}
	return tabSettings
}

func (a App) Init() tea.Cmd {
	if !a.signedIn {
		return a.login.Init()
	}
	return a.initTab(a.tab)
}

// initTab fires a tab's Init cmd the first time it becomes visible.
func (a *App) initTab(tab appTab) tea.Cmd {
	if a.inited[tab] {
		return nil
	}
	a.inited[tab] = true
	switch tab {
	case tabClients:
		return a.clients.Init()
	case tabBilling:
		return a.billing.Init()
	default:
		return a.settings.Init()
	}
}

func (a *App) switchTab(tab appTab) tea.Cmd {
	a.tab = tab
	return a.initTab(tab)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.login.width = msg.Width
		a.clients.setSize(msg.Width, msg.Height)
		a.billing.setSize(msg.Width, msg.Height)
		a.settings.setSize(msg.Width, msg.Height)
		return a, nil

	case errMsg:
		if api.IsAuth(msg.err) {
			return a.dropToLogin("Session expired. Sign in again.")
		}
		logging.L().Warn("operation failed", zap.Error(msg.err))
		return a, a.showToast("✗ " + msg.err.Error())

	case loginDoneMsg:
		if msg.err != nil {
			// wrong credentials or unreachable server; keep the form open
			var cmd tea.Cmd
			a.login, cmd = a.login.Update(msg)
			return a, cmd
		}
		return a.completeSignIn(msg)

	case logoutMsg:
		return a.dropToLogin("Logged out.")

	case clearToastMsg:
		if msg.gen == a.toastGen {
			a.toast = ""
		}
		return a, nil

	case tea.KeyMsg:
		if !a.signedIn {
			if isKey(msg, "ctrl+c") {
				return a, tea.Quit
			}
			var cmd tea.Cmd
			a.login, cmd = a.login.Update(msg)
			return a, cmd
		}
		if isKey(msg, "ctrl+c") {
			return a, tea.Quit
		}
		if !a.textEntryActive() {
			switch {
			case isKey(msg, "q") && a.atTabRoot():
				return a, tea.Quit
			case isTab(msg, 1):
				return a, a.switchTab(tabClients)
			case isTab(msg, 2):
				return a, a.switchTab(tabBilling)
			case isTab(msg, 3):
				return a, a.switchTab(tabSettings)
			}
		}
	}

	if !a.signedIn {
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	}

	cmd := a.routeToTab(msg)
	if toast := toastFor(msg); toast != "" {
		return a, tea.Batch(cmd, a.showToast(toast))
	}
	return a, cmd
}

func (a *App) routeToTab(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.tab {
	case tabClients:
		a.clients, cmd = a.clients.Update(msg)
	case tabBilling:
		a.billing, cmd = a.billing.Update(msg)
	default:
		a.settings, cmd = a.settings.Update(msg)
	}
	return cmd
}

func (a App) completeSignIn(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	a.cfg.Token = msg.token
	a.cfg.Username = msg.user.Email
	a.cfg.Role = msg.user.Role
	if err := a.cfg.Save(); err != nil {
		logging.L().Warn("config save failed", zap.Error(err))
	}
	logging.L().Info("signed in", zap.String("user", msg.user.Email), zap.String("role", msg.user.Role))

	a.signedIn = true
	a.tab = landingTab(msg.user.Role)
	a.inited = [tabCount]bool{}
	a.clients = NewClientsModel(a.client)
	a.billing = NewBillingModel(a.client)
	a.settings = NewSettingsModel(a.client, a.cfg)
	a.clients.setSize(a.width, a.height)
	a.billing.setSize(a.width, a.height)
	a.settings.setSize(a.width, a.height)
	return a, a.initTab(a.tab)
}

// dropToLogin swaps to the sign-in form and forgets the stored token.
// Safe to hit repeatedly; only the first call per session does work.
func (a App) dropToLogin(note string) (tea.Model, tea.Cmd) {
	if !a.signedIn {
		return a, nil
	}
	a.signedIn = false
	a.cfg.Token = ""
	if err := a.cfg.Save(); err != nil {
		logging.L().Warn("config save failed", zap.Error(err))
	}
	a.login = newLoginModel(a.client, a.cfg.Username)
	a.login.width = a.width
	a.login.errText = note
	return a, a.login.Init()
}

func (a *App) showToast(text string) tea.Cmd {
	a.toast = text
	a.toastGen++
	gen := a.toastGen
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{gen: gen}
	})
}

// toastFor turns completion messages from the tabs into a short
// confirmation shown in the footer.
func toastFor(msg tea.Msg) string {
	switch msg := msg.(type) {
	case createdMsg:
		return "✓ Created"
	case detailSavedMsg:
		return "✓ Saved"
	case detailDeletedMsg:
		return "✓ Deleted"
	case bulkDoneMsg:
		if msg.failed > 0 {
			return fmt.Sprintf("%s: %d/%d done, %d failed",
				msg.label, msg.total-msg.failed, msg.total, msg.failed)
		}
		return fmt.Sprintf("✓ %s: %d done", msg.label, msg.total)
	}
	return ""
}

// textEntryActive reports whether the active tab currently owns
// printable keys, which suppresses the global shortcuts.
func (a App) textEntryActive() bool {
	switch a.tab {
	case tabClients:
		return a.clients.textEntryActive()
	case tabBilling:
		return a.billing.textEntryActive()
	}
	return false
}

// atTabRoot reports whether the active tab is at its top level, where
// q may quit without eating a key a nested view wants.
func (a App) atTabRoot() bool {
	switch a.tab {
	case tabClients:
		return a.clients.view == clientsViewList && a.clients.list.confirmBulk == ""
	case tabBilling:
		return a.billing.view == billingViewList && a.billing.list.confirmBulk == ""
	default:
		return !a.settings.confirm
	}
}

func (a App) View() string {
	var b strings.Builder
	b.WriteString(RenderBanner())
	b.WriteString("\n")

	if !a.signedIn {
		b.WriteString(a.login.View())
		return a.withFooter(b.String(), []string{
			components.Hint("enter", "submit"),
			components.Hint("ctrl+c", "quit"),
		})
	}

	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")

	switch a.tab {
	case tabClients:
		b.WriteString(a.clients.View())
	case tabBilling:
		b.WriteString(a.billing.View())
	default:
		b.WriteString(a.settings.View())
	}

	return a.withFooter(b.String(), a.hints())
}

func (a App) renderTabs() string {
	parts := make([]string, 0, tabCount)
	for i := appTab(0); i < tabCount; i++ {
		label := fmt.Sprintf(" %d %s ", i+1, tabTitles[i])
		if i == a.tab {
			parts = append(parts, TabActiveStyle.Render(label))
		} else {
			parts = append(parts, TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a App) hints() []string {
	hints := []string{
		components.Hint("1-3", "tabs"),
	}
	switch a.tab {
	case tabClients:
		if a.clients.view == clientsViewList {
			hints = append(hints,
				components.Hint("enter", "open"),
				components.Hint("n", "new"),
				components.Hint("space", "select"),
				components.Hint("g/x/d", "start/stop/delete"),
				components.Hint("m", "more"),
				components.Hint("s", "sort"))
		}
	case tabBilling:
		if a.billing.view == billingViewList {
			hints = append(hints,
				components.Hint("enter", "open"),
				components.Hint("n", "new"),
				components.Hint("space", "select"),
				components.Hint("d", "delete"))
		}
	default:
		hints = append(hints, components.Hint("L", "log out"))
	}
	hints = append(hints, components.Hint("q", "quit"))
	return hints
}

func (a App) withFooter(body string, hints []string) string {
	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	if a.toast != "" {
		if text, isErr := strings.CutPrefix(a.toast, "✗ "); isErr {
			b.WriteString(components.ErrorBox("Error", text, a.width))
		} else {
			b.WriteString(SuccessStyle.Render(a.toast))
		}
		b.WriteString("\n")
	}
	b.WriteString(components.StatusBar(hints, a.width))
	return b.String()
}
