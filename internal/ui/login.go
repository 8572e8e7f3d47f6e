package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ordamat/waorder/cli/internal/api"
	"github.com/ordamat/waorder/cli/internal/ui/components"
)

type loginDoneMsg struct {
	token string
	user  *api.User
	err   error
}

// loginModel is the in-app sign-in form shown before anything else and
// again whenever the session expires mid-flight.
type loginModel struct {
	client   *api.Client
	username textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	errText  string
	width    int
}

func newLoginModel(client *api.Client, username string) loginModel {
	user := textinput.New()
	user.Placeholder = "email"
	user.CharLimit = 128
	user.Width = 36
	user.SetValue(username)
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.Width = 36
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return loginModel{client: client, username: user, password: pass}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			var aerr *api.AuthError
			if errors.As(msg.err, &aerr) {
				m.errText = "Invalid credentials."
			} else {
				m.errText = msg.err.Error()
			}
			return m, nil
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch {
		case isEnter(msg):
			if m.focus == 0 {
				return m.setFocus(1)
			}
			return m.submit()
		case msg.Type == tea.KeyTab, msg.Type == tea.KeyShiftTab, isUp(msg), isDown(msg):
			return m.setFocus((m.focus + 1) % 2)
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m loginModel) setFocus(focus int) (loginModel, tea.Cmd) {
	m.focus = focus
	m.username.Blur()
	m.password.Blur()
	if focus == 0 {
		return m, m.username.Focus()
	}
	return m, m.password.Focus()
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	if username == "" || password == "" {
		m.errText = "Both fields are required."
		return m, nil
	}
	m.busy = true
	m.errText = ""
	client := m.client
	return m, func() tea.Msg {
		resp, err := client.Login(username, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		client.Session().Reset(resp.AccessToken)
		user, err := client.Me()
		if err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{token: resp.AccessToken, user: user}
	}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Sign In") + "\n\n")
	b.WriteString(m.username.View() + "\n")
	b.WriteString(m.password.View() + "\n\n")
	if m.errText != "" {
		b.WriteString(ErrorStyle.Render("✗ "+m.errText) + "\n\n")
	}
	if m.busy {
		b.WriteString(MutedStyle.Render("Signing in..."))
	} else {
		b.WriteString(MutedStyle.Render("enter: next/submit · tab: switch field"))
	}
	return components.ActiveBox(b.String(), m.width)
}
