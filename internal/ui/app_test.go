package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordamat/waorder/cli/internal/api"
	"github.com/ordamat/waorder/cli/internal/config"
)

func signedInApp(t *testing.T, role string) App {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	client := api.NewClient("http://localhost:1", api.NewAuthSession("tok"))
	return NewApp(client, &config.Config{Token: "tok", Username: "admin@x.kz", Role: role})
}

func TestNewAppWithoutTokenShowsSignIn(t *testing.T) {
	client := api.NewClient("http://localhost:1", api.NewAuthSession(""))
	app := NewApp(client, &config.Config{Username: "admin@x.kz"})

	assert.False(t, app.signedIn)
	assert.Contains(t, app.View(), "Sign In")
}

func TestLandingTabFollowsRole(t *testing.T) {
	assert.Equal(t, tabClients, landingTab("admin"))
	assert.Equal(t, tabSettings, landingTab("client"))
	assert.Equal(t, tabSettings, landingTab(""))
}

func TestAuthErrorDropsToSignInOnce(t *testing.T) {
	app := signedInApp(t, "admin")
	require.True(t, app.signedIn)

	model, _ := app.Update(errMsg{&api.AuthError{Message: "expired"}})
	updated := model.(App)
	assert.False(t, updated.signedIn)
	assert.Contains(t, updated.login.errText, "expired")

	// a second stale 401 while already on the form changes nothing
	model, cmd := updated.Update(errMsg{&api.AuthError{}})
	updated = model.(App)
	assert.False(t, updated.signedIn)
	assert.Nil(t, cmd)
}

func TestUnclassifiedErrorRendersErrorBox(t *testing.T) {
	app := signedInApp(t, "admin")
	app.width = 80

	model, _ := app.Update(errMsg{errors.New("export failed: kaspi timeout")})
	out := model.(App).View()
	assert.Contains(t, out, "Error")
	assert.Contains(t, out, "export failed: kaspi timeout")
}

func TestSignInSavesConfigAndPicksTab(t *testing.T) {
	app := signedInApp(t, "")
	app.signedIn = false

	model, _ := app.Update(loginDoneMsg{
		token: "fresh-token",
		user:  &api.User{Email: "boss@x.kz", Role: "admin"},
	})
	updated := model.(App)

	assert.True(t, updated.signedIn)
	assert.Equal(t, tabClients, updated.tab)

	saved, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", saved.Token)
	assert.Equal(t, "boss@x.kz", saved.Username)
	assert.Equal(t, "admin", saved.Role)
}

func TestFailedSignInKeepsFormOpen(t *testing.T) {
	app := signedInApp(t, "")
	app.signedIn = false
	app.login = newLoginModel(app.client, "")

	model, _ := app.Update(loginDoneMsg{err: &api.AuthError{}})
	updated := model.(App)

	assert.False(t, updated.signedIn)
	assert.Equal(t, "Invalid credentials.", updated.login.errText)
}

func TestTabSwitchingByNumber(t *testing.T) {
	app := signedInApp(t, "admin")

	model, _ := app.Update(keyRunes("2"))
	updated := model.(App)
	assert.Equal(t, tabBilling, updated.tab)

	model, _ = updated.Update(keyRunes("3"))
	updated = model.(App)
	assert.Equal(t, tabSettings, updated.tab)

	model, _ = updated.Update(keyRunes("1"))
	updated = model.(App)
	assert.Equal(t, tabClients, updated.tab)
}

func TestLogoutClearsTokenAndShowsSignIn(t *testing.T) {
	app := signedInApp(t, "admin")
	require.NoError(t, app.cfg.Save())

	model, _ := app.Update(logoutMsg{})
	updated := model.(App)

	assert.False(t, updated.signedIn)
	saved, err := config.Load()
	require.NoError(t, err)
	assert.Empty(t, saved.Token)
}

func TestToastClearsOnlyForMatchingGeneration(t *testing.T) {
	app := signedInApp(t, "admin")
	cmd := app.showToast("✓ Saved")
	require.NotNil(t, cmd)
	require.Equal(t, "✓ Saved", app.toast)

	// a second toast supersedes the first; the first timer is stale
	_ = app.showToast("✓ Deleted")
	model, _ := app.Update(clearToastMsg{gen: app.toastGen - 1})
	updated := model.(App)
	assert.Equal(t, "✓ Deleted", updated.toast)

	model, _ = updated.Update(clearToastMsg{gen: updated.toastGen})
	updated = model.(App)
	assert.Empty(t, updated.toast)
}

func TestToastForCompletionMessages(t *testing.T) {
	assert.Equal(t, "✓ Created", toastFor(createdMsg{}))
	assert.Equal(t, "✓ Saved", toastFor(detailSavedMsg{}))
	assert.Equal(t, "✓ Deleted", toastFor(detailDeletedMsg{}))
	assert.Equal(t, "✓ Stop sending: 3 done",
		toastFor(bulkDoneMsg{label: "Stop sending", total: 3}))
	assert.Equal(t, "Delete clients: 2/3 done, 1 failed",
		toastFor(bulkDoneMsg{label: "Delete clients", total: 3, failed: 1}))
	assert.Empty(t, toastFor(tea.KeyMsg{}))
}

func TestQuitOnlyFromTabRoot(t *testing.T) {
	app := signedInApp(t, "admin")
	app.clients.view = clientsViewDetail

	_, cmd := app.Update(keyRunes("q"))
	assert.Nil(t, cmd)
}
