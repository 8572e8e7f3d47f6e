package ui

import (
	"encoding/json"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordamat/waorder/cli/internal/api"
)

func templateSchema(t *testing.T) *api.ResourceSchema {
	t.Helper()
	var s api.ResourceSchema
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "Template",
		"type": "object",
		"properties": {
			"state_status": {"type": "string", "title": "Trigger"},
			"template": {"type": "string", "title": "Template"}
		},
		"required": ["state_status"]
	}`), &s))
	return &s
}

func readyCreateFlow(t *testing.T, create func(api.Instance) (api.Instance, error)) createFlow {
	t.Helper()
	schema := templateSchema(t)
	m := newCreateFlow("New Template",
		func() (*api.ResourceSchema, error) { return schema, nil },
		create,
		"template")

	msg := m.Init()()
	m, _ = m.Update(msg)
	require.False(t, m.loading)
	return m
}

func TestCreateFlowSubmits(t *testing.T) {
	var got api.Instance
	m := readyCreateFlow(t, func(draft api.Instance) (api.Instance, error) {
		got = draft
		return api.Instance{"id": float64(7)}, nil
	})

	m, _ = m.Update(keyRunes("new_order"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	created, ok := cmd().(createdMsg)
	require.True(t, ok)
	id, ok := created.item.ID()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "new_order", got["state_status"])
}

func TestCreateFlowBlocksMissingRequired(t *testing.T) {
	called := false
	m := readyCreateFlow(t, func(api.Instance) (api.Instance, error) {
		called = true
		return nil, nil
	})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.False(t, called)
	assert.NotEmpty(t, m.banner)
}

func TestCreateFlowAttachesServerFieldErrors(t *testing.T) {
	m := readyCreateFlow(t, func(api.Instance) (api.Instance, error) {
		return nil, fmt.Errorf("unused")
	})

	verr := &api.ValidationError{Fields: []api.FieldError{
		{Location: "body.state_status", Message: "unknown trigger"},
	}}
	m, cmd := m.Update(createErrMsg{err: verr})
	assert.Nil(t, cmd)
	assert.Contains(t, m.banner[0], "unknown trigger")

	var found bool
	for _, f := range m.form.Fields() {
		if f.Name == "state_status" && f.Err != "" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCreateFlowUnexpectedErrorBubblesUp(t *testing.T) {
	m := readyCreateFlow(t, nil)

	_, cmd := m.Update(createErrMsg{err: fmt.Errorf("boom")})
	require.NotNil(t, cmd)
	em, ok := cmd().(errMsg)
	require.True(t, ok)
	assert.EqualError(t, em.err, "boom")
}

func TestCreateFlowInsertsPlaceholderText(t *testing.T) {
	m := readyCreateFlow(t, nil)

	m, _ = m.Update(keyRunes("new_order"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab}) // template textarea
	m.insertText("Hello ")
	m.insertText("{{code}}")

	draft, err := m.form.Value()
	require.NoError(t, err)
	assert.Equal(t, "Hello {{code}}", draft["template"])
}
