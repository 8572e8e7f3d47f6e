package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStatusCheckUsesPost(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tasks/status/abc-task", r.URL.Path)
		w.Write([]byte(`{"status": "PENDING"}`))
	})

	status, err := client.TaskStatusCheck("abc-task")
	require.NoError(t, err)
	assert.Equal(t, TaskPending, status.Status)
	assert.False(t, status.Status.Terminal())
}

func TestStopTask(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tasks/status/abc-task/stop", r.URL.Path)
		w.Write([]byte(`{"status": "FAILURE"}`))
	})

	status, err := client.StopTask("abc-task")
	require.NoError(t, err)
	assert.Equal(t, TaskFailure, status.Status)
	assert.True(t, status.Status.Terminal())
}

func TestTaskStateTerminal(t *testing.T) {
	assert.True(t, TaskSuccess.Terminal())
	assert.True(t, TaskFailure.Terminal())
	assert.False(t, TaskPending.Terminal())
	assert.False(t, TaskState("RETRY").Terminal())
}
