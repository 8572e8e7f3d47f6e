package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ordamat/waorder/cli/internal/api"
	"github.com/ordamat/waorder/cli/internal/logging"
	"github.com/ordamat/waorder/cli/internal/ui/components"
)

const (
	taskPollInterval = 2 * time.Second
	// A poll that outlives the interval is useless; cap it well below
	// the client default so a wedged server drops a tick, not the UI.
	taskPollTimeout = 5 * time.Second
)

type taskTickMsg struct{ gen int }

type taskStatusMsg struct {
	gen    int
	status api.TaskState
	err    error
}

type taskStoppedMsg struct {
	gen int
	err error
}

// taskWatcher polls one background task until it reaches a terminal
// state. Every watcher gets a fresh generation number; messages from
// an abandoned watcher carry a stale generation and are dropped, so a
// closed watcher can never resurrect polling.
type taskWatcher struct {
	client *api.Client
	taskID string
	title  string
	gen    int

	state   api.TaskState
	polls   int
	done    bool
	failed  bool
	stopped bool
	errText string
	spin    spinner.Model
}

func newTaskWatcher(client *api.Client, taskID, title string, gen int) *taskWatcher {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SelectedStyle
	if client != nil {
		client = client.WithTimeout(taskPollTimeout)
	}
	return &taskWatcher{
		client: client,
		taskID: taskID,
		title:  title,
		gen:    gen,
		state:  api.TaskPending,
		spin:   sp,
	}
}

func (w *taskWatcher) Init() tea.Cmd {
	return tea.Batch(w.spin.Tick, w.pollCmd())
}

func (w *taskWatcher) tick() tea.Cmd {
	gen := w.gen
	return tea.Tick(taskPollInterval, func(time.Time) tea.Msg {
		return taskTickMsg{gen: gen}
	})
}

func (w *taskWatcher) pollCmd() tea.Cmd {
	gen, id, client := w.gen, w.taskID, w.client
	return func() tea.Msg {
		status, err := client.TaskStatusCheck(id)
		if err != nil {
			return taskStatusMsg{gen: gen, err: err}
		}
		return taskStatusMsg{gen: gen, status: status.Status}
	}
}

// StopCmd asks the server to abort the task. Issued at most once.
func (w *taskWatcher) StopCmd() tea.Cmd {
	if w.done || w.stopped {
		return nil
	}
	w.stopped = true
	gen, id, client := w.gen, w.taskID, w.client
	return func() tea.Msg {
		_, err := client.StopTask(id)
		return taskStoppedMsg{gen: gen, err: err}
	}
}

// Update consumes watcher messages. The bool reports whether the
// message belonged to this watcher.
func (w *taskWatcher) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if w.done {
			return nil, true
		}
		var cmd tea.Cmd
		w.spin, cmd = w.spin.Update(msg)
		return cmd, true

	case taskTickMsg:
		if msg.gen != w.gen || w.done {
			return nil, true
		}
		return w.pollCmd(), true

	case taskStatusMsg:
		if msg.gen != w.gen || w.done {
			return nil, true
		}
		w.polls++
		if msg.err != nil {
			if api.IsAuth(msg.err) {
				w.done = true
				w.failed = true
				w.errText = msg.err.Error()
				return nil, true
			}
			// transient poll failures keep the loop alive
			w.errText = msg.err.Error()
			logging.L().Warn("task poll failed",
				zap.String("task_id", w.taskID), zap.Error(msg.err))
			return w.tick(), true
		}
		w.errText = ""
		w.state = msg.status
		if w.state.Terminal() {
			w.done = true
			w.failed = w.state == api.TaskFailure
			return nil, true
		}
		return w.tick(), true

	case taskStoppedMsg:
		if msg.gen != w.gen {
			return nil, true
		}
		w.done = true
		w.failed = true
		if msg.err != nil {
			w.errText = msg.err.Error()
		} else {
			w.errText = "stopped by operator"
		}
		return nil, true
	}
	return nil, false
}

func (w *taskWatcher) View(width int) string {
	var lines []string
	if w.done {
		if w.failed {
			lines = append(lines, ErrorStyle.Render("✗ "+string(w.state)))
		} else {
			lines = append(lines, SuccessStyle.Render("✓ "+string(w.state)))
		}
	} else {
		lines = append(lines, w.spin.View()+NormalStyle.Render(string(w.state)))
	}
	lines = append(lines, MutedStyle.Render(fmt.Sprintf("task %s · %d polls", w.taskID, w.polls)))
	if w.errText != "" {
		lines = append(lines, ErrorStyle.Render(w.errText))
	}
	if w.done {
		lines = append(lines, "", MutedStyle.Render("esc: close"))
	} else {
		lines = append(lines, "", MutedStyle.Render("x: stop task · esc: dismiss"))
	}

	content := ""
	for i, l := range lines {
		if i > 0 {
			content += "\n"
		}
		content += l
	}
	return components.TitledBox(w.title, content, width)
}
