package api

import "fmt"

// TaskState is the lifecycle state of a background task on the server.
type TaskState string

const (
	TaskPending TaskState = "PENDING"
	TaskSuccess TaskState = "SUCCESS"
	TaskFailure TaskState = "FAILURE"
)

// Terminal reports whether the task has finished, successfully or not.
func (s TaskState) Terminal() bool {
	return s == TaskSuccess || s == TaskFailure
}

type TaskStatus struct {
	Status TaskState `json:"status"`
	Result any       `json:"result"`
}

// TaskStatusCheck polls a background task. The backend models status
// checks as POSTs.
func (c *Client) TaskStatusCheck(taskID string) (*TaskStatus, error) {
	data, err := c.post(fmt.Sprintf("/tasks/status/%s", taskID), nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[TaskStatus](data)
}

// StopTask asks the server to abort a running task.
func (c *Client) StopTask(taskID string) (*TaskStatus, error) {
	data, err := c.post(fmt.Sprintf("/tasks/status/%s/stop", taskID), nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[TaskStatus](data)
}
