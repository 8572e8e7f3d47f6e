package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const watchInterval = 2 * time.Second

// TaskCmd returns the `waorder task` command group for checking and
// stopping background Celery tasks by id.
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Inspect background tasks",
	}
	cmd.AddCommand(taskStatusCmd())
	cmd.AddCommand(taskStopCmd())
	return cmd
}

func taskStatusCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "status <task-id>",
		Short: "Show a task's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := newClientFromConfig()
			if err != nil {
				return err
			}
			for {
				status, err := client.TaskStatusCheck(args[0])
				if err != nil {
					return fmt.Errorf("task status: %w", err)
				}
				fmt.Printf("status: %s\n", status.Status)
				if status.Result != nil {
					fmt.Printf("result: %v\n", status.Result)
				}
				if !watch || status.Status.Terminal() {
					return nil
				}
				time.Sleep(watchInterval)
			}
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "poll until the task finishes")
	return cmd
}

func taskStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop <task-id>",
		Short: "Request cancellation of a running task",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := newClientFromConfig()
			if err != nil {
				return err
			}
			status, err := client.StopTask(args[0])
			if err != nil {
				return fmt.Errorf("stop task: %w", err)
			}
			fmt.Printf("status: %s\n", status.Status)
			return nil
		},
	}
}
