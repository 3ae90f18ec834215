// ABOUTME: Task subcommands for adding, listing, and completing tasks
// ABOUTME: Supports natural-language due dates and JSON output
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/araddon/dateparse"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/marlow/daybook/internal/db"
)

var (
	taskDue        string
	taskNotes      string
	taskPriority   string
	taskImportant  bool
	taskStatus     string
	taskJSONOutput bool
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"t"},
	Short:   "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		task := &db.Task{
			ID:        uuid.New().String(),
			Title:     args[0],
			Notes:     taskNotes,
			Important: taskImportant,
			Priority:  db.TaskPriority(taskPriority),
		}
		if taskDue != "" {
			due, err := dateparse.ParseAny(taskDue)
			if err != nil {
				return fmt.Errorf("invalid --due date: %w", err)
			}
			task.DueDate = &due
		}

		if err := store.SaveTask(task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Printf("Task created (ID: %s)\n", task.ID)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		var tasks []db.Task
		if taskStatus != "" {
			tasks, err = store.TasksByStatus(db.TaskStatus(taskStatus))
		} else {
			tasks, err = store.Tasks()
		}
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if taskJSONOutput {
			data, err := json.MarshalIndent(tasks, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		for _, task := range tasks {
			printTask(&task)
		}
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		task, err := store.GetTask(args[0])
		if err != nil {
			return fmt.Errorf("failed to load task: %w", err)
		}
		task.Status = db.TaskCompleted
		if err := store.UpdateTask(task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		color.Green("Done: %s", task.Title)
		return nil
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		if err := store.DeleteTask(args[0]); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		fmt.Println("Task deleted")
		return nil
	},
}

func printTask(task *db.Task) {
	mark := "[ ]"
	if task.Status == db.TaskCompleted {
		mark = "[x]"
	}
	line := fmt.Sprintf("%s %s", mark, task.Title)
	if task.DueDate != nil {
		line += fmt.Sprintf(" (due %s)", task.DueDate.Format("2006-01-02"))
	}
	line += fmt.Sprintf("  %s", task.ID)

	switch {
	case task.Status == db.TaskCompleted:
		fmt.Println(line)
	case task.Important || task.Priority == db.PriorityUrgent:
		color.Red("%s", line)
	case task.Priority == db.PriorityHigh:
		color.Yellow("%s", line)
	default:
		fmt.Println(line)
	}
}

func init() {
	taskAddCmd.Flags().StringVar(&taskDue, "due", "", "Due date (natural language or ISO)")
	taskAddCmd.Flags().StringVar(&taskNotes, "notes", "", "Free-form notes")
	taskAddCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "Priority (low, medium, high, urgent)")
	taskAddCmd.Flags().BoolVar(&taskImportant, "important", false, "Flag as important")
	taskListCmd.Flags().StringVarP(&taskStatus, "status", "s", "", "Filter by status")
	taskListCmd.Flags().BoolVar(&taskJSONOutput, "json", false, "Output as JSON")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskRmCmd)
	rootCmd.AddCommand(taskCmd)
}
