//go:build sqlite_fts5

// ABOUTME: Unit tests for the task subcommands
// ABOUTME: Tests the add/done flow against a temp database
package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marlow/daybook/internal/db"
)

// runCommand executes args through the root command with stdout captured and
// the store pointed at a temp database.
func runCommand(t *testing.T, dbPath string, args ...string) string {
	t.Helper()

	original := os.Getenv("DAYBOOK_DB_PATH")
	_ = os.Setenv("DAYBOOK_DB_PATH", dbPath)
	t.Cleanup(func() { _ = os.Setenv("DAYBOOK_DB_PATH", original) })

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	_ = w.Close()
	os.Stdout = oldStdout
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)

	if err != nil {
		t.Fatalf("command %v failed: %v\noutput: %s", args, err, buf.String())
	}
	return buf.String()
}

func TestTaskAddCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	// Reset flags between tests
	taskDue, taskNotes, taskPriority, taskImportant = "", "", "", false

	output := runCommand(t, dbPath, "task", "add", "pay rent", "--due", "2024-07-01", "-p", "high")
	if !strings.Contains(output, "Task created") {
		t.Errorf("expected creation message, got: %s", output)
	}

	store, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	tasks, err := store.Tasks()
	if err != nil {
		t.Fatalf("Tasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].Title != "pay rent" {
		t.Errorf("got title %s, want pay rent", tasks[0].Title)
	}
	if tasks[0].Priority != db.PriorityHigh {
		t.Errorf("got priority %s, want high", tasks[0].Priority)
	}
	if tasks[0].DueDate == nil {
		t.Error("due date was not parsed")
	}
}

func TestTaskDoneCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	task := &db.Task{ID: "task-cli-1", Title: "close the books"}
	if err := store.SaveTask(task); err != nil {
		t.Fatalf("SaveTask failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	runCommand(t, dbPath, "task", "done", "task-cli-1")

	store, err = db.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = store.Close() }()
	got, err := store.GetTask("task-cli-1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Status != db.TaskCompleted {
		t.Errorf("got status %s, want completed", got.Status)
	}
}

func TestTaskListCommandJSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := store.SaveTask(&db.Task{ID: "task-cli-2", Title: "water the plants"}); err != nil {
		t.Fatalf("SaveTask failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	taskStatus, taskJSONOutput = "", false
	output := runCommand(t, dbPath, "task", "list", "--json")
	if !strings.Contains(output, `"water the plants"`) {
		t.Errorf("expected JSON output with task title, got: %s", output)
	}
}
