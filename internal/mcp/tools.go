//go:build sqlite_fts5

// ABOUTME: MCP tool implementations for daybook
// ABOUTME: Provides task creation, completion, search, and agenda tools
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/marlow/daybook/internal/db"
)

// AddTaskInput defines the input for the add_task tool.
type AddTaskInput struct {
	Title    string `json:"title" jsonschema:"The task title" jsonschema_extras:"required=true"`
	Notes    string `json:"notes,omitempty" jsonschema:"Optional free-form notes"`
	DueDate  string `json:"due_date,omitempty" jsonschema:"Optional due date in RFC 3339 format"`
	Priority string `json:"priority,omitempty" jsonschema:"Optional priority: low, medium, high, or urgent"`
}

// AddTaskOutput defines the output for the add_task tool.
type AddTaskOutput struct {
	TaskID string `json:"task_id" jsonschema:"The ID of the created task"`
	Title  string `json:"title" jsonschema:"The task title"`
}

// CompleteTaskInput defines the input for the complete_task tool.
type CompleteTaskInput struct {
	TaskID string `json:"task_id" jsonschema:"The ID of the task to complete" jsonschema_extras:"required=true"`
}

// CompleteTaskOutput defines the output for the complete_task tool.
type CompleteTaskOutput struct {
	TaskID string `json:"task_id" jsonschema:"The completed task's ID"`
	Title  string `json:"title" jsonschema:"The completed task's title"`
}

// SearchInput defines the input for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"FTS5 match expression" jsonschema_extras:"required=true"`
}

// SearchOutput defines the output for the search tool.
type SearchOutput struct {
	Events   []db.CalendarEvent `json:"events,omitempty" jsonschema:"Matching calendar events"`
	Tasks    []db.Task          `json:"tasks,omitempty" jsonschema:"Matching tasks"`
	Messages []db.Message       `json:"messages,omitempty" jsonschema:"Matching messages"`
	Count    int                `json:"count" jsonschema:"Total number of matches"`
}

// AgendaInput defines the input for the agenda tool.
type AgendaInput struct {
	Since string `json:"since,omitempty" jsonschema:"Range start in RFC 3339 format (default: today)"`
	Until string `json:"until,omitempty" jsonschema:"Range end in RFC 3339 format (default: tomorrow)"`
}

// AgendaOutput defines the output for the agenda tool.
type AgendaOutput struct {
	Events []db.CalendarEvent `json:"events" jsonschema:"Events starting in the range"`
	Count  int                `json:"count" jsonschema:"Number of events"`
}

// registerTools adds all MCP tools to the server.
func (s *Server) registerTools() {
	addTaskTool := &mcp.Tool{
		Name:        "add_task",
		Description: "Create a task in daybook. Use this when the user asks to add a to-do, reminder, or action item.",
	}
	mcp.AddTool(s.mcpServer, addTaskTool, s.handleAddTask)

	completeTaskTool := &mcp.Tool{
		Name:        "complete_task",
		Description: "Mark a daybook task as completed.",
	}
	mcp.AddTool(s.mcpServer, completeTaskTool, s.handleCompleteTask)

	searchTool := &mcp.Tool{
		Name:        "search",
		Description: "Full-text search across the user's events, tasks, and messages. Use this to answer questions about past or upcoming items.",
	}
	mcp.AddTool(s.mcpServer, searchTool, s.handleSearch)

	agendaTool := &mcp.Tool{
		Name:        "agenda",
		Description: "List calendar events in a date range. Defaults to today when no range is given.",
	}
	mcp.AddTool(s.mcpServer, agendaTool, s.handleAgenda)
}

// handleAddTask implements the add_task tool.
func (s *Server) handleAddTask(ctx context.Context, req *mcp.CallToolRequest, input AddTaskInput) (*mcp.CallToolResult, AddTaskOutput, error) {
	store, err := db.Open(s.dbPath)
	if err != nil {
		return nil, AddTaskOutput{}, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	task := &db.Task{
		ID:       uuid.New().String(),
		Title:    input.Title,
		Notes:    input.Notes,
		Priority: db.TaskPriority(input.Priority),
	}
	if input.DueDate != "" {
		due, err := time.Parse(time.RFC3339, input.DueDate)
		if err != nil {
			return nil, AddTaskOutput{}, fmt.Errorf("invalid due_date: %w", err)
		}
		task.DueDate = &due
	}

	if err := store.SaveTask(task); err != nil {
		return nil, AddTaskOutput{}, fmt.Errorf("failed to create task: %w", err)
	}

	output := AddTaskOutput{TaskID: task.ID, Title: task.Title}
	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: fmt.Sprintf("Task created successfully (ID: %s)", task.ID),
			},
		},
	}
	return result, output, nil
}

// handleCompleteTask implements the complete_task tool.
func (s *Server) handleCompleteTask(ctx context.Context, req *mcp.CallToolRequest, input CompleteTaskInput) (*mcp.CallToolResult, CompleteTaskOutput, error) {
	store, err := db.Open(s.dbPath)
	if err != nil {
		return nil, CompleteTaskOutput{}, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	task, err := store.GetTask(input.TaskID)
	if err != nil {
		return nil, CompleteTaskOutput{}, fmt.Errorf("failed to load task: %w", err)
	}
	task.Status = db.TaskCompleted
	if err := store.UpdateTask(task); err != nil {
		return nil, CompleteTaskOutput{}, fmt.Errorf("failed to update task: %w", err)
	}

	output := CompleteTaskOutput{TaskID: task.ID, Title: task.Title}
	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: fmt.Sprintf("Completed: %s", task.Title),
			},
		},
	}
	return result, output, nil
}

// handleSearch implements the search tool.
func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	store, err := db.Open(s.dbPath)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	var output SearchOutput
	if output.Events, err = store.SearchEvents(input.Query); err != nil {
		return nil, SearchOutput{}, fmt.Errorf("failed to search events: %w", err)
	}
	if output.Tasks, err = store.SearchTasks(input.Query); err != nil {
		return nil, SearchOutput{}, fmt.Errorf("failed to search tasks: %w", err)
	}
	if output.Messages, err = store.SearchMessages(input.Query); err != nil {
		return nil, SearchOutput{}, fmt.Errorf("failed to search messages: %w", err)
	}
	output.Count = len(output.Events) + len(output.Tasks) + len(output.Messages)

	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: fmt.Sprintf("Found %d matches (%d events, %d tasks, %d messages)",
					output.Count, len(output.Events), len(output.Tasks), len(output.Messages)),
			},
		},
	}
	return result, output, nil
}

// handleAgenda implements the agenda tool.
func (s *Server) handleAgenda(ctx context.Context, req *mcp.CallToolRequest, input AgendaInput) (*mcp.CallToolResult, AgendaOutput, error) {
	store, err := db.Open(s.dbPath)
	if err != nil {
		return nil, AgendaOutput{}, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	now := time.Now().UTC()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	until := since.AddDate(0, 0, 1)

	if input.Since != "" {
		if since, err = time.Parse(time.RFC3339, input.Since); err != nil {
			return nil, AgendaOutput{}, fmt.Errorf("invalid since: %w", err)
		}
	}
	if input.Until != "" {
		if until, err = time.Parse(time.RFC3339, input.Until); err != nil {
			return nil, AgendaOutput{}, fmt.Errorf("invalid until: %w", err)
		}
	}

	events, err := store.EventsInRange(since, until)
	if err != nil {
		return nil, AgendaOutput{}, fmt.Errorf("failed to list events: %w", err)
	}

	output := AgendaOutput{Events: events, Count: len(events)}
	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: fmt.Sprintf("%d events between %s and %s",
					len(events), since.Format(time.RFC3339), until.Format(time.RFC3339)),
			},
		},
	}
	return result, output, nil
}
