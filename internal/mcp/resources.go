//go:build sqlite_fts5

// ABOUTME: MCP resource implementations for daybook
// ABOUTME: Provides dynamic queryable context about the user's calendar and tasks
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/marlow/daybook/internal/db"
)

// registerResources adds all MCP resources to the server.
func (s *Server) registerResources() {
	// today-agenda resource
	agendaResource := &mcp.Resource{
		URI:         "daybook://today-agenda",
		Name:        "Today's Agenda",
		Description: "Today's calendar events and open tasks as markdown",
		MIMEType:    "text/markdown",
	}
	s.mcpServer.AddResource(agendaResource, s.handleTodayAgenda)

	// tags resource
	tagsResource := &mcp.Resource{
		URI:         "daybook://tags",
		Name:        "Tags",
		Description: "All tags with their event, task, and message usage counts",
		MIMEType:    "application/json",
	}
	s.mcpServer.AddResource(tagsResource, s.handleTags)
}

// handleTodayAgenda implements the today-agenda resource.
func (s *Server) handleTodayAgenda(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	store, err := db.Open(s.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	now := time.Now().UTC()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	events, err := store.EventsInRange(since, since.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	tasks, err := store.TasksByStatus(db.TaskPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	var summary strings.Builder
	summary.WriteString(fmt.Sprintf("# Agenda for %s\n\n", since.Format("2006-01-02")))

	if len(events) == 0 {
		summary.WriteString("No events today.\n")
	}
	for _, e := range events {
		when := "all day"
		if e.Start != nil && e.Start.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, e.Start.DateTime); err == nil {
				when = t.UTC().Format("15:04")
			}
		}
		summary.WriteString(fmt.Sprintf("- **%s**: %s\n", when, e.Summary))
	}

	summary.WriteString("\n## Open tasks\n\n")
	if len(tasks) == 0 {
		summary.WriteString("No open tasks.\n")
	}
	for _, t := range tasks {
		summary.WriteString(fmt.Sprintf("- %s", t.Title))
		if t.DueDate != nil {
			summary.WriteString(fmt.Sprintf(" (due %s)", t.DueDate.Format("2006-01-02")))
		}
		summary.WriteString("\n")
	}

	result := &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      "daybook://today-agenda",
				MIMEType: "text/markdown",
				Text:     summary.String(),
			},
		},
	}
	return result, nil
}

// tagUsage is one row of the tags resource.
type tagUsage struct {
	Name     string `json:"name"`
	Events   int    `json:"events"`
	Tasks    int    `json:"tasks"`
	Messages int    `json:"messages"`
}

// handleTags implements the tags resource.
func (s *Server) handleTags(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	store, err := db.Open(s.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	tags, err := store.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	usage := make([]tagUsage, 0, len(tags))
	for _, tag := range tags {
		row := tagUsage{Name: tag.Name}
		events, err := store.EventsWithTag(tag.ID)
		if err != nil {
			return nil, err
		}
		row.Events = len(events)
		tasks, err := store.TasksWithTag(tag.ID)
		if err != nil {
			return nil, err
		}
		row.Tasks = len(tasks)
		messages, err := store.MessagesWithTag(tag.ID)
		if err != nil {
			return nil, err
		}
		row.Messages = len(messages)
		usage = append(usage, row)
	}

	data, err := json.MarshalIndent(usage, "", "  ")
	if err != nil {
		return nil, err
	}

	result := &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      "daybook://tags",
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}
	return result, nil
}
