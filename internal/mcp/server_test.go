//go:build sqlite_fts5

// ABOUTME: Tests for MCP server
// ABOUTME: Validates server initialization and tool input/output types
package mcp

import (
	"testing"
)

func TestNewServer(t *testing.T) {
	server := NewServer("/tmp/does-not-matter.db")
	if server == nil {
		t.Fatal("expected non-nil server")
	}
	if server.mcpServer == nil {
		t.Error("expected underlying MCP server to be initialized")
	}
	if server.dbPath != "/tmp/does-not-matter.db" {
		t.Errorf("got dbPath %s", server.dbPath)
	}
}

func TestToolTypes(t *testing.T) {
	input := AddTaskInput{
		Title:    "test",
		DueDate:  "2024-06-14T17:00:00Z",
		Priority: "low",
	}
	if input.Title != "test" {
		t.Error("expected title field")
	}

	output := SearchOutput{Count: 3}
	if output.Count != 3 {
		t.Error("expected count field")
	}

	agenda := AgendaInput{Since: "2024-06-10T00:00:00Z"}
	if agenda.Since == "" {
		t.Error("expected since field")
	}
}
