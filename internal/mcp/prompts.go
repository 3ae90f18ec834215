//go:build sqlite_fts5

// ABOUTME: MCP prompt definitions for daybook
// ABOUTME: Provides static context to AI assistants about daybook capabilities
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPrompts adds static prompts to the MCP server.
func (s *Server) registerPrompts() {
	prompt := &mcp.Prompt{
		Name:        "daybook-getting-started",
		Description: "Introduction to daybook and how AI assistants should use it",
	}

	handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		content := `Daybook is a local store for the user's calendar events, tasks, and messages.

When to use daybook:
- User asks what is on their schedule ("what do I have today?"): use the agenda tool
- User asks to add a to-do or reminder: use add_task
- User finishes something: use complete_task with the task's ID
- User asks about past or upcoming items by topic: use search

Best practices:
- Search uses FTS5 match syntax; single keywords work well
- Dates passed to tools are RFC 3339; the agenda tool defaults to today
- Prefer agenda over search when the question is about a date range

The user keeps their working calendar, task list, and mail snapshots in daybook.`

		result := &mcp.GetPromptResult{
			Description: "Getting started with daybook",
			Messages: []*mcp.PromptMessage{
				{
					Role: "user",
					Content: &mcp.TextContent{
						Text: content,
					},
				},
			},
		}

		return result, nil
	}

	s.mcpServer.AddPrompt(prompt, handler)
}
