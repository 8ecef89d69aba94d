package mcp

import (
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
)

// safeInvokeTool converts panics from tool handlers into ordinary text
// results instead of crashing the process and closing the transport.
func safeInvokeTool(name string, h func() (*mcp.CallToolResult, error)) (resp *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("tool panic: %v", r)
			slog.Error("tool handler panicked", "tool", name, "panic", r)
			resp = textResult([]string{"Error showing notification: " + msg})
			err = nil
		}
	}()
	resp, err = h()
	if err == nil && resp == nil {
		resp = textResult([]string{"Error showing notification: empty tool result"})
	}
	return resp, err
}

func textResult(segments []string) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(segments))
	for _, s := range segments {
		content = append(content, mcp.NewTextContent(s))
	}
	return &mcp.CallToolResult{Content: content}
}
