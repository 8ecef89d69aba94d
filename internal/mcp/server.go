package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/strogmv/notify-mcp/internal/dispatch"
)

const (
	ServerName   = "notify-mcp"
	HTTPEndpoint = "/mcp"
)

type toolHandler = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

type toolAdder func(name string, tool mcp.Tool, h toolHandler)

// NewServer builds an MCP server exposing one tool per notification backend.
func NewServer(d *dispatch.Dispatcher, version string) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	addTool := func(name string, tool mcp.Tool, h toolHandler) {
		s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return safeInvokeTool(name, func() (*mcp.CallToolResult, error) {
				return h(ctx, request)
			})
		})
	}
	registerNotificationTools(addTool, d)

	return s
}

// ServeStdio serves s on the given streams until ctx is done or stdin closes.
func ServeStdio(ctx context.Context, s *server.MCPServer, stdin io.Reader, stdout io.Writer) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelError))
	return stdio.Listen(ctx, stdin, stdout)
}

// NewHTTPHandler exposes s over streamable HTTP at HTTPEndpoint.
func NewHTTPHandler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s,
		server.WithEndpointPath(HTTPEndpoint),
		server.WithStateLess(true),
	)
}

// CallTool runs a single tools/call through s in process and returns the text
// segments of the result.
func CallTool(ctx context.Context, s *server.MCPServer, name string, args map[string]any) ([]string, error) {
	raw, err := json.Marshal(map[string]any{
		"jsonrpc": mcp.JSONRPC_VERSION,
		"id":      1,
		"method":  string(mcp.MethodToolsCall),
		"params":  map[string]any{"name": name, "arguments": args},
	})
	if err != nil {
		return nil, fmt.Errorf("encode tool call: %w", err)
	}
	out, err := json.Marshal(s.HandleMessage(ctx, raw))
	if err != nil {
		return nil, fmt.Errorf("encode tool response: %w", err)
	}

	var resp struct {
		Result *struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, fmt.Errorf("decode tool response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%s: %s", name, resp.Error.Message)
	}
	if resp.Result == nil {
		return nil, errors.New("tool response has no result")
	}
	var texts []string
	for _, c := range resp.Result.Content {
		if c.Type == "text" {
			texts = append(texts, c.Text)
		}
	}
	return texts, nil
}
