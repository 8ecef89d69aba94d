package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strogmv/notify-mcp/internal/config"
)

type nopRunner struct{}

func (nopRunner) Run(context.Context, string, ...string) ([]byte, error) { return nil, nil }

func closedPort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Transport:        "stdio",
		HTTPAddr:         "127.0.0.1:0",
		IconPath:         "/icons/bell.png",
		TerminalNotifier: "terminal-notifier",
		GrowlHost:        "127.0.0.1",
		GrowlPort:        closedPort(t),
		NATSSubject:      "notify.outcome",
	}
}

func callTool(t *testing.T, c *Container, name string) map[string]any {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params": map[string]any{
			"name":      name,
			"arguments": map[string]any{"title": "t", "message": "m"},
		},
	})
	require.NoError(t, err)
	out, err := json.Marshal(c.Server.HandleMessage(context.Background(), raw))
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(out, &resp))
	result, ok := resp["result"].(map[string]any)
	require.True(t, ok, string(out))
	return result
}

func TestNewContainer_WiresGrowlFailureIntoText(t *testing.T) {
	ctx := context.Background()
	c, err := NewContainer(ctx, testConfig(t), "test", WithGOOS("plan9"), WithRunner(nopRunner{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(ctx) })

	assert.Equal(t, "/icons/bell.png", c.IconPath)

	result := callTool(t, c, "show-notification-growl")
	content := result["content"].([]any)
	require.Len(t, content, 1)
	text := content[0].(map[string]any)["text"].(string)
	assert.Contains(t, text, "Error showing notification: register with growl at 127.0.0.1:")
}

func TestNewContainer_InstallsBundledIcon(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("LocalAppData", dir)

	cfg := testConfig(t)
	cfg.IconPath = ""

	c, err := NewContainer(context.Background(), cfg, "test", WithGOOS("plan9"))
	require.NoError(t, err)

	info, err := os.Stat(c.IconPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.NoError(t, c.Close(context.Background()))
}

func TestNewContainer_BadNATSURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.NATSURL = fmt.Sprintf("nats://127.0.0.1:%d", closedPort(t))

	_, err := NewContainer(context.Background(), cfg, "test", WithGOOS("plan9"))
	assert.ErrorContains(t, err, "connect nats")
}
