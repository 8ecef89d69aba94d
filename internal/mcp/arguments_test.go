package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestFromArguments_FullSchema(t *testing.T) {
	args := map[string]any{
		"title":         "Build",
		"message":       "done",
		"sound":         true,
		"wait":          false,
		"icon":          "/tmp/i.png",
		"timeout":       float64(5),
		"urgency":       "critical",
		"appID":         "com.example",
		"actions":       []any{"Open", "Dismiss"},
		"closeLabel":    "Close",
		"dropdownLabel": "More",
		"reply":         true,
		"type":          "warn",
		"install":       "C:\\setup.exe",
		"sender":        "com.apple.Terminal",
		"category":      "im.received",
		"hint":          "int:transient:1",
		"app-name":      "ci",
		"shortcutPath":  "C:\\app.lnk",
		"name":          "growler",
		"host":          "10.0.0.2",
		"port":          float64(23054),
		"sticky":        true,
		"label":         "build",
		"priority":      float64(-2),
	}

	req := requestFromArguments(args)

	assert.Equal(t, "Build", req.Title)
	assert.Equal(t, "done", req.Message)
	require.NotNil(t, req.Sound)
	assert.True(t, *req.Sound)
	require.NotNil(t, req.Wait)
	assert.False(t, *req.Wait)
	require.NotNil(t, req.Timeout)
	assert.Equal(t, 5.0, *req.Timeout)
	assert.Equal(t, []string{"Open", "Dismiss"}, req.Actions)
	assert.Equal(t, "ci", req.AppName)
	assert.Equal(t, "C:\\app.lnk", req.ShortcutPath)
	require.NotNil(t, req.Port)
	assert.Equal(t, 23054.0, *req.Port)
	require.NotNil(t, req.Priority)
	assert.Equal(t, -2.0, *req.Priority)
	assert.Equal(t, "build", req.Label)
}

func TestRequestFromArguments_MissingOptionals(t *testing.T) {
	req := requestFromArguments(map[string]any{"title": "t", "message": "m"})

	assert.Nil(t, req.Sound)
	assert.Nil(t, req.Wait)
	assert.Nil(t, req.Timeout)
	assert.Nil(t, req.Actions)
	assert.Nil(t, req.Port)
	assert.Empty(t, req.Icon)
}

func TestRequestFromArguments_LenientTypes(t *testing.T) {
	req := requestFromArguments(map[string]any{
		"title":   42,
		"sound":   "true",
		"wait":    "maybe",
		"timeout": "2.5",
		"port":    json.Number("8080"),
		"actions": "Open",
		"sender":  []any{"a"},
	})

	assert.Equal(t, "42", req.Title)
	require.NotNil(t, req.Sound)
	assert.True(t, *req.Sound)
	assert.Nil(t, req.Wait)
	require.NotNil(t, req.Timeout)
	assert.Equal(t, 2.5, *req.Timeout)
	require.NotNil(t, req.Port)
	assert.Equal(t, 8080.0, *req.Port)
	assert.Equal(t, []string{"Open"}, req.Actions)
	assert.Equal(t, `["a"]`, req.Sender)
}

func TestRequestFromArguments_NilMap(t *testing.T) {
	assert.NotPanics(t, func() {
		req := requestFromArguments(nil)
		assert.Empty(t, req.Title)
	})
}
