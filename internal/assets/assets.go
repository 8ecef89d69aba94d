package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed bell.png
var bell []byte

const iconName = "bell.png"

// Bell returns the bundled default notification icon.
func Bell() []byte {
	return bell
}

// InstallIcon writes the bundled icon into dir and returns its path. Native
// notifiers need a file on disk, not embedded bytes. An up-to-date copy is
// left untouched.
func InstallIcon(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create icon dir: %w", err)
	}
	path := filepath.Join(dir, iconName)
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, bell) {
		return path, nil
	}
	if err := os.WriteFile(path, bell, 0o644); err != nil {
		return "", fmt.Errorf("write icon: %w", err)
	}
	return path, nil
}

// DefaultIconDir is the per-user cache location for the bundled icon.
func DefaultIconDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "notify-mcp")
	}
	return filepath.Join(os.TempDir(), "notify-mcp")
}
