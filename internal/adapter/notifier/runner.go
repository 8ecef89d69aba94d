package notifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrUnsupportedPlatform is returned by backends whose mechanism does not exist
// on the running operating system.
var ErrUnsupportedPlatform = errors.New("notification mechanism is not available on this platform")

// CommandRunner runs an external program and returns what it wrote to stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

// ExecRunner runs commands with os/exec.
func ExecRunner() CommandRunner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func unsupported(goos, mechanism string) error {
	return fmt.Errorf("%s on %s: %w", mechanism, goos, ErrUnsupportedPlatform)
}
