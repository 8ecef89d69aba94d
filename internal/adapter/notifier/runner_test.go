package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type runCall struct {
	Name string
	Args []string
}

type fakeRunner struct {
	mu    sync.Mutex
	calls []runCall
	out   []byte
	err   error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, runCall{Name: name, Args: args})
	return f.out, f.err
}

func ptr[T any](v T) *T { return &v }

func TestExecRunner_WrapsFailure(t *testing.T) {
	_, err := ExecRunner().Run(context.Background(), "notify-mcp-binary-that-does-not-exist")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "notify-mcp-binary-that-does-not-exist")
	}
}

func TestUnsupported(t *testing.T) {
	err := unsupported("plan9", "Windows toast notifications")
	assert.True(t, errors.Is(err, ErrUnsupportedPlatform))
	assert.Contains(t, err.Error(), "Windows toast notifications on plan9")
}
