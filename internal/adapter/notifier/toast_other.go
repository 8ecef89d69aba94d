//go:build !windows

package notifier

import (
	"context"
	"runtime"

	"github.com/strogmv/notify-mcp/internal/domain"
)

func pushToast(_ context.Context, _ domain.Request) error {
	return unsupported(runtime.GOOS, "Windows toast notifications")
}
