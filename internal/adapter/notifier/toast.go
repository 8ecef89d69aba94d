package notifier

import (
	"context"

	"github.com/strogmv/notify-mcp/internal/domain"
	"github.com/strogmv/notify-mcp/internal/pkg/logger"
)

const defaultToastAppID = "notify-mcp"

// WindowsToast shows Windows 8+ toast notifications.
type WindowsToast struct{}

func NewWindowsToast() *WindowsToast {
	return &WindowsToast{}
}

func (w *WindowsToast) Notify(ctx context.Context, req domain.Request) (domain.Delivery, error) {
	if req.ShortcutPath != "" {
		// toasts are attributed through AppID; the shortcut is only informative here.
		logger.From(ctx).Debug("toast shortcut path ignored", "shortcut_path", req.ShortcutPath)
	}
	return domain.Delivery{}, pushToast(ctx, req)
}
