package port

import (
	"context"

	"github.com/strogmv/notify-mcp/internal/domain"
)

type Publisher interface {
	PublishNotificationResolved(ctx context.Context, event domain.NotificationResolved) error
}
