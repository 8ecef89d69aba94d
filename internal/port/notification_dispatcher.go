package port

import (
	"context"

	"github.com/strogmv/notify-mcp/internal/domain"
)

// Notifier delivers a single notification through one mechanism.
// Notify blocks until the mechanism reports completion.
type Notifier interface {
	Notify(ctx context.Context, req domain.Request) (domain.Delivery, error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, req domain.Request) (domain.Delivery, error)

func (f NotifierFunc) Notify(ctx context.Context, req domain.Request) (domain.Delivery, error) {
	return f(ctx, req)
}
