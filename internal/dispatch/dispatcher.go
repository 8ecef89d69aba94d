package dispatch

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/strogmv/notify-mcp/internal/domain"
	"github.com/strogmv/notify-mcp/internal/pkg/logger"
	"github.com/strogmv/notify-mcp/internal/pkg/metrics"
	"github.com/strogmv/notify-mcp/internal/pkg/tracing"
	"github.com/strogmv/notify-mcp/internal/port"
)

// Factory builds a fresh notifier for a single request.
type Factory func() port.Notifier

// Dispatcher routes notification requests to backends. The default backend
// is shared across requests; every other backend is built per request.
type Dispatcher struct {
	shared    port.Notifier
	factories map[domain.Backend]Factory
	iconPath  string
	publisher port.Publisher
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithIconPath sets the icon used when a default-path request has none.
func WithIconPath(path string) Option {
	return func(d *Dispatcher) { d.iconPath = path }
}

// WithPublisher emits a NotificationResolved event for every request.
func WithPublisher(p port.Publisher) Option {
	return func(d *Dispatcher) { d.publisher = p }
}

// New builds a dispatcher that reuses shared for the default backend and
// calls factories for every other one.
func New(shared port.Notifier, factories map[domain.Backend]Factory, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		shared:    shared,
		factories: factories,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch delivers req through backend b and renders the reply segments.
// Delivery failures come back as segments too; Dispatch never fails.
func (d *Dispatcher) Dispatch(ctx context.Context, b domain.Backend, req domain.Request) []string {
	route, ok := RouteFor(b)
	if !ok {
		return Render(Route{Backend: b}, domain.Failure(fmt.Sprintf("unknown backend %q", b)))
	}

	ctx, span := tracing.Tracer().Start(ctx, "notify."+b.String(),
		trace.WithAttributes(attribute.String("notify.backend", b.String())))
	defer span.End()

	if route.Defaults {
		req = ApplyDefaults(req, d.iconPath)
	}

	start := time.Now()
	outcome := d.Resolve(ctx, b, req)
	took := time.Since(start)

	log := logger.From(ctx).With("backend", b.String(), "duration", took)
	status := domain.StatusDelivered
	if outcome.Failed {
		status = domain.StatusFailed
		span.SetStatus(codes.Error, outcome.Error)
		log.Warn("notification failed", "error", outcome.Error)
	} else {
		log.Info("notification delivered")
	}
	metrics.ObserveDelivery(b.String(), status, took)
	d.publish(ctx, b, status, outcome)

	return Render(route, outcome)
}

// Resolve invokes the backend once and waits for its single completion.
// A panicking backend resolves to a failure.
func (d *Dispatcher) Resolve(ctx context.Context, b domain.Backend, req domain.Request) domain.Outcome {
	n := d.notifierFor(b)
	if n == nil {
		return domain.Failure(fmt.Sprintf("no notifier configured for %s", b))
	}

	done := make(chan domain.Outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- domain.Failure(fmt.Sprintf("notifier panic: %v", r))
			}
		}()
		delivery, err := n.Notify(ctx, req)
		if err != nil {
			done <- domain.Failure(err.Error())
			return
		}
		done <- domain.Success(delivery)
	}()
	return <-done
}

func (d *Dispatcher) notifierFor(b domain.Backend) port.Notifier {
	if b == domain.BackendDefault {
		return d.shared
	}
	if f, ok := d.factories[b]; ok && f != nil {
		return f()
	}
	return nil
}

func (d *Dispatcher) publish(ctx context.Context, b domain.Backend, status string, o domain.Outcome) {
	if d.publisher == nil {
		return
	}
	event := domain.NotificationResolved{
		RequestID: logger.RequestID(ctx),
		Backend:   b.String(),
		Status:    status,
		Error:     o.Error,
		At:        time.Now().UTC(),
	}
	if err := d.publisher.PublishNotificationResolved(ctx, event); err != nil {
		logger.From(ctx).Warn("publish notification event", "error", err)
	}
}
