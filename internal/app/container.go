package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/mark3labs/mcp-go/server"

	natsadapter "github.com/strogmv/notify-mcp/internal/adapter/events/nats"
	"github.com/strogmv/notify-mcp/internal/adapter/notifier"
	"github.com/strogmv/notify-mcp/internal/assets"
	"github.com/strogmv/notify-mcp/internal/config"
	"github.com/strogmv/notify-mcp/internal/dispatch"
	"github.com/strogmv/notify-mcp/internal/domain"
	"github.com/strogmv/notify-mcp/internal/mcp"
	"github.com/strogmv/notify-mcp/internal/port"
	"github.com/strogmv/notify-mcp/internal/pkg/logger"
	"github.com/strogmv/notify-mcp/internal/pkg/tracing"
)

type Container struct {
	Config *config.Config

	IconPath   string
	Dispatcher *dispatch.Dispatcher
	Server     *server.MCPServer

	events        *natsadapter.Client
	traceShutdown func(context.Context) error
}

// Option overrides a dependency, mostly for tests.
type Option func(*options)

type options struct {
	goos   string
	runner notifier.CommandRunner
}

func WithGOOS(goos string) Option {
	return func(o *options) { o.goos = goos }
}

func WithRunner(r notifier.CommandRunner) Option {
	return func(o *options) { o.runner = r }
}

func NewContainer(ctx context.Context, cfg *config.Config, version string, opts ...Option) (*Container, error) {
	o := options{goos: runtime.GOOS, runner: notifier.ExecRunner()}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Container{Config: cfg}

	iconPath, err := resolveIcon(cfg)
	if err != nil {
		return nil, err
	}
	c.IconPath = iconPath

	c.traceShutdown, err = tracing.Init(ctx, cfg.OTLPEndpoint, version)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	dispatchOpts := []dispatch.Option{dispatch.WithIconPath(iconPath)}
	if cfg.NATSURL != "" {
		c.events, err = natsadapter.NewClient(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			_ = c.Close(ctx)
			return nil, fmt.Errorf("connect nats: %w", err)
		}
		dispatchOpts = append(dispatchOpts, dispatch.WithPublisher(c.events))
	}

	shared := notifier.NewDefault(o.goos, notifier.Options{
		Runner:           o.runner,
		TerminalNotifier: cfg.TerminalNotifier,
	})
	c.Dispatcher = dispatch.New(shared, backendFactories(cfg, o.runner), dispatchOpts...)
	c.Server = mcp.NewServer(c.Dispatcher, version)

	logger.From(ctx).Debug("container ready",
		"default_backend", fmt.Sprintf("%T", shared),
		"icon", iconPath,
		"events", c.events != nil,
	)
	return c, nil
}

// backendFactories builds a fresh backend per request for every tool except
// the default one.
func backendFactories(cfg *config.Config, runner notifier.CommandRunner) map[domain.Backend]dispatch.Factory {
	return map[domain.Backend]dispatch.Factory{
		domain.BackendMacOSCenter: func() port.Notifier {
			return notifier.NewMacOSCenter(cfg.TerminalNotifier, runner)
		},
		domain.BackendLinuxNotify: func() port.Notifier {
			return notifier.NewLinuxNotify(runner)
		},
		domain.BackendWindowsToast: func() port.Notifier {
			return notifier.NewWindowsToast()
		},
		domain.BackendWindowsBalloon: func() port.Notifier {
			return notifier.NewWindowsBalloon(runner)
		},
		domain.BackendGrowl: func() port.Notifier {
			return notifier.NewGrowl(cfg.GrowlHost, cfg.GrowlPort, cfg.GrowlPassword)
		},
	}
}

func resolveIcon(cfg *config.Config) (string, error) {
	if cfg.IconPath != "" {
		return cfg.IconPath, nil
	}
	path, err := assets.InstallIcon(assets.DefaultIconDir())
	if err != nil {
		return "", fmt.Errorf("install default icon: %w", err)
	}
	return path, nil
}

// Close releases the event connection and flushes pending spans.
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	if c.events != nil {
		c.events.Close()
	}
	if c.traceShutdown != nil {
		if err := c.traceShutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
		}
	}
	return errors.Join(errs...)
}
