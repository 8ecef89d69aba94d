package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/strogmv/notify-mcp/internal/app"
	"github.com/strogmv/notify-mcp/internal/config"
	"github.com/strogmv/notify-mcp/internal/mcp"
	"github.com/strogmv/notify-mcp/internal/pkg/logger"
	transporthttp "github.com/strogmv/notify-mcp/internal/transport/http"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "0.1.0"

func main() {
	cmd := "serve"
	var args []string
	if len(os.Args) > 1 {
		cmd, args = os.Args[1], os.Args[2:]
	}

	var err error
	switch cmd {
	case "serve":
		err = runServe()
	case "send":
		err = runSend(args)
	case "version":
		fmt.Printf("notify-mcp version %s\n", Version)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage(os.Stderr)
		os.Exit(1)
	}
	if err != nil {
		slog.Error("notify-mcp failed", "error", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "notify-mcp v%s, desktop notifications over MCP\n", Version)
	fmt.Fprintln(w, "\nUsage:")
	fmt.Fprintln(w, "  notify-mcp serve     Serve the notification tools (default)")
	fmt.Fprintln(w, "  notify-mcp send      Show one notification and print the tool result")
	fmt.Fprintln(w, "  notify-mcp version   Print the version")
	fmt.Fprintln(w, "\nEnvironment:")
	fmt.Fprintln(w, "  NOTIFY_TRANSPORT     stdio (default) or http")
	fmt.Fprintln(w, "  NOTIFY_HTTP_ADDR     listen address for http, default 127.0.0.1:8765")
	fmt.Fprintln(w, "  NOTIFY_LOG_LEVEL     debug, info, warn or error")
	fmt.Fprintln(w, "  NOTIFY_NATS_URL      publish delivery outcomes to NATS")
}

func bootstrap(ctx context.Context) (*app.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	return app.NewContainer(ctx, cfg, Version)
}

func runServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Close(shutdownCtx); err != nil {
			slog.Warn("shutdown", "error", err)
		}
	}()

	if c.Config.Transport == "http" {
		return serveHTTP(ctx, c)
	}

	fmt.Fprintln(os.Stderr, "Notify MCP Server running on stdio")
	err = mcp.ServeStdio(ctx, c.Server, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serve stdio: %w", err)
	}
	return nil
}

func serveHTTP(ctx context.Context, c *app.Container) error {
	srv := &http.Server{
		Addr:              c.Config.HTTPAddr,
		Handler:           transporthttp.NewRouter(mcp.HTTPEndpoint, mcp.NewHTTPHandler(c.Server)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	fmt.Fprintf(os.Stderr, "Notify MCP Server running on http %s\n", c.Config.HTTPAddr)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	return nil
}

func runSend(args []string) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	tool := fs.String("tool", mcp.ToolShowNotification, "tool to call")
	title := fs.String("title", "", "notification title")
	message := fs.String("message", "", "notification message")
	icon := fs.String("icon", "", "icon path or URL")
	sound := fs.Bool("sound", false, "play a sound")
	wait := fs.Bool("wait", false, "wait for user interaction")
	timeout := fs.Float64("timeout", 0, "timeout in seconds")
	urgency := fs.String("urgency", "", "low, normal or critical")
	kind := fs.String("type", "", "info, warn or error")
	actions := fs.String("actions", "", "comma separated action labels")
	if err := fs.Parse(args); err != nil {
		return err
	}

	toolArgs := map[string]any{"title": *title, "message": *message}
	if *icon != "" {
		toolArgs["icon"] = *icon
	}
	if *sound {
		toolArgs["sound"] = true
	}
	if *wait {
		toolArgs["wait"] = true
	}
	if *timeout > 0 {
		toolArgs["timeout"] = *timeout
	}
	if *urgency != "" {
		toolArgs["urgency"] = *urgency
	}
	if *kind != "" {
		toolArgs["type"] = *kind
	}
	if *actions != "" {
		toolArgs["actions"] = strings.Split(*actions, ",")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close(context.Background()) }()

	texts, err := mcp.CallTool(ctx, c.Server, *tool, toolArgs)
	if err != nil {
		return err
	}
	for _, text := range texts {
		fmt.Println(text)
	}
	return nil
}
