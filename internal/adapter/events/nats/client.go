package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	natspkg "github.com/nats-io/nats.go"

	"github.com/strogmv/notify-mcp/internal/domain"
)

type Client struct {
	nc      *natspkg.Conn
	subject string
}

func NewClient(url, subject string) (*Client, error) {
	nc, err := natspkg.Connect(url,
		natspkg.Name("notify-mcp"),
		natspkg.Timeout(5*time.Second),
		natspkg.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &Client{nc: nc, subject: subject}, nil
}

func (c *Client) Close() {
	_ = c.nc.Drain()
}

func (c *Client) IsConnected() bool {
	return c.nc != nil && c.nc.Status() == natspkg.CONNECTED
}

func (c *Client) PublishNotificationResolved(ctx context.Context, event domain.NotificationResolved) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeResolved(event)
	if err != nil {
		return err
	}
	return c.nc.Publish(c.subject, data)
}

func encodeResolved(event domain.NotificationResolved) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", event.Status, err)
	}
	return data, nil
}
