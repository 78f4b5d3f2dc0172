package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// errorBackoff and cleanEndBackoff implement §4.2's reconnect policy: "5s
// on error, 2s on clean end".
const (
	errorBackoff    = 5 * time.Second
	cleanEndBackoff = 2 * time.Second
)

// Client consumes ClipboardEvents from one daemon address, reconnecting
// indefinitely.
type Client struct {
	address string
}

// NewClient returns a Client targeting address (e.g.
// "unix:///tmp/clipboard-daemon.sock").
func NewClient(address string) *Client {
	return &Client{address: address}
}

// Run dials address and forwards every received event to onEvent until ctx
// is cancelled, reconnecting with backoff across daemon outages so the
// caller never needs to restart this call itself.
func (c *Client) Run(ctx context.Context, onEvent func(ClipboardEvent)) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		backoff, err := c.runOnce(ctx, onEvent)
		if err != nil {
			slog.Warn("transport: connection error, reconnecting", "error", err, "backoff", backoff)
		} else {
			slog.Info("transport: stream ended cleanly, reconnecting", "backoff", backoff)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
	}
}

// runOnce dials, watches until the stream ends or errors, and reports how
// long the caller should wait before trying again.
func (c *Client) runOnce(ctx context.Context, onEvent func(ClipboardEvent)) (backoff time.Duration, err error) {
	conn, err := grpc.NewClient(c.address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return errorBackoff, fmt.Errorf("transport: dial: %w", err)
	}
	defer conn.Close()

	client := NewClipboardServiceClient(conn)
	stream, err := client.Watch(ctx, &Empty{})
	if err != nil {
		return errorBackoff, fmt.Errorf("transport: watch: %w", err)
	}

	for {
		ev, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return cleanEndBackoff, nil
		}
		if err != nil {
			return errorBackoff, fmt.Errorf("transport: recv: %w", err)
		}
		onEvent(*ev)
	}
}
