// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"transit-report/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Client wraps the Zeebe gRPC client.
type Client struct {
	client zbc.Client
	config *ClientConfig
}

// ClientConfig holds configuration for the Camunda/Zeebe client.
type ClientConfig struct {
	GatewayAddress         string
	UsePlaintextConnection bool
	ConnectionTimeout      time.Duration
	ConnectAttempts        int
	ConnectBackoff         time.Duration
}

// NewClientWithConfig connects to the broker, retrying the topology probe with exponential backoff.
// Only the connection is retried; job handling never is.
func NewClientWithConfig(ctx context.Context, cfg *ClientConfig, log logger.Logger) (*Client, error) {
	if cfg.ConnectAttempts <= 0 {
		cfg.ConnectAttempts = 1
	}
	if cfg.ConnectionTimeout == 0 {
		cfg.ConnectionTimeout = 10 * time.Second
	}

	zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.GatewayAddress,
		UsePlaintextConnection: cfg.UsePlaintextConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	c := &Client{client: zeebeClient, config: cfg}

	err = retryWithBackoff(ctx, cfg.ConnectAttempts, cfg.ConnectBackoff, func(attempt int) error {
		if err := c.HealthCheck(ctx); err != nil {
			log.Warn("zeebe broker not reachable yet", map[string]interface{}{
				"gateway": cfg.GatewayAddress,
				"attempt": attempt,
				"error":   err.Error(),
			})
			return err
		}
		return nil
	})
	if err != nil {
		zeebeClient.Close()
		return nil, fmt.Errorf("failed to connect to Zeebe broker at %s: %w", cfg.GatewayAddress, err)
	}

	return c, nil
}

// GetClient returns the raw Zeebe client for job workers.
func (c *Client) GetClient() zbc.Client {
	return c.client
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// HealthCheck performs a topology request against the broker.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.ConnectionTimeout)
	defer cancel()

	if _, err := c.client.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}

func retryWithBackoff(ctx context.Context, attempts int, initialDelay time.Duration, op func(attempt int) error) error {
	var err error
	delay := initialDelay

	for i := 1; i <= attempts; i++ {
		if err = op(i); err == nil {
			return nil
		}
		if i == attempts {
			break
		}

		select {
		case <-time.After(delay):
			delay *= 2
		case <-ctx.Done():
			return fmt.Errorf("cancelled after %d attempts: %w", i, ctx.Err())
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}
