// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"career-assessment-workers/internal/common/config"
	"career-assessment-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// RetryConfig defines retry behavior for transient failures.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = RetryConfig{
	MaxRetries: 10,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

// Client wraps the Zeebe gRPC client.
type Client struct {
	zbc.Client
	connectTimeout time.Duration
}

// Connect dials the broker and waits for a topology response, retrying
// transient failures with exponential backoff.
func Connect(ctx context.Context, cfg config.CamundaConfig, retry RetryConfig, log logger.Logger) (*Client, error) {
	var zeebeClient zbc.Client
	err := Retry(ctx, retry, log, "zeebe client initialization", func(ctx context.Context) error {
		c, err := zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.BrokerAddress,
			UsePlaintextConnection: cfg.UsePlaintext,
		})
		if err != nil {
			return err
		}

		tctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if _, err := c.NewTopologyCommand().Send(tctx); err != nil {
			c.Close()
			return fmt.Errorf("failed to connect to Zeebe broker at %s: %w", cfg.BrokerAddress, err)
		}
		zeebeClient = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Client{Client: zeebeClient, connectTimeout: 10 * time.Second}, nil
}

// HealthCheck performs a topology request against the broker.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	if _, err := c.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}

// Retry runs op until it succeeds, the error is not transient, or the
// attempts are exhausted.
func Retry(ctx context.Context, cfg RetryConfig, log logger.Logger, operation string, op func(context.Context) error) error {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	delay := cfg.BaseDelay

	var err error
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		if err = op(ctx); err == nil {
			return nil
		}
		if attempt == cfg.MaxRetries || !IsTransient(err) {
			break
		}

		log.Warn(operation+" failed, retrying", map[string]interface{}{
			"error":       err.Error(),
			"attempt":     attempt,
			"maxRetries":  cfg.MaxRetries,
			"nextRetryIn": delay.String(),
		})

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s cancelled after %d attempts: %w", operation, attempt, ctx.Err())
		}

		delay *= 2
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", operation, cfg.MaxRetries, err)
}

// IsTransient reports whether err looks like a connectivity failure.
func IsTransient(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, phrase := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"deadline exceeded",
		"unavailable",
		"unreachable",
		"broken pipe",
		"no such host",
		"i/o timeout",
	} {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
