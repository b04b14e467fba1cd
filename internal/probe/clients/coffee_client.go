package client

import (
	domain "HookProbe/internal/probe/domain"
	runner "HookProbe/internal/probe/runners"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// CoffeeClient reads the receiver's donation state.
type CoffeeClient struct {
	baseURL  string
	executor runner.Executor
	timeout  time.Duration
}

func NewCoffeeClient(baseURL string, executor runner.Executor, timeout time.Duration) *CoffeeClient {
	return &CoffeeClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		executor: executor,
		timeout:  timeout,
	}
}

// FetchStatus calls GET /coffee-status and decodes the payload.
func (c *CoffeeClient) FetchStatus(ctx context.Context) (*domain.CoffeeStatus, error) {
	resp, err := c.executor.Execute(ctx, runner.Request{
		Method:  http.MethodGet,
		URL:     c.baseURL + "/coffee-status",
		Timeout: c.timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReceiverDown, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, domain.Snippet(resp.Body, 80))
	}

	status, err := domain.DecodeCoffeeStatus([]byte(resp.Body))
	if err != nil {
		return nil, err
	}

	return status, nil
}
