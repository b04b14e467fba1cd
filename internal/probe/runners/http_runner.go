package runner

import (
	"HookProbe/internal/shared/constants"
	"HookProbe/pkg/uuidutil"
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "HookProbe/1.0"

type Request struct {
	Method  string
	URL     string
	Body    []byte
	Headers map[string]string
	Timeout time.Duration
}

type Response struct {
	StatusCode int
	Body       string
	Elapsed    time.Duration
}

type HTTPRunner struct {
	client *http.Client
}

func NewHTTPRunner() *HTTPRunner {
	return NewHTTPRunnerWithClient(&http.Client{
		// per-request deadlines come from the context
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	})
}

func NewHTTPRunnerWithClient(client *http.Client) *HTTPRunner {
	return &HTTPRunner{client: client}
}

// Execute sends one request bounded by req.Timeout. Elapsed covers the
// whole round trip including reading the (capped) body. Any failure before
// a response arrives is wrapped in ErrTimeout or ErrTransport.
func (r *HTTPRunner) Execute(ctx context.Context, req Request) (*Response, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = constants.AttemptTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if len(req.Body) > 0 {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", userAgent)
	}
	if httpReq.Header.Get("X-Idempotency-Key") == "" {
		httpReq.Header.Set("X-Idempotency-Key", uuidutil.New())
	}

	start := time.Now()
	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, constants.BodyReadLimit))
	elapsed := time.Since(start)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to read response body: %w", err))
	}

	// остаток тела вычитываем, чтобы соединение вернулось в пул
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, constants.BodyDrainLimit))

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       string(bodyBytes),
		Elapsed:    elapsed,
	}, nil
}
