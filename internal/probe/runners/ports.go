package runner

import "context"

// Executor is the HTTP client capability the probe runner depends on.
type Executor interface {
	Execute(ctx context.Context, req Request) (*Response, error)
}

// Runner performs a preflight check against a host or host:port.
type Runner interface {
	Execute(ctx context.Context, target string, options map[string]interface{}) (map[string]interface{}, error)
}
