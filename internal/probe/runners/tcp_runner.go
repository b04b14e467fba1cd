package runner

import (
	"HookProbe/internal/shared/constants"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

// TCPRunner checks that the receiver accepts connections at all.
type TCPRunner struct {
	timeout time.Duration
}

func NewTCPRunner() *TCPRunner {
	return &TCPRunner{
		timeout: constants.TCPTimeout,
	}
}

// Execute dials target (host or host:port). A refused connection is an
// error here, unlike in a port scanner, because the receiver must be up.
func (r *TCPRunner) Execute(ctx context.Context, target string, options map[string]interface{}) (map[string]interface{}, error) {
	host := extractHost(target)
	port := getTCPPort(options, target)
	if port == 0 {
		port = 443
	}
	address := net.JoinHostPort(host, strconv.Itoa(port))

	timeout := getDurationOption(options, "timeout", r.timeout)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	connectTime := time.Since(start)

	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("TCP connect to %s timed out: %w", address, err)
		}
		return nil, fmt.Errorf("TCP connect to %s failed: %w", address, err)
	}
	defer conn.Close()

	return map[string]interface{}{
		"address":        address,
		"port_open":      true,
		"connect_time":   connectTime.Milliseconds(),
		"remote_address": conn.RemoteAddr().String(),
	}, nil
}

func getTCPPort(options map[string]interface{}, target string) int {
	if port, ok := parsePort(options["port"]); ok {
		return port
	}

	if _, portStr, err := net.SplitHostPort(target); err == nil {
		if port, err := strconv.Atoi(portStr); err == nil {
			return port
		}
	}

	return 0
}

func extractHost(target string) string {
	host, _, err := net.SplitHostPort(target)
	if err != nil {
		return target
	}
	return host
}
