package runner

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	ErrTimeout   = errors.New("request timed out")
	ErrTransport = errors.New("transport failure")
)

// classifyError wraps a failed round trip into ErrTimeout or ErrTransport.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %w", ErrTransport, err)
}
