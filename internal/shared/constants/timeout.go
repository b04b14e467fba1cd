package constants

import "time"

const (
	AttemptTimeout    = 5 * time.Second
	WarmupTimeout     = 10 * time.Second
	InterAttemptDelay = 500 * time.Millisecond
	WarmupDelay       = 500 * time.Millisecond
	DNSTimeout        = 5 * time.Second
	TCPTimeout        = 5 * time.Second
	PublishTimeout    = 5 * time.Second
)

// BodyReadLimit caps how much of a response body is kept per attempt.
const BodyReadLimit = 4096

// BodyDrainLimit caps how much of the rest is discarded to keep the
// connection reusable. Larger bodies close the connection instead.
const BodyDrainLimit = 256 << 10
