package domain

import "time"

type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeTransportError Outcome = "transport_error"
	OutcomeTimeout        Outcome = "timeout"
	OutcomeBadStatus      Outcome = "bad_status"
	OutcomeBodyMismatch   Outcome = "body_mismatch"
)

func (o Outcome) IsSuccess() bool {
	return o == OutcomeSuccess
}

// Result is one probe attempt. It is created once and never mutated.
type Result struct {
	Target      string    `json:"target"`
	Attempt     int       `json:"attempt"`
	Outcome     Outcome   `json:"outcome"`
	StatusCode  int       `json:"status_code"`
	LatencyMs   float64   `json:"latency_ms"`
	HasLatency  bool      `json:"has_latency"`
	BodySnippet string    `json:"body_snippet,omitempty"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewResponseResult records an attempt that got an HTTP response back,
// successful or not. Only these attempts carry a latency sample.
func NewResponseResult(target string, attempt int, outcome Outcome, statusCode int, latency time.Duration, body string) Result {
	return Result{
		Target:      target,
		Attempt:     attempt,
		Outcome:     outcome,
		StatusCode:  statusCode,
		LatencyMs:   float64(latency.Nanoseconds()) / 1e6,
		HasLatency:  true,
		BodySnippet: Snippet(body, SnippetLimit),
		Timestamp:   time.Now(),
	}
}

func NewErrorResult(target string, attempt int, outcome Outcome, err error) Result {
	return Result{
		Target:    target,
		Attempt:   attempt,
		Outcome:   outcome,
		Error:     err.Error(),
		Timestamp: time.Now(),
	}
}

const SnippetLimit = 200

// Snippet cuts s to at most limit bytes without splitting a UTF-8 rune.
func Snippet(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// PreflightResult is the outcome of a DNS or TCP check run before the
// battery. Preflight failures are reported but never abort a run.
type PreflightResult struct {
	Check     CheckType              `json:"check"`
	Target    string                 `json:"target"`
	Success   bool                   `json:"success"`
	LatencyMs float64                `json:"latency_ms"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Error     string                 `json:"error,omitempty"`
}
