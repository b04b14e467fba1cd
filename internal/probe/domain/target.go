package domain

import (
	"HookProbe/pkg/validator"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type CheckType string

const (
	DNSCheck CheckType = "dns"
	TCPCheck CheckType = "tcp"
)

// Target is one named HTTP endpoint under test. Treat it as a value: the
// runner never modifies a configured target.
type Target struct {
	Name      string            `json:"name"`
	Path      string            `json:"path"`
	Method    string            `json:"method"`
	Body      []byte            `json:"body,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
	Timeout   time.Duration     `json:"timeout"`
	Predicate SuccessPredicate  `json:"predicate"`
}

// DefaultWebhookPayload mimics the notification the payment provider sends
// when a payment is created.
var DefaultWebhookPayload = []byte(`{"action":"payment.created","data":{"id":"test123"},"type":"payment"}`)

func NewWebhookTarget(path string, timeout time.Duration) Target {
	return Target{
		Name:      path,
		Path:      path,
		Method:    http.MethodPost,
		Body:      DefaultWebhookPayload,
		Headers:   map[string]string{"Content-Type": "application/json"},
		Timeout:   timeout,
		Predicate: BodyEquals("OK"),
	}
}

func NewLivenessTarget(path string, timeout time.Duration) Target {
	return Target{
		Name:      path,
		Path:      path,
		Method:    http.MethodGet,
		Timeout:   timeout,
		Predicate: Status2xx(),
	}
}

// Label is the name shown in reports; falls back to the path.
func (t Target) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Path
}

func (t Target) Validate() error {
	if !validator.ValidatePath(t.Path) {
		return fmt.Errorf("%w: target %q has invalid path %q", ErrInvalidTarget, t.Label(), t.Path)
	}
	if !validator.ValidateMethod(t.Method) {
		return fmt.Errorf("%w: target %q has invalid method %q", ErrInvalidTarget, t.Label(), t.Method)
	}
	if t.Timeout <= 0 {
		return fmt.Errorf("%w: target %q has non-positive timeout", ErrInvalidTarget, t.Label())
	}
	return nil
}

// URL joins the base URL and the target path without doubling slashes.
func (t Target) URL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(t.Path, "/")
}

// Plan is the full input of one probing session. InterTargetDelay applies
// only when targets run sequentially.
type Plan struct {
	BaseURL           string
	Targets           []Target
	AttemptsPerTarget int
	InterAttemptDelay time.Duration
	InterTargetDelay  time.Duration
	ConcurrentTargets bool
}

func (p Plan) Validate() error {
	if !validator.ValidateBaseURL(p.BaseURL) {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, p.BaseURL)
	}
	if len(p.Targets) == 0 {
		return ErrNoTargets
	}
	if p.AttemptsPerTarget < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidAttempts, p.AttemptsPerTarget)
	}
	if p.InterAttemptDelay < 0 {
		return fmt.Errorf("%w: negative inter-attempt delay", ErrConfig)
	}
	if p.InterTargetDelay < 0 {
		return fmt.Errorf("%w: negative inter-target delay", ErrConfig)
	}
	for _, target := range p.Targets {
		if err := target.Validate(); err != nil {
			return err
		}
	}
	return nil
}
