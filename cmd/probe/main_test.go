package main

import (
	"HookProbe/internal/config"
	"HookProbe/internal/probe/domain"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// mockReceiver mimics the deployed webhook receiver: /webhook answers
// "OK", /webhook-debug is broken, /coffee-status returns the tally.
type mockReceiver struct {
	mu       sync.Mutex
	webhooks []string
}

func (m *mockReceiver) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, _ := io.ReadAll(r.Body)
		m.mu.Lock()
		m.webhooks = append(m.webhooks, string(body))
		m.mu.Unlock()
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("/webhook-debug", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "An error occurred with your deployment", http.StatusInternalServerError)
	})
	mux.HandleFunc("/coffee-status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total":"7.00","lastDonation":{"amount":"2.00","donorName":"Eve"},"transactionCount":2}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("alive"))
	})
	return mux
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "hookprobe", Version: "test"},
		Probe: config.ProbeConfig{
			BaseURL:       baseURL,
			Attempts:      2,
			Delay:         time.Millisecond,
			Timeout:       time.Second,
			ReceiverState: true,
			Targets: []config.TargetConfig{
				{Path: "/webhook", Method: "POST", Body: `{"amount":5}`, Success: "body_ok"},
				{Path: "/webhook-debug", Method: "POST", Body: `{"amount":5}`},
			},
			Warmup: []config.TargetConfig{{Path: "/"}},
		},
		Logging: config.LoggingConfig{Level: "error", Format: "text"},
	}
}

func TestRun_AgainstMockReceiver(t *testing.T) {
	receiver := &mockReceiver{}
	srv := httptest.NewServer(receiver.handler())
	defer srv.Close()

	var out bytes.Buffer
	if code := run(context.Background(), testConfig(srv.URL), &out); code != exitOK {
		t.Fatalf("expected exit code %d, got %d", exitOK, code)
	}

	report := out.String()
	for _, want := range []string{
		"Warmup",
		"/webhook-debug",
		"Best endpoint: /webhook (100.0% success",
		"Receiver: total 7.00, 2 donation(s), last 2.00 by Eve",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}

	receiver.mu.Lock()
	defer receiver.mu.Unlock()
	if len(receiver.webhooks) != 2 || receiver.webhooks[0] != `{"amount":5}` {
		t.Errorf("unexpected webhook deliveries %v", receiver.webhooks)
	}
}

func TestRun_RejectsInvalidPlan(t *testing.T) {
	cfg := testConfig("not-a-url")

	var out bytes.Buffer
	if code := run(context.Background(), cfg, &out); code != exitRejected {
		t.Fatalf("expected exit code %d, got %d", exitRejected, code)
	}
	if out.Len() != 0 {
		t.Errorf("no report should be written, got %q", out.String())
	}
}

func TestRun_RejectsUnknownPredicate(t *testing.T) {
	cfg := testConfig("https://receiver.test")
	cfg.Probe.Targets[0].Success = "body_contains"

	var out bytes.Buffer
	if code := run(context.Background(), cfg, &out); code != exitRejected {
		t.Fatalf("expected exit code %d, got %d", exitRejected, code)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "no error", err: nil, want: exitOK},
		{name: "plan error", err: domain.ErrInvalidAttempts, want: exitRejected},
		{name: "wrapped config error", err: fmt.Errorf("load: %w", domain.ErrConfig), want: exitRejected},
		{name: "other error", err: errors.New("permission denied"), want: exitFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestExitCode_ConfigLoad(t *testing.T) {
	dir := t.TempDir()

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("probe:\n  attempts: 0\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	_, err := config.Load(invalid)
	if code := exitCode(err); code != exitRejected {
		t.Errorf("invalid config: expected exit code %d, got %d (%v)", exitRejected, code, err)
	}

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	if code := exitCode(err); code != exitFailed {
		t.Errorf("missing config: expected exit code %d, got %d (%v)", exitFailed, code, err)
	}
}
