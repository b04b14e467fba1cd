package client

import (
	domain "HookProbe/internal/probe/domain"
	runner "HookProbe/internal/probe/runners"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCoffeeClient_FetchStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coffee-status" || r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total":25,"lastDonation":{"amount":"10.00","donorName":"Bob"},"transactionCount":4}`))
	}))
	defer srv.Close()

	c := NewCoffeeClient(srv.URL+"/", runner.NewHTTPRunner(), time.Second)
	status, err := c.FetchStatus(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if status.Total != 25 || status.TransactionCount != 4 {
		t.Errorf("unexpected status %+v", status)
	}
	if status.LastDonation.DonorName != "Bob" || status.LastDonation.Amount != 10 {
		t.Errorf("unexpected last donation %+v", status.LastDonation)
	}
}

func TestCoffeeClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		err     error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			err: ErrUnexpectedStatus,
		},
		{
			name: "broken contract",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"lastDonation":{}}`))
			},
			err: domain.ErrCoffeeContract,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewCoffeeClient(srv.URL, runner.NewHTTPRunner(), time.Second).FetchStatus(context.Background())
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestCoffeeClient_ReceiverDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewCoffeeClient(url, runner.NewHTTPRunner(), time.Second).FetchStatus(context.Background())
	if !errors.Is(err, ErrReceiverDown) {
		t.Fatalf("expected ErrReceiverDown, got %v", err)
	}
	if !errors.Is(err, runner.ErrTransport) {
		t.Errorf("expected the transport cause to be kept, got %v", err)
	}
}
