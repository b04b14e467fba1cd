package storage

import (
	"HookProbe/internal/config"
	"HookProbe/internal/probe/domain"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/redis/go-redis/v9"
)

type fakeRedis struct {
	channel string
	message []byte
	err     error
	closed  bool
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.message, _ = message.([]byte)

	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal(2)
	}
	return cmd
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRedisPublisher_Publish(t *testing.T) {
	fake := &fakeRedis{}
	pub := newRedisPublisher(fake, "hookprobe:reports", discardLogger())

	report := &domain.Report{RunID: "run-1", BaseURL: "https://receiver.test", AttemptsPerTarget: 3}
	if err := pub.Publish(context.Background(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fake.channel != "hookprobe:reports" {
		t.Errorf("unexpected channel %q", fake.channel)
	}

	var decoded domain.Report
	if err := json.Unmarshal(fake.message, &decoded); err != nil {
		t.Fatalf("published message is not a report: %v", err)
	}
	if decoded.RunID != "run-1" || decoded.AttemptsPerTarget != 3 {
		t.Errorf("unexpected published report %+v", decoded)
	}

	if err := pub.Close(); err != nil || !fake.closed {
		t.Error("expected the client to be closed")
	}
}

func TestRedisPublisher_PublishError(t *testing.T) {
	fake := &fakeRedis{err: errors.New("connection reset")}
	pub := newRedisPublisher(fake, "hookprobe:reports", discardLogger())

	if err := pub.Publish(context.Background(), &domain.Report{RunID: "run-1"}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestNewRedisPublisher_Unreachable(t *testing.T) {
	cfg := &config.RedisConfig{Addr: "127.0.0.1:1", Channel: "hookprobe:reports"}
	if _, err := NewRedisPublisher(cfg, discardLogger()); err == nil {
		t.Fatal("expected a connection error")
	}
}

func TestNopPublisher(t *testing.T) {
	var pub Publisher = NopPublisher{}
	if err := pub.Publish(context.Background(), &domain.Report{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
