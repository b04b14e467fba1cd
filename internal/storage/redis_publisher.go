package storage

import (
	"HookProbe/internal/config"
	"HookProbe/internal/probe/domain"
	"HookProbe/internal/shared/constants"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Publisher hands finished reports to whoever is listening. Nothing is
// stored: subscribers that are not connected miss the report.
type Publisher interface {
	Publish(ctx context.Context, report *domain.Report) error
	Close() error
}

// publishClient is the part of *redis.Client the publisher uses.
type publishClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

type redisPublisher struct {
	client  publishClient
	channel string
	log     *slog.Logger
}

func NewRedisPublisher(cfg *config.RedisConfig, log *slog.Logger) (Publisher, error) {
	client := redis.NewClient(cfg.GetRedisOptions())

	ctx, cancel := context.WithTimeout(context.Background(), constants.PublishTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Error("failed to connect to Redis", "error", err)
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("Connected to Redis", "addr", cfg.Addr, "channel", cfg.Channel)
	return newRedisPublisher(client, cfg.Channel, log), nil
}

func newRedisPublisher(client publishClient, channel string, log *slog.Logger) *redisPublisher {
	return &redisPublisher{
		client:  client,
		channel: channel,
		log:     log,
	}
}

func (r *redisPublisher) Publish(ctx context.Context, report *domain.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.PublishTimeout)
	defer cancel()

	receivers, err := r.client.Publish(ctx, r.channel, data).Result()
	if err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}

	r.log.Debug("Report published",
		"run_id", report.RunID,
		"channel", r.channel,
		"receivers", receivers,
		"length", len(data),
	)
	return nil
}

func (r *redisPublisher) Close() error {
	return r.client.Close()
}

// NopPublisher is used when no Redis address is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *domain.Report) error { return nil }
func (NopPublisher) Close() error                                  { return nil }
