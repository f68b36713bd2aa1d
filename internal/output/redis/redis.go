package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/manifest-network/adacoin/internal/models"
)

// RedisOutputHandler appends journal events to a Redis stream, one entry per event with the
// fields seq, type and data.
type RedisOutputHandler struct {
	client *goredis.Client
	stream string
}

func NewRedisOutputHandler(ctx context.Context, addr, stream string) (*RedisOutputHandler, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr: addr,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisOutputHandler{client: client, stream: stream}, nil
}

// GetLatestSeq returns the sequence number of the last entry in the stream, or 0 when it is empty.
func (h *RedisOutputHandler) GetLatestSeq(ctx context.Context) (uint64, error) {
	entries, err := h.client.XRevRangeN(ctx, h.stream, "+", "-", 1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read the latest stream entry: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	raw, ok := entries[0].Values["seq"].(string)
	if !ok {
		return 0, fmt.Errorf("stream entry %s has no seq field", entries[0].ID)
	}
	seq, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("stream entry %s has an invalid seq: %w", entries[0].ID, err)
	}
	return seq, nil
}

func (h *RedisOutputHandler) WriteEvent(ctx context.Context, event *models.Event) error {
	err := h.client.XAdd(ctx, &goredis.XAddArgs{
		Stream: h.stream,
		Values: map[string]any{
			"seq":  event.Seq,
			"type": event.Type,
			"data": string(event.Data),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to append ledger event to stream: %w", err)
	}
	return nil
}

func (h *RedisOutputHandler) Close() error {
	slog.Info("Closing Redis client")
	return h.client.Close()
}
