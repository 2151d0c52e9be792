package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"visitorid/internal/audit"
)

// DefaultStream is the Redis stream audit events are appended to.
const DefaultStream = "visitorid:audit"

// RedisStreamStore appends events to a Redis stream with XADD. Consumers read
// the stream independently; the engine never reads it back.
type RedisStreamStore struct {
	client *redis.Client
	stream string
	maxLen int64
}

type RedisOption func(*RedisStreamStore)

// WithStream overrides the stream key.
func WithStream(stream string) RedisOption {
	return func(s *RedisStreamStore) {
		if stream != "" {
			s.stream = stream
		}
	}
}

// WithMaxLen caps the stream length (approximate trimming).
func WithMaxLen(n int64) RedisOption {
	return func(s *RedisStreamStore) {
		s.maxLen = n
	}
}

func NewRedisStreamStore(client *redis.Client, opts ...RedisOption) *RedisStreamStore {
	s := &RedisStreamStore{client: client, stream: DefaultStream}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStreamStore) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"id":      event.ID.String(),
			"action":  string(event.Action),
			"payload": payload,
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}

// Stream returns the key events are written to.
func (s *RedisStreamStore) Stream() string {
	return s.stream
}
