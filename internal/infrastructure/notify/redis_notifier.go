package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// DefaultChannel is the Pub/Sub channel warehouse events are published to
const DefaultChannel = "wms:events"

const publishTimeout = 2 * time.Second

// envelope is the wire form of a published event
type envelope struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	AggregateID   string    `json:"aggregate_id"`
	AggregateType string    `json:"aggregate_type"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// RedisNotifier fans domain events out to external consumers over Redis
// Pub/Sub. Delivery is best effort: a publish failure is logged and
// swallowed so the originating intake or retrieval flow is never blocked
// on the notification channel.
type RedisNotifier struct {
	client     *redis.Client
	ownsClient bool
	channel    string
	logger     *zap.Logger
}

// RedisNotifierOption is a functional option for configuring the notifier
type RedisNotifierOption func(*RedisNotifier)

// WithChannel sets the Pub/Sub channel name
func WithChannel(channel string) RedisNotifierOption {
	return func(n *RedisNotifier) {
		n.channel = channel
	}
}

// WithLogger sets the logger for the notifier
func WithLogger(logger *zap.Logger) RedisNotifierOption {
	return func(n *RedisNotifier) {
		n.logger = logger
	}
}

// NewRedisNotifier connects to Redis and returns a notifier that owns its
// client
func NewRedisNotifier(cfg config.RedisConfig, opts ...RedisNotifierOption) (*RedisNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	notifier := &RedisNotifier{
		client:     client,
		ownsClient: true,
		channel:    DefaultChannel,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(notifier)
	}
	return notifier, nil
}

// NewRedisNotifierWithClient wraps an existing client. The caller keeps
// ownership and closes the client itself.
func NewRedisNotifierWithClient(client *redis.Client, opts ...RedisNotifierOption) *RedisNotifier {
	notifier := &RedisNotifier{
		client:  client,
		channel: DefaultChannel,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(notifier)
	}
	return notifier
}

// Handle publishes one domain event to the configured channel
func (n *RedisNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	payload, err := json.Marshal(envelope{
		EventID:       event.EventID().String(),
		EventType:     event.EventType(),
		AggregateID:   event.AggregateID().String(),
		AggregateType: event.AggregateType(),
		OccurredAt:    event.OccurredAt(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := n.client.Publish(publishCtx, n.channel, payload).Err(); err != nil {
		n.logger.Warn("event notification dropped",
			zap.String("event_type", event.EventType()),
			zap.String("channel", n.channel),
			zap.Error(err),
		)
	}
	return nil
}

// EventTypes returns an empty slice: the notifier mirrors every event
func (n *RedisNotifier) EventTypes() []string {
	return nil
}

// Close releases the Redis client if the notifier owns it
func (n *RedisNotifier) Close() error {
	if !n.ownsClient {
		return nil
	}
	return n.client.Close()
}

// Ensure RedisNotifier implements EventHandler
var _ shared.EventHandler = (*RedisNotifier)(nil)
