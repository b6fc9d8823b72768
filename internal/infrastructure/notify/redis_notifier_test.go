package notify

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/wms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type stubEvent struct {
	shared.BaseDomainEvent
}

func newStubEvent() *stubEvent {
	return &stubEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LotAccepted", "Lot", uuid.New()),
	}
}

// unreachableClient points at a port nothing listens on
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisNotifier_HandleIsBestEffort(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	notifier := NewRedisNotifierWithClient(client, WithLogger(zap.NewNop()))

	// A dead broker must not fail the originating flow
	err := notifier.Handle(context.Background(), newStubEvent())
	assert.NoError(t, err)
}

func TestRedisNotifier_Options(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	notifier := NewRedisNotifierWithClient(client, WithChannel("wms:test"))

	assert.Equal(t, "wms:test", notifier.channel)
	assert.Nil(t, notifier.EventTypes())
}

func TestRedisNotifier_CloseLeavesSharedClientOpen(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	notifier := NewRedisNotifierWithClient(client)
	assert.NoError(t, notifier.Close())
}
