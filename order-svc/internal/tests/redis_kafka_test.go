package tests

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"overcooked-ordering/order-svc/internal/domain"
	"overcooked-ordering/order-svc/internal/mocks"
	"overcooked-ordering/order-svc/internal/service"
	"overcooked-ordering/order-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newIdempotencyCache(t *testing.T) (*storage.IdempotencyCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return storage.NewIdempotencyCache(rdb, time.Hour), mr
}

func TestIdempotencyCache_Lifecycle(t *testing.T) {
	cache, mr := newIdempotencyCache(t)
	ctx := context.Background()

	cached, err := cache.Reserve(ctx, "checkout:7:abc")
	require.NoError(t, err)
	assert.Nil(t, cached)

	_, err = cache.Reserve(ctx, "checkout:7:abc")
	assert.ErrorIs(t, err, service.ErrRequestInFlight)

	require.NoError(t, cache.Complete(ctx, "checkout:7:abc", []byte(`{"batch_id":"b-1"}`)))
	cached, err = cache.Reserve(ctx, "checkout:7:abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"batch_id":"b-1"}`, string(cached))

	assert.True(t, mr.TTL("checkout:7:abc") > 0)
}

func TestIdempotencyCache_ReleaseAllowsRetry(t *testing.T) {
	cache, _ := newIdempotencyCache(t)
	ctx := context.Background()

	_, err := cache.Reserve(ctx, "k")
	require.NoError(t, err)
	require.NoError(t, cache.Release(ctx, "k"))

	cached, err := cache.Reserve(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestIdempotencyCache_ExpiredKey(t *testing.T) {
	cache, mr := newIdempotencyCache(t)
	ctx := context.Background()

	_, err := cache.Reserve(ctx, "k")
	require.NoError(t, err)
	mr.FastForward(2 * time.Hour)

	cached, err := cache.Reserve(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestIdempotencyCache_Unavailable(t *testing.T) {
	cache, mr := newIdempotencyCache(t)
	mr.Close()

	_, err := cache.Reserve(context.Background(), "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrRequestInFlight)
}

func TestKafkaPublisher_PublishOrderEvent(t *testing.T) {
	tests := []struct {
		name     string
		writeErr error
	}{
		{name: "written"},
		{name: "writer error", writeErr: assert.AnError},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			writer := mocks.NewMessageWriter(t)
			event := domain.OrderEvent{Type: domain.EventOrderCreated, BatchID: "b-1", OrderID: 3, VenueID: 1, Quantity: 2}

			writer.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msg kafka.Message) bool {
				var decoded domain.OrderEvent
				if err := json.Unmarshal(msg.Value, &decoded); err != nil {
					return false
				}
				return string(msg.Key) == "b-1" && decoded.OrderID == 3 && decoded.Type == domain.EventOrderCreated
			})).Return(testCase.writeErr).Once()

			err := storage.NewKafkaPublisher(writer).PublishOrderEvent(context.Background(), event)

			if testCase.writeErr != nil {
				assert.ErrorIs(t, err, testCase.writeErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
