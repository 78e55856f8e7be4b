package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardia/riskapi/internal/app/infra/persistence/redis"
	"cardia/riskapi/internal/app/pkg/logger"
)

func TestPredictionConsumer(t *testing.T) {
	srv := miniredis.RunT(t)
	client, err := redis.NewPubSubClient(srv.Addr(), "", 0)
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan *redis.PredictionEvent, 2)
	consumer := NewPredictionConsumer(client, func(_ context.Context, e *redis.PredictionEvent) error {
		got <- e
		if e.Assessment == "kidney" {
			return errors.New("downstream unavailable")
		}
		return nil
	}, logger.NewNop())

	done := make(chan error, 1)
	go func() { done <- consumer.Start(ctx) }()

	require.Eventually(t, func() bool {
		return len(srv.PubSubChannels("")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	srv.Publish(redis.PredictionChannel, "not json")
	require.NoError(t, client.PublishPrediction(ctx, &redis.PredictionEvent{Assessment: "kidney", Label: "Negative"}))
	require.NoError(t, client.PublishPrediction(ctx, &redis.PredictionEvent{Assessment: "heart", Label: "Positive", Probability: 0.73}))

	first := <-got
	second := <-got
	assert.Equal(t, "kidney", first.Assessment)
	assert.Equal(t, "heart", second.Assessment)
	assert.Equal(t, 0.73, second.Probability)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
