package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"cardia/riskapi/internal/app/infra/persistence/redis"
	"cardia/riskapi/internal/app/pkg/logger"
)

// Subscriber is the part of the redis client the consumer needs.
type Subscriber interface {
	Subscribe(ctx context.Context) *goredis.PubSub
}

// HandlerFunc processes one decoded event. An error is logged and the
// consumer moves on to the next message.
type HandlerFunc func(ctx context.Context, event *redis.PredictionEvent) error

// PredictionConsumer follows the prediction event channel.
type PredictionConsumer struct {
	subscriber Subscriber
	handle     HandlerFunc
	logger     logger.Logger
}

func NewPredictionConsumer(subscriber Subscriber, handle HandlerFunc, log logger.Logger) *PredictionConsumer {
	return &PredictionConsumer{
		subscriber: subscriber,
		handle:     handle,
		logger:     log,
	}
}

// Start blocks until ctx is cancelled or the subscription fails.
func (c *PredictionConsumer) Start(ctx context.Context) error {
	sub := c.subscriber.Subscribe(ctx)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s failed: %w", redis.PredictionChannel, err)
	}
	c.logger.Infof(ctx, "prediction consumer started: channel=%s", redis.PredictionChannel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			c.logger.Infof(ctx, "prediction consumer stopped")
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("subscription to %s closed", redis.PredictionChannel)
			}
			c.consumeOne(ctx, msg)
		}
	}
}

func (c *PredictionConsumer) consumeOne(ctx context.Context, msg *goredis.Message) {
	var event redis.PredictionEvent
	if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
		c.logger.Warnf(ctx, "skip malformed prediction event: %v", err)
		return
	}

	evCtx := logger.WithRequestID(ctx, event.RequestID)
	if err := c.handle(evCtx, &event); err != nil {
		c.logger.Errorf(evCtx, "handle prediction event failed: %v", err)
	}
}
