package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PredictionChannel carries one message per completed prediction.
const PredictionChannel = "prediction:completed"

// PredictionEvent is published after a successful prediction. It carries the
// outcome only; submitted field values never leave the process.
type PredictionEvent struct {
	RequestID   string  `json:"request_id"`
	Assessment  string  `json:"assessment"`
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
	Timestamp   int64   `json:"timestamp"`
}

// PubSubClient wraps a go-redis client for prediction events.
type PubSubClient struct {
	rdb     *redis.Client
	channel string
}

// NewPubSubClient connects and pings redis.
func NewPubSubClient(addr, password string, db int) (*PubSubClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &PubSubClient{rdb: rdb, channel: PredictionChannel}, nil
}

// PublishPrediction sends the event to PredictionChannel.
func (c *PubSubClient) PublishPrediction(ctx context.Context, event *PredictionEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal prediction event: %w", err)
	}
	if err := c.rdb.Publish(ctx, c.channel, msg).Err(); err != nil {
		return fmt.Errorf("publish prediction event: %w", err)
	}
	return nil
}

// Subscribe returns a subscription to the prediction channel.
func (c *PubSubClient) Subscribe(ctx context.Context) *redis.PubSub {
	return c.rdb.Subscribe(ctx, c.channel)
}

func (c *PubSubClient) Close() error {
	return c.rdb.Close()
}
