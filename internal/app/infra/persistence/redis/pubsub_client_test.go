package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishPrediction(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewPubSubClient(srv.Addr(), "", 0)
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := client.Subscribe(ctx)
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	event := &PredictionEvent{
		RequestID:   "req-1",
		Assessment:  "heart",
		Label:       "Positive",
		Probability: 0.73,
		Timestamp:   1700000000,
	}
	require.NoError(t, client.PublishPrediction(ctx, event))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, PredictionChannel, msg.Channel)

	var got PredictionEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	assert.Equal(t, *event, got)
}

func TestNewPubSubClientUnreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := NewPubSubClient(addr, "", 0)
	assert.Error(t, err)
}
