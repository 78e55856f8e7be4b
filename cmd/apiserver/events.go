package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cardia/riskapi/internal/app/consumer"
	"cardia/riskapi/internal/app/infra/persistence/redis"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print prediction events published by running servers",
	RunE:  runEvents,
}

func runEvents(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Redis.Addr == "" {
		return errors.New("redis.addr is not configured")
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	client, err := redis.NewPubSubClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	c := consumer.NewPredictionConsumer(client, func(_ context.Context, e *redis.PredictionEvent) error {
		_, err := fmt.Fprintf(out, "%d %-10s %-8s %.4f %s\n", e.Timestamp, e.Assessment, e.Label, e.Probability, e.RequestID)
		return err
	}, log)

	if err := c.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
