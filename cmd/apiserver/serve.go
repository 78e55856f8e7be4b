package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"cardia/riskapi/internal/app/bootstrap"
	"cardia/riskapi/internal/app/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load assets and start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	app, cleanup, err := bootstrap.InitializeApp(ctx, cfg, log)
	if err != nil {
		log.Errorf(ctx, "failed to initialize app: %v", err)
		return err
	}
	defer cleanup()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Infof(ctx, "starting HTTP server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Infof(ctx, "received %s, shutting down", sig)
		return gracefulShutdown(server, log, cfg.Server.ShutdownTimeout)
	case err := <-serverErrChan:
		log.Errorf(ctx, "HTTP server error: %v", err)
		return err
	}
}

func gracefulShutdown(server *http.Server, log logger.Logger, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf(ctx, "HTTP server shutdown error: %v", err)
		return err
	}
	log.Infof(ctx, "HTTP server stopped gracefully")
	return nil
}
