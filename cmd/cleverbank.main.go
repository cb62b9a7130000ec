package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"cleverbank/internal/config"
	"cleverbank/internal/server"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment")
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, logger); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server exited", zap.Error(err))
	}
}
