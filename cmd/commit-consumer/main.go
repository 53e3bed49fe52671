// Command commit-consumer appends one line per committed cart to a log file.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/config"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/logger"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/queue"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConsumerConfig()
	log := logger.Must(cfg.Env, "commit-consumer")
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting commit consumer", zap.String("queue", cfg.Queue), zap.String("log_path", cfg.LogPath))
	err := queue.StartCommitConsumer(ctx, queue.ConsumerConfig{
		URL:     cfg.RabbitMQURL,
		Queue:   cfg.Queue,
		LogPath: cfg.LogPath,
	}, log)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("consumer stopped", zap.Error(err))
	}
	log.Info("consumer stopped")
}
