package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ConsumerConfig configures StartCommitConsumer.
type ConsumerConfig struct {
	URL     string
	Queue   string
	LogPath string // file receiving one line per commit, e.g. logs/commits.log
}

// StartCommitConsumer connects to RabbitMQ, declares the commit queue
// (durable) and appends every message to cfg.LogPath.  It reconnects with
// exponential backoff and returns only when ctx is cancelled.  Messages that
// cannot be handled are rejected without requeue so a poison message cannot
// spin the loop.
func StartCommitConsumer(ctx context.Context, cfg ConsumerConfig, log *zap.Logger) error {
	if cfg.Queue == "" {
		cfg.Queue = DefaultCommitQueue
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join("logs", "commits.log")
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("queue", cfg.Queue))

	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(cfg.URL)
		if err != nil {
			log.Warn("failed to dial broker", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, cfg, log)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, cfg ConsumerConfig, log *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn("set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	log.Info("consuming commit events")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			ev, err := HandleMessage(d.Body, cfg.LogPath)
			if err != nil {
				log.Error("handle message failed", zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			log.Info("commit recorded",
				zap.String("commit_id", ev.CommitID),
				zap.String("event_id", ev.EventID),
				zap.Int("seats", len(ev.Seats)))
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one SeatsCommittedEvent and appends its log line to
// path, creating the directory when needed.
func HandleMessage(body []byte, path string) (SeatsCommittedEvent, error) {
	var ev SeatsCommittedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return ev, fmt.Errorf("unmarshal: %w", err)
	}
	if ev.CommitID == "" || ev.EventID == "" {
		return ev, errors.New("commit event without commit_id or event_id")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ev, fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return ev, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return ev, fmt.Errorf("write log: %w", err)
	}
	return ev, nil
}

// FormatLine renders one human-readable commit log line.
func FormatLine(ev SeatsCommittedEvent) string {
	ids := make([]string, 0, len(ev.Seats))
	for _, s := range ev.Seats {
		ids = append(ids, s.SeatID)
	}
	return fmt.Sprintf("[%s] Seats committed | commit_id=%s | event_id=%s | customer_id=%s | total=%.2f | seats=[%s]\n",
		ev.CommittedAt, ev.CommitID, ev.EventID, ev.CustomerID, ev.Total, strings.Join(ids, ","))
}
