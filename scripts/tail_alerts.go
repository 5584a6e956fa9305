//go:build ignore

// tail_alerts печатает тревоги из Redis Stream, который пишет NOTIFIER=redis.
//
//	go run scripts/tail_alerts.go -redis localhost:6379
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/nuclralert-dashboard/internal/domain"
	redisRepo "github.com/nuclralert-dashboard/internal/repository/redis"
	"github.com/redis/go-redis/v9"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	stream := flag.String("stream", domain.StreamAlerts, "Alert stream name")
	from := flag.String("from", "$", "Start ID ($ - only new alerts, 0 - whole stream)")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	fmt.Printf("⏳ Waiting for alerts in %s...\n", *stream)

	lastID := *from
	for ctx.Err() == nil {
		messages, err := redisRepo.ReadStream(ctx, client, *stream, lastID, 10, 5*time.Second)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Read failed: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, msg := range messages {
			lastID = msg.ID

			var event domain.AlertEvent
			if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
				log.Printf("Skipping %s: %v", msg.ID, err)
				continue
			}
			fmt.Printf("[%s] %-9s %s (session %s)\n   %s\n",
				event.CreatedAt.Format(time.RFC3339), event.Level, event.Title, event.SessionID, event.Message)
		}
	}
}
