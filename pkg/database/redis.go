package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when no URL is configured or the server does not answer,
// which turns off rate limiting and push notifications.
func ConnectRedis(url string) *redis.Client {
	if url == "" {
		log.Println("⚠️ REDIS_URL not set, running without Redis")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("⚠️ invalid REDIS_URL, running without Redis: %v", err)
		return nil
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis ping failed, running without Redis: %v", err)
		_ = client.Close()
		return nil
	}

	log.Println("✅ Connected to Redis")
	return client
}
