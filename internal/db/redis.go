package db

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis initializes and returns a Redis client
func InitRedis() (*redis.Client, error) {
	opts, err := redisOptions()
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// redisOptions builds client options from REDIS_URL, or from the individual
// REDIS_* variables when no URL is set
func redisOptions() (*redis.Options, error) {
	var opts *redis.Options

	if url := os.Getenv("REDIS_URL"); url != "" {
		parsed, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL value: %w", err)
		}
		opts = parsed
	} else {
		host := getEnvOrDefault("REDIS_HOST", "localhost")
		port := getEnvOrDefault("REDIS_PORT", "6379")
		dbStr := getEnvOrDefault("REDIS_DB", "0")

		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
		}

		opts = &redis.Options{
			Addr:     fmt.Sprintf("%s:%s", host, port),
			Password: os.Getenv("REDIS_PASSWORD"), // No default for password
			DB:       db,
		}
	}

	opts.DialTimeout = 10 * time.Second
	opts.ReadTimeout = 30 * time.Second
	opts.WriteTimeout = 30 * time.Second
	opts.PoolSize = 10
	opts.PoolTimeout = 30 * time.Second
	opts.MaxRetries = 3

	return opts, nil
}
