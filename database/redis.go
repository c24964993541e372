package database

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func ConnectRedis(addr string) {
	RDB = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if _, err := RDB.Ping(context.Background()).Result(); err != nil {
		slog.Error("❌ Failed to connect to Redis", "addr", addr, "error", err)
		os.Exit(1)
	}

	slog.Info("✅ Connected to Redis", "addr", addr)
}
