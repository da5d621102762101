package app

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/BlockyAit/personal-list-site/internal/config"
)

var globalRedisClient *redis.Client

func MustConnectRedis() {
	cfg := config.Global().Redis

	globalRedisClient = redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err := globalRedisClient.Ping(ctx).Err()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("addr", cfg.Addr).
			Msg("failed to ping redis")
		panic(err)
	}
	globalLogger.Info().
		Str("addr", cfg.Addr).
		Msg("connected to redis")
}

func DisconnectRedis() {
	err := globalRedisClient.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close redis client")
		return
	}
	globalLogger.Info().Msg("disconnected from redis")
}
