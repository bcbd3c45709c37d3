package database

import (
	"context"
	"fmt"
	"time"

	"github.com/GaganMittal847/Companio/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultDialTimeout = 5 * time.Second

func redisOptions(cfg config.RedisCfg) *redis.Options {
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dial,
		ReadTimeout:  dial,
		WriteTimeout: dial,
		PoolSize:     cfg.PoolSize,
	}
}

// ConnectRedis returns a client that has answered PING within the dial
// timeout.
func ConnectRedis(cfg config.RedisCfg, logger *zap.SugaredLogger) (*redis.Client, error) {
	opts := redisOptions(cfg)
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Errorw("Redis ping failed", "addr", cfg.Addr, "db", cfg.DB, "error", err)
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	logger.Infow("Redis connected", "addr", cfg.Addr, "db", cfg.DB, "poolSize", opts.PoolSize)
	return rdb, nil
}
