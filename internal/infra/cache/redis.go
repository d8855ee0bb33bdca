// Package cache contains the Redis-backed implementation of the token store.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"clouddoctor/config"
)

const redisConnectTimeout = 5 * time.Second

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the Redis client used as the session token cache.
func New(params Params) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:         params.Config.Redis.Addr(),
		Password:     params.Config.Redis.Password,
		DB:           params.Config.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	if params.Config.Redis.PoolSize > 0 {
		opts.PoolSize = params.Config.Redis.PoolSize
	}

	client := redis.NewClient(opts)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, redisConnectTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}

			params.Logger.Info("Connected to Redis", slog.String("addr", opts.Addr))

			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}
