package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/pokeduel/internal/config"
	"github.com/KirkDiggler/pokeduel/internal/errors"
	"github.com/KirkDiggler/pokeduel/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/pokeduel/internal/redis"
	"github.com/KirkDiggler/pokeduel/internal/repositories/duels"
	"github.com/KirkDiggler/pokeduel/internal/repositories/userconfig"
)

// stores bundles the repositories for the configured backend. redis is nil
// for the memory backend.
type stores struct {
	userConfig userconfig.Repository
	duels      duels.Repository
	redis      redisclient.Client
}

func openStores(ctx context.Context, c *config.Config) (*stores, error) {
	clk := clock.New()
	if c.Store.Backend != config.StoreRedis {
		slog.Info("Using in-memory stores; parties and duels are lost on restart")
		return &stores{
			userConfig: userconfig.NewInMemory(c.UserDefaults()),
			duels:      duels.NewInMemory(clk),
		}, nil
	}

	client, err := redisclient.NewClient(c.Redis.Addr, &redisclient.Options{
		Password:    c.Redis.Password,
		DB:          c.Redis.DB,
		DialTimeout: 5 * time.Second,
		UseTLS:      c.Redis.UseTLS,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create redis client")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisclient.Ping(pingCtx, client); err != nil {
		_ = client.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to reach redis")
	}

	userConfig, err := userconfig.NewRedis(&userconfig.RedisConfig{Client: client, Defaults: c.UserDefaults()})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	duelRepo, err := duels.NewRedis(&duels.RedisConfig{Client: client, Clock: clk, TTL: c.Store.DuelTTL})
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	slog.Info("Using redis stores", "addr", c.Redis.Addr, "db", c.Redis.DB)
	return &stores{userConfig: userConfig, duels: duelRepo, redis: client}, nil
}

func (s *stores) Close() {
	if s.redis == nil {
		return
	}
	if err := s.redis.Close(); err != nil {
		slog.Warn("Failed to close redis client", "error", err)
	}
}
