package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docurequest/internal/db"
	"docurequest/internal/store"
	"docurequest/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func loadConfig(prefix string) (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process(prefix, c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.ServerPort == 0 {
		c.ServerPort = 8080
	}

	if c.ReadTimeoutSec == 0 {
		c.ReadTimeoutSec = 10
	}

	// uploads are read in full before the response is written
	if c.WriteTimeoutSec == 0 {
		c.WriteTimeoutSec = 15
	}

	if c.GatewayTimeoutSec == 0 {
		c.GatewayTimeoutSec = 30
	}

	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 5 << 20
	}

	c.DraftStore = strings.ToLower(strings.TrimSpace(c.DraftStore))
	if c.DraftStore == "" {
		c.DraftStore = "memory"
	}

	if c.DraftStore == "postgres" && c.DatabaseURL == "" {
		return nil, fmt.Errorf("set DATABASE_URL to keep drafts in postgres")
	}

	return c, nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}

// connectPostgres returns a nil pool when no database is configured.
func connectPostgres(ctx context.Context, config *types.Config) (*pgxpool.Pool, error) {
	if config.DatabaseURL == "" {
		return nil, nil
	}

	return db.Connect(ctx, config)
}

func newDraftStore(ctx context.Context, config *types.Config, pool *pgxpool.Pool, logger *logrus.Logger) (store.DraftStore, error) {
	switch config.DraftStore {
	case "memory":
		logger.Warn("drafts are kept in memory and will be lost on restart")
		return store.NewMemoryDraftStore(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})

		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		ttl := time.Duration(config.SessionMaxAgeSec) * time.Second
		return store.NewRedisDraftStore(client, config.RedisNamespace, ttl), nil
	case "postgres":
		if pool == nil {
			return nil, fmt.Errorf("postgres draft store requires a database connection")
		}
		return store.NewDraftRepository(pool), nil
	default:
		return nil, fmt.Errorf("unknown draft store %q, expected memory, redis or postgres", config.DraftStore)
	}
}
