package app

import (
	"context"

	"oauth-userdata/internal/config"
	"oauth-userdata/internal/db"
	"oauth-userdata/internal/logger"
	"oauth-userdata/internal/profilecache"
	"oauth-userdata/internal/redis"
	"oauth-userdata/internal/session"
)

type Infra struct {
	DB       *db.DB
	Redis    *redis.Client
	Sessions session.Store
	Profiles profilecache.Cache
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	database, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	infra := &Infra{DB: database}

	if cfg.RedisAddr == "" {
		logger.Warn("redis not configured, using in-process session and profile stores", nil)
		infra.Sessions = session.NewMemoryStore()
		infra.Profiles = profilecache.NewMemoryCache(cfg.ProfileCacheTTL)
		return infra, nil
	}

	redisClient, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		_ = database.Close()
		return nil, err
	}

	logger.Info("redis ready", map[string]any{"addr": cfg.RedisAddr})

	infra.Redis = redisClient
	infra.Sessions = session.NewRedisStore(redisClient.Client)
	infra.Profiles = profilecache.NewRedisCache(redisClient.Client, cfg.ProfileCacheTTL)
	return infra, nil
}

func (i *Infra) Close() error {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	return i.DB.Close()
}
