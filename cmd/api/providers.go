package main

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appreview "github.com/xiebiao/bookreview/internal/application/review"
	appuser "github.com/xiebiao/bookreview/internal/application/user"
	"github.com/xiebiao/bookreview/internal/domain/catalog"
	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/internal/infrastructure/config"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookreview/pkg/jwt"
	"github.com/xiebiao/bookreview/pkg/mq"
)

// ========================================
// Custom Providers
// ========================================
// 这些构造函数的参数需要从Config中提取，或者依赖可选组件（Redis、RabbitMQ）
// 可选组件未启用时返回Noop实现，上层代码不需要判断

// provideDB 创建数据库连接，cleanup关闭连接池
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := database.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideRedis 未启用Redis时返回nil客户端
func provideRedis(ctx context.Context, cfg *config.Config) (*goredis.Client, func(), error) {
	if !cfg.Redis.Enabled {
		slog.Info("redis disabled, sessions and catalog cache are off")
		return nil, func() {}, nil
	}

	client, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// provideSessionStore 未启用Redis时登出只能依赖Token自然过期
func provideSessionStore(client *goredis.Client) appuser.SessionStore {
	if client == nil {
		return appuser.NoopSessionStore{}
	}
	return redis.NewSessionStore(client)
}

// provideCatalogCache 未启用Redis时每次都查数据库
func provideCatalogCache(cfg *config.Config, client *goredis.Client) catalog.Cache {
	if client == nil {
		return catalog.NoopCache{}
	}
	return redis.NewCacheStore(client, cfg.Catalog.CacheTTL)
}

// provideEventPublisher 未启用消息队列时不发布书评事件
func provideEventPublisher(cfg *config.Config) (appreview.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return appreview.NoopPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		return nil, nil, err
	}
	return publisher, func() { _ = publisher.Close() }, nil
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideCredentialScheme plain（默认，兼容已有数据）或bcrypt
func provideCredentialScheme(cfg *config.Config) user.CredentialScheme {
	if cfg.Auth.CredentialScheme == config.CredentialBcrypt {
		return user.NewBcryptScheme(cfg.Auth.BcryptCost)
	}
	return user.NewPlainScheme()
}

// provideCatalogService 搜索条数来自配置
func provideCatalogService(repo catalog.Repository, cfg *config.Config) catalog.Service {
	return catalog.NewService(repo, cfg.Catalog.SearchLimit)
}
