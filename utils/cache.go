// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"vcarpool/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	// CacheClient is the generic cache client (statistics, preference drafts).
	CacheClient *redis.Client
	// SessionClient is the dedicated client for dashboard sessions.
	SessionClient *redis.Client
)

// NewRedisClient builds a client for the configured Redis server on the given DB.
func NewRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func mustPing(client *redis.Client, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Fatal("Failed to connect to Redis", zap.String("client", name), zap.Error(err))
	}
}

// InitRedis initializes the cache and session clients and fails fast if Redis is unreachable.
func InitRedis() {
	CacheClient = NewRedisClient(config.AppConfig.RedisCacheDB)
	mustPing(CacheClient, "cache")

	SessionClient = NewRedisClient(config.AppConfig.RedisSessionDB)
	mustPing(SessionClient, "session")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		CacheClient = NewRedisClient(config.AppConfig.RedisCacheDB)
		mustPing(CacheClient, "cache")
	}
	return CacheClient
}

// GetSessionClient returns the Redis client for dashboard sessions.
func GetSessionClient() *redis.Client {
	if SessionClient == nil {
		SessionClient = NewRedisClient(config.AppConfig.RedisSessionDB)
		mustPing(SessionClient, "session")
	}
	return SessionClient
}

// CloseRedis releases both clients.
func CloseRedis() {
	for _, client := range []*redis.Client{CacheClient, SessionClient} {
		if client != nil {
			_ = client.Close()
		}
	}
}
