package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/autolot/dealership-backend/config"
	"github.com/autolot/dealership-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

const revokedKeyPrefix = "revoked_token:"

// Init opens the Redis connection and verifies it with a ping.
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established", nil)
	return nil
}

// GetClient returns the shared Redis client.
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection.
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// BlacklistToken marks an access token as revoked until its natural expiry,
// after which the key falls out on its own.
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	logger.Debug("Revoking access token", map[string]interface{}{
		"expiry": expiry.String(),
	})

	if err := client.Set(ctx, revokedKeyPrefix+token, "1", expiry).Err(); err != nil {
		logger.Error("Failed to revoke token", err, nil)
		return err
	}
	return nil
}

// IsTokenBlacklisted reports whether a token has been revoked.
func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	err := client.Get(ctx, revokedKeyPrefix+token).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token revocation", err, nil)
		return false, err
	}
	return true, nil
}
