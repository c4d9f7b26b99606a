package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"prompt-server/internal/interfaces"
	"prompt-server/internal/models"
)

// Compile-time check to ensure redisTokenRepository implements TokenRepository
var _ interfaces.TokenRepository = (*redisTokenRepository)(nil)

const tokenKeyPrefix = "token_uuid:"

type redisTokenRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisTokenRepository creates a new Redis-backed TokenRepository.
func NewRedisTokenRepository(client *redis.Client, logger *zap.Logger) interfaces.TokenRepository {
	return &redisTokenRepository{
		client: client,
		logger: logger.Named("RedisTokenRepo"),
	}
}

// SetToken stores two key-value pairs for the issued pair:
// token_uuid:{AccessUUID} -> UserID (access TTL) and
// token_uuid:{RefreshUUID} -> UserID (refresh TTL).
func (r *redisTokenRepository) SetToken(ctx context.Context, userID uuid.UUID, td *models.TokenDetails) error {
	now := time.Now()
	accessTTL := time.Unix(td.AtExpires, 0).Sub(now)
	refreshTTL := time.Unix(td.RtExpires, 0).Sub(now)
	userIDStr := userID.String()

	pipe := r.client.Pipeline()
	pipe.Set(ctx, tokenKeyPrefix+td.AccessUUID, userIDStr, accessTTL)
	pipe.Set(ctx, tokenKeyPrefix+td.RefreshUUID, userIDStr, refreshTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to set token details in redis", zap.Error(err), zap.String("userID", userIDStr))
		return fmt.Errorf("failed to set token details in redis: %w", err)
	}

	r.logger.Debug("Tokens stored in redis",
		zap.String("userID", userIDStr),
		zap.Duration("accessTTL", accessTTL),
		zap.Duration("refreshTTL", refreshTTL),
	)
	return nil
}

func (r *redisTokenRepository) GetUserID(ctx context.Context, tokenUUID string) (uuid.UUID, error) {
	val, err := r.client.Get(ctx, tokenKeyPrefix+tokenUUID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, models.ErrTokenNotFound
		}
		r.logger.Error("Failed to get token from redis", zap.Error(err), zap.String("tokenUUID", tokenUUID))
		return uuid.Nil, fmt.Errorf("failed to get token from redis: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		r.logger.Error("Malformed user id stored under token key", zap.Error(err), zap.String("tokenUUID", tokenUUID))
		return uuid.Nil, fmt.Errorf("malformed user id in token storage: %w", err)
	}
	return userID, nil
}

func (r *redisTokenRepository) DeleteTokens(ctx context.Context, uuids ...string) (int64, error) {
	if len(uuids) == 0 {
		return 0, nil
	}
	keys := make([]string, 0, len(uuids))
	for _, u := range uuids {
		if u != "" {
			keys = append(keys, tokenKeyPrefix+u)
		}
	}
	deleted, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		r.logger.Error("Failed to delete tokens from redis", zap.Error(err))
		return 0, fmt.Errorf("failed to delete tokens from redis: %w", err)
	}
	r.logger.Debug("Tokens deleted from redis", zap.Int64("deleted", deleted))
	return deleted, nil
}
