package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/platform/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

const teacherKeyPrefix = "teacher:"

func NewRedisClient(addr, password string, db int, log *logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Error("Failed to connect to Redis", zap.String("address", addr), zap.Error(err))
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	log.Info("Successfully connected to Redis", zap.String("address", addr))
	return rdb, nil
}

// TeacherCache stores public teacher profiles as JSON.
type TeacherCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

func NewTeacherCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *TeacherCache {
	return &TeacherCache{client: client, ttl: ttl, logger: log.Named("TeacherCache")}
}

func (c *TeacherCache) Get(ctx context.Context, id string) (*entity.TeacherProfile, error) {
	raw, err := c.client.Get(ctx, teacherKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("TeacherCache.Get %s: %w", id, err)
	}
	var profile entity.TeacherProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		c.logger.Warn("Dropping undecodable cache entry", zap.String("teacherID", id), zap.Error(err))
		_ = c.client.Del(ctx, teacherKeyPrefix+id).Err()
		return nil, ErrCacheMiss
	}
	return &profile, nil
}

func (c *TeacherCache) Set(ctx context.Context, profile *entity.TeacherProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("TeacherCache.Set marshal: %w", err)
	}
	if err := c.client.Set(ctx, teacherKeyPrefix+profile.ID, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("TeacherCache.Set %s: %w", profile.ID, err)
	}
	return nil
}

func (c *TeacherCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, teacherKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("TeacherCache.Delete %s: %w", id, err)
	}
	return nil
}
