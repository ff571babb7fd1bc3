package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/address-dedupe/app/models"
)

const (
	redisKeyPrefix = "addr_dedupe:"
	redisScanCount = 500
)

// RedisVerdictCache cache service sử dụng Redis, chia sẻ giữa các instance
type RedisVerdictCache struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	// Stats
	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisVerdictCache tạo mới Redis cache service và kiểm tra kết nối
func NewRedisVerdictCache(redisURL string, ttl time.Duration, logger *zap.Logger) (*RedisVerdictCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("lỗi parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("không thể kết nối Redis: %w", err)
	}

	return NewRedisVerdictCacheFromClient(client, ttl, logger), nil
}

// NewRedisVerdictCacheFromClient dùng một client đã có. ttl <= 0 dùng mặc định 24h.
func NewRedisVerdictCacheFromClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisVerdictCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour // TTL mặc định 24h
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisVerdictCache{
		client: client,
		logger: logger,
		prefix: redisKeyPrefix,
		ttl:    ttl,
	}
}

func (rc *RedisVerdictCache) key(k string) string { return rc.prefix + k }

// Get lấy verdict từ cache
func (rc *RedisVerdictCache) Get(ctx context.Context, key string) (*models.Verdict, bool, error) {
	cacheKey := rc.key(key)

	val, err := rc.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		rc.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		rc.logger.Error("Lỗi get từ Redis", zap.Error(err), zap.String("key", cacheKey))
		return nil, false, err
	}

	return rc.decode(key, val)
}

func (rc *RedisVerdictCache) decode(key string, val []byte) (*models.Verdict, bool, error) {
	var verdict models.Verdict
	if err := json.Unmarshal(val, &verdict); err != nil {
		rc.logger.Error("Lỗi unmarshal cache data", zap.Error(err))
		return nil, false, err
	}

	rc.hits.Add(1)
	rc.logger.Debug("Redis cache hit", zap.String("key", key))
	return &verdict, true, nil
}

// Set lưu verdict vào cache
func (rc *RedisVerdictCache) Set(ctx context.Context, key string, verdict *models.Verdict) error {
	cacheKey := rc.key(key)

	data, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("lỗi marshal cache data: %w", err)
	}

	if err := rc.client.Set(ctx, cacheKey, data, rc.ttl).Err(); err != nil {
		rc.logger.Error("Lỗi set vào Redis", zap.Error(err), zap.String("key", cacheKey))
		return err
	}
	return nil
}

// Delete xóa key khỏi cache
func (rc *RedisVerdictCache) Delete(ctx context.Context, key string) error {
	cacheKey := rc.key(key)

	if err := rc.client.Del(ctx, cacheKey).Err(); err != nil {
		rc.logger.Error("Lỗi delete từ Redis", zap.Error(err), zap.String("key", cacheKey))
		return err
	}
	return nil
}

// scanKeys liệt kê các key có prefix, dùng SCAN thay vì KEYS để không chặn Redis
func (rc *RedisVerdictCache) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := rc.client.Scan(ctx, 0, rc.prefix+"*", redisScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("lỗi lấy danh sách keys: %w", err)
	}
	return keys, nil
}

// Clear xóa toàn bộ cache có prefix của service
func (rc *RedisVerdictCache) Clear(ctx context.Context) error {
	keys, err := rc.scanKeys(ctx)
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		if err := rc.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("lỗi xóa keys: %w", err)
		}
	}

	rc.logger.Info("Đã clear Redis cache", zap.Int("keys_deleted", len(keys)))
	return nil
}

// GetStats lấy thống kê cache
func (rc *RedisVerdictCache) GetStats(ctx context.Context) (*CacheStats, error) {
	items := int64(0)
	if keys, err := rc.scanKeys(ctx); err != nil {
		rc.logger.Warn("Không thể đếm Redis keys", zap.Error(err))
	} else {
		items = int64(len(keys))
	}
	return newCacheStats(rc.hits.Load(), rc.misses.Load(), items), nil
}

// Close đóng kết nối Redis
func (rc *RedisVerdictCache) Close() error {
	return rc.client.Close()
}
