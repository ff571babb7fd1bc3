package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/address-dedupe/app/models"
)

// MemoryVerdictCache cache in-memory dùng LRU có TTL
type MemoryVerdictCache struct {
	cache  *expirable.LRU[string, *models.Verdict]
	ttl    time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryVerdictCache tạo mới MemoryVerdictCache. size <= 0 nghĩa là không giới hạn.
func NewMemoryVerdictCache(size int, ttl time.Duration) *MemoryVerdictCache {
	return &MemoryVerdictCache{
		cache: expirable.NewLRU[string, *models.Verdict](size, nil, ttl),
		ttl:   ttl,
	}
}

// Get lấy verdict từ cache
func (mc *MemoryVerdictCache) Get(ctx context.Context, key string) (*models.Verdict, bool, error) {
	v, ok := mc.cache.Get(key)
	if !ok {
		mc.misses.Add(1)
		return nil, false, nil
	}
	mc.hits.Add(1)
	cp := *v
	return &cp, true, nil
}

// Set lưu verdict vào cache
func (mc *MemoryVerdictCache) Set(ctx context.Context, key string, verdict *models.Verdict) error {
	cp := *verdict
	mc.cache.Add(key, &cp)
	return nil
}

// Delete xóa verdict khỏi cache
func (mc *MemoryVerdictCache) Delete(ctx context.Context, key string) error {
	mc.cache.Remove(key)
	return nil
}

// Clear xóa toàn bộ cache
func (mc *MemoryVerdictCache) Clear(ctx context.Context) error {
	mc.cache.Purge()
	return nil
}

// Size lấy kích thước cache
func (mc *MemoryVerdictCache) Size() int {
	return mc.cache.Len()
}

// GetStats lấy thống kê cache
func (mc *MemoryVerdictCache) GetStats(ctx context.Context) (*CacheStats, error) {
	return newCacheStats(mc.hits.Load(), mc.misses.Load(), int64(mc.cache.Len())), nil
}

// Close không cần thiết cho in-memory cache
func (mc *MemoryVerdictCache) Close() error {
	return nil
}
