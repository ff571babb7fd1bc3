package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/address-dedupe/app/models"
)

// HybridVerdictCache cache kết hợp memory (L1) + Redis (L2)
type HybridVerdictCache struct {
	local  IVerdictCache // L1 cache - trong process
	shared IVerdictCache // L2 cache - dùng chung giữa các instance
	logger *zap.Logger
}

// NewHybridVerdictCache tạo mới hybrid cache service
func NewHybridVerdictCache(local, shared IVerdictCache, logger *zap.Logger) *HybridVerdictCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HybridVerdictCache{local: local, shared: shared, logger: logger}
}

// Get lấy verdict từ L1 trước, L2 sau; hit ở L2 được đồng bộ về L1
func (hc *HybridVerdictCache) Get(ctx context.Context, key string) (*models.Verdict, bool, error) {
	verdict, found, err := hc.local.Get(ctx, key)
	if err != nil {
		hc.logger.Warn("Lỗi L1 cache, fallback L2", zap.Error(err))
	} else if found {
		return verdict, true, nil
	}

	verdict, found, err = hc.shared.Get(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}

	if err := hc.local.Set(ctx, key, verdict); err != nil {
		hc.logger.Warn("Lỗi sync L2->L1", zap.Error(err), zap.String("key", key))
	}
	return verdict, true, nil
}

// both chạy op trên cả 2 cache song song và gộp lỗi
func (hc *HybridVerdictCache) both(op func(IVerdictCache) error) error {
	errCh := make(chan error, 2)
	for _, c := range []IVerdictCache{hc.local, hc.shared} {
		go func(c IVerdictCache) { errCh <- op(c) }(c)
	}
	return errors.Join(<-errCh, <-errCh)
}

// Set lưu verdict vào cả 2 cache
func (hc *HybridVerdictCache) Set(ctx context.Context, key string, verdict *models.Verdict) error {
	return hc.both(func(c IVerdictCache) error { return c.Set(ctx, key, verdict) })
}

// Delete xóa key khỏi cả 2 cache
func (hc *HybridVerdictCache) Delete(ctx context.Context, key string) error {
	return hc.both(func(c IVerdictCache) error { return c.Delete(ctx, key) })
}

// Clear xóa toàn bộ cả 2 cache
func (hc *HybridVerdictCache) Clear(ctx context.Context) error {
	if err := hc.both(func(c IVerdictCache) error { return c.Clear(ctx) }); err != nil {
		return err
	}
	hc.logger.Info("Cleared hybrid cache (L1 + L2)")
	return nil
}

// GetStats kết hợp thống kê từ cả 2 cache; số item lấy theo L2
func (hc *HybridVerdictCache) GetStats(ctx context.Context) (*CacheStats, error) {
	localStats, localErr := hc.local.GetStats(ctx)
	sharedStats, sharedErr := hc.shared.GetStats(ctx)

	switch {
	case localErr != nil && sharedErr != nil:
		return nil, errors.Join(localErr, sharedErr)
	case sharedErr != nil:
		return localStats, nil
	case localErr != nil:
		return sharedStats, nil
	}

	// Miss ở L1 nhưng hit ở L2 vẫn là một lần hit
	hits := localStats.TotalHits + sharedStats.TotalHits
	return newCacheStats(hits, sharedStats.TotalMiss, sharedStats.TotalItems), nil
}

// Close đóng kết nối cả 2 cache
func (hc *HybridVerdictCache) Close() error {
	return hc.both(func(c IVerdictCache) error { return c.Close() })
}
