package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/address-dedupe/app/models"
	"github.com/address-dedupe/internal/dedupe"
)

// CacheStats thống kê cache
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

func newCacheStats(hits, misses, items int64) *CacheStats {
	stats := &CacheStats{TotalHits: hits, TotalMiss: misses, TotalItems: items}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats
}

// IVerdictCache interface định nghĩa các method cần thiết cho cache kết quả
type IVerdictCache interface {
	// Get lấy verdict từ cache
	Get(ctx context.Context, key string) (*models.Verdict, bool, error)

	// Set lưu verdict vào cache
	Set(ctx context.Context, key string, verdict *models.Verdict) error

	// Delete xóa verdict khỏi cache
	Delete(ctx context.Context, key string) error

	// Clear xóa tất cả cache
	Clear(ctx context.Context) error

	// GetStats lấy thống kê cache
	GetStats(ctx context.Context) (*CacheStats, error)

	// Close đóng kết nối (nếu cần)
	Close() error
}

// VerdictKey tạo cache key cho một cặp giá trị. Cặp được sắp xếp trước khi
// hash nên (a, b) và (b, a) dùng chung một key.
func VerdictKey(kind string, languages dedupe.LanguageSet, a, b string) string {
	if b < a {
		a, b = b, a
	}
	h := sha256.New()
	for _, part := range []string{kind, languages.Key(), a, b} {
		h.Write([]byte(part))
		h.Write([]byte{0x1f})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// componentKey serializes a component set independent of label order.
func componentKey(cs dedupe.ComponentSet) string {
	pairs := make([]string, 0, len(cs))
	for _, lv := range cs {
		pairs = append(pairs, lv.Label+"="+lv.Value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "\x1e")
}
