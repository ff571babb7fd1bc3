package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/address-dedupe/app/models"
	"github.com/address-dedupe/internal/dedupe"
)

// ErrParserUnavailable trả về khi không có address parser (backend rules).
var ErrParserUnavailable = errors.New("address parser unavailable")

// AddressParser tách địa chỉ thô thành các thành phần có nhãn.
type AddressParser interface {
	ParseAddress(raw string) (dedupe.ComponentSet, error)
}

// ComparisonResult kết quả một lần so sánh
type ComparisonResult struct {
	Status   dedupe.DuplicateStatus
	CacheHit bool
}

// HealthStatus trạng thái của service
type HealthStatus struct {
	Ready   bool          `json:"ready"`
	Backend string        `json:"backend"`
	Uptime  time.Duration `json:"uptime"`
	Cache   *CacheStats   `json:"cache,omitempty"`
	Parser  bool          `json:"parser"`
}

// DedupeService service xử lý logic phân loại trùng lặp, có cache kết quả
type DedupeService struct {
	engine    *dedupe.Engine
	cache     IVerdictCache
	parser    AddressParser
	opts      dedupe.Options
	backend   string
	logger    *zap.Logger
	startTime time.Time
}

// NewDedupeService tạo mới DedupeService. cache và parser có thể nil.
func NewDedupeService(engine *dedupe.Engine, cache IVerdictCache, parser AddressParser, opts dedupe.Options, backend string, logger *zap.Logger) *DedupeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DedupeService{
		engine:    engine,
		cache:     cache,
		parser:    parser,
		opts:      opts,
		backend:   backend,
		logger:    logger,
		startTime: time.Now(),
	}
}

// options áp dụng ngôn ngữ của request lên cấu hình mặc định
func (s *DedupeService) options(languages []string) (dedupe.Options, dedupe.LanguageSet) {
	langs := dedupe.NewLanguageSet(languages...)
	if langs.Empty() {
		return s.opts, s.opts.Languages()
	}
	return s.opts.With(dedupe.WithLanguages(langs...)), langs
}

// cached tra cache trước, tính và lưu khi miss. Lỗi cache chỉ được log.
func (s *DedupeService) cached(ctx context.Context, kind, key string, langs dedupe.LanguageSet, compute func() (dedupe.DuplicateStatus, error)) (*ComparisonResult, error) {
	// Sau Teardown mọi lời gọi phải lỗi, kể cả khi cache còn dữ liệu
	if !s.engine.Ready() {
		return nil, dedupe.ErrUninitialized
	}

	if s.cache != nil {
		verdict, found, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("Lỗi đọc cache", zap.Error(err), zap.String("kind", kind))
		} else if found {
			return &ComparisonResult{Status: verdict.Status, CacheHit: true}, nil
		}
	}

	status, err := compute()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, models.NewVerdict(kind, status, langs)); err != nil {
			s.logger.Warn("Lỗi ghi cache", zap.Error(err), zap.String("kind", kind))
		}
	}
	return &ComparisonResult{Status: status}, nil
}

// CompareField so sánh hai giá trị cùng loại field
func (s *DedupeService) CompareField(ctx context.Context, ft dedupe.FieldType, value1, value2 string, languages []string) (*ComparisonResult, error) {
	opts, langs := s.options(languages)
	key := VerdictKey(ft.String(), langs, value1, value2)
	return s.cached(ctx, ft.String(), key, langs, func() (dedupe.DuplicateStatus, error) {
		return s.engine.CompareField(ft, value1, value2, opts)
	})
}

// CompareToponym so sánh hai toponym dạng nhãn/giá trị song song
func (s *DedupeService) CompareToponym(ctx context.Context, labels1, values1, labels2, values2, languages []string) (*ComparisonResult, error) {
	c1, err := dedupe.NewComponentSet(labels1, values1)
	if err != nil {
		return nil, fmt.Errorf("labels1/values1: %w", err)
	}
	c2, err := dedupe.NewComponentSet(labels2, values2)
	if err != nil {
		return nil, fmt.Errorf("labels2/values2: %w", err)
	}
	return s.compareComponents(ctx, c1, c2, languages)
}

// CompareAddresses tách hai địa chỉ thô bằng parser rồi so sánh như toponym
func (s *DedupeService) CompareAddresses(ctx context.Context, address1, address2 string, languages []string) (*ComparisonResult, error) {
	if s.parser == nil {
		return nil, ErrParserUnavailable
	}
	c1, err := s.parser.ParseAddress(address1)
	if err != nil {
		return nil, fmt.Errorf("address1: %w", err)
	}
	c2, err := s.parser.ParseAddress(address2)
	if err != nil {
		return nil, fmt.Errorf("address2: %w", err)
	}
	return s.compareComponents(ctx, c1, c2, languages)
}

func (s *DedupeService) compareComponents(ctx context.Context, c1, c2 dedupe.ComponentSet, languages []string) (*ComparisonResult, error) {
	if err := c1.Validate(); err != nil {
		return nil, fmt.Errorf("components1: %w", err)
	}
	if err := c2.Validate(); err != nil {
		return nil, fmt.Errorf("components2: %w", err)
	}
	opts, langs := s.options(languages)
	key := VerdictKey(models.KindToponym, langs, componentKey(c1), componentKey(c2))
	return s.cached(ctx, models.KindToponym, key, langs, func() (dedupe.DuplicateStatus, error) {
		return s.engine.CompareToponym(c1, c2, opts)
	})
}

// PlaceLanguages đề xuất ngôn ngữ cho một toponym
func (s *DedupeService) PlaceLanguages(ctx context.Context, labels, values []string) (dedupe.LanguageSet, error) {
	if !s.engine.Ready() {
		return nil, dedupe.ErrUninitialized
	}
	return s.engine.PlaceLanguages(labels, values)
}

// Health trả về trạng thái service
func (s *DedupeService) Health(ctx context.Context) HealthStatus {
	h := HealthStatus{
		Ready:   s.engine.Ready(),
		Backend: s.backend,
		Uptime:  time.Since(s.startTime),
		Parser:  s.parser != nil,
	}
	if s.cache != nil {
		stats, err := s.cache.GetStats(ctx)
		if err != nil {
			s.logger.Warn("Không thể lấy cache stats", zap.Error(err))
		}
		h.Cache = stats
	}
	return h
}

// Ready cho biết expander đã sẵn sàng chưa
func (s *DedupeService) Ready() bool { return s.engine.Ready() }
