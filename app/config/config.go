package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/address-dedupe/internal/dedupe"
)

// Expander backends.
const (
	ExpanderRules     = "rules"
	ExpanderLibpostal = "libpostal"
)

// Verdict cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheHybrid = "hybrid"
)

type ToponymCfg struct {
	RequiredLabels    []string `yaml:"required_labels" json:"required_labels"`
	UnmatchedRequired string   `yaml:"unmatched_required" json:"unmatched_required"`
	UnmatchedOptional string   `yaml:"unmatched_optional" json:"unmatched_optional"`
}

type ExpanderCfg struct {
	Backend       string `yaml:"backend" json:"backend"`
	MaxExpansions int    `yaml:"max_expansions" json:"max_expansions"`
	CacheSize     int    `yaml:"cache_size" json:"cache_size"`
}

type CacheCfg struct {
	Backend string        `yaml:"backend" json:"backend"`
	Size    int           `yaml:"size" json:"size"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// DedupeCfg là chính sách phân loại trùng lặp đọc từ config/dedupe.yaml.
type DedupeCfg struct {
	Languages  []string                     `yaml:"languages" json:"languages"`
	Thresholds map[string]dedupe.Thresholds `yaml:"thresholds" json:"thresholds"`
	Weights    dedupe.Weights               `yaml:"weights" json:"weights"`
	Toponym    ToponymCfg                   `yaml:"toponym" json:"toponym"`
	Expander   ExpanderCfg                  `yaml:"expander" json:"expander"`
	Cache      CacheCfg                     `yaml:"cache" json:"cache"`
}

// Default trả về cấu hình mặc định, tương đương dedupe.DefaultOptions().
func Default() DedupeCfg {
	base := dedupe.DefaultOptions()
	thresholds := make(map[string]dedupe.Thresholds)
	for _, ft := range dedupe.FieldTypes() {
		thresholds[ft.String()] = base.Thresholds(ft)
	}
	required, optional := base.UnmatchedPenalties()
	return DedupeCfg{
		Thresholds: thresholds,
		Weights:    base.Weights(),
		Toponym: ToponymCfg{
			RequiredLabels:    base.RequiredLabels(),
			UnmatchedRequired: required.String(),
			UnmatchedOptional: optional.String(),
		},
		Expander: ExpanderCfg{
			Backend:       ExpanderRules,
			MaxExpansions: base.MaxExpansions(),
			CacheSize:     10000,
		},
		Cache: CacheCfg{
			Backend: CacheMemory,
			Size:    10000,
			TTL:     24 * time.Hour,
		},
	}
}

// Load đọc file YAML đè lên cấu hình mặc định, sau đó áp dụng ENV overrides.
func Load(path string) (*DedupeCfg, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse giống Load nhưng nhận nội dung YAML trực tiếp.
func Parse(data []byte) (*DedupeCfg, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse dedupe config: %w", err)
	}
	// ENV overrides
	if v := os.Getenv("DEDUPE_EXPANDER"); v != "" {
		c.Expander.Backend = v
	}
	if v := os.Getenv("DEDUPE_CACHE"); v != "" {
		c.Cache.Backend = v
	}
	c.Expander.Backend = strings.ToLower(strings.TrimSpace(c.Expander.Backend))
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate kiểm tra backend và chính sách.
func (c DedupeCfg) Validate() error {
	switch c.Expander.Backend {
	case ExpanderRules, ExpanderLibpostal:
	default:
		return fmt.Errorf("%w: unknown expander backend %q", dedupe.ErrInvalidOptions, c.Expander.Backend)
	}
	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis, CacheHybrid:
	default:
		return fmt.Errorf("%w: unknown cache backend %q", dedupe.ErrInvalidOptions, c.Cache.Backend)
	}
	_, err := c.Options()
	return err
}

// Options chuyển cấu hình thành dedupe.Options bất biến, đã được kiểm tra.
func (c DedupeCfg) Options() (dedupe.Options, error) {
	opts := []dedupe.Option{
		dedupe.WithLanguages(c.Languages...),
		dedupe.WithWeights(c.Weights),
	}
	for name, t := range c.Thresholds {
		ft, err := dedupe.ParseFieldType(name)
		if err != nil {
			return dedupe.Options{}, fmt.Errorf("thresholds: %w", err)
		}
		opts = append(opts, dedupe.WithThresholds(ft, t.Review, t.Likely))
	}
	if c.Toponym.RequiredLabels != nil {
		opts = append(opts, dedupe.WithRequiredLabels(c.Toponym.RequiredLabels...))
	}
	required, err := dedupe.ParseStatus(c.Toponym.UnmatchedRequired)
	if err != nil {
		return dedupe.Options{}, fmt.Errorf("toponym.unmatched_required: %w", err)
	}
	optional, err := dedupe.ParseStatus(c.Toponym.UnmatchedOptional)
	if err != nil {
		return dedupe.Options{}, fmt.Errorf("toponym.unmatched_optional: %w", err)
	}
	opts = append(opts,
		dedupe.WithUnmatchedPenalties(required, optional),
		dedupe.WithMaxExpansions(c.Expander.MaxExpansions))

	o := dedupe.NewOptions(opts...)
	if err := o.Validate(); err != nil {
		return dedupe.Options{}, err
	}
	return o, nil
}

func RequestTimeout() time.Duration { return 1500 * time.Millisecond }
