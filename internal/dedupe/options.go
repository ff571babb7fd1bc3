package dedupe

import (
	"fmt"
	"sort"
)

// Thresholds is the review/likely ladder for one field type.
// Invariant: 0 <= Review <= Likely <= 1.
type Thresholds struct {
	Review float64 `json:"review" yaml:"review"`
	Likely float64 `json:"likely" yaml:"likely"`
}

func (t Thresholds) validate() error {
	if t.Review < 0 || t.Likely > 1 || t.Review > t.Likely {
		return fmt.Errorf("%w: thresholds must satisfy 0 <= review (%.2f) <= likely (%.2f) <= 1",
			ErrInvalidOptions, t.Review, t.Likely)
	}
	return nil
}

// Weights blends the free-text similarity components. They are normalized
// by their sum, so only the ratios matter.
type Weights struct {
	Token       float64 `json:"token" yaml:"token"`
	Levenshtein float64 `json:"levenshtein" yaml:"levenshtein"`
	JaroWinkler float64 `json:"jaro_winkler" yaml:"jaro_winkler"`
}

func (w Weights) sum() float64 { return w.Token + w.Levenshtein + w.JaroWinkler }

// Default policy values.
const (
	DefaultMaxExpansions = 32
)

var defaultThresholds = [numFieldTypes]Thresholds{
	FieldName:        {Review: 0.70, Likely: 0.90},
	FieldStreet:      {Review: 0.70, Likely: 0.90},
	FieldHouseNumber: {Review: 0.75, Likely: 0.90},
	FieldPoBox:       {Review: 0.75, Likely: 0.90},
	FieldUnit:        {Review: 0.75, Likely: 0.90},
	FieldFloor:       {Review: 0.75, Likely: 0.90},
	FieldPostalCode:  {Review: 0.80, Likely: 0.90},
}

var defaultWeights = Weights{Token: 0.4, Levenshtein: 0.3, JaroWinkler: 0.3}

var defaultRequiredLabels = []string{"house_number", "po_box", "road", "street"}

// Options is the immutable per-call policy. Build it with NewOptions or
// DefaultOptions; accessors hand out copies.
type Options struct {
	languages         LanguageSet
	thresholds        [numFieldTypes]Thresholds
	weights           Weights
	required          []string
	unmatchedRequired DuplicateStatus
	unmatchedOptional DuplicateStatus
	maxExpansions     int
}

// Option customizes an Options value during construction.
type Option func(*Options)

// DefaultOptions returns the baseline policy.
func DefaultOptions() Options {
	return NewOptions()
}

// NewOptions applies opts on top of the baseline policy.
func NewOptions(opts ...Option) Options {
	o := Options{
		thresholds:        defaultThresholds,
		weights:           defaultWeights,
		required:          append([]string(nil), defaultRequiredLabels...),
		unmatchedRequired: NonDuplicate,
		unmatchedOptional: NullStatus,
		maxExpansions:     DefaultMaxExpansions,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// With returns a copy of o with opts applied; o itself is untouched.
func (o Options) With(opts ...Option) Options {
	c := o
	c.languages = o.languages.Clone()
	c.required = append([]string(nil), o.required...)
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLanguages overrides language resolution.
func WithLanguages(tags ...string) Option {
	return func(o *Options) { o.languages = NewLanguageSet(tags...) }
}

// WithThresholds sets the ladder for one field type.
func WithThresholds(ft FieldType, review, likely float64) Option {
	return func(o *Options) {
		if ft.valid() {
			o.thresholds[ft] = Thresholds{Review: review, Likely: likely}
		}
	}
}

// WithWeights sets the free-text similarity blend.
func WithWeights(w Weights) Option {
	return func(o *Options) { o.weights = w }
}

// WithRequiredLabels replaces the set of toponym labels whose one-sided
// presence is penalized.
func WithRequiredLabels(labels ...string) Option {
	return func(o *Options) {
		o.required = append([]string(nil), labels...)
		sort.Strings(o.required)
	}
}

// WithUnmatchedPenalties sets the status contributed by unmatched required
// and optional labels. NullStatus means "ignored".
func WithUnmatchedPenalties(required, optional DuplicateStatus) Option {
	return func(o *Options) {
		o.unmatchedRequired = required
		o.unmatchedOptional = optional
	}
}

// WithMaxExpansions caps the canonical forms requested per value.
func WithMaxExpansions(n int) Option {
	return func(o *Options) { o.maxExpansions = n }
}

// Languages returns the language override, empty when none was given.
func (o Options) Languages() LanguageSet { return o.languages.Clone() }

// Thresholds returns the ladder for ft.
func (o Options) Thresholds(ft FieldType) Thresholds {
	if !ft.valid() {
		return Thresholds{}
	}
	return o.thresholds[ft]
}

// Weights returns the free-text blend.
func (o Options) Weights() Weights { return o.weights }

// RequiredLabels returns a sorted copy of the required label set.
func (o Options) RequiredLabels() []string {
	out := append([]string(nil), o.required...)
	sort.Strings(out)
	return out
}

// IsRequired reports whether label is in the required set.
func (o Options) IsRequired(label string) bool {
	for _, r := range o.required {
		if r == label {
			return true
		}
	}
	return false
}

// UnmatchedPenalties returns the statuses for one-sided labels.
func (o Options) UnmatchedPenalties() (required, optional DuplicateStatus) {
	return o.unmatchedRequired, o.unmatchedOptional
}

// MaxExpansions returns the expansion cap.
func (o Options) MaxExpansions() int { return o.maxExpansions }

// Validate checks every ordering rule of the policy.
func (o Options) Validate() error {
	for ft := FieldType(0); ft < numFieldTypes; ft++ {
		if err := o.thresholds[ft].validate(); err != nil {
			return fmt.Errorf("%s: %w", ft, err)
		}
	}
	w := o.weights
	if w.Token < 0 || w.Levenshtein < 0 || w.JaroWinkler < 0 || w.sum() == 0 {
		return fmt.Errorf("%w: weights must be non-negative with a positive sum", ErrInvalidOptions)
	}
	if !o.unmatchedRequired.Valid() || !o.unmatchedOptional.Valid() {
		return fmt.Errorf("%w: unmatched penalties must be published statuses", ErrInvalidOptions)
	}
	if o.maxExpansions < 1 {
		return fmt.Errorf("%w: max expansions must be positive", ErrInvalidOptions)
	}
	return nil
}
