// Package dedupe decides whether two descriptions of the same address
// attribute (name, street, house number, postal code, unit, floor, PO box
// or a whole toponym) denote the same value, returning a graded
// DuplicateStatus.
//
// An Engine is stateless and safe for concurrent use as long as its
// Expander is ready. Expander setup and teardown belong to the caller and
// must not race with in-flight calls.
package dedupe

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Engine is the classification entry point. One Engine can be shared by
// any number of goroutines.
type Engine struct {
	expander Expander
	resolver LanguageResolver
	fields   fieldComparator
	toponyms toponymAligner
	logger   *zap.Logger
}

// NewEngine wires an expander and an optional resolver. A nil logger is
// replaced by a no-op logger.
func NewEngine(expander Expander, resolver LanguageResolver, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	fc := fieldComparator{expander: expander}
	return &Engine{
		expander: expander,
		resolver: resolver,
		fields:   fc,
		toponyms: toponymAligner{fields: fc, logger: logger},
		logger:   logger,
	}
}

// Ready reports whether the expander has been set up.
func (e *Engine) Ready() bool { return e.ready() == nil }

func (e *Engine) ready() error {
	if e.expander == nil || !e.expander.Ready() {
		return ErrUninitialized
	}
	return nil
}

// CompareField classifies two values of field type ft. Languages come from
// opts; an empty set selects the expander's language-agnostic path.
func (e *Engine) CompareField(ft FieldType, value1, value2 string, opts Options) (DuplicateStatus, error) {
	if !ft.valid() {
		return NullStatus, fmt.Errorf("%w: unknown field type %d", ErrInvalidInput, int(ft))
	}
	if err := e.ready(); err != nil {
		return NullStatus, err
	}
	start := time.Now()
	status := e.fields.compare(ft, value1, value2, opts.Languages(), opts)
	e.logger.Debug("field compared",
		zap.Stringer("field_type", ft),
		zap.Stringer("status", status),
		zap.Duration("duration", time.Since(start)))
	return status, nil
}

// IsNameDuplicate compares two names (venue, person, toponym names).
func (e *Engine) IsNameDuplicate(value1, value2 string, opts Options) (DuplicateStatus, error) {
	return e.CompareField(FieldName, value1, value2, opts)
}

// IsStreetDuplicate compares two street names.
func (e *Engine) IsStreetDuplicate(value1, value2 string, opts Options) (DuplicateStatus, error) {
	return e.CompareField(FieldStreet, value1, value2, opts)
}

// IsHouseNumberDuplicate compares two house numbers.
func (e *Engine) IsHouseNumberDuplicate(value1, value2 string, opts Options) (DuplicateStatus, error) {
	return e.CompareField(FieldHouseNumber, value1, value2, opts)
}

// IsPoBoxDuplicate compares two PO boxes.
func (e *Engine) IsPoBoxDuplicate(value1, value2 string, opts Options) (DuplicateStatus, error) {
	return e.CompareField(FieldPoBox, value1, value2, opts)
}

// IsUnitDuplicate compares two unit designators.
func (e *Engine) IsUnitDuplicate(value1, value2 string, opts Options) (DuplicateStatus, error) {
	return e.CompareField(FieldUnit, value1, value2, opts)
}

// IsFloorDuplicate compares two floor designators.
func (e *Engine) IsFloorDuplicate(value1, value2 string, opts Options) (DuplicateStatus, error) {
	return e.CompareField(FieldFloor, value1, value2, opts)
}

// IsPostalCodeDuplicate compares two postal codes.
func (e *Engine) IsPostalCodeDuplicate(value1, value2 string, opts Options) (DuplicateStatus, error) {
	return e.CompareField(FieldPostalCode, value1, value2, opts)
}

// CompareToponym aligns two component sets. When opts carries no language
// override, languages are resolved from both sets together.
func (e *Engine) CompareToponym(c1, c2 ComponentSet, opts Options) (DuplicateStatus, error) {
	if err := c1.Validate(); err != nil {
		return NullStatus, fmt.Errorf("components1: %w", err)
	}
	if err := c2.Validate(); err != nil {
		return NullStatus, fmt.Errorf("components2: %w", err)
	}
	if err := e.ready(); err != nil {
		return NullStatus, err
	}

	languages := opts.Languages()
	if languages.Empty() && e.resolver != nil {
		combined := make(ComponentSet, 0, len(c1)+len(c2))
		combined = append(combined, c1...)
		combined = append(combined, c2...)
		languages = e.resolver.Resolve(combined)
	}

	start := time.Now()
	status := e.toponyms.compare(c1, c2, languages, opts)
	e.logger.Debug("toponym compared",
		zap.Strings("languages", languages),
		zap.Int("components1", len(c1)),
		zap.Int("components2", len(c2)),
		zap.Stringer("status", status),
		zap.Duration("duration", time.Since(start)))
	return status, nil
}

// IsToponymDuplicate is the flat form of CompareToponym taking parallel
// label/value slices.
func (e *Engine) IsToponymDuplicate(labels1, values1, labels2, values2 []string, opts Options) (DuplicateStatus, error) {
	c1, err := NewComponentSet(labels1, values1)
	if err != nil {
		return NullStatus, fmt.Errorf("labels1/values1: %w", err)
	}
	c2, err := NewComponentSet(labels2, values2)
	if err != nil {
		return NullStatus, fmt.Errorf("labels2/values2: %w", err)
	}
	return e.CompareToponym(c1, c2, opts)
}

// PlaceLanguages proposes languages for a toponym given as parallel
// label/value slices. Unclassifiable input yields an empty set.
func (e *Engine) PlaceLanguages(labels, values []string) (LanguageSet, error) {
	cs, err := NewComponentSet(labels, values)
	if err != nil {
		return nil, err
	}
	if e.resolver == nil || len(cs) == 0 {
		return nil, nil
	}
	return e.resolver.Resolve(cs), nil
}
