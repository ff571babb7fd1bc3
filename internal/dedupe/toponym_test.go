package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// recordingResolver returns a fixed set and remembers what it was asked.
type recordingResolver struct {
	result LanguageSet
	calls  []ComponentSet
}

func (r *recordingResolver) Resolve(cs ComponentSet) LanguageSet {
	r.calls = append(r.calls, cs)
	return r.result
}

func TestToponymDuplicate(t *testing.T) {
	e := newStubEngine()

	tests := []struct {
		name    string
		labels1 []string
		values1 []string
		labels2 []string
		values2 []string
		opts    Options
		want    DuplicateStatus
	}{
		{
			name:    "weakest field wins",
			labels1: []string{"house_number", "road", "city"},
			values1: []string{"12", "Main St", "Springfield"},
			labels2: []string{"house_number", "road", "city"},
			values2: []string{"45", "Main Street", "Springfield"},
			want:    NonDuplicate,
		},
		{
			name:    "all fields match",
			labels1: []string{"house_number", "road", "city"},
			values1: []string{"12", "Main St", "Springfield"},
			labels2: []string{"city", "road", "house_number"},
			values2: []string{"Springfield", "Main Street", "12"},
			want:    ExactDuplicate,
		},
		{
			name:    "unmatched optional label is ignored",
			labels1: []string{"house_number", "road", "unit"},
			values1: []string{"12", "Main St", "4"},
			labels2: []string{"house_number", "road"},
			values2: []string{"12", "Main Street"},
			want:    ExactDuplicate,
		},
		{
			name:    "unmatched required label penalized",
			labels1: []string{"house_number", "road"},
			values1: []string{"12", "Main St"},
			labels2: []string{"road"},
			values2: []string{"Main Street"},
			want:    NonDuplicate,
		},
		{
			name:    "custom penalties",
			labels1: []string{"road", "unit"},
			values1: []string{"Main St", "4"},
			labels2: []string{"road"},
			values2: []string{"Main St"},
			opts:    DefaultOptions().With(WithUnmatchedPenalties(NonDuplicate, PossibleDuplicateNeedsReview)),
			want:    PossibleDuplicateNeedsReview,
		},
		{
			name:    "nothing comparable",
			labels1: []string{"unit"},
			values1: []string{"4"},
			labels2: []string{"city"},
			values2: []string{"Springfield"},
			want:    NullStatus,
		},
		{
			name:    "empty component values are null fields",
			labels1: []string{"road", "city"},
			values1: []string{"Main St", ""},
			labels2: []string{"road", "city"},
			values2: []string{"Main Street", "Springfield"},
			want:    ExactDuplicate,
		},
		{
			name:    "empty side",
			labels2: []string{"road"},
			values2: []string{"Main St"},
			want:    NullStatus,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			if opts.MaxExpansions() == 0 {
				opts = DefaultOptions()
			}
			got, err := e.IsToponymDuplicate(tt.labels1, tt.values1, tt.labels2, tt.values2, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToponymAlignOrder(t *testing.T) {
	fc := fieldComparator{expander: stubExpander}
	ta := toponymAligner{fields: fc, logger: zap.NewNop()}

	c1 := ComponentSet{{Label: "road", Value: "Main St"}, {Label: "unit", Value: "4"}}
	c2 := ComponentSet{{Label: "postcode", Value: "10001"}, {Label: "road", Value: "Main Street"}}
	verdicts := ta.align(c1, c2, nil, DefaultOptions())

	require.Len(t, verdicts, 3)
	assert.Equal(t, "road", verdicts[0].Label)
	assert.Equal(t, FieldStreet, verdicts[0].FieldType)
	assert.Equal(t, ExactDuplicate, verdicts[0].Status)
	assert.Equal(t, "unit", verdicts[1].Label)
	assert.True(t, verdicts[1].Unmatched)
	assert.Equal(t, "postcode", verdicts[2].Label)
	assert.Equal(t, NullStatus, verdicts[2].Status)
}

func TestToponymLogsFieldVerdicts(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := NewEngine(stubExpander, nil, zap.New(core))

	_, err := e.IsToponymDuplicate(
		[]string{"road", "house_number"}, []string{"Main St", "12"},
		[]string{"road", "house_number"}, []string{"Main St", "12"}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, logs.FilterMessage("toponym field verdict").Len())
	assert.Equal(t, 1, logs.FilterMessage("toponym compared").Len())
}

func TestToponymErrors(t *testing.T) {
	e := newStubEngine()
	opts := DefaultOptions()

	_, err := e.IsToponymDuplicate([]string{"road"}, nil, nil, nil, opts)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "labels1/values1")

	_, err = e.IsToponymDuplicate(nil, nil, []string{"road", "city"}, []string{"x"}, opts)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "labels2/values2")

	dup := ComponentSet{{Label: "road", Value: "a"}, {Label: "road", Value: "b"}}
	_, err = e.CompareToponym(dup, ComponentSet{{Label: "road", Value: "a"}}, opts)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "components1")

	_, err = NewEngine(notReadyExpander{}, nil, nil).IsToponymDuplicate(
		[]string{"road"}, []string{"a"}, []string{"road"}, []string{"a"}, opts)
	assert.ErrorIs(t, err, ErrUninitialized)
}

func TestToponymLanguageResolution(t *testing.T) {
	resolver := &recordingResolver{result: LanguageSet{"en"}}
	var seen []LanguageSet
	exp := ExpanderFunc(func(text string, languages LanguageSet) []string {
		seen = append(seen, languages)
		return stubExpander(text, languages)
	})
	e := NewEngine(exp, resolver, zap.NewNop())

	c1 := ComponentSet{{Label: "road", Value: "Main St"}}
	c2 := ComponentSet{{Label: "road", Value: "Main Rd"}, {Label: "city", Value: "Leeds"}}
	_, err := e.CompareToponym(c1, c2, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, resolver.calls, 1)
	assert.Len(t, resolver.calls[0], 3, "resolver sees both sides")
	require.NotEmpty(t, seen)
	for _, l := range seen {
		assert.Equal(t, LanguageSet{"en"}, l)
	}

	// explicit languages bypass the resolver
	seen = nil
	_, err = e.CompareToponym(c1, c2, DefaultOptions().With(WithLanguages("fr")))
	require.NoError(t, err)
	assert.Len(t, resolver.calls, 1)
	for _, l := range seen {
		assert.Equal(t, LanguageSet{"fr"}, l)
	}
}

func TestPlaceLanguages(t *testing.T) {
	resolver := &recordingResolver{result: LanguageSet{"de", "en"}}
	e := NewEngine(stubExpander, resolver, nil)

	langs, err := e.PlaceLanguages([]string{"road", "city"}, []string{"Hauptstrasse", "Berlin"})
	require.NoError(t, err)
	assert.Equal(t, LanguageSet{"de", "en"}, langs)

	langs, err = e.PlaceLanguages(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, langs)

	_, err = e.PlaceLanguages([]string{"road"}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	langs, err = newStubEngine().PlaceLanguages([]string{"road"}, []string{"x"})
	require.NoError(t, err)
	assert.Empty(t, langs)
}
