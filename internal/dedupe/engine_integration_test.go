package dedupe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/address-dedupe/internal/dedupe"
	"github.com/address-dedupe/internal/language"
	"github.com/address-dedupe/internal/normalizer"
)

func newRuleEngine(t *testing.T) (*dedupe.Engine, *normalizer.RuleExpander) {
	t.Helper()
	exp := normalizer.NewRuleExpander(dedupe.DefaultMaxExpansions)
	require.NoError(t, exp.Setup())
	t.Cleanup(exp.Teardown)
	return dedupe.NewEngine(exp, language.NewResolver(exp), zaptest.NewLogger(t)), exp
}

func TestEngineWithRuleDictionaries(t *testing.T) {
	e, _ := newRuleEngine(t)

	tests := []struct {
		name   string
		ft     dedupe.FieldType
		v1, v2 string
		langs  []string
		want   dedupe.DuplicateStatus
	}{
		{"english street", dedupe.FieldStreet, "Main St.", "Main Street", []string{"en"}, dedupe.ExactDuplicate},
		{"english saint", dedupe.FieldName, "St. Mary Church", "Saint Mary Church", []string{"en"}, dedupe.ExactDuplicate},
		{"french rue", dedupe.FieldStreet, "R. de Rivoli", "Rue de Rivoli", []string{"fr"}, dedupe.ExactDuplicate},
		{"vietnamese accents", dedupe.FieldStreet, "Đường Lê Lợi", "duong le loi", nil, dedupe.ExactDuplicate},
		{"vietnamese district", dedupe.FieldName, "Q. 1", "Quận 1", []string{"vi"}, dedupe.ExactDuplicate},
		{"german strasse", dedupe.FieldStreet, "Haupt Str.", "Haupt Straße", []string{"de"}, dedupe.ExactDuplicate},
		{"zip plus four", dedupe.FieldPostalCode, "94105", "94105-1804", nil, dedupe.LikelyDuplicate},
		{"different streets", dedupe.FieldStreet, "Main Street", "Oak Avenue", []string{"en"}, dedupe.NonDuplicate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := dedupe.DefaultOptions().With(dedupe.WithLanguages(tt.langs...))
			got, err := e.CompareField(tt.ft, tt.v1, tt.v2, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngineLanguageSelection(t *testing.T) {
	e, _ := newRuleEngine(t)

	// "r" only expands to "rue" in the French dictionary
	got, err := e.IsStreetDuplicate("R. de Rivoli", "Rue de Rivoli",
		dedupe.DefaultOptions().With(dedupe.WithLanguages("de")))
	require.NoError(t, err)
	assert.NotEqual(t, dedupe.ExactDuplicate, got)

	got, err = e.IsStreetDuplicate("R. de Rivoli", "Rue de Rivoli", dedupe.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, dedupe.ExactDuplicate, got)
}

func TestToponymWithResolvedLanguages(t *testing.T) {
	e, _ := newRuleEngine(t)
	opts := dedupe.DefaultOptions()

	status, err := e.IsToponymDuplicate(
		[]string{"house_number", "road", "city", "postcode"},
		[]string{"12", "R. de Rivoli", "Paris", "75001"},
		[]string{"house_number", "road", "city", "postcode"},
		[]string{"12", "Rue de Rivoli", "Paris", "75001"},
		opts)
	require.NoError(t, err)
	assert.Equal(t, dedupe.ExactDuplicate, status)

	status, err = e.IsToponymDuplicate(
		[]string{"house_number", "road"}, []string{"12", "Rue de Rivoli"},
		[]string{"house_number", "road"}, []string{"14", "Rue de Rivoli"},
		opts)
	require.NoError(t, err)
	assert.Equal(t, dedupe.NonDuplicate, status)

	langs, err := e.PlaceLanguages([]string{"road", "city"}, []string{"Rue de Rivoli", "Paris"})
	require.NoError(t, err)
	assert.Equal(t, dedupe.LanguageSet{"fr"}, langs)
}

func TestEngineAfterTeardown(t *testing.T) {
	e, exp := newRuleEngine(t)
	require.True(t, e.Ready())

	exp.Teardown()
	assert.False(t, e.Ready())
	_, err := e.IsStreetDuplicate("Main St", "Main Street", dedupe.DefaultOptions())
	assert.ErrorIs(t, err, dedupe.ErrUninitialized)

	require.NoError(t, exp.Setup())
	got, err := e.IsStreetDuplicate("Main St", "Main Street", dedupe.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, dedupe.ExactDuplicate, got)
}
