package dedupe

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAlternatives is a tiny abbreviation table for the stub expander.
var stubAlternatives = map[string][]string{
	"st":  {"street", "saint"},
	"ave": {"avenue"},
	"rd":  {"road"},
}

// stubExpander lowercases, splits on punctuation and expands tokens from
// stubAlternatives.
var stubExpander = ExpanderFunc(func(text string, _ LanguageSet) []string {
	forms := []string{""}
	for _, tok := range alnumTokens(text) {
		alts := append([]string{tok}, stubAlternatives[tok]...)
		next := make([]string, 0, len(forms)*len(alts))
		for _, f := range forms {
			for _, a := range alts {
				next = append(next, strings.TrimSpace(f+" "+a))
			}
		}
		forms = next
	}
	if len(forms) == 1 && forms[0] == "" {
		return nil
	}
	return forms
})

type notReadyExpander struct{}

func (notReadyExpander) Ready() bool { return false }
func (notReadyExpander) Expand(string, LanguageSet) []string { return nil }

func newStubEngine() *Engine {
	return NewEngine(stubExpander, nil, zap.NewNop())
}

func TestClassifyThresholds(t *testing.T) {
	th := Thresholds{Review: 0.5, Likely: 0.8}
	tests := []struct {
		sim  float64
		want DuplicateStatus
	}{
		{0, NonDuplicate},
		{0.49, NonDuplicate},
		{0.5, PossibleDuplicateNeedsReview},
		{0.79, PossibleDuplicateNeedsReview},
		{0.8, LikelyDuplicate},
		{1, LikelyDuplicate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.sim, th), "similarity %.2f", tt.sim)
	}
}

func TestCompareFieldLadder(t *testing.T) {
	e := newStubEngine()
	opts := DefaultOptions()

	tests := []struct {
		name   string
		ft     FieldType
		v1, v2 string
		want   DuplicateStatus
	}{
		{"identical", FieldName, "Central Park", "Central Park", ExactDuplicate},
		{"surrounding whitespace", FieldName, "  Central Park ", "Central Park", ExactDuplicate},
		{"case only", FieldName, "CENTRAL PARK", "central park", ExactDuplicate},
		{"abbreviation", FieldStreet, "Main St", "Main Street", ExactDuplicate},
		{"abbreviation with period", FieldStreet, "Fifth Ave.", "fifth avenue", ExactDuplicate},
		{"house number separators", FieldHouseNumber, "22-1", "221", ExactDuplicate},
		{"house number designator", FieldHouseNumber, "No. 12", "12", ExactDuplicate},
		{"different house numbers", FieldHouseNumber, "12", "45", NonDuplicate},
		{"unit designator", FieldUnit, "Apt 4B", "4b", ExactDuplicate},
		{"floor ordinal", FieldFloor, "3rd Floor", "Floor 3", ExactDuplicate},
		{"po box", FieldPoBox, "PO Box 123", "Box 123", ExactDuplicate},
		{"zip plus four", FieldPostalCode, "10001", "10001-0001", LikelyDuplicate},
		{"zip plus four reversed", FieldPostalCode, "10001-0001", "10001", LikelyDuplicate},
		{"postcode spacing", FieldPostalCode, "SW1A 1AA", "sw1a1aa", ExactDuplicate},
		{"different zips", FieldPostalCode, "10001", "90210", NonDuplicate},
		{"partial name", FieldName, "Springfield Elementary School", "Springfield Elementary", PossibleDuplicateNeedsReview},
		{"unrelated streets", FieldStreet, "Fifth Avenue", "Lexington Road", NonDuplicate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.CompareField(tt.ft, tt.v1, tt.v2, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareFieldNullOnEmpty(t *testing.T) {
	e := newStubEngine()
	for _, ft := range FieldTypes() {
		for _, pair := range [][2]string{{"", "x"}, {"x", ""}, {"", ""}, {"   ", "12"}} {
			got, err := e.CompareField(ft, pair[0], pair[1], DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, NullStatus, got, "%s %q %q", ft, pair[0], pair[1])
		}
	}
}

func TestCompareFieldProperties(t *testing.T) {
	e := newStubEngine()
	opts := DefaultOptions()
	faker := gofakeit.New(42)

	generators := map[FieldType]func() string{
		FieldName:        faker.City,
		FieldStreet:      faker.Street,
		FieldHouseNumber: faker.StreetNumber,
		FieldPostalCode:  faker.Zip,
		FieldUnit:        func() string { return "Apt " + faker.Numerify("##") },
		FieldFloor:       func() string { return faker.Numerify("#") + "th Floor" },
		FieldPoBox:       func() string { return "PO Box " + faker.Numerify("####") },
	}

	for ft, gen := range generators {
		for i := 0; i < 50; i++ {
			a, b := gen(), gen()

			self, err := e.CompareField(ft, a, a, opts)
			require.NoError(t, err)
			assert.Equal(t, ExactDuplicate, self, "reflexivity %s %q", ft, a)

			ab, err := e.CompareField(ft, a, b, opts)
			require.NoError(t, err)
			ba, err := e.CompareField(ft, b, a, opts)
			require.NoError(t, err)
			assert.Equal(t, ab, ba, "symmetry %s %q %q", ft, a, b)
			assert.NotEqual(t, NullStatus, ab)
		}
	}
}

func TestCompareFieldOptions(t *testing.T) {
	e := newStubEngine()

	lenient := DefaultOptions().With(WithThresholds(FieldName, 0.5, 0.75))
	got, err := e.CompareField(FieldName, "Springfield Elementary School", "Springfield Elementary", lenient)
	require.NoError(t, err)
	assert.Equal(t, LikelyDuplicate, got)

	tokensOnly := DefaultOptions().With(WithWeights(Weights{Token: 1}))
	got, err = e.CompareField(FieldName, "Park Central", "Central Park", tokensOnly)
	require.NoError(t, err)
	assert.Equal(t, LikelyDuplicate, got)
}

func TestCompareFieldErrors(t *testing.T) {
	_, err := newStubEngine().CompareField(FieldType(99), "a", "b", DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidInput)

	e := NewEngine(notReadyExpander{}, nil, nil)
	assert.False(t, e.Ready())
	status, err := e.IsStreetDuplicate("Main St", "Main St", DefaultOptions())
	assert.ErrorIs(t, err, ErrUninitialized)
	assert.Equal(t, NullStatus, status)

	_, err = NewEngine(nil, nil, nil).IsNameDuplicate("a", "a", DefaultOptions())
	assert.ErrorIs(t, err, ErrUninitialized)
}

func TestFieldWrappers(t *testing.T) {
	e := newStubEngine()
	opts := DefaultOptions()
	wrappers := map[FieldType]func(string, string, Options) (DuplicateStatus, error){
		FieldName:        e.IsNameDuplicate,
		FieldStreet:      e.IsStreetDuplicate,
		FieldHouseNumber: e.IsHouseNumberDuplicate,
		FieldPoBox:       e.IsPoBoxDuplicate,
		FieldUnit:        e.IsUnitDuplicate,
		FieldFloor:       e.IsFloorDuplicate,
		FieldPostalCode:  e.IsPostalCodeDuplicate,
	}
	require.Len(t, wrappers, len(FieldTypes()))
	for ft, fn := range wrappers {
		want, err := e.CompareField(ft, "12 Main St", "12 Main Street", opts)
		require.NoError(t, err)
		got, err := fn("12 Main St", "12 Main Street", opts)
		require.NoError(t, err)
		assert.Equal(t, want, got, ft.String())
	}
}

func TestNumericKey(t *testing.T) {
	assert.Equal(t, "221", numericKey(FieldHouseNumber, "22-1"))
	assert.Equal(t, "221b", numericKey(FieldHouseNumber, "221B"))
	assert.Equal(t, "3", numericKey(FieldFloor, "3rd floor"))
	assert.Equal(t, "box", numericKey(FieldPoBox, "Box"))
	assert.Equal(t, "", numericKey(FieldUnit, "--"))
	assert.True(t, zipPlusFour("10001", "10001 0001"))
	assert.False(t, zipPlusFour("SW1A", "SW1A 1AA"))
	assert.False(t, zipPlusFour("100", "100-1"))
}
