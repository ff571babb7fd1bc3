package normalizer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/address-dedupe/internal/dedupe"
)

func readyExpander(t *testing.T) *RuleExpander {
	t.Helper()
	e := NewRuleExpander(dedupe.DefaultMaxExpansions)
	require.NoError(t, e.Setup())
	t.Cleanup(e.Teardown)
	return e
}

func TestParseRulesConfig(t *testing.T) {
	rc, err := ParseRulesConfig([]byte(`
version: "test"
default:
  "No.": [Number]
languages:
  EN:
    St.: [Street, st, "Saint"]
`))
	require.NoError(t, err)
	assert.Equal(t, "test", rc.Version)
	assert.Equal(t, []string{"number"}, rc.Default["no"])
	assert.Equal(t, []string{"street", "saint"}, rc.Languages["en"]["st"])
	assert.Equal(t, []string{"en"}, rc.LanguageCodes())

	_, err = ParseRulesConfig([]byte("languages: ["))
	assert.Error(t, err)
}

func TestEmbeddedRules(t *testing.T) {
	rc, err := LoadRulesConfig()
	require.NoError(t, err)
	assert.NotEmpty(t, rc.Version)
	assert.Equal(t, []string{"de", "en", "es", "fr", "it", "nl", "pt", "vi"}, rc.LanguageCodes())
}

func TestRuleExpanderLifecycle(t *testing.T) {
	e := NewRuleExpander(0)
	assert.False(t, e.Ready())
	assert.Nil(t, e.Expand("Main St", nil))
	assert.Nil(t, e.Languages("rue"))
	assert.Empty(t, e.Version())

	require.NoError(t, e.Setup())
	require.NoError(t, e.Setup())
	assert.True(t, e.Ready())
	assert.Equal(t, "1.1.0", e.Version())
	assert.Contains(t, e.SupportedLanguages(), "vi")

	e.Teardown()
	assert.False(t, e.Ready())
	assert.Nil(t, e.Expand("Main St", nil))
	assert.Empty(t, e.SupportedLanguages())

	require.NoError(t, e.Setup())
	assert.NotEmpty(t, e.Expand("Main St", nil))
	e.Teardown()
}

func TestRuleExpanderSetupError(t *testing.T) {
	e := NewRuleExpanderFromYAML([]byte("languages: ["), 4)
	assert.Error(t, e.Setup())
	assert.False(t, e.Ready())
}

func TestRuleExpanderExpand(t *testing.T) {
	e := readyExpander(t)

	forms := e.Expand("Main St.", dedupe.NewLanguageSet("en"))
	assert.Equal(t, []string{"main saint", "main st", "main street"}, forms)

	forms = e.Expand("St. Georg", dedupe.NewLanguageSet("de"))
	assert.Equal(t, []string{"sankt georg", "st georg"}, forms)

	// every dictionary when no language is given
	forms = e.Expand("St", nil)
	assert.Subset(t, forms, []string{"st", "street", "saint", "sankt"})

	forms = e.Expand("Q. 1", dedupe.NewLanguageSet("vi"))
	assert.Contains(t, forms, "quan 1")

	forms = e.Expand("No 12", dedupe.NewLanguageSet("fr"))
	assert.Contains(t, forms, "number 12", "defaults apply to every language")

	assert.Nil(t, e.Expand(" -- ", nil))
}

func TestRuleExpanderCap(t *testing.T) {
	e := NewRuleExpanderFromYAML([]byte(`
languages:
  xx:
    a: [b, c, d]
`), 2)
	require.NoError(t, e.Setup())

	forms := e.Expand("a a", nil)
	assert.Equal(t, []string{"a a", "a b"}, forms)
}

func TestRuleExpanderLanguages(t *testing.T) {
	e := readyExpander(t)
	assert.Equal(t, []string{"fr"}, e.Languages("Rue"))
	assert.Contains(t, e.Languages("street"), "en")
	assert.Contains(t, e.Languages("avenida"), "es")
	assert.Contains(t, e.Languages("avenida"), "pt")
	assert.Empty(t, e.Languages("zzz"))
}

func TestRuleExpanderConcurrentReads(t *testing.T) {
	e := readyExpander(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.NotEmpty(t, e.Expand("12 Rue de Rivoli", nil))
			}
		}()
	}
	wg.Wait()
}

func TestSharedLifecycle(t *testing.T) {
	require.NoError(t, Setup())
	defer Teardown()
	assert.True(t, Shared().Ready())
	assert.Same(t, Shared(), Shared())
}
