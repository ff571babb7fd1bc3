package dedupe

// Expander produces the canonical normalized forms of a string: case
// folding, abbreviation and synonym expansion, transliteration.
//
// Expand must be deterministic for identical inputs, must tolerate an empty
// language set (language-agnostic path) and must be safe for concurrent use
// once Ready reports true.
type Expander interface {
	Ready() bool
	Expand(text string, languages LanguageSet) []string
}

// LanguageResolver proposes candidate languages for a toponym when the
// caller supplied none.
type LanguageResolver interface {
	Resolve(components ComponentSet) LanguageSet
}

// ExpanderFunc adapts a plain function to Expander. It is always ready.
type ExpanderFunc func(text string, languages LanguageSet) []string

func (f ExpanderFunc) Ready() bool { return true }

func (f ExpanderFunc) Expand(text string, languages LanguageSet) []string {
	return f(text, languages)
}
