// Package normalizer provides the expanders that turn a raw address
// string into its canonical forms, plus the process-wide lifecycle of the
// shared dictionary resources.
package normalizer

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/address-dedupe/internal/dedupe"
)

// ErrNotReady is returned by operations that need loaded dictionaries.
var ErrNotReady = errors.New("normalizer: dictionaries not loaded")

// RuleExpander expands abbreviations token by token from per-language
// dictionaries. Reads are concurrent; Setup and Teardown take the write
// lock and must not race with in-flight comparisons.
type RuleExpander struct {
	mu            sync.RWMutex
	source        []byte
	maxExpansions int

	ready     bool
	version   string
	defaults  map[string][]string
	dicts     map[string]map[string][]string
	languages []string            // sorted dictionary codes
	lexicon   map[string][]string // folded word -> languages using it
}

// NewRuleExpander returns an expander over the embedded dictionaries. It is
// not usable until Setup succeeds.
func NewRuleExpander(maxExpansions int) *RuleExpander {
	return NewRuleExpanderFromYAML(expansionsYAML, maxExpansions)
}

// NewRuleExpanderFromYAML is NewRuleExpander over caller-supplied rules.
func NewRuleExpanderFromYAML(data []byte, maxExpansions int) *RuleExpander {
	if maxExpansions < 1 {
		maxExpansions = dedupe.DefaultMaxExpansions
	}
	return &RuleExpander{source: data, maxExpansions: maxExpansions}
}

// Setup parses the dictionaries. It is idempotent.
func (e *RuleExpander) Setup() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready {
		return nil
	}
	rules, err := ParseRulesConfig(e.source)
	if err != nil {
		return err
	}
	e.version = rules.Version
	e.defaults = rules.Default
	e.dicts = rules.Languages
	e.languages = rules.LanguageCodes()
	e.lexicon = buildLexicon(rules)
	e.ready = true
	return nil
}

// Teardown releases the dictionaries. Ready reports false afterwards.
func (e *RuleExpander) Teardown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ready = false
	e.defaults, e.dicts, e.languages, e.lexicon = nil, nil, nil, nil
}

// Ready reports whether Setup has completed.
func (e *RuleExpander) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ready
}

// Version is the dictionary version, empty before Setup.
func (e *RuleExpander) Version() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.version
}

// SupportedLanguages lists the dictionary language codes.
func (e *RuleExpander) SupportedLanguages() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.languages...)
}

// Expand returns the sorted, de-duplicated canonical forms of text. The
// fully folded input is always one of them. An empty language set uses
// every dictionary.
func (e *RuleExpander) Expand(text string, languages dedupe.LanguageSet) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.ready {
		return nil
	}
	tokens := FoldTokens(text)
	if len(tokens) == 0 {
		return nil
	}

	dicts := e.selectDictionaries(languages)
	forms := []string{""}
	for _, tok := range tokens {
		alts := alternatives(tok, dicts)
		next := make([]string, 0, len(forms)*len(alts))
	product:
		for _, prefix := range forms {
			for _, alt := range alts {
				if prefix == "" {
					next = append(next, alt)
				} else {
					next = append(next, prefix+" "+alt)
				}
				if len(next) >= e.maxExpansions {
					break product
				}
			}
		}
		forms = next
	}
	return sortedUnique(forms)
}

// selectDictionaries returns the dictionaries for languages in preference
// order, followed by the language-agnostic defaults.
func (e *RuleExpander) selectDictionaries(languages dedupe.LanguageSet) []map[string][]string {
	codes := []string(languages)
	if len(codes) == 0 {
		codes = e.languages
	}
	dicts := make([]map[string][]string, 0, len(codes)+1)
	for _, code := range codes {
		if d, ok := e.dicts[code]; ok {
			dicts = append(dicts, d)
		}
	}
	return append(dicts, e.defaults)
}

func alternatives(tok string, dicts []map[string][]string) []string {
	alts := []string{tok}
	for _, d := range dicts {
		for _, v := range d[tok] {
			alts = appendUnique(alts, v)
		}
	}
	return alts
}

func sortedUnique(forms []string) []string {
	sort.Strings(forms)
	out := forms[:0]
	for i, f := range forms {
		if i == 0 || f != forms[i-1] {
			out = append(out, f)
		}
	}
	return out
}

// Languages implements language.Lexicon: the dictionary languages in which
// the folded token is an expansion or a multi-letter abbreviation.
func (e *RuleExpander) Languages(token string) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.ready {
		return nil
	}
	return append([]string(nil), e.lexicon[Fold(token)]...)
}

// buildLexicon indexes every expansion word, and every abbreviation of two
// or more letters, by the languages that use it.
func buildLexicon(rules *RulesConfig) map[string][]string {
	lex := make(map[string][]string)
	for _, code := range rules.LanguageCodes() {
		for abbr, values := range rules.Languages[code] {
			if len(abbr) >= 2 {
				lex[abbr] = appendUnique(lex[abbr], code)
			}
			for _, v := range values {
				for _, word := range strings.Fields(v) {
					lex[word] = appendUnique(lex[word], code)
				}
			}
		}
	}
	return lex
}
