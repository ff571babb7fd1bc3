// Package language proposes the languages a toponym is written in. It is a
// heuristic: script cues on the raw text plus dictionary hits on the folded
// tokens, weighted toward street labels where the language signal is
// strongest.
package language

import (
	"sort"
	"strings"
	"unicode"

	"github.com/address-dedupe/internal/dedupe"
	"github.com/address-dedupe/internal/normalizer"
)

const (
	// MaxLanguages caps the size of a resolved set.
	MaxLanguages = 3
	// minShare drops candidates with less than this share of the top score.
	minShare = 0.2

	scriptWeight = 3.0
	streetWeight = 2.0
)

// Lexicon maps a folded token to the languages whose dictionaries use it.
type Lexicon interface {
	Languages(token string) []string
}

// Resolver ranks candidate languages for a component set.
type Resolver struct {
	lexicon Lexicon
}

// NewResolver returns a resolver voting with lexicon. A nil lexicon leaves
// only script cues.
func NewResolver(lexicon Lexicon) *Resolver {
	return &Resolver{lexicon: lexicon}
}

// letterCues are letters specific enough to name a language on their own.
var letterCues = map[rune]string{
	'đ': "vi", 'ư': "vi", 'ơ': "vi", 'ă': "vi",
	'ß': "de",
	'ñ': "es",
	'ç': "fr", 'œ': "fr",
	'ã': "pt", 'õ': "pt",
}

type tally struct {
	scores map[string]float64
	order  map[string]int
}

func (t *tally) add(lang string, w float64) {
	if _, ok := t.order[lang]; !ok {
		t.order[lang] = len(t.order)
	}
	t.scores[lang] += w
}

// Resolve returns up to MaxLanguages codes, best first. Labels are not
// checked for uniqueness; the engine passes both sides of a comparison.
func (r *Resolver) Resolve(cs dedupe.ComponentSet) dedupe.LanguageSet {
	t := &tally{scores: map[string]float64{}, order: map[string]int{}}
	for _, lv := range cs {
		if isNumeric(lv.Value) {
			continue
		}
		w := 1.0
		if ft := dedupe.FieldTypeForLabel(lv.Label); ft == dedupe.FieldStreet {
			w = streetWeight
		}
		scriptVotes(t, lv.Value)
		if r.lexicon == nil {
			continue
		}
		for _, tok := range normalizer.FoldTokens(lv.Value) {
			for _, lang := range r.lexicon.Languages(tok) {
				t.add(lang, w)
			}
		}
	}
	return t.ranked()
}

func scriptVotes(t *tally, raw string) {
	seen := map[string]bool{}
	for _, r := range strings.ToLower(raw) {
		lang := letterCues[r]
		if lang == "" && unicode.Is(unicode.Cyrillic, r) {
			lang = "ru"
		}
		if lang != "" && !seen[lang] {
			seen[lang] = true
			t.add(lang, scriptWeight)
		}
	}
}

func (t *tally) ranked() dedupe.LanguageSet {
	if len(t.scores) == 0 {
		return nil
	}
	langs := make([]string, 0, len(t.scores))
	for l := range t.scores {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool {
		si, sj := t.scores[langs[i]], t.scores[langs[j]]
		if si != sj {
			return si > sj
		}
		return t.order[langs[i]] < t.order[langs[j]]
	})
	top := t.scores[langs[0]]
	out := make([]string, 0, MaxLanguages)
	for _, l := range langs {
		if len(out) == MaxLanguages || t.scores[l] < top*minShare {
			break
		}
		out = append(out, l)
	}
	return dedupe.NewLanguageSet(out...)
}

func isNumeric(s string) bool {
	hasDigit := false
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			return false
		}
	}
	return hasDigit
}
