package dedupe

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// Jaro-Winkler parameters, same as the address matcher's fuzzy stage.
const (
	jwBoostThreshold = 0.7
	jwPrefixSize     = 4
)

// editSimilarity is 1 - levenshtein/maxRunes, in [0, 1].
func editSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return clamp01(1 - float64(dist)/float64(maxLen))
}

func jaroWinkler(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return clamp01(smetrics.JaroWinkler(a, b, jwBoostThreshold, jwPrefixSize))
}

// tokenSetSimilarity is the Jaccard index of the whitespace token sets.
func tokenSetSimilarity(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1
	}
	inter := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// freeTextSimilarity blends token overlap with whole-string edit measures.
func freeTextSimilarity(a, b string, w Weights) float64 {
	total := w.sum()
	if total <= 0 {
		total, w = defaultWeights.sum(), defaultWeights
	}
	score := w.Token*tokenSetSimilarity(a, b) +
		w.Levenshtein*editSimilarity(a, b) +
		w.JaroWinkler*jaroWinkler(a, b)
	return clamp01(score / total)
}

// pairSimilarity scores one pair of canonical forms. The pair is put in a
// fixed order first so the score never depends on argument order.
func pairSimilarity(ft FieldType, a, b string, w Weights) float64 {
	if b < a {
		a, b = b, a
	}
	if ft.IsNumeric() {
		ka, kb := numericKey(ft, a), numericKey(ft, b)
		if ka == "" || kb == "" {
			return editSimilarity(a, b)
		}
		return editSimilarity(ka, kb)
	}
	return freeTextSimilarity(a, b, w)
}

// maxSimilarity is the best score over every cross pair.
func maxSimilarity(ft FieldType, forms1, forms2 []string, w Weights) float64 {
	best := 0.0
	for _, a := range forms1 {
		for _, b := range forms2 {
			if s := pairSimilarity(ft, a, b, w); s > best {
				best = s
				if best == 1 {
					return best
				}
			}
		}
	}
	return best
}

// Classify maps a similarity onto the threshold ladder.
func Classify(similarity float64, t Thresholds) DuplicateStatus {
	switch {
	case similarity < t.Review:
		return NonDuplicate
	case similarity < t.Likely:
		return PossibleDuplicateNeedsReview
	default:
		return LikelyDuplicate
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// field designators dropped before numeric comparison ("Apt 4" == "4")
var designators = map[FieldType]map[string]struct{}{
	FieldHouseNumber: wordSet("no", "nr", "number", "num", "so"),
	FieldUnit:        wordSet("apt", "apartment", "unit", "suite", "ste", "flat", "room", "rm"),
	FieldFloor:       wordSet("floor", "fl", "level", "lvl", "etage", "tang"),
	FieldPoBox:       wordSet("po", "p", "o", "box", "pob", "pobox", "postbox", "bp", "cp", "postfach"),
}

var ordinalSuffixes = []string{"st", "nd", "rd", "th"}

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// alnumTokens lowercases s and splits it on every non-alphanumeric rune.
func alnumTokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// numericKey reduces a short field value to its separator-free token:
// designators and ordinal suffixes are dropped, remaining alphanumeric runs
// are concatenated. "22-1" and "221" share the key "221".
func numericKey(ft FieldType, s string) string {
	tokens := alnumTokens(s)
	if len(tokens) == 0 {
		return ""
	}
	drop := designators[ft]
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := drop[t]; ok {
			continue
		}
		if ft == FieldFloor || ft == FieldUnit {
			t = stripOrdinal(t)
		}
		kept = append(kept, t)
	}
	if len(kept) == 0 {
		// value was only designators, e.g. "Box"
		return strings.Join(tokens, "")
	}
	return strings.Join(kept, "")
}

func stripOrdinal(t string) string {
	for _, suf := range ordinalSuffixes {
		if len(t) > len(suf) && strings.HasSuffix(t, suf) && isDigits(t[:len(t)-len(suf)]) {
			return t[:len(t)-len(suf)]
		}
	}
	return t
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// zipPlusFour reports whether one value is a bare numeric postal code and
// the other is the same code with a numeric delivery suffix
// ("10001" vs "10001-0001").
func zipPlusFour(a, b string) bool {
	return zipExtends(a, b) || zipExtends(b, a)
}

func zipExtends(base, extended string) bool {
	bt, et := alnumTokens(base), alnumTokens(extended)
	if len(bt) != 1 || len(et) != 2 {
		return false
	}
	zip := bt[0]
	return len(zip) >= 4 && isDigits(zip) && et[0] == zip && isDigits(et[1])
}
