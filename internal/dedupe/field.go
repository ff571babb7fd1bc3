package dedupe

import "strings"

// fieldComparator classifies a pair of values of one field type. It holds
// no mutable state and is safe for concurrent use.
type fieldComparator struct {
	expander Expander
}

// compare implements the tiered ladder: raw equality, numeric key equality,
// shared canonical form, then fuzzy similarity against the thresholds.
func (fc fieldComparator) compare(ft FieldType, value1, value2 string, languages LanguageSet, opts Options) DuplicateStatus {
	a, b := strings.TrimSpace(value1), strings.TrimSpace(value2)
	if a == "" || b == "" {
		return NullStatus
	}
	if a == b {
		return ExactDuplicate
	}
	if ft.IsNumeric() && sameNumericKey(ft, a, b) {
		return ExactDuplicate
	}

	forms1 := fc.forms(a, languages, opts)
	forms2 := fc.forms(b, languages, opts)

	if intersects(forms1, forms2) {
		return ExactDuplicate
	}
	if ft.IsNumeric() {
		for _, f1 := range forms1 {
			for _, f2 := range forms2 {
				if sameNumericKey(ft, f1, f2) {
					return ExactDuplicate
				}
			}
		}
	}

	floor := NullStatus
	if ft == FieldPostalCode && zipPlusFour(a, b) {
		floor = LikelyDuplicate
	}

	sim := maxSimilarity(ft, forms1, forms2, opts.Weights())
	status := Classify(sim, opts.Thresholds(ft))
	if floor > status {
		return floor
	}
	return status
}

// forms returns the capped canonical forms of s. A ready expander that
// yields nothing (e.g. pure punctuation) leaves the lowercased input.
func (fc fieldComparator) forms(s string, languages LanguageSet, opts Options) []string {
	forms := fc.expander.Expand(s, languages)
	if len(forms) == 0 {
		return []string{strings.ToLower(s)}
	}
	if n := opts.MaxExpansions(); n > 0 && len(forms) > n {
		forms = forms[:n]
	}
	return forms
}

func sameNumericKey(ft FieldType, a, b string) bool {
	ka := numericKey(ft, a)
	return ka != "" && ka == numericKey(ft, b)
}

func intersects(a, b []string) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}
