package dedupe

import "strings"

// MaxLanguageLen bounds a language tag, shared with the expander contract
// (libpostal's LIBPOSTAL_MAX_LANGUAGE_LEN).
const MaxLanguageLen = 4

// LanguageSet is an ordered list of language tags, most preferred first.
type LanguageSet []string

// NewLanguageSet lowercases and trims each tag, truncates it to
// MaxLanguageLen and drops empty tags. Order is preserved; duplicates are
// kept as given.
func NewLanguageSet(tags ...string) LanguageSet {
	if len(tags) == 0 {
		return nil
	}
	out := make(LanguageSet, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if len(t) > MaxLanguageLen {
			t = t[:MaxLanguageLen]
		}
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Empty reports whether the set carries no hint.
func (ls LanguageSet) Empty() bool { return len(ls) == 0 }

// Clone returns an independent copy.
func (ls LanguageSet) Clone() LanguageSet {
	if len(ls) == 0 {
		return nil
	}
	out := make(LanguageSet, len(ls))
	copy(out, ls)
	return out
}

// Key is a stable string form used for cache keys.
func (ls LanguageSet) Key() string {
	return strings.Join(ls, ",")
}
