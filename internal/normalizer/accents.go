package normalizer

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics removes combining marks but keeps the base script
// ("Hồ Chí Minh" -> "Ho Chi Minh", "Привет" unchanged).
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, _ := transform.String(t, s)
	return out
}

// isMn reports whether r is a nonspacing diacritic mark.
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// Fold is the canonical text form every expansion starts from: NFC,
// transliterated to ASCII, lowercased, punctuation turned into spaces,
// whitespace collapsed.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	ascii := unidecode.Unidecode(norm.NFC.String(s))
	ascii = strings.ToLower(ascii)

	var b strings.Builder
	b.Grow(len(ascii))
	space := true
	for _, r := range ascii {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}

// FoldTokens returns the whitespace tokens of Fold(s).
func FoldTokens(s string) []string {
	return strings.Fields(Fold(s))
}
