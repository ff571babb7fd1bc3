package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  Main-St.  ", "main st"},
		{"Hồ Chí Minh", "ho chi minh"},
		{"Đường Lê Lợi", "duong le loi"},
		{"Straße", "strasse"},
		{"Rue   de\tRivoli", "rue de rivoli"},
		{"221B, Baker!", "221b baker"},
		{"...", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), "Fold(%q)", tt.in)
	}
}

func TestFoldTokens(t *testing.T) {
	assert.Equal(t, []string{"quan", "1"}, FoldTokens("Quận 1"))
	assert.Empty(t, FoldTokens(" - "))
}

func TestStripDiacritics(t *testing.T) {
	assert.Equal(t, "Ho Chi Minh", StripDiacritics("Hồ Chí Minh"))
	assert.Equal(t, "Sao Paulo", StripDiacritics("São Paulo"))
	assert.Equal(t, "Привет", StripDiacritics("Привет"))
}
