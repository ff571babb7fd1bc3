//go:build !cgo

package external

import "github.com/address-dedupe/internal/dedupe"

// LibpostalExpander is unavailable without cgo.
type LibpostalExpander struct{}

// NewLibpostalExpander always fails in builds without cgo.
func NewLibpostalExpander() (*LibpostalExpander, error) {
	return nil, ErrLibpostalUnavailable
}

func (l *LibpostalExpander) Setup() error { return ErrLibpostalUnavailable }

func (l *LibpostalExpander) Teardown() {}

func (l *LibpostalExpander) Ready() bool { return false }

func (l *LibpostalExpander) Expand(string, dedupe.LanguageSet) []string { return nil }

func (l *LibpostalExpander) ParseAddress(string) (dedupe.ComponentSet, error) {
	return nil, ErrLibpostalUnavailable
}
