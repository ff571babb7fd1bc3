//go:build cgo

package external

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/address-dedupe/internal/dedupe"
	"github.com/openvenues/gopostal/expand"
	"github.com/openvenues/gopostal/parser"
)

// LibpostalExpander expands through libpostal. gopostal initializes the
// libpostal models when its packages load, so Setup only flips the ready
// flag; Teardown makes every later comparison fail fast.
type LibpostalExpander struct {
	ready atomic.Bool
}

// NewLibpostalExpander returns a libpostal-backed expander, not yet ready.
func NewLibpostalExpander() (*LibpostalExpander, error) {
	return &LibpostalExpander{}, nil
}

func (l *LibpostalExpander) Setup() error {
	l.ready.Store(true)
	return nil
}

func (l *LibpostalExpander) Teardown() { l.ready.Store(false) }

func (l *LibpostalExpander) Ready() bool { return l.ready.Load() }

// Expand returns libpostal's normalized variants, sorted and unique.
func (l *LibpostalExpander) Expand(text string, languages dedupe.LanguageSet) []string {
	if !l.Ready() {
		return nil
	}
	opts := expand.GetDefaultExpansionOptions()
	if !languages.Empty() {
		opts.Languages = []string(languages)
	}
	forms := expand.ExpandAddressOptions(text, opts)
	sort.Strings(forms)
	out := forms[:0]
	for i, f := range forms {
		if i == 0 || f != forms[i-1] {
			out = append(out, f)
		}
	}
	return out
}

// ParseAddress splits a raw address into labeled components with the
// libpostal parser. Repeated labels are merged with a space so the result
// keeps unique labels.
func (l *LibpostalExpander) ParseAddress(raw string) (dedupe.ComponentSet, error) {
	if !l.Ready() {
		return nil, dedupe.ErrUninitialized
	}
	comps := parser.ParseAddress(raw)
	cs := make(dedupe.ComponentSet, 0, len(comps))
	pos := make(map[string]int, len(comps))
	for _, c := range comps {
		value := strings.TrimSpace(c.Value)
		if value == "" {
			continue
		}
		if i, ok := pos[c.Label]; ok {
			cs[i].Value += " " + value
			continue
		}
		pos[c.Label] = len(cs)
		cs = append(cs, dedupe.LabeledValue{Label: c.Label, Value: value})
	}
	return cs, nil
}
