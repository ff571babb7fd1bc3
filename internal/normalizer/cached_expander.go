package normalizer

import (
	"fmt"

	"github.com/address-dedupe/internal/dedupe"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedExpander memoizes another expander with an LRU keyed by language
// set and text. The cache is safe for concurrent use.
type CachedExpander struct {
	inner dedupe.Expander
	cache *lru.Cache[string, []string]
}

// NewCachedExpander wraps inner with an LRU of the given size.
func NewCachedExpander(inner dedupe.Expander, size int) (*CachedExpander, error) {
	cache, err := lru.New[string, []string](size)
	if err != nil {
		return nil, fmt.Errorf("không thể tạo LRU cache: %w", err)
	}
	return &CachedExpander{inner: inner, cache: cache}, nil
}

// Ready delegates to the wrapped expander.
func (c *CachedExpander) Ready() bool { return c.inner.Ready() }

// Expand serves from the cache, filling it on a miss. Results of a
// not-ready expander are never cached.
func (c *CachedExpander) Expand(text string, languages dedupe.LanguageSet) []string {
	key := languages.Key() + "\x1F" + text
	if forms, ok := c.cache.Get(key); ok {
		return append([]string(nil), forms...)
	}
	if !c.inner.Ready() {
		return nil
	}
	forms := c.inner.Expand(text, languages)
	c.cache.Add(key, append([]string(nil), forms...))
	return forms
}

// Purge drops every memoized expansion, e.g. after the wrapped expander
// was torn down and set up again with new dictionaries.
func (c *CachedExpander) Purge() { c.cache.Purge() }

// Len is the number of memoized entries.
func (c *CachedExpander) Len() int { return c.cache.Len() }
