package normalizer

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data/expansions.yaml
var expansionsYAML []byte

// RulesConfig holds the expansion dictionaries loaded from YAML.
type RulesConfig struct {
	Version   string                         `yaml:"version"`
	Default   map[string][]string            `yaml:"default"`
	Languages map[string]map[string][]string `yaml:"languages"`
}

// LanguageCodes returns the dictionary languages, sorted.
func (rc *RulesConfig) LanguageCodes() []string {
	codes := make([]string, 0, len(rc.Languages))
	for code := range rc.Languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// LoadRulesConfig parses the embedded dictionaries.
func LoadRulesConfig() (*RulesConfig, error) {
	return ParseRulesConfig(expansionsYAML)
}

// ParseRulesConfig parses dictionaries from raw YAML. Keys and values are
// folded the same way input text is, so hand-written entries with case or
// accents still match.
func ParseRulesConfig(data []byte) (*RulesConfig, error) {
	raw := &RulesConfig{}
	if err := yaml.Unmarshal(data, raw); err != nil {
		return nil, fmt.Errorf("parse expansion rules: %w", err)
	}
	config := &RulesConfig{
		Version:   raw.Version,
		Default:   foldDictionary(raw.Default),
		Languages: make(map[string]map[string][]string, len(raw.Languages)),
	}
	for code, dict := range raw.Languages {
		config.Languages[Fold(code)] = foldDictionary(dict)
	}
	return config, nil
}

func foldDictionary(dict map[string][]string) map[string][]string {
	out := make(map[string][]string, len(dict))
	for key, values := range dict {
		k := Fold(key)
		if k == "" {
			continue
		}
		for _, v := range values {
			if fv := Fold(v); fv != "" && fv != k {
				out[k] = appendUnique(out[k], fv)
			}
		}
	}
	return out
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
