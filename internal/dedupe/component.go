package dedupe

import "fmt"

// LabeledValue is one component of a toponym, e.g. ("house_number", "221B").
type LabeledValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ComponentSet is an ordered toponym description with unique labels.
type ComponentSet []LabeledValue

// NewComponentSet pairs labels with values. Length mismatches and repeated
// labels are rejected with ErrInvalidInput.
func NewComponentSet(labels, values []string) (ComponentSet, error) {
	if len(labels) != len(values) {
		return nil, fmt.Errorf("%w: %d labels but %d values", ErrInvalidInput, len(labels), len(values))
	}
	cs := make(ComponentSet, len(labels))
	for i := range labels {
		cs[i] = LabeledValue{Label: labels[i], Value: values[i]}
	}
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	return cs, nil
}

// Validate checks label uniqueness.
func (cs ComponentSet) Validate() error {
	seen := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		if _, dup := seen[c.Label]; dup {
			return fmt.Errorf("%w: duplicate label %q", ErrInvalidInput, c.Label)
		}
		seen[c.Label] = struct{}{}
	}
	return nil
}

// Labels returns the labels in order.
func (cs ComponentSet) Labels() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Label
	}
	return out
}

// Values returns the values in order.
func (cs ComponentSet) Values() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Value
	}
	return out
}

// Index builds a label -> value lookup.
func (cs ComponentSet) Index() map[string]string {
	idx := make(map[string]string, len(cs))
	for _, c := range cs {
		idx[c.Label] = c.Value
	}
	return idx
}
