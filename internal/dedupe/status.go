package dedupe

import (
	"encoding/json"
	"fmt"
)

// DuplicateStatus is the ordinal duplicate verdict, ascending confidence.
// Integer values are a published contract and must not be renumbered.
type DuplicateStatus int

const (
	// NullStatus means no classification was performed (nothing to compare).
	// It is never a comparison result.
	NullStatus DuplicateStatus = iota
	NonDuplicate
	PossibleDuplicateNeedsReview
	LikelyDuplicate
	ExactDuplicate
)

var statusNames = [...]string{
	NullStatus:                   "NULL_DUPLICATE_STATUS",
	NonDuplicate:                 "NON_DUPLICATE",
	PossibleDuplicateNeedsReview: "POSSIBLE_DUPLICATE_NEEDS_REVIEW",
	LikelyDuplicate:              "LIKELY_DUPLICATE",
	ExactDuplicate:               "EXACT_DUPLICATE",
}

var statusFromName = func() map[string]DuplicateStatus {
	m := make(map[string]DuplicateStatus, len(statusNames))
	for s, name := range statusNames {
		m[name] = DuplicateStatus(s)
	}
	return m
}()

// AllStatuses lists every status in ascending order.
func AllStatuses() []DuplicateStatus {
	return []DuplicateStatus{NullStatus, NonDuplicate, PossibleDuplicateNeedsReview, LikelyDuplicate, ExactDuplicate}
}

// String returns the binding constant name, e.g. "LIKELY_DUPLICATE".
func (s DuplicateStatus) String() string {
	if s.Valid() {
		return statusNames[s]
	}
	return fmt.Sprintf("DuplicateStatus(%d)", int(s))
}

// Valid reports whether s is one of the published statuses.
func (s DuplicateStatus) Valid() bool {
	return s >= NullStatus && s <= ExactDuplicate
}

// IsDuplicate reports whether s is LikelyDuplicate or ExactDuplicate.
func (s DuplicateStatus) IsDuplicate() bool {
	return s >= LikelyDuplicate && s.Valid()
}

// ParseStatus is the inverse of String.
func ParseStatus(name string) (DuplicateStatus, error) {
	s, ok := statusFromName[name]
	if !ok {
		return NullStatus, fmt.Errorf("%w: unknown duplicate status %q", ErrInvalidInput, name)
	}
	return s, nil
}

// MarshalJSON encodes the status as its constant name.
func (s DuplicateStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a constant name.
func (s *DuplicateStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// WeakestLink folds per-field verdicts into one: the least confident
// non-null status wins. The result is NullStatus only when every input is
// NullStatus or there are no inputs.
func WeakestLink(statuses ...DuplicateStatus) DuplicateStatus {
	result := NullStatus
	for _, s := range statuses {
		result = weaker(result, s)
	}
	return result
}

// weaker is the binary form of WeakestLink with NullStatus as identity.
func weaker(a, b DuplicateStatus) DuplicateStatus {
	switch {
	case a == NullStatus:
		return b
	case b == NullStatus:
		return a
	case b < a:
		return b
	default:
		return a
	}
}
