package normalizer

import "github.com/address-dedupe/internal/dedupe"

// shared is the process-wide dictionary holder. Setup must complete before
// the first comparison; Teardown must run after the last one.
var shared = NewRuleExpander(dedupe.DefaultMaxExpansions)

// Setup loads the shared dictionaries once. Later calls are no-ops.
func Setup() error { return shared.Setup() }

// Teardown releases the shared dictionaries.
func Teardown() { shared.Teardown() }

// Shared returns the process-wide expander.
func Shared() *RuleExpander { return shared }
