package shelfconfig

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs struct-tag validation against the decoded configuration,
// then the behavior-tree-specific invariants the tags alone can't express:
// unknown scope keys, unknown parents, and parent cycles are all rejected
// here so that, per the hot reload contract, a malformed reload never
// touches the existing registry.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}

	for name, behavior := range cfg.Behaviors {
		for scope := range behavior.Scopes {
			if !validScopes[scope] {
				return fmt.Errorf("behavior %q: unknown scope %q", name, scope)
			}
		}
	}

	if err := checkParentCycles(cfg.Behaviors); err != nil {
		return err
	}

	return nil
}

// validScopes is the fixed set of scope names allowed at any behavior
// node.
var validScopes = map[string]bool{
	"All":                   true,
	"Read":                  true,
	"Write":                 true,
	"BatchReads":            true,
	"BatchWrites":           true,
	"Query":                 true,
	"Info":                  true,
	"AvailabilityModeReads": true,
	"ConsistencyModeReads":  true,
	"RetryableWrites":       true,
	"NonRetryableWrites":    true,
	"TxnVerify":             true,
	"TxnRoll":               true,
}

// checkParentCycles walks each behavior's parent chain looking for a cycle.
// "DEFAULT" and "" are the implicit root and are not required to appear as
// keys in the map.
func checkParentCycles(behaviors map[string]BehaviorConfig) error {
	for start := range behaviors {
		seen := map[string]bool{start: true}
		current := start

		for {
			parent := behaviors[current].Parent
			if parent == "" || parent == "DEFAULT" {
				break
			}
			if seen[parent] {
				return fmt.Errorf("behavior %q: parent cycle detected at %q", start, parent)
			}
			if _, ok := behaviors[parent]; !ok {
				return fmt.Errorf("behavior %q: unknown parent %q", start, parent)
			}
			seen[parent] = true
			current = parent
		}
	}

	return nil
}
