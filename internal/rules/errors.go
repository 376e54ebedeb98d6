package rules

import "fmt"

// ConfigurationError reports a rule-table lookup with no entry. The message
// always names the table and the pair (or key) that missed, so authoring
// holes surface immediately instead of producing a fallback sprite.
type ConfigurationError struct {
	Table string
	Key   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("rules: no %s entry for %s", e.Table, e.Key)
}

func missingPair(table string, a, b fmt.Stringer) *ConfigurationError {
	return &ConfigurationError{
		Table: table,
		Key:   fmt.Sprintf("(%s, %s)", a, b),
	}
}

func missingKey(table, key string) *ConfigurationError {
	return &ConfigurationError{Table: table, Key: key}
}
