package sprite

import (
	"fmt"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"
)

// InvalidSpecError reports every way a SpriteSpec failed validation at once,
// so callers can surface the full list instead of fixing fields one at a time.
type InvalidSpecError struct {
	Issues error
}

func (e *InvalidSpecError) Error() string {
	return "invalid sprite spec: " + e.Issues.Error()
}

// Unwrap exposes the aggregated field violations.
func (e *InvalidSpecError) Unwrap() error {
	return e.Issues
}

// LayoutError reports a sheet assembly inconsistency.
type LayoutError struct {
	Stage creature.Stage
	What  string
	Got   int
	Want  int
}

func (e *LayoutError) Error() string {
	if e.Stage.Valid() {
		return fmt.Sprintf("sprite layout: stage %s %s = %d, want %d", e.Stage, e.What, e.Got, e.Want)
	}
	return fmt.Sprintf("sprite layout: %s = %d, want %d", e.What, e.Got, e.Want)
}
