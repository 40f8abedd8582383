// meta/meta.go
package meta

import "time"

// EndgameFoodThreshold is the remaining food count at or below which agents
// stop foraging and head back to their start.
const EndgameFoodThreshold = 2

// CarryReturnThreshold is the carried food count above which the offensive
// agent is pulled back home.
const CarryReturnThreshold = 3

// DefaultTimeBudget is the per-decision wall-clock budget.
const DefaultTimeBudget = 100 * time.Millisecond

// DefaultFirstVariant and DefaultSecondVariant name the variants used for a
// team when the config does not say otherwise.
const (
	DefaultFirstVariant  = "offensive"
	DefaultSecondVariant = "defensive"
)
