package models

// DefaultSkipPrice is the point cost of declining one assignment.
const DefaultSkipPrice = 30.0

// Settings holds the scalar inputs of one optimization run.
type Settings struct {
	// TaskPointRevenue is the number of points earned per completed task.
	TaskPointRevenue float64
	// BlockSlots is the maximum number of non-boss tasks that may be blocked.
	BlockSlots int
	// SkipPrice is the point cost of declining a task.
	SkipPrice float64
}

// DefaultSettings returns settings with the standard skip price and no block slots.
func DefaultSettings() Settings {
	return Settings{
		TaskPointRevenue: 1,
		SkipPrice:        DefaultSkipPrice,
	}
}

// Validate checks that the settings describe a solvable problem.
func (s Settings) Validate() error {
	if !isFinite(s.TaskPointRevenue) || s.TaskPointRevenue <= 0 {
		return settingsError("task_point_revenue", "task point revenue must be finite and positive")
	}
	if s.BlockSlots < 0 {
		return settingsError("block_slots", "block slots must not be negative")
	}
	if !isFinite(s.SkipPrice) || s.SkipPrice < 0 {
		return settingsError("skip_price", "skip price must be finite and non-negative")
	}
	return nil
}

// SustainabilityThreshold is the minimum share of accepted assignments
// needed so the expected point balance does not drift negative.
func (s Settings) SustainabilityThreshold() float64 {
	return s.SkipPrice / (s.TaskPointRevenue + s.SkipPrice)
}
