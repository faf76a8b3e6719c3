package policy

import (
	"context"
	"log/slog"
	"slices"
)

// blockSearch greedily removes up to BlockSlots non-boss tasks. Each step
// tries every remaining candidate and keeps the single best trial, but only
// if it strictly improves on the current policy. Returns the final policy
// and the number of rate solves performed.
func (p *problem) blockSearch(ctx context.Context, logger *slog.Logger) (*policy, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	removed := make([]bool, len(p.tasks))
	best := p.solveRate(removed)
	runs := 1

	logger.Debug("baseline policy",
		"value_per_hour", best.valuePerHour,
		"points_per_hour", best.pointsPerHour,
		"iterations", best.iterations)

	for step := 0; step < p.settings.BlockSlots; step++ {
		var stepBest *policy
		pick := -1

		for i, t := range p.tasks {
			if t.IsBoss() || best.removed[i] {
				continue
			}

			if err := ctx.Err(); err != nil {
				return nil, runs, err
			}

			trial := slices.Clone(best.removed)
			trial[i] = true
			candidate := p.solveRate(trial)
			runs++

			if better(candidate, best) && better(candidate, stepBest) {
				stepBest = candidate
				pick = i
			}
		}

		if pick < 0 {
			logger.Debug("block search stopped early", "step", step, "blocked", best.blockedCount())
			break
		}

		best = stepBest
		logger.Debug("blocked task",
			"step", step,
			"task", p.tasks[pick].Name(),
			"value_per_hour", best.valuePerHour,
			"points_per_hour", best.pointsPerHour)
	}

	return best, runs, nil
}
