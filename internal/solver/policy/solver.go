package policy

import (
	"context"
	"log/slog"

	"github.com/napolitain/solver-slayer/internal/models"
)

// Solver decides which tasks to do, skip or block.
type Solver struct {
	Tasks    []*models.Task
	Settings models.Settings

	// Logger receives block-search tracing at debug level. Nil discards it.
	Logger *slog.Logger
}

// NewSolver creates a solver for a task menu and settings
func NewSolver(tasks []*models.Task, settings models.Settings) *Solver {
	return &Solver{
		Tasks:    tasks,
		Settings: settings,
	}
}

// Optimize solves with the default skip price.
func Optimize(tasks []*models.Task, taskPointRevenue float64, blockSlots int) (*models.Result, error) {
	settings := models.Settings{
		TaskPointRevenue: taskPointRevenue,
		BlockSlots:       blockSlots,
		SkipPrice:        models.DefaultSkipPrice,
	}
	return NewSolver(tasks, settings).Solve()
}

// Solve validates the input, runs the block search and classifies every task.
// Invalid tasks or settings fail before any computation.
func (s *Solver) Solve() (*models.Result, error) {
	return s.SolveContext(context.Background())
}

// SolveContext is Solve with cancellation. The context is checked before
// every rate solve of the block search; a cancelled search returns ctx.Err().
func (s *Solver) SolveContext(ctx context.Context) (*models.Result, error) {
	if err := s.Settings.Validate(); err != nil {
		return nil, err
	}
	for _, t := range s.Tasks {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	if err := models.CheckUniqueNames(s.Tasks); err != nil {
		return nil, err
	}

	if len(s.Tasks) == 0 {
		result := models.NewResult()
		result.SustainabilityThreshold = s.Settings.SustainabilityThreshold()
		return result, nil
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	p := newProblem(s.Tasks, s.Settings)
	best, runs, err := p.blockSearch(ctx, logger)
	if err != nil {
		return nil, err
	}

	result := p.classify(best)
	result.SolverRuns = runs
	return result, nil
}

// classify maps the final policy to one action per task.
func (p *problem) classify(best *policy) *models.Result {
	result := models.NewResult()

	for i, t := range p.tasks {
		switch {
		case best.removed[i]:
			result.Add(t.Name(), models.Block)
		case !best.do[i]:
			result.Add(t.Name(), models.Skip)
		case !t.IsBoss():
			result.Add(t.Name(), models.Do)
		case t.ValuePerHour() > best.valuePerHour+ValueEpsilon:
			result.Add(t.Name(), models.DoBossMax)
		default:
			result.Add(t.Name(), models.DoBossMin)
		}
	}

	result.AchievedValuePerHour = best.valuePerHour
	result.PointsPerHour = best.pointsPerHour
	result.PointsPerAssignment = best.pointsPerAssignment
	result.AcceptProbability = best.acceptProbability
	result.SustainabilityThreshold = best.pMin
	return result
}
