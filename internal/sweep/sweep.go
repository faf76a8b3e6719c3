// Package sweep evaluates the optimizer over a grid of settings in parallel.
package sweep

import (
	"context"
	"log/slog"
	"runtime"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/napolitain/solver-slayer/internal/models"
	"github.com/napolitain/solver-slayer/internal/solver/policy"
)

// Grid lists the settings values to combine. An empty axis falls back to
// the base settings value.
type Grid struct {
	Revenues   []float64
	BlockSlots []int
}

// Point is one combination of the grid.
type Point struct {
	TaskPointRevenue float64
	BlockSlots       int
}

// Row is the optimizer outcome at one grid point.
type Row struct {
	Point
	Result *models.Result
}

// MaxBlockSlots bounds the slot axis a sweep may request.
const MaxBlockSlots = 4096

// SlotRange returns 0..maxSlots inclusive. maxSlots must lie in
// [0, MaxBlockSlots].
func SlotRange(maxSlots int) ([]int, error) {
	if maxSlots < 0 || maxSlots > MaxBlockSlots {
		err := zerr.Wrap(models.ErrInvalidSettings, "block slot range out of bounds")
		err = zerr.With(err, "max_block_slots", maxSlots)
		return nil, zerr.With(err, "limit", MaxBlockSlots)
	}
	slots := make([]int, maxSlots+1)
	for i := range slots {
		slots[i] = i
	}
	return slots, nil
}

// Points expands the grid in revenue-major order.
func (g Grid) Points(base models.Settings) []Point {
	revenues := g.Revenues
	if len(revenues) == 0 {
		revenues = []float64{base.TaskPointRevenue}
	}
	slots := g.BlockSlots
	if len(slots) == 0 {
		slots = []int{base.BlockSlots}
	}

	points := make([]Point, 0, len(revenues)*len(slots))
	for _, r := range revenues {
		for _, s := range slots {
			points = append(points, Point{TaskPointRevenue: r, BlockSlots: s})
		}
	}
	return points
}

// Runner evaluates grids with bounded parallelism.
type Runner struct {
	// Limit caps concurrent solves; zero means runtime.NumCPU().
	Limit  int
	Logger *slog.Logger
}

// Run solves every grid point and returns rows in grid order. All points
// are validated before any solve starts.
func (r *Runner) Run(ctx context.Context, tasks []*models.Task, base models.Settings, grid Grid) ([]Row, error) {
	points := grid.Points(base)
	for _, p := range points {
		if err := p.settings(base).Validate(); err != nil {
			return nil, zerr.With(err, "task_point_revenue", p.TaskPointRevenue)
		}
	}

	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	limit := r.Limit
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	rows := make([]Row, len(points))
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, p := range points {
		g.Go(func() error {
			result, err := policy.NewSolver(tasks, p.settings(base)).SolveContext(groupCtx)
			if err != nil {
				if groupCtx.Err() != nil {
					return err
				}
				return zerr.With(zerr.Wrap(err, "sweep point failed"), "block_slots", p.BlockSlots)
			}
			rows[i] = Row{Point: p, Result: result}

			logger.Debug("sweep point solved",
				"task_point_revenue", p.TaskPointRevenue,
				"block_slots", p.BlockSlots,
				"value_per_hour", result.AchievedValuePerHour)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func (p Point) settings(base models.Settings) models.Settings {
	s := base
	s.TaskPointRevenue = p.TaskPointRevenue
	s.BlockSlots = p.BlockSlots
	return s
}
