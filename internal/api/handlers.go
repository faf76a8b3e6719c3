package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.trai.ch/zerr"

	"github.com/napolitain/solver-slayer/internal/cache"
	"github.com/napolitain/solver-slayer/internal/loader"
	"github.com/napolitain/solver-slayer/internal/metrics"
	"github.com/napolitain/solver-slayer/internal/models"
	"github.com/napolitain/solver-slayer/internal/solver/policy"
	"github.com/napolitain/solver-slayer/internal/sweep"
)

// Optimize parses a JSON task file and solves it, reusing a cached result
// for identical input. A cancelled ctx aborts the block search.
func (s *Server) Optimize(ctx context.Context, data []byte) (*OptimizeResponse, error) {
	tf, err := loader.ParseJSON(data)
	if err != nil {
		return nil, err
	}

	compute := func() (*models.Result, error) {
		start := time.Now()
		solver := policy.NewSolver(tf.Tasks, tf.Settings)
		solver.Logger = s.logger
		r, err := solver.SolveContext(ctx)
		if err != nil {
			return nil, err
		}
		metrics.SolveDuration.Observe(time.Since(start).Seconds())
		metrics.SolverRuns.Add(float64(r.SolverRuns))
		return r, nil
	}

	key := cache.Key(tf.Tasks, tf.Settings)
	result, hit, err := s.results.Do(key, compute)
	if isContextError(err) && ctx.Err() == nil {
		// A concurrent request computing the same key was cancelled.
		result, hit, err = s.results.Do(key, compute)
	}
	if err != nil {
		return nil, err
	}
	if hit {
		metrics.CacheHits.Inc()
	}

	return &OptimizeResponse{
		ID:     uuid.New().String(),
		Cached: hit,
		Result: NewResultResponse(result),
		Report: policy.FormatResult(result),
	}, nil
}

// Sweep solves a JSON task file over the grid given by its "revenues" and
// "max_block_slots" keys.
func (s *Server) Sweep(ctx context.Context, data []byte) (*SweepResponse, error) {
	tf, err := loader.ParseJSON(data)
	if err != nil {
		return nil, err
	}

	grid, err := parseGrid(data, s.cfg.Sweep.MaxGridSize)
	if err != nil {
		return nil, err
	}

	rows, err := s.sweeper.Run(ctx, tf.Tasks, tf.Settings, grid)
	if err != nil {
		return nil, err
	}
	metrics.SweepPoints.Add(float64(len(rows)))

	return &SweepResponse{
		ID:   uuid.New().String(),
		Rows: newSweepRows(rows),
	}, nil
}

// parseGrid reads the sweep axes. The grid size is checked against limit
// (zero disables the check) before any axis is materialized.
func parseGrid(data []byte, limit int) (sweep.Grid, error) {
	var grid sweep.Grid
	root := gjson.ParseBytes(data)

	if revenues := root.Get("revenues"); revenues.Exists() {
		if !revenues.IsArray() {
			return grid, zerr.With(zerr.Wrap(models.ErrInvalidTaskFile, "revenues must be an array"), "field", "revenues")
		}
		for i, v := range revenues.Array() {
			if v.Type != gjson.Number {
				return grid, zerr.With(zerr.Wrap(models.ErrInvalidTaskFile, "revenues must be numbers"), "field", fmt.Sprintf("revenues.%d", i))
			}
			grid.Revenues = append(grid.Revenues, v.Float())
		}
	}

	maxSlots, hasSlots, err := loader.JSONInt(root, "max_block_slots", 0, sweep.MaxBlockSlots)
	if err != nil {
		return grid, err
	}

	points := max(1, len(grid.Revenues))
	if hasSlots {
		points *= maxSlots + 1
	}
	if limit > 0 && points > limit {
		err := zerr.Wrap(models.ErrInvalidTaskFile, "sweep grid too large")
		err = zerr.With(err, "points", points)
		return grid, zerr.With(err, "max_grid_size", limit)
	}

	if hasSlots {
		slots, err := sweep.SlotRange(maxSlots)
		if err != nil {
			return grid, err
		}
		grid.BlockSlots = slots
	}
	return grid, nil
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r, "optimize")
	if !ok {
		return
	}

	resp, err := s.Optimize(r.Context(), data)
	if err != nil {
		s.fail(w, r, "optimize", err)
		return
	}

	metrics.Requests.WithLabelValues("optimize", "ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r, "sweep")
	if !ok {
		return
	}

	resp, err := s.Sweep(r.Context(), data)
	if err != nil {
		s.fail(w, r, "sweep", err)
		return
	}

	metrics.Requests.WithLabelValues("sweep", "ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request, endpoint string) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		metrics.Requests.WithLabelValues(endpoint, "invalid").Inc()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			writeError(w, http.StatusBadRequest, "failed to read request body")
		}
		return nil, false
	}
	return data, true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	switch {
	case models.IsConfigError(err):
		metrics.Requests.WithLabelValues(endpoint, "invalid").Inc()
		s.logger.Debug("rejected request", "endpoint", endpoint, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
	case isContextError(err):
		// The Timeout middleware answers 504 on deadline; a cancelled
		// request has no client left to answer.
		metrics.Requests.WithLabelValues(endpoint, "timeout").Inc()
		s.logger.Warn("request abandoned", "endpoint", endpoint, "request_id", middleware.GetReqID(r.Context()), "error", err)
	default:
		metrics.Requests.WithLabelValues(endpoint, "error").Inc()
		s.logger.Error("request failed", "endpoint", endpoint, "request_id", middleware.GetReqID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
