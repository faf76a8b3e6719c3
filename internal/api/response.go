package api

import (
	"github.com/napolitain/solver-slayer/internal/models"
	"github.com/napolitain/solver-slayer/internal/sweep"
)

// ResultResponse is the wire form of a models.Result.
type ResultResponse struct {
	Actions   map[string]models.Action `json:"actions"`
	Block     []string                 `json:"block"`
	Skip      []string                 `json:"skip"`
	Do        []string                 `json:"do"`
	DoBossMin []string                 `json:"do_boss_min"`
	DoBossMax []string                 `json:"do_boss_max"`

	AchievedValuePerHour    float64 `json:"achieved_value_per_hour"`
	PointsPerHour           float64 `json:"points_per_hour"`
	PointsPerAssignment     float64 `json:"points_per_assignment"`
	AcceptProbability       float64 `json:"accept_probability"`
	SustainabilityThreshold float64 `json:"sustainability_threshold"`
	SolverRuns              int     `json:"solver_runs"`
}

// OptimizeResponse is returned by the optimize endpoint.
type OptimizeResponse struct {
	ID     string         `json:"id"`
	Cached bool           `json:"cached"`
	Result ResultResponse `json:"result"`
	Report string         `json:"report"`
}

// SweepRowResponse is one grid point of a sweep.
type SweepRowResponse struct {
	TaskPointRevenue     float64  `json:"task_point_revenue"`
	BlockSlots           int      `json:"block_slots"`
	AchievedValuePerHour float64  `json:"achieved_value_per_hour"`
	PointsPerHour        float64  `json:"points_per_hour"`
	Blocked              []string `json:"blocked"`
}

// SweepResponse is returned by the sweep endpoint.
type SweepResponse struct {
	ID   string             `json:"id"`
	Rows []SweepRowResponse `json:"rows"`
}

// NewResultResponse copies a result into its wire form. Empty groups encode
// as [] rather than null.
func NewResultResponse(r *models.Result) ResultResponse {
	return ResultResponse{
		Actions:                 r.Actions,
		Block:                   nonNil(r.Block),
		Skip:                    nonNil(r.Skip),
		Do:                      nonNil(r.Do),
		DoBossMin:               nonNil(r.DoBossMin),
		DoBossMax:               nonNil(r.DoBossMax),
		AchievedValuePerHour:    r.AchievedValuePerHour,
		PointsPerHour:           r.PointsPerHour,
		PointsPerAssignment:     r.PointsPerAssignment,
		AcceptProbability:       r.AcceptProbability,
		SustainabilityThreshold: r.SustainabilityThreshold,
		SolverRuns:              r.SolverRuns,
	}
}

func newSweepRows(rows []sweep.Row) []SweepRowResponse {
	out := make([]SweepRowResponse, len(rows))
	for i, row := range rows {
		out[i] = SweepRowResponse{
			TaskPointRevenue:     row.TaskPointRevenue,
			BlockSlots:           row.BlockSlots,
			AchievedValuePerHour: row.Result.AchievedValuePerHour,
			PointsPerHour:        row.Result.PointsPerHour,
			Blocked:              nonNil(row.Result.Block),
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
