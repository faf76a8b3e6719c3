package models

// Action is the decision made for one task.
type Action string

const (
	Block     Action = "BLOCK"
	Skip      Action = "SKIP"
	Do        Action = "DO"
	DoBossMin Action = "DO_BOSS_MIN"
	DoBossMax Action = "DO_BOSS_MAX"
)

// AllActions returns all actions in report order
func AllActions() []Action {
	return []Action{Block, Skip, Do, DoBossMin, DoBossMax}
}

// Result is the classified outcome of an optimization run.
type Result struct {
	Actions map[string]Action

	// Task names grouped by action, in input order
	Block     []string
	Skip      []string
	Do        []string
	DoBossMin []string
	DoBossMax []string

	AchievedValuePerHour float64
	PointsPerHour        float64

	// Diagnostics
	PointsPerAssignment     float64
	AcceptProbability       float64
	SustainabilityThreshold float64
	SolverRuns              int
}

// NewResult returns an empty result.
func NewResult() *Result {
	return &Result{Actions: make(map[string]Action)}
}

// Add records the action for a task and appends it to its group.
func (r *Result) Add(name string, action Action) {
	r.Actions[name] = action
	switch action {
	case Block:
		r.Block = append(r.Block, name)
	case Skip:
		r.Skip = append(r.Skip, name)
	case Do:
		r.Do = append(r.Do, name)
	case DoBossMin:
		r.DoBossMin = append(r.DoBossMin, name)
	case DoBossMax:
		r.DoBossMax = append(r.DoBossMax, name)
	}
}

// Group returns the task names assigned to an action.
func (r *Result) Group(action Action) []string {
	switch action {
	case Block:
		return r.Block
	case Skip:
		return r.Skip
	case Do:
		return r.Do
	case DoBossMin:
		return r.DoBossMin
	case DoBossMax:
		return r.DoBossMax
	}
	return nil
}

// ActionOf returns the action for a task name and whether it was present.
func (r *Result) ActionOf(name string) (Action, bool) {
	a, ok := r.Actions[name]
	return a, ok
}
