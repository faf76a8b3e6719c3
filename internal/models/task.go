package models

import (
	"math"
	"strings"

	"go.trai.ch/zerr"
)

// Task is one selectable activity on the assignment menu.
// Tasks are immutable once built; use NewTask to construct one.
type Task struct {
	name         string
	valuePerHour float64
	weight       float64
	isBoss       bool
	minHours     float64
	maxHours     float64
}

// NewTask validates and builds a task. Non-boss tasks must have a fixed
// duration (minHours == maxHours).
func NewTask(name string, valuePerHour, weight, minHours, maxHours float64, isBoss bool) (*Task, error) {
	t := &Task{
		name:         name,
		valuePerHour: valuePerHour,
		weight:       weight,
		isBoss:       isBoss,
		minHours:     minHours,
		maxHours:     maxHours,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks every field of the task. A nil or zero Task is invalid.
func (t *Task) Validate() error {
	if t == nil {
		return taskError("", "name", "task must not be nil")
	}
	if strings.TrimSpace(t.name) == "" {
		return taskError(t.name, "name", "name must not be blank")
	}
	if !isFinite(t.valuePerHour) || t.valuePerHour < 0 {
		return taskError(t.name, "value_per_hour", "value per hour must be finite and non-negative")
	}
	if !isFinite(t.weight) || t.weight <= 0 {
		return taskError(t.name, "weight", "weight must be finite and positive")
	}
	if !isFinite(t.minHours) || t.minHours <= 0 {
		return taskError(t.name, "min_hours", "min hours must be finite and positive")
	}
	if !isFinite(t.maxHours) || t.maxHours <= 0 {
		return taskError(t.name, "max_hours", "max hours must be finite and positive")
	}
	if t.maxHours < t.minHours {
		return taskError(t.name, "max_hours", "max hours must not be below min hours")
	}
	if !t.isBoss && t.maxHours != t.minHours {
		return taskError(t.name, "max_hours", "only boss tasks may have a duration range")
	}
	return nil
}

// NewFixedTask builds a non-boss task with a fixed duration.
func NewFixedTask(name string, valuePerHour, weight, hours float64) (*Task, error) {
	return NewTask(name, valuePerHour, weight, hours, hours, false)
}

// NewBossTask builds a boss task whose duration can be chosen in [minHours, maxHours].
func NewBossTask(name string, valuePerHour, weight, minHours, maxHours float64) (*Task, error) {
	return NewTask(name, valuePerHour, weight, minHours, maxHours, true)
}

func (t *Task) Name() string          { return t.name }
func (t *Task) ValuePerHour() float64 { return t.valuePerHour }
func (t *Task) Weight() float64       { return t.weight }
func (t *Task) IsBoss() bool          { return t.isBoss }
func (t *Task) MinHours() float64     { return t.minHours }
func (t *Task) MaxHours() float64     { return t.maxHours }

// CheckUniqueNames returns ErrDuplicateTask for the first repeated name.
func CheckUniqueNames(tasks []*Task) error {
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.name] {
			return zerr.With(zerr.Wrap(ErrDuplicateTask, "task names must be unique"), "task_name", t.name)
		}
		seen[t.name] = true
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
