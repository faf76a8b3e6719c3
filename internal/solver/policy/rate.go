package policy

import (
	"math"
	"slices"

	"github.com/napolitain/solver-slayer/internal/models"
)

// problem is one optimization input shared by every solve of a search.
type problem struct {
	tasks    []*models.Task
	settings models.Settings
	pMin     float64

	maxIterations int // per rate solve
}

func newProblem(tasks []*models.Task, settings models.Settings) *problem {
	return &problem{
		tasks:    tasks,
		settings: settings,
		pMin:     settings.SustainabilityThreshold(),

		maxIterations: MaxIterations,
	}
}

// normalizedWeights returns each task's share of the eligible weight
// (zero for removed tasks) and the total eligible weight.
func (p *problem) normalizedWeights(removed []bool) ([]float64, float64) {
	q := make([]float64, len(p.tasks))
	total := 0.0
	for i, t := range p.tasks {
		if !removed[i] {
			total += t.Weight()
		}
	}
	if total == 0 {
		return q, 0
	}
	for i, t := range p.tasks {
		if !removed[i] {
			q[i] = t.Weight() / total
		}
	}
	return q, total
}

// seedRate averages over every eligible task at its minimum duration.
func (p *problem) seedRate(removed []bool, q []float64) float64 {
	var num, den float64
	for i, t := range p.tasks {
		if removed[i] {
			continue
		}
		num += q[i] * t.ValuePerHour() * t.MinHours()
		den += q[i] * t.MinHours()
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// averageRate is the long-run value rate of a choice. It reports false
// when nothing is accepted.
func (p *problem) averageRate(q []float64, c choice) (float64, bool) {
	if c.mass == 0 {
		return 0, false
	}
	var num, den float64
	for i, t := range p.tasks {
		if !c.do[i] {
			continue
		}
		num += q[i] * t.ValuePerHour() * c.hours[i]
		den += q[i] * c.hours[i]
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

// solveRate finds the self-consistent value rate for a fixed removal set.
func (p *problem) solveRate(removed []bool) *policy {
	q, total := p.normalizedWeights(removed)
	if total == 0 {
		return p.zeroPolicy(removed)
	}

	rate := p.seedRate(removed, q)
	var c choice
	iterations := 0

	for iterations < p.maxIterations {
		iterations++
		c = p.selectTasks(removed, q, rate)

		next, ok := p.averageRate(q, c)
		if !ok {
			rate = 0
			break
		}

		converged := math.Abs(next-rate) <= ConvergenceEpsilon*math.Max(1, math.Abs(rate))
		rate = next
		if converged {
			break
		}
	}

	return p.newPolicy(removed, q, c, rate, iterations)
}

// newPolicy builds an immutable policy from a choice at the converged rate.
func (p *problem) newPolicy(removed []bool, q []float64, c choice, rate float64, iterations int) *policy {
	pol := &policy{
		removed:      slices.Clone(removed),
		do:           make([]bool, len(p.tasks)),
		hours:        make([]float64, len(p.tasks)),
		valuePerHour: rate,
		pMin:         p.pMin,
		iterations:   iterations,
	}
	for i := range p.tasks {
		if removed[i] || !c.do[i] {
			continue
		}
		pol.do[i] = true
		pol.hours[i] = c.hours[i]
	}

	m := p.metrics(q, pol.do, pol.hours)
	pol.acceptProbability = m.acceptProbability
	pol.pointsPerAssignment = m.pointsPerAssignment
	pol.pointsPerHour = m.pointsPerHour
	return pol
}

func (p *problem) zeroPolicy(removed []bool) *policy {
	return &policy{
		removed: slices.Clone(removed),
		do:      make([]bool, len(p.tasks)),
		hours:   make([]float64, len(p.tasks)),
		pMin:    p.pMin,
	}
}
