package policy

import "math"

// policy is one evaluated selection over a fixed eligible set.
type policy struct {
	removed []bool
	do      []bool
	hours   []float64 // realized duration of accepted tasks, 0 otherwise

	valuePerHour        float64
	pointsPerAssignment float64
	pointsPerHour       float64
	acceptProbability   float64
	pMin                float64
	iterations          int
}

// better reports whether a strictly improves on b. The order is
// lexicographic: value rate, then point rate, then point surplus per
// assignment, each with its own tolerance. A nil baseline is always improved on.
func better(a, b *policy) bool {
	if b == nil {
		return a != nil
	}
	if a == nil {
		return false
	}
	if d := a.valuePerHour - b.valuePerHour; math.Abs(d) > ValueEpsilon {
		return d > 0
	}
	if d := a.pointsPerHour - b.pointsPerHour; math.Abs(d) > PointsEpsilon {
		return d > 0
	}
	return a.pointsPerAssignment-b.pointsPerAssignment > PointsEpsilon
}

func (pol *policy) blockedCount() int {
	n := 0
	for _, r := range pol.removed {
		if r {
			n++
		}
	}
	return n
}
