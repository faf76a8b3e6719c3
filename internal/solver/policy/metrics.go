package policy

// pointMetrics is the secondary objective of a selection.
type pointMetrics struct {
	acceptProbability   float64
	expectedHours       float64
	pointsPerAssignment float64
	pointsPerHour       float64
}

// metrics computes the expected net point change per assignment and per hour.
// Values are not clamped: small negative surpluses from rounding are reported as-is.
func (p *problem) metrics(q []float64, do []bool, hours []float64) pointMetrics {
	var m pointMetrics
	for i := range p.tasks {
		if !do[i] {
			continue
		}
		m.acceptProbability += q[i]
		m.expectedHours += q[i] * hours[i]
	}

	revenue := p.settings.TaskPointRevenue
	skip := p.settings.SkipPrice
	m.pointsPerAssignment = (revenue+skip)*m.acceptProbability - skip

	if m.expectedHours > 0 {
		m.pointsPerHour = m.pointsPerAssignment / m.expectedHours
	}
	return m
}
