package policy

import "sort"

// choice is one accept/decline assignment over the task list.
type choice struct {
	do    []bool
	hours []float64
	mass  float64 // accepted normalized weight
}

func newChoice(n int) choice {
	return choice{
		do:    make([]bool, n),
		hours: make([]float64, n),
	}
}

func (c choice) accept(i int, hours, q float64) choice {
	c.do[i] = true
	c.hours[i] = hours
	c.mass += q
	return c
}

// selectTasks picks the accept set for a candidate rate.
//
// Every eligible task earning more than rate is accepted, bosses at their
// longest duration. If the accepted mass is below pMin, the remaining
// eligible tasks are added least-harmful first at their shortest duration
// until the mass reaches pMin. Tasks are indivisible so the mass may overshoot.
func (p *problem) selectTasks(removed []bool, q []float64, rate float64) choice {
	c := newChoice(len(p.tasks))

	for i, t := range p.tasks {
		if removed[i] || t.ValuePerHour() <= rate {
			continue
		}
		c = c.accept(i, t.MaxHours(), q[i])
	}

	if c.mass >= p.pMin {
		return c
	}

	rest := make([]int, 0, len(p.tasks))
	for i := range p.tasks {
		if !removed[i] && !c.do[i] {
			rest = append(rest, i)
		}
	}

	penalty := func(i int) float64 {
		t := p.tasks[i]
		return t.MinHours() * (t.ValuePerHour() - rate)
	}
	sort.SliceStable(rest, func(a, b int) bool {
		return penalty(rest[a]) > penalty(rest[b])
	})

	for _, i := range rest {
		if c.mass >= p.pMin {
			break
		}
		c = c.accept(i, p.tasks[i].MinHours(), q[i])
	}

	return c
}
