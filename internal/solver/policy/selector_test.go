package policy

import (
	"testing"

	"github.com/napolitain/solver-slayer/internal/models"
)

func uniformWeights(n int) []float64 {
	q := make([]float64, n)
	for i := range q {
		q[i] = 1 / float64(n)
	}
	return q
}

func TestSelectUnconstrained(t *testing.T) {
	tasks := []*models.Task{
		mustTask(t, "A", 200, 1, 1),
		mustTask(t, "B", 50, 1, 1),
	}
	p := newProblem(tasks, models.Settings{TaskPointRevenue: 90, SkipPrice: 30})

	c := p.selectTasks(make([]bool, 2), uniformWeights(2), 125)

	if !c.do[0] || c.do[1] {
		t.Errorf("do = %v, want [true false]", c.do)
	}
	if c.mass != 0.5 {
		t.Errorf("mass = %.4f, want 0.5", c.mass)
	}
}

func TestSelectForcedLeastHarmfulFirst(t *testing.T) {
	tasks := []*models.Task{
		mustTask(t, "C", 10, 1, 1),
		mustTask(t, "D", 40, 1, 1),
		mustTask(t, "E", 100, 1, 1),
	}
	// pMin = 30 / 60 = 0.5
	p := newProblem(tasks, models.Settings{TaskPointRevenue: 30, SkipPrice: 30})

	c := p.selectTasks(make([]bool, 3), uniformWeights(3), 150)

	want := []bool{false, true, true}
	for i := range want {
		if c.do[i] != want[i] {
			t.Errorf("do[%s] = %v, want %v", tasks[i].Name(), c.do[i], want[i])
		}
	}
	if c.mass < p.pMin {
		t.Errorf("mass %.4f below pMin %.4f", c.mass, p.pMin)
	}
}

func TestSelectOvershootsThreshold(t *testing.T) {
	tasks := []*models.Task{
		mustTask(t, "big", 10, 9, 1),
		mustTask(t, "small", 20, 1, 1),
	}
	// pMin = 0.5 but the least harmful task carries only 10% of the weight
	p := newProblem(tasks, models.Settings{TaskPointRevenue: 30, SkipPrice: 30})

	c := p.selectTasks(make([]bool, 2), []float64{0.9, 0.1}, 100)

	if !c.do[0] || !c.do[1] {
		t.Errorf("do = %v, want both accepted", c.do)
	}
	if !approxEqual(c.mass, 1.0) {
		t.Errorf("mass = %.4f, want 1.0 (overshoot kept)", c.mass)
	}
}

func TestSelectBossDurations(t *testing.T) {
	tasks := []*models.Task{
		mustBoss(t, "rich", 300, 1, 0.5, 3),
		mustBoss(t, "poor", 20, 1, 1, 4),
	}
	p := newProblem(tasks, models.Settings{TaskPointRevenue: 10, SkipPrice: 30})

	c := p.selectTasks(make([]bool, 2), uniformWeights(2), 100)

	if c.hours[0] != 3 {
		t.Errorf("profitable boss hours = %.2f, want max 3", c.hours[0])
	}
	if c.hours[1] != 1 {
		t.Errorf("forced boss hours = %.2f, want min 1", c.hours[1])
	}
}

func TestSelectIgnoresRemoved(t *testing.T) {
	tasks := []*models.Task{
		mustTask(t, "A", 200, 1, 1),
		mustTask(t, "B", 50, 1, 1),
	}
	p := newProblem(tasks, models.Settings{TaskPointRevenue: 10, SkipPrice: 30})

	removed := []bool{true, false}
	c := p.selectTasks(removed, []float64{0, 1}, 10)

	if c.do[0] {
		t.Error("removed task was selected")
	}
	if !c.do[1] {
		t.Error("eligible task above rate should be selected")
	}
}

func TestSelectStrictInequality(t *testing.T) {
	tasks := []*models.Task{mustTask(t, "A", 100, 1, 1)}
	p := newProblem(tasks, models.Settings{TaskPointRevenue: 10, SkipPrice: 0})

	c := p.selectTasks(make([]bool, 1), []float64{1}, 100)

	if c.do[0] {
		t.Error("task exactly at the rate should not be accepted without a point constraint")
	}
}
