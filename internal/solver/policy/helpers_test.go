package policy

import (
	"testing"

	"github.com/napolitain/solver-slayer/internal/models"
)

// mustTask builds a fixed-duration task or fails the test
func mustTask(t testing.TB, name string, value, weight, hours float64) *models.Task {
	t.Helper()
	task, err := models.NewFixedTask(name, value, weight, hours)
	if err != nil {
		t.Fatalf("NewFixedTask(%s): %v", name, err)
	}
	return task
}

// mustBoss builds a boss task or fails the test
func mustBoss(t testing.TB, name string, value, weight, minHours, maxHours float64) *models.Task {
	t.Helper()
	task, err := models.NewBossTask(name, value, weight, minHours, maxHours)
	if err != nil {
		t.Fatalf("NewBossTask(%s): %v", name, err)
	}
	return task
}
