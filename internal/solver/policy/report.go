package policy

import (
	"fmt"
	"strings"

	"github.com/napolitain/solver-slayer/internal/models"
)

// FormatResult renders a result as fixed-format text: the two achieved
// rates followed by every action group with its count.
func FormatResult(r *models.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Value rate: %.2f per hour\n", r.AchievedValuePerHour)
	fmt.Fprintf(&b, "Point rate: %.4f per hour\n", r.PointsPerHour)

	for _, action := range models.AllActions() {
		names := r.Group(action)
		fmt.Fprintf(&b, "%s (%d):", action, len(names))
		if len(names) == 0 {
			b.WriteString(" none\n")
			continue
		}
		b.WriteString(" ")
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("\n")
	}

	return b.String()
}
