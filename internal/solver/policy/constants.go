package policy

// Numerical tolerances and bounds
const (
	// ConvergenceEpsilon is the relative tolerance of the fixed-point iteration:
	// it stops once |R' - R| <= ConvergenceEpsilon * max(1, |R|)
	ConvergenceEpsilon = 1e-10

	// MaxIterations caps the fixed-point iteration of a single rate solve
	MaxIterations = 100

	// ValueEpsilon is the tolerance when comparing achieved value rates
	ValueEpsilon = 1e-10

	// PointsEpsilon is the tolerance when comparing point rates and point surplus
	PointsEpsilon = 1e-10
)
