package pipeline

// State is the lifecycle position of a run.
type State int

const (
	// Idle is a run that has not started.
	Idle State = iota
	// Running is a run executing its steps.
	Running
	// Completed is a run whose steps all succeeded.
	Completed
	// Failed is a run with at least one failed step.
	Failed
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// FailurePolicy decides what happens to the remaining steps after a failure.
type FailurePolicy int

const (
	// Abort stops at the first failed step.
	Abort FailurePolicy = iota
	// Continue runs every step and collects failures.
	Continue
)

// Progress counts completed steps against the planned total.
type Progress struct {
	Completed int
	Total     int
}

// Percent returns floor(100 * Completed / Total); an empty plan is complete.
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 100
	}

	return 100 * p.Completed / p.Total
}
