package algorithms

// IterationState is the state of a bounded iterative computation.
// Every loop starts Running and ends in exactly one terminal state.
type IterationState int

const (
	StateRunning IterationState = iota
	// StateConverged: the convergence criterion was met.
	StateConverged
	// StateExhausted: the iteration ceiling was reached first.
	StateExhausted
	// StateStalled: the loop stopped because it could not make progress.
	StateStalled
	// StateCancelled: the context was cancelled between rounds.
	StateCancelled
)

// String returns the lower-case state name.
func (s IterationState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateConverged:
		return "converged"
	case StateExhausted:
		return "exhausted"
	case StateStalled:
		return "stalled"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends the computation.
func (s IterationState) Terminal() bool {
	return s != StateRunning
}

// powerIteration tracks a bounded convergence loop. It is the shared state
// machine for PageRank and HITS: Running{iteration, delta} moves to Converged
// when delta drops below tolerance or to Exhausted at maxIterations.
type powerIteration struct {
	maxIterations int
	tolerance     float64

	iteration int
	delta     float64
	state     IterationState
}

func newPowerIteration(maxIterations int, tolerance float64) *powerIteration {
	return &powerIteration{
		maxIterations: maxIterations,
		tolerance:     tolerance,
		state:         StateRunning,
	}
}

// next reports whether another round may run, moving to Exhausted when the
// ceiling has been reached.
func (p *powerIteration) next() bool {
	if p.state.Terminal() {
		return false
	}
	if p.iteration >= p.maxIterations {
		p.state = StateExhausted
		return false
	}
	return true
}

// record stores the change of a finished round and checks convergence.
func (p *powerIteration) record(delta float64) {
	p.iteration++
	p.delta = delta
	if delta < p.tolerance {
		p.state = StateConverged
	}
}

func (p *powerIteration) stall() {
	p.state = StateStalled
}

func (p *powerIteration) cancel() {
	p.state = StateCancelled
}
