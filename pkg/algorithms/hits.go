package algorithms

import (
	"context"
	"math"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
)

// HITSOptions configures the hub/authority iteration.
type HITSOptions struct {
	MaxIterations int
	Tolerance     float64 // Convergence threshold on Σ|Δauth| + Σ|Δhub|
}

// DefaultHITSOptions returns default HITS configuration
func DefaultHITSOptions() HITSOptions {
	return HITSOptions{
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
	}
}

// Validate replaces out-of-range values with defaults.
func (o *HITSOptions) Validate() {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if math.IsNaN(o.Tolerance) || o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
}

// HITSResult contains hub and authority scores, each with L2 norm 1.
type HITSResult struct {
	Hubs         ScoreVector
	Authorities  ScoreVector
	Iterations   int
	Converged    bool
	State        IterationState
	Delta        float64
	Degeneracies int // normalisations skipped because the norm was zero
}

// HITS computes hub and authority scores by mutual power iteration:
//
//	authority(v) = Σ_{u→v} hub(u)
//	hub(u)       = Σ_{u→v} authority(v)
//
// Each round derives authorities from the previous hubs and then hubs from
// the new authorities, rather than updating both from the previous round.
// The sequential update reaches the same fixed point.
//
// Both vectors are L2-normalised after every round; a vector whose norm is
// zero keeps its previous value. Undirected edges are links in both
// directions.
//
// The context is checked once per round. On cancellation the current vectors
// are returned together with ctx.Err().
func HITS(ctx context.Context, g *graph.Snapshot, opts HITSOptions) (*HITSResult, error) {
	if err := requireNodes("HITS", g); err != nil {
		return nil, err
	}
	opts.Validate()

	n := g.NodeCount()
	initial := 1.0 / math.Sqrt(float64(n))

	hubs := make([]float64, n)
	authorities := make([]float64, n)
	for i := range n {
		hubs[i] = initial
		authorities[i] = initial
	}
	newHubs := make([]float64, n)
	newAuthorities := make([]float64, n)

	result := &HITSResult{}
	loop := newPowerIteration(opts.MaxIterations, opts.Tolerance)

	var cancelErr error
	for loop.next() {
		if err := ctx.Err(); err != nil {
			loop.cancel()
			cancelErr = err
			break
		}

		for v := range n {
			sum := 0.0
			for _, arc := range g.In(v) {
				sum += hubs[arc.To]
			}
			newAuthorities[v] = sum
		}
		if !normalizeL2(newAuthorities) {
			copy(newAuthorities, authorities)
			result.Degeneracies++
		}

		for u := range n {
			sum := 0.0
			for _, arc := range g.Out(u) {
				sum += newAuthorities[arc.To]
			}
			newHubs[u] = sum
		}
		if !normalizeL2(newHubs) {
			copy(newHubs, hubs)
			result.Degeneracies++
		}

		delta := 0.0
		for i := range n {
			delta += math.Abs(newAuthorities[i]-authorities[i]) + math.Abs(newHubs[i]-hubs[i])
		}

		hubs, newHubs = newHubs, hubs
		authorities, newAuthorities = newAuthorities, authorities
		loop.record(delta)
	}

	result.Hubs = newScoreVector(g, hubs)
	result.Authorities = newScoreVector(g, authorities)
	result.Iterations = loop.iteration
	result.State = loop.state
	result.Converged = loop.state == StateConverged
	result.Delta = loop.delta
	return result, cancelErr
}

// normalizeL2 scales v to unit Euclidean norm. It returns false, leaving v
// unchanged, when the norm is zero.
func normalizeL2(v []float64) bool {
	sq := 0.0
	for _, x := range v {
		sq += x * x
	}
	if sq == 0 {
		return false
	}
	norm := math.Sqrt(sq)
	for i := range v {
		v[i] /= norm
	}
	return true
}
