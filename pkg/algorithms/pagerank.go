package algorithms

import (
	"context"
	"math"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
)

// PageRank configuration defaults.
const (
	DefaultDampingFactor = 0.85
	DefaultMaxIterations = 100
	DefaultTolerance     = 1e-6
)

// PageRankOptions configures PageRank algorithm
type PageRankOptions struct {
	DampingFactor float64 // Usually 0.85, must be in [0, 1]
	MaxIterations int
	Tolerance     float64 // Convergence threshold on Σ|Δrank|
}

// DefaultPageRankOptions returns default PageRank configuration
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		DampingFactor: DefaultDampingFactor,
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
	}
}

// Validate replaces out-of-range values with defaults.
func (o *PageRankOptions) Validate() {
	if math.IsNaN(o.DampingFactor) || o.DampingFactor < 0 || o.DampingFactor > 1 {
		o.DampingFactor = DefaultDampingFactor
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if math.IsNaN(o.Tolerance) || o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
}

// PageRankResult contains PageRank scores for all nodes
type PageRankResult struct {
	Scores        ScoreVector // normalised to sum to 1
	Iterations    int
	Converged     bool
	State         IterationState
	Delta         float64 // Σ|Δrank| of the last round
	DanglingNodes int     // nodes without traversable out-links
	Degenerate    bool    // an iterate summed to zero and was discarded
}

// PageRank computes PageRank by power iteration:
//
//	rank(v) = (1-d)/N + d·Σ_{u→v} rank(u)/outdeg(u)
//
// Undirected edges link both ways. Dangling nodes (no traversable out-links)
// contribute nothing to any node; their mass is NOT redistributed, so this is
// not a fully stochastic PageRank. The final vector is normalised to sum 1.
//
// The context is checked once per round. On cancellation the current,
// normalised iterate is returned together with ctx.Err().
func PageRank(ctx context.Context, g *graph.Snapshot, opts PageRankOptions) (*PageRankResult, error) {
	if err := requireNodes("PageRank", g); err != nil {
		return nil, err
	}
	opts.Validate()

	n := g.NodeCount()
	N := float64(n)
	d := opts.DampingFactor

	scores := make([]float64, n)
	newScores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / N
	}

	outDegree := make([]int, n)
	dangling := 0
	for i := range n {
		outDegree[i] = len(g.Out(i))
		if outDegree[i] == 0 {
			dangling++
		}
	}

	result := &PageRankResult{DanglingNodes: dangling}
	loop := newPowerIteration(opts.MaxIterations, opts.Tolerance)

	var cancelErr error
	for loop.next() {
		if err := ctx.Err(); err != nil {
			loop.cancel()
			cancelErr = err
			break
		}

		sum := 0.0
		for v := range n {
			newScore := (1.0 - d) / N
			for _, arc := range g.In(v) {
				u := arc.To
				if outCount := outDegree[u]; outCount > 0 {
					newScore += d * (scores[u] / float64(outCount))
				}
			}
			newScores[v] = newScore
			sum += newScore
		}

		// Only reachable with d == 1 once all mass has drained into dangling
		// nodes; keep the previous iterate rather than collapsing to zero.
		if sum == 0 {
			result.Degenerate = true
			loop.stall()
			break
		}

		delta := 0.0
		for i := range scores {
			delta += math.Abs(newScores[i] - scores[i])
		}

		scores, newScores = newScores, scores
		loop.record(delta)
	}

	normalizeSum(scores)

	result.Scores = newScoreVector(g, scores)
	result.Iterations = loop.iteration
	result.State = loop.state
	result.Converged = loop.state == StateConverged
	result.Delta = loop.delta
	return result, cancelErr
}

// normalizeSum scales scores to sum to 1. A zero sum leaves them untouched.
func normalizeSum(scores []float64) {
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	if sum > 0 {
		for i := range scores {
			scores[i] /= sum
		}
	}
}
