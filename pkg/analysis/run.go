package analysis

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/algorithms"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/config"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/logging"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/metrics"
)

// run is the state of a single Engine.Run call over a non-empty snapshot.
type run struct {
	ctx     context.Context
	cfg     *config.Config
	g       *graph.Snapshot
	req     Request
	res     *Result
	log     logging.Logger
	span    trace.Span
	metrics *metrics.Registry
}

func (r *run) dispatch() error {
	var err error
	switch r.req.Algorithm {
	case ShortestPath:
		err = r.shortestPath()
	case Degree:
		err = r.centrality(algorithms.DegreeCentrality)
	case Closeness:
		err = r.centrality(algorithms.ClosenessCentrality)
	case Betweenness:
		err = r.centrality(algorithms.BetweennessCentrality)
	case PageRank:
		err = r.pageRank()
	case HITS:
		err = r.hits()
	case Partition:
		err = r.partition()
	case TriangleBalance:
		err = r.triangles()
	case Repair:
		err = r.repair()
	case BFS:
		err = r.traverse(algorithms.BFS)
	case DFS:
		err = r.traverse(algorithms.DFS)
	case Properties:
		err = r.properties()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, r.req.Algorithm)
	}
	if err != nil {
		return err
	}

	props, err := algorithms.Describe(r.g)
	if err != nil {
		return err
	}
	r.res.describe(props)
	return nil
}

func (r *run) shortestPath() error {
	p, err := algorithms.ShortestPath(r.g, r.req.Source, r.req.Target)
	if err != nil {
		return err
	}

	dist, err := algorithms.SingleSourceDistances(r.g, r.req.Source)
	if err != nil {
		return err
	}
	r.res.Distances = make(map[string]float64, len(dist))
	for id, d := range dist {
		if dist.Reachable(id) {
			r.res.Distances[id] = d
		}
	}

	if !p.Found {
		r.res.Outcome = OutcomeNoPath
		r.res.status("⚠ No path from %s to %s", p.Source, p.Target)
		r.span.AddEvent("no_path")
		return nil
	}

	cost := p.Cost
	r.res.Path = p.Path
	r.res.Cost = &cost
	r.res.status("Path %s → %s: %s (Cost: %s)", p.Source, p.Target, joinPath(p.Path), formatCost(cost))
	r.span.SetAttributes(attribute.Int("hops", p.Hops()))
	return nil
}

func (r *run) centrality(compute func(*graph.Snapshot) (algorithms.ScoreVector, error)) error {
	scores, err := compute(r.g)
	if err != nil {
		return err
	}

	r.res.Scores = scores
	r.res.Ranking = rankingOf(scores)

	saturated := 0
	for _, ns := range scores {
		if ns.Score == algorithms.MaxScore {
			saturated++
		}
	}
	if saturated > 0 {
		r.log.Warn("scores clamped after overflow", logging.Int("saturated", saturated))
		r.span.AddEvent("degenerate", trace.WithAttributes(attribute.Int("saturated", saturated)))
		r.res.status("⚠ %d score(s) overflowed and were clamped", saturated)
		r.recordDegeneracy(saturated)
	}

	if top := scores.Top(1); len(top) == 1 {
		r.res.status("Highest %s: %s (%.4f)", r.req.Algorithm, top[0].NodeID, top[0].Score)
	}
	return nil
}

func (r *run) pageRank() error {
	pr, err := algorithms.PageRank(r.ctx, r.g, r.cfg.PageRankOptions())
	if pr == nil {
		return err
	}

	r.res.Scores = pr.Scores
	r.res.Ranking = rankingOf(pr.Scores)
	r.res.convergence(pr.Iterations, pr.State)
	r.observeConvergence(pr.Iterations, pr.State, pr.Delta)

	if pr.Degenerate {
		r.log.Warn("pagerank iterate summed to zero and was discarded",
			logging.Iteration(pr.Iterations),
			logging.Int("dangling_nodes", pr.DanglingNodes),
		)
		r.span.AddEvent("degenerate", trace.WithAttributes(attribute.Int("dangling_nodes", pr.DanglingNodes)))
		r.res.status("⚠ Rank mass vanished; kept the last valid iterate")
		r.recordDegeneracy(1)
	}
	if pr.DanglingNodes > 0 {
		r.res.status("%d dangling node(s) without out-links", pr.DanglingNodes)
	}
	return err
}

func (r *run) hits() error {
	h, err := algorithms.HITS(r.ctx, r.g, r.cfg.HITSOptions())
	if h == nil {
		return err
	}

	r.res.Hubs = h.Hubs
	r.res.Authorities = h.Authorities
	r.res.Ranking = rankingOf(h.Authorities)
	r.res.convergence(h.Iterations, h.State)
	r.observeConvergence(h.Iterations, h.State, h.Delta)

	if h.Degeneracies > 0 {
		r.log.Warn("hits normalisation skipped for zero vector",
			logging.Iteration(h.Iterations),
			logging.Count(h.Degeneracies),
		)
		r.span.AddEvent("degenerate", trace.WithAttributes(attribute.Int("count", h.Degeneracies)))
		r.res.status("⚠ %d zero-norm vector(s) kept their previous values", h.Degeneracies)
		r.recordDegeneracy(h.Degeneracies)
	}
	return err
}

func (r *run) partition() error {
	p, err := algorithms.PartitionBySign(r.g)
	if err != nil {
		return err
	}

	r.applyPartition(p)
	if r.metrics != nil {
		r.metrics.RecordConflicts("partition", len(p.Conflicts))
	}
	r.res.status("Group A: %s", strings.Join(p.Members(r.g, algorithms.GroupA), ", "))
	r.res.status("Group B: %s", strings.Join(p.Members(r.g, algorithms.GroupB), ", "))
	if p.Balanced {
		r.res.status("✓ Graph is structurally balanced")
	} else {
		r.res.status("⚠ %d conflicting edge(s) found", len(p.Conflicts))
	}
	return nil
}

func (r *run) applyPartition(p *algorithms.PartitionResult) {
	r.res.Partition = make(map[string]string, len(p.Assignment))
	for id, group := range p.Assignment {
		r.res.Partition[id] = group.String()
	}
	r.res.conflicts(p.Conflicts)
	r.res.balanced(p.Balanced)
	r.span.SetAttributes(attribute.Int("conflicts", len(p.Conflicts)))
}

func (r *run) triangles() error {
	report, err := algorithms.CheckTriangles(r.g)
	if err != nil {
		return err
	}

	r.res.Triangles = report.Triangles
	r.res.UnbalancedTriangles = report.Unbalanced
	r.res.balanced(report.Balanced)

	switch {
	case report.Triangles == 0:
		r.res.status("✓ No triangles to check")
	case report.Balanced:
		r.res.status("✓ All %d triangle(s) balanced", report.Triangles)
	default:
		r.res.status("⚠ %d of %d triangle(s) unbalanced", len(report.Unbalanced), report.Triangles)
	}
	return nil
}

func (r *run) repair() error {
	rr, err := algorithms.MakeBalanced(r.ctx, r.g, r.cfg.RepairOptions())
	if rr == nil {
		return err
	}

	for _, round := range rr.Rounds {
		r.log.Debug("repair round",
			logging.Iteration(round.Iteration),
			logging.EdgeID(round.EdgeID),
			logging.Conflicts(round.ConflictsAfter),
			logging.Int("conflicts_before", round.ConflictsBefore),
			logging.Bool("escape", round.Escape),
		)
	}

	r.res.Repaired = rr.Snapshot
	r.res.InitialConflicts = rr.InitialConflicts
	r.res.FlippedEdges = rr.FlippedEdges
	r.res.Signs = make(map[string]graph.Sign, rr.Snapshot.EdgeCount())
	for _, e := range rr.Snapshot.Edges() {
		r.res.Signs[e.ID] = e.Sign
	}

	p, perr := algorithms.PartitionBySign(rr.Snapshot)
	if perr != nil {
		return perr
	}
	r.applyPartition(p)
	r.res.convergence(rr.Iterations, rr.State)
	r.observeConvergence(rr.Iterations, rr.State, float64(rr.RemainingConflicts))

	if r.metrics != nil {
		r.metrics.RecordRepair(rr.State.String(), rr.InitialConflicts, rr.RemainingConflicts, len(rr.FlippedEdges))
	}
	r.span.SetAttributes(
		attribute.Int("initial_conflicts", rr.InitialConflicts),
		attribute.Int("flipped_edges", len(rr.FlippedEdges)),
	)

	if rr.Balanced {
		r.res.status("✓ Balanced after %d flip(s)", len(rr.FlippedEdges))
	} else {
		r.res.status("⚠ %d of %d conflict(s) remain after repair", rr.RemainingConflicts, rr.InitialConflicts)
	}
	if len(rr.FlippedEdges) > 0 {
		r.res.status("Flipped: %s", strings.Join(rr.FlippedEdges, ", "))
	}
	return err
}

func (r *run) traverse(walk func(*graph.Snapshot, string) (*algorithms.TraversalResult, error)) error {
	t, err := walk(r.g, r.req.Source)
	if err != nil {
		return err
	}

	r.res.Order = t.Order
	r.res.Depth = t.Depth
	r.res.status("Visited %d of %d node(s): %s", len(t.Order), r.g.NodeCount(), joinPath(t.Order))
	return nil
}

func (r *run) properties() error {
	props, err := algorithms.Describe(r.g)
	if err != nil {
		return err
	}

	r.res.status("Nodes: %d, edges: %d", props.NodeCount, props.EdgeCount)
	r.res.status("Density: %.3f, average degree: %.2f", props.Density, props.AverageDegree)
	if props.NegativeEdges > 0 {
		r.res.status("%d negative edge(s)", props.NegativeEdges)
	}
	return nil
}

func (r *run) observeConvergence(iterations int, state algorithms.IterationState, residual float64) {
	r.span.SetAttributes(
		attribute.Int("iterations", iterations),
		attribute.Bool("converged", state == algorithms.StateConverged),
		attribute.String("state", state.String()),
	)
	if r.metrics != nil {
		r.metrics.RecordConvergence(string(r.req.Algorithm), iterations, state.String())
	}
	if state != algorithms.StateConverged && state != algorithms.StateCancelled {
		r.log.Warn("iteration stopped without converging",
			logging.Iteration(iterations),
			logging.String("state", state.String()),
			logging.Float64("residual", residual),
		)
	}
}

func (r *run) recordDegeneracy(count int) {
	if r.metrics != nil {
		r.metrics.RecordDegeneracy(string(r.req.Algorithm), count)
	}
}
