package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/algorithms"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
)

// Outcome classifies a successful run.
type Outcome string

const (
	OutcomeOK         Outcome = "ok"
	OutcomeNoPath     Outcome = "no_path"
	OutcomeEmptyGraph Outcome = "empty_graph"
)

// Result is the flat record of one engine run. Only the fields relevant to
// the algorithm are populated; the graph properties are filled for every
// non-empty snapshot.
type Result struct {
	RunID     string    `json:"run_id"`
	Algorithm Algorithm `json:"algorithm"`
	Outcome   Outcome   `json:"outcome"`
	Source    string    `json:"source,omitempty"`
	Target    string    `json:"target,omitempty"`

	// Shortest path. Cost is nil when no path exists; Distances lists only
	// reachable nodes.
	Path      []string           `json:"path,omitempty"`
	Cost      *float64           `json:"cost,omitempty"`
	Distances map[string]float64 `json:"distances,omitempty"`

	// Scores and rankings.
	Scores      algorithms.ScoreVector `json:"scores,omitempty"`
	Hubs        algorithms.ScoreVector `json:"hubs,omitempty"`
	Authorities algorithms.ScoreVector `json:"authorities,omitempty"`
	Ranking     []string               `json:"ranking,omitempty"`

	// Structural balance.
	Partition           map[string]string     `json:"partition,omitempty"`
	Conflicts           []algorithms.Conflict `json:"conflicts,omitempty"`
	ConflictCount       int                   `json:"conflict_count"`
	Balanced            *bool                 `json:"balanced,omitempty"`
	Triangles           int                   `json:"triangles,omitempty"`
	UnbalancedTriangles []algorithms.Triangle `json:"unbalanced_triangles,omitempty"`
	InitialConflicts    int                   `json:"initial_conflicts,omitempty"`
	FlippedEdges        []string              `json:"flipped_edges,omitempty"`
	Signs               map[string]graph.Sign `json:"signs,omitempty"`

	// Traversal.
	Order []string       `json:"order,omitempty"`
	Depth map[string]int `json:"depth,omitempty"`

	// Iterative algorithms.
	Iterations int    `json:"iterations,omitempty"`
	Converged  *bool  `json:"converged,omitempty"`
	State      string `json:"state,omitempty"`

	*algorithms.GraphProperties

	// Status holds the algorithm lines and the execution time; GraphStatus
	// holds the connectivity, self-loop and multi-edge checks.
	Status        []string `json:"status"`
	GraphStatus   []string `json:"graph_status,omitempty"`
	ElapsedMillis float64  `json:"elapsed_ms"`

	// Repaired is the snapshot produced by the repair algorithm.
	Repaired *graph.Snapshot `json:"-"`
}

func newResult(runID string, req Request) *Result {
	return &Result{
		RunID:     runID,
		Algorithm: req.Algorithm,
		Outcome:   OutcomeOK,
		Source:    req.Source,
		Target:    req.Target,
		Status:    make([]string, 0),
	}
}

func (r *Result) status(format string, args ...any) {
	r.Status = append(r.Status, fmt.Sprintf(format, args...))
}

// describe records props and the graph status lines derived from them.
func (r *Result) describe(props *algorithms.GraphProperties) {
	r.GraphProperties = props
	r.GraphStatus = make([]string, 0, 3)

	if props.Connected {
		r.GraphStatus = append(r.GraphStatus, "✓ Connected graph")
	} else {
		r.GraphStatus = append(r.GraphStatus, fmt.Sprintf("⚠ Graph has %d connected components", props.Components))
	}

	if props.SelfLoops == 0 {
		r.GraphStatus = append(r.GraphStatus, "✓ No self-loops detected")
	} else {
		r.GraphStatus = append(r.GraphStatus, fmt.Sprintf("⚠ %d self-loop(s) detected", props.SelfLoops))
	}

	if props.MultiEdges {
		r.GraphStatus = append(r.GraphStatus, "⚠ Multiple edges found")
	} else {
		r.GraphStatus = append(r.GraphStatus, "✓ No multiple edges")
	}
}

func (r *Result) finish(elapsed time.Duration) {
	r.ElapsedMillis = float64(elapsed.Microseconds()) / 1000
	r.status("Execution time: %.3fms", r.ElapsedMillis)
}

func (r *Result) convergence(iterations int, state algorithms.IterationState) {
	converged := state == algorithms.StateConverged
	r.Iterations = iterations
	r.Converged = &converged
	r.State = state.String()

	if converged {
		r.status("✓ Converged after %d iteration(s)", iterations)
	} else {
		r.status("⚠ Stopped after %d iteration(s) without converging (%s)", iterations, state)
	}
}

func (r *Result) balanced(ok bool) {
	r.Balanced = &ok
}

func (r *Result) conflicts(conflicts []algorithms.Conflict) {
	r.Conflicts = conflicts
	r.ConflictCount = len(conflicts)
}

func rankingOf(scores algorithms.ScoreVector) []string {
	ranked := scores.Ranked()
	ids := make([]string, len(ranked))
	for i, s := range ranked {
		ids[i] = s.NodeID
	}
	return ids
}

func formatCost(cost float64) string {
	return strconv.FormatFloat(cost, 'f', -1, 64)
}

func joinPath(ids []string) string {
	return strings.Join(ids, " → ")
}
