package algorithms

import (
	"context"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
)

// DefaultRepairIterations bounds the greedy repair loop.
const DefaultRepairIterations = 200

// RepairOptions configures MakeBalanced.
type RepairOptions struct {
	MaxIterations int
}

// DefaultRepairOptions returns default repair configuration
func DefaultRepairOptions() RepairOptions {
	return RepairOptions{MaxIterations: DefaultRepairIterations}
}

// Validate replaces out-of-range values with defaults.
func (o *RepairOptions) Validate() {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultRepairIterations
	}
}

// RepairRound describes one committed sign flip.
type RepairRound struct {
	Iteration       int
	EdgeID          string
	ConflictsBefore int
	ConflictsAfter  int
	Escape          bool // nothing improved; the least-worsening flip was taken
}

// RepairResult summarises a greedy repair run.
type RepairResult struct {
	// Snapshot is a fresh copy of the input carrying the best sign vector
	// seen during the run. The input snapshot is never modified.
	Snapshot           *graph.Snapshot
	State              IterationState
	Balanced           bool
	InitialConflicts   int
	RemainingConflicts int
	Iterations         int
	FlippedEdges       []string // edges whose sign in Snapshot differs from the input
	Rounds             []RepairRound
}

// repairRun is the state of one MakeBalanced call:
// Running{iteration, best} → Converged | Exhausted | Stalled | Cancelled.
type repairRun struct {
	g    *graph.Snapshot
	opts RepairOptions

	signs   []graph.Sign
	current partition

	best      []graph.Sign
	bestCount int

	iteration int
	escaped   bool
	// levelBeforeEscape is the conflict count before the last escape flip.
	levelBeforeEscape int

	state  IterationState
	rounds []RepairRound
}

// MakeBalanced greedily flips edge signs to reduce the conflicts reported by
// PartitionBySign.
//
// Each round recomputes the partition, simulates flipping every conflicting
// edge and commits the flip with the lowest resulting conflict count (ties
// go to the earliest conflict). When no flip strictly improves, the
// least-worsening flip is committed as an escape; if the round after an
// escape cannot get below the level before it, the run stops as Stalled.
// Under BFS conflicts, flipping a conflicting edge never grows the count, so
// the escape and Stalled paths only guard against a partition that stops
// shrinking. The run also stops at zero conflicts (Converged), after MaxIterations
// committed rounds (Exhausted), or when ctx is cancelled between rounds.
//
// Flips are applied to a sign vector owned by this call. The returned
// snapshot carries the best vector seen, so RemainingConflicts never exceeds
// InitialConflicts.
func MakeBalanced(ctx context.Context, g *graph.Snapshot, opts RepairOptions) (*RepairResult, error) {
	if err := requireNodes("MakeBalanced", g); err != nil {
		return nil, err
	}
	opts.Validate()

	signs := g.Signs()
	run := &repairRun{
		g:     g,
		opts:  opts,
		signs: signs,
		state: StateRunning,
	}
	run.current = propagateSigns(g, signs)
	run.best = append([]graph.Sign(nil), signs...)
	run.bestCount = len(run.current.conflicts)
	initial := run.bestCount

	var cancelErr error
	for !run.state.Terminal() {
		if err := ctx.Err(); err != nil {
			run.state = StateCancelled
			cancelErr = err
			break
		}
		run.step()
	}

	repaired := g.WithSigns(run.best)
	original := g.Edges()
	flipped := make([]string, 0)
	for i, e := range original {
		if run.best[i] != e.Sign {
			flipped = append(flipped, e.ID)
		}
	}

	return &RepairResult{
		Snapshot:           repaired,
		State:              run.state,
		Balanced:           run.bestCount == 0,
		InitialConflicts:   initial,
		RemainingConflicts: run.bestCount,
		Iterations:         run.iteration,
		FlippedEdges:       flipped,
		Rounds:             run.rounds,
	}, cancelErr
}

// step runs one round of the repair state machine.
func (r *repairRun) step() {
	count := len(r.current.conflicts)
	if count == 0 {
		r.state = StateConverged
		return
	}
	if r.iteration >= r.opts.MaxIterations {
		r.state = StateExhausted
		return
	}

	chosen := -1
	var chosenPartition partition
	for _, ei := range r.current.conflicts {
		r.signs[ei] = r.signs[ei].Flip()
		trial := propagateSigns(r.g, r.signs)
		r.signs[ei] = r.signs[ei].Flip()

		if chosen == -1 || len(trial.conflicts) < len(chosenPartition.conflicts) {
			chosen = ei
			chosenPartition = trial
		}
	}

	after := len(chosenPartition.conflicts)
	improving := after < count
	if r.escaped && after >= r.levelBeforeEscape {
		r.state = StateStalled
		return
	}

	r.signs[chosen] = r.signs[chosen].Flip()
	r.iteration++
	r.rounds = append(r.rounds, RepairRound{
		Iteration:       r.iteration,
		EdgeID:          r.g.Edge(chosen).ID,
		ConflictsBefore: count,
		ConflictsAfter:  after,
		Escape:          !improving,
	})

	// A round committed right after an escape is always below levelBeforeEscape,
	// so an escape can only follow a plain improvement.
	if improving {
		r.escaped = false
	} else {
		r.levelBeforeEscape = count
		r.escaped = true
	}
	r.current = chosenPartition

	if after < r.bestCount {
		r.bestCount = after
		copy(r.best, r.signs)
	}
}
