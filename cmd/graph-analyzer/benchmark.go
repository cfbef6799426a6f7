package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/analysis"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/validation"
)

var (
	benchNodes    int
	benchEdges    int
	benchSeed     int64
	benchNegative float64
	benchDirected float64

	benchmarkCmd = &cobra.Command{
		Use:   "benchmark [algorithm...]",
		Short: "Time algorithms over a random signed graph",
		RunE:  runBenchmark,
	}
)

func init() {
	benchmarkCmd.Flags().IntVar(&benchNodes, "nodes", 1000, "number of nodes to create")
	benchmarkCmd.Flags().IntVar(&benchEdges, "edges", 3000, "number of edges to create")
	benchmarkCmd.Flags().Int64Var(&benchSeed, "seed", 1, "random seed")
	benchmarkCmd.Flags().Float64Var(&benchNegative, "negative", 0.3, "fraction of negative edges")
	benchmarkCmd.Flags().Float64Var(&benchDirected, "directed", 0, "fraction of directed edges")
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	if benchNodes < 2 {
		return fmt.Errorf("--nodes must be at least 2, got %d", benchNodes)
	}

	algs := analysis.Algorithms()
	if len(args) > 0 {
		algs = algs[:0]
		for _, name := range args {
			alg, err := analysis.ParseAlgorithm(name)
			if err != nil {
				return err
			}
			algs = append(algs, alg)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "🔥 Graph Analyzer - Algorithms Benchmark\n")
	fmt.Fprintf(out, "========================================\n\n")
	fmt.Fprintf(out, "Configuration:\n")
	fmt.Fprintf(out, "  Nodes: %d\n", benchNodes)
	fmt.Fprintf(out, "  Edges: %d\n", benchEdges)
	fmt.Fprintf(out, "  Negative fraction: %.2f\n", benchNegative)
	fmt.Fprintf(out, "  Seed: %d\n\n", benchSeed)

	fmt.Fprintf(out, "📝 Building random signed graph...\n")
	start := time.Now()
	g, err := randomSignedGraph(rand.New(rand.NewSource(benchSeed)), benchNodes, benchEdges, benchNegative, benchDirected)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✅ Built %d nodes and %d edges in %v\n", g.NodeCount(), g.EdgeCount(), time.Since(start))

	engine := newEngine()
	source := g.NodeID(0)
	target := g.NodeID(g.NodeCount() - 1)

	for i, alg := range algs {
		fmt.Fprintf(out, "\n📊 Benchmark %d: %s\n", i+1, alg)
		start := time.Now()
		res, err := engine.Run(cmd.Context(), g, analysis.Request{Algorithm: alg, Source: source, Target: target})
		if err != nil {
			return fmt.Errorf("%s failed: %w", alg, err)
		}
		fmt.Fprintf(out, "✅ %s completed in %v\n", alg, time.Since(start))
		printBenchmarkDetails(out, res)
	}
	return nil
}

func printBenchmarkDetails(w io.Writer, res *analysis.Result) {
	if res.Iterations > 0 || res.Converged != nil {
		fmt.Fprintf(w, "  Iterations: %d (%s)\n", res.Iterations, res.State)
	}
	if res.Balanced != nil {
		fmt.Fprintf(w, "  Balanced: %v, conflicts: %d\n", *res.Balanced, res.ConflictCount)
	}
	if len(res.FlippedEdges) > 0 {
		fmt.Fprintf(w, "  Flipped edges: %d (from %d conflicts)\n", len(res.FlippedEdges), res.InitialConflicts)
	}
	if len(res.Ranking) > 0 {
		fmt.Fprintf(w, "  Top nodes: %v\n", res.Ranking[:min(5, len(res.Ranking))])
	}
	if res.Cost != nil {
		fmt.Fprintf(w, "  Path cost: %g over %d hops\n", *res.Cost, len(res.Path)-1)
	}
	if len(res.Order) > 0 {
		fmt.Fprintf(w, "  Reached: %d nodes\n", len(res.Order))
	}
}

// randomSignedGraph builds a graph with integer weights in [1, 10]. A drawn
// self-loop is shifted to the next node.
func randomSignedGraph(rng *rand.Rand, nodes, edges int, negative, directed float64) (*graph.Snapshot, error) {
	b := graph.NewBuilder()
	ids := make([]string, nodes)
	for i := range nodes {
		ids[i] = fmt.Sprintf("user%d", i)
		if err := b.AddNode(ids[i], ""); err != nil {
			return nil, err
		}
	}

	for range edges {
		from := rng.Intn(nodes)
		to := rng.Intn(nodes)
		if from == to {
			to = (to + 1) % nodes
		}

		sign := graph.Positive
		if rng.Float64() < negative {
			sign = graph.Negative
		}

		err := b.AddEdge(validation.EdgeElement{
			Source:   ids[from],
			Target:   ids[to],
			Weight:   float64(1 + rng.Intn(10)),
			Sign:     sign,
			Directed: rng.Float64() < directed,
		})
		if err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}
