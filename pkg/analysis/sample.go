package analysis

import "github.com/dd0wney/cluso-graph-analyzer/pkg/graph"

// SampleGraph returns the four-node demo graph: A-B 5, B-C 3, B-D 7 and
// A-D 2, all undirected and positive.
func SampleGraph() *graph.Snapshot {
	b := graph.NewBuilder()
	must(b.AddNodes("A", "B", "C", "D"))
	must(b.Connect("A", "B", 5, graph.Positive))
	must(b.Connect("B", "C", 3, graph.Positive))
	must(b.Connect("B", "D", 7, graph.Positive))
	must(b.Connect("A", "D", 2, graph.Positive))
	return b.Build()
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
