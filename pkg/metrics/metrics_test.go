package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	m, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatal("Observer is not a prometheus.Metric")
	}
	var metric dto.Metric
	if err := m.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.RunsTotal == nil || r.RunDuration == nil {
		t.Error("Run metrics not initialized")
	}
	if r.Iterations == nil || r.NonConvergentTotal == nil || r.DegeneracyTotal == nil {
		t.Error("Convergence metrics not initialized")
	}
	if r.RepairFlipsTotal == nil || r.PartitionConflicts == nil {
		t.Error("Balance metrics not initialized")
	}
	if r.SnapshotNodes == nil || r.LastSnapshotEdges == nil {
		t.Error("Snapshot metrics not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordRun(t *testing.T) {
	r := NewRegistry()

	r.RecordRun("pagerank", "ok", 10*time.Millisecond)
	r.RecordRun("pagerank", "ok", 20*time.Millisecond)
	r.RecordRun("shortest_path", "no_path", 5*time.Millisecond)

	if got := counterValue(t, r.RunsTotal.WithLabelValues("pagerank", "ok")); got != 2 {
		t.Errorf("pagerank/ok = %v, want 2", got)
	}
	if got := counterValue(t, r.RunsTotal.WithLabelValues("shortest_path", "no_path")); got != 1 {
		t.Errorf("shortest_path/no_path = %v, want 1", got)
	}
	if got := histogramCount(t, r.RunDuration.WithLabelValues("pagerank")); got != 2 {
		t.Errorf("pagerank duration samples = %v, want 2", got)
	}
}

func TestStartRun(t *testing.T) {
	r := NewRegistry()

	done := r.StartRun("hits")
	if got := gaugeValue(t, r.RunsInFlight); got != 1 {
		t.Errorf("RunsInFlight = %v, want 1", got)
	}

	done("ok")
	if got := gaugeValue(t, r.RunsInFlight); got != 0 {
		t.Errorf("RunsInFlight after done = %v, want 0", got)
	}
	if got := counterValue(t, r.RunsTotal.WithLabelValues("hits", "ok")); got != 1 {
		t.Errorf("hits/ok = %v, want 1", got)
	}
}

func TestRecordConvergence(t *testing.T) {
	r := NewRegistry()

	r.RecordConvergence("pagerank", 12, "converged")
	r.RecordConvergence("pagerank", 100, "exhausted")
	r.RecordDegeneracy("hits", 2)
	r.RecordDegeneracy("hits", 0)

	if got := histogramCount(t, r.Iterations.WithLabelValues("pagerank")); got != 2 {
		t.Errorf("Iteration samples = %v, want 2", got)
	}
	if got := counterValue(t, r.NonConvergentTotal.WithLabelValues("pagerank", "exhausted")); got != 1 {
		t.Errorf("Non-convergent = %v, want 1", got)
	}
	if got := counterValue(t, r.DegeneracyTotal.WithLabelValues("hits")); got != 2 {
		t.Errorf("Degeneracies = %v, want 2", got)
	}
}

func TestRecordRepair(t *testing.T) {
	r := NewRegistry()

	r.RecordRepair("converged", 3, 0, 3)
	r.RecordRepair("stalled", 4, 2, 1)

	if got := counterValue(t, r.RepairFlipsTotal); got != 4 {
		t.Errorf("Repair flips = %v, want 4", got)
	}
	if got := counterValue(t, r.RepairOutcomes.WithLabelValues("stalled")); got != 1 {
		t.Errorf("Stalled outcomes = %v, want 1", got)
	}
	if got := histogramCount(t, r.PartitionConflicts.WithLabelValues("repair_remaining")); got != 2 {
		t.Errorf("Remaining conflict samples = %v, want 2", got)
	}
}

func TestRecordSnapshot(t *testing.T) {
	r := NewRegistry()

	r.RecordSnapshot(4, 4)
	r.RecordSnapshot(100, 250)

	if got := gaugeValue(t, r.LastSnapshotNodes); got != 100 {
		t.Errorf("LastSnapshotNodes = %v, want 100", got)
	}
	if got := gaugeValue(t, r.LastSnapshotEdges); got != 250 {
		t.Errorf("LastSnapshotEdges = %v, want 250", got)
	}
	if got := histogramCount(t, r.SnapshotNodes); got != 2 {
		t.Errorf("Snapshot node samples = %v, want 2", got)
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()
	r.UpdateSystemMetrics()

	if gaugeValue(t, r.GoRoutines) < 1 {
		t.Error("Expected at least one goroutine")
	}
	if gaugeValue(t, r.MemorySysBytes) <= 0 {
		t.Error("Expected non-zero memory from the OS")
	}
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.RecordRun("degree", "ok", time.Millisecond)

	path := filepath.Join(t.TempDir(), "graph_analyzer.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read textfile: %v", err)
	}
	if !strings.Contains(string(data), `graph_analyzer_runs_total{algorithm="degree",outcome="ok"} 1`) {
		t.Errorf("Textfile missing run counter:\n%s", data)
	}
}

func TestGetPrometheusRegistry(t *testing.T) {
	r := NewRegistry()
	r.RecordSnapshot(1, 0)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}
	if len(families) == 0 {
		t.Error("No metrics registered")
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), Namespace+"_") {
			t.Errorf("Metric %s is missing the %s prefix", mf.GetName(), Namespace)
		}
	}
}
