package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/algorithms"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/logging"
)

func envMap(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, algorithms.DefaultPageRankOptions(), cfg.PageRankOptions())
	assert.Equal(t, algorithms.DefaultHITSOptions(), cfg.HITSOptions())
	assert.Equal(t, algorithms.DefaultRepairOptions(), cfg.RepairOptions())
	assert.Equal(t, logging.InfoLevel, cfg.LogLevel())
	assert.Zero(t, cfg.Engine.RunTimeout)
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
logging:
  level: debug
engine:
  run_timeout: 30s
pagerank:
  damping_factor: 0.9
repair:
  max_iterations: 50
metrics:
  textfile: /tmp/analyzer.prom
`))
	require.NoError(t, err)

	assert.Equal(t, logging.DebugLevel, cfg.LogLevel())
	assert.Equal(t, 30*time.Second, cfg.Engine.RunTimeout)
	assert.Equal(t, 0.9, cfg.PageRank.DampingFactor)
	assert.Equal(t, algorithms.DefaultMaxIterations, cfg.PageRank.MaxIterations, "unset keys keep defaults")
	assert.Equal(t, 50, cfg.Repair.MaxIterations)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/tmp/analyzer.prom", cfg.Metrics.Textfile)
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("pagerank:\n  dampening: 0.5\n"))
	assert.Error(t, err)
}

func TestValidate_ReportsEverySection(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"
	cfg.PageRank.DampingFactor = 1.5
	cfg.HITS.Tolerance = 0
	cfg.Repair.MaxIterations = 0
	cfg.Engine.RunTimeout = -time.Second

	err := cfg.Validate()
	require.Error(t, err)

	for _, field := range []string{
		"logging.level",
		"pagerank.damping_factor",
		"hits.tolerance",
		"repair.max_iterations",
		"engine.run_timeout",
	} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestValidate_TextfileRequiresMetrics(t *testing.T) {
	cfg := Default()
	cfg.Metrics.Enabled = false
	cfg.Metrics.Textfile = "out.prom"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics.enabled")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()

	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvLogLevel:            "warn",
		EnvRepairMaxIterations: "12",
		EnvMetricsTextfile:     "metrics.prom",
		EnvRunTimeout:          "2m",
	}))
	require.NoError(t, err)

	assert.Equal(t, logging.WarnLevel, cfg.LogLevel())
	assert.Equal(t, 12, cfg.Repair.MaxIterations)
	assert.Equal(t, "metrics.prom", cfg.Metrics.Textfile)
	assert.Equal(t, 2*time.Minute, cfg.Engine.RunTimeout)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.ApplyEnv(envMap(map[string]string{EnvRepairMaxIterations: "many"})))
	assert.Error(t, cfg.ApplyEnv(envMap(map[string]string{EnvRunTimeout: "soon"})))
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyzer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repair:\n  max_iterations: 40\nhits:\n  max_iterations: 7\n"), 0o600))

	t.Setenv(EnvRepairMaxIterations, "15")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Repair.MaxIterations, "environment wins over file")
	assert.Equal(t, 7, cfg.HITS.MaxIterations)
	assert.Equal(t, logging.ErrorLevel, cfg.LogLevel())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pagerank: [not, a, map]\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}
