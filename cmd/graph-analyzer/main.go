// Command graph-analyzer runs signed-graph algorithms from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/analysis"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/config"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/logging"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/metrics"
)

var (
	configPath string
	logLevel   string
	jsonOutput bool

	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "graph-analyzer",
		Short: "Shortest paths, centrality and structural balance for signed graphs",
		Long: `graph-analyzer computes shortest paths, centrality rankings, PageRank and
HITS scores, sign partitions and balance repairs over a graph snapshot.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				loaded.Logging.Level = logLevel
				if err := loaded.Validate(); err != nil {
					return err
				}
			}
			cfg = loaded
			logging.SetDefaultLogger(logging.NewDefaultLogger())
			logging.DefaultLogger().SetLevel(cfg.LogLevel())
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return writeMetrics()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")

	rootCmd.AddCommand(demoCmd, runCmd, benchmarkCmd, algorithmsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newEngine() *analysis.Engine {
	return analysis.NewEngine(cfg)
}

func writeMetrics() error {
	if cfg == nil || !cfg.Metrics.Enabled || cfg.Metrics.Textfile == "" {
		return nil
	}
	registry := metrics.DefaultRegistry()
	registry.UpdateSystemMetrics()
	if err := registry.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	logging.DefaultLogger().Debug("metrics written", logging.Path(cfg.Metrics.Textfile))
	return nil
}
