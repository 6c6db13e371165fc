package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cda/internal/analysis"
	"cda/internal/detect"
	"cda/internal/loader"
	"cda/internal/store"
)

var (
	analyzeDetector  string
	analyzeMaxDepth  int
	analyzeMaxLength int
	analyzeMaxCycles int
	analyzeWorkers   int
	analyzeLevels    bool
	analyzeFormat    string
	analyzeNoStore   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <metadata-file>",
	Short: "Detect circular dependencies in extracted component metadata",
	Long: `Detect circular dependency cycles among managed components.

Reads a component metadata document (JSON, YAML, or TOML; optionally
zstd-compressed with a .zst suffix), builds the dependency graph,
detects cycles, classifies each by severity, type, and risk, attaches
ranked resolution strategies, and prints the diagnostic report.

Detection is bounded: traversal depth, accepted cycle length, and total
cycle count are capped, because highly connected graphs can contain
combinatorially many cycles. Hitting a cap logs a warning and is not an
error.

Examples:
  cda analyze components.json
  cda analyze --detector=tarjan components.yaml
  cda analyze --workers=4 --levels components.json.zst`,
	Args: cobra.ExactArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDetector, "detector", "", "Detection strategy: dfs or tarjan (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeMaxDepth, "max-depth", 0, "Maximum DFS traversal depth (default 25)")
	analyzeCmd.Flags().IntVar(&analyzeMaxLength, "max-cycle-length", 0, "Longest cycle accepted (default 20)")
	analyzeCmd.Flags().IntVar(&analyzeMaxCycles, "max-cycles", 0, "Maximum cycles collected (default 50)")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "Parallel traversal workers (default 1, serial)")
	analyzeCmd.Flags().BoolVar(&analyzeLevels, "levels", false, "Also run package-level detection")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "Output format (json, human)")
	analyzeCmd.Flags().BoolVar(&analyzeNoStore, "no-store", false, "Skip persisting the run to the history database")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)

	components, err := loader.NewLoader(logger).LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading metadata: %v\n", err)
		os.Exit(1)
	}

	opts := analysis.Options{
		Detector: analysis.DetectorKind(firstNonEmpty(analyzeDetector, cfg.Detection.Detector)),
		Limits: &detect.Limits{
			MaxDepth:       firstPositive(analyzeMaxDepth, cfg.Detection.MaxDepth),
			MaxCycleLength: firstPositive(analyzeMaxLength, cfg.Detection.MaxCycleLength),
			MaxCycles:      firstPositive(analyzeMaxCycles, cfg.Detection.MaxCycles),
			MaxSCCCycles:   cfg.Detection.MaxSCCCycles,
		},
		Workers: firstPositive(analyzeWorkers, cfg.Detection.Workers),
		Levels:  analyzeLevels || cfg.Detection.Levels,
	}

	result := analysis.NewAnalyzer(logger).Run(context.Background(), components, opts)

	if cfg.Store.Enabled && !analyzeNoStore && result.Success {
		if s, err := store.Open(cfg.Store.Dir, logger); err != nil {
			logger.Warn("Run history unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			if err := s.SaveRun(result); err != nil {
				logger.Warn("Failed to persist run", map[string]interface{}{
					"error": err.Error(),
				})
			}
			_ = s.Close()
		}
	}

	rendered, err := FormatResponse(result, OutputFormat(analyzeFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(rendered)

	if !result.Success {
		os.Exit(1)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
