package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cda/internal/store"
)

var (
	historyLimit int
	historyShow  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List persisted analysis runs",
	Long: `List analysis runs persisted to the local history database.

Each run keeps its health and complexity scores in columns for quick
comparison; the full report is stored compressed and can be re-printed.

Examples:
  cda history
  cda history -n 50
  cda history --show 2f9d1c3a-5b2e-4f1d-9c7a-8e4b6d0a1f23`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to list")
	historyCmd.Flags().StringVar(&historyShow, "show", "", "Re-print the stored report for a run id")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	s, err := store.Open(cfg.Store.Dir, logger)
	if err != nil {
		return fmt.Errorf("run history unavailable: %w", err)
	}
	defer func() { _ = s.Close() }()

	if historyShow != "" {
		report, err := s.GetReport(historyShow)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(report, '\n'))
		return err
	}

	runs, err := s.ListRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %7s  %6s  %7s  %10s\n", "RUN", "STARTED", "CYCLES", "HEALTH", "COMPLEX", "ELAPSED")
	for _, r := range runs {
		fmt.Printf("%-36s  %-20s  %7d  %6.1f  %7.1f  %8dms\n",
			r.ID,
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.CycleCount,
			r.HealthScore,
			r.ComplexityScore,
			r.ElapsedMs,
		)
	}
	return nil
}
