package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/dyluth/roost/internal/config"
	"github.com/dyluth/roost/internal/mission"
	"github.com/dyluth/roost/internal/printer"
	"github.com/dyluth/roost/internal/timespec"
)

var (
	runConfigPath string
	runDeadline   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a complete mission",
	Long: `Run all four mission phases in order: discovery, acquisition,
analysis and reporting. The run aborts on the first phase failure.

Examples:
  # Run with the default config file
  roost run

  # Run with an explicit config and a tighter deadline
  roost run --config ./missions/dawn.yml --timeout 2m

  # Deadlines can also be absolute RFC3339 timestamps
  roost run --timeout 2026-08-29T18:00:00Z`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRun,
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "roost.yml", "Path to mission configuration")
	runCmd.Flags().StringVar(&runDeadline, "timeout", "10m", "Overall mission deadline (duration or RFC3339)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	deadline, err := timespec.ParseFuture(runDeadline, time.Now())
	if err != nil {
		return printer.Error("Invalid mission deadline", err.Error(), []string{
			"Pass a duration like '10m' or an RFC3339 timestamp",
		})
	}

	cfg, err := config.Load(runConfigPath)
	if err != nil {
		return printer.Error("Invalid mission configuration", err.Error(), []string{
			"Check the roost.yml syntax against the documented schema",
		})
	}

	board, closeBoard, err := buildBoard(cfg)
	if err != nil {
		return printer.Error("Could not connect to the blackboard", err.Error(), []string{
			"Verify the redis.url setting, or remove it to use the in-memory board",
		})
	}
	if closeBoard != nil {
		defer closeBoard()
	}

	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()

	orchestrator := buildOrchestrator(cfg, board)
	printer.Info("Mission %s starting (%s)\n", orchestrator.MissionID(), cfg.Mission)

	report, err := orchestrator.Execute(ctx)
	if err != nil {
		printReport(report)
		return printer.Error("Mission failed", err.Error(), nil)
	}

	printReport(report)
	printer.Success("Mission completed in %s\n", report.ExecutionTime.Round(time.Millisecond))
	if report.DashboardURL != "" {
		printer.Info("Dashboard: %s\n", report.DashboardURL)
	}
	return nil
}

func printReport(report *mission.Report) {
	if report == nil {
		return
	}
	for _, rec := range report.ExecutionLog {
		switch rec.Status {
		case mission.PhaseStatusCompleted:
			printer.Phase(string(rec.Phase), "completed in %s\n", rec.Duration().Round(time.Millisecond))
		case mission.PhaseStatusFailed:
			printer.Phase(string(rec.Phase), "failed: %s\n", rec.Err)
		}
	}
	printer.Info("Sources: %d  Samples: %d  Analyzed: %d\n",
		report.Summary.SourcesDiscovered, report.Summary.SamplesAcquired, report.Summary.SamplesAnalyzed)
}
