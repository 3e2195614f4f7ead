package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dyluth/roost/internal/config"
	"github.com/dyluth/roost/internal/mission"
	"github.com/dyluth/roost/internal/printer"
	"github.com/dyluth/roost/internal/timespec"
)

var (
	phaseConfigPath string
	phaseDeadline   string
)

var phaseCmd = &cobra.Command{
	Use:   "phase <number>",
	Short: "Run a single mission phase",
	Long: `Run one phase by number: 1=discovery, 2=acquisition, 3=analysis,
4=reporting. Later phases read their inputs from the blackboard, so
stepping through a mission phase by phase requires the Redis board
(redis.url in roost.yml) to carry state between invocations.

Examples:
  # Run discovery only
  roost phase 1

  # Then acquisition, against the same Redis-backed blackboard
  roost phase 2`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPhase,
}

func init() {
	phaseCmd.Flags().StringVar(&phaseConfigPath, "config", "roost.yml", "Path to mission configuration")
	phaseCmd.Flags().StringVar(&phaseDeadline, "timeout", "5m", "Phase deadline (duration or RFC3339)")
	rootCmd.AddCommand(phaseCmd)
}

func runPhase(cmd *cobra.Command, args []string) error {
	var n int
	if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil || n < 1 || n > mission.NumPhases {
		return printer.Error("Invalid phase number",
			fmt.Sprintf("Expected a number from 1 to %d, got %q.", mission.NumPhases, args[0]), nil)
	}

	deadline, err := timespec.ParseFuture(phaseDeadline, time.Now())
	if err != nil {
		return printer.Error("Invalid phase deadline", err.Error(), nil)
	}

	cfg, err := config.Load(phaseConfigPath)
	if err != nil {
		return printer.Error("Invalid mission configuration", err.Error(), nil)
	}

	if n > 1 && (cfg.Redis == nil || cfg.Redis.URL == "") {
		return printer.Error("Phase needs a persistent blackboard",
			fmt.Sprintf("Phase %d reads the previous phase's output from the blackboard, but the in-memory board does not survive between invocations.", n),
			[]string{
				"Set redis.url in roost.yml and re-run each phase against it",
				"Use 'roost run' to execute all phases in one process",
			})
	}

	board, closeBoard, err := buildBoard(cfg)
	if err != nil {
		return printer.Error("Could not connect to the blackboard", err.Error(), nil)
	}
	if closeBoard != nil {
		defer closeBoard()
	}

	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()

	orchestrator := buildOrchestrator(cfg, board)
	if err := orchestrator.ExecutePhase(ctx, n); err != nil {
		return printer.Error(fmt.Sprintf("Phase %d failed", n), err.Error(), nil)
	}

	rec := orchestrator.ExecutionLog()[0]
	printer.Success("Phase %s completed in %s\n", rec.Phase, rec.Duration().Round(time.Millisecond))
	return nil
}
