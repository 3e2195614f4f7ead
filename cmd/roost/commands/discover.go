package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/dyluth/roost/internal/config"
	"github.com/dyluth/roost/internal/printer"
	"github.com/dyluth/roost/internal/timespec"
)

var (
	discoverConfigPath string
	discoverDeadline   string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Probe and rank sample sources without running a mission",
	Long: `Enumerate all configured sources, probe their health concurrently,
and print the usable ones ranked by quality score. Nothing is published
to the blackboard; this is a read-only inspection of source health.

Examples:
  # Show usable sources for the default config
  roost discover

  # Use a different config file
  roost discover --config ./missions/dawn.yml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDiscover,
}

func init() {
	discoverCmd.Flags().StringVar(&discoverConfigPath, "config", "roost.yml", "Path to mission configuration")
	discoverCmd.Flags().StringVar(&discoverDeadline, "timeout", "2m", "Discovery deadline (duration or RFC3339)")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	deadline, err := timespec.ParseFuture(discoverDeadline, time.Now())
	if err != nil {
		return printer.Error("Invalid discovery deadline", err.Error(), nil)
	}

	cfg, err := config.Load(discoverConfigPath)
	if err != nil {
		return printer.Error("Invalid mission configuration", err.Error(), nil)
	}

	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()

	endpoints, err := buildDiscoveryEngine(cfg).Discover(ctx)
	if err != nil {
		return printer.Error("Discovery failed", err.Error(), []string{
			"Check that at least one configured source or registry is reachable",
		})
	}

	printer.SourceTable(endpoints)
	return nil
}
