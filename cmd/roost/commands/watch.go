package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dyluth/roost/internal/printer"
	"github.com/dyluth/roost/internal/timespec"
	"github.com/dyluth/roost/internal/watch"
)

var (
	watchDeadline string
	watchInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream blackboard updates from a running mission",
	Long: `Follow the mission blackboard and print every coordination entry as
it is written, one JSON object per line. Like the other board commands
this requires the Redis board (redis.url in roost.yml).

Examples:
  # Watch a mission started in another terminal
  roost watch

  # Watch with a tighter polling interval and a deadline
  roost watch --interval 100ms --timeout 30m`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&boardConfigPath, "config", "roost.yml", "Path to mission configuration")
	watchCmd.Flags().StringVar(&watchDeadline, "timeout", "1h", "Watch deadline (duration or RFC3339)")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", watch.DefaultInterval, "Polling interval")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	deadline, err := timespec.ParseFuture(watchDeadline, time.Now())
	if err != nil {
		return printer.Error("Invalid watch deadline", err.Error(), nil)
	}

	_, handle, err := boardSession()
	if err != nil {
		return err
	}
	defer handle.Close()

	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()

	err = watch.Stream(ctx, handle.board, watchInterval, func(e watch.Event) {
		line, merr := json.Marshal(e)
		if merr != nil {
			return
		}
		fmt.Println(string(line))
	})

	// Reaching the deadline is the normal way a watch ends.
	if errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
