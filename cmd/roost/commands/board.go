package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dyluth/roost/internal/config"
	"github.com/dyluth/roost/internal/inspect"
	"github.com/dyluth/roost/internal/printer"
	"github.com/dyluth/roost/pkg/blackboard"
)

var (
	boardConfigPath string
	boardOutput     string
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Inspect the mission blackboard",
	Long: `Inspect the coordination entries a mission has published. Inspection
reads another process's state, so it requires the Redis board (redis.url
in roost.yml); the in-memory board is private to each invocation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board entries for the mission",
	Long: `List every coordination entry the mission has written so far, in
phase order.

Examples:
  # Table of entries with truncated values
  roost board list

  # Complete entries for processing with jq
  roost board list --output jsonl`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBoardList,
}

var boardGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one board entry as pretty-printed JSON",
	Long: `Show the full stored value for one coordination key. The key may be
abbreviated to any unambiguous prefix.

Examples:
  roost board get active_sources
  roost board get act`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBoardGet,
}

func init() {
	boardCmd.PersistentFlags().StringVar(&boardConfigPath, "config", "roost.yml", "Path to mission configuration")
	boardListCmd.Flags().StringVar(&boardOutput, "output", "default", "Output format: default or jsonl")
	boardCmd.AddCommand(boardListCmd)
	boardCmd.AddCommand(boardGetCmd)
	rootCmd.AddCommand(boardCmd)
}

// boardHandle pairs a connected board with its closer.
type boardHandle struct {
	board blackboard.Board
	close func() error
}

func (h *boardHandle) Close() {
	if h.close != nil {
		_ = h.close()
	}
}

// boardSession loads config and connects to the Redis board for inspection.
func boardSession() (*config.RoostConfig, *boardHandle, error) {
	cfg, err := config.Load(boardConfigPath)
	if err != nil {
		return nil, nil, printer.Error("Invalid mission configuration", err.Error(), nil)
	}

	if cfg.Redis == nil || cfg.Redis.URL == "" {
		return nil, nil, printer.Error("Board inspection needs the Redis board",
			"The in-memory board is private to each process, so there is nothing for a separate inspection command to read.",
			[]string{"Set redis.url in roost.yml"})
	}

	board, closeBoard, err := buildBoard(cfg)
	if err != nil {
		return nil, nil, printer.Error("Could not connect to the blackboard", err.Error(), nil)
	}

	return cfg, &boardHandle{board: board, close: closeBoard}, nil
}

func runBoardList(cmd *cobra.Command, args []string) error {
	format := inspect.OutputFormat(boardOutput)
	if format != inspect.OutputFormatDefault && format != inspect.OutputFormatJSONL {
		return printer.Error("Invalid output format",
			fmt.Sprintf("Expected 'default' or 'jsonl', got %q.", boardOutput), nil)
	}

	cfg, handle, err := boardSession()
	if err != nil {
		return err
	}
	defer handle.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := inspect.ListEntries(ctx, handle.board, cfg.Mission, format, os.Stdout); err != nil {
		return printer.Error("Board list failed", err.Error(), nil)
	}
	return nil
}

func runBoardGet(cmd *cobra.Command, args []string) error {
	_, handle, err := boardSession()
	if err != nil {
		return err
	}
	defer handle.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := inspect.GetEntry(ctx, handle.board, args[0], os.Stdout); err != nil {
		if inspect.IsNotFound(err) {
			return printer.Error("Entry not found", err.Error(), []string{
				"Run 'roost board list' to see which keys have been written",
			})
		}
		return printer.Error("Board get failed", err.Error(), nil)
	}
	return nil
}
