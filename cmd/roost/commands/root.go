package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "roost",
	Short: "Roost - autonomous sample-source mission pipeline",
	Long: `Roost discovers remote birdsong sample sources, probes their health
and responsiveness, and drives an acquisition, analysis and reporting
pipeline over the usable ones.

Phases coordinate exclusively through a shared blackboard store, so each
stage can be driven, inspected and tested on its own.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
