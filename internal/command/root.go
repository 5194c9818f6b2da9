package command

import (
	"fmt"
	"os"

	"github.com/ericmwr/SOP-PR-CALC/internal/logging"
	"github.com/ericmwr/SOP-PR-CALC/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

var (
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sopcalc",
	Short: "An estimating worksheet for SOP production rates",
	Long: `Sopcalc is a CLI estimating worksheet for SOP production rates.

It allows you to:
- Create and manage worksheets with tasks and application methods
- Define global productivity factors and tune them per task
- Calculate blended production rate, labor hours and cost for a project area
- Export worksheets as JSON or flattened CSV tables

Use "sopcalc [command] --help" for more information about a command.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zapcore.WarnLevel
		if verbose {
			level = zapcore.DebugLevel
		}
		logging.Initialize(level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "configuration file path (default: search for "+store.DefaultConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// getStore creates a new file store with the configured config file
func getStore() *store.FileStore {
	return store.NewFileStore(configFile)
}
