// =============================================================================
// XLCut - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'process', 'version') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (xlcut)
//   ├── processCmd (xlcut process)
//   └── versionCmd (xlcut version)
//
// Running the bare binary with no arguments performs the conversion, so the
// everyday workflow is: drop XML files into the source folder, run xlcut,
// pick up the workbook from the output folder.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "xlcut",
	Short: "XLCut - Convert a folder of XML files to a formatted Excel workbook",
	Long: `XLCut converts a folder of XML files into a formatted Excel workbook.

It auto-detects the repeating elements in each document, flattens nested
structure into dotted column names, and writes one worksheet per detected
row shape. No schema definition is needed.

Example Usage:
  xlcut                       # Convert everything in ./source to ./output
  xlcut process               # Same as above
  xlcut --config ./my.yaml    # Use a custom configuration file`,

	// Running the bare command performs the conversion.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
