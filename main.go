// =============================================================================
// XLCut - Main Entry Point
// =============================================================================
//
// This is the main entry point for the XLCut CLI application. It initializes
// the Cobra CLI framework and delegates command execution to the cmd package.
//
// USAGE:
//   xlcut              - Convert all XML files in the source directory
//   xlcut process      - Same, explicitly
//   xlcut version      - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core conversion logic (not for external import)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/xlcut/xlcut/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
