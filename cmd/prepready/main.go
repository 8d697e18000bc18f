// PrepReady: food safety compliance MCP server.
//
// Guides food businesses through self-audits against published food
// safety frameworks, tracks operational records, and reports how ready
// the business is for its next health inspection.
//
// Usage:
//
//	prepready serve    # Start MCP server (stdio transport)
//	prepready update   # Update to the latest version
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	ppserver "github.com/prepready/prepready/internal/server"
	"github.com/prepready/prepready/internal/updater"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "update":
		runUpdate()
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("prepready v%s\n", ppserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s, cleanup, err := ppserver.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Background version check — prints to stderr so it doesn't
	// interfere with MCP's stdio transport on stdout.
	go checkForUpdates()

	return server.ServeStdio(s)
}

// checkForUpdates runs a non-blocking version check and prints a notice
// to stderr if an update is available. Best-effort; network failures
// are silently ignored.
func checkForUpdates() {
	result := updater.CheckVersion(ppserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  Update available: v%s → v%s\n"+
				"  Run: prepready update\n"+
				"  Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

// runUpdate performs a self-update to the latest version.
func runUpdate() {
	fmt.Fprintln(os.Stderr, "Checking for updates...")

	result := updater.CheckVersion(ppserver.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(os.Stderr, "Already at the latest version (v%s)\n", result.CurrentVersion)
		return
	}

	fmt.Fprintf(os.Stderr, "New version available: v%s → v%s\nDownloading...\n",
		result.CurrentVersion, result.LatestVersion)

	if err := updater.SelfUpdate(ppserver.Version); err != nil {
		fmt.Fprintf(os.Stderr, "Update failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "\n  You can download manually from:\n  %s\n", result.ReleaseURL)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Updated to v%s!\nRestart prepready to use the new version.\n", result.LatestVersion)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `PrepReady v%s — Food Safety Compliance MCP Server

Usage:
  prepready serve    Start the MCP server (stdio transport)
  prepready update   Update to the latest version

Environment:
  PREPREADY_DATA_DIR        Where the SQLite database lives (default ~/.prepready)
  PREPREADY_FRAMEWORK_DIR   Directory of extra framework YAML files
  PREPREADY_ORG             Default organization identifier (default "default")
  PREPREADY_FRAMEWORK       Default audit framework key (default "eatsafe")

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "prepready": {
        "command": "prepready",
        "args": ["serve"]
      }
    }
  }
`, ppserver.Version)
}
