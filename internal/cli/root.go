// Package cli implements the packsize command-line interface.
//
// This package provides commands for analyzing dependency manifests
// (requirements.txt, package.json), serving the analysis engine over HTTP,
// and browsing archived reports. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - analyze: Resolve manifest packages and estimate image footprint
//   - serve: Expose the analysis engine over HTTP
//   - reports: Browse archived analysis reports
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mwittig/packsize/pkg/config"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with
// values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the packsize CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree under
// ctx, which carries cancellation from the process signal handler. The
// logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "packsize",
		Short:        "packsize estimates the container footprint of your dependencies",
		Long:         `packsize inspects Python and Node.js dependency manifests, resolves package metadata from PyPI or npm, and reports package sizes, version conflicts, and estimated Docker image sizes for full, slim, and alpine bases.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("packsize %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/packsize/config.toml)")

	root.AddCommand(newAnalyzeCmd(&configPath))
	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newReportsCmd(&configPath))

	return root.ExecuteContext(ctx)
}

// loadConfig resolves the effective configuration for a command invocation.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err == nil {
			path = defaultPath
		}
	}
	return config.Load(path)
}
