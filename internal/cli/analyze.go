package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwittig/packsize/pkg/analyzer"
	"github.com/mwittig/packsize/pkg/cache"
	"github.com/mwittig/packsize/pkg/manifest"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	ecoType string // manifest ecosystem (auto-detected from filename if empty)
	output  string // JSON report file path (console only if empty)
	save    bool   // archive the report in the configured store
	refresh bool   // bypass the metadata cache
}

// newAnalyzeCmd creates the analyze command.
//
// The command accepts one or more manifest paths, resolves every declared
// package against its registry, and prints a report with per-package sizes,
// estimated Docker image footprints, and version conflicts. The ecosystem is
// auto-detected from the file name (requirements.txt, package.json) unless
// --type is given.
func newAnalyzeCmd(configPath *string) *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze <manifest>...",
		Short: "Analyze dependency manifests and estimate image sizes",
		Long: `Analyze one or more dependency manifests.

Examples:
  packsize analyze requirements.txt                 # Python manifest
  packsize analyze package.json                     # Node manifest
  packsize analyze --type python constraints.txt    # Explicit ecosystem
  packsize analyze -o report.json requirements.txt  # Also write JSON report`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runAnalyze(c, &opts, configPath, args)
		},
	}

	cmd.Flags().StringVarP(&opts.ecoType, "type", "t", "", "manifest ecosystem (python, node)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the full report as JSON to this file")
	cmd.Flags().BoolVar(&opts.save, "save", false, "archive the report in the configured store")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the metadata cache")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOpts, configPath *string, paths []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	eco, err := detectEcosystem(opts.ecoType, paths)
	if err != nil {
		return err
	}

	var c cache.Cache
	if opts.refresh {
		c = cache.NewNullCache()
	} else {
		c, err = openCache(ctx, cfg)
		if err != nil {
			return err
		}
	}
	defer c.Close()

	a := analyzer.NewFromConfig(cfg, c, func(msg string, args ...any) {
		logger.Warnf(msg, args...)
	})

	logger.Infof("Analyzing %s (%s)", strings.Join(paths, ", "), eco)
	prog := newProgress(logger)
	report, err := a.Analyze(ctx, paths, eco)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %d packages", len(report.Packages)))

	if opts.save {
		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		if st == nil {
			logger.Warn("No report store configured, skipping --save")
		} else {
			defer st.Close(ctx)
			if err := st.Save(ctx, report); err != nil {
				return err
			}
			logger.Infof("Archived report %s", report.ID)
		}
	}

	if opts.output != "" {
		if err := writeReportJSON(report, opts.output); err != nil {
			return err
		}
		logger.Infof("Wrote report to %s", opts.output)
	}

	renderReport(cmd.OutOrStdout(), report)
	return nil
}

// detectEcosystem resolves the ecosystem from an explicit --type value or,
// failing that, from the manifest file names.
func detectEcosystem(ecoType string, paths []string) (manifest.Ecosystem, error) {
	if ecoType != "" {
		return manifest.ParseEcosystem(ecoType)
	}
	var detected manifest.Ecosystem
	for _, p := range paths {
		eco, ok := ecosystemForFile(p)
		if !ok {
			return "", fmt.Errorf("cannot detect ecosystem of %s (use --type)", p)
		}
		if detected != "" && eco != detected {
			return "", fmt.Errorf("manifests span multiple ecosystems (%s and %s)", detected, eco)
		}
		detected = eco
	}
	return detected, nil
}

// ecosystemForFile maps well-known manifest file names to their ecosystem.
func ecosystemForFile(path string) (manifest.Ecosystem, bool) {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case base == "package.json":
		return manifest.Node, true
	case base == "requirements.txt" || strings.HasSuffix(base, "requirements.txt"):
		return manifest.Python, true
	}
	return "", false
}
