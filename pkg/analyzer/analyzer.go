// Package analyzer implements the dependency analysis engine.
//
// An Analyzer parses one or more dependency manifests, resolves metadata for
// every declared package from its registry, and derives a report with
// per-package metadata, an estimated container-image footprint for three
// packaging variants, and version conflicts across the merged requirement
// set.
//
// Per-package resolution runs on a bounded worker pool; results are
// reassembled in declaration order, which conflict detection depends on.
// Registry and audit failures never fail an analysis: affected fields
// degrade to sentinel values. Only a missing manifest, a malformed manifest,
// or an unsupported ecosystem aborts a run.
package analyzer

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mwittig/packsize/pkg/cache"
	"github.com/mwittig/packsize/pkg/config"
	"github.com/mwittig/packsize/pkg/errors"
	"github.com/mwittig/packsize/pkg/manifest"
	"github.com/mwittig/packsize/pkg/registry"
	"github.com/mwittig/packsize/pkg/registry/npm"
	"github.com/mwittig/packsize/pkg/registry/pypi"
)

const (
	DefaultConcurrency = 8              // Default resolution worker pool size
	DefaultCacheTTL    = 24 * time.Hour // Default metadata cache duration
)

// Options configures analysis behavior.
type Options struct {
	Concurrency int                  // Resolution worker pool size (default: 8)
	CacheTTL    time.Duration        // Metadata cache duration (default: 24h)
	Logger      func(string, ...any) // Warning callback for degraded lookups (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Source is raw manifest content with a display name (usually the file path).
type Source struct {
	Name    string
	Content []byte
}

// Analyzer composes parsing, resolution, conflict detection, and size
// estimation over one or more manifests. Safe for concurrent use.
type Analyzer struct {
	cache   cache.Cache
	lookups map[manifest.Ecosystem]registry.Lookup
	auditor Auditor
	paid    map[manifest.Ecosystem]map[string]bool
	opts    Options
}

// New creates an Analyzer with explicit collaborators. The cache is owned by
// the caller; pass cache.NewMemoryCache() for per-run semantics. paid maps
// ecosystem names to known paid package names.
func New(c cache.Cache, lookups map[manifest.Ecosystem]registry.Lookup, auditor Auditor, paid map[string][]string, opts Options) *Analyzer {
	paidSets := make(map[manifest.Ecosystem]map[string]bool, len(paid))
	for eco, names := range paid {
		set := make(map[string]bool, len(names))
		for _, n := range names {
			set[n] = true
		}
		paidSets[manifest.Ecosystem(eco)] = set
	}
	if auditor == nil {
		auditor = NullAuditor{}
	}
	return &Analyzer{
		cache:   c,
		lookups: lookups,
		auditor: auditor,
		paid:    paidSets,
		opts:    opts.WithDefaults(),
	}
}

// NewFromConfig wires an Analyzer with production registry clients and the
// exec-based security auditor, per the given configuration.
func NewFromConfig(cfg *config.Config, c cache.Cache, logger func(string, ...any)) *Analyzer {
	timeout := cfg.RequestTimeout.Std()
	lookups := map[manifest.Ecosystem]registry.Lookup{
		manifest.Python: pypi.NewClient(cfg.Registry.PyPIURL, timeout),
		manifest.Node:   npm.NewClient(cfg.Registry.NpmURL, timeout),
	}
	return New(c, lookups, &ExecAuditor{Timeout: cfg.AuditTimeout.Std()}, cfg.Paid, Options{
		Concurrency: cfg.Concurrency,
		CacheTTL:    cfg.Cache.TTL.Std(),
		Logger:      logger,
	})
}

// Analyze reads and analyzes the manifests at paths for the given ecosystem.
//
// It fails with MANIFEST_NOT_FOUND if any path does not exist (before any
// other work happens), UNSUPPORTED_ECOSYSTEM for an unknown ecosystem, and
// INVALID_MANIFEST if a manifest cannot be decoded. Per-package lookup
// failures never fail the run.
func (a *Analyzer) Analyze(ctx context.Context, paths []string, eco manifest.Ecosystem) (*Report, error) {
	if _, ok := a.lookups[eco]; !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedEcosystem, "unsupported ecosystem %q (use 'python' or 'node')", string(eco))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeManifestNotFound, "manifest not found: %s", path)
		} else if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "stat %s", path)
		}
	}

	sources := make([]Source, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
		}
		sources = append(sources, Source{Name: path, Content: content})
	}

	return a.AnalyzeSources(ctx, sources, eco)
}

// AnalyzeSources analyzes in-memory manifest content for the given ecosystem.
// Requirement order is preserved within each source and across sources.
func (a *Analyzer) AnalyzeSources(ctx context.Context, sources []Source, eco manifest.Ecosystem) (*Report, error) {
	lookup, ok := a.lookups[eco]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedEcosystem, "unsupported ecosystem %q (use 'python' or 'node')", string(eco))
	}

	var reqs []manifest.Requirement
	for _, src := range sources {
		parsed, err := manifest.Parse(src.Content, eco)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeParseError
			}
			return nil, errors.Wrap(code, err, "parsing %s", src.Name)
		}
		reqs = append(reqs, parsed...)
	}

	packages, err := a.resolveAll(ctx, reqs, eco, lookup)
	if err != nil {
		return nil, err
	}

	return &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Ecosystem:   eco,
		Packages:    packages,
		Estimate:    EstimateImageSizes(packages, eco),
		Conflicts:   FindConflicts(packages),
	}, nil
}

// resolveAll resolves every requirement on a bounded worker pool and
// reassembles the results in input order, not completion order.
func (a *Analyzer) resolveAll(ctx context.Context, reqs []manifest.Requirement, eco manifest.Ecosystem, lookup registry.Lookup) ([]PackageInfo, error) {
	res := &resolver{
		eco:      eco,
		lookup:   lookup,
		cache:    a.cache,
		cacheTTL: a.opts.CacheTTL,
		auditor:  a.auditor,
		paid:     a.paid[eco],
		warn:     a.opts.Logger,
	}

	packages := make([]PackageInfo, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			packages[i] = res.Resolve(gctx, req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return packages, nil
}
