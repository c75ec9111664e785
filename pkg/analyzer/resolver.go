package analyzer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/singleflight"

	"github.com/mwittig/packsize/pkg/cache"
	"github.com/mwittig/packsize/pkg/errors"
	"github.com/mwittig/packsize/pkg/manifest"
	"github.com/mwittig/packsize/pkg/registry"
)

// resolver turns a requirement into a PackageInfo for one ecosystem.
//
// All registry and audit failures are absorbed here, exactly once: the
// caller always receives a complete PackageInfo with sentinel fields where
// data was unavailable. Resolution cannot fail outward.
type resolver struct {
	eco      manifest.Ecosystem
	lookup   registry.Lookup
	cache    cache.Cache
	cacheTTL time.Duration
	auditor  Auditor
	paid     map[string]bool
	warn     func(string, ...any)

	group singleflight.Group
}

// Resolve produces the PackageInfo for req. Safe for concurrent use; fetches
// for the same package name are coalesced so the registry sees at most one
// in-flight request per (ecosystem, name).
func (r *resolver) Resolve(ctx context.Context, req manifest.Requirement) PackageInfo {
	info := PackageInfo{
		Name:            req.Name,
		Version:         req.Version,
		IsPaid:          r.paid[req.Name],
		Description:     NoDescription,
		Vulnerabilities: AuditUnavailable,
	}

	if err := errors.ValidatePackageName(req.Name); err != nil {
		r.warn("skipping lookup for %s: %v", req.Name, err)
		return info
	}

	if meta, err := r.fetch(ctx, req.Name); err != nil {
		r.warn("lookup failed for %s package %s: %v", r.eco, req.Name, err)
	} else {
		info.Size = meta.Size
		info.LatestVersion = meta.LatestVersion
		if meta.Description != "" {
			info.Description = meta.Description
		}
		info.Outdated = outdated(req.Version, meta.LatestVersion)
	}

	if signal, err := r.auditor.Audit(ctx, req.Name, r.eco); err != nil {
		r.warn("security audit failed for %s: %v", req.Name, err)
	} else {
		info.Vulnerabilities = signal
	}

	return info
}

// fetch returns the registry metadata for name, consulting the cache first.
// Successful lookups are cached; failures are not, so a later call may retry.
// Concurrent first requests for the same key are coalesced.
func (r *resolver) fetch(ctx context.Context, name string) (*registry.Package, error) {
	key := cache.Key(string(r.eco), name)

	v, err, _ := r.group.Do(key, func() (any, error) {
		if data, ok, err := r.cache.Get(ctx, key); err != nil {
			r.warn("cache read failed for %s: %v", key, err)
		} else if ok {
			var meta registry.Package
			if err := json.Unmarshal(data, &meta); err == nil {
				return &meta, nil
			}
			r.warn("dropping corrupt cache entry for %s", key)
			_ = r.cache.Delete(ctx, key)
		}

		meta, err := r.lookup.Fetch(ctx, name)
		if err != nil {
			return nil, err
		}

		if data, err := json.Marshal(meta); err == nil {
			if err := r.cache.Set(ctx, key, data, r.cacheTTL); err != nil {
				r.warn("cache write failed for %s: %v", key, err)
			}
		}
		return meta, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*registry.Package), nil
}

// outdated reports whether declared is a semantic version strictly below
// latest. Unparsable versions (ranges, wildcards, empty) report false.
func outdated(declared, latest string) bool {
	if declared == "" || latest == "" {
		return false
	}
	dv, err := semver.NewVersion(declared)
	if err != nil {
		return false
	}
	lv, err := semver.NewVersion(latest)
	if err != nil {
		return false
	}
	return dv.LessThan(lv)
}
